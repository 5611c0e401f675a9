// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sink

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"

	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

const maxTitleWidth = 60

// WriteTable renders rows as a human-readable table followed by a count.
func WriteTable(w io.Writer, rows []types.ReportRow) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(Header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetBorder(false)

	for _, r := range rows {
		rec := record(r)
		rec[1] = truncate(rec[1], maxTitleWidth)
		table.Append(rec)
	}
	table.Render()

	fmt.Fprintf(w, "\n%d results\n", len(rows))
}

// truncate shortens s to width display columns, cutting on rune boundaries.
func truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "...")
}
