// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sink

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

// Header is the CSV header row, in ReportRow field order.
var Header = []string{
	"PubmedID",
	"Title",
	"Publication Date",
	"Non-academic Author(s)",
	"Company Affiliation(s)",
	"Corresponding Author Email",
}

// listSep joins multi-value cells.
const listSep = ", "

// record flattens a row into Header order.
func record(r types.ReportRow) []string {
	return []string{
		r.PubmedID,
		r.Title,
		r.PublicationDate,
		strings.Join(r.NonAcademicAuthorNames(), listSep),
		strings.Join(r.CompanyAffiliations(), listSep),
		r.CorrespondingEmail,
	}
}

// WriteCSV writes the header and one record per row. Cells containing
// commas or quotes are quoted.
func WriteCSV(w io.Writer, rows []types.ReportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(record(r)); err != nil {
			return fmt.Errorf("writing CSV record %s: %w", r.PubmedID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a report written by WriteCSV. Multi-value cells are split
// on ", " and paired by position; a name without a matching affiliation
// gets an empty one.
func ReadCSV(r io.Reader) ([]types.ReportRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("parsing CSV: missing header")
	}
	for i, h := range Header {
		if records[0][i] != h {
			return nil, fmt.Errorf("parsing CSV: header column %d is %q, want %q", i+1, records[0][i], h)
		}
	}

	rows := make([]types.ReportRow, 0, len(records)-1)
	for _, rec := range records[1:] {
		rows = append(rows, types.ReportRow{
			PubmedID:           rec[0],
			Title:              rec[1],
			PublicationDate:    rec[2],
			NonAcademicAuthors: pairAuthors(splitList(rec[3]), splitList(rec[4])),
			CorrespondingEmail: rec[5],
		})
	}
	return rows, nil
}

func splitList(cell string) []string {
	if cell == "" {
		return nil
	}
	return strings.Split(cell, listSep)
}

func pairAuthors(names, affs []string) []types.CompanyAuthor {
	n := max(len(names), len(affs))
	if n == 0 {
		return nil
	}
	out := make([]types.CompanyAuthor, n)
	for i := range out {
		if i < len(names) {
			out[i].Name = names[i]
		}
		if i < len(affs) {
			out[i].Affiliation = affs[i]
		}
	}
	return out
}
