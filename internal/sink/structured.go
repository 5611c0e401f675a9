// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sink

import (
	"encoding/json"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

// WriteJSON writes rows as an indented JSON array.
func WriteJSON(w io.Writer, rows []types.ReportRow) error {
	if rows == nil {
		rows = []types.ReportRow{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

// WriteYAML writes rows as a YAML sequence.
func WriteYAML(w io.Writer, rows []types.ReportRow) error {
	if rows == nil {
		rows = []types.ReportRow{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rows); err != nil {
		return err
	}
	return enc.Close()
}
