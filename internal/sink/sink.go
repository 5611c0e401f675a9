// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sink writes report rows to stdout as a table, or to a file as
// CSV, JSON, YAML, or a SQLite database.
//
// File output goes to a temporary sibling first and is renamed over the
// destination, so an existing report is replaced whole or left untouched.
package sink

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

// Format selects the file encoding.
type Format string

const (
	FormatCSV    Format = "csv"
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatSQLite Format = "sqlite"
)

// Destination says where rows go. An empty Path means stdout.
type Destination struct {
	Path string
	// Format is inferred from Path's extension when empty.
	Format Format
}

// ParseFormat validates a user-supplied format name. Empty is allowed and
// means "infer from the file extension".
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatCSV, FormatJSON, FormatYAML, FormatSQLite:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format %q: use csv, json, yaml, or sqlite", s)
	}
}

// InferFormat maps a file extension to a Format, defaulting to CSV.
func InferFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	default:
		return FormatCSV
	}
}

// Emit writes rows to dest, or renders a table to stdout when dest has no path.
func Emit(rows []types.ReportRow, dest Destination, stdout io.Writer) error {
	if dest.Path == "" {
		WriteTable(stdout, rows)
		return nil
	}

	format := dest.Format
	if format == "" {
		format = InferFormat(dest.Path)
	}

	switch format {
	case FormatCSV:
		return replaceFile(dest.Path, streamTo(func(w io.Writer) error { return WriteCSV(w, rows) }))
	case FormatJSON:
		return replaceFile(dest.Path, streamTo(func(w io.Writer) error { return WriteJSON(w, rows) }))
	case FormatYAML:
		return replaceFile(dest.Path, streamTo(func(w io.Writer) error { return WriteYAML(w, rows) }))
	case FormatSQLite:
		return replaceFile(dest.Path, func(tmpPath string) error { return WriteSQLite(tmpPath, rows) })
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// replaceFile has fill populate a temporary file in path's directory, then
// renames it over path. The temporary file is removed on failure.
func replaceFile(path string, fill func(tmpPath string) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}
	tmpPath := tmp.Name()
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temporary file: %w", err)
	}
	defer func() {
		if err != nil {
			os.Remove(tmpPath)
		}
	}()

	if err := fill(tmpPath); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// streamTo adapts an io.Writer encoder to replaceFile.
func streamTo(encode func(w io.Writer) error) func(string) error {
	return func(tmpPath string) error {
		f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_TRUNC, 0o600)
		if err != nil {
			return err
		}
		if err := encode(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Sync(); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
}
