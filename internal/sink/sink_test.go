// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sink

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

func sampleRows() []types.ReportRow {
	return []types.ReportRow{
		{
			PubmedID:        "100",
			Title:           "T1",
			PublicationDate: "2023",
			NonAcademicAuthors: []types.CompanyAuthor{
				{Name: "A", Affiliation: "acme biotech"},
			},
			CorrespondingEmail: types.UnknownEmail,
		},
		{
			PubmedID:        "200",
			Title:           "Checkpoint inhibitors, a review",
			PublicationDate: "2021 Jun",
			NonAcademicAuthors: []types.CompanyAuthor{
				{Name: "Lee K", Affiliation: "genentech inc"},
				{Name: "Kim H", Affiliation: "samsung biotech"},
			},
			CorrespondingEmail: types.UnknownEmail,
		},
		{
			PubmedID:           "300",
			Title:              "Academic only",
			PublicationDate:    "2020",
			CorrespondingEmail: types.UnknownEmail,
		},
	}
}

// --- formats ---

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", "", false},
		{"csv", FormatCSV, false},
		{" JSON ", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"sqlite", FormatSQLite, false},
		{"xlsx", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unsupported format")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInferFormat(t *testing.T) {
	tests := map[string]Format{
		"out.csv":        FormatCSV,
		"out":            FormatCSV,
		"out.txt":        FormatCSV,
		"out.JSON":       FormatJSON,
		"out.yaml":       FormatYAML,
		"out.yml":        FormatYAML,
		"out.db":         FormatSQLite,
		"dir/out.sqlite": FormatSQLite,
		"out.sqlite3":    FormatSQLite,
	}
	for path, want := range tests {
		assert.Equal(t, want, InferFormat(path), path)
	}
}

// --- CSV ---

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleRows()))

	want := strings.Join([]string{
		"PubmedID,Title,Publication Date,Non-academic Author(s),Company Affiliation(s),Corresponding Author Email",
		"100,T1,2023,A,acme biotech,Unknown",
		`200,"Checkpoint inhibitors, a review",2021 Jun,"Lee K, Kim H","genentech inc, samsung biotech",Unknown`,
		"300,Academic only,2020,,,Unknown",
	}, "\n") + "\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, strings.Join(Header, ",")+"\n", buf.String())
}

func TestCSVRoundTrip(t *testing.T) {
	rows := sampleRows()
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows))

	got, err := ReadCSV(&buf)
	require.NoError(t, err)
	require.Len(t, got, len(rows))
	for i := range rows {
		assert.Equal(t, rows[i].PubmedID, got[i].PubmedID)
		assert.Equal(t, rows[i].Title, got[i].Title)
		assert.Equal(t, rows[i].PublicationDate, got[i].PublicationDate)
		assert.Equal(t, rows[i].NonAcademicAuthorNames(), got[i].NonAcademicAuthorNames())
		assert.Equal(t, rows[i].CompanyAffiliations(), got[i].CompanyAffiliations())
		assert.Equal(t, rows[i].CorrespondingEmail, got[i].CorrespondingEmail)
	}
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		errMsg string
	}{
		{"empty input", "", "missing header"},
		{"wrong header", "a,b,c,d,e,f\n", "header column 1"},
		{"wrong field count", strings.Join(Header, ",") + "\n1,2\n", "parsing CSV"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestReadCSVUnevenLists(t *testing.T) {
	input := strings.Join(Header, ",") + "\n" + `1,T,2020,"A, B",acme inc,Unknown` + "\n"
	rows, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []types.CompanyAuthor{
		{Name: "A", Affiliation: "acme inc"},
		{Name: "B"},
	}, rows[0].NonAcademicAuthors)
}

// --- table ---

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	WriteTable(&buf, sampleRows())
	out := buf.String()

	assert.Contains(t, out, "PubmedID")
	assert.Contains(t, out, "Non-academic Author(s)")
	assert.Contains(t, out, "acme biotech")
	assert.Contains(t, out, "Lee K, Kim H")
	assert.Contains(t, out, "3 results")
}

func TestWriteTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	WriteTable(&buf, nil)
	assert.Equal(t, "No results found.\n", buf.String())
}

func TestWriteTableTruncatesLongTitles(t *testing.T) {
	long := strings.Repeat("x", 100)
	var buf bytes.Buffer
	WriteTable(&buf, []types.ReportRow{{PubmedID: "1", Title: long}})
	assert.NotContains(t, buf.String(), long)
	assert.Contains(t, buf.String(), strings.Repeat("x", 57)+"...")
}

func TestWriteTableTruncatesOnRuneBoundaries(t *testing.T) {
	title := strings.Repeat("a", 56) + strings.Repeat("β", 7)
	var buf bytes.Buffer
	WriteTable(&buf, []types.ReportRow{{PubmedID: "1", Title: title}})
	assert.True(t, utf8.ValidString(buf.String()))
	assert.Contains(t, buf.String(), strings.Repeat("a", 56)+"β...")
}

// --- JSON / YAML ---

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleRows()))

	var got []types.ReportRow
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sampleRows(), got)
	assert.Contains(t, buf.String(), `"pubmed_id": "100"`)
}

func TestWriteJSONEmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, sampleRows()))

	var got []types.ReportRow
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	want := sampleRows()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].PubmedID, got[i].PubmedID)
		assert.Equal(t, want[i].Title, got[i].Title)
		assert.Equal(t, want[i].NonAcademicAuthorNames(), got[i].NonAcademicAuthorNames())
		assert.Equal(t, want[i].CompanyAffiliations(), got[i].CompanyAffiliations())
	}
	assert.Contains(t, buf.String(), "pubmed_id: \"100\"")
}

// --- Emit ---

func TestEmitStdout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Emit(sampleRows(), Destination{}, &buf))
	assert.Contains(t, buf.String(), "3 results")
}

func TestEmitCSVFileOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale content that is longer than the new report\n"), 0o644))

	var stdout bytes.Buffer
	require.NoError(t, Emit(sampleRows()[:1], Destination{Path: path}, &stdout))
	assert.Empty(t, stdout.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strings.Join(Header, ",")+"\n100,T1,2023,A,acme biotech,Unknown\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
	assertNoTempFiles(t, dir)
}

func TestEmitInfersFormatFromExtension(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "report.json")
	require.NoError(t, Emit(sampleRows(), Destination{Path: jsonPath}, nil))
	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))

	yamlPath := filepath.Join(dir, "report.yml")
	require.NoError(t, Emit(sampleRows(), Destination{Path: yamlPath}, nil))
	data, err = os.ReadFile(yamlPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "- pubmed_id:")
}

func TestEmitExplicitFormatWins(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.txt")
	require.NoError(t, Emit(sampleRows(), Destination{Path: path, Format: FormatJSON}, nil))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
}

func TestEmitSQLite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.db")
	require.NoError(t, Emit(sampleRows(), Destination{Path: path}, nil))
	assertNoTempFiles(t, dir)

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	rows, err := db.Query(`SELECT pubmed_id, non_academic_authors, company_affiliations, corresponding_email
		FROM report ORDER BY rowid`)
	require.NoError(t, err)
	defer rows.Close()

	type rec struct{ id, names, affs, email string }
	var got []rec
	for rows.Next() {
		var r rec
		require.NoError(t, rows.Scan(&r.id, &r.names, &r.affs, &r.email))
		got = append(got, r)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []rec{
		{"100", "A", "acme biotech", "Unknown"},
		{"200", "Lee K, Kim H", "genentech inc, samsung biotech", "Unknown"},
		{"300", "", "", "Unknown"},
	}, got)
}

func TestEmitSQLiteReplacesExistingDatabase(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.sqlite")
	require.NoError(t, Emit(sampleRows(), Destination{Path: path}, nil))
	require.NoError(t, Emit(sampleRows()[:1], Destination{Path: path}, nil))

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM report`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestEmitMissingDirectoryLeavesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "report.csv")
	err := Emit(sampleRows(), Destination{Path: path}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating temporary file")
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestEmitUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	err := Emit(sampleRows(), Destination{Path: filepath.Join(dir, "r.out"), Format: "xlsx"}, nil)
	require.Error(t, err)
	assertNoTempFiles(t, dir)
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.Contains(e.Name(), ".tmp-"), "leftover temp file %s", e.Name())
	}
}
