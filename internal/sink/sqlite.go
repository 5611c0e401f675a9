// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sink

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

const createReportTable = `CREATE TABLE IF NOT EXISTS report (
	rowid INTEGER PRIMARY KEY AUTOINCREMENT,
	pubmed_id TEXT NOT NULL,
	title TEXT,
	publication_date TEXT,
	non_academic_authors TEXT,
	company_affiliations TEXT,
	corresponding_email TEXT
)`

const insertReportRow = `INSERT INTO report
	(pubmed_id, title, publication_date, non_academic_authors, company_affiliations, corresponding_email)
	VALUES (?, ?, ?, ?, ?, ?)`

// WriteSQLite stores rows in a report table inside the database at path,
// in one transaction. Rows keep their order through rowid.
func WriteSQLite(path string, rows []types.ReportRow) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(createReportTable); err != nil {
		return fmt.Errorf("creating report table: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(insertReportRow)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		_, err := stmt.Exec(
			r.PubmedID,
			r.Title,
			r.PublicationDate,
			strings.Join(r.NonAcademicAuthorNames(), listSep),
			strings.Join(r.CompanyAffiliations(), listSep),
			r.CorrespondingEmail,
		)
		if err != nil {
			return fmt.Errorf("inserting row %s: %w", r.PubmedID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return db.Close()
}
