// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// UnknownEmail is the corresponding-author email placeholder. The summary
// endpoint never returns an email address.
const UnknownEmail = "Unknown"

// CompanyAuthor is an author whose affiliation was classified as non-academic.
type CompanyAuthor struct {
	// Name is the author's display name.
	Name string `json:"name" yaml:"name"`

	// Affiliation is the lower-cased affiliation text that triggered the match.
	Affiliation string `json:"affiliation" yaml:"affiliation"`
}

// ReportRow is one output record per paper.
type ReportRow struct {
	PubmedID        string `json:"pubmed_id" yaml:"pubmed_id"`
	Title           string `json:"title" yaml:"title"`
	PublicationDate string `json:"publication_date" yaml:"publication_date"`

	// NonAcademicAuthors holds the flagged authors in author-list order.
	// Names and affiliations are projected from this slice only when the
	// row is serialized.
	NonAcademicAuthors []CompanyAuthor `json:"non_academic_authors" yaml:"non_academic_authors"`

	CorrespondingEmail string `json:"corresponding_email" yaml:"corresponding_email"`
}

// NonAcademicAuthorNames returns the flagged author names in order.
func (r ReportRow) NonAcademicAuthorNames() []string {
	names := make([]string, len(r.NonAcademicAuthors))
	for i, a := range r.NonAcademicAuthors {
		names[i] = a.Name
	}
	return names
}

// CompanyAffiliations returns the flagged affiliations, index-aligned with
// NonAcademicAuthorNames.
func (r ReportRow) CompanyAffiliations() []string {
	affs := make([]string, len(r.NonAcademicAuthors))
	for i, a := range r.NonAcademicAuthors {
		affs[i] = a.Affiliation
	}
	return affs
}
