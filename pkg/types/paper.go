// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the pubmed-fetcher pipeline:
// papers and authors as returned by the summary endpoint, report rows, and
// the resolved configuration.
package types

// Author is one entry of a paper's author list.
type Author struct {
	// Name is the author's display name as returned by PubMed (e.g. "Smith J").
	Name string `json:"name" yaml:"name"`

	// Affiliation is the free-text institution string. Often empty in
	// summary responses.
	Affiliation string `json:"affiliation,omitempty" yaml:"affiliation,omitempty"`
}

// Paper holds the summary metadata for one PubMed record.
type Paper struct {
	// ID is the PubMed UID (PMID).
	ID string `json:"id" yaml:"id"`

	// Title is the article title.
	Title string `json:"title" yaml:"title"`

	// PublicationDate is the pubdate string as returned upstream (e.g. "2023 Mar 15").
	PublicationDate string `json:"publication_date" yaml:"publication_date"`

	// Authors lists the paper authors in source order.
	Authors []Author `json:"authors" yaml:"authors"`
}
