// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package affiliation classifies author affiliations as academic or
// non-academic using a case-insensitive keyword substring match.
//
// Matching has no word boundaries: "Lincoln" contains "inc" and is flagged.
package affiliation

import (
	"strings"

	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

// DefaultKeywords are the terms that mark an affiliation as a for-profit entity.
var DefaultKeywords = []string{"pharma", "biotech", "company", "inc", "ltd", "corporation"}

var defaultClassifier = New()

// IsNonAcademic reports whether the affiliation text matches DefaultKeywords.
// Empty text is academic.
func IsNonAcademic(affiliation string) bool {
	return defaultClassifier.IsNonAcademic(affiliation)
}

// Classifier matches affiliations against a fixed keyword list.
type Classifier struct {
	keywords []string
}

// New returns a Classifier for the given keywords. Keywords are lower-cased
// and blank entries dropped; an empty list uses DefaultKeywords.
func New(keywords ...string) *Classifier {
	var kws []string
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			kws = append(kws, k)
		}
	}
	if len(kws) == 0 {
		kws = append(kws, DefaultKeywords...)
	}
	return &Classifier{keywords: kws}
}

// Keywords returns a copy of the active keyword list.
func (c *Classifier) Keywords() []string {
	return append([]string(nil), c.keywords...)
}

// IsNonAcademic reports whether the lower-cased affiliation contains any keyword.
func (c *Classifier) IsNonAcademic(affiliation string) bool {
	if affiliation == "" {
		return false
	}
	lower := strings.ToLower(affiliation)
	for _, k := range c.keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// Flag returns the non-academic authors in author-list order. Each entry
// carries the lower-cased affiliation.
func (c *Classifier) Flag(authors []types.Author) []types.CompanyAuthor {
	var flagged []types.CompanyAuthor
	for _, a := range authors {
		if !c.IsNonAcademic(a.Affiliation) {
			continue
		}
		flagged = append(flagged, types.CompanyAuthor{
			Name:        a.Name,
			Affiliation: strings.ToLower(a.Affiliation),
		})
	}
	return flagged
}
