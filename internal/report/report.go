// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report turns a search term into report rows: one esearch call,
// one esummary call for all returned ids, and an affiliation pass per paper.
package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/pubmed-fetcher/internal/affiliation"
	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

// Searcher returns paper ids for a query. *search.Client implements it.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]string, error)
}

// Summarizer returns paper metadata keyed by id. *search.Client implements it.
type Summarizer interface {
	FetchDetails(ctx context.Context, ids []string) (map[string]types.Paper, error)
}

// Builder composes the search and summary calls with the classifier.
type Builder struct {
	Searcher   Searcher
	Summarizer Summarizer
	// Classifier defaults to the package-level keyword list when nil.
	Classifier *affiliation.Classifier
	// MaxResults is passed to Searcher; <= 0 lets it use its own default.
	MaxResults int
	Logger     zerolog.Logger
}

// Build returns one row per paper in search order. Papers missing from the
// summary response are skipped. Any upstream error aborts the whole build
// and no rows are returned.
func (b *Builder) Build(ctx context.Context, query string) ([]types.ReportRow, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query is empty: provide a search term")
	}

	classifier := b.Classifier
	if classifier == nil {
		classifier = affiliation.New()
	}

	b.Logger.Debug().Str("query", query).Msg("fetching papers")
	ids, err := b.Searcher.Search(ctx, query, b.MaxResults)
	if err != nil {
		return nil, fmt.Errorf("searching PubMed: %w", err)
	}
	b.Logger.Debug().Strs("ids", ids).Int("count", len(ids)).Msg("fetched PubMed IDs")

	papers, err := b.Summarizer.FetchDetails(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("fetching paper details: %w", err)
	}

	rows := make([]types.ReportRow, 0, len(ids))
	for _, id := range ids {
		paper, ok := papers[id]
		if !ok {
			b.Logger.Debug().Str("id", id).Msg("no summary for id, skipping")
			continue
		}
		rows = append(rows, types.ReportRow{
			PubmedID:           id,
			Title:              paper.Title,
			PublicationDate:    paper.PublicationDate,
			NonAcademicAuthors: classifier.Flag(paper.Authors),
			CorrespondingEmail: types.UnknownEmail,
		})
	}

	b.Logger.Debug().Int("rows", len(rows)).Msg("report built")
	return rows, nil
}
