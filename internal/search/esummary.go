// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

// FetchDetails returns summary metadata for ids in one esummary request,
// keyed by id. Ids missing from the response are omitted. An empty ids
// slice returns an empty map without contacting the service, which rejects
// requests with no id.
func (c *Client) FetchDetails(ctx context.Context, ids []string) (map[string]types.Paper, error) {
	papers := make(map[string]types.Paper)
	if len(ids) == 0 {
		return papers, nil
	}

	params := url.Values{"id": {strings.Join(ids, ",")}}
	body, err := c.get(ctx, esummaryEndpoint, params)
	if err != nil {
		return nil, err
	}

	var resp esummaryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &FormatError{Endpoint: esummaryEndpoint, Reason: "decoding JSON", Err: err}
	}
	if resp.Result == nil {
		reason := "missing result"
		if resp.Error != "" {
			reason = "service error: " + resp.Error
		}
		return nil, &FormatError{Endpoint: esummaryEndpoint, Reason: reason}
	}

	for _, id := range ids {
		raw, ok := resp.Result[id]
		if !ok {
			continue
		}
		var doc esummaryDoc
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, &FormatError{Endpoint: esummaryEndpoint, Reason: "decoding document " + id, Err: err}
		}
		// Unknown ids come back as {"uid": "...", "error": "cannot get document summary"}.
		if doc.Error != "" {
			c.logger.Debug().Str("id", id).Str("error", doc.Error).Msg("summary unavailable")
			continue
		}
		papers[id] = doc.toPaper(id)
	}

	c.logger.Debug().Int("requested", len(ids)).Int("returned", len(papers)).Msg("esummary complete")
	return papers, nil
}

func (d esummaryDoc) toPaper(id string) types.Paper {
	p := types.Paper{
		ID:              id,
		Title:           d.Title,
		PublicationDate: d.PubDate,
	}
	for _, a := range d.Authors {
		p.Authors = append(p.Authors, types.Author{
			Name:        a.Name,
			Affiliation: a.Affiliation,
		})
	}
	return p
}

// esummary JSON structures. The result object maps each uid to its
// document and also carries a "uids" array, so values stay raw until
// looked up by id.
type esummaryResponse struct {
	Result map[string]json.RawMessage `json:"result"`
	Error  string                     `json:"error"`
}

type esummaryDoc struct {
	UID     string           `json:"uid"`
	Title   string           `json:"title"`
	PubDate string           `json:"pubdate"`
	Authors []esummaryAuthor `json:"authors"`
	Error   string           `json:"error"`
}

type esummaryAuthor struct {
	Name        string `json:"name"`
	AuthType    string `json:"authtype"`
	Affiliation string `json:"affiliation"`
}
