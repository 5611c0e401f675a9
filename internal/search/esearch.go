// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
)

// Search returns the PubMed ids matching query, in the order esearch lists
// them. maxResults <= 0 uses the configured cap.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]string, error) {
	if maxResults <= 0 {
		maxResults = c.config.MaxResults
	}

	params := url.Values{
		"term":   {query},
		"retmax": {strconv.Itoa(maxResults)},
	}

	body, err := c.get(ctx, esearchEndpoint, params)
	if err != nil {
		return nil, err
	}

	var resp esearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &FormatError{Endpoint: esearchEndpoint, Reason: "decoding JSON", Err: err}
	}
	if resp.Result == nil {
		return nil, &FormatError{Endpoint: esearchEndpoint, Reason: "missing esearchresult"}
	}
	if resp.Result.Error != "" {
		return nil, &FormatError{Endpoint: esearchEndpoint, Reason: "service error: " + resp.Result.Error}
	}
	if resp.Result.IDList == nil {
		return nil, &FormatError{Endpoint: esearchEndpoint, Reason: "missing esearchresult.idlist"}
	}

	c.logger.Debug().
		Str("count", resp.Result.Count).
		Int("returned", len(resp.Result.IDList)).
		Msg("esearch complete")
	return resp.Result.IDList, nil
}

// esearch JSON structures. Numeric fields arrive as strings.
type esearchResponse struct {
	Result *esearchResult `json:"esearchresult"`
}

type esearchResult struct {
	Count    string   `json:"count"`
	RetMax   string   `json:"retmax"`
	RetStart string   `json:"retstart"`
	IDList   []string `json:"idlist"`
	Error    string   `json:"ERROR"`
}
