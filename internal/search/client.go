// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries the NCBI E-utilities service: esearch for the
// PubMed ids matching a term, and esummary for per-paper metadata.
//
// Each operation issues exactly one GET request. There is no retry and no
// pagination past the configured result cap.
package search

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/pubmed-fetcher/internal/httputil"
	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

const (
	esearchEndpoint  = "esearch"
	esummaryEndpoint = "esummary"
	database         = "pubmed"
)

// Client talks to one E-utilities deployment. The base URL, API key and
// timeout are fixed at construction.
type Client struct {
	config types.PubMedConfig
	http   *http.Client
	logger zerolog.Logger
}

// New returns a Client for cfg. Zero-valued settings fall back to the
// defaults in pkg/types. When httpClient is nil a client with cfg.Timeout
// is created.
func New(cfg types.PubMedConfig, httpClient *http.Client, logger zerolog.Logger) *Client {
	applyDefaults(&cfg)
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		config: cfg,
		http:   httpClient,
		logger: logger,
	}
}

func applyDefaults(cfg *types.PubMedConfig) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = types.DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = types.DefaultTimeout
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = types.DefaultMaxResults
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = types.DefaultUserAgent
	}
}

// Config returns the effective configuration.
func (c *Client) Config() types.PubMedConfig { return c.config }

// endpointURL builds {BaseURL}/{endpoint}.fcgi with params and the API key.
func (c *Client) endpointURL(endpoint string, params url.Values) string {
	params.Set("db", database)
	params.Set("retmode", "json")
	if c.config.APIKey != "" {
		params.Set("api_key", c.config.APIKey)
	}
	return c.config.BaseURL + "/" + endpoint + ".fcgi?" + params.Encode()
}

// get performs the request and maps failures onto TransportError.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	reqURL := c.endpointURL(endpoint, params)
	c.logger.Debug().Str("endpoint", endpoint).Msg("requesting")

	body, err := httputil.Get(ctx, c.http, reqURL, c.config.UserAgent)
	if err != nil {
		te := &TransportError{Endpoint: endpoint, Err: err}
		var se *httputil.StatusError
		if errors.As(err, &se) {
			te.StatusCode = se.StatusCode
		}
		return nil, te
	}
	return body, nil
}
