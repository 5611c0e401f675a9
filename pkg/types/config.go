package types

import (
	"fmt"
	"strings"
	"time"
)

// HTTPConfig holds shared HTTP settings used by the E-utilities client.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Never zero after defaults are applied.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pubmed-fetcher/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// PubMedConfig holds settings for the search and summary clients.
type PubMedConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the E-utilities base URL; esearch.fcgi and esummary.fcgi
	// are resolved relative to it.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// APIKey is an optional NCBI API key, passed through unchanged as api_key.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxResults caps the number of ids requested from esearch (default 100).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// OutputConfig holds settings for the report sink.
type OutputConfig struct {
	// File is the destination path. Empty means a table on stdout.
	File string `json:"file,omitempty" yaml:"file,omitempty"`

	// Format is one of csv, json, yaml, sqlite. Empty infers it from File.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// LogConfig selects the log level and encoding.
type LogConfig struct {
	// Level is a zerolog level name (debug, info, warn, error).
	Level string `json:"level" yaml:"level"`

	// Format is console or json.
	Format string `json:"format" yaml:"format"`
}

// FetcherConfig groups all settings for one run.
type FetcherConfig struct {
	PubMed   PubMedConfig `json:"pubmed" yaml:"pubmed"`
	Output   OutputConfig `json:"output" yaml:"output"`
	Log      LogConfig    `json:"log" yaml:"log"`
	Keywords []string     `json:"affiliation_keywords,omitempty" yaml:"affiliation_keywords,omitempty"`
}

const (
	DefaultBaseURL    = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"
	DefaultTimeout    = 30 * time.Second
	DefaultMaxResults = 100
	DefaultUserAgent  = "pubmed-fetcher/0.1"
)

// DefaultFetcherConfig returns the configuration used when nothing is set.
func DefaultFetcherConfig() FetcherConfig {
	return FetcherConfig{
		PubMed: PubMedConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   DefaultTimeout,
				UserAgent: DefaultUserAgent,
			},
			BaseURL:    DefaultBaseURL,
			MaxResults: DefaultMaxResults,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

var validFormats = map[string]bool{"": true, "csv": true, "json": true, "yaml": true, "sqlite": true}

// Validate reports the first invalid setting.
func (c FetcherConfig) Validate() error {
	if c.PubMed.BaseURL == "" {
		return fmt.Errorf("pubmed.base_url must not be empty")
	}
	if c.PubMed.Timeout <= 0 {
		return fmt.Errorf("pubmed.timeout must be positive, got %s", c.PubMed.Timeout)
	}
	if c.PubMed.MaxResults < 0 {
		return fmt.Errorf("pubmed.max_results must not be negative, got %d", c.PubMed.MaxResults)
	}
	if !validFormats[strings.ToLower(c.Output.Format)] {
		return fmt.Errorf("unsupported output format %q: use csv, json, yaml, or sqlite", c.Output.Format)
	}
	return nil
}
