// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pubmed-fetcher CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pubmed-fetcher/internal/logging"
	"github.com/pdiddy/pubmed-fetcher/internal/secrets"
	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from the secrets directory at startup.
var loadedSecrets secrets.Store

// rootCmd is the base command for the pubmed-fetcher CLI.
var rootCmd = &cobra.Command{
	Use:   "pubmed-fetcher",
	Short: "Find PubMed papers with authors from pharmaceutical or biotech companies",
	Long: `pubmed-fetcher searches PubMed through the NCBI E-utilities API, fetches
summary metadata for the matching papers, and flags authors whose affiliation
names a company rather than an academic institution.

Results are printed as a table or written to a CSV, JSON, YAML, or SQLite file.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("secrets-dir")
		warnLogger := logging.New(types.LogConfig{Level: "warn"}, cmd.ErrOrStderr())
		s, err := secrets.Load(dir, warnLogger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pubmed-fetcher.yaml or ~/.config/pubmed-fetcher/config.yaml)")
	rootCmd.PersistentFlags().String("secrets-dir", secrets.DefaultDir, "directory of secret files (reads ncbi-api-key)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pubmed-fetcher")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pubmed-fetcher"))
		}
	}

	setConfigDefaults()

	viper.SetEnvPrefix("PUBMED_FETCHER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func setConfigDefaults() {
	d := types.DefaultFetcherConfig()
	viper.SetDefault("pubmed.base_url", d.PubMed.BaseURL)
	viper.SetDefault("pubmed.timeout", d.PubMed.Timeout)
	viper.SetDefault("pubmed.max_results", d.PubMed.MaxResults)
	viper.SetDefault("pubmed.user_agent", d.PubMed.UserAgent)
	viper.SetDefault("log.level", d.Log.Level)
	viper.SetDefault("log.format", d.Log.Format)
}

// fetcherConfig resolves flags, environment, config file, and defaults.
func fetcherConfig() (types.FetcherConfig, error) {
	cfg := types.FetcherConfig{
		PubMed: types.PubMedConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("pubmed.timeout"),
				UserAgent: viper.GetString("pubmed.user_agent"),
			},
			BaseURL:    viper.GetString("pubmed.base_url"),
			APIKey:     viper.GetString("pubmed.api_key"),
			MaxResults: viper.GetInt("pubmed.max_results"),
		},
		Output: types.OutputConfig{
			File:   viper.GetString("output.file"),
			Format: viper.GetString("output.format"),
		},
		Log: types.LogConfig{
			Level:  viper.GetString("log.level"),
			Format: viper.GetString("log.format"),
		},
		Keywords: viper.GetStringSlice("affiliation.keywords"),
	}
	if cfg.PubMed.APIKey == "" {
		cfg.PubMed.APIKey = loadedSecrets.Get(secrets.NCBIAPIKey)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
