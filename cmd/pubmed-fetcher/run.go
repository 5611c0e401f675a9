// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pubmed-fetcher/internal/affiliation"
	"github.com/pdiddy/pubmed-fetcher/internal/logging"
	"github.com/pdiddy/pubmed-fetcher/internal/report"
	"github.com/pdiddy/pubmed-fetcher/internal/search"
	"github.com/pdiddy/pubmed-fetcher/internal/sink"
)

var runCmd = &cobra.Command{
	Use:   "run <query>",
	Short: "Search PubMed and report papers with non-academic authors",
	Long: `Run searches PubMed for the query, fetches summaries for up to
--max-results papers, and reports each paper with the authors whose
affiliation matches a company keyword (pharma, biotech, company, inc, ltd,
corporation).

Without --file the report is printed as a table. With --file it is written
as CSV unless --format or the file extension selects json, yaml, or sqlite.
Multiple arguments are joined into one query.`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runRun,
}

func init() {
	runCmd.Flags().StringP("file", "f", "", "write the report to this file instead of stdout")
	runCmd.Flags().String("format", "", "file format: csv, json, yaml, or sqlite (default: from extension, else csv)")
	runCmd.Flags().BoolP("debug", "d", false, "log progress and upstream responses to stderr")
	runCmd.Flags().Int("max-results", 0, "maximum number of papers to fetch (default 100)")
	runCmd.Flags().String("api-key", "", "NCBI API key (default: .secrets/ncbi-api-key)")
	runCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	runCmd.Flags().String("base-url", "", "E-utilities base URL")

	bindFlag("output.file", "file")
	bindFlag("output.format", "format")
	bindFlag("pubmed.max_results", "max-results")
	bindFlag("pubmed.api_key", "api-key")
	bindFlag("pubmed.timeout", "timeout")
	bindFlag("pubmed.base_url", "base-url")

	rootCmd.AddCommand(runCmd)
}

// bindFlag ties a run flag to a viper key so that an explicit flag wins
// over environment and config file values.
func bindFlag(key, flag string) {
	if err := viper.BindPFlag(key, runCmd.Flags().Lookup(flag)); err != nil {
		panic(fmt.Sprintf("binding flag %s: %v", flag, err))
	}
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := fetcherConfig()
	if err != nil {
		return err
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Log.Level = "debug"
	}
	logger := logging.New(cfg.Log, cmd.ErrOrStderr())
	if len(loadedSecrets) > 0 {
		logger.Debug().Strs("keys", loadedSecrets.Keys()).Msg("loaded secrets")
	}

	format, err := sink.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	client := search.New(cfg.PubMed, nil, logger)
	builder := &report.Builder{
		Searcher:   client,
		Summarizer: client,
		Classifier: affiliation.New(cfg.Keywords...),
		MaxResults: cfg.PubMed.MaxResults,
		Logger:     logger,
	}

	rows, err := builder.Build(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}

	dest := sink.Destination{Path: cfg.Output.File, Format: format}
	if err := sink.Emit(rows, dest, cmd.OutOrStdout()); err != nil {
		return err
	}
	if dest.Path != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Results saved to %s\n", dest.Path)
	}
	return nil
}
