package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/meshintel/pharma-papers/internal/analyze"
	"github.com/meshintel/pharma-papers/internal/archive"
	"github.com/meshintel/pharma-papers/internal/classify"
	"github.com/meshintel/pharma-papers/internal/eutils"
	"github.com/meshintel/pharma-papers/internal/pipeline"
	"github.com/meshintel/pharma-papers/internal/report"
	"github.com/meshintel/pharma-papers/internal/secrets"
	"github.com/meshintel/pharma-papers/pkg/types"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultUserAgent  = "pharma-papers/0.1"
	defaultMaxResults = 100
	defaultBatchDelay = 500 * time.Millisecond
	defaultOutputFile = "pubmed_results.csv"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [query]",
	Short: "Search PubMed and report papers with industry-affiliated authors",
	Long: `Fetch runs the full pipeline: search PubMed for the query, retrieve the
matching records in batches, classify every author affiliation, and write
a CSV report of the papers that have at least one pharmaceutical/biotech
industry author. The query uses PubMed's own search syntax and is passed
through unmodified.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringP("file", "f", defaultOutputFile, "output CSV filename")
	fetchCmd.Flags().Int("max-results", defaultMaxResults, "maximum number of search results")
	fetchCmd.Flags().Int("batch-size", eutils.MaxBatchSize, "PMIDs per efetch call (max 200)")
	fetchCmd.Flags().Duration("delay", defaultBatchDelay, "delay between efetch batches")
	fetchCmd.Flags().Duration("timeout", defaultTimeout, "HTTP request timeout")
	fetchCmd.Flags().BoolP("debug", "d", false, "enable debug output")
	fetchCmd.Flags().Bool("json", false, "print rows as JSON instead of a table")
	fetchCmd.Flags().String("api-key", "", "NCBI API key (default: .secrets/ncbi-api-key)")
	fetchCmd.Flags().String("email", "", "contact email sent to NCBI (default: .secrets/contact-email)")
	fetchCmd.Flags().String("lists", "", "YAML file extending the classifier reference lists")
	fetchCmd.Flags().String("archive-db", "", "SQLite database to archive this run into")
	fetchCmd.Flags().String("save-run", "", "write the query and rows to a YAML run file")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	query := args[0]
	cfg := fetchConfig(cmd)

	debug, _ := cmd.Flags().GetBool("debug")
	verbose := io.Discard
	if debug {
		verbose = os.Stderr
	}

	client := &http.Client{Timeout: cfg.Search.Timeout}
	eu := &eutils.Client{
		HTTP:         client,
		APIKey:       cfg.Search.APIKey,
		ContactEmail: cfg.Search.ContactEmail,
		UserAgent:    cfg.Search.UserAgent,
		Log:          verbose,
	}

	lists, err := classify.LoadLists(cfg.Classify.ListsFile)
	if err != nil {
		return err
	}

	pl := &pipeline.Pipeline{
		Searcher: eu,
		Fetcher:  eu,
		Analyzer: analyze.New(classify.New(lists)),
	}

	res, err := pl.Run(cmd.Context(), query, cfg.Search, cfg.Fetch, os.Stderr)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Found %d total papers\n", res.TotalArticles)
	fmt.Fprintf(os.Stderr, "Found %d papers with industry affiliations\n", len(res.Rows))

	if err := report.WriteCSVFile(res.Rows, cfg.Output.File); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Results written to %s\n", cfg.Output.File)

	if cfg.Output.JSON {
		if err := report.FormatJSON(res.Rows, os.Stdout); err != nil {
			return err
		}
	} else {
		report.FormatTable(res.Rows, os.Stdout)
	}

	if cfg.Output.SaveRun != "" {
		if err := pipeline.WriteRunFile(cfg.Output.SaveRun, query, cfg.Search, cfg.Fetch, res); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not save run file: %v\n", err)
		}
	}

	if cfg.Archive.DBPath != "" {
		if err := archiveRun(cmd, query, cfg, res); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not archive run: %v\n", err)
		}
	}

	return nil
}

// archiveRun stores the completed run in the SQLite archive.
func archiveRun(cmd *cobra.Command, query string, cfg types.PipelineConfig, res pipeline.Result) error {
	store, err := archive.Open(cfg.Archive.DBPath, cfg.Archive)
	if err != nil {
		return err
	}
	defer store.Close()

	runID, err := store.SaveRun(cmd.Context(), archive.Run{
		Query:          query,
		TotalArticles:  res.TotalArticles,
		SkippedBatches: res.SkippedBatches,
	}, res.Rows)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Archived as run %d in %s\n", runID, cfg.Archive.DBPath)
	return nil
}

// fetchConfig resolves the run configuration: flags win, then config file
// values, then the secrets directory for credentials.
func fetchConfig(cmd *cobra.Command) types.PipelineConfig {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	maxResults := intSetting(cmd, "max-results", "search.max_results")
	batchSize := intSetting(cmd, "batch-size", "fetch.batch_size")
	delay, _ := cmd.Flags().GetDuration("delay")
	if !cmd.Flags().Changed("delay") && viper.IsSet("fetch.batch_delay") {
		delay = viper.GetDuration("fetch.batch_delay")
	}

	apiKey, _ := cmd.Flags().GetString("api-key")
	if apiKey == "" {
		apiKey = viper.GetString("search.api_key")
	}
	apiKey = secrets.Get(loadedSecrets, "ncbi-api-key", apiKey)

	email, _ := cmd.Flags().GetString("email")
	if email == "" {
		email = viper.GetString("search.contact_email")
	}
	email = secrets.Get(loadedSecrets, "contact-email", email)

	file, _ := cmd.Flags().GetString("file")
	jsonOut, _ := cmd.Flags().GetBool("json")
	saveRun, _ := cmd.Flags().GetString("save-run")
	listsFile, _ := cmd.Flags().GetString("lists")
	if listsFile == "" {
		listsFile = viper.GetString("classify.lists_file")
	}
	archiveDB, _ := cmd.Flags().GetString("archive-db")
	if archiveDB == "" {
		archiveDB = viper.GetString("archive.db_path")
	}

	httpCfg := types.HTTPConfig{Timeout: timeout, UserAgent: defaultUserAgent}
	return types.PipelineConfig{
		Search: types.SearchConfig{
			HTTPConfig:   httpCfg,
			MaxResults:   maxResults,
			APIKey:       apiKey,
			ContactEmail: email,
		},
		Fetch: types.FetchConfig{
			HTTPConfig:   httpCfg,
			BatchSize:    batchSize,
			BatchDelay:   delay,
			APIKey:       apiKey,
			ContactEmail: email,
		},
		Classify: types.ClassifyConfig{ListsFile: listsFile},
		Archive:  types.ArchiveConfig{DBPath: archiveDB},
		Output: types.OutputConfig{
			File:    file,
			JSON:    jsonOut,
			SaveRun: saveRun,
		},
	}
}

// intSetting returns the flag value, unless the flag was left at its
// default and the config file sets the corresponding key.
func intSetting(cmd *cobra.Command, flag, viperKey string) int {
	v, _ := cmd.Flags().GetInt(flag)
	if !cmd.Flags().Changed(flag) && viper.IsSet(viperKey) {
		return viper.GetInt(viperKey)
	}
	return v
}
