package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/meshintel/pharma-papers/internal/archive"
	"github.com/meshintel/pharma-papers/internal/report"
	"github.com/meshintel/pharma-papers/pkg/types"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Query past fetch runs stored in the SQLite archive",
	Long: `Archive lists the runs recorded with fetch --archive-db, newest first.
With --run it prints the report rows of one run in the same table or JSON
format the fetch command uses.`,
	RunE: runArchive,
}

func init() {
	archiveCmd.Flags().String("db", "", "archive database path")
	archiveCmd.Flags().Int64("run", 0, "show the rows of this run ID")
	archiveCmd.Flags().Int("max-results", 20, "maximum number of runs to list")
	archiveCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(archiveCmd)
}

func runArchive(cmd *cobra.Command, args []string) error {
	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		dbPath = viper.GetString("archive.db_path")
	}
	if dbPath == "" {
		return fmt.Errorf("no archive database: pass --db or set archive.db_path in the config file")
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")
	jsonOut, _ := cmd.Flags().GetBool("json")

	store, err := archive.Open(dbPath, types.ArchiveConfig{MaxResults: maxResults})
	if err != nil {
		return err
	}
	defer store.Close()

	runID, _ := cmd.Flags().GetInt64("run")
	if runID > 0 {
		rows, err := store.RowsForRun(cmd.Context(), runID)
		if err != nil {
			return err
		}
		if jsonOut {
			return report.FormatJSON(rows, os.Stdout)
		}
		report.FormatTable(rows, os.Stdout)
		return nil
	}

	runs, err := store.Runs(cmd.Context())
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No archived runs.")
		return nil
	}

	fmt.Printf("%-5s  %-40s  %-20s  %-8s  %-10s  %s\n",
		"ID", "Query", "Ran at", "Fetched", "Qualifying", "Skipped batches")
	for _, r := range runs {
		fmt.Printf("%-5d  %-40s  %-20s  %-8d  %-10d  %d\n",
			r.ID, truncateQuery(r.Query), r.RanAt.Format("2006-01-02 15:04:05"),
			r.TotalArticles, r.Qualifying, r.SkippedBatches)
	}
	return nil
}

func truncateQuery(q string) string {
	if len(q) <= 40 {
		return q
	}
	return q[:37] + "..."
}
