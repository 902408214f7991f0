package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meshintel/pharma-papers/internal/classify"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [affiliation text]",
	Short: "Classify a single affiliation string",
	Long: `Classify runs one affiliation string through the same rules the fetch
pipeline applies to every author, printing the verdict and the matched
company name. Useful for checking why a paper did or did not qualify.`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().String("lists", "", "YAML file extending the classifier reference lists")

	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	listsFile, _ := cmd.Flags().GetString("lists")
	lists, err := classify.LoadLists(listsFile)
	if err != nil {
		return err
	}

	result := classify.New(lists).Classify(args[0])

	if !result.IsIndustry {
		fmt.Println("non-industry")
		return nil
	}
	fmt.Printf("industry (%s)\n", result.Reason)
	if result.Company != "" {
		fmt.Printf("company: %s\n", result.Company)
	}
	return nil
}
