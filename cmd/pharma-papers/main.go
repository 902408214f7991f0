// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pharma-papers CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/meshintel/pharma-papers/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the pharma-papers CLI.
var rootCmd = &cobra.Command{
	Use:   "pharma-papers",
	Short: "Find PubMed papers with pharmaceutical/biotech industry authors",
	Long: `pharma-papers searches PubMed, classifies each article's author affiliations
to detect pharmaceutical and biotech industry involvement, and writes a CSV
report of the qualifying papers.

The main workflow is the fetch subcommand. classify checks a single
affiliation string against the same rules, and archive queries past runs
stored in a SQLite database.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pharma-papers.yaml or ~/.config/pharma-papers/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pharma-papers")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pharma-papers"))
		}
	}

	viper.SetEnvPrefix("PHARMA_PAPERS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
