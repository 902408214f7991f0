// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pharma-papers/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the PubMed search stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults caps the number of PMIDs returned (default 100).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// APIKey is an optional NCBI API key. Without one NCBI allows
	// 3 requests per second; with one, 10.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// ContactEmail is sent with every request so NCBI can reach the
	// operator about misbehaving clients.
	ContactEmail string `json:"contact_email,omitempty" yaml:"contact_email,omitempty"`
}

// FetchConfig holds settings for the record-fetch stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// BatchSize is the number of PMIDs per efetch call. NCBI caps a
	// single call at 200; values above that are clamped.
	BatchSize int `json:"batch_size" yaml:"batch_size"`

	// BatchDelay is the pause between consecutive efetch calls
	// (default 500ms), keeping the run inside NCBI's rate limit.
	BatchDelay time.Duration `json:"batch_delay" yaml:"batch_delay"`

	APIKey       string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	ContactEmail string `json:"contact_email,omitempty" yaml:"contact_email,omitempty"`
}

// ClassifyConfig holds settings for the affiliation classifier.
type ClassifyConfig struct {
	// ListsFile is an optional YAML file whose entries extend the
	// built-in company, keyword, suffix, and academic-marker lists.
	ListsFile string `json:"lists_file,omitempty" yaml:"lists_file,omitempty"`
}

// ArchiveConfig holds settings for the SQLite run archive.
type ArchiveConfig struct {
	// DBPath is the archive database path. Empty disables archiving.
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`

	// MaxResults is the default maximum number of rows returned by
	// archive queries (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// OutputConfig holds settings for report output.
type OutputConfig struct {
	// File is the CSV output path (default "pubmed_results.csv").
	File string `json:"file" yaml:"file"`

	// JSON switches the stdout preview from a table to JSON rows.
	JSON bool `json:"json" yaml:"json"`

	// SaveRun, when set, writes the query, configuration, and rows to a
	// YAML run file for later inspection.
	SaveRun string `json:"save_run,omitempty" yaml:"save_run,omitempty"`
}

// PipelineConfig groups all stage configurations for a fetch run.
type PipelineConfig struct {
	Search   SearchConfig   `json:"search" yaml:"search"`
	Fetch    FetchConfig    `json:"fetch" yaml:"fetch"`
	Classify ClassifyConfig `json:"classify" yaml:"classify"`
	Archive  ArchiveConfig  `json:"archive" yaml:"archive"`
	Output   OutputConfig   `json:"output" yaml:"output"`
}
