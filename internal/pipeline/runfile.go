// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/meshintel/pharma-papers/pkg/types"
)

// RunFile is the on-disk representation of a completed fetch run. The
// operator can save a run to a file and inspect or re-report it later
// without re-querying PubMed.
type RunFile struct {
	Query   string            `yaml:"query"`
	Config  RunFileConfig     `yaml:"config"`
	Rows    []types.ReportRow `yaml:"rows"`
	Summary RunSummary        `yaml:"summary"`
}

// RunFileConfig stores the settings that produced the rows.
type RunFileConfig struct {
	MaxResults int           `yaml:"max_results"`
	BatchSize  int           `yaml:"batch_size"`
	BatchDelay time.Duration `yaml:"batch_delay"`
}

// RunSummary stores run statistics and a timestamp.
type RunSummary struct {
	TotalArticles  int       `yaml:"total_articles"`
	Qualifying     int       `yaml:"qualifying"`
	SkippedBatches int       `yaml:"skipped_batches"`
	Timestamp      time.Time `yaml:"timestamp"`
}

// WriteRunFile saves the query, configuration, and result rows to a YAML file.
func WriteRunFile(path, query string, search types.SearchConfig, fetch types.FetchConfig, res Result) error {
	rf := RunFile{
		Query: query,
		Config: RunFileConfig{
			MaxResults: search.MaxResults,
			BatchSize:  fetch.BatchSize,
			BatchDelay: fetch.BatchDelay,
		},
		Rows: res.Rows,
		Summary: RunSummary{
			TotalArticles:  res.TotalArticles,
			Qualifying:     len(res.Rows),
			SkippedBatches: res.SkippedBatches,
			Timestamp:      time.Now(),
		},
	}

	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling run file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadRunFile loads a previously saved run file from disk.
func ReadRunFile(path string) (*RunFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run file: %w", err)
	}
	var rf RunFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing run file %s: %w", path, err)
	}
	return &rf, nil
}
