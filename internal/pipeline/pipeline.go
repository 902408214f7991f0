// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline drives a fetch run: PubMed search, batched record
// retrieval, per-article analysis, and report-row collection.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/meshintel/pharma-papers/internal/analyze"
	"github.com/meshintel/pharma-papers/internal/eutils"
	"github.com/meshintel/pharma-papers/pkg/types"
)

// Searcher returns the PMIDs matching a PubMed query.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]string, error)
}

// Fetcher retrieves parsed article records for one batch of PMIDs.
type Fetcher interface {
	FetchBatch(ctx context.Context, pmids []string) ([]types.Article, error)
}

// Result summarizes a completed run.
type Result struct {
	// Rows are the qualifying articles in fetch order.
	Rows []types.ReportRow

	// TotalArticles counts every article fetched, qualifying or not.
	TotalArticles int

	// SkippedBatches counts batches dropped after a fetch failure.
	SkippedBatches int
}

// Pipeline composes the run stages. All fields must be set.
type Pipeline struct {
	Searcher Searcher
	Fetcher  Fetcher
	Analyzer *analyze.Analyzer
}

// Run executes the pipeline for query. Batches are fetched strictly one
// at a time with cfg.BatchDelay between them; a failed batch is logged
// and skipped so one bad batch never loses the rest of the run. Only a
// search failure is returned as an error.
func (p *Pipeline) Run(ctx context.Context, query string, search types.SearchConfig, cfg types.FetchConfig, w io.Writer) (Result, error) {
	var res Result

	pmids, err := p.Searcher.Search(ctx, query, search.MaxResults)
	if err != nil {
		return res, fmt.Errorf("searching PubMed: %w", err)
	}
	if len(pmids) == 0 {
		fmt.Fprintln(w, "No papers found for the given query.")
		return res, nil
	}

	batches := splitBatches(pmids, cfg.BatchSize)
	for i, batch := range batches {
		if i > 0 && cfg.BatchDelay > 0 {
			time.Sleep(cfg.BatchDelay)
		}

		articles, err := p.Fetcher.FetchBatch(ctx, batch)
		if err != nil {
			fmt.Fprintf(w, "warning: batch %d/%d failed, skipping %d records: %v\n",
				i+1, len(batches), len(batch), err)
			res.SkippedBatches++
			continue
		}

		res.TotalArticles += len(articles)
		for _, article := range articles {
			if row := p.Analyzer.Analyze(article); row != nil {
				res.Rows = append(res.Rows, *row)
			}
		}
	}

	fmt.Fprintf(w, "\nRun summary: %d articles fetched, %d with industry affiliations, %d/%d batches skipped\n",
		res.TotalArticles, len(res.Rows), res.SkippedBatches, len(batches))
	return res, nil
}

// splitBatches partitions pmids into slices of at most size. Sizes
// outside (0, eutils.MaxBatchSize] fall back to the efetch limit.
func splitBatches(pmids []string, size int) [][]string {
	if size <= 0 || size > eutils.MaxBatchSize {
		size = eutils.MaxBatchSize
	}
	var batches [][]string
	for start := 0; start < len(pmids); start += size {
		end := start + size
		if end > len(pmids) {
			end = len(pmids)
		}
		batches = append(batches, pmids[start:end])
	}
	return batches
}
