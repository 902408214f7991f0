// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analyze applies affiliation classification to whole articles
// and derives the per-article report fields.
package analyze

import (
	"strings"

	"github.com/meshintel/pharma-papers/internal/classify"
	"github.com/meshintel/pharma-papers/pkg/types"
)

// Analyzer turns articles into report rows using a shared classifier.
type Analyzer struct {
	clf *classify.Classifier
}

// New returns an Analyzer backed by clf.
func New(clf *classify.Classifier) *Analyzer {
	return &Analyzer{clf: clf}
}

// Analyze classifies every author of the article and returns a report row
// when at least one author is industry-affiliated, nil otherwise. Authors
// without affiliation text are non-industry by definition. Author names
// and company names are deduplicated case-insensitively, insertion order
// preserved, and empty strings are never admitted.
func (a *Analyzer) Analyze(article types.Article) *types.ReportRow {
	row := types.ReportRow{
		PMID:               article.PMID,
		Title:              article.Title,
		PubDate:            article.PubDate,
		CorrespondingEmail: article.CorrespondingEmail,
	}

	qualified := false
	seenAuthors := make(map[string]bool)
	seenCompanies := make(map[string]bool)

	for _, author := range article.Authors {
		result := a.clf.Classify(author.Affiliation)
		if !result.IsIndustry {
			continue
		}
		qualified = true
		appendUnique(&row.NonAcademicAuthors, seenAuthors, author.Name)
		appendUnique(&row.CompanyAffiliations, seenCompanies, result.Company)
	}

	if !qualified {
		return nil
	}
	return &row
}

// appendUnique adds value to list unless it is empty or already present
// under case-insensitive comparison.
func appendUnique(list *[]string, seen map[string]bool, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	key := strings.ToLower(value)
	if seen[key] {
		return
	}
	seen[key] = true
	*list = append(*list, value)
}
