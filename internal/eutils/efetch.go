// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package eutils

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/meshintel/pharma-papers/pkg/types"
)

// MaxBatchSize is the largest identifier batch a single efetch call
// accepts. The orchestrator splits larger requests; FetchBatch rejects them.
const MaxBatchSize = 200

// PubMed efetch XML structures (PubmedArticleSet DTD, abridged to the
// fields the pipeline consumes).
type pubmedArticleSet struct {
	Articles []pubmedArticle `xml:"PubmedArticle"`
}

type pubmedArticle struct {
	Citation medlineCitation `xml:"MedlineCitation"`
}

type medlineCitation struct {
	PMID    string      `xml:"PMID"`
	Article articleElem `xml:"Article"`
}

type articleElem struct {
	Title        string       `xml:"ArticleTitle"`
	Journal      journalElem  `xml:"Journal"`
	Authors      []authorElem `xml:"AuthorList>Author"`
	ArticleDates []dateElem   `xml:"ArticleDate"`
}

type journalElem struct {
	PubDate dateElem `xml:"JournalIssue>PubDate"`
}

type dateElem struct {
	Year  string `xml:"Year"`
	Month string `xml:"Month"`
	Day   string `xml:"Day"`

	// MedlineDate holds free-text dates like "2023 Nov-Dec" on records
	// that lack structured Year/Month/Day.
	MedlineDate string `xml:"MedlineDate"`
}

type authorElem struct {
	LastName       string   `xml:"LastName"`
	ForeName       string   `xml:"ForeName"`
	CollectiveName string   `xml:"CollectiveName"`
	Affiliations   []string `xml:"AffiliationInfo>Affiliation"`
}

// emailPattern matches email-like tokens inside affiliation text.
var emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

// FetchBatch retrieves and parses full records for up to MaxBatchSize
// PMIDs in one efetch call. A record missing its PMID or title is skipped
// with a logged warning; the rest of the batch is unaffected.
func (c *Client) FetchBatch(ctx context.Context, pmids []string) ([]types.Article, error) {
	if len(pmids) == 0 {
		return nil, nil
	}
	if len(pmids) > MaxBatchSize {
		return nil, fmt.Errorf("batch of %d exceeds the %d-identifier efetch limit", len(pmids), MaxBatchSize)
	}

	params := c.baseParams()
	params.Set("db", "pubmed")
	params.Set("id", strings.Join(pmids, ","))
	params.Set("retmode", "xml")

	var set pubmedArticleSet
	if err := c.getXML(ctx, efetchBase, params, &set); err != nil {
		return nil, err
	}

	articles := make([]types.Article, 0, len(set.Articles))
	for _, raw := range set.Articles {
		article, err := buildArticle(raw)
		if err != nil {
			c.logf("warning: skipping record: %v", err)
			continue
		}
		articles = append(articles, article)
	}
	return articles, nil
}

// buildArticle converts one raw record into the pipeline representation.
func buildArticle(raw pubmedArticle) (types.Article, error) {
	pmid := strings.TrimSpace(raw.Citation.PMID)
	if pmid == "" {
		return types.Article{}, fmt.Errorf("record has no PMID")
	}
	title := strings.TrimSpace(raw.Citation.Article.Title)
	if title == "" {
		return types.Article{}, fmt.Errorf("record %s has no title", pmid)
	}

	article := types.Article{
		PMID:    pmid,
		Title:   title,
		PubDate: publicationDate(raw.Citation.Article),
	}

	for _, a := range raw.Citation.Article.Authors {
		author := types.Author{Name: authorName(a)}
		if author.Name == "" {
			continue
		}
		if len(a.Affiliations) > 0 {
			author.Affiliation = strings.TrimSpace(strings.Join(a.Affiliations, " "))
			author.Email = firstEmail(author.Affiliation)
		}
		article.Authors = append(article.Authors, author)
	}

	// First email in author order stands in for the corresponding author.
	// PubMed does not flag the corresponding author explicitly.
	for _, a := range article.Authors {
		if a.Email != "" {
			article.CorrespondingEmail = a.Email
			break
		}
	}

	return article, nil
}

// authorName returns "ForeName LastName", falling back to the last name
// alone or the collective name for group authorship.
func authorName(a authorElem) string {
	last := strings.TrimSpace(a.LastName)
	fore := strings.TrimSpace(a.ForeName)
	switch {
	case last != "" && fore != "":
		return fore + " " + last
	case last != "":
		return last
	default:
		return strings.TrimSpace(a.CollectiveName)
	}
}

// publicationDate assembles a best-effort date string: the journal issue
// PubDate first, then ArticleDate, then the free-text MedlineDate. Parts
// are joined with "-" at whatever granularity the record carries.
func publicationDate(a articleElem) string {
	if s := joinDate(a.Journal.PubDate); s != "" {
		return s
	}
	for _, d := range a.ArticleDates {
		if s := joinDate(d); s != "" {
			return s
		}
	}
	return strings.TrimSpace(a.Journal.PubDate.MedlineDate)
}

func joinDate(d dateElem) string {
	var parts []string
	for _, p := range []string{d.Year, d.Month, d.Day} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "-")
}

// firstEmail returns the first email-like token in text, with the trailing
// period PubMed affiliations often end in stripped off.
func firstEmail(text string) string {
	email := emailPattern.FindString(text)
	return strings.TrimRight(email, ".")
}
