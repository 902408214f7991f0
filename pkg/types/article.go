// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the pharma-papers pipeline.
package types

// MatchReason identifies which classification rule decided that an
// affiliation denotes an industry organization.
type MatchReason string

const (
	ReasonKnownCompany    MatchReason = "known_company"
	ReasonIndustryKeyword MatchReason = "industry_keyword"
	ReasonCorporateSuffix MatchReason = "corporate_suffix"
	ReasonNone            MatchReason = "none"
)

// Classification is the outcome of classifying a single affiliation string.
// It is produced per author and never persisted.
type Classification struct {
	// IsIndustry reports whether the affiliation denotes a
	// pharmaceutical, biotech, or other non-academic organization.
	IsIndustry bool

	// Company is the matched company name: the canonical list entry for
	// a known-company match, or a best-effort extraction from the text
	// for keyword and suffix matches. Empty when IsIndustry is false.
	Company string

	// Reason identifies the rule that matched.
	Reason MatchReason
}

// Author is one entry in an article's author list. Authors have no
// identity beyond their position in the list.
type Author struct {
	// Name is "ForeName LastName", or the collective name for group
	// authorship.
	Name string `json:"name" yaml:"name"`

	// Affiliation is the raw, unparsed affiliation text. Empty when the
	// record carries none.
	Affiliation string `json:"affiliation,omitempty" yaml:"affiliation,omitempty"`

	// Email is an address found in the author's affiliation text, if any.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// Article is the intermediate representation of one PubMed record.
// Built once by the record fetcher, consumed once by the analyzer.
type Article struct {
	// PMID is the PubMed identifier.
	PMID string `json:"pmid" yaml:"pmid"`

	// Title is the article title.
	Title string `json:"title" yaml:"title"`

	// PubDate is the publication date at whatever granularity the record
	// provides: "2024", "2024-Mar", or "2024-Mar-15".
	PubDate string `json:"pub_date" yaml:"pub_date"`

	// Authors lists the article authors in record order.
	Authors []Author `json:"authors" yaml:"authors"`

	// CorrespondingEmail is the first email address found scanning the
	// author affiliations in order, or empty.
	CorrespondingEmail string `json:"corresponding_email,omitempty" yaml:"corresponding_email,omitempty"`
}

// ReportRow is one line of the output report: an article with at least
// one industry-affiliated author, plus the aggregate fields derived from
// per-author classification.
type ReportRow struct {
	PMID    string `json:"pubmed_id" yaml:"pubmed_id"`
	Title   string `json:"title" yaml:"title"`
	PubDate string `json:"publication_date" yaml:"publication_date"`

	// NonAcademicAuthors lists the names of industry-affiliated authors,
	// deduplicated case-insensitively, insertion order preserved.
	NonAcademicAuthors []string `json:"non_academic_authors" yaml:"non_academic_authors"`

	// CompanyAffiliations lists the matched company names under the same
	// dedup rule.
	CompanyAffiliations []string `json:"company_affiliations" yaml:"company_affiliations"`

	CorrespondingEmail string `json:"corresponding_email,omitempty" yaml:"corresponding_email,omitempty"`
}
