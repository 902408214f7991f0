// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify decides whether an author affiliation string denotes a
// pharmaceutical / biotech industry organization rather than an academic one.
package classify

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/meshintel/pharma-papers/pkg/types"
)

// Classifier matches affiliation text against immutable reference lists.
// Safe for concurrent use; nothing is mutated after New.
type Classifier struct {
	companies []companyEntry
	keywords  []string
	suffixes  []string
	markers   []string
	suffixSet map[string]bool
}

type companyEntry struct {
	canonical string
	lower     string
}

// New builds a Classifier from reference data. Company names are matched
// longest-first so that "Merck KGaA" wins over "Merck".
func New(data ReferenceData) *Classifier {
	c := &Classifier{
		suffixSet: make(map[string]bool, len(data.Suffixes)),
	}
	for _, name := range data.Companies {
		c.companies = append(c.companies, companyEntry{
			canonical: name,
			lower:     strings.ToLower(name),
		})
	}
	sort.SliceStable(c.companies, func(i, j int) bool {
		return len(c.companies[i].lower) > len(c.companies[j].lower)
	})
	for _, kw := range data.Keywords {
		c.keywords = append(c.keywords, strings.ToLower(kw))
	}
	for _, sfx := range data.Suffixes {
		sfx = strings.ToLower(sfx)
		c.suffixes = append(c.suffixes, sfx)
		c.suffixSet[sfx] = true
	}
	for _, m := range data.AcademicMarkers {
		c.markers = append(c.markers, strings.ToLower(m))
	}
	return c
}

// Classify decides industry vs. academic for one affiliation string.
// Rules fire in priority order: academic exclusion, known company name,
// industry keyword, corporate suffix. Total over all inputs; empty or
// whitespace-only text is non-industry.
func (c *Classifier) Classify(text string) types.Classification {
	none := types.Classification{Reason: types.ReasonNone}

	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return none
	}

	company := c.knownCompany(lower)

	// Academic affiliations that merely mention a company ("studying
	// Pfizer's new drug") must not count. Only an exact company-name hit
	// overrides the exclusion; possessives and hyphenated mentions do
	// not qualify as exact.
	if company == "" && c.isAcademic(lower) {
		return none
	}

	if company != "" {
		return types.Classification{
			IsIndustry: true,
			Company:    company,
			Reason:     types.ReasonKnownCompany,
		}
	}

	if kw := firstPhraseMatch(lower, c.keywords); kw != "" {
		return types.Classification{
			IsIndustry: true,
			Company:    c.organizationName(text, kw),
			Reason:     types.ReasonIndustryKeyword,
		}
	}

	if sfx := firstPhraseMatch(lower, c.suffixes); sfx != "" {
		return types.Classification{
			IsIndustry: true,
			Company:    c.organizationName(text, sfx),
			Reason:     types.ReasonCorporateSuffix,
		}
	}

	return none
}

// knownCompany returns the canonical name of the first (longest) company
// whose name appears in the lowercased text, or "".
func (c *Classifier) knownCompany(lower string) string {
	for _, e := range c.companies {
		if containsPhrase(lower, e.lower) {
			return e.canonical
		}
	}
	return ""
}

func (c *Classifier) isAcademic(lower string) bool {
	return firstPhraseMatch(lower, c.markers) != ""
}

// firstPhraseMatch returns the first phrase from list found in text with
// word boundaries on both sides, or "".
func firstPhraseMatch(text string, list []string) string {
	for _, phrase := range list {
		if containsPhrase(text, phrase) {
			return phrase
		}
	}
	return ""
}

// containsPhrase reports whether phrase occurs in text delimited by
// non-word runes. Apostrophes and hyphens count as word runes, so
// "pfizer" does not match inside "pfizer's" or "pfizer-funded".
func containsPhrase(text, phrase string) bool {
	if phrase == "" {
		return false
	}
	for start := 0; start <= len(text)-len(phrase); {
		idx := strings.Index(text[start:], phrase)
		if idx < 0 {
			return false
		}
		idx += start

		before, _ := utf8.DecodeLastRuneInString(text[:idx])
		after, _ := utf8.DecodeRuneInString(text[idx+len(phrase):])
		if !isWordRune(before) && !isWordRune(after) {
			return true
		}
		start = idx + 1
	}
	return false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) ||
		r == '\'' || r == '’' || r == '-'
}
