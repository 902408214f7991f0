// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import "strings"

// segmentCutset is the punctuation trimmed from the edges of an
// extracted organization name.
const segmentCutset = " \t.,;:()[]\"“”"

// organizationName extracts the organization-looking phrase around a
// keyword or suffix match. It takes the comma-delimited segment of the
// affiliation that contains the match, trims surrounding punctuation and
// leading determiners, and strips trailing corporate suffixes. This is a
// heuristic, not named-entity recognition; imperfect extractions are a
// documented limitation.
func (c *Classifier) organizationName(text, match string) string {
	segment := ""
	for _, s := range splitSegments(text) {
		if containsPhrase(strings.ToLower(s), match) {
			segment = s
			break
		}
	}
	if segment == "" {
		segment = text
	}

	name := strings.Trim(segment, segmentCutset)

	for _, det := range []string{"the ", "The ", "THE "} {
		if strings.HasPrefix(name, det) {
			name = name[len(det):]
			break
		}
	}

	// "Acme Therapeutics LLC" reads better as "Acme Therapeutics".
	for {
		words := strings.Fields(name)
		if len(words) < 2 {
			break
		}
		last := strings.Trim(strings.ToLower(words[len(words)-1]), segmentCutset)
		if !c.suffixSet[last] {
			break
		}
		name = strings.TrimRight(strings.TrimSuffix(name, words[len(words)-1]), segmentCutset)
	}

	return strings.Trim(name, segmentCutset)
}

// splitSegments splits affiliation text on commas and semicolons.
func splitSegments(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ';'
	})
}
