// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// ReferenceData holds the static reference lists the classifier matches
// against. Loaded once at startup and never mutated during a run.
type ReferenceData struct {
	// Companies are canonical pharmaceutical / biotech / life-sciences
	// company names. A match reports the list entry, not the raw text.
	Companies []string `yaml:"companies"`

	// Keywords are industry-indicating terms that mark an organization
	// as commercial even when its name is not on the company list.
	Keywords []string `yaml:"keywords"`

	// Suffixes are corporate legal-form suffixes, listed without
	// trailing punctuation ("inc" matches "Inc." and "Inc").
	Suffixes []string `yaml:"suffixes"`

	// AcademicMarkers are phrases that identify universities, hospitals,
	// and other academic institutions.
	AcademicMarkers []string `yaml:"academic_markers"`
}

// DefaultLists returns the built-in reference data.
func DefaultLists() ReferenceData {
	return ReferenceData{
		Companies: []string{
			"Pfizer", "Moderna", "Johnson & Johnson", "Merck KGaA", "Merck",
			"Abbott", "Roche", "Novartis", "GlaxoSmithKline", "GSK",
			"Sanofi", "Bristol Myers Squibb", "AstraZeneca", "Eli Lilly",
			"Gilead", "Amgen", "Biogen", "Regeneron", "Vertex", "Genentech",
			"Takeda", "Bayer", "Boehringer Ingelheim", "Celgene", "AbbVie",
			"Illumina", "Thermo Fisher", "Danaher", "Agilent",
			"Applied Biosystems", "Life Technologies", "Bio-Rad", "Qiagen",
			"Promega", "New England Biolabs", "Invitrogen", "Sigma-Aldrich",
			"Eppendorf", "Beckman Coulter", "Becton Dickinson", "Medtronic",
			"Stryker", "Boston Scientific", "Edwards Lifesciences",
			"Intuitive Surgical", "Zimmer Biomet", "Smith & Nephew",
		},
		Keywords: []string{
			"pharmaceuticals", "pharmaceutical", "pharma",
			"biopharmaceuticals", "biopharmaceutical", "biotechnology",
			"biotech", "therapeutics", "biosciences", "bioscience",
			"life sciences", "diagnostics", "drug development",
		},
		Suffixes: []string{
			"inc", "corp", "corporation", "company", "ltd", "limited",
			"llc", "gmbh", "ag", "plc", "sa", "bv", "kk",
		},
		AcademicMarkers: []string{
			"university", "college", "institute", "hospital", "academy",
			"school of", "department of", "faculty of", "center for",
			"centre for", "ministry of", "national laboratory", "clinic",
		},
	}
}

// LoadLists returns the built-in reference data, extended by the YAML
// overlay at path when path is non-empty. Overlay entries are appended;
// the built-in lists are never removed.
func LoadLists(path string) (ReferenceData, error) {
	data := DefaultLists()
	if path == "" {
		return data, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return data, fmt.Errorf("reading lists file: %w", err)
	}

	var overlay ReferenceData
	if err := yaml.Unmarshal(raw, &overlay); err != nil {
		return data, fmt.Errorf("parsing lists file %s: %w", path, err)
	}

	data.Companies = append(data.Companies, overlay.Companies...)
	data.Keywords = append(data.Keywords, overlay.Keywords...)
	data.Suffixes = append(data.Suffixes, overlay.Suffixes...)
	data.AcademicMarkers = append(data.AcademicMarkers, overlay.AcademicMarkers...)
	return data, nil
}
