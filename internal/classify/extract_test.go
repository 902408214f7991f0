package classify

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOrganizationName(t *testing.T) {
	c := testClassifier()

	tests := []struct {
		name  string
		text  string
		match string
		want  string
	}{
		{"strips trailing suffix", "Acme Therapeutics LLC, Cambridge, MA", "therapeutics", "Acme Therapeutics"},
		{"strips stacked suffixes", "Nimbus Biotech Ltd Inc", "biotech", "Nimbus Biotech"},
		{"drops leading determiner", "The Jackson Pharma Group, Bar Harbor", "pharma", "Jackson Pharma Group"},
		{"trims punctuation", " (Redwood Biosciences), Emeryville ", "biosciences", "Redwood Biosciences"},
		{"second segment", "Research Division, Ionis Pharmaceuticals, Carlsbad, CA", "pharmaceuticals", "Ionis Pharmaceuticals"},
		{"no matching segment falls back to full text", "Standalone Diagnostics", "diagnostics", "Standalone Diagnostics"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.organizationName(tt.text, tt.match); got != tt.want {
				t.Errorf("organizationName(%q, %q) = %q, want %q", tt.text, tt.match, got, tt.want)
			}
		})
	}
}

func TestLoadListsDefaultsOnly(t *testing.T) {
	data, err := LoadLists("")
	if err != nil {
		t.Fatalf("LoadLists(\"\") error: %v", err)
	}
	if len(data.Companies) == 0 || len(data.Keywords) == 0 || len(data.Suffixes) == 0 || len(data.AcademicMarkers) == 0 {
		t.Fatalf("built-in lists should be non-empty: %+v", data)
	}
}

func TestLoadListsOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lists.yaml")
	overlay := []byte("companies:\n  - Helixir Bio\nkeywords:\n  - genomics\n")
	if err := os.WriteFile(path, overlay, 0o644); err != nil {
		t.Fatal(err)
	}

	data, err := LoadLists(path)
	if err != nil {
		t.Fatalf("LoadLists error: %v", err)
	}

	c := New(data)
	got := c.Classify("Helixir Bio, Oakland, CA")
	if !got.IsIndustry || got.Company != "Helixir Bio" {
		t.Errorf("overlay company not matched: %+v", got)
	}
}

func TestLoadListsMissingFile(t *testing.T) {
	if _, err := LoadLists(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing lists file")
	}
}
