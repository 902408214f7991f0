// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders report rows as CSV, a stdout table, or JSON.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/meshintel/pharma-papers/pkg/types"
)

// Header is the fixed CSV column order.
var Header = []string{
	"PubmedID",
	"Title",
	"Publication Date",
	"Non-academic Author(s)",
	"Company Affiliation(s)",
	"Corresponding Author Email",
}

// multiValueSep joins the multi-value author and company cells.
const multiValueSep = "; "

// WriteCSV writes the header and one record per row to w.
func WriteCSV(rows []types.ReportRow, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.PMID,
			row.Title,
			row.PubDate,
			strings.Join(row.NonAcademicAuthors, multiValueSep),
			strings.Join(row.CompanyAffiliations, multiValueSep),
			row.CorrespondingEmail,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing CSV row for %s: %w", row.PMID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the report to path, creating or truncating it.
func WriteCSVFile(rows []types.ReportRow, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteCSV(rows, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// FormatTable writes rows as a human-readable table to w.
func FormatTable(rows []types.ReportRow, w io.Writer) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No qualifying papers.")
		return
	}

	fmt.Fprintf(w, "%-10s  %-50s  %-12s  %-25s  %s\n",
		"PubmedID", "Title", "Date", "Companies", "Email")
	fmt.Fprintln(w, strings.Repeat("-", 120))

	for _, row := range rows {
		fmt.Fprintf(w, "%-10s  %-50s  %-12s  %-25s  %s\n",
			row.PMID,
			truncate(row.Title, 50),
			truncate(row.PubDate, 12),
			truncate(strings.Join(row.CompanyAffiliations, multiValueSep), 25),
			row.CorrespondingEmail)
	}

	fmt.Fprintf(w, "\n%d qualifying papers\n", len(rows))
}

// FormatJSON writes rows as indented JSON to w.
func FormatJSON(rows []types.ReportRow, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
