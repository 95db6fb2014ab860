// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tabular locates the company directory pipe-table inside a Markdown
// document and decodes its rows into validated Company records.
//
// Extraction never fails the whole batch on a bad row: each row either becomes
// a record or an Issue, and the caller receives both. Only two conditions are
// table-level: no recognizable header, and a missing separator line.
package tabular

import (
	"fmt"
	"strings"

	"github.com/pdiddy/companydir/pkg/types"
)

const (
	// headerMarker identifies the directory table: the trimmed header line
	// must begin with this exact byte sequence. Upstream table producers
	// depend on it, so it must not change.
	headerMarker = "| Company |"

	// separatorMarker is the prefix of the dash row under the header.
	separatorMarker = "| ---"
)

// Extract scans markdown for the directory table and decodes its rows.
// It returns the validated records and one Issue per row (or table) that
// could not be parsed. Extract is a pure function of its input and is safe
// for concurrent use.
func Extract(markdown string) ([]types.Company, []types.Issue) {
	lines := strings.Split(strings.TrimSpace(markdown), "\n")

	// Find the header, skipping titles like "## W24" above the table.
	// Only the first matching header is used; any later table is ignored.
	headerIdx := -1
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), headerMarker) {
			headerIdx = i
			break
		}
	}
	if headerIdx == -1 {
		return nil, []types.Issue{{
			Kind:   types.IssueTableNotFound,
			Detail: fmt.Sprintf("no table header starting with %q found", headerMarker),
		}}
	}

	// The header row defines the column-to-field mapping for this document.
	schema := columnSchema(lines[headerIdx])

	if headerIdx+1 >= len(lines) || !strings.HasPrefix(strings.TrimSpace(lines[headerIdx+1]), separatorMarker) {
		return nil, []types.Issue{{
			Kind:   types.IssueSeparatorMissing,
			Line:   headerIdx + 2,
			Detail: "table separator line missing or malformed after header",
		}}
	}

	var (
		companies []types.Company
		issues    []types.Issue
	)

	for i := headerIdx + 2; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])

		// Tolerate blank lines and trailing prose after the table.
		if !strings.HasPrefix(trimmed, "|") || !strings.HasSuffix(trimmed, "|") {
			continue
		}

		values := splitRow(trimmed)
		if len(values) != len(schema) {
			issues = append(issues, types.Issue{
				Kind:   types.IssueColumnCountMismatch,
				Line:   i + 1,
				Raw:    trimmed,
				Detail: fmt.Sprintf("column count mismatch: expected %d values, got %d", len(schema), len(values)),
			})
			continue
		}

		company, err := buildCompany(schema, values)
		if err != nil {
			issues = append(issues, types.Issue{
				Kind:   types.IssueRowValidationFailed,
				Line:   i + 1,
				Raw:    trimmed,
				Detail: err.Error(),
			})
			continue
		}
		companies = append(companies, company)
	}

	return companies, issues
}

// columnSchema derives canonical field names from the header line: each cell
// is trimmed and interior spaces become underscores ("Company Website" ->
// "Company_Website").
func columnSchema(headerLine string) []string {
	cells := splitRow(strings.TrimSpace(headerLine))
	names := make([]string, len(cells))
	for i, c := range cells {
		names[i] = strings.ReplaceAll(c, " ", "_")
	}
	return names
}

// splitRow splits a trimmed table line on "|", drops the empty boundary
// segments produced by the leading and trailing delimiters, and trims each
// remaining cell.
func splitRow(trimmed string) []string {
	parts := strings.Split(trimmed, "|")
	if len(parts) < 2 {
		return nil
	}
	parts = parts[1 : len(parts)-1]
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells
}
