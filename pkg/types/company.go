// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// Company is one validated row of the company directory table. A Company is
// only constructed when every present field passes validation; rows that fail
// are reported as Issues instead.
//
// JSON keys match the directory table's header names with spaces replaced by
// underscores. That shape is load-bearing: downstream consumers re-read the
// persisted JSON with these exact keys.
type Company struct {
	// Company is the company name. Required.
	Company string `json:"Company" yaml:"Company"`

	// CompanyWebsite is the normalized absolute URL of the company site,
	// or empty when the source cell was absent.
	CompanyWebsite string `json:"Company_Website,omitempty" yaml:"Company_Website,omitempty"`

	// YCLink is the normalized URL of the company's Y Combinator page.
	YCLink string `json:"YC_Link,omitempty" yaml:"YC_Link,omitempty"`

	// ShortDescription is the one-line company description. Required.
	ShortDescription string `json:"Short_Description" yaml:"Short_Description"`

	// Tags are the comma-separated topic labels from the source cell,
	// trimmed, in source order.
	Tags []string `json:"Tags,omitempty" yaml:"Tags,omitempty"`

	// Location is the company's location, or empty when absent.
	Location string `json:"Location,omitempty" yaml:"Location,omitempty"`

	// FounderLink1..3 are normalized founder profile URLs. Each is
	// independently optional.
	FounderLink1 string `json:"Founder_Link_1,omitempty" yaml:"Founder_Link_1,omitempty"`
	FounderLink2 string `json:"Founder_Link_2,omitempty" yaml:"Founder_Link_2,omitempty"`
	FounderLink3 string `json:"Founder_Link_3,omitempty" yaml:"Founder_Link_3,omitempty"`
}

// IssueKind classifies an extraction diagnostic.
type IssueKind string

const (
	// IssueTableNotFound means no directory table header was found in the
	// document. Table-level: extraction yields no records.
	IssueTableNotFound IssueKind = "table_not_found"

	// IssueSeparatorMissing means the header was found but the line after it
	// is not a dash separator. Table-level: extraction yields no records.
	IssueSeparatorMissing IssueKind = "separator_missing"

	// IssueColumnCountMismatch means a row's cell count differs from the
	// header's. Row-level: the row is skipped, extraction continues.
	IssueColumnCountMismatch IssueKind = "column_count_mismatch"

	// IssueRowValidationFailed means a row had the right shape but a field
	// failed validation. Row-level: the row is skipped, extraction continues.
	IssueRowValidationFailed IssueKind = "row_validation_failed"
)

// Issue is a non-fatal diagnostic describing why a row, or the whole table,
// could not be parsed.
type Issue struct {
	// Kind classifies the problem.
	Kind IssueKind `json:"kind" yaml:"kind"`

	// Line is the 1-based line number within the document, when applicable.
	Line int `json:"line,omitempty" yaml:"line,omitempty"`

	// Raw is the offending line's text, when applicable.
	Raw string `json:"raw,omitempty" yaml:"raw,omitempty"`

	// Detail is a human-readable description of the problem.
	Detail string `json:"detail" yaml:"detail"`
}

// Fatal reports whether the issue is table-level, meaning the document
// produced no records at all.
func (i Issue) Fatal() bool {
	return i.Kind == IssueTableNotFound || i.Kind == IssueSeparatorMissing
}

// String renders the issue for logs and CLI output.
func (i Issue) String() string {
	if i.Line > 0 {
		return fmt.Sprintf("line %d: %s", i.Line, i.Detail)
	}
	return i.Detail
}
