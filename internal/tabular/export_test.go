// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tabular

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/pdiddy/companydir/pkg/types"
)

func TestEncodeJSON_RoundTrip(t *testing.T) {
	companies := []types.Company{
		{
			Company:          "Acme",
			CompanyWebsite:   "https://acme.com/",
			YCLink:           "https://ycombinator.com/acme",
			ShortDescription: "Widgets",
			Tags:             []string{"b2b", "saas"},
			Location:         "SF",
			FounderLink1:     "https://x.com/a",
		},
		{
			Company:          "Globex",
			ShortDescription: "Conglomerate",
		},
	}

	var buf bytes.Buffer
	if err := EncodeJSON(&buf, companies); err != nil {
		t.Fatalf("encode: %v", err)
	}

	var back []types.Company
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("re-parse: %v", err)
	}
	if !reflect.DeepEqual(back, companies) {
		t.Errorf("round trip changed data:\n got %+v\nwant %+v", back, companies)
	}
}

func TestEncodeJSON_KeysAndAbsence(t *testing.T) {
	var buf bytes.Buffer
	err := EncodeJSON(&buf, []types.Company{{Company: "Acme", ShortDescription: "Widgets"}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out := buf.String()

	for _, key := range []string{`"Company"`, `"Short_Description"`} {
		if !strings.Contains(out, key) {
			t.Errorf("output missing key %s:\n%s", key, out)
		}
	}
	// Absent optional fields are omitted, not serialized as empty strings.
	for _, key := range []string{`"Company_Website"`, `"Tags"`, `"Location"`, `"Founder_Link_1"`} {
		if strings.Contains(out, key) {
			t.Errorf("absent field %s should be omitted:\n%s", key, out)
		}
	}
	if !strings.Contains(out, "  \"Company\"") {
		t.Error("output should use 2-space indentation")
	}
}

func TestEncodeJSON_NilIsEmptyList(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeJSON(&buf, nil); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "[]" {
		t.Errorf("nil slice encoded as %q, want []", got)
	}
}

func TestReport(t *testing.T) {
	issues := []types.Issue{
		{Kind: types.IssueColumnCountMismatch, Line: 7, Detail: "column count mismatch: expected 9 values, got 11"},
		{Kind: types.IssueTableNotFound, Detail: "no table header found"},
	}

	var buf bytes.Buffer
	Report(&buf, issues)

	out := buf.String()
	if !strings.Contains(out, "column_count_mismatch: line 7:") {
		t.Errorf("row issue not rendered with line number:\n%s", out)
	}
	if !strings.Contains(out, "table_not_found: no table header found") {
		t.Errorf("table issue not rendered:\n%s", out)
	}
}

func TestExtractAll(t *testing.T) {
	tmpDir := t.TempDir()
	mdDir := filepath.Join(tmpDir, "markdown")
	outDir := filepath.Join(tmpDir, "extracted")
	if err := os.MkdirAll(mdDir, 0o755); err != nil {
		t.Fatal(err)
	}

	good := tableDoc(testRowAcme)
	empty := "# Nothing tabular here\n"

	if err := os.WriteFile(filepath.Join(mdDir, "w24.md"), []byte(good), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(mdDir, "notes.md"), []byte(empty), 0o644); err != nil {
		t.Fatal(err)
	}
	// A non-Markdown file is ignored outright.
	if err := os.WriteFile(filepath.Join(mdDir, "readme.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	var log bytes.Buffer
	cfg := types.ExtractionConfig{DocumentsDir: tmpDir, OutputDir: outDir}
	summary, err := ExtractAll(cfg, &log)
	if err != nil {
		t.Fatalf("ExtractAll: %v", err)
	}

	if summary.Extracted != 1 {
		t.Errorf("extracted = %d, want 1", summary.Extracted)
	}
	if summary.Empty != 1 {
		t.Errorf("empty = %d, want 1", summary.Empty)
	}
	if summary.Failed != 0 {
		t.Errorf("failed = %d, want 0", summary.Failed)
	}
	if summary.Total() != 2 {
		t.Errorf("total = %d, want 2", summary.Total())
	}
	if summary.HasFailures() {
		t.Error("HasFailures should be false")
	}

	data, err := os.ReadFile(filepath.Join(outDir, "w24-companies.json"))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	var companies []types.Company
	if err := json.Unmarshal(data, &companies); err != nil {
		t.Fatalf("parsing output: %v", err)
	}
	if len(companies) != 1 || companies[0].Company != "Acme" {
		t.Errorf("unexpected output records: %+v", companies)
	}

	out := log.String()
	if !strings.Contains(out, "extracted w24 (1 companies)") {
		t.Errorf("log missing extraction line:\n%s", out)
	}
	if !strings.Contains(out, "table_not_found") {
		t.Errorf("log missing diagnostic for empty document:\n%s", out)
	}
}
