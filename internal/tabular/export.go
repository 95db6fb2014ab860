// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tabular

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/companydir/pkg/types"
)

// EncodeJSON writes companies to w as a JSON list with 2-space indentation.
// A nil slice encodes as an empty list so the persisted artifact always
// round-trips to the same shape.
func EncodeJSON(w io.Writer, companies []types.Company) error {
	if companies == nil {
		companies = []types.Company{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(companies)
}

// WriteJSON persists companies to path in the EncodeJSON format.
func WriteJSON(path string, companies []types.Company) error {
	var buf bytes.Buffer
	if err := EncodeJSON(&buf, companies); err != nil {
		return fmt.Errorf("encoding companies: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Report writes each issue to w, one per line. The extractor itself never
// prints; callers pick the sink.
func Report(w io.Writer, issues []types.Issue) {
	for _, issue := range issues {
		fmt.Fprintf(w, "%s: %s\n", issue.Kind, issue)
	}
}

// BatchSummary holds counts from a batch extraction run.
type BatchSummary struct {
	Extracted int
	Empty     int
	Failed    int
}

// Total returns the number of Markdown files processed.
func (s BatchSummary) Total() int {
	return s.Extracted + s.Empty + s.Failed
}

// HasFailures reports whether any files failed outright (read or write
// errors, as opposed to documents that simply yielded no rows).
func (s BatchSummary) HasFailures() bool {
	return s.Failed > 0
}

// ExtractAll runs the extractor over every .md file under
// cfg.DocumentsDir/markdown/, writing a <name>-companies.json file to
// cfg.OutputDir for each document that yields rows. Per-file status and
// diagnostics go to w.
func ExtractAll(cfg types.ExtractionConfig, w io.Writer) (BatchSummary, error) {
	mdDir := filepath.Join(cfg.DocumentsDir, "markdown")
	outDir := cfg.OutputDir

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return BatchSummary{}, fmt.Errorf("creating output directory: %w", err)
	}

	entries, err := os.ReadDir(mdDir)
	if err != nil {
		return BatchSummary{}, fmt.Errorf("reading markdown directory %s: %w", mdDir, err)
	}

	var summary BatchSummary

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".md")
		data, err := os.ReadFile(filepath.Join(mdDir, entry.Name()))
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}

		companies, issues := Extract(string(data))
		Report(w, issues)

		if len(companies) == 0 {
			fmt.Fprintf(w, "no rows %s\n", name)
			summary.Empty++
			continue
		}

		outPath := filepath.Join(outDir, name+"-companies.json")
		if err := WriteJSON(outPath, companies); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}

		fmt.Fprintf(w, "extracted %s (%d companies)\n", name, len(companies))
		summary.Extracted++
	}

	fmt.Fprintf(w, "\nextracted: %d, empty: %d, failed: %d\n",
		summary.Extracted, summary.Empty, summary.Failed)

	return summary, nil
}
