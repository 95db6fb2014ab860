// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert implements document-to-Markdown conversion with pluggable
// backends: the markitdown container image for arbitrary document formats,
// and a local HTML converter that needs no container runtime.
package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/companydir/pkg/types"
)

const (
	// markdownDir is the subdirectory under the documents base for Markdown output.
	markdownDir = "markdown"
	// rawDir is the subdirectory under the documents base for source documents.
	rawDir = "raw"
)

// Converter transforms a document file into Markdown text.
type Converter interface {
	// Name identifies the backend ("markitdown" or "html").
	Name() string

	// Convert reads the document at path and returns the Markdown content.
	Convert(ctx context.Context, path string) (string, error)
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of documents processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any documents failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ConvertDocument converts a single document to Markdown, writing the result
// under cfg.DocumentsDir/markdown/. If the Markdown output already exists it
// skips conversion and returns ConversionNone.
func ConvertDocument(ctx context.Context, c Converter, path string, cfg types.ConversionConfig, w io.Writer) types.ConversionStatus {
	outDir := filepath.Join(cfg.DocumentsDir, markdownDir)
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	mdPath := filepath.Join(outDir, base+".md")

	if _, err := os.Stat(mdPath); err == nil {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", base)
		return types.ConversionNone
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return types.ConversionFailed
	}

	raw, err := c.Convert(ctx, path)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return types.ConversionFailed
	}

	content := addFrontmatter(path, c.Name(), raw)

	if err := os.WriteFile(mdPath, []byte(content), 0o644); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return types.ConversionFailed
	}

	fmt.Fprintf(w, "converted: %s\n", base)
	return types.ConversionDone
}

// ConvertBatch processes document paths through the converter, printing
// per-file status to w and returning a summary.
func ConvertBatch(ctx context.Context, c Converter, paths []string, cfg types.ConversionConfig, w io.Writer) BatchResult {
	var result BatchResult
	for _, p := range paths {
		switch ConvertDocument(ctx, c, p, cfg, w) {
		case types.ConversionDone:
			result.Converted++
		case types.ConversionNone:
			result.Skipped++
		case types.ConversionFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}

// ConvertAll converts every file under cfg.DocumentsDir/raw/ and delegates
// to ConvertBatch.
func ConvertAll(ctx context.Context, c Converter, cfg types.ConversionConfig, w io.Writer) (BatchResult, error) {
	dir := filepath.Join(cfg.DocumentsDir, rawDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return BatchResult{}, fmt.Errorf("reading raw directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}

	return ConvertBatch(ctx, c, paths, cfg, w), nil
}

// frontmatter records a conversion's provenance at the top of the
// Markdown output.
type frontmatter struct {
	Source      string `yaml:"source"`
	Backend     string `yaml:"backend"`
	ConvertedAt string `yaml:"converted_at"`
}

// addFrontmatter prepends YAML frontmatter to the Markdown content.
func addFrontmatter(sourcePath, backend, body string) string {
	fm := frontmatter{
		Source:      sourcePath,
		Backend:     backend,
		ConvertedAt: time.Now().UTC().Format(time.RFC3339),
	}
	data, err := yaml.Marshal(fm)
	if err != nil {
		return body
	}
	return "---\n" + string(data) + "---\n\n" + body
}
