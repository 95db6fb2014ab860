// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/companydir/internal/store"
	"github.com/pdiddy/companydir/internal/tabular"
	"github.com/pdiddy/companydir/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract [markdown files...]",
	Short: "Extract company records from Markdown directory tables",
	Long: `Extract parses the company directory table out of converted Markdown
and writes the records as JSON. Rows that fail validation are reported
and skipped; the remaining rows are still extracted.

When no directory table is found the raw Markdown is echoed so the
caller can inspect the conversion output. Use --save to also index the
records into the local catalog.`,
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	documentsDir, _ := cmd.Flags().GetString("documents-dir")
	outputDir, _ := cmd.Flags().GetString("output")
	batch, _ := cmd.Flags().GetBool("batch")
	save, _ := cmd.Flags().GetBool("save")
	dataDir, _ := cmd.Flags().GetString("data-dir")

	if !batch && len(args) == 0 {
		return fmt.Errorf("provide markdown paths or use --batch")
	}

	var catalog *store.Store
	if save {
		var err error
		catalog, err = store.NewStore(types.CatalogConfig{DataDir: dataDir})
		if err != nil {
			return err
		}
		defer catalog.Close()
	}

	if batch {
		cfg := types.ExtractionConfig{DocumentsDir: documentsDir, OutputDir: outputDir}
		summary, err := tabular.ExtractAll(cfg, os.Stdout)
		if err != nil {
			return err
		}
		if catalog != nil {
			if err := saveBatch(cmd.Context(), catalog, filepath.Join(documentsDir, "markdown")); err != nil {
				return err
			}
		}
		fmt.Fprintf(os.Stdout, "Extracted: %d, Empty: %d, Failed: %d\n",
			summary.Extracted, summary.Empty, summary.Failed)
		if summary.HasFailures() {
			return fmt.Errorf("%d document(s) failed extraction", summary.Failed)
		}
		return nil
	}

	for _, path := range args {
		if err := extractOne(cmd.Context(), path, outputDir, catalog); err != nil {
			return err
		}
	}
	return nil
}

func extractOne(ctx context.Context, path, outputDir string, catalog *store.Store) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	markdown := string(data)

	companies, issues := tabular.Extract(markdown)
	tabular.Report(os.Stderr, issues)

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	if len(companies) == 0 {
		// Echo the conversion output so the caller can inspect it.
		fmt.Fprintf(os.Stdout, "No companies extracted from %s; raw markdown follows:\n\n", path)
		fmt.Fprintln(os.Stdout, markdown)
		return nil
	}

	outPath := filepath.Join(outputDir, name+"-companies.json")
	if err := tabular.WriteJSON(outPath, companies); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Extracted %d companies from %s -> %s\n", len(companies), path, outPath)

	if catalog != nil {
		doc := types.Document{
			ID:           name,
			SourceURI:    "file://" + path,
			MarkdownPath: path,
			ConvertedAt:  time.Now().UTC(),
		}
		if err := catalog.SaveExtraction(ctx, doc, companies); err != nil {
			return fmt.Errorf("saving %s to catalog: %w", name, err)
		}
		fmt.Fprintf(os.Stdout, "Saved %s to catalog\n", name)
	}
	return nil
}

// saveBatch indexes every markdown file in mdDir into the catalog.
func saveBatch(ctx context.Context, catalog *store.Store, mdDir string) error {
	entries, err := os.ReadDir(mdDir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", mdDir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".md" {
			continue
		}
		path := filepath.Join(mdDir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		companies, _ := tabular.Extract(string(data))
		if len(companies) == 0 {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".md")
		doc := types.Document{
			ID:           name,
			MarkdownPath: path,
			ConvertedAt:  time.Now().UTC(),
		}
		if err := catalog.SaveExtraction(ctx, doc, companies); err != nil {
			return fmt.Errorf("saving %s to catalog: %w", name, err)
		}
	}
	return nil
}

func init() {
	extractCmd.Flags().String("documents-dir", "documents", "base directory for documents (contains raw/, markdown/)")
	extractCmd.Flags().String("output", "output", "directory for extracted JSON files")
	extractCmd.Flags().Bool("batch", false, "process all markdown files in documents-dir/markdown/")
	extractCmd.Flags().Bool("save", false, "index extracted records into the local catalog")
	extractCmd.Flags().String("data-dir", "data", "directory for the catalog database (with --save)")

	rootCmd.AddCommand(extractCmd)
}
