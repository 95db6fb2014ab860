// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/companydir/internal/container"
	"github.com/pdiddy/companydir/internal/convert"
	"github.com/pdiddy/companydir/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [documents...]",
	Short: "Convert raw documents to Markdown",
	Long: `Convert transforms raw documents (HTML pages, PDFs, office files) into
Markdown under documents/markdown/. Supports the markitdown backend
(container-based, handles most formats) and the html backend (native,
HTML only). Already-converted documents are skipped.`,
	RunE: runConvert,
}

// buildConverter selects the conversion backend named by the flag.
func buildConverter(backend string) (convert.Converter, error) {
	switch types.ConversionBackend(backend) {
	case types.BackendMarkitdown:
		rt, err := container.DetectRuntime()
		if err != nil {
			return nil, err
		}
		return convert.NewMarkitdownConverter(rt)
	case types.BackendHTML:
		return convert.NewHTMLConverter(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q: use markitdown or html", backend)
	}
}

func runConvert(cmd *cobra.Command, args []string) error {
	backend, _ := cmd.Flags().GetString("backend")
	documentsDir, _ := cmd.Flags().GetString("documents-dir")
	batch, _ := cmd.Flags().GetBool("batch")

	if !batch && len(args) == 0 {
		return fmt.Errorf("provide document paths or use --batch")
	}

	cfg := types.ConversionConfig{
		Backend:      types.ConversionBackend(backend),
		DocumentsDir: documentsDir,
	}

	converter, err := buildConverter(string(cfg.Backend))
	if err != nil {
		return err
	}

	ctx := context.Background()

	var result convert.BatchResult
	if batch {
		result, err = convert.ConvertAll(ctx, converter, cfg, os.Stdout)
		if err != nil {
			return err
		}
	} else {
		result = convert.ConvertBatch(ctx, converter, args, cfg, os.Stdout)
	}

	fmt.Fprintf(os.Stdout, "Converted: %d, Skipped: %d, Failed: %d\n",
		result.Converted, result.Skipped, result.Failed)
	if result.HasFailures() {
		return fmt.Errorf("%d document(s) failed conversion", result.Failed)
	}
	return nil
}

func init() {
	convertCmd.Flags().String("backend", "markitdown", "conversion backend: markitdown or html")
	convertCmd.Flags().String("documents-dir", "documents", "base directory for documents (contains raw/, markdown/)")
	convertCmd.Flags().Bool("batch", false, "process all unconverted documents in documents-dir/raw/")

	rootCmd.AddCommand(convertCmd)
}
