// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
)

// HTMLConverter converts HTML documents to Markdown locally, without a
// container runtime. The table plugin matters here: the directory pages this
// tool consumes carry their data in a table.
type HTMLConverter struct {
	conv *converter.Converter
}

// NewHTMLConverter creates the local HTML backend.
func NewHTMLConverter() *HTMLConverter {
	return &HTMLConverter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

// Name identifies the backend.
func (h *HTMLConverter) Name() string { return "html" }

// Convert reads the HTML file at path and returns the Markdown content.
// Only .html and .htm inputs are accepted; other formats need the
// markitdown backend.
func (h *HTMLConverter) Convert(ctx context.Context, path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
	default:
		return "", fmt.Errorf("html backend cannot convert %s: only .html and .htm are supported", path)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading HTML %s: %w", path, err)
	}

	md, err := h.conv.ConvertString(string(data))
	if err != nil {
		return "", fmt.Errorf("converting %s to Markdown: %w", path, err)
	}

	if strings.TrimSpace(md) == "" {
		return "", fmt.Errorf("conversion produced empty output for %s", path)
	}

	return md, nil
}
