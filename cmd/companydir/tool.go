// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/companydir/internal/mcptool"
	"github.com/pdiddy/companydir/pkg/types"
)

var toolServerCmd = &cobra.Command{
	Use:   "tool-server",
	Short: "Serve the conversion pipeline as MCP tools over stdio",
	Long: `Tool-server speaks the Model Context Protocol on stdin/stdout and
exposes two tools: convert_to_markdown fetches a document by URI and
converts it to Markdown, extract_company_directory parses company
records out of Markdown. Agent hosts use it as a subprocess.`,
	RunE: runToolServer,
}

func runToolServer(cmd *cobra.Command, args []string) error {
	backend, _ := cmd.Flags().GetString("backend")
	timeout, _ := cmd.Flags().GetDuration("http-timeout")

	converter, err := buildConverter(backend)
	if err != nil {
		return err
	}

	httpCfg := types.HTTPConfig{
		Timeout:   timeout,
		UserAgent: "companydir/" + version,
	}
	client := &http.Client{Timeout: timeout}

	srv := mcptool.NewServer(converter, client, httpCfg)
	return srv.Run(context.Background())
}

func init() {
	toolServerCmd.Flags().String("backend", "markitdown", "conversion backend: markitdown or html")
	toolServerCmd.Flags().Duration("http-timeout", 30*time.Second, "timeout for fetching remote documents")

	rootCmd.AddCommand(toolServerCmd)
}
