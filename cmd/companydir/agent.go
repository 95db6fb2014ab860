// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/companydir/internal/mcptool"
	"github.com/pdiddy/companydir/internal/tabular"
	"github.com/pdiddy/companydir/pkg/types"
)

const outputFile = "companies_output.json"

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Interactive loop: convert documents and extract companies",
	Long: `Agent runs an interactive prompt. Each line is a document URI (or a
local path); the document is converted to Markdown through a tool-server
subprocess, the company directory table is extracted, and the records
are written to companies_output.json. When no table is found the raw
Markdown is printed instead. Type exit to quit.`,
	RunE: runAgent,
}

func runAgent(cmd *cobra.Command, args []string) error {
	backend, _ := cmd.Flags().GetString("backend")
	serverCmd, _ := cmd.Flags().GetString("tool-command")

	ctx := context.Background()

	toolCfg := types.ToolConfig{
		Command: serverCmd,
		Args:    []string{"tool-server", "--backend", backend},
	}

	client, err := mcptool.Spawn(ctx, toolCfg)
	if err != nil {
		return fmt.Errorf("starting tool server: %w", err)
	}
	defer client.Close()

	fmt.Fprintln(os.Stdout, "Enter a document URI or path (exit to quit):")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(os.Stdout, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		if err := processURI(ctx, client, line); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
	return scanner.Err()
}

func processURI(ctx context.Context, client *mcptool.Client, input string) error {
	uri := normalizeInput(input)

	markdown, err := client.ConvertToMarkdown(ctx, uri)
	if err != nil {
		return err
	}

	companies, issues := tabular.Extract(markdown)
	tabular.Report(os.Stderr, issues)

	if len(companies) == 0 {
		fmt.Fprintln(os.Stdout, "No companies extracted; raw markdown follows:")
		fmt.Fprintln(os.Stdout)
		fmt.Fprintln(os.Stdout, markdown)
		return nil
	}

	if err := tabular.WriteJSON(outputFile, companies); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Extracted %d companies -> %s\n", len(companies), outputFile)
	return nil
}

// normalizeInput turns bare local paths into file:// URIs.
func normalizeInput(input string) string {
	if strings.Contains(input, "://") || strings.HasPrefix(input, "data:") {
		return input
	}
	abs, err := filepath.Abs(input)
	if err != nil {
		return input
	}
	return "file://" + abs
}

func init() {
	agentCmd.Flags().String("backend", "markitdown", "conversion backend for the tool server")
	agentCmd.Flags().String("tool-command", "", "tool server binary (default: this executable)")

	rootCmd.AddCommand(agentCmd)
}
