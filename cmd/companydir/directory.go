// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/companydir/internal/store"
	"github.com/pdiddy/companydir/pkg/types"
)

var directoryCmd = &cobra.Command{
	Use:   "directory",
	Short: "Query the local company catalog",
	Long: `Directory queries the catalog built by extract --save. Use subcommands
to list companies, run full-text search over names, descriptions and
tags, or list the source documents.`,
}

var directoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List companies in the catalog",
	RunE:  runDirectoryList,
}

func runDirectoryList(cmd *cobra.Command, args []string) error {
	catalog, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer catalog.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	companies, err := catalog.ListCompanies(context.Background(), limit)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatCompanies(companies, jsonOutput)
}

var directorySearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Full-text search over the catalog",
	RunE:  runDirectorySearch,
}

func runDirectorySearch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("search query required")
	}
	query := strings.Join(args, " ")

	catalog, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer catalog.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	companies, err := catalog.SearchCompanies(context.Background(), query, limit)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatCompanies(companies, jsonOutput)
}

var directoryDocsCmd = &cobra.Command{
	Use:   "docs",
	Short: "List source documents in the catalog",
	RunE:  runDirectoryDocs,
}

func runDirectoryDocs(cmd *cobra.Command, args []string) error {
	catalog, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer catalog.Close()

	docs, err := catalog.Documents(context.Background())
	if err != nil {
		return err
	}

	if len(docs) == 0 {
		fmt.Println("No documents in catalog.")
		return nil
	}
	for _, d := range docs {
		converted := ""
		if !d.ConvertedAt.IsZero() {
			converted = d.ConvertedAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(os.Stdout, "%-20s  %-10s  %-16s  %s\n", d.ID, d.Backend, converted, d.SourceURI)
	}
	return nil
}

func openCatalog(cmd *cobra.Command) (*store.Store, error) {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	maxResults, _ := cmd.Flags().GetInt("max-results")
	return store.NewStore(types.CatalogConfig{DataDir: dataDir, MaxResults: maxResults})
}

func formatCompanies(companies []types.Company, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if companies == nil {
			companies = []types.Company{}
		}
		return enc.Encode(companies)
	}

	if len(companies) == 0 {
		fmt.Println("No companies found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-20s  %-40s  %-20s  %s\n", "Company", "Description", "Tags", "Location")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))

	for _, c := range companies {
		desc := c.ShortDescription
		if len(desc) > 40 {
			desc = desc[:37] + "..."
		}
		tags := strings.Join(c.Tags, ", ")
		if len(tags) > 20 {
			tags = tags[:17] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-20s  %-40s  %-20s  %s\n", c.Company, desc, tags, c.Location)
	}

	fmt.Fprintf(os.Stdout, "\n%d companies\n", len(companies))
	return nil
}

func init() {
	directoryCmd.PersistentFlags().String("data-dir", "data", "directory for the catalog database")
	directoryCmd.PersistentFlags().Int("max-results", 20, "default maximum number of results")
	directoryCmd.PersistentFlags().Int("limit", 0, "maximum results (0 = use default)")
	directoryCmd.PersistentFlags().Bool("json", false, "output results as JSON")

	directoryCmd.AddCommand(directoryListCmd)
	directoryCmd.AddCommand(directorySearchCmd)
	directoryCmd.AddCommand(directoryDocsCmd)

	rootCmd.AddCommand(directoryCmd)
}
