// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the companydir CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/companydir/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the companydir CLI.
var rootCmd = &cobra.Command{
	Use:   "companydir",
	Short: "Extract company directories from documents",
	Long: `companydir converts documents (HTML pages, PDFs, office files) into
Markdown and extracts structured company records from the Markdown
directory table.

Each pipeline stage is a subcommand: convert turns raw documents into
Markdown, extract parses company records out of the Markdown, directory
queries the local catalog. The tool-server subcommand exposes the
conversion pipeline over the Model Context Protocol, agent drives it
interactively, and web serves a browser front end.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./companydir.yaml or ~/.config/companydir/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("companydir")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "companydir"))
		}
	}

	viper.SetEnvPrefix("COMPANYDIR")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
