// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/companydir/internal/store"
	"github.com/pdiddy/companydir/internal/webui"
	"github.com/pdiddy/companydir/pkg/types"
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve the browser front end",
	Long: `Web serves a browser GUI for the pipeline: upload a document or point
at a URI, review the converted Markdown and the extracted company
records, and download both. With --save, extractions are also indexed
into the local catalog.`,
	RunE: runWeb,
}

func runWeb(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	backend, _ := cmd.Flags().GetString("backend")
	timeout, _ := cmd.Flags().GetDuration("http-timeout")
	maxUpload, _ := cmd.Flags().GetInt64("max-upload-bytes")
	save, _ := cmd.Flags().GetBool("save")
	dataDir, _ := cmd.Flags().GetString("data-dir")

	converter, err := buildConverter(backend)
	if err != nil {
		return err
	}

	var catalog webui.Catalog
	if save {
		s, err := store.NewStore(types.CatalogConfig{DataDir: dataDir})
		if err != nil {
			return err
		}
		defer s.Close()
		catalog = s
	}

	httpCfg := types.HTTPConfig{
		Timeout:   timeout,
		UserAgent: "companydir/" + version,
	}
	client := &http.Client{Timeout: timeout}

	srv := webui.NewServer(converter, client, httpCfg, catalog, types.WebConfig{
		Addr:           addr,
		MaxUploadBytes: maxUpload,
	})

	fmt.Fprintf(os.Stderr, "Serving on http://%s\n", addr)
	return http.ListenAndServe(addr, srv.Handler())
}

func init() {
	webCmd.Flags().String("addr", "localhost:8080", "listen address")
	webCmd.Flags().String("backend", "html", "conversion backend: markitdown or html")
	webCmd.Flags().Duration("http-timeout", 30*time.Second, "timeout for fetching remote documents")
	webCmd.Flags().Int64("max-upload-bytes", 16<<20, "maximum upload size in bytes")
	webCmd.Flags().Bool("save", false, "index extractions into the local catalog")
	webCmd.Flags().String("data-dir", "data", "directory for the catalog database (with --save)")

	rootCmd.AddCommand(webCmd)
}
