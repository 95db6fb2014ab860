// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package webui serves a browser front end for the conversion and
// extraction pipeline: upload a document or point at a URI, review the
// converted Markdown and the parsed company records, and download both.
package webui

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pdiddy/companydir/internal/convert"
	"github.com/pdiddy/companydir/internal/tabular"
	"github.com/pdiddy/companydir/pkg/types"
)

const defaultMaxUploadBytes = 16 << 20

// Catalog persists extraction results. Satisfied by store.Store.
type Catalog interface {
	SaveExtraction(ctx context.Context, doc types.Document, companies []types.Company) error
}

// Server handles the web GUI routes.
type Server struct {
	converter convert.Converter
	client    *http.Client
	httpCfg   types.HTTPConfig
	catalog   Catalog
	maxUpload int64

	mu      sync.Mutex
	results map[string]*result
}

// result holds one completed conversion for later download.
type result struct {
	Name      string
	Source    string
	Markdown  string
	Companies []types.Company
	Issues    []types.Issue
}

// NewServer builds the GUI server. catalog may be nil, in which case
// results are not persisted.
func NewServer(converter convert.Converter, client *http.Client, httpCfg types.HTTPConfig, catalog Catalog, cfg types.WebConfig) *Server {
	if client == nil {
		client = http.DefaultClient
	}
	maxUpload := cfg.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = defaultMaxUploadBytes
	}
	return &Server{
		converter: converter,
		client:    client,
		httpCfg:   httpCfg,
		catalog:   catalog,
		maxUpload: maxUpload,
		results:   make(map[string]*result),
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/", s.handleIndex)
	r.Post("/convert", s.handleConvert)
	r.Get("/result/{id}", s.handleResult)
	r.Get("/result/{id}/markdown", s.handleDownloadMarkdown)
	r.Get("/result/{id}/companies.json", s.handleDownloadJSON)

	return r
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	render(w, indexTmpl, nil)
}

// render executes tmpl into a buffer first so a template failure still
// produces a clean 500 instead of a half-written page.
func render(w http.ResponseWriter, tmpl *template.Template, data any) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		http.Error(w, "request too large or malformed", http.StatusBadRequest)
		return
	}

	path, name, cleanup, err := s.resolveInput(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer cleanup()

	markdown, err := s.converter.Convert(r.Context(), path)
	if err != nil {
		http.Error(w, fmt.Sprintf("conversion failed: %v", err), http.StatusUnprocessableEntity)
		return
	}

	companies, issues := tabular.Extract(markdown)

	res := &result{
		Name:      name,
		Source:    sourceLabel(r),
		Markdown:  markdown,
		Companies: companies,
		Issues:    issues,
	}
	id, err := s.putResult(res)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if s.catalog != nil && len(companies) > 0 {
		doc := types.Document{
			ID:        name,
			SourceURI: res.Source,
			Backend:   s.converter.Name(),
		}
		if err := s.catalog.SaveExtraction(r.Context(), doc, companies); err != nil {
			http.Error(w, fmt.Sprintf("saving to catalog: %v", err), http.StatusInternalServerError)
			return
		}
	}

	http.Redirect(w, r, "/result/"+id, http.StatusSeeOther)
}

// resolveInput stages the request's document on disk: either the uploaded
// file or the fetched URI. The cleanup func removes any temporary copy.
func (s *Server) resolveInput(r *http.Request) (path, name string, cleanup func(), err error) {
	if file, header, ferr := r.FormFile("document"); ferr == nil {
		defer file.Close()

		tmp, err := os.CreateTemp("", "companydir-*"+filepath.Ext(header.Filename))
		if err != nil {
			return "", "", nil, fmt.Errorf("staging upload: %w", err)
		}
		if _, err := io.Copy(tmp, file); err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
			return "", "", nil, fmt.Errorf("staging upload: %w", err)
		}
		tmp.Close()

		name = baseName(header.Filename)
		return tmp.Name(), name, func() { os.Remove(tmp.Name()) }, nil
	}

	uri := strings.TrimSpace(r.FormValue("uri"))
	if uri == "" {
		return "", "", nil, fmt.Errorf("provide a document upload or a uri")
	}

	path, cleanup, err = convert.Fetch(r.Context(), s.client, uri, s.httpCfg)
	if err != nil {
		return "", "", nil, fmt.Errorf("fetching %s: %w", uri, err)
	}
	return path, baseName(path), cleanup, nil
}

func sourceLabel(r *http.Request) string {
	if uri := strings.TrimSpace(r.FormValue("uri")); uri != "" {
		return uri
	}
	return "upload"
}

func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	res, ok := s.getResult(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return
	}

	issues := make([]string, len(res.Issues))
	for i, issue := range res.Issues {
		issues[i] = fmt.Sprintf("%s: %s", issue.Kind, issue.String())
	}

	render(w, resultTmpl, struct {
		ID        string
		Name      string
		Source    string
		Markdown  string
		Companies []types.Company
		Issues    []string
	}{
		ID:        chi.URLParam(r, "id"),
		Name:      res.Name,
		Source:    res.Source,
		Markdown:  res.Markdown,
		Companies: res.Companies,
		Issues:    issues,
	})
}

func (s *Server) handleDownloadMarkdown(w http.ResponseWriter, r *http.Request) {
	res, ok := s.getResult(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Name+".md"))
	io.WriteString(w, res.Markdown)
}

func (s *Server) handleDownloadJSON(w http.ResponseWriter, r *http.Request) {
	res, ok := s.getResult(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Name+"-companies.json"))
	if err := tabular.EncodeJSON(w, res.Companies); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (s *Server) putResult(res *result) (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating result id: %w", err)
	}
	id := hex.EncodeToString(buf)

	s.mu.Lock()
	s.results[id] = res
	s.mu.Unlock()
	return id, nil
}

func (s *Server) getResult(id string) (*result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.results[id]
	return res, ok
}
