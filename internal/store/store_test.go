// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"testing"
	"time"

	"github.com/pdiddy/companydir/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(types.CatalogConfig{DataDir: t.TempDir()})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testDoc(id string) types.Document {
	return types.Document{
		ID:           id,
		SourceURI:    "file:///docs/" + id + ".html",
		MarkdownPath: "documents/markdown/" + id + ".md",
		Backend:      "html",
		ConvertedAt:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestSaveExtraction_RoundTrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	companies := []types.Company{
		{
			Company:          "Acme",
			CompanyWebsite:   "https://acme.com/",
			ShortDescription: "Widgets for everyone",
			Tags:             []string{"b2b", "saas"},
			Location:         "San Francisco",
		},
		{
			Company:          "Globex",
			ShortDescription: "Global exports",
		},
	}

	if err := s.SaveExtraction(ctx, testDoc("w24"), companies); err != nil {
		t.Fatalf("SaveExtraction: %v", err)
	}

	got, err := s.CompaniesByDocument(ctx, "w24")
	if err != nil {
		t.Fatalf("CompaniesByDocument: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 companies, got %d", len(got))
	}
	if got[0].Company != "Acme" || got[0].CompanyWebsite != "https://acme.com/" {
		t.Errorf("unexpected first company: %+v", got[0])
	}
	if len(got[0].Tags) != 2 || got[0].Tags[0] != "b2b" {
		t.Errorf("tags not preserved: %v", got[0].Tags)
	}
	if got[1].Tags != nil {
		t.Errorf("expected nil tags for Globex, got %v", got[1].Tags)
	}
}

func TestSaveExtraction_ReplacesPrevious(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	first := []types.Company{
		{Company: "Acme", ShortDescription: "Widgets"},
		{Company: "Globex", ShortDescription: "Exports"},
	}
	if err := s.SaveExtraction(ctx, testDoc("w24"), first); err != nil {
		t.Fatalf("SaveExtraction: %v", err)
	}

	second := []types.Company{
		{Company: "Initech", ShortDescription: "TPS reports"},
	}
	if err := s.SaveExtraction(ctx, testDoc("w24"), second); err != nil {
		t.Fatalf("SaveExtraction (re-import): %v", err)
	}

	got, err := s.CompaniesByDocument(ctx, "w24")
	if err != nil {
		t.Fatalf("CompaniesByDocument: %v", err)
	}
	if len(got) != 1 || got[0].Company != "Initech" {
		t.Fatalf("expected re-import to replace companies, got %+v", got)
	}

	docs, err := s.Documents(ctx)
	if err != nil {
		t.Fatalf("Documents: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 document after re-import, got %d", len(docs))
	}
}

func TestListCompanies_Limit(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	companies := []types.Company{
		{Company: "Acme", ShortDescription: "Widgets"},
		{Company: "Globex", ShortDescription: "Exports"},
		{Company: "Initech", ShortDescription: "TPS reports"},
	}
	if err := s.SaveExtraction(ctx, testDoc("w24"), companies); err != nil {
		t.Fatalf("SaveExtraction: %v", err)
	}

	got, err := s.ListCompanies(ctx, 2)
	if err != nil {
		t.Fatalf("ListCompanies: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 companies with limit 2, got %d", len(got))
	}
	if got[0].Company != "Acme" {
		t.Errorf("expected insertion order, got %s first", got[0].Company)
	}

	all, err := s.ListCompanies(ctx, 0)
	if err != nil {
		t.Fatalf("ListCompanies (default limit): %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 companies with default limit, got %d", len(all))
	}
}

func TestSearchCompanies(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	companies := []types.Company{
		{Company: "Acme", ShortDescription: "Industrial widget manufacturing", Tags: []string{"hardware"}},
		{Company: "Globex", ShortDescription: "Payments infrastructure", Tags: []string{"fintech"}},
		{Company: "Initech", ShortDescription: "TPS report automation", Tags: []string{"saas"}},
	}
	if err := s.SaveExtraction(ctx, testDoc("w24"), companies); err != nil {
		t.Fatalf("SaveExtraction: %v", err)
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"description match", "widget", []string{"Acme"}},
		{"tag match", "fintech", []string{"Globex"}},
		{"name match", "Initech", []string{"Initech"}},
		{"no match", "quantum", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.SearchCompanies(ctx, tt.query, 10)
			if err != nil {
				t.Fatalf("SearchCompanies(%q): %v", tt.query, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d results, got %d", len(tt.want), len(got))
			}
			for i, name := range tt.want {
				if got[i].Company != name {
					t.Errorf("result %d: expected %s, got %s", i, name, got[i].Company)
				}
			}
		})
	}
}

func TestSearchCompanies_RespectsReplacement(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.SaveExtraction(ctx, testDoc("w24"), []types.Company{
		{Company: "Acme", ShortDescription: "Widget manufacturing"},
	}); err != nil {
		t.Fatalf("SaveExtraction: %v", err)
	}
	if err := s.SaveExtraction(ctx, testDoc("w24"), []types.Company{
		{Company: "Globex", ShortDescription: "Payments infrastructure"},
	}); err != nil {
		t.Fatalf("SaveExtraction (re-import): %v", err)
	}

	got, err := s.SearchCompanies(ctx, "widget", 10)
	if err != nil {
		t.Fatalf("SearchCompanies: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected stale records to drop out of search, got %+v", got)
	}
}

func TestDocuments_Ordering(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	older := testDoc("s23")
	older.ConvertedAt = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	newer := testDoc("w24")

	if err := s.SaveExtraction(ctx, older, nil); err != nil {
		t.Fatalf("SaveExtraction: %v", err)
	}
	if err := s.SaveExtraction(ctx, newer, nil); err != nil {
		t.Fatalf("SaveExtraction: %v", err)
	}

	docs, err := s.Documents(ctx)
	if err != nil {
		t.Fatalf("Documents: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].ID != "w24" || docs[1].ID != "s23" {
		t.Errorf("expected newest first, got %s, %s", docs[0].ID, docs[1].ID)
	}
	if !docs[0].ConvertedAt.Equal(newer.ConvertedAt) {
		t.Errorf("converted_at not round-tripped: %v", docs[0].ConvertedAt)
	}
}
