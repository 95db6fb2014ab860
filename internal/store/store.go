// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists extracted Company records in a SQLite catalog,
// keyed by the source document, with full-text search over names,
// descriptions and tags.
//
// The full-text index uses SQLite's FTS5 module, which mattn/go-sqlite3
// compiles in only under the sqlite_fts5 build tag. Build and test through
// the mage targets, or pass -tags sqlite_fts5 yourself; without the tag
// NewStore fails with "no such module: fts5".
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/companydir/pkg/types"
)

const dbFile = "companydir.db"

// Store manages the company catalog database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the catalog database at cfg.DataDir/companydir.db
// and creates the schema if it does not exist.
func NewStore(cfg types.CatalogConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			source_uri TEXT,
			markdown_path TEXT,
			backend TEXT,
			converted_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS companies (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			document_id TEXT NOT NULL REFERENCES documents(id),
			name TEXT NOT NULL,
			website TEXT,
			yc_link TEXT,
			description TEXT NOT NULL,
			tags TEXT,
			location TEXT,
			founder_link_1 TEXT,
			founder_link_2 TEXT,
			founder_link_3 TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_companies_document_id ON companies(document_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='companies_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE companies_fts USING fts5(name, description, tags, content=companies, content_rowid=rowid)`,
			`CREATE TRIGGER companies_ai AFTER INSERT ON companies BEGIN
				INSERT INTO companies_fts(rowid, name, description, tags) VALUES (new.rowid, new.name, new.description, new.tags);
			END`,
			`CREATE TRIGGER companies_ad AFTER DELETE ON companies BEGIN
				INSERT INTO companies_fts(companies_fts, rowid, name, description, tags) VALUES('delete', old.rowid, old.name, old.description, old.tags);
			END`,
			`CREATE TRIGGER companies_au AFTER UPDATE ON companies BEGIN
				INSERT INTO companies_fts(companies_fts, rowid, name, description, tags) VALUES('delete', old.rowid, old.name, old.description, old.tags);
				INSERT INTO companies_fts(rowid, name, description, tags) VALUES (new.rowid, new.name, new.description, new.tags);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// SaveExtraction stores the companies extracted from one document, replacing
// any previous extraction for the same document ID.
func (s *Store) SaveExtraction(ctx context.Context, doc types.Document, companies []types.Company) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	convertedAt := ""
	if !doc.ConvertedAt.IsZero() {
		convertedAt = doc.ConvertedAt.UTC().Format(time.RFC3339)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO documents (id, source_uri, markdown_path, backend, converted_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			source_uri=excluded.source_uri, markdown_path=excluded.markdown_path,
			backend=excluded.backend, converted_at=excluded.converted_at`,
		doc.ID, doc.SourceURI, doc.MarkdownPath, doc.Backend, convertedAt,
	)
	if err != nil {
		return fmt.Errorf("upserting document: %w", err)
	}

	// Re-extraction replaces the document's previous records.
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM companies WHERE document_id = ?`, doc.ID,
	); err != nil {
		return fmt.Errorf("deleting old companies: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO companies (document_id, name, website, yc_link, description, tags, location,
			founder_link_1, founder_link_2, founder_link_3)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range companies {
		tagsJSON, _ := json.Marshal(c.Tags)
		_, err := stmt.ExecContext(ctx,
			doc.ID, c.Company, c.CompanyWebsite, c.YCLink, c.ShortDescription,
			string(tagsJSON), c.Location, c.FounderLink1, c.FounderLink2, c.FounderLink3,
		)
		if err != nil {
			return fmt.Errorf("inserting company %s: %w", c.Company, err)
		}
	}

	return tx.Commit()
}

const companyColumns = `name, website, yc_link, description, tags, location,
	founder_link_1, founder_link_2, founder_link_3`

// ListCompanies returns companies in insertion order, up to limit. A limit
// of 0 uses the configured default.
func (s *Store) ListCompanies(ctx context.Context, limit int) ([]types.Company, error) {
	if limit <= 0 {
		limit = s.maxResults
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+companyColumns+` FROM companies ORDER BY rowid LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing companies: %w", err)
	}
	defer rows.Close()
	return scanCompanies(rows)
}

// SearchCompanies runs a full-text query over names, descriptions and tags.
func (s *Store) SearchCompanies(ctx context.Context, query string, limit int) ([]types.Company, error) {
	if limit <= 0 {
		limit = s.maxResults
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+companyColumns+` FROM companies
		 WHERE rowid IN (SELECT rowid FROM companies_fts WHERE companies_fts MATCH ?)
		 ORDER BY rowid LIMIT ?`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("searching companies: %w", err)
	}
	defer rows.Close()
	return scanCompanies(rows)
}

// CompaniesByDocument returns every company extracted from the given document.
func (s *Store) CompaniesByDocument(ctx context.Context, documentID string) ([]types.Company, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE document_id = ? ORDER BY rowid`, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying companies for %s: %w", documentID, err)
	}
	defer rows.Close()
	return scanCompanies(rows)
}

// Documents returns all document records, most recently converted first.
func (s *Store) Documents(ctx context.Context) ([]types.Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source_uri, markdown_path, backend, converted_at FROM documents
		 ORDER BY converted_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []types.Document
	for rows.Next() {
		var d types.Document
		var convertedAt string
		if err := rows.Scan(&d.ID, &d.SourceURI, &d.MarkdownPath, &d.Backend, &convertedAt); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		if convertedAt != "" {
			if ts, err := time.Parse(time.RFC3339, convertedAt); err == nil {
				d.ConvertedAt = ts
			}
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func scanCompanies(rows *sql.Rows) ([]types.Company, error) {
	var companies []types.Company
	for rows.Next() {
		var c types.Company
		var tagsJSON string
		err := rows.Scan(&c.Company, &c.CompanyWebsite, &c.YCLink, &c.ShortDescription,
			&tagsJSON, &c.Location, &c.FounderLink1, &c.FounderLink2, &c.FounderLink3)
		if err != nil {
			return nil, fmt.Errorf("scanning company: %w", err)
		}
		if tagsJSON != "" && tagsJSON != "null" {
			if err := json.Unmarshal([]byte(tagsJSON), &c.Tags); err != nil {
				return nil, fmt.Errorf("parsing tags for %s: %w", c.Company, err)
			}
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}
