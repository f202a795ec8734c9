// Package duckdb provides an append-only DuckDB store for extracted STR
// mutation records, queryable across extraction runs.
package duckdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
)

// Store manages a DuckDB connection holding mutation records.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// ensureSchema creates tables if they don't exist.
func (s *Store) ensureSchema() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS mutation_records (
		sample VARCHAR,
		tmp_id VARCHAR,
		tumor_allele_a VARCHAR,
		tumor_allele_b VARCHAR,
		normal_allele_a VARCHAR,
		normal_allele_b VARCHAR,
		str_end VARCHAR,
		period VARCHAR,
		ref VARCHAR,
		motif VARCHAR,
		source VARCHAR,
		PRIMARY KEY (sample, tmp_id, source)
	)`); err != nil {
		return err
	}

	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS scan_metadata (
		path VARCHAR PRIMARY KEY,
		size BIGINT,
		mod_time TIMESTAMP
	)`)
	return err
}
