// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package store persists tokenized documents in SQLite.
package store

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// SQLiteStore is a SQLite-backed store for documents and their tokens.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewStore opens the database at path, creating the file and the schema
// if they do not exist. An empty path opens a private in-memory database.
func NewStore(ctx context.Context, path string) (*SQLiteStore, error) {
	var dsn string
	if path == "" {
		dsn = "file::memory:?_pragma=foreign_keys(1)"
	} else {
		// Apply PRAGMA's per-connection via DSN so the pool always has them.
		dsn = fmt.Sprintf(
			"file:%s?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)",
			path,
		)
	}

	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if path == "" {
		// every connection to :memory: is a new database
		db.SetMaxOpenConns(1)
	}

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("exec schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// TableStats returns row counts for all tables.
func (s *SQLiteStore) TableStats(ctx context.Context) (map[string]int64, error) {
	tables := []string{
		"documents",
		"tokens",
		"labels",
	}

	stats := make(map[string]int64, len(tables))
	for _, table := range tables {
		var count int64
		query := `SELECT COUNT(*) ` + `FROM ` + table
		if err := s.db.GetContext(ctx, &count, query); err != nil {
			return nil, fmt.Errorf("count %s: %w", table, err)
		}
		stats[table] = count
	}

	return stats, nil
}
