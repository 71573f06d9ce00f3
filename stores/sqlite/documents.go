// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"golang.org/x/crypto/blake2b"
)

// Document is a stored input buffer.
type Document struct {
	ID        int64
	Name      string
	Digest    string // hex encoded BLAKE2b-256 of the contents
	Size      int64
	CreatedAt time.Time
}

type documentRow struct {
	ID        int64  `db:"id"`
	Name      string `db:"name"`
	Digest    string `db:"digest"`
	Size      int64  `db:"size"`
	CreatedAt string `db:"created_at"`
}

func (r *documentRow) document() (*Document, error) {
	createdAt, err := time.Parse(time.RFC3339, r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("document %d: created_at: %w", r.ID, err)
	}
	return &Document{
		ID:        r.ID,
		Name:      r.Name,
		Digest:    r.Digest,
		Size:      r.Size,
		CreatedAt: createdAt,
	}, nil
}

// Digest returns the hex encoded BLAKE2b-256 digest of input.
func Digest(input []byte) string {
	sum := blake2b.Sum256(input)
	return hex.EncodeToString(sum[:])
}

// InsertDocument stores a document and returns it.
// If a document with the same contents is already stored, that document
// is returned instead and created is false.
func (s *SQLiteStore) InsertDocument(ctx context.Context, name string, input []byte) (doc *Document, created bool, err error) {
	digest := Digest(input)

	const query = `
		INSERT INTO documents (name, digest, size, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (digest) DO NOTHING
	`
	result, err := s.db.ExecContext(ctx, query,
		name,
		digest,
		len(input),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, false, fmt.Errorf("insert document: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("insert document: %w", err)
	}

	doc, err = s.GetDocumentByDigest(ctx, digest)
	if err != nil {
		return nil, false, err
	} else if doc == nil {
		return nil, false, fmt.Errorf("insert document: %s: not found after insert", digest)
	}
	return doc, n == 1, nil
}

// GetDocumentByDigest returns the document with the given digest,
// or nil if there is none.
func (s *SQLiteStore) GetDocumentByDigest(ctx context.Context, digest string) (*Document, error) {
	const query = `
		SELECT id, name, digest, size, created_at
		FROM documents
		WHERE digest = ?
	`
	var row documentRow
	err := s.db.GetContext(ctx, &row, query, digest)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	return row.document()
}
