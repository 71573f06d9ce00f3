// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package store

import (
	"context"
	"fmt"

	"github.com/mdhender/fsmtok"
)

// InsertTokens replaces the tokens stored for a document.
// Tokens for which isWord returns true are counted by WordCounts;
// a nil isWord counts none of them.
// All rows are written in a single transaction.
func (s *SQLiteStore) InsertTokens(ctx context.Context, documentID int64, tokens []*fsmtok.Token, isWord func(*fsmtok.Token) bool) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert tokens: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM tokens WHERE document_id = ?`, documentID); err != nil {
		return fmt.Errorf("delete tokens: %w", err)
	}

	const query = `
		INSERT INTO tokens (
			document_id, seq, value, class_id, state_id,
			start_offset, end_offset, line, col, is_word
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare tokens: %w", err)
	}
	defer stmt.Close()

	for seq, tok := range tokens {
		var word int
		if isWord != nil && isWord(tok) {
			word = 1
		}
		if _, err := stmt.ExecContext(ctx,
			documentID,
			seq,
			tok.Value,
			int64(tok.Class),
			int64(tok.State),
			tok.Start,
			tok.End,
			tok.Line,
			tok.Column,
			word,
		); err != nil {
			return fmt.Errorf("insert token %d: %w", seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert tokens: %w", err)
	}
	return nil
}

type tokenRow struct {
	Value       []byte `db:"value"`
	ClassID     int64  `db:"class_id"`
	StateID     int64  `db:"state_id"`
	StartOffset int    `db:"start_offset"`
	EndOffset   int    `db:"end_offset"`
	Line        int    `db:"line"`
	Col         int    `db:"col"`
}

// Tokens returns the tokens stored for a document, in stream order.
func (s *SQLiteStore) Tokens(ctx context.Context, documentID int64) ([]*fsmtok.Token, error) {
	const query = `
		SELECT value, class_id, state_id, start_offset, end_offset, line, col
		FROM tokens
		WHERE document_id = ?
		ORDER BY seq
	`
	var rows []tokenRow
	if err := s.db.SelectContext(ctx, &rows, query, documentID); err != nil {
		return nil, fmt.Errorf("select tokens: %w", err)
	}

	tokens := make([]*fsmtok.Token, 0, len(rows))
	for _, row := range rows {
		tokens = append(tokens, &fsmtok.Token{
			Span: fsmtok.Span{
				Start:  row.StartOffset,
				End:    row.EndOffset,
				Line:   row.Line,
				Column: row.Col,
			},
			Value: row.Value,
			Class: fsmtok.ClassId(row.ClassID),
			State: fsmtok.StateId(row.StateID),
		})
	}
	return tokens, nil
}

// WordCount is the number of times a word occurs across all documents.
type WordCount struct {
	Word  string `db:"word"`
	Count int64  `db:"count"`
}

// WordCounts returns the most frequent words, most frequent first.
// Ties are ordered by word. A limit less than 1 returns every word.
func (s *SQLiteStore) WordCounts(ctx context.Context, limit int) ([]WordCount, error) {
	if limit < 1 {
		limit = -1
	}
	const query = `
		SELECT CAST(value AS TEXT) AS word, COUNT(*) AS count
		FROM tokens
		WHERE is_word = 1
		GROUP BY value
		ORDER BY count DESC, value
		LIMIT ?
	`
	var counts []WordCount
	if err := s.db.SelectContext(ctx, &counts, query, limit); err != nil {
		return nil, fmt.Errorf("word counts: %w", err)
	}
	return counts, nil
}

// SaveLabels records the class and state names known to a tokenizer,
// so that stored identifiers can be read back as names.
func (s *SQLiteStore) SaveLabels(ctx context.Context, t *fsmtok.Tokenizer) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save labels: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const query = `
		INSERT INTO labels (kind, id, name)
		VALUES (?, ?, ?)
		ON CONFLICT (kind, id) DO UPDATE SET name = excluded.name
	`
	save := func(kind string, id uint32, name string) error {
		if _, err := tx.ExecContext(ctx, query, kind, int64(id), name); err != nil {
			return fmt.Errorf("save %s %q: %w", kind, name, err)
		}
		return nil
	}

	classes := append(t.Classes().Classes(), t.Transitions().Classes()...)
	for _, id := range classes {
		if err := save("class", uint32(id), t.ClassName(id)); err != nil {
			return err
		}
	}
	states := append([]fsmtok.StateId{fsmtok.StartState}, t.Transitions().States()...)
	for _, id := range states {
		if err := save("state", uint32(id), t.StateName(id)); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save labels: %w", err)
	}
	return nil
}

// Label returns the stored name for an identifier of the given kind,
// "class" or "state". It returns "" if the identifier is not stored.
func (s *SQLiteStore) Label(ctx context.Context, kind string, id uint32) (string, error) {
	const query = `SELECT name FROM labels WHERE kind = ? AND id = ?`
	var names []string
	if err := s.db.SelectContext(ctx, &names, query, kind, int64(id)); err != nil {
		return "", fmt.Errorf("label: %w", err)
	}
	if len(names) == 0 {
		return "", nil
	}
	return names[0], nil
}
