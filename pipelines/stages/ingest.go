// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package stages moves tokenized corpus documents into a store.
package stages

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/mdhender/fsmtok"
	"github.com/mdhender/fsmtok/corpus"
	store "github.com/mdhender/fsmtok/stores/sqlite"
)

// IngestService tokenizes corpus documents and saves them.
type IngestService struct {
	store  IngestStore
	corpus *corpus.Corpus
	logger *slog.Logger
}

// IngestStore defines the store operations needed by IngestService.
type IngestStore interface {
	SaveLabels(ctx context.Context, t *fsmtok.Tokenizer) error
	InsertDocument(ctx context.Context, name string, input []byte) (*store.Document, bool, error)
	InsertTokens(ctx context.Context, documentID int64, tokens []*fsmtok.Token, isWord func(*fsmtok.Token) bool) error
}

// NewIngestService creates a new IngestService.
func NewIngestService(store IngestStore, c *corpus.Corpus) *IngestService {
	return &IngestService{
		store:  store,
		corpus: c,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// SetLogger sets the logger for progress messages.
func (s *IngestService) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

// IngestResult contains the result of an ingest operation.
type IngestResult struct {
	Name       string // document name within the corpus
	DocumentID int64
	Tokens     int
	Duplicate  bool // true if the contents were already stored (idempotent no-op)

	ErrorCode    string
	ErrorMessage string
}

// IngestDocument tokenizes the document at pos and stores it with its tokens.
// Returns IngestResult with Duplicate=true if the contents are already stored.
func (s *IngestService) IngestDocument(ctx context.Context, pos int) (*IngestResult, error) {
	r, err := s.corpus.Tokenize(ctx, pos)
	if err != nil {
		return nil, err
	}

	doc, created, err := s.store.InsertDocument(ctx, r.Document.Name, r.Input)
	if err != nil {
		return nil, &ErrDatabase{Op: "insert document", Err: err}
	}
	if !created {
		s.logger.Info("ingest: duplicate", "name", r.Document.Name, "stored", doc.Name)
		return &IngestResult{
			Name:       r.Document.Name,
			DocumentID: doc.ID,
			Duplicate:  true,
		}, nil
	}

	if err := s.store.InsertTokens(ctx, doc.ID, r.Tokens, s.corpus.Filter()); err != nil {
		return nil, &ErrDatabase{Op: "insert tokens", Err: err}
	}
	s.logger.Debug("ingest: stored", "name", r.Document.Name, "id", doc.ID, "tokens", len(r.Tokens))

	return &IngestResult{
		Name:       r.Document.Name,
		DocumentID: doc.ID,
		Tokens:     len(r.Tokens),
	}, nil
}

// IngestAll saves the tokenizer's labels and then every document in the corpus.
// A document that fails is recorded in its result and the rest are still
// ingested, except that database errors and cancellation stop the run.
func (s *IngestService) IngestAll(ctx context.Context) ([]IngestResult, error) {
	if err := s.store.SaveLabels(ctx, s.corpus.Tokenizer()); err != nil {
		return nil, &ErrDatabase{Op: "save labels", Err: err}
	}

	var results []IngestResult
	for pos, doc := range s.corpus.Documents() {
		result, err := s.IngestDocument(ctx, pos)
		if err != nil {
			code := ErrorCode(err)
			if code == ErrCodeDatabase || code == ErrCodeCanceled {
				return results, fmt.Errorf("%s: %w", doc.Name, err)
			}
			s.logger.Warn("ingest: failed", "name", doc.Name, "error", err)
			results = append(results, IngestResult{
				Name:         doc.Name,
				ErrorCode:    code,
				ErrorMessage: err.Error(),
			})
			continue
		}
		results = append(results, *result)
	}

	return results, nil
}
