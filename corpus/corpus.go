// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package corpus runs the tokenizer over every document under a directory
// and selects the tokens that count as words.
package corpus

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/gobwas/glob"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/mdhender/fsmtok"
	"github.com/mdhender/fsmtok/scanner"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// Corpus is an ordered set of documents sharing one Tokenizer.
type Corpus struct {
	fs        afero.Fs
	root      string
	tokenizer *fsmtok.Tokenizer
	documents []*Document

	include []glob.Glob
	exclude []glob.Glob
	filter  Filter
	workers int
	cache   *lru.Cache[int, *Result]

	logger  *slog.Logger
	metrics *Metrics
}

// Document is a file in the corpus.
type Document struct {
	Path string // path on the corpus filesystem
	Name string // path relative to the corpus root, '/' separated
	Size int64
}

// Result is a tokenized document.
type Result struct {
	Document *Document
	Input    []byte
	Tokens   []*fsmtok.Token
}

// Open enumerates the regular files under root, sorted by path, and
// returns a Corpus over the ones that pass the include and exclude patterns.
// The default word filter keeps tokens of class "Alpha".
func Open(ctx context.Context, fs afero.Fs, root string, tokenizer *fsmtok.Tokenizer, options ...Option) (*Corpus, error) {
	c := &Corpus{
		fs:        fs,
		root:      root,
		tokenizer: tokenizer,
		filter:    ByClass(fsmtok.ClassOf("Alpha")),
		workers:   4,
	}
	for _, option := range options {
		if err := option(c); err != nil {
			return nil, err
		}
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	err := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		if !c.selected(name) {
			c.logger.Debug("corpus: skipped", "name", name)
			return nil
		}
		c.documents = append(c.documents, &Document{Path: path, Name: name, Size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("corpus %s: %w", root, err)
	}
	sort.Slice(c.documents, func(i, j int) bool {
		return c.documents[i].Name < c.documents[j].Name
	})
	c.logger.Info("corpus: opened", "root", root, "documents", len(c.documents))

	return c, nil
}

// selected applies the include and exclude patterns to a relative name.
func (c *Corpus) selected(name string) bool {
	for _, g := range c.exclude {
		if g.Match(name) {
			return false
		}
	}
	if len(c.include) == 0 {
		return true
	}
	for _, g := range c.include {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// Documents returns the documents in the corpus, in path order.
func (c *Corpus) Documents() []*Document {
	documents := make([]*Document, len(c.documents))
	copy(documents, c.documents)
	return documents
}

// Len is the number of documents in the corpus.
func (c *Corpus) Len() int {
	return len(c.documents)
}

// Tokenizer returns the tokenizer shared by all documents.
func (c *Corpus) Tokenizer() *fsmtok.Tokenizer {
	return c.tokenizer
}

// Filter returns the filter that selects words.
func (c *Corpus) Filter() Filter {
	return c.filter
}

// Tokenize reads the document at pos and tokenizes it.
// With a cache, a recently tokenized document is returned without
// reading it again; callers must not modify the Result.
func (c *Corpus) Tokenize(ctx context.Context, pos int) (*Result, error) {
	if pos < 0 || pos >= len(c.documents) {
		return nil, fmt.Errorf("document %d: out of range [0, %d)", pos, len(c.documents))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.cache != nil {
		if r, ok := c.cache.Get(pos); ok {
			return r, nil
		}
	}
	doc := c.documents[pos]

	s, err := scanner.Open(c.fs, doc.Path)
	if err != nil {
		c.metrics.observeFailure()
		return nil, err
	}
	input, err := s.Scan()
	if err != nil {
		c.metrics.observeFailure()
		return nil, err
	}
	c.metrics.observeDocument(len(input))

	tokens := c.tokenizer.Tokenize(input)
	if c.metrics != nil {
		counts := map[fsmtok.ClassId]int{}
		for _, tok := range tokens {
			counts[tok.Class]++
		}
		for class, n := range counts {
			c.metrics.observeTokens(c.tokenizer.ClassName(class), n)
		}
	}
	c.logger.Debug("corpus: tokenized", "name", doc.Name, "bytes", len(input), "tokens", len(tokens))

	r := &Result{Document: doc, Input: input, Tokens: tokens}
	if c.cache != nil {
		c.cache.Add(pos, r)
	}
	return r, nil
}

// Tokens returns every token of the document at pos.
func (c *Corpus) Tokens(ctx context.Context, pos int) ([]*fsmtok.Token, error) {
	r, err := c.Tokenize(ctx, pos)
	if err != nil {
		return nil, err
	}
	return r.Tokens, nil
}

// Words returns the values of the tokens of the document at pos
// that pass the corpus filter.
func (c *Corpus) Words(ctx context.Context, pos int) ([][]byte, error) {
	tokens, err := c.Tokens(ctx, pos)
	if err != nil {
		return nil, err
	}
	words := Words(tokens, c.filter)
	c.metrics.observeWords(len(words))
	return words, nil
}

// AllWords returns the words of every document, in document order.
// Documents are tokenized concurrently; the first error cancels the rest.
func (c *Corpus) AllWords(ctx context.Context) ([][]byte, error) {
	perDocument := make([][][]byte, len(c.documents))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for pos := range c.documents {
		g.Go(func() error {
			words, err := c.Words(ctx, pos)
			if err != nil {
				return err
			}
			perDocument[pos] = words
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all [][]byte
	for _, words := range perDocument {
		all = append(all, words...)
	}
	return all, nil
}
