// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package corpus

import (
	"fmt"
	"log/slog"

	"github.com/gobwas/glob"
	lru "github.com/hashicorp/golang-lru/v2"
)

type Option func(c *Corpus) error

// WithInclude adds patterns to the include set. If the set is not empty,
// only documents whose path relative to the root matches a pattern are used.
// Patterns use '/' as the separator, so "*" stays within one directory
// and "**" crosses directories.
func WithInclude(patterns ...string) Option {
	return func(c *Corpus) error {
		for _, pattern := range patterns {
			g, err := glob.Compile(pattern, '/')
			if err != nil {
				return fmt.Errorf("invalid include pattern %q: %w", pattern, err)
			}
			c.include = append(c.include, g)
		}
		return nil
	}
}

// WithExclude adds patterns to the exclude set. Excludes win over includes.
func WithExclude(patterns ...string) Option {
	return func(c *Corpus) error {
		for _, pattern := range patterns {
			g, err := glob.Compile(pattern, '/')
			if err != nil {
				return fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
			}
			c.exclude = append(c.exclude, g)
		}
		return nil
	}
}

// WithFilter sets the filter used by Words and AllWords.
func WithFilter(filter Filter) Option {
	return func(c *Corpus) error {
		if filter == nil {
			return fmt.Errorf("filter: nil filter")
		}
		c.filter = filter
		return nil
	}
}

// WithWorkers bounds the number of documents tokenized at once by AllWords.
func WithWorkers(n int) Option {
	return func(c *Corpus) error {
		if n < 1 {
			return fmt.Errorf("workers: want at least 1, got %d", n)
		}
		c.workers = n
		return nil
	}
}

// WithCache keeps the last size tokenized documents in memory.
func WithCache(size int) Option {
	return func(c *Corpus) error {
		cache, err := lru.New[int, *Result](size)
		if err != nil {
			return fmt.Errorf("cache: %w", err)
		}
		c.cache = cache
		return nil
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Corpus) error {
		c.logger = logger
		return nil
	}
}

func WithMetrics(metrics *Metrics) Option {
	return func(c *Corpus) error {
		c.metrics = metrics
		return nil
	}
}
