// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package fsmtok

import (
	"fmt"
	"io"
	"log/slog"
)

// Config holds the settings shared by the compilers and the Tokenizer.
type Config struct {
	logger           *slog.Logger
	classSource      string
	transitionSource string
}

type Option func(c *Config) error

// WithLogger sets the logger used for compile-time warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) error {
		c.logger = logger
		return nil
	}
}

// WithClassSource names the class specification in error messages.
func WithClassSource(name string) Option {
	return func(c *Config) error {
		if name == "" {
			return fmt.Errorf("class source: empty name")
		}
		c.classSource = name
		return nil
	}
}

// WithTransitionSource names the transition specification in error messages.
func WithTransitionSource(name string) Option {
	return func(c *Config) error {
		if name == "" {
			return fmt.Errorf("transition source: empty name")
		}
		c.transitionSource = name
		return nil
	}
}

func newConfig(options ...Option) (*Config, error) {
	c := &Config{
		classSource:      "classes",
		transitionSource: "transitions",
	}
	for _, option := range options {
		if err := option(c); err != nil {
			return nil, err
		}
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c, nil
}
