// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package config loads the YAML configuration file for the fsmtok command.
package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gobwas/glob"
	"github.com/mdhender/fsmtok"
	"github.com/mdhender/fsmtok/corpus"
	"github.com/mdhender/fsmtok/specs"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// Config is the contents of a configuration file.
// Paths in the file are relative to the directory holding the file.
type Config struct {
	// Classes and Transitions name specification files.
	// An empty path selects the embedded default.
	Classes     string `json:"classes,omitempty"`
	Transitions string `json:"transitions,omitempty"`

	Corpus   Corpus `json:"corpus"`
	Database string `json:"database,omitempty"`
}

type Corpus struct {
	Root    string   `json:"root,omitempty"`
	Include []string `json:"include,omitempty"`
	Exclude []string `json:"exclude,omitempty"`
	Filter  Filter   `json:"filter"`
	Workers int      `json:"workers,omitempty"`
	Cache   int      `json:"cache,omitempty"` // documents kept in memory, 0 for none
}

// Filter names the classes and states whose tokens count as words.
// A token is a word if it matches any of them.
type Filter struct {
	Class []string `json:"class,omitempty"`
	State []string `json:"state,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Corpus: Corpus{
			Filter:  Filter{Class: []string{"Alpha"}},
			Workers: 4,
		},
	}
}

// Load reads the configuration file at path.
// Settings missing from the file keep their default values.
// A filter in the file replaces the default filter.
func Load(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	cfg.Corpus.Filter = Filter{}
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(cfg.Corpus.Filter.Class) == 0 && len(cfg.Corpus.Filter.State) == 0 {
		cfg.Corpus.Filter = Default().Corpus.Filter
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	dir := filepath.Dir(path)
	cfg.Classes = resolve(dir, cfg.Classes)
	cfg.Transitions = resolve(dir, cfg.Transitions)
	cfg.Corpus.Root = resolve(dir, cfg.Corpus.Root)
	cfg.Database = resolve(dir, cfg.Database)

	return cfg, nil
}

func resolve(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// Validate reports every problem with the configuration.
func (c *Config) Validate() error {
	var errs []error
	if c.Corpus.Workers < 1 {
		errs = append(errs, fmt.Errorf("corpus.workers: want at least 1, got %d", c.Corpus.Workers))
	}
	if c.Corpus.Cache < 0 {
		errs = append(errs, fmt.Errorf("corpus.cache: want at least 0, got %d", c.Corpus.Cache))
	}
	for _, pattern := range c.Corpus.Include {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			errs = append(errs, fmt.Errorf("corpus.include: %q: %w", pattern, err))
		}
	}
	for _, pattern := range c.Corpus.Exclude {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			errs = append(errs, fmt.Errorf("corpus.exclude: %q: %w", pattern, err))
		}
	}
	for _, name := range c.Corpus.Filter.Class {
		if name == "" {
			errs = append(errs, fmt.Errorf("corpus.filter.class: empty name"))
		}
	}
	for _, name := range c.Corpus.Filter.State {
		if name == "" {
			errs = append(errs, fmt.Errorf("corpus.filter.state: empty name"))
		}
	}
	return errors.Join(errs...)
}

// Specs returns the class and transition specifications, reading them
// from fs when a path is set.
func (c *Config) Specs(fs afero.Fs) (classSpec, transitionSpec string, err error) {
	classSpec, transitionSpec = specs.Classes(), specs.Transitions()
	if c.Classes != "" {
		data, err := afero.ReadFile(fs, c.Classes)
		if err != nil {
			return "", "", err
		}
		classSpec = string(data)
	}
	if c.Transitions != "" {
		data, err := afero.ReadFile(fs, c.Transitions)
		if err != nil {
			return "", "", err
		}
		transitionSpec = string(data)
	}
	return classSpec, transitionSpec, nil
}

// Tokenizer compiles the configured specifications.
// Specification sources are named after their files.
func (c *Config) Tokenizer(fs afero.Fs, options ...fsmtok.Option) (*fsmtok.Tokenizer, error) {
	classSpec, transitionSpec, err := c.Specs(fs)
	if err != nil {
		return nil, err
	}
	if c.Classes != "" {
		options = append(options, fsmtok.WithClassSource(c.Classes))
	}
	if c.Transitions != "" {
		options = append(options, fsmtok.WithTransitionSource(c.Transitions))
	}
	return fsmtok.New(classSpec, transitionSpec, options...)
}

// CorpusOptions returns the corpus options for the configured settings.
func (c *Config) CorpusOptions() []corpus.Option {
	var filters []corpus.Filter
	if len(c.Corpus.Filter.Class) != 0 {
		var classes []fsmtok.ClassId
		for _, name := range c.Corpus.Filter.Class {
			classes = append(classes, fsmtok.ClassOf(name))
		}
		filters = append(filters, corpus.ByClass(classes...))
	}
	if len(c.Corpus.Filter.State) != 0 {
		var states []fsmtok.StateId
		for _, name := range c.Corpus.Filter.State {
			states = append(states, fsmtok.StateOf(name))
		}
		filters = append(filters, corpus.ByState(states...))
	}

	options := []corpus.Option{
		corpus.WithInclude(c.Corpus.Include...),
		corpus.WithExclude(c.Corpus.Exclude...),
		corpus.WithWorkers(c.Corpus.Workers),
	}
	if len(filters) != 0 {
		options = append(options, corpus.WithFilter(corpus.AnyOf(filters...)))
	}
	if c.Corpus.Cache > 0 {
		options = append(options, corpus.WithCache(c.Corpus.Cache))
	}
	return options
}
