// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package config_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/mdhender/fsmtok"
	"github.com/mdhender/fsmtok/config"
	"github.com/mdhender/fsmtok/corpus"
	"github.com/mdhender/fsmtok/specs"
	"github.com/spf13/afero"
)

func writeFiles(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, text := range files {
		if err := afero.WriteFile(fs, path, []byte(text), 0644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	return fs
}

func TestLoad(t *testing.T) {
	fs := writeFiles(t, map[string]string{
		"/work/fsmtok.yaml": `
classes: specs/brown.classes
corpus:
  root: brown
  include: ["ca*"]
  filter:
    state: [Alpha]
  workers: 2
database: /var/db/fsmtok.db
`,
	})

	cfg, err := config.Load(fs, "/work/fsmtok.yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, want := cfg.Classes, "/work/specs/brown.classes"; got != want {
		t.Errorf("Classes = %q, want %q", got, want)
	}
	if got, want := cfg.Transitions, ""; got != want {
		t.Errorf("Transitions = %q, want %q", got, want)
	}
	if got, want := cfg.Corpus.Root, "/work/brown"; got != want {
		t.Errorf("Corpus.Root = %q, want %q", got, want)
	}
	if got, want := cfg.Database, "/var/db/fsmtok.db"; got != want {
		t.Errorf("Database = %q, want %q", got, want)
	}
	if got, want := strings.Join(cfg.Corpus.Include, ","), "ca*"; got != want {
		t.Errorf("Corpus.Include = %q, want %q", got, want)
	}
	if got, want := cfg.Corpus.Workers, 2; got != want {
		t.Errorf("Corpus.Workers = %d, want %d", got, want)
	}
	// a filter in the file replaces the default class filter
	if got, want := strings.Join(cfg.Corpus.Filter.State, ","), "Alpha"; got != want {
		t.Errorf("Corpus.Filter.State = %q, want %q", got, want)
	}
	if got := len(cfg.Corpus.Filter.Class); got != 0 {
		t.Errorf("Corpus.Filter.Class has %d entries, want 0", got)
	}
}

func TestLoad_Defaults(t *testing.T) {
	fs := writeFiles(t, map[string]string{"/fsmtok.yaml": "database: fsmtok.db\n"})
	cfg, err := config.Load(fs, "/fsmtok.yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, want := cfg.Corpus.Workers, 4; got != want {
		t.Errorf("Corpus.Workers = %d, want %d", got, want)
	}
	if got, want := strings.Join(cfg.Corpus.Filter.Class, ","), "Alpha"; got != want {
		t.Errorf("Corpus.Filter.Class = %q, want %q", got, want)
	}
}

func TestLoad_Errors(t *testing.T) {
	for _, tc := range []struct {
		name string
		text string
		want string
	}{
		{"unknown key", "colour: blue\n", "colour"},
		{"workers", "corpus:\n  workers: 0\n", "corpus.workers"},
		{"cache", "corpus:\n  cache: -1\n", "corpus.cache"},
		{"include", "corpus:\n  include: ['[']\n", "corpus.include"},
		{"exclude", "corpus:\n  exclude: ['[']\n", "corpus.exclude"},
		{"unknown filter", "corpus:\n  filter:\n    kind: [Alpha]\n", "kind"},
		{"empty filter name", "corpus:\n  filter:\n    state: ['']\n", "corpus.filter.state"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			fs := writeFiles(t, map[string]string{"/fsmtok.yaml": tc.text})
			_, err := config.Load(fs, "/fsmtok.yaml")
			if err == nil {
				t.Fatalf("Load: want error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Load: err = %q, want it to mention %q", err.Error(), tc.want)
			}
		})
	}

	if _, err := config.Load(afero.NewMemMapFs(), "/missing.yaml"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing): err = %v, want os.ErrNotExist", err)
	}
}

func TestConfig_Specs(t *testing.T) {
	fs := writeFiles(t, map[string]string{"/my.classes": "Alpha => 97..123\n"})

	cfg := config.Default()
	classSpec, transitionSpec, err := cfg.Specs(fs)
	if err != nil {
		t.Fatalf("Specs: %v", err)
	}
	if classSpec != specs.Classes() || transitionSpec != specs.Transitions() {
		t.Errorf("Specs: want the embedded defaults")
	}

	cfg.Classes = "/my.classes"
	classSpec, _, err = cfg.Specs(fs)
	if err != nil {
		t.Fatalf("Specs: %v", err)
	}
	if got, want := classSpec, "Alpha => 97..123\n"; got != want {
		t.Errorf("Specs: classes = %q, want %q", got, want)
	}

	cfg.Transitions = "/missing.transitions"
	if _, _, err := cfg.Specs(fs); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Specs: err = %v, want os.ErrNotExist", err)
	}
}

func TestConfig_Tokenizer(t *testing.T) {
	fs := writeFiles(t, map[string]string{"/bad.classes": "Alpha => 97..123\nDigit => 48..x\n"})
	cfg := config.Default()
	cfg.Classes = "/bad.classes"

	_, err := cfg.Tokenizer(fs)
	var specErr *fsmtok.SpecificationError
	if !errors.As(err, &specErr) {
		t.Fatalf("Tokenizer: err = %v, want *SpecificationError", err)
	}
	if specErr.Source != "/bad.classes" || specErr.Line != 2 {
		t.Errorf("Tokenizer: error at %s:%d, want /bad.classes:2", specErr.Source, specErr.Line)
	}
}

func TestConfig_CorpusOptions(t *testing.T) {
	fs := writeFiles(t, map[string]string{
		"/brown/ca01":  "The/at Fulton/np-tl",
		"/brown/ca02":  "foo/bar 1959",
		"/brown/other": "skipped",
	})
	cfg := config.Default()
	cfg.Corpus.Include = []string{"ca*"}
	cfg.Corpus.Cache = 8
	cfg.Corpus.Filter = config.Filter{State: []string{"Alpha", "Number"}}

	tz, err := cfg.Tokenizer(fs)
	if err != nil {
		t.Fatalf("Tokenizer: %v", err)
	}
	c, err := corpus.Open(context.Background(), fs, "/brown", tz, cfg.CorpusOptions()...)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got, want := c.Len(), 2; got != want {
		t.Fatalf("Len = %d, want %d", got, want)
	}
	words, err := c.AllWords(context.Background())
	if err != nil {
		t.Fatalf("AllWords: %v", err)
	}
	var got []string
	for _, w := range words {
		got = append(got, string(w))
	}
	if got, want := strings.Join(got, " "), "The Fulton tl foo 1959"; got != want {
		t.Errorf("AllWords = %q, want %q", got, want)
	}
}
