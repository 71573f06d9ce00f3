// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mdhender/fsmtok"
	"github.com/mdhender/fsmtok/specs"
	store "github.com/mdhender/fsmtok/stores/sqlite"
)

func newTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	s, err := store.NewStore(context.Background(), "")
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newTestTokenizer(t *testing.T) *fsmtok.Tokenizer {
	t.Helper()
	tz, err := fsmtok.New(specs.Classes(), specs.Transitions())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return tz
}

func isAlpha(tok *fsmtok.Token) bool {
	return tok.Is(fsmtok.ClassOf("Alpha"))
}

func TestDigest(t *testing.T) {
	// BLAKE2b-256 of the empty string
	want := "0e5751c026e543b2e8ab2eb06099daa1d1e5df47778f7787faab45cdf12fe3a8"
	if got := store.Digest(nil); got != want {
		t.Errorf("Digest(nil) = %q, want %q", got, want)
	}
	if store.Digest([]byte("a")) == store.Digest([]byte("b")) {
		t.Errorf("Digest: distinct inputs share a digest")
	}
}

func TestInsertDocument_Idempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	first, created, err := s.InsertDocument(ctx, "ca01", []byte("The/at jury/nn"))
	if err != nil {
		t.Fatalf("InsertDocument: %v", err)
	} else if !created {
		t.Errorf("InsertDocument: created = false, want true")
	}
	if first.Size != 14 {
		t.Errorf("Size = %d, want 14", first.Size)
	}

	again, created, err := s.InsertDocument(ctx, "copy-of-ca01", []byte("The/at jury/nn"))
	if err != nil {
		t.Fatalf("InsertDocument: %v", err)
	} else if created {
		t.Errorf("InsertDocument: created = true, want false")
	}
	if again.ID != first.ID || again.Name != "ca01" {
		t.Errorf("InsertDocument = (%d, %q), want (%d, %q)", again.ID, again.Name, first.ID, "ca01")
	}

	got, err := s.GetDocumentByDigest(ctx, store.Digest([]byte("The/at jury/nn")))
	if err != nil {
		t.Fatalf("GetDocumentByDigest: %v", err)
	} else if got == nil || got.ID != first.ID {
		t.Errorf("GetDocumentByDigest = %+v, want id %d", got, first.ID)
	}

	missing, err := s.GetDocumentByDigest(ctx, store.Digest([]byte("nope")))
	if err != nil {
		t.Fatalf("GetDocumentByDigest: %v", err)
	} else if missing != nil {
		t.Errorf("GetDocumentByDigest(missing) = %+v, want nil", missing)
	}

	stats, err := s.TableStats(ctx)
	if err != nil {
		t.Fatalf("TableStats: %v", err)
	}
	if stats["documents"] != 1 {
		t.Errorf("documents = %d, want 1", stats["documents"])
	}
}

func TestInsertTokens_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	tz := newTestTokenizer(t)

	input := []byte("foo/bar baz\nfoo")
	doc, _, err := s.InsertDocument(ctx, "doc", input)
	if err != nil {
		t.Fatalf("InsertDocument: %v", err)
	}
	want := tz.Tokenize(input)
	if err := s.InsertTokens(ctx, doc.ID, want, isAlpha); err != nil {
		t.Fatalf("InsertTokens: %v", err)
	}
	// inserting again replaces the rows
	if err := s.InsertTokens(ctx, doc.ID, want, isAlpha); err != nil {
		t.Fatalf("InsertTokens: %v", err)
	}

	got, err := s.Tokens(ctx, doc.ID)
	if err != nil {
		t.Fatalf("Tokens: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("Tokens: got %d tokens, want %d", len(got), len(want))
	}
	for i := range want {
		if string(got[i].Value) != string(want[i].Value) || got[i].Class != want[i].Class || got[i].State != want[i].State || got[i].Span != want[i].Span {
			t.Errorf("token %d = %+v, want %+v", i, *got[i], *want[i])
		}
	}

	counts, err := s.WordCounts(ctx, 0)
	if err != nil {
		t.Fatalf("WordCounts: %v", err)
	}
	wantCounts := []store.WordCount{{Word: "foo", Count: 2}, {Word: "bar", Count: 1}, {Word: "baz", Count: 1}}
	if len(counts) != len(wantCounts) {
		t.Fatalf("WordCounts = %v, want %v", counts, wantCounts)
	}
	for i := range wantCounts {
		if counts[i] != wantCounts[i] {
			t.Errorf("WordCounts[%d] = %v, want %v", i, counts[i], wantCounts[i])
		}
	}

	top, err := s.WordCounts(ctx, 1)
	if err != nil {
		t.Fatalf("WordCounts: %v", err)
	} else if len(top) != 1 || top[0].Word != "foo" {
		t.Errorf("WordCounts(1) = %v, want [{foo 2}]", top)
	}
}

func TestSaveLabels(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	tz := newTestTokenizer(t)

	if err := s.SaveLabels(ctx, tz); err != nil {
		t.Fatalf("SaveLabels: %v", err)
	}
	// saving twice is harmless
	if err := s.SaveLabels(ctx, tz); err != nil {
		t.Fatalf("SaveLabels: %v", err)
	}

	for _, tc := range []struct {
		kind string
		id   uint32
		want string
	}{
		{"class", uint32(fsmtok.ClassOf("Alpha")), "Alpha"},
		{"class", uint32(fsmtok.ClassOf("Slash")), "Slash"},
		{"state", uint32(fsmtok.StartState), "Start"},
		{"state", uint32(fsmtok.StateOf("Pos")), "Pos"},
		{"state", uint32(fsmtok.StateOf("Missing")), ""},
	} {
		got, err := s.Label(ctx, tc.kind, tc.id)
		if err != nil {
			t.Fatalf("Label(%s, %08x): %v", tc.kind, tc.id, err)
		}
		if got != tc.want {
			t.Errorf("Label(%s, %08x) = %q, want %q", tc.kind, tc.id, got, tc.want)
		}
	}
}

func TestNewStore_File(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "fsmtok.db")

	s, err := store.NewStore(ctx, path)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if _, _, err := s.InsertDocument(ctx, "doc", []byte("abc")); err != nil {
		t.Fatalf("InsertDocument: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// reopening keeps the data and does not fail on the existing schema
	s, err = store.NewStore(ctx, path)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer s.Close()
	doc, err := s.GetDocumentByDigest(ctx, store.Digest([]byte("abc")))
	if err != nil {
		t.Fatalf("GetDocumentByDigest: %v", err)
	} else if doc == nil || doc.Name != "doc" {
		t.Errorf("GetDocumentByDigest = %+v, want doc", doc)
	}
}
