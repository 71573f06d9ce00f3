// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package fsmtok_test

import (
	"testing"

	"github.com/mdhender/fsmtok"
)

// testClasses deliberately leaves '9' (57), '^' (94) and '`' (96) unclassified.
const testClasses = `
	Alpha => 65..91
	Alpha => 97..123
	Number => 48..57
	Whitespace => 9,10,13,32
	Punctuation => 33..47
	Punctuation => 58..65
	Slash => 47
`

const testTransitions = `
	Start => Alpha => Alpha
	Start => Number => Number
	Start => Whitespace => Whitespace
	Start => Punctuation => Punctuation
	Start => Slash => Slash
	Slash => Slash => Slash
	Slash => Whitespace => Whitespace
	Slash => Alpha => Pos
	Alpha => Alpha | Number => Alpha
	Pos => Alpha => Pos
	Number => Number => Number
	Number => Alpha => Alpha
	Whitespace => Whitespace => Whitespace
	Punctuation => Punctuation => Punctuation
`

var (
	alpha       = fsmtok.ClassOf("Alpha")
	number      = fsmtok.ClassOf("Number")
	whitespace  = fsmtok.ClassOf("Whitespace")
	punctuation = fsmtok.ClassOf("Punctuation")
	slash       = fsmtok.ClassOf("Slash")

	inAlpha       = fsmtok.StateOf("Alpha")
	inNumber      = fsmtok.StateOf("Number")
	inWhitespace  = fsmtok.StateOf("Whitespace")
	inPunctuation = fsmtok.StateOf("Punctuation")
	inSlash       = fsmtok.StateOf("Slash")
	inPos         = fsmtok.StateOf("Pos")
)

func newTestTokenizer(t *testing.T) *fsmtok.Tokenizer {
	t.Helper()
	tz, err := fsmtok.New(testClasses, testTransitions)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return tz
}

// want describes an expected token without its span.
type want struct {
	value string
	class fsmtok.ClassId
	state fsmtok.StateId
}

func checkTokens(t *testing.T, tz *fsmtok.Tokenizer, got []*fsmtok.Token, wants []want) {
	t.Helper()
	if len(got) != len(wants) {
		for i, tok := range got {
			t.Logf("got[%d] = %q %s %s", i, tok.Value, tz.ClassName(tok.Class), tz.StateName(tok.State))
		}
		t.Fatalf("len(tokens) = %d, want %d", len(got), len(wants))
	}
	for i, w := range wants {
		tok := got[i]
		if string(tok.Value) != w.value {
			t.Errorf("token %d: value = %q, want %q", i, tok.Value, w.value)
		}
		if tok.Class != w.class {
			t.Errorf("token %d: class = %s, want %s", i, tz.ClassName(tok.Class), tz.ClassName(w.class))
		}
		if tok.State != w.state {
			t.Errorf("token %d: state = %s, want %s", i, tz.StateName(tok.State), tz.StateName(w.state))
		}
	}
}
