// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package fsmtok

// Token is a classified span of input.
type Token struct {
	Span

	// Value holds the classified bytes of the span. Unclassified bytes
	// inside the span are not part of the value.
	Value []byte

	Class ClassId // class of the last byte accepted into the token
	State StateId // automaton state the span was accumulated in
}

// Is reports whether tok.Class matches the provided class.
//
// It returns false if tok is nil.
func (tok *Token) Is(class ClassId) bool {
	if tok == nil {
		return false
	}
	return tok.Class == class
}

// IsOneOf reports whether tok.Class matches any of the provided classes.
//
// It returns false if tok is nil.
func (tok *Token) IsOneOf(classes ...ClassId) bool {
	if tok == nil {
		return false
	}
	for _, class := range classes {
		if tok.Class == class {
			return true
		}
	}
	return false
}

// InState reports whether tok.State matches the provided state.
//
// It returns false if tok is nil.
func (tok *Token) InState(state StateId) bool {
	if tok == nil {
		return false
	}
	return tok.State == state
}

// Length is the length of the value, in bytes.
func (tok *Token) Length() int {
	return len(tok.Value)
}

// Span represents a range in the source: [Start, End).
type Span struct {
	// Byte offsets into the original input slice.
	// Start is the first classified byte, End is one past the last.
	Start int
	End   int

	// 1-based line and column of the *start* of the span.
	// Lines are counted by LF bytes, columns in bytes.
	Line   int
	Column int
}

// Text is a helper to return the original text of the span,
// including any unclassified bytes inside it.
func (s Span) Text(input []byte) []byte {
	return input[s.Start:s.End]
}
