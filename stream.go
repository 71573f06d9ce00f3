// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package fsmtok

import (
	"iter"
)

// Stream invariants and coordinate system
//
// The stream treats input as an immutable byte slice and walks it once.
//
// Fields:
//   pos    - index of the next byte to examine; len(input) at end of input.
//   line   - 1-based line of input[pos], counted by LF bytes.
//   column - 1-based byte column of input[pos].
//
//   pending - the classified bytes accepted into the current span.
//   span    - Start is the offset of pending[0], End is one past the offset
//             of the last accepted byte. Only meaningful when pending is
//             not empty.
//   state   - state of the pending span. StartState means nothing has been
//             committed yet; it is always StartState when pending is empty.
//   class   - class of the last byte accepted into the pending span.
//
// Invariants:
//   0 <= span.Start < span.End <= pos <= len(input) when pending is not empty
//   len(pending) <= span.End - span.Start
//
// Stepping, one byte per iteration:
//   - unclassified bytes advance pos and nothing else; the span stays open.
//   - while state is StartState the byte's transition is adopted and the
//     byte is accepted.
//   - a byte whose transition keeps the state is accepted.
//   - a byte whose transition changes the state ends the pending span,
//     which is returned as a token, and begins the next one. An undefined
//     transition restarts from StartState on the same byte.

// Stream is a single-use, pull-based cursor that yields tokens from one buffer.
type Stream struct {
	input       []byte
	classes     *ClassTable
	transitions *TransitionTable

	pos    int
	line   int
	column int

	pending []byte
	span    Span
	state   StateId
	class   ClassId
}

func newStream(input []byte, classes *ClassTable, transitions *TransitionTable) *Stream {
	return &Stream{
		input:       input,
		classes:     classes,
		transitions: transitions,
		line:        1,
		column:      1,
		state:       StartState,
	}
}

// Next returns the next token. It returns false once the input is exhausted,
// and keeps returning false on later calls.
func (s *Stream) Next() (*Token, bool) {
	for ; s.pos < len(s.input); s.advance() {
		b := s.input[s.pos]
		class := s.classes.Lookup(b)
		if class == NoClass {
			continue
		}
		next := s.transitions.Next(s.state, class)
		switch {
		case s.state == StartState:
			if len(s.pending) == 0 {
				s.setAnchor()
			}
			s.state, s.class = next, class
			s.accept(b)
		case next == s.state:
			s.class = class
			s.accept(b)
		default:
			tok := s.complete()
			if next == StartState {
				next = s.transitions.Next(StartState, class)
			}
			s.setAnchor()
			s.state, s.class = next, class
			s.accept(b)
			s.advance()
			return tok, true
		}
	}
	if len(s.pending) == 0 {
		return nil, false
	}
	return s.complete(), true
}

// All returns the remaining tokens as a sequence.
// The sequence shares the stream's cursor, so it can only be consumed once.
func (s *Stream) All() iter.Seq[*Token] {
	return func(yield func(*Token) bool) {
		for {
			tok, ok := s.Next()
			if !ok || !yield(tok) {
				return
			}
		}
	}
}

// Offset returns the index of the next byte the stream will examine.
func (s *Stream) Offset() int {
	return s.pos
}

// setAnchor marks the current byte as the start of the pending span.
func (s *Stream) setAnchor() {
	s.span = Span{
		Start:  s.pos,
		End:    s.pos,
		Line:   s.line,
		Column: s.column,
	}
}

// accept adds the current byte to the pending span.
func (s *Stream) accept(b byte) {
	s.pending = append(s.pending, b)
	s.span.End = s.pos + 1
}

// complete returns the pending span as a token and resets the span.
// The token gets its own copy of the bytes; the pending buffer is reused.
func (s *Stream) complete() *Token {
	tok := &Token{
		Span:  s.span,
		Value: append([]byte(nil), s.pending...),
		Class: s.class,
		State: s.state,
	}
	s.pending = s.pending[:0]
	s.state, s.class = StartState, NoClass
	return tok
}

// advance moves past the current byte and updates line/column.
func (s *Stream) advance() {
	if s.input[s.pos] == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
	s.pos++
}
