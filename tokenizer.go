// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package fsmtok

import (
	"iter"
	"log/slog"
)

// Tokenizer owns a compiled class table and transition table.
// The tables are never modified after construction, so one Tokenizer
// may tokenize many buffers concurrently.
type Tokenizer struct {
	classes     *ClassTable
	transitions *TransitionTable
	logger      *slog.Logger
}

// New compiles both specifications and returns a Tokenizer.
// Errors are *SpecificationError values identifying the offending line.
func New(classSpec, transitionSpec string, options ...Option) (*Tokenizer, error) {
	cfg, err := newConfig(options...)
	if err != nil {
		return nil, err
	}
	classes, err := compileClasses(cfg, classSpec)
	if err != nil {
		return nil, err
	}
	transitions, err := compileTransitions(cfg, transitionSpec)
	if err != nil {
		return nil, err
	}
	t := &Tokenizer{
		classes:     classes,
		transitions: transitions,
		logger:      cfg.logger,
	}
	t.lint()
	return t, nil
}

// NewFromTables returns a Tokenizer over tables that were compiled separately.
func NewFromTables(classes *ClassTable, transitions *TransitionTable, options ...Option) (*Tokenizer, error) {
	cfg, err := newConfig(options...)
	if err != nil {
		return nil, err
	}
	t := &Tokenizer{
		classes:     classes,
		transitions: transitions,
		logger:      cfg.logger,
	}
	t.lint()
	return t, nil
}

// Tokenize returns every token in input, in input order.
func (t *Tokenizer) Tokenize(input []byte) []*Token {
	var tokens []*Token
	for tok := range t.Tokens(input) {
		tokens = append(tokens, tok)
	}
	return tokens
}

// Tokens returns a lazy sequence of the tokens in input.
// Each call starts a fresh run from StartState.
func (t *Tokenizer) Tokens(input []byte) iter.Seq[*Token] {
	return t.Stream(input).All()
}

// Stream returns a fresh single-use cursor over input.
func (t *Tokenizer) Stream(input []byte) *Stream {
	return newStream(input, t.classes, t.transitions)
}

// Classes returns the compiled class table.
func (t *Tokenizer) Classes() *ClassTable {
	return t.classes
}

// Transitions returns the compiled transition table.
func (t *Tokenizer) Transitions() *TransitionTable {
	return t.transitions
}

// ClassName returns the name of a class, preferring the class table.
func (t *Tokenizer) ClassName(id ClassId) string {
	if t.classes.Has(id) {
		return t.classes.Name(id)
	}
	return t.transitions.ClassName(id)
}

// StateName returns the name of a state.
func (t *Tokenizer) StateName(id StateId) string {
	return t.transitions.StateName(id)
}

// lint logs specification problems that are legal but probably mistakes.
func (t *Tokenizer) lint() {
	if !t.transitions.HasOutgoing(StartState) {
		t.logger.Warn("transitions: no transitions from the Start state")
	}
	for _, class := range t.transitions.Classes() {
		if !t.classes.Has(class) {
			t.logger.Warn("transitions: class is not defined by the class table",
				"class", t.transitions.ClassName(class))
		}
	}
	for _, state := range t.transitions.States() {
		if state != StartState && !t.transitions.HasOutgoing(state) {
			t.logger.Warn("transitions: state has no outgoing transitions",
				"state", t.transitions.StateName(state))
		}
	}
	for _, class := range t.classes.Classes() {
		if _, ok := t.transitions.Lookup(StartState, class); !ok {
			t.logger.Debug("transitions: class cannot start a token",
				"class", t.classes.Name(class))
		}
	}
}
