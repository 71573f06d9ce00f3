// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package corpus

import (
	"github.com/mdhender/fsmtok"
)

// Filter selects the tokens that a Corpus reports as words.
type Filter func(tok *fsmtok.Token) bool

// ByClass keeps tokens whose class is one of classes.
func ByClass(classes ...fsmtok.ClassId) Filter {
	return func(tok *fsmtok.Token) bool {
		return tok.IsOneOf(classes...)
	}
}

// ByState keeps tokens accumulated in one of states.
func ByState(states ...fsmtok.StateId) Filter {
	return func(tok *fsmtok.Token) bool {
		for _, state := range states {
			if tok.InState(state) {
				return true
			}
		}
		return false
	}
}

// Any keeps every token.
func Any() Filter {
	return func(tok *fsmtok.Token) bool {
		return tok != nil
	}
}

// AnyOf keeps tokens that pass at least one of filters.
func AnyOf(filters ...Filter) Filter {
	return func(tok *fsmtok.Token) bool {
		for _, filter := range filters {
			if filter(tok) {
				return true
			}
		}
		return false
	}
}

// Words applies filter to tokens and returns the values that pass.
func Words(tokens []*fsmtok.Token, filter Filter) [][]byte {
	var words [][]byte
	for _, tok := range tokens {
		if filter(tok) {
			words = append(words, tok.Value)
		}
	}
	return words
}
