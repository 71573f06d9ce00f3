// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package fsmtok

import "fmt"

// SpecificationError is returned when class or transition specification
// text cannot be compiled. No partial table is returned with it.
type SpecificationError struct {
	Source string // name of the specification, e.g. "classes" or a file path
	Line   int    // 1-based line number
	Column int    // 1-based byte column of the offending field, 0 if unknown
	Text   string // the offending line, as written
	Msg    string // "invalid byte value"
	Err    error  // underlying cause, if any
}

func (e *SpecificationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source, e.Line, e.Column, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s:%d:%d: %s", e.Source, e.Line, e.Column, e.Msg)
}

func (e *SpecificationError) Unwrap() error {
	return e.Err
}
