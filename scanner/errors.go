// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package scanner

import "fmt"

// ReadError is returned when a byte source cannot be opened or read.
type ReadError struct {
	Op   string // open, read
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}
