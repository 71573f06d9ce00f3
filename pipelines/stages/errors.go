// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package stages

import (
	"context"
	"errors"
	"fmt"

	"github.com/mdhender/fsmtok/scanner"
)

// ErrDatabase is returned when database operations fail.
type ErrDatabase struct {
	Op  string
	Err error
}

func (e *ErrDatabase) Error() string {
	return fmt.Sprintf("database %s: %v", e.Op, e.Err)
}

func (e *ErrDatabase) Unwrap() error {
	return e.Err
}

// Error code constants for ingest results.
const (
	ErrCodeReadFile = "READ_FILE"
	ErrCodeDatabase = "DATABASE"
	ErrCodeCanceled = "CANCELED"
	ErrCodeUnknown  = "UNKNOWN"
)

// ErrorCode returns the error code string for a given error.
func ErrorCode(err error) string {
	var readErr *scanner.ReadError
	var dbErr *ErrDatabase
	switch {
	case errors.As(err, &readErr):
		return ErrCodeReadFile
	case errors.As(err, &dbErr):
		return ErrCodeDatabase
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ErrCodeCanceled
	default:
		return ErrCodeUnknown
	}
}
