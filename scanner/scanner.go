// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package scanner reads complete byte sources for the tokenizer.
package scanner

import (
	"errors"
	"io"

	"github.com/spf13/afero"
)

// DefaultBufferSize is the size of each read from the source.
const DefaultBufferSize = 64 * 1024

// Scanner reads the entire contents of a byte source.
type Scanner struct {
	name   string
	r      io.Reader
	closer io.Closer
	size   int
}

// New returns a Scanner over r. The name is used in error messages.
func New(r io.Reader, name string) *Scanner {
	return &Scanner{name: name, r: r, size: DefaultBufferSize}
}

// Open returns a Scanner over the file at path. The file is closed
// once Scan has read it.
func Open(fs afero.Fs, path string) (*Scanner, error) {
	fd, err := fs.Open(path)
	if err != nil {
		return nil, &ReadError{Op: "open", Path: path, Err: err}
	}
	s := New(fd, path)
	s.closer = fd
	if fi, err := fd.Stat(); err == nil && fi.Size() > 0 && fi.Size() < int64(s.size) {
		s.size = int(fi.Size()) + 1
	}
	return s, nil
}

// Name returns the name of the source.
func (s *Scanner) Name() string {
	return s.name
}

// Scan reads the source until end of input and returns its contents.
// Errors are *ReadError values wrapping the underlying I/O error.
func (s *Scanner) Scan() ([]byte, error) {
	if s.closer != nil {
		defer func() {
			_ = s.closer.Close()
			s.closer = nil
		}()
	}

	var contents []byte
	buffer := make([]byte, s.size)
	for {
		n, err := s.r.Read(buffer)
		contents = append(contents, buffer[:n]...)
		if errors.Is(err, io.EOF) {
			return contents, nil
		} else if err != nil {
			return nil, &ReadError{Op: "read", Path: s.name, Err: err}
		}
	}
}
