// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package fsmtok

import (
	"strconv"
	"strings"
)

// ClassTable maps byte values to classes. It is immutable once compiled.
type ClassTable struct {
	classes [256]ClassId
	labels  *Labels
}

// CompileClasses compiles class specification text. Each line has the form
//
//	Name => lo..hi     (half-open range, hi may be 256)
//	Name => n1,n2,...  (list of byte values)
//	Name => n          (single byte value)
//
// Later lines overwrite earlier ones for the same byte value.
// Any malformed line fails the compile with a *SpecificationError.
func CompileClasses(text string, options ...Option) (*ClassTable, error) {
	cfg, err := newConfig(options...)
	if err != nil {
		return nil, err
	}
	return compileClasses(cfg, text)
}

func compileClasses(cfg *Config, text string) (*ClassTable, error) {
	ct := &ClassTable{labels: newLabels()}
	for _, line := range splitSpecLines(text) {
		if len(line.fields) != 2 {
			return nil, line.error(cfg.classSource, line.fields[0].column, "expected 'Name => values'", nil)
		}
		name, spec := line.fields[0], line.fields[1]
		values, err := parseByteValues(cfg.classSource, line, spec)
		if err != nil {
			return nil, err
		}
		id, err := ct.labels.Intern(name.text)
		if err != nil {
			return nil, line.error(cfg.classSource, name.column, "invalid class name", err)
		}
		for _, v := range values {
			ct.classes[v] = ClassId(id)
		}
	}
	return ct, nil
}

// parseByteValues expands the right-hand side of a class line.
func parseByteValues(source string, line specLine, spec specField) ([]byte, error) {
	if spec.text == "" {
		return nil, line.error(source, spec.column, "missing byte values", nil)
	}
	if strings.Contains(spec.text, "..") {
		bounds := spec.subFields("..")
		if len(bounds) != 2 {
			return nil, line.error(source, spec.column, "expected range 'lo..hi'", nil)
		}
		lo, err := parseBound(bounds[0].text, 255)
		if err != nil {
			return nil, line.error(source, bounds[0].column, "invalid range start", err)
		}
		hi, err := parseBound(bounds[1].text, 256)
		if err != nil {
			return nil, line.error(source, bounds[1].column, "invalid range end", err)
		}
		if lo > hi {
			return nil, line.error(source, spec.column, "range start is greater than range end", nil)
		}
		values := make([]byte, 0, hi-lo)
		for v := lo; v < hi; v++ {
			values = append(values, byte(v))
		}
		return values, nil
	}
	var values []byte
	for _, field := range spec.subFields(",") {
		v, err := parseBound(field.text, 255)
		if err != nil {
			return nil, line.error(source, field.column, "invalid byte value", err)
		}
		values = append(values, byte(v))
	}
	return values, nil
}

// parseBound parses a decimal value in the range 0..limit.
func parseBound(s string, limit uint64) (int, error) {
	if s == "" {
		return 0, strconv.ErrSyntax
	}
	v, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, err
	}
	if v > limit {
		return 0, strconv.ErrRange
	}
	return int(v), nil
}

// Lookup returns the class of b, or NoClass if b is unclassified.
func (ct *ClassTable) Lookup(b byte) ClassId {
	return ct.classes[b]
}

// Name returns the name of the class.
func (ct *ClassTable) Name(id ClassId) string {
	return ct.labels.Name(uint32(id))
}

// Has reports whether the class was defined by the specification.
// A class whose bytes were all overwritten by later lines is still defined.
func (ct *ClassTable) Has(id ClassId) bool {
	return ct.labels.Has(uint32(id))
}

// Classes returns the defined classes in the order they were first seen.
func (ct *ClassTable) Classes() []ClassId {
	var ids []ClassId
	for _, id := range ct.labels.Ids() {
		ids = append(ids, ClassId(id))
	}
	return ids
}

// Bytes returns the byte values currently assigned to the class, ascending.
func (ct *ClassTable) Bytes(id ClassId) []byte {
	var values []byte
	for v, class := range ct.classes {
		if class == id {
			values = append(values, byte(v))
		}
	}
	return values
}
