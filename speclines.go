// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package fsmtok

import (
	"strings"
)

// arrow separates the fields of a specification line.
const arrow = "=>"

// specLine is one non-ignored line of specification text.
type specLine struct {
	no     int    // 1-based line number
	text   string // the line as written, without the line ending
	fields []specField
}

// specField is a trimmed field of a specification line.
type specField struct {
	text   string
	column int // 1-based byte column of the first non-blank byte
}

// splitSpecLines splits specification text into lines of "=>"-separated fields.
// Blank lines, comment lines (first non-blank byte is '#') and lines whose
// left-hand side is empty are dropped.
func splitSpecLines(text string) []specLine {
	var lines []specLine
	for no, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if trimmed := strings.TrimSpace(line); trimmed == "" || trimmed[0] == '#' {
			continue
		}
		sl := specLine{no: no + 1, text: line, fields: splitFields(line, arrow)}
		if sl.fields[0].text == "" {
			continue
		}
		lines = append(lines, sl)
	}
	return lines
}

// splitFields splits s on sep, trimming each field and tracking its column.
func splitFields(s, sep string) []specField {
	var fields []specField
	offset := 0
	for {
		n := strings.Index(s[offset:], sep)
		end := len(s)
		if n >= 0 {
			end = offset + n
		}
		fields = append(fields, trimField(s[offset:end], offset))
		if n < 0 {
			return fields
		}
		offset = end + len(sep)
	}
}

// trimField trims blanks from raw, which starts at byte offset in its line.
func trimField(raw string, offset int) specField {
	lead := len(raw) - len(strings.TrimLeft(raw, " \t\r"))
	return specField{
		text:   strings.TrimSpace(raw),
		column: offset + lead + 1,
	}
}

// subFields splits a field on sep, keeping columns relative to the line.
func (f specField) subFields(sep string) []specField {
	fields := splitFields(f.text, sep)
	for i := range fields {
		fields[i].column += f.column - 1
	}
	return fields
}

func (l specLine) error(source string, column int, msg string, err error) *SpecificationError {
	return &SpecificationError{
		Source: source,
		Line:   l.no,
		Column: column,
		Text:   l.text,
		Msg:    msg,
		Err:    err,
	}
}
