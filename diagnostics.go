// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package fsmtok

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// PrintDiagnostic writes a specification error in compiler style:
//
//	classes:3:10: error: invalid byte value: ...
//	    Number => 4x..58
//	              ^
//
// Errors that are not specification errors are printed on a single line.
func PrintDiagnostic(w io.Writer, err error) {
	var se *SpecificationError
	if !errors.As(err, &se) {
		_, _ = fmt.Fprintf(w, "error: %v\n", err)
		return
	}

	// Header: source:line:column: error: message
	_, _ = fmt.Fprintf(w, "%s:%d:%d: error: %s\n", se.Source, se.Line, se.Column, se.Msg)
	if se.Err != nil {
		_, _ = fmt.Fprintf(w, "    note: %v\n", se.Err)
	}

	// Tabs are expanded to a single space so the caret lines up.
	line := strings.ReplaceAll(se.Text, "\t", " ")
	_, _ = fmt.Fprintf(w, "    %s\n", line)

	// caret underline
	if se.Column > 0 && se.Column <= len(line)+1 {
		_, _ = fmt.Fprintf(w, "    %s^\n", strings.Repeat(" ", se.Column-1))
	}
}
