package parser

import (
	"fmt"
	"strings"
)

// Diagnostic describes one problem found while parsing. Line and the
// column pair are 1-based with ColumnEnd inclusive; ContextLine is the
// literal source line containing the offending span, or empty when the
// line does not exist.
//
// Diagnostics are collected in emission order. A later diagnostic may be
// a cascade of an earlier one; the list is a transcript, not a minimal
// set.
type Diagnostic struct {
	Message     string
	Line        int
	ColumnBegin int
	ColumnEnd   int
	ContextLine string
}

// Error formats the diagnostic as "line:column: message", so a
// Diagnostic can travel through error-valued interfaces.
func (d Diagnostic) Error() string {
	return fmt.Sprintf("%d:%d: %s", d.Line, d.ColumnBegin, d.Message)
}

// Caret renders the context line with a caret run underlining the
// offending span, for terminal display:
//
//	    let x int = z;
//	                ^
//
// Returns an empty string when there is no context line.
func (d Diagnostic) Caret() string {
	if d.ContextLine == "" {
		return ""
	}

	var b strings.Builder
	b.WriteString("    ")
	b.WriteString(d.ContextLine)
	b.WriteString("\n    ")

	for col := 1; col < d.ColumnBegin; col++ {
		// Keep tab alignment so the carets land under the span.
		if col-1 < len(d.ContextLine) && d.ContextLine[col-1] == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	width := d.ColumnEnd - d.ColumnBegin + 1
	if width < 1 {
		width = 1
	}
	for i := 0; i < width; i++ {
		b.WriteByte('^')
	}
	return b.String()
}
