package robolang

import (
	"fmt"

	"github.com/ezelra/robolang/internal/roboerrors"
)

// SyntaxError is returned by the lexer or parser on the first lexical or
// syntactic problem encountered. Unlike semantic Diagnostics, these abort
// their phase immediately: spec.md §7 draws this line explicitly. The
// underlying error is built through roboerrors so the technical message
// (with position info, returned by Error() and printed by the CLI/REPL) and
// the human message (the bare problem description, used by FullMessage) are
// genuinely distinct.
type SyntaxError struct {
	sourceLine string
	line       int // 1-indexed
	column     int // 1-indexed
	err        error
}

func (se SyntaxError) Error() string {
	return se.err.Error()
}

// Line returns the 1-indexed line the error occurred on, or 0 if unset.
func (se SyntaxError) Line() int { return se.line }

// Column returns the 1-indexed column the error occurred on, or 0 if unset.
func (se SyntaxError) Column() int { return se.column }

// FullMessage renders the human-facing message together with the offending
// source line and a cursor pointing at the column.
func (se SyntaxError) FullMessage() string {
	msg := roboerrors.Message(se.err)
	if cursor := se.SourceLineWithCursor(); cursor != "" {
		msg = cursor + "\n" + msg
	}
	return msg
}

// SourceLineWithCursor returns the offending source line with a cursor line
// underneath it pointing at the column, or "" if no source line is known.
func (se SyntaxError) SourceLineWithCursor() string {
	if se.sourceLine == "" {
		return ""
	}
	cursor := ""
	for i := 0; i < se.column-1; i++ {
		cursor += " "
	}
	cursor += "^"
	return se.sourceLine + "\n" + cursor
}

func newSyntaxError(msg string, line, column int, sourceLine string) SyntaxError {
	var technical string
	if line == 0 {
		technical = fmt.Sprintf("syntax error: %s", msg)
	} else {
		technical = fmt.Sprintf("syntax error: line %d, column %d: %s", line, column, msg)
	}
	return SyntaxError{
		err:        roboerrors.Compile(msg, technical),
		line:       line,
		column:     column,
		sourceLine: sourceLine,
	}
}

// Severity classifies a semantic Diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "Warning"
	}
	return "Error"
}

// Diagnostic is one finding recorded by the semantic analyzer. Unlike a
// SyntaxError, diagnostics accumulate: the analyzer keeps visiting the tree
// after recording one, per spec.md §4.4/§7.
type Diagnostic struct {
	Severity Severity
	Message  string
	Line     int
	Column   int
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s (%d, %d): %s", d.Severity, d.Line, d.Column, d.Message)
}

// diagnosticSink accumulates Diagnostics during semantic analysis.
type diagnosticSink struct {
	items []Diagnostic
}

func (s *diagnosticSink) error(line, column int, format string, a ...interface{}) {
	s.items = append(s.items, Diagnostic{
		Severity: SeverityError,
		Message:  fmt.Sprintf(format, a...),
		Line:     line,
		Column:   column,
	})
}

func (s *diagnosticSink) warn(line, column int, format string, a ...interface{}) {
	s.items = append(s.items, Diagnostic{
		Severity: SeverityWarning,
		Message:  fmt.Sprintf(format, a...),
		Line:     line,
		Column:   column,
	})
}

// hasErrors reports whether any accumulated diagnostic is an error (as
// opposed to only warnings).
func (s *diagnosticSink) hasErrors() bool {
	for _, d := range s.items {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
