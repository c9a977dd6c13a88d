// Package roboerrors defines the error types produced by the robolang
// compiler pipeline. Each error carries both a technical message (for logs)
// and a learner-facing message (the bare problem description).
package roboerrors

import "fmt"

// compileError is an error encountered while compiling robolang source.
// Either the source could not be understood or it specifies something
// that is not allowed by the language rules.
type compileError struct {
	msg   string
	human string
	wrap  error
}

func (e *compileError) Error() string {
	return e.msg
}

// Message shows the message that should be displayed to the person compiling
// the program.
func (e *compileError) Message() string {
	return e.human
}

// Unwrap gives the error that the compileError wraps, if it wraps one.
func (e *compileError) Unwrap() error {
	return e.wrap
}

// Compile returns a new error that has both the message to show the person
// compiling the program and the technical description of the error.
func Compile(human, technical string) error {
	if technical == "" {
		technical = fmt.Sprintf("got compileError(%q)", human)
	}
	return &compileError{
		msg:   technical,
		human: human,
	}
}

// Compilef returns a new error that has a human-facing message and an
// automatically generated Error() description. The arguments given are the
// format string and the arguments to the format string.
func Compilef(humanFormat string, a ...interface{}) error {
	human := fmt.Sprintf(humanFormat, a...)
	return Compile(human, "")
}

// WrapCompile returns a new error that has both a human-facing message and
// the technical description, and that wraps the given error.
func WrapCompile(e error, human, technical string) error {
	if technical == "" {
		technical = fmt.Sprintf("got compileError(%q)", human)
	}
	return &compileError{
		msg:   technical,
		human: human,
		wrap:  e,
	}
}

// WrapCompilef returns a new error that has both a human-facing message and
// an automatically generated Error() description, and that wraps the given
// error. The arguments given are the error to wrap, then the format
// followed by its arguments.
func WrapCompilef(e error, humanFormat string, a ...interface{}) error {
	human := fmt.Sprintf(humanFormat, a...)
	return WrapCompile(e, human, "")
}

// Message gets the human-facing message for the given error. If it is one
// of the types defined in roboerrors, the learner-facing message is
// returned; otherwise err.Error() is returned.
func Message(err error) string {
	if cErr, ok := err.(*compileError); ok {
		return cErr.Message()
	}
	return err.Error()
}
