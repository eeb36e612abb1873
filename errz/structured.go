// Package errz defines the error taxonomy shared by every stage of a script
// run, and the Reporter latch that holds the single error surfaced per run.
package errz

import (
	"errors"
	"fmt"
)

// ErrorKind represents the category of an error.
type ErrorKind int

const (
	// ErrLexical indicates an unrecognized character sequence.
	ErrLexical ErrorKind = iota
	// ErrSyntax indicates a syntax/parsing error.
	ErrSyntax
	// ErrSemantic indicates an undeclared name, a type mismatch or a bad
	// built-in call.
	ErrSemantic
	// ErrRuntime indicates an error raised while executing a program.
	ErrRuntime
)

// String returns the string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrLexical:
		return "lexical error"
	case ErrSyntax:
		return "syntax error"
	case ErrSemantic:
		return "semantic error"
	case ErrRuntime:
		return "runtime error"
	default:
		return "error"
	}
}

// Special line values. Any line >= 0 is a 0-indexed source line.
const (
	// LineUnset marks a Reporter slot that holds no error.
	LineUnset = -1
	// NoLine marks an error that is not tied to a source position.
	NoLine = -2
)

// Error is an error with a kind and the source line it was raised on.
type Error struct {
	Kind    ErrorKind
	Message string
	Line    int
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Line < 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s on line %d", e.Kind, e.Message, e.Line+1)
}

// Unwrap returns the underlying cause of the error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// LineNumber returns the 1-indexed line of the error, or 0 when the error
// has no line.
func (e *Error) LineNumber() int {
	if e.Line < 0 {
		return 0
	}
	return e.Line + 1
}

// New creates an Error with a formatted message.
func New(kind ErrorKind, line int, format string, args ...any) *Error {
	err := fmt.Errorf(format, args...)
	return &Error{
		Kind:    kind,
		Message: err.Error(),
		Line:    line,
		Cause:   errors.Unwrap(err),
	}
}

// As returns the *Error in err's chain, if there is one.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Reporter is a single-slot, first-error-wins latch. Each run owns its own
// Reporter; it must never be shared between independent runs.
type Reporter struct {
	err      *Error
	callback func(string)
}

// NewReporter returns an empty Reporter. The callback is optional and is
// invoked once, with the formatted message, when the slot is first set.
func NewReporter(callback func(string)) *Reporter {
	return &Reporter{callback: callback}
}

// Report latches a new error unless one is already set. It returns true if
// this call set the slot.
func (r *Reporter) Report(kind ErrorKind, line int, format string, args ...any) bool {
	return r.Latch(New(kind, line, format, args...))
}

// Latch stores err unless an error is already set. It returns true if this
// call set the slot.
func (r *Reporter) Latch(err *Error) bool {
	if err == nil || r.err != nil {
		return false
	}
	r.err = err
	if r.callback != nil {
		r.callback(err.Error())
	}
	return true
}

// HasError returns true if the slot is set.
func (r *Reporter) HasError() bool {
	return r.err != nil
}

// Err returns the latched error, or nil.
func (r *Reporter) Err() *Error {
	return r.err
}

// Line returns the line of the latched error, or LineUnset.
func (r *Reporter) Line() int {
	if r.err == nil {
		return LineUnset
	}
	return r.err.Line
}

// Reset clears the slot. It must be called before reusing a Reporter for an
// independent run.
func (r *Reporter) Reset() {
	r.err = nil
}
