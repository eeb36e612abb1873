package object

import (
	"errors"
	"fmt"
)

var (
	// ErrDivisionByZero is returned when dividing or taking the modulus by zero.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrIntegerOverflow is returned when an Integer result does not fit in
	// 64 bits.
	ErrIntegerOverflow = errors.New("integer overflow")

	// ErrIndexOutOfRange is returned when an array subscript is out of range.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrKeyNotFound is returned when a dictionary has no entry for a key.
	ErrKeyNotFound = errors.New("key not found")
)

// TypeError indicates an operation applied to values of the wrong type.
type TypeError struct {
	message string
}

func (e *TypeError) Error() string {
	return "type error: " + e.message
}

// TypeErrorf returns a new TypeError with a formatted message.
func TypeErrorf(format string, args ...any) error {
	return &TypeError{message: fmt.Sprintf(format, args...)}
}
