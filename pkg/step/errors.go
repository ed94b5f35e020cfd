package step

import (
	"errors"
	"fmt"
)

var (
	// ErrNotExchangeFile is returned when the input does not start with ISO-10303-21;
	ErrNotExchangeFile = errors.New("not an ISO 10303-21 exchange file")
	// ErrDuplicateInstance is returned when an instance name is defined twice
	ErrDuplicateInstance = errors.New("duplicate instance name")
)

// SyntaxError reports malformed input at a position in the file
type SyntaxError struct {
	Line   int
	Column int
	Msg    string
	Cause  error
}

func newSyntaxError(line, column int, format string, args ...any) *SyntaxError {
	return &SyntaxError{Line: line, Column: column, Msg: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Msg)
}

// Unwrap returns the underlying cause for error chain support.
func (e *SyntaxError) Unwrap() error {
	return e.Cause
}

// IsSyntaxError reports whether err is or wraps a *SyntaxError.
func IsSyntaxError(err error) bool {
	var se *SyntaxError
	return errors.As(err, &se)
}
