package convert

import (
	"errors"
	"fmt"
)

// Batch-level errors. Either one aborts a run before any file is processed.
var (
	ErrInputNotFound = errors.New("input directory not found")
	ErrNoInputFiles  = errors.New("no input files found")
)

// Kind classifies a per-file failure
type Kind string

const (
	KindRead     Kind = "read"
	KindWrite    Kind = "write"
	KindInternal Kind = "internal"
)

// FileError describes why one input file could not be converted
type FileError struct {
	Stage string // pipeline stage that failed
	File  string
	Kind  Kind
	Cause error
}

// Error implements the error interface.
func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s (%s): %v", e.Stage, e.File, e.Kind, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *FileError) Unwrap() error {
	return e.Cause
}

// KindOf returns the Kind of a *FileError in err's chain, or "" when there
// is none.
func KindOf(err error) Kind {
	var fe *FileError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}
