package graphml

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dd0wney/cluso-ifcgraph/pkg/graph"
)

const filePermissions = 0644

// Options controls WriteFile
type Options struct {
	// Atomic writes to a temporary file in the destination directory and
	// renames it into place, so a failed write never leaves a partial file
	Atomic bool
}

// DefaultOptions returns the options used by the converter
func DefaultOptions() Options {
	return Options{Atomic: true}
}

// WriteError reports a failed output write
type WriteError struct {
	Path string
	Op   string // "create", "write", "sync", "close" or "rename"
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("graphml %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// WriteFile serialises g to path, creating or replacing it. Failures are
// returned as *WriteError and never retried.
func WriteFile(path string, g *graph.Graph, opts Options) error {
	if !opts.Atomic {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePermissions)
		if err != nil {
			return &WriteError{Path: path, Op: "create", Err: err}
		}
		if err := write(f, path, g); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return &WriteError{Path: path, Op: "close", Err: err}
		}
		return nil
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &WriteError{Path: path, Op: "create", Err: err}
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if err := write(tmp, path, g); err != nil {
		return err
	}
	if err := tmp.Chmod(filePermissions); err != nil {
		return &WriteError{Path: path, Op: "write", Err: err}
	}
	if err := tmp.Sync(); err != nil {
		return &WriteError{Path: path, Op: "sync", Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &WriteError{Path: path, Op: "close", Err: err}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return &WriteError{Path: path, Op: "rename", Err: err}
	}
	committed = true
	return nil
}

func write(f *os.File, path string, g *graph.Graph) error {
	w := bufio.NewWriter(f)
	if err := Encode(w, g); err != nil {
		return &WriteError{Path: path, Op: "write", Err: err}
	}
	if err := w.Flush(); err != nil {
		return &WriteError{Path: path, Op: "write", Err: err}
	}
	return nil
}

// ReadFile decodes the GraphML file at path
func ReadFile(path string) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(bufio.NewReader(f))
}
