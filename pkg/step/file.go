// Package step reads ISO 10303-21 ("STEP physical file") exchange files,
// the serialisation IFC building models are stored in.
package step

import (
	"fmt"

	"golang.org/x/exp/mmap"
)

// Instance is one entity instance of the DATA section
type Instance struct {
	ID     int
	Type   string // upper-case entity name, empty for complex instances
	Params []Param
	Parts  []Record // partial records of a complex instance
	Line   int
}

// Record is one partial record of a complex instance
type Record struct {
	Type   string
	Params []Param
}

// Param returns the i-th parameter, or a null parameter when out of range
func (inst *Instance) Param(i int) Param {
	if i < 0 || i >= len(inst.Params) {
		return NullParam()
	}
	return inst.Params[i]
}

// IsComplex reports whether the instance was written as a set of partial records
func (inst *Instance) IsComplex() bool {
	return len(inst.Parts) > 0
}

// Header holds the well-known HEADER section entities
type Header struct {
	Description []string
	Name        string
	Schemas     []string
}

func (h *Header) apply(entity string, params []Param) {
	switch entity {
	case "FILE_DESCRIPTION":
		if len(params) > 0 {
			h.Description = texts(params[0])
		}
	case "FILE_NAME":
		if len(params) > 0 {
			h.Name, _ = params[0].Text()
		}
	case "FILE_SCHEMA":
		if len(params) > 0 {
			h.Schemas = texts(params[0])
		}
	}
}

func texts(p Param) []string {
	if s, ok := p.Text(); ok {
		return []string{s}
	}
	out := make([]string, 0, len(p.List))
	for _, item := range p.List {
		if s, ok := item.Text(); ok {
			out = append(out, s)
		}
	}
	return out
}

// File is a parsed exchange file
type File struct {
	Header    Header
	instances map[int]*Instance
	order     []*Instance
}

func newFile() *File {
	return &File{instances: make(map[int]*Instance)}
}

func (f *File) add(inst *Instance) error {
	if _, exists := f.instances[inst.ID]; exists {
		return &SyntaxError{Line: inst.Line, Column: 1, Msg: fmt.Sprintf("#%d defined twice", inst.ID), Cause: ErrDuplicateInstance}
	}
	f.instances[inst.ID] = inst
	f.order = append(f.order, inst)
	return nil
}

// Instance looks up an instance by name
func (f *File) Instance(id int) (*Instance, bool) {
	inst, ok := f.instances[id]
	return inst, ok
}

// Instances returns all instances in file order
func (f *File) Instances() []*Instance {
	return f.order
}

// Len returns the number of instances
func (f *File) Len() int {
	return len(f.order)
}

// Parse reads an exchange file from src
func Parse(src Source) (*File, error) {
	return NewParser(NewLexer(src)).Parse()
}

// ParseBytes reads an exchange file held in memory
func ParseBytes(data []byte) (*File, error) {
	return Parse(Bytes(data))
}

// Open memory-maps the file at path and parses it. The mapping is released
// before Open returns; the parsed File holds copies of every value.
func Open(path string) (*File, error) {
	reader, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	file, err := Parse(reader)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return file, nil
}
