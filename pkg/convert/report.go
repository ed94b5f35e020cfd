package convert

import (
	"time"

	"github.com/dd0wney/cluso-ifcgraph/pkg/extract"
)

// FileResult is the outcome of converting one input file
type FileResult struct {
	Input    string
	Output   string
	Nodes    int
	Edges    int
	Stats    extract.Stats
	Duration time.Duration
	Err      error
}

// OK reports whether the file was converted
func (r FileResult) OK() bool {
	return r.Err == nil
}

// Report summarises one batch run
type Report struct {
	RunID      string
	InputDir   string
	OutputDir  string
	Started    time.Time
	Duration   time.Duration
	Discovered int
	Results    []FileResult
}

// Converted returns the number of files written
func (r *Report) Converted() int {
	n := 0
	for _, res := range r.Results {
		if res.OK() {
			n++
		}
	}
	return n
}

// Failed returns the results of the files that could not be converted
func (r *Report) Failed() []FileResult {
	var failed []FileResult
	for _, res := range r.Results {
		if !res.OK() {
			failed = append(failed, res)
		}
	}
	return failed
}

// Totals sums node and edge counts over the converted files
func (r *Report) Totals() (nodes, edges int) {
	for _, res := range r.Results {
		if res.OK() {
			nodes += res.Nodes
			edges += res.Edges
		}
	}
	return nodes, edges
}
