package metrics

import (
	"fmt"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// File outcomes
const (
	StatusConverted = "converted"
	StatusFailed    = "failed"
)

// Pipeline stages
const (
	StageRead    = "read"
	StageExtract = "extract"
	StageWrite   = "write"
)

// ExtractionSample carries the counters of one file's extraction
type ExtractionSample struct {
	NodesByCategory   map[string]int
	EdgesByRelation   map[string]int
	NameSources       map[string]int
	SkippedByRelation map[string]int
	Pruned            int
	Normalized        int
	Nodes             int
}

// RecordFile records the outcome of one file. kind is empty on success.
func (r *Registry) RecordFile(status, kind string) {
	r.FilesTotal.WithLabelValues(status).Inc()
	if kind != "" {
		r.FileErrorsTotal.WithLabelValues(kind).Inc()
	}
}

// RecordStage records the duration of one pipeline stage
func (r *Registry) RecordStage(stage string, duration time.Duration) {
	r.StageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordBytes adds input and output file sizes
func (r *Registry) RecordBytes(input, output int64) {
	if input > 0 {
		r.InputBytesTotal.Add(float64(input))
	}
	if output > 0 {
		r.OutputBytesTotal.Add(float64(output))
	}
}

// InitLabels creates the zero-valued series for every known relation and
// name source, so they are exported before the first file is converted
func (r *Registry) InitLabels(relations, nameSources []string) {
	for _, rel := range relations {
		r.EdgesWrittenTotal.WithLabelValues(rel)
		r.RelationsSkippedTotal.WithLabelValues(rel)
	}
	for _, src := range nameSources {
		r.NameResolutionsTotal.WithLabelValues(src)
	}
}

// RecordExtraction records the counters of one written graph
func (r *Registry) RecordExtraction(s ExtractionSample) {
	for category, n := range s.NodesByCategory {
		r.NodesWrittenTotal.WithLabelValues(category).Add(float64(n))
	}
	for relation, n := range s.EdgesByRelation {
		r.EdgesWrittenTotal.WithLabelValues(relation).Add(float64(n))
	}
	for source, n := range s.NameSources {
		r.NameResolutionsTotal.WithLabelValues(source).Add(float64(n))
	}
	for relation, n := range s.SkippedByRelation {
		r.RelationsSkippedTotal.WithLabelValues(relation).Add(float64(n))
	}
	r.NodesPrunedTotal.Add(float64(s.Pruned))
	r.ValuesNormalizedTotal.Add(float64(s.Normalized))
	r.GraphNodes.Observe(float64(s.Nodes))
}

// UpdateRunMetrics records the end of a batch run
func (r *Registry) UpdateRunMetrics(discovered int, duration time.Duration, finished time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	r.FilesDiscovered.Set(float64(discovered))
	r.RunDurationSeconds.Set(duration.Seconds())
	r.LastRunTimestamp.Set(float64(finished.Unix()))
	r.MemoryAllocBytes.Set(float64(mem.Alloc))
}

// WriteTextfile writes every metric in text exposition format to path,
// for the node_exporter textfile collector
func (r *Registry) WriteTextfile(path string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
