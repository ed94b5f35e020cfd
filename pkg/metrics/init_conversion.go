package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initConversionMetrics() {
	r.FilesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "ifcgraph_files_total",
			Help: "Total number of input files processed by outcome",
		},
		[]string{"status"},
	)

	r.FileErrorsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "ifcgraph_file_errors_total",
			Help: "Total number of failed conversions by error kind",
		},
		[]string{"kind"},
	)

	r.StageDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ifcgraph_stage_duration_seconds",
			Help:    "Per-file pipeline stage duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 30.0},
		},
		[]string{"stage"},
	)

	r.InputBytesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "ifcgraph_input_bytes_total",
			Help: "Total size of input files read in bytes",
		},
	)

	r.OutputBytesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "ifcgraph_output_bytes_total",
			Help: "Total size of GraphML files written in bytes",
		},
	)

	r.FilesDiscovered = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "ifcgraph_files_discovered",
			Help: "Number of input files found by the last run",
		},
	)
}
