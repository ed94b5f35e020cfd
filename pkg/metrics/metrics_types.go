package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for a conversion process
type Registry struct {
	// Conversion Metrics
	FilesTotal       *prometheus.CounterVec
	FileErrorsTotal  *prometheus.CounterVec
	StageDuration    *prometheus.HistogramVec
	InputBytesTotal  prometheus.Counter
	OutputBytesTotal prometheus.Counter
	FilesDiscovered  prometheus.Gauge

	// Extraction Metrics
	NodesWrittenTotal     *prometheus.CounterVec
	EdgesWrittenTotal     *prometheus.CounterVec
	NodesPrunedTotal      prometheus.Counter
	NameResolutionsTotal  *prometheus.CounterVec
	ValuesNormalizedTotal prometheus.Counter
	RelationsSkippedTotal *prometheus.CounterVec
	GraphNodes            prometheus.Histogram

	// Run Metrics
	RunDurationSeconds prometheus.Gauge
	LastRunTimestamp   prometheus.Gauge
	MemoryAllocBytes   prometheus.Gauge

	registry *prometheus.Registry
	mu       sync.RWMutex
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initConversionMetrics()
	r.initExtractionMetrics()
	r.initRunMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
