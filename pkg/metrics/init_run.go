package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initRunMetrics() {
	r.RunDurationSeconds = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "ifcgraph_run_duration_seconds",
			Help: "Wall time of the last batch run in seconds",
		},
	)

	r.LastRunTimestamp = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "ifcgraph_last_run_timestamp_seconds",
			Help: "Unix time the last batch run finished",
		},
	)

	r.MemoryAllocBytes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "ifcgraph_memory_alloc_bytes",
			Help: "Bytes of allocated heap objects at the end of the last run",
		},
	)
}
