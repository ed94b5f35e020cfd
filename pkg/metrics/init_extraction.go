package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initExtractionMetrics() {
	r.NodesWrittenTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "ifcgraph_nodes_written_total",
			Help: "Total number of nodes written by category",
		},
		[]string{"category"},
	)

	r.EdgesWrittenTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "ifcgraph_edges_written_total",
			Help: "Total number of edges written by relation",
		},
		[]string{"relation"},
	)

	r.NodesPrunedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "ifcgraph_nodes_pruned_total",
			Help: "Total number of isolated nodes removed before writing",
		},
	)

	r.NameResolutionsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "ifcgraph_name_resolutions_total",
			Help: "Total number of node names resolved by strategy",
		},
		[]string{"source"},
	)

	r.ValuesNormalizedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "ifcgraph_values_normalized_total",
			Help: "Total number of attribute values converted to text",
		},
	)

	r.RelationsSkippedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "ifcgraph_relations_skipped_total",
			Help: "Total number of relation records skipped for missing endpoints",
		},
		[]string{"relation"},
	)

	r.GraphNodes = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ifcgraph_graph_nodes",
			Help:    "Node count of written graphs",
			Buckets: prometheus.ExponentialBuckets(10, 4, 8),
		},
	)
}
