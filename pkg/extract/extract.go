// Package extract turns an IFC model into an entity-relationship graph.
//
// Spaces are inserted first, space boundaries add SURROUNDS edges from a
// space to each bounding element, and voids/fills relations are joined on
// the opening to add VOIDS edges from a wall to its doors and windows.
// Nodes left without edges are pruned and every attribute is normalised to
// a serializable primitive before the graph is returned.
package extract

import (
	"github.com/dd0wney/cluso-ifcgraph/pkg/graph"
	"github.com/dd0wney/cluso-ifcgraph/pkg/ifc"
	"github.com/dd0wney/cluso-ifcgraph/pkg/logging"
)

// Options configures one extraction
type Options struct {
	PrimaryCategory string
	SpaceCommonPset string
	LogPruned       bool
	Logger          logging.Logger
}

// Stats collects the counters of every stage of one extraction
type Stats struct {
	Build           BuildStats
	Sanitize        SanitizeStats
	NodesByCategory map[string]int
	EdgesByRelation map[Relation]int
}

// Extract builds and sanitises the graph for m
func Extract(m *ifc.Model, opts Options) (*graph.Graph, Stats) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	asm := NewAssembler(NewResolver(opts.SpaceCommonPset), opts.PrimaryCategory, logger)
	g := asm.Build(m)

	stats := Stats{Build: asm.Stats()}
	if s := stats.Build.Containment.Skipped + stats.Build.Adjacency.Skipped; s > 0 {
		logger.Warn("relations skipped", logging.Count(s))
	}

	stats.Sanitize = Sanitize(g)
	if opts.LogPruned {
		for _, id := range stats.Sanitize.PrunedIDs {
			logger.Info("pruned isolated node", logging.EntityID(id))
		}
	}

	stats.NodesByCategory, stats.EdgesByRelation = Census(g)
	return g, stats
}

// Census counts nodes by category and edges by relation
func Census(g *graph.Graph) (map[string]int, map[Relation]int) {
	nodes := make(map[string]int)
	for _, n := range g.Nodes() {
		if v, ok := n.Value(AttrCategory); ok {
			nodes[v.String()]++
		}
	}
	edges := make(map[Relation]int)
	for _, e := range g.Edges() {
		if v, ok := e.Value(AttrRelation); ok {
			edges[Relation(v.String())]++
		}
	}
	return nodes, edges
}
