package extract

import (
	"github.com/dd0wney/cluso-ifcgraph/pkg/graph"
)

// SanitizeStats describes one Sanitize pass
type SanitizeStats struct {
	Pruned    int
	PrunedIDs []string
	Converted int
}

// Sanitize removes every node without edges, then replaces every node and
// edge attribute with its serializable form. Values outside the four
// primitive types become text.
func Sanitize(g *graph.Graph) SanitizeStats {
	var stats SanitizeStats

	for _, n := range g.Nodes() {
		if g.Degree(n.ID) == 0 {
			stats.PrunedIDs = append(stats.PrunedIDs, n.ID)
		}
	}
	stats.Pruned = g.RemoveNodes(stats.PrunedIDs...)

	for _, n := range g.Nodes() {
		stats.Converted += normalizeAll(&n.Attributes)
	}
	for _, e := range g.Edges() {
		stats.Converted += normalizeAll(&e.Attributes)
	}
	return stats
}

func normalizeAll(attrs *graph.Attributes) int {
	converted := 0
	for _, key := range attrs.Keys() {
		a, _ := attrs.Get(key)
		v, c := graph.Normalize(a)
		if c {
			converted++
		}
		attrs.Set(key, v)
	}
	return converted
}
