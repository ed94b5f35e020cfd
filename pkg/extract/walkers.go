package extract

import (
	"strings"

	"github.com/dd0wney/cluso-ifcgraph/pkg/ifc"
)

// Relation labels an edge
type Relation string

const (
	// RelationSurrounds links a space to an element bounding it
	RelationSurrounds Relation = "SURROUNDS"
	// RelationVoids links a wall to the door or window filling one of its openings
	RelationVoids Relation = "VOIDS"
)

// Relations lists every edge label
var Relations = []Relation{RelationSurrounds, RelationVoids}

// Triple is one discovered edge between two entities
type Triple struct {
	Source   *ifc.Entity
	Target   *ifc.Entity
	Relation Relation
}

// WalkStats counts relation records a walker could not use
type WalkStats struct {
	Considered int
	Skipped    int
}

// usable reports whether e can become a node
func usable(e *ifc.Entity) bool {
	return e != nil && e.GlobalID != ""
}

// Containment emits (space, element, SURROUNDS) for every space boundary
// with both sides present
func Containment(m *ifc.Model) ([]Triple, WalkStats) {
	var (
		out   []Triple
		stats WalkStats
	)
	for _, rel := range m.SpaceBoundaries() {
		stats.Considered++
		if !usable(rel.Space) || !usable(rel.Element) {
			stats.Skipped++
			continue
		}
		out = append(out, Triple{Source: rel.Space, Target: rel.Element, Relation: RelationSurrounds})
	}
	return out, stats
}

// AdjacencyFill joins voids relations (host to opening) with fills
// relations (opening to filling) on the opening instance and emits
// (wall, door or window, VOIDS). Openings never appear in the output.
func AdjacencyFill(m *ifc.Model) ([]Triple, WalkStats) {
	fillsByOpening := make(map[*ifc.Entity][]*ifc.Entity)
	for _, rel := range m.Fills() {
		if rel.Opening == nil {
			continue
		}
		fillsByOpening[rel.Opening] = append(fillsByOpening[rel.Opening], rel.Filling)
	}

	var (
		out   []Triple
		stats WalkStats
	)
	for _, rel := range m.Voids() {
		if rel.Opening == nil {
			continue
		}
		for _, filling := range fillsByOpening[rel.Opening] {
			stats.Considered++
			if !usable(rel.Host) || !usable(filling) {
				stats.Skipped++
				continue
			}
			if !isWallLike(rel.Host) || !isDoorOrWindow(filling) {
				continue
			}
			out = append(out, Triple{Source: rel.Host, Target: filling, Relation: RelationVoids})
		}
	}
	return out, stats
}

func isWallLike(e *ifc.Entity) bool {
	return strings.Contains(e.Type, "Wall")
}

// isDoorOrWindow matches the exact types only; subtypes such as
// IfcDoorStandardCase are excluded
func isDoorOrWindow(e *ifc.Entity) bool {
	return e.Type == ifc.TypeDoor || e.Type == ifc.TypeWindow
}
