package extract

import (
	"github.com/dd0wney/cluso-ifcgraph/pkg/graph"
	"github.com/dd0wney/cluso-ifcgraph/pkg/ifc"
	"github.com/dd0wney/cluso-ifcgraph/pkg/logging"
	"github.com/dd0wney/cluso-ifcgraph/pkg/validation"
)

// DefaultPrimaryCategory is the entity type inserted before any relation is walked
const DefaultPrimaryCategory = ifc.TypeSpace

// BuildStats describes one Build
type BuildStats struct {
	Nodes       int
	Names       map[NameSource]int
	Containment WalkStats
	Adjacency   WalkStats
	Unkeyed     int // primary entities without a GlobalId
}

// Assembler accumulates nodes and edges for one model into a graph
type Assembler struct {
	g        *graph.Graph
	resolver *Resolver
	primary  string
	logger   logging.Logger
	stats    BuildStats
}

// NewAssembler creates an assembler writing into a fresh graph. An empty
// primaryCategory selects DefaultPrimaryCategory; a nil logger discards.
func NewAssembler(resolver *Resolver, primaryCategory string, logger logging.Logger) *Assembler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Assembler{
		g:        graph.New(),
		resolver: resolver,
		primary:  validation.DefaultOr(primaryCategory, DefaultPrimaryCategory),
		logger:   logger,
		stats:    BuildStats{Names: make(map[NameSource]int)},
	}
}

// AddNode inserts id with rec's attributes under category. An id that is
// already present keeps its first record.
func (a *Assembler) AddNode(id string, rec Record, category string) bool {
	rec.Category = category
	added, err := a.g.AddNode(id, rec.Properties()...)
	if err != nil {
		a.logger.Debug("node skipped", logging.Category(category), logging.Error(err))
		return false
	}
	if added {
		a.stats.Nodes++
		a.stats.Names[rec.Source]++
	}
	return added
}

// AddEdge connects src and dst, inserting either endpoint first when it is
// not a node yet. Inserted endpoints are categorised by their own type.
func (a *Assembler) AddEdge(src, dst *ifc.Entity, rel Relation) {
	a.ensure(src)
	a.ensure(dst)
	if err := a.g.AddEdge(src.GlobalID, dst.GlobalID, graph.P(AttrRelation, graph.StringValue(string(rel)))); err != nil {
		a.logger.Warn("edge skipped", logging.Relation(string(rel)), logging.Error(err))
	}
}

func (a *Assembler) ensure(e *ifc.Entity) {
	if a.g.HasNode(e.GlobalID) {
		return
	}
	a.AddNode(e.GlobalID, a.resolver.Resolve(e), e.Type)
}

// Build inserts every primary entity, then the containment edges, then
// the adjacency-fill edges, and returns the graph
func (a *Assembler) Build(m *ifc.Model) *graph.Graph {
	for _, e := range m.ByType(a.primary) {
		if !usable(e) {
			a.stats.Unkeyed++
			continue
		}
		a.AddNode(e.GlobalID, a.resolver.Resolve(e), a.primary)
	}

	containment, cs := Containment(m)
	a.stats.Containment = cs
	a.addAll(containment)

	adjacency, as := AdjacencyFill(m)
	a.stats.Adjacency = as
	a.addAll(adjacency)

	return a.g
}

func (a *Assembler) addAll(triples []Triple) {
	for _, t := range triples {
		a.logger.Debug("edge",
			logging.EntityID(t.Source.GlobalID),
			logging.String("target", t.Target.GlobalID),
			logging.Relation(string(t.Relation)))
		a.AddEdge(t.Source, t.Target, t.Relation)
	}
}

// Graph returns the graph being assembled
func (a *Assembler) Graph() *graph.Graph {
	return a.g
}

// Stats returns counters for the nodes inserted so far
func (a *Assembler) Stats() BuildStats {
	return a.stats
}
