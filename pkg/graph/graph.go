// Package graph holds the undirected, attributed graph built for one input
// file. Nodes and edges iterate in insertion order so output is
// deterministic for a given input.
package graph

// Graph is an undirected simple graph. It is not safe for concurrent use;
// one conversion run owns one Graph.
type Graph struct {
	nodes     map[string]*Node
	order     []string
	edges     map[edgeKey]*Edge
	edgeOrder []edgeKey
	degree    map[string]int
}

// New creates an empty graph
func New() *Graph {
	return &Graph{
		nodes:  make(map[string]*Node),
		edges:  make(map[edgeKey]*Edge),
		degree: make(map[string]int),
	}
}

// AddNode inserts a node if id is not present yet. An existing node is left
// untouched, whatever props carries: the first insert wins. added reports
// whether a node was created.
func (g *Graph) AddNode(id string, props ...Property) (added bool, err error) {
	if id == "" {
		return false, &GraphError{Op: "AddNode", Entity: "node", Cause: ErrEmptyID}
	}
	if _, exists := g.nodes[id]; exists {
		return false, nil
	}

	g.nodes[id] = &Node{ID: id, Attributes: newAttributes(props)}
	g.order = append(g.order, id)
	return true, nil
}

// HasNode reports whether id is a node
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Node returns the node with the given id
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// AddEdge connects u and v. Both must already be nodes. Adding an edge that
// exists keeps the single edge and overwrites the attributes given.
func (g *Graph) AddEdge(u, v string, props ...Property) error {
	if !g.HasNode(u) {
		return NodeNotFoundError("AddEdge", u)
	}
	if !g.HasNode(v) {
		return NodeNotFoundError("AddEdge", v)
	}

	key := keyOf(u, v)
	if e, exists := g.edges[key]; exists {
		for _, p := range props {
			e.Set(p.Key, p.Value)
		}
		return nil
	}

	g.edges[key] = &Edge{From: u, To: v, Attributes: newAttributes(props)}
	g.edgeOrder = append(g.edgeOrder, key)
	g.degree[u]++
	g.degree[v]++ // a self-loop counts twice
	return nil
}

// HasEdge reports whether u and v are connected
func (g *Graph) HasEdge(u, v string) bool {
	_, ok := g.edges[keyOf(u, v)]
	return ok
}

// Edge returns the edge between u and v in either orientation
func (g *Graph) Edge(u, v string) (*Edge, bool) {
	e, ok := g.edges[keyOf(u, v)]
	return e, ok
}

// Degree returns the number of edge endpoints at id
func (g *Graph) Degree(id string) int {
	return g.degree[id]
}

// Neighbors returns the nodes adjacent to id in edge insertion order
func (g *Graph) Neighbors(id string) []string {
	var out []string
	for _, key := range g.edgeOrder {
		e := g.edges[key]
		if e.From == id || e.To == id {
			out = append(out, e.Other(id))
		}
	}
	return out
}

// RemoveNode deletes id and its incident edges
func (g *Graph) RemoveNode(id string) error {
	if !g.HasNode(id) {
		return NodeNotFoundError("RemoveNode", id)
	}
	g.RemoveNodes(id)
	return nil
}

// RemoveNodes deletes every listed node that exists, with its incident
// edges, and returns how many nodes were removed
func (g *Graph) RemoveNodes(ids ...string) int {
	doomed := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if g.HasNode(id) {
			doomed[id] = struct{}{}
		}
	}
	if len(doomed) == 0 {
		return 0
	}

	keptEdges := g.edgeOrder[:0]
	for _, key := range g.edgeOrder {
		_, dropA := doomed[key.a]
		_, dropB := doomed[key.b]
		if !dropA && !dropB {
			keptEdges = append(keptEdges, key)
			continue
		}
		g.degree[key.a]--
		g.degree[key.b]--
		delete(g.edges, key)
	}
	g.edgeOrder = keptEdges

	keptNodes := g.order[:0]
	for _, id := range g.order {
		if _, drop := doomed[id]; drop {
			delete(g.nodes, id)
			delete(g.degree, id)
			continue
		}
		keptNodes = append(keptNodes, id)
	}
	g.order = keptNodes

	return len(doomed)
}

// Nodes returns every node in insertion order
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, len(g.order))
	for i, id := range g.order {
		out[i] = g.nodes[id]
	}
	return out
}

// Edges returns every edge in insertion order
func (g *Graph) Edges() []*Edge {
	out := make([]*Edge, len(g.edgeOrder))
	for i, key := range g.edgeOrder {
		out[i] = g.edges[key]
	}
	return out
}

// NodeCount returns the number of nodes
func (g *Graph) NodeCount() int {
	return len(g.order)
}

// EdgeCount returns the number of edges
func (g *Graph) EdgeCount() int {
	return len(g.edgeOrder)
}

// Statistics returns node and edge counts
func (g *Graph) Statistics() Statistics {
	return Statistics{NodeCount: g.NodeCount(), EdgeCount: g.EdgeCount()}
}
