package graph

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// buildGraph creates nodes n0..n(size-1) and an edge for every pair in
// pairs whose endpoints fall inside the node range
func buildGraph(size int, pairs []int) *Graph {
	g := New()
	for i := 0; i < size; i++ {
		g.AddNode(fmt.Sprintf("n%d", i))
	}
	for i := 0; i+1 < len(pairs) && size > 0; i += 2 {
		u := fmt.Sprintf("n%d", pairs[i]%size)
		v := fmt.Sprintf("n%d", pairs[i+1]%size)
		g.AddEdge(u, v, P("relation", StringValue("SURROUNDS")))
	}
	return g
}

// TestGraphInvariants checks structural properties that must hold for any
// sequence of inserts and removals
func TestGraphInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("repeated node insert keeps the first payload", prop.ForAll(
		func(id, first, second string) bool {
			g := New()
			g.AddNode(id, P("v", StringValue(first)))
			g.AddNode(id, P("v", StringValue(second)))
			n, ok := g.Node(id)
			if !ok {
				return false
			}
			v, _ := n.Value("v")
			return g.NodeCount() == 1 && v.String() == first
		},
		gen.Identifier(),
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.Property("every edge endpoint is a node", prop.ForAll(
		func(size int, pairs []int) bool {
			g := buildGraph(size, pairs)
			for _, e := range g.Edges() {
				if !g.HasNode(e.From) || !g.HasNode(e.To) {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 20),
		gen.SliceOf(gen.IntRange(0, 100)),
	))

	properties.Property("degree sum is twice the edge count", prop.ForAll(
		func(size int, pairs []int) bool {
			g := buildGraph(size, pairs)
			sum := 0
			for _, n := range g.Nodes() {
				sum += g.Degree(n.ID)
			}
			return sum == 2*g.EdgeCount()
		},
		gen.IntRange(0, 20),
		gen.SliceOf(gen.IntRange(0, 100)),
	))

	properties.Property("removing isolated nodes leaves none behind", prop.ForAll(
		func(size int, pairs []int) bool {
			g := buildGraph(size, pairs)
			edges := g.EdgeCount()

			var isolated []string
			for _, n := range g.Nodes() {
				if g.Degree(n.ID) == 0 {
					isolated = append(isolated, n.ID)
				}
			}
			g.RemoveNodes(isolated...)

			for _, n := range g.Nodes() {
				if g.Degree(n.ID) == 0 {
					return false
				}
			}
			return g.EdgeCount() == edges
		},
		gen.IntRange(0, 20),
		gen.SliceOf(gen.IntRange(0, 100)),
	))

	properties.TestingRun(t)
}
