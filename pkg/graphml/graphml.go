// Package graphml reads and writes graphs in GraphML 1.0.
//
// Output follows the layout networkx produces: one <key> per attribute name
// and scope, ids d0, d1, ... in first-seen order (node attributes before
// edge attributes), and an undirected <graph>.
package graphml

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"github.com/dd0wney/cluso-ifcgraph/pkg/graph"
)

const (
	Namespace      = "http://graphml.graphdrawing.org/xmlns"
	xsiNamespace   = "http://www.w3.org/2001/XMLSchema-instance"
	schemaLocation = Namespace + " " + Namespace + "/1.0/graphml.xsd"
)

// Attribute types declared on <key>
const (
	TypeString  = "string"
	TypeLong    = "long"
	TypeDouble  = "double"
	TypeBoolean = "boolean"
)

type document struct {
	XMLName        xml.Name  `xml:"graphml"`
	Xmlns          string    `xml:"xmlns,attr,omitempty"`
	XmlnsXSI       string    `xml:"xmlns:xsi,attr,omitempty"`
	SchemaLocation string    `xml:"xsi:schemaLocation,attr,omitempty"`
	Keys           []keyElem `xml:"key"`
	Graph          graphElem `xml:"graph"`
}

type keyElem struct {
	ID   string `xml:"id,attr"`
	For  string `xml:"for,attr"`
	Name string `xml:"attr.name,attr"`
	Type string `xml:"attr.type,attr"`
}

type graphElem struct {
	EdgeDefault string     `xml:"edgedefault,attr"`
	Nodes       []nodeElem `xml:"node"`
	Edges       []edgeElem `xml:"edge"`
}

type nodeElem struct {
	ID   string     `xml:"id,attr"`
	Data []dataElem `xml:"data"`
}

type edgeElem struct {
	Source string     `xml:"source,attr"`
	Target string     `xml:"target,attr"`
	Data   []dataElem `xml:"data"`
}

type dataElem struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

func typeName(t graph.ValueType) string {
	switch t {
	case graph.TypeInt:
		return TypeLong
	case graph.TypeFloat:
		return TypeDouble
	case graph.TypeBool:
		return TypeBoolean
	default:
		return TypeString
	}
}

// keyTable assigns key ids per (scope, attribute name)
type keyTable struct {
	keys  []keyElem
	index map[string]int
}

func newKeyTable() *keyTable {
	return &keyTable{index: make(map[string]int)}
}

// observe records one value of name in scope. A name seen with two
// different types is declared as string.
func (t *keyTable) observe(scope, name string, v graph.Value) {
	id := scope + "\x00" + name
	typ := typeName(v.Type)
	if i, ok := t.index[id]; ok {
		if t.keys[i].Type != typ {
			t.keys[i].Type = TypeString
		}
		return
	}
	t.index[id] = len(t.keys)
	t.keys = append(t.keys, keyElem{
		ID:   "d" + strconv.Itoa(len(t.keys)),
		For:  scope,
		Name: name,
		Type: typ,
	})
}

func (t *keyTable) id(scope, name string) string {
	return t.keys[t.index[scope+"\x00"+name]].ID
}

func data(t *keyTable, scope string, attrs *graph.Attributes) []dataElem {
	out := make([]dataElem, 0, attrs.Len())
	for _, key := range attrs.Keys() {
		v, _ := attrs.Value(key)
		out = append(out, dataElem{Key: t.id(scope, key), Value: v.String()})
	}
	return out
}

// Encode writes g to w. Attributes that are not yet primitive values are
// normalised on the way out.
func Encode(w io.Writer, g *graph.Graph) error {
	nodes := g.Nodes()
	edges := g.Edges()

	keys := newKeyTable()
	for _, n := range nodes {
		for _, k := range n.Keys() {
			v, _ := n.Value(k)
			keys.observe("node", k, v)
		}
	}
	for _, e := range edges {
		for _, k := range e.Keys() {
			v, _ := e.Value(k)
			keys.observe("edge", k, v)
		}
	}

	doc := document{
		Xmlns:          Namespace,
		XmlnsXSI:       xsiNamespace,
		SchemaLocation: schemaLocation,
		Keys:           keys.keys,
		Graph: graphElem{
			EdgeDefault: "undirected",
			Nodes:       make([]nodeElem, len(nodes)),
			Edges:       make([]edgeElem, len(edges)),
		},
	}
	for i, n := range nodes {
		doc.Graph.Nodes[i] = nodeElem{ID: n.ID, Data: data(keys, "node", &n.Attributes)}
	}
	for i, e := range edges {
		doc.Graph.Edges[i] = edgeElem{Source: e.From, Target: e.To, Data: data(keys, "edge", &e.Attributes)}
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode graphml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Decode reads a GraphML document into a new graph. Typed keys are parsed
// back into their primitive values.
func Decode(r io.Reader) (*graph.Graph, error) {
	var doc document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode graphml: %w", err)
	}

	keys := make(map[string]keyElem, len(doc.Keys))
	for _, k := range doc.Keys {
		keys[k.ID] = k
	}

	g := graph.New()
	for _, n := range doc.Graph.Nodes {
		props, err := properties(keys, n.Data)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", n.ID, err)
		}
		if _, err := g.AddNode(n.ID, props...); err != nil {
			return nil, err
		}
	}
	for _, e := range doc.Graph.Edges {
		props, err := properties(keys, e.Data)
		if err != nil {
			return nil, fmt.Errorf("edge %q-%q: %w", e.Source, e.Target, err)
		}
		if err := g.AddEdge(e.Source, e.Target, props...); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func properties(keys map[string]keyElem, data []dataElem) ([]graph.Property, error) {
	props := make([]graph.Property, 0, len(data))
	for _, d := range data {
		k, ok := keys[d.Key]
		if !ok {
			return nil, fmt.Errorf("undeclared key %q", d.Key)
		}
		v, err := parseValue(k.Type, d.Value)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k.Name, err)
		}
		props = append(props, graph.P(k.Name, v))
	}
	return props, nil
}

func parseValue(typ, text string) (graph.Value, error) {
	switch typ {
	case TypeLong, "int":
		i, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return graph.Value{}, err
		}
		return graph.IntValue(i), nil
	case TypeDouble, "float":
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return graph.Value{}, err
		}
		return graph.FloatValue(f), nil
	case TypeBoolean:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return graph.Value{}, err
		}
		return graph.BoolValue(b), nil
	default:
		return graph.StringValue(text), nil
	}
}
