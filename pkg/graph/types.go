package graph

// Property is one key/attribute pair passed to AddNode and AddEdge
type Property struct {
	Key   string
	Value Attr
}

// P is shorthand for Property{Key: key, Value: value}
func P(key string, value Attr) Property {
	return Property{Key: key, Value: value}
}

// Attributes is an insertion-ordered attribute map
type Attributes struct {
	keys   []string
	values map[string]Attr
}

func newAttributes(props []Property) Attributes {
	a := Attributes{values: make(map[string]Attr, len(props))}
	for _, p := range props {
		a.Set(p.Key, p.Value)
	}
	return a
}

// Set stores value under key, keeping the key's original position
func (a *Attributes) Set(key string, value Attr) {
	if a.values == nil {
		a.values = make(map[string]Attr)
	}
	if _, exists := a.values[key]; !exists {
		a.keys = append(a.keys, key)
	}
	a.values[key] = value
}

// Get returns the attribute stored under key
func (a *Attributes) Get(key string) (Attr, bool) {
	v, ok := a.values[key]
	return v, ok
}

// Value returns the normalised attribute stored under key
func (a *Attributes) Value(key string) (Value, bool) {
	attr, ok := a.values[key]
	if !ok {
		return Value{}, false
	}
	v, _ := Normalize(attr)
	return v, true
}

// Keys returns attribute keys in insertion order
func (a *Attributes) Keys() []string {
	return a.keys
}

// Len returns the number of attributes
func (a *Attributes) Len() int {
	return len(a.keys)
}

// Node represents a vertex keyed by entity identifier
type Node struct {
	ID string
	Attributes
}

// Edge represents an undirected connection between two nodes. From and To
// keep the orientation of the first insertion.
type Edge struct {
	From string
	To   string
	Attributes
}

// Other returns the endpoint of e opposite id
func (e *Edge) Other(id string) string {
	if e.From == id {
		return e.To
	}
	return e.From
}

// edgeKey identifies an undirected edge by its ordered endpoint pair
type edgeKey struct {
	a, b string
}

func keyOf(u, v string) edgeKey {
	if v < u {
		u, v = v, u
	}
	return edgeKey{a: u, b: v}
}

// Statistics summarises a graph
type Statistics struct {
	NodeCount int
	EdgeCount int
}
