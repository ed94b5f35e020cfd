package extract

import (
	"strings"

	"github.com/dd0wney/cluso-ifcgraph/pkg/graph"
	"github.com/dd0wney/cluso-ifcgraph/pkg/ifc"
	"github.com/dd0wney/cluso-ifcgraph/pkg/validation"
)

// DefaultSpaceCommonPset is the property set whose Name property names a space
const DefaultSpaceCommonPset = "Pset_SpaceCommon"

// Node attribute keys, in output order
const (
	AttrGlobalID    = "GlobalId"
	AttrName        = "Name"
	AttrDescription = "Description"
	AttrObjectType  = "ObjectType"
	AttrIfcType     = "IfcType"
	AttrCategory    = "category"
	AttrRelation    = "relation"
)

// NameSource records which strategy produced a record's name
type NameSource string

const (
	SourceDirect      NameSource = "direct"
	SourceSpaceCommon NameSource = "space_common"
	SourceProperty    NameSource = "property"
	SourceIndirection NameSource = "indirection"
	SourceLongName    NameSource = "long_name"
	SourceUnresolved  NameSource = "unresolved"
)

// NameSources lists every name strategy in resolution order
var NameSources = []NameSource{
	SourceDirect, SourceSpaceCommon, SourceProperty, SourceIndirection, SourceLongName, SourceUnresolved,
}

// Record is the resolved representation of an entity for the graph. Name,
// Description and ObjectType are null when absent.
type Record struct {
	ID          string
	Name        ifc.Value
	Description ifc.Value
	ObjectType  ifc.Value
	TypeTag     string
	Category    string
	Source      NameSource
}

// Properties returns the node attributes for r. Absent optional fields
// are left out.
func (r Record) Properties() []graph.Property {
	props := make([]graph.Property, 0, 6)
	props = append(props, graph.P(AttrGlobalID, graph.StringValue(r.ID)))
	for _, opt := range []struct {
		key string
		v   ifc.Value
	}{
		{AttrName, r.Name},
		{AttrDescription, r.Description},
		{AttrObjectType, r.ObjectType},
	} {
		if !opt.v.IsNull() {
			props = append(props, graph.P(opt.key, attribute{opt.v}))
		}
	}
	props = append(props,
		graph.P(AttrIfcType, graph.StringValue(r.TypeTag)),
		graph.P(AttrCategory, graph.StringValue(r.Category)),
	)
	return props
}

// attribute carries a model value into the graph. Text, numbers and
// booleans have a primitive form; references, lists and binary do not.
type attribute struct {
	v ifc.Value
}

func (a attribute) String() string {
	return a.v.String()
}

func (a attribute) Primitive() (graph.Value, bool) {
	switch a.v.Kind {
	case ifc.KindString, ifc.KindEnum:
		s, _ := a.v.AsString()
		return graph.StringValue(s), true
	case ifc.KindInteger:
		return graph.IntValue(a.v.Int), true
	case ifc.KindReal:
		return graph.FloatValue(a.v.Real), true
	case ifc.KindBoolean:
		return graph.BoolValue(a.v.Bool), true
	default:
		return graph.Value{}, false
	}
}

// Resolver builds Records from entities
type Resolver struct {
	spaceCommon string
}

// NewResolver creates a resolver. An empty spaceCommonPset selects
// DefaultSpaceCommonPset.
func NewResolver(spaceCommonPset string) *Resolver {
	return &Resolver{spaceCommon: validation.DefaultOr(spaceCommonPset, DefaultSpaceCommonPset)}
}

// Resolve returns the record for e with Category set to its type tag
func (r *Resolver) Resolve(e *ifc.Entity) Record {
	name, source := r.resolveName(e)
	return Record{
		ID:          e.GlobalID,
		Name:        name,
		Description: e.Description,
		ObjectType:  e.ObjectType,
		TypeTag:     e.Type,
		Category:    e.Type,
		Source:      source,
	}
}

func (r *Resolver) resolveName(e *ifc.Entity) (ifc.Value, NameSource) {
	if !e.Name.IsNull() {
		return e.Name, SourceDirect
	}

	for _, pset := range e.PropertySets() {
		if !pset.IsPropertySet() {
			continue
		}
		if v, source := r.searchSet(pset); !v.IsNull() {
			return v, source
		}
	}

	if e.HasLongName && !e.LongName.IsNull() {
		return e.LongName, SourceLongName
	}
	return ifc.Value{}, SourceUnresolved
}

// searchSet looks for a name inside one property set. A null result means
// the search moves on to the next set.
//
// Outside the space-common set, properties are visited in order: the first
// one named Name or LongName (any case) answers, and the first one whose
// value is the text Name or LongName redirects to the property carrying
// that name. Either way the set is done.
func (r *Resolver) searchSet(pset *ifc.PropertySet) (ifc.Value, NameSource) {
	if pset.Name == r.spaceCommon {
		if p, ok := findProperty(pset, func(p ifc.Property) bool { return p.Name == "Name" }); ok {
			return p.Value, SourceSpaceCommon
		}
		return ifc.Value{}, SourceUnresolved
	}

	for _, p := range pset.Properties {
		if !p.IsSingleValue() {
			continue
		}
		if isNameProperty(p) {
			return p.Value, SourceProperty
		}
		if p.Value.Equals("Name") || p.Value.Equals("LongName") {
			key, _ := p.Value.AsString()
			if target, ok := findProperty(pset, func(q ifc.Property) bool { return q.Name == key }); ok {
				return target.Value, SourceIndirection
			}
			return ifc.Value{}, SourceUnresolved
		}
	}
	return ifc.Value{}, SourceUnresolved
}

func isNameProperty(p ifc.Property) bool {
	return strings.EqualFold(p.Name, "Name") || strings.EqualFold(p.Name, "LongName")
}

// findProperty returns the first single-value property of pset matching
func findProperty(pset *ifc.PropertySet, match func(ifc.Property) bool) (ifc.Property, bool) {
	for _, p := range pset.Properties {
		if p.IsSingleValue() && match(p) {
			return p, true
		}
	}
	return ifc.Property{}, false
}
