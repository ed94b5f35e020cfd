// Package ifc exposes an IFC building model read from an ISO 10303-21 file:
// rooted entities by type, the relation tables the graph extractor walks, and
// the property sets attached to each entity.
package ifc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dd0wney/cluso-ifcgraph/pkg/step"
)

// ErrNotIFC is returned when the file header names a non-IFC schema
var ErrNotIFC = errors.New("file schema is not IFC")

// Model is an IFC model. It is not safe for concurrent use; each conversion
// run opens its own.
type Model struct {
	file   *step.File
	schema string

	entities     map[int]*Entity
	types        map[*step.Instance]string
	propertySets map[int]*PropertySet
	definedBy    map[int][]int
}

// Open reads the IFC file at path
func Open(path string) (*Model, error) {
	file, err := step.Open(path)
	if err != nil {
		return nil, err
	}
	return New(file)
}

// New wraps a parsed exchange file. A header that declares schemas must
// declare an IFC one.
func New(file *step.File) (*Model, error) {
	schema := ""
	for _, s := range file.Header.Schemas {
		if strings.HasPrefix(strings.ToUpper(s), "IFC") {
			schema = strings.ToUpper(s)
			break
		}
	}
	if schema == "" && len(file.Header.Schemas) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrNotIFC, file.Header.Schemas)
	}

	return &Model{
		file:         file,
		schema:       schema,
		entities:     make(map[int]*Entity),
		types:        make(map[*step.Instance]string),
		propertySets: make(map[int]*PropertySet),
	}, nil
}

// Schema returns the declared IFC schema, e.g. IFC2X3 or IFC4
func (m *Model) Schema() string {
	return m.schema
}

// ByType returns every entity of type typ or a known subtype, in file order
func (m *Model) ByType(typ string) []*Entity {
	var out []*Entity
	for _, inst := range m.instancesOf(typ) {
		if e := m.entity(inst.ID); e != nil {
			out = append(out, e)
		}
	}
	return out
}

// Entity returns the entity with the given instance name
func (m *Model) Entity(id int) (*Entity, bool) {
	e := m.entity(id)
	return e, e != nil
}

// SpaceBoundaries returns every IfcRelSpaceBoundary, subtypes included
func (m *Model) SpaceBoundaries() []SpaceBoundary {
	var out []SpaceBoundary
	for _, inst := range m.instancesOf(TypeRelSpaceBoundary) {
		out = append(out, SpaceBoundary{
			Space:   m.entityAt(inst, attrRelatingSpace),
			Element: m.entityAt(inst, attrRelatedBuildingElement),
		})
	}
	return out
}

// Voids returns every IfcRelVoidsElement
func (m *Model) Voids() []VoidsRelation {
	var out []VoidsRelation
	for _, inst := range m.instancesOf(TypeRelVoidsElement) {
		out = append(out, VoidsRelation{
			Host:    m.entityAt(inst, attrVoidsRelatingElement),
			Opening: m.entityAt(inst, attrVoidsRelatedOpening),
		})
	}
	return out
}

// Fills returns every IfcRelFillsElement
func (m *Model) Fills() []FillsRelation {
	var out []FillsRelation
	for _, inst := range m.instancesOf(TypeRelFillsElement) {
		out = append(out, FillsRelation{
			Opening: m.entityAt(inst, attrFillsRelatingOpening),
			Filling: m.entityAt(inst, attrFillsRelatedElement),
		})
	}
	return out
}

// instancesOf filters simple instances by canonical type
func (m *Model) instancesOf(typ string) []*step.Instance {
	var out []*step.Instance
	for _, inst := range m.file.Instances() {
		if inst.IsComplex() {
			continue
		}
		if IsSubtypeOf(m.typeOf(inst), typ) {
			out = append(out, inst)
		}
	}
	return out
}

func (m *Model) typeOf(inst *step.Instance) string {
	if typ, ok := m.types[inst]; ok {
		return typ
	}
	typ := CanonicalType(inst.Type)
	m.types[inst] = typ
	return typ
}

// entityAt resolves the reference held in parameter i of inst
func (m *Model) entityAt(inst *step.Instance, i int) *Entity {
	id, ok := inst.Param(i).Ref()
	if !ok {
		return nil
	}
	return m.entity(id)
}

// entity returns the cached view of instance id, or nil when id does not
// name a simple instance
func (m *Model) entity(id int) *Entity {
	if e, ok := m.entities[id]; ok {
		return e
	}
	inst, ok := m.file.Instance(id)
	if !ok || inst.IsComplex() {
		return nil
	}

	e := &Entity{
		StepID:      inst.ID,
		Type:        m.typeOf(inst),
		Name:        ValueOf(inst.Param(attrName)),
		Description: ValueOf(inst.Param(attrDescription)),
		ObjectType:  ValueOf(inst.Param(attrObjectType)),
		model:       m,
	}
	if gid, ok := inst.Param(attrGlobalID).Unwrap().Text(); ok {
		e.GlobalID = gid
	}
	if idx, ok := longNameIndex[e.Type]; ok {
		e.HasLongName = true
		e.LongName = ValueOf(inst.Param(idx))
	}

	m.entities[id] = e
	return e
}

// propertySetsOf returns the definitions attached to entity id. The inverse
// index over IfcRelDefinesByProperties is built on first use.
func (m *Model) propertySetsOf(id int) []*PropertySet {
	if m.definedBy == nil {
		m.indexDefinitions()
	}
	ids := m.definedBy[id]
	out := make([]*PropertySet, 0, len(ids))
	for _, psetID := range ids {
		if pset := m.propertySet(psetID); pset != nil {
			out = append(out, pset)
		}
	}
	return out
}

func (m *Model) indexDefinitions() {
	m.definedBy = make(map[int][]int)
	for _, rel := range m.instancesOf(TypeRelDefinesByProperties) {
		// IFC4 allows a set of definitions here; IFC2X3 a single reference.
		definitions := rel.Param(attrDefinesRelatingDefinition).Refs()
		for _, objectID := range rel.Param(attrDefinesRelatedObjects).Refs() {
			m.definedBy[objectID] = append(m.definedBy[objectID], definitions...)
		}
	}
}

func (m *Model) propertySet(id int) *PropertySet {
	if pset, ok := m.propertySets[id]; ok {
		return pset
	}
	inst, ok := m.file.Instance(id)
	if !ok || inst.IsComplex() {
		return nil
	}

	pset := &PropertySet{StepID: id, Type: m.typeOf(inst)}
	pset.Name, _ = inst.Param(attrName).Unwrap().Text()

	if pset.IsPropertySet() {
		for _, propID := range inst.Param(attrHasProperties).Refs() {
			propInst, ok := m.file.Instance(propID)
			if !ok || propInst.IsComplex() {
				continue
			}
			prop := Property{Type: m.typeOf(propInst)}
			prop.Name, _ = propInst.Param(attrPropertyName).Unwrap().Text()
			if prop.IsSingleValue() {
				prop.Value = ValueOf(propInst.Param(attrNominalValue))
			}
			pset.Properties = append(pset.Properties, prop)
		}
	}

	m.propertySets[id] = pset
	return pset
}
