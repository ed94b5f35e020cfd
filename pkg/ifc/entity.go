package ifc

// Entity is a read-only view of one rooted model object (space, wall, door,
// window, opening, ...). The Model hands out one *Entity per instance, so
// pointer equality is instance identity.
type Entity struct {
	StepID      int
	GlobalID    string
	Type        string
	Name        Value
	Description Value
	ObjectType  Value
	LongName    Value
	HasLongName bool

	model *Model
}

// Is reports whether the entity is of type typ or one of its known subtypes
func (e *Entity) Is(typ string) bool {
	return IsSubtypeOf(e.Type, typ)
}

// PropertySets returns the property definitions attached to the entity
// through IfcRelDefinesByProperties, in file order
func (e *Entity) PropertySets() []*PropertySet {
	if e.model == nil {
		return nil
	}
	return e.model.propertySetsOf(e.StepID)
}

// PropertySet is a property definition attached to an entity. Type is the
// definition's entity type; only IfcPropertySet carries Properties.
type PropertySet struct {
	StepID     int
	Type       string
	Name       string
	Properties []Property
}

// IsPropertySet reports whether the definition is an IfcPropertySet
func (s *PropertySet) IsPropertySet() bool {
	return s.Type == TypePropertySet
}

// Property is one named property of a property set. Value is the unwrapped
// nominal value for single-value properties and null otherwise.
type Property struct {
	Type  string
	Name  string
	Value Value
}

// IsSingleValue reports whether the property is an IfcPropertySingleValue
func (p Property) IsSingleValue() bool {
	return p.Type == TypePropertySingleValue
}

// SpaceBoundary links a space to the element bounding it. Either side is nil
// when the reference was omitted or does not resolve to an entity.
type SpaceBoundary struct {
	Space   *Entity
	Element *Entity
}

// VoidsRelation links a host element to the opening cut into it
type VoidsRelation struct {
	Host    *Entity
	Opening *Entity
}

// FillsRelation links an opening to the door or window filling it
type FillsRelation struct {
	Opening *Entity
	Filling *Entity
}
