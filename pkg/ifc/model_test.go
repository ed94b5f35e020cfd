package ifc

import (
	"errors"
	"testing"

	"github.com/dd0wney/cluso-ifcgraph/pkg/step"
)

func openHouse(t *testing.T) *Model {
	t.Helper()
	m, err := Open("testdata/house.ifc")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return m
}

func TestOpenHouse(t *testing.T) {
	m := openHouse(t)

	if m.Schema() != "IFC2X3" {
		t.Errorf("Schema() = %q, want IFC2X3", m.Schema())
	}

	spaces := m.ByType(TypeSpace)
	if len(spaces) != 5 {
		t.Fatalf("ByType(IfcSpace) returned %d entities, want 5", len(spaces))
	}
	want := []string{"S1", "S2", "S3", "S4", "S5"}
	for i, s := range spaces {
		if s.GlobalID != want[i] {
			t.Errorf("spaces[%d].GlobalID = %q, want %q", i, s.GlobalID, want[i])
		}
		if s.Type != TypeSpace {
			t.Errorf("spaces[%d].Type = %q, want IfcSpace", i, s.Type)
		}
		if !s.HasLongName {
			t.Errorf("spaces[%d] should expose LongName", i)
		}
	}

	first := spaces[0]
	if !first.Name.Equals("Living Room") {
		t.Errorf("Name = %v, want Living Room", first.Name)
	}
	if !first.Description.Equals("Main living area") {
		t.Errorf("Description = %v, want Main living area", first.Description)
	}
	if !first.ObjectType.IsNull() {
		t.Errorf("ObjectType = %v, want null", first.ObjectType)
	}
	if !first.LongName.Equals("Living") {
		t.Errorf("LongName = %v, want Living", first.LongName)
	}
}

func TestByTypeIncludesSubtypes(t *testing.T) {
	m := openHouse(t)

	walls := m.ByType("IfcWall")
	if len(walls) != 2 {
		t.Fatalf("ByType(IfcWall) returned %d entities, want 2", len(walls))
	}
	if walls[0].Type != "IfcWallStandardCase" || walls[1].Type != "IfcWall" {
		t.Errorf("wall types = %q, %q", walls[0].Type, walls[1].Type)
	}
	if walls[0].HasLongName {
		t.Error("walls do not expose LongName")
	}

	if n := len(m.ByType(TypeSpatialStructureElement)); n != 5 {
		t.Errorf("ByType(IfcSpatialStructureElement) returned %d, want 5", n)
	}
}

func TestEntityIdentity(t *testing.T) {
	m := openHouse(t)

	a, ok := m.Entity(20)
	if !ok {
		t.Fatal("entity #20 not found")
	}
	b, _ := m.Entity(20)
	if a != b {
		t.Error("Entity should return the same pointer for the same instance")
	}

	voids := m.Voids()
	if voids[0].Host != a {
		t.Error("relation endpoints should share the cached entity")
	}

	if _, ok := m.Entity(999); ok {
		t.Error("unknown instance should not resolve")
	}
}

func TestRelations(t *testing.T) {
	m := openHouse(t)

	boundaries := m.SpaceBoundaries()
	if len(boundaries) != 5 {
		t.Fatalf("SpaceBoundaries() returned %d, want 5", len(boundaries))
	}
	if boundaries[0].Space.GlobalID != "S1" || boundaries[0].Element.GlobalID != "W1" {
		t.Errorf("boundary 0 = %s -> %s", boundaries[0].Space.GlobalID, boundaries[0].Element.GlobalID)
	}
	if boundaries[3].Element != nil {
		t.Error("boundary with $ element should have nil Element")
	}
	if boundaries[4].Element != nil {
		t.Error("boundary with dangling reference should have nil Element")
	}

	voids := m.Voids()
	if len(voids) != 3 {
		t.Fatalf("Voids() returned %d, want 3", len(voids))
	}
	fills := m.Fills()
	if len(fills) != 3 {
		t.Fatalf("Fills() returned %d, want 3", len(fills))
	}
	if fills[0].Opening != voids[0].Opening {
		t.Error("fills and voids should reference the same opening entity")
	}
	if fills[1].Filling.Type != TypeWindow {
		t.Errorf("fills[1].Filling.Type = %q, want IfcWindow", fills[1].Filling.Type)
	}
}

func TestPropertySets(t *testing.T) {
	m := openHouse(t)

	s3, _ := m.Entity(12)
	psets := s3.PropertySets()
	if len(psets) != 1 {
		t.Fatalf("PropertySets() returned %d, want 1", len(psets))
	}
	pset := psets[0]
	if !pset.IsPropertySet() || pset.Name != "Pset_SpaceCommon" {
		t.Errorf("pset = %+v", pset)
	}
	if len(pset.Properties) != 1 {
		t.Fatalf("Properties has %d entries, want 1", len(pset.Properties))
	}
	prop := pset.Properties[0]
	if !prop.IsSingleValue() || prop.Name != "Name" || !prop.Value.Equals("Kitchen") {
		t.Errorf("property = %+v", prop)
	}
	if prop.Value.TypeName != "IfcLabel" {
		t.Errorf("TypeName = %q, want IfcLabel", prop.Value.TypeName)
	}

	s1, _ := m.Entity(10)
	if len(s1.PropertySets()) != 0 {
		t.Error("S1 has no property sets")
	}
}

func TestIFC4DefinitionSet(t *testing.T) {
	src := `ISO-10303-21;HEADER;FILE_SCHEMA(('IFC4'));ENDSEC;DATA;
#1=IFCSPACE('S',$,$,$,$,$,$,$,$,$,$);
#2=IFCPROPERTYSINGLEVALUE('LongName',$,IFCTEXT('Atrium'),$);
#3=IFCPROPERTYSET('A',$,'Custom',$,(#2));
#4=IFCELEMENTQUANTITY('B',$,'Qto',$,$,());
#5=IFCRELDEFINESBYPROPERTIES('R',$,$,$,(#1),(#3,#4));
ENDSEC;END-ISO-10303-21;`

	file, err := step.ParseBytes([]byte(src))
	if err != nil {
		t.Fatalf("ParseBytes failed: %v", err)
	}
	m, err := New(file)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	space, _ := m.Entity(1)
	psets := space.PropertySets()
	if len(psets) != 2 {
		t.Fatalf("PropertySets() returned %d, want 2", len(psets))
	}
	if psets[1].IsPropertySet() || psets[1].Type != "IfcElementQuantity" {
		t.Errorf("second definition = %+v", psets[1])
	}
}

func TestNewRejectsOtherSchemas(t *testing.T) {
	file, err := step.ParseBytes([]byte(`ISO-10303-21;HEADER;FILE_SCHEMA(('AP214'));ENDSEC;DATA;ENDSEC;END-ISO-10303-21;`))
	if err != nil {
		t.Fatalf("ParseBytes failed: %v", err)
	}
	if _, err := New(file); !errors.Is(err, ErrNotIFC) {
		t.Errorf("expected ErrNotIFC, got %v", err)
	}
}

func TestCanonicalType(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"IFCWALLSTANDARDCASE", "IfcWallStandardCase"},
		{"IFCRELSPACEBOUNDARY2NDLEVEL", "IfcRelSpaceBoundary2ndLevel"},
		{"IFCDOOR", "IfcDoor"},
		{"IFCSOMETHINGNEW", "IfcSomethingnew"},
		{"FILE_NAME", "FILE_NAME"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := CanonicalType(tt.input); got != tt.expected {
				t.Errorf("CanonicalType(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestIsSubtypeOf(t *testing.T) {
	if !IsSubtypeOf("IfcRelSpaceBoundary2ndLevel", TypeRelSpaceBoundary) {
		t.Error("2nd level boundary should be a space boundary")
	}
	if IsSubtypeOf("IfcDoorStandardCase", TypeWindow) {
		t.Error("door is not a window")
	}
}

func TestValueOf(t *testing.T) {
	tests := []struct {
		name  string
		param step.Param
		kind  ValueKind
		text  string
	}{
		{"null", step.NullParam(), KindNull, ""},
		{"label", step.TypedParam("IFCLABEL", step.StringParam("x")), KindString, "x"},
		{"boolean", step.TypedParam("IFCBOOLEAN", step.EnumParam("T")), KindBoolean, "True"},
		{"unknown logical", step.EnumParam("U"), KindEnum, "UNKNOWN"},
		{"real", step.TypedParam("IFCREAL", step.RealParam(2.5)), KindReal, "2.5"},
		{"integer", step.IntegerParam(3), KindInteger, "3"},
		{"ref", step.RefParam(7), KindRef, "#7"},
		{"list", step.ListParam(step.RealParam(1), step.RealParam(2)), KindList, "(1, 2)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ValueOf(tt.param)
			if v.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", v.Kind, tt.kind)
			}
			if v.String() != tt.text {
				t.Errorf("String() = %q, want %q", v.String(), tt.text)
			}
		})
	}
}
