package step

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const sampleFile = `ISO-10303-21;
HEADER;
FILE_DESCRIPTION(('ViewDefinition [CoordinationView]'),'2;1');
FILE_NAME('sample.ifc','2024-01-01T00:00:00',('author'),('org'),'pre','app','');
FILE_SCHEMA(('IFC2X3'));
ENDSEC;
DATA;
#1=IFCSPACE('0a',$,'Kitchen',$,$,$,$,'Kitchen long',.ELEMENT.,.INTERNAL.,$);
#2=IFCPROPERTYSINGLEVALUE('Name',$,IFCLABEL('Lobby'),$);
#3=IFCPROPERTYSET('0b',$,'Pset_SpaceCommon',$,(#2));
#4=(IFCLENGTHMEASURE(1.)IFCNAMEDUNIT(*,.LENGTHUNIT.));
#5=IFCCARTESIANPOINT((0.,-1.5,2.5E1));
ENDSEC;
END-ISO-10303-21;
`

// TestParseSample tests parsing of header and data sections
func TestParseSample(t *testing.T) {
	file, err := ParseBytes([]byte(sampleFile))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if file.Header.Name != "sample.ifc" {
		t.Errorf("Header.Name = %q, want sample.ifc", file.Header.Name)
	}
	if len(file.Header.Schemas) != 1 || file.Header.Schemas[0] != "IFC2X3" {
		t.Errorf("Header.Schemas = %v, want [IFC2X3]", file.Header.Schemas)
	}
	if file.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", file.Len())
	}

	space, ok := file.Instance(1)
	if !ok {
		t.Fatal("instance #1 not found")
	}
	if space.Type != "IFCSPACE" {
		t.Errorf("Type = %q, want IFCSPACE", space.Type)
	}
	if name, _ := space.Param(2).Text(); name != "Kitchen" {
		t.Errorf("Param(2) = %q, want Kitchen", name)
	}
	if !space.Param(3).IsNull() {
		t.Error("Param(3) should be null")
	}
	if space.Param(8).Kind != ParamEnum || space.Param(8).Str != "ELEMENT" {
		t.Errorf("Param(8) = %v, want .ELEMENT.", space.Param(8))
	}
	if !space.Param(99).IsNull() {
		t.Error("out of range parameter should be null")
	}

	prop, _ := file.Instance(2)
	value := prop.Param(2)
	if value.Kind != ParamTyped || value.Str != "IFCLABEL" {
		t.Fatalf("Param(2) = %v, want typed IFCLABEL", value)
	}
	if text, _ := value.Unwrap().Text(); text != "Lobby" {
		t.Errorf("Unwrap() = %q, want Lobby", text)
	}

	pset, _ := file.Instance(3)
	if refs := pset.Param(4).Refs(); len(refs) != 1 || refs[0] != 2 {
		t.Errorf("Refs() = %v, want [2]", refs)
	}

	complexInst, _ := file.Instance(4)
	if !complexInst.IsComplex() || len(complexInst.Parts) != 2 {
		t.Errorf("expected complex instance with 2 parts, got %+v", complexInst)
	}

	point, _ := file.Instance(5)
	coords := point.Param(0).List
	if len(coords) != 3 || coords[1].Real != -1.5 || coords[2].Real != 25 {
		t.Errorf("coordinates = %v", point.Param(0))
	}

	order := file.Instances()
	for i, inst := range order {
		if inst.ID != i+1 {
			t.Errorf("Instances()[%d].ID = %d, want %d", i, inst.ID, i+1)
		}
	}
}

// TestParseErrors tests that malformed files fail with positioned errors
func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing marker", "HEADER;ENDSEC;"},
		{"missing equals", "ISO-10303-21;DATA;#1 IFCWALL();ENDSEC;END-ISO-10303-21;"},
		{"unclosed params", "ISO-10303-21;DATA;#1=IFCWALL('a',;ENDSEC;END-ISO-10303-21;"},
		{"duplicate id", "ISO-10303-21;DATA;#1=IFCWALL();#1=IFCDOOR();ENDSEC;END-ISO-10303-21;"},
		{"missing endsec", "ISO-10303-21;DATA;#1=IFCWALL();"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBytes([]byte(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if !IsSyntaxError(err) {
				t.Errorf("expected *SyntaxError, got %T: %v", err, err)
			}
		})
	}
}

// TestParseNotExchangeFile tests the sentinel for non-STEP input
func TestParseNotExchangeFile(t *testing.T) {
	_, err := ParseBytes([]byte("<graphml/>"))
	if err == nil {
		t.Fatal("expected error")
	}
	var se *SyntaxError
	if errors.As(err, &se) && errors.Is(err, ErrNotExchangeFile) {
		return
	}
	// '<' is not a STEP character, so the lexer may report first
	if !IsSyntaxError(err) {
		t.Errorf("expected syntax error, got %v", err)
	}

	_, err = ParseBytes([]byte("DATA;"))
	if !errors.Is(err, ErrNotExchangeFile) {
		t.Errorf("expected ErrNotExchangeFile, got %v", err)
	}
}

// TestParseDuplicateInstance tests the duplicate sentinel is reachable
func TestParseDuplicateInstance(t *testing.T) {
	_, err := ParseBytes([]byte("ISO-10303-21;DATA;#7=A();#7=B();ENDSEC;END-ISO-10303-21;"))
	if !errors.Is(err, ErrDuplicateInstance) {
		t.Errorf("expected ErrDuplicateInstance, got %v", err)
	}
}

// TestOpen tests memory-mapped parsing from disk
func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.ifc")
	if err := os.WriteFile(path, []byte(sampleFile), 0644); err != nil {
		t.Fatal(err)
	}

	file, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if file.Len() != 5 {
		t.Errorf("Len() = %d, want 5", file.Len())
	}

	if _, err := Open(filepath.Join(t.TempDir(), "missing.ifc")); err == nil {
		t.Error("expected error for missing file")
	}
}

// TestParamString tests exchange-file rendering of parameters
func TestParamString(t *testing.T) {
	tests := []struct {
		param    Param
		expected string
	}{
		{NullParam(), "$"},
		{StringParam("it's"), "'it''s'"},
		{IntegerParam(-3), "-3"},
		{RealParam(2), "2."},
		{RealParam(2.5), "2.5"},
		{EnumParam("T"), ".T."},
		{RefParam(12), "#12"},
		{ListParam(RefParam(1), RefParam(2)), "(#1,#2)"},
		{TypedParam("IFCLABEL", StringParam("x")), "IFCLABEL('x')"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.param.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}
