package graph

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValueType represents the type of a serializable attribute value
type ValueType uint8

const (
	TypeString ValueType = iota
	TypeInt
	TypeFloat
	TypeBool
)

// String returns the type name
func (t ValueType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeBool:
		return "bool"
	default:
		return fmt.Sprintf("ValueType(%d)", t)
	}
}

// Value is a serializable attribute value: exactly one of text, integer,
// floating-point or boolean. The zero Value is the empty string.
type Value struct {
	Type ValueType
	str  string
	num  int64
	real float64
	flag bool
}

// Helper functions to create typed values
func StringValue(s string) Value {
	return Value{Type: TypeString, str: s}
}

func IntValue(i int64) Value {
	return Value{Type: TypeInt, num: i}
}

func FloatValue(f float64) Value {
	return Value{Type: TypeFloat, real: f}
}

func BoolValue(b bool) Value {
	return Value{Type: TypeBool, flag: b}
}

// Decode methods
func (v Value) AsString() (string, error) {
	if v.Type != TypeString {
		return "", fmt.Errorf("value is not a string")
	}
	return v.str, nil
}

func (v Value) AsInt() (int64, error) {
	if v.Type != TypeInt {
		return 0, fmt.Errorf("value is not an int")
	}
	return v.num, nil
}

func (v Value) AsFloat() (float64, error) {
	if v.Type != TypeFloat {
		return 0, fmt.Errorf("value is not a float")
	}
	return v.real, nil
}

func (v Value) AsBool() (bool, error) {
	if v.Type != TypeBool {
		return false, fmt.Errorf("value is not a bool")
	}
	return v.flag, nil
}

// String renders the value as text. Floats always carry a fractional part
// or an exponent so they read back as floats.
func (v Value) String() string {
	switch v.Type {
	case TypeString:
		return v.str
	case TypeInt:
		return strconv.FormatInt(v.num, 10)
	case TypeFloat:
		return formatFloat(v.real)
	case TypeBool:
		return strconv.FormatBool(v.flag)
	default:
		return ""
	}
}

// Primitive makes Value its own normal form
func (v Value) Primitive() (Value, bool) {
	return v, true
}

func formatFloat(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Attr is a node or edge attribute value before normalisation. Anything
// that can render itself as text qualifies; Normalize maps it onto Value.
type Attr interface {
	String() string
}

// Primitive is implemented by attribute values that may map directly onto
// one of the four serializable types. ok is false when the value has no
// primitive form and must be converted to text.
type Primitive interface {
	Attr
	Primitive() (v Value, ok bool)
}

// Normalize returns the serializable form of a. converted is true when a
// had no primitive form and was replaced by its text representation.
func Normalize(a Attr) (v Value, converted bool) {
	switch a := a.(type) {
	case Value:
		return a, false
	case Primitive:
		if v, ok := a.Primitive(); ok {
			return v, false
		}
	}
	if a == nil {
		return StringValue(""), true
	}
	return StringValue(a.String()), true
}
