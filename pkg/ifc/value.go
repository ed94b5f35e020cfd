package ifc

import (
	"strconv"
	"strings"

	"github.com/dd0wney/cluso-ifcgraph/pkg/step"
)

// ValueKind identifies the dynamic type of an attribute or property value
type ValueKind uint8

const (
	KindNull ValueKind = iota
	KindString
	KindInteger
	KindReal
	KindBoolean
	KindEnum
	KindBinary
	KindRef
	KindList
)

// Value is an attribute or nominal property value as stored in the model.
// Typed parameters such as IFCLABEL('x') are unwrapped; TypeName keeps the
// defined type they were wrapped in.
type Value struct {
	Kind     ValueKind
	TypeName string
	Text     string
	Int      int64
	Real     float64
	Bool     bool
	Items    []Value
}

// Helper functions to create values

func StringValue(s string) Value { return Value{Kind: KindString, Text: s} }

func IntegerValue(i int64) Value { return Value{Kind: KindInteger, Int: i} }

func RealValue(f float64) Value { return Value{Kind: KindReal, Real: f} }

func BooleanValue(b bool) Value { return Value{Kind: KindBoolean, Bool: b} }

// ValueOf converts a parsed parameter into a Value
func ValueOf(p step.Param) Value {
	typeName := ""
	if p.Kind == step.ParamTyped {
		typeName = CanonicalType(p.Str)
		p = p.Unwrap()
	}

	var v Value
	switch p.Kind {
	case step.ParamString:
		v = StringValue(p.Str)
	case step.ParamInteger:
		v = IntegerValue(p.Int)
	case step.ParamReal:
		v = RealValue(p.Real)
	case step.ParamEnum:
		switch p.Str {
		case "T":
			v = BooleanValue(true)
		case "F":
			v = BooleanValue(false)
		case "U":
			v = Value{Kind: KindEnum, Text: "UNKNOWN"}
		default:
			v = Value{Kind: KindEnum, Text: p.Str}
		}
	case step.ParamBinary:
		v = Value{Kind: KindBinary, Text: p.Str}
	case step.ParamRef:
		v = Value{Kind: KindRef, Int: p.Int}
	case step.ParamList, step.ParamTyped:
		items := make([]Value, len(p.List))
		for i, item := range p.List {
			items[i] = ValueOf(item)
		}
		v = Value{Kind: KindList, Items: items}
	default:
		v = Value{Kind: KindNull}
	}
	v.TypeName = typeName
	return v
}

// IsNull reports whether the value is absent
func (v Value) IsNull() bool {
	return v.Kind == KindNull
}

// AsString returns the text of a string or enumeration value
func (v Value) AsString() (string, bool) {
	if v.Kind != KindString && v.Kind != KindEnum {
		return "", false
	}
	return v.Text, true
}

// Equals reports whether v is a string or enumeration equal to s
func (v Value) Equals(s string) bool {
	text, ok := v.AsString()
	return ok && text == s
}

// String renders the value as text
func (v Value) String() string {
	switch v.Kind {
	case KindNull:
		return ""
	case KindString, KindEnum, KindBinary:
		return v.Text
	case KindInteger:
		return strconv.FormatInt(v.Int, 10)
	case KindReal:
		return strconv.FormatFloat(v.Real, 'g', -1, 64)
	case KindBoolean:
		if v.Bool {
			return "True"
		}
		return "False"
	case KindRef:
		return "#" + strconv.FormatInt(v.Int, 10)
	case KindList:
		parts := make([]string, len(v.Items))
		for i, item := range v.Items {
			parts[i] = item.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	default:
		return ""
	}
}
