package step

import (
	"strconv"
	"strings"
)

// ParamKind identifies the shape of a parameter
type ParamKind uint8

const (
	ParamNull    ParamKind = iota // $
	ParamDerived                  // *
	ParamString
	ParamInteger
	ParamReal
	ParamEnum
	ParamBinary
	ParamRef   // #123
	ParamList  // ( ... )
	ParamTyped // IFCLABEL('x')
)

// Param is one parameter of an entity instance.
//
// Str holds string, enumeration and binary bodies and the type name of a
// typed parameter. Int holds integers and referenced instance names. List
// holds list members, or the wrapped parameter of a typed parameter.
type Param struct {
	Kind ParamKind
	Str  string
	Int  int64
	Real float64
	List []Param
}

// Helper functions to create parameters

func NullParam() Param { return Param{Kind: ParamNull} }

func StringParam(s string) Param { return Param{Kind: ParamString, Str: s} }

func IntegerParam(i int64) Param { return Param{Kind: ParamInteger, Int: i} }

func RealParam(f float64) Param { return Param{Kind: ParamReal, Real: f} }

func EnumParam(e string) Param { return Param{Kind: ParamEnum, Str: e} }

func RefParam(id int) Param { return Param{Kind: ParamRef, Int: int64(id)} }

func ListParam(items ...Param) Param { return Param{Kind: ParamList, List: items} }

func TypedParam(typeName string, inner Param) Param {
	return Param{Kind: ParamTyped, Str: typeName, List: []Param{inner}}
}

// IsNull reports whether the parameter was omitted ($ or *)
func (p Param) IsNull() bool {
	return p.Kind == ParamNull || p.Kind == ParamDerived
}

// Ref returns the referenced instance name
func (p Param) Ref() (int, bool) {
	if p.Kind != ParamRef {
		return 0, false
	}
	return int(p.Int), true
}

// Refs returns the instance names referenced by a list parameter, skipping
// members that are not references
func (p Param) Refs() []int {
	if p.Kind != ParamList {
		if id, ok := p.Ref(); ok {
			return []int{id}
		}
		return nil
	}
	ids := make([]int, 0, len(p.List))
	for _, item := range p.List {
		if id, ok := item.Ref(); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// Text returns the body of a string parameter
func (p Param) Text() (string, bool) {
	if p.Kind != ParamString {
		return "", false
	}
	return p.Str, true
}

// Unwrap returns the wrapped parameter of a typed parameter, or p itself
func (p Param) Unwrap() Param {
	for p.Kind == ParamTyped && len(p.List) == 1 {
		p = p.List[0]
	}
	return p
}

// String renders the parameter in exchange-file syntax
func (p Param) String() string {
	switch p.Kind {
	case ParamNull:
		return "$"
	case ParamDerived:
		return "*"
	case ParamString:
		return "'" + strings.ReplaceAll(p.Str, "'", "''") + "'"
	case ParamInteger:
		return strconv.FormatInt(p.Int, 10)
	case ParamReal:
		s := strconv.FormatFloat(p.Real, 'G', -1, 64)
		if !strings.ContainsAny(s, ".E") {
			s += "."
		}
		return s
	case ParamEnum:
		return "." + p.Str + "."
	case ParamBinary:
		return `"` + p.Str + `"`
	case ParamRef:
		return "#" + strconv.FormatInt(p.Int, 10)
	case ParamList, ParamTyped:
		parts := make([]string, len(p.List))
		for i, item := range p.List {
			parts[i] = item.String()
		}
		body := "(" + strings.Join(parts, ",") + ")"
		if p.Kind == ParamTyped {
			return p.Str + body
		}
		return body
	default:
		return "?"
	}
}
