package module

import (
	"strconv"
	"strings"

	"golang.org/x/image/math/f64"
)

// Kind is the dynamic type of a Value.
type Kind uint8

const (
	KindUndef Kind = iota
	KindBool
	KindNumber
	KindString
	KindVector
)

// String returns the kind name as used in diagnostics.
func (k Kind) String() string {
	switch k {
	case KindUndef:
		return "undefined"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindVector:
		return "vector"
	default:
		return "unknown"
	}
}

// Value is a language value. The zero value is undef.
type Value struct {
	kind Kind
	b    bool
	num  float64
	str  string
	vec  []Value
}

// Undef returns the undefined value.
func Undef() Value { return Value{} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a numeric value.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// Str returns a string value.
func Str(s string) Value { return Value{kind: KindString, str: s} }

// Vector returns a vector of values.
func Vector(vs ...Value) Value {
	v := make([]Value, len(vs))
	copy(v, vs)
	return Value{kind: KindVector, vec: v}
}

// Numbers returns a vector of numbers.
func Numbers(ns ...float64) Value {
	v := make([]Value, len(ns))
	for i, n := range ns {
		v[i] = Number(n)
	}
	return Value{kind: KindVector, vec: v}
}

// Kind returns the dynamic type.
func (v Value) Kind() Kind { return v.kind }

// IsUndef reports whether v is undef.
func (v Value) IsUndef() bool { return v.kind == KindUndef }

// ToNumber returns the number held by v.
func (v Value) ToNumber() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// ToString returns the string held by v.
func (v Value) ToString() (string, bool) {
	return v.str, v.kind == KindString
}

// Items returns the elements of a vector, or nil.
func (v Value) Items() []Value {
	return v.vec
}

// Truthy applies the language's truthiness rules: undef, false, 0, the
// empty string and the empty vector are false.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.num != 0
	case KindString:
		return v.str != ""
	case KindVector:
		return len(v.vec) > 0
	default:
		return false
	}
}

// ToVec2 converts a vector of at least two numbers into a point. Extra
// elements are ignored.
func (v Value) ToVec2() (f64.Vec2, bool) {
	if v.kind != KindVector || len(v.vec) < 2 {
		return f64.Vec2{}, false
	}
	x, okx := v.vec[0].ToNumber()
	y, oky := v.vec[1].ToNumber()
	return f64.Vec2{x, y}, okx && oky
}

// ToSize2 interprets v as a 2D size: a number s means [s, s], a vector
// means [x, y]. A one-element vector sets x only.
func (v Value) ToSize2() (f64.Vec2, bool) {
	if n, ok := v.ToNumber(); ok {
		return f64.Vec2{n, n}, true
	}
	if v.kind == KindVector && len(v.vec) == 1 {
		x, ok := v.vec[0].ToNumber()
		return f64.Vec2{x, 0}, ok
	}
	return v.ToVec2()
}

// String formats v the way values are printed in tree dumps.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		if v.num == 0 {
			return "0"
		}
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindString:
		return strconv.Quote(v.str)
	case KindVector:
		parts := make([]string, len(v.vec))
		for i, e := range v.vec {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return "undef"
	}
}

// Equal reports whether two values are structurally equal.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.b == o.b
	case KindNumber:
		return v.num == o.num
	case KindString:
		return v.str == o.str
	case KindVector:
		if len(v.vec) != len(o.vec) {
			return false
		}
		for i := range v.vec {
			if !v.vec[i].Equal(o.vec[i]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}
