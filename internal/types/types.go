// Package types models the textual type spellings the translator works
// with: a simple type is a base identifier plus zero or more pointer
// levels. There is no real type system here, only normalized spellings.
package types

import (
	"strings"
)

// SimpleType is a base identifier plus a pointer depth, e.g. "char *"
// is {Base: "char", Stars: 1}.
type SimpleType struct {
	Base  string
	Stars int
}

func (t SimpleType) String() string {
	if t.Stars == 0 {
		return t.Base
	}
	return t.Base + " " + strings.Repeat("*", t.Stars)
}

// Equals compares normalized spellings: base identifier and pointer
// depth must match exactly.
func (t SimpleType) Equals(other SimpleType) bool {
	return t.Base == other.Base && t.Stars == other.Stars
}

// Pointer returns the type one pointer level deeper.
func (t SimpleType) Pointer() SimpleType {
	return SimpleType{Base: t.Base, Stars: t.Stars + 1}
}

// Declare renders a declaration of name with this type, e.g. "char **s".
func (t SimpleType) Declare(name string) string {
	if t.Stars == 0 {
		return t.Base + " " + name
	}
	return t.Base + " " + strings.Repeat("*", t.Stars) + name
}

// TupleType is an ordered list of simple types. Order defines the
// return-slot positions; slot 0 is the real return value.
type TupleType []SimpleType

func (t TupleType) String() string {
	parts := make([]string, len(t))
	for i, st := range t {
		parts[i] = st.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Param is a declared (type, name) pair.
type Param struct {
	Type SimpleType
	Name string
}

func (p Param) String() string {
	return p.Type.Declare(p.Name)
}

// FuncSig is the recorded contract of one tuple-returning function.
type FuncSig struct {
	Name   string
	Static bool
	Tuple  TupleType
	Params []Param

	// Origin is the literal directive line the signature came from,
	// with its 1-based input line number, kept for diagnostics.
	Origin string
	Line   int

	// Defined is true once a full definition has been recorded, as
	// opposed to a declaration-only prototype.
	Defined bool
}
