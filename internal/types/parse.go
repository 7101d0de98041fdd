package types

import (
	"fmt"

	"github.com/iley/tuplec/internal/scan"
)

// ParseTupleType parses a comma-separated list of simple types, e.g.
// "int, int, char *". Matching stops silently at the first fragment that
// is not an identifier; trailing unparsed text is ignored. This
// permissiveness is inherited behavior: the definition handler rejects
// the directive when the result is empty.
func ParseTupleType(text string) TupleType {
	s := scan.New(text)
	var tuple TupleType
	for {
		base, ok := s.Ident()
		if !ok {
			return tuple
		}
		tuple = append(tuple, SimpleType{Base: base, Stars: s.Stars()})
		if !s.Consume(',') {
			return tuple
		}
	}
}

// ParseParams parses a comma-separated parameter list of the form
// "type stars name", e.g. "double a, char **argv". Malformed fragments
// stop parsing; duplicate parameter names are an error.
func ParseParams(text string) ([]Param, error) {
	return parseTypedNames(text, "parameter")
}

// ParseTupleAssign parses the binding list of a call directive. The
// grammar is the same as ParseParams; the bindings become local variable
// declarations.
func ParseTupleAssign(text string) ([]Param, error) {
	return parseTypedNames(text, "binding")
}

func parseTypedNames(text, what string) ([]Param, error) {
	s := scan.New(text)
	var params []Param
	seen := make(map[string]bool)
	for {
		base, ok := s.Ident()
		if !ok {
			return params, nil
		}
		stars := s.Stars()
		name, ok := s.Ident()
		if !ok {
			return params, nil
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate %s name: %s", what, name)
		}
		seen[name] = true
		params = append(params, Param{Type: SimpleType{Base: base, Stars: stars}, Name: name})
		if !s.Consume(',') {
			return params, nil
		}
	}
}
