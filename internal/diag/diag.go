// Package diag defines the translator's error values. Every failure
// carries the original directive line, its location and the logically
// relevant prior context (such as where the conflicting definition
// lives), so the driver can print a complete report without access to
// translator state.
package diag

import (
	"fmt"
	"strings"

	"github.com/iley/tuplec/internal/scan"
)

type Kind int

const (
	MalformedDirective Kind = iota
	DuplicateDefinition
	ReturnOutsideFunction
	ReturnArityMismatch
	UnknownTupleFunction
	ArgumentArityMismatch
	TupleArityMismatch
	TupleTypeMismatch
)

func (k Kind) String() string {
	switch k {
	case MalformedDirective:
		return "malformed directive"
	case DuplicateDefinition:
		return "duplicate definition"
	case ReturnOutsideFunction:
		return "return outside function"
	case ReturnArityMismatch:
		return "return arity mismatch"
	case UnknownTupleFunction:
		return "unknown tuple function"
	case ArgumentArityMismatch:
		return "argument arity mismatch"
	case TupleArityMismatch:
		return "tuple arity mismatch"
	case TupleTypeMismatch:
		return "tuple type mismatch"
	default:
		return "error"
	}
}

type Error struct {
	Kind    Kind
	Loc     scan.Location
	Line    string // the original, pre-rewrite directive line
	Message string
	Context []string
}

func (e *Error) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s: %s", e.Loc, e.Kind, e.Message)
	if e.Line != "" {
		fmt.Fprintf(&sb, "\n\tin: %s", e.Line)
	}
	for _, ctx := range e.Context {
		fmt.Fprintf(&sb, "\n\tnote: %s", ctx)
	}
	return sb.String()
}

// Errorf builds an Error for the directive at loc whose original text is
// line.
func Errorf(kind Kind, loc scan.Location, line, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Loc:     loc,
		Line:    line,
		Message: fmt.Sprintf(format, args...),
	}
}

// WithContext appends a secondary context line and returns e for
// chaining.
func (e *Error) WithContext(format string, args ...any) *Error {
	e.Context = append(e.Context, fmt.Sprintf(format, args...))
	return e
}
