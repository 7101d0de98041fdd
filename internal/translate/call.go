package translate

import (
	"fmt"
	"strings"

	"github.com/iley/tuplec/internal/diag"
	"github.com/iley/tuplec/internal/scan"
	"github.com/iley/tuplec/internal/types"
)

// handleCall processes a call-and-destructure directive:
//
//	%call (T0 v0, T1 v1, ...) = name(args);
//
// The binding list must match the registered return tuple positionally,
// both in count and in normalized type spelling; the argument count
// must match the registered parameter count. The rewrite declares every
// binding variable, then assigns the first one from a call that passes
// the address of each remaining one as a trailing argument.
func (t *Translator) handleCall(s *scan.Scanner, line string) (string, *diag.Error) {
	bindText, ok := s.Delimited('(', ')')
	if !ok {
		return "", diag.Errorf(diag.MalformedDirective, t.loc(), line, "expected parenthesized binding list")
	}
	pieces, err := types.ParseTupleAssign(bindText)
	if err != nil {
		return "", diag.Errorf(diag.MalformedDirective, t.loc(), line, "%v", err)
	}
	if len(pieces) == 0 {
		return "", diag.Errorf(diag.MalformedDirective, t.loc(), line, "binding list must declare at least one variable")
	}

	if !s.Consume('=') {
		return "", diag.Errorf(diag.MalformedDirective, t.loc(), line, "expected '=' after binding list")
	}
	name, ok := s.Ident()
	if !ok {
		return "", diag.Errorf(diag.MalformedDirective, t.loc(), line, "expected function name after '='")
	}
	argText, ok := s.Delimited('(', ')')
	if !ok {
		return "", diag.Errorf(diag.MalformedDirective, t.loc(), line, "expected parenthesized argument list")
	}
	if derr := t.requireTerminator(s, line); derr != nil {
		return "", derr
	}

	sig, found := t.reg.Lookup(name)
	if !found {
		return "", diag.Errorf(diag.UnknownTupleFunction, t.loc(), line,
			"no tuple function named %s has been defined", name)
	}

	args := scan.SplitTopLevel(argText)
	if len(args) != len(sig.Params) {
		return "", diag.Errorf(diag.ArgumentArityMismatch, t.loc(), line,
			"call passes %d arguments, %s takes %d", len(args), name, len(sig.Params)).
			WithContext("%s", originNote(sig))
	}
	if len(pieces) != len(sig.Tuple) {
		return "", diag.Errorf(diag.TupleArityMismatch, t.loc(), line,
			"binding list declares %d variables, %s returns %d", len(pieces), name, len(sig.Tuple)).
			WithContext("%s", originNote(sig))
	}
	for i, piece := range pieces {
		if !piece.Type.Equals(sig.Tuple[i]) {
			return "", diag.Errorf(diag.TupleTypeMismatch, t.loc(), line,
				"binding %d is declared %q, %s returns %q in that slot",
				i, piece.Type, name, sig.Tuple[i]).
				WithContext("%s", originNote(sig))
		}
	}

	var sb strings.Builder
	for _, piece := range pieces {
		fmt.Fprintf(&sb, "%s; ", piece)
	}
	callArgs := make([]string, 0, len(args)+len(pieces)-1)
	callArgs = append(callArgs, args...)
	for i := 1; i < len(pieces); i++ {
		callArgs = append(callArgs, "&"+pieces[i].Name)
	}
	fmt.Fprintf(&sb, "%s = %s(%s);", pieces[0].Name, name, strings.Join(callArgs, ", "))
	fmt.Fprintf(&sb, " /* %s */", strings.TrimSpace(line))
	return sb.String(), nil
}
