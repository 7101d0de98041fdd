package translate

import (
	"strings"

	"github.com/iley/tuplec/internal/diag"
	"github.com/iley/tuplec/internal/scan"
	"github.com/iley/tuplec/internal/types"
)

// handleFunc processes a definition directive:
//
//	%func [static] (T0, T1, ...) name(params);
//
// The rewritten header returns T0; every remaining tuple slot becomes a
// trailing output parameter one pointer level deeper than its declared
// type. The signature is recorded and the function's body opens.
func (t *Translator) handleFunc(s *scan.Scanner, line string) (string, *diag.Error) {
	static := s.Keyword("static")

	tupleText, ok := s.Delimited('(', ')')
	if !ok {
		return "", diag.Errorf(diag.MalformedDirective, t.loc(), line, "expected parenthesized tuple type")
	}
	tuple := types.ParseTupleType(tupleText)
	if len(tuple) == 0 {
		return "", diag.Errorf(diag.MalformedDirective, t.loc(), line, "tuple type must list at least one type")
	}

	name, ok := s.Ident()
	if !ok {
		return "", diag.Errorf(diag.MalformedDirective, t.loc(), line, "expected function name")
	}

	paramText, ok := s.Delimited('(', ')')
	if !ok {
		return "", diag.Errorf(diag.MalformedDirective, t.loc(), line, "expected parenthesized parameter list")
	}
	params, err := types.ParseParams(paramText)
	if err != nil {
		return "", diag.Errorf(diag.MalformedDirective, t.loc(), line, "%v", err)
	}

	if derr := t.requireTerminator(s, line); derr != nil {
		return "", derr
	}

	sig := &types.FuncSig{
		Name:    name,
		Static:  static,
		Tuple:   tuple,
		Params:  params,
		Origin:  line,
		Line:    t.lineNo,
		Defined: true,
	}
	if prev, ok := t.reg.Define(sig); !ok {
		return "", diag.Errorf(diag.DuplicateDefinition, t.loc(), line,
			"function %s is already defined", name).
			WithContext("%s", originNote(prev))
	}

	return renderHeader(sig), nil
}

// renderHeader emits the plain C function header, without a trailing
// ';' so the body braces can follow on subsequent lines.
func renderHeader(sig *types.FuncSig) string {
	var sb strings.Builder
	if sig.Static {
		sb.WriteString("static ")
	}
	sb.WriteString(sig.Tuple[0].Declare(sig.Name))
	sb.WriteString("(")

	formals := make([]string, 0, len(sig.Params)+len(sig.Tuple)-1)
	for _, p := range sig.Params {
		formals = append(formals, p.String())
	}
	for i := 1; i < len(sig.Tuple); i++ {
		formals = append(formals, sig.Tuple[i].Pointer().Declare(outParamName(i)))
	}
	sb.WriteString(strings.Join(formals, ", "))
	sb.WriteString(")")
	return sb.String()
}
