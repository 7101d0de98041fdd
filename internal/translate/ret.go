package translate

import (
	"fmt"
	"strings"

	"github.com/iley/tuplec/internal/diag"
	"github.com/iley/tuplec/internal/scan"
)

// handleReturn processes a return directive:
//
//	%return (e0, e1, ...);
//
// validated against the enclosing function's tuple arity. Slots 1..N-1
// are stored through the output parameters; slot 0 becomes the plain
// return value. Everything is emitted on one line so input and output
// stay line-for-line, with the original directive kept in a trailing
// comment.
func (t *Translator) handleReturn(s *scan.Scanner, line string) (string, *diag.Error) {
	sig, ok := t.reg.Active()
	if !ok {
		return "", diag.Errorf(diag.ReturnOutsideFunction, t.loc(), line,
			"return directive outside any tuple function body")
	}

	exprText, found := s.Delimited('(', ')')
	if !found {
		return "", diag.Errorf(diag.MalformedDirective, t.loc(), line, "expected parenthesized value list")
	}
	if derr := t.requireTerminator(s, line); derr != nil {
		return "", derr
	}

	exprs := scan.SplitTopLevel(exprText)
	if len(exprs) != len(sig.Tuple) {
		return "", diag.Errorf(diag.ReturnArityMismatch, t.loc(), line,
			"directive supplies %d values, %s returns %d", len(exprs), sig.Name, len(sig.Tuple)).
			WithContext("%s", originNote(sig))
	}

	var sb strings.Builder
	for i := 1; i < len(exprs); i++ {
		fmt.Fprintf(&sb, "*%s = %s; ", outParamName(i), exprs[i])
	}
	fmt.Fprintf(&sb, "return %s;", exprs[0])
	fmt.Fprintf(&sb, " /* %s */", strings.TrimSpace(line))
	return sb.String(), nil
}

// handleEnd processes an end directive:
//
//	%end;
//
// closing the active function body. The emitted line is empty (the
// directive has no plain-C counterpart), preserving the line count.
func (t *Translator) handleEnd(s *scan.Scanner, line string) (string, *diag.Error) {
	if derr := t.requireTerminator(s, line); derr != nil {
		return "", derr
	}
	if !t.reg.CloseBody() {
		return "", diag.Errorf(diag.MalformedDirective, t.loc(), line, "end directive with no open function body")
	}
	return "", nil
}
