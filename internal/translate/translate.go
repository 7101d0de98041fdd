// Package translate implements the directive translator: a single pass
// over the input that copies ordinary lines verbatim and rewrites the
// four directive forms (func, return, call, end) into plain C, using
// extra output parameters to simulate multi-value returns.
package translate

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/iley/tuplec/internal/diag"
	"github.com/iley/tuplec/internal/registry"
	"github.com/iley/tuplec/internal/scan"
	"github.com/iley/tuplec/internal/types"
)

// DefaultMarker is the directive marker character.
const DefaultMarker = '%'

// OutParamPrefix names the synthetic output parameters; slot i becomes
// tuple_out_i. Slot 0 is the real return value and never gets one.
const OutParamPrefix = "tuple_out_"

type Options struct {
	// Marker overrides the directive marker character.
	Marker byte

	// Relaxed restores the legacy unscoped active-function behavior:
	// no end directives are required and a return directive resolves
	// against the most recent definition.
	Relaxed bool

	// KeepGoing collects every error instead of aborting on the first
	// one. No output should be kept from a failed keep-going run.
	KeepGoing bool
}

type Translator struct {
	filename  string
	marker    byte
	keepGoing bool
	reg       *registry.Registry
	lineNo    int // 1-based, diagnostics only
}

func New(filename string, opts Options) *Translator {
	marker := opts.Marker
	if marker == 0 {
		marker = DefaultMarker
	}
	reg := registry.New()
	if opts.Relaxed {
		reg = registry.NewRelaxed()
	}
	return &Translator{
		filename:  filename,
		marker:    marker,
		reg:       reg,
		keepGoing: opts.KeepGoing,
	}
}

// Run translates r into w line by line. Each input line yields exactly
// one output line. In the default mode the first error aborts the run
// and nothing after the offending line is emitted; with KeepGoing set
// all errors are collected and returned together.
func (t *Translator) Run(r io.Reader, w io.Writer) []error {
	var errs []error
	scanner := bufio.NewScanner(r)
	out := bufio.NewWriter(w)

	for scanner.Scan() {
		t.lineNo++
		line, err := t.translateLine(scanner.Text())
		if err != nil {
			errs = append(errs, err)
			if !t.keepGoing {
				return errs
			}
			continue
		}
		fmt.Fprintln(out, line)
	}
	if err := scanner.Err(); err != nil {
		return append(errs, fmt.Errorf("reading %s: %w", t.filename, err))
	}
	if err := out.Flush(); err != nil {
		return append(errs, fmt.Errorf("writing output: %w", err))
	}
	return errs
}

func (t *Translator) loc() scan.Location {
	return scan.Location{Filename: t.filename, Line: t.lineNo}
}

// translateLine dispatches a single line. Ordinary lines pass through
// unchanged; a line whose first non-blank character is the marker is a
// directive. The marker (including any immediate repetition) is
// stripped, the directive keyword routes to a handler, and the original
// leading whitespace is re-applied to the handler's output.
func (t *Translator) translateLine(line string) (string, *diag.Error) {
	indent := scan.Indent(line)
	body := line[len(indent):]
	if len(body) == 0 || body[0] != t.marker {
		return line, nil
	}
	for len(body) > 0 && body[0] == t.marker {
		body = body[1:]
	}

	s := scan.New(body)
	keyword, ok := s.Ident()
	if !ok {
		return "", diag.Errorf(diag.MalformedDirective, t.loc(), line, "missing directive keyword")
	}

	var out string
	var err *diag.Error
	switch keyword {
	case "func":
		out, err = t.handleFunc(s, line)
	case "return":
		out, err = t.handleReturn(s, line)
	case "call":
		out, err = t.handleCall(s, line)
	case "end":
		out, err = t.handleEnd(s, line)
	default:
		return "", diag.Errorf(diag.MalformedDirective, t.loc(), line, "unknown directive %q", keyword)
	}
	if err != nil {
		return "", err
	}
	return indent + out, nil
}

// requireTerminator checks the closing ';' and that nothing but
// whitespace follows it.
func (t *Translator) requireTerminator(s *scan.Scanner, line string) *diag.Error {
	if !s.Consume(';') {
		return diag.Errorf(diag.MalformedDirective, t.loc(), line, "missing terminating ';'")
	}
	if !s.AtEnd() {
		return diag.Errorf(diag.MalformedDirective, t.loc(), line, "trailing text after ';': %q", s.Rest())
	}
	return nil
}

func outParamName(slot int) string {
	return fmt.Sprintf("%s%d", OutParamPrefix, slot)
}

func originNote(sig *types.FuncSig) string {
	return fmt.Sprintf("%s defined at line %d: %s", sig.Name, sig.Line, strings.TrimSpace(sig.Origin))
}
