package translate

import (
	"strings"
	"testing"

	"github.com/iley/tuplec/internal/diag"
)

// translateLines runs the translator over input and returns the output
// split into lines (without the trailing newline) plus collected errors.
func translateLines(t *testing.T, opts Options, input string) ([]string, []error) {
	t.Helper()
	var out strings.Builder
	tr := New("test.tc", opts)
	errs := tr.Run(strings.NewReader(input), &out)
	text := strings.TrimSuffix(out.String(), "\n")
	if text == "" && out.String() == "" {
		return nil, errs
	}
	return strings.Split(text, "\n"), errs
}

func errKind(t *testing.T, errs []error, index int) diag.Kind {
	t.Helper()
	if index >= len(errs) {
		t.Fatalf("expected at least %d errors, got %v", index+1, errs)
	}
	derr, ok := errs[index].(*diag.Error)
	if !ok {
		t.Fatalf("error %d is %T, expected *diag.Error", index, errs[index])
	}
	return derr.Kind
}

const fredDefinition = "%func static (int, int, char *) fred(double a);"

func TestPassthrough(t *testing.T) {
	input := "#include <stdio.h>\n\nint main() {\n\treturn 0;\n}"
	lines, errs := translateLines(t, Options{}, input)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	expected := []string{"#include <stdio.h>", "", "int main() {", "\treturn 0;", "}"}
	if len(lines) != len(expected) {
		t.Fatalf("got %d lines, expected %d: %v", len(lines), len(expected), lines)
	}
	for i := range expected {
		if lines[i] != expected[i] {
			t.Errorf("line %d = %q, expected %q", i+1, lines[i], expected[i])
		}
	}
}

func TestDefineRewrite(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "static three-slot tuple",
			input:    fredDefinition,
			expected: "static int fred(double a, int *tuple_out_1, char **tuple_out_2)",
		},
		{
			name:     "single-slot tuple has no output parameters",
			input:    "%func (int) answer();",
			expected: "int answer()",
		},
		{
			name:     "pointer return slot",
			input:    "%func (char *, int) gets_len(char *buf);",
			expected: "char *gets_len(char *buf, int *tuple_out_1)",
		},
		{
			name:     "no input parameters",
			input:    "%func (int, int) pair();",
			expected: "int pair(int *tuple_out_1)",
		},
		{
			name:     "doubled marker",
			input:    "%%func (int) twice();",
			expected: "int twice()",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			lines, errs := translateLines(t, Options{}, test.input)
			if len(errs) != 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}
			if len(lines) != 1 || lines[0] != test.expected {
				t.Errorf("output = %q, expected %q", lines, test.expected)
			}
		})
	}
}

func TestReturnRewrite(t *testing.T) {
	input := fredDefinition + "\n" + `%return (3, 5, "hello");`
	lines, errs := translateLines(t, Options{}, input)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	expected := `*tuple_out_1 = 5; *tuple_out_2 = "hello"; return 3; /* %return (3, 5, "hello"); */`
	if lines[1] != expected {
		t.Errorf("return line = %q, expected %q", lines[1], expected)
	}
}

func TestReturnPreservesIndent(t *testing.T) {
	input := "%func (int) f();\n\t%return (42);"
	lines, errs := translateLines(t, Options{}, input)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	expected := "\treturn 42; /* %return (42); */"
	if lines[1] != expected {
		t.Errorf("return line = %q, expected %q", lines[1], expected)
	}
}

func TestReturnSplitsAtTopLevelOnly(t *testing.T) {
	input := "%func (int, int) f();\n" + `%return (g(1, 2), "a, b");`
	lines, errs := translateLines(t, Options{}, input)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	expected := `*tuple_out_1 = "a, b"; return g(1, 2); /* %return (g(1, 2), "a, b"); */`
	if lines[1] != expected {
		t.Errorf("return line = %q, expected %q", lines[1], expected)
	}
}

func TestCallRewrite(t *testing.T) {
	input := fredDefinition + "\n%call (int x, int y, char *string) = fred(9.5);"
	lines, errs := translateLines(t, Options{}, input)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	expected := "int x; int y; char *string; x = fred(9.5, &y, &string); " +
		"/* %call (int x, int y, char *string) = fred(9.5); */"
	if lines[1] != expected {
		t.Errorf("call line = %q, expected %q", lines[1], expected)
	}
}

func TestCallSingleSlot(t *testing.T) {
	input := "%func (int) answer();\n%call (int x) = answer();"
	lines, errs := translateLines(t, Options{}, input)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	expected := "int x; x = answer(); /* %call (int x) = answer(); */"
	if lines[1] != expected {
		t.Errorf("call line = %q, expected %q", lines[1], expected)
	}
}

func TestEndDirective(t *testing.T) {
	input := "%func (int) f();\n%end;"
	lines, errs := translateLines(t, Options{}, input)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if lines[1] != "" {
		t.Errorf("end line = %q, expected empty", lines[1])
	}
}

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  diag.Kind
	}{
		{
			name:  "duplicate definition",
			input: fredDefinition + "\n%end;\n%func (int) fred();",
			kind:  diag.DuplicateDefinition,
		},
		{
			name:  "return outside function",
			input: "%return (1);",
			kind:  diag.ReturnOutsideFunction,
		},
		{
			name:  "return after end",
			input: "%func (int) f();\n%end;\n%return (1);",
			kind:  diag.ReturnOutsideFunction,
		},
		{
			name:  "return arity mismatch",
			input: fredDefinition + "\n%return (1, 2);",
			kind:  diag.ReturnArityMismatch,
		},
		{
			name:  "unknown tuple function",
			input: "%call (int x) = nobody();",
			kind:  diag.UnknownTupleFunction,
		},
		{
			name:  "argument arity mismatch",
			input: fredDefinition + "\n%call (int x, int y, char *s) = fred(1.0, 2.0);",
			kind:  diag.ArgumentArityMismatch,
		},
		{
			name:  "tuple arity mismatch",
			input: fredDefinition + "\n%call (int x, double y) = fred(9.5);",
			kind:  diag.TupleArityMismatch,
		},
		{
			name:  "tuple type mismatch",
			input: fredDefinition + "\n%call (int x, double y, char *s) = fred(9.5);",
			kind:  diag.TupleTypeMismatch,
		},
		{
			name:  "unknown keyword",
			input: "%declare (int) f();",
			kind:  diag.MalformedDirective,
		},
		{
			name:  "bare marker",
			input: "%",
			kind:  diag.MalformedDirective,
		},
		{
			name:  "missing tuple parens",
			input: "%func int f();",
			kind:  diag.MalformedDirective,
		},
		{
			name:  "empty tuple",
			input: "%func () f();",
			kind:  diag.MalformedDirective,
		},
		{
			name:  "missing terminator",
			input: "%func (int) f()",
			kind:  diag.MalformedDirective,
		},
		{
			name:  "trailing text after terminator",
			input: "%func (int) f(); extra",
			kind:  diag.MalformedDirective,
		},
		{
			name:  "duplicate parameter names",
			input: "%func (int) f(int x, int x);",
			kind:  diag.MalformedDirective,
		},
		{
			name:  "end without open body",
			input: "%end;",
			kind:  diag.MalformedDirective,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, errs := translateLines(t, Options{}, test.input)
			if len(errs) != 1 {
				t.Fatalf("got %d errors, expected 1: %v", len(errs), errs)
			}
			if kind := errKind(t, errs, 0); kind != test.kind {
				t.Errorf("error kind = %v, expected %v", kind, test.kind)
			}
		})
	}
}

func TestDuplicateDefinitionCitesFirst(t *testing.T) {
	input := fredDefinition + "\n%end;\n%func (int) fred();"
	_, errs := translateLines(t, Options{}, input)
	if len(errs) != 1 {
		t.Fatalf("got %v", errs)
	}
	derr := errs[0].(*diag.Error)
	if derr.Loc.Line != 3 {
		t.Errorf("error at line %d, expected 3", derr.Loc.Line)
	}
	if len(derr.Context) != 1 || !strings.Contains(derr.Context[0], "line 1") {
		t.Errorf("context = %v, expected a note citing line 1", derr.Context)
	}
}

func TestTupleTypeMismatchNamesPosition(t *testing.T) {
	input := fredDefinition + "\n%call (int x, double y, char *s) = fred(9.5);"
	_, errs := translateLines(t, Options{}, input)
	if len(errs) != 1 {
		t.Fatalf("got %v", errs)
	}
	derr := errs[0].(*diag.Error)
	if !strings.Contains(derr.Message, "binding 1") {
		t.Errorf("message = %q, expected it to name position 1", derr.Message)
	}
	if !strings.Contains(derr.Message, `"double"`) || !strings.Contains(derr.Message, `"int"`) {
		t.Errorf("message = %q, expected declared and expected types", derr.Message)
	}
}

func TestRelaxedScopes(t *testing.T) {
	input := "%func (int) f();\n%end;\n%return (1);"
	lines, errs := translateLines(t, Options{Relaxed: true}, input)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if lines[2] != "return 1; /* %return (1); */" {
		t.Errorf("return line = %q", lines[2])
	}
}

func TestFailFastStopsAtFirstError(t *testing.T) {
	input := "%return (1);\n%return (2);"
	_, errs := translateLines(t, Options{}, input)
	if len(errs) != 1 {
		t.Fatalf("got %d errors, expected 1 in fail-fast mode", len(errs))
	}
}

func TestKeepGoingCollectsAllErrors(t *testing.T) {
	input := "%return (1);\n%call (int x) = nobody();\nint ordinary;\n%bogus;"
	lines, errs := translateLines(t, Options{KeepGoing: true}, input)
	if len(errs) != 3 {
		t.Fatalf("got %d errors, expected 3: %v", len(errs), errs)
	}
	if errKind(t, errs, 0) != diag.ReturnOutsideFunction {
		t.Errorf("first error kind = %v", errKind(t, errs, 0))
	}
	if errKind(t, errs, 1) != diag.UnknownTupleFunction {
		t.Errorf("second error kind = %v", errKind(t, errs, 1))
	}
	if errKind(t, errs, 2) != diag.MalformedDirective {
		t.Errorf("third error kind = %v", errKind(t, errs, 2))
	}
	// Good lines are still translated so later errors keep their context.
	if len(lines) != 1 || lines[0] != "int ordinary;" {
		t.Errorf("output lines = %v", lines)
	}
}

func TestCustomMarker(t *testing.T) {
	input := "@func (int) f();\n% not a directive"
	lines, errs := translateLines(t, Options{Marker: '@'}, input)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if lines[0] != "int f()" {
		t.Errorf("line 1 = %q", lines[0])
	}
	if lines[1] != "% not a directive" {
		t.Errorf("line 2 = %q, expected passthrough", lines[1])
	}
}

func TestFullProgram(t *testing.T) {
	input := strings.Join([]string{
		"#include <stdio.h>",
		"",
		"%func static (int, int, char *) fred(double a);",
		"{",
		`    %return (3, 5, "hello");`,
		"%end;",
		"}",
		"",
		"int main() {",
		"    %call (int x, int y, char *string) = fred(9.5);",
		`    printf("%d %d %s\n", x, y, string);`,
		"    return 0;",
		"}",
	}, "\n")

	expected := []string{
		"#include <stdio.h>",
		"",
		"static int fred(double a, int *tuple_out_1, char **tuple_out_2)",
		"{",
		`    *tuple_out_1 = 5; *tuple_out_2 = "hello"; return 3; /* %return (3, 5, "hello"); */`,
		"",
		"}",
		"",
		"int main() {",
		"    int x; int y; char *string; x = fred(9.5, &y, &string); /* %call (int x, int y, char *string) = fred(9.5); */",
		`    printf("%d %d %s\n", x, y, string);`,
		"    return 0;",
		"}",
	}

	lines, errs := translateLines(t, Options{}, input)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(lines) != len(expected) {
		t.Fatalf("got %d lines, expected %d", len(lines), len(expected))
	}
	for i := range expected {
		if lines[i] != expected[i] {
			t.Errorf("line %d = %q, expected %q", i+1, lines[i], expected[i])
		}
	}
}
