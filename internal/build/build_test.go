package build

import (
	"reflect"
	"testing"
)

func TestCompileArgs(t *testing.T) {
	tests := []struct {
		name     string
		builder  *Builder
		expected []string
	}{
		{
			name:     "no flags",
			builder:  New("cc", nil),
			expected: []string{"-o", "prog", "prog.c"},
		},
		{
			name:     "with flags",
			builder:  New("clang", []string{"-O2", "-Wall"}),
			expected: []string{"-O2", "-Wall", "-o", "prog", "prog.c"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			actual := test.builder.CompileArgs("prog.c", "prog")
			if !reflect.DeepEqual(actual, test.expected) {
				t.Errorf("CompileArgs = %v, expected %v", actual, test.expected)
			}
		})
	}
}

func TestNewDefaultsCompiler(t *testing.T) {
	b := New("", nil)
	if b.Compiler != "cc" {
		t.Errorf("Compiler = %q, expected cc", b.Compiler)
	}
}

func TestCompileArgsDoesNotShareFlags(t *testing.T) {
	flags := []string{"-g"}
	b := New("cc", flags)
	b.CompileArgs("a.c", "a")
	b.CompileArgs("b.c", "b")
	if !reflect.DeepEqual(flags, []string{"-g"}) {
		t.Errorf("flags slice was modified: %v", flags)
	}
}
