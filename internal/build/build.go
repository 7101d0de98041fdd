// Package build runs the post-translation pipeline: compiling the
// generated C file with the system compiler and, for the run command,
// executing the produced binary. Failures here are reported but are
// outside the translation core's contract.
package build

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

type Builder struct {
	Compiler string
	Flags    []string
}

func New(compiler string, flags []string) *Builder {
	if compiler == "" {
		compiler = "cc"
	}
	return &Builder{Compiler: compiler, Flags: flags}
}

// CompileArgs returns the argument vector for compiling cFile into
// binFile, exposed separately so it can be tested without a compiler
// installed.
func (b *Builder) CompileArgs(cFile, binFile string) []string {
	args := append([]string{}, b.Flags...)
	return append(args, "-o", binFile, cFile)
}

// Compile invokes the C compiler on cFile, producing binFile.
func (b *Builder) Compile(cFile, binFile string) error {
	cmd := exec.Command(b.Compiler, b.CompileArgs(cFile, binFile)...)
	if output, err := cmd.CombinedOutput(); err != nil {
		fmt.Fprintf(os.Stderr, "%s", output)
		return fmt.Errorf("%s failed: %w", b.Compiler, err)
	}
	return nil
}

// Run executes the binary with the given arguments, forwarding the
// standard streams, and returns its exit code.
func Run(binFile string, args []string) (int, error) {
	cmd := exec.Command(binFile, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return -1, fmt.Errorf("running %s: %w", binFile, err)
	}
	return 0, nil
}
