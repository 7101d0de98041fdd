package diag

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	ansiRed   = "\x1b[31m"
	ansiBold  = "\x1b[1m"
	ansiReset = "\x1b[0m"
)

// colorEnabled follows the usual conventions: NO_COLOR wins, dumb
// terminals and non-terminals get plain output.
func colorEnabled(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Fprint writes err to w, one report per line group. When w is a
// terminal the location and kind are highlighted.
func Fprint(w io.Writer, err error) {
	e, ok := err.(*Error)
	if !ok {
		fmt.Fprintf(w, "%s\n", err)
		return
	}

	color := false
	if f, isFile := w.(*os.File); isFile {
		color = colorEnabled(f)
	}
	if !color {
		fmt.Fprintf(w, "%s\n", e)
		return
	}

	fmt.Fprintf(w, "%s%s:%s %s%s:%s %s\n", ansiBold, e.Loc, ansiReset, ansiRed, e.Kind, ansiReset, e.Message)
	if e.Line != "" {
		fmt.Fprintf(w, "\tin: %s\n", e.Line)
	}
	for _, ctx := range e.Context {
		fmt.Fprintf(w, "\tnote: %s\n", ctx)
	}
}

// PrintAll writes every error in errs to w.
func PrintAll(w io.Writer, errs []error) {
	for _, err := range errs {
		Fprint(w, err)
	}
}

// Summary returns a short count line for a failed run, e.g.
// "2 errors".
func Summary(errs []error) string {
	if len(errs) == 1 {
		return "1 error"
	}
	return fmt.Sprintf("%d errors", len(errs))
}
