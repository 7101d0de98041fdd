package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iley/tuplec/internal/build"
	"github.com/iley/tuplec/internal/config"
	"github.com/iley/tuplec/internal/diag"
	"github.com/iley/tuplec/internal/translate"
)

var (
	outputFile string
	keepGoing  bool
	relaxed    bool
	keepC      bool
)

var rootCmd = &cobra.Command{
	Use:   "tuplec",
	Short: "Tuple-returning function translator for C",
	Long: "tuplec rewrites %func, %return, %call and %end directives into plain C,\n" +
		"simulating multi-value returns with pointer output parameters.",
}

var translateCmd = &cobra.Command{
	Use:   "translate <file.tc>",
	Short: "Translate directives to plain C",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		src := args[0]
		out := outputFile
		if out == "" {
			out = replaceExt(src, ".c")
		}
		cfg, err := loadConfig(src)
		if err != nil {
			return err
		}
		return translateFile(src, out, cfg)
	},
}

var buildCmd = &cobra.Command{
	Use:   "build <file.tc>",
	Short: "Translate and compile to an executable",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		src := args[0]
		bin := outputFile
		if bin == "" {
			bin = replaceExt(src, "")
		}
		cfg, err := loadConfig(src)
		if err != nil {
			return err
		}
		return buildProgram(src, bin, cfg)
	},
}

var runCmd = &cobra.Command{
	Use:   "run <file.tc> [-- args...]",
	Short: "Translate, compile and execute",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		src := args[0]
		cfg, err := loadConfig(src)
		if err != nil {
			return err
		}
		bin := replaceExt(src, "")
		if err := buildProgram(src, bin, cfg); err != nil {
			return err
		}
		code, err := build.Run(bin, args[1:])
		if err != nil {
			return err
		}
		if code != 0 {
			os.Exit(code)
		}
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{translateCmd, buildCmd} {
		cmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file name")
	}
	rootCmd.PersistentFlags().BoolVarP(&keepGoing, "keep-going", "k", false, "report all errors instead of stopping at the first one")
	rootCmd.PersistentFlags().BoolVar(&relaxed, "relaxed-scopes", false, "resolve return directives against the most recent definition without requiring %end")
	buildCmd.Flags().BoolVar(&keepC, "keep", false, "keep the intermediate .c file")
	rootCmd.AddCommand(translateCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(runCmd)
}

// loadConfig merges the project file (if any) with command-line flags.
// Flags win.
func loadConfig(src string) (*config.Config, error) {
	cfg, err := config.ForSource(src)
	if err != nil {
		return nil, err
	}
	if keepGoing {
		cfg.KeepGoing = true
	}
	if relaxed {
		cfg.RelaxedScopes = true
	}
	if keepC {
		cfg.KeepIntermediate = true
	}
	return cfg, nil
}

// translateFile runs the translator from src to out. On failure the
// partial output file is removed and every collected error is printed.
func translateFile(src, out string, cfg *config.Config) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	outFile, err := os.Create(out)
	if err != nil {
		return err
	}

	tr := translate.New(filepath.Base(src), translate.Options{
		Marker:    cfg.Marker[0],
		Relaxed:   cfg.RelaxedScopes,
		KeepGoing: cfg.KeepGoing,
	})
	errs := tr.Run(in, outFile)
	if closeErr := outFile.Close(); closeErr != nil && len(errs) == 0 {
		errs = append(errs, closeErr)
	}
	if len(errs) > 0 {
		os.Remove(out)
		diag.PrintAll(os.Stderr, errs)
		return fmt.Errorf("translation failed with %s", diag.Summary(errs))
	}
	return nil
}

func buildProgram(src, bin string, cfg *config.Config) error {
	cFile := replaceExt(bin, ".c")
	if err := translateFile(src, cFile, cfg); err != nil {
		return err
	}
	builder := build.New(cfg.Compiler, cfg.CompilerFlags)
	err := builder.Compile(cFile, bin)
	if !cfg.KeepIntermediate {
		os.Remove(cFile)
	}
	return err
}

func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
