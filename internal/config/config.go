// Package config loads the optional tuplec.yaml project file. Every
// field has a sensible default; running without a config file at all is
// the normal case.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file looked up next to the
// input source file.
const FileName = "tuplec.yaml"

type Config struct {
	// Marker is the directive marker character. Must be a single
	// character; defaults to "%".
	Marker string `yaml:"marker,omitempty"`

	// Compiler is the C compiler command used by build and run.
	// Defaults to "cc".
	Compiler string `yaml:"compiler,omitempty"`

	// CompilerFlags are passed to the compiler before the standard
	// -o/input arguments.
	CompilerFlags []string `yaml:"compiler_flags,omitempty"`

	// RelaxedScopes restores the legacy behavior where return
	// directives resolve against the most recent definition without
	// requiring end directives.
	RelaxedScopes bool `yaml:"relaxed_scopes,omitempty"`

	// KeepGoing reports every translation error instead of stopping
	// at the first one.
	KeepGoing bool `yaml:"keep_going,omitempty"`

	// KeepIntermediate leaves the generated .c file behind after a
	// build.
	KeepIntermediate bool `yaml:"keep_intermediate,omitempty"`
}

func Default() *Config {
	return &Config{
		Marker:   "%",
		Compiler: "cc",
	}
}

// Load reads the config file at path. Field defaults are applied to
// anything the file leaves unset.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(cfg.Marker) != 1 {
		return nil, fmt.Errorf("parsing %s: marker must be a single character, got %q", path, cfg.Marker)
	}
	return cfg, nil
}

// ForSource returns the configuration governing the given source file:
// the tuplec.yaml next to it if one exists, defaults otherwise.
func ForSource(srcPath string) (*Config, error) {
	path := filepath.Join(filepath.Dir(srcPath), FileName)
	cfg, err := Load(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	return cfg, err
}
