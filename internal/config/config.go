// Package config centralizes Sindarin's project-wide constants and
// parses the `sindarin.yaml` project manifest: recognized source
// extensions and shared flags live here as package-level data that the
// rest of the compiler imports rather than recomputing.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SourceFileExt is Sindarin's canonical source extension.
const SourceFileExt = ".sin"

// SourceFileExtensions lists every extension the CLI recognizes as a
// Sindarin source file.
var SourceFileExtensions = []string{".sin", ".sindarin"}

// HasSourceExt reports whether path ends in a recognized extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if len(path) >= len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}

// ArithMode mirrors codegen.ArithMode as a string the manifest and the
// --arith flag can name without this package importing codegen.
type ArithMode string

const (
	ArithChecked   ArithMode = "checked"
	ArithUnchecked ArithMode = "unchecked"
)

// Manifest is the shape of a project's sindarin.yaml: source roots, the
// default arithmetic mode (overridable per-invocation by --arith), and
// where generated C goes.
type Manifest struct {
	Name      string    `yaml:"name"`
	Sources   []string  `yaml:"sources"`
	OutputDir string    `yaml:"output_dir"`
	Arith     ArithMode `yaml:"arith"`
	BuildLog  string    `yaml:"build_log"`
}

// DefaultManifest returns the manifest used when no sindarin.yaml is
// present: compile "." into "./build" in checked mode.
func DefaultManifest() *Manifest {
	return &Manifest{
		Sources:   []string{"."},
		OutputDir: "build",
		Arith:     ArithChecked,
		BuildLog:  ".sindarin/build.db",
	}
}

// Load reads and parses a sindarin.yaml manifest at path, filling in
// defaults for any field the file omits.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	m := DefaultManifest()
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	if len(m.Sources) == 0 {
		m.Sources = []string{"."}
	}
	if m.OutputDir == "" {
		m.OutputDir = "build"
	}
	if m.Arith == "" {
		m.Arith = ArithChecked
	}
	if m.BuildLog == "" {
		m.BuildLog = ".sindarin/build.db"
	}
	return m, nil
}

// LoadOrDefault behaves like Load but returns DefaultManifest without
// error when path does not exist, so a bare `sindac compile foo.sin`
// works in a directory with no manifest at all.
func LoadOrDefault(path string) (*Manifest, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultManifest(), nil
	}
	return Load(path)
}
