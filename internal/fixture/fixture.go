// Package fixture runs analyzer fixtures: source programs paired with
// YAML manifests that state the expected outcome.
//
// A manifest looks like:
//
//	source: error_test.rs
//	options:
//	  forbid_same_scope_shadowing: true
//	accepted: false
//	diagnostics:
//	  - {kind: UndeclaredVariable, line: 13}
//
// The source path is relative to the manifest. Diagnostics are compared
// by kind and line, in order.
package fixture

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/Flesymeb/Toy-Rust-Compiler/internal/config"
	"github.com/Flesymeb/Toy-Rust-Compiler/internal/diag"
)

// Expect is one expected diagnostic.
type Expect struct {
	Kind diag.Kind `yaml:"kind"`
	Line uint32    `yaml:"line"`
}

func (e Expect) String() string {
	return fmt.Sprintf("%s:%d", e.Kind, e.Line)
}

// Manifest describes one fixture.
type Manifest struct {
	Path        string         `yaml:"-"` // manifest file
	Source      string         `yaml:"source"`
	Options     config.Options `yaml:"options"`
	Accepted    bool           `yaml:"accepted"`
	Diagnostics []Expect       `yaml:"diagnostics"`
}

// Name returns the manifest file name without extension.
func (m *Manifest) Name() string {
	base := filepath.Base(m.Path)
	return base[:len(base)-len(filepath.Ext(base))]
}

// SourcePath returns the path of the program, resolved against the
// manifest's directory.
func (m *Manifest) SourcePath() string {
	if filepath.IsAbs(m.Source) {
		return m.Source
	}
	return filepath.Join(filepath.Dir(m.Path), m.Source)
}

func (m *Manifest) validate() error {
	var errs config.ValidationError
	if m.Source == "" {
		errs.Issues = append(errs.Issues, "source must be provided")
	}
	if m.Accepted && len(m.Diagnostics) > 0 {
		errs.Issues = append(errs.Issues, "an accepted fixture cannot expect diagnostics")
	}
	if !m.Accepted && len(m.Diagnostics) == 0 {
		errs.Issues = append(errs.Issues, "a rejected fixture must expect at least one diagnostic")
	}
	for i, d := range m.Diagnostics {
		if d.Line == 0 {
			errs.Issues = append(errs.Issues, fmt.Sprintf("diagnostics[%d].line must be positive", i))
		}
	}
	if err := m.Options.Validate(); err != nil {
		var verr *config.ValidationError
		if errors.As(err, &verr) {
			errs.Issues = append(errs.Issues, verr.Issues...)
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// Decode reads a manifest from r. path is recorded as the manifest's
// location. Unknown keys are an error.
func Decode(r io.Reader, path string) (*Manifest, error) {
	m := &Manifest{Path: path, Options: config.Default()}

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("fixture: %s is empty", path)
		}
		return nil, fmt.Errorf("fixture: parse %s: %w", path, err)
	}

	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("fixture: %s: %w", path, err)
	}
	return m, nil
}

// Load reads the manifest at path.
func Load(path string) (*Manifest, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fixture: open %s: %w", path, err)
	}
	defer file.Close()
	return Decode(file, path)
}

// LoadDir reads every *.yaml manifest in dir, sorted by file name.
func LoadDir(dir string) ([]*Manifest, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("fixture: %w", err)
	}
	sort.Strings(paths)

	manifests := make([]*Manifest, 0, len(paths))
	for _, path := range paths {
		m, err := Load(path)
		if err != nil {
			return nil, err
		}
		manifests = append(manifests, m)
	}
	return manifests, nil
}
