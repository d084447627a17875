// Package config loads analyzer options from a YAML file (rlc.yaml).
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Flesymeb/Toy-Rust-Compiler/internal/diag"
	"github.com/Flesymeb/Toy-Rust-Compiler/internal/sema"
)

// FileName is the options file looked up by Find.
const FileName = "rlc.yaml"

// maxDepthLimit bounds max_depth so that a bad option cannot exhaust the stack.
const maxDepthLimit = 100000

// Options are the analyzer options of an options file or a fixture manifest.
type Options struct {
	MaxDepth                 int  `yaml:"max_depth,omitempty"`
	SemicolonTail            bool `yaml:"semicolon_tail,omitempty"`
	ForbidSameScopeShadowing bool `yaml:"forbid_same_scope_shadowing,omitempty"`
	CheckInit                bool `yaml:"check_init,omitempty"`
}

// Default returns the default options.
func Default() Options {
	return Options{MaxDepth: sema.DefaultMaxDepth}
}

// ValidationError aggregates option validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid options"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// Validate checks the option values.
func (o *Options) Validate() error {
	var errs ValidationError
	if o.MaxDepth < 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("max_depth must not be negative, got %d", o.MaxDepth))
	}
	if o.MaxDepth > maxDepthLimit {
		errs.Issues = append(errs.Issues, fmt.Sprintf("max_depth must be at most %d, got %d", maxDepthLimit, o.MaxDepth))
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// Decode reads options from r. Unknown keys are an error. An empty
// document yields the default options.
func Decode(r io.Reader) (*Options, error) {
	opts := Default()

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse: %w", err)
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &opts, nil
}

// Load reads options from the file at path.
func Load(path string) (*Options, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	opts, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return opts, nil
}

// Find returns the path of FileName in dir, if it exists.
func Find(dir string) (string, bool) {
	path := filepath.Join(dir, FileName)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}
	return path, true
}

// Sema returns the analyzer configuration for the options. h receives
// each diagnostic as it is reported and may be nil.
func (o *Options) Sema(h diag.Handler) *sema.Config {
	return &sema.Config{
		Error:                    h,
		MaxDepth:                 o.MaxDepth,
		SemicolonTail:            o.SemicolonTail,
		ForbidSameScopeShadowing: o.ForbidSameScopeShadowing,
		CheckInit:                o.CheckInit,
	}
}
