// Package main implements rlc, the semantic analyzer for the toy Rust language.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Flesymeb/Toy-Rust-Compiler/internal/batch"
	"github.com/Flesymeb/Toy-Rust-Compiler/internal/config"
	"github.com/Flesymeb/Toy-Rust-Compiler/internal/diag"
	"github.com/Flesymeb/Toy-Rust-Compiler/internal/fixture"
	"github.com/Flesymeb/Toy-Rust-Compiler/internal/sema"
	"github.com/Flesymeb/Toy-Rust-Compiler/internal/syntax"
)

// Analyzer flags
var (
	emitTokens   = flag.Bool("emit-tokens", false, "Output token stream")
	emitAST      = flag.Bool("emit-ast", false, "Output AST")
	astFormat    = flag.String("ast-format", "text", "AST output format (text or json)")
	emitTypedAST = flag.Bool("emit-typed-ast", false, "Output AST with expression types")
	format       = flag.String("format", "text", "Diagnostic output format (text, json or yaml)")
	configFile   = flag.String("config", "", "Options file (default: "+config.FileName+" in the current directory)")
	fixtures     = flag.String("fixtures", "", "Run the fixture manifests in `dir`")
	jobs         = flag.Int("j", 0, "Number of programs analyzed in parallel (default GOMAXPROCS)")
	trace        = flag.Bool("trace", false, "Output timing trace")
	version      = flag.Bool("version", false, "Print version")
)

// Version information
const Version = "0.1.0-dev"

// Exit codes
const (
	exitAccepted = 0 // every program accepted, every fixture passed
	exitRejected = 1 // a program was rejected or a fixture failed
	exitError    = 2 // usage, I/O or syntax error
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "rlc %s\n\n", Version)
		fmt.Fprintf(os.Stderr, "Usage: rlc [options] <file.rs>...\n")
		fmt.Fprintf(os.Stderr, "       rlc -fixtures <dir>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *version {
		fmt.Printf("rlc version %s\n", Version)
		fmt.Printf("go version %s\n", runtime.Version())
		os.Exit(exitAccepted)
	}

	if *fixtures != "" {
		os.Exit(runFixtures(*fixtures, *jobs))
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "error: no input file")
		fmt.Fprintln(os.Stderr, "usage: rlc [options] <file.rs>...")
		os.Exit(exitError)
	}

	// Handle -emit-tokens
	if *emitTokens {
		os.Exit(runEmitTokens(args[0]))
	}

	// Handle -emit-ast
	if *emitAST {
		os.Exit(runEmitAST(args[0], *astFormat))
	}

	opts, err := loadOptions(*configFile, ".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(exitError)
	}

	// Handle -emit-typed-ast
	if *emitTypedAST {
		os.Exit(runEmitTypedAST(args[0], opts))
	}

	switch *format {
	case "text", "json", "yaml":
	default:
		fmt.Fprintf(os.Stderr, "error: unknown format %q\n", *format)
		os.Exit(exitError)
	}

	os.Exit(runAnalyze(args, opts, *format, *jobs, *trace))
}

// loadOptions reads the options file at path. With an empty path the
// options file in dir is used if there is one, else the defaults.
func loadOptions(path, dir string) (*config.Options, error) {
	if path == "" {
		found, ok := config.Find(dir)
		if !ok {
			opts := config.Default()
			return &opts, nil
		}
		path = found
	}
	return config.Load(path)
}

// runEmitTokens scans the input file and prints all tokens with positions.
func runEmitTokens(filename string) int {
	f, err := os.Open(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitError
	}
	defer f.Close()

	var errors []string
	errh := func(line, col uint32, msg string) {
		errors = append(errors, fmt.Sprintf("%s:%d:%d: %s", filename, line, col, msg))
	}

	s := syntax.NewScanner(filename, f, errh)

	// Print header
	fmt.Printf("%-20s %-12s %s\n", "POSITION", "TOKEN", "LITERAL")
	fmt.Printf("%-20s %-12s %s\n", strings.Repeat("-", 20), strings.Repeat("-", 12), strings.Repeat("-", 20))

	for {
		s.Next()
		tok := s.Token()
		fmt.Printf("%-20s %-12s %s\n", s.Pos(), tok, formatLiteral(s.Literal()))
		if tok.IsEOF() {
			break
		}
	}

	if len(errors) > 0 {
		fmt.Println()
		fmt.Println("Errors:")
		for _, e := range errors {
			fmt.Printf("  %s\n", e)
		}
		return exitError
	}
	return exitAccepted
}

// formatLiteral formats a literal for display, escaping special characters.
func formatLiteral(lit string) string {
	if lit == "" {
		return "\"\""
	}

	var b strings.Builder
	b.WriteRune('"')
	for _, r := range lit {
		switch r {
		case '\n':
			b.WriteString("\\n")
		case '\t':
			b.WriteString("\\t")
		case '\r':
			b.WriteString("\\r")
		case '\\':
			b.WriteString("\\\\")
		case '"':
			b.WriteString("\\\"")
		case 0:
			b.WriteString("\\0")
		default:
			b.WriteRune(r)
		}
	}
	b.WriteRune('"')
	return b.String()
}

// parse reads and parses filename, printing syntax errors to stderr.
// The returned code is non-zero if the file could not be parsed.
func parse(filename string) (*syntax.File, int) {
	f, err := os.Open(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return nil, exitError
	}
	defer f.Close()

	errh := func(pos syntax.Pos, msg string) {
		fmt.Fprintf(os.Stderr, "%s: %s\n", pos, msg)
	}
	ast, err := syntax.ParseFile(filename, f, errh)
	if err != nil {
		return ast, exitError
	}
	return ast, exitAccepted
}

// runEmitAST parses the input file and outputs the AST.
func runEmitAST(filename, astFormat string) int {
	ast, code := parse(filename)
	if ast == nil {
		return code
	}

	switch astFormat {
	case "json":
		if err := syntax.FprintJSON(os.Stdout, ast); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return exitError
		}
	default:
		syntax.Fprint(os.Stdout, ast)
	}
	return code
}

// runEmitTypedAST analyzes the input file and outputs the AST annotated
// with the type of every checked expression.
func runEmitTypedAST(filename string, opts *config.Options) int {
	ast, code := parse(filename)
	if code != exitAccepted {
		return code
	}

	info := new(sema.Info)
	result := sema.Check(ast, opts.Sema(nil), info)

	for _, d := range result.Diagnostics {
		fmt.Fprintln(os.Stderr, d.Error())
	}

	printTypedAST(os.Stdout, ast, info)

	if !result.Accepted() {
		return exitRejected
	}
	return exitAccepted
}

// analysis is the buffered output of analyzing one program.
type analysis struct {
	stdout bytes.Buffer
	stderr bytes.Buffer
	code   int
}

// runAnalyze analyzes the programs on up to workers goroutines and
// prints their results in the order of filenames. The exit code is the
// worst code of any program.
func runAnalyze(filenames []string, opts *config.Options, format string, workers int, trace bool) int {
	results := make([]*analysis, len(filenames))
	batch.Do(len(filenames), workers, func(i int) {
		results[i] = analyze(filenames[i], opts, format, trace)
	})

	code := exitAccepted
	for i, a := range results {
		if len(filenames) > 1 {
			switch format {
			case "yaml":
				fmt.Println("---")
			case "text":
				fmt.Printf("# %s\n", filenames[i])
			}
		}
		os.Stdout.Write(a.stdout.Bytes())
		os.Stderr.Write(a.stderr.Bytes())
		if a.code > code {
			code = a.code
		}
	}
	return code
}

// analyze parses and checks one program, buffering its output.
func analyze(filename string, opts *config.Options, format string, trace bool) *analysis {
	a := &analysis{}

	start := time.Now()
	f, err := os.Open(filename)
	if err != nil {
		fmt.Fprintf(&a.stderr, "error: %v\n", err)
		a.code = exitError
		return a
	}
	defer f.Close()

	errh := func(pos syntax.Pos, msg string) {
		fmt.Fprintf(&a.stderr, "%s: %s\n", pos, msg)
	}
	ast, err := syntax.ParseFile(filename, f, errh)
	if err != nil {
		a.code = exitError
		return a
	}
	parsed := time.Now()

	result := sema.Check(ast, opts.Sema(nil), nil)
	checked := time.Now()

	if trace {
		fmt.Fprintf(&a.stderr, "trace: %s: parse %v, check %v\n",
			filename, parsed.Sub(start), checked.Sub(parsed))
	}

	if err := writeResult(&a.stdout, result, format); err != nil {
		fmt.Fprintf(&a.stderr, "error: %v\n", err)
		a.code = exitError
		return a
	}
	if !result.Accepted() {
		a.code = exitRejected
	}
	return a
}

// writeResult writes r to w in the given format.
func writeResult(w io.Writer, r *diag.Result, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	default:
		return r.Fprint(w)
	}
}

// runFixtures runs every fixture manifest in dir and reports the results.
func runFixtures(dir string, workers int) int {
	manifests, err := fixture.LoadDir(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitError
	}
	if len(manifests) == 0 {
		fmt.Fprintf(os.Stderr, "error: no fixture manifests in %s\n", dir)
		return exitError
	}

	if fixture.Report(os.Stdout, fixture.RunAll(manifests, workers)) > 0 {
		return exitRejected
	}
	return exitAccepted
}
