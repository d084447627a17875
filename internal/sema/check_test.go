package sema

import (
	"fmt"
	"strings"
	"testing"

	"github.com/go-test/deep"

	"github.com/Flesymeb/Toy-Rust-Compiler/internal/diag"
	"github.com/Flesymeb/Toy-Rust-Compiler/internal/syntax"
	"github.com/Flesymeb/Toy-Rust-Compiler/internal/types"
)

// parseAndCheck parses source code and runs the checker.
func parseAndCheck(t *testing.T, src string, conf *Config) (*diag.Result, *Info) {
	t.Helper()
	var parseErrs []string
	errh := func(pos syntax.Pos, msg string) {
		parseErrs = append(parseErrs, pos.String()+": "+msg)
	}
	file, _ := syntax.ParseFile("test.rs", strings.NewReader(src), errh)
	if len(parseErrs) > 0 {
		t.Fatalf("syntax errors:\n%s", strings.Join(parseErrs, "\n"))
	}

	info := &Info{}
	return Check(file, conf, info), info
}

// summary renders each diagnostic as "Kind:line".
func summary(r *diag.Result) []string {
	out := []string{}
	for _, d := range r.Diagnostics {
		out = append(out, fmt.Sprintf("%s:%d", d.Kind, d.Pos.Line()))
	}
	return out
}

// expectNoErrors checks that the source code is accepted.
func expectNoErrors(t *testing.T, src string) {
	t.Helper()
	expectErrorsConf(t, src, nil)
}

// expectErrors checks that the source produces exactly the given
// diagnostics, written as "Kind:line", in order.
func expectErrors(t *testing.T, src string, want ...string) {
	t.Helper()
	expectErrorsConf(t, src, nil, want...)
}

func expectErrorsConf(t *testing.T, src string, conf *Config, want ...string) {
	t.Helper()
	r, _ := parseAndCheck(t, src, conf)
	if want == nil {
		want = []string{}
	}
	if diff := deep.Equal(summary(r), want); diff != nil {
		var buf strings.Builder
		r.Fprint(&buf)
		t.Errorf("diagnostics differ: %v\ngot:\n%s", diff, buf.String())
	}
}

func TestAccepted(t *testing.T) {
	expectNoErrors(t, `fn main() {
    let mut x = add(1, 2);
    x = x * 2;
    let y: bool = x > 3 && !false;
    if y { x = 0; } else { x = 1; }
    while x < 10 { x = x + 1; }
    for mut i in 0..x { i = i + 1; }
    let z = if y { 1 } else { 2 };
    let w = { let t = z; t + 1 };
    loop { break; }
    println!("{} {}", z, w);
}

fn add(a: i32, b: i32) -> i32 {
    a + b
}
`)
}

func TestIfArms(t *testing.T) {
	// An if statement is () and its arms are not compared; as the tail
	// of a body they must agree.
	expectErrors(t, `fn main() {
    if true { 1 } else { false };
    let a = 1;
    if a > 0 { a } else { true }
}
`, "TypeMismatch:4")
}

func TestTailPosition(t *testing.T) {
	expectErrors(t, `fn f() {
    42
}
fn g() {
    return 42;
}
fn h(c: bool) {
    if c { 1 } else { 2 }
}
fn k(c: bool) {
    while c { 1 }
    loop { if c { break; } 2 }
    { true }
    { 3 };
    if c { 4 } else { false };
}
fn ok(c: bool) {
    if c { println!("a"); } else { println!("b"); }
}
`, "ReturnTypeMismatch:2", "ReturnTypeMismatch:5", "ReturnTypeMismatch:8",
		"TypeMismatch:11", "TypeMismatch:12", "TypeMismatch:13")
}

func TestUndeclaredVariable(t *testing.T) {
	expectErrors(t, `fn main() {
    let a = b + 1;
    c = 2;
    let d: bool = a;
}
`, "UndeclaredVariable:2", "UndeclaredVariable:3")
}

func TestImmutableAssignment(t *testing.T) {
	src := `fn main() {
    let x: i32 = 10;
    x = 50;
    let mut y = 1;
    y = 2;
}
`
	r, _ := parseAndCheck(t, src, nil)
	if len(r.Diagnostics) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(r.Diagnostics))
	}
	d := r.Diagnostics[0]
	if d.Kind != diag.ImmutableAssignment || d.Pos.Line() != 3 || d.Pos.Col() != 5 {
		t.Errorf("got %v", d)
	}
}

func TestTypeMismatch(t *testing.T) {
	tests := []string{
		`let flag: bool = 42;`,
		`let mut a: i32 = "hello";`,
		`let a = 1 + true;`,
		`let a = 1 < true;`,
		`let a = 1 && true;`,
		`let a = -true;`,
		`let a = !1;`,
		`let a = 3000000000;`,
		`let s = "a" + "b";`,
		`let mut a = 1; a = false;`,
		`let a = if true { 1 } else { false };`,
		`let a = if true { 1 };`,
		`let a: bool = { 1 };`,
		`println!(1);`,
		`for i in 0..true { }`,
	}

	for _, stmt := range tests {
		t.Run(stmt, func(t *testing.T) {
			expectErrors(t, "fn main() {\n    "+stmt+"\n}\n", "TypeMismatch:2")
		})
	}
}

func TestErrorsDoNotCascade(t *testing.T) {
	expectErrors(t, `fn main() {
    let a = (1 + true) * 2 + undefined;
    let b: i32 = a;
    let c = a && b;
    if a { }
}
`, "TypeMismatch:2", "UndeclaredVariable:2")
}

func TestConditionTypeError(t *testing.T) {
	expectErrors(t, `fn main() {
    let x = 1;
    if x {
    }
    while 1 { }
    let y = if x { 1 } else { 2 };
}
`, "ConditionTypeError:3", "ConditionTypeError:5", "ConditionTypeError:6")
}

func TestReturnTypeMismatch(t *testing.T) {
	expectErrors(t, `fn f() -> i32 {
    return true;
}
fn g() {
    return 1;
}
fn h() -> bool {
    return;
}
fn k() -> i32 {
    false
}
`, "ReturnTypeMismatch:2", "ReturnTypeMismatch:5", "ReturnTypeMismatch:8", "ReturnTypeMismatch:11")
}

func TestMissingReturn(t *testing.T) {
	expectErrors(t, `fn test() -> i32 {
    let x = 1;
}
fn ok1(c: bool) -> i32 {
    if c { return 1; } else { return 2; }
}
fn ok2() -> i32 {
    loop { }
}
fn bad(c: bool) -> i32 {
    if c { return 1; }
}
fn bad2() -> i32 {
    loop { break; }
}
fn bad3(c: bool) -> i32 {
    while c { return 1; }
}
fn ok3() -> i32 {
    loop {
        while true { break; }
        return 1;
    }
}
`, "MissingReturn:3", "MissingReturn:12", "MissingReturn:15", "MissingReturn:18")
}

func TestMissingReturnPosition(t *testing.T) {
	r, _ := parseAndCheck(t, "fn test() -> i32 {\n    // nothing\n}\n", nil)
	if len(r.Diagnostics) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(r.Diagnostics))
	}
	if got := r.Diagnostics[0].Pos.String(); got != "test.rs:3:1" {
		t.Errorf("MissingReturn at %s, want test.rs:3:1", got)
	}
}

func TestCalls(t *testing.T) {
	src := `fn add(a: i32, b: i32) -> i32 {
    a + b
}
fn main() {
    let r1 = undefined_function(10);
    let r2 = add(10);
    let r3 = add(10, 20, 30);
    let r4: bool = add(1, 2);
    let r5 = add(1, true);
    let r6: bool = add(1);
}
`
	r, _ := parseAndCheck(t, src, nil)
	want := []string{
		"UndefinedFunction:5",
		"ArityMismatch:6",
		"ArityMismatch:7",
		"TypeMismatch:8",
		"TypeMismatch:9",
		"ArityMismatch:10",
		"TypeMismatch:10",
	}
	if diff := deep.Equal(summary(r), want); diff != nil {
		t.Fatal(diff)
	}

	arity := [][2]int{}
	for _, d := range r.Diagnostics {
		if d.Kind == diag.ArityMismatch {
			arity = append(arity, [2]int{d.Expected, d.Given})
		}
	}
	if diff := deep.Equal(arity, [][2]int{{2, 1}, {2, 3}, {2, 1}}); diff != nil {
		t.Error(diff)
	}
}

func TestMacros(t *testing.T) {
	expectErrors(t, `fn main() {
    let x = 1;
    println!("{} {}", x, x);
    println!("{}", x, x);
    println!(x);
    format!("{}", x);
    println!();
    print!("{{}}");
    eprintln!("{:?}", x == 1);
    print!();
    println!("{", x);
    println!("} {}", x);
}
`, "ArityMismatch:4", "TypeMismatch:5", "UndefinedFunction:6", "TypeMismatch:10",
		"TypeMismatch:11", "TypeMismatch:12")
}

func TestPlaceholders(t *testing.T) {
	tests := []struct {
		format string
		want   int
	}{
		{"", 0},
		{"hello", 0},
		{"{}", 1},
		{"x = {}, y = {}", 2},
		{"{:?}", 1},
		{"{{}}", 0},
		{"{{{}}}", 1},
		{"{:>5}", 1},
	}
	for _, tt := range tests {
		got, err := placeholders(tt.format)
		if err != nil || got != tt.want {
			t.Errorf("placeholders(%q) = %d, %v, want %d", tt.format, got, err, tt.want)
		}
	}

	for _, format := range []string{"{", "x {", "}", "{ {}", "{}}"} {
		if _, err := placeholders(format); err == nil {
			t.Errorf("placeholders(%q): no error", format)
		}
	}
}

func TestMisplacedControlFlow(t *testing.T) {
	expectErrors(t, `fn main() {
    break;
    while true { continue; }
    for i in 0..3 { if i > 1 { break; } }
    if true { continue; }
}
`, "MisplacedControlFlow:2", "MisplacedControlFlow:5")
}

func TestDuplicateFunction(t *testing.T) {
	src := `fn main() -> i32 {
    return 1;
}
fn f() {
    let x: i32 = main();
}
fn main() -> bool {
    return false;
}
`
	r, info := parseAndCheck(t, src, nil)
	if diff := deep.Equal(summary(r), []string{"DuplicateDefinition:7"}); diff != nil {
		t.Fatal(diff)
	}
	if len(info.Funcs) != 3 {
		t.Errorf("len(info.Funcs) = %d, want 3", len(info.Funcs))
	}
	for call, fn := range info.Calls {
		if call.Fun.Value == "main" && fn.Result() != types.Type(types.Typ[types.Int]) {
			t.Errorf("call of main resolved to %s", fn)
		}
	}
}

func TestDuplicateParam(t *testing.T) {
	expectErrors(t, "fn f(a: i32, a: bool) {\n}\n", "DuplicateDefinition:1")
}

const shadowSrc = `fn main() {
    let x = 1;
    let x = true;
    let y: bool = x;
    {
        let x = 5;
        let z: i32 = x;
    }
    let w: bool = x;
}
`

func TestShadowing(t *testing.T) {
	expectNoErrors(t, shadowSrc)
}

func TestForbidSameScopeShadowing(t *testing.T) {
	conf := &Config{ForbidSameScopeShadowing: true}
	expectErrorsConf(t, shadowSrc, conf, "DuplicateDefinition:3")
}

func TestForLoopVariable(t *testing.T) {
	expectErrors(t, `fn main() {
    for i in 0..10 {
        i = i + 1;
    }
    for mut j in 0..10 {
        j = j + 1;
    }
    let k = i;
}
`, "ImmutableAssignment:3", "UndeclaredVariable:8")
}

const initSrc = `fn main() {
    let mut y: i32;
    let a = y;
    y = 1;
    let b = y;
}
`

func TestUseBeforeInit(t *testing.T) {
	expectNoErrors(t, initSrc)
	expectErrorsConf(t, initSrc, &Config{CheckInit: true}, "UseBeforeInit:3")
}

func TestMissingType(t *testing.T) {
	expectErrors(t, `fn main() {
    let y;
    let z: i32 = y;
    let w: bool = y + 1;
}
`, "MissingType:2")
}

const semicolonTailSrc = `fn f(x: i32, y: i32) -> i32 {
    let mut z = {
        let mut t = x * x + x;
        t = t + x * y;
        t;
    };
    let mut result = if z > 10 {
        z - 5;
    } else {
        z + 5;
    };
    return result;
}
`

func TestSemicolonTail(t *testing.T) {
	expectErrors(t, semicolonTailSrc,
		"TypeMismatch:7", "TypeMismatch:8", "TypeMismatch:10", "ReturnTypeMismatch:12")
	expectErrorsConf(t, semicolonTailSrc, &Config{SemicolonTail: true})
}

func TestSemicolonTailOnlyForValues(t *testing.T) {
	// Blocks whose value is not used keep their () type.
	src := `fn main() {
    let mut x = 0;
    while x < 3 { x = x + 1; }
    { x = 5; }
    if x > 0 { x = 1; } else { x = 2; }
}
`
	expectErrorsConf(t, src, &Config{SemicolonTail: true})
}

func TestRecursionLimit(t *testing.T) {
	nested := "fn main() {\n    let a = " + strings.Repeat("(", 300) + "1" + strings.Repeat(")", 300) + ";\n    let b: bool = a;\n}\n"
	expectErrors(t, nested, "RecursionLimitExceeded:2")
	expectErrorsConf(t, nested, &Config{MaxDepth: 1000}, "TypeMismatch:3")

	blocks := "fn main() {\n" + strings.Repeat("{ ", 300) + strings.Repeat("} ", 300) + "\n}\n"
	expectErrors(t, blocks, "RecursionLimitExceeded:2")

	// Siblings below the deepest admitted node share one report.
	ifs := "fn main() {\n" + strings.Repeat("if true { ", 400) + strings.Repeat("} ", 400) + "\n}\n"
	expectErrors(t, ifs, "RecursionLimitExceeded:2")

	sum := "fn main() {\n    let a = " + strings.Repeat("1 + ", 1000) + "1;\n}\n"
	expectErrors(t, sum, "RecursionLimitExceeded:2")

	// A later subtree over the limit is reported again.
	twice := "fn main() {\n    let a = " + strings.Repeat("(", 300) + "1" + strings.Repeat(")", 300) +
		";\n    let b = " + strings.Repeat("(", 300) + "1" + strings.Repeat(")", 300) + ";\n}\n"
	expectErrors(t, twice, "RecursionLimitExceeded:2", "RecursionLimitExceeded:3")
}

func TestNegativeLiteral(t *testing.T) {
	expectErrors(t, `fn main() {
    let a: i32 = -2147483648;
    let b = -2147483649;
    let c = 2147483648;
    let d = -(2147483648);
    let e: i32 = --5;
}
`, "TypeMismatch:3", "TypeMismatch:4", "TypeMismatch:5")
}

func TestOrderedByPosition(t *testing.T) {
	src := `fn main() {
    undefined();
}
fn main() {
    let a: bool = 1;
}
fn g() -> i32 {
    z
}
`
	expectErrors(t, src, "UndefinedFunction:2", "DuplicateDefinition:4", "TypeMismatch:5", "UndeclaredVariable:8")
}

func TestErrorHandler(t *testing.T) {
	var seen []diag.Kind
	conf := &Config{Error: func(d diag.Diagnostic) { seen = append(seen, d.Kind) }}
	r, _ := parseAndCheck(t, `fn main() {
    x = 1;
}
fn main() {
}
`, conf)

	// The handler sees diagnostics in report order: the pre-pass first.
	want := []diag.Kind{diag.DuplicateDefinition, diag.UndeclaredVariable}
	if diff := deep.Equal(seen, want); diff != nil {
		t.Error(diff)
	}
	if diff := deep.Equal(r.Kinds(), []diag.Kind{diag.UndeclaredVariable, diag.DuplicateDefinition}); diff != nil {
		t.Error(diff)
	}
}

func TestIdempotent(t *testing.T) {
	file, err := syntax.ParseFile("test.rs", strings.NewReader(semicolonTailSrc), nil)
	if err != nil {
		t.Fatal(err)
	}
	r1 := Check(file, nil, nil)
	r2 := Check(file, nil, nil)
	if diff := deep.Equal(r1.Diagnostics, r2.Diagnostics); diff != nil {
		t.Error(diff)
	}
	if diff := deep.Equal(summary(r1), summary(r2)); diff != nil {
		t.Error(diff)
	}
}

func TestInfo(t *testing.T) {
	src := `fn main() {
    let x = 1;
    let mut y = x + 2;
    y = add(y, x);
}
fn add(a: i32, b: i32) -> i32 {
    a + b
}
`
	r, info := parseAndCheck(t, src, nil)
	if !r.Accepted() {
		t.Fatalf("not accepted: %v", r.Err())
	}

	defs := map[string]string{}
	for name, v := range info.Defs {
		defs[fmt.Sprintf("%s@%s", name.Value, name.Pos())] = v.String()
	}
	wantDefs := map[string]string{
		"x@test.rs:2:9":  "x: i32",
		"y@test.rs:3:13": "mut y: i32",
		"a@test.rs:6:8":  "a: i32",
		"b@test.rs:6:16": "b: i32",
	}
	if diff := deep.Equal(defs, wantDefs); diff != nil {
		t.Errorf("Defs: %v", diff)
	}

	uses := 0
	for name, v := range info.Uses {
		if info.Defs[name] != nil {
			t.Errorf("%s recorded as both def and use", name.Value)
		}
		if v.Name() != name.Value {
			t.Errorf("use of %s resolved to %s", name.Value, v.Name())
		}
		uses++
	}
	if uses != 6 {
		t.Errorf("len(Uses) = %d, want 6", uses)
	}

	if len(info.Calls) != 1 {
		t.Errorf("len(Calls) = %d, want 1", len(info.Calls))
	}

	binops := 0
	for e, typ := range info.Types {
		if op, ok := e.(*syntax.Operation); ok && op.Y != nil {
			binops++
			if typ != types.Type(types.Typ[types.Int]) {
				t.Errorf("%s has type %s", syntax.ExprString(op), typ)
			}
		}
	}
	if binops != 2 {
		t.Errorf("binary operations recorded = %d, want 2", binops)
	}
}
