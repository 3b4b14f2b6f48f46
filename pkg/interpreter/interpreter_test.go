package interpreter

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"stow/interpreter-go/pkg/ast"
	"stow/interpreter-go/pkg/diagnostics"
)

type harness struct {
	interp *Interpreter
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newHarness(t *testing.T, cfg Config) *harness {
	t.Helper()
	h := &harness{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	cfg.Stdout = h.stdout
	cfg.Stderr = h.stderr
	if cfg.Input == nil {
		cfg.Input = NewStreamReader(strings.NewReader(""), h.stdout)
	}
	h.interp = New(cfg)
	return h
}

func (h *harness) run(t *testing.T, src string) string {
	t.Helper()
	h.stdout.Reset()
	if err := h.interp.Run(src); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	return h.stdout.String()
}

func runOutput(t *testing.T, src string) string {
	t.Helper()
	return newHarness(t, Config{}).run(t, src)
}

func expectOutput(t *testing.T, src string, lines ...string) {
	t.Helper()
	want := strings.Join(lines, "\n") + "\n"
	if len(lines) == 0 {
		want = ""
	}
	if got := runOutput(t, src); got != want {
		t.Fatalf("unexpected output for %q:\n got: %q\nwant: %q", src, got, want)
	}
}

func TestValReassignmentIsNotProtected(t *testing.T) {
	h := newHarness(t, Config{})
	out := h.run(t, `val x: Int = 5; x = 6; print(x);`)
	if out != "6\n" {
		t.Fatalf("unexpected output %q", out)
	}
	sym, ok := h.interp.Environment().Lookup("x")
	if !ok || !sym.Constant || sym.Type != ast.TypeInt {
		t.Fatalf("binding should keep its declaration metadata, got %+v", sym)
	}
}

func TestLastWriteWins(t *testing.T) {
	expectOutput(t, `var a = "one"; var a = "two"; a = "three"; print(a);`, "three")
}

func TestPlusUsesFirstCharacterHeuristic(t *testing.T) {
	cases := []struct{ src, want string }{
		{`print("a" + "b");`, "ab"},
		{`print(1 + 2);`, "3"},
		{`print("1" + "2");`, "3"},
		{`print("x" + "1");`, "x1"},
		{`print("1x" + "2");`, "3"},
		{`print("-5" + "1");`, "-51"},
		{`print(0.5 + 0.25);`, "0.75"},
	}
	for _, tc := range cases {
		expectOutput(t, tc.src, tc.want)
	}
}

func TestArithmetic(t *testing.T) {
	cases := []struct{ src, want string }{
		{`print(5 / 0);`, "0"},
		{`print(0 / 0);`, "0"},
		{`print(7 - 10);`, "-3"},
		{`print("3 apples" * 2);`, "6"},
		{`print("abc" - 1);`, "-1"},
		{`print(1 / 3);`, "0.333333"},
		{`var third = 1 / 3; print(third * 3);`, "0.999999"},
		{`print(1000000 * 1);`, "1e+06"},
	}
	for _, tc := range cases {
		expectOutput(t, tc.src, tc.want)
	}
}

func TestOperatorsAreRightAssociative(t *testing.T) {
	expectOutput(t, `print(1 - 2 - 3);`, "2")
	expectOutput(t, `print(2 * 3 + 1);`, "8")
	expectOutput(t, `print(1 < 2 == "true");`, "false")
}

func TestComparisons(t *testing.T) {
	cases := []struct{ src, want string }{
		{`print("1.0" == "1");`, "false"},
		{`print("1.0" != "1");`, "true"},
		{`print(1.0 < 2);`, "true"},
		{`print(3 > 2);`, "true"},
		{`print("abc" < "abd");`, "false"},
		{`print("a" == "a");`, "true"},
	}
	for _, tc := range cases {
		expectOutput(t, tc.src, tc.want)
	}
}

func TestLogicalOperatorsUseNumericTruthiness(t *testing.T) {
	expectOutput(t, `print(1 && 2);`, "true")
	expectOutput(t, `print(0 || 0);`, "false")
	expectOutput(t, `print(0 || 3);`, "true")
	expectOutput(t, `print("true" && "true");`, "false")
}

func TestIfElseChain(t *testing.T) {
	src := `
func grade(score) {
  if (score > 89) { return "A"; } else if (score > 79) { return "B"; } else { return "C"; }
}
print(grade(95));
print(grade(85));
print(grade(10));
if ("true") { print("literal true"); }
if ("yes") { print("unreachable"); }
`
	expectOutput(t, src, "A", "B", "C", "literal true")
}

func TestBreakLeavesOnlyTheInnermostLoop(t *testing.T) {
	src := `
var i = 0;
while (i < 10) {
  i = i + 1;
  if (i == 3) { break; }
  print(i);
}
print("done");
var o = 0;
while (o < 2) {
  o = o + 1;
  var k = 0;
  while (k < 5) {
    k = k + 1;
    if (k > 1) { break; }
    print(o + ":" + k);
  }
}
print("after");
`
	expectOutput(t, src, "1", "2", "done", "1:1", "2:1", "after")
}

func TestContinueSkipsRestOfIteration(t *testing.T) {
	src := `
var i = 0;
while (i < 5) {
  i = i + 1;
  if (i == 2) { continue; }
  print(i);
}
print("end");
`
	expectOutput(t, src, "1", "3", "4", "5", "end")
}

func TestWhileWithFalseCondition(t *testing.T) {
	expectOutput(t, `while (0) { print("never"); } print("ok");`, "ok")
}

func TestRecursiveFactorial(t *testing.T) {
	src := `
func fact(n: Int): Int {
  if (n < 2) { return 1; }
  return n * fact(n - 1);
}
print(fact(5));
`
	expectOutput(t, src, "120")
}

func TestReturnFromInsideLoop(t *testing.T) {
	src := `
func find() {
  var i = 0;
  while (i < 10) {
    i = i + 1;
    if (i == 4) { return i; }
  }
  return "none";
}
print(find());
print(i);
`
	expectOutput(t, src, "4", "4")
}

func TestParametersAndLocalsAreGlobal(t *testing.T) {
	src := `
func f(p: Str) { var inner = p + "!"; }
f("x");
print(p);
print(inner);
`
	expectOutput(t, src, "x", "x!")
}

func TestArgumentCountMismatch(t *testing.T) {
	// Extra arguments are never evaluated, so the undefined name is not reported.
	expectOutput(t, `func one(a) { print(a); } one(1, missing);`, "1")
	expectOutput(t, `var b = "old"; func two(a, b) { print(b); } two(1);`, "old")
}

func TestCallsWithoutReturnYieldVoid(t *testing.T) {
	src := `
func value() { return "v"; }
func none() { print("in"); }
value();
print(none());
func bare() { return; print("skipped"); }
print(bare());
print(nope(1));
nope();
`
	expectOutput(t, src, "in", "void", "void", "void")
}

func TestLaterDeclarationShadows(t *testing.T) {
	expectOutput(t, `func f() { return 1; } func f() { return 2; } print(f());`, "2")
}

func TestListAndIndexPlaceholders(t *testing.T) {
	src := `
var xs: List = [1, 2, 3];
print(xs);
print(xs[0]);
xs[0] = 5;
print(xs);
print([]);
`
	expectOutput(t, src, "[Lista]", "Item", "[Lista]", "[Lista]")
}

func TestUndefinedVariableReportsAndContinues(t *testing.T) {
	expectOutput(t, `print(x);
print("after");`, "Error [E007] at line 1", "", "after")

	cat := diagnostics.NewCatalog(map[string]string{"E007": "Variable not defined"})
	h := newHarness(t, Config{Catalog: cat})
	out := h.run(t, "\n\nprint(y + \"z\");")
	if out != "Error [E007] at line 3: Variable not defined\nz\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestInputReadsLines(t *testing.T) {
	var out bytes.Buffer
	reader := NewStreamReader(strings.NewReader("Ada\r\nrest"), &out)
	interp := New(Config{Stdout: &out, Stderr: io.Discard, Input: reader})
	src := `
var name = input("Name? ");
print("Hi " + name);
print(input(""));
print(input("more? ") + "|");
`
	if err := interp.Run(src); err != nil {
		t.Fatalf("run: %v", err)
	}
	want := "Name? Hi Ada\nrest\nmore? |\n"
	if out.String() != want {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestStrayControlFlagsResetBetweenRuns(t *testing.T) {
	h := newHarness(t, Config{})
	if out := h.run(t, `break; print("skipped");`); out != "" {
		t.Fatalf("statements after top-level break should be skipped, got %q", out)
	}
	if out := h.run(t, `print("next");`); out != "next\n" {
		t.Fatalf("flags should reset between runs, got %q", out)
	}
	if out := h.run(t, `return 5; print("skipped");`); out != "" {
		t.Fatalf("unexpected output %q", out)
	}
	if out := h.run(t, `print("again");`); out != "again\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestStateSurvivesAcrossRuns(t *testing.T) {
	h := newHarness(t, Config{})
	h.run(t, `var counter = 1; func bump() { counter = counter + 1; }`)
	h.run(t, `bump(); bump();`)
	if got, _ := h.interp.Lookup("counter"); got != "3" {
		t.Fatalf("counter = %q", got)
	}
	if h.interp.Functions().Len() != 1 {
		t.Fatalf("expected one function")
	}
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestImportSharesGlobals(t *testing.T) {
	dir := t.TempDir()
	lib := filepath.Join(dir, "lib.stow")
	writeFile(t, lib, `
var greeting = "hello";
func shout(s: Str): Str { return s + "!"; }
`)
	src := `import "` + lib + `";
print(greeting);
print(shout("hey"));
`
	expectOutput(t, src, "hello", "hey!")
}

func TestImportRelativeToWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "lib", "util.stow"), `var loaded = "yes";`)
	t.Chdir(dir)
	expectOutput(t, `import "lib/util.stow"; print(loaded);`, "yes")
}

func TestImportMissingFileContinues(t *testing.T) {
	h := newHarness(t, Config{})
	out := h.run(t, `import "does/not/exist.stow"; print("still running");`)
	if out != "still running\n" {
		t.Fatalf("unexpected output %q", out)
	}
	if !strings.Contains(h.stderr.String(), "could not import 'does/not/exist.stow'") {
		t.Fatalf("expected import error on stderr, got %q", h.stderr.String())
	}
}

type mapLoader map[string]string

func (m mapLoader) Load(path string) (string, []byte, error) {
	src, ok := m[path]
	if !ok {
		return "", nil, fs.ErrNotExist
	}
	return "mem:" + path, []byte(src), nil
}

func TestImportUsesConfiguredLoader(t *testing.T) {
	loader := mapLoader{
		"a": `import "b"; var fromA = fromB + "a";`,
		"b": `var fromB = "b";`,
	}
	h := newHarness(t, Config{Loader: loader})
	if out := h.run(t, `import "a"; print(fromA);`); out != "ba\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestImportCycleIsBounded(t *testing.T) {
	loader := mapLoader{"self": `import "self";`}
	h := newHarness(t, Config{Loader: loader})
	if out := h.run(t, `import "self"; print("survived");`); out != "survived\n" {
		t.Fatalf("unexpected output %q", out)
	}
	if !strings.Contains(h.stderr.String(), "could not import 'self'") {
		t.Fatalf("expected nesting failure, got %q", h.stderr.String())
	}
}

func TestImportedReturnStopsImporter(t *testing.T) {
	loader := mapLoader{"early": `return 1;`}
	h := newHarness(t, Config{Loader: loader})
	if out := h.run(t, `import "early"; print("skipped");`); out != "" {
		t.Fatalf("flags raised by an import apply to the importer, got %q", out)
	}
}

func TestStrictMode(t *testing.T) {
	cases := []struct {
		name string
		src  string
		code string
		line int
	}{
		{"undefined variable", "print(\"a\");\nprint(x);\nprint(\"b\");", "E007", 2},
		{"undefined function", `missing();`, "E010", 1},
		{"index assignment", `var xs = [1]; xs[0] = 2;`, "E012", 1},
		{"import", `import "nowhere.stow";`, "E011", 1},
		{"syntax", `print("ok"); 5;`, "E001", 1},
	}
	for _, tc := range cases {
		h := newHarness(t, Config{Strict: true})
		err := h.interp.Run(tc.src)
		var rtErr *RuntimeError
		if !errors.As(err, &rtErr) {
			t.Fatalf("%s: expected RuntimeError, got %v", tc.name, err)
		}
		if rtErr.Code != tc.code || rtErr.Line != tc.line {
			t.Fatalf("%s: unexpected error %+v", tc.name, rtErr)
		}
		if strings.Contains(h.stdout.String(), "b\n") || strings.Contains(h.stdout.String(), "Error [") {
			t.Fatalf("%s: execution should stop without inline reports, got %q", tc.name, h.stdout.String())
		}
	}
}

func TestStrictErrorMessage(t *testing.T) {
	cat := diagnostics.NewCatalog(map[string]string{"E007": "Variable not defined"})
	h := newHarness(t, Config{Strict: true, Catalog: cat})
	err := h.interp.Run(`print(ghost);`)
	if err == nil || err.Error() != "Error [E007] at line 1: Variable not defined (ghost)" {
		t.Fatalf("unexpected error %v", err)
	}
	h.interp.SetStrict(false)
	if out := h.run(t, `print("recovered");`); out != "recovered\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestExecuteBuiltProgram(t *testing.T) {
	a := ast.NewArena()
	prog := ast.Mod(a,
		a.Fn("twice", []ast.NodeID{a.Param("v", ast.TypeInt)}, ast.TypeInt,
			a.Block(a.Ret(a.Bin("*", a.ID("v"), a.Num("2"))))),
		a.Print(a.Call("twice", a.Num("21"))),
	)
	var out bytes.Buffer
	if err := New(Config{Stdout: &out}).Execute(prog); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out.String() != "42\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.stow")
	writeFile(t, path, `print("from file");`)
	var out bytes.Buffer
	interp := New(Config{Stdout: &out})
	if err := interp.RunFile(path); err != nil {
		t.Fatalf("run file: %v", err)
	}
	if out.String() != "from file\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
	if err := interp.RunFile(filepath.Join(t.TempDir(), "missing.stow")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoggerReceivesDebugEvents(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	h := newHarness(t, Config{Logger: logger})
	h.run(t, `func f() { } 7; print("x");`)
	for _, want := range []string{"function declared", "name=f", "parser skipped input"} {
		if !strings.Contains(logs.String(), want) {
			t.Fatalf("expected %q in logs:\n%s", want, logs.String())
		}
	}
}
