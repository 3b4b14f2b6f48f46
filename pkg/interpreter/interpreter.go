package interpreter

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"stow/interpreter-go/pkg/ast"
	"stow/interpreter-go/pkg/diagnostics"
	"stow/interpreter-go/pkg/parser"
	"stow/interpreter-go/pkg/runtime"
)

// Config wires an interpreter to its surroundings. Zero fields fall back to
// the process streams, the working directory and a discarding logger.
type Config struct {
	Stdout  io.Writer
	Stderr  io.Writer
	Input   LineReader
	Catalog *diagnostics.Catalog
	Loader  SourceLoader
	Strict  bool
	Logger  *slog.Logger
}

// Interpreter is the execution context shared by a program and everything
// it imports: one flat variable environment, one function table, and the
// control-flow flags that unwind statement chains.
type Interpreter struct {
	env   *runtime.Environment
	funcs *runtime.FunctionTable

	returning   bool
	returnValue runtime.Value
	breaking    bool
	continuing  bool

	// first runtime error in strict mode; halts execution once set
	failure     *RuntimeError
	importDepth int

	stdout   io.Writer
	stderr   io.Writer
	input    LineReader
	loader   SourceLoader
	reporter *diagnostics.Reporter
	logger   *slog.Logger
	strict   bool
}

// New returns an interpreter with empty variable and function tables.
func New(cfg Config) *Interpreter {
	i := &Interpreter{
		env:    runtime.NewEnvironment(),
		funcs:  runtime.NewFunctionTable(),
		stdout: cfg.Stdout,
		stderr: cfg.Stderr,
		input:  cfg.Input,
		loader: cfg.Loader,
		logger: cfg.Logger,
		strict: cfg.Strict,
	}
	if i.stdout == nil {
		i.stdout = os.Stdout
	}
	if i.stderr == nil {
		i.stderr = os.Stderr
	}
	if i.input == nil {
		i.input = NewStreamReader(os.Stdin, i.stdout)
	}
	if i.loader == nil {
		i.loader = FileLoader{}
	}
	if i.logger == nil {
		i.logger = slog.New(slog.DiscardHandler)
	}
	i.reporter = diagnostics.NewReporter(i.stdout, cfg.Catalog)
	return i
}

// Environment exposes the global variable table.
func (i *Interpreter) Environment() *runtime.Environment {
	return i.env
}

// Functions exposes the global function table.
func (i *Interpreter) Functions() *runtime.FunctionTable {
	return i.funcs
}

// Lookup returns the current text of a variable.
func (i *Interpreter) Lookup(name string) (string, bool) {
	val, ok := i.env.Get(name)
	return val.String(), ok
}

// SetStrict toggles strict mode for subsequent runs.
func (i *Interpreter) SetStrict(strict bool) {
	i.strict = strict
}

// Run parses source and executes it to completion. Outside strict mode the
// returned error is always nil: problems are reported inline and execution
// moves on to the next statement.
func (i *Interpreter) Run(source string) error {
	prog, diags := parser.Parse(source)
	if err := i.checkSyntax(diags); err != nil {
		return err
	}
	return i.Execute(prog)
}

// RunFile reads path and runs its contents.
func (i *Interpreter) RunFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	i.logger.Debug("running file", "path", path, "bytes", len(data))
	return i.Run(string(data))
}

// Execute runs an already parsed program as a top-level unit. Control-flow
// flags left over by the program (a stray break or return) are cleared
// afterwards so the next unit starts clean.
func (i *Interpreter) Execute(prog *ast.Program) error {
	i.failure = nil
	defer i.resetFlags()
	if prog.Empty() {
		return nil
	}
	i.execChain(prog.Arena, prog.Root)
	if i.failure != nil {
		return i.failure
	}
	return nil
}

func (i *Interpreter) checkSyntax(diags []parser.Diagnostic) *RuntimeError {
	for _, d := range diags {
		i.logger.Warn("parser skipped input", "line", d.Line, "detail", d.Message)
	}
	if !i.strict || len(diags) == 0 {
		return nil
	}
	return i.newError(diagnostics.CodeSyntax, diags[0].Line, diags[0].Message)
}

func (i *Interpreter) resetFlags() {
	i.returning = false
	i.returnValue = runtime.Value{}
	i.breaking = false
	i.continuing = false
}

// interrupted reports whether the remaining statements of the current chain
// must be skipped.
func (i *Interpreter) interrupted() bool {
	return i.returning || i.breaking || i.continuing || i.failure != nil
}
