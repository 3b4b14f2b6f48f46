package interpreter

import (
	"fmt"
	"strings"

	"stow/interpreter-go/pkg/diagnostics"
)

// RuntimeError is returned from strict-mode runs. Default runs report the
// same conditions inline and keep going.
type RuntimeError struct {
	Code    string
	Line    int
	Message string
	Detail  string
}

func (e *RuntimeError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Error [%s] at line %d", e.Code, e.Line)
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Detail != "" {
		fmt.Fprintf(&b, " (%s)", e.Detail)
	}
	return b.String()
}

func (i *Interpreter) newError(code string, line int, detail string) *RuntimeError {
	err := &RuntimeError{Code: code, Line: line, Detail: detail}
	if msg, ok := i.reporter.Catalog().Lookup(code); ok {
		err.Message = msg
	}
	return err
}

// halt records a strict-mode failure and reports whether it did. The first
// failure wins; everything after it is skipped.
func (i *Interpreter) halt(code string, line int, detail string) bool {
	if !i.strict {
		return false
	}
	if i.failure == nil {
		i.failure = i.newError(code, line, detail)
		i.logger.Debug("strict mode halt", "code", code, "line", line, "detail", detail)
	}
	return true
}

// undefinedVariable prints the coded report for a missing name.
func (i *Interpreter) undefinedVariable(name string, line int) {
	if i.halt(diagnostics.CodeUndefinedVariable, line, name) {
		return
	}
	i.reporter.Report(diagnostics.CodeUndefinedVariable, line)
}

func (i *Interpreter) undefinedFunction(name string, line int) {
	if i.halt(diagnostics.CodeUndefinedFunction, line, name) {
		return
	}
	i.logger.Debug("call to undefined function", "name", name, "line", line)
}

func (i *Interpreter) importFailed(path string, line int, err error) {
	if i.halt(diagnostics.CodeImport, line, fmt.Sprintf("%s: %v", path, err)) {
		return
	}
	i.logger.Debug("import failed", "path", path, "line", line, "err", err)
	fmt.Fprintf(i.stderr, "Error: could not import '%s'\n", path)
}

func (i *Interpreter) indexAssignment(name string, line int) {
	if i.halt(diagnostics.CodeIndexAssignment, line, name) {
		return
	}
	i.logger.Debug("index assignment ignored", "name", name, "line", line)
}
