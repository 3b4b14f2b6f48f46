package interpreter

import (
	"fmt"
	"os"

	"stow/interpreter-go/pkg/parser"
)

// maxImportDepth bounds nested imports so a cyclic chain is reported as a
// failed import instead of exhausting the stack.
const maxImportDepth = 256

// SourceLoader resolves an import path as written in source and returns the
// resolved location together with the file contents.
type SourceLoader interface {
	Load(path string) (resolved string, source []byte, err error)
}

// FileLoader reads import paths relative to the working directory.
type FileLoader struct{}

func (FileLoader) Load(path string) (string, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}
	return path, data, nil
}

// importFile runs another source file as a nested unit. It shares the
// variable and function tables and the control-flow flags with the importer;
// its AST stays reachable only through the functions it declared.
func (i *Interpreter) importFile(path string, line int) {
	if i.importDepth >= maxImportDepth {
		i.importFailed(path, line, fmt.Errorf("imports nested deeper than %d", maxImportDepth))
		return
	}
	resolved, data, err := i.loader.Load(path)
	if err != nil {
		i.importFailed(path, line, err)
		return
	}
	i.logger.Debug("importing", "path", path, "resolved", resolved)

	prog, diags := parser.Parse(string(data))
	if err := i.checkSyntax(diags); err != nil {
		if i.failure == nil {
			i.failure = err
		}
		return
	}
	if prog.Empty() {
		return
	}
	i.importDepth++
	defer func() { i.importDepth-- }()
	i.execChain(prog.Arena, prog.Root)
}
