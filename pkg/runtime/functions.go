package runtime

import "stow/interpreter-go/pkg/ast"

// Function is a declared function. It refers to its declaration by handle;
// holding the arena keeps the body and parameter nodes alive even after the
// program that declared it (for example an import) has finished running.
type Function struct {
	Name  string
	Arena *ast.Arena
	Decl  ast.NodeID
}

// Params returns the parameter nodes in declaration order.
func (f *Function) Params() []ast.NodeID {
	decl := f.Arena.Node(f.Decl)
	if decl == nil {
		return nil
	}
	return f.Arena.List(decl.Params)
}

// Body returns the function's body block.
func (f *Function) Body() ast.NodeID {
	decl := f.Arena.Node(f.Decl)
	if decl == nil {
		return ast.NoNode
	}
	return decl.Body
}

// ReturnType is the declared (unchecked) return type.
func (f *Function) ReturnType() ast.DataType {
	decl := f.Arena.Node(f.Decl)
	if decl == nil {
		return ast.TypeUnknown
	}
	return decl.VarType
}

// FunctionTable holds every declaration ever registered. Redeclaring a name
// shadows the earlier entry; nothing is ever removed.
type FunctionTable struct {
	entries []*Function
}

// NewFunctionTable creates an empty table.
func NewFunctionTable() *FunctionTable {
	return &FunctionTable{}
}

// Declare registers fn ahead of any earlier entry with the same name.
func (t *FunctionTable) Declare(fn *Function) {
	t.entries = append(t.entries, fn)
}

// Lookup finds the most recently declared function called name.
func (t *FunctionTable) Lookup(name string) (*Function, bool) {
	for i := len(t.entries) - 1; i >= 0; i-- {
		if t.entries[i].Name == name {
			return t.entries[i], true
		}
	}
	return nil, false
}

// Len reports how many declarations have been registered, shadowed ones
// included.
func (t *FunctionTable) Len() int {
	return len(t.entries)
}

// Names returns the distinct callable names, most recent first.
func (t *FunctionTable) Names() []string {
	seen := make(map[string]struct{}, len(t.entries))
	var out []string
	for i := len(t.entries) - 1; i >= 0; i-- {
		name := t.entries[i].Name
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
