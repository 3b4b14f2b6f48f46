package runtime

import (
	"sort"

	"stow/interpreter-go/pkg/ast"
)

// Symbol is one variable binding.
type Symbol struct {
	Name     string
	Type     ast.DataType
	Value    Value
	Constant bool
}

// Environment is the single flat namespace every variable lives in. There
// is no nesting: block locals and call parameters land here too and outlive
// the block or call that created them.
type Environment struct {
	symbols map[string]*Symbol
}

// NewEnvironment creates an empty environment.
func NewEnvironment() *Environment {
	return &Environment{symbols: make(map[string]*Symbol)}
}

// Set binds name to value. An existing binding only has its value replaced;
// its declared type and constant flag are left as they were.
func (e *Environment) Set(name string, typ ast.DataType, value Value, constant bool) {
	if sym, ok := e.symbols[name]; ok {
		sym.Value = value
		return
	}
	e.symbols[name] = &Symbol{Name: name, Type: typ, Value: value, Constant: constant}
}

// Get returns the value bound to name.
func (e *Environment) Get(name string) (Value, bool) {
	if sym, ok := e.symbols[name]; ok {
		return sym.Value, true
	}
	return Value{}, false
}

// Lookup returns the full symbol for name.
func (e *Environment) Lookup(name string) (*Symbol, bool) {
	sym, ok := e.symbols[name]
	return sym, ok
}

// Snapshot returns a copy of the current bindings' values.
func (e *Environment) Snapshot() map[string]string {
	out := make(map[string]string, len(e.symbols))
	for name, sym := range e.symbols {
		out[name] = sym.Value.String()
	}
	return out
}

// Keys returns the bound names in sorted order.
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.symbols))
	for k := range e.symbols {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len reports the number of bindings.
func (e *Environment) Len() int {
	return len(e.symbols)
}
