package interpreter

import (
	"fmt"

	"stow/interpreter-go/pkg/ast"
	"stow/interpreter-go/pkg/runtime"
)

// execChain runs head and every statement linked after it through Right,
// stopping as soon as a control-flow flag is raised.
func (i *Interpreter) execChain(a *ast.Arena, head ast.NodeID) {
	for id := head; id.Valid(); {
		if i.interrupted() {
			return
		}
		node := a.Node(id)
		if node == nil {
			return
		}
		i.execStatement(a, id, node)
		id = node.Right
	}
}

func (i *Interpreter) execStatement(a *ast.Arena, id ast.NodeID, node *ast.Node) {
	switch node.Type {
	case ast.NodeBlock:
		i.execChain(a, node.Body)
	case ast.NodePrint:
		val := i.evaluate(a, node.Left)
		if i.failure != nil {
			return
		}
		fmt.Fprintln(i.stdout, val.String())
	case ast.NodeVarDecl:
		val := i.evaluate(a, node.Left)
		i.env.Set(node.VarName, node.VarType, val, node.IsConstant())
	case ast.NodeFuncDecl:
		i.funcs.Declare(&runtime.Function{Name: node.Value, Arena: a, Decl: id})
		i.logger.Debug("function declared", "name", node.Value, "line", node.Line)
	case ast.NodeFuncCall:
		i.callFunction(a, node)
	case ast.NodeReturn:
		i.execReturn(a, node)
	case ast.NodeBreak:
		i.breaking = true
	case ast.NodeContinue:
		i.continuing = true
	case ast.NodeIf:
		i.execIf(a, node)
	case ast.NodeWhile:
		i.execWhile(a, node)
	case ast.NodeAssign:
		i.execAssign(a, node)
	case ast.NodeImport:
		i.importFile(node.Value, node.Line)
	default:
		// Expression nodes in statement position have no effect.
	}
}

func (i *Interpreter) execReturn(a *ast.Arena, node *ast.Node) {
	val := runtime.Void()
	if node.Left.Valid() {
		val = i.evaluate(a, node.Left)
	}
	i.returnValue = val
	i.returning = true
}

func (i *Interpreter) execIf(a *ast.Arena, node *ast.Node) {
	if i.evaluate(a, node.Condition).Truthy() {
		i.execChain(a, node.Body)
	} else if node.ElseBody.Valid() {
		i.execChain(a, node.ElseBody)
	}
}

func (i *Interpreter) execWhile(a *ast.Arena, node *ast.Node) {
	for i.evaluate(a, node.Condition).Truthy() {
		i.execChain(a, node.Body)
		if i.breaking {
			i.breaking = false
			return
		}
		if i.continuing {
			i.continuing = false
			continue
		}
		if i.returning || i.failure != nil {
			return
		}
	}
}

// execAssign stores into the global table. Index assignment evaluates both
// sides and then does nothing.
func (i *Interpreter) execAssign(a *ast.Arena, node *ast.Node) {
	val := i.evaluate(a, node.Left)
	if node.Index.Valid() {
		i.evaluate(a, node.Index)
		i.indexAssignment(node.Value, node.Line)
		return
	}
	i.env.Set(node.Value, ast.TypeUnknown, val, false)
}

// callFunction binds arguments to parameters as global variables, runs the
// body and returns the carried return value, or "void". The return flag and
// value are always consumed here so they never leak into the caller.
func (i *Interpreter) callFunction(a *ast.Arena, node *ast.Node) runtime.Value {
	fn, ok := i.funcs.Lookup(node.Value)
	if !ok {
		i.undefinedFunction(node.Value, node.Line)
		return runtime.Void()
	}
	params := fn.Params()
	args := a.List(node.Params)
	for k := 0; k < len(params) && k < len(args); k++ {
		val := i.evaluate(a, args[k])
		param := fn.Arena.Node(params[k])
		i.env.Set(param.Value, param.VarType, val, false)
	}

	i.execChain(fn.Arena, fn.Body())

	result := runtime.Void()
	if i.returning {
		result = i.returnValue
	}
	i.returning = false
	i.returnValue = runtime.Value{}
	return result
}
