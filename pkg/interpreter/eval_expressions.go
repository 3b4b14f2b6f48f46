package interpreter

import (
	"errors"
	"io"

	"stow/interpreter-go/pkg/ast"
	"stow/interpreter-go/pkg/runtime"
)

const (
	listPlaceholder  = "[Lista]"
	indexPlaceholder = "Item"
)

// evaluate reduces an expression to its text value. Missing nodes evaluate
// to empty text.
func (i *Interpreter) evaluate(a *ast.Arena, id ast.NodeID) runtime.Value {
	node := a.Node(id)
	if node == nil {
		return runtime.Text("")
	}
	switch node.Type {
	case ast.NodeStringLiteral, ast.NodeNumberLiteral:
		return runtime.Text(node.Value)
	case ast.NodeIdentifier:
		val, ok := i.env.Get(node.Value)
		if !ok {
			i.undefinedVariable(node.Value, node.Line)
			return runtime.Text("")
		}
		return val
	case ast.NodeFuncCall:
		return i.callFunction(a, node)
	case ast.NodeInput:
		return i.readInput(a, node)
	case ast.NodeBinaryOperation:
		left := i.evaluate(a, node.Left)
		right := i.evaluate(a, node.Right)
		return applyOperator(node.Value, left, right)
	case ast.NodeListLiteral:
		return runtime.Text(listPlaceholder)
	case ast.NodeIndex:
		return runtime.Text(indexPlaceholder)
	default:
		return runtime.Text("")
	}
}

func (i *Interpreter) readInput(a *ast.Arena, node *ast.Node) runtime.Value {
	prompt := i.evaluate(a, node.Left)
	line, err := i.input.ReadLine(prompt.String())
	if err != nil && !errors.Is(err, io.EOF) {
		i.logger.Debug("input read failed", "line", node.Line, "err", err)
	}
	return runtime.Text(line)
}

// applyOperator implements the binary operators over text values. "+" adds
// only when both operands begin with a digit and concatenates otherwise;
// arithmetic and ordering read the numeric prefix of each side; equality
// compares text.
func applyOperator(op string, left, right runtime.Value) runtime.Value {
	switch op {
	case "+":
		if left.StartsWithDigit() && right.StartsWithDigit() {
			return runtime.Number(left.Float() + right.Float())
		}
		return runtime.Text(left.String() + right.String())
	case "-":
		return runtime.Number(left.Float() - right.Float())
	case "*":
		return runtime.Number(left.Float() * right.Float())
	case "/":
		divisor := right.Float()
		if divisor == 0 {
			return runtime.Number(0)
		}
		return runtime.Number(left.Float() / divisor)
	case "==":
		return runtime.Bool(left.Equal(right))
	case "!=":
		return runtime.Bool(!left.Equal(right))
	case "<":
		return runtime.Bool(left.Float() < right.Float())
	case ">":
		return runtime.Bool(left.Float() > right.Float())
	case "&&":
		return runtime.Bool(left.Float() != 0 && right.Float() != 0)
	case "||":
		return runtime.Bool(left.Float() != 0 || right.Float() != 0)
	default:
		return runtime.Text("")
	}
}
