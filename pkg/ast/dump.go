package ast

import (
	"strconv"
	"strings"
)

// Dump renders the subtree at id as a compact S-expression. Statement
// chains inside blocks are expanded; the Right link of id itself is not
// followed.
func Dump(a *Arena, id NodeID) string {
	var b strings.Builder
	dumpNode(&b, a, id)
	return b.String()
}

// DumpProgram renders every top-level statement, one per line.
func DumpProgram(p *Program) string {
	if p.Empty() {
		return ""
	}
	root := p.Arena.Node(p.Root)
	var lines []string
	for _, stmt := range p.Arena.Statements(root.Body) {
		lines = append(lines, Dump(p.Arena, stmt))
	}
	return strings.Join(lines, "\n")
}

func dumpNode(b *strings.Builder, a *Arena, id NodeID) {
	n := a.Node(id)
	if n == nil {
		b.WriteString("nil")
		return
	}
	switch n.Type {
	case NodeStringLiteral:
		b.WriteString("(str ")
		b.WriteString(strconv.Quote(n.Value))
		b.WriteByte(')')
	case NodeNumberLiteral:
		b.WriteString("(num " + n.Value + ")")
	case NodeIdentifier:
		b.WriteString("(id " + n.Value + ")")
	case NodeBinaryOperation:
		b.WriteString("(" + n.Value + " ")
		dumpNode(b, a, n.Left)
		b.WriteByte(' ')
		dumpNode(b, a, n.Right)
		b.WriteByte(')')
	case NodePrint, NodeInput:
		b.WriteString("(" + strings.ToLower(string(n.Type)) + " ")
		dumpNode(b, a, n.Left)
		b.WriteByte(')')
	case NodeVarDecl:
		b.WriteString("(" + n.Value + " " + n.VarName + ":" + n.VarType.String() + " ")
		dumpNode(b, a, n.Left)
		b.WriteByte(')')
	case NodeAssign:
		b.WriteString("(assign " + n.Value)
		if n.Index.Valid() {
			b.WriteByte('[')
			dumpNode(b, a, n.Index)
			b.WriteByte(']')
		}
		b.WriteByte(' ')
		dumpNode(b, a, n.Left)
		b.WriteByte(')')
	case NodeBlock:
		b.WriteString("(block")
		for _, stmt := range a.Statements(n.Body) {
			b.WriteByte(' ')
			dumpNode(b, a, stmt)
		}
		b.WriteByte(')')
	case NodeFuncDecl:
		b.WriteString("(func " + n.Value + " (")
		for i, p := range a.List(n.Params) {
			if i > 0 {
				b.WriteByte(' ')
			}
			dumpNode(b, a, p)
		}
		b.WriteString("):" + n.VarType.String() + " ")
		dumpNode(b, a, n.Body)
		b.WriteByte(')')
	case NodeParam:
		b.WriteString(n.Value + ":" + n.VarType.String())
	case NodeFuncCall:
		b.WriteString("(call " + n.Value)
		dumpList(b, a, n.Params)
		b.WriteByte(')')
	case NodeListLiteral:
		b.WriteString("(list")
		dumpList(b, a, n.Params)
		b.WriteByte(')')
	case NodeIndex:
		b.WriteString("(index " + n.Value + " ")
		dumpNode(b, a, n.Index)
		b.WriteByte(')')
	case NodeIf:
		b.WriteString("(if ")
		dumpNode(b, a, n.Condition)
		b.WriteByte(' ')
		dumpNode(b, a, n.Body)
		if n.ElseBody.Valid() {
			b.WriteByte(' ')
			dumpNode(b, a, n.ElseBody)
		}
		b.WriteByte(')')
	case NodeWhile:
		b.WriteString("(while ")
		dumpNode(b, a, n.Condition)
		b.WriteByte(' ')
		dumpNode(b, a, n.Body)
		b.WriteByte(')')
	case NodeReturn:
		b.WriteString("(return")
		if n.Left.Valid() {
			b.WriteByte(' ')
			dumpNode(b, a, n.Left)
		}
		b.WriteByte(')')
	case NodeBreak:
		b.WriteString("(break)")
	case NodeContinue:
		b.WriteString("(continue)")
	case NodeImport:
		b.WriteString("(import " + strconv.Quote(n.Value) + ")")
	default:
		b.WriteString("(" + string(n.Type) + ")")
	}
}

func dumpList(b *strings.Builder, a *Arena, head NodeID) {
	for _, item := range a.List(head) {
		b.WriteByte(' ')
		dumpNode(b, a, item)
	}
}
