package ast

// Builders allocate fully linked nodes. The parser uses them with WithLine;
// tests use them directly to assemble programs without going through source.

// WithLine stamps a source line on id and returns it.
func (a *Arena) WithLine(id NodeID, line int) NodeID {
	if n := a.Node(id); n != nil {
		n.Line = line
	}
	return id
}

// Chain links statements through Right and returns the head.
func (a *Arena) Chain(stmts ...NodeID) NodeID {
	var head, last NodeID
	for _, id := range stmts {
		if !id.Valid() {
			continue
		}
		if !head.Valid() {
			head = id
		} else {
			a.nodes[last].Right = id
		}
		last = id
	}
	return head
}

// Link links parameters, arguments or list elements through NextParam and
// returns the head.
func (a *Arena) Link(items ...NodeID) NodeID {
	var head, last NodeID
	for _, id := range items {
		if !id.Valid() {
			continue
		}
		if !head.Valid() {
			head = id
		} else {
			a.nodes[last].NextParam = id
		}
		last = id
	}
	return head
}

func (a *Arena) Str(value string) NodeID { return a.New(NodeStringLiteral, value, 0) }

func (a *Arena) Num(value string) NodeID { return a.New(NodeNumberLiteral, value, 0) }

func (a *Arena) ID(name string) NodeID { return a.New(NodeIdentifier, name, 0) }

func (a *Arena) Bin(op string, left, right NodeID) NodeID {
	id := a.New(NodeBinaryOperation, op, 0)
	a.nodes[id].Left = left
	a.nodes[id].Right = right
	return id
}

func (a *Arena) Print(expr NodeID) NodeID {
	id := a.New(NodePrint, "", 0)
	a.nodes[id].Left = expr
	return id
}

func (a *Arena) Input(prompt NodeID) NodeID {
	id := a.New(NodeInput, "", 0)
	a.nodes[id].Left = prompt
	return id
}

func (a *Arena) declare(keyword, name string, typ DataType, init NodeID) NodeID {
	id := a.New(NodeVarDecl, keyword, 0)
	a.nodes[id].VarName = name
	a.nodes[id].VarType = typ
	a.nodes[id].Left = init
	return id
}

func (a *Arena) Var(name string, typ DataType, init NodeID) NodeID {
	return a.declare("var", name, typ, init)
}

func (a *Arena) Val(name string, typ DataType, init NodeID) NodeID {
	return a.declare("val", name, typ, init)
}

func (a *Arena) Assign(name string, value NodeID) NodeID {
	id := a.New(NodeAssign, name, 0)
	a.nodes[id].Left = value
	return id
}

func (a *Arena) AssignIndex(name string, index, value NodeID) NodeID {
	id := a.Assign(name, value)
	a.nodes[id].Index = index
	return id
}

// Block wraps stmts in a Block node.
func (a *Arena) Block(stmts ...NodeID) NodeID {
	head := a.Chain(stmts...)
	id := a.New(NodeBlock, "", 0)
	a.nodes[id].Body = head
	return id
}

func (a *Arena) Param(name string, typ DataType) NodeID {
	id := a.New(NodeParam, name, 0)
	a.nodes[id].VarType = typ
	return id
}

func (a *Arena) Fn(name string, params []NodeID, ret DataType, body NodeID) NodeID {
	head := a.Link(params...)
	id := a.New(NodeFuncDecl, name, 0)
	a.nodes[id].Params = head
	a.nodes[id].Body = body
	a.nodes[id].VarType = ret
	return id
}

func (a *Arena) Call(name string, args ...NodeID) NodeID {
	head := a.Link(args...)
	id := a.New(NodeFuncCall, name, 0)
	a.nodes[id].Params = head
	return id
}

func (a *Arena) If(cond, body, elseBody NodeID) NodeID {
	id := a.New(NodeIf, "", 0)
	a.nodes[id].Condition = cond
	a.nodes[id].Body = body
	a.nodes[id].ElseBody = elseBody
	return id
}

func (a *Arena) While(cond, body NodeID) NodeID {
	id := a.New(NodeWhile, "", 0)
	a.nodes[id].Condition = cond
	a.nodes[id].Body = body
	return id
}

// Ret builds a return statement; pass NoNode for a bare return.
func (a *Arena) Ret(expr NodeID) NodeID {
	id := a.New(NodeReturn, "", 0)
	a.nodes[id].Left = expr
	return id
}

func (a *Arena) Break() NodeID { return a.New(NodeBreak, "", 0) }

func (a *Arena) Continue() NodeID { return a.New(NodeContinue, "", 0) }

func (a *Arena) Import(path string) NodeID { return a.New(NodeImport, path, 0) }

func (a *Arena) ListLit(items ...NodeID) NodeID {
	head := a.Link(items...)
	id := a.New(NodeListLiteral, "", 0)
	a.nodes[id].Params = head
	return id
}

func (a *Arena) IndexExpr(name string, index NodeID) NodeID {
	id := a.New(NodeIndex, name, 0)
	a.nodes[id].Index = index
	return id
}

// Mod packages top-level statements as a Program.
func Mod(a *Arena, stmts ...NodeID) *Program {
	return &Program{Arena: a, Root: a.Block(stmts...)}
}
