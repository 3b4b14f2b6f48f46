package ast

type NodeType string

const (
	NodePrint           NodeType = "Print"
	NodeInput           NodeType = "Input"
	NodeStringLiteral   NodeType = "StringLiteral"
	NodeNumberLiteral   NodeType = "NumberLiteral"
	NodeIdentifier      NodeType = "Identifier"
	NodeVarDecl         NodeType = "VarDecl"
	NodeBlock           NodeType = "Block"
	NodeFuncDecl        NodeType = "FuncDecl"
	NodeFuncCall        NodeType = "FuncCall"
	NodeIf              NodeType = "If"
	NodeWhile           NodeType = "While"
	NodeBinaryOperation NodeType = "BinOp"
	NodeListLiteral     NodeType = "ListLiteral"
	NodeParam           NodeType = "Param"
	NodeAssign          NodeType = "Assign"
	NodeReturn          NodeType = "Return"
	NodeBreak           NodeType = "Break"
	NodeContinue        NodeType = "Continue"
	NodeImport          NodeType = "Import"
	NodeIndex           NodeType = "Index"
)

// DataType is a declared type annotation. It is recorded but never enforced.
type DataType int

const (
	TypeInt DataType = iota
	TypeStr
	TypeFloat
	TypeBool
	TypeVoid
	TypeList
	TypeUnknown
)

var dataTypeNames = map[DataType]string{
	TypeInt:     "Int",
	TypeStr:     "Str",
	TypeFloat:   "Float",
	TypeBool:    "Bool",
	TypeVoid:    "Void",
	TypeList:    "List",
	TypeUnknown: "Unknown",
}

func (d DataType) String() string {
	if name, ok := dataTypeNames[d]; ok {
		return name
	}
	return "Unknown"
}

// ParseDataType maps a type annotation spelling to its tag. Anything that is
// not an exact, case-sensitive match is TypeUnknown.
func ParseDataType(name string) DataType {
	switch name {
	case "Int":
		return TypeInt
	case "Str":
		return TypeStr
	case "Float":
		return TypeFloat
	case "Bool":
		return TypeBool
	case "Void":
		return TypeVoid
	case "List":
		return TypeList
	default:
		return TypeUnknown
	}
}

// NodeID is a handle into an Arena. The zero value is NoNode.
type NodeID int32

const NoNode NodeID = 0

// Valid reports whether id refers to a node.
func (id NodeID) Valid() bool { return id != NoNode }

// Node is one AST record. The meaning of each link depends on Type:
//
//   - Value: literal text, operator symbol, identifier / function / parameter
//     name, assignment target, import path, or "var"/"val" for declarations.
//   - Right: for statements, the next statement in the enclosing block; for
//     BinOp, the right operand.
//   - Params/NextParam: head and chain of parameter, argument, or list
//     element nodes.
type Node struct {
	Type    NodeType
	Value   string
	VarName string
	VarType DataType
	Line    int

	Left      NodeID
	Right     NodeID
	Condition NodeID
	Body      NodeID
	ElseBody  NodeID
	Params    NodeID
	NextParam NodeID
	Index     NodeID
}

// IsConstant reports whether a VarDecl was written with val.
func (n *Node) IsConstant() bool {
	return n.Type == NodeVarDecl && n.Value == "val"
}

// Arena owns every node of one parsed program. Function table entries keep
// a reference to the arena, so a declaration's body and parameters stay
// valid for as long as the function is callable.
type Arena struct {
	nodes []Node
}

// NewArena returns an empty arena. Slot 0 is reserved for NoNode.
func NewArena() *Arena {
	return &Arena{nodes: make([]Node, 1, 64)}
}

// New allocates a node and returns its handle.
func (a *Arena) New(kind NodeType, value string, line int) NodeID {
	a.nodes = append(a.nodes, Node{Type: kind, Value: value, VarType: TypeUnknown, Line: line})
	return NodeID(len(a.nodes) - 1)
}

// Node returns the node for id, or nil for NoNode and out-of-range handles.
// The pointer is invalidated by the next call to New.
func (a *Arena) Node(id NodeID) *Node {
	if id <= NoNode || int(id) >= len(a.nodes) {
		return nil
	}
	return &a.nodes[id]
}

// Len reports how many nodes have been allocated.
func (a *Arena) Len() int {
	return len(a.nodes) - 1
}

// Statements walks a statement chain linked through Right.
func (a *Arena) Statements(head NodeID) []NodeID {
	var out []NodeID
	for id := head; id.Valid(); id = a.nodes[id].Right {
		out = append(out, id)
	}
	return out
}

// List walks a parameter/argument/element chain linked through NextParam.
func (a *Arena) List(head NodeID) []NodeID {
	var out []NodeID
	for id := head; id.Valid(); id = a.nodes[id].NextParam {
		out = append(out, id)
	}
	return out
}

// Program is the result of parsing one source text. Root is a Block whose
// Body is the first top-level statement.
type Program struct {
	Arena *Arena
	Root  NodeID
}

// Empty reports whether the program has no statements.
func (p *Program) Empty() bool {
	if p == nil || p.Arena == nil {
		return true
	}
	root := p.Arena.Node(p.Root)
	return root == nil || !root.Body.Valid()
}
