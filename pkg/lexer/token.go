package lexer

import "fmt"

// Kind is the set of lexical token kinds.
type Kind int

const (
	Var Kind = iota
	Val
	Func
	If
	Else
	While
	Print
	Input
	Return
	Break
	Continue
	Import

	Identifier
	String
	Number

	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Colon
	Comma
	Equals
	Semicolon

	// Binary operators. Keep Plus..Or contiguous; IsBinaryOperator relies on it.
	Plus
	Minus
	Star
	Slash
	EqEq
	BangEq
	Less
	Greater
	And
	Or

	EOF
	Unknown
)

var kindNames = [...]string{
	Var:        "var",
	Val:        "val",
	Func:       "func",
	If:         "if",
	Else:       "else",
	While:      "while",
	Print:      "print",
	Input:      "input",
	Return:     "return",
	Break:      "break",
	Continue:   "continue",
	Import:     "import",
	Identifier: "IDENT",
	String:     "STRING",
	Number:     "NUMBER",
	LParen:     "(",
	RParen:     ")",
	LBrace:     "{",
	RBrace:     "}",
	LBracket:   "[",
	RBracket:   "]",
	Colon:      ":",
	Comma:      ",",
	Equals:     "=",
	Semicolon:  ";",
	Plus:       "+",
	Minus:      "-",
	Star:       "*",
	Slash:      "/",
	EqEq:       "==",
	BangEq:     "!=",
	Less:       "<",
	Greater:    ">",
	And:        "&&",
	Or:         "||",
	EOF:        "EOF",
	Unknown:    "UNKNOWN",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsBinaryOperator reports whether k continues a binary expression.
func (k Kind) IsBinaryOperator() bool {
	return k >= Plus && k <= Or
}

// IsKeyword reports whether k is one of the reserved words.
func (k Kind) IsKeyword() bool {
	return k >= Var && k <= Import
}

var keywords = map[string]Kind{
	"var":      Var,
	"val":      Val,
	"func":     Func,
	"if":       If,
	"else":     Else,
	"while":    While,
	"print":    Print,
	"input":    Input,
	"return":   Return,
	"break":    Break,
	"continue": Continue,
	"import":   Import,
}

// LookupIdent maps a scanned word to its keyword kind, or Identifier.
func LookupIdent(word string) Kind {
	if k, ok := keywords[word]; ok {
		return k
	}
	return Identifier
}

// Token is a single lexical unit. Text is only populated for identifiers,
// string literals and number literals.
type Token struct {
	Kind Kind
	Text string
	Line int
}

func (t Token) String() string {
	switch t.Kind {
	case Identifier, Number:
		return fmt.Sprintf("%s(%s)@%d", t.Kind, t.Text, t.Line)
	case String:
		return fmt.Sprintf("%s(%q)@%d", t.Kind, t.Text, t.Line)
	default:
		return fmt.Sprintf("%s@%d", t.Kind, t.Line)
	}
}

// Operator returns the source spelling of a binary operator token.
func (t Token) Operator() string {
	if t.Kind.IsBinaryOperator() {
		return t.Kind.String()
	}
	return "?"
}
