// Package parser builds stow ASTs with a hand-written recursive-descent
// parser.
//
// The parser never fails. Malformed statements are skipped and recorded as
// Diagnostics so callers can decide whether to surface them; tokens the
// grammar expects at a fixed position are consumed whether or not they match.
package parser

import (
	"fmt"

	"stow/interpreter-go/pkg/ast"
	"stow/interpreter-go/pkg/lexer"
)

// Diagnostic describes input the parser skipped or consumed unexpectedly.
type Diagnostic struct {
	Line    int
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s", d.Line, d.Message)
}

// Parser holds the state for one parse run.
type Parser struct {
	lex   *lexer.Lexer
	arena *ast.Arena
	diags []Diagnostic
}

// New creates a parser reading tokens from lex into a fresh arena.
func New(lex *lexer.Lexer) *Parser {
	return &Parser{lex: lex, arena: ast.NewArena()}
}

// Parse lexes and parses source as a complete program.
func Parse(source string) (*ast.Program, []Diagnostic) {
	p := New(lexer.New(source))
	prog := p.ParseProgram()
	return prog, p.Diagnostics()
}

// ParseProgram parses statements until end of input.
func (p *Parser) ParseProgram() *ast.Program {
	var stmts []ast.NodeID
	for p.peek().Kind != lexer.EOF {
		if stmt := p.parseStatement(); stmt.Valid() {
			stmts = append(stmts, stmt)
		}
	}
	return ast.Mod(p.arena, stmts...)
}

// Diagnostics returns everything recorded so far.
func (p *Parser) Diagnostics() []Diagnostic {
	return p.diags
}

func (p *Parser) next() lexer.Token { return p.lex.Next() }

func (p *Parser) peek() lexer.Token { return p.lex.Peek() }

func (p *Parser) at(kind lexer.Kind) bool { return p.peek().Kind == kind }

// expect consumes one token unconditionally, noting a diagnostic when it is
// not of the wanted kind.
func (p *Parser) expect(kind lexer.Kind) lexer.Token {
	tok := p.next()
	if tok.Kind != kind {
		p.report(tok.Line, "expected %s, found %s", kind, describe(tok))
	}
	return tok
}

// accept consumes the next token only when it is of the given kind.
func (p *Parser) accept(kind lexer.Kind) bool {
	if p.at(kind) {
		p.next()
		return true
	}
	return false
}

func (p *Parser) report(line int, format string, args ...any) {
	p.diags = append(p.diags, Diagnostic{Line: line, Message: fmt.Sprintf(format, args...)})
}

func describe(tok lexer.Token) string {
	switch tok.Kind {
	case lexer.Identifier, lexer.Number:
		return fmt.Sprintf("%q", tok.Text)
	case lexer.String:
		return fmt.Sprintf("string %q", tok.Text)
	case lexer.EOF:
		return "end of input"
	case lexer.Unknown:
		return "unrecognized character"
	default:
		return fmt.Sprintf("%q", tok.Kind.String())
	}
}
