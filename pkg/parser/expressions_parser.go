package parser

import (
	"stow/interpreter-go/pkg/ast"
	"stow/interpreter-go/pkg/lexer"
)

// parseExpression reads one atom and, if a binary operator follows, takes
// the whole remainder of the expression as the right operand. Every operator
// therefore binds right-associatively with equal precedence:
// 1-2-3 is 1-(2-3).
func (p *Parser) parseExpression() ast.NodeID {
	left := p.parseAtom()
	op := p.peek()
	if !op.Kind.IsBinaryOperator() {
		return left
	}
	p.next()
	right := p.parseExpression()
	return p.arena.WithLine(p.arena.Bin(op.Operator(), left, right), op.Line)
}

// parseAtom consumes one token and whatever the atom form it starts needs.
// A token that cannot start an atom is dropped and NoNode returned.
func (p *Parser) parseAtom() ast.NodeID {
	tok := p.next()
	switch tok.Kind {
	case lexer.String:
		return p.arena.WithLine(p.arena.Str(tok.Text), tok.Line)
	case lexer.Number:
		return p.arena.WithLine(p.arena.Num(tok.Text), tok.Line)
	case lexer.Input:
		p.expect(lexer.LParen)
		prompt := p.parseExpression()
		p.expect(lexer.RParen)
		return p.arena.WithLine(p.arena.Input(prompt), tok.Line)
	case lexer.Identifier:
		switch p.peek().Kind {
		case lexer.LParen:
			p.next()
			args := p.parseExpressionList(lexer.RParen)
			p.expect(lexer.RParen)
			return p.arena.WithLine(p.arena.Call(tok.Text, args...), tok.Line)
		case lexer.LBracket:
			p.next()
			index := p.parseExpression()
			p.expect(lexer.RBracket)
			return p.arena.WithLine(p.arena.IndexExpr(tok.Text, index), tok.Line)
		}
		return p.arena.WithLine(p.arena.ID(tok.Text), tok.Line)
	case lexer.LBracket:
		items := p.parseExpressionList(lexer.RBracket)
		p.expect(lexer.RBracket)
		return p.arena.WithLine(p.arena.ListLit(items...), tok.Line)
	}
	p.report(tok.Line, "unexpected %s in expression", describe(tok))
	return ast.NoNode
}

// parseExpressionList reads comma-separated expressions up to, but not
// including, the closing token.
func (p *Parser) parseExpressionList(closing lexer.Kind) []ast.NodeID {
	var items []ast.NodeID
	if p.at(closing) {
		return items
	}
	for {
		items = append(items, p.parseExpression())
		if !p.accept(lexer.Comma) {
			return items
		}
	}
}
