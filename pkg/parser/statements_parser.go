package parser

import (
	"stow/interpreter-go/pkg/ast"
	"stow/interpreter-go/pkg/lexer"
)

// parseStatement returns NoNode for anything it skips. It consumes at least
// one token unless the input is exhausted.
func (p *Parser) parseStatement() ast.NodeID {
	tok := p.peek()
	switch tok.Kind {
	case lexer.EOF:
		return ast.NoNode
	case lexer.Print:
		return p.parsePrint()
	case lexer.Var, lexer.Val:
		return p.parseDeclaration()
	case lexer.Func:
		return p.parseFunction()
	case lexer.Return:
		return p.parseReturn()
	case lexer.Break:
		p.next()
		p.expect(lexer.Semicolon)
		return p.arena.WithLine(p.arena.Break(), tok.Line)
	case lexer.Continue:
		p.next()
		p.expect(lexer.Semicolon)
		return p.arena.WithLine(p.arena.Continue(), tok.Line)
	case lexer.If:
		return p.parseIf()
	case lexer.While:
		return p.parseWhile()
	case lexer.Import:
		return p.parseImport()
	case lexer.Identifier:
		return p.parseIdentifierStatement()
	}
	p.next()
	p.report(tok.Line, "skipping unexpected %s at statement start", describe(tok))
	return ast.NoNode
}

// parseBlock reads `{ stmt* }`. The opening token is consumed whatever it
// is; the block ends at `}` or end of input.
func (p *Parser) parseBlock() ast.NodeID {
	open := p.expect(lexer.LBrace)
	var stmts []ast.NodeID
	for !p.at(lexer.RBrace) && !p.at(lexer.EOF) {
		if stmt := p.parseStatement(); stmt.Valid() {
			stmts = append(stmts, stmt)
		}
	}
	p.expect(lexer.RBrace)
	return p.arena.WithLine(p.arena.Block(stmts...), open.Line)
}

func (p *Parser) parsePrint() ast.NodeID {
	kw := p.next()
	p.expect(lexer.LParen)
	expr := p.parseExpression()
	p.expect(lexer.RParen)
	p.expect(lexer.Semicolon)
	return p.arena.WithLine(p.arena.Print(expr), kw.Line)
}

// parseTypeAnnotation reads an optional `: Type`.
func (p *Parser) parseTypeAnnotation() ast.DataType {
	if !p.accept(lexer.Colon) {
		return ast.TypeUnknown
	}
	return ast.ParseDataType(p.next().Text)
}

func (p *Parser) parseDeclaration() ast.NodeID {
	kw := p.next()
	name := p.expect(lexer.Identifier)
	typ := p.parseTypeAnnotation()
	p.expect(lexer.Equals)
	init := p.parseExpression()
	p.expect(lexer.Semicolon)

	var id ast.NodeID
	if kw.Kind == lexer.Val {
		id = p.arena.Val(name.Text, typ, init)
	} else {
		id = p.arena.Var(name.Text, typ, init)
	}
	return p.arena.WithLine(id, kw.Line)
}

func (p *Parser) parseFunction() ast.NodeID {
	kw := p.next()
	name := p.expect(lexer.Identifier)
	p.expect(lexer.LParen)
	var params []ast.NodeID
	if !p.at(lexer.RParen) {
		for {
			param := p.expect(lexer.Identifier)
			typ := p.parseTypeAnnotation()
			params = append(params, p.arena.WithLine(p.arena.Param(param.Text, typ), param.Line))
			if !p.accept(lexer.Comma) {
				break
			}
		}
	}
	p.expect(lexer.RParen)
	ret := p.parseTypeAnnotation()
	body := p.parseBlock()
	return p.arena.WithLine(p.arena.Fn(name.Text, params, ret, body), kw.Line)
}

func (p *Parser) parseReturn() ast.NodeID {
	kw := p.next()
	value := ast.NoNode
	if !p.at(lexer.Semicolon) {
		value = p.parseExpression()
	}
	p.expect(lexer.Semicolon)
	return p.arena.WithLine(p.arena.Ret(value), kw.Line)
}

func (p *Parser) parseIf() ast.NodeID {
	kw := p.next()
	p.expect(lexer.LParen)
	cond := p.parseExpression()
	p.expect(lexer.RParen)
	body := p.parseBlock()
	elseBody := ast.NoNode
	if p.accept(lexer.Else) {
		if p.at(lexer.If) {
			elseBody = p.parseStatement()
		} else {
			elseBody = p.parseBlock()
		}
	}
	return p.arena.WithLine(p.arena.If(cond, body, elseBody), kw.Line)
}

func (p *Parser) parseWhile() ast.NodeID {
	kw := p.next()
	p.expect(lexer.LParen)
	cond := p.parseExpression()
	p.expect(lexer.RParen)
	body := p.parseBlock()
	return p.arena.WithLine(p.arena.While(cond, body), kw.Line)
}

func (p *Parser) parseImport() ast.NodeID {
	kw := p.next()
	path := p.expect(lexer.String)
	p.expect(lexer.Semicolon)
	return p.arena.WithLine(p.arena.Import(path.Text), kw.Line)
}

// parseIdentifierStatement handles assignment, index assignment and calls in
// statement position. Any other continuation drops the identifier alone.
func (p *Parser) parseIdentifierStatement() ast.NodeID {
	id := p.next()
	switch p.peek().Kind {
	case lexer.Equals:
		p.next()
		value := p.parseExpression()
		p.expect(lexer.Semicolon)
		return p.arena.WithLine(p.arena.Assign(id.Text, value), id.Line)
	case lexer.LBracket:
		p.next()
		index := p.parseExpression()
		p.expect(lexer.RBracket)
		p.expect(lexer.Equals)
		value := p.parseExpression()
		p.expect(lexer.Semicolon)
		return p.arena.WithLine(p.arena.AssignIndex(id.Text, index, value), id.Line)
	case lexer.LParen:
		p.next()
		args := p.parseExpressionList(lexer.RParen)
		p.expect(lexer.RParen)
		p.expect(lexer.Semicolon)
		return p.arena.WithLine(p.arena.Call(id.Text, args...), id.Line)
	}
	p.report(id.Line, "skipping statement starting with %q", id.Text)
	return ast.NoNode
}
