// Package lexer turns stow source text into tokens on demand.
//
// Scanning never fails: bad input produces Unknown tokens, unterminated
// strings and block comments run to the end of input, and once the input is
// exhausted every call returns an EOF token.
package lexer

// Lexer holds the scanning state for one source text.
type Lexer struct {
	src  string
	pos  int  // index of ch in src
	ch   byte // current byte; 0 past the end
	line int  // 1-based

	peeked  Token
	hasPeek bool
}

// New creates a lexer positioned at the first byte of source.
func New(source string) *Lexer {
	l := &Lexer{src: source, line: 1}
	if len(source) > 0 {
		l.ch = source[0]
	}
	return l
}

// Next returns the next token and advances past it. A token previously
// returned by Peek is handed out first.
func (l *Lexer) Next() Token {
	if l.hasPeek {
		l.hasPeek = false
		return l.peeked
	}
	return l.scan()
}

// Peek returns the next token without consuming it. Repeated calls return
// the same cached token until Next is called.
func (l *Lexer) Peek() Token {
	if !l.hasPeek {
		l.peeked = l.scan()
		l.hasPeek = true
	}
	return l.peeked
}

// Line reports the line the lexer is currently positioned on.
func (l *Lexer) Line() int {
	return l.line
}

// Tokenize drains the lexer, returning every token up to and including EOF.
func (l *Lexer) Tokenize() []Token {
	var out []Token
	for {
		tok := l.Next()
		out = append(out, tok)
		if tok.Kind == EOF {
			return out
		}
	}
}

func (l *Lexer) advance() {
	if l.ch == '\n' {
		l.line++
	}
	if l.pos < len(l.src) {
		l.pos++
	}
	if l.pos < len(l.src) {
		l.ch = l.src[l.pos]
	} else {
		l.ch = 0
	}
}

func (l *Lexer) peekByte() byte {
	if l.pos+1 < len(l.src) {
		return l.src[l.pos+1]
	}
	return 0
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.src)
}

func (l *Lexer) skipWhitespace() {
	for !l.atEnd() && isSpace(l.ch) {
		l.advance()
	}
}

func (l *Lexer) skipComment() {
	if l.peekByte() == '/' {
		for !l.atEnd() && l.ch != '\n' {
			l.advance()
		}
		return
	}
	l.advance() // '/'
	l.advance() // '*'
	for !l.atEnd() {
		if l.ch == '*' && l.peekByte() == '/' {
			l.advance()
			l.advance()
			return
		}
		l.advance()
	}
}

func (l *Lexer) scan() Token {
	for !l.atEnd() {
		l.skipWhitespace()
		if l.ch == '/' && (l.peekByte() == '/' || l.peekByte() == '*') {
			l.skipComment()
			continue
		}
		if l.atEnd() {
			break
		}

		line := l.line
		switch ch := l.ch; {
		case ch == '"':
			return l.readString()
		case isDigit(ch):
			return l.readNumber()
		case isIdentStart(ch):
			return l.readWord()
		}

		if kind, ok := singleCharTokens[l.ch]; ok {
			l.advance()
			return Token{Kind: kind, Line: line}
		}

		switch l.ch {
		case '=':
			l.advance()
			if l.ch == '=' {
				l.advance()
				return Token{Kind: EqEq, Line: line}
			}
			return Token{Kind: Equals, Line: line}
		case '!':
			l.advance()
			if l.ch == '=' {
				l.advance()
				return Token{Kind: BangEq, Line: line}
			}
			return Token{Kind: Unknown, Line: line}
		case '&':
			if l.peekByte() == '&' {
				l.advance()
				l.advance()
				return Token{Kind: And, Line: line}
			}
		case '|':
			if l.peekByte() == '|' {
				l.advance()
				l.advance()
				return Token{Kind: Or, Line: line}
			}
		}

		l.advance()
		return Token{Kind: Unknown, Line: line}
	}
	return Token{Kind: EOF, Line: l.line}
}

var singleCharTokens = map[byte]Kind{
	'(': LParen,
	')': RParen,
	'{': LBrace,
	'}': RBrace,
	'[': LBracket,
	']': RBracket,
	':': Colon,
	',': Comma,
	';': Semicolon,
	'+': Plus,
	'-': Minus,
	'*': Star,
	'/': Slash,
	'<': Less,
	'>': Greater,
}

// readString scans a double-quoted literal. There are no escapes; an
// unterminated literal takes the rest of the input.
func (l *Lexer) readString() Token {
	line := l.line
	l.advance() // opening quote
	start := l.pos
	for !l.atEnd() && l.ch != '"' {
		l.advance()
	}
	text := l.src[start:l.pos]
	l.advance() // closing quote
	return Token{Kind: String, Text: text, Line: line}
}

// readNumber takes a run of digits and dots without validating the shape,
// so "1.2.3" is a single Number token.
func (l *Lexer) readNumber() Token {
	line := l.line
	start := l.pos
	for !l.atEnd() && (isDigit(l.ch) || l.ch == '.') {
		l.advance()
	}
	return Token{Kind: Number, Text: l.src[start:l.pos], Line: line}
}

func (l *Lexer) readWord() Token {
	line := l.line
	start := l.pos
	for !l.atEnd() && isIdentPart(l.ch) {
		l.advance()
	}
	word := l.src[start:l.pos]
	kind := LookupIdent(word)
	if kind != Identifier {
		return Token{Kind: kind, Line: line}
	}
	return Token{Kind: Identifier, Text: word, Line: line}
}

func isSpace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isDigit(ch byte) bool { return '0' <= ch && ch <= '9' }

func isLetter(ch byte) bool { return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') }

func isIdentStart(ch byte) bool { return isLetter(ch) || ch == '_' }

func isIdentPart(ch byte) bool { return isIdentStart(ch) || isDigit(ch) }
