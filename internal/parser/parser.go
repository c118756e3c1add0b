// Package parser implements Lunite's recursive-descent parser: a fixed
// eight-level precedence ladder (spec.md §4.2) over tokens from
// internal/lexer, producing the AST node variants from internal/ast.
package parser

import (
	"github.com/ingStudiosOfficial/Lunite/internal/ast"
	"github.com/ingStudiosOfficial/Lunite/internal/errors"
	"github.com/ingStudiosOfficial/Lunite/internal/lexer"
)

// Parser holds two tokens of lookahead (current + peek), the classic shape
// for a hand-written recursive-descent/Pratt parser.
type Parser struct {
	l         *lexer.Lexer
	curToken  lexer.Token
	peekToken lexer.Token
	errors    []*errors.LuniteError
	file      string
}

// New creates a Parser over l. file is used only for diagnostics.
func New(l *lexer.Lexer, file string) *Parser {
	p := &Parser{l: l, file: file}
	p.next()
	p.next()
	return p
}

// Errors returns every syntax error accumulated while parsing.
func (p *Parser) Errors() []*errors.LuniteError { return p.errors }

func (p *Parser) next() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curIs(tt lexer.TokenType) bool  { return p.curToken.Type == tt }
func (p *Parser) peekIs(tt lexer.TokenType) bool { return p.peekToken.Type == tt }

// expect advances past the current token if it matches tt, else records a
// syntax error naming the expected and actual kinds (spec.md §4.2).
func (p *Parser) expect(tt lexer.TokenType) bool {
	if p.curIs(tt) {
		p.next()
		return true
	}
	p.errorf("expected %s, got %s (%q)", tt, p.curToken.Type, p.curToken.Literal)
	return false
}

func (p *Parser) errorf(format string, args ...any) {
	pos := p.curToken.Pos
	err := errors.New(errors.Syntax, format, args...)
	err.AttachLocation(p.file, pos)
	p.errors = append(p.errors, err)
}

func (p *Parser) errorfAt(pos lexer.Position, format string, args ...any) {
	err := errors.New(errors.Syntax, format, args...)
	err.AttachLocation(p.file, pos)
	p.errors = append(p.errors, err)
}

// synchronize skips tokens until a plausible statement boundary, so one
// syntax error doesn't prevent reporting the rest in the same parse.
func (p *Parser) synchronize() {
	for !p.curIs(lexer.EOF) && !p.curIs(lexer.RBRACE) {
		switch p.curToken.Type {
		case lexer.LET, lexer.CONST, lexer.FUNC, lexer.CLASS, lexer.IF, lexer.WHILE,
			lexer.FOR, lexer.RETURN, lexer.MATCH, lexer.ATTEMPT:
			return
		}
		p.next()
	}
}

// ParseProgram parses the full token stream into a Program.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	for !p.curIs(lexer.EOF) {
		before := p.curToken
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		if p.curToken == before {
			// Guard against an accidental infinite loop on malformed input.
			p.next()
		}
	}
	return prog
}

