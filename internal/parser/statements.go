package parser

import (
	"strconv"

	"github.com/ingStudiosOfficial/Lunite/internal/ast"
	"github.com/ingStudiosOfficial/Lunite/internal/lexer"
)

// parseStatement dispatches on the leading token (spec.md §4.2): most forms
// start with an unambiguous keyword; everything else is parsed as an
// expression and promoted to an assignment if followed by '=' or a
// compound-assign operator.
func (p *Parser) parseStatement() ast.Stmt {
	switch p.curToken.Type {
	case lexer.LET, lexer.CONST:
		return p.parseVarOrDestructuringDecl()
	case lexer.FUNC:
		return p.parseFunctionDef()
	case lexer.CLASS:
		return p.parseClassDef()
	case lexer.IF:
		return p.parseIfStmt()
	case lexer.WHILE:
		return p.parseWhileStmt()
	case lexer.FOR:
		return p.parseForStmt()
	case lexer.ATTEMPT:
		return p.parseTryCatchStmt()
	case lexer.MATCH:
		return p.parseMatchStmt()
	case lexer.ENUM:
		return p.parseEnumDef()
	case lexer.BREAK:
		s := &ast.BreakStmt{Base: ast.Base{Position: p.curToken.Pos}}
		p.next()
		return s
	case lexer.ADVANCE:
		s := &ast.AdvanceStmt{Base: ast.Base{Position: p.curToken.Pos}}
		p.next()
		return s
	case lexer.RETURN:
		return p.parseReturnStmt()
	case lexer.LEAP:
		return p.parseLeapStmt()
	case lexer.IMPORT:
		return p.parseImportStmt()
	case lexer.IMPORT_PY:
		return p.parseImportHostStmt()
	case lexer.LBRACE:
		return p.parseBlockOrLabel()
	default:
		return p.parseExprOrAssignStmt()
	}
}

// parseBlock parses a brace-delimited statement sequence. '{' must be the
// current token.
func (p *Parser) parseBlock() *ast.Block {
	pos := p.curToken.Pos
	p.expect(lexer.LBRACE)
	block := &ast.Block{Base: ast.Base{Position: pos}}
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		before := p.curToken
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		if p.curToken == before {
			p.next()
		}
	}
	p.expect(lexer.RBRACE)
	return block
}

// parseBlockOrLabel disambiguates a standalone `{ name }` label statement
// from an ordinary nested block (spec.md §3.3 LabelDef, §9 leap targets): a
// single bare identifier immediately followed by '}' is a label.
func (p *Parser) parseBlockOrLabel() ast.Stmt {
	pos := p.curToken.Pos
	if p.peekIs(lexer.IDENT) {
		// Look two tokens ahead without a third lookahead slot: save state by
		// reading through the lexer only after we've committed, since '{' ID
		// '}' is the only shape a label can take and any other continuation
		// falls back to being parsed as a nested block containing a single
		// expression statement.
		savedLexer := *p.l
		savedCur := p.curToken
		savedPeek := p.peekToken
		p.next() // consume '{'
		name := p.curToken.Literal
		p.next() // consume IDENT
		if p.curIs(lexer.RBRACE) {
			p.next() // consume '}'
			return &ast.LabelDef{Base: ast.Base{Position: pos}, Name: name}
		}
		// Not a label; restore and parse as a normal block.
		*p.l = savedLexer
		p.curToken = savedCur
		p.peekToken = savedPeek
	}
	return p.parseBlock()
}

// parseVarOrDestructuringDecl parses `let`/`const name = value` or
// `let`/`const [a, b, c] = value`.
func (p *Parser) parseVarOrDestructuringDecl() ast.Stmt {
	pos := p.curToken.Pos
	isConst := p.curIs(lexer.CONST)
	p.next() // skip let/const

	if p.curIs(lexer.LBRACK) {
		p.next()
		var names []string
		if !p.curIs(lexer.RBRACK) {
			if p.curIs(lexer.IDENT) {
				names = append(names, p.curToken.Literal)
				p.next()
			}
			for p.curIs(lexer.COMMA) {
				p.next()
				if p.curIs(lexer.IDENT) {
					names = append(names, p.curToken.Literal)
					p.next()
				}
			}
		}
		p.expect(lexer.RBRACK)
		p.expect(lexer.ASSIGN)
		value := p.parseExpr()
		return &ast.DestructuringDecl{Base: ast.Base{Position: pos}, Names: names, Value: value, IsConst: isConst}
	}

	name := p.curToken.Literal
	p.expect(lexer.IDENT)
	p.expect(lexer.ASSIGN)
	value := p.parseExpr()
	return &ast.VarDecl{Base: ast.Base{Position: pos}, Name: name, Value: value, IsConst: isConst}
}

// parseParams parses a parenthesized formal parameter list with optional
// trailing default-value expressions: `(a, b = 1, c = 2)`.
func (p *Parser) parseParams() []ast.Param {
	p.expect(lexer.LPAREN)
	var params []ast.Param
	if p.curIs(lexer.RPAREN) {
		p.next()
		return params
	}
	params = append(params, p.parseOneParam())
	for p.curIs(lexer.COMMA) {
		p.next()
		params = append(params, p.parseOneParam())
	}
	p.expect(lexer.RPAREN)
	return params
}

func (p *Parser) parseOneParam() ast.Param {
	name := p.curToken.Literal
	p.expect(lexer.IDENT)
	var def ast.Expr
	if p.curIs(lexer.ASSIGN) {
		p.next()
		def = p.parseExpr()
	}
	return ast.Param{Name: name, Default: def}
}

func (p *Parser) parseFunctionDef() ast.Stmt {
	pos := p.curToken.Pos
	p.next() // skip 'func'
	name := p.curToken.Literal
	p.expect(lexer.IDENT)
	params := p.parseParams()
	body := p.parseBlock()
	return &ast.FunctionDef{Base: ast.Base{Position: pos}, Name: name, Params: params, Body: body}
}

// parseClassDef parses `class Name (extends Super)? { ... }`. The body mixes
// FunctionDef (methods), VarDecl (fields), and other statements executed for
// side effects during resolution (spec.md §3.5).
func (p *Parser) parseClassDef() ast.Stmt {
	pos := p.curToken.Pos
	p.next() // skip 'class'
	name := p.curToken.Literal
	p.expect(lexer.IDENT)

	super := ""
	if p.curIs(lexer.EXTENDS) {
		p.next()
		super = p.curToken.Literal
		p.expect(lexer.IDENT)
	}

	p.expect(lexer.LBRACE)
	var body []ast.Stmt
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		before := p.curToken
		stmt := p.parseStatement()
		if stmt != nil {
			body = append(body, stmt)
		}
		if p.curToken == before {
			p.next()
		}
	}
	p.expect(lexer.RBRACE)
	return &ast.ClassDef{Base: ast.Base{Position: pos}, Name: name, Superclass: super, Body: body}
}

// parseIfStmt desugars `else if` into an Else block wrapping a single nested
// IfStmt (spec.md §4.2).
func (p *Parser) parseIfStmt() ast.Stmt {
	pos := p.curToken.Pos
	p.next() // skip 'if'
	p.expect(lexer.LPAREN)
	cond := p.parseExpr()
	p.expect(lexer.RPAREN)
	then := p.parseBlock()

	var elseBlock *ast.Block
	if p.curIs(lexer.ELSE) {
		elsePos := p.curToken.Pos
		p.next()
		if p.curIs(lexer.IF) {
			nested := p.parseIfStmt()
			elseBlock = &ast.Block{Base: ast.Base{Position: elsePos}, Statements: []ast.Stmt{nested}}
		} else {
			elseBlock = p.parseBlock()
		}
	}
	return &ast.IfStmt{Base: ast.Base{Position: pos}, Cond: cond, Then: then, Else: elseBlock}
}

func (p *Parser) parseWhileStmt() ast.Stmt {
	pos := p.curToken.Pos
	p.next() // skip 'while'
	p.expect(lexer.LPAREN)
	cond := p.parseExpr()
	p.expect(lexer.RPAREN)
	body := p.parseBlock()
	return &ast.WhileStmt{Base: ast.Base{Position: pos}, Cond: cond, Body: body}
}

func (p *Parser) parseForStmt() ast.Stmt {
	pos := p.curToken.Pos
	p.next() // skip 'for'
	iterName := p.curToken.Literal
	p.expect(lexer.IDENT)
	p.expect(lexer.IN)
	iterable := p.parseExpr()
	body := p.parseBlock()
	return &ast.ForStmt{Base: ast.Base{Position: pos}, IterName: iterName, Iterable: iterable, Body: body}
}

// parseTryCatchStmt parses `attempt { } rescue (var) { } (finally { })?`.
func (p *Parser) parseTryCatchStmt() ast.Stmt {
	pos := p.curToken.Pos
	p.next() // skip 'attempt'
	tryBlock := p.parseBlock()
	p.expect(lexer.RESCUE)
	p.expect(lexer.LPAREN)
	errVar := p.curToken.Literal
	p.expect(lexer.IDENT)
	p.expect(lexer.RPAREN)
	rescueBlock := p.parseBlock()

	var finallyBlock *ast.Block
	if p.curIs(lexer.FINALLY) {
		p.next()
		finallyBlock = p.parseBlock()
	}
	return &ast.TryCatchStmt{
		Base: ast.Base{Position: pos}, Try: tryBlock, ErrVar: errVar,
		Rescue: rescueBlock, Finally: finallyBlock,
	}
}

// parseMatchStmt parses `match (expr) { case: stmts... other: stmts }`. Each
// case's body collects statements until the next case value or `other` or
// the closing brace (spec.md §4.2).
func (p *Parser) parseMatchStmt() ast.Stmt {
	pos := p.curToken.Pos
	p.next() // skip 'match'
	p.expect(lexer.LPAREN)
	subject := p.parseExpr()
	p.expect(lexer.RPAREN)
	p.expect(lexer.LBRACE)

	match := &ast.MatchStmt{Base: ast.Base{Position: pos}, Subject: subject}
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		if p.curIs(lexer.OTHER) {
			p.next()
			p.expect(lexer.COLON)
			match.Default = p.parseCaseBody()
			continue
		}
		value := p.parseExpr()
		p.expect(lexer.COLON)
		body := p.parseCaseBody()
		match.Cases = append(match.Cases, ast.MatchCase{Value: value, Body: body})
	}
	p.expect(lexer.RBRACE)
	return match
}

// parseCaseBody collects statements for one match arm until the next arm
// starts (an atom-leading token or `other` followed by `:`) or `}` closes
// the match (spec.md §4.2).
func (p *Parser) parseCaseBody() *ast.Block {
	pos := p.curToken.Pos
	block := &ast.Block{Base: ast.Base{Position: pos}}
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) && !p.startsNewCase() {
		before := p.curToken
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		if p.curToken == before {
			p.next()
		}
	}
	return block
}

// startsNewCase reports whether the current token could begin the next
// match arm: `other` is unambiguous; a literal or identifier starts a new
// case only when `:` follows it; a leading `-`, `(` or `[` is always
// treated as the start of a new case-value expression.
func (p *Parser) startsNewCase() bool {
	if p.curIs(lexer.OTHER) {
		return true
	}
	switch p.curToken.Type {
	case lexer.INT, lexer.FLOAT, lexer.STRING, lexer.CHAR, lexer.FSTRING,
		lexer.TRUE, lexer.FALSE, lexer.NULL, lexer.IDENT:
		return p.peekIs(lexer.COLON)
	case lexer.MINUS, lexer.LPAREN, lexer.LBRACK:
		return true
	}
	return false
}

func (p *Parser) parseEnumDef() ast.Stmt {
	pos := p.curToken.Pos
	p.next() // skip 'enum'
	name := p.curToken.Literal
	p.expect(lexer.IDENT)
	p.expect(lexer.LBRACE)
	var members []string
	if !p.curIs(lexer.RBRACE) {
		members = append(members, p.curToken.Literal)
		p.expect(lexer.IDENT)
		for p.curIs(lexer.COMMA) {
			p.next()
			members = append(members, p.curToken.Literal)
			p.expect(lexer.IDENT)
		}
	}
	p.expect(lexer.RBRACE)
	return &ast.EnumDef{Base: ast.Base{Position: pos}, Name: name, Members: members}
}

// parseReturnStmt parses `return` or `return expr`. A return with no
// expression on the same statement (i.e. followed immediately by a token
// that cannot start an expression) yields an implicit null.
func (p *Parser) parseReturnStmt() ast.Stmt {
	pos := p.curToken.Pos
	p.next() // skip 'return'
	if p.startsExpr() {
		value := p.parseExpr()
		return &ast.ReturnStmt{Base: ast.Base{Position: pos}, Value: value}
	}
	return &ast.ReturnStmt{Base: ast.Base{Position: pos}}
}

func (p *Parser) startsExpr() bool {
	switch p.curToken.Type {
	case lexer.INT, lexer.FLOAT, lexer.STRING, lexer.CHAR, lexer.FSTRING,
		lexer.TRUE, lexer.FALSE, lexer.NULL, lexer.IDENT, lexer.NEW, lexer.IN,
		lexer.LPAREN, lexer.LBRACK, lexer.LBRACE,
		lexer.PLUS, lexer.MINUS, lexer.TILDE, lexer.BANG, lexer.NOT:
		return true
	}
	return false
}

// parseLeapStmt parses `leap Ident` or `leap Integer` (spec.md §3.3/§9).
func (p *Parser) parseLeapStmt() ast.Stmt {
	pos := p.curToken.Pos
	p.next() // skip 'leap'
	if p.curIs(lexer.INT) {
		n, _ := strconv.Atoi(p.curToken.Literal)
		p.next()
		return &ast.LeapStmt{Base: ast.Base{Position: pos}, TargetLine: n, ByLine: true}
	}
	name := p.curToken.Literal
	p.expect(lexer.IDENT)
	return &ast.LeapStmt{Base: ast.Base{Position: pos}, TargetName: name}
}

// parseImportStmt parses `import modname (from "pkg")?`.
func (p *Parser) parseImportStmt() ast.Stmt {
	pos := p.curToken.Pos
	p.next() // skip 'import'
	module := p.curToken.Literal
	p.expect(lexer.IDENT)
	from := ""
	if p.curIs(lexer.FROM) {
		p.next()
		from = p.curToken.Literal
		p.expect(lexer.STRING)
	}
	return &ast.ImportStmt{Base: ast.Base{Position: pos}, Module: module, From: from}
}

// parseImportHostStmt parses `import_py modname (from "pkg")?`. The parser
// stores the module name as both Module and Alias; the evaluator binds the
// host module under Alias unchanged.
func (p *Parser) parseImportHostStmt() ast.Stmt {
	pos := p.curToken.Pos
	p.next() // skip 'import_py'
	module := p.curToken.Literal
	p.expect(lexer.IDENT)
	from := ""
	if p.curIs(lexer.FROM) {
		p.next()
		from = p.curToken.Literal
		p.expect(lexer.STRING)
	}
	return &ast.ImportHostStmt{Base: ast.Base{Position: pos}, Module: module, Alias: module, From: from}
}

// parseExprOrAssignStmt parses a bare expression statement, promoting it to
// an Assign or CompoundAssign if followed by '=' or a compound-assign
// operator. Only identifier, member-access, and index-access targets are
// legal lvalues (spec.md §4.2); the evaluator enforces that, not the parser.
func (p *Parser) parseExprOrAssignStmt() ast.Stmt {
	pos := p.curToken.Pos
	expr := p.parseExpr()

	switch p.curToken.Type {
	case lexer.ASSIGN:
		p.next()
		value := p.parseExpr()
		return &ast.ExprStmt{Base: ast.Base{Position: pos}, Expr: &ast.Assign{Base: ast.Base{Position: pos}, Target: expr, Value: value}}
	case lexer.PLUS_ASSIGN, lexer.MINUS_ASSIGN, lexer.STAR_ASSIGN, lexer.SLASH_ASSIGN, lexer.PERCENT_ASSIGN:
		op := compoundOp(p.curToken.Type)
		p.next()
		value := p.parseExpr()
		return &ast.ExprStmt{Base: ast.Base{Position: pos}, Expr: &ast.CompoundAssign{Base: ast.Base{Position: pos}, Target: expr, Op: op, Value: value}}
	default:
		return &ast.ExprStmt{Base: ast.Base{Position: pos}, Expr: expr}
	}
}

func compoundOp(tt lexer.TokenType) string {
	switch tt {
	case lexer.PLUS_ASSIGN:
		return "+"
	case lexer.MINUS_ASSIGN:
		return "-"
	case lexer.STAR_ASSIGN:
		return "*"
	case lexer.SLASH_ASSIGN:
		return "/"
	case lexer.PERCENT_ASSIGN:
		return "%"
	}
	return "?"
}
