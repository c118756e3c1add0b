package parser

import (
	"strconv"

	"github.com/ingStudiosOfficial/Lunite/internal/ast"
	"github.com/ingStudiosOfficial/Lunite/internal/lexer"
)

// parseExpr enters the precedence ladder from the top (spec.md §4.2):
//
//	expr := ternary
func (p *Parser) parseExpr() ast.Expr {
	return p.parseTernary()
}

// ternary := logic ('?' expr ':' expr)?  -- right-associative via recursion
// on the true/false branches.
func (p *Parser) parseTernary() ast.Expr {
	cond := p.parseLogic()
	if !p.curIs(lexer.QUESTION) {
		return cond
	}
	pos := p.curToken.Pos
	p.next()
	thenExpr := p.parseExpr()
	p.expect(lexer.COLON)
	elseExpr := p.parseExpr()
	return &ast.TernaryOp{Base: ast.Base{Position: pos}, Cond: cond, Then: thenExpr, Else: elseExpr}
}

// logic := comp (('and'|'or') comp)*
func (p *Parser) parseLogic() ast.Expr {
	left := p.parseComp()
	for p.curIs(lexer.AND) || p.curIs(lexer.OR) {
		op := p.curToken
		p.next()
		right := p.parseComp()
		left = &ast.BinaryOp{Base: ast.Base{Position: op.Pos}, Op: op.Literal, Left: left, Right: right}
	}
	return left
}

// comp := bitwise (('=='|'!='|'>'|'<'|'is') bitwise)*
func (p *Parser) parseComp() ast.Expr {
	left := p.parseBitwise()
	for p.curIs(lexer.EQ) || p.curIs(lexer.NOT_EQ) || p.curIs(lexer.GT) || p.curIs(lexer.LT) || p.curIs(lexer.IS) {
		op := p.curToken
		p.next()
		if op.Type == lexer.IS {
			if !p.curIs(lexer.IDENT) {
				p.errorf("expected type name after 'is', got %s", p.curToken.Type)
			}
			typeName := p.curToken.Literal
			p.next()
			left = &ast.TypeCheck{Base: ast.Base{Position: op.Pos}, Subject: left, TypeName: typeName}
			continue
		}
		right := p.parseBitwise()
		left = &ast.BinaryOp{Base: ast.Base{Position: op.Pos}, Op: op.Literal, Left: left, Right: right}
	}
	return left
}

// bitwise := shift (('&'|'|'|'^') shift)*
func (p *Parser) parseBitwise() ast.Expr {
	left := p.parseShift()
	for p.curIs(lexer.AMP) || p.curIs(lexer.PIPE) || p.curIs(lexer.CARET) {
		op := p.curToken
		p.next()
		right := p.parseShift()
		left = &ast.BinaryOp{Base: ast.Base{Position: op.Pos}, Op: op.Literal, Left: left, Right: right}
	}
	return left
}

// shift := math (('<<'|'>>') math)*
func (p *Parser) parseShift() ast.Expr {
	left := p.parseMath()
	for p.curIs(lexer.SHL) || p.curIs(lexer.SHR) {
		op := p.curToken
		p.next()
		right := p.parseMath()
		left = &ast.BinaryOp{Base: ast.Base{Position: op.Pos}, Op: op.Literal, Left: left, Right: right}
	}
	return left
}

// math := term (('+'|'-') term)*
func (p *Parser) parseMath() ast.Expr {
	left := p.parseTerm()
	for p.curIs(lexer.PLUS) || p.curIs(lexer.MINUS) {
		op := p.curToken
		p.next()
		right := p.parseTerm()
		left = &ast.BinaryOp{Base: ast.Base{Position: op.Pos}, Op: op.Literal, Left: left, Right: right}
	}
	return left
}

// term := factor (('*'|'/'|'%') factor)*
func (p *Parser) parseTerm() ast.Expr {
	left := p.parseFactor()
	for p.curIs(lexer.STAR) || p.curIs(lexer.SLASH) || p.curIs(lexer.PERCENT) {
		op := p.curToken
		p.next()
		right := p.parseFactor()
		left = &ast.BinaryOp{Base: ast.Base{Position: op.Pos}, Op: op.Literal, Left: left, Right: right}
	}
	return left
}

// factor := ('+'|'-'|'~'|'!'|'not') factor | postfix
func (p *Parser) parseFactor() ast.Expr {
	switch p.curToken.Type {
	case lexer.PLUS, lexer.MINUS, lexer.TILDE, lexer.BANG, lexer.NOT:
		op := p.curToken
		p.next()
		operand := p.parseFactor()
		return &ast.UnaryOp{Base: ast.Base{Position: op.Pos}, Op: op.Literal, Operand: operand}
	default:
		return p.parsePostfix()
	}
}

// postfix := atom ( '.' ID ( '(' args ')' )? | '[' expr ']' )*
func (p *Parser) parsePostfix() ast.Expr {
	expr := p.parseAtom()
	for {
		switch p.curToken.Type {
		case lexer.DOT:
			dotPos := p.curToken.Pos
			p.next()
			if !p.curIs(lexer.IDENT) {
				p.errorf("expected member name after '.', got %s", p.curToken.Type)
				return expr
			}
			name := p.curToken.Literal
			p.next()
			if p.curIs(lexer.LPAREN) {
				args := p.parseArgs()
				expr = &ast.MethodCall{Base: ast.Base{Position: dotPos}, Object: expr, Method: name, Args: args}
			} else {
				expr = &ast.MemberAccess{Base: ast.Base{Position: dotPos}, Object: expr, Member: name}
			}
		case lexer.LBRACK:
			bracketPos := p.curToken.Pos
			p.next()
			idx := p.parseExpr()
			p.expect(lexer.RBRACK)
			expr = &ast.IndexAccess{Base: ast.Base{Position: bracketPos}, Target: expr, Index: idx}
		default:
			return expr
		}
	}
}

// parseArgs parses a parenthesized, comma-separated argument list; the
// opening '(' must be the current token.
func (p *Parser) parseArgs() []ast.Expr {
	p.expect(lexer.LPAREN)
	var args []ast.Expr
	if p.curIs(lexer.RPAREN) {
		p.next()
		return args
	}
	args = append(args, p.parseExpr())
	for p.curIs(lexer.COMMA) {
		p.next()
		args = append(args, p.parseExpr())
	}
	p.expect(lexer.RPAREN)
	return args
}

// atom := literal | identifier | '(' … ')' | '[' … ']' | '{' … '}'
//
//	| 'new' qualified-name '(' args ')' | 'in' '(' args ')'
//	| identifier '(' args ')'          -- direct call
//	| f-string
func (p *Parser) parseAtom() ast.Expr {
	tok := p.curToken
	switch tok.Type {
	case lexer.INT:
		p.next()
		return &ast.NumberLit{Base: ast.Base{Position: tok.Pos}, IsFloat: false, IntText: tok.Literal}
	case lexer.FLOAT:
		p.next()
		val, _ := strconv.ParseFloat(tok.Literal, 64)
		return &ast.NumberLit{Base: ast.Base{Position: tok.Pos}, IsFloat: true, FloatVal: val}
	case lexer.STRING:
		p.next()
		return &ast.StringLit{Base: ast.Base{Position: tok.Pos}, Value: tok.Literal}
	case lexer.CHAR:
		p.next()
		r := rune(0)
		for _, c := range tok.Literal {
			r = c
			break
		}
		return &ast.CharLit{Base: ast.Base{Position: tok.Pos}, Value: r}
	case lexer.FSTRING:
		p.next()
		return p.desugarFString(tok)
	case lexer.TRUE, lexer.FALSE:
		p.next()
		return &ast.BooleanLit{Base: ast.Base{Position: tok.Pos}, Value: tok.Type == lexer.TRUE}
	case lexer.NULL:
		p.next()
		return &ast.NullLit{Base: ast.Base{Position: tok.Pos}}
	case lexer.NEW:
		return p.parseNewInstance()
	case lexer.IN:
		// `in(args)` pseudo-call (spec.md §9): no defined semantics in any
		// exercised path. Parsed as an ordinary FunctionCall named "in" so
		// the evaluator can reject it uniformly as an unknown function.
		p.next()
		args := p.parseArgs()
		return &ast.FunctionCall{Base: ast.Base{Position: tok.Pos}, Name: "in", Args: args}
	case lexer.IDENT:
		p.next()
		if p.curIs(lexer.LPAREN) {
			args := p.parseArgs()
			return &ast.FunctionCall{Base: ast.Base{Position: tok.Pos}, Name: tok.Literal, Args: args}
		}
		return &ast.Identifier{Base: ast.Base{Position: tok.Pos}, Name: tok.Literal}
	case lexer.LPAREN:
		return p.parseParenOrLambda()
	case lexer.LBRACK:
		return p.parseListLit()
	case lexer.LBRACE:
		return p.parseDictOrSetLit()
	default:
		p.errorf("unexpected token in expression: %s (%q)", tok.Type, tok.Literal)
		p.next()
		return &ast.NullLit{Base: ast.Base{Position: tok.Pos}}
	}
}

// parseNewInstance handles `new Ident ('.' Ident)* '(' args ')'`.
func (p *Parser) parseNewInstance() ast.Expr {
	pos := p.curToken.Pos
	p.next() // skip 'new'
	var names []string
	if !p.curIs(lexer.IDENT) {
		p.errorf("expected class name after 'new', got %s", p.curToken.Type)
	} else {
		names = append(names, p.curToken.Literal)
		p.next()
	}
	for p.curIs(lexer.DOT) {
		p.next()
		if !p.curIs(lexer.IDENT) {
			p.errorf("expected identifier after '.', got %s", p.curToken.Type)
			break
		}
		names = append(names, p.curToken.Literal)
		p.next()
	}
	args := p.parseArgs()
	return &ast.NewInstance{Base: ast.Base{Position: pos}, ClassName: names, Args: args}
}

// parseParenOrLambda parses `(...)` as grouping, a tuple literal, or - when
// immediately followed by '=>' and every element is a bare identifier - a
// lambda parameter list (spec.md §4.2).
func (p *Parser) parseParenOrLambda() ast.Expr {
	pos := p.curToken.Pos
	p.next() // skip '('

	var elements []ast.Expr
	if !p.curIs(lexer.RPAREN) {
		elements = append(elements, p.parseExpr())
		for p.curIs(lexer.COMMA) {
			p.next()
			elements = append(elements, p.parseExpr())
		}
	}
	p.expect(lexer.RPAREN)

	if p.curIs(lexer.FAT_ARROW) {
		return p.finishLambda(pos, elements)
	}

	if len(elements) == 1 {
		return elements[0] // plain grouping
	}
	return &ast.TupleLit{Base: ast.Base{Position: pos}, Elements: elements}
}

// finishLambda converts a parsed parenthesized element list into lambda
// params once '=>' has been seen; every element must be a bare identifier.
func (p *Parser) finishLambda(pos lexer.Position, elements []ast.Expr) ast.Expr {
	params := make([]ast.Param, 0, len(elements))
	for _, e := range elements {
		id, ok := e.(*ast.Identifier)
		if !ok {
			p.errorfAt(pos, "lambda parameter list must contain only bare identifiers")
			continue
		}
		params = append(params, ast.Param{Name: id.Name})
	}
	p.next() // skip '=>'
	body := p.parseLambdaBody()
	return &ast.LambdaExpr{Base: ast.Base{Position: pos}, Params: params, Body: body}
}

// parseLambdaBody accepts either a `{ ... }` block or a single expression,
// which is wrapped as an implicit return.
func (p *Parser) parseLambdaBody() *ast.Block {
	if p.curIs(lexer.LBRACE) {
		return p.parseBlock()
	}
	pos := p.curToken.Pos
	expr := p.parseExpr()
	ret := &ast.ReturnStmt{Base: ast.Base{Position: pos}, Value: expr}
	return &ast.Block{Base: ast.Base{Position: pos}, Statements: []ast.Stmt{ret}}
}

func (p *Parser) parseListLit() ast.Expr {
	pos := p.curToken.Pos
	p.next() // skip '['
	var elements []ast.Expr
	if !p.curIs(lexer.RBRACK) {
		elements = append(elements, p.parseExpr())
		for p.curIs(lexer.COMMA) {
			p.next()
			elements = append(elements, p.parseExpr())
		}
	}
	p.expect(lexer.RBRACK)
	return &ast.ListLit{Base: ast.Base{Position: pos}, Elements: elements}
}

// parseDictOrSetLit parses `{...}`. Empty braces are the empty dict; an
// initial `key: value` marks a dict literal, otherwise it's a set literal
// (spec.md §4.2).
func (p *Parser) parseDictOrSetLit() ast.Expr {
	pos := p.curToken.Pos
	p.next() // skip '{'
	if p.curIs(lexer.RBRACE) {
		p.next()
		return &ast.DictLit{Base: ast.Base{Position: pos}}
	}

	first := p.parseExpr()
	if p.curIs(lexer.COLON) {
		p.next()
		firstVal := p.parseExpr()
		entries := []ast.DictEntry{{Key: first, Value: firstVal}}
		for p.curIs(lexer.COMMA) {
			p.next()
			k := p.parseExpr()
			p.expect(lexer.COLON)
			v := p.parseExpr()
			entries = append(entries, ast.DictEntry{Key: k, Value: v})
		}
		p.expect(lexer.RBRACE)
		return &ast.DictLit{Base: ast.Base{Position: pos}, Entries: entries}
	}

	elements := []ast.Expr{first}
	for p.curIs(lexer.COMMA) {
		p.next()
		elements = append(elements, p.parseExpr())
	}
	p.expect(lexer.RBRACE)
	return &ast.SetLit{Base: ast.Base{Position: pos}, Elements: elements}
}
