package lexer

import "testing"

func collect(input string) []Token {
	l := New(input)
	var toks []Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == EOF {
			return toks
		}
	}
}

func TestNextTokenOperatorsAndDelimiters(t *testing.T) {
	input := `let x = 5 + 10 * 2 - 3 / 1 % 2
x += 1
x -= 1
x *= 2
x /= 2
x %= 2
(a, b) => a && b || !a
a == b != c
a << b >> c
a & b | c ^ d ~ e`

	want := []TokenType{
		LET, IDENT, ASSIGN, INT, PLUS, INT, STAR, INT, MINUS, INT, SLASH, INT, PERCENT, INT,
		IDENT, PLUS_ASSIGN, INT,
		IDENT, MINUS_ASSIGN, INT,
		IDENT, STAR_ASSIGN, INT,
		IDENT, SLASH_ASSIGN, INT,
		IDENT, PERCENT_ASSIGN, INT,
		LPAREN, IDENT, COMMA, IDENT, RPAREN, FAT_ARROW, IDENT, AND_AND, IDENT, OR_OR, BANG, IDENT,
		IDENT, EQ, IDENT, NOT_EQ, IDENT,
		IDENT, SHL, IDENT, SHR, IDENT,
		IDENT, AMP, IDENT, PIPE, IDENT, CARET, IDENT, TILDE, IDENT,
		EOF,
	}

	toks := collect(input)
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d\n%+v", len(toks), len(want), toks)
	}
	for i, tt := range want {
		if toks[i].Type != tt {
			t.Errorf("token %d: got %s (%q), want %s", i, toks[i].Type, toks[i].Literal, tt)
		}
	}
}

func TestNextTokenKeywords(t *testing.T) {
	input := "if else while for in return break advance leap attempt rescue finally match other enum and or not is true false null import import_py from"
	want := []TokenType{
		IF, ELSE, WHILE, FOR, IN, RETURN, BREAK, ADVANCE, LEAP, ATTEMPT, RESCUE, FINALLY,
		MATCH, OTHER, ENUM, AND, OR, NOT, IS, TRUE, FALSE, NULL, IMPORT, IMPORT_PY, FROM, EOF,
	}
	toks := collect(input)
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, tt := range want {
		if toks[i].Type != tt {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Type, tt)
		}
	}
}

func TestNumberLiterals(t *testing.T) {
	tests := []struct {
		input string
		tt    TokenType
		lit   string
	}{
		{"42", INT, "42"},
		{"0", INT, "0"},
		{"3.14", FLOAT, "3.14"},
		{".5", FLOAT, ".5"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks := collect(tt.input)
			if toks[0].Type != tt.tt || toks[0].Literal != tt.lit {
				t.Errorf("got %s %q, want %s %q", toks[0].Type, toks[0].Literal, tt.tt, tt.lit)
			}
		})
	}
}

func TestStringAndCharLiterals(t *testing.T) {
	toks := collect(`"hello\nworld" 'a' "escaped \" quote"`)
	if toks[0].Type != STRING || toks[0].Literal != "hello\nworld" {
		t.Errorf("string literal: got %q", toks[0].Literal)
	}
	if toks[1].Type != CHAR || toks[1].Literal != "a" {
		t.Errorf("char literal: got %q", toks[1].Literal)
	}
	if toks[2].Type != STRING || toks[2].Literal != `escaped " quote` {
		t.Errorf("escaped quote: got %q", toks[2].Literal)
	}
}

func TestUnterminatedStringReportsError(t *testing.T) {
	l := New(`"unterminated`)
	l.NextToken()
	if len(l.Errors()) != 1 {
		t.Fatalf("expected 1 lexer error, got %d", len(l.Errors()))
	}
}

func TestFStringKeepsRawBody(t *testing.T) {
	toks := collect(`f"hello {name}!"`)
	if toks[0].Type != FSTRING {
		t.Fatalf("got %s, want FSTRING", toks[0].Type)
	}
	if toks[0].Literal != "hello {name}!" {
		t.Errorf("got %q", toks[0].Literal)
	}
}

func TestFStringWithNestedBraceExpression(t *testing.T) {
	toks := collect(`f"dict is {({1: 2})}"`)
	if toks[0].Type != FSTRING {
		t.Fatalf("got %s, want FSTRING", toks[0].Type)
	}
	if toks[0].Literal != "dict is {({1: 2})}" {
		t.Errorf("got %q", toks[0].Literal)
	}
}

func TestComments(t *testing.T) {
	input := `let x = 1 ~~ trailing comment
~* block
comment *~
let y = 2`
	toks := collect(input)
	var lets int
	for _, tok := range toks {
		if tok.Type == LET {
			lets++
		}
	}
	if lets != 2 {
		t.Errorf("expected comments to be skipped, got %d let tokens", lets)
	}
}

func TestUnterminatedBlockCommentReportsError(t *testing.T) {
	l := New("~* never closes")
	l.NextToken()
	if len(l.Errors()) != 1 {
		t.Fatalf("expected 1 lexer error, got %d", len(l.Errors()))
	}
}

func TestIllegalCharacter(t *testing.T) {
	l := New("@")
	tok := l.NextToken()
	if tok.Type != ILLEGAL {
		t.Fatalf("got %s, want ILLEGAL", tok.Type)
	}
	if len(l.Errors()) != 1 {
		t.Fatalf("expected 1 lexer error, got %d", len(l.Errors()))
	}
}

func TestEOFIsSticky(t *testing.T) {
	l := New("x")
	l.NextToken()
	first := l.NextToken()
	second := l.NextToken()
	if first.Type != EOF || second.Type != EOF {
		t.Fatalf("expected EOF to repeat, got %s then %s", first.Type, second.Type)
	}
}
