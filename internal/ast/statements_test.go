package ast

import (
	"testing"

	"github.com/ingStudiosOfficial/Lunite/internal/lexer"
)

func TestVarDeclString(t *testing.T) {
	tests := []struct {
		name string
		decl *VarDecl
		want string
	}{
		{
			"let",
			&VarDecl{Name: "x", Value: &NumberLit{IntText: "5"}},
			"let x = 5",
		},
		{
			"const",
			&VarDecl{Name: "pi", Value: &NumberLit{IsFloat: true, FloatVal: 3.14}, IsConst: true},
			"const pi = 3.14",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.decl.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVarDeclPos(t *testing.T) {
	decl := &VarDecl{
		Base:  Base{Position: lexer.Position{Line: 3, Column: 1}},
		Name:  "x",
		Value: &NumberLit{IntText: "1"},
	}
	if decl.Pos().Line != 3 || decl.Pos().Column != 1 {
		t.Errorf("Pos() = %+v, want Line=3 Column=1", decl.Pos())
	}
}

func TestFunctionDefStringWithDefaults(t *testing.T) {
	fn := &FunctionDef{
		Name: "greet",
		Params: []Param{
			{Name: "name"},
			{Name: "greeting", Default: &StringLit{Value: "Hi"}},
		},
		Body: &Block{Statements: []Stmt{
			&ReturnStmt{Value: &Identifier{Name: "greeting"}},
		}},
	}
	want := "func greet(name, greeting=\"Hi\") {\n  return greeting\n}"
	if got := fn.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestClassDefStringWithExtends(t *testing.T) {
	class := &ClassDef{Name: "Dog", Superclass: "Animal"}
	if got := class.String(); got != "class Dog extends Animal { ... }" {
		t.Errorf("got %q", got)
	}

	plain := &ClassDef{Name: "Animal"}
	if got := plain.String(); got != "class Animal { ... }" {
		t.Errorf("got %q", got)
	}
}

func TestIfStmtString(t *testing.T) {
	stmt := &IfStmt{
		Cond: &BinaryOp{Op: "<", Left: &Identifier{Name: "x"}, Right: &NumberLit{IntText: "0"}},
		Then: &Block{Statements: []Stmt{&BreakStmt{}}},
	}
	want := "if ((x < 0)) {\n  break\n}"
	if got := stmt.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestForStmtString(t *testing.T) {
	stmt := &ForStmt{
		IterName: "item",
		Iterable: &Identifier{Name: "items"},
		Body:     &Block{Statements: []Stmt{&AdvanceStmt{}}},
	}
	want := "for item in items {\n  advance\n}"
	if got := stmt.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTryCatchStmtString(t *testing.T) {
	stmt := &TryCatchStmt{
		Try:    &Block{Statements: []Stmt{&ExprStmt{Expr: &FunctionCall{Name: "risky"}}}},
		ErrVar: "e",
		Rescue: &Block{Statements: []Stmt{&ExprStmt{Expr: &FunctionCall{Name: "out", Args: []Expr{&Identifier{Name: "e"}}}}}},
	}
	want := "attempt {\n  risky()\n} rescue (e) {\n  out(e)\n}"
	if got := stmt.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLeapStmtString(t *testing.T) {
	byName := &LeapStmt{TargetName: "outer"}
	if got := byName.String(); got != "leap outer" {
		t.Errorf("got %q, want 'leap outer'", got)
	}
	byLine := &LeapStmt{TargetLine: 12, ByLine: true}
	if got := byLine.String(); got != "leap 12" {
		t.Errorf("got %q, want 'leap 12'", got)
	}
}

func TestLabelDefString(t *testing.T) {
	label := &LabelDef{Name: "outer"}
	if got := label.String(); got != "{outer}" {
		t.Errorf("got %q, want '{outer}'", got)
	}
}

func TestMatchStmtString(t *testing.T) {
	stmt := &MatchStmt{
		Subject: &Identifier{Name: "n"},
		Cases: []MatchCase{
			{Value: &NumberLit{IntText: "0"}, Body: &Block{}},
		},
		Default: &Block{},
	}
	if got := stmt.String(); got != "match (n) { ... }" {
		t.Errorf("got %q", got)
	}
}

func TestEnumDefString(t *testing.T) {
	enum := &EnumDef{Name: "Color", Members: []string{"Red", "Green", "Blue"}}
	if got := enum.String(); got != "enum Color { Red, Green, Blue }" {
		t.Errorf("got %q", got)
	}
}

func TestImportStmtAndImportHostStmtString(t *testing.T) {
	imp := &ImportStmt{Module: "mathutils", From: "demos/modules"}
	if got := imp.String(); got != "import mathutils" {
		t.Errorf("got %q", got)
	}
	hostImp := &ImportHostStmt{Module: "math"}
	if got := hostImp.String(); got != "import_py math" {
		t.Errorf("got %q", got)
	}
}

func TestReturnStmtStringWithAndWithoutValue(t *testing.T) {
	bare := &ReturnStmt{}
	if got := bare.String(); got != "return" {
		t.Errorf("got %q, want 'return'", got)
	}
	withValue := &ReturnStmt{Value: &NumberLit{IntText: "1"}}
	if got := withValue.String(); got != "return 1" {
		t.Errorf("got %q, want 'return 1'", got)
	}
}

func TestDestructuringDeclString(t *testing.T) {
	decl := &DestructuringDecl{
		Names: []string{"a", "b", "c"},
		Value: &Identifier{Name: "triple"},
	}
	if got := decl.String(); got != "let [a, b, c] = triple" {
		t.Errorf("got %q", got)
	}
}
