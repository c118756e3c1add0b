package ast

import "testing"

func TestNumberLitString(t *testing.T) {
	intLit := &NumberLit{IntText: "42"}
	if got := intLit.String(); got != "42" {
		t.Errorf("got %q, want 42", got)
	}
	floatLit := &NumberLit{IsFloat: true, FloatVal: 3.5}
	if got := floatLit.String(); got != "3.5" {
		t.Errorf("got %q, want 3.5", got)
	}
}

func TestStringLitAndCharLitString(t *testing.T) {
	s := &StringLit{Value: "hi"}
	if got := s.String(); got != `"hi"` {
		t.Errorf("got %q, want %q", got, `"hi"`)
	}
	c := &CharLit{Value: 'a'}
	if got := c.String(); got != "'a'" {
		t.Errorf("got %q, want 'a'", got)
	}
}

func TestBooleanLitAndNullLitString(t *testing.T) {
	if got := (&BooleanLit{Value: true}).String(); got != "true" {
		t.Errorf("got %q, want true", got)
	}
	if got := (&BooleanLit{Value: false}).String(); got != "false" {
		t.Errorf("got %q, want false", got)
	}
	if got := (&NullLit{}).String(); got != "null" {
		t.Errorf("got %q, want null", got)
	}
}

func TestListDictSetTupleLitString(t *testing.T) {
	list := &ListLit{Elements: []Expr{&NumberLit{IntText: "1"}, &NumberLit{IntText: "2"}}}
	if got := list.String(); got != "[1, 2]" {
		t.Errorf("got %q, want [1, 2]", got)
	}

	dict := &DictLit{Entries: []DictEntry{
		{Key: &StringLit{Value: "a"}, Value: &NumberLit{IntText: "1"}},
	}}
	if got := dict.String(); got != `{"a": 1}` {
		t.Errorf("got %q, want %q", got, `{"a": 1}`)
	}

	set := &SetLit{Elements: []Expr{&NumberLit{IntText: "1"}, &NumberLit{IntText: "2"}}}
	if got := set.String(); got != "{1, 2}" {
		t.Errorf("got %q, want {1, 2}", got)
	}

	tuple := &TupleLit{Elements: []Expr{&NumberLit{IntText: "1"}}}
	if got := tuple.String(); got != "(1)" {
		t.Errorf("got %q, want (1)", got)
	}

	empty := &TupleLit{}
	if got := empty.String(); got != "()" {
		t.Errorf("got %q, want ()", got)
	}
}

func TestUnaryAndBinaryOpString(t *testing.T) {
	unary := &UnaryOp{Op: "-", Operand: &NumberLit{IntText: "5"}}
	if got := unary.String(); got != "(-5)" {
		t.Errorf("got %q, want (-5)", got)
	}

	binary := &BinaryOp{Op: "+", Left: &NumberLit{IntText: "1"}, Right: &NumberLit{IntText: "2"}}
	if got := binary.String(); got != "(1 + 2)" {
		t.Errorf("got %q, want (1 + 2)", got)
	}
}

func TestTernaryOpString(t *testing.T) {
	t3 := &TernaryOp{
		Cond: &Identifier{Name: "ok"},
		Then: &NumberLit{IntText: "1"},
		Else: &NumberLit{IntText: "0"},
	}
	if got := t3.String(); got != "(ok ? 1 : 0)" {
		t.Errorf("got %q, want (ok ? 1 : 0)", got)
	}
}

func TestTypeCheckString(t *testing.T) {
	tc := &TypeCheck{Subject: &Identifier{Name: "x"}, TypeName: "int"}
	if got := tc.String(); got != "(x is int)" {
		t.Errorf("got %q, want (x is int)", got)
	}
}

func TestAssignAndCompoundAssignString(t *testing.T) {
	assign := &Assign{Target: &Identifier{Name: "x"}, Value: &NumberLit{IntText: "1"}}
	if got := assign.String(); got != "x = 1" {
		t.Errorf("got %q, want x = 1", got)
	}
	compound := &CompoundAssign{Target: &Identifier{Name: "x"}, Op: "+", Value: &NumberLit{IntText: "1"}}
	if got := compound.String(); got != "x += 1" {
		t.Errorf("got %q, want x += 1", got)
	}
}

func TestFunctionCallMethodCallMemberIndexString(t *testing.T) {
	call := &FunctionCall{Name: "out", Args: []Expr{&StringLit{Value: "hi"}}}
	if got := call.String(); got != `out("hi")` {
		t.Errorf("got %q", got)
	}

	method := &MethodCall{Object: &Identifier{Name: "a"}, Method: "get", Args: nil}
	if got := method.String(); got != "a.get()" {
		t.Errorf("got %q", got)
	}

	member := &MemberAccess{Object: &Identifier{Name: "a"}, Member: "x"}
	if got := member.String(); got != "a.x" {
		t.Errorf("got %q", got)
	}

	index := &IndexAccess{Target: &Identifier{Name: "list"}, Index: &NumberLit{IntText: "0"}}
	if got := index.String(); got != "list[0]" {
		t.Errorf("got %q", got)
	}
}

func TestNewInstanceString(t *testing.T) {
	n := &NewInstance{ClassName: []string{"shapes", "Vector"}, Args: []Expr{&NumberLit{IntText: "1"}, &NumberLit{IntText: "2"}}}
	if got := n.String(); got != "new shapes.Vector(1, 2)" {
		t.Errorf("got %q", got)
	}
}

func TestLambdaExprString(t *testing.T) {
	lambda := &LambdaExpr{
		Params: []Param{{Name: "n"}},
		Body:   &Block{Statements: []Stmt{&ReturnStmt{Value: &BinaryOp{Op: "*", Left: &Identifier{Name: "n"}, Right: &Identifier{Name: "n"}}}}},
	}
	want := "(n) => {\n  return (n * n)\n}"
	if got := lambda.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestIdentifierString(t *testing.T) {
	if got := (&Identifier{Name: "foo"}).String(); got != "foo" {
		t.Errorf("got %q, want foo", got)
	}
}
