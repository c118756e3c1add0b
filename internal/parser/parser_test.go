package parser

import (
	"testing"

	"github.com/ingStudiosOfficial/Lunite/internal/ast"
	"github.com/ingStudiosOfficial/Lunite/internal/lexer"
)

func testParser(input string) *Parser {
	l := lexer.New(input)
	return New(l, "<test>")
}

func checkParserErrors(t *testing.T, p *Parser) {
	t.Helper()
	errs := p.Errors()
	if len(errs) == 0 {
		return
	}
	for _, err := range errs {
		t.Errorf("parser error: %s", err.Error())
	}
	t.FailNow()
}

func TestVarDecl(t *testing.T) {
	p := testParser(`let x = 5`)
	program := p.ParseProgram()
	checkParserErrors(t, p)

	if len(program.Statements) != 1 {
		t.Fatalf("got %d statements, want 1", len(program.Statements))
	}
	decl, ok := program.Statements[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("statement is %T, want *ast.VarDecl", program.Statements[0])
	}
	if decl.Name != "x" || decl.IsConst {
		t.Errorf("got Name=%q IsConst=%v", decl.Name, decl.IsConst)
	}
	num, ok := decl.Value.(*ast.NumberLit)
	if !ok || num.IntText != "5" {
		t.Errorf("got value %#v, want int literal 5", decl.Value)
	}
}

func TestConstDecl(t *testing.T) {
	p := testParser(`const pi = 3.14`)
	program := p.ParseProgram()
	checkParserErrors(t, p)

	decl := program.Statements[0].(*ast.VarDecl)
	if !decl.IsConst {
		t.Errorf("expected IsConst true")
	}
}

func TestBinaryOpPrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"(1 + 2) * 3", "((1 + 2) * 3)"},
		{"1 < 2 and 3 < 4", "((1 < 2) and (3 < 4))"},
		{"not true or false", "((nottrue) or false)"},
		{"1 == 1 and 2 != 3", "((1 == 1) and (2 != 3))"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p := testParser(tt.input)
			program := p.ParseProgram()
			checkParserErrors(t, p)
			stmt := program.Statements[0].(*ast.ExprStmt)
			if got := stmt.Expr.String(); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestIfElseIf(t *testing.T) {
	p := testParser(`
if (x < 0) {
	y = 1
} else if (x == 0) {
	y = 2
} else {
	y = 3
}`)
	program := p.ParseProgram()
	checkParserErrors(t, p)

	ifStmt, ok := program.Statements[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("got %T, want *ast.IfStmt", program.Statements[0])
	}
	if ifStmt.Else == nil {
		t.Fatalf("expected an else branch")
	}
	nested, ok := ifStmt.Else.Statements[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("else-if was not desugared into a nested IfStmt, got %T", ifStmt.Else.Statements[0])
	}
	if nested.Else == nil {
		t.Fatalf("expected the final else branch to survive desugaring")
	}
}

func TestWhileAndFor(t *testing.T) {
	p := testParser(`
while (i < 10) {
	i += 1
}
for item in items {
	out(item)
}`)
	program := p.ParseProgram()
	checkParserErrors(t, p)

	if len(program.Statements) != 2 {
		t.Fatalf("got %d statements, want 2", len(program.Statements))
	}
	if _, ok := program.Statements[0].(*ast.WhileStmt); !ok {
		t.Errorf("statement 0 is %T, want *ast.WhileStmt", program.Statements[0])
	}
	forStmt, ok := program.Statements[1].(*ast.ForStmt)
	if !ok {
		t.Fatalf("statement 1 is %T, want *ast.ForStmt", program.Statements[1])
	}
	if forStmt.IterName != "item" {
		t.Errorf("got IterName %q, want item", forStmt.IterName)
	}
}

func TestFunctionDefWithDefaults(t *testing.T) {
	p := testParser(`
func greet(name, greeting = "Hi") {
	return greeting
}`)
	program := p.ParseProgram()
	checkParserErrors(t, p)

	fn, ok := program.Statements[0].(*ast.FunctionDef)
	if !ok {
		t.Fatalf("got %T, want *ast.FunctionDef", program.Statements[0])
	}
	if len(fn.Params) != 2 {
		t.Fatalf("got %d params, want 2", len(fn.Params))
	}
	if fn.Params[0].Default != nil {
		t.Errorf("first param should have no default")
	}
	if fn.Params[1].Default == nil {
		t.Errorf("second param should have a default")
	}
}

func TestClassDefWithExtends(t *testing.T) {
	p := testParser(`
class Dog extends Animal {
	let sound = "Woof"

	func init(name) {
		this.name = name
	}
}`)
	program := p.ParseProgram()
	checkParserErrors(t, p)

	class, ok := program.Statements[0].(*ast.ClassDef)
	if !ok {
		t.Fatalf("got %T, want *ast.ClassDef", program.Statements[0])
	}
	if class.Name != "Dog" || class.Superclass != "Animal" {
		t.Errorf("got Name=%q Superclass=%q", class.Name, class.Superclass)
	}
	if len(class.Body) != 2 {
		t.Fatalf("got %d body statements, want 2", len(class.Body))
	}
}

func TestAttemptRescueFinally(t *testing.T) {
	p := testParser(`
attempt {
	risky()
} rescue (e) {
	out(e)
} finally {
	cleanup()
}`)
	program := p.ParseProgram()
	checkParserErrors(t, p)

	stmt, ok := program.Statements[0].(*ast.TryCatchStmt)
	if !ok {
		t.Fatalf("got %T, want *ast.TryCatchStmt", program.Statements[0])
	}
	if stmt.ErrVar != "e" {
		t.Errorf("got ErrVar %q, want e", stmt.ErrVar)
	}
	if stmt.Finally == nil {
		t.Errorf("expected a finally block")
	}
}

func TestMatchWithOtherArm(t *testing.T) {
	p := testParser(`
match (n) {
	0: out("zero")
	1: out("one")
	other: out("many")
}`)
	program := p.ParseProgram()
	checkParserErrors(t, p)

	stmt, ok := program.Statements[0].(*ast.MatchStmt)
	if !ok {
		t.Fatalf("got %T, want *ast.MatchStmt", program.Statements[0])
	}
	if len(stmt.Cases) != 2 {
		t.Fatalf("got %d cases, want 2", len(stmt.Cases))
	}
	if stmt.Default == nil {
		t.Fatalf("expected an other/default arm")
	}
}

func TestLeapAndLabel(t *testing.T) {
	p := testParser(`
leap outer
{ outer }
leap 5`)
	program := p.ParseProgram()
	checkParserErrors(t, p)

	first, ok := program.Statements[0].(*ast.LeapStmt)
	if !ok || first.TargetName != "outer" || first.ByLine {
		t.Fatalf("got %#v", program.Statements[0])
	}
	if _, ok := program.Statements[1].(*ast.LabelDef); !ok {
		t.Fatalf("statement 1 is %T, want *ast.LabelDef", program.Statements[1])
	}
	third, ok := program.Statements[2].(*ast.LeapStmt)
	if !ok || !third.ByLine || third.TargetLine != 5 {
		t.Fatalf("got %#v", program.Statements[2])
	}
}

func TestImportAndImportHost(t *testing.T) {
	p := testParser(`
import mathutils from "demos/modules"
import_py math`)
	program := p.ParseProgram()
	checkParserErrors(t, p)

	imp, ok := program.Statements[0].(*ast.ImportStmt)
	if !ok || imp.Module != "mathutils" || imp.From != "demos/modules" {
		t.Fatalf("got %#v", program.Statements[0])
	}
	hostImp, ok := program.Statements[1].(*ast.ImportHostStmt)
	if !ok || hostImp.Module != "math" {
		t.Fatalf("got %#v", program.Statements[1])
	}
}

func TestFStringDesugaring(t *testing.T) {
	p := testParser(`f"Hello, {name}!"`)
	program := p.ParseProgram()
	checkParserErrors(t, p)

	stmt, ok := program.Statements[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("got %T, want *ast.ExprStmt", program.Statements[0])
	}
	if _, ok := stmt.Expr.(*ast.BinaryOp); !ok {
		t.Fatalf("expected f-string to desugar into a '+' chain, got %T", stmt.Expr)
	}
}

func TestLambdaExprAndDictLit(t *testing.T) {
	p := testParser(`let square = (n) => n * n
let scores = {"alice": 10, "bob": 20}`)
	program := p.ParseProgram()
	checkParserErrors(t, p)

	decl := program.Statements[0].(*ast.VarDecl)
	if _, ok := decl.Value.(*ast.LambdaExpr); !ok {
		t.Fatalf("got %T, want *ast.LambdaExpr", decl.Value)
	}
	dictDecl := program.Statements[1].(*ast.VarDecl)
	dict, ok := dictDecl.Value.(*ast.DictLit)
	if !ok {
		t.Fatalf("got %T, want *ast.DictLit", dictDecl.Value)
	}
	if len(dict.Entries) != 2 {
		t.Errorf("got %d entries, want 2", len(dict.Entries))
	}
}

func TestSyntaxErrorIsReported(t *testing.T) {
	p := testParser(`let x = `)
	p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatalf("expected a syntax error for a missing expression")
	}
}
