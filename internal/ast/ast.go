// Package ast defines the Lunite abstract syntax tree. Every node carries
// the {line, col} of the token it started at (spec.md §3.3), so the
// evaluator and error formatter can always locate a failure.
package ast

import "github.com/ingStudiosOfficial/Lunite/internal/lexer"

// Node is the universal AST interface.
type Node interface {
	Pos() lexer.Position
	String() string
}

// Expr is any AST node that produces a value.
type Expr interface {
	Node
	exprNode()
}

// Stmt is any AST node executed for effect.
type Stmt interface {
	Node
	stmtNode()
}

// Base carries the location shared by every node; embed it to satisfy Pos().
type Base struct {
	Position lexer.Position
}

// Pos returns the node's source location.
func (b Base) Pos() lexer.Position { return b.Position }

// Program is the root of a parsed Lunite source file: a flat list of
// top-level statements.
type Program struct {
	Statements []Stmt
}

func (p *Program) Pos() lexer.Position {
	if len(p.Statements) == 0 {
		return lexer.Position{Line: 1, Column: 1}
	}
	return p.Statements[0].Pos()
}

func (p *Program) String() string {
	s := ""
	for _, st := range p.Statements {
		s += st.String() + "\n"
	}
	return s
}
