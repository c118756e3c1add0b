// Package lunite is the embeddable, public face of the interpreter: it
// wires internal/lexer, internal/parser, internal/eval, and internal/host
// together so a caller never has to touch those packages directly.
package lunite

import (
	"fmt"
	"os"

	"github.com/ingStudiosOfficial/Lunite/internal/ast"
	"github.com/ingStudiosOfficial/Lunite/internal/errors"
	"github.com/ingStudiosOfficial/Lunite/internal/eval"
	"github.com/ingStudiosOfficial/Lunite/internal/host"
	"github.com/ingStudiosOfficial/Lunite/internal/lexer"
	"github.com/ingStudiosOfficial/Lunite/internal/parser"
)

// Interpreter is a ready-to-run Lunite instance: a fresh global
// environment, the full host builtin/module surface registered, and a
// configurable output sink.
type Interpreter struct {
	inner *eval.Interpreter
}

// New creates an Interpreter writing `out`/`print` output to w.
func New(w OutputWriter) *Interpreter {
	in := eval.New(w, host.NewRegistry())
	for name, fn := range host.CoreBuiltins(w) {
		in.Globals.Define(name, fn, true)
	}
	return &Interpreter{inner: in}
}

// OutputWriter is the sink Lunite's `out`/`print` builtins write to.
type OutputWriter = eval.OutputWriter

// stringWriter adapts any io.Writer (os.Stdout included) to OutputWriter.
type stringWriter struct{ w interface{ Write([]byte) (int, error) } }

func (s stringWriter) WriteString(str string) (int, error) { return s.w.Write([]byte(str)) }

// NewStdout creates an Interpreter that writes to os.Stdout.
func NewStdout() *Interpreter {
	return New(stringWriter{os.Stdout})
}

// RunFile reads, parses, and executes the Lunite source at path.
func (in *Interpreter) RunFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return in.RunSource(string(src), path)
}

// RunSource parses and executes src, labeling diagnostics with file (used
// for relative import resolution and error locations; pass "" or "<eval>"
// for inline snippets).
func (in *Interpreter) RunSource(src, file string) error {
	program, perrs := Parse(src, file)
	if len(perrs) > 0 {
		return &ParseError{Errors: perrs, Source: src}
	}
	if err := in.inner.Run(program, file); err != nil {
		return err
	}
	return nil
}

// Eval parses and executes a snippet against this Interpreter's existing
// globals (so a REPL session accumulates state across calls), and if the
// final statement is a bare expression, returns its rendered value too —
// the same "last expression echoes" convenience a REPL driver wants.
func (in *Interpreter) Eval(line string) (result string, err error) {
	program, perrs := Parse(line, "<eval>")
	if len(perrs) > 0 {
		return "", &ParseError{Errors: perrs, Source: line}
	}
	if len(program.Statements) == 0 {
		return "", nil
	}

	last := program.Statements[len(program.Statements)-1]
	exprStmt, isExpr := last.(*ast.ExprStmt)
	if !isExpr {
		return "", in.inner.Run(program, "<eval>")
	}

	in.inner.CurrentFile = "<eval>"
	for _, stmt := range program.Statements[:len(program.Statements)-1] {
		if err := in.inner.ExecStmt(stmt, in.inner.Globals); err != nil {
			return "", err
		}
	}
	val, err := in.inner.Eval(exprStmt.Expr, in.inner.Globals)
	if err != nil {
		return "", err
	}
	return val.String(), nil
}

// Parse lexes and parses src, returning the program and any syntax errors
// (spec.md §7). A non-empty error slice means program is not safe to run.
func Parse(src, file string) (program *ast.Program, errs []*errors.LuniteError) {
	l := lexer.New(src)
	p := parser.New(l, file)
	prog := p.ParseProgram()
	return prog, p.Errors()
}

// ParseError reports one or more syntax errors gathered during parsing,
// formatted with one line of source context each (spec.md §7).
type ParseError struct {
	Errors []*errors.LuniteError
	Source string
}

func (e *ParseError) Error() string {
	return errors.FormatAll(e.Errors, e.Source, false)
}
