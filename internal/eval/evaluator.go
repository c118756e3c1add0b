package eval

import (
	"math/rand"
	"path/filepath"

	"github.com/ingStudiosOfficial/Lunite/internal/ast"
	"github.com/ingStudiosOfficial/Lunite/internal/errors"
)

// Interpreter walks an AST against a lexically-scoped Environment, exactly
// the shape spec.md §5 calls for: "current environment pointer, a current
// file label used only for diagnostics, and a module cache keyed by
// absolute path."
type Interpreter struct {
	Globals     *Environment
	CurrentFile string
	Out         OutputWriter

	rng *rand.Rand

	moduleCache map[string]*InstanceValue // Lunite modules, by absolute path
	callStack   []string

	hostModules HostModuleProvider

	controlSignals
}

// OutputWriter is the sink for `out(...)`; pkg/lunite wires this to a
// bufio.Writer over stdout (or a strings.Builder in tests).
type OutputWriter interface {
	WriteString(s string) (int, error)
}

// HostModuleProvider resolves `import_py` targets to a HostModule (spec.md
// §6.3). pkg/lunite wires this to internal/host's registry; the evaluator
// itself makes no assumption about what lives behind it.
type HostModuleProvider interface {
	Import(name, from string) (*HostModule, error)
}

// New creates an Interpreter with a fresh global environment and the given
// output sink and host-module provider.
func New(out OutputWriter, hostModules HostModuleProvider) *Interpreter {
	return &Interpreter{
		Globals:     NewEnvironment(),
		Out:         out,
		rng:         rand.New(rand.NewSource(1)),
		moduleCache: make(map[string]*InstanceValue),
		hostModules: hostModules,
	}
}

// Run evaluates program's top-level statements in the Interpreter's global
// environment. file is the absolute or display path used for diagnostics
// and relative-import resolution. A leap that no inner block resolved may
// still land on a top-level label or line.
func (in *Interpreter) Run(program *ast.Program, file string) error {
	in.CurrentFile = file
	top := &ast.Block{Statements: program.Statements}
	for i := 0; i < len(top.Statements); i++ {
		stmt := top.Statements[i]
		if err := in.execStmt(stmt, in.Globals); err != nil {
			return err
		}
		if in.sigLeap {
			if idx, ok := resolveLeapTarget(top, in.leapTargetName, in.leapTargetLine, in.leapByLine); ok {
				in.clearLeap()
				i = idx - 1
				continue
			}
		}
		if in.anySet() {
			// A bare top-level return/break/advance, or a leap with no
			// target anywhere, has nothing to bind to; surface it as a
			// runtime error rather than silently dropping it.
			return in.runtimeErrAt(stmt, "%s outside of its enclosing construct", signalName(in.controlSignals))
		}
	}
	return nil
}

func signalName(c controlSignals) string {
	switch {
	case c.sigReturn:
		return "return"
	case c.sigBreak:
		return "break"
	case c.sigAdvance:
		return "advance"
	case c.sigLeap:
		return "leap"
	default:
		return "control signal"
	}
}

// ExecStmt executes a single statement in env. Exported so pkg/lunite can
// drive a REPL one top-level statement at a time instead of only through
// the all-or-nothing Run.
func (in *Interpreter) ExecStmt(stmt ast.Stmt, env *Environment) error {
	return in.execStmt(stmt, env)
}

// dirOf returns the directory of file, used as the base for relative
// Lunite imports (spec.md §5 module resolution).
func dirOf(file string) string {
	if file == "" {
		return "."
	}
	return filepath.Dir(file)
}

// --- error constructors -----------------------------------------------

func (in *Interpreter) errAt(kind errors.Kind, node ast.Node, format string, args ...any) *errors.LuniteError {
	e := errors.New(kind, format, args...)
	e.AttachLocation(in.CurrentFile, node.Pos())
	return e
}

func (in *Interpreter) runtimeErrAt(node ast.Node, format string, args ...any) error {
	return in.errAt(errors.Runtime, node, format, args...)
}

func (in *Interpreter) classErrAt(node ast.Node, format string, args ...any) error {
	return in.errAt(errors.Class, node, format, args...)
}
