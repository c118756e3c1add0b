package eval

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ingStudiosOfficial/Lunite/internal/ast"
	"github.com/ingStudiosOfficial/Lunite/internal/errors"
	"github.com/ingStudiosOfficial/Lunite/internal/lexer"
	"github.com/ingStudiosOfficial/Lunite/internal/parser"
)

// execImportStmt implements `import modname (from "pkg")?` (spec.md §5):
// resolves an absolute path relative to the importer's directory (or a
// given package base), loads/parses/evaluates the module at most once, and
// binds its snapshot under the basename-derived alias.
func (in *Interpreter) execImportStmt(s *ast.ImportStmt, env *Environment) error {
	path := in.resolveModulePath(s.Module, s.From)

	if cached, ok := in.moduleCache[path]; ok {
		env.Define(aliasOf(s.Module), cached, false)
		return nil
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return in.errAt(errors.Import, s, "cannot load module %q: %s", s.Module, err.Error())
	}

	// Parented to globals, per spec.md §5, so an imported module sees the
	// same host/builtin bindings as the importing file.
	moduleEnv := NewEnclosedEnvironment(in.Globals)

	prevFile := in.CurrentFile
	in.CurrentFile = path

	p := parser.New(lexer.New(string(source)), path)
	program := p.ParseProgram()
	if len(p.Errors()) > 0 {
		in.CurrentFile = prevFile
		return errors.FirstOf(p.Errors())
	}

	for _, stmt := range program.Statements {
		if execErr := in.execStmt(stmt, moduleEnv); execErr != nil {
			in.CurrentFile = prevFile
			return execErr
		}
	}
	in.CurrentFile = prevFile

	wrapper := moduleInstance(moduleEnv)
	in.moduleCache[path] = wrapper
	env.Define(aliasOf(s.Module), wrapper, false)
	return nil
}

// resolveModulePath computes the absolute path for a Lunite import, adding
// a `.luna` extension if absent and honoring a `from` package base.
func (in *Interpreter) resolveModulePath(module, from string) string {
	name := module
	if !strings.HasSuffix(name, ".luna") {
		name += ".luna"
	}
	base := dirOf(in.CurrentFile)
	if from != "" {
		base = from
	}
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(base, name)
}

// aliasOf is the basename of module without its extension, the local
// binding name for Lunite imports (spec.md §5); host imports bind under the
// parsed Alias instead.
func aliasOf(module string) string {
	base := filepath.Base(module)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// moduleInstance snapshots env's own bindings into a synthetic class-backed
// Instance, unifying "member access on a module" with the same codepath as
// "member access on an instance" (spec.md §9 design note).
func moduleInstance(env *Environment) *InstanceValue {
	class := &ClassValue{Name: "module", Fields: make(map[string]Value), Methods: make(map[string]*ast.FunctionDef)}
	inst := &InstanceValue{Class: class, Fields: make(map[string]Value)}
	for name, v := range env.vars {
		inst.Fields[name] = v
		// Module functions double as methods so `mod.fn(args)` dispatches
		// through the ordinary instance MethodCall path.
		if fn, ok := v.(*FunctionValue); ok {
			class.Methods[name] = &ast.FunctionDef{Name: name, Params: fn.Params, Body: fn.Body}
		}
	}
	return inst
}

// execImportHostStmt implements `import_py modname (from "pkg")?` (spec.md
// §5/§6.3): obtains an opaque host module handle and binds it under the
// alias. Behavior is delegated entirely to in.hostModules.
func (in *Interpreter) execImportHostStmt(s *ast.ImportHostStmt, env *Environment) error {
	if in.hostModules == nil {
		return in.errAt(errors.Import, s, "no host module provider configured for %q", s.Module)
	}
	mod, err := in.hostModules.Import(s.Module, s.From)
	if err != nil {
		return in.errAt(errors.Import, s, "%s", err.Error())
	}
	env.Define(s.Alias, mod, false)
	return nil
}
