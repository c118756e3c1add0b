// Package host implements Lunite's standard library of host-backed
// built-ins (spec.md §6.3): a concrete, swappable Go-native implementation
// of the HostCallable/HostModule contract the evaluator calls through.
package host

import (
	"github.com/google/uuid"

	"github.com/ingStudiosOfficial/Lunite/internal/eval"
)

// Registry owns every host builtin and module this interpreter ships with,
// and implements eval.HostModuleProvider for `import_py`.
type Registry struct {
	modules map[string]func() *eval.HostModule
}

// NewRegistry builds a Registry with the full builtin module set (spec.md
// §3 domain stack): math, strings, json, io/os, http, regex, time/random.
// The type-query predicates are core builtins, not a module.
func NewRegistry() *Registry {
	r := &Registry{modules: make(map[string]func() *eval.HostModule)}
	r.modules["math"] = newMathModule
	r.modules["strings"] = newStringsModule
	r.modules["json"] = newJSONModule
	r.modules["io"] = newIOModule
	r.modules["http"] = newHTTPModule
	r.modules["regex"] = newRegexModule
	r.modules["time"] = newTimeModule
	r.modules["random"] = newRandomModule
	return r
}

// Import resolves an `import_py` target to a fresh HostModule handle
// (spec.md §5/§6.3). `from` is accepted but unused by the built-in modules,
// which are identified purely by name; a real multi-package host could key
// on it instead.
func (r *Registry) Import(name, from string) (*eval.HostModule, error) {
	ctor, ok := r.modules[name]
	if !ok {
		return nil, unknownModuleError(name)
	}
	return ctor(), nil
}

func unknownModuleError(name string) error {
	return &moduleNotFoundError{name: name}
}

type moduleNotFoundError struct{ name string }

func (e *moduleNotFoundError) Error() string {
	return "no host module named " + e.name
}

// newModule allocates a HostModule with a fresh identity handle.
func newModule(name string) *eval.HostModule {
	return &eval.HostModule{ID: uuid.NewString(), Name: name, Members: make(map[string]eval.Value)}
}

// CoreBuiltins returns the always-available global functions (spec.md §3:
// out, print, type, str, len, range, assert, bit, byte) that get defined
// directly in the interpreter's global environment rather than behind a
// module import.
func CoreBuiltins(out eval.OutputWriter) map[string]*eval.HostCallable {
	builtins := map[string]*eval.HostCallable{
		"out":    outBuiltin(out),
		"print":  outBuiltin(out),
		"type":   typeBuiltin(),
		"str":    strBuiltin(),
		"len":    lenBuiltin(),
		"range":  rangeBuiltin(),
		"assert": assertBuiltin(),
		"bit":    bitBuiltin(),
		"byte":   byteBuiltin(),
	}
	for name, fn := range typeQueryBuiltins() {
		builtins[name] = fn
	}
	return builtins
}
