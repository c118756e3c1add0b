package eval

import "github.com/ingStudiosOfficial/Lunite/internal/ast"

// resolveClass builds a ClassValue's resolved member table (spec.md §3.5):
// the superclass is resolved first (recursively), then this class's own
// body is overlaid on top - methods replace/add by name, fields are
// (re-)evaluated in the current environment, and any other top-level
// statement in the body runs once for its side effects during resolution.
func (in *Interpreter) resolveClass(def *ast.ClassDef, env *Environment) (*ClassValue, error) {
	class := &ClassValue{
		Name:       def.Name,
		Fields:     make(map[string]Value),
		Methods:    make(map[string]*ast.FunctionDef),
		SourceFile: in.CurrentFile,
	}

	if def.Superclass != "" {
		superVal, ok := env.Get(def.Superclass)
		if !ok {
			return nil, in.classErrAt(def, "undefined superclass %q", def.Superclass)
		}
		super, ok := superVal.(*ClassValue)
		if !ok {
			return nil, in.classErrAt(def, "%q is not a class", def.Superclass)
		}
		class.Superclass = super
		for k, v := range super.Fields {
			class.Fields[k] = v
		}
		class.FieldOrder = append(class.FieldOrder, super.FieldOrder...)
		for k, v := range super.Methods {
			class.Methods[k] = v
		}
	}

	for _, stmt := range def.Body {
		switch s := stmt.(type) {
		case *ast.FunctionDef:
			class.Methods[s.Name] = s
		case *ast.VarDecl:
			val, err := in.Eval(s.Value, env)
			if err != nil {
				return nil, err
			}
			if _, existed := class.Fields[s.Name]; !existed {
				class.FieldOrder = append(class.FieldOrder, s.Name)
			}
			class.Fields[s.Name] = val
		default:
			if err := in.execStmt(stmt, env); err != nil {
				return nil, err
			}
		}
	}

	return class, nil
}

// instantiate allocates a new Instance for class, invoking `init` (if
// present) with exactly the given args - no defaults apply to `init`
// (spec.md §4.3).
func (in *Interpreter) instantiate(class *ClassValue, args []Value, node ast.Node) (Value, error) {
	inst := NewInstance(class)
	initDef, hasInit := class.FindMethod("init")
	if !hasInit {
		if len(args) != 0 {
			return nil, in.classErrAt(node, "class %q takes no constructor arguments", class.Name)
		}
		return inst, nil
	}
	if len(args) != len(initDef.Params) {
		return nil, in.classErrAt(node, "init() of %q expects %d arguments, got %d", class.Name, len(initDef.Params), len(args))
	}
	callEnv := NewEnclosedEnvironment(in.Globals)
	callEnv.Define("this", inst, false)
	for i, p := range initDef.Params {
		callEnv.Define(p.Name, args[i], false)
	}
	if err := in.execBlock(initDef.Body, callEnv); err != nil {
		return nil, err
	}
	in.clearReturn()
	return inst, nil
}
