package eval

import (
	"github.com/ingStudiosOfficial/Lunite/internal/ast"
	"github.com/ingStudiosOfficial/Lunite/internal/errors"
)

// evalFunctionCall dispatches `name(args...)` (spec.md §5 FunctionCall):
// host callables are invoked directly; user functions/lambdas get a fresh
// environment parented to global (closures over globals only).
func (in *Interpreter) evalFunctionCall(e *ast.FunctionCall, env *Environment) (Value, error) {
	callee, ok := env.Get(e.Name)
	if !ok {
		return nil, in.errAt(errors.Function, e, "undefined function %q", e.Name)
	}
	args, err := in.evalArgs(e.Args, env)
	if err != nil {
		return nil, err
	}
	return in.call(callee, args, e)
}

func (in *Interpreter) evalArgs(exprs []ast.Expr, env *Environment) ([]Value, error) {
	args := make([]Value, len(exprs))
	for i, a := range exprs {
		v, err := in.Eval(a, env)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}

// call invokes any callable Value with already-evaluated args.
func (in *Interpreter) call(callee Value, args []Value, node ast.Node) (Value, error) {
	switch fn := callee.(type) {
	case *HostCallable:
		if fn.Arity >= 0 && len(args) != fn.Arity {
			return nil, in.errAt(errors.Function, node, "%q expects %d arguments, got %d", fn.Name, fn.Arity, len(args))
		}
		v, err := fn.Fn(args)
		if err != nil {
			// Host errors become located Runtime errors at the call site; an
			// error that is already a LuniteError keeps its kind and location.
			if le, ok := err.(*errors.LuniteError); ok {
				return nil, le.AttachLocation(in.CurrentFile, node.Pos())
			}
			return nil, in.errAt(errors.Runtime, node, "%s", err.Error())
		}
		return v, nil
	case *FunctionValue:
		return in.callFunction(fn, args, node)
	default:
		return nil, in.errAt(errors.Function, node, "%s is not callable", callee.Type())
	}
}

// callFunction binds positional args (trailing defaults fill any gap),
// executes the body in a fresh environment parented to global, and returns
// either the value a return unwound with, or null on fall-through
// (spec.md §5).
func (in *Interpreter) callFunction(fn *FunctionValue, args []Value, node ast.Node) (Value, error) {
	requiredCount := 0
	for _, p := range fn.Params {
		if p.Default == nil {
			requiredCount++
		}
	}
	if len(args) < requiredCount || len(args) > len(fn.Params) {
		return nil, in.errAt(errors.Function, node, "%s expects between %d and %d arguments, got %d",
			displayFnName(fn), requiredCount, len(fn.Params), len(args))
	}

	callEnv := NewEnclosedEnvironment(fn.Globals)
	for i, p := range fn.Params {
		if i < len(args) {
			callEnv.Define(p.Name, args[i], false)
			continue
		}
		defVal, err := in.Eval(p.Default, callEnv)
		if err != nil {
			return nil, err
		}
		callEnv.Define(p.Name, defVal, false)
	}

	prevFile := in.CurrentFile
	if fn.SourceFile != "" {
		in.CurrentFile = fn.SourceFile
	}
	in.callStack = append(in.callStack, displayFnName(fn))
	err := in.execBlock(fn.Body, callEnv)
	in.callStack = in.callStack[:len(in.callStack)-1]
	in.CurrentFile = prevFile
	if err != nil {
		return nil, err
	}

	if in.sigReturn {
		val := in.returnValue
		in.clearReturn()
		return val, nil
	}
	// break/advance/leap falling out of a function body belong to nothing;
	// treat as a runtime error rather than leaking across the call boundary.
	if in.anySet() {
		in.controlSignals = controlSignals{}
		return nil, in.errAt(errors.Function, node, "control signal escaped %s", displayFnName(fn))
	}
	return Null, nil
}

func displayFnName(fn *FunctionValue) string {
	if fn.Name == "" {
		return "<lambda>"
	}
	return fn.Name
}

// evalMethodCall dispatches `obj.method(args...)` (spec.md §5 MethodCall):
// instances bind `this`; HostModule/HostCallable members delegate to the
// host.
func (in *Interpreter) evalMethodCall(e *ast.MethodCall, env *Environment) (Value, error) {
	obj, err := in.Eval(e.Object, env)
	if err != nil {
		return nil, err
	}
	args, err := in.evalArgs(e.Args, env)
	if err != nil {
		return nil, err
	}

	switch target := obj.(type) {
	case *InstanceValue:
		return in.callMethod(target, e.Method, args, e)
	case *HostModule:
		member, ok := target.Members[e.Method]
		if !ok {
			return nil, in.errAt(errors.Method, e, "host module %q has no member %q", target.Name, e.Method)
		}
		return in.call(member, args, e)
	default:
		return nil, in.errAt(errors.Method, e, "%s has no method %q", obj.Type(), e.Method)
	}
}

// callMethod resolves name among inst's class methods, binds `this`, and
// applies the same arg-binding rule as a plain function call.
func (in *Interpreter) callMethod(inst *InstanceValue, name string, args []Value, node ast.Node) (Value, error) {
	def, ok := inst.Class.FindMethod(name)
	if !ok {
		return nil, in.errAt(errors.Method, node, "%s has no method %q", inst.Class.Name, name)
	}
	fn := &FunctionValue{Name: name, Params: def.Params, Body: def.Body, Globals: in.Globals, SourceFile: inst.Class.SourceFile}

	requiredCount := 0
	for _, p := range fn.Params {
		if p.Default == nil {
			requiredCount++
		}
	}
	if len(args) < requiredCount || len(args) > len(fn.Params) {
		return nil, in.errAt(errors.Method, node, "%s.%s expects between %d and %d arguments, got %d",
			inst.Class.Name, name, requiredCount, len(fn.Params), len(args))
	}

	callEnv := NewEnclosedEnvironment(in.Globals)
	callEnv.Define("this", inst, false)
	for i, p := range fn.Params {
		if i < len(args) {
			callEnv.Define(p.Name, args[i], false)
			continue
		}
		defVal, err := in.Eval(p.Default, callEnv)
		if err != nil {
			return nil, err
		}
		callEnv.Define(p.Name, defVal, false)
	}

	in.callStack = append(in.callStack, inst.Class.Name+"."+name)
	err := in.execBlock(fn.Body, callEnv)
	in.callStack = in.callStack[:len(in.callStack)-1]
	if err != nil {
		return nil, err
	}
	if in.sigReturn {
		val := in.returnValue
		in.clearReturn()
		return val, nil
	}
	if in.anySet() {
		in.controlSignals = controlSignals{}
		return nil, in.errAt(errors.Method, node, "control signal escaped %s.%s", inst.Class.Name, name)
	}
	return Null, nil
}

// evalMemberAccess implements `obj.field` (no call parens): instance
// fields, or host module/instance member lookup (spec.md §5).
func (in *Interpreter) evalMemberAccess(e *ast.MemberAccess, env *Environment) (Value, error) {
	obj, err := in.Eval(e.Object, env)
	if err != nil {
		return nil, err
	}
	switch target := obj.(type) {
	case *InstanceValue:
		if v, ok := target.Fields[e.Member]; ok {
			return v, nil
		}
		if _, ok := target.Class.FindMethod(e.Member); ok {
			return in.boundMethodValue(target, e.Member), nil
		}
		return nil, in.errAt(errors.Member, e, "%s has no member %q", target.Class.Name, e.Member)
	case *HostModule:
		if v, ok := target.Members[e.Member]; ok {
			return v, nil
		}
		return nil, in.errAt(errors.Member, e, "host module %q has no member %q", target.Name, e.Member)
	default:
		return nil, in.errAt(errors.Member, e, "%s has no member %q", obj.Type(), e.Member)
	}
}

// boundMethodValue wraps an instance method as a variadic HostCallable
// (argument counts are checked by callMethod) closing over inst, so it can
// be passed around as a plain
// callable when referenced without a call (e.g. stored in a list).
func (in *Interpreter) boundMethodValue(inst *InstanceValue, name string) *HostCallable {
	return &HostCallable{
		Name:  inst.Class.Name + "." + name,
		Arity: -1,
		Fn: func(args []Value) (Value, error) {
			v, err := in.callMethod(inst, name, args, &ast.Identifier{Base: ast.Base{}})
			return v, err
		},
	}
}

// evalIndexAccess implements `target[index]` (spec.md §5): out-of-range on
// list/tuple is an Index error; a missing dict key is a Key error.
func (in *Interpreter) evalIndexAccess(e *ast.IndexAccess, env *Environment) (Value, error) {
	target, err := in.Eval(e.Target, env)
	if err != nil {
		return nil, err
	}
	idx, err := in.Eval(e.Index, env)
	if err != nil {
		return nil, err
	}
	switch t := target.(type) {
	case *ListValue:
		i, ok := asInt(idx)
		if !ok {
			return nil, in.errAt(errors.Index, e, "list index must be an int, got %s", idx.Type())
		}
		if i < 0 || int(i) >= len(t.Elements) {
			return nil, in.errAt(errors.Index, e, "list index %d out of range", i)
		}
		return t.Elements[i], nil
	case *TupleValue:
		i, ok := asInt(idx)
		if !ok {
			return nil, in.errAt(errors.Index, e, "tuple index must be an int, got %s", idx.Type())
		}
		if i < 0 || int(i) >= len(t.Elements) {
			return nil, in.errAt(errors.Index, e, "tuple index %d out of range", i)
		}
		return t.Elements[i], nil
	case *DictValue:
		v, ok := t.Get(idx)
		if !ok {
			return nil, in.errAt(errors.Key, e, "key %s not found", idx.String())
		}
		return v, nil
	case *StringValue:
		i, ok := asInt(idx)
		if !ok {
			return nil, in.errAt(errors.Index, e, "string index must be an int, got %s", idx.Type())
		}
		runes := []rune(t.Value)
		if i < 0 || int(i) >= len(runes) {
			return nil, in.errAt(errors.Index, e, "string index %d out of range", i)
		}
		return &CharValue{Value: runes[i]}, nil
	default:
		return nil, in.errAt(errors.Index, e, "%s is not indexable", target.Type())
	}
}

// evalNewInstance implements `new Qualified.Name(args)` (spec.md §5):
// resolves the class expression (identifier, or a qualified name through a
// HostModule/module-instance member chain), resolves members, and
// allocates a fresh Instance.
func (in *Interpreter) evalNewInstance(e *ast.NewInstance, env *Environment) (Value, error) {
	if len(e.ClassName) == 0 {
		return nil, in.errAt(errors.Class, e, "missing class name in 'new'")
	}
	val, ok := env.Get(e.ClassName[0])
	if !ok {
		return nil, in.errAt(errors.Class, e, "undefined name %q", e.ClassName[0])
	}
	for _, seg := range e.ClassName[1:] {
		inst, ok := val.(*InstanceValue)
		if !ok {
			return nil, in.errAt(errors.Class, e, "%q is not a module or instance", seg)
		}
		v, ok := inst.Fields[seg]
		if !ok {
			return nil, in.errAt(errors.Class, e, "%q has no member %q", e.ClassName[0], seg)
		}
		val = v
	}
	class, ok := val.(*ClassValue)
	if !ok {
		return nil, in.errAt(errors.Class, e, "%q is not a class", e.ClassName[len(e.ClassName)-1])
	}
	args, err := in.evalArgs(e.Args, env)
	if err != nil {
		return nil, err
	}
	return in.instantiate(class, args, e)
}
