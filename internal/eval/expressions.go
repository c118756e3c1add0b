package eval

import (
	"math"
	"math/big"
	"strconv"

	"github.com/ingStudiosOfficial/Lunite/internal/ast"
	"github.com/ingStudiosOfficial/Lunite/internal/errors"
)

// Eval evaluates an expression node against env, returning its Value or a
// located *errors.LuniteError.
func (in *Interpreter) Eval(expr ast.Expr, env *Environment) (Value, error) {
	switch e := expr.(type) {
	case *ast.NumberLit:
		return in.evalNumberLit(e)
	case *ast.StringLit:
		return &StringValue{Value: e.Value}, nil
	case *ast.CharLit:
		return &CharValue{Value: e.Value}, nil
	case *ast.BooleanLit:
		return BoolOf(e.Value), nil
	case *ast.NullLit:
		return Null, nil
	case *ast.ListLit:
		return in.evalListLit(e, env)
	case *ast.DictLit:
		return in.evalDictLit(e, env)
	case *ast.SetLit:
		return in.evalSetLit(e, env)
	case *ast.TupleLit:
		return in.evalTupleLit(e, env)
	case *ast.Identifier:
		if v, ok := env.Get(e.Name); ok {
			return v, nil
		}
		return nil, in.runtimeErrAt(e, "undefined name %q", e.Name)
	case *ast.UnaryOp:
		return in.evalUnaryOp(e, env)
	case *ast.BinaryOp:
		return in.evalBinaryOp(e, env)
	case *ast.TernaryOp:
		cond, err := in.Eval(e.Cond, env)
		if err != nil {
			return nil, err
		}
		if Truthy(cond) {
			return in.Eval(e.Then, env)
		}
		return in.Eval(e.Else, env)
	case *ast.TypeCheck:
		return in.evalTypeCheck(e, env)
	case *ast.Assign:
		return in.evalAssign(e, env)
	case *ast.CompoundAssign:
		return in.evalCompoundAssign(e, env)
	case *ast.FunctionCall:
		return in.evalFunctionCall(e, env)
	case *ast.MethodCall:
		return in.evalMethodCall(e, env)
	case *ast.MemberAccess:
		return in.evalMemberAccess(e, env)
	case *ast.IndexAccess:
		return in.evalIndexAccess(e, env)
	case *ast.NewInstance:
		return in.evalNewInstance(e, env)
	case *ast.LambdaExpr:
		return &FunctionValue{Params: e.Params, Body: e.Body, Globals: in.Globals, SourceFile: in.CurrentFile}, nil
	default:
		return nil, in.runtimeErrAt(expr, "unsupported expression type %T", expr)
	}
}

func (in *Interpreter) evalNumberLit(n *ast.NumberLit) (Value, error) {
	if n.IsFloat {
		return &FloatValue{Value: n.FloatVal}, nil
	}
	if v, err := strconv.ParseInt(n.IntText, 10, 64); err == nil {
		return NewInt(v), nil
	}
	big, ok := new(big.Int).SetString(n.IntText, 10)
	if !ok {
		return nil, in.runtimeErrAt(n, "invalid integer literal %q", n.IntText)
	}
	return NewBigInt(big), nil
}

func (in *Interpreter) evalListLit(e *ast.ListLit, env *Environment) (Value, error) {
	elems := make([]Value, len(e.Elements))
	for i, el := range e.Elements {
		v, err := in.Eval(el, env)
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	return &ListValue{Elements: elems}, nil
}

func (in *Interpreter) evalDictLit(e *ast.DictLit, env *Environment) (Value, error) {
	dict := NewDict()
	for _, entry := range e.Entries {
		k, err := in.Eval(entry.Key, env)
		if err != nil {
			return nil, err
		}
		v, err := in.Eval(entry.Value, env)
		if err != nil {
			return nil, err
		}
		dict.Set(k, v)
	}
	return dict, nil
}

func (in *Interpreter) evalSetLit(e *ast.SetLit, env *Environment) (Value, error) {
	set := NewSet()
	for _, el := range e.Elements {
		v, err := in.Eval(el, env)
		if err != nil {
			return nil, err
		}
		set.Add(v)
	}
	return set, nil
}

func (in *Interpreter) evalTupleLit(e *ast.TupleLit, env *Environment) (Value, error) {
	elems := make([]Value, len(e.Elements))
	for i, el := range e.Elements {
		v, err := in.Eval(el, env)
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	return &TupleValue{Elements: elems}, nil
}

// Truthy implements Lunite's truthiness rule: null and false are falsy,
// numeric zero is falsy, empty strings/containers are falsy, everything
// else is truthy (mirrors the original source's Python-derived convention).
func Truthy(v Value) bool {
	switch val := v.(type) {
	case NullValue:
		return false
	case *BoolValue:
		return val.Value
	case *IntValue:
		if val.IsBig() {
			return val.Big.Sign() != 0
		}
		return val.Small != 0
	case *FloatValue:
		return val.Value != 0
	case *BitValue:
		return val.Value != 0
	case *ByteValue:
		return val.Value != 0
	case *StringValue:
		return val.Value != ""
	case *CharValue:
		return true
	case *ListValue:
		return len(val.Elements) > 0
	case *TupleValue:
		return len(val.Elements) > 0
	case *DictValue:
		return val.Len() > 0
	case *SetValue:
		return val.Len() > 0
	default:
		return true
	}
}

func (in *Interpreter) evalUnaryOp(e *ast.UnaryOp, env *Environment) (Value, error) {
	val, err := in.Eval(e.Operand, env)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case "-":
		return negate(val, in, e)
	case "+":
		return val, nil
	case "~":
		i, ok := asInt(val)
		if !ok {
			return nil, in.runtimeErrAt(e, "unary '~' requires an int, got %s", val.Type())
		}
		return NewInt(^i), nil
	case "!", "not":
		return BoolOf(!Truthy(val)), nil
	default:
		return nil, in.runtimeErrAt(e, "unknown unary operator %q", e.Op)
	}
}

func negate(v Value, in *Interpreter, node ast.Node) (Value, error) {
	switch val := v.(type) {
	case *IntValue:
		if val.IsBig() {
			return NewBigInt(new(big.Int).Neg(val.Big)), nil
		}
		return NewInt(-val.Small), nil
	case *FloatValue:
		return &FloatValue{Value: -val.Value}, nil
	default:
		return nil, in.runtimeErrAt(node, "unary '-' requires a number, got %s", v.Type())
	}
}

func asInt(v Value) (int64, bool) {
	switch val := v.(type) {
	case *IntValue:
		return val.Small, !val.IsBig()
	case *BitValue:
		return int64(val.Value), true
	case *ByteValue:
		return int64(val.Value), true
	default:
		return 0, false
	}
}

func asFloat(v Value) (float64, bool) {
	switch val := v.(type) {
	case *FloatValue:
		return val.Value, true
	case *IntValue:
		if val.IsBig() {
			f, _ := new(big.Float).SetInt(val.Big).Float64()
			return f, true
		}
		return float64(val.Small), true
	case *BitValue:
		return float64(val.Value), true
	case *ByteValue:
		return float64(val.Value), true
	default:
		return 0, false
	}
}

func isNumeric(v Value) bool {
	switch v.(type) {
	case *IntValue, *FloatValue, *BitValue, *ByteValue:
		return true
	}
	return false
}

func (in *Interpreter) evalBinaryOp(e *ast.BinaryOp, env *Environment) (Value, error) {
	// Logical operators short-circuit (spec.md §4.3) and must not evaluate
	// the right side eagerly.
	switch e.Op {
	case "and":
		left, err := in.Eval(e.Left, env)
		if err != nil {
			return nil, err
		}
		if !Truthy(left) {
			return BoolOf(false), nil
		}
		right, err := in.Eval(e.Right, env)
		if err != nil {
			return nil, err
		}
		return BoolOf(Truthy(right)), nil
	case "or":
		left, err := in.Eval(e.Left, env)
		if err != nil {
			return nil, err
		}
		if Truthy(left) {
			return BoolOf(true), nil
		}
		right, err := in.Eval(e.Right, env)
		if err != nil {
			return nil, err
		}
		return BoolOf(Truthy(right)), nil
	}

	left, err := in.Eval(e.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := in.Eval(e.Right, env)
	if err != nil {
		return nil, err
	}

	switch e.Op {
	case "+":
		return in.evalAdd(left, right, e)
	case "-", "*", "/", "%":
		return in.evalArith(e.Op, left, right, e)
	case "&", "|", "^", "<<", ">>":
		return in.evalBitwise(e.Op, left, right, e)
	case "==":
		return BoolOf(ValuesEqual(left, right)), nil
	case "!=":
		return BoolOf(!ValuesEqual(left, right)), nil
	case ">":
		return in.evalOrder(">", left, right, e)
	case "<":
		return in.evalOrder("<", left, right, e)
	default:
		return nil, in.runtimeErrAt(e, "unknown binary operator %q", e.Op)
	}
}

// evalAdd handles '+' specially since it is also string/list concatenation,
// unlike the other arithmetic operators.
func (in *Interpreter) evalAdd(left, right Value, node ast.Node) (Value, error) {
	if l, ok := left.(*StringValue); ok {
		if r, ok := right.(*StringValue); ok {
			return &StringValue{Value: l.Value + r.Value}, nil
		}
	}
	if l, ok := left.(*ListValue); ok {
		if r, ok := right.(*ListValue); ok {
			combined := make([]Value, 0, len(l.Elements)+len(r.Elements))
			combined = append(combined, l.Elements...)
			combined = append(combined, r.Elements...)
			return &ListValue{Elements: combined}, nil
		}
	}
	if isNumeric(left) && isNumeric(right) {
		return in.evalArith("+", left, right, node)
	}
	return nil, in.runtimeErrAt(node, "unsupported operand types for '+': %s and %s", left.Type(), right.Type())
}

// evalArith implements +,-,*,/,% with spec.md §5 numeric-tower rules: '/' is
// always true division; '%' follows IEEE-fmod sign-of-dividend semantics,
// staying integer for int/int and promoting to float otherwise.
func (in *Interpreter) evalArith(op string, left, right Value, node ast.Node) (Value, error) {
	if !isNumeric(left) || !isNumeric(right) {
		return nil, in.runtimeErrAt(node, "unsupported operand types for '%s': %s and %s", op, left.Type(), right.Type())
	}

	lBig, lIsBig := bigOf(left)
	rBig, rIsBig := bigOf(right)
	bothInt := isIntLike(left) && isIntLike(right)

	if op == "/" {
		lf, _ := asFloat(left)
		rf, _ := asFloat(right)
		if rf == 0 {
			return nil, in.runtimeErrAt(node, "division by zero")
		}
		return &FloatValue{Value: lf / rf}, nil
	}

	if bothInt && (lIsBig || rIsBig) {
		switch op {
		case "+":
			return NewBigInt(new(big.Int).Add(lBig, rBig)), nil
		case "-":
			return NewBigInt(new(big.Int).Sub(lBig, rBig)), nil
		case "*":
			return NewBigInt(new(big.Int).Mul(lBig, rBig)), nil
		case "%":
			if rBig.Sign() == 0 {
				return nil, in.runtimeErrAt(node, "division by zero")
			}
			m := new(big.Int).Rem(lBig, rBig)
			return NewBigInt(m), nil
		}
	}

	if bothInt {
		li, _ := asInt(left)
		ri, _ := asInt(right)
		switch op {
		case "+":
			return intOrBig(int64(0), li, ri, '+'), nil
		case "-":
			return intOrBig(int64(0), li, ri, '-'), nil
		case "*":
			return intOrBig(int64(0), li, ri, '*'), nil
		case "%":
			if ri == 0 {
				return nil, in.runtimeErrAt(node, "division by zero")
			}
			return NewInt(li % ri), nil
		}
	}

	lf, _ := asFloat(left)
	rf, _ := asFloat(right)
	switch op {
	case "+":
		return &FloatValue{Value: lf + rf}, nil
	case "-":
		return &FloatValue{Value: lf - rf}, nil
	case "*":
		return &FloatValue{Value: lf * rf}, nil
	case "%":
		return &FloatValue{Value: math.Mod(lf, rf)}, nil
	}
	return nil, in.runtimeErrAt(node, "unreachable arithmetic op %q", op)
}

func isIntLike(v Value) bool {
	switch v.(type) {
	case *IntValue, *BitValue, *ByteValue:
		return true
	}
	return false
}

func bigOf(v Value) (*big.Int, bool) {
	if iv, ok := v.(*IntValue); ok {
		return iv.BigValue(), iv.IsBig()
	}
	i, _ := asInt(v)
	return big.NewInt(i), false
}

// intOrBig performs op over two int64 operands, widening to big.Int on
// overflow so arithmetic never silently truncates (spec.md §3.1).
func intOrBig(_ int64, a, b int64, op byte) Value {
	switch op {
	case '+':
		r := a + b
		if (b > 0 && r < a) || (b < 0 && r > a) {
			return NewBigInt(new(big.Int).Add(big.NewInt(a), big.NewInt(b)))
		}
		return NewInt(r)
	case '-':
		r := a - b
		if (b > 0 && r > a) || (b < 0 && r < a) {
			return NewBigInt(new(big.Int).Sub(big.NewInt(a), big.NewInt(b)))
		}
		return NewInt(r)
	case '*':
		if a == 0 || b == 0 {
			return NewInt(0)
		}
		r := a * b
		if r/b != a {
			return NewBigInt(new(big.Int).Mul(big.NewInt(a), big.NewInt(b)))
		}
		return NewInt(r)
	}
	return NewInt(0)
}

func (in *Interpreter) evalBitwise(op string, left, right Value, node ast.Node) (Value, error) {
	li, lok := asInt(left)
	ri, rok := asInt(right)
	if !lok || !rok {
		return nil, in.runtimeErrAt(node, "unsupported operand types for '%s': %s and %s", op, left.Type(), right.Type())
	}
	switch op {
	case "&":
		return NewInt(li & ri), nil
	case "|":
		return NewInt(li | ri), nil
	case "^":
		return NewInt(li ^ ri), nil
	case "<<":
		return NewInt(li << uint(ri)), nil
	case ">>":
		return NewInt(li >> uint(ri)), nil
	}
	return nil, in.runtimeErrAt(node, "unreachable bitwise op %q", op)
}

func (in *Interpreter) evalOrder(op string, left, right Value, node ast.Node) (Value, error) {
	if isNumeric(left) && isNumeric(right) {
		lf, _ := asFloat(left)
		rf, _ := asFloat(right)
		if op == ">" {
			return BoolOf(lf > rf), nil
		}
		return BoolOf(lf < rf), nil
	}
	if l, ok := left.(*StringValue); ok {
		if r, ok := right.(*StringValue); ok {
			if op == ">" {
				return BoolOf(l.Value > r.Value), nil
			}
			return BoolOf(l.Value < r.Value), nil
		}
	}
	return nil, in.runtimeErrAt(node, "unsupported operand types for '%s': %s and %s", op, left.Type(), right.Type())
}

// ValuesEqual implements the equality used by ==, !=, and match (spec.md
// §5): value equality for primitives and containers (deep), identity for
// instances.
func ValuesEqual(a, b Value) bool {
	if isNumeric(a) && isNumeric(b) {
		af, _ := asFloat(a)
		bf, _ := asFloat(b)
		return af == bf
	}
	switch av := a.(type) {
	case NullValue:
		_, ok := b.(NullValue)
		return ok
	case *BoolValue:
		bv, ok := b.(*BoolValue)
		return ok && av.Value == bv.Value
	case *StringValue:
		bv, ok := b.(*StringValue)
		return ok && av.Value == bv.Value
	case *CharValue:
		bv, ok := b.(*CharValue)
		return ok && av.Value == bv.Value
	case *ListValue:
		bv, ok := b.(*ListValue)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !ValuesEqual(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case *TupleValue:
		bv, ok := b.(*TupleValue)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !ValuesEqual(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case *DictValue:
		bv, ok := b.(*DictValue)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		equal := true
		av.Range(func(k, v Value) {
			other, found := bv.Get(k)
			if !found || !ValuesEqual(v, other) {
				equal = false
			}
		})
		return equal
	case *SetValue:
		bv, ok := b.(*SetValue)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		equal := true
		av.Range(func(v Value) {
			if !bv.Has(v) {
				equal = false
			}
		})
		return equal
	default:
		return a == b // identity, for Instance/Function/Class/HostCallable/HostModule
	}
}

// evalTypeCheck implements `x is T` (spec.md §5): T is a built-in type name
// or a user class name, compared by the value's own Type() with no
// inheritance walk - a documented limitation (spec.md §9).
func (in *Interpreter) evalTypeCheck(e *ast.TypeCheck, env *Environment) (Value, error) {
	subject, err := in.Eval(e.Subject, env)
	if err != nil {
		return nil, err
	}
	return BoolOf(subject.Type() == e.TypeName), nil
}

func (in *Interpreter) evalAssign(e *ast.Assign, env *Environment) (Value, error) {
	val, err := in.Eval(e.Value, env)
	if err != nil {
		return nil, err
	}
	if err := in.assignTo(e.Target, val, env); err != nil {
		return nil, err
	}
	return val, nil
}

func (in *Interpreter) evalCompoundAssign(e *ast.CompoundAssign, env *Environment) (Value, error) {
	current, err := in.Eval(e.Target, env)
	if err != nil {
		return nil, err
	}
	rhs, err := in.Eval(e.Value, env)
	if err != nil {
		return nil, err
	}
	var result Value
	if e.Op == "+" {
		result, err = in.evalAdd(current, rhs, e)
	} else {
		result, err = in.evalArith(e.Op, current, rhs, e)
	}
	if err != nil {
		return nil, err
	}
	if err := in.assignTo(e.Target, result, env); err != nil {
		return nil, err
	}
	return result, nil
}

// assignTo writes value into the lvalue described by target. Only
// identifier, member-access, and index-access targets are legal (spec.md
// §4.2); anything else is an Assignment error.
func (in *Interpreter) assignTo(target ast.Expr, value Value, env *Environment) error {
	switch t := target.(type) {
	case *ast.Identifier:
		if err := env.Set(t.Name, value); err != nil {
			if _, isConst := err.(*constAssignError); isConst {
				return in.errAt(errors.Runtime, t, "%s", err.Error())
			}
			return in.errAt(errors.Assignment, t, "%s", err.Error())
		}
		return nil
	case *ast.MemberAccess:
		obj, err := in.Eval(t.Object, env)
		if err != nil {
			return err
		}
		inst, ok := obj.(*InstanceValue)
		if !ok {
			return in.errAt(errors.Assignment, t, "cannot assign to member of a %s value", obj.Type())
		}
		inst.Fields[t.Member] = value
		return nil
	case *ast.IndexAccess:
		target, err := in.Eval(t.Target, env)
		if err != nil {
			return err
		}
		idx, err := in.Eval(t.Index, env)
		if err != nil {
			return err
		}
		return in.assignIndex(target, idx, value, t)
	default:
		return in.errAt(errors.Assignment, target, "invalid assignment target")
	}
}

func (in *Interpreter) assignIndex(target, idx, value Value, node ast.Node) error {
	switch t := target.(type) {
	case *ListValue:
		i, ok := asInt(idx)
		if !ok {
			return in.errAt(errors.Index, node, "list index must be an int, got %s", idx.Type())
		}
		if i < 0 || int(i) >= len(t.Elements) {
			return in.errAt(errors.Index, node, "list index %d out of range", i)
		}
		t.Elements[i] = value
		return nil
	case *DictValue:
		t.Set(idx, value)
		return nil
	default:
		return in.errAt(errors.Assignment, node, "cannot index-assign a %s value", target.Type())
	}
}
