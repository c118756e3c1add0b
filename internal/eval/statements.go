package eval

import (
	"github.com/ingStudiosOfficial/Lunite/internal/ast"
	"github.com/ingStudiosOfficial/Lunite/internal/errors"
)

// execStmt executes one statement. A non-nil error is an exception in
// flight; otherwise the caller must check anySet() before continuing to
// the next statement (see signals.go).
func (in *Interpreter) execStmt(stmt ast.Stmt, env *Environment) error {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		_, err := in.Eval(s.Expr, env)
		return err
	case *ast.VarDecl:
		val, err := in.Eval(s.Value, env)
		if err != nil {
			return err
		}
		env.Define(s.Name, val, s.IsConst)
		return nil
	case *ast.DestructuringDecl:
		return in.execDestructuringDecl(s, env)
	case *ast.FunctionDef:
		env.Define(s.Name, &FunctionValue{Name: s.Name, Params: s.Params, Body: s.Body, Globals: in.Globals, SourceFile: in.CurrentFile}, false)
		return nil
	case *ast.ClassDef:
		class, err := in.resolveClass(s, env)
		if err != nil {
			return err
		}
		env.Define(s.Name, class, false)
		return nil
	case *ast.IfStmt:
		return in.execIfStmt(s, env)
	case *ast.WhileStmt:
		return in.execWhileStmt(s, env)
	case *ast.ForStmt:
		return in.execForStmt(s, env)
	case *ast.TryCatchStmt:
		return in.execTryCatchStmt(s, env)
	case *ast.MatchStmt:
		return in.execMatchStmt(s, env)
	case *ast.EnumDef:
		return in.execEnumDef(s, env)
	case *ast.ReturnStmt:
		var val Value = Null
		if s.Value != nil {
			v, err := in.Eval(s.Value, env)
			if err != nil {
				return err
			}
			val = v
		}
		in.sigReturn = true
		in.returnValue = val
		return nil
	case *ast.BreakStmt:
		in.sigBreak = true
		return nil
	case *ast.AdvanceStmt:
		in.sigAdvance = true
		return nil
	case *ast.LeapStmt:
		in.sigLeap = true
		in.leapTargetName = s.TargetName
		in.leapTargetLine = s.TargetLine
		in.leapByLine = s.ByLine
		return nil
	case *ast.LabelDef:
		return nil // a passive marker; only meaningful as a leap target
	case *ast.Block:
		return in.execBlock(s, NewEnclosedEnvironment(env))
	case *ast.ImportStmt:
		return in.execImportStmt(s, env)
	case *ast.ImportHostStmt:
		return in.execImportHostStmt(s, env)
	default:
		return in.runtimeErrAt(stmt, "unsupported statement type %T", stmt)
	}
}

func (in *Interpreter) execDestructuringDecl(s *ast.DestructuringDecl, env *Environment) error {
	val, err := in.Eval(s.Value, env)
	if err != nil {
		return err
	}
	var elements []Value
	switch v := val.(type) {
	case *ListValue:
		elements = v.Elements
	case *TupleValue:
		elements = v.Elements
	default:
		return in.errAt(errors.Destructuring, s, "cannot destructure a %s value", val.Type())
	}
	if len(elements) != len(s.Names) {
		return in.errAt(errors.Destructuring, s, "expected %d values to destructure, got %d", len(s.Names), len(elements))
	}
	for i, name := range s.Names {
		env.Define(name, elements[i], s.IsConst)
	}
	return nil
}

// execBlock runs a block's statements in sequence within env, handling the
// leap signal locally (spec.md §9): if a leap targets a label or line
// inside this exact block, execution resumes from that statement; any
// other signal, or a leap this block cannot resolve, stops the block and
// is left for the caller to interpret.
func (in *Interpreter) execBlock(block *ast.Block, env *Environment) error {
	i := 0
	for i < len(block.Statements) {
		if err := in.execStmt(block.Statements[i], env); err != nil {
			return err
		}
		if in.sigLeap {
			if idx, ok := resolveLeapTarget(block, in.leapTargetName, in.leapTargetLine, in.leapByLine); ok {
				in.clearLeap()
				i = idx
				continue
			}
			return nil // not ours; propagate upward
		}
		if in.anySet() {
			return nil
		}
		i++
	}
	return nil
}

// resolveLeapTarget finds the statement index in block matching a label
// name or source line (spec.md §9 leap semantics).
func resolveLeapTarget(block *ast.Block, name string, line int, byLine bool) (int, bool) {
	for i, stmt := range block.Statements {
		if byLine {
			if stmt.Pos().Line == line {
				return i, true
			}
			continue
		}
		if lbl, ok := stmt.(*ast.LabelDef); ok && lbl.Name == name {
			return i, true
		}
	}
	return 0, false
}

func (in *Interpreter) execIfStmt(s *ast.IfStmt, env *Environment) error {
	cond, err := in.Eval(s.Cond, env)
	if err != nil {
		return err
	}
	if Truthy(cond) {
		return in.execBlock(s.Then, NewEnclosedEnvironment(env))
	}
	if s.Else != nil {
		return in.execBlock(s.Else, NewEnclosedEnvironment(env))
	}
	return nil
}

func (in *Interpreter) execWhileStmt(s *ast.WhileStmt, env *Environment) error {
	for {
		cond, err := in.Eval(s.Cond, env)
		if err != nil {
			return err
		}
		if !Truthy(cond) {
			return nil
		}
		if err := in.execBlock(s.Body, NewEnclosedEnvironment(env)); err != nil {
			return err
		}
		if in.sigBreak {
			in.clearLoopSignals()
			return nil
		}
		if in.sigAdvance {
			in.clearLoopSignals()
			continue
		}
		if in.anySet() {
			return nil // return/leap: not ours to consume
		}
	}
}

// execForStmt iterates `for iter in iterable`. A fresh environment is
// pushed per iteration, with iter bound in it (spec.md §4.3).
func (in *Interpreter) execForStmt(s *ast.ForStmt, env *Environment) error {
	iterableVal, err := in.Eval(s.Iterable, env)
	if err != nil {
		return err
	}
	items, err := iterate(iterableVal)
	if err != nil {
		return in.runtimeErrAt(s, "%s", err.Error())
	}
	for _, item := range items {
		iterEnv := NewEnclosedEnvironment(env)
		iterEnv.Define(s.IterName, item, false)
		if err := in.execBlock(s.Body, iterEnv); err != nil {
			return err
		}
		if in.sigBreak {
			in.clearLoopSignals()
			return nil
		}
		if in.sigAdvance {
			in.clearLoopSignals()
			continue
		}
		if in.anySet() {
			return nil
		}
	}
	return nil
}

// iterate flattens a List/Tuple/Dict/Set into a slice of iterable items.
// Dicts iterate over their keys, matching the original source's convention.
func iterate(v Value) ([]Value, error) {
	switch val := v.(type) {
	case *ListValue:
		return val.Elements, nil
	case *TupleValue:
		return val.Elements, nil
	case *SetValue:
		var items []Value
		val.Range(func(item Value) { items = append(items, item) })
		return items, nil
	case *DictValue:
		var items []Value
		val.Range(func(k, _ Value) { items = append(items, k) })
		return items, nil
	case *StringValue:
		var items []Value
		for _, r := range val.Value {
			items = append(items, &CharValue{Value: r})
		}
		return items, nil
	default:
		return nil, errors.New(errors.Loop, "%s is not iterable", v.Type())
	}
}

// execTryCatchStmt implements attempt/rescue/finally (spec.md §4.3/§7/§8):
// finally always runs, and a throw inside finally supersedes any pending
// exception or control signal.
func (in *Interpreter) execTryCatchStmt(s *ast.TryCatchStmt, env *Environment) error {
	// Control-flow signals (return/break/advance/leap) never surface as a Go
	// error here - they're out-of-band flags on the Interpreter (see
	// signals.go) - so a non-nil tryErr always means a genuine exception,
	// and attempt/rescue naturally never catches the other four (spec.md
	// §7: "not user-catchable").
	tryErr := in.execBlock(s.Try, NewEnclosedEnvironment(env))

	var result error
	if tryErr != nil {
		rescueEnv := NewEnclosedEnvironment(env)
		rescueEnv.Define(s.ErrVar, &StringValue{Value: tryErr.Error()}, false)
		result = in.execBlock(s.Rescue, rescueEnv)
	}

	if s.Finally != nil {
		savedSignals := in.controlSignals
		in.controlSignals = controlSignals{}
		finallyErr := in.execBlock(s.Finally, NewEnclosedEnvironment(env))
		if finallyErr != nil {
			return finallyErr // a thrown error in finally supersedes any pending one
		}
		if in.anySet() {
			return nil // finally's own control signal supersedes the pending result
		}
		in.controlSignals = savedSignals
	}
	return result
}

func (in *Interpreter) execMatchStmt(s *ast.MatchStmt, env *Environment) error {
	subject, err := in.Eval(s.Subject, env)
	if err != nil {
		return err
	}
	for _, c := range s.Cases {
		caseVal, err := in.Eval(c.Value, env)
		if err != nil {
			return err
		}
		if ValuesEqual(subject, caseVal) {
			if err := in.execBlock(c.Body, NewEnclosedEnvironment(env)); err != nil {
				return err
			}
			if in.sigBreak {
				in.clearLoopSignals()
			}
			return nil
		}
	}
	if s.Default != nil {
		if err := in.execBlock(s.Default, NewEnclosedEnvironment(env)); err != nil {
			return err
		}
		if in.sigBreak {
			in.clearLoopSignals()
		}
	}
	return nil
}

func (in *Interpreter) execEnumDef(s *ast.EnumDef, env *Environment) error {
	dict := NewDict()
	for i, name := range s.Members {
		dict.Set(&StringValue{Value: name}, NewInt(int64(i)))
	}
	env.Define(s.Name, dict, true)
	return nil
}
