package host

import (
	"errors"

	luniteErrors "github.com/ingStudiosOfficial/Lunite/internal/errors"
	"github.com/ingStudiosOfficial/Lunite/internal/eval"
)

func outBuiltin(out eval.OutputWriter) *eval.HostCallable {
	return &eval.HostCallable{
		Name:  "out",
		Arity: -1,
		Fn: func(args []eval.Value) (eval.Value, error) {
			for i, a := range args {
				if i > 0 {
					out.WriteString(" ")
				}
				out.WriteString(a.String())
			}
			out.WriteString("\n")
			return eval.Null, nil
		},
	}
}

func typeBuiltin() *eval.HostCallable {
	return &eval.HostCallable{
		Name:  "type",
		Arity: 1,
		Fn: func(args []eval.Value) (eval.Value, error) {
			return &eval.StringValue{Value: args[0].Type()}, nil
		},
	}
}

// strBuiltin backs both the `str(...)` builtin and every f-string segment
// the parser desugars into a str() call (spec.md §4.2).
func strBuiltin() *eval.HostCallable {
	return &eval.HostCallable{
		Name:  "str",
		Arity: 1,
		Fn: func(args []eval.Value) (eval.Value, error) {
			return &eval.StringValue{Value: args[0].String()}, nil
		},
	}
}

func lenBuiltin() *eval.HostCallable {
	return &eval.HostCallable{
		Name:  "len",
		Arity: 1,
		Fn: func(args []eval.Value) (eval.Value, error) {
			switch v := args[0].(type) {
			case *eval.StringValue:
				return eval.NewInt(int64(len([]rune(v.Value)))), nil
			case *eval.ListValue:
				return eval.NewInt(int64(len(v.Elements))), nil
			case *eval.TupleValue:
				return eval.NewInt(int64(len(v.Elements))), nil
			case *eval.DictValue:
				return eval.NewInt(int64(v.Len())), nil
			case *eval.SetValue:
				return eval.NewInt(int64(v.Len())), nil
			default:
				return nil, errors.New("len() does not apply to " + v.Type())
			}
		},
	}
}

// rangeBuiltin supports the 1-, 2-, and 3-arg forms used by the end-to-end
// `for i in range(...)` scenario (spec.md §8 scenario 6).
func rangeBuiltin() *eval.HostCallable {
	return &eval.HostCallable{
		Name:  "range",
		Arity: -1,
		Fn: func(args []eval.Value) (eval.Value, error) {
			var start, stop, step int64 = 0, 0, 1
			switch len(args) {
			case 1:
				stop = mustInt(args[0])
			case 2:
				start, stop = mustInt(args[0]), mustInt(args[1])
			case 3:
				start, stop, step = mustInt(args[0]), mustInt(args[1]), mustInt(args[2])
			default:
				return nil, errors.New("range() takes 1 to 3 arguments")
			}
			if step == 0 {
				return nil, errors.New("range() step must not be zero")
			}
			var elems []eval.Value
			if step > 0 {
				for i := start; i < stop; i += step {
					elems = append(elems, eval.NewInt(i))
				}
			} else {
				for i := start; i > stop; i += step {
					elems = append(elems, eval.NewInt(i))
				}
			}
			return &eval.ListValue{Elements: elems}, nil
		},
	}
}

func mustInt(v eval.Value) int64 {
	if iv, ok := v.(*eval.IntValue); ok {
		return iv.Small
	}
	return 0
}

// typeQueryBuiltins backs the isInt/isFloat/isStr/isBool/isList/isDict/
// isFunc/isBit/isByte convenience predicates (spec.md §3.1 type tags), each
// a thin wrapper around the same type name the `is` operator compares
// against.
func typeQueryBuiltins() map[string]*eval.HostCallable {
	preds := map[string]string{
		"isInt":   "int",
		"isFloat": "float",
		"isStr":   "str",
		"isBool":  "bool",
		"isList":  "list",
		"isDict":  "dict",
		"isFunc":  "function",
		"isBit":   "bit",
		"isByte":  "byte",
	}
	out := make(map[string]*eval.HostCallable, len(preds))
	for name, want := range preds {
		want := want
		out[name] = &eval.HostCallable{
			Name:  name,
			Arity: 1,
			Fn: func(args []eval.Value) (eval.Value, error) {
				return eval.BoolOf(args[0].Type() == want), nil
			},
		}
	}
	return out
}

// bitBuiltin converts an int to a Bit, the only construction site for the
// type (spec.md §3.1: "Bit (integer 0 or 1, rejects others)").
func bitBuiltin() *eval.HostCallable {
	return &eval.HostCallable{
		Name:  "bit",
		Arity: 1,
		Fn: func(args []eval.Value) (eval.Value, error) {
			n, ok := args[0].(*eval.IntValue)
			if !ok || n.IsBig() {
				return nil, errors.New("bit() requires an integer")
			}
			if n.Small != 0 && n.Small != 1 {
				return nil, errors.New("bit() requires 0 or 1")
			}
			return &eval.BitValue{Value: int(n.Small)}, nil
		},
	}
}

// byteBuiltin converts an int to a Byte, the only construction site for the
// type (spec.md §3.1: "Byte (integer 0-255, rejects others)").
func byteBuiltin() *eval.HostCallable {
	return &eval.HostCallable{
		Name:  "byte",
		Arity: 1,
		Fn: func(args []eval.Value) (eval.Value, error) {
			n, ok := args[0].(*eval.IntValue)
			if !ok || n.IsBig() {
				return nil, errors.New("byte() requires an integer")
			}
			if n.Small < 0 || n.Small > 255 {
				return nil, errors.New("byte() requires an integer in 0..255")
			}
			return &eval.ByteValue{Value: byte(n.Small)}, nil
		},
	}
}

func assertBuiltin() *eval.HostCallable {
	return &eval.HostCallable{
		Name:  "assert",
		Arity: -1,
		Fn: func(args []eval.Value) (eval.Value, error) {
			if len(args) == 0 {
				return nil, errors.New("assert() requires at least a condition")
			}
			if !eval.Truthy(args[0]) {
				msg := "assertion failed"
				if len(args) > 1 {
					msg = args[1].String()
				}
				return nil, luniteErrors.New(luniteErrors.Runtime, "%s", msg)
			}
			return eval.Null, nil
		},
	}
}
