package host

import (
	"errors"
	"math"
	"math/big"

	"github.com/ingStudiosOfficial/Lunite/internal/eval"
)

// newMathModule grounds the original source's `math` import (original_source
// uses Python's math module for sqrt/pow/floor/ceil/trig) in a Go-native
// HostModule of the same shape.
func newMathModule() *eval.HostModule {
	m := newModule("math")
	m.Members["pi"] = &eval.FloatValue{Value: math.Pi}
	m.Members["e"] = &eval.FloatValue{Value: math.E}
	m.Members["sqrt"] = unaryFloatFn("sqrt", math.Sqrt)
	m.Members["floor"] = unaryFloatFn("floor", math.Floor)
	m.Members["ceil"] = unaryFloatFn("ceil", math.Ceil)
	m.Members["round"] = unaryFloatFn("round", math.Round)
	m.Members["abs"] = &eval.HostCallable{Name: "abs", Arity: 1, Fn: absFn}
	m.Members["pow"] = &eval.HostCallable{Name: "pow", Arity: 2, Fn: powFn}
	m.Members["sin"] = unaryFloatFn("sin", math.Sin)
	m.Members["cos"] = unaryFloatFn("cos", math.Cos)
	m.Members["tan"] = unaryFloatFn("tan", math.Tan)
	m.Members["log"] = unaryFloatFn("log", math.Log)
	m.Members["max"] = &eval.HostCallable{Name: "max", Arity: -1, Fn: maxFn}
	m.Members["min"] = &eval.HostCallable{Name: "min", Arity: -1, Fn: minFn}
	return m
}

func unaryFloatFn(name string, fn func(float64) float64) *eval.HostCallable {
	return &eval.HostCallable{
		Name:  name,
		Arity: 1,
		Fn: func(args []eval.Value) (eval.Value, error) {
			f, ok := floatArg(args[0])
			if !ok {
				return nil, errors.New(name + "() requires a number")
			}
			return &eval.FloatValue{Value: fn(f)}, nil
		},
	}
}

func floatArg(v eval.Value) (float64, bool) {
	switch val := v.(type) {
	case *eval.FloatValue:
		return val.Value, true
	case *eval.IntValue:
		if val.IsBig() {
			f := new(big.Float).SetInt(val.Big)
			f64, _ := f.Float64()
			return f64, true
		}
		return float64(val.Small), true
	case *eval.BitValue:
		return float64(val.Value), true
	case *eval.ByteValue:
		return float64(val.Value), true
	default:
		return 0, false
	}
}

func absFn(args []eval.Value) (eval.Value, error) {
	switch v := args[0].(type) {
	case *eval.IntValue:
		if v.IsBig() {
			return eval.NewBigInt(new(big.Int).Abs(v.Big)), nil
		}
		if v.Small < 0 {
			return eval.NewInt(-v.Small), nil
		}
		return v, nil
	case *eval.FloatValue:
		return &eval.FloatValue{Value: math.Abs(v.Value)}, nil
	default:
		return nil, errors.New("abs() requires a number")
	}
}

func powFn(args []eval.Value) (eval.Value, error) {
	base, ok1 := floatArg(args[0])
	exp, ok2 := floatArg(args[1])
	if !ok1 || !ok2 {
		return nil, errors.New("pow() requires two numbers")
	}
	return &eval.FloatValue{Value: math.Pow(base, exp)}, nil
}

func maxFn(args []eval.Value) (eval.Value, error) {
	if len(args) == 0 {
		return nil, errors.New("max() requires at least one argument")
	}
	best := args[0]
	bestF, _ := floatArg(best)
	for _, a := range args[1:] {
		f, ok := floatArg(a)
		if ok && f > bestF {
			best, bestF = a, f
		}
	}
	return best, nil
}

func minFn(args []eval.Value) (eval.Value, error) {
	if len(args) == 0 {
		return nil, errors.New("min() requires at least one argument")
	}
	best := args[0]
	bestF, _ := floatArg(best)
	for _, a := range args[1:] {
		f, ok := floatArg(a)
		if ok && f < bestF {
			best, bestF = a, f
		}
	}
	return best, nil
}
