package host

import (
	"errors"
	"math/rand"

	"github.com/ingStudiosOfficial/Lunite/internal/eval"
)

// newRandomModule grounds the original source's `random` import in Go's
// math/rand; no third-party PRNG appears anywhere in the reference pack.
func newRandomModule() *eval.HostModule {
	m := newModule("random")
	m.Members["randomInt"] = &eval.HostCallable{Name: "randomInt", Arity: 2, Fn: randomIntFn}
	m.Members["random"] = &eval.HostCallable{Name: "random", Arity: 0, Fn: randomFloatFn}
	m.Members["choice"] = &eval.HostCallable{Name: "choice", Arity: 1, Fn: randomChoiceFn}
	m.Members["seed"] = &eval.HostCallable{Name: "seed", Arity: 1, Fn: randomSeedFn}
	return m
}

func randomSeedFn(args []eval.Value) (eval.Value, error) {
	n, ok := args[0].(*eval.IntValue)
	if !ok {
		return nil, errors.New("seed() requires an integer")
	}
	rand.Seed(n.Small)
	return eval.Null, nil
}

func randomIntFn(args []eval.Value) (eval.Value, error) {
	lo, ok1 := args[0].(*eval.IntValue)
	hi, ok2 := args[1].(*eval.IntValue)
	if !ok1 || !ok2 {
		return nil, errors.New("int() requires two integer bounds")
	}
	if hi.Small < lo.Small {
		return nil, errors.New("int() requires low <= high")
	}
	return eval.NewInt(lo.Small + rand.Int63n(hi.Small-lo.Small+1)), nil
}

func randomFloatFn(args []eval.Value) (eval.Value, error) {
	return &eval.FloatValue{Value: rand.Float64()}, nil
}

func randomChoiceFn(args []eval.Value) (eval.Value, error) {
	list, ok := args[0].(*eval.ListValue)
	if !ok {
		return nil, errors.New("choice() requires a list")
	}
	if len(list.Elements) == 0 {
		return nil, errors.New("choice() requires a non-empty list")
	}
	return list.Elements[rand.Intn(len(list.Elements))], nil
}
