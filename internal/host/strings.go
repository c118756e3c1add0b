package host

import (
	"errors"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ingStudiosOfficial/Lunite/internal/eval"
)

// newStringsModule grounds the original source's Python str-method surface
// (upper/lower/strip/split/join/replace) in Go's strings package, using
// golang.org/x/text for locale-aware casing rather than strings.ToUpper's
// ASCII-only folding.
func newStringsModule() *eval.HostModule {
	m := newModule("strings")
	upperCaser := cases.Upper(language.Und)
	lowerCaser := cases.Lower(language.Und)

	m.Members["upper"] = unaryStrFn("upper", upperCaser.String)
	m.Members["lower"] = unaryStrFn("lower", lowerCaser.String)
	m.Members["trim"] = unaryStrFn("trim", strings.TrimSpace)
	m.Members["strip"] = unaryStrFn("strip", strings.TrimSpace)
	m.Members["split"] = &eval.HostCallable{Name: "split", Arity: 2, Fn: splitFn}
	m.Members["join"] = &eval.HostCallable{Name: "join", Arity: 2, Fn: joinFn}
	m.Members["replace"] = &eval.HostCallable{Name: "replace", Arity: 3, Fn: replaceFn}
	m.Members["contains"] = &eval.HostCallable{Name: "contains", Arity: 2, Fn: containsFn}
	m.Members["startsWith"] = &eval.HostCallable{Name: "startsWith", Arity: 2, Fn: startsWithFn}
	m.Members["endsWith"] = &eval.HostCallable{Name: "endsWith", Arity: 2, Fn: endsWithFn}
	m.Members["indexOf"] = &eval.HostCallable{Name: "indexOf", Arity: 2, Fn: indexOfFn}
	return m
}

func unaryStrFn(name string, fn func(string) string) *eval.HostCallable {
	return &eval.HostCallable{
		Name:  name,
		Arity: 1,
		Fn: func(args []eval.Value) (eval.Value, error) {
			s, ok := args[0].(*eval.StringValue)
			if !ok {
				return nil, errors.New(name + "() requires a string")
			}
			return &eval.StringValue{Value: fn(s.Value)}, nil
		},
	}
}

func splitFn(args []eval.Value) (eval.Value, error) {
	s, ok1 := args[0].(*eval.StringValue)
	sep, ok2 := args[1].(*eval.StringValue)
	if !ok1 || !ok2 {
		return nil, errors.New("split() requires two strings")
	}
	parts := strings.Split(s.Value, sep.Value)
	elems := make([]eval.Value, len(parts))
	for i, p := range parts {
		elems[i] = &eval.StringValue{Value: p}
	}
	return &eval.ListValue{Elements: elems}, nil
}

func joinFn(args []eval.Value) (eval.Value, error) {
	sep, ok := args[0].(*eval.StringValue)
	list, ok2 := args[1].(*eval.ListValue)
	if !ok || !ok2 {
		return nil, errors.New("join() requires a string separator and a list")
	}
	parts := make([]string, len(list.Elements))
	for i, e := range list.Elements {
		parts[i] = e.String()
	}
	return &eval.StringValue{Value: strings.Join(parts, sep.Value)}, nil
}

func replaceFn(args []eval.Value) (eval.Value, error) {
	s, ok1 := args[0].(*eval.StringValue)
	old, ok2 := args[1].(*eval.StringValue)
	new, ok3 := args[2].(*eval.StringValue)
	if !ok1 || !ok2 || !ok3 {
		return nil, errors.New("replace() requires three strings")
	}
	return &eval.StringValue{Value: strings.ReplaceAll(s.Value, old.Value, new.Value)}, nil
}

func containsFn(args []eval.Value) (eval.Value, error) {
	s, ok1 := args[0].(*eval.StringValue)
	sub, ok2 := args[1].(*eval.StringValue)
	if !ok1 || !ok2 {
		return nil, errors.New("contains() requires two strings")
	}
	return eval.BoolOf(strings.Contains(s.Value, sub.Value)), nil
}

func startsWithFn(args []eval.Value) (eval.Value, error) {
	s, ok1 := args[0].(*eval.StringValue)
	prefix, ok2 := args[1].(*eval.StringValue)
	if !ok1 || !ok2 {
		return nil, errors.New("startsWith() requires two strings")
	}
	return eval.BoolOf(strings.HasPrefix(s.Value, prefix.Value)), nil
}

func endsWithFn(args []eval.Value) (eval.Value, error) {
	s, ok1 := args[0].(*eval.StringValue)
	suffix, ok2 := args[1].(*eval.StringValue)
	if !ok1 || !ok2 {
		return nil, errors.New("endsWith() requires two strings")
	}
	return eval.BoolOf(strings.HasSuffix(s.Value, suffix.Value)), nil
}

func indexOfFn(args []eval.Value) (eval.Value, error) {
	s, ok1 := args[0].(*eval.StringValue)
	sub, ok2 := args[1].(*eval.StringValue)
	if !ok1 || !ok2 {
		return nil, errors.New("indexOf() requires two strings")
	}
	return eval.NewInt(int64(strings.Index(s.Value, sub.Value))), nil
}
