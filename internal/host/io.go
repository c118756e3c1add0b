package host

import (
	"errors"
	"os"

	"github.com/ingStudiosOfficial/Lunite/internal/eval"
)

// newIOModule grounds the original source's `os`/builtin file-handling
// imports in a small read/write/exists surface over os.ReadFile/WriteFile.
func newIOModule() *eval.HostModule {
	m := newModule("io")
	m.Members["read_file"] = &eval.HostCallable{Name: "read_file", Arity: 1, Fn: ioReadFileFn}
	m.Members["write_file"] = &eval.HostCallable{Name: "write_file", Arity: 2, Fn: ioWriteFileFn}
	m.Members["append_file"] = &eval.HostCallable{Name: "append_file", Arity: 2, Fn: ioAppendFileFn}
	m.Members["exists"] = &eval.HostCallable{Name: "exists", Arity: 1, Fn: ioExistsFn}
	m.Members["remove"] = &eval.HostCallable{Name: "remove", Arity: 1, Fn: ioRemoveFn}
	m.Members["env"] = &eval.HostCallable{Name: "env", Arity: 1, Fn: ioEnvFn}
	m.Members["args"] = &eval.HostCallable{Name: "args", Arity: 0, Fn: ioArgsFn}
	return m
}

func ioEnvFn(args []eval.Value) (eval.Value, error) {
	name, ok := args[0].(*eval.StringValue)
	if !ok {
		return nil, errors.New("env() requires a variable name string")
	}
	return &eval.StringValue{Value: os.Getenv(name.Value)}, nil
}

// ioArgsFn exposes the process's argv tail (argv[1:]), matching the
// original source's use of sys.argv for CLI invocation.
func ioArgsFn(args []eval.Value) (eval.Value, error) {
	elems := make([]eval.Value, 0, len(os.Args)-1)
	for _, a := range os.Args[1:] {
		elems = append(elems, &eval.StringValue{Value: a})
	}
	return &eval.ListValue{Elements: elems}, nil
}

func ioReadFileFn(args []eval.Value) (eval.Value, error) {
	path, ok := args[0].(*eval.StringValue)
	if !ok {
		return nil, errors.New("read_file() requires a path string")
	}
	data, err := os.ReadFile(path.Value)
	if err != nil {
		return nil, err
	}
	return &eval.StringValue{Value: string(data)}, nil
}

func ioWriteFileFn(args []eval.Value) (eval.Value, error) {
	path, ok1 := args[0].(*eval.StringValue)
	content, ok2 := args[1].(*eval.StringValue)
	if !ok1 || !ok2 {
		return nil, errors.New("write_file() requires a path and content string")
	}
	if err := os.WriteFile(path.Value, []byte(content.Value), 0o644); err != nil {
		return nil, err
	}
	return eval.Null, nil
}

func ioAppendFileFn(args []eval.Value) (eval.Value, error) {
	path, ok1 := args[0].(*eval.StringValue)
	content, ok2 := args[1].(*eval.StringValue)
	if !ok1 || !ok2 {
		return nil, errors.New("append_file() requires a path and content string")
	}
	f, err := os.OpenFile(path.Value, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if _, err := f.WriteString(content.Value); err != nil {
		return nil, err
	}
	return eval.Null, nil
}

func ioExistsFn(args []eval.Value) (eval.Value, error) {
	path, ok := args[0].(*eval.StringValue)
	if !ok {
		return nil, errors.New("exists() requires a path string")
	}
	_, err := os.Stat(path.Value)
	return eval.BoolOf(err == nil), nil
}

func ioRemoveFn(args []eval.Value) (eval.Value, error) {
	path, ok := args[0].(*eval.StringValue)
	if !ok {
		return nil, errors.New("remove() requires a path string")
	}
	if err := os.Remove(path.Value); err != nil {
		return nil, err
	}
	return eval.Null, nil
}
