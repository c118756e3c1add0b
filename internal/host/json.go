package host

import (
	"errors"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/ingStudiosOfficial/Lunite/internal/eval"
)

// newJSONModule grounds the original source's `json` import (speedtest.py
// shells out to json.dumps/loads for its result payloads) in
// tidwall/gjson and tidwall/sjson rather than a hand-rolled encoder: parse
// is a gjson walk into Lunite Values, dump is a sequence of sjson.Set calls
// driven by the same walk in reverse.
func newJSONModule() *eval.HostModule {
	m := newModule("json")
	m.Members["parse"] = &eval.HostCallable{Name: "parse", Arity: 1, Fn: jsonParseFn}
	m.Members["stringify"] = &eval.HostCallable{Name: "stringify", Arity: 1, Fn: jsonDumpFn}
	m.Members["get"] = &eval.HostCallable{Name: "get", Arity: 2, Fn: jsonGetFn}
	m.Members["set"] = &eval.HostCallable{Name: "set", Arity: 3, Fn: jsonSetFn}
	return m
}

// jsonSetFn exposes sjson's path-addressed write directly, letting a caller
// patch one field of a JSON document without a full parse/rebuild round
// trip (mirrors the json.set(s, path, value) surface).
func jsonSetFn(args []eval.Value) (eval.Value, error) {
	s, ok1 := args[0].(*eval.StringValue)
	path, ok2 := args[1].(*eval.StringValue)
	if !ok1 || !ok2 {
		return nil, errors.New("set() requires a JSON string and a path string")
	}
	frag, err := valueToJSON(args[2])
	if err != nil {
		return nil, err
	}
	out, err := sjson.SetRaw(s.Value, path.Value, frag)
	if err != nil {
		return nil, err
	}
	return &eval.StringValue{Value: out}, nil
}

func jsonParseFn(args []eval.Value) (eval.Value, error) {
	s, ok := args[0].(*eval.StringValue)
	if !ok {
		return nil, errors.New("parse() requires a string")
	}
	if !gjson.Valid(s.Value) {
		return nil, errors.New("parse() received invalid JSON")
	}
	return gjsonToValue(gjson.Parse(s.Value)), nil
}

// jsonGetFn looks up a gjson path expression directly, avoiding a full
// parse when the caller only wants one field out of a large payload.
func jsonGetFn(args []eval.Value) (eval.Value, error) {
	s, ok1 := args[0].(*eval.StringValue)
	path, ok2 := args[1].(*eval.StringValue)
	if !ok1 || !ok2 {
		return nil, errors.New("get() requires a JSON string and a path string")
	}
	res := gjson.Get(s.Value, path.Value)
	if !res.Exists() {
		return eval.Null, nil
	}
	return gjsonToValue(res), nil
}

func gjsonToValue(res gjson.Result) eval.Value {
	switch res.Type {
	case gjson.Null:
		return eval.Null
	case gjson.False:
		return eval.False
	case gjson.True:
		return eval.True
	case gjson.Number:
		if res.Num == float64(int64(res.Num)) {
			return eval.NewInt(int64(res.Num))
		}
		return &eval.FloatValue{Value: res.Num}
	case gjson.String:
		return &eval.StringValue{Value: res.Str}
	case gjson.JSON:
		if res.IsArray() {
			var elems []eval.Value
			res.ForEach(func(_, v gjson.Result) bool {
				elems = append(elems, gjsonToValue(v))
				return true
			})
			return &eval.ListValue{Elements: elems}
		}
		d := eval.NewDict()
		res.ForEach(func(k, v gjson.Result) bool {
			d.Set(&eval.StringValue{Value: k.String()}, gjsonToValue(v))
			return true
		})
		return d
	default:
		return eval.Null
	}
}

func jsonDumpFn(args []eval.Value) (eval.Value, error) {
	out, err := valueToJSON(args[0])
	if err != nil {
		return nil, err
	}
	return &eval.StringValue{Value: out}, nil
}

// valueToJSON builds up each JSON fragment with sjson.Set/SetRaw calls,
// mirroring the way sjson itself is meant to be used incrementally rather
// than via a single marshal pass.
func valueToJSON(v eval.Value) (string, error) {
	switch val := v.(type) {
	case eval.NullValue:
		return "null", nil
	case *eval.BoolValue:
		return boolLit(val.Value), nil
	case *eval.IntValue:
		return val.String(), nil
	case *eval.FloatValue:
		return val.String(), nil
	case *eval.StringValue:
		raw, err := sjson.Set("{}", "v", val.Value)
		if err != nil {
			return "", err
		}
		return gjson.Get(raw, "v").Raw, nil
	case *eval.CharValue:
		raw, err := sjson.Set("{}", "v", val.String())
		if err != nil {
			return "", err
		}
		return gjson.Get(raw, "v").Raw, nil
	case *eval.ListValue:
		arr := "[]"
		var err error
		for _, e := range val.Elements {
			frag, ferr := valueToJSON(e)
			if ferr != nil {
				return "", ferr
			}
			// sjson's "-1" path means "append to this array".
			arr, err = sjson.SetRaw(arr, "-1", frag)
			if err != nil {
				return "", err
			}
		}
		return arr, nil
	case *eval.DictValue:
		obj := "{}"
		var err error
		val.Range(func(k, fv eval.Value) {
			if err != nil {
				return
			}
			frag, ferr := valueToJSON(fv)
			if ferr != nil {
				err = ferr
				return
			}
			obj, err = sjson.SetRaw(obj, k.String(), frag)
		})
		if err != nil {
			return "", err
		}
		return obj, nil
	default:
		return "", errors.New("dump() cannot serialize a " + v.Type())
	}
}

func boolLit(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

