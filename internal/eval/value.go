// Package eval implements the tree-walking evaluator: it walks an
// internal/ast.Program against a lexically-scoped Environment and produces
// internal/eval Values, the dynamic runtime type system described by
// spec.md §3.1.
package eval

import (
	"fmt"
	"math/big"
	"sort"
	"strconv"
	"strings"

	"github.com/ingStudiosOfficial/Lunite/internal/ast"
)

// Value is any runtime value a Lunite expression can produce. All runtime
// values must implement this interface; the interface intentionally avoids
// `any` so the evaluator stays type-safe at its boundaries.
type Value interface {
	// Type returns the built-in type name reported by Lunite's `type()`
	// function and matched by the `is` operator.
	Type() string
	// String returns the value's display form, as used by `out`/`str`.
	String() string
}

// NullValue is the single `null` value.
type NullValue struct{}

func (NullValue) Type() string   { return "null" }
func (NullValue) String() string { return "null" }

// Null is the shared singleton null value.
var Null = NullValue{}

// BoolValue is `true`/`false`.
type BoolValue struct{ Value bool }

func (b *BoolValue) Type() string { return "bool" }
func (b *BoolValue) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

// True and False are the shared singleton booleans.
var (
	True  = &BoolValue{Value: true}
	False = &BoolValue{Value: false}
)

// BoolOf returns the shared True/False singleton for b.
func BoolOf(b bool) *BoolValue {
	if b {
		return True
	}
	return False
}

// IntValue is an arbitrary-precision integer (spec.md §3.1: "Int
// (arbitrary-precision or 64-bit)"). Small values stay on Small for speed;
// Big is populated only once an operation would overflow int64, at which
// point Small is ignored and Big is authoritative.
type IntValue struct {
	Small int64
	Big   *big.Int // nil unless this value is wider than int64
}

func NewInt(v int64) *IntValue        { return &IntValue{Small: v} }
func NewBigInt(v *big.Int) *IntValue  { return &IntValue{Big: v} }
func (i *IntValue) Type() string      { return "int" }
func (i *IntValue) IsBig() bool       { return i.Big != nil }
func (i *IntValue) BigValue() *big.Int {
	if i.Big != nil {
		return i.Big
	}
	return big.NewInt(i.Small)
}
func (i *IntValue) String() string {
	if i.Big != nil {
		return i.Big.String()
	}
	return strconv.FormatInt(i.Small, 10)
}

// BitValue is a 0/1-constrained integer (spec.md §3.1: "Bit ⊂ Int").
type BitValue struct{ Value int }

func (b *BitValue) Type() string   { return "bit" }
func (b *BitValue) String() string { return strconv.Itoa(b.Value) }

// ByteValue is a 0-255-constrained integer (spec.md §3.1: "Byte ⊂ Int").
type ByteValue struct{ Value byte }

func (b *ByteValue) Type() string   { return "byte" }
func (b *ByteValue) String() string { return strconv.Itoa(int(b.Value)) }

// FloatValue is a binary64 float.
type FloatValue struct{ Value float64 }

func (f *FloatValue) Type() string   { return "float" }
func (f *FloatValue) String() string { return strconv.FormatFloat(f.Value, 'g', -1, 64) }

// StringValue is a UTF-8 string.
type StringValue struct{ Value string }

func (s *StringValue) Type() string   { return "str" }
func (s *StringValue) String() string { return s.Value }

// CharValue is a single user-visible character (spec.md §3.1: "Char ⊂
// String for display but distinguished by type()/is").
type CharValue struct{ Value rune }

func (c *CharValue) Type() string   { return "char" }
func (c *CharValue) String() string { return string(c.Value) }

// ListValue is an ordered, mutable sequence.
type ListValue struct{ Elements []Value }

func (l *ListValue) Type() string { return "list" }
func (l *ListValue) String() string {
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		parts[i] = displayOf(e)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// DictValue is an insertion-ordered mapping with hashable keys.
type DictValue struct {
	keys   []string // insertion order, each a HashKey
	values map[string]Value
	disp   map[string]Value // original key value, for iteration/display
}

func NewDict() *DictValue {
	return &DictValue{values: make(map[string]Value), disp: make(map[string]Value)}
}

func (d *DictValue) Type() string { return "dict" }

func (d *DictValue) Get(key Value) (Value, bool) {
	v, ok := d.values[HashKey(key)]
	return v, ok
}

func (d *DictValue) Set(key, value Value) {
	hk := HashKey(key)
	if _, exists := d.values[hk]; !exists {
		d.keys = append(d.keys, hk)
	}
	d.values[hk] = value
	d.disp[hk] = key
}

func (d *DictValue) Delete(key Value) bool {
	hk := HashKey(key)
	if _, ok := d.values[hk]; !ok {
		return false
	}
	delete(d.values, hk)
	delete(d.disp, hk)
	for i, k := range d.keys {
		if k == hk {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)
			break
		}
	}
	return true
}

func (d *DictValue) Len() int { return len(d.keys) }

// Range visits entries in insertion order.
func (d *DictValue) Range(fn func(key, value Value)) {
	for _, hk := range d.keys {
		fn(d.disp[hk], d.values[hk])
	}
}

func (d *DictValue) String() string {
	parts := make([]string, 0, len(d.keys))
	d.Range(func(k, v Value) {
		parts = append(parts, fmt.Sprintf("%s: %s", displayOf(k), displayOf(v)))
	})
	return "{" + strings.Join(parts, ", ") + "}"
}

// SetValue is an unordered collection of unique, hashable values.
type SetValue struct {
	order []string
	items map[string]Value
}

func NewSet() *SetValue { return &SetValue{items: make(map[string]Value)} }

func (s *SetValue) Type() string { return "set" }

func (s *SetValue) Add(v Value) {
	hk := HashKey(v)
	if _, ok := s.items[hk]; ok {
		return
	}
	s.items[hk] = v
	s.order = append(s.order, hk)
}

func (s *SetValue) Has(v Value) bool {
	_, ok := s.items[HashKey(v)]
	return ok
}

func (s *SetValue) Len() int { return len(s.order) }

func (s *SetValue) Range(fn func(Value)) {
	for _, hk := range s.order {
		fn(s.items[hk])
	}
}

func (s *SetValue) String() string {
	parts := make([]string, 0, len(s.order))
	s.Range(func(v Value) { parts = append(parts, displayOf(v)) })
	sort.Strings(parts)
	return "{" + strings.Join(parts, ", ") + "}"
}

// TupleValue is an ordered, immutable sequence.
type TupleValue struct{ Elements []Value }

func (t *TupleValue) Type() string { return "tuple" }
func (t *TupleValue) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = displayOf(e)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// FunctionValue is a user-defined function or lambda. It carries its
// defining source file (spec.md §3.1) for diagnostics, and closes only over
// the global environment (spec.md §9 "closures over global only").
type FunctionValue struct {
	Name       string
	Params     []ast.Param
	Body       *ast.Block
	Globals    *Environment
	SourceFile string
}

func (f *FunctionValue) Type() string { return "function" }
func (f *FunctionValue) String() string {
	if f.Name == "" {
		return "<lambda>"
	}
	return "<function " + f.Name + ">"
}

// ClassValue is a class definition plus its resolved member table (spec.md
// §3.5): fields are evaluated defaults, methods are the unbound FunctionDef
// nodes, resolved once per class by walking the superclass chain.
type ClassValue struct {
	Name       string
	Superclass *ClassValue // nil if none
	Fields     map[string]Value
	FieldOrder []string
	Methods    map[string]*ast.FunctionDef
	SourceFile string
}

func (c *ClassValue) Type() string   { return "class" }
func (c *ClassValue) String() string { return "<class " + c.Name + ">" }

// FindMethod looks up name among this class's resolved methods (the
// resolved table already folds in inherited methods overlaid by overrides,
// so no walk is needed here).
func (c *ClassValue) FindMethod(name string) (*ast.FunctionDef, bool) {
	m, ok := c.Methods[name]
	return m, ok
}

// InstanceValue is a live object: its own copy of the resolved fields at
// construction time, sharing the methods table by reference with its class
// (spec.md §3.5).
type InstanceValue struct {
	Class  *ClassValue
	Fields map[string]Value
}

func NewInstance(class *ClassValue) *InstanceValue {
	fields := make(map[string]Value, len(class.Fields))
	for k, v := range class.Fields {
		fields[k] = v
	}
	return &InstanceValue{Class: class, Fields: fields}
}

func (i *InstanceValue) Type() string   { return i.Class.Name }
func (i *InstanceValue) String() string { return "<" + i.Class.Name + " instance>" }

// HostFunc is a Go function backing a HostCallable value.
type HostFunc func(args []Value) (Value, error)

// HostCallable is a function with declared arity and a host (Go)
// implementation (spec.md §3.1/§6.3). Arity -1 means variadic.
type HostCallable struct {
	Name  string
	Arity int
	Fn    HostFunc
}

func (h *HostCallable) Type() string   { return "host_function" }
func (h *HostCallable) String() string { return "<host function " + h.Name + ">" }

// HostModule is an opaque handle to an imported external (host) module: a
// named, identity-bearing bag of members resolved by name (spec.md §3.1).
// Identity is a google/uuid handle, matching the way imported modules are
// otherwise indistinguishable structurally once bound under an alias.
type HostModule struct {
	ID      string // uuid string
	Name    string
	Members map[string]Value
}

func (h *HostModule) Type() string   { return "host_module" }
func (h *HostModule) String() string { return "<host module " + h.Name + ">" }

// displayOf renders a value the way it should appear nested inside a
// container's own String(), quoting strings/chars so containers are
// unambiguous (mirrors Python's repr-inside-container convention, which the
// original source follows for list/dict/set/tuple display).
func displayOf(v Value) string {
	switch val := v.(type) {
	case *StringValue:
		return strconv.Quote(val.Value)
	case *CharValue:
		return strconv.QuoteRune(val.Value)
	default:
		return v.String()
	}
}

// HashKey returns a stable string key for use as a Go map key, used to back
// both DictValue and SetValue. Only the value kinds spec.md calls
// "hashable" (§3.1 Dict: "keys hashable") are expected here; containers and
// other non-hashable kinds hash by their display form, which is sufficient
// for this interpreter's single-threaded, non-mutating-key usage.
func HashKey(v Value) string {
	switch val := v.(type) {
	case *StringValue:
		return "s:" + val.Value
	case *CharValue:
		return "c:" + string(val.Value)
	case *IntValue:
		return "i:" + val.String()
	case *BitValue:
		return "i:" + strconv.Itoa(val.Value)
	case *ByteValue:
		return "i:" + strconv.Itoa(int(val.Value))
	case *FloatValue:
		return "f:" + strconv.FormatFloat(val.Value, 'g', -1, 64)
	case *BoolValue:
		return "b:" + strconv.FormatBool(val.Value)
	case NullValue:
		return "n:"
	default:
		return "o:" + v.String()
	}
}
