/*
File    : dune/objects/objects.go
*/

// Package objects defines Dune's runtime value model: the tagged union of
// values an expression can evaluate to, plus the structural equality,
// ordering, and truthiness rules the evaluator and builtins share.
//
// Lambda, Macro, and Builtin are not defined here — they close over an
// Environment (package scope) and, for Builtin, an evaluator callback, which
// would make this package import scope and scope import objects. They live
// in package function, each implementing the Value interface declared here.
package objects

import (
	"fmt"
	"sort"
	"strings"
)

// Type identifies the runtime kind of a Value.
type Type string

const (
	IntType     Type = "int"
	FloatType   Type = "float"
	StringType  Type = "string"
	BoolType    Type = "bool"
	NoneType    Type = "none"
	SymbolType  Type = "symbol"
	ListType    Type = "list"
	MapType     Type = "map"
	LambdaType  Type = "lambda"
	MacroType   Type = "macro"
	BuiltinType Type = "builtin"
)

// Value is the interface every Dune runtime value implements.
type Value interface {
	// GetType reports the value's runtime Type, used for dispatch and error
	// messages.
	GetType() Type
	// ToString renders the value as plain text, the form command arguments
	// and string-taking builtins use: quotes stripped from strings, no type
	// annotation.
	ToString() string
	// ToObject renders the value the way the REPL prints a result: quoted
	// strings, bracketed collections, enough detail to read back the value's
	// shape.
	ToObject() string
}

// Int is a 64-bit signed integer value.
type Int struct{ Value int64 }

func (i *Int) GetType() Type    { return IntType }
func (i *Int) ToString() string { return fmt.Sprintf("%d", i.Value) }
func (i *Int) ToObject() string { return i.ToString() }

// Float is a 64-bit floating point value.
type Float struct{ Value float64 }

func (f *Float) GetType() Type { return FloatType }
func (f *Float) ToString() string {
	s := fmt.Sprintf("%g", f.Value)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
func (f *Float) ToObject() string { return f.ToString() }

// String is a text value produced by a double- or single-quoted literal.
type String struct{ Value string }

func (s *String) GetType() Type    { return StringType }
func (s *String) ToString() string { return s.Value }
func (s *String) ToObject() string { return fmt.Sprintf("%q", s.Value) }

// Bool is a boolean value.
type Bool struct{ Value bool }

func (b *Bool) GetType() Type    { return BoolType }
func (b *Bool) ToString() string { return fmt.Sprintf("%t", b.Value) }
func (b *Bool) ToObject() string { return b.ToString() }

// None is the single absent-value marker, shared as a package-level
// singleton by callers that don't need a distinct instance.
type None struct{}

func (n *None) GetType() Type    { return NoneType }
func (n *None) ToString() string { return "none" }
func (n *None) ToObject() string { return "none" }

// TheNone is the canonical None instance; Equal and the evaluator compare by
// type, not identity, so sharing it is an optimization, not a requirement.
var TheNone = &None{}

// Symbol carries an identifier's original lexical text at runtime. A bare
// Symbol value resolved as the callee of an Apply triggers command dispatch
// (see package eval); a quoted Symbol is ordinary data.
type Symbol struct{ Name string }

func (s *Symbol) GetType() Type    { return SymbolType }
func (s *Symbol) ToString() string { return s.Name }
func (s *Symbol) ToObject() string { return "'" + s.Name }

// List is a mutable, ordered, heterogeneous sequence.
type List struct{ Elements []Value }

func (l *List) GetType() Type { return ListType }
func (l *List) ToString() string {
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		parts[i] = e.ToString()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (l *List) ToObject() string {
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		parts[i] = e.ToObject()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Map is an ordered mapping keyed by any hashable Value (Int, integral
// Float, String, Bool, Symbol, None). Iteration follows insertion order; a later Set of an
// existing key updates the value in place without moving it.
type Map struct {
	keys   []string // canonical key strings, in insertion order
	lookup map[string]Value
	orig   map[string]Value // canonical key -> original key Value, for iteration
}

// NewMap returns an empty Map ready for Set.
func NewMap() *Map {
	return &Map{lookup: map[string]Value{}, orig: map[string]Value{}}
}

func (m *Map) GetType() Type { return MapType }

// HashKey returns the canonical string a Value hashes to as a Map key, and
// whether the value is hashable at all (Lists, Maps, callables, and Floats
// with a fractional part are not). An integral Float hashes to the same key
// as the equal Int.
func HashKey(v Value) (string, bool) {
	switch vv := v.(type) {
	case *Int:
		return fmt.Sprintf("i:%d", vv.Value), true
	case *Float:
		return fmt.Sprintf("i:%d", int64(vv.Value)), vv.Value == float64(int64(vv.Value))
	case *String:
		return "s:" + vv.Value, true
	case *Symbol:
		return "y:" + vv.Name, true
	case *Bool:
		return fmt.Sprintf("b:%t", vv.Value), true
	case *None:
		return "n:", true
	default:
		return "", false
	}
}

// Set inserts or updates key -> value, preserving insertion order for new
// keys. It reports false if key is not hashable.
func (m *Map) Set(key, value Value) bool {
	hk, ok := HashKey(key)
	if !ok {
		return false
	}
	if _, exists := m.lookup[hk]; !exists {
		m.keys = append(m.keys, hk)
	}
	m.lookup[hk] = value
	m.orig[hk] = key
	return true
}

// Get looks up key, reporting whether it was present.
func (m *Map) Get(key Value) (Value, bool) {
	hk, ok := HashKey(key)
	if !ok {
		return nil, false
	}
	v, found := m.lookup[hk]
	return v, found
}

// Delete removes key if present, reporting whether it was found.
func (m *Map) Delete(key Value) bool {
	hk, ok := HashKey(key)
	if !ok {
		return false
	}
	if _, found := m.lookup[hk]; !found {
		return false
	}
	delete(m.lookup, hk)
	delete(m.orig, hk)
	for i, k := range m.keys {
		if k == hk {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	return true
}

// Len reports the number of entries.
func (m *Map) Len() int { return len(m.keys) }

// Keys returns the original key Values in insertion order.
func (m *Map) Keys() []Value {
	out := make([]Value, len(m.keys))
	for i, hk := range m.keys {
		out[i] = m.orig[hk]
	}
	return out
}

// Each calls fn for every entry in insertion order.
func (m *Map) Each(fn func(key, value Value)) {
	for _, hk := range m.keys {
		fn(m.orig[hk], m.lookup[hk])
	}
}

func (m *Map) ToString() string {
	parts := make([]string, 0, len(m.keys))
	m.Each(func(k, v Value) {
		parts = append(parts, k.ToString()+": "+v.ToString())
	})
	return "{" + strings.Join(parts, ", ") + "}"
}

func (m *Map) ToObject() string {
	parts := make([]string, 0, len(m.keys))
	m.Each(func(k, v Value) {
		parts = append(parts, k.ToObject()+": "+v.ToObject())
	})
	return "{" + strings.Join(parts, ", ") + "}"
}

// Tag returns the string held under the conventional "__tag" key, used by
// std modules (e.g. fs file handles) to mark a Map as a specific kind of
// opaque handle without adding a new Value variant. Returns "" if absent.
func (m *Map) Tag() string {
	if v, ok := m.Get(&String{Value: "__tag"}); ok {
		if s, ok := v.(*String); ok {
			return s.Value
		}
	}
	return ""
}

// Truthy implements §4.3's truthiness rule: false, none, zero, and empty
// collections are false; everything else is true.
func Truthy(v Value) bool {
	switch vv := v.(type) {
	case *Bool:
		return vv.Value
	case *None:
		return false
	case *Int:
		return vv.Value != 0
	case *Float:
		return vv.Value != 0
	case *String:
		return vv.Value != ""
	case *List:
		return len(vv.Elements) != 0
	case *Map:
		return vv.Len() != 0
	default:
		return true
	}
}

// Equal implements structural equality: Int and Float compare numerically
// across types, Symbol and String never compare equal to each other even
// with the same text, lists compare element-wise, and maps compare by
// content ignoring order.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case *Int:
		switch bv := b.(type) {
		case *Int:
			return av.Value == bv.Value
		case *Float:
			return float64(av.Value) == bv.Value
		}
		return false
	case *Float:
		switch bv := b.(type) {
		case *Int:
			return av.Value == float64(bv.Value)
		case *Float:
			return av.Value == bv.Value
		}
		return false
	case *String:
		bv, ok := b.(*String)
		return ok && av.Value == bv.Value
	case *Bool:
		bv, ok := b.(*Bool)
		return ok && av.Value == bv.Value
	case *None:
		_, ok := b.(*None)
		return ok
	case *Symbol:
		bv, ok := b.(*Symbol)
		return ok && av.Name == bv.Name
	case *List:
		bv, ok := b.(*List)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !Equal(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case *Map:
		bv, ok := b.(*Map)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		equal := true
		av.Each(func(k, v Value) {
			ov, found := bv.Get(k)
			if !found || !Equal(v, ov) {
				equal = false
			}
		})
		return equal
	default:
		return a == b
	}
}

// Compare orders a and b for <, <=, >, >=. Numbers compare across Int/Float,
// strings compare lexicographically, lists compare lexicographically by
// element; any other pairing is unorderable.
func Compare(a, b Value) (int, bool) {
	switch av := a.(type) {
	case *Int:
		switch bv := b.(type) {
		case *Int:
			return cmpInt64(av.Value, bv.Value), true
		case *Float:
			return cmpFloat64(float64(av.Value), bv.Value), true
		}
	case *Float:
		switch bv := b.(type) {
		case *Int:
			return cmpFloat64(av.Value, float64(bv.Value)), true
		case *Float:
			return cmpFloat64(av.Value, bv.Value), true
		}
	case *String:
		if bv, ok := b.(*String); ok {
			return strings.Compare(av.Value, bv.Value), true
		}
	case *List:
		if bv, ok := b.(*List); ok {
			n := len(av.Elements)
			if len(bv.Elements) < n {
				n = len(bv.Elements)
			}
			for i := 0; i < n; i++ {
				if c, ok := Compare(av.Elements[i], bv.Elements[i]); ok && c != 0 {
					return c, true
				} else if !ok {
					return 0, false
				}
			}
			return cmpInt64(int64(len(av.Elements)), int64(len(bv.Elements))), true
		}
	}
	return 0, false
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpFloat64(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// SortedKeys is a small helper used by std modules that need a
// deterministic, alphabetic traversal of a Map's string keys (e.g. `keys`
// builtins that sort for display) distinct from the insertion-order Each.
func SortedKeys(m *Map) []Value {
	keys := m.Keys()
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].ToString() < keys[j].ToString()
	})
	return keys
}
