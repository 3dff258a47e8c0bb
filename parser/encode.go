/*
File    : dune/parser/encode.go
*/

// Encoding between AST nodes and Dune values: the representation Quote
// produces and `eval`/`exec`/`parse@expr` consume so user code can treat
// code as data (spec §2, §4.4 "Quoting").
//
// A Symbol node becomes an objects.Symbol value, so a quoted name is the
// symbol itself. Every other node becomes a Map tagged with a "kind" string
// key naming the Go type (e.g. "Apply", "List"); the remaining keys are the
// node's fields, each itself an encoded Node (or a List of them) where the
// field holds a sub-expression. Field names are plain strings so `quoted@kind` works via
// ordinary Field access on the Map.
package parser

import (
	"fmt"

	"github.com/dune-shell/dune/lexer"
	"github.com/dune-shell/dune/objects"
)

func str(s string) *objects.String { return &objects.String{Value: s} }

func tagged(kind string, fields map[string]objects.Value) *objects.Map {
	m := objects.NewMap()
	m.Set(str("kind"), str(kind))
	for k, v := range fields {
		m.Set(str(k), v)
	}
	return m
}

func encodeList(nodes []Node) *objects.List {
	elems := make([]objects.Value, len(nodes))
	for i, n := range nodes {
		elems[i] = ToValue(n)
	}
	return &objects.List{Elements: elems}
}

func encodeNames(names []string) *objects.List {
	elems := make([]objects.Value, len(names))
	for i, n := range names {
		elems[i] = str(n)
	}
	return &objects.List{Elements: elems}
}

func encodeOptional(n Node) objects.Value {
	if n == nil {
		return objects.TheNone
	}
	return ToValue(n)
}

// ToValue encodes an AST node as a Dune value, the form Quote produces.
func ToValue(n Node) objects.Value {
	switch v := n.(type) {
	case *Integer:
		return tagged("Integer", map[string]objects.Value{"value": &objects.Int{Value: v.Value}})
	case *Float:
		return tagged("Float", map[string]objects.Value{"value": &objects.Float{Value: v.Value}})
	case *String:
		return tagged("String", map[string]objects.Value{"value": str(v.Value)})
	case *Boolean:
		return tagged("Boolean", map[string]objects.Value{"value": &objects.Bool{Value: v.Value}})
	case *None:
		return tagged("None", nil)
	case *Symbol:
		return &objects.Symbol{Name: v.Name}
	case *List:
		return tagged("List", map[string]objects.Value{"elements": encodeList(v.Elements)})
	case *Map:
		pairs := make([]objects.Value, len(v.Entries))
		for i, e := range v.Entries {
			pairs[i] = &objects.List{Elements: []objects.Value{ToValue(e.Key), ToValue(e.Value)}}
		}
		return tagged("Map", map[string]objects.Value{"entries": &objects.List{Elements: pairs}})
	case *Quote:
		return tagged("Quote", map[string]objects.Value{"expr": ToValue(v.Expr)})
	case *Apply:
		return tagged("Apply", map[string]objects.Value{"callee": ToValue(v.Callee), "args": encodeList(v.Args)})
	case *Lambda:
		return tagged("Lambda", map[string]objects.Value{"params": encodeNames(v.Params), "body": ToValue(v.Body)})
	case *Macro:
		return tagged("Macro", map[string]objects.Value{"params": encodeNames(v.Params), "body": ToValue(v.Body)})
	case *Let:
		return tagged("Let", map[string]objects.Value{
			"names": encodeNames(v.Names), "inits": encodeList(v.Inits), "body": encodeOptional(v.Body),
		})
	case *Assign:
		return tagged("Assign", map[string]objects.Value{"target": ToValue(v.Target), "expr": ToValue(v.Expr)})
	case *If:
		return tagged("If", map[string]objects.Value{
			"cond": ToValue(v.Cond), "then": ToValue(v.Then), "else": encodeOptional(v.Else),
		})
	case *For:
		return tagged("For", map[string]objects.Value{"name": str(v.Name), "iter": ToValue(v.Iter), "body": ToValue(v.Body)})
	case *While:
		return tagged("While", map[string]objects.Value{"cond": ToValue(v.Cond), "body": ToValue(v.Body)})
	case *Block:
		return tagged("Block", map[string]objects.Value{"exprs": encodeList(v.Exprs)})
	case *BinOp:
		return tagged("BinOp", map[string]objects.Value{"op": str(v.Op), "lhs": ToValue(v.Lhs), "rhs": ToValue(v.Rhs)})
	case *UnOp:
		return tagged("UnOp", map[string]objects.Value{"op": str(v.Op), "operand": ToValue(v.Operand)})
	case *Index:
		return tagged("Index", map[string]objects.Value{"container": ToValue(v.Container), "key": ToValue(v.Key)})
	case *Field:
		return tagged("Field", map[string]objects.Value{"container": ToValue(v.Container), "name": str(v.Name)})
	case *Group:
		return tagged("Group", map[string]objects.Value{"inner": ToValue(v.Inner)})
	default:
		panic(fmt.Sprintf("parser: ToValue: unhandled node type %T", n))
	}
}

func fieldString(m *objects.Map, key string) (string, error) {
	v, ok := m.Get(str(key))
	if !ok {
		return "", fmt.Errorf("missing field %q", key)
	}
	s, ok := v.(*objects.String)
	if !ok {
		return "", fmt.Errorf("field %q is not a string", key)
	}
	return s.Value, nil
}

func fieldNode(m *objects.Map, key string) (Node, error) {
	v, ok := m.Get(str(key))
	if !ok {
		return nil, fmt.Errorf("missing field %q", key)
	}
	return FromValue(v)
}

func fieldOptionalNode(m *objects.Map, key string) (Node, error) {
	v, ok := m.Get(str(key))
	if !ok || v.GetType() == objects.NoneType {
		return nil, nil
	}
	return FromValue(v)
}

func fieldNodeList(m *objects.Map, key string) ([]Node, error) {
	v, ok := m.Get(str(key))
	if !ok {
		return nil, fmt.Errorf("missing field %q", key)
	}
	l, ok := v.(*objects.List)
	if !ok {
		return nil, fmt.Errorf("field %q is not a list", key)
	}
	out := make([]Node, len(l.Elements))
	for i, e := range l.Elements {
		n, err := FromValue(e)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

func fieldNames(m *objects.Map, key string) ([]string, error) {
	v, ok := m.Get(str(key))
	if !ok {
		return nil, fmt.Errorf("missing field %q", key)
	}
	l, ok := v.(*objects.List)
	if !ok {
		return nil, fmt.Errorf("field %q is not a list", key)
	}
	out := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		s, ok := e.(*objects.String)
		if !ok {
			return nil, fmt.Errorf("field %q element %d is not a string", key, i)
		}
		out[i] = s.Value
	}
	return out, nil
}

// FromValue decodes a value produced by ToValue back into an AST node, for
// `eval`/`exec` and for macros and quoted forms built programmatically by
// user code. Decoded nodes carry a zero Span: they did not come from source
// text, so there is nothing to point a caret at.
func FromValue(v objects.Value) (Node, error) {
	if s, ok := v.(*objects.Symbol); ok {
		return &Symbol{base: withSpan(lexer.Span{}), Name: s.Name}, nil
	}
	m, ok := v.(*objects.Map)
	if !ok {
		return nil, fmt.Errorf("value of type %s is not a quoted expression", v.GetType())
	}
	kind, err := fieldString(m, "kind")
	if err != nil {
		return nil, err
	}
	var zero lexer.Span
	switch kind {
	case "Integer":
		val, _ := m.Get(str("value"))
		return &Integer{base: withSpan(zero), Value: val.(*objects.Int).Value}, nil
	case "Float":
		val, _ := m.Get(str("value"))
		return &Float{base: withSpan(zero), Value: val.(*objects.Float).Value}, nil
	case "String":
		s, err := fieldString(m, "value")
		return &String{base: withSpan(zero), Value: s}, err
	case "Boolean":
		val, _ := m.Get(str("value"))
		return &Boolean{base: withSpan(zero), Value: val.(*objects.Bool).Value}, nil
	case "None":
		return &None{base: withSpan(zero)}, nil
	case "Symbol":
		name, err := fieldString(m, "name")
		return &Symbol{base: withSpan(zero), Name: name}, err
	case "List":
		elems, err := fieldNodeList(m, "elements")
		return &List{base: withSpan(zero), Elements: elems}, err
	case "Map":
		v, ok := m.Get(str("entries"))
		if !ok {
			return nil, fmt.Errorf("missing field \"entries\"")
		}
		l := v.(*objects.List)
		entries := make([]MapEntry, len(l.Elements))
		for i, pair := range l.Elements {
			pl := pair.(*objects.List)
			key, err := FromValue(pl.Elements[0])
			if err != nil {
				return nil, err
			}
			val, err := FromValue(pl.Elements[1])
			if err != nil {
				return nil, err
			}
			entries[i] = MapEntry{Key: key, Value: val}
		}
		return &Map{base: withSpan(zero), Entries: entries}, nil
	case "Quote":
		expr, err := fieldNode(m, "expr")
		return &Quote{base: withSpan(zero), Expr: expr}, err
	case "Apply":
		callee, err := fieldNode(m, "callee")
		if err != nil {
			return nil, err
		}
		args, err := fieldNodeList(m, "args")
		return &Apply{base: withSpan(zero), Callee: callee, Args: args}, err
	case "Lambda":
		params, err := fieldNames(m, "params")
		if err != nil {
			return nil, err
		}
		body, err := fieldNode(m, "body")
		return &Lambda{base: withSpan(zero), Params: params, Body: body}, err
	case "Macro":
		params, err := fieldNames(m, "params")
		if err != nil {
			return nil, err
		}
		body, err := fieldNode(m, "body")
		return &Macro{base: withSpan(zero), Params: params, Body: body}, err
	case "Let":
		names, err := fieldNames(m, "names")
		if err != nil {
			return nil, err
		}
		inits, err := fieldNodeList(m, "inits")
		if err != nil {
			return nil, err
		}
		body, err := fieldOptionalNode(m, "body")
		return &Let{base: withSpan(zero), Names: names, Inits: inits, Body: body}, err
	case "Assign":
		target, err := fieldNode(m, "target")
		if err != nil {
			return nil, err
		}
		expr, err := fieldNode(m, "expr")
		return &Assign{base: withSpan(zero), Target: target, Expr: expr}, err
	case "If":
		cond, err := fieldNode(m, "cond")
		if err != nil {
			return nil, err
		}
		then, err := fieldNode(m, "then")
		if err != nil {
			return nil, err
		}
		elseNode, err := fieldOptionalNode(m, "else")
		return &If{base: withSpan(zero), Cond: cond, Then: then, Else: elseNode}, err
	case "For":
		name, err := fieldString(m, "name")
		if err != nil {
			return nil, err
		}
		iter, err := fieldNode(m, "iter")
		if err != nil {
			return nil, err
		}
		body, err := fieldNode(m, "body")
		return &For{base: withSpan(zero), Name: name, Iter: iter, Body: body}, err
	case "While":
		cond, err := fieldNode(m, "cond")
		if err != nil {
			return nil, err
		}
		body, err := fieldNode(m, "body")
		return &While{base: withSpan(zero), Cond: cond, Body: body}, err
	case "Block":
		exprs, err := fieldNodeList(m, "exprs")
		return &Block{base: withSpan(zero), Exprs: exprs}, err
	case "BinOp":
		op, err := fieldString(m, "op")
		if err != nil {
			return nil, err
		}
		lhs, err := fieldNode(m, "lhs")
		if err != nil {
			return nil, err
		}
		rhs, err := fieldNode(m, "rhs")
		return &BinOp{base: withSpan(zero), Op: op, Lhs: lhs, Rhs: rhs}, err
	case "UnOp":
		op, err := fieldString(m, "op")
		if err != nil {
			return nil, err
		}
		operand, err := fieldNode(m, "operand")
		return &UnOp{base: withSpan(zero), Op: op, Operand: operand}, err
	case "Index":
		container, err := fieldNode(m, "container")
		if err != nil {
			return nil, err
		}
		key, err := fieldNode(m, "key")
		return &Index{base: withSpan(zero), Container: container, Key: key}, err
	case "Field":
		container, err := fieldNode(m, "container")
		if err != nil {
			return nil, err
		}
		name, err := fieldString(m, "name")
		return &Field{base: withSpan(zero), Container: container, Name: name}, err
	case "Group":
		inner, err := fieldNode(m, "inner")
		return &Group{base: withSpan(zero), Inner: inner}, err
	default:
		return nil, fmt.Errorf("unknown quoted node kind %q", kind)
	}
}
