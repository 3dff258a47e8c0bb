/*
File    : dune/eval/access.go
*/
package eval

import (
	"github.com/dune-shell/dune/errors"
	"github.com/dune-shell/dune/objects"
	"github.com/dune-shell/dune/parser"
	"github.com/dune-shell/dune/scope"
)

// evalIndex implements `container[key]`: list subscript by integer index,
// map lookup by any hashable key, or string subscript by rune index.
func (e *Evaluator) evalIndex(n *parser.Index, env *scope.Environment) (objects.Value, error) {
	container, err := e.Eval(n.Container, env)
	if err != nil {
		return nil, err
	}
	key, err := e.Eval(n.Key, env)
	if err != nil {
		return nil, err
	}
	switch c := container.(type) {
	case *objects.List:
		idx, ok := key.(*objects.Int)
		if !ok {
			return nil, errors.TypeMismatch("[]", []string{string(key.GetType())}, n.Span())
		}
		i := int(idx.Value)
		if i < 0 || i >= len(c.Elements) {
			return nil, errors.IndexOutOfRange(len(c.Elements), i, n.Span())
		}
		return c.Elements[i], nil
	case *objects.String:
		idx, ok := key.(*objects.Int)
		if !ok {
			return nil, errors.TypeMismatch("[]", []string{string(key.GetType())}, n.Span())
		}
		runes := []rune(c.Value)
		i := int(idx.Value)
		if i < 0 || i >= len(runes) {
			return nil, errors.IndexOutOfRange(len(runes), i, n.Span())
		}
		return &objects.String{Value: string(runes[i])}, nil
	case *objects.Map:
		v, ok := c.Get(key)
		if !ok {
			return nil, errors.KeyNotFound(key.ToString(), n.Span())
		}
		return v, nil
	default:
		return nil, errors.TypeMismatch("[]", []string{string(container.GetType())}, n.Span())
	}
}

// evalField implements `a@b`: namespaced member access. A Map looks up its
// field as a string key (this is how builtin modules expose members, e.g.
// `fmt@bold`, and how `fs@open` handles expose theirs); nothing else
// supports it.
func (e *Evaluator) evalField(n *parser.Field, env *scope.Environment) (objects.Value, error) {
	container, err := e.Eval(n.Container, env)
	if err != nil {
		return nil, err
	}
	m, ok := container.(*objects.Map)
	if !ok {
		return nil, errors.TypeMismatch("@", []string{string(container.GetType())}, n.Span())
	}
	v, ok := m.Get(&objects.String{Value: n.Name})
	if !ok {
		return nil, errors.KeyNotFound(n.Name, n.Span())
	}
	return v, nil
}
