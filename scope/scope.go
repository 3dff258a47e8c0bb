/*
File    : dune/scope/scope.go
*/

// Package scope implements Dune's lexically-scoped environment: an ordered
// mapping from name to value with a parent pointer, plus the copy-on-write
// snapshot closures need (§5, §9 "Environment lifetimes with closures").
package scope

import "github.com/dune-shell/dune/objects"

// Environment is a single lexical frame: its own bindings plus a pointer to
// the enclosing frame. The root environment (Parent == nil) holds the
// builtin modules and primitive functions.
type Environment struct {
	vars   map[string]objects.Value
	order  []string // insertion order, for environments that enumerate bindings (e.g. tab completion)
	Parent *Environment
}

// New creates an empty Environment with the given parent, or a root
// environment when parent is nil.
func New(parent *Environment) *Environment {
	return &Environment{vars: make(map[string]objects.Value), Parent: parent}
}

// Lookup searches this frame and then each parent in turn, returning the
// first binding found.
func (e *Environment) Lookup(name string) (objects.Value, bool) {
	if v, ok := e.vars[name]; ok {
		return v, true
	}
	if e.Parent != nil {
		return e.Parent.Lookup(name)
	}
	return nil, false
}

// Let binds name to value in this frame only, shadowing any outer binding
// of the same name and overwriting a prior binding in this frame.
func (e *Environment) Let(name string, value objects.Value) {
	if _, exists := e.vars[name]; !exists {
		e.order = append(e.order, name)
	}
	e.vars[name] = value
}

// Assign implements `=`: it walks the frame chain for an existing binding
// and updates it in place. If no binding exists anywhere in the chain, it
// creates one in this frame (the frame where the assignment occurred).
func (e *Environment) Assign(name string, value objects.Value) {
	for frame := e; frame != nil; frame = frame.Parent {
		if _, ok := frame.vars[name]; ok {
			frame.vars[name] = value
			return
		}
	}
	e.Let(name, value)
}

// Names returns the names bound directly in this frame, in insertion order.
func (e *Environment) Names() []string {
	out := make([]string, len(e.order))
	copy(out, e.order)
	return out
}

// Copy returns a shallow copy of this frame: a new frame with the same
// parent and a duplicate of this frame's own bindings, independent of the
// original from that point on. A Lambda or Macro value captures Copy() of
// its defining environment, not the live frame, so later `let`s in that
// frame are invisible to the closure (§8 "Lexical scoping" property) while
// earlier bindings and the parent chain are preserved.
func (e *Environment) Copy() *Environment {
	cp := &Environment{
		vars:   make(map[string]objects.Value, len(e.vars)),
		order:  append([]string(nil), e.order...),
		Parent: e.Parent,
	}
	for k, v := range e.vars {
		cp.vars[k] = v
	}
	return cp
}

// Child returns a fresh empty frame nested under e, used for Block, for/
// while bodies, and function call frames.
func (e *Environment) Child() *Environment {
	return New(e)
}
