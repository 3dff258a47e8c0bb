/*
File    : dune/std/std.go
*/

// Package std populates the root environment with Dune's builtin modules
// (spec §1 names these "out of scope" for the kernel itself, but a usable
// shell needs them). Each module is an ordered objects.Map of name ->
// *function.Builtin, bound under its own name so `module@member` (spec
// §4.2 field access) addresses it — e.g. `fmt@bold`.
//
// Each module file exposes a newXModule constructor returning a
// *objects.Map, and Register binds each one directly into the root
// environment.
package std

import (
	"github.com/dune-shell/dune/host"
	"github.com/dune-shell/dune/objects"
	"github.com/dune-shell/dune/scope"
)

// Register binds every builtin module into root, addressable via `@`.
func Register(root *scope.Environment, h host.Host) {
	root.Let("console", newConsoleModule(h))
	root.Let("fmt", newFmtModule())
	root.Let("fs", newFsModule(h))
	root.Let("os", newOSModule(h))
	root.Let("parse", newParseModule())
	root.Let("yaml", newYAMLModule())
	root.Let("math", newMathModule())
}

// builtinMap assembles a module's Map value from name/builtin pairs,
// preserving the order given (module tables below are written in the
// order they should list under introspection).
func builtinMap(pairs ...any) *objects.Map {
	m := objects.NewMap()
	for i := 0; i+1 < len(pairs); i += 2 {
		name := pairs[i].(string)
		val := pairs[i+1].(objects.Value)
		m.Set(&objects.String{Value: name}, val)
	}
	return m
}
