/*
File    : dune/function/function.go
*/

// Package function holds the two runtime value types that close over a
// defining Environment: Lambda and Macro. They live outside package objects
// to avoid an objects/scope/parser import cycle (objects.Value must not
// depend on scope.Environment or parser.Node).
package function

import (
	"fmt"
	"strings"

	"github.com/dune-shell/dune/objects"
	"github.com/dune-shell/dune/parser"
	"github.com/dune-shell/dune/scope"
)

// Lambda is a function value: a parameter list, a body expression, and the
// Environment active where it was written (captured via Environment.Copy,
// so later Lets in the defining scope are not observed — see scope.go).
type Lambda struct {
	Params []string
	Body   parser.Node
	Env    *scope.Environment
}

func (l *Lambda) GetType() objects.Type { return objects.LambdaType }
func (l *Lambda) ToString() string      { return fmt.Sprintf("<lambda(%s)>", strings.Join(l.Params, ", ")) }
func (l *Lambda) ToObject() string      { return l.ToString() }

// Macro is a macro value. Like Lambda it carries params/body/captured
// environment, but package eval evaluates its body in the *caller's*
// environment rather than a fresh child of Env, and its arguments arrive
// unevaluated (quoted) rather than as values — see spec §4.5.
type Macro struct {
	Params []string
	Body   parser.Node
	Env    *scope.Environment
}

func (m *Macro) GetType() objects.Type { return objects.MacroType }
func (m *Macro) ToString() string      { return fmt.Sprintf("<macro(%s)>", strings.Join(m.Params, ", ")) }
func (m *Macro) ToObject() string      { return m.ToString() }

// Builtin is a host-supplied callable (spec §3): a name for error messages
// and introspection, a fixed arity (-1 means variadic — Fn checks its own
// argument count), and the Go function the evaluator calls with the already
// evaluated argument values and the calling environment.
type Builtin struct {
	Name  string
	Arity int
	Fn    func(args []objects.Value, env *scope.Environment) (objects.Value, error)
}

func (b *Builtin) GetType() objects.Type { return objects.BuiltinType }
func (b *Builtin) ToString() string      { return fmt.Sprintf("<builtin %s>", b.Name) }
func (b *Builtin) ToObject() string      { return b.ToString() }
