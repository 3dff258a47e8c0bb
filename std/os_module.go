/*
File    : dune/std/os_module.go
*/

// os exposes process and environment state: getenv/setenv/args/exit/
// cwd/chdir/hostname/platform/arch. Operations Host has a method for
// are routed through host.Host rather than calling os.* directly, so
// FakeHost can observe and replay them in tests; the rest (args, exit,
// hostname, platform, arch) go straight to os/runtime since Host has no
// accessor for them.
package std

import (
	"os"
	"runtime"

	"github.com/dune-shell/dune/errors"
	"github.com/dune-shell/dune/function"
	"github.com/dune-shell/dune/host"
	"github.com/dune-shell/dune/lexer"
	"github.com/dune-shell/dune/objects"
	"github.com/dune-shell/dune/scope"
)

func newOSModule(h host.Host) *objects.Map {
	getenv := &function.Builtin{Name: "os@getenv", Arity: 1, Fn: func(args []objects.Value, env *scope.Environment) (objects.Value, error) {
		v, ok := h.ReadEnv(args[0].ToString())
		if !ok {
			return objects.TheNone, nil
		}
		return &objects.String{Value: v}, nil
	}}
	setenv := &function.Builtin{Name: "os@setenv", Arity: 2, Fn: func(args []objects.Value, env *scope.Environment) (objects.Value, error) {
		if err := h.WriteEnv(args[0].ToString(), args[1].ToString()); err != nil {
			return nil, errors.HostError(err.Error(), lexer.Span{})
		}
		return objects.TheNone, nil
	}}
	argsFn := &function.Builtin{Name: "os@args", Arity: 0, Fn: func(args []objects.Value, env *scope.Environment) (objects.Value, error) {
		out := make([]objects.Value, len(os.Args))
		for i, a := range os.Args {
			out[i] = &objects.String{Value: a}
		}
		return &objects.List{Elements: out}, nil
	}}
	exit := &function.Builtin{Name: "os@exit", Arity: 1, Fn: func(args []objects.Value, env *scope.Environment) (objects.Value, error) {
		code, ok := args[0].(*objects.Int)
		if !ok {
			return nil, errors.TypeMismatch("os@exit", []string{string(args[0].GetType())}, lexer.Span{})
		}
		os.Exit(int(code.Value))
		return objects.TheNone, nil
	}}
	cwd := &function.Builtin{Name: "os@cwd", Arity: 0, Fn: func(args []objects.Value, env *scope.Environment) (objects.Value, error) {
		dir, err := h.CurrentDirectory()
		if err != nil {
			return nil, errors.HostError(err.Error(), lexer.Span{})
		}
		return &objects.String{Value: dir}, nil
	}}
	chdir := &function.Builtin{Name: "os@chdir", Arity: 1, Fn: func(args []objects.Value, env *scope.Environment) (objects.Value, error) {
		if err := h.SetCurrentDirectory(args[0].ToString()); err != nil {
			return nil, errors.HostError(err.Error(), lexer.Span{})
		}
		return objects.TheNone, nil
	}}
	hostname := &function.Builtin{Name: "os@hostname", Arity: 0, Fn: func(args []objects.Value, env *scope.Environment) (objects.Value, error) {
		name, err := os.Hostname()
		if err != nil {
			return nil, errors.HostError(err.Error(), lexer.Span{})
		}
		return &objects.String{Value: name}, nil
	}}
	platform := &function.Builtin{Name: "os@platform", Arity: 0, Fn: func(args []objects.Value, env *scope.Environment) (objects.Value, error) {
		return &objects.String{Value: runtime.GOOS}, nil
	}}
	arch := &function.Builtin{Name: "os@arch", Arity: 0, Fn: func(args []objects.Value, env *scope.Environment) (objects.Value, error) {
		return &objects.String{Value: runtime.GOARCH}, nil
	}}
	return builtinMap(
		"getenv", getenv, "setenv", setenv, "args", argsFn, "exit", exit,
		"cwd", cwd, "chdir", chdir, "hostname", hostname, "platform", platform, "arch", arch,
	)
}
