/*
File    : dune/std/console.go
*/

// console wraps the Host's stdout_write/stderr_write (spec §6) with color
// via fatih/color, putting the same coloring convention the REPL driver
// uses within reach of user code.
package std

import (
	"fmt"

	"github.com/dune-shell/dune/errors"
	"github.com/dune-shell/dune/function"
	"github.com/dune-shell/dune/host"
	"github.com/dune-shell/dune/lexer"
	"github.com/dune-shell/dune/objects"
	"github.com/fatih/color"
	"github.com/dune-shell/dune/scope"
)

func newConsoleModule(h host.Host) *objects.Map {
	print := &function.Builtin{Name: "console@print", Arity: 1, Fn: func(args []objects.Value, env *scope.Environment) (objects.Value, error) {
		line := color.New(color.FgCyan).Sprint(args[0].ToString())
		if _, err := h.StdoutWrite([]byte(line + "\n")); err != nil {
			return nil, errors.HostError(err.Error(), lexer.Span{})
		}
		return objects.TheNone, nil
	}}
	errPrint := &function.Builtin{Name: "console@error", Arity: 1, Fn: func(args []objects.Value, env *scope.Environment) (objects.Value, error) {
		line := color.New(color.FgRed, color.Bold).Sprint(args[0].ToString())
		if _, err := h.StderrWrite([]byte(line + "\n")); err != nil {
			return nil, errors.HostError(err.Error(), lexer.Span{})
		}
		return objects.TheNone, nil
	}}
	clear := &function.Builtin{Name: "console@clear", Arity: 0, Fn: func(args []objects.Value, env *scope.Environment) (objects.Value, error) {
		if _, err := h.StdoutWrite([]byte(fmt.Sprintf("\x1b[2J\x1b[H"))); err != nil {
			return nil, errors.HostError(err.Error(), lexer.Span{})
		}
		return objects.TheNone, nil
	}}
	return builtinMap("print", print, "error", errPrint, "clear", clear)
}
