/*
File    : dune/std/fmtmod.go
*/

// fmt decorates strings for terminal display: bold/dim/color via
// fatih/color, and a markdown renderer via goldmark.
package std

import (
	"bytes"

	"github.com/dune-shell/dune/errors"
	"github.com/dune-shell/dune/function"
	"github.com/dune-shell/dune/lexer"
	"github.com/dune-shell/dune/objects"
	"github.com/dune-shell/dune/scope"
	"github.com/fatih/color"
	"github.com/yuin/goldmark"
)

var fmtColors = map[string]color.Attribute{
	"black": color.FgBlack, "red": color.FgRed, "green": color.FgGreen,
	"yellow": color.FgYellow, "blue": color.FgBlue, "magenta": color.FgMagenta,
	"cyan": color.FgCyan, "white": color.FgWhite,
}

func newFmtModule() *objects.Map {
	bold := &function.Builtin{Name: "fmt@bold", Arity: 1, Fn: func(args []objects.Value, env *scope.Environment) (objects.Value, error) {
		return &objects.String{Value: color.New(color.Bold).Sprint(args[0].ToString())}, nil
	}}
	dim := &function.Builtin{Name: "fmt@dim", Arity: 1, Fn: func(args []objects.Value, env *scope.Environment) (objects.Value, error) {
		return &objects.String{Value: color.New(color.Faint).Sprint(args[0].ToString())}, nil
	}}
	colorFn := &function.Builtin{Name: "fmt@color", Arity: 2, Fn: func(args []objects.Value, env *scope.Environment) (objects.Value, error) {
		name, ok := args[0].(*objects.String)
		if !ok {
			return nil, errors.TypeMismatch("fmt@color", []string{string(args[0].GetType())}, lexer.Span{})
		}
		attr, ok := fmtColors[name.Value]
		if !ok {
			return nil, errors.TypeMismatch("fmt@color", []string{"unknown color " + name.Value}, lexer.Span{})
		}
		return &objects.String{Value: color.New(attr).Sprint(args[1].ToString())}, nil
	}}
	markdown := &function.Builtin{Name: "fmt@markdown", Arity: 1, Fn: func(args []objects.Value, env *scope.Environment) (objects.Value, error) {
		var buf bytes.Buffer
		if err := goldmark.Convert([]byte(args[0].ToString()), &buf); err != nil {
			return nil, errors.HostError(err.Error(), lexer.Span{})
		}
		return &objects.String{Value: buf.String()}, nil
	}}
	return builtinMap("bold", bold, "dim", dim, "color", colorFn, "markdown", markdown)
}
