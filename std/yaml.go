/*
File    : dune/std/yaml.go
*/

// yaml round-trips Dune values through YAML text via gopkg.in/yaml.v3,
// going through Go's generic interface{} representation and a plain
// Map/List/scalar mapping, so a config file written in YAML
// looks exactly like the equivalent Dune map literal once decoded.
package std

import (
	"gopkg.in/yaml.v3"

	"github.com/dune-shell/dune/errors"
	"github.com/dune-shell/dune/function"
	"github.com/dune-shell/dune/lexer"
	"github.com/dune-shell/dune/objects"
	"github.com/dune-shell/dune/scope"
)

func yamlToValue(v any) objects.Value {
	switch t := v.(type) {
	case nil:
		return objects.TheNone
	case bool:
		return &objects.Bool{Value: t}
	case int:
		return &objects.Int{Value: int64(t)}
	case int64:
		return &objects.Int{Value: t}
	case float64:
		return &objects.Float{Value: t}
	case string:
		return &objects.String{Value: t}
	case []any:
		out := make([]objects.Value, len(t))
		for i, e := range t {
			out[i] = yamlToValue(e)
		}
		return &objects.List{Elements: out}
	case map[string]any:
		m := objects.NewMap()
		for k, e := range t {
			m.Set(&objects.String{Value: k}, yamlToValue(e))
		}
		return m
	default:
		return &objects.String{Value: ""}
	}
}

func valueToYAML(v objects.Value) any {
	switch t := v.(type) {
	case *objects.None:
		return nil
	case *objects.Bool:
		return t.Value
	case *objects.Int:
		return t.Value
	case *objects.Float:
		return t.Value
	case *objects.String:
		return t.Value
	case *objects.List:
		out := make([]any, len(t.Elements))
		for i, e := range t.Elements {
			out[i] = valueToYAML(e)
		}
		return out
	case *objects.Map:
		out := make(map[string]any, t.Len())
		for _, k := range t.Keys() {
			val, _ := t.Get(k)
			out[k.ToString()] = valueToYAML(val)
		}
		return out
	default:
		return t.ToString()
	}
}

func newYAMLModule() *objects.Map {
	decode := &function.Builtin{Name: "yaml@decode", Arity: 1, Fn: func(args []objects.Value, env *scope.Environment) (objects.Value, error) {
		var out any
		if err := yaml.Unmarshal([]byte(args[0].ToString()), &out); err != nil {
			return nil, errors.HostError(err.Error(), lexer.Span{})
		}
		return yamlToValue(out), nil
	}}
	encode := &function.Builtin{Name: "yaml@encode", Arity: 1, Fn: func(args []objects.Value, env *scope.Environment) (objects.Value, error) {
		data, err := yaml.Marshal(valueToYAML(args[0]))
		if err != nil {
			return nil, errors.HostError(err.Error(), lexer.Span{})
		}
		return &objects.String{Value: string(data)}, nil
	}}
	return builtinMap("decode", decode, "encode", encode)
}
