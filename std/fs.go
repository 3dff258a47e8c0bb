/*
File    : dune/std/fs.go
*/

// fs exposes file-system access. Handles returned by fs@open are ordinary
// Dune Maps tagged "file" (objects.Map.Tag) rather than a bespoke Go
// struct, so a handle is a value the rest of the language already knows
// how to carry around, print, and put in a list. The underlying *os.File
// itself lives in a process-local registry keyed by the handle's "fd"
// field, since an objects.Value cannot embed a non-Value Go pointer.
//
// Host (spec §6) has no filesystem methods — only process spawn, cwd, env,
// and stdio — so fs talks to the standard os/io packages directly rather
// than through Host; see DESIGN.md.
package std

import (
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/dune-shell/dune/errors"
	"github.com/dune-shell/dune/function"
	"github.com/dune-shell/dune/host"
	"github.com/dune-shell/dune/lexer"
	"github.com/dune-shell/dune/objects"
	"github.com/dune-shell/dune/scope"
)

var (
	fileHandles   sync.Map // int64 fd -> *os.File
	nextFileHandle int64
)

func registerFile(f *os.File) int64 {
	id := atomic.AddInt64(&nextFileHandle, 1)
	fileHandles.Store(id, f)
	return id
}

func lookupFile(id int64) (*os.File, bool) {
	v, ok := fileHandles.Load(id)
	if !ok {
		return nil, false
	}
	return v.(*os.File), true
}

func fileHandle(f *os.File, path string) *objects.Map {
	m := objects.NewMap()
	m.Set(&objects.String{Value: "__tag"}, &objects.String{Value: "file"})
	m.Set(&objects.String{Value: "fd"}, &objects.Int{Value: registerFile(f)})
	m.Set(&objects.String{Value: "path"}, &objects.String{Value: path})
	return m
}

func asFileHandle(v objects.Value) (*os.File, error) {
	m, ok := v.(*objects.Map)
	if !ok || m.Tag() != "file" {
		return nil, errors.TypeMismatch("fs", []string{"expected a file handle"}, lexer.Span{})
	}
	fdVal, _ := m.Get(&objects.String{Value: "fd"})
	fd, ok := fdVal.(*objects.Int)
	if !ok {
		return nil, errors.TypeMismatch("fs", []string{"corrupt file handle"}, lexer.Span{})
	}
	f, ok := lookupFile(fd.Value)
	if !ok {
		return nil, errors.HostError("file handle already closed", lexer.Span{})
	}
	return f, nil
}

func newFsModule(h host.Host) *objects.Map {
	read := &function.Builtin{Name: "fs@read", Arity: 1, Fn: func(args []objects.Value, env *scope.Environment) (objects.Value, error) {
		data, err := os.ReadFile(args[0].ToString())
		if err != nil {
			return nil, errors.HostError(err.Error(), lexer.Span{})
		}
		return &objects.String{Value: string(data)}, nil
	}}
	write := &function.Builtin{Name: "fs@write", Arity: 2, Fn: func(args []objects.Value, env *scope.Environment) (objects.Value, error) {
		if err := os.WriteFile(args[0].ToString(), []byte(args[1].ToString()), 0o644); err != nil {
			return nil, errors.HostError(err.Error(), lexer.Span{})
		}
		return objects.TheNone, nil
	}}
	list := &function.Builtin{Name: "fs@list", Arity: 1, Fn: func(args []objects.Value, env *scope.Environment) (objects.Value, error) {
		entries, err := os.ReadDir(args[0].ToString())
		if err != nil {
			return nil, errors.HostError(err.Error(), lexer.Span{})
		}
		out := make([]objects.Value, len(entries))
		for i, ent := range entries {
			out[i] = &objects.String{Value: ent.Name()}
		}
		return &objects.List{Elements: out}, nil
	}}
	exists := &function.Builtin{Name: "fs@exists", Arity: 1, Fn: func(args []objects.Value, env *scope.Environment) (objects.Value, error) {
		_, err := os.Stat(args[0].ToString())
		return &objects.Bool{Value: err == nil}, nil
	}}
	remove := &function.Builtin{Name: "fs@remove", Arity: 1, Fn: func(args []objects.Value, env *scope.Environment) (objects.Value, error) {
		if err := os.Remove(args[0].ToString()); err != nil {
			return nil, errors.HostError(err.Error(), lexer.Span{})
		}
		return objects.TheNone, nil
	}}
	open := &function.Builtin{Name: "fs@open", Arity: 2, Fn: func(args []objects.Value, env *scope.Environment) (objects.Value, error) {
		path, mode := args[0].ToString(), args[1].ToString()
		var flag int
		switch mode {
		case "r":
			flag = os.O_RDONLY
		case "w":
			flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
		case "a":
			flag = os.O_WRONLY | os.O_CREATE | os.O_APPEND
		default:
			return nil, errors.TypeMismatch("fs@open", []string{"unknown mode " + mode}, lexer.Span{})
		}
		f, err := os.OpenFile(path, flag, 0o644)
		if err != nil {
			return nil, errors.HostError(err.Error(), lexer.Span{})
		}
		return fileHandle(f, path), nil
	}}
	closeFn := &function.Builtin{Name: "fs@close", Arity: 1, Fn: func(args []objects.Value, env *scope.Environment) (objects.Value, error) {
		f, err := asFileHandle(args[0])
		if err != nil {
			return nil, err
		}
		fdVal, _ := args[0].(*objects.Map).Get(&objects.String{Value: "fd"})
		fileHandles.Delete(fdVal.(*objects.Int).Value)
		return objects.TheNone, f.Close()
	}}
	readHandle := &function.Builtin{Name: "fs@read_handle", Arity: 1, Fn: func(args []objects.Value, env *scope.Environment) (objects.Value, error) {
		f, err := asFileHandle(args[0])
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, errors.HostError(err.Error(), lexer.Span{})
		}
		return &objects.String{Value: string(data)}, nil
	}}
	writeHandle := &function.Builtin{Name: "fs@write_handle", Arity: 2, Fn: func(args []objects.Value, env *scope.Environment) (objects.Value, error) {
		f, err := asFileHandle(args[0])
		if err != nil {
			return nil, err
		}
		n, err := f.WriteString(args[1].ToString())
		if err != nil {
			return nil, errors.HostError(err.Error(), lexer.Span{})
		}
		return &objects.Int{Value: int64(n)}, nil
	}}
	seek := &function.Builtin{Name: "fs@seek", Arity: 2, Fn: func(args []objects.Value, env *scope.Environment) (objects.Value, error) {
		f, err := asFileHandle(args[0])
		if err != nil {
			return nil, err
		}
		offset, ok := args[1].(*objects.Int)
		if !ok {
			return nil, errors.TypeMismatch("fs@seek", []string{string(args[1].GetType())}, lexer.Span{})
		}
		pos, err := f.Seek(offset.Value, io.SeekStart)
		if err != nil {
			return nil, errors.HostError(err.Error(), lexer.Span{})
		}
		return &objects.Int{Value: pos}, nil
	}}
	tell := &function.Builtin{Name: "fs@tell", Arity: 1, Fn: func(args []objects.Value, env *scope.Environment) (objects.Value, error) {
		f, err := asFileHandle(args[0])
		if err != nil {
			return nil, err
		}
		pos, err := f.Seek(0, io.SeekCurrent)
		if err != nil {
			return nil, errors.HostError(err.Error(), lexer.Span{})
		}
		return &objects.Int{Value: pos}, nil
	}}
	return builtinMap(
		"read", read, "write", write, "list", list, "exists", exists, "remove", remove,
		"open", open, "close", closeFn, "read_handle", readHandle, "write_handle", writeHandle,
		"seek", seek, "tell", tell,
	)
}
