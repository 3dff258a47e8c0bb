/*
File    : dune/host/fake_host.go
*/
package host

import (
	"bytes"
	"fmt"
)

// SpawnCall records one invocation of FakeHost.Spawn, for tests that assert
// on exactly what the evaluator tried to launch (spec §8 scenario 6).
type SpawnCall struct {
	Argv []string
	Cwd  string
	Env  []string
}

// FakeHost is an in-memory Host for tests: no process is ever actually
// started. ExitCodes maps a program name to the exit code Spawn should
// report for it; programs not listed there return 0 unless NotFound
// contains the name, in which case Spawn reports a launch failure.
type FakeHost struct {
	Cwd       string
	Env       map[string]string
	ExitCodes map[string]int
	NotFound  map[string]bool

	Calls  []SpawnCall
	Stdout bytes.Buffer
	Stderr bytes.Buffer
}

var _ Host = (*FakeHost)(nil)

// NewFakeHost returns a FakeHost ready for use, with an empty environment
// and cwd "/".
func NewFakeHost() *FakeHost {
	return &FakeHost{
		Cwd:       "/",
		Env:       map[string]string{},
		ExitCodes: map[string]int{},
		NotFound:  map[string]bool{},
	}
}

func (h *FakeHost) Spawn(argv []string, cwd string, env []string) (int, error) {
	h.Calls = append(h.Calls, SpawnCall{Argv: append([]string(nil), argv...), Cwd: cwd, Env: append([]string(nil), env...)})
	if len(argv) == 0 {
		return -1, fmt.Errorf("empty argv")
	}
	name := argv[0]
	if h.NotFound[name] {
		return -1, fmt.Errorf("command not found: %s", name)
	}
	return h.ExitCodes[name], nil
}

func (h *FakeHost) CurrentDirectory() (string, error) { return h.Cwd, nil }
func (h *FakeHost) SetCurrentDirectory(path string) error {
	h.Cwd = path
	return nil
}

func (h *FakeHost) ReadEnv(name string) (string, bool) {
	v, ok := h.Env[name]
	return v, ok
}
func (h *FakeHost) WriteEnv(name, value string) error {
	h.Env[name] = value
	return nil
}

func (h *FakeHost) StdoutWrite(p []byte) (int, error) { return h.Stdout.Write(p) }
func (h *FakeHost) StderrWrite(p []byte) (int, error) { return h.Stderr.Write(p) }
