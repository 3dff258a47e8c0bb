/*
File    : dune/repl/repl.go
*/

// Package repl implements Dune's interactive Read-Eval-Print Loop: the
// external driver described in spec §6/§4.7 that reads lines, parses them
// (continuing across lines on Incomplete), evaluates them against a
// persistent root environment, and prints the result or a rendered error.
//
// It uses the readline library for line editing and history, and colors
// output via fatih/color.
package repl

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/dune-shell/dune/errors"
	"github.com/dune-shell/dune/eval"
	"github.com/dune-shell/dune/host"
	"github.com/dune-shell/dune/objects"
	"github.com/dune-shell/dune/parser"
	"github.com/dune-shell/dune/scope"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

const preludeFileName = ".dune-prelude"

// Repl represents the Read-Eval-Print Loop instance.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	License string
	Prompt  string

	// RecursionLimit overrides eval.DefaultRecursionLimit when positive.
	RecursionLimit int
	// PreludePath overrides <home>/.dune-prelude when non-empty.
	PreludePath string
}

// NewRepl creates and initializes a new REPL instance.
func NewRepl(banner string, version string, author string, line string, license string, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, Line: line, License: license, Prompt: prompt}
}

// PrintBannerInfo displays the welcome banner and usage instructions.
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version+" | Author: "+r.Author+" | License: "+r.License)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Welcome to Dune!")
	cyanColor.Fprintf(writer, "%s\n", "Type your code and press enter")
	cyanColor.Fprintf(writer, "%s\n", "Type 'exit' or Ctrl-D to quit")
	cyanColor.Fprintf(writer, "%s\n", "Use up/down arrows to navigate command history")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// stringHook reads a conventionally-named root-env binding as a string,
// falling back to def when the binding is absent or not a String (§4.7:
// "conventionally-named overridable bindings ... When absent, the driver
// falls back to defaults").
func stringHook(env *scope.Environment, name, def string) string {
	v, ok := env.Lookup(name)
	if !ok {
		return def
	}
	if s, ok := v.(*objects.String); ok {
		return s.Value
	}
	return def
}

// Start begins the REPL main loop: banner, prelude, then read-eval-print
// until 'exit', EOF, or a readline error.
func (r *Repl) Start(reader io.Reader, writer io.Writer) int {
	_ = reader // readline reads from the controlling terminal directly
	r.PrintBannerInfo(writer)

	e := eval.New(host.OSHost{})
	if r.RecursionLimit > 0 {
		e.RecursionLimit = r.RecursionLimit
	}
	env := e.NewRootEnv()

	if err := loadPrelude(e, env, writer, r.PreludePath); err != nil {
		redColor.Fprintf(writer, "[prelude] %v\n", err)
	}

	var interrupted int32
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)
	go func() {
		for range sigCh {
			atomic.StoreInt32(&interrupted, 1)
		}
	}()
	e.Interrupted = func() bool {
		if atomic.CompareAndSwapInt32(&interrupted, 1, 0) {
			return true
		}
		return false
	}

	prompt := stringHook(env, "prompt", r.Prompt)
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     historyFilePath(),
		AutoComplete:    newCompleter(env),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		redColor.Fprintf(writer, "[readline] %v\n", err)
		return 1
	}
	defer rl.Close()

	exitCode := 0
	var pending strings.Builder
	for {
		if pending.Len() == 0 {
			rl.SetPrompt(stringHook(env, "prompt", r.Prompt))
		} else {
			rl.SetPrompt(stringHook(env, "incomplete_prompt", "... "))
		}

		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			pending.Reset()
			continue
		}
		if err != nil {
			writer.Write([]byte("Good Bye!\n"))
			break
		}

		if pending.Len() == 0 {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}
			if trimmed == "exit" || trimmed == ".exit" {
				writer.Write([]byte("Good Bye!\n"))
				break
			}
		} else {
			pending.WriteByte('\n')
		}
		pending.WriteString(line)

		src := pending.String()
		stmts, perr := parser.New(src).Parse()
		if perr != nil {
			if derr, ok := perr.(*errors.Error); ok && derr.Kind == errors.KindIncomplete {
				continue // keep accumulating lines
			}
			redColor.Fprintf(writer, "%s\n", renderErr(perr, src))
			pending.Reset()
			continue
		}
		pending.Reset()
		rl.SaveHistory(src)

		v, evalErr := e.Run(stmts, env)
		if evalErr != nil {
			redColor.Fprintf(writer, "%s\n", renderErr(evalErr, src))
			continue
		}
		exitCode = exitCodeOf(v)
		report(writer, env, v)
	}
	return exitCode
}

// report prints v's ToObject rendering. A `report` binding in the root
// environment is not consulted.
func report(writer io.Writer, env *scope.Environment, v objects.Value) {
	yellowColor.Fprintf(writer, "%s\n", v.ToObject())
}

func exitCodeOf(v objects.Value) int {
	if i, ok := v.(*objects.Int); ok {
		return int(i.Value)
	}
	return 0
}

func renderErr(err error, src string) string {
	if derr, ok := err.(*errors.Error); ok {
		return derr.Render(src)
	}
	return err.Error()
}

// loadPrelude evaluates <home>/.dune-prelude (or override) in env if present
// (§6 "Startup"). A missing file is not an error; a parse or eval error from
// the prelude is surfaced but does not prevent the REPL from starting.
func loadPrelude(e *eval.Evaluator, env *scope.Environment, writer io.Writer, override string) error {
	path := override
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		path = filepath.Join(home, preludeFileName)
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	stmts, perr := parser.New(string(data)).Parse()
	if perr != nil {
		return fmt.Errorf("%s: %s", path, renderErr(perr, string(data)))
	}
	if _, evalErr := e.Run(stmts, env); evalErr != nil {
		return fmt.Errorf("%s: %s", path, renderErr(evalErr, string(data)))
	}
	return nil
}

func historyFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dune-history")
}

// RunScript evaluates src (e.g. a loaded .dune file or a `dune -c` argument)
// against a fresh root env, writing results to writer and returning the
// process exit code per §6's "Exit codes of the shell binary". recursionLimit
// overrides eval.DefaultRecursionLimit when positive.
func RunScript(src string, writer io.Writer, recursionLimit int) int {
	e := eval.New(host.OSHost{})
	if recursionLimit > 0 {
		e.RecursionLimit = recursionLimit
	}
	env := e.NewRootEnv()
	stmts, err := parser.New(src).Parse()
	if err != nil {
		fmt.Fprintln(writer, renderErr(err, src))
		return 1
	}
	v, err := e.Run(stmts, env)
	if err != nil {
		fmt.Fprintln(writer, renderErr(err, src))
		return 1
	}
	return exitCodeOf(v)
}
