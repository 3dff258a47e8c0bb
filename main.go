/*
File    : dune/main.go
*/

// Package main is the entry point for the Dune shell: the `dune` binary
// fronting the REPL (repl/) and file-execution mode, using
// github.com/alecthomas/kong for argument parsing.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/pkg/profile"

	"github.com/dune-shell/dune/repl"
)

// VERSION, AUTHOR, LICENSE, PROMPT, BANNER are the shell's top-level
// identity constants, shown in the REPL banner and --version output.
var (
	VERSION = "v1.0.0"
	AUTHOR  = "dune contributors"
	LICENSE = "MIT"
	PROMPT  = "dune >>> "
	BANNER  = `
    ____
   / __ \__  ______  ___
  / / / / / / / __ \/ _ \
 / /_/ / /_/ / / / /  __/
/_____/\__,_/_/ /_/\___/
`
	LINE = "----------------------------------------------------------------"
)

// cli describes the dune binary's argument surface: `dune [file] [-c EXPR]
// [--profile cpu|mem] [--version]`, plus the recursion-depth/prelude knobs
// needed to configure a run from the command line.
type cli struct {
	File    string `arg:"" optional:"" type:"existingfile" help:"Dune source file to execute instead of starting the REPL."`
	Command string `short:"c" help:"Evaluate EXPR instead of reading a file or starting the REPL."`
	Profile string `help:"Enable profiling, writing results to the working directory." enum:",cpu,mem" default:""`

	RecursionLimit int    `help:"Maximum call depth before RecursionDepthExceeded." default:"500"`
	Prelude        string `help:"Override the prelude file path (default <home>/.dune-prelude)."`

	Version kong.VersionFlag `help:"Print version and exit."`
}

func main() {
	var c cli
	kong.Parse(&c,
		kong.Name("dune"),
		kong.Description("Dune - an interactive shell built around a small expression language"),
		kong.Vars{"version": VERSION},
	)

	stop := func() {}
	if c.Profile != "" {
		stop = startProfile(c.Profile)
	}

	code := run(c)
	stop() // os.Exit below would skip a deferred Stop, so call it explicitly first
	os.Exit(code)
}

func run(c cli) int {
	switch {
	case c.Command != "":
		return repl.RunScript(c.Command, os.Stdout, c.RecursionLimit)
	case c.File != "":
		data, err := os.ReadFile(c.File)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return repl.RunScript(string(data), os.Stdout, c.RecursionLimit)
	default:
		r := repl.NewRepl(BANNER, VERSION, AUTHOR, LINE, LICENSE, PROMPT)
		r.RecursionLimit = c.RecursionLimit
		r.PreludePath = c.Prelude
		return r.Start(os.Stdin, os.Stdout)
	}
}

func startProfile(mode string) func() {
	var p interface{ Stop() }
	switch mode {
	case "cpu":
		p = profile.Start(profile.CPUProfile, profile.ProfilePath("."))
	case "mem":
		p = profile.Start(profile.MemProfile, profile.ProfilePath("."))
	default:
		return func() {}
	}
	return p.Stop
}
