/*
File    : dune/repl/complete.go
*/
package repl

import (
	"sort"
	"strings"
	"unicode"

	"github.com/chzyer/readline"
	"github.com/sahilm/fuzzy"

	"github.com/dune-shell/dune/scope"
)

// completer implements readline.AutoCompleter by fuzzy-matching the word
// under the cursor against every name bound in the root environment
// (builtin modules, prelude definitions, and anything the user has let-
// bound so far).
type completer struct {
	env *scope.Environment
}

func newCompleter(env *scope.Environment) readline.AutoCompleter {
	return &completer{env: env}
}

func isIdentRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '@'
}

// Do implements readline.AutoCompleter. line is the full input buffer and
// pos the cursor's rune offset; it returns completions for the word
// immediately preceding pos, as the suffix each completion would append.
func (c *completer) Do(line []rune, pos int) ([][]rune, int) {
	start := pos
	for start > 0 && isIdentRune(line[start-1]) {
		start--
	}
	word := string(line[start:pos])
	if word == "" {
		return nil, 0
	}

	var prefixed []string
	for _, n := range c.env.Names() {
		if strings.HasPrefix(n, word) {
			prefixed = append(prefixed, n)
		}
	}
	if len(prefixed) == 0 {
		return nil, 0
	}
	// fuzzy.Find against the prefix-filtered set ranks results the way a
	// user expects (exact/contiguous matches first) without ever proposing
	// a completion that doesn't actually extend what was typed.
	matches := fuzzy.Find(word, prefixed)
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })

	out := make([][]rune, 0, len(matches))
	for _, m := range matches {
		out = append(out, []rune(prefixed[m.Index][len(word):]))
	}
	return out, len(word)
}
