/*
File    : dune/errors/errors.go
*/

// Package errors implements Dune's structured error taxonomy (spec §7): one
// Kind per failure mode, each carrying the source span responsible so the
// REPL and script runner can render a caret under the offending token.
//
// It is grounded on sambeau-basil's pkg/parsley/errors — a single tagged
// error type with a class, message, hints, and location — adapted to the
// kernel's closed, named set of kinds instead of an open string class, and
// to byte-offset Spans instead of line/column alone.
package errors

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dune-shell/dune/lexer"
)

// Kind identifies a Dune error's category, matching spec §7's taxonomy
// exactly.
type Kind string

const (
	KindParseError             Kind = "ParseError"
	KindIncomplete             Kind = "Incomplete" // not a true error; a signal
	KindUnboundName            Kind = "UnboundName"
	KindNotCallable            Kind = "NotCallable"
	KindArityMismatch          Kind = "ArityMismatch"
	KindTypeMismatch           Kind = "TypeMismatch"
	KindIndexOutOfRange        Kind = "IndexOutOfRange"
	KindKeyNotFound            Kind = "KeyNotFound"
	KindDivideByZero           Kind = "DivideByZero"
	KindRecursionDepthExceeded Kind = "RecursionDepthExceeded"
	KindCommandNotFound        Kind = "CommandNotFound"
	KindCommandFailed          Kind = "CommandFailed"
	KindHostError              Kind = "HostError"
	KindInterrupted            Kind = "Interrupted"
)

// Catchable reports whether an error of this kind is a real failure rather
// than a signal. Incomplete is excluded: it is a REPL continuation signal,
// not a failure of user code.
func (k Kind) Catchable() bool {
	return k != KindIncomplete
}

// Error is Dune's single error type. Every kernel failure is an *Error.
type Error struct {
	Kind    Kind
	Message string
	Span    lexer.Span
	Hints   []string
	Data    map[string]any
	// Trace holds the spans of active Apply sites, innermost first,
	// captured as the error unwinds through package eval's call stack.
	Trace []lexer.Span
}

func (e *Error) Error() string { return e.Message }

// Pushed to Data under these conventional keys by the constructors below,
// so callers needing a specific field (e.g. the expected tokens of a
// ParseError) don't need to re-parse Message.
const (
	DataExpected = "expected"
	DataFound    = "found"
	DataName     = "name"
	DataGot      = "got"
	DataLimit    = "limit"
	DataExitCode = "exit_code"
)

func ParseError(span lexer.Span, expected []string, found, message string) *Error {
	return &Error{
		Kind: KindParseError, Message: message, Span: span,
		Data: map[string]any{DataExpected: expected, DataFound: found},
	}
}

func Incomplete(span lexer.Span) *Error {
	return &Error{Kind: KindIncomplete, Message: "incomplete input", Span: span}
}

func UnboundName(name string, span lexer.Span) *Error {
	return &Error{
		Kind: KindUnboundName, Span: span,
		Message: fmt.Sprintf("unbound name %q", name),
		Data:    map[string]any{DataName: name},
	}
}

func NotCallable(valueKind string, span lexer.Span) *Error {
	return &Error{
		Kind: KindNotCallable, Span: span,
		Message: fmt.Sprintf("value of type %s is not callable", valueKind),
	}
}

func ArityMismatch(expected, got int, span lexer.Span) *Error {
	return &Error{
		Kind: KindArityMismatch, Span: span,
		Message: fmt.Sprintf("expected %d argument(s), got %d", expected, got),
		Data:    map[string]any{DataExpected: expected, DataGot: got},
	}
}

func TypeMismatch(op string, operandKinds []string, span lexer.Span) *Error {
	return &Error{
		Kind: KindTypeMismatch, Span: span,
		Message: fmt.Sprintf("%s is not defined for %s", op, strings.Join(operandKinds, ", ")),
	}
}

func IndexOutOfRange(length, idx int, span lexer.Span) *Error {
	return &Error{
		Kind: KindIndexOutOfRange, Span: span,
		Message: fmt.Sprintf("index %d out of range for length %d", idx, length),
	}
}

func KeyNotFound(key string, span lexer.Span) *Error {
	return &Error{
		Kind: KindKeyNotFound, Span: span,
		Message: fmt.Sprintf("key %s not found", key),
		Data:    map[string]any{"key": key},
	}
}

func DivideByZero(span lexer.Span) *Error {
	return &Error{Kind: KindDivideByZero, Message: "division by zero", Span: span}
}

func RecursionDepthExceeded(limit int, span lexer.Span) *Error {
	return &Error{
		Kind: KindRecursionDepthExceeded, Span: span,
		Message: fmt.Sprintf("recursion depth exceeded limit of %d", limit),
		Data:    map[string]any{DataLimit: limit},
	}
}

func CommandNotFound(name string, span lexer.Span) *Error {
	return &Error{
		Kind: KindCommandNotFound, Span: span,
		Message: fmt.Sprintf("command not found: %s", name),
		Data:    map[string]any{DataName: name},
	}
}

func CommandFailed(name string, exitCode int, span lexer.Span) *Error {
	return &Error{
		Kind: KindCommandFailed, Span: span,
		Message: fmt.Sprintf("command %q exited with status %d", name, exitCode),
		Data:    map[string]any{DataName: name, DataExitCode: exitCode},
	}
}

func HostError(message string, span lexer.Span) *Error {
	return &Error{Kind: KindHostError, Message: message, Span: span}
}

func Interrupted() *Error {
	return &Error{Kind: KindInterrupted, Message: "interrupted"}
}

var (
	kindStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	caretStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
)

// Render renders the error against src: the Kind and message, a source
// line with a caret under the offending span, and — if Trace is non-empty —
// a list of active call sites innermost first (§7 "call-stack-like
// errors").
func (e *Error) Render(src string) string {
	var b strings.Builder
	b.WriteString(kindStyle.Render(string(e.Kind)))
	b.WriteString(": ")
	b.WriteString(e.Message)
	if line := sourceLine(src, e.Span.Line); line != "" {
		b.WriteByte('\n')
		b.WriteString(line)
		b.WriteByte('\n')
		col := e.Span.Col
		if col < 1 {
			col = 1
		}
		width := e.Span.End - e.Span.Start
		if width < 1 {
			width = 1
		}
		b.WriteString(strings.Repeat(" ", col-1))
		b.WriteString(caretStyle.Render(strings.Repeat("^", width)))
	}
	for _, hint := range e.Hints {
		b.WriteString("\n  hint: ")
		b.WriteString(hint)
	}
	for i, frame := range e.Trace {
		b.WriteString(fmt.Sprintf("\n  at call site %d: line %d, column %d", i, frame.Line, frame.Col))
	}
	return b.String()
}

func sourceLine(src string, line int) string {
	if line < 1 {
		return ""
	}
	lines := strings.Split(src, "\n")
	if line > len(lines) {
		return ""
	}
	return lines[line-1]
}
