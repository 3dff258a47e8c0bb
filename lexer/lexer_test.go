/*
File    : dune/lexer/lexer_test.go
*/
package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func tokenTypes(toks []Token) []TokenType {
	out := make([]TokenType, len(toks))
	for i, t := range toks {
		out[i] = t.Type
	}
	return out
}

func scanAll(src string) []Token {
	l := New(src)
	var toks []Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == EOF {
			return toks
		}
	}
}

func TestNextToken_ArithmeticAndPunctuation(t *testing.T) {
	toks := scanAll("1 + 2*3 (x, y)")
	assert.Equal(t, []TokenType{INT, PLUS, INT, STAR, INT, LPAREN, SYMBOL, COMMA, SYMBOL, RPAREN, EOF}, tokenTypes(toks))
}

func TestNextToken_SymbolAllowsPathCharacters(t *testing.T) {
	toks := scanAll("ls -la ./foo.txt")
	assert.Equal(t, []TokenType{SYMBOL, SYMBOL, SYMBOL, EOF}, tokenTypes(toks))
	assert.Equal(t, "ls", toks[0].Literal)
	assert.Equal(t, "-la", toks[1].Literal)
	assert.Equal(t, "./foo.txt", toks[2].Literal)
}

func TestNextToken_Keywords(t *testing.T) {
	toks := scanAll("let if else for in while true false none macro")
	assert.Equal(t, []TokenType{LET, IF, ELSE, FOR, IN, WHILE, TRUE, FALSE, NONE, MACRO, EOF}, tokenTypes(toks))
}

func TestNextToken_DoubleQuotedStringEscapes(t *testing.T) {
	toks := scanAll(`"a\nb\u{41}"`)
	assert.Equal(t, STRING, toks[0].Type)
	assert.Equal(t, "a\nbA", toks[0].Literal)
}

func TestNextToken_SingleQuotedStringHasNoEscapes(t *testing.T) {
	toks := scanAll(`'a\nb'`)
	assert.Equal(t, STRING, toks[0].Type)
	assert.Equal(t, `a\nb`, toks[0].Literal)
}

func TestNextToken_QuoteOperatorHasNoClosingTick(t *testing.T) {
	toks := scanAll("'x")
	assert.Equal(t, []TokenType{TICK, SYMBOL, EOF}, tokenTypes(toks))
}

func TestNextToken_QuoteOfParenthesizedList(t *testing.T) {
	toks := scanAll("'(a b)")
	assert.Equal(t, []TokenType{TICK, LPAREN, SYMBOL, SYMBOL, RPAREN, EOF}, tokenTypes(toks))
}

func TestNextToken_FloatAndExponent(t *testing.T) {
	toks := scanAll("3.14 2e10 1.5e-3")
	assert.Equal(t, []TokenType{FLOAT, FLOAT, FLOAT, EOF}, tokenTypes(toks))
}

func TestNextToken_TwoCharOperators(t *testing.T) {
	toks := scanAll("== != <= >= && || |> ->")
	assert.Equal(t, []TokenType{EQ, NEQ, LE, GE, AND, OR, PIPE, ARROW, EOF}, tokenTypes(toks))
}

func TestNextToken_LineCommentIsIgnored(t *testing.T) {
	toks := scanAll("1 # comment here\n2")
	assert.Equal(t, []TokenType{INT, NEWLINE, INT, EOF}, tokenTypes(toks))
}

func TestNextToken_InvalidByteRecoversAtWhitespace(t *testing.T) {
	toks := scanAll("1 $$$ 2")
	assert.Equal(t, INT, toks[0].Type)
	assert.Equal(t, INVALID, toks[1].Type)
	assert.Equal(t, INT, toks[2].Type)
}

func TestNextToken_FieldAccessOperator(t *testing.T) {
	toks := scanAll("fmt@bold")
	assert.Equal(t, []TokenType{SYMBOL, AT, SYMBOL, EOF}, tokenTypes(toks))
}

func TestNextToken_SpansTrackLineAndColumn(t *testing.T) {
	toks := scanAll("x\ny")
	assert.Equal(t, 1, toks[0].Span.Line)
	assert.Equal(t, 2, toks[2].Span.Line)
}
