/*
File    : dune/parser/parser_command.go
*/

// Command-form parsing: §4.2's "a statement starting with a Symbol token
// followed by at least one whitespace-separated atom that cannot continue
// an expression... parses as a command application; otherwise the symbol is
// treated as an ordinary identifier."
package parser

import "github.com/dune-shell/dune/lexer"

// canStartCommandArg reports whether tt can open a command-form argument: it
// must not be able to continue an expression (the infix operators, and the
// call/index/field trailer openers) and must not be a statement-ending or
// closing-delimiter token.
func canStartCommandArg(tt lexer.TokenType) bool {
	if tt.IsExpressionContinuation() {
		return false
	}
	switch tt {
	case lexer.NEWLINE, lexer.SEMI, lexer.EOF,
		lexer.RPAREN, lexer.RBRACKET, lexer.RBRACE, lexer.COMMA,
		lexer.ELSE, lexer.IN:
		return false
	default:
		return true
	}
}

// parseSymbolStatement is reached when a statement begins with a bare
// Symbol token; it decides between command form and ordinary expression
// form by looking one token ahead.
func (p *Parser) parseSymbolStatement() (Node, error) {
	if canStartCommandArg(p.peek.Type) {
		return p.parseCommandApply()
	}
	return p.parseAssignOrExpr()
}

// parseCommandApply builds Apply(Symbol(name), [atoms...]) from a bare
// leading Symbol and the one-or-more whitespace-separated atoms that follow
// it; parseSymbolStatement only calls this once it has confirmed at least
// one such atom follows. A bare Symbol statement with nothing following it
// instead falls through to parseAssignOrExpr and comes out as a plain
// Symbol node — package eval's statement-level handling of a bare Symbol
// (not the parser) is what applies the zero-arg command fallback (§4.6).
func (p *Parser) parseCommandApply() (Node, error) {
	calleeTok := p.cur
	p.advance()
	callee := &Symbol{base: withSpan(calleeTok.Span), Name: calleeTok.Literal}
	var args []Node
	for canStartCommandArg(p.cur.Type) {
		arg, err := p.parsePostfix()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	span := callee.Span()
	if len(args) > 0 {
		span = span.Cover(args[len(args)-1].Span())
	}
	return &Apply{base: withSpan(span), Callee: callee, Args: args}, nil
}
