/*
File    : dune/parser/parser.go
*/
package parser

import (
	"fmt"

	"github.com/dune-shell/dune/errors"
	"github.com/dune-shell/dune/lexer"
)

// Parser is a recursive-descent parser over a single Lexer, with one token
// of lookahead.
type Parser struct {
	lex       *lexer.Lexer
	cur, peek lexer.Token
}

// New returns a Parser positioned at the first token of src.
func New(src string) *Parser {
	p := &Parser{lex: lexer.New(src)}
	p.advance()
	p.advance()
	return p
}

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.lex.NextToken()
}

func (p *Parser) curIs(tt lexer.TokenType) bool  { return p.cur.Type == tt }
func (p *Parser) peekIs(tt lexer.TokenType) bool { return p.peek.Type == tt }

func (p *Parser) isStatementTerminator(tt lexer.TokenType) bool {
	switch tt {
	case lexer.NEWLINE, lexer.SEMI, lexer.EOF:
		return true
	default:
		return false
	}
}

// skipNewlines consumes any run of NEWLINE tokens. Used inside bracketed
// constructs (`( [ {`) where a line break is just whitespace, unlike at
// statement level where it is a separator.
func (p *Parser) skipNewlines() {
	for p.curIs(lexer.NEWLINE) {
		p.advance()
	}
}

// expect consumes cur if it matches tt, else produces a structured error.
// Hitting EOF while a closing delimiter is expected is reported as
// Incomplete rather than a hard ParseError (spec §4.2), so the REPL knows to
// keep reading instead of rejecting the input outright.
func (p *Parser) expect(tt lexer.TokenType) (lexer.Token, error) {
	if p.curIs(lexer.EOF) && tt != lexer.EOF {
		return lexer.Token{}, errors.Incomplete(p.cur.Span)
	}
	if !p.curIs(tt) {
		return lexer.Token{}, errors.ParseError(p.cur.Span, []string{string(tt)}, string(p.cur.Type),
			fmt.Sprintf("expected %s, found %s", tt, p.cur.Type))
	}
	tok := p.cur
	p.advance()
	return tok, nil
}

func (p *Parser) parseErrorf(span lexer.Span, expected []string, format string, args ...any) error {
	return errors.ParseError(span, expected, string(p.cur.Type), fmt.Sprintf(format, args...))
}

// Precedence levels, lowest to highest. Named after the grammar's cascade
// in spec §4.2; call trailers (index/field/invoke) bind tighter than any
// operator and are handled by parsePostfix rather than this table.
const (
	precLowest = iota
	precPipe   // |>
	precOr     // ||
	precAnd    // &&
	precEquality
	precRelational
	precAdditive
	precMultiplicative
	precUnary
)

func precedenceOf(tt lexer.TokenType) int {
	switch tt {
	case lexer.PIPE:
		return precPipe
	case lexer.OR:
		return precOr
	case lexer.AND:
		return precAnd
	case lexer.EQ, lexer.NEQ:
		return precEquality
	case lexer.LT, lexer.LE, lexer.GT, lexer.GE:
		return precRelational
	case lexer.PLUS, lexer.MINUS:
		return precAdditive
	case lexer.STAR, lexer.SLASH, lexer.PCT:
		return precMultiplicative
	default:
		return precLowest
	}
}

// ParseExpr parses a single expression (no statement-level `let` or
// command-form handling), stopping before any trailing NEWLINE/SEMI.
func (p *Parser) ParseExpr() (Node, error) {
	return p.parseExpression(precLowest)
}

// parseExpression implements precedence climbing over the binary operator
// table, bottoming out at parseUnary/parsePostfix/parseAtom.
func (p *Parser) parseExpression(minPrec int) (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		prec := precedenceOf(p.cur.Type)
		if prec <= minPrec || prec == precLowest {
			return left, nil
		}
		opTok := p.cur
		p.advance()
		p.skipNewlines()
		right, err := p.parseExpression(prec)
		if err != nil {
			return nil, err
		}
		left = &BinOp{base: withSpan(left.Span().Cover(right.Span())), Op: opTok.Literal, Lhs: left, Rhs: right}
	}
}

func (p *Parser) parseUnary() (Node, error) {
	if p.curIs(lexer.MINUS) || p.curIs(lexer.NOT) {
		opTok := p.cur
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnOp{base: withSpan(opTok.Span.Cover(operand.Span())), Op: opTok.Literal, Operand: operand}, nil
	}
	return p.parsePostfix()
}

// parsePostfix parses an atom followed by any number of call/index/field
// trailers: `callee(args)`, `container[key]`, `container@name`.
func (p *Parser) parsePostfix() (Node, error) {
	node, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur.Type {
		case lexer.LPAREN:
			args, rparen, err := p.parseArgList()
			if err != nil {
				return nil, err
			}
			node = &Apply{base: withSpan(node.Span().Cover(rparen)), Callee: node, Args: args}
		case lexer.LBRACKET:
			p.advance()
			p.skipNewlines()
			key, err := p.parseExpression(precLowest)
			if err != nil {
				return nil, err
			}
			p.skipNewlines()
			rb, err := p.expect(lexer.RBRACKET)
			if err != nil {
				return nil, err
			}
			node = &Index{base: withSpan(node.Span().Cover(rb.Span)), Container: node, Key: key}
		case lexer.AT:
			p.advance()
			name, err := p.expect(lexer.SYMBOL)
			if err != nil {
				return nil, err
			}
			node = &Field{base: withSpan(node.Span().Cover(name.Span)), Container: node, Name: name.Literal}
		default:
			return node, nil
		}
	}
}

// parseArgList parses a parenthesized, comma-separated argument list,
// already positioned at the opening '('.
func (p *Parser) parseArgList() ([]Node, lexer.Span, error) {
	p.advance() // consume '('
	p.skipNewlines()
	var args []Node
	for !p.curIs(lexer.RPAREN) {
		arg, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, lexer.Span{}, err
		}
		args = append(args, arg)
		p.skipNewlines()
		if p.curIs(lexer.COMMA) {
			p.advance()
			p.skipNewlines()
			continue
		}
		break
	}
	rparen, err := p.expect(lexer.RPAREN)
	if err != nil {
		return nil, lexer.Span{}, err
	}
	return args, rparen.Span, nil
}
