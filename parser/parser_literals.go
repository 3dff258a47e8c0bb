/*
File    : dune/parser/parser_literals.go
*/
package parser

import (
	"strconv"

	"github.com/dune-shell/dune/errors"
	"github.com/dune-shell/dune/lexer"
)

// parseAtom parses the innermost grammar production: a literal, a
// parenthesized/bracketed/braced construct, a control-flow expression, a
// quote, or a bare symbol (possibly the start of a lambda, `name -> body`).
func (p *Parser) parseAtom() (Node, error) {
	switch p.cur.Type {
	case lexer.INT:
		return p.parseIntLiteral()
	case lexer.FLOAT:
		return p.parseFloatLiteral()
	case lexer.STRING:
		tok := p.cur
		p.advance()
		return &String{base: withSpan(tok.Span), Value: tok.Literal}, nil
	case lexer.TRUE, lexer.FALSE:
		tok := p.cur
		p.advance()
		return &Boolean{base: withSpan(tok.Span), Value: tok.Type == lexer.TRUE}, nil
	case lexer.NONE:
		tok := p.cur
		p.advance()
		return &None{base: withSpan(tok.Span)}, nil
	case lexer.SYMBOL:
		return p.parseSymbolOrLambda()
	case lexer.TICK:
		return p.parseQuote()
	case lexer.LPAREN:
		return p.parseParenOrLambda()
	case lexer.LBRACKET:
		return p.parseListLiteral()
	case lexer.LBRACE:
		return p.parseMapLiteral()
	case lexer.MACRO:
		return p.parseMacro()
	case lexer.IF:
		return p.parseIf()
	case lexer.FOR:
		return p.parseFor()
	case lexer.WHILE:
		return p.parseWhile()
	case lexer.EOF:
		return nil, errors.Incomplete(p.cur.Span)
	default:
		return nil, p.parseErrorf(p.cur.Span, nil, "unexpected token %s", p.cur.Type)
	}
}

func (p *Parser) parseIntLiteral() (Node, error) {
	tok := p.cur
	v, err := strconv.ParseInt(tok.Literal, 10, 64)
	if err != nil {
		return nil, p.parseErrorf(tok.Span, []string{"integer"}, "invalid integer literal %q", tok.Literal)
	}
	p.advance()
	return &Integer{base: withSpan(tok.Span), Value: v}, nil
}

func (p *Parser) parseFloatLiteral() (Node, error) {
	tok := p.cur
	v, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		return nil, p.parseErrorf(tok.Span, []string{"float"}, "invalid float literal %q", tok.Literal)
	}
	p.advance()
	return &Float{base: withSpan(tok.Span), Value: v}, nil
}

// parseSymbolOrLambda consumes a bare name and, if it's immediately
// followed by '->', continues parsing it as a single-parameter lambda.
func (p *Parser) parseSymbolOrLambda() (Node, error) {
	tok := p.cur
	p.advance()
	if p.curIs(lexer.ARROW) {
		p.advance()
		body, err := p.parseLambdaBody()
		if err != nil {
			return nil, err
		}
		return &Lambda{base: withSpan(tok.Span.Cover(body.Span())), Params: []string{tok.Literal}, Body: body}, nil
	}
	return &Symbol{base: withSpan(tok.Span), Name: tok.Literal}, nil
}

// parseLambdaBody parses the expression (or, for a curried lambda, a nested
// lambda) to the right of '->'. Curried lambdas (`x -> y -> x + y`) fall out
// naturally: parseSymbolOrLambda recurses when it sees another '->'.
func (p *Parser) parseLambdaBody() (Node, error) {
	if p.curIs(lexer.LBRACE) {
		return p.parseBlock()
	}
	return p.parseExpression(precLowest)
}

// parseParenOrLambda disambiguates `(expr)` from a multi-parameter lambda
// `(a, b) -> expr`: it parses the comma-separated contents first, then
// checks whether '->' follows.
func (p *Parser) parseParenOrLambda() (Node, error) {
	lparen := p.cur
	p.advance()
	p.skipNewlines()
	var elems []Node
	for !p.curIs(lexer.RPAREN) {
		e, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
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
		return nil, err
	}
	if p.curIs(lexer.ARROW) {
		params := make([]string, len(elems))
		for i, e := range elems {
			sym, ok := e.(*Symbol)
			if !ok {
				return nil, p.parseErrorf(e.Span(), []string{"parameter name"}, "invalid lambda parameter")
			}
			params[i] = sym.Name
		}
		p.advance()
		body, err := p.parseLambdaBody()
		if err != nil {
			return nil, err
		}
		return &Lambda{base: withSpan(lparen.Span.Cover(body.Span())), Params: params, Body: body}, nil
	}
	if len(elems) != 1 {
		return nil, p.parseErrorf(rparen.Span, nil, "expected a single expression in parentheses")
	}
	return &Group{base: withSpan(lparen.Span.Cover(rparen.Span)), Inner: elems[0]}, nil
}

func (p *Parser) parseListLiteral() (Node, error) {
	lb := p.cur
	p.advance()
	p.skipNewlines()
	var elems []Node
	for !p.curIs(lexer.RBRACKET) {
		e, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		p.skipNewlines()
		if p.curIs(lexer.COMMA) {
			p.advance()
			p.skipNewlines()
			continue
		}
		break
	}
	rb, err := p.expect(lexer.RBRACKET)
	if err != nil {
		return nil, err
	}
	return &List{base: withSpan(lb.Span.Cover(rb.Span)), Elements: elems}, nil
}

// parseMapLiteral parses `{ key = value, ... }`. Dune's lexer has no ':'
// token, so map entries use '=' as the key/value separator; this also frees
// a bare `{...}` in expression position to always mean Map, while Block
// syntax (`{ e1; e2 }`) is only reachable as the body of if/for/while/
// lambda/macro, where parseBlock is called directly instead of parseAtom.
func (p *Parser) parseMapLiteral() (Node, error) {
	lb := p.cur
	p.advance()
	p.skipNewlines()
	var entries []MapEntry
	for !p.curIs(lexer.RBRACE) {
		key, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		p.skipNewlines()
		if _, err := p.expect(lexer.ASSIGN); err != nil {
			return nil, err
		}
		p.skipNewlines()
		val, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		entries = append(entries, MapEntry{Key: key, Value: val})
		p.skipNewlines()
		if p.curIs(lexer.COMMA) {
			p.advance()
			p.skipNewlines()
			continue
		}
		break
	}
	rb, err := p.expect(lexer.RBRACE)
	if err != nil {
		return nil, err
	}
	return &Map{base: withSpan(lb.Span.Cover(rb.Span)), Entries: entries}, nil
}

// parseParamList parses a macro's parameter list: a bare name, or a
// parenthesized, comma-separated list of names.
func (p *Parser) parseParamList() ([]string, error) {
	if p.curIs(lexer.SYMBOL) {
		name := p.cur.Literal
		p.advance()
		return []string{name}, nil
	}
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	p.skipNewlines()
	var names []string
	for !p.curIs(lexer.RPAREN) {
		tok, err := p.expect(lexer.SYMBOL)
		if err != nil {
			return nil, err
		}
		names = append(names, tok.Literal)
		p.skipNewlines()
		if p.curIs(lexer.COMMA) {
			p.advance()
			p.skipNewlines()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	return names, nil
}

func (p *Parser) parseMacro() (Node, error) {
	tok := p.cur
	p.advance()
	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.ARROW); err != nil {
		return nil, err
	}
	body, err := p.parseLambdaBody()
	if err != nil {
		return nil, err
	}
	return &Macro{base: withSpan(tok.Span.Cover(body.Span())), Params: params, Body: body}, nil
}

// parseQuote parses `'atom`: a single unevaluated atom, or — when the atom
// is a parenthesized, space-separated run of atoms — the same shape a
// command-form statement would produce, so that `'(a b)` quotes exactly
// what evaluating `a b` as a command would have applied.
func (p *Parser) parseQuote() (Node, error) {
	tick := p.cur
	p.advance()
	if p.curIs(lexer.LPAREN) {
		inner, err := p.parseQuotedForm()
		if err != nil {
			return nil, err
		}
		return &Quote{base: withSpan(tick.Span.Cover(inner.Span())), Expr: inner}, nil
	}
	inner, err := p.parseQuotable()
	if err != nil {
		return nil, err
	}
	return &Quote{base: withSpan(tick.Span.Cover(inner.Span())), Expr: inner}, nil
}

// parseQuotable parses one atom for use inside a quote, additionally
// accepting a bare operator token as a Symbol (`'+`) per §4.4/§9.
func (p *Parser) parseQuotable() (Node, error) {
	if p.cur.Type.IsOperator() {
		tok := p.cur
		p.advance()
		return &Symbol{base: withSpan(tok.Span), Name: tok.Literal}, nil
	}
	if p.curIs(lexer.TICK) {
		return p.parseQuote()
	}
	return p.parseAtom()
}

// parseQuotedForm parses the contents of `'( ... )`: zero or more
// space-separated quotable atoms with no commas. A leading Symbol turns the
// form into the Apply that command-form parsing would have produced from
// the same tokens; otherwise it is a literal List.
func (p *Parser) parseQuotedForm() (Node, error) {
	lparen := p.cur
	p.advance()
	p.skipNewlines()
	var atoms []Node
	for !p.curIs(lexer.RPAREN) {
		a, err := p.parseQuotable()
		if err != nil {
			return nil, err
		}
		atoms = append(atoms, a)
		p.skipNewlines()
	}
	rparen, err := p.expect(lexer.RPAREN)
	if err != nil {
		return nil, err
	}
	span := lparen.Span.Cover(rparen.Span)
	if len(atoms) == 0 {
		return &List{base: withSpan(span)}, nil
	}
	if callee, ok := atoms[0].(*Symbol); ok {
		if len(atoms) == 1 {
			return callee, nil
		}
		return &Apply{base: withSpan(span), Callee: callee, Args: atoms[1:]}, nil
	}
	return &List{base: withSpan(span), Elements: atoms}, nil
}
