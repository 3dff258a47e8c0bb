/*
File    : dune/parser/parser_controls.go
*/
package parser

import "github.com/dune-shell/dune/lexer"

// parseBlockOrExpr parses an if/for/while/lambda/macro body: a braced
// Block, or (so one-liners like `if c body` work without braces) a single
// expression.
func (p *Parser) parseBlockOrExpr() (Node, error) {
	if p.curIs(lexer.LBRACE) {
		return p.parseBlock()
	}
	return p.parseExpression(precLowest)
}

func (p *Parser) parseIf() (Node, error) {
	tok := p.cur
	p.advance()
	cond, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlockOrExpr()
	if err != nil {
		return nil, err
	}
	node := &If{base: withSpan(tok.Span.Cover(then.Span())), Cond: cond, Then: then}
	if p.curIs(lexer.ELSE) {
		p.advance()
		var elseBranch Node
		if p.curIs(lexer.IF) {
			elseBranch, err = p.parseIf()
		} else {
			elseBranch, err = p.parseBlockOrExpr()
		}
		if err != nil {
			return nil, err
		}
		node.Else = elseBranch
		node.base = withSpan(node.base.span.Cover(elseBranch.Span()))
	}
	return node, nil
}

func (p *Parser) parseFor() (Node, error) {
	tok := p.cur
	p.advance()
	name, err := p.expect(lexer.SYMBOL)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.IN); err != nil {
		return nil, err
	}
	iter, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlockOrExpr()
	if err != nil {
		return nil, err
	}
	return &For{base: withSpan(tok.Span.Cover(body.Span())), Name: name.Literal, Iter: iter, Body: body}, nil
}

func (p *Parser) parseWhile() (Node, error) {
	tok := p.cur
	p.advance()
	cond, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlockOrExpr()
	if err != nil {
		return nil, err
	}
	return &While{base: withSpan(tok.Span.Cover(body.Span())), Cond: cond, Body: body}, nil
}

// parseBlock parses `{ stmt (';'|NEWLINE) stmt* }`, used only as the body
// of if/for/while/lambda/macro (see parseMapLiteral for why a bare `{...}`
// in expression position means Map instead).
func (p *Parser) parseBlock() (Node, error) {
	lb, err := p.expect(lexer.LBRACE)
	if err != nil {
		return nil, err
	}
	p.skipSeparators()
	var exprs []Node
	for !p.curIs(lexer.RBRACE) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, stmt)
		if !p.curIs(lexer.RBRACE) && !p.isStatementTerminator(p.cur.Type) {
			return nil, p.parseErrorf(p.cur.Span, []string{";", "NEWLINE", "}"}, "expected end of statement, found %s", p.cur.Type)
		}
		p.skipSeparators()
	}
	rb, err := p.expect(lexer.RBRACE)
	if err != nil {
		return nil, err
	}
	return &Block{base: withSpan(lb.Span.Cover(rb.Span)), Exprs: exprs}, nil
}

// skipSeparators consumes any run of statement separators (';' and
// NEWLINE), allowing blank lines and empty statements between block
// entries.
func (p *Parser) skipSeparators() {
	for p.curIs(lexer.SEMI) || p.curIs(lexer.NEWLINE) {
		p.advance()
	}
}
