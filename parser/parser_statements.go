/*
File    : dune/parser/parser_statements.go
*/
package parser

import "github.com/dune-shell/dune/lexer"

// Parse parses a full program: a sequence of statements separated by ';' or
// NEWLINE, to EOF. It is the entry point for the REPL (one line or one
// paste at a time) and for running a `.dune` script file.
func (p *Parser) Parse() ([]Node, error) {
	var stmts []Node
	p.skipSeparators()
	for !p.curIs(lexer.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return stmts, err
		}
		stmts = append(stmts, stmt)
		if !p.curIs(lexer.EOF) && !p.isStatementTerminator(p.cur.Type) {
			return stmts, p.parseErrorf(p.cur.Span, []string{";", "NEWLINE"}, "expected end of statement, found %s", p.cur.Type)
		}
		p.skipSeparators()
	}
	return stmts, nil
}

// parseStatement parses one top-level or block-level statement: a `let`
// declaration, or an expression — which, per §4.2, may turn out to be a
// command-form Apply if it starts with a bare Symbol.
func (p *Parser) parseStatement() (Node, error) {
	if p.curIs(lexer.LET) {
		return p.parseLet()
	}
	if p.curIs(lexer.SYMBOL) {
		return p.parseSymbolStatement()
	}
	return p.parseAssignOrExpr()
}

// parseLet parses `let name ('=' expr)?` and, for the `let name = expr in
// body` extension (ground: for-loops already reuse IN as a scoping
// introducer, so `let ... in ...` is a natural continuation), an optional
// scoped body — see DESIGN.md for this Open Question resolution.
//
// The name may also be a quoted operator (`let '+ = ...`, §4.4/§9): a TICK
// followed by an operator token names that operator the same way parseAtom's
// quoting handles it inside an expression, so operators can be rebound with
// the same `let` statement ordinary names use.
func (p *Parser) parseLet() (Node, error) {
	tok := p.cur
	p.advance()
	nameTok, span, err := p.parseLetTarget(tok)
	if err != nil {
		return nil, err
	}
	names := []string{nameTok}
	var inits []Node
	if p.curIs(lexer.ASSIGN) {
		p.advance()
		val, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		inits = append(inits, val)
		span = span.Cover(val.Span())
	}
	var body Node
	if p.curIs(lexer.IN) {
		p.advance()
		body, err = p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		span = span.Cover(body.Span())
	}
	return &Let{base: withSpan(span), Names: names, Inits: inits, Body: body}, nil
}

// parseLetTarget parses the name bound by `let`: an ordinary Symbol, or
// `'` followed by an operator token naming that operator.
func (p *Parser) parseLetTarget(letTok lexer.Token) (string, lexer.Span, error) {
	if p.curIs(lexer.TICK) {
		p.advance()
		if p.cur.Type.IsOperator() {
			tok := p.cur
			p.advance()
			return tok.Literal, letTok.Span.Cover(tok.Span), nil
		}
		name, err := p.expect(lexer.SYMBOL)
		if err != nil {
			return "", lexer.Span{}, err
		}
		return name.Literal, letTok.Span.Cover(name.Span), nil
	}
	name, err := p.expect(lexer.SYMBOL)
	if err != nil {
		return "", lexer.Span{}, err
	}
	return name.Literal, letTok.Span.Cover(name.Span), nil
}

// parseAssignOrExpr parses a general expression and, if it's immediately
// followed by '=', turns it into an Assign node. The left-hand side must be
// a Symbol, Index, or Field target.
func (p *Parser) parseAssignOrExpr() (Node, error) {
	expr, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if !p.curIs(lexer.ASSIGN) {
		return expr, nil
	}
	switch expr.(type) {
	case *Symbol, *Index, *Field:
	default:
		return nil, p.parseErrorf(expr.Span(), []string{"assignable target"}, "left-hand side of '=' is not assignable")
	}
	p.advance()
	val, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	return &Assign{base: withSpan(expr.Span().Cover(val.Span())), Target: expr, Expr: val}, nil
}
