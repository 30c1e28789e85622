package parser

import (
	"github.com/sunholo/tir/internal/ir"
	"github.com/sunholo/tir/internal/lexer"
)

// expr parses one expression: binders, let bindings, then application
// chains.
func (p *Parser) expr() (*ir.Def, error) {
	switch p.cur().Type {
	case lexer.PI:
		return p.binderExpr(true)
	case lexer.LAMBDA:
		return p.binderExpr(false)
	case lexer.CN:
		p.advance()
		dom, err := p.postfix()
		if err != nil {
			return nil, err
		}
		return p.w.CnType(dom), nil
	case lexer.IDENT:
		if p.peek().Type == lexer.EQ {
			return p.letExpr()
		}
	}
	return p.postfix()
}

// letExpr parses `x = e; body` as a pure name binding.
func (p *Parser) letExpr() (*ir.Def, error) {
	name := p.advance().Lit
	if err := p.expect(lexer.EQ); err != nil {
		return nil, err
	}
	val, err := p.expr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.SEMI); err != nil {
		return nil, err
	}
	mark := p.mark()
	p.scopes = append(p.scopes, scope{name: name, kind: scopeDef, def: val, defDepth: p.depth})
	body, err := p.expr()
	p.scopes = p.scopes[:mark]
	if err != nil {
		return nil, err
	}
	return body, nil
}

// binderExpr parses Π or λ followed by one binder group, a dot, and a body.
func (p *Parser) binderExpr(isPi bool) (*ir.Def, error) {
	p.advance()
	name, domain, comps, err := p.binder()
	if err != nil {
		return nil, err
	}
	q := p.maybeBinderQualifier()
	if err := p.expect(lexer.DOT); err != nil {
		return nil, err
	}

	mark := p.mark()
	p.pushBinder(name, domain, comps)
	body, err := p.expr()
	p.popBinder(mark)
	if err != nil {
		return nil, err
	}
	if isPi {
		return p.w.PiQ(domain, body, q, ir.Debug{}), nil
	}
	return p.w.LambdaQ(domain, body, q, ir.Debug{}), nil
}

// maybeBinderQualifier is a qualifier annotation on the arrow itself; no
// surface form uses one today, so the arrow defaults to unrestricted.
func (p *Parser) maybeBinderQualifier() *ir.Def { return p.w.Unlimited() }

// binder parses one binder group: `name: type`, a bracket group whose
// component names stay visible in the body, or an anonymous domain type.
func (p *Parser) binder() (name string, domain *ir.Def, comps []string, err error) {
	if p.cur().Type == lexer.IDENT && p.peek().Type == lexer.COLON {
		name = p.advance().Lit
		p.advance()
	}
	if p.cur().Type == lexer.LBRACKET {
		domain, comps, err = p.bracket()
		return name, domain, comps, err
	}
	domain, err = p.postfix()
	return name, domain, nil, err
}

// postfix parses a primary expression and its application and extract
// suffixes.
func (p *Parser) postfix() (*ir.Def, error) {
	d, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur().Type {
		case lexer.LPAREN:
			p.advance()
			var args []*ir.Def
			if p.cur().Type != lexer.RPAREN {
				for {
					a, err := p.expr()
					if err != nil {
						return nil, err
					}
					args = append(args, a)
					if !p.accept(lexer.COMMA) {
						break
					}
				}
			}
			if err := p.expect(lexer.RPAREN); err != nil {
				return nil, err
			}
			d = p.w.AppN(d, args, ir.Debug{})
		case lexer.HASH:
			p.advance()
			d, err = p.extractSuffix(d)
			if err != nil {
				return nil, err
			}
		default:
			return d, nil
		}
	}
}

// extractSuffix parses the index of `e#i`: a plain number projects by
// position, an index literal or any other primary is a general extract.
func (p *Parser) extractSuffix(d *ir.Def) (*ir.Def, error) {
	if t := p.cur(); t.Type == lexer.NUMBER && !t.IsArity && t.Sub < 0 {
		p.advance()
		return p.w.ExtractI(d, int(t.Val), ir.Debug{}), nil
	}
	idx, err := p.primary()
	if err != nil {
		return nil, err
	}
	return p.w.Extract(d, idx, ir.Debug{}), nil
}

func (p *Parser) primary() (*ir.Def, error) {
	switch t := p.cur(); t.Type {
	case lexer.STAR:
		p.advance()
		return p.w.StarQ(p.maybeQualifier()), nil
	case lexer.AKIND:
		p.advance()
		return p.w.ArityKindQ(p.maybeQualifier()), nil
	case lexer.MKIND:
		p.advance()
		return p.w.MultiArityKindQ(p.maybeQualifier()), nil
	case lexer.QKIND:
		p.advance()
		return p.w.QualifierType(), nil
	case lexer.QUAL:
		p.advance()
		return p.w.QualifierLit(ir.Qualifier(t.Qual)), nil
	case lexer.NUMBER:
		p.advance()
		return p.number(t), nil
	case lexer.LBRACE:
		return p.litAscription()
	case lexer.LBRACKET:
		d, _, err := p.bracket()
		return d, err
	case lexer.LGUILL:
		return p.variadicLiteral(lexer.RGUILL, false)
	case lexer.LANGLE:
		return p.variadicLiteral(lexer.RANGLE, true)
	case lexer.LPAREN:
		return p.parenGroup()
	case lexer.BACKSLASH:
		return p.deBruijn()
	case lexer.PI, lexer.LAMBDA, lexer.CN:
		return p.expr()
	case lexer.IDENT:
		p.advance()
		if d := p.resolve(t.Lit); d != nil {
			return d, nil
		}
		return nil, p.errorf("unknown name %q", t.Lit)
	case lexer.ERROR:
		return nil, p.errorf("%s", t.Lit)
	}
	return nil, p.errorf("unexpected %q", p.cur().Lit)
}

// number builds the literal a NUMBER token denotes: an arity, an index of a
// literal arity, or a nat.
func (p *Parser) number(t lexer.Token) *ir.Def {
	switch {
	case t.IsArity:
		return p.w.ArityQ(int(t.Val), p.maybeQualifier())
	case t.Sub >= 0:
		arity := p.w.ArityQ(int(t.Sub), p.maybeQualifier())
		return p.w.IndexA(arity, int(t.Val))
	default:
		return p.w.LitNat(t.Val)
	}
}

// litAscription parses `{payload: type}`.
func (p *Parser) litAscription() (*ir.Def, error) {
	p.advance()
	t := p.cur()
	if t.Type != lexer.NUMBER {
		return nil, p.errorf("expected literal payload, found %q", t.Lit)
	}
	p.advance()
	if err := p.expect(lexer.COLON); err != nil {
		return nil, err
	}
	typ, err := p.expr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	return p.w.Lit(typ, ir.Box(t.Val), ir.Debug{}), nil
}

// parenGroup parses `(e)` grouping or `(a, b, …)` tuple literals.
func (p *Parser) parenGroup() (*ir.Def, error) {
	p.advance()
	if p.accept(lexer.RPAREN) {
		return p.w.Tuple0(ir.Unrestricted), nil
	}
	first, err := p.expr()
	if err != nil {
		return nil, err
	}
	if !p.accept(lexer.COMMA) {
		return first, p.expect(lexer.RPAREN)
	}
	defs := []*ir.Def{first}
	for {
		d, err := p.expr()
		if err != nil {
			return nil, err
		}
		defs = append(defs, d)
		if !p.accept(lexer.COMMA) {
			break
		}
	}
	if err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	return p.w.Tuple(defs, ir.Debug{}), nil
}

// deBruijn parses `\n` or `\n::type` explicit variables.
func (p *Parser) deBruijn() (*ir.Def, error) {
	p.advance()
	t := p.cur()
	if t.Type != lexer.NUMBER || t.IsArity || t.Sub >= 0 {
		return nil, p.errorf("expected De Bruijn index, found %q", t.Lit)
	}
	p.advance()
	index := int(t.Val)
	if p.accept(lexer.DCOLON) {
		typ, err := p.primary()
		if err != nil {
			return nil, err
		}
		return p.w.Var(typ, index, ir.Debug{}), nil
	}
	if index >= len(p.binders) {
		return nil, p.errorf("\\%d references no enclosing binder", index)
	}
	typ := p.w.ShiftFreeVars(p.binders[len(p.binders)-1-index], index+1)
	return p.w.Var(typ, index, ir.Debug{}), nil
}

// bracket parses `[…]`: the unit `[]`, a variadic `[i: a; body]`, or a
// sigma group `[x: T, U, …]` whose later components see the earlier ones.
// Component names are returned so binders can keep them visible.
func (p *Parser) bracket() (*ir.Def, []string, error) {
	p.advance()
	if p.accept(lexer.RBRACKET) || p.accept(lexer.RPAREN) {
		return p.w.Unit(ir.Unrestricted), nil, nil
	}

	var name string
	if p.cur().Type == lexer.IDENT && p.peek().Type == lexer.COLON {
		name = p.advance().Lit
		p.advance()
	}
	first, err := p.expr()
	if err != nil {
		return nil, nil, err
	}

	if p.accept(lexer.SEMI) {
		// variadic: the optional name binds the index inside the body
		mark := p.mark()
		p.pushBinder(name, first, nil)
		body, err := p.expr()
		p.popBinder(mark)
		if err != nil {
			return nil, nil, err
		}
		if err := p.closeBracket(); err != nil {
			return nil, nil, err
		}
		return p.w.Variadic(first, body, ir.Debug{}), nil, nil
	}

	names := []string{name}
	defs := []*ir.Def{first}
	mark := p.mark()
	for p.accept(lexer.COMMA) {
		p.pushBinder(names[len(names)-1], defs[len(defs)-1], nil)
		var n string
		if p.cur().Type == lexer.IDENT && p.peek().Type == lexer.COLON {
			n = p.advance().Lit
			p.advance()
		}
		d, err := p.expr()
		if err != nil {
			p.unwindBinders(mark, len(defs)-1)
			return nil, nil, err
		}
		names = append(names, n)
		defs = append(defs, d)
	}
	p.unwindBinders(mark, len(defs)-1)
	if err := p.closeBracket(); err != nil {
		return nil, nil, err
	}
	return p.w.Sigma(defs, ir.Debug{}), names, nil
}

func (p *Parser) unwindBinders(mark, n int) {
	for i := 0; i < n; i++ {
		p.depth--
		p.binders = p.binders[:len(p.binders)-1]
	}
	p.scopes = p.scopes[:mark]
}

// closeBracket accepts the bracket or paren closer (Σ groups may use
// parens).
func (p *Parser) closeBracket() error {
	if p.accept(lexer.RBRACKET) || p.accept(lexer.RPAREN) {
		return nil
	}
	return p.errorf("expected closing bracket, found %q", p.cur().Lit)
}

// variadicLiteral parses «a; T» and ‹a; v›.
func (p *Parser) variadicLiteral(close lexer.TokenType, pack bool) (*ir.Def, error) {
	p.advance()
	var name string
	if p.cur().Type == lexer.IDENT && p.peek().Type == lexer.COLON {
		name = p.advance().Lit
		p.advance()
	}
	arity, err := p.expr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.SEMI); err != nil {
		return nil, err
	}
	mark := p.mark()
	p.pushBinder(name, arity, nil)
	body, err := p.expr()
	p.popBinder(mark)
	if err != nil {
		return nil, err
	}
	if err := p.expect(close); err != nil {
		return nil, err
	}
	if pack {
		return p.w.Pack(arity, body, ir.Debug{}), nil
	}
	return p.w.Variadic(arity, body, ir.Debug{}), nil
}
