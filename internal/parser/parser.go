// Package parser turns surface syntax into Defs by driving the term
// builder. Names resolve to De Bruijn variables through a scope stack; the
// graph itself never stores names beyond debug info.
package parser

import (
	"fmt"

	"github.com/sunholo/tir/internal/ir"
	"github.com/sunholo/tir/internal/lexer"
	"github.com/sunholo/tir/internal/report"
)

// Env seeds the parser with named Defs (axioms, type constructors).
type Env map[string]*ir.Def

// Parse builds the Def denoted by src in the given world.
func Parse(w *ir.World, src string, env Env) (*ir.Def, error) {
	p := &Parser{w: w, toks: lexer.New(src).Tokens(), env: env}
	d, err := p.expr()
	if err != nil {
		return nil, err
	}
	if p.cur().Type != lexer.EOF {
		return nil, p.errorf("trailing input at %q", p.cur().Lit)
	}
	return d, nil
}

// MustParse is Parse for inputs the caller controls.
func MustParse(w *ir.World, src string, env Env) *ir.Def {
	d, err := Parse(w, src, env)
	if err != nil {
		panic(err)
	}
	return d
}

type scopeKind int

const (
	scopeVar  scopeKind = iota // a binder variable
	scopeComp                  // a named component of a sigma-typed binder
	scopeDef                   // a let-bound definition
)

// scope is one visible name. bodyDepth is the binder depth just inside the
// binder that introduced it; typ is the binder type as built at its intro
// context.
type scope struct {
	name      string
	kind      scopeKind
	bodyDepth int
	typ       *ir.Def
	comp      int
	def       *ir.Def
	defDepth  int
}

// Parser is a hand-written recursive-descent parser over the token stream.
type Parser struct {
	w      *ir.World
	toks   []lexer.Token
	pos    int
	env    Env
	scopes []scope
	// binders tracks the domain type of every enclosing binder, innermost
	// last, for explicit \n references
	binders []*ir.Def
	depth   int
}

func (p *Parser) cur() lexer.Token  { return p.toks[p.pos] }
func (p *Parser) peek() lexer.Token {
	if p.pos+1 < len(p.toks) {
		return p.toks[p.pos+1]
	}
	return p.toks[len(p.toks)-1]
}

func (p *Parser) advance() lexer.Token {
	t := p.toks[p.pos]
	if p.pos+1 < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *Parser) accept(t lexer.TokenType) bool {
	if p.cur().Type == t {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(t lexer.TokenType) error {
	if !p.accept(t) {
		return p.errorf("expected %s, found %q", t, p.cur().Lit)
	}
	return nil
}

func (p *Parser) errorf(format string, args ...any) error {
	return report.Wrap(report.New("parser", "PAR001", fmt.Sprintf(format, args...)).At(p.cur().Pos))
}

/*
 * scope handling
 */

// pushBinder enters the body of a binder with the given domain type,
// optionally naming the variable and/or its components.
func (p *Parser) pushBinder(name string, typ *ir.Def, comps []string) {
	p.depth++
	p.binders = append(p.binders, typ)
	if name != "" {
		p.scopes = append(p.scopes, scope{name: name, kind: scopeVar, bodyDepth: p.depth, typ: typ})
	}
	for i, c := range comps {
		if c == "" {
			continue
		}
		p.scopes = append(p.scopes, scope{name: c, kind: scopeComp, bodyDepth: p.depth, typ: typ, comp: i})
	}
}

func (p *Parser) popBinder(mark int) {
	p.depth--
	p.binders = p.binders[:len(p.binders)-1]
	p.scopes = p.scopes[:mark]
}

func (p *Parser) mark() int { return len(p.scopes) }

// resolve looks a name up in the scopes, then the environment. Scope hits
// become variables (or component extracts) with types lifted to the current
// depth; environment and let hits are closed Defs shifted as needed.
func (p *Parser) resolve(name string) *ir.Def {
	for i := len(p.scopes) - 1; i >= 0; i-- {
		s := p.scopes[i]
		if s.name != name {
			continue
		}
		switch s.kind {
		case scopeDef:
			return p.w.ShiftFreeVars(s.def, p.depth-s.defDepth)
		default:
			index := p.depth - s.bodyDepth
			typ := p.w.ShiftFreeVars(s.typ, index+1)
			v := p.w.Var(typ, index, ir.Dbg(name))
			if s.kind == scopeComp {
				return p.w.ExtractI(v, s.comp, ir.Dbg(name))
			}
			return v
		}
	}
	if d, ok := p.env[name]; ok {
		return d
	}
	return nil
}

// maybeQualifier consumes a qualifier suffix: a superscript constant, or an
// adjacent name that denotes a ℚ-typed def.
func (p *Parser) maybeQualifier() *ir.Def {
	if p.cur().Type == lexer.QUAL {
		return p.w.QualifierLit(ir.Qualifier(p.advance().Qual))
	}
	if p.cur().Type == lexer.IDENT {
		if d := p.resolve(p.cur().Lit); d != nil && d.Type() == p.w.QualifierType() {
			p.advance()
			return d
		}
	}
	return p.w.Unlimited()
}
