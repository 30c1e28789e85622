package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSigmaAssignable(t *testing.T) {
	w := NewWorld()
	star := w.Star(Unrestricted)
	nat := w.TypeNat()

	sig := w.Sigma([]*Def{star, w.Var(star, 0, Debug{})}, Debug{})
	require.True(t, sig.Is(TagSigma))

	good := w.Tuple([]*Def{nat, w.LitNat(42)}, Debug{})
	assert.True(t, w.Assignable(sig, good))

	bad := w.Tuple([]*Def{nat, w.LitBool(false)}, Debug{})
	assert.False(t, w.Assignable(sig, bad))
}

func TestExtractDependentSigma(t *testing.T) {
	w := NewWorld()
	star := w.Star(Unrestricted)

	sig := w.Sigma([]*Def{star, w.Var(star, 0, Debug{})}, Debug{})
	v := w.Axiom(sig, Dbg("v"))

	fst := w.ExtractI(v, 0, Debug{})
	assert.Same(t, star, fst.Type())

	snd := w.ExtractI(v, 1, Debug{})
	assert.Same(t, fst, snd.Type())
}

func TestExtractProjection(t *testing.T) {
	w := NewWorld()
	nat := w.TypeNat()
	n23, n42 := w.LitNat(23), w.LitNat(42)

	tup := w.Tuple([]*Def{n23, w.LitBool(true)}, Debug{})
	assert.Same(t, n23, w.ExtractI(tup, 0, Debug{}))
	assert.Same(t, w.LitBool(true), w.ExtractI(tup, 1, Debug{}))

	// lambdas projecting out of a pair reduce to the component
	nxn := w.Sigma([]*Def{nat, nat}, Debug{})
	fst := w.Lambda(nxn, w.ExtractI(w.Var(nxn, 0, Debug{}), 0, Debug{}), Debug{})
	snd := w.Lambda(nxn, w.ExtractI(w.Var(nxn, 0, Debug{}), 1, Debug{}), Debug{})
	pair := w.Tuple([]*Def{n23, n42}, Debug{})
	assert.Same(t, n23, w.App(fst, pair, Debug{}))
	assert.Same(t, n42, w.App(snd, pair, Debug{}))
}

func TestExtractOutOfRange(t *testing.T) {
	w := NewWorld()
	tup := w.Tuple([]*Def{w.LitNat(1), w.LitBool(true)}, Debug{})
	assert.True(t, w.ExtractI(tup, 7, Debug{}).IsError())
}

func TestTupleEta(t *testing.T) {
	w := NewWorld()
	nat := w.TypeNat()
	sig := w.Sigma([]*Def{nat, w.TypeBool()}, Debug{})
	v := w.Axiom(sig, Dbg("t"))

	eta := w.Tuple([]*Def{w.ExtractI(v, 0, Debug{}), w.ExtractI(v, 1, Debug{})}, Debug{})
	assert.Same(t, v, eta)
}

func TestSigmaSingleton(t *testing.T) {
	w := NewWorld()
	nat := w.TypeNat()

	// single-component sigma is the component
	assert.Same(t, nat, w.Sigma([]*Def{nat}, Debug{}))

	// one-element tuples are their element
	assert.Same(t, w.LitNat(3), w.Tuple([]*Def{w.LitNat(3)}, Debug{}))
}

func TestSingletonType(t *testing.T) {
	w := NewWorld()
	nat := w.TypeNat()
	n := w.LitNat(9)

	s := w.Singleton(n, Debug{})
	require.True(t, s.Is(TagSingleton))
	assert.Same(t, w.Star(Unrestricted), s.Type())
	assert.Same(t, s, w.Singleton(n, Debug{}))

	// singletons of pair values go component-wise
	v := w.Axiom(w.Sigma([]*Def{nat, w.TypeBool()}, Debug{}), Dbg("p"))
	sp := w.Singleton(v, Debug{})
	require.True(t, sp.Is(TagSigma))
	assert.True(t, sp.Op(0).Is(TagSingleton))
	assert.True(t, sp.Op(1).Is(TagSingleton))

	// singletons of functions go under the binder
	f := w.Axiom(w.Pi(nat, nat, Debug{}), Dbg("f"))
	sf := w.Singleton(f, Debug{})
	require.True(t, sf.Is(TagPi))
	assert.Same(t, nat, sf.Op(0))
	assert.True(t, sf.Op(1).Is(TagSingleton))
}

func TestInsert(t *testing.T) {
	w := NewWorld()
	n1, n2, n9 := w.LitNat(1), w.LitNat(2), w.LitNat(9)
	tup := w.Tuple([]*Def{n1, w.LitBool(true)}, Debug{})

	upd := w.Insert(tup, w.Index(2, 0), n9, Debug{})
	assert.Same(t, w.Tuple([]*Def{n9, w.LitBool(true)}, Debug{}), upd)
	assert.Same(t, tup.Type(), upd.Type())

	// type-changing writes are rejected
	bad := w.Insert(tup, w.Index(2, 1), n2, Debug{})
	assert.True(t, bad.IsError())

	// symbolic index stays an Insert node of the same type
	pair := w.Tuple([]*Def{n1, n2}, Debug{})
	v := w.Axiom(w.Arity(2, Unrestricted), Dbg("i"))
	sym := w.Insert(pair, v, n9, Debug{})
	require.True(t, sym.Is(TagInsert))
	assert.Same(t, pair.Type(), sym.Type())
}
