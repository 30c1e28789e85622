package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduceIdempotent(t *testing.T) {
	w := NewWorld()
	nat := w.TypeNat()
	lam := w.Lambda(nat, w.Var(nat, 0, Debug{}), Debug{})

	assert.Same(t, lam, w.Reduce(lam, nil))
	assert.Same(t, nat, w.Reduce(nat, nil))
}

func TestBetaLaw(t *testing.T) {
	w := NewWorld()
	nat := w.TypeNat()
	body := w.Tuple([]*Def{w.Var(nat, 0, Debug{}), w.LitNat(1)}, Debug{})
	lam := w.Lambda(nat, body, Debug{})
	arg := w.LitNat(9)

	assert.Same(t, w.Reduce(body, []*Def{arg}), w.App(lam, arg, Debug{}))
}

func TestEtaLambda(t *testing.T) {
	w := NewWorld()
	nat := w.TypeNat()
	f := w.Axiom(w.Pi(nat, nat, Debug{}), Dbg("f"))

	eta := w.Lambda(nat, w.App(f, w.Var(nat, 0, Debug{}), Debug{}), Debug{})
	assert.Same(t, f, eta)
}

func TestEtaLambdaSkippedWhenAffine(t *testing.T) {
	w := NewWorld()
	nat := w.TypeNat()
	f := w.Axiom(w.PiQ(nat, nat, w.AffineQ(), Debug{}), Dbg("f"))

	eta := w.Lambda(nat, w.App(f, w.Var(nat, 0, Debug{}), Debug{}), Debug{})
	require.False(t, eta.IsError())
	assert.NotSame(t, f, eta)
	assert.True(t, eta.Is(TagLambda))
}

func TestReduceShiftsFreeVars(t *testing.T) {
	w := NewWorld()
	star := w.Star(Unrestricted)

	// under two binders, substituting the inner one moves the outer down
	inner := w.Var(star, 1, Debug{})
	got := w.Reduce(inner, []*Def{w.TypeNat()})
	assert.Same(t, w.Var(star, 0, Debug{}), got)
}

func TestReduceTypeMismatch(t *testing.T) {
	w := NewWorld()
	nat := w.TypeNat()
	v := w.Var(nat, 0, Debug{})

	got := w.Reduce(v, []*Def{w.LitBool(true)})
	require.True(t, got.IsError())
	// the error carries the expected type, not the argument's
	assert.Same(t, nat, got.Type())
}

func TestShiftFreeVars(t *testing.T) {
	w := NewWorld()
	star := w.Star(Unrestricted)

	v := w.Var(star, 0, Debug{})
	up := w.ShiftFreeVars(v, 2)
	assert.Same(t, w.Var(star, 2, Debug{}), up)
	assert.Same(t, v, w.ShiftFreeVars(up, -2))

	closed := w.TypeNat()
	assert.Same(t, closed, w.ShiftFreeVars(closed, 5))
}

func TestReduceAtDepth(t *testing.T) {
	w := NewWorld()
	star := w.Star(Unrestricted)

	// Var 0 is bound below the substitution point and survives; Var 1 is
	// the substituted binder
	v0 := w.Var(star, 0, Debug{})
	v1 := w.Var(star, 1, Debug{})
	nat := w.TypeNat()

	assert.Same(t, v0, w.ReduceAt(v0, []*Def{nat}, 1))
	assert.Same(t, nat, w.ReduceAt(v1, []*Def{nat}, 1))
}

func TestReduceNominalStub(t *testing.T) {
	w := NewWorld()
	star := w.Star(Unrestricted)

	// a nominal axiom whose type mentions the binder is replaced by a
	// fresh stub with the reduced type
	a := w.Axiom(w.Var(star, 0, Debug{}), Dbg("a"))
	nat := w.TypeNat()

	got := w.Reduce(a, []*Def{nat})
	require.NotSame(t, a, got)
	assert.True(t, got.IsNominal())
	assert.Same(t, nat, got.Type())

	// one stub per (node, shift) pair within a single reduction
	tup := w.Tuple([]*Def{a, a}, Debug{})
	rt := w.Reduce(tup, []*Def{nat})
	require.True(t, rt.Is(TagTuple) || rt.Is(TagPack))
	assert.Same(t, w.ExtractI(rt, 0, Debug{}), w.ExtractI(rt, 1, Debug{}))
}

func TestReduceNominalFixpoint(t *testing.T) {
	w := NewWorld()
	star := w.Star(Unrestricted)

	// a recursive nominal sigma: its self-reference follows the stub, the
	// open variable is substituted, and the worklist closes the stub after
	// the outer reduction returns
	sig := w.SigmaNom(2, star, Dbg("rec"))
	sig.Set(0, sig)
	sig.Set(1, w.Var(star, 1, Debug{}))

	nat := w.TypeNat()
	got := w.Reduce(sig, []*Def{nat})
	require.NotSame(t, sig, got)
	require.True(t, got.IsNominal())
	require.True(t, got.IsClosed())
	assert.Same(t, got, got.Op(0))
	assert.Same(t, nat, got.Op(1))
}

func TestAppMemo(t *testing.T) {
	w := NewWorld()
	nat := w.TypeNat()
	f := w.Axiom(w.Pi(nat, nat, Debug{}), Dbg("f"))
	x := w.Axiom(nat, Dbg("x"))

	a1 := w.App(f, x, Debug{})
	a2 := w.App(f, x, Debug{})
	assert.Same(t, a1, a2)
	require.True(t, a1.Is(TagApp))
}
