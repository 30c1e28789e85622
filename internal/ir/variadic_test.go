package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArityAndIndex(t *testing.T) {
	w := NewWorld()
	a4 := w.Arity(4, Unrestricted)
	assert.Same(t, a4, w.Arity(4, Unrestricted))
	assert.Same(t, w.ArityKind(Unrestricted), a4.Type())

	n, ok := a4.ArityValue()
	require.True(t, ok)
	assert.Equal(t, 4, n)

	i := w.Index(4, 2)
	assert.Same(t, i, w.Index(4, 2))
	assert.Same(t, a4, i.Type())
	iv, ok := i.IndexValue()
	require.True(t, ok)
	assert.Equal(t, 2, iv)

	assert.True(t, w.Index(4, 9).IsError())
}

func TestVariadicCollapse(t *testing.T) {
	w := NewWorld()
	nat := w.TypeNat()

	// arity 0 is the unit type
	assert.Same(t, w.Unit(Unrestricted), w.Variadic(w.Arity(0, Unrestricted), nat, Debug{}))

	// arity 1 is the body at the only index
	assert.Same(t, nat, w.Variadic(w.Arity(1, Unrestricted), nat, Debug{}))

	// packs collapse the same way
	n := w.LitNat(7)
	assert.Same(t, w.Tuple0(Unrestricted), w.Pack(w.Arity(0, Unrestricted), n, Debug{}))
	assert.Same(t, n, w.Pack(w.Arity(1, Unrestricted), n, Debug{}))
}

func TestVariadicFlattening(t *testing.T) {
	w := NewWorld()
	star := w.Star(Unrestricted)
	shape := w.Sigma([]*Def{w.Arity(2, Unrestricted), w.Arity(3, Unrestricted)}, Debug{})

	flat := w.Variadic(shape, star, Debug{})
	nested := w.Variadic(w.Arity(2, Unrestricted), w.Variadic(w.Arity(3, Unrestricted), star, Debug{}), Debug{})
	assert.Same(t, nested, flat)
}

func TestHomogeneousSigmaIsVariadic(t *testing.T) {
	w := NewWorld()
	nat := w.TypeNat()
	sig := w.Sigma([]*Def{nat, nat, nat}, Debug{})
	require.True(t, sig.Is(TagVariadic))
	n, ok := sig.Op(0).ArityValue()
	require.True(t, ok)
	assert.Equal(t, 3, n)
	assert.Same(t, nat, sig.Op(1))
}

func TestHomogeneousTupleIsPack(t *testing.T) {
	w := NewWorld()
	v := w.LitNat(16)
	tup := w.Tuple([]*Def{v, v, v}, Debug{})
	require.True(t, tup.Is(TagPack))

	// extracting at any index gives the body back
	idx := w.Var(w.Arity(3, Unrestricted), 17, Debug{})
	assert.Same(t, v, w.Extract(tup, idx, Debug{}))
	assert.Same(t, v, w.ExtractI(tup, 2, Debug{}))
}

func TestPackEta(t *testing.T) {
	w := NewWorld()
	nat := w.TypeNat()
	vt := w.Variadic(w.Arity(42, Unrestricted), nat, Debug{})
	x := w.Axiom(vt, Dbg("x"))

	// ‹42; x#i› where i is the pack index is x itself
	body := w.Extract(w.ShiftFreeVars(x, 1), w.Var(w.Arity(42, Unrestricted), 0, Debug{}), Debug{})
	assert.Same(t, x, w.Pack(w.Arity(42, Unrestricted), body, Debug{}))
}

func TestVariadicType(t *testing.T) {
	w := NewWorld()
	m := w.MultiArityKind(Unrestricted)
	star := w.Star(Unrestricted)

	// Πa:𝕄. Πx:[a; *]. *
	v := w.Pi(m, w.Pi(w.Variadic(w.Var(m, 0, Debug{}), star, Debug{}), star, Debug{}), Debug{})
	require.False(t, v.IsError())
	assert.Same(t, w.Universe(), v.Type())
}

func TestPackExtractReduces(t *testing.T) {
	w := NewWorld()
	nat := w.TypeNat()
	n := w.LitNat(3)
	p := w.Pack(w.Arity(5, Unrestricted), n, Debug{})
	require.True(t, p.Is(TagPack))
	assert.Same(t, n, w.ExtractI(p, 4, Debug{}))
	assert.True(t, w.ExtractI(p, 5, Debug{}).IsError())
	assert.Same(t, w.Variadic(w.Arity(5, Unrestricted), nat, Debug{}), p.Type())
}
