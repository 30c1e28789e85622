package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariantCanonicalOrder(t *testing.T) {
	w := NewWorld()
	nat, boolean := w.TypeNat(), w.TypeBool()

	v1 := w.Variant([]*Def{nat, boolean}, Debug{})
	v2 := w.Variant([]*Def{boolean, nat}, Debug{})
	assert.Same(t, v1, v2)
	require.True(t, v1.Is(TagVariant))

	// operands are ordered by gid: nat was interned before bool
	assert.Same(t, nat, v1.Op(0))
	assert.Same(t, boolean, v1.Op(1))

	// duplicates collapse, single alternatives are the alternative
	assert.Same(t, nat, w.Variant([]*Def{nat, nat}, Debug{}))
}

func TestAnyInjection(t *testing.T) {
	w := NewWorld()
	nat, boolean := w.TypeNat(), w.TypeBool()
	variant := w.Variant([]*Def{nat, boolean}, Debug{})

	any := w.Any(variant, w.LitNat(23), Debug{})
	require.True(t, any.Is(TagAny))
	assert.Same(t, variant, any.Type())

	// injecting into a non-variant type is the identity
	assert.Same(t, w.LitNat(5), w.Any(nat, w.LitNat(5), Debug{}))

	// a payload whose type is no alternative is rejected
	str := w.Axiom(w.Star(Unrestricted), Dbg("string"))
	bad := w.Any(variant, w.Axiom(str, Dbg("s")), Debug{})
	assert.True(t, bad.IsError())
}

func TestMatchHandlerOrder(t *testing.T) {
	w := NewWorld()
	nat, boolean := w.TypeNat(), w.TypeBool()
	variant := w.Variant([]*Def{nat, boolean}, Debug{})
	scrutinee := w.Axiom(variant, Dbg("someval"))

	handleNat := w.Lambda(nat, w.Var(nat, 0, Debug{}), Debug{})
	handleBool := w.Lambda(boolean, w.LitNat(0), Debug{})

	m1 := w.Match(scrutinee, []*Def{handleNat, handleBool}, Debug{})
	m2 := w.Match(scrutinee, []*Def{handleBool, handleNat}, Debug{})
	assert.Same(t, m1, m2)
	require.True(t, m1.Is(TagMatch))
	assert.Same(t, nat, m1.Type())
}

func TestMatchReducesOnAny(t *testing.T) {
	w := NewWorld()
	nat, boolean := w.TypeNat(), w.TypeBool()
	variant := w.Variant([]*Def{nat, boolean}, Debug{})

	handleNat := w.Lambda(nat, w.Var(nat, 0, Debug{}), Debug{})
	handleBool := w.Lambda(boolean, w.LitNat(0), Debug{})
	handlers := []*Def{handleNat, handleBool}

	anyNat := w.Any(variant, w.LitNat(23), Debug{})
	assert.Same(t, w.LitNat(23), w.Match(anyNat, handlers, Debug{}))

	anyBool := w.Any(variant, w.LitBool(false), Debug{})
	assert.Same(t, w.LitNat(0), w.Match(anyBool, handlers, Debug{}))
}

func TestMatchArityMismatch(t *testing.T) {
	w := NewWorld()
	nat, boolean := w.TypeNat(), w.TypeBool()
	variant := w.Variant([]*Def{nat, boolean}, Debug{})
	scrutinee := w.Axiom(variant, Dbg("v"))

	handleNat := w.Lambda(nat, w.Var(nat, 0, Debug{}), Debug{})
	assert.True(t, w.Match(scrutinee, []*Def{handleNat}, Debug{}).IsError())

	// a handler whose domain is no alternative is rejected
	pair := w.Sigma([]*Def{boolean, boolean}, Debug{})
	handlePair := w.Lambda(pair, w.LitNat(0), Debug{})
	bad := w.Match(scrutinee, []*Def{handlePair, handleNat}, Debug{})
	assert.True(t, bad.IsError())
}

func TestIntersectionPick(t *testing.T) {
	w := NewWorld()
	nat, boolean := w.TypeNat(), w.TypeBool()

	isect := w.Intersection([]*Def{nat, boolean}, Debug{})
	require.True(t, isect.Is(TagIntersection))
	assert.Same(t, isect, w.Intersection([]*Def{boolean, nat}, Debug{}))
	assert.Same(t, nat, w.Intersection([]*Def{nat}, Debug{}))

	v := w.Axiom(isect, Dbg("both"))
	picked := w.Pick(nat, v, Debug{})
	require.True(t, picked.Is(TagPick))
	assert.Same(t, nat, picked.Type())

	// picking a type outside the intersection is rejected
	str := w.Axiom(w.Star(Unrestricted), Dbg("string"))
	assert.True(t, w.Pick(str, v, Debug{}).IsError())

	// picking from a non-intersection value is the identity when exact
	n := w.LitNat(1)
	assert.Same(t, n, w.Pick(nat, n, Debug{}))
}

func TestAllIntro(t *testing.T) {
	w := NewWorld()
	nat, boolean := w.TypeNat(), w.TypeBool()
	a := w.Axiom(nat, Dbg("a"))
	b := w.Axiom(boolean, Dbg("b"))

	all := w.All([]*Def{a, b}, Debug{})
	require.True(t, all.Is(TagAll))
	assert.Same(t, w.Intersection([]*Def{nat, boolean}, Debug{}), all.Type())
}

func TestSingletonVariantPushesThrough(t *testing.T) {
	w := NewWorld()
	nat, boolean := w.TypeNat(), w.TypeBool()
	variant := w.Variant([]*Def{nat, boolean}, Debug{})
	require.True(t, variant.Is(TagVariant))

	s := w.Singleton(variant, Debug{})
	require.True(t, s.Is(TagVariant))
	assert.True(t, s.Op(0).Is(TagSingleton))
	assert.True(t, s.Op(1).Is(TagSingleton))
}
