package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQualifierOrder(t *testing.T) {
	assert.True(t, Less(Affine, Unrestricted))
	assert.True(t, Less(Relevant, Unrestricted))
	assert.True(t, Less(Linear, Unrestricted))
	assert.True(t, Less(Linear, Affine))
	assert.True(t, Less(Linear, Relevant))
	assert.False(t, Less(Affine, Relevant))
	assert.False(t, Less(Unrestricted, Linear))
}

func TestQualifierMeetJoin(t *testing.T) {
	assert.Equal(t, Unrestricted, Meet(Unrestricted, Unrestricted))
	assert.Equal(t, Affine, Meet(Affine, Unrestricted))
	assert.Equal(t, Relevant, Meet(Relevant, Unrestricted))
	assert.Equal(t, Linear, Meet(Linear, Unrestricted))
	assert.Equal(t, Affine, Meet(Affine, Affine))
	assert.Equal(t, Linear, Meet(Affine, Relevant))
	assert.Equal(t, Linear, Meet(Linear, Affine))
	assert.Equal(t, Linear, Meet(Linear, Relevant))

	assert.Equal(t, Unrestricted, Join(Affine, Relevant))
	assert.Equal(t, Affine, Join(Affine, Linear))
	assert.Equal(t, Relevant, Join(Linear, Relevant))
	assert.Equal(t, Unrestricted, Join(Unrestricted, Linear))
}

// A sigma of an affine and a relevant component is linear.
func TestSigmaQualifierMeet(t *testing.T) {
	w := NewWorld()
	aNat := w.Axiom(w.Star(Affine), Dbg("anat"))
	rNat := w.Axiom(w.Star(Relevant), Dbg("rnat"))

	sig := w.Sigma([]*Def{aNat, rNat}, Debug{})
	require.True(t, sig.Is(TagSigma))
	q, ok := w.QualifierOf(sig)
	require.True(t, ok)
	assert.Equal(t, Linear, q)
}

// An affine parameter may be used at most once; a second use poisons the
// lambda into the canonical Error of its arrow type.
func TestAffineDoubleUse(t *testing.T) {
	w := NewWorld()
	aNat := w.Axiom(w.Star(Affine), Dbg("anat"))

	x0 := w.Var(aNat, 0, Dbg("x"))
	pair := w.Tuple([]*Def{x0, x0}, Debug{})
	bad := w.Lambda(aNat, pair, Debug{})
	assert.True(t, bad.IsError())

	good := w.Lambda(aNat, x0, Debug{})
	require.False(t, good.IsError())

	lit := w.Lit(aNat, Box(0), Debug{})
	assert.Equal(t, lit, w.App(good, lit, Debug{}))
}

// A relevant parameter must be used.
func TestRelevantUnused(t *testing.T) {
	w := NewWorld()
	rNat := w.Axiom(w.Star(Relevant), Dbg("rnat"))

	bad := w.Lambda(rNat, w.LitNat(7), Debug{})
	assert.True(t, bad.IsError())

	ok := w.Lambda(rNat, w.Var(rNat, 0, Debug{}), Debug{})
	assert.False(t, ok.IsError())
}

func TestQualifierDefs(t *testing.T) {
	w := NewWorld()
	for q := Unrestricted; q < NumQualifiers; q++ {
		d := w.QualifierLit(q)
		assert.Equal(t, w.QualifierType(), d.Type())
		got, ok := w.ConstQualifier(d)
		assert.True(t, ok)
		assert.Equal(t, q, got)
	}
	v := w.Var(w.QualifierType(), 0, Debug{})
	_, ok := w.ConstQualifier(v)
	assert.False(t, ok)
}
