package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func types(toks []Token) []TokenType {
	ts := make([]TokenType, len(toks))
	for i, t := range toks {
		ts[i] = t.Type
	}
	return ts
}

func TestBasicTokens(t *testing.T) {
	toks := New("ΠT:*. λx:T. x").Tokens()
	assert.Equal(t, []TokenType{
		PI, IDENT, COLON, STAR, DOT,
		LAMBDA, IDENT, COLON, IDENT, DOT,
		IDENT, EOF,
	}, types(toks))
}

func TestKindsAndQualifiers(t *testing.T) {
	toks := New("*ᴬ 𝔸ᴸ 𝕄 ℚ").Tokens()
	assert.Equal(t, []TokenType{STAR, QUAL, AKIND, QUAL, MKIND, QKIND, EOF}, types(toks))
	assert.Equal(t, 1, toks[1].Qual)
	assert.Equal(t, 3, toks[3].Qual)
}

func TestNumberForms(t *testing.T) {
	toks := New("42 3ₐ 2₃ 42₁₉₀ 0s64").Tokens()
	require.Len(t, toks, 6)

	plain := toks[0]
	assert.Equal(t, uint64(42), plain.Val)
	assert.False(t, plain.IsArity)
	assert.Equal(t, int64(-1), plain.Sub)

	arity := toks[1]
	assert.Equal(t, uint64(3), arity.Val)
	assert.True(t, arity.IsArity)

	index := toks[2]
	assert.Equal(t, uint64(2), index.Val)
	assert.Equal(t, int64(3), index.Sub)

	wide := toks[3]
	assert.Equal(t, uint64(42), wide.Val)
	assert.Equal(t, int64(190), wide.Sub)

	suffixed := toks[4]
	assert.Equal(t, uint64(0), suffixed.Val)
	assert.Equal(t, "0s64", suffixed.Lit)
}

func TestBracketsAndPunct(t *testing.T) {
	toks := New("[a; *] ‹x› «y» (b, c) e#0 \\1::nat").Tokens()
	assert.Equal(t, []TokenType{
		LBRACKET, IDENT, SEMI, STAR, RBRACKET,
		LANGLE, IDENT, RANGLE,
		LGUILL, IDENT, RGUILL,
		LPAREN, IDENT, COMMA, IDENT, RPAREN,
		IDENT, HASH, NUMBER,
		BACKSLASH, NUMBER, DCOLON, IDENT,
		EOF,
	}, types(toks))
}

func TestCnKeyword(t *testing.T) {
	toks := New("cn[] cnx").Tokens()
	assert.Equal(t, []TokenType{CN, LBRACKET, RBRACKET, IDENT, EOF}, types(toks))
	assert.Equal(t, "cnx", toks[3].Lit)
}

func TestLineComments(t *testing.T) {
	toks := New("nat // the rest is ignored\n bool").Tokens()
	assert.Equal(t, []TokenType{IDENT, IDENT, EOF}, types(toks))
}

func TestPositions(t *testing.T) {
	toks := New("a\n  b").Tokens()
	assert.Equal(t, 1, toks[0].Pos.Line)
	assert.Equal(t, 1, toks[0].Pos.Col)
	assert.Equal(t, 2, toks[1].Pos.Line)
	assert.Equal(t, 3, toks[1].Pos.Col)
}
