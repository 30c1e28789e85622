package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStripsBOM(t *testing.T) {
	src := append([]byte{0xEF, 0xBB, 0xBF}, []byte("nat")...)
	assert.Equal(t, []byte("nat"), Normalize(src))
}

func TestNormalizeNFC(t *testing.T) {
	// "é" as e + combining acute vs precomposed
	decomposed := []byte("cafe\u0301")
	precomposed := []byte("café")
	assert.Equal(t, precomposed, Normalize(decomposed))
}

func TestNormalizeIdempotent(t *testing.T) {
	src := []byte("λx:T. x")
	assert.Equal(t, src, Normalize(src))
}
