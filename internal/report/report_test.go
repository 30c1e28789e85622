package report

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapAndAs(t *testing.T) {
	r := New("parser", "PAR001", "unexpected token").At(Pos{Line: 2, Col: 5})
	err := Wrap(r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PAR001")
	assert.Contains(t, err.Error(), "2:5")

	got, ok := As(fmt.Errorf("outer: %w", err))
	require.True(t, ok)
	assert.Equal(t, r, got)

	_, ok = As(errors.New("plain"))
	assert.False(t, ok)
}

func TestToJSON(t *testing.T) {
	r := New("lexer", "LEX001", "bad rune")
	s, err := r.ToJSON()
	require.NoError(t, err)
	assert.Contains(t, s, `"code":"LEX001"`)
	assert.Contains(t, s, `"schema":"tir.error/v1"`)
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, Wrap(nil))
}
