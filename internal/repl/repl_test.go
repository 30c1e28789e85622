package repl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunholo/tir/internal/config"
)

func newTest() (*REPL, *bytes.Buffer) {
	color.NoColor = true
	var buf bytes.Buffer
	cfg := config.Default()
	return New(cfg, &buf), &buf
}

func TestEvalExpression(t *testing.T) {
	r, buf := newTest()
	require.True(t, r.Eval("λT:*. λx:T. x"))
	out := buf.String()
	assert.Contains(t, out, "λ")
	assert.Contains(t, out, "Π")
}

func TestEvalBinding(t *testing.T) {
	r, buf := newTest()
	require.True(t, r.Eval("two = 2"))
	assert.Contains(t, buf.String(), "two")

	buf.Reset()
	require.True(t, r.Eval("two"))
	assert.Contains(t, buf.String(), "2")
}

func TestEvalParseError(t *testing.T) {
	r, buf := newTest()
	require.True(t, r.Eval("nonsense_name"))
	assert.Contains(t, buf.String(), "error")
}

func TestCommands(t *testing.T) {
	r, buf := newTest()

	require.True(t, r.Eval(":help"))
	assert.Contains(t, buf.String(), ":type")

	buf.Reset()
	require.True(t, r.Eval(":type nat"))
	assert.Contains(t, buf.String(), "*")

	buf.Reset()
	require.True(t, r.Eval(":defs"))
	assert.Contains(t, buf.String(), "defs interned")

	assert.False(t, r.Eval(":quit"))
}

func TestReset(t *testing.T) {
	r, buf := newTest()
	require.True(t, r.Eval("x = 4"))
	require.True(t, r.Eval(":reset"))
	buf.Reset()
	require.True(t, r.Eval("x"))
	assert.Contains(t, buf.String(), "error")
}

func TestPrimopsAvailable(t *testing.T) {
	r, buf := newTest()
	require.True(t, r.Eval("int(32)"))
	assert.Contains(t, buf.String(), "int")
	assert.NotContains(t, strings.ToLower(buf.String()), "error")
}
