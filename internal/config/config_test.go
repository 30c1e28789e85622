package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.History)
	assert.Empty(t, cfg.Prelude)
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tir.yaml")
	content := "prelude:\n  - std.tir\nhistory: /tmp/hist\ncolor: false\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"std.tir"}, cfg.Prelude)
	assert.Equal(t, "/tmp/hist", cfg.History)
	require.NotNil(t, cfg.Color)
	assert.False(t, *cfg.Color)
}

func TestLoadBadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tir.yaml")
	require.NoError(t, os.WriteFile(path, []byte("prelude: {nope"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}
