package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), ".wabbitrc.json"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".wabbitrc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"format": "cbor", "fingerprint": true}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "cbor", cfg.Format)
	assert.True(t, cfg.Fingerprint)
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".wabbitrc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"format": "xml"}`), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsUnknownField(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".wabbitrc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"bogus": true}`), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadFallsBackToHomeDirectory(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.WriteFile(filepath.Join(home, ".wabbitrc.json"), []byte(`{"indentWidth": 2}`), 0o644))

	cwd := t.TempDir()
	t.Chdir(cwd)

	cfg, err := Load(".wabbitrc.json")
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.IndentWidth)
}

func TestLoadDefaultIndentWidth(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), ".wabbitrc.json"))
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.IndentWidth)
}
