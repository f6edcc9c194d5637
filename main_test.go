package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onionkeys/pkg/identity"
	"onionkeys/pkg/onion"
)

func run(t *testing.T, cfg settings, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp(cfg)
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"onionkeys"}, args...))
	return out.String(), err
}

func TestLoadSettings(t *testing.T) {
	t.Setenv("ONIONKEYS_FORMAT", "yaml")
	t.Setenv("ONIONKEYS_FILE_MODE", "0640")
	cfg, err := loadSettings()
	require.NoError(t, err)
	assert.Equal(t, "yaml", cfg.Format)
	assert.Equal(t, "info", cfg.Verbosity)
	mode, err := cfg.fileMode()
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), mode)

	t.Setenv("ONIONKEYS_FILE_MODE", "999")
	_, err = loadSettings()
	assert.Error(t, err)

	t.Setenv("ONIONKEYS_FILE_MODE", "0600")
	t.Setenv("ONIONKEYS_FORMAT", "ini")
	_, err = loadSettings()
	assert.Error(t, err)
}

func TestCommands(t *testing.T) {
	cfg := settings{Verbosity: "error", Format: "toml", FileMode: "0600"}
	dir := t.TempDir()
	first := filepath.Join(dir, "first.toml")

	out, err := run(t, cfg, "generate", "--out", first)
	require.NoError(t, err)
	addr := strings.TrimSpace(out)
	_, err = onion.ParseAddress(addr)
	require.NoError(t, err)

	out, err = run(t, cfg, "inspect", first)
	require.NoError(t, err)
	assert.Contains(t, out, addr)
	id, err := identity.Load(first)
	require.NoError(t, err)
	assert.NotContains(t, out, onion.EncodeSecretKey(id.SecretKey))

	second := filepath.Join(dir, "second.json")
	_, err = run(t, cfg, "convert", first, second)
	require.NoError(t, err)
	converted, err := identity.Load(second)
	require.NoError(t, err)
	assert.Equal(t, id, converted)

	hsDir := filepath.Join(dir, "hs")
	_, err = run(t, cfg, "export-tor", second, hsDir)
	require.NoError(t, err)

	third := filepath.Join(dir, "third.yaml")
	out, err = run(t, cfg, "import-tor", "--out", third, hsDir)
	require.NoError(t, err)
	assert.Equal(t, addr, strings.TrimSpace(out))
	imported, err := identity.Load(third)
	require.NoError(t, err)
	assert.Equal(t, id, imported)

	_, err = run(t, cfg, "generate", "--out", first)
	assert.ErrorIs(t, err, identity.ErrFileExists)

	_, err = run(t, cfg, "inspect")
	assert.ErrorIs(t, err, errUsage)
}
