package auth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCache_LoadMissing(t *testing.T) {
	c := NewTokenCache(t.TempDir(), "TOKEN")

	token, err := c.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestTokenCache_SaveCreatesFolder(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cache")
	c := NewTokenCache(dir, "TOKEN")

	require.NoError(t, c.Save("abc.def"))

	raw, err := os.ReadFile(filepath.Join(dir, "TOKEN"))
	require.NoError(t, err)
	assert.Equal(t, "abc.def", string(raw))

	token, err := c.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc.def", token)
}

func TestTokenCache_SaveOverwrites(t *testing.T) {
	c := NewTokenCache(t.TempDir(), "TOKEN")

	require.NoError(t, c.Save("a-much-longer-first-token"))
	require.NoError(t, c.Save("short"))

	token, err := c.Load()
	require.NoError(t, err)
	assert.Equal(t, "short", token)
}

func TestTokenCache_SaveFailsWhenFolderIsAFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "occupied")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	c := NewTokenCache(file, "TOKEN")
	assert.Error(t, c.Save("token"))
}

func TestNewTokenCache_DefaultFolder(t *testing.T) {
	c := NewTokenCache("", "TOKEN")
	assert.Equal(t, filepath.Join("cache", "TOKEN"), c.Path())
}
