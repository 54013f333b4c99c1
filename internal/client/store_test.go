package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileCredentialStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".teamctl", "token")
	store := NewFileCredentialStore(path)

	// Absent credential reads as empty, not as an error
	token, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.Save("my-token"))

	token, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "my-token", token)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, store.Clear())
	token, err = store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	// Clearing an absent credential is not an error
	require.NoError(t, store.Clear())
}

func TestFileCredentialStore_TrimsStoredValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("  my-token\n\n"), 0o600))

	store := NewFileCredentialStore(path)
	token, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "my-token", token)
}

func TestMemoryCredentialStore(t *testing.T) {
	store := NewMemoryCredentialStore()

	token, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.Save("tok"))
	token, _ = store.Load()
	assert.Equal(t, "tok", token)

	require.NoError(t, store.Clear())
	token, _ = store.Load()
	assert.Empty(t, token)
}
