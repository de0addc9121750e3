package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func testPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "config.toml")
}

func TestNewStore_MissingFileYieldsDefaults(t *testing.T) {
	store, err := NewStore(testPath(t))
	require.NoError(t, err)
	require.Empty(t, store.APIKey())
	require.Equal(t, DefaultModel, store.Model())
}

func TestNewStore_EmptyPath(t *testing.T) {
	_, err := NewStore("  ")
	require.Error(t, err)
}

func TestSetAPIKey_PersistsTrimmedValue(t *testing.T) {
	path := testPath(t)
	store, err := NewStore(path)
	require.NoError(t, err)

	require.NoError(t, store.SetAPIKey("  sk-test-123  "))
	require.Equal(t, "sk-test-123", store.APIKey())

	// a fresh store must see the persisted value
	reloaded, err := NewStore(path)
	require.NoError(t, err)
	require.Equal(t, "sk-test-123", reloaded.APIKey())
}

func TestSetAPIKey_EmptyErasesPersistedValue(t *testing.T) {
	path := testPath(t)
	store, err := NewStore(path)
	require.NoError(t, err)

	require.NoError(t, store.SetAPIKey("sk-test-123"))
	require.NoError(t, store.SetAPIKey(""))
	require.Empty(t, store.APIKey())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(raw), "api_key", "cleared credential must not remain in the file")
	require.NotContains(t, string(raw), "sk-test-123")

	reloaded, err := NewStore(path)
	require.NoError(t, err)
	require.Empty(t, reloaded.APIKey())
}

func TestSetAPIKey_WhitespaceOnlyClears(t *testing.T) {
	store, err := NewStore(testPath(t))
	require.NoError(t, err)
	require.NoError(t, store.SetAPIKey("   "))
	require.Empty(t, store.APIKey())
}

func TestNewStore_MalformedFile(t *testing.T) {
	path := testPath(t)
	require.NoError(t, os.WriteFile(path, []byte("api_key = [broken"), 0o600))
	_, err := NewStore(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "decode")
}

func TestNewStore_MissingModelFallsBack(t *testing.T) {
	path := testPath(t)
	require.NoError(t, os.WriteFile(path, []byte(`api_key = "sk-abc"`+"\n"), 0o600))
	store, err := NewStore(path)
	require.NoError(t, err)
	require.Equal(t, "sk-abc", store.APIKey())
	require.Equal(t, DefaultModel, store.Model())
}

func TestSave_FilePermissions(t *testing.T) {
	path := testPath(t)
	store, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store.SetAPIKey("sk-secret"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
