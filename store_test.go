package flashclass_test

import (
	"os"
	"path/filepath"
	"testing"

	flashclass "github.com/flashclass/go-flashclass"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	store := flashclass.NewMemoryStore()

	_, ok := store.Get("missing")
	assert.False(t, ok)

	store.Set("access_token", "abc")
	v, ok := store.Get("access_token")
	assert.True(t, ok)
	assert.Equal(t, "abc", v)

	store.Set("access_token", "def")
	v, _ = store.Get("access_token")
	assert.Equal(t, "def", v)

	store.Remove("access_token")
	_, ok = store.Get("access_token")
	assert.False(t, ok)

	// removing absent keys is a no-op, not an error
	store.Remove("never-there")
}

func TestFileStore_SurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")

	store := flashclass.NewFileStore(path)
	store.Set("access_token", "tok-1")
	store.Set("teacherId", "t-9")

	// a fresh instance over the same file sees the same record
	reloaded := flashclass.NewFileStore(path)

	v, ok := reloaded.Get("access_token")
	assert.True(t, ok)
	assert.Equal(t, "tok-1", v)

	v, ok = reloaded.Get("teacherId")
	assert.True(t, ok)
	assert.Equal(t, "t-9", v)

	reloaded.Remove("access_token")

	third := flashclass.NewFileStore(path)
	_, ok = third.Get("access_token")
	assert.False(t, ok)
	_, ok = third.Get("teacherId")
	assert.True(t, ok)
}

func TestFileStore_MissingFileStartsEmpty(t *testing.T) {
	store := flashclass.NewFileStore(filepath.Join(t.TempDir(), "nope", "credentials.json"))
	_, ok := store.Get("access_token")
	assert.False(t, ok)
}

func TestFileStore_CorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := flashclass.NewFileStore(path)
	_, ok := store.Get("access_token")
	assert.False(t, ok)

	// writes still work and repair the file
	store.Set("access_token", "fresh")
	v, ok := flashclass.NewFileStore(path).Get("access_token")
	assert.True(t, ok)
	assert.Equal(t, "fresh", v)
}

func TestBunStore_RoundTrip(t *testing.T) {
	store, err := flashclass.NewBunStore("file:" + filepath.Join(t.TempDir(), "creds.db"))
	require.NoError(t, err)
	defer store.Close()

	_, ok := store.Get("access_token")
	assert.False(t, ok)

	store.Set("access_token", "tok-1")
	v, ok := store.Get("access_token")
	assert.True(t, ok)
	assert.Equal(t, "tok-1", v)

	// last write wins
	store.Set("access_token", "tok-2")
	v, _ = store.Get("access_token")
	assert.Equal(t, "tok-2", v)

	store.Remove("access_token")
	_, ok = store.Get("access_token")
	assert.False(t, ok)
}
