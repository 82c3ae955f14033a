package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T, path string) *Store {
	t.Helper()
	s, err := Open(Config{Path: path}, false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kassa.db")
	s := openTestStore(t, path)

	t.Run("get on a missing key reports ErrNotFound", func(t *testing.T) {
		_, err := s.Get("nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("put then get round-trips the bytes", func(t *testing.T) {
		require.NoError(t, s.Put("k", []byte(`{"a":1}`)))

		got, err := s.Get("k")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"a":1}`), got)
	})

	t.Run("put overwrites under the same key", func(t *testing.T) {
		require.NoError(t, s.Put("k", []byte("v1")))
		require.NoError(t, s.Put("k", []byte("v2")))

		got, err := s.Get("k")
		require.NoError(t, err)
		assert.Equal(t, []byte("v2"), got)
	})

	t.Run("delete removes the key", func(t *testing.T) {
		require.NoError(t, s.Put("gone", []byte("x")))
		require.NoError(t, s.Delete("gone"))

		_, err := s.Get("gone")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("deleting a missing key is not an error", func(t *testing.T) {
		assert.NoError(t, s.Delete("never-there"))
	})
}

func TestStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kassa.db")

	first := openTestStore(t, path)
	require.NoError(t, first.Put("persisted", []byte("still here")))
	require.NoError(t, first.Close())

	second := openTestStore(t, path)
	got, err := second.Get("persisted")
	require.NoError(t, err)
	assert.Equal(t, []byte("still here"), got)
}
