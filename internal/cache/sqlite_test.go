package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_PutGet(t *testing.T) {
	store := openStore(t)

	payload := []byte(`{"ticker":"AAPL"}`)
	require.NoError(t, store.Put("AAPL", 42, payload))

	got, hit, err := store.Get("AAPL", 42)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, payload, got)
}

func TestSQLiteStore_MissOnDifferentBucket(t *testing.T) {
	store := openStore(t)
	require.NoError(t, store.Put("AAPL", 42, []byte("x")))

	_, hit, err := store.Get("AAPL", 43)
	require.NoError(t, err)
	assert.False(t, hit)

	_, hit, err = store.Get("NVDA", 42)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestSQLiteStore_PutReplaces(t *testing.T) {
	store := openStore(t)
	require.NoError(t, store.Put("AAPL", 42, []byte("old")))
	require.NoError(t, store.Put("AAPL", 42, []byte("new")))

	got, hit, err := store.Get("AAPL", 42)
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, []byte("new"), got)
}

func TestSQLiteStore_Prune(t *testing.T) {
	store := openStore(t)
	require.NoError(t, store.Put("AAPL", 1, []byte("x")))
	require.NoError(t, store.Put("NVDA", 1, []byte("y")))

	removed, err := store.Prune(time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 2, removed)

	_, hit, err := store.Get("AAPL", 1)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestBucket(t *testing.T) {
	ttl := time.Hour
	base := time.Date(2024, 11, 18, 12, 0, 0, 0, time.UTC)

	// Same window, same bucket.
	assert.Equal(t, Bucket(base, ttl), Bucket(base.Add(30*time.Minute), ttl))
	// Next window, next bucket.
	assert.NotEqual(t, Bucket(base, ttl), Bucket(base.Add(ttl+time.Minute), ttl))
}

func TestNoopStore(t *testing.T) {
	store := NewNoopStore()
	require.NoError(t, store.Put("AAPL", 1, []byte("x")))

	_, hit, err := store.Get("AAPL", 1)
	require.NoError(t, err)
	assert.False(t, hit)

	removed, err := store.Prune(time.Now())
	require.NoError(t, err)
	assert.Zero(t, removed)
	assert.NoError(t, store.Close())
}
