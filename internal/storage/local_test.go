package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreSetGet(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyGuestCart, []byte(`[{"id":1}]`)))

	data, ok, err := store.Get(KeyGuestCart)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":1}]`, string(data))
}

func TestLocalStoreGetMissing(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	data, ok, err := store.Get(KeyAccess)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, data)
}

func TestLocalStoreOverwrite(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyAccess, []byte("first")))
	require.NoError(t, store.Set(KeyAccess, []byte("second")))

	data, ok, err := store.Get(KeyAccess)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "second", string(data))
}

func TestLocalStoreDelete(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyRefresh, []byte("token")))
	require.NoError(t, store.Delete(KeyRefresh))

	_, ok, err := store.Get(KeyRefresh)
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting an absent key is not an error
	require.NoError(t, store.Delete(KeyRefresh))
}

func TestLocalStoreKeySanitization(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set("../escape", []byte("x")))

	data, ok, err := store.Get("../escape")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "x", string(data))
}
