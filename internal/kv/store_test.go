package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeFactories builds one fresh store per backend that needs no external
// services.
func storeFactories(t *testing.T) map[string]Store {
	file, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	return map[string]Store{
		"memory": NewMemoryStore(),
		"file":   file,
	}
}

func TestStoreGetMissingKey(t *testing.T) {
	for name, store := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Get(context.Background(), "nope")
			assert.ErrorIs(t, err, ErrKeyNotFound)
		})
	}
}

func TestStoreSetGetRemove(t *testing.T) {
	for name, store := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, store.Set(ctx, KeyUsers, []byte(`[{"id":1}]`)))

			got, err := store.Get(ctx, KeyUsers)
			require.NoError(t, err)
			assert.JSONEq(t, `[{"id":1}]`, string(got))

			require.NoError(t, store.Set(ctx, KeyUsers, []byte(`[]`)))
			got, err = store.Get(ctx, KeyUsers)
			require.NoError(t, err)
			assert.JSONEq(t, `[]`, string(got))

			require.NoError(t, store.Remove(ctx, KeyUsers))
			_, err = store.Get(ctx, KeyUsers)
			assert.ErrorIs(t, err, ErrKeyNotFound)

			// Removing a missing key is not an error.
			assert.NoError(t, store.Remove(ctx, KeyUsers))
		})
	}
}

func TestStoreMulti(t *testing.T) {
	for name, store := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, store.SetMulti(ctx, map[string][]byte{
				KeyUsers:    []byte(`[]`),
				KeyProducts: []byte(`[{"id":7}]`),
			}))

			got, err := store.GetMulti(ctx, []string{KeyUsers, KeyProducts, KeySettings})
			require.NoError(t, err)
			assert.Len(t, got, 2)
			assert.JSONEq(t, `[]`, string(got[KeyUsers]))
			assert.JSONEq(t, `[{"id":7}]`, string(got[KeyProducts]))
			assert.NotContains(t, got, KeySettings)
		})
	}
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, KeyTransactions, []byte(`[{"id":"txn_1"}]`)))
	require.NoError(t, first.Close())

	second, err := NewFileStore(dir)
	require.NoError(t, err)
	got, err := second.Get(ctx, KeyTransactions)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"txn_1"}]`, string(got))
}
