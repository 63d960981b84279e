// Package repository provides data access for the storefront entities.
// Every repository reads and writes a whole JSON-encoded collection under a
// fixed key of the key-value store; callers read-modify-write entire
// collections. Multi-entity updates are not atomic, which is why balance
// mutations run under the per-user lock at the service layer.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"auction-storefront/internal/kv"
)

// Common errors for repository operations.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrProductNotFound     = errors.New("product not found")
	ErrPackageNotFound     = errors.New("coin package not found")
	ErrTransactionNotFound = errors.New("transaction not found")
)

// loadCollection decodes the collection stored under key. A key that has
// never been written decodes to an empty collection; storage and decode
// errors propagate.
func loadCollection[T any](ctx context.Context, store kv.Store, key string) ([]T, error) {
	data, err := store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, kv.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return items, nil
}

// storeCollection encodes and persists the collection under key.
func storeCollection[T any](ctx context.Context, store kv.Store, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return store.Set(ctx, key, data)
}

// nextID returns max(existing ids)+1, starting at 1 for an empty collection.
func nextID(ids []int64) int64 {
	var max int64
	for _, id := range ids {
		if id > max {
			max = id
		}
	}
	return max + 1
}
