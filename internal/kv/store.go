// Package kv provides the persistent key-value store abstraction that backs
// all entity repositories. Values are UTF-8 JSON blobs; keys are fixed
// string constants, one per entity collection.
package kv

import (
	"context"
	"errors"
)

// Storage keys. The names match the previously persisted data layout so an
// existing store stays readable across upgrades.
const (
	KeyUsers          = "winzo_users"
	KeyProducts       = "winzo_products"
	KeyCoinPackages   = "winzo_coin_packages"
	KeyTransactions   = "winzo_transactions"
	KeyPaymentMethods = "winzo_payment_methods"
	KeySettings       = "winzo_settings"
	KeyInitialized    = "winzo_initialized"
)

// ErrKeyNotFound is returned by Get when the key has never been written.
var ErrKeyNotFound = errors.New("key not found")

// Store is the contract every storage backend implements. Storage errors
// propagate to callers; repositories never mask them as empty collections.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	GetMulti(ctx context.Context, keys []string) (map[string][]byte, error)
	SetMulti(ctx context.Context, entries map[string][]byte) error
	Remove(ctx context.Context, key string) error
	Close() error
}
