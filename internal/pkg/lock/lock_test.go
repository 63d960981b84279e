package lock

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestWithLockSerializesSameUser(t *testing.T) {
	ul := NewUserLock()

	// A plain int is safe only if WithLock actually serializes.
	var counter int
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = ul.WithLock(42, func() error {
				counter++
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}

func TestWithLockPropagatesError(t *testing.T) {
	ul := NewUserLock()
	wantErr := errors.New("boom")

	err := ul.WithLock(1, func() error { return wantErr })
	assert.ErrorIs(t, err, wantErr)

	// The lock is released even when fn fails.
	require.True(t, ul.tryLock(1))
	ul.unlock(1)
}

func TestTryLock(t *testing.T) {
	ul := NewUserLock()

	require.True(t, ul.tryLock(1))
	assert.False(t, ul.tryLock(1))

	// A different user is unaffected.
	assert.True(t, ul.tryLock(2))

	ul.unlock(1)
	assert.True(t, ul.tryLock(1))
}

// TestConcurrentBalanceSafety mimics the service-layer usage: many
// goroutines doing read-modify-write on a shared map of balances, each under
// its user's lock. Without per-user serialization updates would be lost.
func TestConcurrentBalanceSafety(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ul := NewUserLock()

		userCount := rapid.IntRange(1, 5).Draw(t, "users")
		opsPerUser := rapid.IntRange(1, 50).Draw(t, "ops")

		var mu sync.Mutex
		balances := make(map[int64]int64)

		var wg sync.WaitGroup
		for u := 0; u < userCount; u++ {
			userID := int64(u + 1)
			for i := 0; i < opsPerUser; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_ = ul.WithLock(userID, func() error {
						mu.Lock()
						current := balances[userID]
						mu.Unlock()

						mu.Lock()
						balances[userID] = current + 1
						mu.Unlock()
						return nil
					})
				}()
			}
		}
		wg.Wait()

		for u := 0; u < userCount; u++ {
			userID := int64(u + 1)
			if balances[userID] != int64(opsPerUser) {
				t.Fatalf("user %d: got %d increments, want %d", userID, balances[userID], opsPerUser)
			}
		}
	})
}
