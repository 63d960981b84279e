// Package lock provides per-user locking for balance operations.
// Repositories do whole-collection read-modify-write, so two concurrent
// operations on the same user's balance can lose an update unless they
// are serialized here.
package lock

import "sync"

// UserLock serializes balance-modifying operations per user ID. WithLock is
// the only entry point; the raw acquire/release pair stays internal so a
// caller cannot unlock an id it never locked.
type UserLock struct {
	locks sync.Map // map[int64]*sync.Mutex
}

// NewUserLock creates a new UserLock instance.
func NewUserLock() *UserLock {
	return &UserLock{}
}

func (ul *UserLock) getLock(userID int64) *sync.Mutex {
	if v, ok := ul.locks.Load(userID); ok {
		return v.(*sync.Mutex)
	}
	v, _ := ul.locks.LoadOrStore(userID, &sync.Mutex{})
	return v.(*sync.Mutex)
}

func (ul *UserLock) lock(userID int64) {
	ul.getLock(userID).Lock()
}

func (ul *UserLock) unlock(userID int64) {
	ul.getLock(userID).Unlock()
}

// tryLock attempts to acquire the lock without blocking.
func (ul *UserLock) tryLock(userID int64) bool {
	return ul.getLock(userID).TryLock()
}

// WithLock executes fn while holding the user's lock.
func (ul *UserLock) WithLock(userID int64, fn func() error) error {
	ul.lock(userID)
	defer ul.unlock(userID)
	return fn()
}
