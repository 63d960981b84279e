package service

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/require"

	"auction-storefront/internal/auth"
	"auction-storefront/internal/kv"
	"auction-storefront/internal/model"
	"auction-storefront/internal/pkg/lock"
	"auction-storefront/internal/repository"
)

// testingT is the subset of testing.T the fixtures need. Both *testing.T
// and *rapid.T satisfy it, so property tests can share the fixtures.
type testingT interface {
	require.TestingT
	Helper()
}

// testEnv wires the full service stack over an in-memory store.
type testEnv struct {
	store    kv.Store
	users    *repository.UserRepository
	txs      *repository.TransactionRepository
	products *repository.ProductRepository
	packages *repository.PackageRepository

	auth         *AuthService
	accounts     *AccountService
	transactions *TransactionService
	bids         *BidService
}

func newTestEnv(t testingT, store kv.Store) *testEnv {
	t.Helper()

	users := repository.NewUserRepository(store)
	txs := repository.NewTransactionRepository(store)
	products := repository.NewProductRepository(store)
	packages := repository.NewPackageRepository(store)

	userLock := lock.NewUserLock()
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	return &testEnv{
		store:        store,
		users:        users,
		txs:          txs,
		products:     products,
		packages:     packages,
		auth:         NewAuthService(users, tokens, 1000),
		accounts:     NewAccountService(users, txs, userLock),
		transactions: NewTransactionService(txs, users, userLock),
		bids:         NewBidService(users, txs, products, userLock, 30),
	}
}

// addUser persists a user directly and returns its id.
func (e *testEnv) addUser(t testingT, name string, coins int64) int64 {
	t.Helper()
	user, err := e.users.Create(context.Background(), name, name+"@winzo.com", "hash", model.RoleUser, coins)
	require.NoError(t, err)
	return user.ID
}

// addProduct persists an auction item ending at the given time and returns
// its id.
func (e *testEnv) addProduct(t testingT, name string, endTime time.Time) int64 {
	t.Helper()
	product, err := e.products.Create(context.Background(), model.Product{
		Name:    name,
		EndTime: endTime,
	})
	require.NoError(t, err)
	return product.ID
}

// flakyStore wraps a store and fails Set on selected keys once armed. It lets
// tests exercise the compensating writes in the two-step sequences.
type flakyStore struct {
	kv.Store

	mu      sync.Mutex
	armed   bool
	failKey string
	failErr error
}

func (s *flakyStore) arm(key string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.armed = true
	s.failKey = key
	s.failErr = err
}

func (s *flakyStore) disarm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.armed = false
}

func (s *flakyStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	fail := s.armed && s.failKey == key
	err := s.failErr
	s.mu.Unlock()
	if fail {
		return err
	}
	return s.Store.Set(ctx, key, value)
}

// slowStore wraps a store and delays reads of one key, widening race
// windows that would otherwise be too narrow to hit reliably.
type slowStore struct {
	kv.Store

	slowKey string
	delay   time.Duration
}

func (s *slowStore) Get(ctx context.Context, key string) ([]byte, error) {
	if key == s.slowKey {
		time.Sleep(s.delay)
	}
	return s.Store.Get(ctx, key)
}
