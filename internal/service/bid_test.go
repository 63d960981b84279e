package service

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auction-storefront/internal/kv"
	"auction-storefront/internal/model"
	"auction-storefront/internal/repository"
)

func TestPlaceBidDebitsAndRecords(t *testing.T) {
	env := newTestEnv(t, kv.NewMemoryStore())
	ctx := context.Background()
	userID := env.addUser(t, "alice", 100)
	productID := env.addProduct(t, "PlayStation 5", time.Now().Add(time.Hour))

	tx, err := env.bids.PlaceBid(ctx, userID, productID, 42.5)
	require.NoError(t, err)

	assert.Equal(t, model.StatusCompleted, tx.Status)
	assert.Equal(t, model.PaymentMethodBid, tx.PaymentMethod)
	assert.True(t, tx.IsBidDebit())
	assert.Equal(t, int64(-30), tx.Coins)
	assert.Equal(t, float64(-30), tx.Amount)
	assert.Equal(t, productID, tx.AuctionID)
	assert.Equal(t, 42.5, tx.BidAmount)
	assert.NotNil(t, tx.CompletedAt)

	user, err := env.accounts.GetUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(70), user.Coins)

	history, err := env.accounts.ListUserTransactions(ctx, userID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, tx.ID, history[0].ID)

	// The displayed lowest bid follows the placement.
	product, err := env.products.GetByID(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, 42.5, product.LowestBid)
	assert.Equal(t, "alice", product.LowestBidder)
}

func TestPlaceBidInsufficientCoins(t *testing.T) {
	env := newTestEnv(t, kv.NewMemoryStore())
	ctx := context.Background()
	userID := env.addUser(t, "alice", 29)
	productID := env.addProduct(t, "PlayStation 5", time.Now().Add(time.Hour))

	_, err := env.bids.PlaceBid(ctx, userID, productID, 42.5)
	assert.ErrorIs(t, err, ErrInsufficientCoins)

	user, err := env.accounts.GetUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(29), user.Coins)

	history, err := env.accounts.ListUserTransactions(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestPlaceBidEndedAuction(t *testing.T) {
	env := newTestEnv(t, kv.NewMemoryStore())
	ctx := context.Background()
	userID := env.addUser(t, "alice", 100)
	productID := env.addProduct(t, "Expired", time.Now().Add(-time.Minute))

	_, err := env.bids.PlaceBid(ctx, userID, productID, 42.5)
	assert.ErrorIs(t, err, ErrAuctionEnded)

	user, err := env.accounts.GetUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), user.Coins)
}

func TestPlaceBidInvalidValue(t *testing.T) {
	env := newTestEnv(t, kv.NewMemoryStore())
	ctx := context.Background()
	userID := env.addUser(t, "alice", 100)
	productID := env.addProduct(t, "PlayStation 5", time.Now().Add(time.Hour))

	for _, value := range []float64{0, -5, math.NaN()} {
		_, err := env.bids.PlaceBid(ctx, userID, productID, value)
		assert.ErrorIs(t, err, ErrInvalidBid)
	}
}

func TestPlaceBidUnknownProduct(t *testing.T) {
	env := newTestEnv(t, kv.NewMemoryStore())

	_, err := env.bids.PlaceBid(context.Background(), 1, 99, 42.5)
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
}

func TestPlaceBidRollsBackDebitWhenRecordFails(t *testing.T) {
	flaky := &flakyStore{Store: kv.NewMemoryStore()}
	env := newTestEnv(t, flaky)
	ctx := context.Background()
	userID := env.addUser(t, "alice", 100)
	productID := env.addProduct(t, "PlayStation 5", time.Now().Add(time.Hour))

	flaky.arm(kv.KeyTransactions, errors.New("disk full"))
	_, err := env.bids.PlaceBid(ctx, userID, productID, 42.5)
	require.Error(t, err)
	flaky.disarm()

	// The debit was compensated, so the balance matches the (empty)
	// history.
	user, err := env.accounts.GetUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), user.Coins)

	history, err := env.accounts.ListUserTransactions(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestConcurrentBidsKeepBalanceConsistent(t *testing.T) {
	env := newTestEnv(t, kv.NewMemoryStore())
	ctx := context.Background()
	userID := env.addUser(t, "alice", 300)
	productID := env.addProduct(t, "PlayStation 5", time.Now().Add(time.Hour))

	const attempts = 20

	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.bids.PlaceBid(ctx, userID, productID, 42.5)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var placed int64
	for err := range results {
		if err == nil {
			placed++
		} else {
			assert.ErrorIs(t, err, ErrInsufficientCoins)
		}
	}

	// 300 coins cover exactly 10 bids at 30 coins each.
	assert.Equal(t, int64(10), placed)

	user, err := env.accounts.GetUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), user.Coins)

	history, err := env.accounts.ListUserTransactions(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, history, 10)
}
