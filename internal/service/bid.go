package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"auction-storefront/internal/model"
	"auction-storefront/internal/pkg/lock"
	"auction-storefront/internal/repository"
)

// Common errors for bid operations.
var (
	ErrInsufficientCoins = errors.New("insufficient coins")
	ErrAuctionEnded      = errors.New("auction has ended")
	ErrInvalidBid        = errors.New("invalid bid: amount must be positive")
)

// BidService records bids: a fixed coin debit plus a self-approving
// bid_placement transaction. There is no server-side arbitration of the
// lowest unique bid; the recorded values are advisory.
type BidService struct {
	users    *repository.UserRepository
	txs      *repository.TransactionRepository
	products *repository.ProductRepository
	userLock *lock.UserLock
	bidCost  int64
}

// NewBidService creates a new BidService instance. bidCost is the fixed
// number of coins debited per bid.
func NewBidService(users *repository.UserRepository, txs *repository.TransactionRepository, products *repository.ProductRepository, userLock *lock.UserLock, bidCost int64) *BidService {
	return &BidService{
		users:    users,
		txs:      txs,
		products: products,
		userLock: userLock,
		bidCost:  bidCost,
	}
}

// BidCost returns the fixed per-bid debit.
func (s *BidService) BidCost() int64 {
	return s.bidCost
}

// PlaceBid debits the bid cost from the user's balance and appends a
// completed bid_placement transaction recording the auction and submitted
// value. The debit and the history append form one unit: a failed append
// rolls the debit back. Runs under the user's lock so concurrent bids
// cannot lose a balance update.
func (s *BidService) PlaceBid(ctx context.Context, userID, productID int64, bidValue float64) (*model.CoinTransaction, error) {
	if math.IsNaN(bidValue) || bidValue <= 0 {
		return nil, ErrInvalidBid
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.Ended(time.Now()) {
		return nil, ErrAuctionEnded
	}

	var (
		tx     model.CoinTransaction
		bidder string
	)
	err = s.userLock.WithLock(userID, func() error {
		user, err := s.users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if user.Coins < s.bidCost {
			return ErrInsufficientCoins
		}
		bidder = user.Name

		if _, err := s.users.AdjustCoins(ctx, userID, -s.bidCost); err != nil {
			return fmt.Errorf("debit bid cost: %w", err)
		}

		now := time.Now()
		tx = model.CoinTransaction{
			ID:               newTransactionID(),
			UserID:           userID,
			PackageID:        0,
			Amount:           float64(-s.bidCost),
			Coins:            -s.bidCost,
			PaymentMethod:    model.PaymentMethodBid,
			PaymentReference: fmt.Sprintf("bid_%d_%d", productID, now.UnixMilli()),
			Status:           model.StatusCompleted,
			CreatedAt:        now,
			CompletedAt:      &now,
			AdminNotes:       fmt.Sprintf("Bid placed: %.2f on %s", bidValue, product.Name),
			AuctionID:        productID,
			BidAmount:        bidValue,
		}

		if err := s.txs.Append(ctx, tx); err != nil {
			// The debit already landed; compensate so the balance and the
			// history stay consistent.
			if _, rbErr := s.users.AdjustCoins(ctx, userID, s.bidCost); rbErr != nil {
				log.Error().Err(rbErr).
					Int64("user_id", userID).
					Msg("rollback after failed bid record also failed")
			}
			return fmt.Errorf("record bid: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Display-only update; the bid itself is already recorded.
	if err := s.products.UpdateLowestBid(ctx, productID, bidValue, bidder); err != nil {
		log.Warn().Err(err).
			Int64("product_id", productID).
			Msg("failed to update displayed lowest bid")
	}

	log.Info().
		Int64("user_id", userID).
		Int64("product_id", productID).
		Float64("bid", bidValue).
		Msg("bid placed")
	return &tx, nil
}
