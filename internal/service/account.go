package service

import (
	"context"
	"fmt"

	"auction-storefront/internal/model"
	"auction-storefront/internal/pkg/lock"
	"auction-storefront/internal/repository"
)

// AccountService handles user account reads and admin coin grants.
type AccountService struct {
	users    *repository.UserRepository
	txs      *repository.TransactionRepository
	userLock *lock.UserLock
}

// NewAccountService creates a new AccountService instance.
func NewAccountService(users *repository.UserRepository, txs *repository.TransactionRepository, userLock *lock.UserLock) *AccountService {
	return &AccountService{
		users:    users,
		txs:      txs,
		userLock: userLock,
	}
}

// GetUser returns the sanitized user with the given id.
func (s *AccountService) GetUser(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	sanitized := user.Sanitized()
	return &sanitized, nil
}

// ListUsers returns every user without password hashes.
func (s *AccountService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.User, 0, len(users))
	for i := range users {
		out = append(out, users[i].Sanitized())
	}
	return out, nil
}

// GrantCoins adds coins to a user's balance. The grant is applied under the
// user's lock so it cannot race a concurrent bid debit.
func (s *AccountService) GrantCoins(ctx context.Context, userID int64, coins int64) (*model.User, error) {
	var updated *model.User
	err := s.userLock.WithLock(userID, func() error {
		var err error
		updated, err = s.users.AdjustCoins(ctx, userID, coins)
		if err != nil {
			return fmt.Errorf("grant coins: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ListUserTransactions returns a user's transaction history, newest first.
func (s *AccountService) ListUserTransactions(ctx context.Context, userID int64) ([]model.CoinTransaction, error) {
	return s.txs.GetByUserID(ctx, userID)
}
