package repository

import (
	"context"
	"fmt"
	"sort"

	"auction-storefront/internal/kv"
	"auction-storefront/internal/model"
)

// TransactionRepository handles coin transaction persistence.
type TransactionRepository struct {
	store kv.Store
}

// NewTransactionRepository creates a new TransactionRepository instance.
func NewTransactionRepository(store kv.Store) *TransactionRepository {
	return &TransactionRepository{store: store}
}

// GetAll returns every transaction sorted by createdAt descending.
func (r *TransactionRepository) GetAll(ctx context.Context) ([]model.CoinTransaction, error) {
	transactions, err := loadCollection[model.CoinTransaction](ctx, r.store, kv.KeyTransactions)
	if err != nil {
		return nil, err
	}
	sort.Slice(transactions, func(i, j int) bool {
		return transactions[i].CreatedAt.After(transactions[j].CreatedAt)
	})
	return transactions, nil
}

// SaveAll replaces the whole transaction collection.
func (r *TransactionRepository) SaveAll(ctx context.Context, transactions []model.CoinTransaction) error {
	return storeCollection(ctx, r.store, kv.KeyTransactions, transactions)
}

// GetByID retrieves a transaction by its opaque id.
// Returns ErrTransactionNotFound if missing.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*model.CoinTransaction, error) {
	transactions, err := loadCollection[model.CoinTransaction](ctx, r.store, kv.KeyTransactions)
	if err != nil {
		return nil, err
	}
	for i := range transactions {
		if transactions[i].ID == id {
			return &transactions[i], nil
		}
	}
	return nil, ErrTransactionNotFound
}

// GetByStatus returns transactions in the given status, newest first.
func (r *TransactionRepository) GetByStatus(ctx context.Context, status model.TransactionStatus) ([]model.CoinTransaction, error) {
	transactions, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	filtered := transactions[:0]
	for _, t := range transactions {
		if t.Status == status {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

// GetByUserID returns a user's transactions, newest first.
func (r *TransactionRepository) GetByUserID(ctx context.Context, userID int64) ([]model.CoinTransaction, error) {
	transactions, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	filtered := transactions[:0]
	for _, t := range transactions {
		if t.UserID == userID {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

// Append persists a new transaction record.
func (r *TransactionRepository) Append(ctx context.Context, tx model.CoinTransaction) error {
	transactions, err := loadCollection[model.CoinTransaction](ctx, r.store, kv.KeyTransactions)
	if err != nil {
		return err
	}
	transactions = append(transactions, tx)
	if err := r.SaveAll(ctx, transactions); err != nil {
		return fmt.Errorf("append transaction: %w", err)
	}
	return nil
}

// Update replaces the stored record with the same id.
// Returns ErrTransactionNotFound if no such record exists.
func (r *TransactionRepository) Update(ctx context.Context, tx model.CoinTransaction) error {
	transactions, err := loadCollection[model.CoinTransaction](ctx, r.store, kv.KeyTransactions)
	if err != nil {
		return err
	}
	for i := range transactions {
		if transactions[i].ID == tx.ID {
			transactions[i] = tx
			if err := r.SaveAll(ctx, transactions); err != nil {
				return fmt.Errorf("update transaction: %w", err)
			}
			return nil
		}
	}
	return ErrTransactionNotFound
}
