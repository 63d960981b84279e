package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"auction-storefront/internal/model"
	"auction-storefront/internal/pkg/lock"
	"auction-storefront/internal/repository"
)

// ErrTransactionClosed is returned when Verify is called on a transaction
// that already left the pending state. Verification is idempotent: the coin
// credit for a transaction is applied at most once.
var ErrTransactionClosed = errors.New("transaction already verified")

// CreateTransactionParams are the caller-supplied fields of a new
// coin-purchase transaction.
type CreateTransactionParams struct {
	UserID           int64
	PackageID        int64
	Amount           float64
	Coins            int64
	PaymentMethod    string
	PaymentReference string
}

// TransactionService owns the coin-transaction state machine:
// pending -> completed on approval, pending -> failed on rejection.
type TransactionService struct {
	txs      *repository.TransactionRepository
	users    *repository.UserRepository
	userLock *lock.UserLock
}

// NewTransactionService creates a new TransactionService instance.
func NewTransactionService(txs *repository.TransactionRepository, users *repository.UserRepository, userLock *lock.UserLock) *TransactionService {
	return &TransactionService{
		txs:      txs,
		users:    users,
		userLock: userLock,
	}
}

// newTransactionID allocates an opaque unique transaction id.
func newTransactionID() string {
	return fmt.Sprintf("txn_%d_%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// Create records a new purchase transaction. It always starts pending and
// has no effect on the user's balance.
func (s *TransactionService) Create(ctx context.Context, params CreateTransactionParams) (*model.CoinTransaction, error) {
	tx := model.CoinTransaction{
		ID:               newTransactionID(),
		UserID:           params.UserID,
		PackageID:        params.PackageID,
		Amount:           params.Amount,
		Coins:            params.Coins,
		PaymentMethod:    params.PaymentMethod,
		PaymentReference: params.PaymentReference,
		Status:           model.StatusPending,
		CreatedAt:        time.Now(),
	}

	if err := s.txs.Append(ctx, tx); err != nil {
		return nil, err
	}

	log.Info().
		Str("transaction_id", tx.ID).
		Int64("user_id", tx.UserID).
		Int64("coins", tx.Coins).
		Msg("transaction created")
	return &tx, nil
}

// AttachPaymentProof stores the payment evidence on an existing pending
// transaction. The status is unchanged.
func (s *TransactionService) AttachPaymentProof(ctx context.Context, transactionID, senderNumber, reference, screenshot, screenshotFileName string) (*model.CoinTransaction, error) {
	tx, err := s.txs.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	tx.VodafoneNumber = senderNumber
	tx.PaymentReference = reference
	tx.PaymentScreenshot = screenshot
	tx.ScreenshotFileName = screenshotFileName

	if err := s.txs.Update(ctx, *tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// Verify applies an admin decision to a pending transaction. Approval moves
// it to completed and credits the transaction's coins to its owner; the
// credit happens exactly here and nowhere else. Rejection moves it to
// failed with no coin effect. If the credit write fails, the status update
// is rolled back so the transaction can be verified again.
//
// The pending check, status write and credit run as one unit under the
// owner's lock. Two racing verifications of the same record serialize
// there; the loser sees a non-pending status and fails with
// ErrTransactionClosed instead of crediting a second time.
func (s *TransactionService) Verify(ctx context.Context, transactionID string, approved bool, adminID int64, notes string) (*model.CoinTransaction, error) {
	// Read once outside the lock to learn the owner; the authoritative
	// re-read happens under it.
	initial, err := s.txs.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	var tx *model.CoinTransaction
	err = s.userLock.WithLock(initial.UserID, func() error {
		tx, err = s.txs.GetByID(ctx, transactionID)
		if err != nil {
			return err
		}
		if tx.Status != model.StatusPending {
			return ErrTransactionClosed
		}

		previous := *tx

		now := time.Now()
		if approved {
			tx.Status = model.StatusCompleted
		} else {
			tx.Status = model.StatusFailed
		}
		tx.CompletedAt = &now
		tx.AdminNotes = notes

		if err := s.txs.Update(ctx, *tx); err != nil {
			return err
		}

		if approved {
			if _, err := s.users.AdjustCoins(ctx, tx.UserID, tx.Coins); err != nil {
				// Compensate: put the transaction back to pending so the
				// credit is not silently lost.
				if rbErr := s.txs.Update(ctx, previous); rbErr != nil {
					log.Error().Err(rbErr).
						Str("transaction_id", tx.ID).
						Msg("rollback after failed credit also failed")
				}
				return fmt.Errorf("credit coins: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("transaction_id", tx.ID).
		Bool("approved", approved).
		Int64("admin_id", adminID).
		Msg("transaction verified")
	return tx, nil
}

// ListPending returns all pending transactions, newest first.
func (s *TransactionService) ListPending(ctx context.Context) ([]model.CoinTransaction, error) {
	return s.txs.GetByStatus(ctx, model.StatusPending)
}

// ListAll returns every transaction, newest first.
func (s *TransactionService) ListAll(ctx context.Context) ([]model.CoinTransaction, error) {
	return s.txs.GetAll(ctx)
}

// Get returns a single transaction by id.
func (s *TransactionService) Get(ctx context.Context, transactionID string) (*model.CoinTransaction, error) {
	return s.txs.GetByID(ctx, transactionID)
}
