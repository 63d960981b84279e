package repository

import (
	"context"
	"fmt"
	"strings"

	"auction-storefront/internal/kv"
	"auction-storefront/internal/model"
)

// UserRepository handles user persistence.
type UserRepository struct {
	store kv.Store
}

// NewUserRepository creates a new UserRepository instance.
func NewUserRepository(store kv.Store) *UserRepository {
	return &UserRepository{store: store}
}

// GetAll returns every persisted user record, password hashes included.
func (r *UserRepository) GetAll(ctx context.Context) ([]model.DatabaseUser, error) {
	return loadCollection[model.DatabaseUser](ctx, r.store, kv.KeyUsers)
}

// SaveAll replaces the whole user collection.
func (r *UserRepository) SaveAll(ctx context.Context, users []model.DatabaseUser) error {
	return storeCollection(ctx, r.store, kv.KeyUsers, users)
}

// GetByID retrieves a user by id. Returns ErrUserNotFound if missing.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.DatabaseUser, error) {
	users, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, ErrUserNotFound
}

// GetByEmail retrieves a user by email, case-insensitively.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.DatabaseUser, error) {
	users, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			return &users[i], nil
		}
	}
	return nil, ErrUserNotFound
}

// Create appends a new user with id max(existing)+1 and returns it.
func (r *UserRepository) Create(ctx context.Context, name, email, passwordHash string, role model.Role, coins int64) (*model.DatabaseUser, error) {
	users, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(users))
	for i := range users {
		ids[i] = users[i].ID
	}

	user := model.DatabaseUser{
		User: model.User{
			ID:    nextID(ids),
			Name:  name,
			Email: email,
			Role:  role,
			Coins: coins,
		},
		Password: passwordHash,
	}

	users = append(users, user)
	if err := r.SaveAll(ctx, users); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// AdjustCoins adds delta to a user's balance (delta may be negative) and
// returns the sanitized updated user.
func (r *UserRepository) AdjustCoins(ctx context.Context, id int64, delta int64) (*model.User, error) {
	users, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			users[i].Coins += delta
			if err := r.SaveAll(ctx, users); err != nil {
				return nil, fmt.Errorf("adjust coins: %w", err)
			}
			sanitized := users[i].Sanitized()
			return &sanitized, nil
		}
	}
	return nil, ErrUserNotFound
}
