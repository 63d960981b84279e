// Package service implements the storefront business logic on top of the
// entity repositories.
package service

import (
	"context"
	"errors"
	"fmt"

	"auction-storefront/internal/auth"
	"auction-storefront/internal/model"
	"auction-storefront/internal/repository"
)

// Common errors for authentication operations.
var (
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// AuthService handles signup, login and token-based identity.
type AuthService struct {
	users       *repository.UserRepository
	tokens      *auth.TokenManager
	signupGrant int64
}

// NewAuthService creates a new AuthService instance. signupGrant is the
// coin balance every new account starts with.
func NewAuthService(users *repository.UserRepository, tokens *auth.TokenManager, signupGrant int64) *AuthService {
	return &AuthService{
		users:       users,
		tokens:      tokens,
		signupGrant: signupGrant,
	}
}

// Signup registers a new user and returns the sanitized user plus a signed
// token. New accounts always get the user role.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*model.User, string, error) {
	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return nil, "", ErrDuplicateEmail
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, "", fmt.Errorf("check existing email: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, name, email, hash, model.RoleUser, s.signupGrant)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.IssueToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", err
	}

	sanitized := user.Sanitized()
	return &sanitized, token, nil
}

// Login verifies credentials and returns the sanitized user plus a signed
// token. Unknown email and wrong password are indistinguishable to the
// caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !auth.VerifyPassword(password, user.Password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.IssueToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", err
	}

	sanitized := user.Sanitized()
	return &sanitized, token, nil
}

// UserFromToken resolves a bearer token to the current user record.
// A valid token for a deleted user fails with auth.ErrInvalidToken.
func (s *AuthService) UserFromToken(ctx context.Context, token string) (*model.User, error) {
	claims, err := s.tokens.VerifyToken(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, auth.ErrInvalidToken
		}
		return nil, err
	}

	sanitized := user.Sanitized()
	return &sanitized, nil
}
