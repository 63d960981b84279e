package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auction-storefront/internal/auth"
	"auction-storefront/internal/kv"
	"auction-storefront/internal/model"
	"auction-storefront/internal/repository"
	"auction-storefront/internal/service"
)

func newAuthMiddleware(t *testing.T) (*AuthMiddleware, *service.AuthService) {
	t.Helper()

	users := repository.NewUserRepository(kv.NewMemoryStore())
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	authSvc := service.NewAuthService(users, tokens, 1000)
	return NewAuthMiddleware(authSvc), authSvc
}

// echoUser writes the authenticated user's email, proving the context was
// populated.
func echoUser(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		http.Error(w, "no user", http.StatusInternalServerError)
		return
	}
	_, _ = w.Write([]byte(user.Email))
}

func TestMiddlewareRejectsMissingOrBadToken(t *testing.T) {
	mw, _ := newAuthMiddleware(t)
	handler := mw.Middleware(http.HandlerFunc(echoUser))

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Basic abc"},
		{"empty token", "Bearer "},
		{"garbage token", "Bearer not.a.token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestMiddlewarePopulatesContext(t *testing.T) {
	mw, authSvc := newAuthMiddleware(t)
	handler := mw.Middleware(http.HandlerFunc(echoUser))

	_, token, err := authSvc.Signup(context.Background(), "Alice", "alice@winzo.com", "secret")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice@winzo.com", rec.Body.String())
}

func TestRequireAdmin(t *testing.T) {
	mw, _ := newAuthMiddleware(t)
	handler := mw.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// No authenticated user at all.
	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Regular user.
	user := &model.User{ID: 1, Role: model.RoleUser}
	req = httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	req = req.WithContext(context.WithValue(req.Context(), userKey, user))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Admin.
	admin := &model.User{ID: 2, Role: model.RoleAdmin}
	req = httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	req = req.WithContext(context.WithValue(req.Context(), userKey, admin))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
