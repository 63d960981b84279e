// Package handler implements the HTTP API of the auction storefront.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"auction-storefront/internal/auth"
	"auction-storefront/internal/repository"
	"auction-storefront/internal/service"
)

// Handler bundles the services behind the HTTP API.
type Handler struct {
	auth         *service.AuthService
	accounts     *service.AccountService
	catalog      *service.CatalogService
	transactions *service.TransactionService
	bids         *service.BidService
	logger       zerolog.Logger
}

// New creates a new Handler instance.
func New(authSvc *service.AuthService, accounts *service.AccountService, catalog *service.CatalogService, transactions *service.TransactionService, bids *service.BidService, logger zerolog.Logger) *Handler {
	return &Handler{
		auth:         authSvc,
		accounts:     accounts,
		catalog:      catalog,
		transactions: transactions,
		bids:         bids,
		logger:       logger,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			h.logger.Error().Err(err).Msg("encode response")
		}
	}
}

// writeError maps domain errors onto HTTP status codes. Storage failures
// and other unexpected errors become an opaque 500.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var status int
	switch {
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		status = http.StatusUnauthorized
	case errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrProductNotFound),
		errors.Is(err, repository.ErrPackageNotFound),
		errors.Is(err, repository.ErrTransactionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrDuplicateEmail), errors.Is(err, service.ErrTransactionClosed):
		status = http.StatusConflict
	case errors.Is(err, service.ErrInsufficientCoins),
		errors.Is(err, service.ErrAuctionEnded),
		errors.Is(err, service.ErrInvalidBid):
		status = http.StatusUnprocessableEntity
	default:
		h.logger.Error().Err(err).Msg("internal error")
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	h.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}
