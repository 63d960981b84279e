package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"auction-storefront/internal/middleware"
	"auction-storefront/internal/model"
)

// ListUsers handles GET /api/admin/users.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.accounts.ListUsers(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, users)
}

type grantCoinsRequest struct {
	Coins int64 `json:"coins"`
}

// GrantCoins handles POST /api/admin/users/{id}/coins.
func (h *Handler) GrantCoins(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid user id"})
		return
	}

	var req grantCoinsRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	user, err := h.accounts.GrantCoins(r.Context(), userID, req.Coins)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, user)
}

// ListTransactions handles GET /api/admin/transactions. The optional
// ?status=pending query narrows the result to the review queue.
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	var (
		transactions []model.CoinTransaction
		err          error
	)
	if r.URL.Query().Get("status") == string(model.StatusPending) {
		transactions, err = h.transactions.ListPending(r.Context())
	} else {
		transactions, err = h.transactions.ListAll(r.Context())
	}
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, transactions)
}

type verifyRequest struct {
	Approved bool   `json:"approved"`
	Notes    string `json:"notes,omitempty"`
}

// VerifyTransaction handles POST /api/admin/transactions/{id}/verify.
func (h *Handler) VerifyTransaction(w http.ResponseWriter, r *http.Request) {
	admin, ok := middleware.UserFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	transactionID := chi.URLParam(r, "id")

	var req verifyRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	tx, err := h.transactions.Verify(r.Context(), transactionID, req.Approved, admin.ID, req.Notes)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, tx)
}

// AddProduct handles POST /api/products.
func (h *Handler) AddProduct(w http.ResponseWriter, r *http.Request) {
	var product model.Product
	if !h.decodeJSON(w, r, &product) {
		return
	}

	created, err := h.catalog.AddProduct(r.Context(), product)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}

// ListAllPackages handles GET /api/admin/packages.
func (h *Handler) ListAllPackages(w http.ResponseWriter, r *http.Request) {
	packages, err := h.catalog.ListAllPackages(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, packages)
}

// AddPackage handles POST /api/admin/packages.
func (h *Handler) AddPackage(w http.ResponseWriter, r *http.Request) {
	var pkg model.CoinPackage
	if !h.decodeJSON(w, r, &pkg) {
		return
	}

	created, err := h.catalog.AddPackage(r.Context(), pkg)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}

// UpdatePackage handles PUT /api/admin/packages/{id}.
func (h *Handler) UpdatePackage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid package id"})
		return
	}

	var pkg model.CoinPackage
	if !h.decodeJSON(w, r, &pkg) {
		return
	}

	updated, err := h.catalog.UpdatePackage(r.Context(), id, pkg)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, updated)
}

// DeletePackage handles DELETE /api/admin/packages/{id}.
func (h *Handler) DeletePackage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid package id"})
		return
	}

	if err := h.catalog.DeletePackage(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetVodafoneNumbers handles GET /api/admin/settings/vodafone-numbers.
func (h *Handler) GetVodafoneNumbers(w http.ResponseWriter, r *http.Request) {
	numbers, err := h.catalog.VodafoneNumbers(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, numbers)
}

type vodafoneNumbersRequest struct {
	Numbers []string `json:"numbers"`
}

// UpdateVodafoneNumbers handles PUT /api/admin/settings/vodafone-numbers.
func (h *Handler) UpdateVodafoneNumbers(w http.ResponseWriter, r *http.Request) {
	var req vodafoneNumbersRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	if err := h.catalog.UpdateVodafoneNumbers(r.Context(), req.Numbers); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, req.Numbers)
}
