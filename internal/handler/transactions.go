package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"auction-storefront/internal/middleware"
	"auction-storefront/internal/service"
)

// Me handles GET /api/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}
	h.writeJSON(w, http.StatusOK, user)
}

// MyTransactions handles GET /api/me/transactions.
func (h *Handler) MyTransactions(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	transactions, err := h.accounts.ListUserTransactions(r.Context(), user.ID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, transactions)
}

type createTransactionRequest struct {
	PackageID        int64   `json:"packageId"`
	Amount           float64 `json:"amount"`
	Coins            int64   `json:"coins"`
	PaymentMethod    string  `json:"paymentMethod"`
	PaymentReference string  `json:"paymentReference"`
}

// CreateTransaction handles POST /api/transactions. The transaction is
// created pending; coins are only credited after admin approval.
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req createTransactionRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	tx, err := h.transactions.Create(r.Context(), service.CreateTransactionParams{
		UserID:           user.ID,
		PackageID:        req.PackageID,
		Amount:           req.Amount,
		Coins:            req.Coins,
		PaymentMethod:    req.PaymentMethod,
		PaymentReference: req.PaymentReference,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, tx)
}

type paymentProofRequest struct {
	SenderNumber       string `json:"senderNumber"`
	Reference          string `json:"reference"`
	PaymentScreenshot  string `json:"paymentScreenshot,omitempty"`
	ScreenshotFileName string `json:"screenshotFileName,omitempty"`
}

// AttachPaymentProof handles POST /api/transactions/{id}/proof.
func (h *Handler) AttachPaymentProof(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "id")

	var req paymentProofRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	tx, err := h.transactions.AttachPaymentProof(r.Context(), transactionID, req.SenderNumber, req.Reference, req.PaymentScreenshot, req.ScreenshotFileName)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, tx)
}
