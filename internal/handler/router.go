package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	custommiddleware "auction-storefront/internal/middleware"
)

// SetupRouter wires the HTTP routes and middleware.
func (h *Handler) SetupRouter(authMW *custommiddleware.AuthMiddleware) *chi.Mux {
	r := chi.NewRouter()

	r.Use(custommiddleware.Logger(h.logger))

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", h.Register)
		r.Post("/auth/login", h.Login)

		r.Get("/products", h.ListProducts)
		r.Get("/products/{id}", h.GetProduct)
		r.Get("/packages", h.ListPackages)
		r.Get("/payment-methods", h.ListPaymentMethods)

		r.Group(func(r chi.Router) {
			r.Use(authMW.Middleware)

			r.Get("/me", h.Me)
			r.Get("/me/transactions", h.MyTransactions)

			r.Post("/products/{id}/bids", h.PlaceBid)

			r.Post("/transactions", h.CreateTransaction)
			r.Post("/transactions/{id}/proof", h.AttachPaymentProof)

			r.Group(func(r chi.Router) {
				r.Use(authMW.RequireAdmin)

				r.Post("/products", h.AddProduct)

				r.Get("/admin/users", h.ListUsers)
				r.Post("/admin/users/{id}/coins", h.GrantCoins)

				r.Get("/admin/transactions", h.ListTransactions)
				r.Post("/admin/transactions/{id}/verify", h.VerifyTransaction)

				r.Get("/admin/packages", h.ListAllPackages)
				r.Post("/admin/packages", h.AddPackage)
				r.Put("/admin/packages/{id}", h.UpdatePackage)
				r.Delete("/admin/packages/{id}", h.DeletePackage)

				r.Get("/admin/settings/vodafone-numbers", h.GetVodafoneNumbers)
				r.Put("/admin/settings/vodafone-numbers", h.UpdateVodafoneNumbers)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	return r
}
