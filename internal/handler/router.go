package handler

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// RouterConfig holds the knobs NewRouter needs beyond the handler itself.
type RouterConfig struct {
	CORSOrigins []string
	StaffToken  string
	Logger      *log.Logger
}

// NewRouter builds the chi router for the public and staff APIs.
func NewRouter(h *BoardHandler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware stack
	r.Use(chimiddleware.Recoverer) // recover from panics, return 500
	r.Use(chimiddleware.RequestID) // attach request IDs
	r.Use(chimiddleware.RealIP)    // trust X-Forwarded-For
	r.Use(Logger(cfg.Logger))
	r.Use(CORS(cfg.CORSOrigins))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "not found")
	})

	r.Get("/health", HealthCheck)
	r.Get("/stats", h.Stats)

	r.Route("/boards", func(r chi.Router) {
		r.Get("/", h.ListBoards)
		r.Get("/available", h.ListAvailable)
		r.Get("/sponsored", h.ListSponsored)
		r.Get("/renewals", h.ListRenewals)
		r.Get("/{id}", h.GetBoard)
	})

	r.Route("/staff", func(r chi.Router) {
		r.Use(RequireStaffToken(cfg.StaffToken))

		r.Post("/renewals/sweep", h.SweepRenewals)
		r.Route("/boards/{id}", func(r chi.Router) {
			r.Post("/reserve", h.Reserve)
			r.Post("/confirm-payment", h.ConfirmPayment)
			r.Post("/cancel", h.CancelReservation)
			r.Post("/renew", h.RenewContract)
			r.Post("/end", h.EndContract)
			r.Post("/flag-renewal", h.FlagRenewal)
			r.Put("/price", h.SetPrice)
		})
	})

	return r
}
