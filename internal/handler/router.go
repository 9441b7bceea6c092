package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	custommiddleware "github.com/mmeshcher/voicebank-system/internal/middleware"
)

// SetupRouter настраивает HTTP-маршруты и middleware банковского сервиса.
func (h *Handler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(custommiddleware.GzipMiddleware)
	r.Use(custommiddleware.Logger(h.logger))

	r.Route("/api/user", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)

		r.Get("/error", h.GetError)
		r.Delete("/error", h.ClearError)

		r.Group(func(r chi.Router) {
			r.Use(h.authMiddleware.Middleware)

			r.Post("/logout", h.Logout)

			r.Get("/balance", h.GetBalance)
			r.Get("/transactions", h.GetTransactions)

			r.Post("/deposit", h.Deposit)
			r.Post("/withdraw", h.Withdraw)
			r.Post("/transfer", h.Transfer)
		})
	})

	r.Post("/api/voice/command", h.VoiceCommand)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	return r
}
