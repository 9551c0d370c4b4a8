package handlers

import (
	"os"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) SetRoutes(r *chi.Mux) {
	r.Get("/health", h.HealthHandler)

	r.Route("/api", func(r chi.Router) {

		// Public reads. The verifier runs so a presented token yields the
		// premium capability, but anonymous requests pass through.
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(h.tokenAuth))

			r.Get("/picks/today", h.HandleTodaysPicks)
			r.Get("/picks", h.HandlePicksByDate)
			r.Get("/games/{id}", h.HandleGameDetail)
			r.Get("/news/latest", h.HandleLatestNews)
			r.Get("/news", h.HandleAllNews)
			r.Get("/news/category/{category}", h.HandleNewsByCategory)
			r.Get("/analytics", h.HandleAnalyticsSummary)
			r.Get("/analytics/performance", h.HandleAnalyticsPerformance)
		})

		// Secure routes
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(h.tokenAuth))
			r.Use(jwtauth.Authenticator)

			r.Get("/me", h.HandleProfile)
		})

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(h.tokenAuth))
			r.Use(jwtauth.Authenticator)
			r.Use(h.RequireAdmin)

			r.Post("/admin/games", h.HandleCreateGame)
			r.Post("/admin/predictions", h.HandleCreatePrediction)
			r.Post("/admin/news", h.HandlePublishNews)
			r.Post("/admin/games/{id}/settle", h.HandleSettleGame)
			r.Post("/admin/games/{id}/status", h.HandleAdvanceGame)
			r.Post("/admin/users", h.HandleRegisterUser)
		})
	})
}

func (h *Handler) InitAuth() {
	var jwtKey = os.Getenv("JWT_SECRET_KEY")
	h.tokenAuth = jwtauth.New("HS256", []byte(jwtKey), nil)

	expirationTime := time.Now().Add(7 * 24 * time.Hour).Unix()

	_, tokenString, _ := h.tokenAuth.Encode(map[string]interface{}{
		"service_id": 8003022,
		"admin":      true,
		"premium":    true,
		"exp":        expirationTime,
	})

	// For debugging only, comment it out in production
	log.Infof("DEBUG: JWT for testing expires soon : %s", tokenString)
}
