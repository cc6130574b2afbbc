package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cryptofolio/Crypto-Exit-Tracker-Backend/internal/api/handlers"
	custommiddleware "github.com/cryptofolio/Crypto-Exit-Tracker-Backend/internal/api/middleware"
	"github.com/cryptofolio/Crypto-Exit-Tracker-Backend/internal/config"
	"github.com/cryptofolio/Crypto-Exit-Tracker-Backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	holdingService *service.HoldingService,
	exitPlanService *service.ExitPlanService,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/holdings", func(r chi.Router) {
			holdingHandler := handlers.NewHoldingHandler(holdingService)
			r.Get("/", holdingHandler.Holdings)
			r.Get("/summary", holdingHandler.PortfolioSummary)
			r.Post("/", holdingHandler.CreateHolding)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Put("/", holdingHandler.UpdateHolding)
				r.Delete("/", holdingHandler.DeleteHolding)
			})
		})

		r.Route("/exit-plans", func(r chi.Router) {
			exitPlanHandler := handlers.NewExitPlanHandler(exitPlanService)
			r.Post("/", exitPlanHandler.CreateExitPlan)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				// {uuid} is the holding ID on GET, the plan ID on the others
				r.Get("/", exitPlanHandler.ExitPlansPerHolding)
				r.Put("/", exitPlanHandler.UpdateExitPlan)
				r.Delete("/", exitPlanHandler.DeleteExitPlan)
				r.Post("/toggle", exitPlanHandler.ToggleExecuted)
			})
		})
	})

	return r
}
