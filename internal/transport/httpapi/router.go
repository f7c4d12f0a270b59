package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/carteira-app/carteira/internal/transport/httpapi/handler"
	"github.com/carteira-app/carteira/internal/transport/httpapi/middleware"
	"github.com/carteira-app/carteira/pkg/logger"
)

// Config holds router configuration
type Config struct {
	Logger         *logger.Logger
	AllowedOrigins []string
	RateLimitRPS   int
	RateLimitBurst int
	AuthHandler    *handler.AuthHandler
	WalletHandler  *handler.WalletHandler
	ExtractHandler *handler.ExtractHandler
	PrefsHandler   *handler.PrefsHandler
	HealthHandler  *handler.HealthHandler
	AuthMiddleware func(http.Handler) http.Handler
}

// NewRouter creates a new HTTP router
func NewRouter(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(chimiddleware.Compress(5))
	r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))

	// Health check endpoints (no authentication required)
	r.Get("/health", handler.GetHealth)
	r.Get("/health/live", handler.GetLiveness)
	if cfg.HealthHandler != nil {
		r.Get("/health/ready", cfg.HealthHandler.GetReadiness)
		r.Get("/health/detailed", cfg.HealthHandler.GetHealthDetailed)
	}

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Auth routes (public - no session required)
		if cfg.AuthHandler != nil {
			r.Post("/auth/signup", cfg.AuthHandler.Signup)
			r.Post("/auth/login", cfg.AuthHandler.Login)
		}

		// Protected routes (require an active session)
		if cfg.AuthMiddleware != nil {
			r.Group(func(r chi.Router) {
				r.Use(cfg.AuthMiddleware)

				if cfg.AuthHandler != nil {
					r.Post("/auth/logout", cfg.AuthHandler.Logout)
				}

				// Wallet routes
				if cfg.WalletHandler != nil {
					r.Post("/wallets", cfg.WalletHandler.CreateWallet)
					r.Get("/wallets", cfg.WalletHandler.GetWallets)
					r.Get("/wallets/{id}", cfg.WalletHandler.GetWallet)
					r.Put("/wallets/{id}", cfg.WalletHandler.UpdateWallet)
					r.Delete("/wallets/{id}", cfg.WalletHandler.DeleteWallet)
					r.Post("/wallets/{id}/deposit", cfg.WalletHandler.Deposit)
					r.Post("/wallets/{id}/withdraw", cfg.WalletHandler.Withdraw)
				}

				// Extract routes
				if cfg.ExtractHandler != nil {
					r.Get("/extract", cfg.ExtractHandler.GetExtract)
				}

				// Preference and screen state routes
				if cfg.PrefsHandler != nil {
					r.Get("/icons", cfg.PrefsHandler.GetIcons)
					r.Get("/wallets/{id}/icon", cfg.PrefsHandler.GetWalletIcon)
					r.Put("/wallets/{id}/icon", cfg.PrefsHandler.SetWalletIcon)
					r.Route("/screens", func(r chi.Router) {
						r.Get("/wallet/{id}", cfg.PrefsHandler.GetWalletScreenState)
						r.Put("/wallet/{id}", cfg.PrefsHandler.SetWalletScreenState)
						r.Get("/extract", cfg.PrefsHandler.GetExtractScreenState)
						r.Put("/extract", cfg.PrefsHandler.SetExtractScreenState)
					})
				}
			})
		}
	})

	return r
}
