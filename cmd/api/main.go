package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/carteira-app/carteira/internal/gateway/bankapi"
	infraRedis "github.com/carteira-app/carteira/internal/infra/redis"
	"github.com/carteira-app/carteira/internal/platform/extract"
	"github.com/carteira-app/carteira/internal/platform/prefs"
	"github.com/carteira-app/carteira/internal/platform/session"
	"github.com/carteira-app/carteira/internal/platform/wallet"
	"github.com/carteira-app/carteira/internal/transport/httpapi"
	"github.com/carteira-app/carteira/internal/transport/httpapi/handler"
	"github.com/carteira-app/carteira/internal/transport/httpapi/middleware"
	"github.com/carteira-app/carteira/pkg/config"
	"github.com/carteira-app/carteira/pkg/logger"
)

func main() {
	// Create context that listens for termination signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewDefault(cfg.Env)
	log.Info("Starting Carteira API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	// Initialize Redis client for sessions and preferences
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	log.Info("Redis connection established")

	// Initialize the core banking gateway
	bankClient := bankapi.NewClient(cfg.BackendURL, cfg.BackendAPIKey, log)
	log.Info("Banking gateway initialized", "backend_url", cfg.BackendURL)

	// Initialize stores
	sessionStore := infraRedis.NewSessionStore(redisClient, log)
	prefsStore := infraRedis.NewPrefsStore(redisClient, log)

	// Initialize services
	sessionSvc := session.NewService(bankClient, sessionStore, cfg.SessionTTL, log)
	prefsSvc := prefs.NewService(prefsStore, log)
	walletSvc := wallet.NewService(bankClient, prefsSvc, log)
	extractSvc := extract.NewService(bankClient, log)

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(sessionSvc)
	walletHandler := handler.NewWalletHandler(walletSvc)
	extractHandler := handler.NewExtractHandler(extractSvc)
	prefsHandler := handler.NewPrefsHandler(prefsSvc)
	healthHandler := handler.NewHealthHandler(redisPinger{redisClient})

	// Create HTTP router
	routerCfg := httpapi.Config{
		Logger:         log,
		AllowedOrigins: cfg.AllowedOrigins,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		AuthHandler:    authHandler,
		WalletHandler:  walletHandler,
		ExtractHandler: extractHandler,
		PrefsHandler:   prefsHandler,
		HealthHandler:  healthHandler,
		AuthMiddleware: middleware.Auth(sessionSvc),
	}
	r := httpapi.NewRouter(routerCfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for termination signal
	<-ctx.Done()
	log.Info("Shutdown signal received")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("Server stopped gracefully")
}

// redisPinger adapts the redis client to the health handler's interface
type redisPinger struct {
	client *redis.Client
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}
