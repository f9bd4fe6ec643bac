// Package main is the entry point for the Pixyo API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pixyo/internal/ai"
	"pixyo/internal/cache"
	"pixyo/internal/config"
	"pixyo/internal/database"
	"pixyo/internal/handlers"
	"pixyo/internal/router"
	"pixyo/internal/session"
	"pixyo/internal/storage"
	"pixyo/internal/store"
	"pixyo/internal/unsplash"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL and bring the schema up to date.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (sessions + search cache).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyAddr(), cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// Session cookies are Secure outside development.
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)

	// Data stores.
	userStore := store.NewUserStore(db)
	profileStore := store.NewProfileStore(db)
	designStore := store.NewDesignStore(db)
	usageLogStore := store.NewUsageLogStore(db)
	genLogStore := store.NewGenerationLogStore(db)
	waitlistStore := store.NewWaitlistStore(db)

	// S3-compatible object storage (optional: the app works without it,
	// with uploads answering 503).
	var storageClient *storage.Client
	if cfg.S3Endpoint != "" && cfg.S3AccessKey != "" {
		storageClient, err = storage.New(
			cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
			cfg.S3Bucket, cfg.S3PublicURL,
		)
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		slog.Info("s3 storage connected",
			"endpoint", cfg.S3Endpoint,
			"bucket", cfg.S3Bucket,
		)
	} else {
		slog.Warn("s3 storage not configured: logo, thumbnail and background uploads disabled")
	}

	// AI provider registry.
	aiRegistry := ai.NewRegistry(cfg.AIProvider, map[string]ai.ProviderConfig{
		"gemini": {APIKey: cfg.GeminiAPIKey, Model: cfg.GeminiModel, ModelImage: cfg.GeminiImageModel},
		"claude": {APIKey: cfg.ClaudeAPIKey, Model: cfg.ClaudeModel},
	})
	slog.Info("ai providers initialized",
		"active", aiRegistry.ActiveName(),
		"available", aiRegistry.Available(),
		"image_generation", aiRegistry.SupportsImageGeneration(),
	)

	// Unsplash proxy (optional) with a short-lived Valkey cache in front.
	unsplashClient := unsplash.New(cfg.UnsplashAccessKey)
	if unsplashClient == nil {
		slog.Warn("unsplash not configured: stock photo search disabled")
	}
	searchCache := cache.NewSearchCache(valkeyClient, cache.DefaultSearchTTL)

	// Handler groups.
	deps := router.Deps{
		Sessions: sessionStore,
		Users:    userStore,

		Auth:     handlers.NewAuth(sessionStore, userStore),
		Profiles: handlers.NewProfiles(profileStore, storageClient),
		Designs:  handlers.NewDesigns(designStore, profileStore, storageClient),
		Generate: handlers.NewGenerate(aiRegistry, usageLogStore, genLogStore),
		Usage:    handlers.NewUsage(usageLogStore),
		Track:    handlers.NewTrack(genLogStore),
		Waitlist: handlers.NewWaitlist(waitlistStore),
		Unsplash: handlers.NewUnsplash(unsplashClient, searchCache),
		Admin:    handlers.NewAdmin(userStore, profileStore, storageClient),
	}

	r := router.New(deps)

	// WriteTimeout must accommodate the AI endpoints, which wait on a
	// provider call bounded at 120s.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 150 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
