package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/event-finder/backend/internal/client"
	"github.com/event-finder/backend/internal/config"
	"github.com/event-finder/backend/internal/db"
	"github.com/event-finder/backend/internal/handler"
	"github.com/event-finder/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	_ = godotenv.Load()
	cfg := config.Load()

	var logHandler slog.Handler
	if cfg.Server.AppEnv == "production" {
		logHandler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		logHandler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	logger := slog.New(logHandler)
	slog.SetDefault(logger)

	pool, err := db.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("failed to initialize postgres: %w", err)
	}
	defer pool.Close()

	queryTimeout, err := time.ParseDuration(cfg.Postgres.QueryTimeout)
	if err != nil {
		return fmt.Errorf("invalid PG_QUERY_TIMEOUT: %w", err)
	}
	store := db.NewPostgres(pool, queryTimeout)

	if err := store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	authSvc, err := service.NewAuthService(store, cfg.Auth)
	if err != nil {
		return err
	}
	favoritesSvc := service.NewFavoritesService(store)

	// The event cache is best-effort: without Redis the search endpoint just
	// hits the provider every time.
	var eventCache service.EventCache
	if cfg.Redis.URL != "" {
		rdb, err := db.NewRedisClient(ctx, cfg.Redis.URL, cfg.Redis.Password)
		if err != nil {
			logger.Warn("failed to connect to redis, event cache disabled", "error", err)
		} else {
			defer rdb.Close()
			eventCache = service.NewRedisEventCache(rdb)
		}
	}

	cacheTTL, err := time.ParseDuration(cfg.Ticketmaster.CacheTTL)
	if err != nil {
		return fmt.Errorf("invalid EVENT_CACHE_TTL: %w", err)
	}
	tmClient := client.NewTicketmasterClient(cfg.Ticketmaster)
	eventsSvc := service.NewEventsService(tmClient, eventCache, cacheTTL, logger)

	if cfg.Server.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := handler.SetupRouter(
		authSvc,
		handler.NewAuthHandler(authSvc),
		handler.NewFavoritesHandler(favoritesSvc),
		handler.NewEventsHandler(eventsSvc),
		cfg.Server.Origins,
	)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		logger.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	return nil
}
