package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Glen2003/IPTspotifyFinal/internal/app/migrate"
	"github.com/Glen2003/IPTspotifyFinal/internal/chat"
	httpx "github.com/Glen2003/IPTspotifyFinal/internal/http"
	"github.com/Glen2003/IPTspotifyFinal/internal/repository/postgres"
	"github.com/Glen2003/IPTspotifyFinal/internal/service/auth"
	"github.com/Glen2003/IPTspotifyFinal/internal/service/catalog"
	"github.com/Glen2003/IPTspotifyFinal/internal/service/directory"
	"github.com/Glen2003/IPTspotifyFinal/pkg/config"
	"github.com/Glen2003/IPTspotifyFinal/pkg/logger"
)

func main() {
	cfg := config.LoadAPIConfig()
	log := logger.New("api", slog.LevelInfo)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	runner, err := migrate.New(pool, cfg.DatabaseURL, cfg.MigrationsDir, log)
	if err != nil {
		log.Error("failed to configure migrations", "error", err)
		os.Exit(1)
	}
	defer runner.Close()
	if err := runner.Ping(ctx); err != nil {
		log.Error("database ping failed", "error", err)
		os.Exit(1)
	}
	if err := runner.Ensure(ctx); err != nil {
		log.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	repo := postgres.New(pool)
	authSvc := auth.New(repo, log, cfg)
	directorySvc := directory.New(repo, log)
	catalogSvc := catalog.New(log, cfg)
	hub := chat.NewHub(authSvc, log)

	router := httpx.NewRouter(log, authSvc, directorySvc, catalogSvc, hub, pool.Ping, cfg.AllowedOrigin)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errorCh := make(chan error, 1)
	go func() {
		log.Info("api server starting", "addr", cfg.Addr)
		errorCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
		log.Info("api server stopped")
	case err := <-errorCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}
}
