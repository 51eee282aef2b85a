// Command notegraph-server starts the notegraph GraphQL API server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/notegraph/notegraph/internal/config"
	"github.com/notegraph/notegraph/internal/graph"
	"github.com/notegraph/notegraph/internal/limiter"
	"github.com/notegraph/notegraph/internal/migrate"
	"github.com/notegraph/notegraph/internal/repository/postgres"
	httpserver "github.com/notegraph/notegraph/internal/server/http"
	"github.com/notegraph/notegraph/internal/service"
	"github.com/notegraph/notegraph/internal/token"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// main loads configuration, runs migrations, and starts the HTTP server.
func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("addr", cfg.AppAddr),
	)

	// Context with OS signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migrate.Up(ctx, cfg.PGDSN); err != nil {
		logger.Fatal("migrate up", zap.Error(err))
	}

	// DB pool
	db, err := postgres.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Fatal("postgres.New", zap.Error(err))
	}
	defer db.Close()

	// Repositories
	userRepo := postgres.NewUserRepo(db)
	noteRepo := postgres.NewNoteRepo(db)

	lim := limiter.NewPGWithQuerier(db.Pool, cfg.LoginFailWindow, cfg.LoginMaxFails, cfg.LoginBlockFor)

	// Services
	tokens := token.New([]byte(cfg.JWTSecret), cfg.AccessTTL)
	authSvc := service.NewAuthService(userRepo, tokens, lim)
	noteSvc := service.NewNoteService(noteRepo)

	schema, err := graph.NewSchema(&graph.Resolver{
		Users: userRepo,
		Auth:  authSvc,
		Notes: noteSvc,
	})
	if err != nil {
		logger.Fatal("build schema", zap.Error(err))
	}

	srv := httpserver.New(cfg, logger, schema, tokens, noteSvc)
	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("shutdown complete")
}
