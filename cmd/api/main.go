package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/raffleworks/sorteo-backend/api/routes"
	"github.com/raffleworks/sorteo-backend/internal/config"
	"github.com/raffleworks/sorteo-backend/internal/handlers"
	"github.com/raffleworks/sorteo-backend/internal/repositories"
	memoryrepo "github.com/raffleworks/sorteo-backend/internal/repositories/memory"
	mongorepo "github.com/raffleworks/sorteo-backend/internal/repositories/mongodb"
	"github.com/raffleworks/sorteo-backend/internal/services"
	"github.com/raffleworks/sorteo-backend/pkg/mongodb"
	"golang.org/x/exp/slog"
)

func main() {
	// .env is optional, real deployments use environment variables
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.LogLevel)

	var (
		prizeRepo       repositories.PrizeRepository
		participantRepo repositories.ParticipantRepository
		winnerRepo      repositories.WinnerRepository
		adminRepo       repositories.AdminUserRepository
	)

	switch cfg.Persistence.Driver {
	case "memory":
		slog.Warn("using in-memory persistence, all data is lost on restart")
		prizeRepo = memoryrepo.NewPrizeRepository()
		participantRepo = memoryrepo.NewParticipantRepository()
		winnerRepo = memoryrepo.NewWinnerRepository()
		adminRepo = memoryrepo.NewAdminUserRepository()
	default:
		client, err := mongodb.NewClient(cfg.MongoDB.URI)
		if err != nil {
			slog.Error("failed to connect to MongoDB", "error", err, "uri", cfg.MongoDB.URI)
			os.Exit(1)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(ctx); err != nil {
				slog.Error("error disconnecting from MongoDB", "error", err)
			}
		}()

		db := client.Database(cfg.MongoDB.Database)
		prizeRepo = mongorepo.NewPrizeRepository(db)
		participantRepo = mongorepo.NewParticipantRepository(db)
		winnerRepo = mongorepo.NewWinnerRepository(db)
		adminRepo = mongorepo.NewAdminUserRepository(db)
	}

	authService := services.NewAuthService(adminRepo, cfg)
	prizeService := services.NewPrizeService(prizeRepo)
	participantService := services.NewParticipantService(participantRepo, winnerRepo)
	winnerService := services.NewWinnerService(winnerRepo)
	drawService := services.NewDrawService(prizeRepo, participantRepo, winnerRepo)

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 10*time.Second)
	if err := authService.EnsureAdmin(seedCtx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		cancelSeed()
		slog.Error("failed to seed admin account", "error", err)
		os.Exit(1)
	}
	cancelSeed()

	router := routes.SetupRouter(cfg, routes.Handlers{
		Auth:        handlers.NewAuthHandler(authService),
		Prize:       handlers.NewPrizeHandler(prizeService),
		Participant: handlers.NewParticipantHandler(participantService),
		Winner:      handlers.NewWinnerHandler(winnerService, drawService),
		Draw:        handlers.NewDrawHandler(drawService),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Server.Port, "persistence", cfg.Persistence.Driver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited")
}

func setupLogger(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
