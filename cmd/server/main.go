package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"

	"github.com/DebbieAwesomePawsome/pawsome-platform/internal/app"
	"github.com/DebbieAwesomePawsome/pawsome-platform/internal/auth"
	"github.com/DebbieAwesomePawsome/pawsome-platform/internal/config"
	"github.com/DebbieAwesomePawsome/pawsome-platform/internal/database"
	"github.com/DebbieAwesomePawsome/pawsome-platform/internal/logging"
	"github.com/DebbieAwesomePawsome/pawsome-platform/internal/notify"
	"github.com/DebbieAwesomePawsome/pawsome-platform/internal/redis"
	"github.com/DebbieAwesomePawsome/pawsome-platform/internal/server"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupDB(cfg *config.Config) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.RunMigrationsWithLock(ctx, db); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	return db
}

func setupRedis(ctx context.Context, cfg *config.Config) *goredis.Client {
	client, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	return client
}

func seedAdmin(cfg *config.Config, appSvc *app.Service) {
	if cfg.AdminUser == "" {
		return
	}

	hash, err := auth.HashPassword(cfg.AdminPass)
	if err != nil {
		slog.Error("Failed to hash admin password", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := appSvc.SeedAdmin(ctx, cfg.AdminUser, hash); err != nil {
		slog.Error("Failed to seed admin account", "error", err)
		os.Exit(1)
	}
	slog.Info("Admin account seeded", "username", cfg.AdminUser)
}

func runGracefulShutdown(srv *server.Server) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	// Initialize structured logging
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	pool := setupDB(cfg)
	defer pool.Close()

	redisClient := setupRedis(context.Background(), cfg)
	defer func() { _ = redisClient.Close() }()

	serviceRepo := database.NewServiceRepo(pool)
	adminRepo := database.NewAdminRepo(pool)
	enquiryRepo := database.NewEnquiryRepo(pool)

	catalogCache := redis.NewCatalogCache(redisClient, serviceRepo, cfg.CatalogCacheTTL)
	loginLimiter := redis.NewLoginLimiter(redisClient, clock, cfg.LoginRateLimit, cfg.LoginRateWindow)
	tokenService := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL, clock)

	// Email notifications are optional (pass nil explicitly to avoid
	// typed-nil interface)
	var appSvc *app.Service
	if cfg.SendGridAPIKey != "" {
		notifier := notify.NewEmailNotifier(cfg.SendGridAPIKey, cfg.NotifyFromEmail, cfg.NotifyToEmail)
		appSvc = app.NewService(serviceRepo, catalogCache, adminRepo, enquiryRepo, tokenService, auth.CheckPassword, notifier)
	} else {
		appSvc = app.NewService(serviceRepo, catalogCache, adminRepo, enquiryRepo, tokenService, auth.CheckPassword, nil)
	}

	seedAdmin(cfg, appSvc)

	srv := server.NewServer(cfg, appSvc, tokenService, loginLimiter, pool, redisClient)

	done := runGracefulShutdown(srv)

	slog.Info("Server starting", "port", cfg.Port)
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
