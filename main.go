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

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/manuel14gregorioo/Agencia/internal/client"
	"github.com/manuel14gregorioo/Agencia/internal/config"
	"github.com/manuel14gregorioo/Agencia/internal/db"
	"github.com/manuel14gregorioo/Agencia/internal/handler"
	"github.com/manuel14gregorioo/Agencia/internal/service"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := run(logger); err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	// Optional in production; local development keeps settings in .env.
	_ = godotenv.Load()
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dsn, err := cfg.Postgres.URL()
	if err != nil {
		return err
	}

	if err := db.Migrate(ctx, dsn); err != nil {
		return err
	}

	pool, err := db.NewPostgresPool(ctx, dsn)
	if err != nil {
		return err
	}
	defer pool.Close()

	repo := &db.Postgres{Pool: pool}

	authSvc, err := service.NewAuthService(repo, cfg.Auth)
	if err != nil {
		return err
	}
	if err := authSvc.EnsureAdmin(ctx, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword, cfg.Auth.AdminName); err != nil {
		return err
	}

	var mailer *client.LeadMailer
	if cfg.Email.ResendAPIKey != "" {
		resend := client.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromAddress)
		mailer = client.NewLeadMailer(resend, cfg.Email.NotifyTo)
	} else {
		logger.Warn("RESEND_API_KEY not set, lead emails disabled")
	}

	var limiter *handler.RateLimiter
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
		})
		defer rdb.Close()
		limiter = handler.NewRateLimiter(rdb, logger)
	} else {
		logger.Warn("REDIS_ADDR not set, rate limiting disabled")
	}

	leadSvc := service.NewLeadService(repo, nil, logger)
	if mailer != nil {
		leadSvc = service.NewLeadService(repo, mailer, logger)
	}

	router := handler.NewRouter(handler.RouterConfig{
		Auth:           authSvc,
		Leads:          leadSvc,
		Newsletter:     service.NewNewsletterService(repo),
		Analytics:      service.NewAnalyticsService(repo),
		Stats:          service.NewStatsService(repo),
		Limiter:        limiter,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Logger:         logger,
	})

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
