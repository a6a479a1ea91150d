package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/josh-kwaku/account-registry/internal/config"
	"github.com/josh-kwaku/account-registry/internal/domain"
	"github.com/josh-kwaku/account-registry/internal/handler"
	"github.com/josh-kwaku/account-registry/internal/logging"
	"github.com/josh-kwaku/account-registry/internal/middleware"
	"github.com/josh-kwaku/account-registry/internal/repository"
	"github.com/josh-kwaku/account-registry/internal/service"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Init("account-registry", cfg.LogLevel, cfg.AppEnv)

	agencies, err := seedAgencies(cfg)
	if err != nil {
		slog.Error("failed to seed agencies", "error", err)
		os.Exit(1)
	}

	operators := repository.NewOperatorRepository(seedOperators(cfg)...)
	accounts := service.NewAccountService(repository.NewAccountRepository(), agencies)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           routes(cfg, accounts, operators),
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server started", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func routes(cfg *config.Config, accounts *service.AccountService, operators *repository.OperatorRepository) http.Handler {
	mux := http.NewServeMux()

	health := handler.NewHealthHandler(version)
	mux.HandleFunc("GET /health", health.Liveness)

	login := handler.NewAuthHandler(operators, cfg.JWTSecret, cfg.JWTExpiry)
	mux.HandleFunc("POST /api/v1/auth/login", login.Login)

	handler.NewAccountHandler(accounts).Register(mux, middleware.Auth(cfg.JWTSecret))

	return middleware.Tracing(middleware.Logging(middleware.Recovery(mux)))
}

func seedAgencies(cfg *config.Config) (*repository.AgencyRepository, error) {
	seeds, err := cfg.AgencySeeds()
	if err != nil {
		return nil, err
	}

	repo := repository.NewAgencyRepository()
	for _, s := range seeds {
		if err := repo.Add(context.Background(), domain.NewAgency(s.Number, s.Name)); err != nil {
			return nil, err
		}
		slog.Info("agency registered", "agency", s.Number, "name", s.Name)
	}
	return repo, nil
}

func seedOperators(cfg *config.Config) []*domain.Operator {
	if cfg.OperatorEmail == "" {
		slog.Warn("no operator configured, login is disabled")
		return nil
	}
	return []*domain.Operator{{
		ID:           uuid.New(),
		Email:        cfg.OperatorEmail,
		Name:         cfg.OperatorName,
		PasswordHash: cfg.OperatorPasswordHash,
		AgencyNumber: cfg.OperatorAgency,
	}}
}
