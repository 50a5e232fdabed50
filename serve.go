package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"loan-evaluator/config"
	httpLayer "loan-evaluator/http"
	"loan-evaluator/repository"
	"loan-evaluator/service"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), cfg)
		},
	}

	cmd.Flags().String("addr", "", "listen address (overrides server.addr)")
	_ = v.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	return cmd
}

func serve(ctx context.Context, cfg config.Config) error {
	cache, closeCache, err := openCache(ctx, cfg.Cache)
	if err != nil {
		return err
	}
	defer closeCache()

	packages, closePackages, err := openPackages(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer closePackages()

	loanService := service.NewLoanService(repository.NewLoanRepositoryMemory(), cache, cfg.Cache.TTL)
	evaluationService := service.NewEvaluationService(packages)
	packageService := service.NewPackageService(packages)

	var limiter *httpLayer.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = httpLayer.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.Window)
		defer limiter.Stop()
	}

	router := httpLayer.NewRouter(httpLayer.Handlers{
		Loans:       httpLayer.NewLoanHandler(loanService),
		Evaluations: httpLayer.NewEvaluationHandler(evaluationService),
		Packages:    httpLayer.NewPackageHandler(packageService),
	}, limiter, cfg.Server.RequestTimeout)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("API listening", "addr", cfg.Server.Addr,
			"cache", cfg.Cache.Backend, "storage", cfg.Storage.Backend)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		slog.Info("Shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error during server shutdown: %w", err)
	}

	slog.Info("Server exited")
	return nil
}

func openCache(ctx context.Context, cfg config.CacheConfig) (repository.CacheRepository, func(), error) {
	if cfg.Backend != "redis" {
		return repository.NewMemoryCache(), func() {}, nil
	}

	cache := repository.NewRedisCache(cfg.RedisAddr)
	if err := cache.Ping(ctx); err != nil {
		_ = cache.Close()
		return nil, nil, err
	}
	return cache, func() {
		if err := cache.Close(); err != nil {
			slog.Warn("failed to close redis client", "error", err)
		}
	}, nil
}

func openPackages(ctx context.Context, cfg config.StorageConfig) (repository.PackageRepository, func(), error) {
	if cfg.Backend != "sqlite" {
		return repository.NewPackageRepositoryMemory(), func() {}, nil
	}

	repo, err := repository.NewPackageRepositorySQLite(ctx, cfg.SQLitePath)
	if err != nil {
		return nil, nil, err
	}
	return repo, func() {
		if err := repo.Close(); err != nil {
			slog.Warn("failed to close package database", "error", err)
		}
	}, nil
}
