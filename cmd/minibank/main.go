package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/Zmiter88/MiniBank-v1/internal/bank"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v3"
)

func main() {
	appConfig, err := bank.LoadConfig()

	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(appConfig.LogLevel),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// convert all int64 to string, so it does not break some log visualization tools built with JavaScript
			if a.Value.Kind() == slog.KindInt64 {
				return slog.String(a.Key, strconv.FormatInt(a.Value.Int64(), 10))
			}
			return a
		},
	})).With("app", "minibank")

	idProvider, err := bank.NewIDProvider(appConfig.NodeID)

	if err != nil {
		logger.Error("failed to create ID provider", "error", err)
		os.Exit(1)
	}

	timeProvider := bank.NewTimeProvider()

	registry := bank.NewRegistry()

	service := bank.New(logger, registry, idProvider, timeProvider)

	if appConfig.SeedFile != "" {
		seedAccounts, err := bank.LoadSeedAccounts(appConfig.SeedFile)

		if err != nil {
			logger.Error("failed to load seed accounts", "error", err)
			os.Exit(1)
		}

		if err := service.Seed(seedAccounts); err != nil {
			logger.Error("failed to seed accounts", "error", err)
			os.Exit(1)
		}

		logger.Info("seeded accounts", "count", len(seedAccounts), "file", appConfig.SeedFile)
	}

	api := bank.NewAPI(logger, service, timeProvider)

	router := chi.NewRouter()

	if appConfig.HTTPLog {
		router.Use(httplog.RequestLogger(logger, &httplog.Options{
			Level:  slog.LevelInfo,
			Schema: httplog.SchemaOTEL,
		}))
	}

	api.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", appConfig.Port),
		Handler: router,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go func() {
		logger.Info("listening", "port", appConfig.Port, "env", appConfig.ENV)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("listen and serve failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}

	logger.Info("server stopped")
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
