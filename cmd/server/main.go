// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/oyonews/internal/api"
	"github.com/tomtom215/oyonews/internal/auth"
	"github.com/tomtom215/oyonews/internal/cms"
	"github.com/tomtom215/oyonews/internal/config"
	"github.com/tomtom215/oyonews/internal/feed"
	"github.com/tomtom215/oyonews/internal/logging"
	"github.com/tomtom215/oyonews/internal/supervisor"
	"github.com/tomtom215/oyonews/internal/supervisor/services"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stdout,
	})

	logging.Info().
		Str("cms", cfg.CMS.BaseURL).
		Str("environment", cfg.Server.Environment).
		Str("session_store", cfg.Security.SessionStore).
		Msg("Starting OyoNews")

	// CMS client: outbound rate limit inside, circuit breaker outside.
	breaker := cms.NewCircuitBreakerClient(cms.NewClient(&cfg.CMS), cms.DefaultBreakerSettings())

	storeFactory, err := auth.NewSessionStoreFactory(auth.SessionStoreType(cfg.Security.SessionStore), cfg.Security.SessionStorePath)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open session store")
	}
	defer func() {
		if err := storeFactory.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing session store")
		}
	}()

	encryptor, err := auth.NewTokenEncryptor(&auth.TokenEncryptorConfig{MasterKey: cfg.Security.TokenEncryptionKey})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize token encryption")
	}
	if encryptor == nil && cfg.Server.IsProduction() {
		logging.Warn().Msg("TOKEN_ENCRYPTION_KEY is not set, CMS tokens are stored in plain text")
	}

	authSvc := auth.NewService(breaker, storeFactory.CreateStore(), encryptor, &cfg.Security)
	cookies, err := auth.NewCookieManager(&cfg.Security)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize session cookies")
	}
	sessions := auth.NewMiddleware(authSvc, cookies)

	feeds := feed.NewRegistry(breaker, feed.Options{
		TopPerPage:    cfg.Feed.TopPerPage,
		PerPage:       cfg.Feed.PerPage,
		MaxConcurrent: cfg.Feed.MaxConcurrentFetches,
	}, cfg.Feed.ViewTTL)
	defer feeds.CloseAll()

	handler, err := api.NewHandler(api.HandlerDeps{
		Config:   cfg,
		CMS:      breaker,
		Feeds:    feeds,
		Auth:     authSvc,
		Sessions: sessions,
		Ready:    breaker,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize handlers")
	}
	router := api.NewRouter(handler, sessions, api.ChiMiddlewareConfigFromSecurity(&cfg.Security))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tasks := []services.Task{
		services.TaskFunc("feed-views", func(ctx context.Context) (int, error) {
			return feeds.Sweep(ctx), nil
		}),
		services.TaskFunc("sessions", authSvc.Cleanup),
		services.TaskFunc("session-store-gc", func(context.Context) (int, error) {
			return storeFactory.RunValueLogGC()
		}),
	}
	for _, c := range handler.Caches() {
		tasks = append(tasks, services.CacheTask(c))
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  shutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}
	tree.AddMaintenanceService(services.NewJanitorService(cfg.Feed.JanitorInterval, tasks...))
	tree.AddAPIService(services.NewHTTPServerService(server, shutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("addr", server.Addr).Msg("Serving")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree stopped with error")
	}

	if report, err := tree.UnstoppedServiceReport(); err == nil && len(report) > 0 {
		for _, svc := range report {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop in time")
		}
	}
	logging.Info().Msg("Shutdown complete")
}
