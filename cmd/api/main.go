package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/oggyb/lessons-api/internal/auth"
	"github.com/oggyb/lessons-api/internal/cache"
	"github.com/oggyb/lessons-api/internal/cache/redis"
	"github.com/oggyb/lessons-api/internal/config"
	"github.com/oggyb/lessons-api/internal/db/gormdb"
	"github.com/oggyb/lessons-api/internal/handler"
	"github.com/oggyb/lessons-api/internal/logger"
	"github.com/oggyb/lessons-api/internal/metrics"
	"github.com/oggyb/lessons-api/internal/middleware"
	lessonRepo "github.com/oggyb/lessons-api/internal/repository/gorm/lesson"
	userRepo "github.com/oggyb/lessons-api/internal/repository/gorm/user"
	routes "github.com/oggyb/lessons-api/internal/router"
	"github.com/oggyb/lessons-api/internal/server"
	"github.com/oggyb/lessons-api/internal/service"
)

// @title                      Lessons API
// @version                    1.0
// @description                Course lessons with transformed JSON envelopes, v1 resource routes and JWT-protected v2 routes.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
// @description                Type "Bearer" followed by a space and the token.
func main() {
	// Base context for the whole application lifetime.
	rootCtx := context.Background()

	// Load configuration from environment/.env.
	cfg := config.New()

	zl, err := logger.New(cfg.App.Env, cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := cfg.Validate(); err != nil {
		zl.Fatal("invalid configuration", zap.Error(err))
	}

	// Init cache.
	rdb := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer func() { _ = rdb.Close() }()
	if err := rdb.Ping(rootCtx); err != nil {
		zl.Fatal("failed to connect to redis", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
	}

	// Init DB.
	db, err := gormdb.New(cfg.PostgresDSN(), zl)
	if err != nil {
		zl.Fatal("failed to connect db", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	// Init repositories and services.

	var lessonCache cache.Cache
	if cfg.Cache.Enabled {
		lessonCache = rdb
	}

	lessonSvc := service.NewLessonService(
		lessonRepo.NewRepository(db),
		lessonCache,
		cfg.Cache.LessonTTL,
		cfg.Pagination.PerPage,
		zl,
	)

	tokens, err := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.RefreshTTL, rdb)
	if err != nil {
		zl.Fatal("failed to init token service", zap.Error(err))
	}

	authSvc := service.NewAuthService(
		userRepo.NewRepository(db),
		auth.NewBcryptHasher(0),
		tokens,
		zl,
	)

	// HTTP dependencies & server wiring.
	m := metrics.New()

	deps := routes.AppDeps{
		Home:    handler.NewHomeHandler(),
		Lesson:  handler.NewLessonHandler(lessonSvc, cfg.Transform.MaxWorkers, zl),
		Auth:    handler.NewAuthHandler(authSvc, zl),
		Guard:   middleware.NewAuthMiddleware(tokens, zl),
		Metrics: m.Handler(),
	}

	addr := cfg.Addr()
	srv := server.New(addr, deps, zl, m)

	// Create a context that is cancelled on SIGINT/SIGTERM (Ctrl+C, docker stop etc.).
	ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start the HTTP server in a separate goroutine so we can listen for signals.
	go func() {
		zl.Info("HTTP server listening", zap.String("addr", addr), zap.String("env", cfg.App.Env))

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Block until we receive a shutdown signal.
	<-ctx.Done()
	zl.Info("shutdown signal received, starting graceful shutdown")

	// Give in-flight requests some time to finish.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("HTTP server graceful shutdown failed", zap.Error(err))
	} else {
		zl.Info("HTTP server stopped")
	}

	zl.Info("shutdown complete")
}
