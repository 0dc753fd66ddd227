package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/notedex/internal/config"
	dbRedis "github.com/kailas-cloud/notedex/internal/db/redis"
	"github.com/kailas-cloud/notedex/internal/domain"
	"github.com/kailas-cloud/notedex/internal/extract"
	logpkg "github.com/kailas-cloud/notedex/internal/logger"
	"github.com/kailas-cloud/notedex/internal/metrics"
	documentrepo "github.com/kailas-cloud/notedex/internal/repository/document"
	searchrepo "github.com/kailas-cloud/notedex/internal/repository/search"
	chiTransport "github.com/kailas-cloud/notedex/internal/transport/chi"
	openaiEmb "github.com/kailas-cloud/notedex/internal/transport/openai"
	searchuc "github.com/kailas-cloud/notedex/internal/usecase/search"
	"github.com/kailas-cloud/notedex/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting notedex search server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register search metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	// Build embedder chain — composition root
	var embed domain.Embedder
	var health domain.HealthChecker
	if cfg.Embedding.APIKey == "" {
		logger.Warn("No embedding provider configured, search runs in degraded mode")
		unconfigured := domain.NewUnconfiguredEmbedder()
		embed, health = unconfigured, unconfigured
	} else {
		provider := openaiEmb.NewEmbedder(&openaiEmb.Config{
			APIKey:     cfg.Embedding.APIKey,
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
			Provider:   cfg.Embedding.Provider,
			Logger:     logger,
		})
		embed, health = provider, provider
		if cfg.Embedding.QueryInstruction != "" {
			embed = domain.NewInstructionEmbedder(provider, cfg.Embedding.QueryInstruction)
		}
	}

	passages := searchrepo.New(store, cfg.Search.KeyPrefix)
	documents := documentrepo.New(store, cfg.Search.KeyPrefix)

	searchSvc := searchuc.New(
		passages,
		passages,
		documents,
		extract.New(),
		embed,
		cfg.Search.SimilarityThreshold,
		logger,
	)

	server := chiTransport.NewServer(searchSvc, health, store, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      server.Router(),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}
