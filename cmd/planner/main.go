package main

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/couchcryptid/preparedness-planner-service/internal/adapter/feed"
	httpadapter "github.com/couchcryptid/preparedness-planner-service/internal/adapter/http"
	"github.com/couchcryptid/preparedness-planner-service/internal/config"
	"github.com/couchcryptid/preparedness-planner-service/internal/domain"
	"github.com/couchcryptid/preparedness-planner-service/internal/observability"
	"github.com/couchcryptid/preparedness-planner-service/internal/planner"
	"github.com/couchcryptid/preparedness-planner-service/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	if cfg.RandomSeed != 0 {
		domain.SetRand(rand.New(rand.NewSource(cfg.RandomSeed)))
		logger.Info("deterministic randomness enabled", "seed", cfg.RandomSeed)
	}

	kv, err := newStore(cfg)
	if err != nil {
		logger.Error("failed to open store", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}

	// Event feed is feature-flagged via FEED_ENABLED / KAFKA_BROKERS.
	var publisher planner.EventPublisher
	var feedWriter *feed.Writer
	if cfg.FeedEnabled {
		feedWriter = feed.NewWriter(cfg, logger)
		publisher = feedWriter
		metrics.FeedEnabled.Set(1)
		logger.Info("event feed enabled", "topic", cfg.FeedTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("event feed disabled")
	}

	session := planner.NewSession(kv, logger, metrics, planner.Options{
		Feed:           publisher,
		SimulatedDelay: cfg.SimulatedDelay,
		HouseholdSize:  cfg.HouseholdSize,
		DurationDays:   cfg.DurationDays,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	session.Load(ctx)

	srv := httpadapter.NewServer(cfg.HTTPAddr, session, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if feedWriter != nil {
		if err := feedWriter.Close(); err != nil {
			logger.Error("feed writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}

// newStore opens the configured persistence backend.
func newStore(cfg *config.Config) (store.KV, error) {
	switch cfg.StoreBackend {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		return store.NewRedisKV(client), nil
	default:
		return store.NewFileKV(cfg.DataDir)
	}
}
