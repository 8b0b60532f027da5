// Command quakefeed serves analytics over the USGS earthquake summary feed.
//
// On start it materializes one batch from the configured source (the 7-day
// feed, the 30-day feed, or a previously downloaded file), analyzes it, and
// serves the report over HTTP. With a refresh interval set it re-downloads
// and re-analyzes periodically; with Kafka enabled it publishes the
// classified significant events to the sink topic after every refresh.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/quake-feed-analytics/internal/adapter/csvfeed"
	httpadapter "github.com/couchcryptid/quake-feed-analytics/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/quake-feed-analytics/internal/adapter/kafka"
	"github.com/couchcryptid/quake-feed-analytics/internal/adapter/usgs"
	"github.com/couchcryptid/quake-feed-analytics/internal/config"
	"github.com/couchcryptid/quake-feed-analytics/internal/observability"
	"github.com/couchcryptid/quake-feed-analytics/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	fetcher := newFetcher(cfg, logger)

	// Publisher is feature-flagged via KAFKA_ENABLED.
	var publisher pipeline.EventPublisher
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("kafka publishing enabled", "topic", cfg.KafkaSinkTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("kafka publishing disabled")
	}

	p := pipeline.New(
		fetcher,
		pipeline.ParserFunc(csvfeed.Parse),
		publisher,
		logger,
		metrics,
		cfg.MagThreshold,
		cfg.RefreshInterval,
	)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start refresh pipeline.
	pipelineErr := make(chan error, 1)
	go func() {
		pipelineErr <- p.Run(ctx)
	}()

	exitCode := 0
	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-pipelineErr:
		if err != nil {
			logger.Error("pipeline error", "error", err)
			exitCode = 1
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
	os.Exit(exitCode)
}

// newFetcher builds the feed source: a local file reader, or the USGS
// download client wrapped in the cache decorator.
func newFetcher(cfg *config.Config, logger *slog.Logger) pipeline.FeedFetcher {
	if cfg.FeedIsFile() {
		logger.Info("using local feed file", "path", cfg.FeedSource)
		return usgs.NewFileFetcher(cfg.FeedSource)
	}
	client := usgs.NewClient(usgs.Source(cfg.FeedSource), cfg.FeedBaseURL, cfg.FeedTimeout, logger)
	cache := usgs.NewCache(cfg.CacheDir, nil)
	return usgs.NewCachingFetcher(client, cache, logger)
}
