package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/quake-feed-analytics/internal/domain"
	"github.com/couchcryptid/quake-feed-analytics/internal/observability"
)

// FeedFetcher retrieves one raw feed body (download or local file read).
type FeedFetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// BatchParser materializes a record batch from a raw feed body, reporting
// rows it had to skip.
type BatchParser interface {
	Parse(r io.Reader) (domain.Batch, []domain.SkippedRow, error)
}

// ParserFunc adapts a parse function to the BatchParser interface.
type ParserFunc func(io.Reader) (domain.Batch, []domain.SkippedRow, error)

func (f ParserFunc) Parse(r io.Reader) (domain.Batch, []domain.SkippedRow, error) {
	return f(r)
}

// EventPublisher delivers classified events to downstream consumers.
type EventPublisher interface {
	PublishBatch(ctx context.Context, events []domain.ClassifiedQuake) error
}

// Snapshot is the published result of one refresh cycle. The batch inside is
// immutable; handlers derive filtered views from it without coordination.
type Snapshot struct {
	Batch       domain.Batch
	Report      domain.Report
	Classified  []domain.ClassifiedQuake
	Significant []domain.ClassifiedQuake // magnitude ≥ the configured threshold
	SkippedRows []domain.SkippedRow
	RefreshedAt time.Time
}

// Pipeline runs the fetch-parse-analyze-publish cycle and holds the latest
// snapshot for the HTTP adapter.
type Pipeline struct {
	fetcher   FeedFetcher
	parser    BatchParser
	publisher EventPublisher // nil disables publishing
	logger    *slog.Logger
	metrics   *observability.Metrics

	magThreshold    float64
	refreshInterval time.Duration

	mu       sync.RWMutex
	snapshot *Snapshot
	ready    atomic.Bool
}

// New creates a Pipeline. Pass a nil publisher to disable event publishing;
// a refreshInterval of zero refreshes once and then only serves.
func New(f FeedFetcher, parser BatchParser, pub EventPublisher, logger *slog.Logger, metrics *observability.Metrics, magThreshold float64, refreshInterval time.Duration) *Pipeline {
	return &Pipeline{
		fetcher:         f,
		parser:          parser,
		publisher:       pub,
		logger:          logger,
		metrics:         metrics,
		magThreshold:    magThreshold,
		refreshInterval: refreshInterval,
	}
}

// CheckReadiness returns nil once the pipeline has completed at least one
// refresh, or an error describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not completed a refresh yet")
	}
	return nil
}

// Snapshot returns the latest published snapshot. The boolean is false until
// the first refresh completes.
func (p *Pipeline) Snapshot() (Snapshot, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.snapshot == nil {
		return Snapshot{}, false
	}
	return *p.snapshot, true
}

// Run refreshes once, then re-refreshes on the configured interval until the
// context is cancelled. The initial refresh is fail-fast: a service that
// cannot materialize its first batch has nothing to serve. Later failures
// keep the previous snapshot and are retried on the next tick.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started",
		"refresh_interval", p.refreshInterval,
		"mag_threshold", p.magThreshold,
		"publishing", p.publisher != nil,
	)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	if err := p.Refresh(ctx); err != nil {
		p.metrics.RefreshErrors.Inc()
		return fmt.Errorf("initial refresh: %w", err)
	}

	if p.refreshInterval <= 0 {
		<-ctx.Done()
		p.logger.Info("pipeline stopping", "reason", ctx.Err())
		return nil
	}

	ticker := time.NewTicker(p.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("pipeline stopping", "reason", ctx.Err())
			return nil
		case <-ticker.C:
			if err := p.Refresh(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				p.metrics.RefreshErrors.Inc()
				p.logger.Error("refresh failed, keeping previous snapshot", "error", err)
			}
		}
	}
}

// Refresh runs one complete cycle and swaps the published snapshot. Each
// cycle operates on a freshly materialized immutable batch; there is no
// incremental update of a loaded batch.
func (p *Pipeline) Refresh(ctx context.Context) error {
	start := time.Now()

	fetchStart := time.Now()
	data, err := p.fetcher.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch feed: %w", err)
	}
	p.metrics.FetchDuration.Observe(time.Since(fetchStart).Seconds())

	batch, skipped, err := p.parser.Parse(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("parse feed: %w", err)
	}
	for _, row := range skipped {
		p.logger.Warn("feed row skipped", "line", row.Line, "error", row.Err)
	}
	p.metrics.RowsSkipped.Add(float64(len(skipped)))
	p.metrics.RecordsIngested.Add(float64(batch.Len()))
	p.metrics.BatchRecords.Observe(float64(batch.Len()))

	report, err := domain.Analyze(batch)
	if err != nil {
		return fmt.Errorf("analyze batch: %w", err)
	}

	classified := domain.Classify(batch)
	significant := domain.Classify(domain.FilterByMagnitude(batch, p.magThreshold))

	p.publish(ctx, significant)

	snap := &Snapshot{
		Batch:       batch,
		Report:      report,
		Classified:  classified,
		Significant: significant,
		SkippedRows: skipped,
		RefreshedAt: report.GeneratedAt,
	}
	p.mu.Lock()
	p.snapshot = snap
	p.mu.Unlock()
	p.ready.Store(true)

	p.metrics.RefreshDuration.Observe(time.Since(start).Seconds())
	p.logger.Info("refresh complete",
		"records", batch.Len(),
		"skipped", len(skipped),
		"days", len(report.DailyCounts),
		"strongest_mag", report.Strongest.Magnitude,
		"significant", len(significant),
		"duration", time.Since(start),
	)
	return nil
}

// publish delivers the significant classified set downstream. Publishing is
// delivery, not analysis: a failed write logs and counts but does not fail
// the refresh, so the HTTP surface still serves the new snapshot.
func (p *Pipeline) publish(ctx context.Context, events []domain.ClassifiedQuake) {
	if p.publisher == nil || len(events) == 0 {
		return
	}
	if err := p.publisher.PublishBatch(ctx, events); err != nil {
		p.metrics.PublishErrors.Inc()
		p.logger.Error("publish classified events failed", "error", err, "events", len(events))
		return
	}
	p.metrics.EventsPublished.Add(float64(len(events)))
}
