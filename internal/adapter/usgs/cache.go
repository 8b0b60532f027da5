package usgs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonboulle/clockwork"
)

// cacheTimeLayout produces filenames like usgs_earthquakes_week_20140327.0915.csv.
const cacheTimeLayout = "20060102.1504"

// Cache writes downloaded feeds to timestamped files in a local directory.
type Cache struct {
	dir   string
	clock clockwork.Clock
}

// NewCache creates a feed cache rooted at dir. Pass a nil clock to use real
// time; tests inject a fake for deterministic filenames.
func NewCache(dir string, clock clockwork.Clock) *Cache {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Cache{dir: dir, clock: clock}
}

// Store writes one downloaded feed body to a new timestamped file and
// returns its path.
func (c *Cache) Store(source Source, data []byte) (string, error) {
	name := fmt.Sprintf("usgs_earthquakes_%s_%s.csv",
		strings.ToLower(string(source)),
		c.clock.Now().UTC().Format(cacheTimeLayout),
	)
	path := filepath.Join(c.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("store feed cache: %w", err)
	}
	return path, nil
}

// CachingFetcher decorates a feed fetcher, persisting every successful
// download to the cache. Cache writes are best-effort: a failed write logs a
// warning and the feed data is still returned.
type CachingFetcher struct {
	inner  *Client
	cache  *Cache
	logger *slog.Logger
}

// NewCachingFetcher creates the cache decorator around a download client.
func NewCachingFetcher(inner *Client, cache *Cache, logger *slog.Logger) *CachingFetcher {
	return &CachingFetcher{inner: inner, cache: cache, logger: logger}
}

func (f *CachingFetcher) Fetch(ctx context.Context) ([]byte, error) {
	data, err := f.inner.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	path, err := f.cache.Store(f.inner.source, data)
	if err != nil {
		f.logger.Warn("feed cache write failed", "error", err)
		return data, nil
	}
	f.logger.Info("feed cached", "path", path)
	return data, nil
}

// FileFetcher reads a previously downloaded feed file instead of hitting the
// network.
type FileFetcher struct {
	path string
}

// NewFileFetcher creates a fetcher over a local feed file.
func NewFileFetcher(path string) *FileFetcher {
	return &FileFetcher{path: path}
}

func (f *FileFetcher) Fetch(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read feed file: %w", err)
	}
	return data, nil
}
