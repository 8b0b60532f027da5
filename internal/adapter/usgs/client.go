// Package usgs fetches earthquake summary CSV feeds from the USGS and
// persists downloaded feeds to timestamped local cache files so a run can be
// replayed against the same data later.
package usgs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Source selects which summary feed window to download.
type Source string

const (
	SourceWeek  Source = "WEEK"  // all events of the last 7 days
	SourceMonth Source = "MONTH" // all events of the last 30 days
)

// DefaultBaseURL is the USGS summary feed root.
const DefaultBaseURL = "https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary"

// feedFile maps a source to its CSV file name under the summary root.
func feedFile(source Source) (string, error) {
	switch source {
	case SourceWeek:
		return "all_week.csv", nil
	case SourceMonth:
		return "all_month.csv", nil
	default:
		return "", fmt.Errorf("unknown feed source %q", source)
	}
}

// Client downloads the configured summary feed over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
	source     Source
	logger     *slog.Logger
}

// NewClient creates a feed download client. Pass an empty baseURL to use the
// public USGS endpoint.
func NewClient(source Source, baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		source:     source,
		logger:     logger,
	}
}

// Fetch downloads the feed CSV and returns the raw body. The download is a
// single blocking call bounded by the client timeout; retry policy belongs
// to the caller.
func (c *Client) Fetch(ctx context.Context) ([]byte, error) {
	file, err := feedFile(c.source)
	if err != nil {
		return nil, err
	}
	feedURL := c.baseURL + "/" + file

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s feed: %w", c.source, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("usgs feed error: status %d: %s", resp.StatusCode, body)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read feed body: %w", err)
	}

	c.logger.Info("feed downloaded",
		"source", string(c.source),
		"url", feedURL,
		"bytes", len(data),
		"duration", time.Since(start),
	)
	return data, nil
}
