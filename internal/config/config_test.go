package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "WEEK", cfg.FeedSource)
	assert.Empty(t, cfg.FeedBaseURL)
	assert.Equal(t, 30*time.Second, cfg.FeedTimeout)
	assert.Equal(t, ".", cfg.CacheDir)
	assert.Equal(t, time.Hour, cfg.RefreshInterval)
	assert.Equal(t, 5.0, cfg.MagThreshold)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "classified-quake-events", cfg.KafkaSinkTopic)
	assert.False(t, cfg.FeedIsFile())
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("FEED_SOURCE", "MONTH")
	t.Setenv("FEED_BASE_URL", "http://localhost:9000/summary")
	t.Setenv("FEED_TIMEOUT", "5s")
	t.Setenv("CACHE_DIR", "/var/cache/quakes")
	t.Setenv("REFRESH_INTERVAL", "15m")
	t.Setenv("MAG_THRESHOLD", "6.1")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "broker1:9092, broker2:9092")
	t.Setenv("KAFKA_SINK_TOPIC", "custom-sink")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "MONTH", cfg.FeedSource)
	assert.Equal(t, "http://localhost:9000/summary", cfg.FeedBaseURL)
	assert.Equal(t, 5*time.Second, cfg.FeedTimeout)
	assert.Equal(t, "/var/cache/quakes", cfg.CacheDir)
	assert.Equal(t, 15*time.Minute, cfg.RefreshInterval)
	assert.Equal(t, 6.1, cfg.MagThreshold)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-sink", cfg.KafkaSinkTopic)
}

func TestLoad_FileSource(t *testing.T) {
	t.Setenv("FEED_SOURCE", "usgs_earthquakes_week_20140327.0915.csv")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.FeedIsFile())
}

func TestLoad_ZeroRefreshIntervalMeansRunOnce(t *testing.T) {
	t.Setenv("REFRESH_INTERVAL", "0s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), cfg.RefreshInterval)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad shutdown timeout", "SHUTDOWN_TIMEOUT", "not-a-duration"},
		{"negative shutdown timeout", "SHUTDOWN_TIMEOUT", "-1s"},
		{"bad feed timeout", "FEED_TIMEOUT", "soon"},
		{"negative refresh interval", "REFRESH_INTERVAL", "-5m"},
		{"bad refresh interval", "REFRESH_INTERVAL", "hourly"},
		{"bad magnitude threshold", "MAG_THRESHOLD", "big"},
		{"negative magnitude threshold", "MAG_THRESHOLD", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestLoad_KafkaEnabledNeedsBrokers(t *testing.T) {
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", " , ")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_BROKERS")
}
