package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	// FeedSource is "WEEK", "MONTH", or the path of a previously downloaded
	// feed file.
	FeedSource  string
	FeedBaseURL string
	FeedTimeout time.Duration
	CacheDir    string

	RefreshInterval time.Duration
	MagThreshold    float64

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	KafkaEnabled   bool
	KafkaBrokers   []string
	KafkaSinkTopic string
}

// FeedIsFile reports whether FeedSource names a local file rather than a
// download window.
func (c *Config) FeedIsFile() bool {
	return c.FeedSource != "WEEK" && c.FeedSource != "MONTH"
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDurationEnv("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	feedTimeout, err := parseDurationEnv("FEED_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	refreshInterval, err := parseRefreshInterval()
	if err != nil {
		return nil, err
	}
	magThreshold, err := parseFloatEnv("MAG_THRESHOLD", 5.0)
	if err != nil {
		return nil, err
	}

	kafkaEnabled := false
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		FeedSource:      envOrDefault("FEED_SOURCE", "WEEK"),
		FeedBaseURL:     os.Getenv("FEED_BASE_URL"),
		FeedTimeout:     feedTimeout,
		CacheDir:        envOrDefault("CACHE_DIR", "."),
		RefreshInterval: refreshInterval,
		MagThreshold:    magThreshold,
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		KafkaEnabled:    kafkaEnabled,
		KafkaBrokers:    parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSinkTopic:  envOrDefault("KAFKA_SINK_TOPIC", "classified-quake-events"),
	}

	if cfg.FeedSource == "" {
		return nil, errors.New("FEED_SOURCE is required")
	}
	if cfg.MagThreshold < 0 {
		return nil, errors.New("MAG_THRESHOLD must not be negative")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
	}
	if cfg.KafkaEnabled && cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_SINK_TOPIC is empty")
	}

	return cfg, nil
}

// parseRefreshInterval allows zero (refresh once, keep serving) but rejects
// negative or unparseable values.
func parseRefreshInterval() (time.Duration, error) {
	s := envOrDefault("REFRESH_INTERVAL", "1h")
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, errors.New("invalid REFRESH_INTERVAL")
	}
	return d, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseFloatEnv(key string, def float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return v, nil
}

func parseBrokers(s string) []string {
	parts := strings.Split(s, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}
