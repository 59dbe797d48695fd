// Package config loads process configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the full environment-driven configuration. CLI flags may
// override individual fields after loading.
type Config struct {
	// DataDir is the root of the TLE cache and the catalog JSON output.
	DataDir string `env:"SENTINEL_DATA_DIR" envDefault:"data/tle"`

	// FeedURL is the upstream TLE endpoint.
	FeedURL string `env:"SENTINEL_FEED_URL" envDefault:"https://celestrak.org/NORAD/elements/gp.php"`

	// UpdateInterval is how long cached category text stays fresh.
	UpdateInterval time.Duration `env:"SENTINEL_UPDATE_INTERVAL" envDefault:"24h"`

	// UpdateHour is the local hour (0-23) at which scheduled rebuilds run.
	UpdateHour int `env:"SENTINEL_UPDATE_HOUR" envDefault:"3"`

	// HTTPAddr serves the catalog JSON API; MetricsAddr serves /metrics.
	HTTPAddr    string `env:"SENTINEL_HTTP_ADDR" envDefault:":8080"`
	MetricsAddr string `env:"SENTINEL_METRICS_ADDR" envDefault:":9090"`

	// KafkaBrokers is a comma-separated broker list; empty disables the
	// Kafka publisher.
	KafkaBrokers string `env:"SENTINEL_KAFKA_BROKERS"`
	KafkaTopic   string `env:"SENTINEL_KAFKA_TOPIC" envDefault:"space-objects"`

	// SQLitePath enables the SQLite catalog store when non-empty.
	SQLitePath string `env:"SENTINEL_SQLITE_PATH"`
}

// Load parses configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.UpdateHour < 0 || cfg.UpdateHour > 23 {
		return Config{}, fmt.Errorf("SENTINEL_UPDATE_HOUR must be 0-23, got %d", cfg.UpdateHour)
	}
	return cfg, nil
}
