package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"

	"github.com/couchcryptid/nordic-etl/internal/nordic"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	KafkaBrokers     []string
	KafkaSourceTopic string
	KafkaSinkTopic   string
	KafkaGroupID     string
	HTTPAddr         string
	LogLevel         string
	LogFormat        string
	ShutdownTimeout  time.Duration

	BatchSize          int
	BatchFlushInterval time.Duration

	// KafkaMaxBytes bounds a single fetch. One message carries a whole
	// bulletin file, so this must exceed the largest bulletin.
	KafkaMaxBytes int

	// NordicMode is Strict when NORDIC_STRICT is true: a bulletin then fails
	// on its first decoding problem instead of reporting diagnostics.
	NordicMode nordic.Mode

	Mapbox MapboxConfig
}

// MapboxConfig configures reverse geocoding of epicenters.
type MapboxConfig struct {
	Token     string
	Enabled   bool
	Timeout   time.Duration
	CacheSize int
}

const (
	defaultKafkaMaxBytes   = 10 << 20
	defaultMapboxCacheSize = 1000
)

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}
	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}
	flushInterval, err := sharedcfg.ParseBatchFlushInterval()
	if err != nil {
		return nil, err
	}
	maxBytes, err := parsePositiveInt("KAFKA_MAX_BYTES", defaultKafkaMaxBytes)
	if err != nil {
		return nil, err
	}
	strict, err := parseBool("NORDIC_STRICT", false)
	if err != nil {
		return nil, err
	}
	mapbox, err := loadMapbox()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		KafkaBrokers:       sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic:   sharedcfg.EnvOrDefault("KAFKA_SOURCE_TOPIC", "nordic-bulletins"),
		KafkaSinkTopic:     sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "seismic-events"),
		KafkaGroupID:       sharedcfg.EnvOrDefault("KAFKA_GROUP_ID", "nordic-etl"),
		HTTPAddr:           sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:           sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:          sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,
		KafkaMaxBytes:      maxBytes,
		NordicMode:         nordic.Lenient,
		Mapbox:             mapbox,
	}
	if strict {
		cfg.NordicMode = nordic.Strict
	}

	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaSourceTopic == "" {
		return nil, errors.New("KAFKA_SOURCE_TOPIC is required")
	}
	if cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required")
	}
	return cfg, nil
}

// loadMapbox enables geocoding whenever a token is present unless
// MAPBOX_ENABLED says otherwise.
func loadMapbox() (MapboxConfig, error) {
	timeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("MAPBOX_TIMEOUT", "5s"))
	if err != nil || timeout <= 0 {
		return MapboxConfig{}, errors.New("invalid MAPBOX_TIMEOUT")
	}

	token := os.Getenv("MAPBOX_TOKEN")
	enabled, err := parseBool("MAPBOX_ENABLED", token != "")
	if err != nil {
		return MapboxConfig{}, err
	}
	if enabled && token == "" {
		return MapboxConfig{}, errors.New("MAPBOX_ENABLED is true but MAPBOX_TOKEN is not set")
	}

	return MapboxConfig{
		Token:     token,
		Enabled:   enabled,
		Timeout:   timeout,
		CacheSize: parseCacheSize(),
	}, nil
}

func parseBool(key string, def bool) (bool, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	return v, nil
}

func parsePositiveInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive integer", key, s)
	}
	return n, nil
}

// parseCacheSize falls back to the default on a missing, malformed, or
// non-positive value.
func parseCacheSize() int {
	if n, err := parsePositiveInt("MAPBOX_CACHE_SIZE", defaultMapboxCacheSize); err == nil {
		return n
	}
	return defaultMapboxCacheSize
}
