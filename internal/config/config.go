package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Store backend selection.
	StoreBackend string // "file" or "redis"
	DataDir      string
	RedisAddr    string
	RedisDB      int

	// Kafka event feed configuration.
	FeedEnabled  bool
	KafkaBrokers []string
	FeedTopic    string

	// Simulated processing delay before scenario generation and location
	// analysis complete. Zero disables the delay.
	SimulatedDelay time.Duration

	// RandomSeed seeds the domain random source when non-zero, making
	// scenario picks and mock scores reproducible.
	RandomSeed int64

	// Initial planning inputs for a fresh session.
	HouseholdSize int
	DurationDays  int
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	simulatedDelayStr := sharedcfg.EnvOrDefault("SIMULATED_DELAY", "0s")
	simulatedDelay, err := time.ParseDuration(simulatedDelayStr)
	if err != nil || simulatedDelay < 0 {
		return nil, errors.New("invalid SIMULATED_DELAY")
	}

	householdSize, err := parsePositiveInt("HOUSEHOLD_SIZE", 2)
	if err != nil {
		return nil, err
	}
	durationDays, err := parsePositiveInt("DURATION_DAYS", 14)
	if err != nil {
		return nil, err
	}

	redisDB := 0
	if s := os.Getenv("REDIS_DB"); s != "" {
		redisDB, err = strconv.Atoi(s)
		if err != nil || redisDB < 0 {
			return nil, errors.New("invalid REDIS_DB")
		}
	}

	var randomSeed int64
	if s := os.Getenv("RANDOM_SEED"); s != "" {
		randomSeed, err = strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, errors.New("invalid RANDOM_SEED")
		}
	}

	feedEnabled := os.Getenv("FEED_ENABLED") == "true"

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		StoreBackend: sharedcfg.EnvOrDefault("STORE_BACKEND", "file"),
		DataDir:      sharedcfg.EnvOrDefault("DATA_DIR", "./data"),
		RedisAddr:    sharedcfg.EnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisDB:      redisDB,

		FeedEnabled:  feedEnabled,
		KafkaBrokers: sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		FeedTopic:    sharedcfg.EnvOrDefault("FEED_TOPIC", "preparedness-events"),

		SimulatedDelay: simulatedDelay,
		RandomSeed:     randomSeed,
		HouseholdSize:  householdSize,
		DurationDays:   durationDays,
	}

	if cfg.StoreBackend != "file" && cfg.StoreBackend != "redis" {
		return nil, errors.New("STORE_BACKEND must be file or redis")
	}
	if cfg.StoreBackend == "file" && cfg.DataDir == "" {
		return nil, errors.New("DATA_DIR is required for the file store backend")
	}
	if cfg.StoreBackend == "redis" && cfg.RedisAddr == "" {
		return nil, errors.New("REDIS_ADDR is required for the redis store backend")
	}
	if cfg.FeedEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("FEED_ENABLED is true but KAFKA_BROKERS is empty")
	}
	if cfg.FeedEnabled && cfg.FeedTopic == "" {
		return nil, errors.New("FEED_ENABLED is true but FEED_TOPIC is empty")
	}

	return cfg, nil
}

func parsePositiveInt(name string, def int) (int, error) {
	s := os.Getenv(name)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return n, nil
}
