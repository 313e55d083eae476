package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	ErrEmptyEnvironmentVariable = errors.New("empty environment variable")
	ErrInvalidConfig            = errors.New("invalid configuration")
)

// KV backends understood by the slot store
const (
	KVBackendMemory   = "memory"
	KVBackendRedis    = "redis"
	KVBackendPostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig
	Platform   PlatformConfig
	KV         KVConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Kafka      KafkaConfig
	Auth       AuthConfig
	Rewards    RewardsConfig
	WorkerPool WorkerPoolConfig
	RateLimit  RateLimitConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port      int
	WebAppURI string
}

// PlatformConfig points at the remote commerce API (auth, catalog, orders)
type PlatformConfig struct {
	BaseURL string
	Timeout time.Duration
}

// KVConfig selects where the state slots live
type KVConfig struct {
	Backend   string
	Namespace string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Username string
	Password string
	Name     string
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// KafkaConfig holds Kafka/event streaming configuration
type KafkaConfig struct {
	Enabled       bool
	Brokers       string
	Topic         string
	ConsumerGroup string
}

// BrokerList splits the comma separated broker string
func (k KafkaConfig) BrokerList() []string {
	var brokers []string
	for _, b := range strings.Split(k.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// AuthConfig holds the placeholder admin credentials
type AuthConfig struct {
	AdminLogin        string
	AdminPasswordHash string
}

// RewardsConfig holds voucher thresholds
type RewardsConfig struct {
	ReferralVoucherTarget int
}

// RateLimitConfig bounds login, register and checkout calls per session.
// Zero disables limiting.
type RateLimitConfig struct {
	RequestsPerMinute int
}

// WorkerPoolConfig holds worker pool configuration for event processing
type WorkerPoolConfig struct {
	LeaderboardWorkers int
}

// Load reads and validates all required environment variables
func Load() (*Config, error) {
	// Load env.local in non-production environments
	if os.Getenv("GO_ENV") != "production" {
		if err := godotenv.Load("env.local"); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env.local: %w", err)
		}
	}

	cfg := &Config{}
	var err error

	// Server configuration
	if cfg.Server.Port, err = intEnv("SERVER_PORT", "8080"); err != nil {
		return nil, err
	}
	cfg.Server.WebAppURI = getEnvWithDefault("WEBAPP_URI", "http://localhost:3000")

	// Remote platform
	if cfg.Platform.BaseURL, err = requireEnv("PLATFORM_API_URL"); err != nil {
		return nil, err
	}
	if cfg.Platform.Timeout, err = durationEnv("PLATFORM_API_TIMEOUT", "10s"); err != nil {
		return nil, err
	}

	// Slot storage
	cfg.KV.Backend = strings.ToLower(getEnvWithDefault("KV_BACKEND", KVBackendMemory))
	cfg.KV.Namespace = getEnvWithDefault("KV_NAMESPACE", "storefront")

	if cfg.KV.Backend == KVBackendPostgres {
		if cfg.Database.Host, err = requireEnv("DB_HOST"); err != nil {
			return nil, err
		}
		if cfg.Database.Username, err = requireEnv("DB_USERNAME"); err != nil {
			return nil, err
		}
		if cfg.Database.Password, err = requireEnv("DB_PASSWORD"); err != nil {
			return nil, err
		}
		if cfg.Database.Name, err = requireEnv("DB_NAME"); err != nil {
			return nil, err
		}
	}

	// Redis configuration
	if cfg.Redis.Enabled, err = boolEnv("REDIS_ENABLED", "false"); err != nil {
		return nil, err
	}
	if cfg.KV.Backend == KVBackendRedis {
		cfg.Redis.Enabled = true
	}
	cfg.Redis.Host = getEnvWithDefault("REDIS_HOST", "localhost")
	if cfg.Redis.Port, err = intEnv("REDIS_PORT", "6379"); err != nil {
		return nil, err
	}
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	if cfg.Redis.DB, err = intEnv("REDIS_DB", "0"); err != nil {
		return nil, err
	}

	// Kafka configuration
	if cfg.Kafka.Enabled, err = boolEnv("KAFKA_ENABLED", "false"); err != nil {
		return nil, err
	}
	if cfg.Kafka.Enabled {
		if cfg.Kafka.Brokers, err = requireEnv("KAFKA_BROKERS"); err != nil {
			return nil, err
		}
	}
	cfg.Kafka.Topic = getEnvWithDefault("KAFKA_TOPIC", "storefront-events")
	cfg.Kafka.ConsumerGroup = getEnvWithDefault("KAFKA_CONSUMER_GROUP", "storefront-leaderboard")

	// Auth configuration
	cfg.Auth.AdminLogin = getEnvWithDefault("ADMIN_LOGIN", "admin@store.com")
	cfg.Auth.AdminPasswordHash = os.Getenv("ADMIN_PASSWORD_HASH")

	// Rewards configuration
	if cfg.Rewards.ReferralVoucherTarget, err = intEnv("REFERRAL_VOUCHER_TARGET", "10"); err != nil {
		return nil, err
	}

	// Worker pool configuration
	if cfg.WorkerPool.LeaderboardWorkers, err = intEnv("LEADERBOARD_WORKERS", "3"); err != nil {
		return nil, err
	}

	// Rate limit configuration
	if cfg.RateLimit.RequestsPerMinute, err = intEnv("RATE_LIMIT_RPM", "20"); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks cross-field constraints that env parsing can't
func (c *Config) Validate() error {
	switch c.KV.Backend {
	case KVBackendMemory, KVBackendRedis, KVBackendPostgres:
	default:
		return fmt.Errorf("KV_BACKEND %q is not supported: %w", c.KV.Backend, ErrInvalidConfig)
	}
	if c.Rewards.ReferralVoucherTarget <= 0 {
		return fmt.Errorf("REFERRAL_VOUCHER_TARGET must be positive: %w", ErrInvalidConfig)
	}
	if c.RateLimit.RequestsPerMinute < 0 {
		return fmt.Errorf("RATE_LIMIT_RPM must not be negative: %w", ErrInvalidConfig)
	}
	if c.WorkerPool.LeaderboardWorkers <= 0 {
		return fmt.Errorf("LEADERBOARD_WORKERS must be positive: %w", ErrInvalidConfig)
	}
	return nil
}

// ConnectionString returns a PostgreSQL connection string
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s",
		c.Username, c.Password, c.Host, c.Name)
}

// requireEnv retrieves an environment variable or returns an error if empty
func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set: %w", key, ErrEmptyEnvironmentVariable)
	}
	return value, nil
}

// getEnvWithDefault retrieves an environment variable or returns a default value
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func intEnv(key, defaultValue string) (int, error) {
	v, err := strconv.Atoi(getEnvWithDefault(key, defaultValue))
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return v, nil
}

func boolEnv(key, defaultValue string) (bool, error) {
	v, err := strconv.ParseBool(getEnvWithDefault(key, defaultValue))
	if err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return v, nil
}

func durationEnv(key, defaultValue string) (time.Duration, error) {
	v, err := time.ParseDuration(getEnvWithDefault(key, defaultValue))
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return v, nil
}
