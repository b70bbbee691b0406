package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	AppEnv        string
	MongoURI      string
	MongoDB       string
	MongoTimeout  time.Duration
	MongoMaxPool  uint64
	MongoMinPool  uint64
	FrontendURL   string
	LogLevel      string
	LogPretty     bool
	SweepInterval time.Duration
	RateLimit     int

	// EnvFileLoaded is set when a .env file was found and applied.
	EnvFileLoaded bool
}

func Load() (*Config, error) {
	envErr := godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		AppEnv:      getEnv("APP_ENV", "development"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:     getEnv("MONGO_DB", "duetodo"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}
	cfg.EnvFileLoaded = envErr == nil

	var err error
	if cfg.MongoTimeout, err = getDuration("MONGO_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.MongoMaxPool, err = getUint("MONGO_MAX_POOL", 100); err != nil {
		return nil, err
	}
	if cfg.MongoMinPool, err = getUint("MONGO_MIN_POOL", 5); err != nil {
		return nil, err
	}
	if cfg.MongoMaxPool == 0 || cfg.MongoMinPool > cfg.MongoMaxPool {
		return nil, fmt.Errorf("MONGO_MIN_POOL (%d) must not exceed MONGO_MAX_POOL (%d), which must be positive", cfg.MongoMinPool, cfg.MongoMaxPool)
	}
	if cfg.SweepInterval, err = getDuration("SWEEP_INTERVAL", 60*time.Second); err != nil {
		return nil, err
	}
	if cfg.SweepInterval <= 0 {
		return nil, fmt.Errorf("SWEEP_INTERVAL must be positive, got %s", cfg.SweepInterval)
	}
	if cfg.LogPretty, err = getBool("LOG_PRETTY", false); err != nil {
		return nil, err
	}
	if cfg.RateLimit, err = getInt("RATE_LIMIT", 100); err != nil {
		return nil, err
	}
	if cfg.RateLimit < 0 {
		return nil, fmt.Errorf("RATE_LIMIT must not be negative, got %d", cfg.RateLimit)
	}

	return cfg, nil
}

// IsProduction reports whether the service runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func getInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getUint(key string, defaultValue uint64) (uint64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

// getDuration accepts "30s", "5m" or a bare number of seconds.
func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: duration must be like 30s, 5m or a number of seconds: %w", key, err)
	}
	return d, nil
}
