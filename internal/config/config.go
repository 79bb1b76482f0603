// Package config holds the portal's domain constants and loads its runtime
// configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	DriverFile     = "file"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

// Config is the runtime configuration of the portal server and admin CLI.
type Config struct {
	HTTPAddr         string
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	GinMode          string

	StorageDriver string
	StorageDir    string
	StorageKey    string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	SearchDelay time.Duration

	SessionSecret   string
	SessionTTL      time.Duration
	SessionCapacity int

	PhotoMaxBytes int64
	DefaultLang   string
}

// Load reads the configuration from environment variables, applying defaults
// for anything unset.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPAddr:      getEnvDefault("HTTP_ADDR", ":8080"),
		GinMode:       getEnvDefault("GIN_MODE", "release"),
		StorageDriver: getEnvDefault("STORAGE_DRIVER", DriverFile),
		StorageDir:    getEnvDefault("STORAGE_DIR", "data"),
		StorageKey:    getEnvDefault("STORAGE_KEY", DefaultStorageKey),
		DBHost:        getEnvDefault("DB_HOST", "localhost"),
		DBUser:        getEnvDefault("DB_USER", "user"),
		DBPassword:    getEnvDefault("DB_PASSWORD", "password"),
		DBName:        getEnvDefault("DB_NAME", "complaintsdb"),
		DBPort:        getEnvDefault("DB_PORT", "5432"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		DefaultLang:   getEnvDefault("DEFAULT_LANG", "en"),
	}

	switch cfg.StorageDriver {
	case DriverFile, DriverRedis, DriverMemory, DriverPostgres:
	default:
		return nil, fmt.Errorf("STORAGE_DRIVER: unsupported driver %q", cfg.StorageDriver)
	}
	if cfg.StorageDriver == DriverRedis && cfg.RedisAddr == "" {
		return nil, fmt.Errorf("REDIS_ADDR: required when STORAGE_DRIVER=redis")
	}

	var err error
	if cfg.HTTPReadTimeout, err = getEnvDuration("HTTP_READ_TIMEOUT", 10*time.Second); err != nil {
		return nil, fmt.Errorf("HTTP_READ_TIMEOUT: %w", err)
	}
	if cfg.HTTPWriteTimeout, err = getEnvDuration("HTTP_WRITE_TIMEOUT", 10*time.Second); err != nil {
		return nil, fmt.Errorf("HTTP_WRITE_TIMEOUT: %w", err)
	}
	if cfg.CacheTTL, err = getEnvDuration("CACHE_TTL", 10*time.Minute); err != nil {
		return nil, fmt.Errorf("CACHE_TTL: %w", err)
	}
	if cfg.SearchDelay, err = getEnvDuration("SEARCH_DELAY", 0); err != nil {
		return nil, fmt.Errorf("SEARCH_DELAY: %w", err)
	}
	if cfg.SessionTTL, err = getEnvDuration("SESSION_TTL", 2*time.Hour); err != nil {
		return nil, fmt.Errorf("SESSION_TTL: %w", err)
	}
	if cfg.RedisDB, err = getEnvInt("REDIS_DB", 0); err != nil {
		return nil, fmt.Errorf("REDIS_DB: %w", err)
	}
	if cfg.SessionCapacity, err = getEnvInt("SESSION_CAPACITY", 1024); err != nil {
		return nil, fmt.Errorf("SESSION_CAPACITY: %w", err)
	}
	if cfg.SessionCapacity <= 0 {
		return nil, fmt.Errorf("SESSION_CAPACITY: must be positive, got %d", cfg.SessionCapacity)
	}
	maxBytes, err := getEnvInt("PHOTO_MAX_BYTES", DefaultPhotoMaxBytes)
	if err != nil {
		return nil, fmt.Errorf("PHOTO_MAX_BYTES: %w", err)
	}
	if maxBytes <= 0 {
		return nil, fmt.Errorf("PHOTO_MAX_BYTES: must be positive, got %d", maxBytes)
	}
	cfg.PhotoMaxBytes = int64(maxBytes)

	return cfg, nil
}

// PostgresDSN builds the gorm/pgx connection string.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

func getEnvDefault(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", v)
	}
	return n, nil
}

func getEnvDuration(key string, def time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", v)
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %q", v)
	}
	return d, nil
}
