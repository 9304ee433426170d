package config

import (
	"os"
	"strconv"
	"time"

	"github.com/saransh1220/background-erase/internal/shared/infrastructure/database"
)

// Config holds all configuration for the application
type Config struct {
	API         APIConfig
	FileStorage FileStorageConfig
	Redis       database.RedisConfig
	Cache       CacheConfig
	Metrics     MetricsConfig
	Log         LogConfig
}

// APIConfig holds the background removal API settings
type APIConfig struct {
	Endpoint string
	Key      string
	Timeout  time.Duration
}

// FileStorageConfig holds file storage configuration
type FileStorageConfig struct {
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3UseSSL    bool
	LocalPath   string
}

// CacheConfig holds result cache configuration. The cache is enabled when
// Redis.Addr is set.
type CacheConfig struct {
	TTL time.Duration
}

// MetricsConfig holds metrics export configuration
type MetricsConfig struct {
	File string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
	JSON  bool
}

// Load reads configuration from environment variables
func Load() Config {
	return LoadFrom(os.Getenv)
}

// LoadFrom reads configuration through getenv
func LoadFrom(getenv func(string) string) Config {
	getEnv := func(key, defaultValue string) string {
		if value := getenv(key); value != "" {
			return value
		}
		return defaultValue
	}

	return Config{
		API: APIConfig{
			Endpoint: getEnv("BACKGROUND_ERASE_ENDPOINT", "https://api.backgrounderase.net/v2"),
			Key:      getEnv("BACKGROUND_ERASE_API_KEY", ""),
			Timeout:  parseDuration(getEnv("BACKGROUND_ERASE_TIMEOUT", "60s"), 60*time.Second),
		},
		FileStorage: FileStorageConfig{
			S3Region:    getEnv("S3_REGION", "us-east-1"),
			S3Endpoint:  getEnv("S3_ENDPOINT", ""),
			S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
			S3SecretKey: getEnv("S3_SECRET_KEY", ""),
			S3UseSSL:    getEnv("S3_USE_SSL", "true") == "true",
			LocalPath:   getEnv("LOCAL_STORAGE_PATH", ""),
		},
		Redis: database.RedisConfig{
			Addr:     getEnv("BGERASE_REDIS_ADDR", ""),
			Password: getEnv("BGERASE_REDIS_PASSWORD", ""),
			DB:       parseInt(getEnv("BGERASE_REDIS_DB", "0"), 0),
		},
		Cache: CacheConfig{
			TTL: parseDuration(getEnv("BGERASE_CACHE_TTL", "24h"), 24*time.Hour),
		},
		Metrics: MetricsConfig{
			File: getEnv("BGERASE_METRICS_FILE", ""),
		},
		Log: LogConfig{
			Level: getEnv("BGERASE_LOG_LEVEL", "info"),
			JSON:  getEnv("BGERASE_LOG_JSON", "false") == "true",
		},
	}
}

// parseDuration parses a duration string or returns a default value
func parseDuration(value string, defaultValue time.Duration) time.Duration {
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	return defaultValue
}

// parseInt parses an integer or returns a default value
func parseInt(value string, defaultValue int) int {
	if n, err := strconv.Atoi(value); err == nil {
		return n
	}
	return defaultValue
}
