package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Storage backends for archived reports.
const (
	StorageNone  = "none"
	StorageLocal = "local"
	StorageR2    = "r2"
)

type Config struct {
	App     AppConfig
	Upload  UploadConfig
	Storage StorageConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    slog.Level
	CORSOrigins []string
}

// UploadConfig limits the attendance file upload endpoint
type UploadConfig struct {
	MaxBytes      int64
	RatePerMinute float64
	Burst         int
}

// StorageConfig selects where generated reports are archived
type StorageConfig struct {
	Type      string
	Dir       string
	AccountID string
	AccessKey string
	SecretKey string
	Bucket    string
	PublicURL string
}

// Load reads configuration from the environment, loading a .env file first when
// one exists.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	config := &Config{}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    level,
		CORSOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	maxMB, err := strconv.Atoi(getEnv("MAX_UPLOAD_MB", "20"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_UPLOAD_MB: %w", err)
	}
	ratePerMinute, err := strconv.ParseFloat(getEnv("UPLOAD_RATE_PER_MINUTE", "30"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid UPLOAD_RATE_PER_MINUTE: %w", err)
	}
	burst, err := strconv.Atoi(getEnv("UPLOAD_BURST", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid UPLOAD_BURST: %w", err)
	}

	config.Upload = UploadConfig{
		MaxBytes:      int64(maxMB) << 20,
		RatePerMinute: ratePerMinute,
		Burst:         burst,
	}

	config.Storage = StorageConfig{
		Type:      strings.ToLower(getEnv("STORAGE_TYPE", StorageNone)),
		Dir:       getEnv("STORAGE_DIR", "./reports"),
		AccountID: getEnv("R2_ACCOUNT_ID", ""),
		AccessKey: getEnv("R2_ACCESS_KEY_ID", ""),
		SecretKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
		Bucket:    getEnv("R2_BUCKET", ""),
		PublicURL: getEnv("R2_PUBLIC_URL", ""),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MB must be positive")
	}
	if c.Upload.RatePerMinute <= 0 || c.Upload.Burst <= 0 {
		return fmt.Errorf("UPLOAD_RATE_PER_MINUTE and UPLOAD_BURST must be positive")
	}

	switch c.Storage.Type {
	case StorageNone:
	case StorageLocal:
		if c.Storage.Dir == "" {
			return fmt.Errorf("STORAGE_DIR is required for local storage")
		}
	case StorageR2:
		if c.Storage.AccountID == "" {
			return fmt.Errorf("R2_ACCOUNT_ID is required")
		}
		if c.Storage.AccessKey == "" || c.Storage.SecretKey == "" {
			return fmt.Errorf("R2_ACCESS_KEY_ID and R2_SECRET_ACCESS_KEY are required")
		}
		if c.Storage.Bucket == "" {
			return fmt.Errorf("R2_BUCKET is required")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_TYPE %q", c.Storage.Type)
	}

	return nil
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(key, fallback string) []string {
	value := getEnv(key, fallback)
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
