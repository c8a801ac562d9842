package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	Port               string
	SupabaseURL        string
	SupabaseServiceKey string
	JWTSecret          string
	Environment        string
	LogLevel           string
	StorageTimeout     time.Duration
	EsewaProductCode   string
	EsewaStatusURL     string
	AppScheme          string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:               getEnvWithDefault("PORT", "8080"),
		SupabaseURL:        os.Getenv("SUPABASE_URL"),
		SupabaseServiceKey: os.Getenv("SUPABASE_SERVICE_KEY"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		Environment:        getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:           getEnvWithDefault("LOG_LEVEL", "info"),
		EsewaProductCode:   getEnvWithDefault("ESEWA_PRODUCT_CODE", "EPAYTEST"),
		EsewaStatusURL:     getEnvWithDefault("ESEWA_STATUS_URL", "https://rc.esewa.com.np/api/epay/transaction/status/"),
		AppScheme:          getEnvWithDefault("APP_SCHEME", "hamrosewa"),
	}

	timeout := getEnvWithDefault("STORAGE_TIMEOUT", "10s")
	parsed, err := time.ParseDuration(timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid STORAGE_TIMEOUT %q: %v", timeout, err)
	}
	cfg.StorageTimeout = parsed

	// Validate required fields
	if cfg.SupabaseURL == "" {
		return nil, fmt.Errorf("SUPABASE_URL is required")
	}
	if cfg.SupabaseServiceKey == "" {
		return nil, fmt.Errorf("SUPABASE_SERVICE_KEY is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
