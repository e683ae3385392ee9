package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	// Fallback secrets kept for local development only. Load refuses to
	// start without explicit secrets outside development.
	devAccessSecret  = "devsecret"
	devRefreshSecret = "refreshsecret"
)

type Config struct {
	AppEnv   string
	HTTPHost string
	HTTPPort string
	MySQLDSN string
	JWT      JWTConfig
}

type JWTConfig struct {
	AccessSecret    string
	RefreshSecret   string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignores error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:   getEnv("APP_ENV", EnvProduction),
		HTTPHost: getEnv("HTTP_HOST", ""),
		HTTPPort: getEnv("HTTP_PORT", "4000"),
		MySQLDSN: os.Getenv("MYSQL_DSN"),
		JWT: JWTConfig{
			AccessSecret:    os.Getenv("JWT_ACCESS_SECRET"),
			RefreshSecret:   os.Getenv("JWT_REFRESH_SECRET"),
			AccessTokenTTL:  getDurationEnv("JWT_ACCESS_TOKEN_TTL", 15*time.Minute),
			RefreshTokenTTL: getDurationEnv("JWT_REFRESH_TOKEN_TTL", 7*24*time.Hour),
		},
	}

	if cfg.MySQLDSN == "" {
		return nil, fmt.Errorf("MYSQL_DSN environment variable is required")
	}

	if cfg.JWT.AccessSecret == "" {
		if !cfg.IsDevelopment() {
			return nil, fmt.Errorf("JWT_ACCESS_SECRET environment variable is required")
		}
		cfg.JWT.AccessSecret = devAccessSecret
	}
	if cfg.JWT.RefreshSecret == "" {
		if !cfg.IsDevelopment() {
			return nil, fmt.Errorf("JWT_REFRESH_SECRET environment variable is required")
		}
		cfg.JWT.RefreshSecret = devRefreshSecret
	}

	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == EnvDevelopment
}

// UsingFallbackSecrets reports whether either JWT secret is a built-in
// development default, so startup can log a warning.
func (c *Config) UsingFallbackSecrets() bool {
	return c.JWT.AccessSecret == devAccessSecret || c.JWT.RefreshSecret == devRefreshSecret
}

func (c *Config) DSN() string {
	return c.MySQLDSN
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if minutes, err := strconv.Atoi(value); err == nil {
			return time.Duration(minutes) * time.Minute
		}
	}
	return defaultValue
}
