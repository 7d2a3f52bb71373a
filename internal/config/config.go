package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	Database DatabaseConfig
	App      AppConfig
	Storage  StorageConfig
	Jobs     JobsConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	Timezone    string
	FrontendURL string
	SeedDemo    bool
}

// StorageConfig selects the attendance store backend
type StorageConfig struct {
	Type string
}

// JobsConfig holds background job configuration
type JobsConfig struct {
	AbsenceInterval time.Duration
}

func Load() (*Config, error) {
	// .env is optional; real environment variables win either way
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	maxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}

	minConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "1"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "presence"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
		MinConns: int32(minConns),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	seedDemo, err := strconv.ParseBool(getEnv("SEED_DEMO_DATA", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEED_DEMO_DATA: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Timezone:    getEnv("APP_TIMEZONE", "Local"),
		FrontendURL: getEnv("APP_FRONTEND_URL", "http://localhost:3000"),
		SeedDemo:    seedDemo,
	}

	config.Storage = StorageConfig{
		Type: strings.ToLower(getEnv("STORAGE_TYPE", StorageMemory)),
	}

	absenceInterval, err := time.ParseDuration(getEnv("ABSENCE_JOB_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid ABSENCE_JOB_INTERVAL: %w", err)
	}
	config.Jobs = JobsConfig{
		AbsenceInterval: absenceInterval,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case StorageMemory:
	case StoragePostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required when STORAGE_TYPE=postgres")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_TYPE: %s", c.Storage.Type)
	}

	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("DB_MIN_CONNS must not exceed DB_MAX_CONNS")
	}

	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}

	if c.Jobs.AbsenceInterval <= 0 {
		return fmt.Errorf("ABSENCE_JOB_INTERVAL must be positive")
	}
	return nil
}

// Location resolves APP_TIMEZONE. "Local" means the host timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.App.Timezone == "" || c.App.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.App.Timezone)
}

// LogLevel maps LOG_LEVEL to a slog level, defaulting to info
func (c *Config) LogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
