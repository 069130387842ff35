package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/Kalpa111334/Dutch-Trails-QR/internal/domain/roster"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Roster   RosterConfig
	Cron     CronConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// RosterConfig holds schedule resolution settings.
type RosterConfig struct {
	// TieBreak picks among multiple active rosters covering the same date.
	TieBreak roster.TieBreak
}

// CronConfig holds the background job intervals.
type CronConfig struct {
	CloseDayInterval    string
	RecalculateInterval string
	// RecalculateDays is how many days back the nightly recalculation scans.
	RecalculateDays int
}

func Load() (*Config, error) {
	// A missing .env is fine in containerized deployments; the environment
	// is already populated there.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "dutch_trails"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Roster resolution configuration
	tieBreak := roster.TieBreak(getEnv("ROSTER_TIE_BREAK", string(roster.TieBreakLatestCreated)))
	if tieBreak != roster.TieBreakLatestCreated && tieBreak != roster.TieBreakEarliestStart {
		return nil, fmt.Errorf("invalid ROSTER_TIE_BREAK: %q", tieBreak)
	}
	config.Roster = RosterConfig{TieBreak: tieBreak}

	// Background job configuration
	recalcDays, err := strconv.Atoi(getEnv("CRON_RECALCULATE_DAYS", "7"))
	if err != nil {
		return nil, fmt.Errorf("invalid CRON_RECALCULATE_DAYS: %w", err)
	}
	config.Cron = CronConfig{
		CloseDayInterval:    getEnv("CRON_CLOSE_DAY_INTERVAL", "1h"),
		RecalculateInterval: getEnv("CRON_RECALCULATE_INTERVAL", "24h"),
		RecalculateDays:     recalcDays,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	return nil
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
