package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/cmlabs-hris/roster-viewer-go/internal/pkg/timewindow"
	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	App      AppConfig
	Roster   RosterConfig
	CORS     CORSConfig
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
	Port     int
	Env      string
	LogLevel string
}

// RosterConfig holds the resolution settings shared by every grid request.
type RosterConfig struct {
	DefaultDomain string
	Timezone      string
	ShowWeekends  bool
	DefaultView   string
	Workers       int

	location *time.Location
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env file: %w", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	maxConns, err := strconv.ParseInt(getEnv("DB_MAX_CONNS", "25"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	minConns, err := strconv.ParseInt(getEnv("DB_MIN_CONNS", "5"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "roster"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
		MinConns: int32(minConns),
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

	// Roster configuration
	showWeekends, err := strconv.ParseBool(getEnv("ROSTER_SHOW_WEEKENDS", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid ROSTER_SHOW_WEEKENDS: %w", err)
	}
	workers, err := strconv.Atoi(getEnv("ROSTER_WORKERS", "4"))
	if err != nil {
		return nil, fmt.Errorf("invalid ROSTER_WORKERS: %w", err)
	}

	config.Roster = RosterConfig{
		DefaultDomain: getEnv("ROSTER_DEFAULT_DOMAIN", ""),
		Timezone:      getEnv("ROSTER_TIMEZONE", "Europe/Amsterdam"),
		ShowWeekends:  showWeekends,
		DefaultView:   strings.ToLower(getEnv("ROSTER_DEFAULT_VIEW", "month")),
		Workers:       workers,
	}

	config.CORS = CORSConfig{
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	loc, err := time.LoadLocation(c.Roster.Timezone)
	if err != nil {
		return fmt.Errorf("ROSTER_TIMEZONE %q is not a known location: %w", c.Roster.Timezone, err)
	}
	c.Roster.location = loc

	if c.Roster.Workers <= 0 {
		return fmt.Errorf("ROSTER_WORKERS must be positive")
	}
	if _, err := timewindow.ParseGranularity(c.Roster.DefaultView); err != nil {
		return fmt.Errorf("ROSTER_DEFAULT_VIEW: %w", err)
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("DB_MIN_CONNS must not exceed DB_MAX_CONNS")
	}
	return nil
}

// Location is the zone used for day truncation. It is UTC until Validate
// has succeeded.
func (r RosterConfig) Location() *time.Location {
	if r.location == nil {
		return time.UTC
	}
	return r.location
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

func getEnvSlice(env, fallback string) []string {
	value := getEnv(env, fallback)
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
