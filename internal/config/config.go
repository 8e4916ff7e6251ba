package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database  DatabaseConfig
	JWT       JWTConfig
	App       AppConfig
	Scheduler SchedulerConfig
	Assistant AssistantConfig
	Metrics   MetricsConfig
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
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// SchedulerConfig holds the background job schedules. Specs use the standard
// five-field cron format.
type SchedulerConfig struct {
	Enabled         bool
	Timezone        string
	AccrualSpec     string
	LeaveStatusSpec string
	TokenPruneSpec  string
}

// AssistantConfig holds the SQL assistant configuration
type AssistantConfig struct {
	Enabled      bool
	Driver       string
	SQLitePath   string
	LLMBaseURL   string
	Model        string
	APIKey       string
	AccessToken  string
	Temperature  float64
	ExampleCount int
	ExamplesFile string
}

type MetricsConfig struct {
	Enabled bool
	Path    string
}

const (
	AssistantDriverPostgres = "postgres"
	AssistantDriverSQLite   = "sqlite"
)

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

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "hrstreamline"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "2h"),
	}

	// Scheduler configuration
	schedulerEnabled, err := getEnvBool("SCHEDULER_ENABLED", true)
	if err != nil {
		return nil, err
	}
	config.Scheduler = SchedulerConfig{
		Enabled:         schedulerEnabled,
		Timezone:        getEnv("SCHEDULER_TIMEZONE", "Local"),
		AccrualSpec:     getEnv("SCHEDULE_MONTHLY_ACCRUAL", "0 0 1 * *"),
		LeaveStatusSpec: getEnv("SCHEDULE_LEAVE_STATUS_CHECK", "30 0 * * *"),
		TokenPruneSpec:  getEnv("SCHEDULE_TOKEN_PRUNE", "0 * * * *"),
	}

	// Assistant configuration
	assistantEnabled, err := getEnvBool("ASSISTANT_ENABLED", false)
	if err != nil {
		return nil, err
	}
	temperature, err := strconv.ParseFloat(getEnv("ASSISTANT_TEMPERATURE", "0.1"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ASSISTANT_TEMPERATURE: %w", err)
	}
	exampleCount, err := strconv.Atoi(getEnv("ASSISTANT_EXAMPLE_COUNT", "2"))
	if err != nil {
		return nil, fmt.Errorf("invalid ASSISTANT_EXAMPLE_COUNT: %w", err)
	}
	config.Assistant = AssistantConfig{
		Enabled:      assistantEnabled,
		Driver:       getEnv("ASSISTANT_DB_DRIVER", AssistantDriverPostgres),
		SQLitePath:   getEnv("ASSISTANT_SQLITE_PATH", "instance/hr_streamline_app.db"),
		LLMBaseURL:   getEnv("ASSISTANT_LLM_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		Model:        getEnv("ASSISTANT_MODEL", "gemini-2.0-flash"),
		APIKey:       getEnv("GOOGLE_API_KEY", ""),
		AccessToken:  getEnv("ASSISTANT_ACCESS_TOKEN", ""),
		Temperature:  temperature,
		ExampleCount: exampleCount,
		ExamplesFile: getEnv("ASSISTANT_EXAMPLES_FILE", ""),
	}

	// Metrics configuration
	metricsEnabled, err := getEnvBool("METRICS_ENABLED", true)
	if err != nil {
		return nil, err
	}
	config.Metrics = MetricsConfig{
		Enabled: metricsEnabled,
		Path:    getEnv("METRICS_PATH", "/metrics"),
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
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	if _, err := c.Scheduler.Location(); err != nil {
		return fmt.Errorf("invalid SCHEDULER_TIMEZONE: %w", err)
	}
	if c.Assistant.Driver != AssistantDriverPostgres && c.Assistant.Driver != AssistantDriverSQLite {
		return fmt.Errorf("ASSISTANT_DB_DRIVER must be %q or %q", AssistantDriverPostgres, AssistantDriverSQLite)
	}
	if c.Assistant.ExampleCount <= 0 {
		return fmt.Errorf("ASSISTANT_EXAMPLE_COUNT must be positive")
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

// Location resolves the scheduler time zone. "Local" and "" mean the process zone.
func (s SchedulerConfig) Location() (*time.Location, error) {
	if s.Timezone == "" || s.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(s.Timezone)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) (bool, error) {
	value := getEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}
