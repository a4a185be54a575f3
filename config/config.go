package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment `ignored:"true"`
	ServiceName string      `envconfig:"SERVICE_NAME" default:"healthyrecipe-api"`
	LogLevel    string      `envconfig:"LOG_LEVEL" default:"info"`

	// Server configuration
	ServerPort         string   `envconfig:"SERVER_PORT" default:"8080"`
	ServerHost         string   `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`

	// Database configuration
	DBDriver          string        `envconfig:"DB_DRIVER" default:"postgres"`
	DBHost            string        `envconfig:"DB_HOST" default:"localhost"`
	DBPort            string        `envconfig:"DB_PORT" default:"5432"`
	DBUser            string        `envconfig:"DB_USER"`
	DBPassword        string        `envconfig:"DB_PASSWORD"`
	DBName            string        `envconfig:"DB_NAME" default:"healthyrecipe"`
	DBSSLMode         string        `envconfig:"DB_SSL_MODE" default:"disable"`
	SQLitePath        string        `envconfig:"SQLITE_PATH" default:"healthyrecipe.db"`
	DBMaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
	DBMaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"25"`
	DBConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`
	MigrationsDir     string        `envconfig:"MIGRATIONS_DIR" default:"migrations"`

	// Redis configuration
	RedisHost     string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     string `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
	RedisURL      string `envconfig:"REDIS_URL"`

	// JWT configuration
	JWTSecret string        `envconfig:"JWT_SECRET"`
	JWTTTL    time.Duration `envconfig:"JWT_TTL" default:"24h"`

	// Rate limits per user and hour
	RatingLimitPerHour     int `envconfig:"RATING_LIMIT_PER_HOUR" default:"30"`
	SubmissionLimitPerHour int `envconfig:"SUBMISSION_LIMIT_PER_HOUR" default:"10"`
}

// secretFields maps Docker secret file names onto the values they fill in
// when the corresponding environment variable is empty.
var secretFields = map[string]func(*Config) *string{
	"db_user":        func(c *Config) *string { return &c.DBUser },
	"db_password":    func(c *Config) *string { return &c.DBPassword },
	"jwt_secret":     func(c *Config) *string { return &c.JWTSecret },
	"redis_password": func(c *Config) *string { return &c.RedisPassword },
	"redis_url":      func(c *Config) *string { return &c.RedisURL },
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	if env.IsLocal() {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg.Environment = env

	switch env {
	case CI:
		loadCIConfig(cfg)
	case Development, Test, Production:
		loadSecrets(cfg)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadCIConfig fills sensitive values from the TEST_* variables set by CI.
// CI never reads Docker secrets.
func loadCIConfig(cfg *Config) {
	fallback := func(dst *string, name string) {
		if *dst == "" {
			*dst = os.Getenv(name)
		}
	}
	fallback(&cfg.DBPassword, "TEST_DB_PASSWORD")
	fallback(&cfg.JWTSecret, "TEST_JWT_SECRET")
	fallback(&cfg.RedisPassword, "TEST_REDIS_PASSWORD")
	fallback(&cfg.RedisURL, "TEST_REDIS_URL")
}

// loadSecrets overlays Docker secrets onto values the environment left empty.
func loadSecrets(cfg *Config) {
	for name, field := range secretFields {
		dst := field(cfg)
		if *dst != "" {
			continue
		}
		if value := readSecret(name); value != "" {
			*dst = value
		}
	}
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

// PostgresDSN returns the lib/pq connection string.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}
