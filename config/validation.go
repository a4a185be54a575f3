package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	minProductionSecretLength = 32
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks every requirement and reports all violations at once.
func ValidateConfig(cfg *Config) error {
	var errs []ValidationError
	add := func(field, format string, args ...interface{}) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port <= 0 || port > 65535 {
		add("SERVER_PORT", "must be a valid port, got %q", cfg.ServerPort)
	}

	switch cfg.DBDriver {
	case DriverPostgres:
		required := []struct{ field, value string }{
			{"DB_HOST", cfg.DBHost},
			{"DB_PORT", cfg.DBPort},
			{"DB_NAME", cfg.DBName},
			{"DB_USER", cfg.DBUser},
		}
		for _, r := range required {
			if r.value == "" {
				add(r.field, "is required for the postgres driver")
			}
		}
		if cfg.DBPassword == "" && cfg.Environment != Development {
			add("DB_PASSWORD", "db_password secret is required")
		}
	case DriverSQLite:
		if cfg.Environment == Production {
			add("DB_DRIVER", "sqlite is not supported in production")
		}
		if cfg.SQLitePath == "" {
			add("SQLITE_PATH", "is required for the sqlite driver")
		}
	default:
		add("DB_DRIVER", "must be %q or %q, got %q", DriverPostgres, DriverSQLite, cfg.DBDriver)
	}

	if cfg.JWTSecret == "" {
		add("JWT_SECRET", "jwt_secret secret is required")
	} else if cfg.Environment == Production && len(cfg.JWTSecret) < minProductionSecretLength {
		add("JWT_SECRET", "must be at least %d characters in production", minProductionSecretLength)
	}
	if cfg.JWTTTL <= 0 {
		add("JWT_TTL", "must be positive")
	}

	if cfg.RatingLimitPerHour <= 0 {
		add("RATING_LIMIT_PER_HOUR", "must be positive")
	}
	if cfg.SubmissionLimitPerHour <= 0 {
		add("SUBMISSION_LIMIT_PER_HOUR", "must be positive")
	}

	if _, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel)); err != nil {
		add("LOG_LEVEL", "unknown level %q", cfg.LogLevel)
	}

	if len(errs) == 0 {
		return nil
	}
	lines := make([]string, 0, len(errs))
	for _, e := range errs {
		lines = append(lines, e.Error())
	}
	return fmt.Errorf("configuration validation failed:\n%s", strings.Join(lines, "\n"))
}
