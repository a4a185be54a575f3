package config

import (
	"os"
	"strings"
)

// Environment represents the current runtime environment
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment determines the current environment. CI is detected from the
// CI variable; everything else comes from ENV and defaults to development.
func GetEnvironment() Environment {
	if os.Getenv("CI") == "true" {
		return CI
	}

	switch strings.ToLower(os.Getenv("ENV")) {
	case "production", "prod":
		return Production
	case "test":
		return Test
	default:
		return Development
	}
}

// IsLocal reports whether human friendly output (console logs, .env files)
// should be used.
func (e Environment) IsLocal() bool {
	return e == Development || e == Test
}

func IsDevelopment() bool {
	return GetEnvironment() == Development
}

func IsTest() bool {
	return GetEnvironment() == Test
}

func IsCI() bool {
	return GetEnvironment() == CI
}

func IsProduction() bool {
	return GetEnvironment() == Production
}
