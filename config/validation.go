package config

import (
	"errors"
	"fmt"
)

// ValidateConfig checks that the loaded configuration is usable. In
// production a JWT secret is mandatory; development and test fall back to
// an insecure default so the service can run without setup.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	if cfg.JWTSecret == "" {
		if GetEnvironment() == Production {
			return errors.New("JWT_SECRET is required in production")
		}
		cfg.JWTSecret = "insecure-dev-secret"
	}

	if cfg.ServerPort == "" {
		return errors.New("SERVER_PORT must not be empty")
	}

	if cfg.DBHost == "" || cfg.DBPort == "" || cfg.DBName == "" {
		return fmt.Errorf("incomplete database configuration (host=%q port=%q name=%q)",
			cfg.DBHost, cfg.DBPort, cfg.DBName)
	}

	return nil
}
