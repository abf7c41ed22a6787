// internal/pkg/config/validators.go
package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingRequiredConfig is returned when a required setting is empty
var ErrMissingRequiredConfig = errors.New("missing required configuration")

// rule checks one aspect of a configuration
type rule func(cfg *Config) error

// baseRules apply in every environment
var baseRules = []rule{
	requireSettings,
	checkArchive,
	checkStorage,
	checkSecretsSource,
	checkLimits,
}

// productionRules apply on top of baseRules when APP_ENV is production
var productionRules = []rule{
	checkProductionDatabase,
	checkProductionHTTP,
}

// validate runs every rule and reports all failures together
func validate(cfg *Config, rules ...[]rule) error {
	var errs []error
	for _, set := range rules {
		for _, r := range set {
			if err := r(cfg); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func requireSettings(cfg *Config) error {
	required := []struct {
		name  string
		value string
	}{
		{"App.Name", cfg.App.Name},
		{"Redis.Host", cfg.Redis.Host},
		{"Redis.Port", cfg.Redis.Port},
		{"Redis.KeyPrefix", cfg.Redis.KeyPrefix},
		{"Server.Port", cfg.Server.Port},
	}

	var missing []string
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingRequiredConfig, strings.Join(missing, ", "))
	}
	return nil
}

// checkArchive only applies when completed sessions are archived to PostgreSQL
func checkArchive(cfg *Config) error {
	if !cfg.Archive.Enabled {
		return nil
	}
	if cfg.Database.Host == "" || cfg.Database.Name == "" {
		return fmt.Errorf("%w: database host and name are required when archiving is enabled", ErrMissingRequiredConfig)
	}
	if cfg.Database.MaxConnections < cfg.Database.MinConnections {
		return fmt.Errorf("database max_connections must be >= min_connections")
	}
	if cfg.Archive.RetentionDays <= 0 {
		return fmt.Errorf("archive retention_days must be positive")
	}
	return nil
}

func checkStorage(cfg *Config) error {
	switch cfg.Storage.Backend {
	case "s3":
		if cfg.AWS.S3Bucket == "" {
			return fmt.Errorf("%w: S3 bucket", ErrMissingRequiredConfig)
		}
	case "local":
		if cfg.Storage.LocalDir == "" {
			return fmt.Errorf("%w: local storage directory", ErrMissingRequiredConfig)
		}
	default:
		return fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
	return nil
}

func checkSecretsSource(cfg *Config) error {
	switch cfg.Security.SecretsSource {
	case "env":
		return nil
	case "aws":
		if cfg.AWS.SecretName == "" {
			return fmt.Errorf("%w: AWS secret name", ErrMissingRequiredConfig)
		}
		return nil
	default:
		return fmt.Errorf("unknown secrets source %q", cfg.Security.SecretsSource)
	}
}

func checkLimits(cfg *Config) error {
	switch {
	case cfg.Redis.PoolSize <= 0:
		return fmt.Errorf("redis pool_size must be positive")
	case cfg.Security.RateLimitRequests <= 0:
		return fmt.Errorf("rate_limit_requests must be positive")
	case cfg.Suggestion.RateLimit <= 0 || cfg.Suggestion.Burst <= 0:
		return fmt.Errorf("suggestion rate limit and burst must be positive")
	}
	return nil
}

func checkProductionDatabase(cfg *Config) error {
	if !cfg.Archive.Enabled {
		return nil
	}
	if cfg.Database.Password == "" || cfg.Database.Password == "barstock_dev" {
		return fmt.Errorf("%w: database password", ErrMissingRequiredConfig)
	}
	if cfg.Database.SSLMode == "disable" {
		return fmt.Errorf("database SSL must be enabled in production")
	}
	return nil
}

func checkProductionHTTP(cfg *Config) error {
	if !cfg.Security.SecureHeaders {
		return fmt.Errorf("secure headers must be enabled in production")
	}
	for _, origin := range cfg.Security.AllowedOrigins {
		if origin == "*" {
			return fmt.Errorf("wildcard origin (*) not allowed in production")
		}
	}
	return nil
}
