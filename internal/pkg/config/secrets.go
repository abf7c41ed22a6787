// internal/pkg/config/secrets.go
package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// ErrSecretNotFound is returned when a source does not hold a requested key
var ErrSecretNotFound = errors.New("secret not found")

// SecretSource resolves named secrets. Keys the source does not hold are omitted from the result.
type SecretSource interface {
	Lookup(ctx context.Context, keys ...string) (map[string]string, error)
}

// Secret keys read by ApplySecrets
const (
	SecretGeminiAPIKey = "GEMINI_API_KEY"
	SecretDBPassword   = "DB_PASSWORD"
)

// secretTargets maps each secret key onto the config field it fills
var secretTargets = map[string]func(*Config) *string{
	SecretGeminiAPIKey: func(c *Config) *string { return &c.Suggestion.APIKey },
	SecretDBPassword:   func(c *Config) *string { return &c.Database.Password },
}

// ApplySecrets overwrites the credential fields of cfg with the values src holds
func ApplySecrets(ctx context.Context, cfg *Config, src SecretSource) error {
	keys := make([]string, 0, len(secretTargets))
	for k := range secretTargets {
		keys = append(keys, k)
	}

	values, err := src.Lookup(ctx, keys...)
	if err != nil {
		return fmt.Errorf("failed to look up secrets: %w", err)
	}
	for k, v := range values {
		if target, ok := secretTargets[k]; ok {
			*target(cfg) = v
		}
	}
	return nil
}

// Secret returns a single value from src
func Secret(ctx context.Context, src SecretSource, key string) (string, error) {
	values, err := src.Lookup(ctx, key)
	if err != nil {
		return "", err
	}
	v, ok := values[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrSecretNotFound, key)
	}
	return v, nil
}

var (
	_ SecretSource = (*AWSSecretSource)(nil)
	_ SecretSource = EnvSecretSource{}
)

// secretsAPI is the subset of the Secrets Manager client used here
type secretsAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// AWSSecretSource reads a JSON object of secrets from one Secrets Manager secret.
// The object is cached for ttl; concurrent lookups share a single fetch.
type AWSSecretSource struct {
	client     secretsAPI
	secretName string
	ttl        time.Duration
	logger     *slog.Logger

	mu        sync.Mutex
	values    map[string]string
	fetchedAt time.Time
}

// NewAWSSecretSource creates a source backed by AWS Secrets Manager
func NewAWSSecretSource(ctx context.Context, region, secretName string, logger *slog.Logger) (*AWSSecretSource, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return newAWSSecretSource(secretsmanager.NewFromConfig(cfg), secretName, logger), nil
}

func newAWSSecretSource(client secretsAPI, secretName string, logger *slog.Logger) *AWSSecretSource {
	return &AWSSecretSource{
		client:     client,
		secretName: secretName,
		ttl:        5 * time.Minute,
		logger:     logger.With(slog.String("component", "secrets")),
	}
}

// Lookup returns the requested keys present in the secret
func (s *AWSSecretSource) Lookup(ctx context.Context, keys ...string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.values == nil || time.Since(s.fetchedAt) >= s.ttl {
		values, err := s.fetch(ctx)
		if err != nil {
			return nil, err
		}
		s.values, s.fetchedAt = values, time.Now()
	}

	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := s.values[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

func (s *AWSSecretSource) fetch(ctx context.Context) (map[string]string, error) {
	s.logger.InfoContext(ctx, "fetching secrets", slog.String("secret_name", s.secretName))

	result, err := s.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId:     aws.String(s.secretName),
		VersionStage: aws.String("AWSCURRENT"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get secret value: %w", err)
	}
	if result.SecretString == nil {
		return nil, fmt.Errorf("secret %s has no string value", s.secretName)
	}

	var values map[string]string
	if err := json.Unmarshal([]byte(*result.SecretString), &values); err != nil {
		return nil, fmt.Errorf("failed to parse secret %s: %w", s.secretName, err)
	}
	return values, nil
}

// EnvSecretSource reads secrets from environment variables; empty variables count as unset
type EnvSecretSource struct{}

// Lookup returns the requested keys that are set in the environment
func (EnvSecretSource) Lookup(_ context.Context, keys ...string) (map[string]string, error) {
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			out[k] = v
		}
	}
	return out, nil
}
