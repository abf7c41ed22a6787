// internal/adapters/suggest/gemini.go
package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/ammerola/barstock/internal/core/domain"
	"github.com/ammerola/barstock/internal/core/ports"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-2.5-flash"
	defaultTimeout = 10 * time.Second

	maxNameLength     = 200
	responseReadLimit = 64 << 10
)

var errEmptyResponse = errors.New("empty response")

// GeminiSuggester asks the Gemini generateContent API to classify product names
type GeminiSuggester struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// Statically assert that *GeminiSuggester implements the Suggester interface.
var _ ports.Suggester = (*GeminiSuggester)(nil)

// Option configures a GeminiSuggester
type Option func(*GeminiSuggester)

// WithBaseURL overrides the API base URL
func WithBaseURL(baseURL string) Option {
	return func(g *GeminiSuggester) {
		if trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/"); trimmed != "" {
			g.baseURL = trimmed
		}
	}
}

// WithModel overrides the model name
func WithModel(model string) Option {
	return func(g *GeminiSuggester) {
		if model != "" {
			g.model = model
		}
	}
}

// WithTimeout sets the HTTP client timeout
func WithTimeout(timeout time.Duration) Option {
	return func(g *GeminiSuggester) {
		if timeout > 0 {
			g.httpClient.Timeout = timeout
		}
	}
}

// WithRateLimit bounds outgoing calls to r per second with the given burst
func WithRateLimit(r float64, burst int) Option {
	return func(g *GeminiSuggester) {
		if r > 0 && burst > 0 {
			g.limiter = rate.NewLimiter(rate.Limit(r), burst)
		}
	}
}

// NewGeminiSuggester creates a suggester for apiKey
func NewGeminiSuggester(apiKey string, logger *slog.Logger, opts ...Option) (*GeminiSuggester, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	g := &GeminiSuggester{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		model:      defaultModel,
		httpClient: &http.Client{Timeout: defaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(1), 3),
		logger:     logger.With(slog.String("component", "gemini_suggester")),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string         `json:"responseMimeType"`
	ResponseSchema   responseSchema `json:"responseSchema"`
}

type responseSchema struct {
	Type       string                    `json:"type"`
	Properties map[string]schemaProperty `json:"properties"`
	Required   []string                  `json:"required"`
}

type schemaProperty struct {
	Type string   `json:"type"`
	Enum []string `json:"enum,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Suggest returns a suggestion for productName, or ok == false on any failure
func (g *GeminiSuggester) Suggest(ctx context.Context, productName string) (*domain.Suggestion, bool) {
	name := strings.TrimSpace(productName)
	if name == "" || len(name) > maxNameLength {
		return nil, false
	}

	if err := g.limiter.Wait(ctx); err != nil {
		g.logger.WarnContext(ctx, "suggestion rate limited", slog.String("error", err.Error()))
		return nil, false
	}

	suggestion, err := g.generate(ctx, name)
	if err != nil {
		g.logger.WarnContext(ctx, "suggestion failed",
			slog.String("name", name),
			slog.String("error", err.Error()))
		return nil, false
	}
	return suggestion, true
}

func (g *GeminiSuggester) generate(ctx context.Context, name string) (*domain.Suggestion, error) {
	payload, err := json.Marshal(buildRequest(name))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.baseURL, url.PathEscape(g.model))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call gemini: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, responseReadLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini returned status %d", resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, errEmptyResponse
	}

	text := strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return nil, errEmptyResponse
	}

	var raw struct {
		Category    string `json:"category"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("failed to decode suggestion: %w", err)
	}

	category, err := domain.ParseCategory(raw.Category)
	if err != nil {
		return nil, err
	}

	return &domain.Suggestion{
		Category:    category,
		Description: strings.TrimSpace(raw.Description),
	}, nil
}

func buildRequest(name string) generateRequest {
	cats := domain.Categories()
	names := make([]string, len(cats))
	quoted := make([]string, len(cats))
	for i, c := range cats {
		names[i] = string(c)
		quoted[i] = fmt.Sprintf("%q", string(c))
	}

	prompt := fmt.Sprintf(
		"Classify the drink %q into one of these exact categories: %s. "+
			"Also provide a very short 1-sentence description suitable for a pub menu.",
		name, strings.Join(quoted, ", "))

	return generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema: responseSchema{
				Type: "OBJECT",
				Properties: map[string]schemaProperty{
					"category":    {Type: "STRING", Enum: names},
					"description": {Type: "STRING"},
				},
				Required: []string{"category", "description"},
			},
		},
	}
}

// NoopSuggester never suggests anything. It is used when no API key is configured.
type NoopSuggester struct{}

// Suggest always reports no suggestion
func (NoopSuggester) Suggest(context.Context, string) (*domain.Suggestion, bool) {
	return nil, false
}
