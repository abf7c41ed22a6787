package suggest_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/barstock/internal/adapters/suggest"
	"github.com/ammerola/barstock/internal/core/domain"
	"github.com/ammerola/barstock/test/helpers"
)

func geminiBody(text string) string {
	resp := map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"parts": []any{map[string]any{"text": text}},
				},
			},
		},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func TestGeminiSuggester_Suggest(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantOK     bool
		wantResult *domain.Suggestion
	}{
		{
			name:   "valid_suggestion",
			status: http.StatusOK,
			body:   geminiBody(`{"category":"Irish Whiskey","description":"Smooth triple-distilled whiskey."}`),
			wantOK: true,
			wantResult: &domain.Suggestion{
				Category:    domain.CategoryIrishWhiskey,
				Description: "Smooth triple-distilled whiskey.",
			},
		},
		{
			name:   "category_case_is_normalised",
			status: http.StatusOK,
			body:   geminiBody(`{"category":"wine","description":"Crisp white."}`),
			wantOK: true,
			wantResult: &domain.Suggestion{
				Category:    domain.CategoryWine,
				Description: "Crisp white.",
			},
		},
		{
			name:   "unknown_category",
			status: http.StatusOK,
			body:   geminiBody(`{"category":"Cider","description":"Apple."}`),
		},
		{
			name:   "non_json_text",
			status: http.StatusOK,
			body:   geminiBody(`I think it is a beer`),
		},
		{
			name:   "no_candidates",
			status: http.StatusOK,
			body:   `{"candidates":[]}`,
		},
		{
			name:   "server_error",
			status: http.StatusInternalServerError,
			body:   `{"error":{"message":"boom"}}`,
		},
		{
			name:   "malformed_body",
			status: http.StatusOK,
			body:   `{not json`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/v1beta/models/gemini-2.5-flash:generateContent", r.URL.Path)
				assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

				var req map[string]any
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))

				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			s, err := suggest.NewGeminiSuggester("test-key", helpers.TestLogger(),
				suggest.WithBaseURL(srv.URL),
				suggest.WithRateLimit(100, 10))
			require.NoError(t, err)

			got, ok := s.Suggest(context.Background(), "Jameson")
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantResult, got)
		})
	}
}

func TestGeminiSuggester_PromptNamesProductAndCategories(t *testing.T) {
	var prompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		prompt = req.Contents[0].Parts[0].Text
		_, _ = w.Write([]byte(geminiBody(`{"category":"Spirits","description":"x"}`)))
	}))
	defer srv.Close()

	s, err := suggest.NewGeminiSuggester("k", helpers.TestLogger(), suggest.WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, ok := s.Suggest(context.Background(), "Dingle Gin")
	require.True(t, ok)
	assert.Contains(t, prompt, `"Dingle Gin"`)
	for _, c := range domain.Categories() {
		assert.Contains(t, prompt, string(c))
	}
}

func TestGeminiSuggester_RejectsBlankNameWithoutCalling(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	s, err := suggest.NewGeminiSuggester("k", helpers.TestLogger(), suggest.WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, ok := s.Suggest(context.Background(), "   ")
	assert.False(t, ok)
	_, ok = s.Suggest(context.Background(), strings.Repeat("x", 500))
	assert.False(t, ok)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestGeminiSuggester_TimeoutYieldsNoSuggestion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	s, err := suggest.NewGeminiSuggester("k", helpers.TestLogger(),
		suggest.WithBaseURL(srv.URL),
		suggest.WithTimeout(20*time.Millisecond))
	require.NoError(t, err)

	_, ok := s.Suggest(context.Background(), "Guinness")
	assert.False(t, ok)
}

func TestGeminiSuggester_RateLimitHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(geminiBody(`{"category":"Wine","description":"x"}`)))
	}))
	defer srv.Close()

	s, err := suggest.NewGeminiSuggester("k", helpers.TestLogger(),
		suggest.WithBaseURL(srv.URL),
		suggest.WithRateLimit(0.001, 1))
	require.NoError(t, err)

	_, ok := s.Suggest(context.Background(), "Merlot")
	require.True(t, ok)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, ok = s.Suggest(ctx, "Merlot")
	assert.False(t, ok)
}

func TestNewGeminiSuggester_RequiresKey(t *testing.T) {
	_, err := suggest.NewGeminiSuggester("  ", helpers.TestLogger())
	assert.Error(t, err)
}

func TestNoopSuggester(t *testing.T) {
	got, ok := suggest.NoopSuggester{}.Suggest(context.Background(), "Guinness")
	assert.False(t, ok)
	assert.Nil(t, got)
}
