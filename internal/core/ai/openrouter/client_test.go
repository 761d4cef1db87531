package openrouter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"meal-planner/internal/core/ai/provider"
	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(url string) config.OpenRouterConfig {
	return config.OpenRouterConfig{
		Enabled:     true,
		APIKey:      "sk-or-test",
		BaseURL:     url,
		Model:       "test/model",
		MaxTokens:   256,
		Temperature: 0.2,
		Timeout:     5 * time.Second,
		MaxRetries:  1,
	}
}

func TestClient_Generate(t *testing.T) {
	common.InitTestLogger()

	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-or-test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"gen-1","choices":[{"message":{"role":"assistant","content":"{\"ok\":true}"}}],"usage":{"total_tokens":42}}`))
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL))
	defer c.Close()

	resp, err := c.Generate(context.Background(), provider.UserPrompt("hello"))
	require.NoError(t, err)

	assert.Equal(t, `{"ok":true}`, resp.Content)
	assert.Equal(t, 42, resp.Usage.TotalTokens)
	assert.Equal(t, "test/model", got.Model)
	assert.Equal(t, 256, got.MaxTokens)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "hello", got.Messages[0].Content)
	assert.Equal(t, "test/model", c.GetModel())
	assert.Equal(t, 5*time.Second, c.GetTimeout())
}

func TestClient_RetriesServerErrors(t *testing.T) {
	common.InitTestLogger()

	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"done"}}]}`))
	}))
	defer srv.Close()

	resp, err := NewClient(testConfig(srv.URL)).Generate(context.Background(), provider.UserPrompt("x"))
	require.NoError(t, err)
	assert.Equal(t, "done", resp.Content)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestClient_ErrorResponses(t *testing.T) {
	common.InitTestLogger()

	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"api error message", http.StatusUnauthorized, `{"error":{"message":"No auth credentials found"}}`, "No auth credentials found"},
		{"no choices", http.StatusOK, `{"choices":[]}`, "empty choices"},
		{"blank content", http.StatusOK, `{"choices":[{"message":{"content":"  "}}]}`, "empty content"},
		{"malformed body", http.StatusOK, `not json`, "failed to parse response"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := NewClient(testConfig(srv.URL)).Generate(context.Background(), provider.UserPrompt("x"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
