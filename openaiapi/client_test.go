package openaiapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify_ListsModelsWithCredentials(t *testing.T) {
	t.Parallel()

	var gotAuth, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"object": "list",
			"data": [
				{"id": "gpt-5", "object": "model", "created": 1, "owned_by": "openai"},
				{"id": "gpt-5-mini", "object": "model", "created": 1, "owned_by": "openai"}
			]
		}`))
	}))
	t.Cleanup(srv.Close)

	got, err := Verify(context.Background(), Credentials{APIKey: "sk-abc", BaseURL: srv.URL}, ClientConfig{HTTPClient: srv.Client()})
	require.NoError(t, err)

	assert.Equal(t, "Bearer sk-abc", gotAuth)
	assert.Equal(t, "/models", gotPath)
	assert.Equal(t, Verification{BaseURL: srv.URL, Models: 2}, got)
}

func TestVerify_ReturnsAPIError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "Incorrect API key provided", "type": "invalid_request_error", "code": "invalid_api_key"}}`))
	}))
	t.Cleanup(srv.Close)

	_, err := Verify(context.Background(), Credentials{APIKey: "sk-bad", BaseURL: srv.URL}, ClientConfig{HTTPClient: srv.Client()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "openai models.list")
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	t.Parallel()

	_, err := Credentials{BaseURL: "https://api.openai.com/v1"}.NewClient(ClientConfig{})
	require.Error(t, err)
}

func TestCredentialsEnv(t *testing.T) {
	t.Parallel()

	env := Credentials{APIKey: "sk-abc", BaseURL: "https://api.openai.com/v1"}.Env()
	assert.Equal(t, map[string]string{
		"OPENAI_API_KEY":  "sk-abc",
		"OPENAI_BASE_URL": "https://api.openai.com/v1",
	}, env)
}

func TestVerify_SendsUserAgent(t *testing.T) {
	t.Parallel()

	var gotUserAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object": "list", "data": []}`))
	}))
	t.Cleanup(srv.Close)

	_, err := Verify(context.Background(), Credentials{APIKey: "sk-abc", BaseURL: srv.URL}, ClientConfig{
		UserAgent:  "openai-pass/1",
		HTTPClient: srv.Client(),
	})
	require.NoError(t, err)
	assert.Equal(t, "openai-pass/1", gotUserAgent)
}
