package openaiapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	defaultBaseURL       = "https://api.openai.com/v1"
	defaultVerifyTimeout = 30 * time.Second
)

// ClientConfig tunes clients built from Credentials.
type ClientConfig struct {
	Timeout    time.Duration
	UserAgent  string
	HTTPClient *http.Client
}

// NewClient builds an OpenAI API client authenticated with c.
func (c Credentials) NewClient(cfg ClientConfig) (openai.Client, error) {
	apiKey := strings.TrimSpace(c.APIKey)
	if apiKey == "" {
		return openai.Client{}, fmt.Errorf("openai api key is empty")
	}

	baseURL := strings.TrimSpace(c.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultVerifyTimeout
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		option.WithRequestTimeout(timeout),
		option.WithMaxRetries(0),
	}
	if ua := strings.TrimSpace(cfg.UserAgent); ua != "" {
		opts = append(opts, option.WithHeader("User-Agent", ua))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}
	return openai.NewClient(opts...), nil
}

// Verification is the outcome of a successful Verify call.
type Verification struct {
	BaseURL string `json:"baseURL" yaml:"baseURL"`
	Models  int    `json:"models"  yaml:"models"`
}

// Verify checks that c authenticates against the API by listing models once.
func Verify(ctx context.Context, c Credentials, cfg ClientConfig) (Verification, error) {
	client, err := c.NewClient(cfg)
	if err != nil {
		return Verification{}, err
	}

	page, err := client.Models.List(ctx)
	if err != nil {
		return Verification{}, fmt.Errorf("openai models.list: %w", err)
	}

	baseURL := strings.TrimSpace(c.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return Verification{BaseURL: baseURL, Models: len(page.Data)}, nil
}

// Env renders the credentials as OpenAI SDK environment variables.
func (c Credentials) Env() map[string]string {
	return map[string]string{
		"OPENAI_API_KEY":  c.APIKey,
		"OPENAI_BASE_URL": c.BaseURL,
	}
}
