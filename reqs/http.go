package reqs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	defaultMaxResponseBytes = 1 << 20
	defaultUserAgent        = "openai-pass"
	errorBodyLimit          = 512
)

// ErrMissingStatus is returned when a provider response carries no status.
var ErrMissingStatus = errors.New("provider response has no status")

// ProviderError is returned when a provider answers with a non-2xx HTTP status.
type ProviderError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("provider %s responded %d", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("provider %s responded %d: %s", e.Provider, e.StatusCode, e.Body)
}

// HTTPConfig configures an HTTPSender.
type HTTPConfig struct {
	// Timeout bounds a single exchange including the provider's decision. Zero means no limit
	// beyond the caller's context.
	Timeout          time.Duration
	UserAgent        string
	MaxResponseBytes int64
}

// HTTPSender posts dispatches to provider URLs as JSON.
type HTTPSender struct {
	cfg    HTTPConfig
	client *http.Client
}

type wireRequest struct {
	Topic string `json:"topic"`
	Body  []byte `json:"body,omitempty"`
}

// NewHTTPSender constructs a sender. A nil httpClient uses http.DefaultClient.
func NewHTTPSender(cfg HTTPConfig, httpClient *http.Client) *HTTPSender {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if strings.TrimSpace(cfg.UserAgent) == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.MaxResponseBytes <= 0 {
		cfg.MaxResponseBytes = defaultMaxResponseBytes
	}
	return &HTTPSender{cfg: cfg, client: httpClient}
}

// Send implements Sender.
func (s *HTTPSender) Send(ctx context.Context, d Dispatch) (RawResult, error) {
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	payload, err := json.Marshal(wireRequest{Topic: d.TopicID, Body: d.Body})
	if err != nil {
		return RawResult{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.Provider, bytes.NewReader(payload))
	if err != nil {
		return RawResult{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", s.cfg.UserAgent)

	started := time.Now()
	log.Debug().Str("topic", d.TopicID).Str("provider", d.Provider).Msg("sending pass request")

	resp, err := s.client.Do(req)
	if err != nil {
		return RawResult{}, fmt.Errorf("post %s: %w", d.Provider, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.cfg.MaxResponseBytes+1))
	if err != nil {
		return RawResult{}, fmt.Errorf("read response: %w", err)
	}
	if int64(len(body)) > s.cfg.MaxResponseBytes {
		return RawResult{}, fmt.Errorf("provider %s response exceeds %d bytes", d.Provider, s.cfg.MaxResponseBytes)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet := strings.TrimSpace(string(body))
		if len(snippet) > errorBodyLimit {
			snippet = snippet[:errorBodyLimit]
		}
		return RawResult{}, &ProviderError{Provider: d.Provider, StatusCode: resp.StatusCode, Body: snippet}
	}

	var out RawResult
	if err := json.Unmarshal(body, &out); err != nil {
		return RawResult{}, fmt.Errorf("parse provider response: %w", err)
	}
	if out.Status == "" {
		return RawResult{}, ErrMissingStatus
	}

	log.Debug().
		Str("topic", d.TopicID).
		Str("status", string(out.Status)).
		Dur("latency", time.Since(started)).
		Msg("pass request resolved")

	return out, nil
}
