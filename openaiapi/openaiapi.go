// Package openaiapi requests OpenAI API credentials through a pass request provider.
package openaiapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/genesis-xyz/openai-pass/reqs"
)

const (
	// TopicID identifies the OpenAI API credentials request topic.
	TopicID = "xyz.genesis.ai.openai-api"
	// DefaultProvider is where requests are sent.
	DefaultProvider = "https://genesis.xyz/request"
)

// ErrNotAccepted is matched by errors returned when the provider did not accept a request.
var ErrNotAccepted = errors.New("openai api pass request was not accepted")

// Credentials are the OpenAI API key and endpoint root granted by a provider.
type Credentials struct {
	APIKey  string `json:"apiKey"  yaml:"apiKey"`
	BaseURL string `json:"baseURL" yaml:"baseURL"`
}

// RequestTopic is the pass request topic for OpenAI API credentials.
var RequestTopic = reqs.MustNewRequestTopic(reqs.TopicOptions[reqs.Void, Credentials]{
	ID:               TopicID,
	RequestBodyCodec: reqs.VoidCodec,
	ResultBodyCodec:  reqs.JSONCodec[Credentials]{},
})

// NotAcceptedError carries the provider decision of a request that was not accepted.
type NotAcceptedError struct {
	Result reqs.Result[Credentials]
}

func (e *NotAcceptedError) Error() string {
	data, err := json.Marshal(e.Result)
	if err != nil {
		return fmt.Sprintf("%s: status %q", ErrNotAccepted, e.Result.Status)
	}
	return fmt.Sprintf("%s: %s", ErrNotAccepted, data)
}

func (e *NotAcceptedError) Unwrap() error { return ErrNotAccepted }

var defaultSender reqs.Sender = reqs.NewHTTPSender(reqs.HTTPConfig{}, nil)

// Request asks the default provider for OpenAI API credentials over HTTP.
func Request(ctx context.Context) (Credentials, error) {
	return RequestWith(ctx, defaultSender)
}

// RequestWith asks the default provider for OpenAI API credentials using sender. Every status other
// than accepted, pending included, fails with a *NotAcceptedError. Sender errors are returned as is.
func RequestWith(ctx context.Context, sender reqs.Sender) (Credentials, error) {
	res, err := reqs.SendRequestWithDefaultProvider(ctx, sender, reqs.SendOptions[reqs.Void, Credentials]{
		Topic:           RequestTopic,
		Body:            reqs.Void{},
		DefaultProvider: DefaultProvider,
	})
	if err != nil {
		return Credentials{}, err
	}
	if !res.Status.Accepted() {
		return Credentials{}, &NotAcceptedError{Result: res}
	}
	if res.Body == nil {
		return Credentials{}, fmt.Errorf("openai api pass request was accepted without credentials")
	}
	return *res.Body, nil
}
