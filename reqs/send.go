package reqs

import (
	"context"
	"fmt"
)

// Dispatch is a single encoded request addressed to a provider.
type Dispatch struct {
	TopicID  string
	Body     []byte
	Provider string
}

// Sender delivers a dispatch to its provider and waits for the decision.
type Sender interface {
	Send(ctx context.Context, d Dispatch) (RawResult, error)
}

// SendFunc adapts a function to the Sender interface.
type SendFunc func(ctx context.Context, d Dispatch) (RawResult, error)

// Send calls f.
func (f SendFunc) Send(ctx context.Context, d Dispatch) (RawResult, error) { return f(ctx, d) }

// SendOptions describes a request sent through SendRequestWithDefaultProvider.
type SendOptions[Req, Res any] struct {
	Topic           *RequestTopic[Req, Res]
	Body            Req
	DefaultProvider string
}

// SendRequestWithDefaultProvider encodes the body, sends it to the default provider and decodes
// the result body when one is present. Sender errors are returned as is.
func SendRequestWithDefaultProvider[Req, Res any](ctx context.Context, sender Sender, opts SendOptions[Req, Res]) (Result[Res], error) {
	if opts.Topic == nil {
		return Result[Res]{}, fmt.Errorf("send request: topic is required")
	}
	if opts.DefaultProvider == "" {
		return Result[Res]{}, fmt.Errorf("send request %s: default provider is required", opts.Topic.ID())
	}

	body, err := opts.Topic.RequestBodyCodec().Encode(opts.Body)
	if err != nil {
		return Result[Res]{}, fmt.Errorf("encode %s request: %w", opts.Topic.ID(), err)
	}

	raw, err := sender.Send(ctx, Dispatch{
		TopicID:  opts.Topic.ID(),
		Body:     body,
		Provider: opts.DefaultProvider,
	})
	if err != nil {
		return Result[Res]{}, err
	}

	res := Result[Res]{Status: raw.Status, Reason: raw.Reason}
	if len(raw.Body) > 0 {
		v, err := opts.Topic.ResultBodyCodec().Decode(raw.Body)
		if err != nil {
			return Result[Res]{}, fmt.Errorf("decode %s result: %w", opts.Topic.ID(), err)
		}
		res.Body = &v
	}
	return res, nil
}
