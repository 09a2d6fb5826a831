package reqs

import (
	"encoding/json"
	"fmt"
)

// Codec encodes and decodes a request or result body.
type Codec[T any] interface {
	Name() string
	Encode(v T) ([]byte, error)
	Decode(data []byte) (T, error)
}

// Void is the body of requests that carry no payload.
type Void struct{}

// VoidCodec is the codec for absent bodies. It encodes to no bytes and ignores input on decode.
var VoidCodec Codec[Void] = voidCodec{}

type voidCodec struct{}

func (voidCodec) Name() string { return "void" }

func (voidCodec) Encode(Void) ([]byte, error) { return nil, nil }

func (voidCodec) Decode([]byte) (Void, error) { return Void{}, nil }

// JSONCodec encodes bodies as JSON documents.
type JSONCodec[T any] struct{}

// Name returns the codec name.
func (JSONCodec[T]) Name() string { return "json" }

// Encode marshals v to JSON.
func (JSONCodec[T]) Encode(v T) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode json body: %w", err)
	}
	return data, nil
}

// Decode unmarshals a JSON document into T.
func (JSONCodec[T]) Decode(data []byte) (T, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("decode json body: %w", err)
	}
	return v, nil
}
