// Package reqs implements pass request topics: named, codec-bound request/result contracts that are
// sent to a provider which accepts or rejects them.
package reqs

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"sync"
)

// ErrInvalidTopicID is returned for ids that are not reverse-domain style names.
var ErrInvalidTopicID = errors.New("invalid topic id")

var topicIDPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?(\.[a-z0-9]([a-z0-9-]*[a-z0-9])?)+$`)

// TopicOptions configures a RequestTopic.
type TopicOptions[Req, Res any] struct {
	ID               string
	RequestBodyCodec Codec[Req]
	ResultBodyCodec  Codec[Res]
}

// RequestTopic is an immutable request/result contract identified by a globally unique id.
type RequestTopic[Req, Res any] struct {
	id       string
	reqCodec Codec[Req]
	resCodec Codec[Res]
}

// TopicInfo describes a registered topic.
type TopicInfo struct {
	ID           string `json:"id"            yaml:"id"`
	RequestCodec string `json:"request_codec" yaml:"request_codec"`
	ResultCodec  string `json:"result_codec"  yaml:"result_codec"`
}

var registry = struct {
	mu     sync.RWMutex
	topics map[string]TopicInfo
}{topics: map[string]TopicInfo{}}

// NewRequestTopic validates opts and registers the topic process-wide.
func NewRequestTopic[Req, Res any](opts TopicOptions[Req, Res]) (*RequestTopic[Req, Res], error) {
	if !topicIDPattern.MatchString(opts.ID) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTopicID, opts.ID)
	}
	if opts.RequestBodyCodec == nil || opts.ResultBodyCodec == nil {
		return nil, fmt.Errorf("topic %s: request and result codecs are required", opts.ID)
	}

	info := TopicInfo{
		ID:           opts.ID,
		RequestCodec: opts.RequestBodyCodec.Name(),
		ResultCodec:  opts.ResultBodyCodec.Name(),
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()
	if _, ok := registry.topics[opts.ID]; ok {
		return nil, fmt.Errorf("topic %s is already registered", opts.ID)
	}
	registry.topics[opts.ID] = info

	return &RequestTopic[Req, Res]{
		id:       opts.ID,
		reqCodec: opts.RequestBodyCodec,
		resCodec: opts.ResultBodyCodec,
	}, nil
}

// MustNewRequestTopic is like NewRequestTopic but panics on error. It is meant for package-level
// topic declarations.
func MustNewRequestTopic[Req, Res any](opts TopicOptions[Req, Res]) *RequestTopic[Req, Res] {
	t, err := NewRequestTopic(opts)
	if err != nil {
		panic(err)
	}
	return t
}

// ID returns the topic id.
func (t *RequestTopic[Req, Res]) ID() string { return t.id }

// RequestBodyCodec returns the codec used for request bodies.
func (t *RequestTopic[Req, Res]) RequestBodyCodec() Codec[Req] { return t.reqCodec }

// ResultBodyCodec returns the codec used for result bodies.
func (t *RequestTopic[Req, Res]) ResultBodyCodec() Codec[Res] { return t.resCodec }

// Info returns the topic descriptor.
func (t *RequestTopic[Req, Res]) Info() TopicInfo {
	return TopicInfo{ID: t.id, RequestCodec: t.reqCodec.Name(), ResultCodec: t.resCodec.Name()}
}

// Topics lists registered topics sorted by id.
func Topics() []TopicInfo {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	out := make([]TopicInfo, 0, len(registry.topics))
	for _, info := range registry.topics {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// LookupTopic returns the descriptor registered under id.
func LookupTopic(id string) (TopicInfo, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	info, ok := registry.topics[id]
	return info, ok
}
