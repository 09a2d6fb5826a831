package reqs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echo struct {
	Text string `json:"text"`
}

func TestNewRequestTopic_RegistersDescriptor(t *testing.T) {
	t.Parallel()

	topic, err := NewRequestTopic(TopicOptions[Void, echo]{
		ID:               "test.reqs.register",
		RequestBodyCodec: VoidCodec,
		ResultBodyCodec:  JSONCodec[echo]{},
	})
	require.NoError(t, err)
	assert.Equal(t, "test.reqs.register", topic.ID())

	info, ok := LookupTopic("test.reqs.register")
	require.True(t, ok)
	assert.Equal(t, TopicInfo{ID: "test.reqs.register", RequestCodec: "void", ResultCodec: "json"}, info)
	assert.Equal(t, info, topic.Info())
	assert.Contains(t, Topics(), info)
}

func TestNewRequestTopic_RejectsDuplicateID(t *testing.T) {
	t.Parallel()

	opts := TopicOptions[Void, Void]{
		ID:               "test.reqs.duplicate",
		RequestBodyCodec: VoidCodec,
		ResultBodyCodec:  VoidCodec,
	}
	_, err := NewRequestTopic(opts)
	require.NoError(t, err)

	_, err = NewRequestTopic(opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
	assert.Panics(t, func() { MustNewRequestTopic(opts) })
}

func TestNewRequestTopic_ValidatesID(t *testing.T) {
	t.Parallel()

	for _, id := range []string{"", "nodots", "Upper.Case", "trailing.", ".leading", "a..b", "bad id.x"} {
		_, err := NewRequestTopic(TopicOptions[Void, Void]{
			ID:               id,
			RequestBodyCodec: VoidCodec,
			ResultBodyCodec:  VoidCodec,
		})
		require.ErrorIs(t, err, ErrInvalidTopicID, "id %q", id)
	}
}

func TestNewRequestTopic_RequiresCodecs(t *testing.T) {
	t.Parallel()

	_, err := NewRequestTopic(TopicOptions[Void, Void]{ID: "test.reqs.nocodec"})
	require.Error(t, err)
	_, ok := LookupTopic("test.reqs.nocodec")
	assert.False(t, ok)
}

func TestCodecs(t *testing.T) {
	t.Parallel()

	data, err := VoidCodec.Encode(Void{})
	require.NoError(t, err)
	assert.Empty(t, data)

	v, err := VoidCodec.Decode([]byte("anything"))
	require.NoError(t, err)
	assert.Equal(t, Void{}, v)

	_, err = JSONCodec[echo]{}.Decode([]byte("{"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode json body")
}
