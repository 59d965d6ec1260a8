package jobs

import "github.com/google/uuid"

// Message is the serializable envelope shipping a task invocation between
// processes: which task type to run (entrypoint), with which parameters and
// metadata, and the result accumulated by previous hops.
type Message struct {
	UUID       uuid.UUID      `json:"uuid" yaml:"uuid"`
	Entrypoint string         `json:"entrypoint" yaml:"entrypoint"`
	Params     map[string]any `json:"params,omitempty" yaml:"params,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Result     Result         `json:"result" yaml:"result"`
}

// MessageOption configures a message under construction.
type MessageOption func(*Message)

// WithMessageUUID overrides the generated message identifier.
func WithMessageUUID(id uuid.UUID) MessageOption {
	return func(m *Message) {
		m.UUID = id
	}
}

// WithMessageParams supplies the task parameters carried by the message.
func WithMessageParams(params map[string]any) MessageOption {
	return func(m *Message) {
		m.Params = params
	}
}

// WithMessageMetadata supplies the metadata carried by the message.
func WithMessageMetadata(metadata map[string]any) MessageOption {
	return func(m *Message) {
		m.Metadata = metadata
	}
}

// WithMessageResult seeds the message with a previously accumulated result.
func WithMessageResult(result Result) MessageOption {
	return func(m *Message) {
		m.Result = result
	}
}

// NewMessage builds a message for the given entrypoint with a random
// identifier and an empty result tied to that identifier.
func NewMessage(entrypoint string, opts ...MessageOption) Message {
	m := Message{
		UUID:       uuid.New(),
		Entrypoint: entrypoint,
	}
	for _, opt := range opts {
		opt(&m)
	}
	if m.Result.UUID == uuid.Nil {
		m.Result = Result{UUID: m.UUID}
	}
	return m
}

// NewResult builds an empty result carrying the message's identifier.
func (m Message) NewResult() Result {
	return Result{UUID: m.UUID}
}
