package event

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// UnmarshalFunc decodes JSON text into the value pointed to by v.
type UnmarshalFunc func(data []byte, v any) error

// registry maps every recognized kind to a constructor for its concrete shape.
var registry = map[Kind]func() Event{
	KindMessage:        func() Event { return &Message{} },
	KindMessageEnd:     func() Event { return &MessageEnd{} },
	KindMessageFile:    func() Event { return &MessageFile{} },
	KindTTSMessage:     func() Event { return &TTSMessage{} },
	KindTTSMessageEnd:  func() Event { return &TTSMessageEnd{} },
	KindMessageReplace: func() Event { return &MessageReplace{} },
	KindAgentMessage:   func() Event { return &AgentMessage{} },
	KindAgentThought:   func() Event { return &AgentThought{} },

	KindWorkflowStarted:    func() Event { return &WorkflowStarted{} },
	KindNodeStarted:        func() Event { return &NodeStarted{} },
	KindNodeFinished:       func() Event { return &NodeFinished{} },
	KindWorkflowFinished:   func() Event { return &WorkflowFinished{} },
	KindIterationStarted:   func() Event { return &IterationStarted{} },
	KindIterationNext:      func() Event { return &IterationNext{} },
	KindIterationCompleted: func() Event { return &IterationCompleted{} },
	KindLoopStarted:        func() Event { return &LoopStarted{} },
	KindLoopNext:           func() Event { return &LoopNext{} },
	KindLoopCompleted:      func() Event { return &LoopCompleted{} },
	KindAgentLog:           func() Event { return &AgentLog{} },
	KindTextChunk:          func() Event { return &TextChunk{} },

	KindPing:  func() Event { return &Ping{} },
	KindError: func() Event { return &Error{} },
}

var jsonNull = []byte("null")

// New returns a zero value of the concrete shape registered for k.
func New(k Kind) (Event, bool) {
	ctor, ok := registry[k]
	if !ok {
		return nil, false
	}
	return ctor(), true
}

// Decoder turns a data frame payload into a concrete Event.
type Decoder struct {
	unmarshal UnmarshalFunc
	fallback  Kind
}

// DecoderOption configures a Decoder.
type DecoderOption func(*Decoder)

// WithUnmarshal replaces encoding/json as the JSON primitive.
func WithUnmarshal(fn UnmarshalFunc) DecoderOption {
	return func(d *Decoder) {
		if fn != nil {
			d.unmarshal = fn
		}
	}
}

// WithFallback makes payloads whose kind is missing or unrecognized decode
// as k instead of failing. Completion streams use KindMessage.
func WithFallback(k Kind) DecoderOption {
	return func(d *Decoder) {
		d.fallback = k
	}
}

// NewDecoder creates a Decoder. Without options it uses encoding/json and
// rejects payloads with a missing or unknown kind.
func NewDecoder(opts ...DecoderOption) *Decoder {
	d := &Decoder{unmarshal: json.Unmarshal}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

var defaultDecoder = NewDecoder()

// Decode decodes payload with the default decoder.
func Decode(payload []byte) (Event, error) {
	return defaultDecoder.Decode(payload)
}

// discriminant reads only the kind tag. "event" is the wire name; "kind" is
// accepted when "event" is absent.
type discriminant struct {
	Event *string `json:"event"`
	Kind  *string `json:"kind"`
}

func (p discriminant) tag() string {
	if p.Event != nil && *p.Event != "" {
		return *p.Event
	}
	if p.Kind != nil {
		return *p.Kind
	}
	return ""
}

// Decode decodes payload into the shape selected by its discriminant. Every
// failure is returned as a *DecodeError carrying the raw text.
func (d *Decoder) Decode(payload []byte) (Event, error) {
	raw := string(payload)
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return nil, &DecodeError{Raw: raw, Err: ErrEmptyPayload}
	}

	// A null payload carries no event, even where a fallback kind applies.
	if bytes.Equal(trimmed, jsonNull) {
		return nil, &DecodeError{Raw: raw, Err: ErrMissingKind}
	}

	var p discriminant
	if err := d.unmarshal(trimmed, &p); err != nil {
		return nil, &DecodeError{Raw: raw, Err: err}
	}

	tag := p.tag()
	kind, known := ParseKind(tag)
	if !known {
		if d.fallback == "" {
			if tag == "" {
				return nil, &DecodeError{Raw: raw, Err: ErrMissingKind}
			}
			return nil, &DecodeError{Raw: raw, Tag: tag, Err: ErrUnknownKind}
		}
		kind = d.fallback
	}

	ev, ok := New(kind)
	if !ok {
		return nil, &DecodeError{Raw: raw, Tag: tag, Err: ErrUnknownKind}
	}
	if err := d.unmarshal(trimmed, ev); err != nil {
		return nil, &DecodeError{Raw: raw, Tag: tag, Err: err}
	}
	return ev, nil
}

// Encode renders ev as a frame payload, injecting its kind as the "event"
// field so the result decodes back into an equal value.
func Encode(ev Event) ([]byte, error) {
	body, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("encoding %s event: %w", ev.Kind(), err)
	}

	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("encoding %s event: %w", ev.Kind(), err)
	}

	tag, err := json.Marshal(string(ev.Kind()))
	if err != nil {
		return nil, fmt.Errorf("encoding %s event: %w", ev.Kind(), err)
	}
	fields["event"] = tag

	return json.Marshal(fields)
}
