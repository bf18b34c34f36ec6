// Package eventstream defines the record mirrored to an external event
// stream for every event a dify stream delivers, and the publisher contract
// backends implement.
package eventstream

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/papercomputeco/dify/pkg/event"
)

const (
	// SchemaVersionV1 is the first version of the record schema.
	SchemaVersionV1 = 1

	// EventTypeStreamEvent is emitted for each event delivered on a stream.
	EventTypeStreamEvent = "dify.stream.event"
)

// StreamEventRecord is a transport-neutral envelope around one decoded
// stream event.
type StreamEventRecord struct {
	SchemaVersion int             `json:"schema_version"`
	EventType     string          `json:"event_type"`
	EventID       string          `json:"event_id"`
	EmittedAt     time.Time       `json:"emitted_at"`
	Source        EventSource     `json:"source"`
	Kind          string          `json:"kind"`
	TaskID        string          `json:"task_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

// EventSource identifies the stream a record came from.
type EventSource struct {
	App      string `json:"app,omitempty"`
	Family   string `json:"family"`
	Endpoint string `json:"endpoint,omitempty"`
}

// NewStreamEventRecord wraps ev in a record with a fresh event id.
func NewStreamEventRecord(source EventSource, ev event.Event, emittedAt time.Time) (*StreamEventRecord, error) {
	payload, err := event.Encode(ev)
	if err != nil {
		return nil, fmt.Errorf("building stream event record: %w", err)
	}

	return &StreamEventRecord{
		SchemaVersion: SchemaVersionV1,
		EventType:     EventTypeStreamEvent,
		EventID:       uuid.NewString(),
		EmittedAt:     emittedAt.UTC(),
		Source:        source,
		Kind:          string(ev.Kind()),
		TaskID:        event.TaskIDOf(ev),
		Payload:       payload,
	}, nil
}

// Key returns the partitioning key for the record. Records of one task
// share a key so backends that partition by key keep them in order.
func (r *StreamEventRecord) Key() string {
	if r.TaskID != "" {
		return r.TaskID
	}
	return r.EventID
}
