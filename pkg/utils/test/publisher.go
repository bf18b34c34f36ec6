package testutils

import (
	"context"
	"errors"
	"sync"

	"github.com/papercomputeco/dify/pkg/eventstream"
)

// RecordingPublisher is an eventstream.Publisher that keeps every record.
type RecordingPublisher struct {
	mu      sync.Mutex
	records []*eventstream.StreamEventRecord
	closed  bool

	// FailOn makes PublishEvent fail for records of this kind.
	FailOn string
}

func NewRecordingPublisher() *RecordingPublisher {
	return &RecordingPublisher{}
}

func (p *RecordingPublisher) PublishEvent(_ context.Context, record *eventstream.StreamEventRecord) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if record == nil {
		return eventstream.ErrNilStreamEvent
	}
	if p.closed {
		return errors.New("publisher closed")
	}
	if p.FailOn != "" && record.Kind == p.FailOn {
		return errors.New("mock publish failure")
	}
	p.records = append(p.records, record)
	return nil
}

func (p *RecordingPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// Records returns a copy of the published records.
func (p *RecordingPublisher) Records() []*eventstream.StreamEventRecord {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*eventstream.StreamEventRecord, len(p.records))
	copy(out, p.records)
	return out
}

// Kinds returns the kind of every published record in order.
func (p *RecordingPublisher) Kinds() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.records))
	for _, r := range p.records {
		out = append(out, r.Kind)
	}
	return out
}

// Closed reports whether Close was called.
func (p *RecordingPublisher) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}
