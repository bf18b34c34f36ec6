// Package kafka publishes stream event records to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/papercomputeco/dify/pkg/eventstream"
)

var (
	// ErrNoBrokers is returned by NewPublisher without broker addresses.
	ErrNoBrokers = errors.New("kafka publisher requires at least one broker")

	// ErrNoTopic is returned by NewPublisher without a topic.
	ErrNoTopic = errors.New("kafka publisher requires a topic")
)

const defaultBatchTimeout = 10 * time.Millisecond

// Config configures a Publisher.
type Config struct {
	Brokers []string
	Topic   string

	// BatchTimeout bounds how long the writer waits to fill a batch.
	// Defaults to 10ms so interactive streams are mirrored promptly.
	BatchTimeout time.Duration
}

// messageWriter is the subset of *kafkago.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Publisher writes each record as one message keyed by its task id, so a
// hash balancer keeps the events of one task in one partition.
type Publisher struct {
	writer messageWriter
}

// NewPublisher creates a Publisher backed by a kafka-go writer.
func NewPublisher(c Config) (*Publisher, error) {
	if len(c.Brokers) == 0 {
		return nil, ErrNoBrokers
	}
	if c.Topic == "" {
		return nil, ErrNoTopic
	}
	if c.BatchTimeout <= 0 {
		c.BatchTimeout = defaultBatchTimeout
	}

	return newPublisher(&kafkago.Writer{
		Addr:                   kafkago.TCP(c.Brokers...),
		Topic:                  c.Topic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireOne,
		BatchTimeout:           c.BatchTimeout,
		AllowAutoTopicCreation: true,
	}), nil
}

func newPublisher(w messageWriter) *Publisher {
	return &Publisher{writer: w}
}

// PublishEvent writes record to the topic.
func (p *Publisher) PublishEvent(ctx context.Context, record *eventstream.StreamEventRecord) error {
	if record == nil {
		return eventstream.ErrNilStreamEvent
	}

	value, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshaling stream event %s: %w", record.EventID, err)
	}

	msg := kafkago.Message{
		Key:   []byte(record.Key()),
		Value: value,
		Time:  record.EmittedAt,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(record.EventType)},
			{Key: "kind", Value: []byte(record.Kind)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("writing stream event %s to kafka: %w", record.EventID, err)
	}
	return nil
}

// Close flushes pending messages and closes the writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
