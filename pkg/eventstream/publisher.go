package eventstream

import "context"

// Publisher publishes stream event records to an event stream backend.
type Publisher interface {
	PublishEvent(ctx context.Context, record *StreamEventRecord) error
	Close() error
}
