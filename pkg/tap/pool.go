// Package tap mirrors delivered stream events to an eventstream.Publisher.
//
// Publishing happens on a small worker pool so that a slow or unavailable
// backend never delays the goroutine driving a stream session. Each worker
// owns a queue and records are routed by task id, so the events of one task
// are published in the order they were delivered.
package tap

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/papercomputeco/dify/pkg/dispatch"
	"github.com/papercomputeco/dify/pkg/event"
	"github.com/papercomputeco/dify/pkg/eventstream"
	"github.com/papercomputeco/dify/pkg/logger"
)

var (
	defaultNumWorkers   uint = 3
	defaultJobQueueSize uint = 256
	defaultPublishWait       = 5 * time.Second
)

// Config is the configuration options for the tap pool.
type Config struct {
	// Publisher receives every enqueued record.
	Publisher eventstream.Publisher

	// App names the application in record sources.
	App string

	// NumWorkers is the number of background workers in the pool (defaults to 3).
	NumWorkers uint

	// QueueSize is the capacity of each worker's record channel (defaults to 256).
	QueueSize uint

	// PublishTimeout bounds a single publish call (defaults to 5s).
	PublishTimeout time.Duration

	Logger *slog.Logger
}

// Pool publishes stream event records asynchronously.
type Pool struct {
	config *Config
	queues []chan *eventstream.StreamEventRecord
	wg     sync.WaitGroup
	logger *slog.Logger

	mu     sync.RWMutex
	closed bool

	now func() time.Time
}

// NewPool creates a new Pool and starts its worker goroutines.
func NewPool(c *Config) (*Pool, error) {
	if c.Publisher == nil {
		return nil, fmt.Errorf("tap pool requires a publisher")
	}

	if c.NumWorkers == 0 {
		c.NumWorkers = defaultNumWorkers
	}

	if c.QueueSize == 0 {
		c.QueueSize = defaultJobQueueSize
	}

	if c.PublishTimeout <= 0 {
		c.PublishTimeout = defaultPublishWait
	}

	if c.NumWorkers > uint(math.MaxInt) {
		return nil, fmt.Errorf("NumWorkers %d exceeds max int", c.NumWorkers)
	}

	p := &Pool{
		config: c,
		queues: make([]chan *eventstream.StreamEventRecord, c.NumWorkers),
		logger: logger.OrNop(c.Logger).With("component", "tap"),
		now:    time.Now,
	}

	p.wg.Add(int(c.NumWorkers))
	for i := range p.queues {
		p.queues[i] = make(chan *eventstream.StreamEventRecord, c.QueueSize)
		go p.worker(i, p.queues[i])
	}

	return p, nil
}

// Enqueue submits a record for publishing on the queue of its task.
// Returns true if enqueued, false if that queue is full or the pool is
// closed, resulting in the record being dropped.
func (p *Pool) Enqueue(record *eventstream.StreamEventRecord) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		p.logger.Warn("record not queued, tap closed", "kind", record.Kind, "event_id", record.EventID)
		return false
	}

	select {
	case p.queues[p.shard(record.TaskID)] <- record:
		p.logger.Debug("record queued", "kind", record.Kind, "task_id", record.TaskID)
		return true
	default:
		p.logger.Error("record not queued, queue full, record dropped",
			"kind", record.Kind,
			"task_id", record.TaskID,
		)
		return false
	}
}

// Observer returns a dispatch.Observer that enqueues a record for every
// delivered event of a stream started at endpoint. Heartbeats are skipped.
func (p *Pool) Observer(endpoint string) dispatch.Observer {
	return dispatch.ObserverFunc(func(_ context.Context, family dispatch.Family, ev event.Event) {
		if ev.Kind() == event.KindPing {
			return
		}

		source := eventstream.EventSource{
			App:      p.config.App,
			Family:   family.String(),
			Endpoint: endpoint,
		}
		record, err := eventstream.NewStreamEventRecord(source, ev, p.now())
		if err != nil {
			p.logger.Error("could not build stream event record", "kind", ev.Kind(), "error", err)
			return
		}
		p.Enqueue(record)
	})
}

// Close stops accepting records, waits for queued records to be published
// and then closes the publisher.
func (p *Pool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	for _, q := range p.queues {
		close(q)
	}
	p.mu.Unlock()

	p.wg.Wait()
	return p.config.Publisher.Close()
}

// shard picks the worker queue for a task. Records without a task id all
// land on the same queue.
func (p *Pool) shard(taskID string) int {
	if len(p.queues) == 1 {
		return 0
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(taskID))
	return int(h.Sum32() % uint32(len(p.queues)))
}

// worker publishes the records of its own queue one at a time
func (p *Pool) worker(id int, queue <-chan *eventstream.StreamEventRecord) {
	defer p.wg.Done()
	p.logger.Debug("tap worker started", "worker_id", id)

	for record := range queue {
		p.publish(record)
	}

	p.logger.Debug("tap worker stopped", "worker_id", id)
}

func (p *Pool) publish(record *eventstream.StreamEventRecord) {
	ctx, cancel := context.WithTimeout(context.Background(), p.config.PublishTimeout)
	defer cancel()

	if err := p.config.Publisher.PublishEvent(ctx, record); err != nil {
		p.logger.Error("publishing stream event failed",
			"kind", record.Kind,
			"event_id", record.EventID,
			"error", err,
		)
		return
	}

	p.logger.Debug("stream event published", "kind", record.Kind, "event_id", record.EventID)
}
