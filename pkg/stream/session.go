// Package stream drives one streaming response from its first line to its
// terminal signal.
package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/papercomputeco/dify/pkg/logger"
	"github.com/papercomputeco/dify/pkg/sse"
)

// ErrSessionReused is returned by Run when the session already ran.
var ErrSessionReused = errors.New("stream session already ran")

// LineSource yields the lines of an open response body. Next returns io.EOF
// once the body is exhausted.
type LineSource interface {
	Next() (string, error)
}

// Sink receives the classified frames of a session. *dispatch.Router
// implements it.
type Sink interface {
	Dispatch(ctx context.Context, payload string)
	Heartbeat(ctx context.Context)
	Complete(ctx context.Context)
	Fail(ctx context.Context, err error)
}

// State is the lifecycle position of a Session.
type State int

const (
	StateIdle State = iota
	StateOpen
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateOpen:
		return "open"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Option configures a Session.
type Option func(*Session)

// WithSilentEOF ends the session without calling Complete when the body
// ends before a done sentinel arrives. By default EOF counts as completion.
func WithSilentEOF() Option {
	return func(s *Session) {
		s.silentEOF = true
	}
}

// WithLogger sets the logger for state transitions.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger.OrNop(l)
	}
}

// Session reads lines from a LineSource and forwards frames to a Sink
// until the stream terminates. Exactly one of Complete or Fail is called
// on the Sink for a terminal condition, except for a silent EOF. A Session
// is single use and not safe for concurrent use.
type Session struct {
	src       LineSource
	sink      Sink
	state     State
	silentEOF bool
	logger    *slog.Logger
}

// NewSession creates an idle Session.
func NewSession(src LineSource, sink Sink, opts ...Option) *Session {
	s := &Session{
		src:    src,
		sink:   sink,
		state:  StateIdle,
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Run blocks until the stream terminates. Lines are handled strictly in
// order on the calling goroutine. Terminal outcomes are reported through
// the Sink; Run itself only fails when the session was already used.
func (s *Session) Run(ctx context.Context) error {
	if s.state != StateIdle {
		return ErrSessionReused
	}

	for {
		if err := ctx.Err(); err != nil {
			s.fail(ctx, err)
			return nil
		}

		line, err := s.src.Next()
		if s.state == StateIdle {
			s.transition(StateOpen)
		}

		if err != nil {
			switch {
			case errors.Is(err, io.EOF):
				s.transition(StateTerminated)
				if !s.silentEOF {
					s.sink.Complete(ctx)
				}
			case ctx.Err() != nil:
				s.fail(ctx, ctx.Err())
			default:
				s.fail(ctx, fmt.Errorf("reading event stream: %w", err))
			}
			return nil
		}

		frame := sse.Classify(line)
		switch frame.Type {
		case sse.FrameData:
			s.sink.Dispatch(ctx, frame.Payload)
		case sse.FrameHeartbeat:
			s.sink.Heartbeat(ctx)
		case sse.FrameEnd:
			s.transition(StateTerminated)
			s.sink.Complete(ctx)
			return nil
		case sse.FrameIgnorable:
		}
	}
}

func (s *Session) fail(ctx context.Context, err error) {
	s.transition(StateTerminated)
	s.sink.Fail(ctx, err)
}

func (s *Session) transition(to State) {
	s.logger.Debug("stream session state change", "from", s.state.String(), "to", to.String())
	s.state = to
}
