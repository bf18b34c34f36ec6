package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/papercomputeco/dify/pkg/event"
	"github.com/papercomputeco/dify/pkg/sse"
)

// Events returns a pull-style view of a stream. Each decoded event is
// yielded with a nil error; heartbeats are yielded as *event.Ping. A frame
// that fails to decode is yielded as a nil event and its *event.DecodeError,
// and iteration continues. Iteration stops at the done sentinel or EOF, and
// after yielding a transport or context error. A nil decoder uses
// event.Decode.
func Events(ctx context.Context, src LineSource, decoder *event.Decoder) iter.Seq2[event.Event, error] {
	if decoder == nil {
		decoder = event.NewDecoder()
	}

	return func(yield func(event.Event, error) bool) {
		for {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}

			line, err := src.Next()
			if err != nil {
				switch {
				case errors.Is(err, io.EOF):
				case ctx.Err() != nil:
					yield(nil, ctx.Err())
				default:
					yield(nil, fmt.Errorf("reading event stream: %w", err))
				}
				return
			}

			frame := sse.Classify(line)
			switch frame.Type {
			case sse.FrameData:
				if !yield(decoder.Decode([]byte(frame.Payload))) {
					return
				}
			case sse.FrameHeartbeat:
				if !yield(&event.Ping{}, nil) {
					return
				}
			case sse.FrameEnd:
				return
			case sse.FrameIgnorable:
			}
		}
	}
}
