// Package sse extracts frames from the line-oriented event stream a Dify
// server writes on streaming endpoints. Only the subset of Server-Sent
// Events the server actually emits is recognized: "data:" lines carrying a
// JSON payload, the "event: ping" heartbeat and the "[DONE]" sentinel.
//
// See the SSE specification:
// https://html.spec.whatwg.org/multipage/server-sent-events.html
package sse

import "strings"

const (
	// DataPrefix introduces a line carrying a frame payload.
	DataPrefix = "data:"

	// HeartbeatLine is the keep-alive line, compared case-insensitively.
	HeartbeatLine = "event: ping"

	// DoneSentinel is the payload some server versions send to close a stream.
	DoneSentinel = "[DONE]"
)

// FrameType classifies a single line of the stream.
type FrameType int

const (
	// FrameIgnorable is a blank line, a comment, or any field this client
	// has no use for ("id:", "retry:", other "event:" lines).
	FrameIgnorable FrameType = iota

	// FrameHeartbeat is the keep-alive line.
	FrameHeartbeat

	// FrameData carries a JSON payload for the event decoder.
	FrameData

	// FrameEnd is a data line whose payload is the done sentinel.
	FrameEnd
)

func (t FrameType) String() string {
	switch t {
	case FrameHeartbeat:
		return "heartbeat"
	case FrameData:
		return "data"
	case FrameEnd:
		return "end"
	default:
		return "ignorable"
	}
}

// Frame is the classification of one line.
type Frame struct {
	Type FrameType

	// Payload is the text after DataPrefix with surrounding whitespace
	// trimmed. It is only set for FrameData and FrameEnd.
	Payload string
}

// Classify maps a raw line to exactly one frame type. It never fails: any
// line it does not recognize is ignorable.
func Classify(line string) Frame {
	if payload, ok := strings.CutPrefix(line, DataPrefix); ok {
		payload = strings.TrimSpace(payload)
		if payload == DoneSentinel {
			return Frame{Type: FrameEnd, Payload: payload}
		}
		return Frame{Type: FrameData, Payload: payload}
	}

	if strings.EqualFold(strings.TrimSpace(line), HeartbeatLine) {
		return Frame{Type: FrameHeartbeat}
	}

	return Frame{Type: FrameIgnorable}
}
