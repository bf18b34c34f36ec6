// Package dispatch routes decoded stream events to caller-supplied handler
// sets. Each streaming endpoint family accepts a different subset of event
// kinds; a Router enforces that subset and isolates handler failures so a
// single bad frame never ends a stream.
package dispatch

import (
	"context"

	"github.com/papercomputeco/dify/pkg/event"
)

// Hooks are the two terminal callbacks every handler set must implement.
// They have no default: a stream consumer always decides what completion
// and failure mean.
type Hooks interface {
	// OnException receives decode failures, handler failures and transport
	// failures. It is called once per failure and never stops the stream by
	// itself.
	OnException(ctx context.Context, err error)

	// OnComplete is called once when the stream ends cleanly.
	OnComplete(ctx context.Context)
}

// ControlHandler receives out-of-band events accepted by every family.
type ControlHandler interface {
	OnPing(ctx context.Context, ev *event.Ping) error
	OnError(ctx context.Context, ev *event.Error) error
}

// TTSHandler receives synthesized speech chunks.
type TTSHandler interface {
	OnTTSMessage(ctx context.Context, ev *event.TTSMessage) error
	OnTTSMessageEnd(ctx context.Context, ev *event.TTSMessageEnd) error
}

// CompletionMessageHandler receives the message kinds a completion stream
// can carry.
type CompletionMessageHandler interface {
	TTSHandler
	OnMessage(ctx context.Context, ev *event.Message) error
	OnMessageEnd(ctx context.Context, ev *event.MessageEnd) error
	OnMessageReplace(ctx context.Context, ev *event.MessageReplace) error
}

// MessageHandler receives every conversational kind.
type MessageHandler interface {
	CompletionMessageHandler
	OnMessageFile(ctx context.Context, ev *event.MessageFile) error
	OnAgentMessage(ctx context.Context, ev *event.AgentMessage) error
	OnAgentThought(ctx context.Context, ev *event.AgentThought) error
}

// WorkflowEventHandler receives workflow execution progress.
type WorkflowEventHandler interface {
	OnWorkflowStarted(ctx context.Context, ev *event.WorkflowStarted) error
	OnNodeStarted(ctx context.Context, ev *event.NodeStarted) error
	OnNodeFinished(ctx context.Context, ev *event.NodeFinished) error
	OnWorkflowFinished(ctx context.Context, ev *event.WorkflowFinished) error
	OnIterationStarted(ctx context.Context, ev *event.IterationStarted) error
	OnIterationNext(ctx context.Context, ev *event.IterationNext) error
	OnIterationCompleted(ctx context.Context, ev *event.IterationCompleted) error
	OnLoopStarted(ctx context.Context, ev *event.LoopStarted) error
	OnLoopNext(ctx context.Context, ev *event.LoopNext) error
	OnLoopCompleted(ctx context.Context, ev *event.LoopCompleted) error
	OnAgentLog(ctx context.Context, ev *event.AgentLog) error
	OnTextChunk(ctx context.Context, ev *event.TextChunk) error
}

// ChatHandler is the handler set for chat application streams.
type ChatHandler interface {
	Hooks
	ControlHandler
	MessageHandler
}

// ChatflowHandler is the handler set for chat applications backed by a
// workflow, which interleave message and workflow events.
type ChatflowHandler interface {
	ChatHandler
	WorkflowEventHandler
}

// CompletionHandler is the handler set for text completion streams.
type CompletionHandler interface {
	Hooks
	ControlHandler
	CompletionMessageHandler
}

// WorkflowHandler is the handler set for workflow application streams.
type WorkflowHandler interface {
	Hooks
	ControlHandler
	TTSHandler
	WorkflowEventHandler
}
