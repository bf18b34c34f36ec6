package dispatch

import (
	"context"

	"github.com/papercomputeco/dify/pkg/event"
)

// The Nop types give every event method a do-nothing default. Embed the one
// matching your family and override only what you need; Hooks must still be
// implemented.
//
//	type printer struct{ dispatch.NopChat }
//
//	func (printer) OnMessage(_ context.Context, ev *event.Message) error { ... }
//	func (printer) OnException(context.Context, error)                   { ... }
//	func (printer) OnComplete(context.Context)                           { ... }

// NopControl ignores ping and error events.
type NopControl struct{}

func (NopControl) OnPing(context.Context, *event.Ping) error   { return nil }
func (NopControl) OnError(context.Context, *event.Error) error { return nil }

// NopTTS ignores speech chunks.
type NopTTS struct{}

func (NopTTS) OnTTSMessage(context.Context, *event.TTSMessage) error       { return nil }
func (NopTTS) OnTTSMessageEnd(context.Context, *event.TTSMessageEnd) error { return nil }

// NopMessages ignores every conversational kind.
type NopMessages struct {
	NopTTS
}

func (NopMessages) OnMessage(context.Context, *event.Message) error               { return nil }
func (NopMessages) OnMessageEnd(context.Context, *event.MessageEnd) error         { return nil }
func (NopMessages) OnMessageReplace(context.Context, *event.MessageReplace) error { return nil }
func (NopMessages) OnMessageFile(context.Context, *event.MessageFile) error       { return nil }
func (NopMessages) OnAgentMessage(context.Context, *event.AgentMessage) error     { return nil }
func (NopMessages) OnAgentThought(context.Context, *event.AgentThought) error     { return nil }

// NopWorkflowEvents ignores workflow progress.
type NopWorkflowEvents struct{}

func (NopWorkflowEvents) OnWorkflowStarted(context.Context, *event.WorkflowStarted) error { return nil }
func (NopWorkflowEvents) OnNodeStarted(context.Context, *event.NodeStarted) error         { return nil }
func (NopWorkflowEvents) OnNodeFinished(context.Context, *event.NodeFinished) error       { return nil }
func (NopWorkflowEvents) OnWorkflowFinished(context.Context, *event.WorkflowFinished) error {
	return nil
}
func (NopWorkflowEvents) OnIterationStarted(context.Context, *event.IterationStarted) error {
	return nil
}
func (NopWorkflowEvents) OnIterationNext(context.Context, *event.IterationNext) error { return nil }
func (NopWorkflowEvents) OnIterationCompleted(context.Context, *event.IterationCompleted) error {
	return nil
}
func (NopWorkflowEvents) OnLoopStarted(context.Context, *event.LoopStarted) error     { return nil }
func (NopWorkflowEvents) OnLoopNext(context.Context, *event.LoopNext) error           { return nil }
func (NopWorkflowEvents) OnLoopCompleted(context.Context, *event.LoopCompleted) error { return nil }
func (NopWorkflowEvents) OnAgentLog(context.Context, *event.AgentLog) error           { return nil }
func (NopWorkflowEvents) OnTextChunk(context.Context, *event.TextChunk) error         { return nil }

// NopChat provides every ChatHandler method except the hooks.
type NopChat struct {
	NopControl
	NopMessages
}

// NopChatflow provides every ChatflowHandler method except the hooks.
type NopChatflow struct {
	NopControl
	NopMessages
	NopWorkflowEvents
}

// NopCompletion provides every CompletionHandler method except the hooks.
type NopCompletion struct {
	NopControl
	NopMessages
}

// NopWorkflow provides every WorkflowHandler method except the hooks.
type NopWorkflow struct {
	NopControl
	NopTTS
	NopWorkflowEvents
}
