package dispatch_test

import (
	"context"

	"github.com/papercomputeco/dify/pkg/dispatch"
	"github.com/papercomputeco/dify/pkg/event"
)

// call is one recorded handler invocation.
type call struct {
	method string
	event  event.Event
}

// recorder implements every handler set and records each call in order.
// failOn makes the named method return failWith; panicOn makes it panic.
type recorder struct {
	calls      []call
	exceptions []error
	completed  int

	failOn   string
	failWith error
	panicOn  string
}

var (
	_ dispatch.ChatHandler       = (*recorder)(nil)
	_ dispatch.ChatflowHandler   = (*recorder)(nil)
	_ dispatch.CompletionHandler = (*recorder)(nil)
	_ dispatch.WorkflowHandler   = (*recorder)(nil)
)

func (r *recorder) record(method string, ev event.Event) error {
	r.calls = append(r.calls, call{method: method, event: ev})
	if r.panicOn == method {
		panic("boom in " + method)
	}
	if r.failOn == method {
		return r.failWith
	}
	return nil
}

func (r *recorder) methods() []string {
	out := make([]string, 0, len(r.calls))
	for _, c := range r.calls {
		out = append(out, c.method)
	}
	return out
}

func (r *recorder) OnException(_ context.Context, err error) {
	r.exceptions = append(r.exceptions, err)
}
func (r *recorder) OnComplete(context.Context) { r.completed++ }

func (r *recorder) OnPing(_ context.Context, ev *event.Ping) error   { return r.record("OnPing", ev) }
func (r *recorder) OnError(_ context.Context, ev *event.Error) error { return r.record("OnError", ev) }

func (r *recorder) OnTTSMessage(_ context.Context, ev *event.TTSMessage) error {
	return r.record("OnTTSMessage", ev)
}

func (r *recorder) OnTTSMessageEnd(_ context.Context, ev *event.TTSMessageEnd) error {
	return r.record("OnTTSMessageEnd", ev)
}

func (r *recorder) OnMessage(_ context.Context, ev *event.Message) error {
	return r.record("OnMessage", ev)
}

func (r *recorder) OnMessageEnd(_ context.Context, ev *event.MessageEnd) error {
	return r.record("OnMessageEnd", ev)
}

func (r *recorder) OnMessageReplace(_ context.Context, ev *event.MessageReplace) error {
	return r.record("OnMessageReplace", ev)
}

func (r *recorder) OnMessageFile(_ context.Context, ev *event.MessageFile) error {
	return r.record("OnMessageFile", ev)
}

func (r *recorder) OnAgentMessage(_ context.Context, ev *event.AgentMessage) error {
	return r.record("OnAgentMessage", ev)
}

func (r *recorder) OnAgentThought(_ context.Context, ev *event.AgentThought) error {
	return r.record("OnAgentThought", ev)
}

func (r *recorder) OnWorkflowStarted(_ context.Context, ev *event.WorkflowStarted) error {
	return r.record("OnWorkflowStarted", ev)
}

func (r *recorder) OnNodeStarted(_ context.Context, ev *event.NodeStarted) error {
	return r.record("OnNodeStarted", ev)
}

func (r *recorder) OnNodeFinished(_ context.Context, ev *event.NodeFinished) error {
	return r.record("OnNodeFinished", ev)
}

func (r *recorder) OnWorkflowFinished(_ context.Context, ev *event.WorkflowFinished) error {
	return r.record("OnWorkflowFinished", ev)
}

func (r *recorder) OnIterationStarted(_ context.Context, ev *event.IterationStarted) error {
	return r.record("OnIterationStarted", ev)
}

func (r *recorder) OnIterationNext(_ context.Context, ev *event.IterationNext) error {
	return r.record("OnIterationNext", ev)
}

func (r *recorder) OnIterationCompleted(_ context.Context, ev *event.IterationCompleted) error {
	return r.record("OnIterationCompleted", ev)
}

func (r *recorder) OnLoopStarted(_ context.Context, ev *event.LoopStarted) error {
	return r.record("OnLoopStarted", ev)
}

func (r *recorder) OnLoopNext(_ context.Context, ev *event.LoopNext) error {
	return r.record("OnLoopNext", ev)
}

func (r *recorder) OnLoopCompleted(_ context.Context, ev *event.LoopCompleted) error {
	return r.record("OnLoopCompleted", ev)
}

func (r *recorder) OnAgentLog(_ context.Context, ev *event.AgentLog) error {
	return r.record("OnAgentLog", ev)
}

func (r *recorder) OnTextChunk(_ context.Context, ev *event.TextChunk) error {
	return r.record("OnTextChunk", ev)
}
