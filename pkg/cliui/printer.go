package cliui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/papercomputeco/dify/pkg/dispatch"
	"github.com/papercomputeco/dify/pkg/event"
)

// ErrStreamIncomplete is returned by Printer.Err when the stream ended
// without completing and without reporting an error.
var ErrStreamIncomplete = errors.New("stream ended before completion")

// PrinterOptions configures a Printer.
type PrinterOptions struct {
	// Markdown buffers the answer and renders it with glamour on completion
	// instead of writing chunks as they arrive.
	Markdown bool

	// Progress writes workflow node and agent thought lines to the
	// diagnostic writer.
	Progress bool

	// Width is the wrap width for markdown rendering.
	Width int
}

// Printer is a stream handler for every dispatch family that writes the
// answer to out and progress to diag. It remembers the identifiers a
// caller needs to continue or stop the conversation.
type Printer struct {
	dispatch.NopChatflow

	out  io.Writer
	diag io.Writer
	opts PrinterOptions

	mu        sync.Mutex
	answer    strings.Builder
	wrote     bool
	completed bool
	err       error

	ConversationID string
	MessageID      string
	TaskID         string
	WorkflowRunID  string
	Usage          *event.Usage
	Outputs        map[string]any
}

var (
	_ dispatch.ChatHandler       = (*Printer)(nil)
	_ dispatch.ChatflowHandler   = (*Printer)(nil)
	_ dispatch.CompletionHandler = (*Printer)(nil)
	_ dispatch.WorkflowHandler   = (*Printer)(nil)
)

// NewPrinter creates a Printer.
func NewPrinter(out, diag io.Writer, opts PrinterOptions) *Printer {
	return &Printer{out: out, diag: diag, opts: opts}
}

// Answer returns the text streamed so far.
func (p *Printer) Answer() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.answer.String()
}

// Err reports how the stream ended: nil after a clean completion, the
// platform error or failed workflow status when one arrived, the transport
// failure, or ErrStreamIncomplete.
func (p *Printer) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	if !p.completed {
		return ErrStreamIncomplete
	}
	return nil
}

func (p *Printer) write(text string) {
	p.answer.WriteString(text)
	if p.opts.Markdown || text == "" {
		return
	}
	p.wrote = true
	fmt.Fprint(p.out, text)
}

func (p *Printer) progress(format string, args ...any) {
	if !p.opts.Progress {
		return
	}
	fmt.Fprintf(p.diag, "  "+format+"\n", args...)
}

func (p *Printer) trackMessage(env event.MessageEnvelope) {
	if env.ConversationID != "" {
		p.ConversationID = env.ConversationID
	}
	if env.MessageID != "" {
		p.MessageID = env.MessageID
	}
	if env.TaskID != "" {
		p.TaskID = env.TaskID
	}
}

func (p *Printer) trackWorkflow(env event.WorkflowEnvelope) {
	if env.WorkflowRunID != "" {
		p.WorkflowRunID = env.WorkflowRunID
	}
	if env.ConversationID != "" {
		p.ConversationID = env.ConversationID
	}
	if env.TaskID != "" {
		p.TaskID = env.TaskID
	}
}

func (p *Printer) OnException(_ context.Context, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var decodeErr *event.DecodeError
	var handlerErr *dispatch.HandlerError
	if errors.As(err, &decodeErr) || errors.As(err, &handlerErr) {
		fmt.Fprintf(p.diag, "  %s %v\n", WarnMark, err)
		return
	}
	p.err = err
}

func (p *Printer) OnComplete(context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.completed = true
	switch {
	case p.opts.Markdown && p.answer.Len() > 0:
		rendered, err := RenderMarkdown(p.answer.String(), p.opts.Width)
		if err != nil {
			fmt.Fprintf(p.diag, "  %s rendering markdown: %v\n", WarnMark, err)
		}
		fmt.Fprint(p.out, rendered)
	case p.wrote:
		fmt.Fprintln(p.out)
	}
}

func (p *Printer) OnError(_ context.Context, ev *event.Error) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if ev.TaskID != "" {
		p.TaskID = ev.TaskID
	}
	p.err = fmt.Errorf("dify stream error: status %d: %s: %s", ev.Status, ev.Code, ev.Message)
	return nil
}

func (p *Printer) OnMessage(_ context.Context, ev *event.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.trackMessage(ev.MessageEnvelope)
	p.write(ev.Answer)
	return nil
}

func (p *Printer) OnAgentMessage(_ context.Context, ev *event.AgentMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.trackMessage(ev.MessageEnvelope)
	p.write(ev.Answer)
	return nil
}

func (p *Printer) OnMessageReplace(_ context.Context, ev *event.MessageReplace) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.answer.Reset()
	if !p.opts.Markdown {
		fmt.Fprintf(p.diag, "\n  %s answer replaced by moderation\n", WarnMark)
	}
	p.write(ev.Answer)
	return nil
}

func (p *Printer) OnMessageEnd(_ context.Context, ev *event.MessageEnd) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.trackMessage(ev.MessageEnvelope)
	if ev.Metadata.Usage != nil {
		p.Usage = ev.Metadata.Usage
	}
	return nil
}

func (p *Printer) OnMessageFile(_ context.Context, ev *event.MessageFile) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.trackMessage(ev.MessageEnvelope)
	p.progress("%s %s %s", DimStyle.Render("file"), ev.Type, ev.URL)
	return nil
}

func (p *Printer) OnAgentThought(_ context.Context, ev *event.AgentThought) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.trackMessage(ev.MessageEnvelope)
	if ev.Tool != "" {
		p.progress("%s %s", DimStyle.Render("tool"), NameStyle.Render(ev.Tool))
	}
	if ev.Thought != "" {
		p.progress("%s %s", DimStyle.Render("thought"), ev.Thought)
	}
	return nil
}

func (p *Printer) OnWorkflowStarted(_ context.Context, ev *event.WorkflowStarted) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.trackWorkflow(ev.WorkflowEnvelope)
	p.progress("%s workflow run %s %s", DimStyle.Render("▶"), IDStyle.Render(p.WorkflowRunID),
		DimStyle.Render("(task "+p.TaskID+")"))
	return nil
}

func (p *Printer) OnNodeStarted(_ context.Context, ev *event.NodeStarted) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.progress("%s %s", DimStyle.Render("…"), nodeName(ev.Data.Title, ev.Data.NodeID))
	return nil
}

func (p *Printer) OnNodeFinished(_ context.Context, ev *event.NodeFinished) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var err error
	if ev.Data.Status == "failed" {
		err = errors.New(ev.Data.Error)
	}
	elapsed := time.Duration(ev.Data.ElapsedTime * float64(time.Second))
	p.progress("%s %s %s", Mark(err), nodeName(ev.Data.Title, ev.Data.NodeID),
		StepStyle.Render(fmt.Sprintf("(%s)", FormatDuration(elapsed))))
	return nil
}

func (p *Printer) OnWorkflowFinished(_ context.Context, ev *event.WorkflowFinished) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.trackWorkflow(ev.WorkflowEnvelope)
	p.Outputs = ev.Data.Outputs
	switch ev.Data.Status {
	case "failed", "stopped":
		p.err = fmt.Errorf("workflow %s: %s", ev.Data.Status, ev.Data.Error)
	}
	return nil
}

func (p *Printer) OnTextChunk(_ context.Context, ev *event.TextChunk) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.trackWorkflow(ev.WorkflowEnvelope)
	p.write(ev.Data.Text)
	return nil
}

func nodeName(title, id string) string {
	if title != "" {
		return title
	}
	return id
}
