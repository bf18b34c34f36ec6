package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/papercomputeco/dify/pkg/event"
	"github.com/papercomputeco/dify/pkg/logger"
)

// Observer is notified of every event a Router is about to hand to its
// handler set. Observers must not block; they cannot affect delivery.
type Observer interface {
	Observe(ctx context.Context, family Family, ev event.Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, family Family, ev event.Event)

func (f ObserverFunc) Observe(ctx context.Context, family Family, ev event.Event) {
	f(ctx, family, ev)
}

// Option configures a Router.
type Option func(*options)

type options struct {
	logger    *slog.Logger
	observer  Observer
	unmarshal event.UnmarshalFunc
}

// WithLogger sets the logger used for dropped and failed frames.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithObserver attaches an Observer.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}

// WithUnmarshal replaces encoding/json for decoding frame payloads.
func WithUnmarshal(fn event.UnmarshalFunc) Option {
	return func(o *options) {
		o.unmarshal = fn
	}
}

// route delivers ev to one handler method if ev is of a kind it knows.
type route func(ctx context.Context, ev event.Event) (handled bool, err error)

// Router decodes frame payloads and delivers each event to exactly one
// handler method. A Router is driven by a single goroutine and serves one
// stream.
type Router struct {
	family   Family
	decoder  *event.Decoder
	hooks    Hooks
	routes   []route
	logger   *slog.Logger
	observer Observer

	// terminated latches after the first Complete or Fail.
	terminated bool
}

func newRouter(family Family, hooks Hooks, routes []route, opts []Option) *Router {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	decoderOpts := []event.DecoderOption{event.WithUnmarshal(o.unmarshal)}
	if family == FamilyCompletion {
		decoderOpts = append(decoderOpts, event.WithFallback(event.KindMessage))
	}

	return &Router{
		family:   family,
		decoder:  event.NewDecoder(decoderOpts...),
		hooks:    hooks,
		routes:   routes,
		logger:   logger.OrNop(o.logger).With("family", family.String()),
		observer: o.observer,
	}
}

// NewChatRouter routes chat streams to h.
func NewChatRouter(h ChatHandler, opts ...Option) *Router {
	return newRouter(FamilyChat, h, []route{
		controlRoute(h),
		messageRoute(h),
	}, opts)
}

// NewChatflowRouter routes chatflow streams to h.
func NewChatflowRouter(h ChatflowHandler, opts ...Option) *Router {
	return newRouter(FamilyChatflow, h, []route{
		controlRoute(h),
		messageRoute(h),
		workflowRoute(h),
	}, opts)
}

// NewCompletionRouter routes completion streams to h. Payloads with a
// missing or unrecognized kind are delivered as messages.
func NewCompletionRouter(h CompletionHandler, opts ...Option) *Router {
	return newRouter(FamilyCompletion, h, []route{
		controlRoute(h),
		completionRoute(h),
	}, opts)
}

// NewWorkflowRouter routes workflow streams to h.
func NewWorkflowRouter(h WorkflowHandler, opts ...Option) *Router {
	return newRouter(FamilyWorkflow, h, []route{
		controlRoute(h),
		ttsRoute(h),
		workflowRoute(h),
	}, opts)
}

// Family returns the family the Router was built for.
func (r *Router) Family() Family {
	return r.family
}

// Dispatch decodes payload and delivers the result. Unrecognized kinds are
// dropped; any other decode failure goes to OnException.
func (r *Router) Dispatch(ctx context.Context, payload string) {
	ev, err := r.decoder.Decode([]byte(payload))
	if err != nil {
		if errors.Is(err, event.ErrUnknownKind) || errors.Is(err, event.ErrMissingKind) {
			r.logger.Debug("dropping stream event with unrecognized kind", "error", err)
			return
		}
		r.logger.Warn("could not decode stream event", "error", err)
		r.exception(ctx, err)
		return
	}

	r.Deliver(ctx, ev)
}

// Heartbeat delivers a ping for a heartbeat line.
func (r *Router) Heartbeat(ctx context.Context) {
	r.Deliver(ctx, &event.Ping{})
}

// Deliver hands an already decoded event to its handler. Kinds outside the
// Router's family are dropped. Handler errors and panics are reported to
// OnException as a *HandlerError.
func (r *Router) Deliver(ctx context.Context, ev event.Event) {
	kind := ev.Kind()
	if !r.family.Supports(kind) {
		r.logger.Debug("dropping stream event outside family", "kind", kind)
		return
	}

	r.observe(ctx, ev)

	if err := r.invoke(ctx, ev); err != nil {
		r.logger.Error("stream event handler failed", "kind", kind, "error", err)
		r.exception(ctx, &HandlerError{Kind: kind, Err: err})
	}
}

// Complete calls OnComplete. Only the first of Complete and Fail reaches
// the handler; later calls are logged and dropped.
func (r *Router) Complete(ctx context.Context) {
	if !r.terminate("complete") {
		return
	}
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("OnComplete panicked", "panic", p)
		}
	}()
	r.hooks.OnComplete(ctx)
}

// Fail reports err to OnException unless the stream already terminated.
func (r *Router) Fail(ctx context.Context, err error) {
	if !r.terminate("fail") {
		r.logger.Debug("dropping failure after termination", "error", err)
		return
	}
	r.exception(ctx, err)
}

func (r *Router) terminate(signal string) bool {
	if r.terminated {
		r.logger.Debug("stream already terminated", "signal", signal)
		return false
	}
	r.terminated = true
	return true
}

func (r *Router) invoke(ctx context.Context, ev event.Event) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", ErrHandlerPanic, p)
		}
	}()

	for _, rt := range r.routes {
		if handled, err := rt(ctx, ev); handled {
			return err
		}
	}
	return nil
}

func (r *Router) exception(ctx context.Context, err error) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("OnException panicked", "panic", p, "error", err)
		}
	}()
	r.hooks.OnException(ctx, err)
}

func (r *Router) observe(ctx context.Context, ev event.Event) {
	if r.observer == nil {
		return
	}
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("stream observer panicked", "panic", p, "kind", ev.Kind())
		}
	}()
	r.observer.Observe(ctx, r.family, ev)
}

func controlRoute(h ControlHandler) route {
	return func(ctx context.Context, ev event.Event) (bool, error) {
		switch e := ev.(type) {
		case *event.Ping:
			return true, h.OnPing(ctx, e)
		case *event.Error:
			return true, h.OnError(ctx, e)
		}
		return false, nil
	}
}

func ttsRoute(h TTSHandler) route {
	return func(ctx context.Context, ev event.Event) (bool, error) {
		switch e := ev.(type) {
		case *event.TTSMessage:
			return true, h.OnTTSMessage(ctx, e)
		case *event.TTSMessageEnd:
			return true, h.OnTTSMessageEnd(ctx, e)
		}
		return false, nil
	}
}

func completionRoute(h CompletionMessageHandler) route {
	tts := ttsRoute(h)
	return func(ctx context.Context, ev event.Event) (bool, error) {
		switch e := ev.(type) {
		case *event.Message:
			return true, h.OnMessage(ctx, e)
		case *event.MessageEnd:
			return true, h.OnMessageEnd(ctx, e)
		case *event.MessageReplace:
			return true, h.OnMessageReplace(ctx, e)
		}
		return tts(ctx, ev)
	}
}

func messageRoute(h MessageHandler) route {
	completion := completionRoute(h)
	return func(ctx context.Context, ev event.Event) (bool, error) {
		switch e := ev.(type) {
		case *event.MessageFile:
			return true, h.OnMessageFile(ctx, e)
		case *event.AgentMessage:
			return true, h.OnAgentMessage(ctx, e)
		case *event.AgentThought:
			return true, h.OnAgentThought(ctx, e)
		}
		return completion(ctx, ev)
	}
}

func workflowRoute(h WorkflowEventHandler) route {
	return func(ctx context.Context, ev event.Event) (bool, error) {
		switch e := ev.(type) {
		case *event.WorkflowStarted:
			return true, h.OnWorkflowStarted(ctx, e)
		case *event.NodeStarted:
			return true, h.OnNodeStarted(ctx, e)
		case *event.NodeFinished:
			return true, h.OnNodeFinished(ctx, e)
		case *event.WorkflowFinished:
			return true, h.OnWorkflowFinished(ctx, e)
		case *event.IterationStarted:
			return true, h.OnIterationStarted(ctx, e)
		case *event.IterationNext:
			return true, h.OnIterationNext(ctx, e)
		case *event.IterationCompleted:
			return true, h.OnIterationCompleted(ctx, e)
		case *event.LoopStarted:
			return true, h.OnLoopStarted(ctx, e)
		case *event.LoopNext:
			return true, h.OnLoopNext(ctx, e)
		case *event.LoopCompleted:
			return true, h.OnLoopCompleted(ctx, e)
		case *event.AgentLog:
			return true, h.OnAgentLog(ctx, e)
		case *event.TextChunk:
			return true, h.OnTextChunk(ctx, e)
		}
		return false, nil
	}
}
