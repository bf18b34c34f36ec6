package stream_test

import (
	"context"
	"errors"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/dify/pkg/dispatch"
	"github.com/papercomputeco/dify/pkg/event"
	"github.com/papercomputeco/dify/pkg/sse"
	"github.com/papercomputeco/dify/pkg/stream"
)

var _ = Describe("Session", func() {
	var (
		ctx  context.Context
		rec  *sink
		src  *lines
		sess *stream.Session
	)

	BeforeEach(func() {
		ctx = context.Background()
		rec = &sink{}
	})

	Describe("Run", func() {
		It("starts idle", func() {
			sess = stream.NewSession(&lines{}, rec)
			Expect(sess.State()).To(Equal(stream.StateIdle))
		})

		It("forwards data frames in order and completes at EOF", func() {
			src = &lines{items: []string{`data: {"event":"message"}`, "", `data: {"event":"message_end"}`, ""}}
			sess = stream.NewSession(src, rec)

			Expect(sess.Run(ctx)).To(Succeed())
			Expect(rec.calls).To(Equal([]string{
				`data:{"event":"message"}`,
				`data:{"event":"message_end"}`,
				"complete",
			}))
			Expect(sess.State()).To(Equal(stream.StateTerminated))
		})

		It("invokes nothing for lines that are neither data nor heartbeat", func() {
			src = &lines{items: []string{": comment", "id: 7", "retry: 10", "event: message", ""}}
			sess = stream.NewSession(src, rec, stream.WithSilentEOF())

			Expect(sess.Run(ctx)).To(Succeed())
			Expect(rec.calls).To(BeEmpty())
		})

		It("stops at the done sentinel without reading further", func() {
			src = &lines{items: []string{`data: {"event":"message"}`, "data: [DONE]", `data: {"event":"late"}`}}
			sess = stream.NewSession(src, rec)

			Expect(sess.Run(ctx)).To(Succeed())
			Expect(rec.calls).To(Equal([]string{`data:{"event":"message"}`, "complete"}))
			Expect(src.items).To(HaveLen(1))
		})

		It("completes once when the sentinel is followed by EOF", func() {
			src = &lines{items: []string{"data: [DONE]", ""}}
			sess = stream.NewSession(src, rec)

			Expect(sess.Run(ctx)).To(Succeed())
			Expect(rec.calls).To(Equal([]string{"complete"}))
		})

		It("forwards heartbeats between data frames", func() {
			src = &lines{items: []string{"event: ping", `data: {"event":"message"}`, "EVENT: PING", `data: {"event":"message_end"}`}}
			sess = stream.NewSession(src, rec)

			Expect(sess.Run(ctx)).To(Succeed())
			Expect(rec.calls).To(Equal([]string{
				"heartbeat", `data:{"event":"message"}`, "heartbeat", `data:{"event":"message_end"}`, "complete",
			}))
		})

		It("completes an empty stream", func() {
			sess = stream.NewSession(&lines{}, rec)

			Expect(sess.Run(ctx)).To(Succeed())
			Expect(rec.calls).To(Equal([]string{"complete"}))
			Expect(sess.State()).To(Equal(stream.StateTerminated))
		})

		Context("with silent EOF", func() {
			It("ends without a terminal call when no sentinel arrives", func() {
				src = &lines{items: []string{`data: {"event":"message"}`}}
				sess = stream.NewSession(src, rec, stream.WithSilentEOF())

				Expect(sess.Run(ctx)).To(Succeed())
				Expect(rec.calls).To(Equal([]string{`data:{"event":"message"}`}))
				Expect(sess.State()).To(Equal(stream.StateTerminated))
			})

			It("still completes on the sentinel", func() {
				src = &lines{items: []string{"data: [DONE]"}}
				sess = stream.NewSession(src, rec, stream.WithSilentEOF())

				Expect(sess.Run(ctx)).To(Succeed())
				Expect(rec.calls).To(Equal([]string{"complete"}))
			})
		})

		Context("when the transport fails", func() {
			It("reports the failure once and terminates", func() {
				boom := errors.New("connection reset by peer")
				src = &lines{items: []string{`data: {"event":"message"}`}, err: boom}
				sess = stream.NewSession(src, rec)

				Expect(sess.Run(ctx)).To(Succeed())
				Expect(rec.calls).To(Equal([]string{`data:{"event":"message"}`, "fail"}))
				Expect(rec.errs).To(HaveLen(1))
				Expect(errors.Is(rec.errs[0], boom)).To(BeTrue())
				Expect(sess.State()).To(Equal(stream.StateTerminated))
			})
		})

		Context("when the context is cancelled", func() {
			It("fails before reading when already cancelled", func() {
				cancelled, cancel := context.WithCancel(ctx)
				cancel()
				src = &lines{items: []string{`data: {"event":"message"}`}}
				sess = stream.NewSession(src, rec)

				Expect(sess.Run(cancelled)).To(Succeed())
				Expect(src.reads).To(Equal(0))
				Expect(rec.calls).To(Equal([]string{"fail"}))
				Expect(rec.errs[0]).To(MatchError(context.Canceled))
			})

			It("reports cancellation instead of the read error it caused", func() {
				cancellable, cancel := context.WithCancel(ctx)
				defer cancel()
				src = &lines{
					items: []string{`data: {"event":"message"}`},
					err:   errors.New("read on closed body"),
					hook: func(n int) {
						if n == 2 {
							cancel()
						}
					},
				}
				sess = stream.NewSession(src, rec)

				Expect(sess.Run(cancellable)).To(Succeed())
				Expect(rec.calls).To(Equal([]string{`data:{"event":"message"}`, "fail"}))
				Expect(rec.errs[0]).To(MatchError(context.Canceled))
			})
		})

		It("refuses to run twice", func() {
			sess = stream.NewSession(&lines{}, rec)
			Expect(sess.Run(ctx)).To(Succeed())
			Expect(sess.Run(ctx)).To(MatchError(stream.ErrSessionReused))
			Expect(rec.calls).To(Equal([]string{"complete"}))
		})
	})

	Describe("with a dispatch router", func() {
		var h *handler

		BeforeEach(func() {
			h = &handler{}
		})

		run := func(router *dispatch.Router, body string, opts ...stream.Option) {
			sess := stream.NewSession(sse.NewLineReader(strings.NewReader(body)), router, opts...)
			Expect(sess.Run(ctx)).To(Succeed())
		}

		It("delivers workflow progress on a chatflow stream and then completes", func() {
			body := "data: {\"event\":\"workflow_started\",\"workflow_run_id\":\"r\",\"data\":{}}\n\n" +
				"data: {\"event\":\"node_finished\",\"workflow_run_id\":\"r\",\"data\":{\"node_id\":\"n\"}}\n\n" +
				"data: {\"event\":\"workflow_finished\",\"workflow_run_id\":\"r\",\"data\":{}}\n\n"
			run(dispatch.NewChatflowRouter(h), body)

			Expect(h.seen).To(Equal([]string{"workflow_started", "node_finished", "workflow_finished", "complete"}))
		})

		It("keeps streaming past a data line of several megabytes", func() {
			outputs := strings.Repeat("y", 2<<20)
			body := "data: {\"event\":\"workflow_finished\",\"workflow_run_id\":\"r\",\"data\":{\"outputs\":{\"text\":\"" + outputs + "\"}}}\n\n" +
				"data: {\"event\":\"message\",\"answer\":\"after\"}\n\n"
			run(dispatch.NewChatflowRouter(h), body)

			Expect(h.seen).To(Equal([]string{"workflow_finished", "message:after", "complete"}))
		})

		It("keeps heartbeats in place between data frames", func() {
			body := "event: ping\n\n" +
				"data: {\"event\":\"message\",\"answer\":\"a\"}\n\n" +
				"event: ping\n\n" +
				"data: {\"event\":\"message\",\"answer\":\"b\"}\n\n" +
				"data: [DONE]\n\n"
			run(dispatch.NewChatRouter(h), body)

			Expect(h.seen).To(Equal([]string{"ping", "message:a", "ping", "message:b", "complete"}))
		})

		It("survives a malformed frame in the middle of a stream", func() {
			body := "data: {\"event\":\"message\",\"answer\":\"a\"}\n\n" +
				"data: {oops\n\n" +
				"data: {\"event\":\"message\",\"answer\":\"b\"}\n\n"
			run(dispatch.NewChatRouter(h), body)

			Expect(h.seen).To(Equal([]string{"message:a", "exception", "message:b", "complete"}))
		})

		It("keeps the session open across unknown kinds", func() {
			body := "data: {\"event\":\"future_kind\"}\n\n" +
				"data: {\"event\":\"message\",\"answer\":\"a\"}\n\n"
			run(dispatch.NewChatRouter(h), body)

			Expect(h.seen).To(Equal([]string{"message:a", "complete"}))
		})

		It("delivers an unknown kind on a completion stream as a message", func() {
			body := "data: {\"event\":\"future_kind\",\"answer\":\"x\"}\n\n"
			run(dispatch.NewCompletionRouter(h), body, stream.WithSilentEOF())

			Expect(h.seen).To(Equal([]string{"message:x"}))
		})
	})
})

// handler is a chat/chatflow/completion handler that records what it saw.
type handler struct {
	dispatch.NopChatflow
	seen []string
}

func (h *handler) OnException(context.Context, error) { h.seen = append(h.seen, "exception") }
func (h *handler) OnComplete(context.Context)         { h.seen = append(h.seen, "complete") }

func (h *handler) OnPing(context.Context, *event.Ping) error {
	h.seen = append(h.seen, "ping")
	return nil
}

func (h *handler) OnMessage(_ context.Context, ev *event.Message) error {
	h.seen = append(h.seen, "message:"+ev.Answer)
	return nil
}

func (h *handler) OnWorkflowStarted(context.Context, *event.WorkflowStarted) error {
	h.seen = append(h.seen, "workflow_started")
	return nil
}

func (h *handler) OnNodeFinished(context.Context, *event.NodeFinished) error {
	h.seen = append(h.seen, "node_finished")
	return nil
}

func (h *handler) OnWorkflowFinished(context.Context, *event.WorkflowFinished) error {
	h.seen = append(h.seen, "workflow_finished")
	return nil
}

var _ = Describe("State", func() {
	It("names every state", func() {
		Expect(stream.StateIdle.String()).To(Equal("idle"))
		Expect(stream.StateOpen.String()).To(Equal("open"))
		Expect(stream.StateTerminated.String()).To(Equal("terminated"))
		Expect(stream.State(9).String()).To(Equal("unknown"))
	})
})
