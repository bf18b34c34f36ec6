package dispatch_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/dify/pkg/dispatch"
	"github.com/papercomputeco/dify/pkg/event"
)

var _ = Describe("Family", func() {
	DescribeTable("Supports",
		func(family dispatch.Family, kind event.Kind, want bool) {
			Expect(family.Supports(kind)).To(Equal(want))
		},
		Entry("chat accepts message", dispatch.FamilyChat, event.KindMessage, true),
		Entry("chat accepts agent thought", dispatch.FamilyChat, event.KindAgentThought, true),
		Entry("chat rejects workflow started", dispatch.FamilyChat, event.KindWorkflowStarted, false),
		Entry("chatflow accepts message file", dispatch.FamilyChatflow, event.KindMessageFile, true),
		Entry("chatflow accepts loop next", dispatch.FamilyChatflow, event.KindLoopNext, true),
		Entry("completion accepts message replace", dispatch.FamilyCompletion, event.KindMessageReplace, true),
		Entry("completion accepts tts end", dispatch.FamilyCompletion, event.KindTTSMessageEnd, true),
		Entry("completion rejects agent message", dispatch.FamilyCompletion, event.KindAgentMessage, false),
		Entry("completion rejects message file", dispatch.FamilyCompletion, event.KindMessageFile, false),
		Entry("workflow accepts text chunk", dispatch.FamilyWorkflow, event.KindTextChunk, true),
		Entry("workflow accepts tts", dispatch.FamilyWorkflow, event.KindTTSMessage, true),
		Entry("workflow rejects message", dispatch.FamilyWorkflow, event.KindMessage, false),
		Entry("workflow accepts error", dispatch.FamilyWorkflow, event.KindError, true),
		Entry("chat accepts ping", dispatch.FamilyChat, event.KindPing, true),
		Entry("zero family rejects ping", dispatch.Family(0), event.KindPing, false),
		Entry("unknown kinds are never supported", dispatch.FamilyChatflow, event.Kind("nope"), false),
	)

	It("names every family", func() {
		Expect(dispatch.FamilyChat.String()).To(Equal("chat"))
		Expect(dispatch.FamilyChatflow.String()).To(Equal("chatflow"))
		Expect(dispatch.FamilyCompletion.String()).To(Equal("completion"))
		Expect(dispatch.FamilyWorkflow.String()).To(Equal("workflow"))
		Expect(dispatch.Family(42).String()).To(Equal("unknown"))
	})

	Describe("Nop handler sets", func() {
		It("accept every kind of their family without failing", func() {
			h := &nopChatflow{}
			router := dispatch.NewChatflowRouter(h)

			for _, group := range [][]event.Kind{event.MessageKinds, event.WorkflowKinds, event.ControlKinds} {
				for _, k := range group {
					router.Dispatch(context.Background(), `{"event":"`+string(k)+`"}`)
				}
			}
			router.Complete(context.Background())

			Expect(h.exceptions).To(Equal(0))
			Expect(h.completed).To(Equal(1))
		})
	})
})

type hooks struct {
	exceptions int
	completed  int
}

func (h *hooks) OnException(context.Context, error) { h.exceptions++ }
func (h *hooks) OnComplete(context.Context)         { h.completed++ }

type nopChat struct {
	dispatch.NopChat
	hooks
}

type nopChatflow struct {
	dispatch.NopChatflow
	hooks
}

type nopCompletion struct {
	dispatch.NopCompletion
	hooks
}

type nopWorkflow struct {
	dispatch.NopWorkflow
	hooks
}

var (
	_ dispatch.ChatHandler       = (*nopChat)(nil)
	_ dispatch.ChatflowHandler   = (*nopChatflow)(nil)
	_ dispatch.CompletionHandler = (*nopCompletion)(nil)
	_ dispatch.WorkflowHandler   = (*nopWorkflow)(nil)
)
