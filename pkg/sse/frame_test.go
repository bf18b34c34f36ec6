package sse

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Classify", func() {
	Context("with data lines", func() {
		It("strips the prefix and the optional space", func() {
			f := Classify(`data: {"event":"message"}`)
			Expect(f.Type).To(Equal(FrameData))
			Expect(f.Payload).To(Equal(`{"event":"message"}`))
		})

		It("handles a data line with no space after the colon", func() {
			f := Classify(`data:{"event":"ping"}`)
			Expect(f.Type).To(Equal(FrameData))
			Expect(f.Payload).To(Equal(`{"event":"ping"}`))
		})

		It("trims surrounding whitespace from the payload", func() {
			f := Classify("data: \t {\"a\":1}  \r")
			Expect(f.Type).To(Equal(FrameData))
			Expect(f.Payload).To(Equal(`{"a":1}`))
		})

		It("keeps an empty payload as a data frame", func() {
			f := Classify("data:")
			Expect(f.Type).To(Equal(FrameData))
			Expect(f.Payload).To(BeEmpty())
		})

		It("is case sensitive on the prefix", func() {
			Expect(Classify(`DATA: {"a":1}`).Type).To(Equal(FrameIgnorable))
		})
	})

	Context("with the done sentinel", func() {
		It("recognizes the sentinel as an end frame", func() {
			f := Classify("data: [DONE]")
			Expect(f.Type).To(Equal(FrameEnd))
			Expect(f.Payload).To(Equal(DoneSentinel))
		})

		It("recognizes the sentinel with extra whitespace", func() {
			Expect(Classify("data:[DONE]  ").Type).To(Equal(FrameEnd))
		})

		It("treats a payload merely containing the sentinel as data", func() {
			Expect(Classify(`data: "[DONE]"`).Type).To(Equal(FrameData))
		})
	})

	Context("with heartbeat lines", func() {
		It("recognizes the literal heartbeat", func() {
			Expect(Classify("event: ping").Type).To(Equal(FrameHeartbeat))
		})

		It("compares case-insensitively", func() {
			Expect(Classify("EVENT: Ping").Type).To(Equal(FrameHeartbeat))
		})

		It("carries no payload", func() {
			Expect(Classify("event: ping").Payload).To(BeEmpty())
		})
	})

	Context("with lines that carry nothing", func() {
		DescribeTable("ignores them",
			func(line string) {
				Expect(Classify(line)).To(Equal(Frame{Type: FrameIgnorable}))
			},
			Entry("blank line", ""),
			Entry("comment", ": keep-alive"),
			Entry("id field", "id: 42"),
			Entry("retry field", "retry: 3000"),
			Entry("other event type", "event: message"),
			Entry("bare text", "hello"),
			Entry("data without colon", "data"),
		)
	})

	It("names frame types", func() {
		Expect(FrameData.String()).To(Equal("data"))
		Expect(FrameEnd.String()).To(Equal("end"))
		Expect(FrameHeartbeat.String()).To(Equal("heartbeat"))
		Expect(FrameIgnorable.String()).To(Equal("ignorable"))
	})
})
