package eventstream_test

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/dify/pkg/event"
	"github.com/papercomputeco/dify/pkg/eventstream"
)

var _ = Describe("StreamEventRecord", func() {
	now := time.Unix(1735689600, 0)
	source := eventstream.EventSource{App: "support-bot", Family: "chat", Endpoint: "/chat-messages"}

	It("marshals with expected top-level keys", func() {
		record, err := eventstream.NewStreamEventRecord(source, &event.Message{
			MessageEnvelope: event.MessageEnvelope{TaskID: "task-1"},
			Answer:          "hi",
		}, now)
		Expect(err).NotTo(HaveOccurred())

		payload, err := json.Marshal(record)
		Expect(err).NotTo(HaveOccurred())

		var got map[string]any
		Expect(json.Unmarshal(payload, &got)).To(Succeed())

		Expect(got).To(HaveKey("schema_version"))
		Expect(got).To(HaveKey("event_type"))
		Expect(got).To(HaveKey("event_id"))
		Expect(got).To(HaveKey("emitted_at"))
		Expect(got).To(HaveKey("source"))
		Expect(got).To(HaveKeyWithValue("kind", "message"))
		Expect(got).To(HaveKeyWithValue("task_id", "task-1"))
		Expect(got).To(HaveKey("payload"))
	})

	It("embeds a payload that decodes back to the event", func() {
		original := &event.NodeFinished{
			WorkflowEnvelope: event.WorkflowEnvelope{TaskID: "t", WorkflowRunID: "r"},
			Data:             event.NodeFinishedData{NodeID: "llm", Status: "succeeded"},
		}
		record, err := eventstream.NewStreamEventRecord(source, original, now)
		Expect(err).NotTo(HaveOccurred())

		decoded, err := event.Decode(record.Payload)
		Expect(err).NotTo(HaveOccurred())
		Expect(decoded).To(Equal(original))
	})

	It("stamps schema, type, id and time", func() {
		record, err := eventstream.NewStreamEventRecord(source, &event.Ping{}, now)
		Expect(err).NotTo(HaveOccurred())

		Expect(record.SchemaVersion).To(Equal(eventstream.SchemaVersionV1))
		Expect(record.EventType).To(Equal(eventstream.EventTypeStreamEvent))
		Expect(record.EmittedAt).To(Equal(now.UTC()))
		Expect(record.Source).To(Equal(source))
		_, err = uuid.Parse(record.EventID)
		Expect(err).NotTo(HaveOccurred())
	})

	It("generates a distinct id per record", func() {
		a, _ := eventstream.NewStreamEventRecord(source, &event.Ping{}, now)
		b, _ := eventstream.NewStreamEventRecord(source, &event.Ping{}, now)
		Expect(a.EventID).NotTo(Equal(b.EventID))
	})

	Describe("Key", func() {
		It("uses the task id when present", func() {
			record := &eventstream.StreamEventRecord{EventID: "e", TaskID: "t"}
			Expect(record.Key()).To(Equal("t"))
		})

		It("falls back to the event id", func() {
			record := &eventstream.StreamEventRecord{EventID: "e"}
			Expect(record.Key()).To(Equal("e"))
		})
	})

	It("defines stable constants", func() {
		Expect(eventstream.SchemaVersionV1).To(BeNumerically(">", 0))
		Expect(eventstream.EventTypeStreamEvent).To(Equal("dify.stream.event"))
		Expect(eventstream.ErrNilStreamEvent).To(MatchError("nil stream event"))
	})
})
