package client_test

import (
	"context"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/dify/pkg/client"
)

var _ = Describe("Messages", func() {
	var (
		ctx    context.Context
		server *fakeServer
		c      *client.Client
	)

	BeforeEach(func() {
		ctx = context.Background()
		server = newFakeServer()
		DeferCleanup(server.Close)

		var err error
		c, err = client.New(client.Config{BaseURL: server.URL, APIKey: "app-secret"})
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("SendChatMessage", func() {
		It("sends a blocking request with empty inputs", func() {
			server.respondJSON(`{"event":"message","task_id":"t","message_id":"m","conversation_id":"c",
				"answer":"Hello","metadata":{"usage":{"total_tokens":12}},"created_at":1705395332}`)

			resp, err := c.SendChatMessage(ctx, client.ChatRequest{Query: "hi", User: "u", ResponseMode: "streaming"})
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Answer).To(Equal("Hello"))
			Expect(resp.ConversationID).To(Equal("c"))
			Expect(resp.Metadata.Usage).NotTo(BeNil())
			Expect(resp.Metadata.Usage.TotalTokens).To(Equal(12))

			body := server.last().JSON()
			Expect(body).To(HaveKeyWithValue("response_mode", "blocking"))
			Expect(body).To(HaveKeyWithValue("inputs", BeEmpty()))
			Expect(body).NotTo(HaveKey("conversation_id"))
		})

		It("sends attached files", func() {
			req := client.ChatRequest{Query: "what is this", Files: []client.FileInfo{{
				Type: "image", TransferMethod: client.TransferLocalFile, UploadFileID: "f-1",
			}}}
			_, err := c.SendChatMessage(ctx, req)
			Expect(err).NotTo(HaveOccurred())

			files := server.last().JSON()["files"]
			Expect(files).To(ConsistOf(HaveKeyWithValue("upload_file_id", "f-1")))
		})
	})

	Describe("SendCompletionMessage", func() {
		It("sends a blocking completion request", func() {
			server.respondJSON(`{"message_id":"m","answer":"done"}`)

			resp, err := c.SendCompletionMessage(ctx, client.CompletionRequest{Inputs: map[string]any{"query": "q"}, User: "u"})
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Answer).To(Equal("done"))
			Expect(server.last().Path).To(Equal("/completion-messages"))
			Expect(server.last().JSON()).To(HaveKeyWithValue("response_mode", "blocking"))
		})
	})

	DescribeTable("stopping a task",
		func(stop func(*client.Client) (*client.SimpleResponse, error), path string) {
			server.respondJSON(`{"result":"success"}`)

			resp, err := stop(c)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Result).To(Equal("success"))

			req := server.last()
			Expect(req.Method).To(Equal(http.MethodPost))
			Expect(req.Path).To(Equal(path))
			Expect(req.JSON()).To(Equal(map[string]any{"user": "u"}))
		},
		Entry("chat", func(c *client.Client) (*client.SimpleResponse, error) {
			return c.StopChatMessage(context.Background(), "task-1", "u")
		}, "/chat-messages/task-1/stop"),
		Entry("completion", func(c *client.Client) (*client.SimpleResponse, error) {
			return c.StopCompletion(context.Background(), "task-2", "u")
		}, "/completion-messages/task-2/stop"),
		Entry("workflow", func(c *client.Client) (*client.SimpleResponse, error) {
			return c.StopWorkflow(context.Background(), "task-3", "u")
		}, "/workflows/tasks/task-3/stop"),
	)

	It("escapes ids used as path segments", func() {
		_, err := c.StopChatMessage(ctx, "a/b", "u")
		Expect(err).NotTo(HaveOccurred())
		Expect(server.last().RawPath).To(Equal("/chat-messages/a%2Fb/stop"))
	})

	It("sends feedback", func() {
		server.respondJSON(`{"result":"success"}`)

		_, err := c.FeedbackMessage(ctx, "m-1", client.FeedbackRequest{Rating: "like", User: "u", Content: "great"})
		Expect(err).NotTo(HaveOccurred())
		Expect(server.last().Path).To(Equal("/messages/m-1/feedbacks"))
		Expect(server.last().JSON()).To(Equal(map[string]any{"rating": "like", "user": "u", "content": "great"}))
	})

	It("returns suggested questions", func() {
		server.respondJSON(`{"result":"success","data":["a?","b?"]}`)

		questions, err := c.SuggestedQuestions(ctx, "m-1", "u")
		Expect(err).NotTo(HaveOccurred())
		Expect(questions).To(Equal([]string{"a?", "b?"}))
		Expect(server.last().Path).To(Equal("/messages/m-1/suggested"))
		Expect(server.last().Query.Get("user")).To(Equal("u"))
	})

	It("pages through history", func() {
		server.respondJSON(`{"limit":2,"has_more":true,"data":[{"id":"m-2","query":"q","answer":"a","feedback":{"rating":"like"}}]}`)

		list, err := c.Messages(ctx, client.MessagesParams{ConversationID: "c", User: "u", FirstID: "m-3", Limit: 2})
		Expect(err).NotTo(HaveOccurred())
		Expect(list.HasMore).To(BeTrue())
		Expect(list.Data).To(HaveLen(1))
		Expect(list.Data[0].Feedback.Rating).To(Equal("like"))

		q := server.last().Query
		Expect(q.Get("conversation_id")).To(Equal("c"))
		Expect(q.Get("first_id")).To(Equal("m-3"))
		Expect(q.Get("limit")).To(Equal("2"))
	})

	Describe("conversations", func() {
		It("lists them and leaves unset parameters out", func() {
			server.respondJSON(`{"limit":20,"has_more":false,"data":[{"id":"c-1","name":"Greeting"}]}`)

			list, err := c.Conversations(ctx, client.ConversationsParams{User: "u", SortBy: "-updated_at"})
			Expect(err).NotTo(HaveOccurred())
			Expect(list.Data[0].Name).To(Equal("Greeting"))

			q := server.last().Query
			Expect(q.Get("sort_by")).To(Equal("-updated_at"))
			Expect(q).NotTo(HaveKey("last_id"))
			Expect(q).NotTo(HaveKey("limit"))
		})

		It("deletes one with the user in the body", func() {
			server.respond(http.StatusNoContent, "application/json", "")

			Expect(c.DeleteConversation(ctx, "c-1", "u")).To(Succeed())
			req := server.last()
			Expect(req.Method).To(Equal(http.MethodDelete))
			Expect(req.Path).To(Equal("/conversations/c-1"))
			Expect(req.JSON()).To(Equal(map[string]any{"user": "u"}))
		})

		It("renames one", func() {
			server.respondJSON(`{"id":"c-1","name":"Renamed"}`)

			conv, err := c.RenameConversation(ctx, "c-1", client.RenameRequest{AutoGenerate: true, User: "u"})
			Expect(err).NotTo(HaveOccurred())
			Expect(conv.Name).To(Equal("Renamed"))
			Expect(server.last().Path).To(Equal("/conversations/c-1/name"))
			Expect(server.last().JSON()).To(Equal(map[string]any{"auto_generate": true, "user": "u"}))
		})
	})
})
