package client_test

import (
	"context"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/dify/pkg/client"
)

var _ = Describe("Workflows", func() {
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

	It("runs a workflow and waits for its outputs", func() {
		server.respondJSON(`{"task_id":"t","workflow_run_id":"r","data":{"id":"r","status":"succeeded",
			"outputs":{"summary":"ok"},"total_steps":3,"elapsed_time":1.5}}`)

		resp, err := c.RunWorkflow(ctx, client.WorkflowRunRequest{User: "u"})
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.WorkflowRunID).To(Equal("r"))
		Expect(resp.Data.Status).To(Equal("succeeded"))
		Expect(resp.Data.Outputs).To(HaveKeyWithValue("summary", "ok"))
		Expect(resp.Data.TotalSteps).To(Equal(3))

		body := server.last().JSON()
		Expect(body).To(HaveKeyWithValue("response_mode", "blocking"))
		Expect(body).To(HaveKeyWithValue("inputs", BeEmpty()))
	})

	It("fetches a run's status", func() {
		server.respondJSON(`{"id":"r","status":"running","inputs":"{\"topic\":\"go\"}","outputs":{"a":1}}`)

		run, err := c.WorkflowRun(ctx, "r")
		Expect(err).NotTo(HaveOccurred())
		Expect(run.Status).To(Equal("running"))
		Expect(string(run.Inputs)).To(Equal(`"{\"topic\":\"go\"}"`))
		Expect(string(run.Outputs)).To(MatchJSON(`{"a":1}`))

		Expect(server.last().Method).To(Equal(http.MethodGet))
		Expect(server.last().Path).To(Equal("/workflows/run/r"))
	})

	It("pages through the workflow logs", func() {
		server.respondJSON(`{"page":2,"limit":10,"total":11,"has_more":false,
			"data":[{"id":"l","workflow_run":{"id":"r","status":"failed","error":"boom"},"created_from":"service-api"}]}`)

		logs, err := c.WorkflowLogs(ctx, client.WorkflowLogsParams{Status: "failed", Page: 2, Limit: 10})
		Expect(err).NotTo(HaveOccurred())
		Expect(logs.Total).To(Equal(11))
		Expect(logs.Data[0].WorkflowRun.Error).To(Equal("boom"))

		q := server.last().Query
		Expect(q.Get("status")).To(Equal("failed"))
		Expect(q.Get("page")).To(Equal("2"))
		Expect(q).NotTo(HaveKey("keyword"))
	})
})
