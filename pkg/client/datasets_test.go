package client_test

import (
	"context"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/dify/pkg/client"
)

var _ = Describe("DatasetClient", func() {
	var (
		ctx    context.Context
		server *fakeServer
		d      *client.DatasetClient
	)

	BeforeEach(func() {
		ctx = context.Background()
		server = newFakeServer()
		DeferCleanup(server.Close)

		var err error
		d, err = client.NewDatasetClient(client.Config{BaseURL: server.URL, APIKey: "dataset-secret"})
		Expect(err).NotTo(HaveOccurred())
	})

	It("requires an API key", func() {
		_, err := client.NewDatasetClient(client.Config{BaseURL: server.URL})
		Expect(err).To(MatchError(client.ErrMissingAPIKey))
	})

	Describe("datasets", func() {
		It("creates one", func() {
			server.respondJSON(`{"id":"ds-1","name":"Docs","indexing_technique":"high_quality"}`)

			ds, err := d.CreateDataset(ctx, client.CreateDatasetRequest{Name: "Docs", IndexingTechnique: "high_quality"})
			Expect(err).NotTo(HaveOccurred())
			Expect(ds.ID).To(Equal("ds-1"))

			req := server.last()
			Expect(req.Method).To(Equal(http.MethodPost))
			Expect(req.Path).To(Equal("/datasets"))
			Expect(req.Header.Get("Authorization")).To(Equal("Bearer dataset-secret"))
			Expect(req.JSON()).To(Equal(map[string]any{"name": "Docs", "indexing_technique": "high_quality"}))
		})

		It("lists them with repeated tag filters", func() {
			server.respondJSON(`{"data":[{"id":"ds-1","tags":[{"id":"t-1","name":"prod"}]}],"has_more":false,"limit":20,"total":1,"page":1}`)

			list, err := d.Datasets(ctx, client.DatasetsParams{Keyword: "doc", TagIDs: []string{"t-1", "t-2"}, Page: 1})
			Expect(err).NotTo(HaveOccurred())
			Expect(list.Data[0].Tags[0].Name).To(Equal("prod"))

			q := server.last().Query
			Expect(q["tag_ids"]).To(Equal([]string{"t-1", "t-2"}))
			Expect(q.Get("keyword")).To(Equal("doc"))
			Expect(q).NotTo(HaveKey("limit"))
		})

		It("gets and deletes one", func() {
			server.respondJSON(`{"id":"ds-1","document_count":4}`)

			ds, err := d.Dataset(ctx, "ds-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(ds.DocumentCount).To(Equal(4))
			Expect(server.last().Path).To(Equal("/datasets/ds-1"))

			server.respond(http.StatusNoContent, "application/json", "")
			Expect(d.DeleteDataset(ctx, "ds-1")).To(Succeed())
			Expect(server.last().Method).To(Equal(http.MethodDelete))
		})
	})

	Describe("documents", func() {
		It("creates one from text", func() {
			server.respondJSON(`{"document":{"id":"doc-1","indexing_status":"waiting"},"batch":"b-1"}`)

			res, err := d.CreateDocumentByText(ctx, "ds-1", client.CreateDocumentByTextRequest{
				Name: "readme", Text: "hello", IndexingTechnique: "economy",
				ProcessRule: &client.ProcessRule{Mode: "automatic"},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Batch).To(Equal("b-1"))
			Expect(res.Document.IndexingStatus).To(Equal("waiting"))

			req := server.last()
			Expect(req.Path).To(Equal("/datasets/ds-1/document/create-by-text"))
			Expect(req.JSON()).To(HaveKeyWithValue("process_rule", map[string]any{"mode": "automatic"}))
		})

		It("updates one from text", func() {
			server.respondJSON(`{"document":{"id":"doc-1"},"batch":"b-2"}`)

			res, err := d.UpdateDocumentByText(ctx, "ds-1", "doc-1", client.UpdateDocumentByTextRequest{Text: "new"})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Batch).To(Equal("b-2"))
			Expect(server.last().Path).To(Equal("/datasets/ds-1/documents/doc-1/update-by-text"))
			Expect(server.last().JSON()).To(Equal(map[string]any{"text": "new"}))
		})

		It("lists and deletes them", func() {
			server.respondJSON(`{"data":[{"id":"doc-1","name":"readme","word_count":10}],"total":1}`)

			list, err := d.Documents(ctx, "ds-1", client.DocumentsParams{Limit: 5})
			Expect(err).NotTo(HaveOccurred())
			Expect(list.Data[0].WordCount).To(Equal(10))
			Expect(server.last().Path).To(Equal("/datasets/ds-1/documents"))
			Expect(server.last().Query.Get("limit")).To(Equal("5"))

			Expect(d.DeleteDocument(ctx, "ds-1", "doc-1")).To(Succeed())
			Expect(server.last().Method).To(Equal(http.MethodDelete))
			Expect(server.last().Path).To(Equal("/datasets/ds-1/documents/doc-1"))
		})

		It("reports indexing progress", func() {
			server.respondJSON(`{"data":[{"id":"doc-1","indexing_status":"indexing","completed_segments":3,"total_segments":8}]}`)

			status, err := d.IndexingStatus(ctx, "ds-1", "b-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(status).To(HaveLen(1))
			Expect(status[0].CompletedSegments).To(Equal(3))
			Expect(server.last().Path).To(Equal("/datasets/ds-1/documents/b-1/indexing-status"))
		})
	})

	It("retrieves matching segments", func() {
		server.respondJSON(`{"query":{"content":"go"},"records":[{"segment":{"id":"s-1","content":"Go is fun",
			"document":{"id":"doc-1","name":"readme"}},"score":0.87}]}`)

		res, err := d.Retrieve(ctx, "ds-1", client.RetrieveRequest{
			Query:          "go",
			RetrievalModel: &client.RetrievalModel{SearchMethod: "semantic_search", TopK: 2},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Query.Content).To(Equal("go"))
		Expect(res.Records[0].Score).To(BeNumerically("~", 0.87))
		Expect(res.Records[0].Segment.Document.Name).To(Equal("readme"))

		body := server.last().JSON()
		Expect(server.last().Path).To(Equal("/datasets/ds-1/retrieve"))
		Expect(body).To(HaveKeyWithValue("retrieval_model", HaveKeyWithValue("top_k", BeNumerically("==", 2))))
	})

	Describe("tags", func() {
		It("lists them", func() {
			server.respondJSON(`[{"id":"t-1","name":"prod","type":"knowledge","binding_count":2}]`)

			tags, err := d.Tags(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(tags).To(HaveLen(1))
			Expect(tags[0].BindingCount).To(Equal(2))
			Expect(server.last().Path).To(Equal("/datasets/tags"))
		})

		It("creates and deletes one", func() {
			server.respondJSON(`{"id":"t-1","name":"prod","type":"knowledge"}`)

			tag, err := d.CreateTag(ctx, "prod")
			Expect(err).NotTo(HaveOccurred())
			Expect(tag.ID).To(Equal("t-1"))
			Expect(server.last().JSON()).To(Equal(map[string]any{"name": "prod"}))

			Expect(d.DeleteTag(ctx, "t-1")).To(Succeed())
			Expect(server.last().Method).To(Equal(http.MethodDelete))
			Expect(server.last().JSON()).To(Equal(map[string]any{"tag_id": "t-1"}))
		})

		It("binds and unbinds them", func() {
			server.respondJSON(`{"result":"success"}`)

			Expect(d.BindTags(ctx, "ds-1", []string{"t-1", "t-2"})).To(Succeed())
			Expect(server.last().Path).To(Equal("/datasets/tags/binding"))
			Expect(server.last().JSON()).To(Equal(map[string]any{"tag_ids": []any{"t-1", "t-2"}, "target_id": "ds-1"}))

			Expect(d.UnbindTag(ctx, "ds-1", "t-1")).To(Succeed())
			Expect(server.last().Path).To(Equal("/datasets/tags/unbinding"))
			Expect(server.last().JSON()).To(Equal(map[string]any{"tag_id": "t-1", "target_id": "ds-1"}))
		})
	})
})
