package client_test

import (
	"context"
	"errors"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/dify/pkg/client"
	"github.com/papercomputeco/dify/pkg/logger"
)

var _ = Describe("Client", func() {
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
		c, err = client.New(client.Config{BaseURL: server.URL + "/v1/", APIKey: "app-secret"},
			client.WithLogger(logger.Nop()))
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("New", func() {
		It("requires a base URL", func() {
			_, err := client.New(client.Config{APIKey: "k"})
			Expect(err).To(MatchError(client.ErrMissingBaseURL))
		})

		It("requires an API key", func() {
			_, err := client.New(client.Config{BaseURL: "http://localhost/v1", APIKey: "  "})
			Expect(err).To(MatchError(client.ErrMissingAPIKey))
		})

		It("uses the supplied http client", func() {
			var used bool
			hc := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
				used = true
				return http.DefaultTransport.RoundTrip(r)
			})}

			custom, err := client.New(client.Config{BaseURL: server.URL, APIKey: "k"}, client.WithHTTPClient(hc))
			Expect(err).NotTo(HaveOccurred())

			_, err = custom.AppInfo(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(used).To(BeTrue())
		})
	})

	It("authenticates with the API key and trims the trailing slash of the base URL", func() {
		_, err := c.AppInfo(ctx)
		Expect(err).NotTo(HaveOccurred())

		req := server.last()
		Expect(req.Method).To(Equal(http.MethodGet))
		Expect(req.Path).To(Equal("/v1/info"))
		Expect(req.Header.Get("Authorization")).To(Equal("Bearer app-secret"))
	})

	Describe("error responses", func() {
		DescribeTable("are decoded into APIError",
			func(status int, body string, code, message, params string) {
				server.respond(status, "application/json", body)

				_, err := c.AppInfo(ctx)
				var apiErr *client.APIError
				Expect(errors.As(err, &apiErr)).To(BeTrue())
				Expect(apiErr.StatusCode).To(Equal(status))
				Expect(apiErr.Code).To(Equal(code))
				Expect(apiErr.Message).To(Equal(message))
				Expect(apiErr.Params).To(Equal(params))
			},
			Entry("code and message", http.StatusBadRequest,
				`{"code":"invalid_param","message":"query is required","status":400}`,
				"invalid_param", "query is required", ""),
			Entry("error_code wins over code", http.StatusNotFound,
				`{"code":"not_found","error_code":"conversation_not_exists","error_message":"Conversation Not Exists."}`,
				"conversation_not_exists", "Conversation Not Exists.", ""),
			Entry("params are kept", http.StatusBadRequest,
				`{"code":"invalid_param","message":"bad","params":"inputs"}`,
				"invalid_param", "bad", "inputs"),
			Entry("non-string values are rendered as JSON", http.StatusTooManyRequests,
				`{"code":429,"message":"slow down"}`,
				"429", "slow down", ""),
			Entry("plain text bodies become the message", http.StatusBadGateway,
				"upstream unavailable\n",
				"unknown_error", "upstream unavailable", ""),
			Entry("empty bodies", http.StatusUnauthorized,
				"",
				"unknown_error", "", ""),
		)

		It("formats the error with status, code, message and params", func() {
			server.respond(http.StatusBadRequest, "application/json", `{"code":"invalid_param","message":"bad","params":"user"}`)

			_, err := c.AppInfo(ctx)
			Expect(err).To(MatchError("dify api error: status 400: invalid_param: bad [user]"))
		})

		It("matches codes with IsAPIError", func() {
			server.respond(http.StatusBadRequest, "application/json", `{"code":"app_unavailable","message":"x"}`)

			_, err := c.AppInfo(ctx)
			Expect(client.IsAPIError(err, "app_unavailable")).To(BeTrue())
			Expect(client.IsAPIError(err, "")).To(BeTrue())
			Expect(client.IsAPIError(err, "other")).To(BeFalse())
			Expect(client.IsAPIError(errors.New("plain"), "")).To(BeFalse())
		})
	})

	Describe("rate limiting", func() {
		It("gives up without sending when the context is done", func() {
			limited, err := client.New(client.Config{BaseURL: server.URL, APIKey: "k"}, client.WithRateLimit(0.001, 1))
			Expect(err).NotTo(HaveOccurred())

			_, err = limited.AppInfo(ctx)
			Expect(err).NotTo(HaveOccurred())

			cancelled, cancel := context.WithCancel(ctx)
			cancel()
			_, err = limited.AppInfo(cancelled)
			Expect(err).To(MatchError(context.Canceled))
			Expect(server.count()).To(Equal(1))
		})

		It("is disabled by a non-positive rate", func() {
			unlimited, err := client.New(client.Config{BaseURL: server.URL, APIKey: "k"}, client.WithRateLimit(0, 0))
			Expect(err).NotTo(HaveOccurred())

			for range 3 {
				_, err = unlimited.AppInfo(ctx)
				Expect(err).NotTo(HaveOccurred())
			}
			Expect(server.count()).To(Equal(3))
		})
	})
})

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }
