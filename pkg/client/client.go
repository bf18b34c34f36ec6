// Package client is an HTTP client for the Dify application API.
//
// Blocking calls return decoded responses. Streaming calls hand the response
// body to a stream.Session that routes every decoded event to a caller
// supplied handler set and block until the session terminates.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/time/rate"

	"github.com/papercomputeco/dify/pkg/dispatch"
	"github.com/papercomputeco/dify/pkg/logger"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// Response modes accepted by the message and workflow endpoints.
const (
	ResponseModeBlocking  = "blocking"
	ResponseModeStreaming = "streaming"
)

// Config holds the endpoint and credentials of one app.
type Config struct {
	// BaseURL is the API root, e.g. "https://api.dify.ai/v1".
	BaseURL string

	// APIKey is the app (or knowledge base) secret key.
	APIKey string
}

// ObserverFactory builds a dispatch observer for one streaming call to the
// given endpoint path. It may return nil to skip observation.
type ObserverFactory func(endpoint string) dispatch.Observer

// Option configures a Client or DatasetClient.
type Option func(*options)

type options struct {
	httpClient *http.Client
	logger     *slog.Logger
	limiter    *rate.Limiter
	observer   ObserverFactory
	silentEOF  bool
	rawDump    io.Writer
}

// WithHTTPClient sets the http.Client used for every request. Its Timeout
// bounds streamed bodies too.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		if hc != nil {
			o.httpClient = hc
		}
	}
}

// WithLogger sets the logger for the client and the stream machinery.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger.OrNop(l)
	}
}

// WithRateLimit caps outbound requests at rps per second with the given
// burst. A non-positive rps disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(o *options) {
		if rps <= 0 {
			o.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		o.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithObserver attaches an observer to the router of every streaming call.
func WithObserver(f ObserverFactory) Option {
	return func(o *options) {
		o.observer = f
	}
}

// WithSilentEOF makes streams that end without the done sentinel finish
// without calling OnComplete.
func WithSilentEOF() Option {
	return func(o *options) {
		o.silentEOF = true
	}
}

// WithRawDump copies every raw line of every stream to w.
func WithRawDump(w io.Writer) Option {
	return func(o *options) {
		o.rawDump = w
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		httpClient: &http.Client{},
		logger:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// api is the request plumbing shared by Client and DatasetClient.
type api struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

func newAPI(c Config, o *options) (*api, error) {
	if strings.TrimSpace(c.BaseURL) == "" {
		return nil, ErrMissingBaseURL
	}
	if strings.TrimSpace(c.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}

	return &api{
		baseURL:    strings.TrimRight(c.BaseURL, "/"),
		apiKey:     c.APIKey,
		httpClient: o.httpClient,
		limiter:    o.limiter,
		logger:     o.logger,
	}, nil
}

// Client talks to the chat, completion and workflow endpoints of one app.
type Client struct {
	api       *api
	logger    *slog.Logger
	observer  ObserverFactory
	silentEOF bool
	rawDump   io.Writer
}

// New creates a Client for the app identified by c.
func New(c Config, opts ...Option) (*Client, error) {
	o := newOptions(opts)

	a, err := newAPI(c, o)
	if err != nil {
		return nil, err
	}

	return &Client{
		api:       a,
		logger:    o.logger,
		observer:  o.observer,
		silentEOF: o.silentEOF,
		rawDump:   o.rawDump,
	}, nil
}

func (a *api) url(path string, query url.Values) string {
	u := a.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (a *api) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, a.url(path, query), body)
	if err != nil {
		return nil, fmt.Errorf("creating %s %s request: %w", method, path, err)
	}
	req.Header.Set("Authorization", "Bearer "+a.apiKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req, nil
}

func (a *api) newJSONRequest(ctx context.Context, method, path string, query url.Values, in any) (*http.Request, error) {
	var body io.Reader
	contentType := ""
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("marshaling %s request: %w", path, err)
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}
	return a.newRequest(ctx, method, path, query, body, contentType)
}

// send waits for the rate limiter, performs req and turns non-2xx responses
// into *APIError. On success the caller owns the response body.
func (a *api) send(req *http.Request) (*http.Response, error) {
	if a.limiter != nil {
		if err := a.limiter.Wait(req.Context()); err != nil {
			return nil, fmt.Errorf("waiting for rate limiter: %w", err)
		}
	}

	a.logger.Debug("dify request", "method", req.Method, "path", req.URL.Path)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending %s %s: %w", req.Method, req.URL.Path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := parseAPIError(resp.StatusCode, body)
		a.logger.Error("dify api error",
			"method", req.Method,
			"path", req.URL.Path,
			"status", apiErr.StatusCode,
			"code", apiErr.Code,
			"message", apiErr.Message,
		)
		return nil, apiErr
	}

	return resp, nil
}

// do sends req and decodes a JSON response into out, which may be nil.
func (a *api) do(req *http.Request, out any) error {
	resp, err := a.send(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decoding %s response: %w", req.URL.Path, err)
	}
	return nil
}

func (a *api) doJSON(ctx context.Context, method, path string, query url.Values, in, out any) error {
	req, err := a.newJSONRequest(ctx, method, path, query, in)
	if err != nil {
		return err
	}
	return a.do(req, out)
}

func (a *api) doBytes(ctx context.Context, method, path string, in any) ([]byte, error) {
	req, err := a.newJSONRequest(ctx, method, path, nil, in)
	if err != nil {
		return nil, err
	}

	resp, err := a.send(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", path, err)
	}
	return b, nil
}

// Upload is a file part of a multipart request.
type Upload struct {
	// Name is the file name reported to the platform; its extension decides
	// the file type.
	Name   string
	Reader io.Reader
}

func (a *api) doMultipart(ctx context.Context, path string, fields map[string]string, file Upload, out any) error {
	if file.Reader == nil {
		return fmt.Errorf("uploading to %s: no file reader", path)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", file.Name)
	if err != nil {
		return fmt.Errorf("creating multipart file: %w", err)
	}
	if _, err := io.Copy(part, file.Reader); err != nil {
		return fmt.Errorf("copying multipart file: %w", err)
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return fmt.Errorf("writing multipart field %s: %w", k, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("closing multipart body: %w", err)
	}

	req, err := a.newRequest(ctx, http.MethodPost, path, nil, &buf, w.FormDataContentType())
	if err != nil {
		return err
	}
	return a.do(req, out)
}

// segment escapes a caller supplied id for use as a path segment.
func segment(id string) string {
	return "/" + url.PathEscape(strings.TrimSpace(id))
}

// userBody is the body of the endpoints that take only the end user.
type userBody struct {
	User string `json:"user"`
}
