package client_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"

	. "github.com/onsi/gomega"
)

// recorded is one request seen by a fakeServer.
type recorded struct {
	Method  string
	Path    string
	RawPath string
	Query   url.Values
	Header  http.Header
	Body    []byte
}

// JSON decodes the request body into a generic map.
func (r recorded) JSON() map[string]any {
	out := map[string]any{}
	ExpectWithOffset(1, json.Unmarshal(r.Body, &out)).To(Succeed())
	return out
}

// Multipart returns the form fields and the content of the "file" part.
func (r recorded) Multipart() (map[string]string, string, []byte) {
	_, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	ExpectWithOffset(1, err).NotTo(HaveOccurred())

	fields := map[string]string{}
	var (
		name    string
		content []byte
	)
	mr := multipart.NewReader(bytes.NewReader(r.Body), params["boundary"])
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		ExpectWithOffset(1, err).NotTo(HaveOccurred())

		b, err := io.ReadAll(part)
		ExpectWithOffset(1, err).NotTo(HaveOccurred())
		if part.FormName() == "file" {
			name = part.FileName()
			content = b
			continue
		}
		fields[part.FormName()] = string(b)
	}
	return fields, name, content
}

// fakeServer answers every request with one canned response and records
// what it received.
type fakeServer struct {
	*httptest.Server

	mu          sync.Mutex
	requests    []recorded
	status      int
	contentType string
	body        string
}

func newFakeServer() *fakeServer {
	f := &fakeServer{status: http.StatusOK, contentType: "application/json", body: `{}`}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		f.mu.Lock()
		f.requests = append(f.requests, recorded{
			Method:  r.Method,
			Path:    r.URL.Path,
			RawPath: r.URL.EscapedPath(),
			Query:   r.URL.Query(),
			Header:  r.Header.Clone(),
			Body:    body,
		})
		status, contentType, out := f.status, f.contentType, f.body
		f.mu.Unlock()

		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		_, _ = io.WriteString(w, out)
	}))
	return f
}

func (f *fakeServer) respond(status int, contentType, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status, f.contentType, f.body = status, contentType, body
}

func (f *fakeServer) respondJSON(body string) {
	f.respond(http.StatusOK, "application/json", body)
}

func (f *fakeServer) respondStream(body string) {
	f.respond(http.StatusOK, "text/event-stream", body)
}

func (f *fakeServer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *fakeServer) last() recorded {
	f.mu.Lock()
	defer f.mu.Unlock()
	ExpectWithOffset(1, f.requests).NotTo(BeEmpty())
	return f.requests[len(f.requests)-1]
}
