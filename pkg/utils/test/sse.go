package testutils

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

// SSEServer is an httptest server that answers requests accepting
// text/event-stream with a canned stream and every other request with
// canned JSON.
type SSEServer struct {
	*httptest.Server

	mu     sync.Mutex
	stream string
	json   string
	status int
	paths  []string
	bodies []string
}

// NewSSEServer starts a server that streams body to streaming requests.
func NewSSEServer(body string) *SSEServer {
	s := &SSEServer{stream: body, json: `{}`, status: http.StatusOK}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

func (s *SSEServer) handle(w http.ResponseWriter, r *http.Request) {
	b, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	s.paths = append(s.paths, r.Method+" "+r.URL.Path)
	s.bodies = append(s.bodies, string(b))
	status, stream, js := s.status, s.stream, s.json
	s.mu.Unlock()

	if r.Header.Get("Accept") == "text/event-stream" {
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, stream)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, js)
}

// SetJSON sets the body returned to non-streaming requests.
func (s *SSEServer) SetJSON(body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.json = body
}

// SetStatus sets the status code of every response.
func (s *SSEServer) SetStatus(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

// Requests returns "METHOD /path" for every request received.
func (s *SSEServer) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.paths...)
}

// Bodies returns the body of every request received.
func (s *SSEServer) Bodies() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.bodies...)
}
