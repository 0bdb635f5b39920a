// Package workspacetest provides a scripted fake control plane for tests.
package workspacetest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Request is one decoded query, recorded for later assertions.
type Request struct {
	Op           string
	Username     string
	SSHPublicKey string
	RequestID    string
}

// Server fakes the control plane's /api/query endpoint. Responses are
// scripted per op and consumed in order; the last one repeats once the
// queue drains. Ops with nothing scripted answer with an Error envelope.
type Server struct {
	mu        sync.Mutex
	srv       *httptest.Server
	responses map[string][]json.RawMessage
	errors    map[string]string
	requests  []Request
}

func New() *Server {
	s := &Server{
		responses: map[string][]json.RawMessage{},
		errors:    map[string]string{},
	}
	r := chi.NewRouter()
	r.Post("/api/query", s.handleQuery)
	s.srv = httptest.NewServer(r)
	return s
}

func (s *Server) URL() string { return s.srv.URL }

func (s *Server) Close() { s.srv.Close() }

// Script queues raw status payloads (JSON) for an op.
func (s *Server) Script(op string, payloads ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range payloads {
		s.responses[op] = append(s.responses[op], json.RawMessage(p))
	}
}

// ScriptError makes every call to op answer with an Error envelope.
func (s *Server) ScriptError(op, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors[op] = message
}

// Requests returns a copy of the queries seen so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var query map[string]struct {
		Username     string `json:"username"`
		SSHPublicKey string `json:"ssh_public_key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil || len(query) != 1 {
		writeJSON(w, map[string]any{"Error": map[string]string{"message": "malformed query"}})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for op, req := range query {
		s.requests = append(s.requests, Request{
			Op:           op,
			Username:     req.Username,
			SSHPublicKey: req.SSHPublicKey,
			RequestID:    r.Header.Get("X-Request-Id"),
		})

		if msg, found := s.errors[op]; found {
			writeJSON(w, map[string]any{"Error": map[string]string{"message": msg}})
			return
		}
		queue := s.responses[op]
		if len(queue) == 0 {
			writeJSON(w, map[string]any{"Error": map[string]string{"message": "no scripted response for " + op}})
			return
		}
		payload := queue[0]
		if len(queue) > 1 {
			s.responses[op] = queue[1:]
		}
		writeJSON(w, map[string]any{"Ok": map[string]json.RawMessage{op: payload}})
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(v)
}
