// Package moltbooktest runs an in-process stand-in for the Moltbook API that
// records the requests it receives.
package moltbooktest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// APIPrefix is the path the fake serves under, mirroring the real service.
const APIPrefix = "/api/v1"

// Request is one recorded request. Path is relative to APIPrefix and keeps
// its percent-encoding.
type Request struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
	Body     []byte
}

// Token returns the bearer credential of the request, or "".
func (r Request) Token() string {
	return BearerToken(r.Header.Get("Authorization"))
}

type reply struct {
	status int
	body   string
}

// Server is a fake Moltbook API.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	requests []Request
	replies  map[string]reply
}

// NewServer starts a fake that is closed when tb finishes.
func NewServer(tb testing.TB) *Server {
	tb.Helper()
	s := &Server{replies: map[string]reply{}}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	tb.Cleanup(s.Close)
	return s
}

// BaseURL is the API root to pass to moltbook.WithBaseURL.
func (s *Server) BaseURL() string {
	return s.URL + APIPrefix
}

// Handle sets the reply for method and path (relative to APIPrefix, without
// query). Unregistered routes answer 200 {"success":true}.
func (s *Server) Handle(method, path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies[routeKey(method, path)] = reply{status: status, body: body}
}

// Requests returns a copy of everything received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Last returns the most recent request. It fails tb when there is none.
func (s *Server) Last(tb testing.TB) Request {
	tb.Helper()
	reqs := s.Requests()
	if len(reqs) == 0 {
		tb.Fatalf("moltbooktest: no requests received")
	}
	return reqs[len(reqs)-1]
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	p := strings.TrimPrefix(r.URL.EscapedPath(), APIPrefix)
	p = strings.TrimPrefix(p, "/")

	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method:   r.Method,
		Path:     p,
		RawQuery: r.URL.RawQuery,
		Header:   r.Header.Clone(),
		Body:     body,
	})
	rep, ok := s.replies[routeKey(r.Method, p)]
	s.mu.Unlock()

	if !ok {
		rep = reply{status: http.StatusOK, body: `{"success":true}`}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rep.status)
	_, _ = io.WriteString(w, rep.body)
}

func routeKey(method, path string) string {
	return strings.ToUpper(method) + " " + strings.TrimPrefix(path, "/")
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(authHeader string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(authHeader, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, prefix))
}
