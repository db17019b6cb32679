// Package http exposes the release-news service as a JSON API.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"time"

	relnews "github.com/FedorVeriaiskii/dynatrace-release-summarizer-agent"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// ShutdownTimeout is the grace period for in-flight requests on Close.
const ShutdownTimeout = 5 * time.Second

// LookupTimeout bounds a release-news lookup. Web-search-grounded model
// calls are slow, so the bound is generous.
const LookupTimeout = 2 * time.Minute

// Server serves the release-news API over HTTP.
type Server struct {
	ln     net.Listener
	server *http.Server
	mux    *http.ServeMux

	// group collapses concurrent requests for the same component into a
	// single upstream lookup. Nothing is retained once the call returns.
	group singleflight.Group

	Addr   string
	News   relnews.NewsService
	Logger *slog.Logger
}

// NewServer creates a new Server with routes registered.
func NewServer(news relnews.NewsService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		mux:    http.NewServeMux(),
		News:   news,
		Logger: logger,
	}

	s.mux.HandleFunc("GET /api/components", s.handleComponents)
	s.mux.HandleFunc("GET /api/components/{id}/release-news", s.handleReleaseNews)

	s.server = &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Open begins listening on Addr. It does not block.
func (s *Server) Open() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	s.ln = ln

	go func() {
		if err := s.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.Logger.Error("http server", "error", err)
		}
	}()

	return nil
}

// Close gracefully shuts the server down.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// handleComponents lists the registered components.
func (s *Server) handleComponents(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, relnews.Components())
}

// handleReleaseNews returns the latest version and release summary for a
// component. Success bodies never contain an "error" key; failure bodies
// contain only an "error" key.
func (s *Server) handleReleaseNews(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	id := r.PathValue("id")

	component, err := relnews.FindComponent(id)
	if err != nil {
		s.writeError(w, requestID, err)
		return
	}

	s.Logger.Info("release news request", "request_id", requestID, "component", component.ID)

	v, err, shared := s.group.Do(component.ID, func() (any, error) {
		// The lookup is shared by every collapsed caller, so it must not
		// die with the first caller's connection. Detach from the request
		// context and bound the work instead.
		ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), LookupTimeout)
		defer cancel()
		return s.News.ReleaseNews(ctx, component)
	})
	if err != nil {
		s.writeError(w, requestID, err)
		return
	}
	if shared {
		s.Logger.Debug("request collapsed into in-flight lookup", "request_id", requestID, "component", component.ID)
	}

	s.writeJSON(w, http.StatusOK, v.(*relnews.ReleaseSummary))
}

// errorResponse is the uniform failure shape at the API boundary.
type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, requestID string, err error) {
	code := relnews.ErrorCode(err)
	message := relnews.ErrorMessage(err)

	s.Logger.Error("request failed", "request_id", requestID, "code", code, "error", message)

	s.writeJSON(w, ErrorStatusCode(code), errorResponse{Error: message})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encoding failed", "error", err)
	}
}

// codes maps application error codes to HTTP status codes. Lookup failures
// of every kind surface as 500; only routing-level errors differ.
var codes = map[string]int{
	relnews.ECONFIG:      http.StatusInternalServerError,
	relnews.EEMPTY:       http.StatusInternalServerError,
	relnews.EINTERNAL:    http.StatusInternalServerError,
	relnews.EINVALID:     http.StatusBadRequest,
	relnews.ENOTFOUND:    http.StatusNotFound,
	relnews.EUNAVAILABLE: http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status code for an application error code.
func ErrorStatusCode(code string) int {
	if status, ok := codes[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
