// Package server exposes sprite generation as an HTTP API.
//
// Routes:
//
//	GET  /healthz      liveness probe
//	POST /v1/sprites   generate atlases (and a stylesheet) under the root
//
// Every path in a request is relative to the server's root directory and
// validated with errors.ValidatePath, so requests cannot read or write
// outside it. Each request runs an isolated pipeline; nothing is cached
// between requests.
package server

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/spritepack/pkg/buildinfo"
	"github.com/matzehuels/spritepack/pkg/errors"
	"github.com/matzehuels/spritepack/pkg/observability"
)

// maxBodySize bounds a request body. Requests carry options and paths,
// never image data.
const maxBodySize = 1 << 20

// Config configures the server.
type Config struct {
	// Root is the directory all request paths are resolved against.
	Root string

	// Concurrency caps parallel source decoding per atlas.
	Concurrency int

	Logger *log.Logger
}

// Server handles API requests.
type Server struct {
	root        string
	concurrency int
	logger      *log.Logger
	router      chi.Router
}

// New creates a Server. An empty Root means the working directory.
func New(cfg Config) *Server {
	if cfg.Root == "" {
		cfg.Root = "."
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	s := &Server{
		root:        cfg.Root,
		concurrency: cfg.Concurrency,
		logger:      cfg.Logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.observe)
	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/sprites", s.handleSprites)
	})
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// observe reports every request to the HTTP hooks and the debug log.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, time.Since(start))
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path,
			"status", status, "duration", time.Since(start).Round(time.Millisecond))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Current()})
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	ID    string    `json:"id,omitempty"`
	Error errorInfo `json:"error"`
}

type errorInfo struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// writeError maps err to a status code by its error code.
func writeError(w http.ResponseWriter, id string, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := http.StatusInternalServerError
	switch {
	case errors.IsInvalid(err):
		status = http.StatusBadRequest
	case code == errors.ErrCodeNotFound:
		status = http.StatusNotFound
	case code == errors.ErrCodeProbeFailed:
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, errorBody{
		ID:    id,
		Error: errorInfo{Code: code, Message: errors.UserMessage(err)},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
