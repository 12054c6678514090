package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"reimport/internal/core/processors"
	"reimport/internal/host/starlark"
)

// maxBodyBytes caps the size of a rewrite request
const maxBodyBytes = 4 << 20

// RewriteRequest is the body of POST /v1/rewrite
type RewriteRequest struct {
	Path   string `json:"path"`
	Source string `json:"source"`
}

// RewriteResponse is returned by POST /v1/rewrite
type RewriteResponse struct {
	RunID    string            `json:"run_id"`
	Path     string            `json:"path"`
	Source   string            `json:"source"`
	Changed  bool              `json:"changed"`
	Rewrites []starlark.Change `json:"rewrites"`
}

// errorResponse is the JSON body of every non-2xx answer
type errorResponse struct {
	Error string `json:"error"`
}

// HTTPServer extends the basic server with the rewrite endpoint
type HTTPServer struct {
	*Server
	rewriter *starlark.Rewriter
}

// NewHTTPServer creates a new HTTP server that rewrites with rules.
// rules is handed to the engine as-is, so invalid rules only surface
// when an import reaches them.
func NewHTTPServer(addr string, rules interface{}, maxReplacements int, log *zap.Logger) *HTTPServer {
	baseServer := New(addr, log)

	// Initialize pipeline
	pipeline := processors.NewDefaultPipeline(rules, maxReplacements, baseServer.log)

	return &HTTPServer{
		Server:   baseServer,
		rewriter: starlark.NewRewriter(pipeline, baseServer.log),
	}
}

// Handler returns the HTTP handler with every endpoint registered
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	mux.HandleFunc("/v1/rewrite", s.handleRewrite)

	// Root endpoint
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"reimport is running"}`))
	})

	return mux
}

// Start starts the HTTP server with the rewrite endpoints
func (s *HTTPServer) Start() error {
	return s.Serve(s.Handler())
}

// handleRewrite runs one Starlark source through the pipeline
func (s *HTTPServer) handleRewrite(w http.ResponseWriter, r *http.Request) {
	// Only accept POST requests
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid body: %v", err))
		return
	}

	var req RewriteRequest
	if err := sonic.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %v", err))
		return
	}
	if req.Path == "" {
		req.Path = "BUILD.bazel"
	}

	runID := uuid.NewString()
	res, err := s.rewriter.RewriteSource(r.Context(), runID, req.Path, []byte(req.Source))
	if err != nil {
		s.log.Warn("Rewrite Failed",
			zap.String("run_id", runID),
			zap.String("path", req.Path),
			zap.Error(err),
		)
		writeError(w, statusFor(err), err.Error())
		return
	}

	rewrites := res.Changes
	if rewrites == nil {
		rewrites = []starlark.Change{}
	}
	writeJSON(w, http.StatusOK, RewriteResponse{
		RunID:    runID,
		Path:     res.Path,
		Source:   string(res.Output),
		Changed:  res.Changed(),
		Rewrites: rewrites,
	})
}

// statusFor maps a rewrite error to an HTTP status; parse, rule and
// budget errors are all the caller's input
func statusFor(err error) int {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return http.StatusServiceUnavailable
	}
	return http.StatusUnprocessableEntity
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := sonic.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
