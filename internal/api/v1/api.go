// Package v1 implements the native REST API.
package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/DelsinneJordan/BigFlix/internal/binding"
	"github.com/DelsinneJordan/BigFlix/internal/catalog"
	"github.com/DelsinneJordan/BigFlix/internal/request"
)

// Config holds API server configuration.
type Config struct {
	JWTSecret []byte
	Issuer    string // checked when set
	Version   string
	Logger    *slog.Logger
}

// Server is the v1 API server.
type Server struct {
	deps ServerDeps
	cfg  Config
	log  *slog.Logger
}

// NewWithDeps creates a new v1 API server with explicit dependencies.
func NewWithDeps(deps ServerDeps, cfg Config) (*Server, error) {
	if err := deps.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingDependency, err)
	}
	if len(cfg.JWTSecret) == 0 {
		return nil, errors.New("jwt secret is required")
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Server{deps: deps, cfg: cfg, log: log.With("component", "api")}, nil
}

// RegisterRoutes registers API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// Catalog
	mux.HandleFunc("GET /api/v1/search", s.authenticate(s.search))
	mux.HandleFunc("GET /api/v1/items/{kind}/{id}", s.authenticate(s.getItem))

	// Requests
	mux.HandleFunc("POST /api/v1/requests", s.authenticate(s.createRequest))
	mux.HandleFunc("GET /api/v1/requests", s.authenticate(s.listRequests))
	mux.HandleFunc("GET /api/v1/requests/{id}", s.authenticate(s.getRequest))
	mux.HandleFunc("POST /api/v1/requests/{id}/approve", s.authenticate(s.approveRequest))
	mux.HandleFunc("POST /api/v1/requests/{id}/reject", s.authenticate(s.rejectRequest))
	mux.HandleFunc("DELETE /api/v1/requests/{id}", s.authenticate(s.deleteRequest))
	mux.HandleFunc("GET /api/v1/requests/{id}/events", s.authenticate(s.listRequestEvents))

	// Servers
	mux.HandleFunc("GET /api/v1/servers", s.authenticate(s.listServers))

	// Audit
	mux.HandleFunc("GET /api/v1/events", s.authenticate(s.listEvents))

	// System
	mux.HandleFunc("GET /api/v1/status", s.getStatus)
}

// Error response
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message, Code: errCode})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

// writeServiceError maps domain errors to HTTP responses.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, request.ErrDuplicate):
		writeError(w, http.StatusConflict, "DUPLICATE", err.Error())
	case errors.Is(err, request.ErrInvalidState):
		writeError(w, http.StatusConflict, "INVALID_STATE", err.Error())
	case errors.Is(err, request.ErrForbidden):
		writeError(w, http.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, request.ErrNotFound),
		errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, binding.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, binding.ErrNoServer):
		writeError(w, http.StatusBadRequest, "NO_SERVER", err.Error())
	case errors.Is(err, catalog.ErrUnavailable):
		writeError(w, http.StatusBadGateway, "CATALOG_UNAVAILABLE", err.Error())
	default:
		s.log.Error("request failed", "request_id", RequestID(r.Context()), "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", err.Error())
	}
}

// pathID extracts an integer ID from the URL path.
func pathID(r *http.Request, name string) (int64, error) {
	idStr := r.PathValue(name)
	if idStr == "" {
		return 0, fmt.Errorf("missing path parameter: %s", name)
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", name, idStr)
	}
	return id, nil
}

// queryInt extracts an optional integer from query string.
func queryInt(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}

// queryString extracts an optional string from query string.
func queryString(r *http.Request, name string) *string {
	val := r.URL.Query().Get(name)
	if val == "" {
		return nil
	}
	return &val
}

// decodeOptional decodes a JSON body, treating an empty body as zero values.
func decodeOptional(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (s *Server) getStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok", Version: s.cfg.Version})
}
