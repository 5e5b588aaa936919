package chi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/fundex/internal/domain/fund/patch"
	"github.com/kailas-cloud/fundex/internal/domain/fund/query"
	"github.com/kailas-cloud/fundex/internal/logger"
	funduc "github.com/kailas-cloud/fundex/internal/usecase/fund"
	healthuc "github.com/kailas-cloud/fundex/internal/usecase/health"
)

// Banner is the plain-text body of GET /.
const Banner = "Funds API is running"

// Server serves the fund HTTP API.
type Server struct {
	funds         *funduc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	metrics       http.Handler
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(funds *funduc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	return &Server{
		funds:         funds,
		health:        health,
		logger:        logger,
		metrics:       promhttp.Handler(),
		errorHandlers: defaultErrorHandlers(),
	}
}

// Register mounts the API routes on r.
func (s *Server) Register(r chi.Router) {
	r.Get("/", s.Root)
	r.Get("/health", s.HealthCheck)
	r.Method(http.MethodGet, "/metrics", s.metrics)

	r.Route("/api/funds", func(r chi.Router) {
		r.Get("/", s.ListFunds)
		r.Get("/{id}", s.GetFund)
		r.Put("/{id}", s.UpdateFund)
		r.Patch("/{id}", s.UpdateFund)
		r.Delete("/{id}", s.DeleteFund)
	})
}

// Root handles GET /.
func (s *Server) Root(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, Banner)
}

// ListFunds handles GET /api/funds.
func (s *Server) ListFunds(w http.ResponseWriter, r *http.Request) {
	q := query.FromValues(r.URL.Query())
	funds, err := s.funds.List(r.Context(), q)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, fundsToResponse(funds))
}

// GetFund handles GET /api/funds/{id}.
func (s *Server) GetFund(w http.ResponseWriter, r *http.Request) {
	f, err := s.funds.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, fundToResponse(f))
}

// UpdateFund handles PUT and PATCH /api/funds/{id}.
// The body is a JSON object of fields to replace; an empty body changes nothing.
func (s *Server) UpdateFund(w http.ResponseWriter, r *http.Request) {
	p, ok := s.decodePatch(w, r)
	if !ok {
		return
	}

	f, err := s.funds.Update(r.Context(), chi.URLParam(r, "id"), p)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, fundToResponse(f))
}

// DeleteFund handles DELETE /api/funds/{id}.
func (s *Server) DeleteFund(w http.ResponseWriter, r *http.Request) {
	if err := s.funds.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, DeleteResponse{Success: true})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
		Funds:  report.Funds,
	})
}

func (s *Server) decodePatch(w http.ResponseWriter, r *http.Request) (patch.Patch, bool) {
	var body map[string]any
	err := json.NewDecoder(r.Body).Decode(&body)

	var tooLarge *http.MaxBytesError
	switch {
	case errors.Is(err, io.EOF):
		return patch.Patch{}, true
	case errors.As(err, &tooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, CodePayloadTooLarge, "request body too large")
		return patch.Patch{}, false
	case err != nil:
		writeError(w, http.StatusBadRequest, CodeBadRequest, "invalid request body: expected a JSON object")
		return patch.Patch{}, false
	case body == nil:
		// JSON null
		writeError(w, http.StatusBadRequest, CodeBadRequest, "invalid request body: expected a JSON object")
		return patch.Patch{}, false
	}
	return patch.FromMap(body), true
}

func (s *Server) requestLogger(r *http.Request) *zap.Logger {
	return logger.FromContextOr(r.Context(), s.logger)
}
