// Package httpapi exposes the prediction service over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/monicapserrano/text-to-cad/internal/domain"
	"github.com/monicapserrano/text-to-cad/internal/metrics"
)

// Predictor turns a description into a raw output vector.
type Predictor interface {
	Predict(ctx context.Context, description string) ([]float64, error)
}

// Pinger reports backing-store connectivity for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server handles the prediction API.
type Server struct {
	predictor Predictor
	cache     Pinger
	apiKeys   []string
	logger    *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(predictor Predictor, logger *zap.Logger) *Server {
	return &Server{predictor: predictor, logger: logger}
}

// WithAPIKeys enables bearer authentication. An empty list leaves the
// API open.
func (s *Server) WithAPIKeys(keys []string) *Server {
	s.apiKeys = keys
	return s
}

// WithCachePinger adds the prediction cache to the health report.
func (s *Server) WithCachePinger(p Pinger) *Server {
	s.cache = p
	return s
}

// Router builds the chi router with logging, metrics and auth
// middleware in place.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(JSONRecoverer(s.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(s.logger))
	r.Use(BearerAuthMiddleware(s.apiKeys))
	r.Use(metrics.Middleware())

	r.Post("/v1/predictions", s.CreatePrediction)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	return r
}

type predictionRequest struct {
	Description string `json:"description"`
}

type predictionResponse struct {
	Shape      string    `json:"shape"`
	Parameters []float64 `json:"parameters"`
	Vector     []float64 `json:"vector"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CreatePrediction handles POST /v1/predictions.
func (s *Server) CreatePrediction(w http.ResponseWriter, r *http.Request) {
	var req predictionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}
	if req.Description == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "description is required")
		return
	}

	vec, err := s.predictor.Predict(r.Context(), req.Description)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	obj, err := domain.DecodeOutputVector(vec)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, predictionResponse{
		Shape:      obj.Kind.String(),
		Parameters: obj.Parameters,
		Vector:     vec,
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"model": "ok"}
	if s.cache != nil {
		checks["cache"] = "ok"
		if err := s.cache.Ping(r.Context()); err != nil {
			// The cache degrades to computing, so its loss is not fatal.
			checks["cache"] = "unavailable"
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"checks": checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUnsupportedShape):
		s.logger.Warn("prediction outside the supported shapes", zap.Error(err))
		writeError(w, http.StatusUnprocessableEntity, "unsupported_shape",
			"prediction does not decode to a supported shape")
	case errors.Is(err, domain.ErrBadVectorLen):
		s.logger.Warn("prediction has unexpected width", zap.Error(err))
		writeError(w, http.StatusUnprocessableEntity, "bad_vector",
			"prediction does not decode to a supported shape")
	default:
		s.logger.Error("internal error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
