package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/aretw0/cfrac"
	"github.com/aretw0/cfrac/pkg/domain"
	"github.com/aretw0/cfrac/pkg/ports"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:embed openapi.yaml
var rawSpec []byte

var (
	specOnce sync.Once
	specDoc  *openapi3.T
	specErr  error
)

// GetSwagger parses and validates the embedded OpenAPI document.
func GetSwagger() (*openapi3.T, error) {
	specOnce.Do(func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromData(rawSpec)
		if err != nil {
			specErr = fmt.Errorf("failed to parse OpenAPI document: %w", err)
			return
		}
		if err := doc.Validate(context.Background()); err != nil {
			specErr = fmt.Errorf("invalid OpenAPI document: %w", err)
			return
		}
		specDoc = doc
	})
	return specDoc, specErr
}

// Server serves the engine as a JSON API.
type Server struct {
	Calc    ports.Calculator
	Cache   ports.ExpansionCache
	Metrics http.Handler
	Logger  *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithCache exposes the cache contents on GET /cache.
func WithCache(cache ports.ExpansionCache) Option {
	return func(s *Server) {
		s.Cache = cache
	}
}

// WithMetricsHandler mounts a metrics handler (e.g. promhttp) on GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.Metrics = h
	}
}

// WithLogger sets the logger used for request errors.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(calc ports.Calculator, opts ...Option) http.Handler {
	s := &Server{
		Calc:   calc,
		Logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Post("/expand", s.Expand)
	r.Post("/reconstruct", s.Reconstruct)
	r.Post("/convergents", s.Convergents)
	r.Post("/approximate", s.Approximate)
	r.Get("/cache", s.ListCache)
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})

	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics)
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>cfrac API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// RationalRequest identifies a rational either as "value" or as p and q.
type RationalRequest struct {
	Value string `json:"value,omitempty"`
	P     int64  `json:"p"`
	Q     *int64 `json:"q,omitempty"`
}

// rational resolves the request into a (p, q) pair. Q defaults to 1.
func (req RationalRequest) rational() (domain.Rational, error) {
	if req.Value != "" {
		return domain.ParseRational(req.Value)
	}
	q := int64(1)
	if req.Q != nil {
		q = *req.Q
	}
	return domain.Rational{Num: req.P, Den: q}, nil
}

// ApproximateRequest adds the denominator bound to a RationalRequest.
type ApproximateRequest struct {
	RationalRequest
	MaxDenominator int64 `json:"max_denominator"`
}

// ReconstructRequest carries coefficients as a list or in canonical notation.
type ReconstructRequest struct {
	Coefficients []int64 `json:"coefficients,omitempty"`
	Notation     string  `json:"notation,omitempty"`
}

type ExpandResponse struct {
	Rational     domain.Rational `json:"rational"`
	Coefficients []int64         `json:"coefficients"`
	Notation     string          `json:"notation"`
	Terms        int             `json:"terms"`
}

type ReconstructResponse struct {
	Rational domain.Rational `json:"rational"`
	Reduced  domain.Rational `json:"reduced"`
}

type ConvergentsResponse struct {
	Rational    domain.Rational     `json:"rational"`
	Convergents []domain.Convergent `json:"convergents"`
}

type ApproximateResponse struct {
	Rational       domain.Rational `json:"rational"`
	Approximation  domain.Rational `json:"approximation"`
	MaxDenominator int64           `json:"max_denominator"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Expand handles the POST /expand request.
func (s *Server) Expand(w http.ResponseWriter, r *http.Request) {
	var body RationalRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	rat, err := body.rational()
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid rational", err)
		return
	}

	cf, err := s.Calc.Expand(r.Context(), rat.Num, rat.Den)
	if err != nil {
		s.writeError(w, statusFor(err), "Expand error", err)
		return
	}

	s.writeJSON(w, ExpandResponse{
		Rational:     domain.Reduce(rat.Num, rat.Den),
		Coefficients: cf.Coefficients(),
		Notation:     cf.String(),
		Terms:        cf.Len(),
	})
}

// Reconstruct handles the POST /reconstruct request.
func (s *Server) Reconstruct(w http.ResponseWriter, r *http.Request) {
	var body ReconstructRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	coefficients := body.Coefficients
	if coefficients == nil && body.Notation != "" {
		cf, err := domain.ParseContinuedFraction(body.Notation)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "Invalid notation", err)
			return
		}
		coefficients = cf.Coefficients()
	}

	rat, err := s.Calc.Reconstruct(r.Context(), coefficients)
	if err != nil {
		s.writeError(w, statusFor(err), "Reconstruct error", err)
		return
	}

	s.writeJSON(w, ReconstructResponse{
		Rational: rat,
		Reduced:  rat.Reduced(),
	})
}

// Convergents handles the POST /convergents request.
func (s *Server) Convergents(w http.ResponseWriter, r *http.Request) {
	var body RationalRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	rat, err := body.rational()
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid rational", err)
		return
	}

	conv, err := s.Calc.Convergents(r.Context(), rat.Num, rat.Den)
	if err != nil {
		s.writeError(w, statusFor(err), "Convergents error", err)
		return
	}

	s.writeJSON(w, ConvergentsResponse{
		Rational:    domain.Reduce(rat.Num, rat.Den),
		Convergents: conv,
	})
}

// Approximate handles the POST /approximate request.
func (s *Server) Approximate(w http.ResponseWriter, r *http.Request) {
	var body ApproximateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	rat, err := body.rational()
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid rational", err)
		return
	}

	approx, err := s.Calc.Approximate(r.Context(), rat.Num, rat.Den, body.MaxDenominator)
	if err != nil {
		s.writeError(w, statusFor(err), "Approximate error", err)
		return
	}

	s.writeJSON(w, ApproximateResponse{
		Rational:       domain.Reduce(rat.Num, rat.Den),
		Approximation:  approx,
		MaxDenominator: body.MaxDenominator,
	})
}

// ListCache handles the GET /cache request.
func (s *Server) ListCache(w http.ResponseWriter, r *http.Request) {
	if s.Cache == nil {
		s.writeError(w, http.StatusNotFound, "Cache disabled", errors.New("no expansion cache configured"))
		return
	}
	keys, err := s.Cache.List(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "Cache error", err)
		return
	}
	s.writeJSON(w, keys)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	}

	s.writeJSON(w, map[string]string{
		"app":         "cfrac-http",
		"version":     strings.TrimSpace(cfrac.Version),
		"api_version": apiVersion,
	})
}

// -- Helpers --

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrDegenerateRational):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrOutOfRange),
		errors.Is(err, domain.ErrInvalidBound),
		errors.Is(err, domain.ErrInvalidFormat):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("Response encode failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string, err error) {
	if status >= http.StatusInternalServerError {
		s.Logger.Error(msg, "error", err)
	} else {
		s.Logger.Warn(msg, "error", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: fmt.Sprintf("%s: %v", msg, err)})
}
