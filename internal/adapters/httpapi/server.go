// Package httpapi binds the navigation engine to an HTTP gateway: one
// JSON POST per subscriber keystroke, already normalized upstream.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bobcode/ussd/internal/logging"
	"github.com/bobcode/ussd/pkg/domain"
	"github.com/bobcode/ussd/pkg/session"
)

// App is the engine surface the server needs.
type App interface {
	HandleRequest(ctx context.Context, req domain.Request) (domain.Response, error)
}

// Server wires the engine into a chi router.
type Server struct {
	app        App
	serializer *session.Serializer
	logger     *slog.Logger
	registry   *prometheus.Registry
}

// Option configures the server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithSerializer serializes same-session requests, for gateways that
// don't guarantee one leg at a time.
func WithSerializer(ser *session.Serializer) Option {
	return func(s *Server) { s.serializer = ser }
}

// WithMetricsRegistry mounts GET /metrics for the given registry.
func WithMetricsRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) { s.registry = reg }
}

// NewRouter builds the HTTP handler: POST /ussd, GET /healthz, and
// optionally GET /metrics.
func NewRouter(app App, opts ...Option) http.Handler {
	s := &Server{
		app:    app,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Post("/ussd", s.handleUSSD)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if s.registry != nil {
		r.Method(http.MethodGet, "/metrics",
			promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}
	return r
}

func (s *Server) handleUSSD(w http.ResponseWriter, r *http.Request) {
	var req domain.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Warn("invalid request body", "err", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.SessionID == "" {
		http.Error(w, "sessionID is required", http.StatusBadRequest)
		return
	}

	var resp domain.Response
	handle := func(ctx context.Context) error {
		var err error
		resp, err = s.app.HandleRequest(ctx, req)
		return err
	}

	var err error
	if s.serializer != nil {
		err = s.serializer.WithLock(r.Context(), req.SessionID, handle)
	} else {
		err = handle(r.Context())
	}

	if err != nil {
		// Configuration and store failures surface as request failures;
		// user errors were already absorbed into a normal reply.
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrPageNotFound) || errors.Is(err, domain.ErrInvalidMenu) {
			s.logger.Error("menu misconfiguration", "session_id", req.SessionID, "err", err)
		} else {
			s.logger.Error("request failed", "session_id", req.SessionID, "err", err)
		}
		http.Error(w, "request failed", status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("encode response", "session_id", req.SessionID, "err", err)
	}
}
