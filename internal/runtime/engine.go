// Package runtime implements the navigation engine: the per-request
// state machine that loads a session, resolves the subscriber's input
// against the menu graph, dispatches action handlers, and renders the
// reply.
package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bobcode/ussd/internal/logging"
	"github.com/bobcode/ussd/internal/metrics"
	"github.com/bobcode/ussd/pkg/domain"
	"github.com/bobcode/ussd/pkg/ports"
	"github.com/bobcode/ussd/pkg/registry"
)

// Engine orchestrates one request at a time: load session, run the
// state machine, persist, reply. It holds no per-request state of its
// own, so distinct sessions can be processed concurrently. Requests for
// the same session ID are assumed serialized by the gateway.
type Engine struct {
	menu     *domain.Menu
	store    ports.SessionStore
	registry *registry.Registry
	cfg      Config
	logger   *slog.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

// Option configures the engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithClock overrides the time source (tests).
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates an engine over a built menu, a session store, and a
// handler registry. The menu must have passed builder validation; its
// root is trusted to resolve.
func NewEngine(menu *domain.Menu, store ports.SessionStore, reg *registry.Registry, cfg Config, opts ...Option) *Engine {
	e := &Engine{
		menu:     menu,
		store:    store,
		registry: reg,
		cfg:      cfg,
		logger:   logging.NewNop(),
		metrics:  metrics.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// HandleRequest processes one gateway request end to end. User errors
// and integration gaps come back as normal replies; menu
// misconfiguration and store failures fail the request.
func (e *Engine) HandleRequest(ctx context.Context, req domain.Request) (domain.Response, error) {
	start := e.now()
	resp, err := e.handle(ctx, req)
	e.metrics.RequestDuration.Observe(e.now().Sub(start).Seconds())

	switch {
	case err != nil:
		e.metrics.Requests.WithLabelValues(metrics.OutcomeError).Inc()
	case resp.ContinueSession:
		e.metrics.Requests.WithLabelValues(metrics.OutcomeContinue).Inc()
	default:
		e.metrics.Requests.WithLabelValues(metrics.OutcomeEnd).Inc()
	}
	return resp, err
}

func (e *Engine) handle(ctx context.Context, req domain.Request) (domain.Response, error) {
	existing, err := e.store.Get(ctx, req.SessionID)
	if err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return domain.Response{}, fmt.Errorf("load session %s: %w", req.SessionID, err)
	}

	// Resumption branch: a new session arriving over a live non-root
	// record yields the resume/fresh prompt and nothing else this request.
	if req.NewSession && existing != nil && e.cfg.EnableSessionResumption &&
		!existing.Expired(e.now()) && existing.CurrentPage != e.menu.RootID {

		existing.AwaitingResumeChoice = true
		existing.PreviousPage = existing.CurrentPage

		if err := e.store.Set(ctx, existing, e.cfg.SessionTTL); err != nil {
			return domain.Response{}, fmt.Errorf("persist session %s: %w", req.SessionID, err)
		}
		return respond(req, domain.Continue(e.resumePrompt())), nil
	}

	session := existing
	if session == nil {
		session = domain.NewSession(req.SessionID, req.Msisdn, req.UserID, req.Network, e.menu.RootID)
	}

	var result domain.StepResult
	if req.NewSession {
		e.setPage(session, e.menu.RootID)
		session.AwaitingResumeChoice = false
		session.PreviousPage = ""
		e.metrics.SessionsStarted.Inc()
		result, err = e.render(session, "")
	} else {
		result, err = e.process(ctx, session, req.Input)
	}
	if err != nil {
		return domain.Response{}, err
	}

	// Post-processing, uniform across branches. Navigation re-renders the
	// destination page and discards any message the outcome carried.
	if result.GoHome {
		e.setPage(session, e.menu.RootID)
		session.Level = 1
		result, err = e.render(session, "")
		if err != nil {
			return domain.Response{}, err
		}
	}
	if result.NextPage != "" {
		e.setPage(session, result.NextPage)
		result, err = e.render(session, "")
		if err != nil {
			return domain.Response{}, err
		}
	}

	if err := e.store.Set(ctx, session, e.cfg.SessionTTL); err != nil {
		return domain.Response{}, fmt.Errorf("persist session %s: %w", req.SessionID, err)
	}

	return respond(req, result), nil
}

// setPage moves the session to a page, resetting pagination when the
// page actually changes.
func (e *Engine) setPage(session *domain.Session, pageID string) {
	if session.CurrentPage != pageID {
		session.Part = 1
	}
	session.CurrentPage = pageID
}

func (e *Engine) resumePrompt() string {
	return fmt.Sprintf("%s\n1. %s\n2. %s",
		e.cfg.ResumePrompt, e.cfg.ResumeOptionLabel, e.cfg.StartFreshOptionLabel)
}

func respond(req domain.Request, result domain.StepResult) domain.Response {
	return domain.Response{
		SessionID:       req.SessionID,
		UserID:          req.UserID,
		Msisdn:          req.Msisdn,
		Message:         result.Message,
		ContinueSession: result.ContinueSession,
	}
}
