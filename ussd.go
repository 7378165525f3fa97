package ussd

import (
	"context"
	"log/slog"

	"github.com/bobcode/ussd/internal/metrics"
	"github.com/bobcode/ussd/internal/runtime"
	"github.com/bobcode/ussd/pkg/adapters/memory"
	"github.com/bobcode/ussd/pkg/domain"
	"github.com/bobcode/ussd/pkg/ports"
	"github.com/bobcode/ussd/pkg/registry"
)

// Re-exported request/response shapes so embedding applications only
// need the root package for the common path.
type (
	Request    = domain.Request
	Response   = domain.Response
	Session    = domain.Session
	StepResult = domain.StepResult
	Context    = domain.Context
)

// App is the high-level entry point: a built menu, a session store, and
// a handler registry wired into the navigation engine.
type App struct {
	engine   *runtime.Engine
	registry *registry.Registry
	store    ports.SessionStore
}

type config struct {
	runtime runtime.Config
	store   ports.SessionStore
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures the App.
type Option func(*config)

// New creates an App over a validated menu. Without WithStore the app
// uses an in-memory session store.
func New(menu *domain.Menu, reg *registry.Registry, opts ...Option) *App {
	c := &config{
		runtime: runtime.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.store == nil {
		c.store = memory.NewStore()
	}

	var engineOpts []runtime.Option
	if c.logger != nil {
		engineOpts = append(engineOpts, runtime.WithLogger(c.logger))
	}
	if c.metrics != nil {
		engineOpts = append(engineOpts, runtime.WithMetrics(c.metrics))
	}

	return &App{
		engine:   runtime.NewEngine(menu, c.store, reg, c.runtime, engineOpts...),
		registry: reg,
		store:    c.store,
	}
}

// HandleRequest processes one gateway request.
func (a *App) HandleRequest(ctx context.Context, req Request) (Response, error) {
	return a.engine.HandleRequest(ctx, req)
}

// Store exposes the session store for teardown paths (explicit removal
// of abandoned sessions).
func (a *App) Store() ports.SessionStore {
	return a.store
}
