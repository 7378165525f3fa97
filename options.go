package ussd

import (
	"log/slog"
	"time"

	"github.com/bobcode/ussd/internal/metrics"
	"github.com/bobcode/ussd/internal/runtime"
	"github.com/bobcode/ussd/pkg/ports"
)

// WithStore sets the session store (default: in-memory).
func WithStore(store ports.SessionStore) Option {
	return func(c *config) { c.store = store }
}

// WithLogger sets the structured logger (default: no-op).
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithMetrics sets the Prometheus metrics sink (default: unregistered).
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *config) { c.metrics = m }
}

// WithEngineConfig replaces the whole engine configuration. Finer-grained
// options below apply on top of it in declaration order.
func WithEngineConfig(cfg runtime.Config) Option {
	return func(c *config) { c.runtime = cfg }
}

// WithSessionTTL sets the expiry window refreshed on every write.
func WithSessionTTL(ttl time.Duration) Option {
	return func(c *config) { c.runtime.SessionTTL = ttl }
}

// WithCommands sets the back and home navigation tokens.
func WithCommands(back, home string) Option {
	return func(c *config) {
		c.runtime.BackCommand = back
		c.runtime.HomeCommand = home
	}
}

// WithAutoBackNavigation toggles handling of the back command.
func WithAutoBackNavigation(enabled bool) Option {
	return func(c *config) { c.runtime.EnableAutoBackNavigation = enabled }
}

// WithPagination enables threshold-based pagination with the given page size.
func WithPagination(itemsPerPage int) Option {
	return func(c *config) {
		c.runtime.EnablePagination = true
		c.runtime.ItemsPerPage = itemsPerPage
	}
}

// WithPaginationCommands sets the next/previous page tokens.
func WithPaginationCommands(next, previous string) Option {
	return func(c *config) {
		c.runtime.NextPageCommand = next
		c.runtime.PreviousPageCommand = previous
	}
}

// WithMessages sets the invalid-input and default end messages.
func WithMessages(invalidInput, defaultEnd string) Option {
	return func(c *config) {
		c.runtime.InvalidInputMessage = invalidInput
		c.runtime.DefaultEndMessage = defaultEnd
	}
}

// WithResumption enables the resume/fresh prompt for returning subscribers.
func WithResumption() Option {
	return func(c *config) { c.runtime.EnableSessionResumption = true }
}

// WithResumptionLabels customizes the resume prompt and its two option labels.
func WithResumptionLabels(prompt, resume, fresh string) Option {
	return func(c *config) {
		c.runtime.ResumePrompt = prompt
		c.runtime.ResumeOptionLabel = resume
		c.runtime.StartFreshOptionLabel = fresh
	}
}
