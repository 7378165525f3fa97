package runtime

import "time"

// Config is the engine's startup configuration. It is supplied once and
// never mutated afterwards.
type Config struct {
	// SessionTTL is the expiry window refreshed on every persisted write.
	SessionTTL time.Duration

	// InvalidInputMessage prefixes the re-rendered page on unmatched input.
	InvalidInputMessage string

	// DefaultEndMessage closes sessions that terminate without their own text.
	DefaultEndMessage string

	// BackCommand and HomeCommand are the navigation tokens.
	BackCommand string
	HomeCommand string

	// EnableAutoBackNavigation gates handling of BackCommand.
	EnableAutoBackNavigation bool

	// EnablePagination turns on threshold-based option pagination.
	EnablePagination    bool
	ItemsPerPage        int
	NextPageCommand     string
	PreviousPageCommand string

	// EnableSessionResumption offers the resume/fresh prompt when a new
	// session arrives over a live non-root record.
	EnableSessionResumption bool
	ResumePrompt            string
	ResumeOptionLabel       string
	StartFreshOptionLabel   string
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		SessionTTL:               2 * time.Minute,
		InvalidInputMessage:      "Invalid option. Please try again.",
		DefaultEndMessage:        "Thank you for using our service.",
		BackCommand:              "0",
		HomeCommand:              "00",
		EnableAutoBackNavigation: true,
		EnablePagination:         false,
		ItemsPerPage:             5,
		NextPageCommand:          "#",
		PreviousPageCommand:      "*",
		EnableSessionResumption:  false,
		ResumePrompt:             "You have an active session.",
		ResumeOptionLabel:        "Resume",
		StartFreshOptionLabel:    "Start Fresh",
	}
}
