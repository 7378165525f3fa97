package domain

import "time"

// Session is the per-subscriber state tracked across requests.
//
// Identity fields are immutable for the session's lifetime. Navigation
// state mutates as the engine runs; only the engine and action handlers
// may touch it. The Data bag is a plain string-keyed map so unknown keys
// round-trip harmlessly through serializing stores; typed access goes
// through Key[T] (see key.go).
type Session struct {
	ID      string `json:"id"`
	Msisdn  string `json:"msisdn"`
	UserID  string `json:"user_id"`
	Network string `json:"network"`

	// CurrentPage is the page the subscriber is on. Defaults to the menu root.
	CurrentPage string `json:"current_page"`

	// Level is the navigation depth, incremented on every rendered page.
	// It is a back-navigation heuristic, not a history stack.
	Level int `json:"level"`

	// Part is the 1-based pagination page within the current menu page.
	Part int `json:"part"`

	// AwaitingResumeChoice is set while the resume/fresh prompt is pending.
	AwaitingResumeChoice bool `json:"awaiting_resume_choice,omitempty"`

	// PreviousPage stashes the page to return to if the subscriber resumes.
	PreviousPage string `json:"previous_page,omitempty"`

	// ExpireAt is the moment the session lapses. Stores additionally honor
	// the TTL passed on every write.
	ExpireAt time.Time `json:"expire_at"`

	Data map[string]any `json:"data"`
}

// NewSession creates a fresh session positioned at rootPage.
func NewSession(id, msisdn, userID, network, rootPage string) *Session {
	return &Session{
		ID:          id,
		Msisdn:      msisdn,
		UserID:      userID,
		Network:     network,
		CurrentPage: rootPage,
		Level:       1,
		Part:        1,
		Data:        make(map[string]any),
	}
}

// Expired reports whether the session lapsed before now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpireAt.IsZero() && now.After(s.ExpireAt)
}

// ClearData empties the data bag.
func (s *Session) ClearData() {
	s.Data = make(map[string]any)
}

// Clone returns a deep copy. In-process stores hand out clones so callers
// cannot mutate stored state through a shared pointer.
func (s *Session) Clone() *Session {
	next := *s
	next.Data = make(map[string]any, len(s.Data))
	for k, v := range s.Data {
		next.Data[k] = v
	}
	return &next
}
