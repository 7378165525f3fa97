package middleware

import (
	"context"
	"regexp"
	"time"

	"github.com/bobcode/ussd/pkg/domain"
	"github.com/bobcode/ussd/pkg/ports"
)

type piiMiddleware struct {
	next     ports.SessionStore
	patterns []*regexp.Regexp
}

// NewPIIMiddleware masks data-bag values whose keys match any of the
// patterns (e.g. "pin", "account_.*") before the session is persisted.
// The in-memory session the engine holds is untouched; masking applies
// to the stored copy only.
func NewPIIMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.SessionStore) ports.SessionStore {
		return &piiMiddleware{next: next, patterns: patterns}
	}
}

func (m *piiMiddleware) Set(ctx context.Context, session *domain.Session, ttl time.Duration) error {
	cloned := session.Clone()
	maskMap(cloned.Data, m.patterns)
	if err := m.next.Set(ctx, cloned, ttl); err != nil {
		return err
	}
	// The inner store stamped the clone's expiry; reflect it back.
	session.ExpireAt = cloned.ExpireAt
	return nil
}

func (m *piiMiddleware) Get(ctx context.Context, sessionID string) (*domain.Session, error) {
	return m.next.Get(ctx, sessionID)
}

func (m *piiMiddleware) Remove(ctx context.Context, sessionID string) error {
	return m.next.Remove(ctx, sessionID)
}

func maskMap(m map[string]any, patterns []*regexp.Regexp) {
	for k, v := range m {
		if matchesAny(k, patterns) {
			m[k] = "***"
			continue
		}
		// Nested maps are shared with the caller's session; copy before
		// masking so only the stored record is touched.
		if subMap, ok := v.(map[string]any); ok {
			copied := make(map[string]any, len(subMap))
			for sk, sv := range subMap {
				copied[sk] = sv
			}
			maskMap(copied, patterns)
			m[k] = copied
		}
	}
}

func matchesAny(key string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(key) {
			return true
		}
	}
	return false
}
