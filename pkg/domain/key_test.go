package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobcode/ussd/pkg/domain"
)

type transferState struct {
	Recipient string  `json:"recipient"`
	Amount    float64 `json:"amount"`
}

func TestKey_SetGet(t *testing.T) {
	s := domain.NewSession("sess-1", "233200000001", "", "MTN", "main")

	keyAttempts := domain.NewKey[int]("attempts")
	keyName := domain.NewKey[string]("name")

	domain.Set(s, keyAttempts, 3)
	domain.Set(s, keyName, "Kofi")

	got, ok := domain.Get(s, keyAttempts)
	assert.True(t, ok)
	assert.Equal(t, 3, got)

	name, ok := domain.Get(s, keyName)
	assert.True(t, ok)
	assert.Equal(t, "Kofi", name)
}

func TestKey_Missing(t *testing.T) {
	s := domain.NewSession("sess-1", "", "", "", "main")

	key := domain.NewKey[int]("absent")

	got, ok := domain.Get(s, key)
	assert.False(t, ok)
	assert.Zero(t, got)
	assert.Equal(t, 7, domain.GetOr(s, key, 7))
	assert.False(t, domain.Has(s, key))
}

func TestKey_SurvivesJSONRoundTrip(t *testing.T) {
	s := domain.NewSession("sess-1", "", "", "", "main")

	keyCount := domain.NewKey[int]("count")
	keyState := domain.NewKey[transferState]("transfer")
	domain.Set(s, keyCount, 42)
	domain.Set(s, keyState, transferState{Recipient: "233200000002", Amount: 12.5})

	// Through a serializing store, numbers come back as float64 and
	// structs as map[string]any.
	raw, err := json.Marshal(s)
	require.NoError(t, err)
	var back domain.Session
	require.NoError(t, json.Unmarshal(raw, &back))

	count, ok := domain.Get(&back, keyCount)
	assert.True(t, ok)
	assert.Equal(t, 42, count)

	state, ok := domain.Get(&back, keyState)
	assert.True(t, ok)
	assert.Equal(t, "233200000002", state.Recipient)
	assert.Equal(t, 12.5, state.Amount)
}

func TestKey_MismatchFailsSoft(t *testing.T) {
	s := domain.NewSession("sess-1", "", "", "", "main")
	s.Data["slot"] = map[string]any{"nested": true}

	key := domain.NewKey[int]("slot")

	got, ok := domain.Get(s, key)
	assert.False(t, ok)
	assert.Zero(t, got)
	assert.True(t, domain.Has(s, key), "presence check ignores the stored type")
}

func TestKey_Remove(t *testing.T) {
	s := domain.NewSession("sess-1", "", "", "", "main")

	key := domain.NewKey[string]("scratch")
	domain.Set(s, key, "value")
	require.True(t, domain.Has(s, key))

	domain.Remove(s, key)
	assert.False(t, domain.Has(s, key))
}

func TestNewKey_EmptyNamePanics(t *testing.T) {
	assert.Panics(t, func() { domain.NewKey[int]("") })
}

func TestSession_Clone(t *testing.T) {
	s := domain.NewSession("sess-1", "233200000001", "user-1", "MTN", "main")
	s.Data["a"] = "original"

	clone := s.Clone()
	clone.Data["a"] = "mutated"
	clone.CurrentPage = "elsewhere"

	assert.Equal(t, "original", s.Data["a"])
	assert.Equal(t, "main", s.CurrentPage)
}
