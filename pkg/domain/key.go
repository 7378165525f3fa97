package domain

import "github.com/mitchellh/mapstructure"

// Key pairs a compile-time type tag with a stable string key, giving
// callers static type checking over the session's untyped data bag.
// Two keys with the same name address the same slot; the type parameter
// only governs the read/write boundary.
type Key[T any] struct {
	name string
}

// NewKey creates a typed session key. The name must be non-empty.
func NewKey[T any](name string) Key[T] {
	if name == "" {
		panic("domain: session key name must not be empty")
	}
	return Key[T]{name: name}
}

func (k Key[T]) String() string { return k.name }

// Set stores value under the key.
func Set[T any](s *Session, key Key[T], value T) {
	if s.Data == nil {
		s.Data = make(map[string]any)
	}
	s.Data[key.name] = value
}

// Get reads the value under the key. Values written in-process come back
// directly; values that round-tripped through a serializing store (where
// numbers arrive as float64 and structs as map[string]any) are converted
// at this boundary. Mismatches fail soft: zero value, false.
func Get[T any](s *Session, key Key[T]) (T, bool) {
	var zero T
	raw, ok := s.Data[key.name]
	if !ok || raw == nil {
		return zero, false
	}
	if v, ok := raw.(T); ok {
		return v, true
	}

	var out T
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return zero, false
	}
	if err := dec.Decode(raw); err != nil {
		return zero, false
	}
	return out, true
}

// GetOr reads the value under the key, falling back to def when absent
// or unconvertible.
func GetOr[T any](s *Session, key Key[T], def T) T {
	if v, ok := Get(s, key); ok {
		return v
	}
	return def
}

// Has reports whether the key is present, regardless of stored type.
func Has[T any](s *Session, key Key[T]) bool {
	_, ok := s.Data[key.name]
	return ok
}

// Remove deletes the key's slot.
func Remove[T any](s *Session, key Key[T]) {
	delete(s.Data, key.name)
}
