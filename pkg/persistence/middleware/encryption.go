package middleware

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/bobcode/ussd/pkg/domain"
	"github.com/bobcode/ussd/pkg/ports"
)

// envelopeKey marks the data-bag slot carrying the encrypted payload.
const envelopeKey = "__encrypted__"

// EncryptionConfig holds the keys for encryption and decryption.
type EncryptionConfig struct {
	// ActiveKey encrypts new writes. Must be 32 bytes (AES-256).
	ActiveKey []byte

	// FallbackKeys are tried when decryption with the active key fails,
	// enabling zero-downtime key rotation.
	FallbackKeys [][]byte
}

type encryptionMiddleware struct {
	next   ports.SessionStore
	config EncryptionConfig
}

// NewEncryptionMiddleware encrypts the full session (identity,
// navigation state, data bag) with AES-GCM before it reaches the store.
// Only the session ID stays in the clear, as the store needs it to key
// the record.
func NewEncryptionMiddleware(config EncryptionConfig) Middleware {
	if len(config.ActiveKey) != 32 {
		panic("middleware: active key must be 32 bytes (AES-256)")
	}
	return func(next ports.SessionStore) ports.SessionStore {
		return &encryptionMiddleware{next: next, config: config}
	}
}

func (m *encryptionMiddleware) Set(ctx context.Context, session *domain.Session, ttl time.Duration) error {
	plain, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	ciphertext, err := encrypt(plain, m.config.ActiveKey)
	if err != nil {
		return fmt.Errorf("encrypt session: %w", err)
	}

	envelope := &domain.Session{
		ID: session.ID,
		Data: map[string]any{
			envelopeKey: base64.StdEncoding.EncodeToString(ciphertext),
		},
	}
	if err := m.next.Set(ctx, envelope, ttl); err != nil {
		return err
	}
	// The inner store stamped the envelope's expiry; reflect it back.
	session.ExpireAt = envelope.ExpireAt
	return nil
}

func (m *encryptionMiddleware) Get(ctx context.Context, sessionID string) (*domain.Session, error) {
	envelope, err := m.next.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	encoded, ok := envelope.Data[envelopeKey].(string)
	if !ok {
		// Fail secure: with encryption configured, a plain record is not
		// trusted.
		return nil, errors.New("session record is missing its encrypted envelope")
	}

	ciphertext, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode session ciphertext: %w", err)
	}

	plain, err := decryptWithRotation(ciphertext, m.config.ActiveKey, m.config.FallbackKeys)
	if err != nil {
		return nil, fmt.Errorf("decrypt session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(plain, &session); err != nil {
		return nil, fmt.Errorf("unmarshal decrypted session: %w", err)
	}
	return &session, nil
}

func (m *encryptionMiddleware) Remove(ctx context.Context, sessionID string) error {
	return m.next.Remove(ctx, sessionID)
}

func encrypt(plaintext, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decryptWithRotation(ciphertext, activeKey []byte, fallbackKeys [][]byte) ([]byte, error) {
	if plain, err := decrypt(ciphertext, activeKey); err == nil {
		return plain, nil
	}
	for _, key := range fallbackKeys {
		if plain, err := decrypt(ciphertext, key); err == nil {
			return plain, nil
		}
	}
	return nil, errors.New("decryption failed with all available keys")
}

func decrypt(ciphertext, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce := ciphertext[:gcm.NonceSize()]
	return gcm.Open(nil, nonce, ciphertext[gcm.NonceSize():], nil)
}
