// Package secret encrypts payment references at rest using fernet tokens.
package secret

import (
	"errors"
	"fmt"

	"github.com/fernet/fernet-go"
)

// ErrInvalidToken is returned when a stored token cannot be decrypted with the configured key.
var ErrInvalidToken = errors.New("secret: invalid or tampered token")

// Box seals and opens short strings. A nil *Box is valid and passes values through unchanged,
// which is how encryption is disabled when no key is configured.
type Box struct {
	key *fernet.Key
}

// NewBox returns a Box for the base64 encoded fernet key. An empty key returns a nil Box.
func NewBox(encodedKey string) (*Box, error) {
	if encodedKey == "" {
		return nil, nil
	}
	key, err := fernet.DecodeKey(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("secret: decode key: %w", err)
	}
	return &Box{key: key}, nil
}

// GenerateKey returns a fresh base64 encoded fernet key.
func GenerateKey() (string, error) {
	var key fernet.Key
	if err := key.Generate(); err != nil {
		return "", fmt.Errorf("secret: generate key: %w", err)
	}
	return key.Encode(), nil
}

// Seal encrypts plaintext. Empty strings are stored as empty strings.
func (b *Box) Seal(plaintext string) (string, error) {
	if b == nil || plaintext == "" {
		return plaintext, nil
	}
	token, err := fernet.EncryptAndSign([]byte(plaintext), b.key)
	if err != nil {
		return "", fmt.Errorf("secret: encrypt: %w", err)
	}
	return string(token), nil
}

// Open decrypts a token produced by Seal.
func (b *Box) Open(token string) (string, error) {
	if b == nil || token == "" {
		return token, nil
	}
	msg := fernet.VerifyAndDecrypt([]byte(token), 0, []*fernet.Key{b.key})
	if msg == nil {
		return "", ErrInvalidToken
	}
	return string(msg), nil
}
