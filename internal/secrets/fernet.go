// Package secrets encrypts credentials at rest with fernet.
package secrets

import (
	"fmt"

	"github.com/fernet/fernet-go"
)

// Box encrypts and decrypts short secrets with a single fernet key.
type Box struct {
	key *fernet.Key
}

// NewBox parses a base64 fernet key. An empty key is rejected; callers that
// have no key configured must not construct a Box.
func NewBox(key string) (*Box, error) {
	if key == "" {
		return nil, fmt.Errorf("secret key is empty")
	}

	k, err := fernet.DecodeKey(key)
	if err != nil {
		return nil, fmt.Errorf("failed to decode secret key: %w", err)
	}

	return &Box{key: k}, nil
}

// Encrypt seals a plaintext secret into a fernet token.
func (b *Box) Encrypt(plaintext string) (string, error) {
	tok, err := fernet.EncryptAndSign([]byte(plaintext), b.key)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt secret: %w", err)
	}
	return string(tok), nil
}

// Decrypt opens a fernet token. Tokens do not expire; ttl 0 disables the
// timestamp check.
func (b *Box) Decrypt(token string) (string, error) {
	msg := fernet.VerifyAndDecrypt([]byte(token), 0, []*fernet.Key{b.key})
	if msg == nil {
		return "", fmt.Errorf("failed to decrypt secret: invalid token")
	}
	return string(msg), nil
}
