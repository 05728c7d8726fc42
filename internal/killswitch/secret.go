// Package killswitch implements the remote wipe-and-exit trigger.
package killswitch

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// SecretSize is the length of the kill-switch secret in bytes.
const SecretSize = 64

// Digest is the BLAKE2b-512 hash of a secret. Listeners hold only this.
type Digest [blake2b.Size]byte

// Matches reports whether candidate hashes to d, in constant time.
func (d Digest) Matches(candidate []byte) bool {
	sum := blake2b.Sum512(candidate)
	return subtle.ConstantTimeCompare(d[:], sum[:]) == 1
}

// Secret is a freshly generated kill-switch key. It lives only in memory.
type Secret struct {
	raw []byte
}

// NewSecret draws SecretSize bytes from crypto/rand.
func NewSecret() (*Secret, error) {
	raw := make([]byte, SecretSize)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("generate kill-switch secret: %w", err)
	}
	return &Secret{raw: raw}, nil
}

// Hex encodes the secret for the operator console.
func (s *Secret) Hex() string {
	return hex.EncodeToString(s.raw)
}

// Digest hashes the secret.
func (s *Secret) Digest() Digest {
	return blake2b.Sum512(s.raw)
}

// Bytes returns the raw secret. Callers must not retain it past Wipe.
func (s *Secret) Bytes() []byte {
	return s.raw
}

// Wipe zeroes the raw secret once it has been shown to the operator.
func (s *Secret) Wipe() {
	clear(s.raw)
}

// ParseHex decodes an operator-supplied hex secret.
func ParseHex(value string) ([]byte, error) {
	raw, err := hex.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("decode secret: %w", err)
	}
	if len(raw) != SecretSize {
		return nil, fmt.Errorf("secret must be %d bytes, got %d", SecretSize, len(raw))
	}
	return raw, nil
}
