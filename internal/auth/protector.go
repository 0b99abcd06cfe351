package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
)

const nonceLen = 24

// Protector encrypts short strings with a key derived from configuration
type Protector struct {
	key [32]byte
}

// NewProtector derives the secretbox key from purpose
func NewProtector(purpose string) *Protector {
	return &Protector{key: sha256.Sum256([]byte(purpose))}
}

// Protect seals plaintext, output is base64url(nonce || box)
func (p *Protector) Protect(plaintext string) (string, error) {
	var nonce [nonceLen]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", err
	}
	sealed := secretbox.Seal(nonce[:], []byte(plaintext), &nonce, &p.key)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Unprotect opens a value produced by Protect
func (p *Protector) Unprotect(protected string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(protected)
	if err != nil || len(raw) < nonceLen+secretbox.Overhead {
		return "", ErrInvalidCiphertext
	}
	var nonce [nonceLen]byte
	copy(nonce[:], raw[:nonceLen])
	opened, ok := secretbox.Open(nil, raw[nonceLen:], &nonce, &p.key)
	if !ok {
		return "", ErrInvalidCiphertext
	}
	return string(opened), nil
}
