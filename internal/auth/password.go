package auth

import (
	"crypto/rand"
	"crypto/sha1" //nolint:gosec // PBKDF2 PRF, kept for compatibility with stored hashes
	"crypto/subtle"
	"encoding/base64"

	"golang.org/x/crypto/pbkdf2"
)

const (
	hashIterations = 10000
	hashKeyLen     = 32
	saltLen        = 16
)

// HashResult is a salted password hash, both values base64 encoded
type HashResult struct {
	Hash string
	Salt string
}

// Hash derives the PBKDF2 hash of password. An empty salt generates a new
// random one.
func Hash(password, salt string) (HashResult, error) {
	var saltBytes []byte
	if salt == "" {
		saltBytes = make([]byte, saltLen)
		if _, err := rand.Read(saltBytes); err != nil {
			return HashResult{}, err
		}
		salt = base64.StdEncoding.EncodeToString(saltBytes)
	} else {
		var err error
		saltBytes, err = base64.StdEncoding.DecodeString(salt)
		if err != nil {
			// salts written by other tools are used as raw bytes
			saltBytes = []byte(salt)
		}
	}
	key := pbkdf2.Key([]byte(password), saltBytes, hashIterations, hashKeyLen, sha1.New)
	return HashResult{
		Hash: base64.StdEncoding.EncodeToString(key),
		Salt: salt,
	}, nil
}

// VerifyPassword recomputes the salted hash and compares it in constant time
func VerifyPassword(password, salt, storedHash string) bool {
	if salt == "" || storedHash == "" {
		return false
	}
	res, err := Hash(password, salt)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(res.Hash), []byte(storedHash)) == 1
}
