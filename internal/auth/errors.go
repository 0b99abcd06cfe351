package auth

import "errors"

var (
	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrMissingSecret indicates no signing key was configured
	ErrMissingSecret = errors.New("jwt signing key is not configured")

	// ErrMissingEncryptionKey indicates no data protection key was configured
	ErrMissingEncryptionKey = errors.New("encryption key is not configured")

	// ErrInvalidCiphertext indicates a protected value could not be opened
	ErrInvalidCiphertext = errors.New("protected value is invalid or was tampered with")
)
