package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenLifetime is the fixed expiry of issued tokens
const DefaultTokenLifetime = 30 * 24 * time.Hour

// Claims carried by issued tokens
type Claims struct {
	Email string `json:"email"`
	Note  string `json:"note,omitempty"`
	jwt.RegisteredClaims
}

// LoginResponse is returned by a successful login
type LoginResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

// TokenService issues and parses HS256 tokens
type TokenService struct {
	signingKey []byte
	lifetime   time.Duration
	timeFunc   func() time.Time
}

// NewTokenService creates a token service. A zero lifetime means
// DefaultTokenLifetime.
func NewTokenService(secret string, lifetime time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if lifetime <= 0 {
		lifetime = DefaultTokenLifetime
	}
	return &TokenService{
		signingKey: []byte(secret),
		lifetime:   lifetime,
		timeFunc:   time.Now,
	}, nil
}

// NewClaims is used by the bearer middleware to decode tokens
func NewClaims() jwt.Claims {
	return new(Claims)
}

// Issue signs a token carrying the email claim
func (s *TokenService) Issue(email string) (*LoginResponse, error) {
	now := s.timeFunc()
	claims := Claims{
		Email: email,
		Note:  "any other value",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &LoginResponse{Token: signed, Email: email}, nil
}

// Parse validates signature and lifetime and returns the claims
func (s *TokenService) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.signingKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}), jwt.WithTimeFunc(s.timeFunc))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
