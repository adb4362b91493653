package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrInvalid     = errors.New("jwtx: invalid token")
)

// Verifier validates a session token and gives back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// MinSecretLength is the shortest acceptable HS256 secret.
const MinSecretLength = 32

// SessionSigner signs and verifies session tokens with a shared HS256 secret.
type SessionSigner struct {
	secret []byte
	issuer string
}

// NewSessionSigner builds a signer. The secret must be at least 32 bytes.
func NewSessionSigner(secret []byte, issuer string) (*SessionSigner, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("jwtx: session secret must be at least 32 bytes, got %d", len(secret))
	}
	return &SessionSigner{secret: secret, issuer: issuer}, nil
}

// Sign produces a compact HS256 token for the claims.
func (s *SessionSigner) Sign(claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign session token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a compact token: signature, issuer, expiry.
func (s *SessionSigner) Verify(raw string) (Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: unexpected signing method %v", ErrInvalid, t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrExpired
		}
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	if s.issuer != "" && claims.Issuer != s.issuer {
		return Claims{}, ErrIssuer
	}

	return claims, nil
}
