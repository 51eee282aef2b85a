// Package token issues and verifies signed session tokens.
//
// Tokens are compact HS256 JWTs carrying the authenticated subject and an
// expiry. They are stateless: there is no revocation list, verification is
// pure computation against the signing key.
package token

import (
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"
)

// Service signs and verifies session tokens with a symmetric key.
type Service struct {
	signKey []byte
	ttl     time.Duration
}

// New constructs a token service. ttl bounds the lifetime of issued tokens.
func New(signKey []byte, ttl time.Duration) *Service {
	return &Service{signKey: signKey, ttl: ttl}
}

// Issue creates a signed HS256 JWT for the given subject.
func (s *Service) Issue(subject uuid.UUID) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   subject.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.signKey)
	return signed, exp, err
}

// Verify validates signature, signing method, and expiry, and returns the
// subject on success. Invalid input is an expected, non-exceptional case:
// any failure (malformed token, bad signature, expired, foreign method,
// unparseable subject) reports ok=false and never an error.
func (s *Service) Verify(raw string) (uuid.UUID, bool) {
	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return s.signKey, nil
	})
	if err != nil || !parsed.Valid {
		return uuid.Nil, false
	}
	id, err := uuid.FromString(claims.Subject)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
