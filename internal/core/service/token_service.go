package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jobboard/users-api/internal/core/domain"
)

const defaultTokenTTL = 24 * time.Hour

// sessionClaims is the full claim set embedded in a session token. Only id
// and role are trusted forward after verification.
type sessionClaims struct {
	ID   int         `json:"id"`
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 session tokens. The signing secret
// is supplied at construction; there is no process-wide lookup.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue encodes the identity into a signed token expiring after the
// configured TTL.
func (s *TokenService) Issue(identity domain.Identity) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		ID:   identity.ID,
		Role: identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// Verify parses and validates a token, returning the embedded identity.
// Any failure wraps domain.ErrTokenInvalid; the parse error stays attached so
// expiry, tampering and malformed input remain distinguishable in logs.
func (s *TokenService) Verify(token string) (domain.Identity, error) {
	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		return domain.Identity{}, errors.Join(domain.ErrTokenInvalid, err)
	}
	if !parsed.Valid {
		return domain.Identity{}, domain.ErrTokenInvalid
	}

	return domain.Identity{ID: claims.ID, Role: claims.Role}, nil
}
