// Package service declares the ports the use cases depend on. Implementations
// live under infra.
package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// PasswordHasher stores customer passwords as salted one-way hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)

	// Matches reports whether password produced hash. A malformed hash never matches.
	Matches(password, hash string) bool
}

// Claims is the payload of a customer access token. The subject is the customer id.
type Claims struct {
	CustomerID uuid.UUID `json:"cid"`
	Roles      []string  `json:"roles"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies customer access tokens.
type TokenService interface {
	GenerateToken(customerID uuid.UUID, roles []string) (string, error)

	// ValidateToken rejects tokens with a bad signature, an unexpected
	// algorithm or an expiry in the past.
	ValidateToken(tokenString string) (*Claims, error)

	TokenDuration() time.Duration
}
