// Package auth verifies the bearer tokens that identify learners. Tokens are
// issued by the identity provider with the shared HMAC secret; this package
// can also mint them for local development and tests.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AccessTokenType is the only token type accepted by the API.
const AccessTokenType = "access"

// JWTService issues and validates access tokens.
type JWTService interface {
	// GenerateToken creates a signed access token for userID.
	GenerateToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateToken verifies tokenString and returns its claims.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the validated content of an access token.
type Claims struct {
	UserID    uuid.UUID `json:"uid,omitempty"`
	TokenType string    `json:"type,omitempty"`
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
