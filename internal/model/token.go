package model

import (
	"time"

	"github.com/google/uuid"
)

// TokenManager issues and parses signed tokens.
type TokenManager interface {
	GenerateAccessToken(claims AccessClaims) (token string, expiresAt time.Time, err error)
	ParseAccessToken(token string) (AccessClaims, error)
	// GenerateMFAToken issues a short-lived token proving the password step passed.
	GenerateMFAToken(email string) (string, error)
	// ParseMFAToken returns the email of a valid pending MFA token.
	ParseMFAToken(token string) (string, error)
}

// AccessClaims is the identity carried by an access token.
type AccessClaims struct {
	UserID      uuid.UUID
	Email       string
	Authorities []string
}
