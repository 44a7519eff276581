package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Revocation reasons recorded on sessions.
const (
	RevokeReasonRotated         = "rotated"
	RevokeReasonLogout          = "logout"
	RevokeReasonHijack          = "possible hijack"
	RevokeReasonPasswordReset   = "password reset"
	RevokeReasonPasswordChanged = "password changed"
)

// SessionStore defines persistence operations for refresh sessions.
type SessionStore interface {
	Create(ctx context.Context, session Session) error
	GetByTokenHash(ctx context.Context, tokenHash []byte) (Session, error)
	// GetByTokenHashForUpdate locks the row until the surrounding transaction ends.
	GetByTokenHashForUpdate(ctx context.Context, tokenHash []byte) (Session, error)
	Revoke(ctx context.Context, id uuid.UUID, reason string, at time.Time) error
	// RevokeAllByUser revokes every live session of the user and returns how many were revoked.
	RevokeAllByUser(ctx context.Context, userID uuid.UUID, reason string, at time.Time) (int64, error)
	ListActiveByUser(ctx context.Context, userID uuid.UUID, now time.Time) ([]Session, error)
}

// Session is a refresh token session. Only the sha256 of the refresh token is stored.
type Session struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	TokenHash    []byte
	IPAddress    string
	UserAgent    string
	DeviceClass  string
	LastActiveAt time.Time
	ExpiresAt    time.Time
	RevokedAt    *time.Time
	RevokeReason string
	RotatedFrom  *uuid.UUID
	CreatedAt    time.Time
}

// IsValid reports whether the session can be used at the given instant.
func (s Session) IsValid(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}

// RequestMeta describes the client that made a request.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// TokenPair is returned after successful authentication or rotation.
type TokenPair struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
	SessionID        uuid.UUID
}

// AuthResult is the outcome of a login step. Either Tokens is set or
// MFARequired is true and MFAToken carries the pending challenge.
type AuthResult struct {
	User        User
	Tokens      TokenPair
	MFARequired bool
	MFAToken    string
}
