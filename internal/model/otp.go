package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OTPType is the purpose of a one-time code.
type OTPType string

const (
	OTPTypeVerifyEmail   OTPType = "verify_email"
	OTPTypeResetPassword OTPType = "reset_password"
)

// OTPStore defines persistence operations for one-time codes.
type OTPStore interface {
	Create(ctx context.Context, code OTPCode) error
	// LatestUnused returns the newest code of the type that has not been used.
	LatestUnused(ctx context.Context, userID uuid.UUID, otpType OTPType) (OTPCode, error)
	// InvalidateUnused marks every unused code of the type as used.
	InvalidateUnused(ctx context.Context, userID uuid.UUID, otpType OTPType, at time.Time) error
	// RegisterFailure increments the attempt counter and marks the code used
	// when the counter reaches maxAttempts. Returns the new counter.
	RegisterFailure(ctx context.Context, id uuid.UUID, maxAttempts int, at time.Time) (int, error)
	// MarkUsed consumes the code and reports false when another caller
	// consumed it first.
	MarkUsed(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
}

// OTPCode is a short numeric one-time code.
type OTPCode struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Code           string
	Type           OTPType
	ExpiresAt      time.Time
	FailedAttempts int
	UsedAt         *time.Time
	CreatedAt      time.Time
}
