package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// BackupCodeStore defines persistence operations for MFA backup codes.
type BackupCodeStore interface {
	// Replace deletes every code of the user and stores the new batch.
	Replace(ctx context.Context, userID uuid.UUID, codes []BackupCode) error
	ListUnused(ctx context.Context, userID uuid.UUID) ([]BackupCode, error)
	// MarkUsed consumes the code and reports false when it was already used.
	MarkUsed(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
	DeleteAll(ctx context.Context, userID uuid.UUID) error
}

// BackupCode is a single-use MFA recovery code stored as a hex sha256.
type BackupCode struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	CodeHash  string
	Used      bool
	UsedAt    *time.Time
	CreatedAt time.Time
}
