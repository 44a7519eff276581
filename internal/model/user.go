package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStatus is the lifecycle state of an identity.
type UserStatus string

const (
	UserStatusPendingVerification UserStatus = "pending_verification"
	UserStatusActive              UserStatus = "active"
	UserStatusBanned              UserStatus = "banned"
	UserStatusDeleted             UserStatus = "deleted"
)

// GlobalAuthority grants every permission in every organization.
const GlobalAuthority = "*"

// UserStore defines persistence operations for users.
// GetByEmail and GetByID never return deleted users.
type UserStore interface {
	// Create stores the user and its credential in one transaction.
	Create(ctx context.Context, user User, credential Credential) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByEmailIncludeDeleted(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status UserStatus) error
	UpdateDisplayName(ctx context.Context, id uuid.UUID, displayName string) error
}

// User is an identity.
type User struct {
	ID          uuid.UUID
	Email       string
	DisplayName string
	Status      UserStatus
	SystemAdmin bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive reports whether the user may authenticate.
func (u User) IsActive() bool {
	return u.Status == UserStatusActive
}

// Authorities returns the global authorities granted to the user.
func (u User) Authorities() []string {
	if u.SystemAdmin {
		return []string{GlobalAuthority}
	}
	return nil
}
