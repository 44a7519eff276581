package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// InvitationStatus is the lifecycle state of an invitation.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationExpired  InvitationStatus = "expired"
)

// InvitationStore defines persistence operations for organization invitations.
type InvitationStore interface {
	// Create returns ErrConflict when a pending invitation for the email
	// already exists in the organization.
	Create(ctx context.Context, inv Invitation) error
	// ExpireStale marks pending invitations for the email whose expiry has
	// passed as expired.
	ExpireStale(ctx context.Context, orgID uuid.UUID, email string, at time.Time) error
	// GetByTokenHashForUpdate locks the invitation until the surrounding
	// transaction ends.
	GetByTokenHashForUpdate(ctx context.Context, tokenHash []byte) (Invitation, error)
	// SetStatus moves the invitation out of pending. Accepting also stamps
	// accepted_at.
	SetStatus(ctx context.Context, id uuid.UUID, status InvitationStatus, at time.Time) error
}

// Invitation grants a role in an organization to whoever proves control of
// the email it was sent to.
type Invitation struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	RoleID         uuid.UUID
	Email          string
	TokenHash      []byte
	InvitedBy      uuid.UUID
	Status         InvitationStatus
	ExpiresAt      time.Time
	AcceptedAt     *time.Time
	CreatedAt      time.Time
}
