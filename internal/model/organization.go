package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Default role names seeded for every organization.
const (
	RoleOwner  = "OWNER"
	RoleAdmin  = "ADMIN"
	RoleMember = "MEMBER"
)

// Permissions checked by organization management.
const (
	PermissionWildcard      = "*"
	PermissionIAMManage     = "iam:manage"
	PermissionBillingManage = "billing:manage"
	PermissionWorkspaceMgmt = "workspace:manage"
	PermissionWorkspaceRead = "workspace:read"
)

// OrganizationStore defines persistence operations for organizations.
// Soft-deleted organizations are invisible to every read.
type OrganizationStore interface {
	Create(ctx context.Context, org Organization) error
	GetByID(ctx context.Context, id uuid.UUID) (Organization, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (Organization, error)
	// SlugExists also sees soft-deleted organizations.
	SlugExists(ctx context.Context, slug string) (bool, error)
	// Update stores the name, slug and updated_at of the organization.
	Update(ctx context.Context, org Organization) error
	SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) error
	// ListForUser returns the organizations the user is an active member of.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]Organization, error)
}

// RoleStore defines persistence operations for organization roles.
type RoleStore interface {
	// Create returns ErrConflict when the name is taken in the organization.
	Create(ctx context.Context, role Role) error
	GetByID(ctx context.Context, orgID, id uuid.UUID) (Role, error)
	GetByName(ctx context.Context, orgID uuid.UUID, name string) (Role, error)
	ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]Role, error)
	UpdatePermissions(ctx context.Context, id uuid.UUID, permissions []string) error
	Delete(ctx context.Context, id uuid.UUID) error
	// MaxLevel returns the highest role level defined in the organization.
	MaxLevel(ctx context.Context, orgID uuid.UUID) (int, error)
	CountAtLevel(ctx context.Context, orgID uuid.UUID, level int) (int, error)
}

// MemberStore defines persistence operations for memberships. Soft-deleted
// members and members of soft-deleted organizations are invisible to every
// read.
type MemberStore interface {
	// Create returns ErrConflict when the user is already a member.
	Create(ctx context.Context, member Member) error
	// Get returns the membership with its role joined.
	Get(ctx context.Context, orgID, userID uuid.UUID) (Member, error)
	ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]Member, error)
	SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) error
	SoftDeleteByOrganization(ctx context.Context, orgID uuid.UUID, at time.Time) error
	CountByRole(ctx context.Context, roleID uuid.UUID) (int, error)
	// CountAtLevel counts members whose role is at the given level.
	CountAtLevel(ctx context.Context, orgID uuid.UUID, level int) (int, error)
}

// Organization is a tenant.
type Organization struct {
	ID        uuid.UUID
	Name      string
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// Role is a named permission set with a hierarchy level inside an organization.
type Role struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Name           string
	Level          int
	Permissions    []string
	CreatedAt      time.Time
}

// Grants reports whether the role holds the permission directly or through the wildcard.
func (r Role) Grants(permission string) bool {
	for _, p := range r.Permissions {
		if p == PermissionWildcard || p == permission {
			return true
		}
	}
	return false
}

// Member binds a user to exactly one role in an organization.
type Member struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	UserID         uuid.UUID
	Email          string
	Role           Role
	InvitedBy      *uuid.UUID
	JoinedAt       time.Time
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID      uuid.UUID
	Email       string
	Authorities []string
	Meta        RequestMeta
}

// HasAuthority reports whether the actor holds the global authority.
func (a Actor) HasAuthority(authority string) bool {
	for _, v := range a.Authorities {
		if v == authority {
			return true
		}
	}
	return false
}
