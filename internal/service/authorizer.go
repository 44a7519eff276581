package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/nox-iam/internal/apperror"
	"github.com/dtroode/nox-iam/internal/logger"
	"github.com/dtroode/nox-iam/internal/model"
)

// Authorizer resolves tenant-scoped permissions from role assignments.
type Authorizer struct {
	members model.MemberStore
	logger  *logger.Logger
}

func NewAuthorizer(members model.MemberStore, logger *logger.Logger) *Authorizer {
	return &Authorizer{members: members, logger: logger}
}

// HasPermission reports whether the actor holds permission in the
// organization. Non-members and members without the permission both get
// false; only the log tells them apart.
func (a *Authorizer) HasPermission(ctx context.Context, actor model.Actor, orgID uuid.UUID, permission string) (bool, error) {
	if actor.HasAuthority(model.GlobalAuthority) {
		return true, nil
	}

	member, err := a.members.Get(ctx, orgID, actor.UserID)
	if errors.Is(err, model.ErrNotFound) {
		a.logger.Info("Authorizer: permission denied",
			"reason", "non-member",
			"user_id", actor.UserID,
			"organization_id", orgID,
			"permission", permission)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get membership: %w", err)
	}

	if member.Role.Grants(permission) {
		return true, nil
	}

	a.logger.Info("Authorizer: permission denied",
		"reason", "denied",
		"user_id", actor.UserID,
		"organization_id", orgID,
		"role", member.Role.Name,
		"permission", permission)
	return false, nil
}

// Require is HasPermission returning ErrForbidden on denial.
func (a *Authorizer) Require(ctx context.Context, actor model.Actor, orgID uuid.UUID, permission string) error {
	ok, err := a.HasPermission(ctx, actor, orgID, permission)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.ErrForbidden
	}
	return nil
}

// CheckAssignable fails unless the actor's role level in the organization is
// strictly greater than level.
func (a *Authorizer) CheckAssignable(ctx context.Context, actor model.Actor, orgID uuid.UUID, level int) error {
	if actor.HasAuthority(model.GlobalAuthority) {
		return nil
	}

	member, err := a.members.Get(ctx, orgID, actor.UserID)
	if errors.Is(err, model.ErrNotFound) {
		return apperror.ErrNotOrganizationMember
	}
	if err != nil {
		return fmt.Errorf("failed to get membership: %w", err)
	}

	if member.Role.Level <= level {
		a.logger.Info("Authorizer: role level too high for actor",
			"user_id", actor.UserID,
			"organization_id", orgID,
			"actor_level", member.Role.Level,
			"target_level", level)
		return apperror.ErrInsufficientPrivilege
	}
	return nil
}

// CheckGrantable fails with ErrPermissionNotHeld unless the actor's role
// grants every permission in the list. Only wildcard holders can grant the
// wildcard.
func (a *Authorizer) CheckGrantable(ctx context.Context, actor model.Actor, orgID uuid.UUID, permissions []string) error {
	if actor.HasAuthority(model.GlobalAuthority) {
		return nil
	}

	member, err := a.members.Get(ctx, orgID, actor.UserID)
	if errors.Is(err, model.ErrNotFound) {
		return apperror.ErrNotOrganizationMember
	}
	if err != nil {
		return fmt.Errorf("failed to get membership: %w", err)
	}

	for _, p := range permissions {
		if !member.Role.Grants(p) {
			a.logger.Info("Authorizer: permission escalation refused",
				"user_id", actor.UserID,
				"organization_id", orgID,
				"role", member.Role.Name,
				"permission", p)
			return apperror.ErrPermissionNotHeld
		}
	}
	return nil
}

// RequireMembership fails with ErrNotOrganizationMember unless the actor
// belongs to the organization or holds the global authority.
func (a *Authorizer) RequireMembership(ctx context.Context, actor model.Actor, orgID uuid.UUID) error {
	if actor.HasAuthority(model.GlobalAuthority) {
		return nil
	}

	_, err := a.members.Get(ctx, orgID, actor.UserID)
	if errors.Is(err, model.ErrNotFound) {
		return apperror.ErrNotOrganizationMember
	}
	if err != nil {
		return fmt.Errorf("failed to get membership: %w", err)
	}
	return nil
}
