package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/nox-iam/internal/apperror"
	"github.com/dtroode/nox-iam/internal/model"
	"github.com/dtroode/nox-iam/internal/token"
)

// Invite sends an invitation to join the organization under the named role.
// The raw token only travels through the notifier.
func (s *Organizations) Invite(ctx context.Context, actor model.Actor, orgID uuid.UUID, email, roleName string) (model.Invitation, error) {
	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return model.Invitation{}, err
	}

	if err := s.authz.Require(ctx, actor, orgID, model.PermissionIAMManage); err != nil {
		return model.Invitation{}, err
	}

	org, err := s.orgs.GetByID(ctx, orgID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Invitation{}, apperror.ErrOrganizationNotFound
	}
	if err != nil {
		return model.Invitation{}, fmt.Errorf("failed to get organization: %w", err)
	}

	role, err := s.roles.GetByName(ctx, orgID, roleName)
	if errors.Is(err, model.ErrNotFound) {
		return model.Invitation{}, apperror.ErrRoleNotFound
	}
	if err != nil {
		return model.Invitation{}, fmt.Errorf("failed to get role: %w", err)
	}
	if err := s.authz.CheckAssignable(ctx, actor, orgID, role.Level); err != nil {
		return model.Invitation{}, err
	}

	raw, err := token.NewRefreshToken()
	if err != nil {
		return model.Invitation{}, fmt.Errorf("failed to generate invitation token: %w", err)
	}

	now := s.now()
	inv := model.Invitation{
		ID:             uuid.New(),
		OrganizationID: orgID,
		RoleID:         role.ID,
		Email:          email,
		TokenHash:      token.HashRefreshToken(raw),
		InvitedBy:      actor.UserID,
		Status:         model.InvitationPending,
		ExpiresAt:      now.Add(s.cfg.InvitationTTL),
		CreatedAt:      now,
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.invitations.ExpireStale(ctx, orgID, email, now); err != nil {
			return fmt.Errorf("failed to expire stale invitations: %w", err)
		}
		err := s.invitations.Create(ctx, inv)
		if errors.Is(err, model.ErrConflict) {
			return apperror.ErrAlreadyInvited
		}
		if err != nil {
			return fmt.Errorf("failed to create invitation: %w", err)
		}
		return nil
	})
	if err != nil {
		return model.Invitation{}, err
	}

	if err := s.notifier.Send(ctx, model.Notification{
		Kind:         model.NotificationInvitation,
		Email:        email,
		Code:         raw,
		Organization: org.Name,
	}); err != nil {
		s.logger.Error("Organization service: failed to send invitation",
			"organization_id", orgID,
			"error", err.Error())
	}

	s.record(ctx, actor, orgID, model.AuditInvitationSent, map[string]any{
		"email": email,
		"role":  role.Name,
	})

	return inv, nil
}

// AcceptInvitation adds the actor to the inviting organization. The actor's
// email must match the invited one.
func (s *Organizations) AcceptInvitation(ctx context.Context, actor model.Actor, rawToken string) (model.Member, error) {
	if rawToken == "" {
		return model.Member{}, apperror.ErrInvalidInvitation
	}

	var (
		member  model.Member
		inv     model.Invitation
		expired bool
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		inv, err = s.invitations.GetByTokenHashForUpdate(ctx, token.HashRefreshToken(rawToken))
		if errors.Is(err, model.ErrNotFound) {
			return apperror.ErrInvalidInvitation
		}
		if err != nil {
			return fmt.Errorf("failed to get invitation: %w", err)
		}
		if inv.Status != model.InvitationPending {
			return apperror.ErrInvitationHandled
		}

		now := s.now()
		if !now.Before(inv.ExpiresAt) {
			// the status change commits, the error is reported after the tx
			expired = true
			return s.invitations.SetStatus(ctx, inv.ID, model.InvitationExpired, now)
		}

		if !sameEmail(inv.Email, actor.Email) {
			return apperror.ErrInvitationMismatch
		}

		if err := s.lockOrganization(ctx, inv.OrganizationID); err != nil {
			return err
		}
		role, err := s.roles.GetByID(ctx, inv.OrganizationID, inv.RoleID)
		if errors.Is(err, model.ErrNotFound) {
			return apperror.ErrRoleNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get role: %w", err)
		}

		existing, err := s.members.Get(ctx, inv.OrganizationID, actor.UserID)
		switch {
		case err == nil:
			member = existing
		case errors.Is(err, model.ErrNotFound):
			inviter := inv.InvitedBy
			member = model.Member{
				ID:             uuid.New(),
				OrganizationID: inv.OrganizationID,
				UserID:         actor.UserID,
				Email:          actor.Email,
				Role:           role,
				InvitedBy:      &inviter,
				JoinedAt:       now,
			}
			if err := s.members.Create(ctx, member); err != nil {
				return fmt.Errorf("failed to add member: %w", err)
			}
		default:
			return fmt.Errorf("failed to get member: %w", err)
		}

		if err := s.invitations.SetStatus(ctx, inv.ID, model.InvitationAccepted, now); err != nil {
			return fmt.Errorf("failed to accept invitation: %w", err)
		}
		return nil
	})
	if err != nil {
		return model.Member{}, err
	}
	if expired {
		return model.Member{}, apperror.ErrInvitationExpired
	}

	s.record(ctx, actor, inv.OrganizationID, model.AuditInvitationAccepted, map[string]any{
		"invitation_id": inv.ID.String(),
		"role":          member.Role.Name,
	})

	return member, nil
}
