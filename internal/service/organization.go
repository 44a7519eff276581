package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/nox-iam/internal/apperror"
	"github.com/dtroode/nox-iam/internal/logger"
	"github.com/dtroode/nox-iam/internal/model"
)

const slugAttempts = 5

// Custom role levels live strictly inside this range.
const (
	minRoleLevel = 1
	maxRoleLevel = 999
)

var defaultRoles = []struct {
	name        string
	level       int
	permissions []string
}{
	{model.RoleOwner, 100, []string{model.PermissionWildcard}},
	{model.RoleAdmin, 50, []string{model.PermissionIAMManage, model.PermissionBillingManage, model.PermissionWorkspaceMgmt}},
	{model.RoleMember, 10, []string{model.PermissionWorkspaceRead}},
}

// OrganizationConfig holds tenant management parameters.
type OrganizationConfig struct {
	InvitationTTL time.Duration
}

// Organizations manages tenants, their roles, memberships and invitations.
type Organizations struct {
	orgs        model.OrganizationStore
	roles       model.RoleStore
	members     model.MemberStore
	users       model.UserStore
	invitations model.InvitationStore
	authz       *Authorizer
	notifier    model.Notifier
	tx          model.Transactor
	audit       model.AuditSink
	cfg         OrganizationConfig
	logger      *logger.Logger
	now         func() time.Time
}

func NewOrganizations(
	orgs model.OrganizationStore,
	roles model.RoleStore,
	members model.MemberStore,
	users model.UserStore,
	invitations model.InvitationStore,
	authz *Authorizer,
	notifier model.Notifier,
	tx model.Transactor,
	audit model.AuditSink,
	cfg OrganizationConfig,
	logger *logger.Logger,
) *Organizations {
	return &Organizations{
		orgs:        orgs,
		roles:       roles,
		members:     members,
		users:       users,
		invitations: invitations,
		authz:       authz,
		notifier:    notifier,
		tx:          tx,
		audit:       audit,
		cfg:         cfg,
		logger:      logger,
		now:         time.Now,
	}
}

// Create creates an organization with the default roles and makes the actor
// its owner.
func (s *Organizations) Create(ctx context.Context, actor model.Actor, name string) (model.Organization, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Organization{}, apperror.ErrInvalidInput.WithMessage("organization name is required")
	}

	now := s.now()
	org := model.Organization{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		slug, err := s.uniqueSlug(ctx, name)
		if err != nil {
			return err
		}
		org.Slug = slug

		if err := s.orgs.Create(ctx, org); err != nil {
			return fmt.Errorf("failed to create organization: %w", err)
		}

		var owner model.Role
		for _, d := range defaultRoles {
			role := model.Role{
				ID:             uuid.New(),
				OrganizationID: org.ID,
				Name:           d.name,
				Level:          d.level,
				Permissions:    d.permissions,
				CreatedAt:      now,
			}
			if err := s.roles.Create(ctx, role); err != nil {
				return fmt.Errorf("failed to create role %s: %w", d.name, err)
			}
			if d.name == model.RoleOwner {
				owner = role
			}
		}

		return s.members.Create(ctx, model.Member{
			ID:             uuid.New(),
			OrganizationID: org.ID,
			UserID:         actor.UserID,
			Role:           owner,
			JoinedAt:       now,
		})
	})
	if err != nil {
		s.logger.Error("Organization service: failed to create organization",
			"name", name,
			"error", err.Error())
		return model.Organization{}, err
	}

	s.record(ctx, actor, org.ID, model.AuditOrganizationCreated, map[string]any{"slug": org.Slug})
	s.logger.Info("Organization service: organization created",
		"organization_id", org.ID,
		"slug", org.Slug)

	return org, nil
}

// Update renames the organization and derives a new slug from the name.
func (s *Organizations) Update(ctx context.Context, actor model.Actor, orgID uuid.UUID, name string) (model.Organization, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Organization{}, apperror.ErrInvalidInput.WithMessage("organization name is required")
	}
	if err := s.authz.Require(ctx, actor, orgID, model.PermissionWorkspaceMgmt); err != nil {
		return model.Organization{}, err
	}

	var org model.Organization
	changed := false
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		org, err = s.orgs.GetByIDForUpdate(ctx, orgID)
		if errors.Is(err, model.ErrNotFound) {
			return apperror.ErrOrganizationNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to lock organization: %w", err)
		}
		if org.Name == name {
			return nil
		}

		slug, err := s.uniqueSlug(ctx, name)
		if err != nil {
			return err
		}
		org.Name = name
		org.Slug = slug
		org.UpdatedAt = s.now()

		if err := s.orgs.Update(ctx, org); err != nil {
			return fmt.Errorf("failed to update organization: %w", err)
		}
		changed = true
		return nil
	})
	if err != nil {
		return model.Organization{}, err
	}

	if changed {
		s.record(ctx, actor, orgID, model.AuditOrganizationUpdated, map[string]any{"slug": org.Slug})
	}
	return org, nil
}

// Delete soft-deletes the organization together with its memberships. Every
// permission check against it fails afterwards.
func (s *Organizations) Delete(ctx context.Context, actor model.Actor, orgID uuid.UUID) error {
	if err := s.authz.Require(ctx, actor, orgID, model.PermissionWorkspaceMgmt); err != nil {
		return err
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.lockOrganization(ctx, orgID); err != nil {
			return err
		}

		now := s.now()
		if err := s.orgs.SoftDelete(ctx, orgID, now); err != nil {
			return fmt.Errorf("failed to delete organization: %w", err)
		}
		if err := s.members.SoftDeleteByOrganization(ctx, orgID, now); err != nil {
			return fmt.Errorf("failed to delete organization members: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.record(ctx, actor, orgID, model.AuditOrganizationDeleted, nil)
	s.logger.Info("Organization service: organization deleted",
		"organization_id", orgID,
		"user_id", actor.UserID)
	return nil
}

// ListForUser returns the organizations the actor belongs to.
func (s *Organizations) ListForUser(ctx context.Context, actor model.Actor) ([]model.Organization, error) {
	orgs, err := s.orgs.ListForUser(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	return orgs, nil
}

// AddMember adds the user with the given email under the named role.
func (s *Organizations) AddMember(ctx context.Context, actor model.Actor, orgID uuid.UUID, email, roleName string) (model.Member, error) {
	if err := s.authz.Require(ctx, actor, orgID, model.PermissionIAMManage); err != nil {
		return model.Member{}, err
	}
	if err := s.ensureOrganization(ctx, orgID); err != nil {
		return model.Member{}, err
	}

	role, err := s.roles.GetByName(ctx, orgID, roleName)
	if errors.Is(err, model.ErrNotFound) {
		return model.Member{}, apperror.ErrRoleNotFound
	}
	if err != nil {
		return model.Member{}, fmt.Errorf("failed to get role: %w", err)
	}

	if err := s.authz.CheckAssignable(ctx, actor, orgID, role.Level); err != nil {
		return model.Member{}, err
	}

	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, model.ErrNotFound) {
		return model.Member{}, apperror.ErrUserNotFound
	}
	if err != nil {
		return model.Member{}, fmt.Errorf("failed to get user: %w", err)
	}

	inviter := actor.UserID
	member := model.Member{
		ID:             uuid.New(),
		OrganizationID: orgID,
		UserID:         user.ID,
		Email:          user.Email,
		Role:           role,
		InvitedBy:      &inviter,
		JoinedAt:       s.now(),
	}
	err = s.members.Create(ctx, member)
	if errors.Is(err, model.ErrConflict) {
		return model.Member{}, apperror.ErrAlreadyMember
	}
	if err != nil {
		return model.Member{}, fmt.Errorf("failed to add member: %w", err)
	}

	s.record(ctx, actor, orgID, model.AuditMemberAdded, map[string]any{
		"user_id": user.ID.String(),
		"role":    role.Name,
	})

	return member, nil
}

// RemoveMember soft-deletes a membership. The last member at the highest
// level can never be removed.
func (s *Organizations) RemoveMember(ctx context.Context, actor model.Actor, orgID, userID uuid.UUID) error {
	if err := s.authz.Require(ctx, actor, orgID, model.PermissionIAMManage); err != nil {
		return err
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.lockOrganization(ctx, orgID); err != nil {
			return err
		}

		target, err := s.members.Get(ctx, orgID, userID)
		if errors.Is(err, model.ErrNotFound) {
			return apperror.ErrMemberNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get member: %w", err)
		}

		top, err := s.roles.MaxLevel(ctx, orgID)
		if err != nil {
			return fmt.Errorf("failed to get highest role level: %w", err)
		}
		if target.Role.Level >= top {
			holders, err := s.members.CountAtLevel(ctx, orgID, top)
			if err != nil {
				return fmt.Errorf("failed to count owners: %w", err)
			}
			if holders <= 1 {
				return apperror.ErrLastOwner
			}
		}

		if target.UserID != actor.UserID {
			if err := s.authz.CheckAssignable(ctx, actor, orgID, target.Role.Level); err != nil {
				return err
			}
		}

		if err := s.members.SoftDelete(ctx, target.ID, s.now()); err != nil {
			return fmt.Errorf("failed to remove member: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.record(ctx, actor, orgID, model.AuditMemberRemoved, map[string]any{"user_id": userID.String()})
	return nil
}

// CreateRole defines a custom role below the actor's own level. The actor
// must hold every permission the role grants.
func (s *Organizations) CreateRole(ctx context.Context, actor model.Actor, orgID uuid.UUID, name string, level int, permissions []string) (model.Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Role{}, apperror.ErrInvalidInput.WithMessage("role name is required")
	}
	if level < minRoleLevel || level > maxRoleLevel {
		return model.Role{}, apperror.ErrInvalidRoleLevel
	}

	if err := s.authz.Require(ctx, actor, orgID, model.PermissionIAMManage); err != nil {
		return model.Role{}, err
	}
	if err := s.ensureOrganization(ctx, orgID); err != nil {
		return model.Role{}, err
	}
	if err := s.authz.CheckAssignable(ctx, actor, orgID, level); err != nil {
		return model.Role{}, err
	}
	permissions = uniquePermissions(permissions)
	if err := s.authz.CheckGrantable(ctx, actor, orgID, permissions); err != nil {
		return model.Role{}, err
	}

	role := model.Role{
		ID:             uuid.New(),
		OrganizationID: orgID,
		Name:           name,
		Level:          level,
		Permissions:    permissions,
		CreatedAt:      s.now(),
	}
	err := s.roles.Create(ctx, role)
	if errors.Is(err, model.ErrConflict) {
		return model.Role{}, apperror.ErrRoleExists
	}
	if err != nil {
		return model.Role{}, fmt.Errorf("failed to create role: %w", err)
	}

	s.record(ctx, actor, orgID, model.AuditRoleCreated, map[string]any{
		"role":  role.Name,
		"level": role.Level,
	})

	return role, nil
}

// UpdateRolePermissions replaces the permission set of a role below the
// actor's level with permissions the actor holds. The owner role keeps its
// wildcard.
func (s *Organizations) UpdateRolePermissions(ctx context.Context, actor model.Actor, orgID, roleID uuid.UUID, permissions []string) (model.Role, error) {
	if err := s.authz.Require(ctx, actor, orgID, model.PermissionIAMManage); err != nil {
		return model.Role{}, err
	}

	role, err := s.roles.GetByID(ctx, orgID, roleID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Role{}, apperror.ErrRoleNotFound
	}
	if err != nil {
		return model.Role{}, fmt.Errorf("failed to get role: %w", err)
	}
	if role.Name == model.RoleOwner {
		return model.Role{}, apperror.ErrImmutableRole
	}

	if err := s.authz.CheckAssignable(ctx, actor, orgID, role.Level); err != nil {
		return model.Role{}, err
	}
	permissions = uniquePermissions(permissions)
	if err := s.authz.CheckGrantable(ctx, actor, orgID, permissions); err != nil {
		return model.Role{}, err
	}

	role.Permissions = permissions
	if err := s.roles.UpdatePermissions(ctx, role.ID, role.Permissions); err != nil {
		return model.Role{}, fmt.Errorf("failed to update role: %w", err)
	}

	s.record(ctx, actor, orgID, model.AuditRoleUpdated, map[string]any{
		"role":        role.Name,
		"permissions": role.Permissions,
	})

	return role, nil
}

// DeleteRole removes an unused role. The only role at the highest level can
// never be deleted.
func (s *Organizations) DeleteRole(ctx context.Context, actor model.Actor, orgID, roleID uuid.UUID) error {
	if err := s.authz.Require(ctx, actor, orgID, model.PermissionIAMManage); err != nil {
		return err
	}

	var deleted model.Role
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.lockOrganization(ctx, orgID); err != nil {
			return err
		}

		role, err := s.roles.GetByID(ctx, orgID, roleID)
		if errors.Is(err, model.ErrNotFound) {
			return apperror.ErrRoleNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get role: %w", err)
		}

		top, err := s.roles.MaxLevel(ctx, orgID)
		if err != nil {
			return fmt.Errorf("failed to get highest role level: %w", err)
		}
		if role.Level >= top {
			n, err := s.roles.CountAtLevel(ctx, orgID, top)
			if err != nil {
				return fmt.Errorf("failed to count top roles: %w", err)
			}
			if n <= 1 {
				return apperror.ErrLastOwner
			}
		}

		if err := s.authz.CheckAssignable(ctx, actor, orgID, role.Level); err != nil {
			return err
		}

		inUse, err := s.members.CountByRole(ctx, role.ID)
		if err != nil {
			return fmt.Errorf("failed to count role members: %w", err)
		}
		if inUse > 0 {
			return apperror.ErrRoleInUse
		}

		err = s.roles.Delete(ctx, role.ID)
		if errors.Is(err, model.ErrConflict) {
			return apperror.ErrRoleInUse
		}
		if err != nil {
			return fmt.Errorf("failed to delete role: %w", err)
		}
		deleted = role
		return nil
	})
	if err != nil {
		return err
	}

	s.record(ctx, actor, orgID, model.AuditRoleDeleted, map[string]any{"role": deleted.Name})
	return nil
}

func (s *Organizations) ListRoles(ctx context.Context, actor model.Actor, orgID uuid.UUID) ([]model.Role, error) {
	if err := s.authz.RequireMembership(ctx, actor, orgID); err != nil {
		return nil, err
	}

	roles, err := s.roles.ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return roles, nil
}

func (s *Organizations) ListMembers(ctx context.Context, actor model.Actor, orgID uuid.UUID) ([]model.Member, error) {
	if err := s.authz.RequireMembership(ctx, actor, orgID); err != nil {
		return nil, err
	}

	members, err := s.members.ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

func (s *Organizations) ensureOrganization(ctx context.Context, orgID uuid.UUID) error {
	_, err := s.orgs.GetByID(ctx, orgID)
	if errors.Is(err, model.ErrNotFound) {
		return apperror.ErrOrganizationNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get organization: %w", err)
	}
	return nil
}

// lockOrganization serializes ownership changes within one organization.
func (s *Organizations) lockOrganization(ctx context.Context, orgID uuid.UUID) error {
	_, err := s.orgs.GetByIDForUpdate(ctx, orgID)
	if errors.Is(err, model.ErrNotFound) {
		return apperror.ErrOrganizationNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to lock organization: %w", err)
	}
	return nil
}

func (s *Organizations) uniqueSlug(ctx context.Context, name string) (string, error) {
	base := slugify(name)
	candidate := base

	for i := 0; i < slugAttempts; i++ {
		exists, err := s.orgs.SlugExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check slug: %w", err)
		}
		if !exists {
			return candidate, nil
		}

		suffix := make([]byte, 3)
		if _, err := rand.Read(suffix); err != nil {
			return "", fmt.Errorf("failed to generate slug suffix: %w", err)
		}
		candidate = base + "-" + hex.EncodeToString(suffix)
	}

	return "", apperror.ErrInvalidInput.WithMessage("could not derive a unique slug")
}

func (s *Organizations) record(ctx context.Context, actor model.Actor, orgID uuid.UUID, action string, metadata map[string]any) {
	actorID := actor.UserID
	s.audit.Record(ctx, model.AuditEntry{
		OrganizationID: &orgID,
		ActorID:        &actorID,
		Action:         action,
		Metadata:       metadata,
		IPAddress:      actor.Meta.IPAddress,
		UserAgent:      actor.Meta.UserAgent,
	})
}

func slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}

	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return "org"
	}
	return slug
}

func uniquePermissions(permissions []string) []string {
	seen := make(map[string]struct{}, len(permissions))
	out := make([]string, 0, len(permissions))
	for _, p := range permissions {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
