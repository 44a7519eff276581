package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/nox-iam/internal/apperror"
	"github.com/dtroode/nox-iam/internal/mocks"
	"github.com/dtroode/nox-iam/internal/model"
	"github.com/dtroode/nox-iam/internal/testutil"
)

type orgDeps struct {
	orgs        *mocks.OrganizationStore
	roles       *mocks.RoleStore
	members     *mocks.MemberStore
	users       *mocks.UserStore
	invitations *mocks.InvitationStore
	notifier    *mocks.Notifier
	tx          *testutil.Tx
	audit       *auditLog
}

func newTestOrganizations(t *testing.T) (*Organizations, orgDeps) {
	t.Helper()
	d := orgDeps{
		orgs:        mocks.NewOrganizationStore(t),
		roles:       mocks.NewRoleStore(t),
		members:     mocks.NewMemberStore(t),
		users:       mocks.NewUserStore(t),
		invitations: mocks.NewInvitationStore(t),
		notifier:    mocks.NewNotifier(t),
		tx:          &testutil.Tx{},
		audit:       &auditLog{},
	}
	log := testutil.MakeNoopLogger()
	s := NewOrganizations(d.orgs, d.roles, d.members, d.users, d.invitations, NewAuthorizer(d.members, log),
		d.notifier, d.tx, d.audit, OrganizationConfig{InvitationTTL: 7 * 24 * time.Hour}, log)
	s.now = fixedNow
	return s, d
}

// withMembership makes actor a member of org with the given role.
func withMembership(d orgDeps, orgID uuid.UUID, actor model.Actor, role model.Role) model.Member {
	m := model.Member{ID: uuid.New(), OrganizationID: orgID, UserID: actor.UserID, Email: actor.Email, Role: role}
	d.members.On("Get", mock.Anything, orgID, actor.UserID).Return(m, nil)
	return m
}

func newActor() model.Actor {
	return model.Actor{UserID: uuid.New(), Email: "actor@example.com", Meta: model.RequestMeta{IPAddress: "10.0.0.9"}}
}

func TestOrganizations_Create(t *testing.T) {
	t.Parallel()

	s, d := newTestOrganizations(t)
	actor := newActor()

	d.orgs.On("SlugExists", mock.Anything, "acme-corp").Return(false, nil)
	d.orgs.On("Create", mock.Anything, mock.Anything).Return(nil)

	var roles []model.Role
	d.roles.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		roles = append(roles, args.Get(1).(model.Role))
	}).Return(nil)

	var owner model.Member
	d.members.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		owner = args.Get(1).(model.Member)
	}).Return(nil)

	org, err := s.Create(context.Background(), actor, "  Acme Corp! ")
	require.NoError(t, err)

	assert.Equal(t, "Acme Corp!", org.Name)
	assert.Equal(t, "acme-corp", org.Slug)
	require.Len(t, roles, 3)
	assert.Equal(t, model.RoleOwner, roles[0].Name)
	assert.Equal(t, 100, roles[0].Level)
	assert.Equal(t, []string{model.PermissionWildcard}, roles[0].Permissions)
	assert.Equal(t, model.RoleAdmin, roles[1].Name)
	assert.Equal(t, model.RoleMember, roles[2].Name)

	assert.Equal(t, actor.UserID, owner.UserID)
	assert.Equal(t, roles[0].ID, owner.Role.ID)
	assert.Equal(t, 1, d.tx.Calls)

	require.Len(t, d.audit.entries, 1)
	entry := d.audit.entries[0]
	assert.Equal(t, model.AuditOrganizationCreated, entry.Action)
	assert.Equal(t, org.ID, *entry.OrganizationID)
	assert.Equal(t, "10.0.0.9", entry.IPAddress)
}

func TestOrganizations_Create_SlugCollision(t *testing.T) {
	t.Parallel()

	s, d := newTestOrganizations(t)

	d.orgs.On("SlugExists", mock.Anything, "acme").Return(true, nil).Once()
	d.orgs.On("SlugExists", mock.Anything, mock.Anything).Return(false, nil)
	d.orgs.On("Create", mock.Anything, mock.Anything).Return(nil)
	d.roles.On("Create", mock.Anything, mock.Anything).Return(nil)
	d.members.On("Create", mock.Anything, mock.Anything).Return(nil)

	org, err := s.Create(context.Background(), newActor(), "Acme")
	require.NoError(t, err)
	assert.Regexp(t, `^acme-[0-9a-f]{6}$`, org.Slug)
}

func TestOrganizations_Create_EmptyName(t *testing.T) {
	t.Parallel()

	s, d := newTestOrganizations(t)

	_, err := s.Create(context.Background(), newActor(), "   ")
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Zero(t, d.tx.Calls)
}

func TestOrganizations_Update(t *testing.T) {
	t.Parallel()

	orgID := uuid.New()
	current := model.Organization{ID: orgID, Name: "Acme", Slug: "acme", CreatedAt: testNow.Add(-time.Hour), UpdatedAt: testNow.Add(-time.Hour)}
	manager := model.Role{ID: uuid.New(), Name: "MANAGER", Level: 40, Permissions: []string{model.PermissionWorkspaceMgmt}}

	t.Run("renames and reslugs", func(t *testing.T) {
		t.Parallel()

		s, d := newTestOrganizations(t)
		actor := newActor()
		withMembership(d, orgID, actor, manager)
		d.orgs.On("GetByIDForUpdate", mock.Anything, orgID).Return(current, nil)
		d.orgs.On("SlugExists", mock.Anything, "acme-labs").Return(false, nil)
		d.orgs.On("Update", mock.Anything, mock.MatchedBy(func(o model.Organization) bool {
			return o.Name == "Acme Labs" && o.Slug == "acme-labs" && o.UpdatedAt.Equal(testNow)
		})).Return(nil)

		org, err := s.Update(context.Background(), actor, orgID, " Acme Labs ")
		require.NoError(t, err)
		assert.Equal(t, "acme-labs", org.Slug)
		assert.Equal(t, 1, d.tx.Calls)
		assert.Equal(t, []string{model.AuditOrganizationUpdated}, d.audit.Actions())
	})

	t.Run("same name is a no-op", func(t *testing.T) {
		t.Parallel()

		s, d := newTestOrganizations(t)
		actor := newActor()
		withMembership(d, orgID, actor, ownerRole)
		d.orgs.On("GetByIDForUpdate", mock.Anything, orgID).Return(current, nil)

		org, err := s.Update(context.Background(), actor, orgID, "Acme")
		require.NoError(t, err)
		assert.Equal(t, current, org)
		assert.Empty(t, d.audit.Actions())
	})

	t.Run("requires workspace management", func(t *testing.T) {
		t.Parallel()

		s, d := newTestOrganizations(t)
		actor := newActor()
		withMembership(d, orgID, actor, adminRole)

		_, err := s.Update(context.Background(), actor, orgID, "Acme Labs")
		assert.ErrorIs(t, err, apperror.ErrForbidden)
		assert.Zero(t, d.tx.Calls)
	})

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()

		s, _ := newTestOrganizations(t)
		_, err := s.Update(context.Background(), newActor(), orgID, " ")
		assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	})
}

func TestOrganizations_Delete(t *testing.T) {
	t.Parallel()

	orgID := uuid.New()

	t.Run("owner deletes", func(t *testing.T) {
		t.Parallel()

		s, d := newTestOrganizations(t)
		actor := newActor()
		withMembership(d, orgID, actor, ownerRole)
		d.orgs.On("GetByIDForUpdate", mock.Anything, orgID).Return(model.Organization{ID: orgID}, nil)
		d.orgs.On("SoftDelete", mock.Anything, orgID, testNow).Return(nil)
		d.members.On("SoftDeleteByOrganization", mock.Anything, orgID, testNow).Return(nil)

		require.NoError(t, s.Delete(context.Background(), actor, orgID))
		assert.Equal(t, 1, d.tx.Calls)
		assert.Equal(t, []string{model.AuditOrganizationDeleted}, d.audit.Actions())
	})

	t.Run("admin without workspace management", func(t *testing.T) {
		t.Parallel()

		s, d := newTestOrganizations(t)
		actor := newActor()
		withMembership(d, orgID, actor, adminRole)

		err := s.Delete(context.Background(), actor, orgID)
		assert.ErrorIs(t, err, apperror.ErrForbidden)
		d.orgs.AssertNotCalled(t, "SoftDelete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("already deleted", func(t *testing.T) {
		t.Parallel()

		s, d := newTestOrganizations(t)
		actor := newActor()
		actor.Authorities = []string{model.GlobalAuthority}
		d.orgs.On("GetByIDForUpdate", mock.Anything, orgID).Return(model.Organization{}, model.ErrNotFound)

		err := s.Delete(context.Background(), actor, orgID)
		assert.ErrorIs(t, err, apperror.ErrOrganizationNotFound)
	})
}

func TestOrganizations_ListForUser(t *testing.T) {
	t.Parallel()

	s, d := newTestOrganizations(t)
	actor := newActor()
	orgs := []model.Organization{{ID: uuid.New(), Name: "Acme"}, {ID: uuid.New(), Name: "Globex"}}
	d.orgs.On("ListForUser", mock.Anything, actor.UserID).Return(orgs, nil)

	got, err := s.ListForUser(context.Background(), actor)
	require.NoError(t, err)
	assert.Equal(t, orgs, got)
}

func TestOrganizations_AddMember(t *testing.T) {
	t.Parallel()

	orgID := uuid.New()
	invitee := model.User{ID: uuid.New(), Email: "bob@example.com", Status: model.UserStatusActive}

	t.Run("admin adds member", func(t *testing.T) {
		t.Parallel()

		s, d := newTestOrganizations(t)
		actor := newActor()
		withMembership(d, orgID, actor, adminRole)
		d.orgs.On("GetByID", mock.Anything, orgID).Return(model.Organization{ID: orgID}, nil)
		d.roles.On("GetByName", mock.Anything, orgID, model.RoleMember).Return(memberRole, nil)
		d.users.On("GetByEmail", mock.Anything, "bob@example.com").Return(invitee, nil)
		d.members.On("Create", mock.Anything, mock.Anything).Return(nil)

		member, err := s.AddMember(context.Background(), actor, orgID, " Bob@Example.com", model.RoleMember)
		require.NoError(t, err)
		assert.Equal(t, invitee.ID, member.UserID)
		assert.Equal(t, memberRole.ID, member.Role.ID)
		require.NotNil(t, member.InvitedBy)
		assert.Equal(t, actor.UserID, *member.InvitedBy)
		assert.Equal(t, testNow, member.JoinedAt)
		assert.Equal(t, []string{model.AuditMemberAdded}, d.audit.Actions())
	})

	t.Run("admin cannot grant owner", func(t *testing.T) {
		t.Parallel()

		s, d := newTestOrganizations(t)
		actor := newActor()
		withMembership(d, orgID, actor, adminRole)
		d.orgs.On("GetByID", mock.Anything, orgID).Return(model.Organization{ID: orgID}, nil)
		d.roles.On("GetByName", mock.Anything, orgID, model.RoleOwner).Return(ownerRole, nil)

		_, err := s.AddMember(context.Background(), actor, orgID, invitee.Email, model.RoleOwner)
		assert.ErrorIs(t, err, apperror.ErrInsufficientPrivilege)
	})

	t.Run("member lacks iam permission", func(t *testing.T) {
		t.Parallel()

		s, d := newTestOrganizations(t)
		actor := newActor()
		withMembership(d, orgID, actor, memberRole)

		_, err := s.AddMember(context.Background(), actor, orgID, invitee.Email, model.RoleMember)
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("already a member", func(t *testing.T) {
		t.Parallel()

		s, d := newTestOrganizations(t)
		actor := newActor()
		withMembership(d, orgID, actor, ownerRole)
		d.orgs.On("GetByID", mock.Anything, orgID).Return(model.Organization{ID: orgID}, nil)
		d.roles.On("GetByName", mock.Anything, orgID, model.RoleMember).Return(memberRole, nil)
		d.users.On("GetByEmail", mock.Anything, invitee.Email).Return(invitee, nil)
		d.members.On("Create", mock.Anything, mock.Anything).Return(model.ErrConflict)

		_, err := s.AddMember(context.Background(), actor, orgID, invitee.Email, model.RoleMember)
		assert.ErrorIs(t, err, apperror.ErrAlreadyMember)
	})

	t.Run("unknown role", func(t *testing.T) {
		t.Parallel()

		s, d := newTestOrganizations(t)
		actor := newActor()
		withMembership(d, orgID, actor, ownerRole)
		d.orgs.On("GetByID", mock.Anything, orgID).Return(model.Organization{ID: orgID}, nil)
		d.roles.On("GetByName", mock.Anything, orgID, "AUDITOR").Return(model.Role{}, model.ErrNotFound)

		_, err := s.AddMember(context.Background(), actor, orgID, invitee.Email, "AUDITOR")
		assert.ErrorIs(t, err, apperror.ErrRoleNotFound)
	})

	t.Run("unknown user", func(t *testing.T) {
		t.Parallel()

		s, d := newTestOrganizations(t)
		actor := newActor()
		withMembership(d, orgID, actor, ownerRole)
		d.orgs.On("GetByID", mock.Anything, orgID).Return(model.Organization{ID: orgID}, nil)
		d.roles.On("GetByName", mock.Anything, orgID, model.RoleMember).Return(memberRole, nil)
		d.users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(model.User{}, model.ErrNotFound)

		_, err := s.AddMember(context.Background(), actor, orgID, "ghost@example.com", model.RoleMember)
		assert.ErrorIs(t, err, apperror.ErrUserNotFound)
	})
}

func TestOrganizations_RemoveMember(t *testing.T) {
	t.Parallel()

	orgID := uuid.New()

	t.Run("last owner cannot leave", func(t *testing.T) {
		t.Parallel()

		s, d := newTestOrganizations(t)
		actor := newActor()
		withMembership(d, orgID, actor, ownerRole)
		d.orgs.On("GetByIDForUpdate", mock.Anything, orgID).Return(model.Organization{ID: orgID}, nil)
		d.roles.On("MaxLevel", mock.Anything, orgID).Return(100, nil)
		d.members.On("CountAtLevel", mock.Anything, orgID, 100).Return(1, nil)

		err := s.RemoveMember(context.Background(), actor, orgID, actor.UserID)
		assert.ErrorIs(t, err, apperror.ErrLastOwner)
		d.members.AssertNotCalled(t, "SoftDelete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("owner leaves when another owner remains", func(t *testing.T) {
		t.Parallel()

		s, d := newTestOrganizations(t)
		actor := newActor()
		self := withMembership(d, orgID, actor, ownerRole)
		d.orgs.On("GetByIDForUpdate", mock.Anything, orgID).Return(model.Organization{ID: orgID}, nil)
		d.roles.On("MaxLevel", mock.Anything, orgID).Return(100, nil)
		d.members.On("CountAtLevel", mock.Anything, orgID, 100).Return(2, nil)
		d.members.On("SoftDelete", mock.Anything, self.ID, testNow).Return(nil)

		require.NoError(t, s.RemoveMember(context.Background(), actor, orgID, actor.UserID))
		assert.Equal(t, []string{model.AuditMemberRemoved}, d.audit.Actions())
	})

	t.Run("admin cannot remove owner", func(t *testing.T) {
		t.Parallel()

		s, d := newTestOrganizations(t)
		actor := newActor()
		withMembership(d, orgID, actor, adminRole)
		owner := withMembership(d, orgID, model.Actor{UserID: uuid.New()}, ownerRole)
		d.orgs.On("GetByIDForUpdate", mock.Anything, orgID).Return(model.Organization{ID: orgID}, nil)
		d.roles.On("MaxLevel", mock.Anything, orgID).Return(100, nil)
		d.members.On("CountAtLevel", mock.Anything, orgID, 100).Return(2, nil)

		err := s.RemoveMember(context.Background(), actor, orgID, owner.UserID)
		assert.ErrorIs(t, err, apperror.ErrInsufficientPrivilege)
	})

	t.Run("admin removes member", func(t *testing.T) {
		t.Parallel()

		s, d := newTestOrganizations(t)
		actor := newActor()
		withMembership(d, orgID, actor, adminRole)
		target := withMembership(d, orgID, model.Actor{UserID: uuid.New()}, memberRole)
		d.orgs.On("GetByIDForUpdate", mock.Anything, orgID).Return(model.Organization{ID: orgID}, nil)
		d.roles.On("MaxLevel", mock.Anything, orgID).Return(100, nil)
		d.members.On("SoftDelete", mock.Anything, target.ID, testNow).Return(nil)

		require.NoError(t, s.RemoveMember(context.Background(), actor, orgID, target.UserID))
	})

	t.Run("unknown member", func(t *testing.T) {
		t.Parallel()

		s, d := newTestOrganizations(t)
		actor := newActor()
		withMembership(d, orgID, actor, ownerRole)
		missing := uuid.New()
		d.orgs.On("GetByIDForUpdate", mock.Anything, orgID).Return(model.Organization{ID: orgID}, nil)
		d.members.On("Get", mock.Anything, orgID, missing).Return(model.Member{}, model.ErrNotFound)

		err := s.RemoveMember(context.Background(), actor, orgID, missing)
		assert.ErrorIs(t, err, apperror.ErrMemberNotFound)
	})
}

func TestOrganizations_CreateRole(t *testing.T) {
	t.Parallel()

	orgID := uuid.New()
	requested := []string{model.PermissionBillingManage, " billing:manage", "", model.PermissionIAMManage}

	tests := []struct {
		name        string
		role        model.Role
		level       int
		permissions []string
		storeErr    error
		wantErr     error
	}{
		{name: "below own level", role: adminRole, level: 20, permissions: requested},
		{name: "lowest level", role: ownerRole, level: 1, permissions: requested},
		{name: "highest level", role: model.Role{Name: "ROOT", Level: 1000, Permissions: []string{model.PermissionWildcard}}, level: 999, permissions: requested},
		{name: "at own level", role: adminRole, level: 50, permissions: requested, wantErr: apperror.ErrInsufficientPrivilege},
		{name: "level zero", role: ownerRole, level: 0, wantErr: apperror.ErrInvalidRoleLevel},
		{name: "negative level", role: ownerRole, level: -5, wantErr: apperror.ErrInvalidRoleLevel},
		{name: "level above range", role: ownerRole, level: 1000, wantErr: apperror.ErrInvalidRoleLevel},
		{name: "grants wildcard without holding it", role: adminRole, level: 20,
			permissions: []string{model.PermissionWildcard}, wantErr: apperror.ErrPermissionNotHeld},
		{name: "grants permission it lacks", role: adminRole, level: 20,
			permissions: []string{model.PermissionBillingManage, model.PermissionWorkspaceMgmt}, wantErr: apperror.ErrPermissionNotHeld},
		{name: "name taken", role: ownerRole, level: 20, permissions: requested, storeErr: model.ErrConflict, wantErr: apperror.ErrRoleExists},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, d := newTestOrganizations(t)
			actor := newActor()
			if tt.level >= 1 && tt.level <= 999 {
				withMembership(d, orgID, actor, tt.role)
				d.orgs.On("GetByID", mock.Anything, orgID).Return(model.Organization{ID: orgID}, nil)
			}
			if tt.wantErr == nil || tt.storeErr != nil {
				d.roles.On("Create", mock.Anything, mock.Anything).Return(tt.storeErr)
			}

			role, err := s.CreateRole(context.Background(), actor, orgID, "Auditor", tt.level, tt.permissions)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				if tt.storeErr == nil {
					d.roles.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []string{model.PermissionBillingManage, model.PermissionIAMManage}, role.Permissions)
			assert.Equal(t, tt.level, role.Level)
			assert.Equal(t, []string{model.AuditRoleCreated}, d.audit.Actions())
		})
	}
}

func TestOrganizations_UpdateRolePermissions(t *testing.T) {
	t.Parallel()

	orgID := uuid.New()

	t.Run("owner role is immutable", func(t *testing.T) {
		t.Parallel()

		s, d := newTestOrganizations(t)
		actor := newActor()
		actor.Authorities = []string{model.GlobalAuthority}
		d.roles.On("GetByID", mock.Anything, orgID, ownerRole.ID).Return(ownerRole, nil)

		_, err := s.UpdateRolePermissions(context.Background(), actor, orgID, ownerRole.ID, []string{"workspace:read"})
		assert.ErrorIs(t, err, apperror.ErrImmutableRole)
	})

	t.Run("admin updates member role", func(t *testing.T) {
		t.Parallel()

		s, d := newTestOrganizations(t)
		actor := newActor()
		withMembership(d, orgID, actor, adminRole)
		d.roles.On("GetByID", mock.Anything, orgID, memberRole.ID).Return(memberRole, nil)
		d.roles.On("UpdatePermissions", mock.Anything, memberRole.ID, []string{"billing:manage", "iam:manage"}).Return(nil)

		role, err := s.UpdateRolePermissions(context.Background(), actor, orgID, memberRole.ID,
			[]string{"billing:manage", "iam:manage", "billing:manage"})
		require.NoError(t, err)
		assert.Equal(t, []string{"billing:manage", "iam:manage"}, role.Permissions)
	})

	t.Run("admin cannot hand out wildcard", func(t *testing.T) {
		t.Parallel()

		s, d := newTestOrganizations(t)
		actor := newActor()
		withMembership(d, orgID, actor, adminRole)
		d.roles.On("GetByID", mock.Anything, orgID, memberRole.ID).Return(memberRole, nil)

		_, err := s.UpdateRolePermissions(context.Background(), actor, orgID, memberRole.ID, []string{model.PermissionWildcard})
		assert.ErrorIs(t, err, apperror.ErrPermissionNotHeld)
		d.roles.AssertNotCalled(t, "UpdatePermissions", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("admin cannot hand out permissions it lacks", func(t *testing.T) {
		t.Parallel()

		s, d := newTestOrganizations(t)
		actor := newActor()
		withMembership(d, orgID, actor, adminRole)
		d.roles.On("GetByID", mock.Anything, orgID, memberRole.ID).Return(memberRole, nil)

		_, err := s.UpdateRolePermissions(context.Background(), actor, orgID, memberRole.ID,
			[]string{"workspace:read", "workspace:write"})
		assert.ErrorIs(t, err, apperror.ErrPermissionNotHeld)
	})

	t.Run("owner grants anything below its level", func(t *testing.T) {
		t.Parallel()

		s, d := newTestOrganizations(t)
		actor := newActor()
		withMembership(d, orgID, actor, ownerRole)
		d.roles.On("GetByID", mock.Anything, orgID, adminRole.ID).Return(adminRole, nil)
		d.roles.On("UpdatePermissions", mock.Anything, adminRole.ID, []string{"audit:read"}).Return(nil)

		_, err := s.UpdateRolePermissions(context.Background(), actor, orgID, adminRole.ID, []string{"audit:read"})
		require.NoError(t, err)
	})

	t.Run("admin cannot touch own level", func(t *testing.T) {
		t.Parallel()

		s, d := newTestOrganizations(t)
		actor := newActor()
		withMembership(d, orgID, actor, adminRole)
		d.roles.On("GetByID", mock.Anything, orgID, adminRole.ID).Return(adminRole, nil)

		_, err := s.UpdateRolePermissions(context.Background(), actor, orgID, adminRole.ID, []string{"*"})
		assert.ErrorIs(t, err, apperror.ErrInsufficientPrivilege)
	})
}

func TestOrganizations_DeleteRole(t *testing.T) {
	t.Parallel()

	orgID := uuid.New()
	custom := model.Role{ID: uuid.New(), Name: "AUDITOR", Level: 20}

	tests := []struct {
		name      string
		role      model.Role
		topCount  int
		inUse     int
		deleteErr error
		wantErr   error
	}{
		{name: "unused custom role", role: custom},
		{name: "role in use", role: custom, inUse: 3, wantErr: apperror.ErrRoleInUse},
		{name: "still referenced at delete time", role: custom, deleteErr: model.ErrConflict, wantErr: apperror.ErrRoleInUse},
		{name: "only top role", role: ownerRole, topCount: 1, wantErr: apperror.ErrLastOwner},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, d := newTestOrganizations(t)
			actor := newActor()
			withMembership(d, orgID, actor, ownerRole)
			d.orgs.On("GetByIDForUpdate", mock.Anything, orgID).Return(model.Organization{ID: orgID}, nil)
			d.roles.On("GetByID", mock.Anything, orgID, tt.role.ID).Return(tt.role, nil)
			d.roles.On("MaxLevel", mock.Anything, orgID).Return(100, nil)
			if tt.topCount > 0 {
				d.roles.On("CountAtLevel", mock.Anything, orgID, 100).Return(tt.topCount, nil)
			} else {
				d.members.On("CountByRole", mock.Anything, tt.role.ID).Return(tt.inUse, nil)
			}
			if tt.wantErr == nil || tt.deleteErr != nil {
				d.roles.On("Delete", mock.Anything, tt.role.ID).Return(tt.deleteErr)
			}

			err := s.DeleteRole(context.Background(), actor, orgID, tt.role.ID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []string{model.AuditRoleDeleted}, d.audit.Actions())
		})
	}
}

func TestOrganizations_ListRequiresMembership(t *testing.T) {
	t.Parallel()

	orgID := uuid.New()
	s, d := newTestOrganizations(t)
	outsider := newActor()
	d.members.On("Get", mock.Anything, orgID, outsider.UserID).Return(model.Member{}, model.ErrNotFound)

	_, err := s.ListRoles(context.Background(), outsider, orgID)
	assert.ErrorIs(t, err, apperror.ErrNotOrganizationMember)

	_, err = s.ListMembers(context.Background(), outsider, orgID)
	assert.ErrorIs(t, err, apperror.ErrNotOrganizationMember)
}

func TestOrganizations_ListMembers(t *testing.T) {
	t.Parallel()

	orgID := uuid.New()
	s, d := newTestOrganizations(t)
	actor := newActor()
	self := withMembership(d, orgID, actor, memberRole)
	d.members.On("ListByOrganization", mock.Anything, orgID).Return([]model.Member{self}, nil)

	members, err := s.ListMembers(context.Background(), actor, orgID)
	require.NoError(t, err)
	assert.Len(t, members, 1)
}

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Acme":               "acme",
		"  Acme Corp!  ":     "acme-corp",
		"Acme GmbH & Co. KG": "acme-gmbh-co-kg",
		"Übersee":            "bersee",
		"!!!":                "org",
		"a--b":               "a-b",
	}
	for in, want := range tests {
		assert.Equal(t, want, slugify(in), in)
	}
}
