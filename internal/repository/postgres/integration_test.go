//go:build integration

package postgres_test

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dtroode/nox-iam/internal/model"
	repo "github.com/dtroode/nox-iam/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "nox_iam_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/nox_iam_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func connect(t *testing.T) *repo.Connection {
	t.Helper()
	conn, err := repo.NewConection(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func createUser(t *testing.T, conn *repo.Connection, email string) model.User {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Microsecond)
	u := model.User{
		ID:        uuid.New(),
		Email:     email,
		Status:    model.UserStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	saved, err := repo.NewUserRepository(conn).Create(context.Background(), u, model.Credential{
		UserID:       u.ID,
		PasswordHash: "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		PasswordSet:  true,
		MFA:          model.MFAOff(),
		UpdatedAt:    now,
	})
	require.NoError(t, err)
	return saved
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	conn := connect(t)
	users := repo.NewUserRepository(conn)

	u := createUser(t, conn, "Mixed.Case@example.com")

	byEmail, err := users.GetByEmail(ctx, "mixed.case@EXAMPLE.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	_, err = users.Create(ctx, model.User{ID: uuid.New(), Email: "mixed.case@example.com", Status: model.UserStatusPendingVerification},
		model.Credential{MFA: model.MFAOff()})
	assert.ErrorIs(t, err, model.ErrConflict)

	require.NoError(t, users.UpdateDisplayName(ctx, u.ID, "Mixed"))
	require.NoError(t, users.UpdateStatus(ctx, u.ID, model.UserStatusDeleted))

	_, err = users.GetByEmail(ctx, u.Email)
	assert.ErrorIs(t, err, model.ErrNotFound)

	deleted, err := users.GetByEmailIncludeDeleted(ctx, u.Email)
	require.NoError(t, err)
	assert.Equal(t, model.UserStatusDeleted, deleted.Status)
	assert.Equal(t, "Mixed", deleted.DisplayName)

	_, err = users.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestCredentialRepository(t *testing.T) {
	ctx := context.Background()
	conn := connect(t)
	creds := repo.NewCredentialRepository(conn)
	u := createUser(t, conn, "lockout@example.com")
	lockUntil := time.Now().Add(15 * time.Minute).UTC().Truncate(time.Microsecond)

	t.Run("login failures lock at the threshold", func(t *testing.T) {
		for i := 1; i < 3; i++ {
			c, err := creds.RegisterLoginFailure(ctx, u.ID, 3, lockUntil)
			require.NoError(t, err)
			assert.Equal(t, i, c.FailedLoginAttempts)
			assert.Nil(t, c.LockedUntil)
		}
		c, err := creds.RegisterLoginFailure(ctx, u.ID, 3, lockUntil)
		require.NoError(t, err)
		require.NotNil(t, c.LockedUntil)
		assert.True(t, c.IsLocked(time.Now()))
	})

	t.Run("counters survive a rolled back transaction", func(t *testing.T) {
		boom := errors.New("boom")
		err := conn.WithinTx(ctx, func(ctx context.Context) error {
			if _, err := creds.RegisterMFAFailure(ctx, u.ID, 10, lockUntil); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)

		c, err := creds.Get(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, c.FailedMFAAttempts)
	})

	t.Run("reset login failures keeps mfa counter", func(t *testing.T) {
		require.NoError(t, creds.ResetLoginFailures(ctx, u.ID))
		c, err := creds.Get(ctx, u.ID)
		require.NoError(t, err)
		assert.Zero(t, c.FailedLoginAttempts)
		assert.Equal(t, 1, c.FailedMFAAttempts)
	})

	t.Run("reset failures clears lock", func(t *testing.T) {
		require.NoError(t, creds.ResetFailures(ctx, u.ID))
		c, err := creds.Get(ctx, u.ID)
		require.NoError(t, err)
		assert.Zero(t, c.FailedMFAAttempts)
		assert.False(t, c.IsLocked(time.Now()))
	})

	t.Run("mfa state round trip", func(t *testing.T) {
		require.NoError(t, creds.SetMFA(ctx, u.ID, model.MFAPending("PENDING")))
		c, err := creds.Get(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, model.MFAPendingSetup, c.MFA.Status())

		require.NoError(t, creds.SetMFA(ctx, u.ID, model.MFAOn("ACTIVE")))
		c, err = creds.Get(ctx, u.ID)
		require.NoError(t, err)
		assert.True(t, c.MFA.Enabled())
		assert.Equal(t, "ACTIVE", c.MFA.Secret())
	})

	t.Run("set password", func(t *testing.T) {
		changed := time.Now().UTC().Truncate(time.Microsecond)
		require.NoError(t, creds.SetPassword(ctx, u.ID, "new-hash", changed))
		c, err := creds.Get(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "new-hash", c.PasswordHash)
		require.NotNil(t, c.LastPasswordChange)
		assert.True(t, changed.Equal(*c.LastPasswordChange))
	})

	t.Run("get for update inside a transaction", func(t *testing.T) {
		err := conn.WithinTx(ctx, func(ctx context.Context) error {
			c, err := creds.GetForUpdate(ctx, u.ID)
			if err != nil {
				return err
			}
			assert.Equal(t, u.ID, c.UserID)
			return nil
		})
		require.NoError(t, err)

		_, err = creds.GetForUpdate(ctx, uuid.New())
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestSessionRepository(t *testing.T) {
	ctx := context.Background()
	conn := connect(t)
	sessions := repo.NewSessionRepository(conn)
	u := createUser(t, conn, "sessions@example.com")
	now := time.Now().UTC().Truncate(time.Microsecond)

	newSession := func(token string) model.Session {
		h := sha256.Sum256([]byte(token))
		return model.Session{
			ID:           uuid.New(),
			UserID:       u.ID,
			TokenHash:    h[:],
			IPAddress:    "10.0.0.1",
			UserAgent:    "curl/8.0",
			DeviceClass:  "other",
			LastActiveAt: now,
			ExpiresAt:    now.Add(7 * 24 * time.Hour),
			CreatedAt:    now,
		}
	}

	first := newSession("first")
	require.NoError(t, sessions.Create(ctx, first))

	err := conn.WithinTx(ctx, func(ctx context.Context) error {
		locked, err := sessions.GetByTokenHashForUpdate(ctx, first.TokenHash)
		if err != nil {
			return err
		}
		if err := sessions.Revoke(ctx, locked.ID, "rotated", now); err != nil {
			return err
		}
		second := newSession("second")
		second.RotatedFrom = &locked.ID
		return sessions.Create(ctx, second)
	})
	require.NoError(t, err)

	old, err := sessions.GetByTokenHash(ctx, first.TokenHash)
	require.NoError(t, err)
	assert.False(t, old.IsValid(now))
	assert.Equal(t, "rotated", old.RevokeReason)

	active, err := sessions.ListActiveByUser(ctx, u.ID, now)
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.NotNil(t, active[0].RotatedFrom)
	assert.Equal(t, first.ID, *active[0].RotatedFrom)

	n, err := sessions.RevokeAllByUser(ctx, u.ID, "possible hijack", now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	active, err = sessions.ListActiveByUser(ctx, u.ID, now)
	require.NoError(t, err)
	assert.Empty(t, active)

	_, err = sessions.GetByTokenHash(ctx, []byte("missing"))
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestOTPRepository(t *testing.T) {
	ctx := context.Background()
	conn := connect(t)
	otps := repo.NewOTPRepository(conn)
	u := createUser(t, conn, "otp@example.com")
	now := time.Now().UTC().Truncate(time.Microsecond)

	older := model.OTPCode{ID: uuid.New(), UserID: u.ID, Code: "111111", Type: model.OTPTypeVerifyEmail,
		ExpiresAt: now.Add(15 * time.Minute), CreatedAt: now.Add(-time.Minute)}
	newer := model.OTPCode{ID: uuid.New(), UserID: u.ID, Code: "222222", Type: model.OTPTypeVerifyEmail,
		ExpiresAt: now.Add(15 * time.Minute), CreatedAt: now}
	require.NoError(t, otps.Create(ctx, older))
	require.NoError(t, otps.Create(ctx, newer))

	latest, err := otps.LatestUnused(ctx, u.ID, model.OTPTypeVerifyEmail)
	require.NoError(t, err)
	assert.Equal(t, "222222", latest.Code)

	_, err = otps.LatestUnused(ctx, u.ID, model.OTPTypeResetPassword)
	assert.ErrorIs(t, err, model.ErrNotFound)

	attempts, err := otps.RegisterFailure(ctx, newer.ID, 2, now)
	require.NoError(t, err)
	assert.Equal(t, 1, attempts)
	attempts, err = otps.RegisterFailure(ctx, newer.ID, 2, now)
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)

	// the exhausted code is burned, so the older one surfaces
	latest, err = otps.LatestUnused(ctx, u.ID, model.OTPTypeVerifyEmail)
	require.NoError(t, err)
	assert.Equal(t, older.ID, latest.ID)

	reset := model.OTPCode{ID: uuid.New(), UserID: u.ID, Code: "333333", Type: model.OTPTypeResetPassword,
		ExpiresAt: now.Add(15 * time.Minute), CreatedAt: now}
	require.NoError(t, otps.Create(ctx, reset))
	ok, err := otps.MarkUsed(ctx, reset.ID, now)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = otps.MarkUsed(ctx, reset.ID, now)
	require.NoError(t, err)
	assert.False(t, ok, "a consumed code cannot be consumed again")

	require.NoError(t, otps.InvalidateUnused(ctx, u.ID, model.OTPTypeVerifyEmail, now))
	_, err = otps.LatestUnused(ctx, u.ID, model.OTPTypeVerifyEmail)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestBackupCodeRepository(t *testing.T) {
	ctx := context.Background()
	conn := connect(t)
	codes := repo.NewBackupCodeRepository(conn)
	u := createUser(t, conn, "backup@example.com")
	now := time.Now().UTC().Truncate(time.Microsecond)

	batch := func(n int) []model.BackupCode {
		out := make([]model.BackupCode, n)
		for i := range out {
			out[i] = model.BackupCode{ID: uuid.New(), CodeHash: fmt.Sprintf("hash-%d", i), CreatedAt: now}
		}
		return out
	}

	require.NoError(t, codes.Replace(ctx, u.ID, batch(3)))
	replacement := batch(2)
	require.NoError(t, codes.Replace(ctx, u.ID, replacement))

	unused, err := codes.ListUnused(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, unused, 2)

	ok, err := codes.MarkUsed(ctx, replacement[0].ID, now)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = codes.MarkUsed(ctx, replacement[0].ID, now)
	require.NoError(t, err)
	assert.False(t, ok)

	unused, err = codes.ListUnused(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, unused, 1)

	require.NoError(t, codes.DeleteAll(ctx, u.ID))
	unused, err = codes.ListUnused(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, unused)
}

func TestSocialIdentityRepository(t *testing.T) {
	ctx := context.Background()
	conn := connect(t)
	identities := repo.NewSocialIdentityRepository(conn)
	u := createUser(t, conn, "social@example.com")
	other := createUser(t, conn, "social-other@example.com")

	identity := model.SocialIdentity{
		ID:         uuid.New(),
		UserID:     u.ID,
		Provider:   "google",
		ProviderID: "g-42",
		Profile:    map[string]any{"name": "Social"},
		CreatedAt:  time.Now().UTC(),
	}
	require.NoError(t, identities.Create(ctx, identity))

	dup := identity
	dup.ID = uuid.New()
	dup.UserID = other.ID
	assert.ErrorIs(t, identities.Create(ctx, dup), model.ErrConflict)

	got, err := identities.GetByProvider(ctx, "google", "g-42")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.UserID)
	assert.Equal(t, "Social", got.Profile["name"])

	_, err = identities.GetByProvider(ctx, "github", "g-42")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestOrganizationRepositories(t *testing.T) {
	ctx := context.Background()
	conn := connect(t)
	orgs := repo.NewOrganizationRepository(conn)
	roles := repo.NewRoleRepository(conn)
	members := repo.NewMemberRepository(conn)
	owner := createUser(t, conn, "owner@example.com")
	member := createUser(t, conn, "member@example.com")
	now := time.Now().UTC().Truncate(time.Microsecond)

	org := model.Organization{ID: uuid.New(), Name: "Acme", Slug: "acme", CreatedAt: now, UpdatedAt: now}
	ownerRole := model.Role{ID: uuid.New(), OrganizationID: org.ID, Name: model.RoleOwner, Level: 100,
		Permissions: []string{model.PermissionWildcard}, CreatedAt: now}
	memberRole := model.Role{ID: uuid.New(), OrganizationID: org.ID, Name: model.RoleMember, Level: 10,
		Permissions: []string{model.PermissionWorkspaceRead}, CreatedAt: now}

	err := conn.WithinTx(ctx, func(ctx context.Context) error {
		if err := orgs.Create(ctx, org); err != nil {
			return err
		}
		for _, r := range []model.Role{ownerRole, memberRole} {
			if err := roles.Create(ctx, r); err != nil {
				return err
			}
		}
		return members.Create(ctx, model.Member{
			ID: uuid.New(), OrganizationID: org.ID, UserID: owner.ID, Role: ownerRole, JoinedAt: now,
		})
	})
	require.NoError(t, err)

	exists, err := orgs.SlugExists(ctx, "acme")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.ErrorIs(t, orgs.Create(ctx, model.Organization{ID: uuid.New(), Name: "Acme", Slug: "acme"}), model.ErrConflict)
	assert.ErrorIs(t, roles.Create(ctx, model.Role{ID: uuid.New(), OrganizationID: org.ID, Name: model.RoleOwner, Level: 1}), model.ErrConflict)

	invitedBy := owner.ID
	memberRow := model.Member{ID: uuid.New(), OrganizationID: org.ID, UserID: member.ID, Role: memberRole,
		InvitedBy: &invitedBy, JoinedAt: now}
	require.NoError(t, members.Create(ctx, memberRow))
	assert.ErrorIs(t, members.Create(ctx, memberRow), model.ErrConflict)

	got, err := members.Get(ctx, org.ID, member.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleMember, got.Role.Name)
	assert.Equal(t, "member@example.com", got.Email)

	list, err := members.ListByOrganization(ctx, org.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, owner.ID, list[0].UserID)

	maxLevel, err := roles.MaxLevel(ctx, org.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, maxLevel)

	owners, err := members.CountAtLevel(ctx, org.ID, maxLevel)
	require.NoError(t, err)
	assert.Equal(t, 1, owners)

	n, err := members.CountByRole(ctx, memberRole.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, roles.UpdatePermissions(ctx, memberRole.ID, []string{model.PermissionWorkspaceRead, model.PermissionIAMManage}))
	updated, err := roles.GetByName(ctx, org.ID, model.RoleMember)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{model.PermissionWorkspaceRead, model.PermissionIAMManage}, updated.Permissions)

	err = conn.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := orgs.GetByIDForUpdate(ctx, org.ID); err != nil {
			return err
		}
		return members.SoftDelete(ctx, got.ID, now)
	})
	require.NoError(t, err)

	_, err = members.Get(ctx, org.ID, member.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.ErrorIs(t, members.SoftDelete(ctx, got.ID, now), model.ErrNotFound)

	n, err = members.CountByRole(ctx, memberRole.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	// removed members are detached from a deleted role, active ones block it
	require.NoError(t, roles.Delete(ctx, memberRole.ID))
	var removedRole *uuid.UUID
	require.NoError(t, conn.Pool.QueryRow(ctx, `SELECT role_id FROM org_members WHERE id = $1`, got.ID).Scan(&removedRole))
	assert.Nil(t, removedRole)
	assert.ErrorIs(t, roles.Delete(ctx, ownerRole.ID), model.ErrConflict)

	_, err = orgs.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, model.ErrNotFound)

	mine, err := orgs.ListForUser(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, org.ID, mine[0].ID)
	mine, err = orgs.ListForUser(ctx, member.ID)
	require.NoError(t, err)
	assert.Empty(t, mine)

	org.Name, org.Slug, org.UpdatedAt = "Acme Labs", "acme-labs", now.Add(time.Minute)
	require.NoError(t, orgs.Update(ctx, org))
	renamed, err := orgs.GetByID(ctx, org.ID)
	require.NoError(t, err)
	assert.Equal(t, "acme-labs", renamed.Slug)

	other := model.Organization{ID: uuid.New(), Name: "Globex", Slug: "globex", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, orgs.Create(ctx, other))
	other.Slug = "acme-labs"
	assert.ErrorIs(t, orgs.Update(ctx, other), model.ErrConflict)

	_, err = members.Get(ctx, org.ID, owner.ID)
	require.NoError(t, err)

	deletedAt := now.Add(2 * time.Minute)
	require.NoError(t, orgs.SoftDelete(ctx, org.ID, deletedAt))

	// memberships of a deleted organization resolve to nothing
	_, err = members.Get(ctx, org.ID, owner.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = orgs.GetByID(ctx, org.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = orgs.GetByIDForUpdate(ctx, org.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.ErrorIs(t, orgs.SoftDelete(ctx, org.ID, deletedAt), model.ErrNotFound)
	assert.ErrorIs(t, orgs.Update(ctx, org), model.ErrNotFound)

	require.NoError(t, members.SoftDeleteByOrganization(ctx, org.ID, deletedAt))
	var active int
	require.NoError(t, conn.Pool.QueryRow(ctx,
		`SELECT count(*) FROM org_members WHERE organization_id = $1 AND deleted_at IS NULL`, org.ID).Scan(&active))
	assert.Zero(t, active)

	mine, err = orgs.ListForUser(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestInvitationRepository(t *testing.T) {
	ctx := context.Background()
	conn := connect(t)
	orgs := repo.NewOrganizationRepository(conn)
	roles := repo.NewRoleRepository(conn)
	invitations := repo.NewInvitationRepository(conn)
	inviter := createUser(t, conn, "inviter@example.com")
	now := time.Now().UTC().Truncate(time.Microsecond)

	org := model.Organization{ID: uuid.New(), Name: "Initech", Slug: "initech", CreatedAt: now, UpdatedAt: now}
	role := model.Role{ID: uuid.New(), OrganizationID: org.ID, Name: model.RoleMember, Level: 10,
		Permissions: []string{model.PermissionWorkspaceRead}, CreatedAt: now}
	require.NoError(t, orgs.Create(ctx, org))
	require.NoError(t, roles.Create(ctx, role))

	newInvitation := func(token string, expiresAt time.Time) model.Invitation {
		hash := sha256.Sum256([]byte(token))
		return model.Invitation{
			ID:             uuid.New(),
			OrganizationID: org.ID,
			RoleID:         role.ID,
			Email:          "dave@example.com",
			TokenHash:      hash[:],
			InvitedBy:      inviter.ID,
			Status:         model.InvitationPending,
			ExpiresAt:      expiresAt,
			CreatedAt:      now,
		}
	}

	stale := newInvitation("stale", now.Add(-time.Minute))
	require.NoError(t, invitations.Create(ctx, stale))
	assert.ErrorIs(t, invitations.Create(ctx, newInvitation("second", now.Add(time.Hour))), model.ErrConflict)

	require.NoError(t, invitations.ExpireStale(ctx, org.ID, "dave@example.com", now))
	fresh := newInvitation("fresh", now.Add(7*24*time.Hour))
	require.NoError(t, invitations.Create(ctx, fresh))

	err := conn.WithinTx(ctx, func(ctx context.Context) error {
		got, err := invitations.GetByTokenHashForUpdate(ctx, stale.TokenHash)
		if err != nil {
			return err
		}
		assert.Equal(t, model.InvitationExpired, got.Status)

		got, err = invitations.GetByTokenHashForUpdate(ctx, fresh.TokenHash)
		if err != nil {
			return err
		}
		assert.Equal(t, model.InvitationPending, got.Status)
		assert.Nil(t, got.AcceptedAt)
		return invitations.SetStatus(ctx, got.ID, model.InvitationAccepted, now)
	})
	require.NoError(t, err)

	accepted, err := invitations.GetByTokenHashForUpdate(ctx, fresh.TokenHash)
	require.NoError(t, err)
	assert.Equal(t, model.InvitationAccepted, accepted.Status)
	require.NotNil(t, accepted.AcceptedAt)
	assert.True(t, now.Equal(*accepted.AcceptedAt))

	_, err = invitations.GetByTokenHashForUpdate(ctx, []byte("unknown"))
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.ErrorIs(t, invitations.SetStatus(ctx, uuid.New(), model.InvitationExpired, now), model.ErrNotFound)
}
