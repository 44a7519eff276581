package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/nox-iam/internal/model"
)

var _ model.MemberStore = (*MemberRepository)(nil)

type MemberRepository struct {
	db *Connection
}

func NewMemberRepository(db *Connection) *MemberRepository {
	return &MemberRepository{db: db}
}

const memberSelect = `
    SELECT m.id, m.organization_id, m.user_id, u.email, m.invited_by, m.joined_at,
           r.id, r.organization_id, r.name, r.level, r.permissions, r.created_at
    FROM org_members m
    JOIN organizations o ON o.id = m.organization_id AND o.deleted_at IS NULL
    JOIN roles r ON r.id = m.role_id
    JOIN users u ON u.id = m.user_id
`

func scanMember(row pgx.Row) (model.Member, error) {
	var m model.Member
	err := row.Scan(
		&m.ID, &m.OrganizationID, &m.UserID, &m.Email, &m.InvitedBy, &m.JoinedAt,
		&m.Role.ID, &m.Role.OrganizationID, &m.Role.Name, &m.Role.Level, &m.Role.Permissions, &m.Role.CreatedAt,
	)
	return m, err
}

func (r *MemberRepository) Create(ctx context.Context, member model.Member) error {
	const query = `
        INSERT INTO org_members (id, organization_id, user_id, role_id, invited_by, joined_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `
	_, err := r.db.conn(ctx).Exec(ctx, query,
		member.ID, member.OrganizationID, member.UserID, member.Role.ID, member.InvitedBy, member.JoinedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrConflict
		}
		return fmt.Errorf("failed to create member: %w", err)
	}
	return nil
}

func (r *MemberRepository) Get(ctx context.Context, orgID, userID uuid.UUID) (model.Member, error) {
	query := memberSelect + ` WHERE m.organization_id = $1 AND m.user_id = $2 AND m.deleted_at IS NULL`

	m, err := scanMember(r.db.conn(ctx).QueryRow(ctx, query, orgID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Member{}, model.ErrNotFound
		}
		return model.Member{}, fmt.Errorf("failed to get member: %w", err)
	}
	return m, nil
}

func (r *MemberRepository) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]model.Member, error) {
	query := memberSelect + ` WHERE m.organization_id = $1 AND m.deleted_at IS NULL ORDER BY r.level DESC, m.joined_at`

	rows, err := r.db.conn(ctx).Query(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []model.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	return members, nil
}

func (r *MemberRepository) SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) error {
	const query = `UPDATE org_members SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`

	tag, err := r.db.conn(ctx).Exec(ctx, query, id, at)
	if err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *MemberRepository) SoftDeleteByOrganization(ctx context.Context, orgID uuid.UUID, at time.Time) error {
	const query = `UPDATE org_members SET deleted_at = $2 WHERE organization_id = $1 AND deleted_at IS NULL`

	if _, err := r.db.conn(ctx).Exec(ctx, query, orgID, at); err != nil {
		return fmt.Errorf("failed to delete organization members: %w", err)
	}
	return nil
}

func (r *MemberRepository) CountByRole(ctx context.Context, roleID uuid.UUID) (int, error) {
	const query = `SELECT COUNT(*) FROM org_members WHERE role_id = $1 AND deleted_at IS NULL`

	var n int
	if err := r.db.conn(ctx).QueryRow(ctx, query, roleID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count members by role: %w", err)
	}
	return n, nil
}

func (r *MemberRepository) CountAtLevel(ctx context.Context, orgID uuid.UUID, level int) (int, error) {
	const query = `
        SELECT COUNT(*) FROM org_members m JOIN roles r ON r.id = m.role_id
        WHERE m.organization_id = $1 AND r.level = $2 AND m.deleted_at IS NULL
    `
	var n int
	if err := r.db.conn(ctx).QueryRow(ctx, query, orgID, level).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count members at level: %w", err)
	}
	return n, nil
}
