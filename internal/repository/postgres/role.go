package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/nox-iam/internal/model"
)

var _ model.RoleStore = (*RoleRepository)(nil)

type RoleRepository struct {
	db *Connection
}

func NewRoleRepository(db *Connection) *RoleRepository {
	return &RoleRepository{db: db}
}

const roleColumns = `id, organization_id, name, level, permissions, created_at`

func scanRole(row pgx.Row) (model.Role, error) {
	var role model.Role
	err := row.Scan(&role.ID, &role.OrganizationID, &role.Name, &role.Level, &role.Permissions, &role.CreatedAt)
	return role, err
}

func (r *RoleRepository) Create(ctx context.Context, role model.Role) error {
	const query = `
        INSERT INTO roles (id, organization_id, name, level, permissions, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `
	_, err := r.db.conn(ctx).Exec(ctx, query,
		role.ID, role.OrganizationID, role.Name, role.Level, role.Permissions, role.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrConflict
		}
		return fmt.Errorf("failed to create role: %w", err)
	}
	return nil
}

func (r *RoleRepository) GetByID(ctx context.Context, orgID, id uuid.UUID) (model.Role, error) {
	query := `SELECT ` + roleColumns + ` FROM roles WHERE organization_id = $1 AND id = $2`

	role, err := scanRole(r.db.conn(ctx).QueryRow(ctx, query, orgID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Role{}, model.ErrNotFound
		}
		return model.Role{}, fmt.Errorf("failed to get role by id: %w", err)
	}
	return role, nil
}

func (r *RoleRepository) GetByName(ctx context.Context, orgID uuid.UUID, name string) (model.Role, error) {
	query := `SELECT ` + roleColumns + ` FROM roles WHERE organization_id = $1 AND name = $2`

	role, err := scanRole(r.db.conn(ctx).QueryRow(ctx, query, orgID, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Role{}, model.ErrNotFound
		}
		return model.Role{}, fmt.Errorf("failed to get role by name: %w", err)
	}
	return role, nil
}

func (r *RoleRepository) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]model.Role, error) {
	query := `SELECT ` + roleColumns + ` FROM roles WHERE organization_id = $1 ORDER BY level DESC, name`

	rows, err := r.db.conn(ctx).Query(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	defer rows.Close()

	var roles []model.Role
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate roles: %w", err)
	}
	return roles, nil
}

func (r *RoleRepository) UpdatePermissions(ctx context.Context, id uuid.UUID, permissions []string) error {
	const query = `UPDATE roles SET permissions = $2 WHERE id = $1`

	tag, err := r.db.conn(ctx).Exec(ctx, query, id, permissions)
	if err != nil {
		return fmt.Errorf("failed to update role permissions: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

// Delete removes the role. Removed members keep a NULL role; ErrConflict is
// returned while an active member still holds it.
func (r *RoleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM roles WHERE id = $1`

	if _, err := r.db.conn(ctx).Exec(ctx, query, id); err != nil {
		if isReferenceViolation(err) {
			return model.ErrConflict
		}
		return fmt.Errorf("failed to delete role: %w", err)
	}
	return nil
}

func (r *RoleRepository) MaxLevel(ctx context.Context, orgID uuid.UUID) (int, error) {
	const query = `SELECT COALESCE(MAX(level), 0) FROM roles WHERE organization_id = $1`

	var level int
	if err := r.db.conn(ctx).QueryRow(ctx, query, orgID).Scan(&level); err != nil {
		return 0, fmt.Errorf("failed to get max role level: %w", err)
	}
	return level, nil
}

func (r *RoleRepository) CountAtLevel(ctx context.Context, orgID uuid.UUID, level int) (int, error) {
	const query = `SELECT COUNT(*) FROM roles WHERE organization_id = $1 AND level = $2`

	var n int
	if err := r.db.conn(ctx).QueryRow(ctx, query, orgID, level).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count roles at level: %w", err)
	}
	return n, nil
}
