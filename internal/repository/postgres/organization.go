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

var _ model.OrganizationStore = (*OrganizationRepository)(nil)

type OrganizationRepository struct {
	db *Connection
}

func NewOrganizationRepository(db *Connection) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

const organizationColumns = `id, name, slug, created_at, updated_at, deleted_at`

func scanOrganization(row pgx.Row) (model.Organization, error) {
	var org model.Organization
	err := row.Scan(&org.ID, &org.Name, &org.Slug, &org.CreatedAt, &org.UpdatedAt, &org.DeletedAt)
	return org, err
}

func (r *OrganizationRepository) Create(ctx context.Context, org model.Organization) error {
	const query = `INSERT INTO organizations (id, name, slug, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.conn(ctx).Exec(ctx, query, org.ID, org.Name, org.Slug, org.CreatedAt, org.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrConflict
		}
		return fmt.Errorf("failed to create organization: %w", err)
	}
	return nil
}

func (r *OrganizationRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE id = $1 AND deleted_at IS NULL`

	org, err := scanOrganization(r.db.conn(ctx).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Organization{}, model.ErrNotFound
		}
		return model.Organization{}, fmt.Errorf("failed to get organization: %w", err)
	}
	return org, nil
}

// GetByIDForUpdate locks the organization row until the surrounding
// transaction ends, serializing membership and role changes.
func (r *OrganizationRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (model.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`

	org, err := scanOrganization(r.db.conn(ctx).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Organization{}, model.ErrNotFound
		}
		return model.Organization{}, fmt.Errorf("failed to lock organization: %w", err)
	}
	return org, nil
}

func (r *OrganizationRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM organizations WHERE slug = $1)`

	var exists bool
	if err := r.db.conn(ctx).QueryRow(ctx, query, slug).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check organization slug: %w", err)
	}
	return exists, nil
}

func (r *OrganizationRepository) Update(ctx context.Context, org model.Organization) error {
	const query = `
        UPDATE organizations SET name = $2, slug = $3, updated_at = $4
        WHERE id = $1 AND deleted_at IS NULL
    `
	tag, err := r.db.conn(ctx).Exec(ctx, query, org.ID, org.Name, org.Slug, org.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrConflict
		}
		return fmt.Errorf("failed to update organization: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *OrganizationRepository) SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) error {
	const query = `UPDATE organizations SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`

	tag, err := r.db.conn(ctx).Exec(ctx, query, id, at)
	if err != nil {
		return fmt.Errorf("failed to delete organization: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *OrganizationRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Organization, error) {
	const query = `
        SELECT o.id, o.name, o.slug, o.created_at, o.updated_at, o.deleted_at
        FROM organizations o
        JOIN org_members m ON m.organization_id = o.id
        WHERE m.user_id = $1 AND m.deleted_at IS NULL AND o.deleted_at IS NULL
        ORDER BY o.name
    `
	rows, err := r.db.conn(ctx).Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	defer rows.Close()

	var orgs []model.Organization
	for rows.Next() {
		org, err := scanOrganization(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan organization: %w", err)
		}
		orgs = append(orgs, org)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate organizations: %w", err)
	}
	return orgs, nil
}
