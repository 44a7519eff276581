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

var _ model.InvitationStore = (*InvitationRepository)(nil)

type InvitationRepository struct {
	db *Connection
}

func NewInvitationRepository(db *Connection) *InvitationRepository {
	return &InvitationRepository{db: db}
}

func (r *InvitationRepository) Create(ctx context.Context, inv model.Invitation) error {
	const query = `
        INSERT INTO invitations (id, organization_id, role_id, email, token_hash, invited_by, status, expires_at, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `
	_, err := r.db.conn(ctx).Exec(ctx, query,
		inv.ID, inv.OrganizationID, inv.RoleID, inv.Email, inv.TokenHash, inv.InvitedBy,
		string(model.InvitationPending), inv.ExpiresAt, inv.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrConflict
		}
		return fmt.Errorf("failed to create invitation: %w", err)
	}
	return nil
}

func (r *InvitationRepository) ExpireStale(ctx context.Context, orgID uuid.UUID, email string, at time.Time) error {
	const query = `
        UPDATE invitations SET status = $4
        WHERE organization_id = $1 AND email = $2 AND status = $3 AND expires_at <= $5
    `
	_, err := r.db.conn(ctx).Exec(ctx, query,
		orgID, email, string(model.InvitationPending), string(model.InvitationExpired), at,
	)
	if err != nil {
		return fmt.Errorf("failed to expire stale invitations: %w", err)
	}
	return nil
}

func (r *InvitationRepository) GetByTokenHashForUpdate(ctx context.Context, tokenHash []byte) (model.Invitation, error) {
	const query = `
        SELECT id, organization_id, role_id, email, token_hash, invited_by, status, expires_at, accepted_at, created_at
        FROM invitations WHERE token_hash = $1 FOR UPDATE
    `
	var (
		inv    model.Invitation
		status string
	)
	err := r.db.conn(ctx).QueryRow(ctx, query, tokenHash).Scan(
		&inv.ID, &inv.OrganizationID, &inv.RoleID, &inv.Email, &inv.TokenHash, &inv.InvitedBy,
		&status, &inv.ExpiresAt, &inv.AcceptedAt, &inv.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Invitation{}, model.ErrNotFound
		}
		return model.Invitation{}, fmt.Errorf("failed to lock invitation: %w", err)
	}
	inv.Status = model.InvitationStatus(status)
	return inv, nil
}

func (r *InvitationRepository) SetStatus(ctx context.Context, id uuid.UUID, status model.InvitationStatus, at time.Time) error {
	const query = `
        UPDATE invitations
        SET status = $2, accepted_at = CASE WHEN $2 = 'accepted' THEN $3::timestamptz ELSE accepted_at END
        WHERE id = $1
    `
	tag, err := r.db.conn(ctx).Exec(ctx, query, id, string(status), at)
	if err != nil {
		return fmt.Errorf("failed to update invitation status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
