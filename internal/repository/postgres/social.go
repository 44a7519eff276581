package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/nox-iam/internal/model"
)

var _ model.SocialIdentityStore = (*SocialIdentityRepository)(nil)

type SocialIdentityRepository struct {
	db *Connection
}

func NewSocialIdentityRepository(db *Connection) *SocialIdentityRepository {
	return &SocialIdentityRepository{db: db}
}

func (r *SocialIdentityRepository) GetByProvider(ctx context.Context, provider, providerID string) (model.SocialIdentity, error) {
	const query = `
        SELECT id, user_id, provider, provider_id, profile, created_at
        FROM social_identities WHERE provider = $1 AND provider_id = $2
    `
	var si model.SocialIdentity
	err := r.db.conn(ctx).QueryRow(ctx, query, provider, providerID).Scan(
		&si.ID, &si.UserID, &si.Provider, &si.ProviderID, &si.Profile, &si.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.SocialIdentity{}, model.ErrNotFound
		}
		return model.SocialIdentity{}, fmt.Errorf("failed to get social identity: %w", err)
	}
	return si, nil
}

func (r *SocialIdentityRepository) Create(ctx context.Context, identity model.SocialIdentity) error {
	const query = `
        INSERT INTO social_identities (id, user_id, provider, provider_id, profile, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (provider, provider_id) DO NOTHING
    `
	profile := identity.Profile
	if profile == nil {
		profile = map[string]any{}
	}
	tag, err := r.db.conn(ctx).Exec(ctx, query,
		identity.ID, identity.UserID, identity.Provider, identity.ProviderID, profile, identity.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create social identity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrConflict
	}
	return nil
}
