package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SocialIdentityStore defines persistence operations for linked provider identities.
type SocialIdentityStore interface {
	GetByProvider(ctx context.Context, provider, providerID string) (SocialIdentity, error)
	// Create returns ErrConflict when the provider identity is already linked.
	Create(ctx context.Context, identity SocialIdentity) error
}

// SocialIdentity links a user to an external identity provider account.
type SocialIdentity struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Provider   string
	ProviderID string
	Profile    map[string]any
	CreatedAt  time.Time
}

// SocialClaims is the normalized result of verifying a provider token.
type SocialClaims struct {
	Provider   string
	ProviderID string
	Email      string
	Name       string
	Profile    map[string]any
}

// SocialVerifier verifies a third-party token.
type SocialVerifier interface {
	Verify(ctx context.Context, provider, token string) (SocialClaims, error)
}
