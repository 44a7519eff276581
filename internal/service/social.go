package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/nox-iam/internal/apperror"
	"github.com/dtroode/nox-iam/internal/logger"
	"github.com/dtroode/nox-iam/internal/model"
)

// Social signs users in with third-party identity provider tokens.
type Social struct {
	verifier    model.SocialVerifier
	identities  model.SocialIdentityStore
	users       model.UserStore
	credentials model.CredentialStore
	auth        *Auth
	tx          model.Transactor
	audit       model.AuditSink
	logger      *logger.Logger
}

func NewSocial(
	verifier model.SocialVerifier,
	identities model.SocialIdentityStore,
	users model.UserStore,
	credentials model.CredentialStore,
	auth *Auth,
	tx model.Transactor,
	audit model.AuditSink,
	logger *logger.Logger,
) *Social {
	return &Social{
		verifier:    verifier,
		identities:  identities,
		users:       users,
		credentials: credentials,
		auth:        auth,
		tx:          tx,
		audit:       audit,
		logger:      logger,
	}
}

// Login resolves the provider identity to a user. Unknown emails get a new
// active account without a password. An existing password account that was
// never linked fails with ErrLinkRequired.
func (s *Social) Login(ctx context.Context, provider, providerToken string, meta model.RequestMeta) (model.AuthResult, error) {
	claims, err := s.verify(ctx, provider, providerToken)
	if err != nil {
		return model.AuthResult{}, err
	}

	user, err := s.resolve(ctx, claims)
	if err != nil {
		return model.AuthResult{}, err
	}

	return s.finish(ctx, user, meta)
}

// Link attaches the provider identity to the existing account with the same
// email after re-verifying its password, then signs the user in.
func (s *Social) Link(ctx context.Context, provider, providerToken, password string, meta model.RequestMeta) (model.AuthResult, error) {
	claims, err := s.verify(ctx, provider, providerToken)
	if err != nil {
		return model.AuthResult{}, err
	}

	user, err := s.users.GetByEmail(ctx, claims.Email)
	if errors.Is(err, model.ErrNotFound) {
		return model.AuthResult{}, apperror.ErrUserNotFound
	}
	if err != nil {
		return model.AuthResult{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	cred, err := s.credentials.Get(ctx, user.ID)
	if err != nil {
		return model.AuthResult{}, fmt.Errorf("failed to get credential: %w", err)
	}
	if cred.IsLocked(s.auth.now()) {
		return model.AuthResult{}, apperror.ErrAccountLocked
	}

	ok, err := s.auth.verifyPassword(cred, password)
	if err != nil {
		return model.AuthResult{}, err
	}
	if !ok {
		return model.AuthResult{}, s.auth.loginFailed(ctx, user, meta)
	}

	if err := s.link(ctx, user.ID, claims); err != nil {
		return model.AuthResult{}, err
	}

	return s.finish(ctx, user, meta)
}

func (s *Social) verify(ctx context.Context, provider, providerToken string) (model.SocialClaims, error) {
	claims, err := s.verifier.Verify(ctx, provider, providerToken)
	if err != nil {
		s.logger.Info("Social service: provider token rejected",
			"provider", provider,
			"error", err.Error())
		return model.SocialClaims{}, apperror.ErrInvalidSocialToken
	}
	claims.Email = normalizeEmail(claims.Email)
	if claims.Email == "" || claims.ProviderID == "" {
		return model.SocialClaims{}, apperror.ErrInvalidSocialToken
	}
	return claims, nil
}

func (s *Social) resolve(ctx context.Context, claims model.SocialClaims) (model.User, error) {
	identity, err := s.identities.GetByProvider(ctx, claims.Provider, claims.ProviderID)
	switch {
	case err == nil:
		user, err := s.users.GetByID(ctx, identity.UserID)
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, apperror.ErrAccountNotActive
		}
		if err != nil {
			return model.User{}, fmt.Errorf("failed to get linked user: %w", err)
		}
		return user, nil
	case !errors.Is(err, model.ErrNotFound):
		return model.User{}, fmt.Errorf("failed to get social identity: %w", err)
	}

	existing, err := s.users.GetByEmailIncludeDeleted(ctx, claims.Email)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	if existing.ID != uuid.Nil {
		if existing.Status == model.UserStatusDeleted {
			return model.User{}, apperror.ErrEmailDeleted
		}
		s.logger.Info("Social service: account exists, link required",
			"provider", claims.Provider,
			"user_id", existing.ID)
		return model.User{}, apperror.ErrLinkRequired
	}

	now := s.auth.now()
	var user model.User
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		created, err := s.users.Create(ctx, model.User{
			ID:          uuid.New(),
			Email:       claims.Email,
			DisplayName: claims.Name,
			Status:      model.UserStatusActive,
			CreatedAt:   now,
			UpdatedAt:   now,
		}, model.Credential{})
		if errors.Is(err, model.ErrConflict) {
			return apperror.ErrLinkRequired
		}
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		user = created
		return s.link(ctx, user.ID, claims)
	})
	if err != nil {
		return model.User{}, err
	}

	s.audit.Record(ctx, model.AuditEntry{
		ActorID:  &user.ID,
		Action:   model.AuditRegistered,
		Metadata: map[string]any{"provider": claims.Provider},
	})
	s.logger.Info("Social service: account created from provider identity",
		"provider", claims.Provider,
		"user_id", user.ID)

	return user, nil
}

// link stores the provider identity. An identity linked concurrently to the
// same user counts as success.
func (s *Social) link(ctx context.Context, userID uuid.UUID, claims model.SocialClaims) error {
	err := s.identities.Create(ctx, model.SocialIdentity{
		ID:         uuid.New(),
		UserID:     userID,
		Provider:   claims.Provider,
		ProviderID: claims.ProviderID,
		Profile:    claims.Profile,
		CreatedAt:  s.auth.now(),
	})
	if errors.Is(err, model.ErrConflict) {
		identity, getErr := s.identities.GetByProvider(ctx, claims.Provider, claims.ProviderID)
		if getErr != nil {
			return fmt.Errorf("failed to get social identity: %w", getErr)
		}
		if identity.UserID != userID {
			return apperror.ErrLinkRequired.WithMessage("provider identity is linked to another account")
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to link social identity: %w", err)
	}

	s.audit.Record(ctx, model.AuditEntry{
		ActorID:  &userID,
		Action:   model.AuditSocialLinked,
		Metadata: map[string]any{"provider": claims.Provider},
	})
	return nil
}

func (s *Social) finish(ctx context.Context, user model.User, meta model.RequestMeta) (model.AuthResult, error) {
	if !user.IsActive() {
		return model.AuthResult{}, apperror.ErrAccountNotActive
	}

	cred, err := s.credentials.Get(ctx, user.ID)
	if err != nil {
		return model.AuthResult{}, fmt.Errorf("failed to get credential: %w", err)
	}
	if cred.IsLocked(s.auth.now()) {
		return model.AuthResult{}, apperror.ErrAccountLocked
	}

	return s.auth.completeLogin(ctx, user, cred, "social", meta)
}
