package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/nox-iam/internal/apperror"
	"github.com/dtroode/nox-iam/internal/device"
	"github.com/dtroode/nox-iam/internal/logger"
	"github.com/dtroode/nox-iam/internal/metrics"
	"github.com/dtroode/nox-iam/internal/model"
	"github.com/dtroode/nox-iam/internal/token"
)

// SessionConfig holds refresh session parameters.
type SessionConfig struct {
	RefreshTTL    time.Duration
	RotationGrace time.Duration
}

// Sessions issues, rotates and revokes refresh sessions. It composes the
// TokenManager for access tokens with the SessionStore for refresh state.
type Sessions struct {
	sessions    model.SessionStore
	users       model.UserStore
	credentials model.CredentialStore
	tokens      model.TokenManager
	tx          model.Transactor
	audit       model.AuditSink
	cfg         SessionConfig
	metrics     *metrics.Metrics
	logger      *logger.Logger
	now         func() time.Time
}

func NewSessions(
	sessions model.SessionStore,
	users model.UserStore,
	credentials model.CredentialStore,
	tokens model.TokenManager,
	tx model.Transactor,
	audit model.AuditSink,
	cfg SessionConfig,
	m *metrics.Metrics,
	logger *logger.Logger,
) *Sessions {
	return &Sessions{
		sessions:    sessions,
		users:       users,
		credentials: credentials,
		tokens:      tokens,
		tx:          tx,
		audit:       audit,
		cfg:         cfg,
		metrics:     m,
		logger:      logger,
		now:         time.Now,
	}
}

// Issue creates a new session for the user and returns a fresh token pair.
func (s *Sessions) Issue(ctx context.Context, user model.User, meta model.RequestMeta) (model.TokenPair, error) {
	pair, err := s.issue(ctx, user, meta, nil)
	if err != nil {
		return model.TokenPair{}, err
	}

	s.logger.Debug("Session service: session issued",
		"user_id", user.ID,
		"session_id", pair.SessionID)

	return pair, nil
}

func (s *Sessions) issue(ctx context.Context, user model.User, meta model.RequestMeta, rotatedFrom *uuid.UUID) (model.TokenPair, error) {
	now := s.now()

	access, accessExp, err := s.tokens.GenerateAccessToken(model.AccessClaims{
		UserID:      user.ID,
		Email:       user.Email,
		Authorities: user.Authorities(),
	})
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("issue access: %w", err)
	}

	refresh, err := token.NewRefreshToken()
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("issue refresh: %w", err)
	}

	session := model.Session{
		ID:           uuid.New(),
		UserID:       user.ID,
		TokenHash:    token.HashRefreshToken(refresh),
		IPAddress:    meta.IPAddress,
		UserAgent:    meta.UserAgent,
		DeviceClass:  device.Classify(meta.UserAgent),
		LastActiveAt: now,
		ExpiresAt:    now.Add(s.cfg.RefreshTTL),
		RotatedFrom:  rotatedFrom,
		CreatedAt:    now,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return model.TokenPair{}, fmt.Errorf("persist session: %w", err)
	}

	return model.TokenPair{
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refresh,
		RefreshExpiresAt: session.ExpiresAt,
		SessionID:        session.ID,
	}, nil
}

// Rotate exchanges a valid refresh token for a new pair. Presenting a token
// that was revoked longer than the grace window ago revokes every session of
// its owner and fails with ErrTokenCompromised.
func (s *Sessions) Rotate(ctx context.Context, refreshToken string, meta model.RequestMeta) (model.TokenPair, error) {
	now := s.now()
	hash := token.HashRefreshToken(refreshToken)

	var (
		pair     model.TokenPair
		ownerID  uuid.UUID
		reused   model.Session
		reuseHit bool
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		session, err := s.sessions.GetByTokenHashForUpdate(ctx, hash)
		if errors.Is(err, model.ErrNotFound) {
			return apperror.ErrInvalidRefreshToken
		}
		if err != nil {
			return fmt.Errorf("failed to get session: %w", err)
		}

		if !session.IsValid(now) {
			if session.RevokedAt != nil && now.Sub(*session.RevokedAt) < s.cfg.RotationGrace {
				return apperror.ErrInvalidRefreshToken.WithMessage("token recently rotated, use the new token or log in again")
			}
			reused, reuseHit = session, true
			return nil
		}

		user, err := s.users.GetByID(ctx, session.UserID)
		if errors.Is(err, model.ErrNotFound) {
			return apperror.ErrInvalidRefreshToken
		}
		if err != nil {
			return fmt.Errorf("failed to get user: %w", err)
		}
		if !user.IsActive() {
			return apperror.ErrAccountNotActive
		}

		cred, err := s.credentials.Get(ctx, user.ID)
		if err != nil {
			return fmt.Errorf("failed to get credential: %w", err)
		}
		if cred.IsLocked(now) {
			return apperror.ErrAccountLocked
		}

		if err := s.sessions.Revoke(ctx, session.ID, model.RevokeReasonRotated, now); err != nil {
			return fmt.Errorf("revoke old session: %w", err)
		}

		ownerID = user.ID
		if meta.IPAddress == "" {
			meta.IPAddress = session.IPAddress
		}
		if meta.UserAgent == "" {
			meta.UserAgent = session.UserAgent
		}

		pair, err = s.issue(ctx, user, meta, &session.ID)
		return err
	})
	if err != nil {
		s.metrics.Rotation(rotationOutcome(err))
		return model.TokenPair{}, err
	}

	if reuseHit {
		return model.TokenPair{}, s.handleReuse(ctx, reused, meta)
	}

	s.metrics.Rotation("ok")
	s.audit.Record(ctx, model.AuditEntry{
		ActorID:   &ownerID,
		Action:    model.AuditSessionRotated,
		Metadata:  map[string]any{"session_id": pair.SessionID.String()},
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	})

	return pair, nil
}

func (s *Sessions) handleReuse(ctx context.Context, session model.Session, meta model.RequestMeta) error {
	revoked, err := s.sessions.RevokeAllByUser(ctx, session.UserID, model.RevokeReasonHijack, s.now())
	if err != nil {
		return fmt.Errorf("failed to revoke sessions after token reuse: %w", err)
	}

	s.metrics.Rotation("compromised")
	s.logger.Warn("Session service: refresh token reuse detected",
		"user_id", session.UserID,
		"session_id", session.ID,
		"revoked_sessions", revoked,
		"ip", meta.IPAddress)

	userID := session.UserID
	s.audit.Record(ctx, model.AuditEntry{
		ActorID: &userID,
		Action:  model.AuditTokenReuse,
		Metadata: map[string]any{
			"session_id":       session.ID.String(),
			"revoked_sessions": revoked,
		},
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	})

	return apperror.ErrTokenCompromised
}

// Revoke logs out the session behind the refresh token. Unknown tokens are
// ignored; a session owned by someone else fails with ErrForeignSession.
func (s *Sessions) Revoke(ctx context.Context, refreshToken string, requesterEmail string) error {
	session, err := s.sessions.GetByTokenHash(ctx, token.HashRefreshToken(refreshToken))
	if errors.Is(err, model.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	owner, err := s.users.GetByID(ctx, session.UserID)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("failed to get session owner: %w", err)
	}
	if owner.ID == uuid.Nil || !sameEmail(owner.Email, requesterEmail) {
		s.logger.Warn("Session service: attempt to revoke a foreign session",
			"session_id", session.ID,
			"requester", requesterEmail)
		return apperror.ErrForeignSession
	}

	if session.RevokedAt != nil {
		return nil
	}

	if err := s.sessions.Revoke(ctx, session.ID, model.RevokeReasonLogout, s.now()); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	s.audit.Record(ctx, model.AuditEntry{
		ActorID:  &owner.ID,
		Action:   model.AuditSessionRevoked,
		Metadata: map[string]any{"session_id": session.ID.String(), "reason": model.RevokeReasonLogout},
	})

	return nil
}

// RevokeAll revokes every live session of the user.
func (s *Sessions) RevokeAll(ctx context.Context, userID uuid.UUID, reason string) (int64, error) {
	n, err := s.sessions.RevokeAllByUser(ctx, userID, reason, s.now())
	if err != nil {
		return 0, fmt.Errorf("failed to revoke sessions: %w", err)
	}

	s.logger.Info("Session service: sessions revoked",
		"user_id", userID,
		"reason", reason,
		"count", n)

	return n, nil
}

func (s *Sessions) ListActive(ctx context.Context, userID uuid.UUID) ([]model.Session, error) {
	sessions, err := s.sessions.ListActiveByUser(ctx, userID, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}

func rotationOutcome(err error) string {
	switch {
	case errors.Is(err, apperror.ErrInvalidRefreshToken):
		return "invalid"
	case errors.Is(err, apperror.ErrAccountNotActive), errors.Is(err, apperror.ErrAccountLocked):
		return "rejected"
	default:
		return "error"
	}
}
