package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/nox-iam/internal/logger"
	"github.com/dtroode/nox-iam/internal/metrics"
	"github.com/dtroode/nox-iam/internal/model"
)

// LockoutConfig holds the brute-force lockout policy.
type LockoutConfig struct {
	MaxAttempts int
	Duration    time.Duration
}

// Lockout tracks failed password attempts and locks accounts that exceed the
// configured threshold.
type Lockout struct {
	credentials model.CredentialStore
	cfg         LockoutConfig
	metrics     *metrics.Metrics
	logger      *logger.Logger
	now         func() time.Time
}

func NewLockout(credentials model.CredentialStore, cfg LockoutConfig, m *metrics.Metrics, logger *logger.Logger) *Lockout {
	return &Lockout{
		credentials: credentials,
		cfg:         cfg,
		metrics:     m,
		logger:      logger,
		now:         time.Now,
	}
}

// RecordFailure counts a failed password attempt and reports whether the
// account is locked afterwards. The increment commits on its own.
func (l *Lockout) RecordFailure(ctx context.Context, userID uuid.UUID) (bool, error) {
	now := l.now()

	cred, err := l.credentials.RegisterLoginFailure(ctx, userID, l.cfg.MaxAttempts, now.Add(l.cfg.Duration))
	if err != nil {
		return false, fmt.Errorf("failed to register login failure: %w", err)
	}

	locked := cred.IsLocked(now)
	if locked {
		l.metrics.Lockout("password")
		l.logger.Warn("Lockout: account locked after failed attempts",
			"user_id", userID,
			"attempts", cred.FailedLoginAttempts,
			"locked_until", cred.LockedUntil)
	}
	return locked, nil
}

// RecordMFAFailure counts a failed second factor attempt with the same
// threshold and duration as password failures.
func (l *Lockout) RecordMFAFailure(ctx context.Context, userID uuid.UUID, maxAttempts int) (bool, error) {
	now := l.now()

	cred, err := l.credentials.RegisterMFAFailure(ctx, userID, maxAttempts, now.Add(l.cfg.Duration))
	if err != nil {
		return false, fmt.Errorf("failed to register mfa failure: %w", err)
	}

	locked := cred.IsLocked(now)
	if locked {
		l.metrics.Lockout("mfa")
		l.logger.Warn("Lockout: account locked after failed mfa attempts",
			"user_id", userID,
			"attempts", cred.FailedMFAAttempts,
			"locked_until", cred.LockedUntil)
	}
	return locked, nil
}

// RecordSuccess resets the login counter and clears the lock.
func (l *Lockout) RecordSuccess(ctx context.Context, userID uuid.UUID) error {
	if err := l.credentials.ResetLoginFailures(ctx, userID); err != nil {
		return fmt.Errorf("failed to reset login failures: %w", err)
	}
	return nil
}

// Lock locks the account for d. A non-positive d unlocks it and resets the counter.
func (l *Lockout) Lock(ctx context.Context, userID uuid.UUID, d time.Duration) error {
	var until *time.Time
	if d > 0 {
		t := l.now().Add(d)
		until = &t
	}

	if err := l.credentials.Lock(ctx, userID, until); err != nil {
		return fmt.Errorf("failed to lock account: %w", err)
	}

	l.logger.Info("Lockout: lock updated",
		"user_id", userID,
		"locked_until", until)
	return nil
}

func (l *Lockout) IsLocked(ctx context.Context, userID uuid.UUID) (bool, error) {
	cred, err := l.credentials.Get(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to get credential: %w", err)
	}
	return cred.IsLocked(l.now()), nil
}
