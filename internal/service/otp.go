package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/nox-iam/internal/apperror"
	"github.com/dtroode/nox-iam/internal/logger"
	"github.com/dtroode/nox-iam/internal/metrics"
	"github.com/dtroode/nox-iam/internal/model"
)

// OTPConfig holds one-time code parameters.
type OTPConfig struct {
	Length      int
	TTL         time.Duration
	Cooldown    time.Duration
	MaxAttempts int
}

// OTP generates and validates short numeric codes used for email
// verification and password reset.
type OTP struct {
	store   model.OTPStore
	tx      model.Transactor
	cfg     OTPConfig
	metrics *metrics.Metrics
	logger  *logger.Logger
	now     func() time.Time
}

func NewOTP(store model.OTPStore, tx model.Transactor, cfg OTPConfig, m *metrics.Metrics, logger *logger.Logger) *OTP {
	return &OTP{
		store:   store,
		tx:      tx,
		cfg:     cfg,
		metrics: m,
		logger:  logger,
		now:     time.Now,
	}
}

// Generate invalidates every unused code of the type and stores a new one.
// It fails with ErrOTPRateLimited while the newest unused code is younger
// than the cooldown.
func (s *OTP) Generate(ctx context.Context, userID uuid.UUID, otpType model.OTPType) (model.OTPCode, error) {
	now := s.now()

	var code model.OTPCode
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		latest, err := s.store.LatestUnused(ctx, userID, otpType)
		switch {
		case err == nil:
			if now.Sub(latest.CreatedAt) < s.cfg.Cooldown {
				return apperror.ErrOTPRateLimited
			}
		case errors.Is(err, model.ErrNotFound):
		default:
			return fmt.Errorf("failed to get latest otp code: %w", err)
		}

		if err := s.store.InvalidateUnused(ctx, userID, otpType, now); err != nil {
			return fmt.Errorf("failed to invalidate otp codes: %w", err)
		}

		digits, err := randomDigits(s.cfg.Length)
		if err != nil {
			return fmt.Errorf("failed to generate otp code: %w", err)
		}

		code = model.OTPCode{
			ID:        uuid.New(),
			UserID:    userID,
			Code:      digits,
			Type:      otpType,
			ExpiresAt: now.Add(s.cfg.TTL),
			CreatedAt: now,
		}
		if err := s.store.Create(ctx, code); err != nil {
			return fmt.Errorf("failed to create otp code: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, apperror.ErrOTPRateLimited) {
			s.logger.Info("OTP service: generation throttled",
				"user_id", userID,
				"type", otpType)
		}
		return model.OTPCode{}, err
	}

	s.logger.Debug("OTP service: code generated",
		"user_id", userID,
		"type", otpType,
		"expires_at", code.ExpiresAt)

	return code, nil
}

// Validate consumes the newest unused code of the type if it matches.
func (s *OTP) Validate(ctx context.Context, userID uuid.UUID, code string, otpType model.OTPType) error {
	now := s.now()

	current, err := s.store.LatestUnused(ctx, userID, otpType)
	if errors.Is(err, model.ErrNotFound) {
		s.metrics.OTP(string(otpType), "not_found")
		return apperror.ErrOTPNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get latest otp code: %w", err)
	}

	if !now.Before(current.ExpiresAt) {
		s.metrics.OTP(string(otpType), "expired")
		return apperror.ErrOTPExpired
	}

	if current.FailedAttempts >= s.cfg.MaxAttempts {
		if _, err := s.store.MarkUsed(ctx, current.ID, now); err != nil {
			return fmt.Errorf("failed to mark otp code used: %w", err)
		}
		s.metrics.OTP(string(otpType), "locked")
		return apperror.ErrOTPLocked
	}

	if subtle.ConstantTimeCompare([]byte(current.Code), []byte(code)) != 1 {
		attempts, err := s.store.RegisterFailure(ctx, current.ID, s.cfg.MaxAttempts, now)
		if err != nil {
			return fmt.Errorf("failed to register otp failure: %w", err)
		}
		s.metrics.OTP(string(otpType), "mismatch")
		s.logger.Info("OTP service: code mismatch",
			"user_id", userID,
			"type", otpType,
			"attempts", attempts)
		return apperror.ErrInvalidOTP
	}

	consumed, err := s.store.MarkUsed(ctx, current.ID, now)
	if err != nil {
		return fmt.Errorf("failed to mark otp code used: %w", err)
	}
	if !consumed {
		s.metrics.OTP(string(otpType), "replayed")
		s.logger.Warn("OTP service: code consumed concurrently",
			"user_id", userID,
			"type", otpType)
		return apperror.ErrOTPNotFound
	}
	s.metrics.OTP(string(otpType), "ok")

	return nil
}

func randomDigits(n int) (string, error) {
	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
	v, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", n, v.Int64()), nil
}
