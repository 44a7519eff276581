package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/nox-iam/internal/apperror"
	"github.com/dtroode/nox-iam/internal/logger"
	"github.com/dtroode/nox-iam/internal/metrics"
	"github.com/dtroode/nox-iam/internal/model"
	"github.com/dtroode/nox-iam/internal/ratelimit"
)

const minPasswordLength = 8

// LoginLimiter throttles login attempts per client address.
type LoginLimiter interface {
	AllowLogin(ctx context.Context, ip string) error
	ResetLogin(ctx context.Context, ip string) error
}

// Auth orchestrates registration, password login and account recovery.
type Auth struct {
	users       model.UserStore
	credentials model.CredentialStore
	hasher      model.PasswordHasher
	otp         *OTP
	lockout     *Lockout
	sessions    *Sessions
	mfa         *MFA
	notifier    model.Notifier
	audit       model.AuditSink
	tx          model.Transactor
	limiter     LoginLimiter
	metrics     *metrics.Metrics
	logger      *logger.Logger
	now         func() time.Time
}

func NewAuth(
	users model.UserStore,
	credentials model.CredentialStore,
	hasher model.PasswordHasher,
	otp *OTP,
	lockout *Lockout,
	sessions *Sessions,
	mfa *MFA,
	notifier model.Notifier,
	audit model.AuditSink,
	tx model.Transactor,
	m *metrics.Metrics,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		users:       users,
		credentials: credentials,
		hasher:      hasher,
		otp:         otp,
		lockout:     lockout,
		sessions:    sessions,
		mfa:         mfa,
		notifier:    notifier,
		audit:       audit,
		tx:          tx,
		metrics:     m,
		logger:      logger,
		now:         time.Now,
	}
}

// WithLimiter enables per-address login throttling.
func (a *Auth) WithLimiter(l LoginLimiter) *Auth {
	a.limiter = l
	return a
}

// Register creates a pending account, or refreshes the profile and password
// of an account that never completed verification, and sends a verification
// code.
func (a *Auth) Register(ctx context.Context, email, password, displayName string) (model.User, error) {
	email = normalizeEmail(email)
	a.logger.Debug("Auth service: starting user registration",
		"email", email)

	if err := validateEmail(email); err != nil {
		return model.User{}, err
	}
	if err := validatePassword(password); err != nil {
		return model.User{}, err
	}

	existing, err := a.users.GetByEmailIncludeDeleted(ctx, email)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if existing.ID != uuid.Nil {
		switch existing.Status {
		case model.UserStatusDeleted:
			return model.User{}, apperror.ErrEmailDeleted
		case model.UserStatusPendingVerification:
		default:
			a.logger.Info("Auth service: user already exists",
				"email", email)
			return model.User{}, apperror.ErrEmailTaken
		}
	}

	hash, err := a.hasher.Hash(password)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	var (
		user model.User
		code model.OTPCode
	)
	err = a.tx.WithinTx(ctx, func(ctx context.Context) error {
		if existing.ID != uuid.Nil {
			user = existing
			user.DisplayName = displayName
			if err := a.users.UpdateDisplayName(ctx, user.ID, displayName); err != nil {
				return fmt.Errorf("failed to update display name: %w", err)
			}
			if err := a.credentials.SetPassword(ctx, user.ID, hash, a.now()); err != nil {
				return fmt.Errorf("failed to update password: %w", err)
			}
		} else {
			now := a.now()
			created, err := a.users.Create(ctx, model.User{
				ID:          uuid.New(),
				Email:       email,
				DisplayName: displayName,
				Status:      model.UserStatusPendingVerification,
				CreatedAt:   now,
				UpdatedAt:   now,
			}, model.Credential{
				PasswordHash:       hash,
				PasswordSet:        true,
				LastPasswordChange: &now,
			})
			if errors.Is(err, model.ErrConflict) {
				return apperror.ErrEmailTaken
			}
			if err != nil {
				return fmt.Errorf("failed to create user: %w", err)
			}
			user = created
		}

		code, err = a.otp.Generate(ctx, user.ID, model.OTPTypeVerifyEmail)
		return err
	})
	if err != nil {
		a.logger.Error("Auth service: registration failed",
			"email", email,
			"error", err.Error())
		return model.User{}, err
	}

	a.notify(ctx, model.Notification{
		Kind:        model.NotificationVerifyEmail,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Code:        code.Code,
	})
	a.audit.Record(ctx, model.AuditEntry{
		ActorID: &user.ID,
		Action:  model.AuditRegistered,
	})

	a.logger.Info("Auth service: user registration completed successfully",
		"email", email,
		"user_id", user.ID)

	return user, nil
}

// VerifyEmail activates a pending account with the emailed code.
func (a *Auth) VerifyEmail(ctx context.Context, email, code string) error {
	email = normalizeEmail(email)

	user, err := a.users.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return apperror.ErrOTPNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := a.otp.Validate(ctx, user.ID, code, model.OTPTypeVerifyEmail); err != nil {
		return err
	}

	switch user.Status {
	case model.UserStatusActive:
		return apperror.ErrAlreadyVerified
	case model.UserStatusPendingVerification:
	default:
		return apperror.ErrAccountNotActive
	}

	if err := a.users.UpdateStatus(ctx, user.ID, model.UserStatusActive); err != nil {
		return fmt.Errorf("failed to activate user: %w", err)
	}

	a.audit.Record(ctx, model.AuditEntry{
		ActorID: &user.ID,
		Action:  model.AuditEmailVerified,
	})
	a.logger.Info("Auth service: email verified",
		"user_id", user.ID)

	return nil
}

// Login checks the password and either issues a session or, when MFA is
// enabled, a pending challenge token.
func (a *Auth) Login(ctx context.Context, email, password string, meta model.RequestMeta) (model.AuthResult, error) {
	email = normalizeEmail(email)
	a.logger.Debug("Auth service: starting user login",
		"email", email)

	if err := a.throttle(ctx, meta.IPAddress); err != nil {
		return model.AuthResult{}, err
	}

	user, err := a.users.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		a.metrics.Login("password", "invalid")
		return model.AuthResult{}, apperror.ErrInvalidCredentials
	}
	if err != nil {
		return model.AuthResult{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	cred, err := a.credentials.Get(ctx, user.ID)
	if err != nil {
		return model.AuthResult{}, fmt.Errorf("failed to get credential: %w", err)
	}

	if cred.IsLocked(a.now()) {
		a.metrics.Login("password", "locked")
		return model.AuthResult{}, apperror.ErrAccountLocked
	}
	if !user.IsActive() {
		a.metrics.Login("password", "inactive")
		return model.AuthResult{}, apperror.ErrAccountNotActive
	}

	ok, err := a.verifyPassword(cred, password)
	if err != nil {
		return model.AuthResult{}, err
	}
	if !ok {
		return model.AuthResult{}, a.loginFailed(ctx, user, meta)
	}

	if err := a.lockout.RecordSuccess(ctx, user.ID); err != nil {
		return model.AuthResult{}, err
	}
	if a.limiter != nil {
		if err := a.limiter.ResetLogin(ctx, meta.IPAddress); err != nil {
			a.logger.Warn("Auth service: failed to reset login throttle",
				"error", err.Error())
		}
	}

	return a.completeLogin(ctx, user, cred, "password", meta)
}

// Refresh rotates the refresh token.
func (a *Auth) Refresh(ctx context.Context, refreshToken string, meta model.RequestMeta) (model.TokenPair, error) {
	return a.sessions.Rotate(ctx, refreshToken, meta)
}

// Logout revokes the session behind the refresh token.
func (a *Auth) Logout(ctx context.Context, refreshToken, requesterEmail string) error {
	return a.sessions.Revoke(ctx, refreshToken, requesterEmail)
}

// ForgotPassword sends a reset code. Unknown and inactive accounts are
// ignored silently.
func (a *Auth) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	user, err := a.users.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		a.logger.Debug("Auth service: password reset requested for unknown email")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get user by email: %w", err)
	}
	if !user.IsActive() {
		a.logger.Debug("Auth service: password reset requested for inactive user",
			"user_id", user.ID)
		return nil
	}

	code, err := a.otp.Generate(ctx, user.ID, model.OTPTypeResetPassword)
	if err != nil {
		return err
	}

	a.notify(ctx, model.Notification{
		Kind:        model.NotificationResetPassword,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Code:        code.Code,
	})

	return nil
}

// ResetPassword replaces the password with a valid reset code, clears the
// lockout and revokes every session.
func (a *Auth) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	email = normalizeEmail(email)

	if err := validatePassword(newPassword); err != nil {
		return err
	}

	user, err := a.users.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return apperror.ErrOTPNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get user by email: %w", err)
	}
	if !user.IsActive() {
		return apperror.ErrAccountNotActive
	}

	if err := a.otp.Validate(ctx, user.ID, code, model.OTPTypeResetPassword); err != nil {
		return err
	}

	hash, err := a.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	err = a.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := a.credentials.SetPassword(ctx, user.ID, hash, a.now()); err != nil {
			return fmt.Errorf("failed to set password: %w", err)
		}
		if err := a.lockout.Lock(ctx, user.ID, 0); err != nil {
			return err
		}
		_, err := a.sessions.RevokeAll(ctx, user.ID, model.RevokeReasonPasswordReset)
		return err
	})
	if err != nil {
		return err
	}

	a.notify(ctx, model.Notification{
		Kind:        model.NotificationPasswordReset,
		Email:       user.Email,
		DisplayName: user.DisplayName,
	})
	a.audit.Record(ctx, model.AuditEntry{
		ActorID: &user.ID,
		Action:  model.AuditPasswordReset,
	})
	a.logger.Info("Auth service: password reset",
		"user_id", user.ID)

	return nil
}

// ChangePassword replaces the password of an authenticated user and revokes
// every session.
func (a *Auth) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	cred, err := a.credentials.Get(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return apperror.ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get credential: %w", err)
	}
	if !cred.PasswordSet {
		return apperror.ErrPasswordNotSet
	}

	ok, err := a.verifyPassword(cred, oldPassword)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.ErrInvalidPassword
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	hash, err := a.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	err = a.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := a.credentials.SetPassword(ctx, userID, hash, a.now()); err != nil {
			return fmt.Errorf("failed to set password: %w", err)
		}
		_, err := a.sessions.RevokeAll(ctx, userID, model.RevokeReasonPasswordChanged)
		return err
	})
	if err != nil {
		return err
	}

	a.audit.Record(ctx, model.AuditEntry{
		ActorID: &userID,
		Action:  model.AuditPasswordChanged,
	})

	return nil
}

func (a *Auth) completeLogin(ctx context.Context, user model.User, cred model.Credential, method string, meta model.RequestMeta) (model.AuthResult, error) {
	if cred.MFA.Enabled() {
		challenge, err := a.mfa.IssueChallenge(user)
		if err != nil {
			return model.AuthResult{}, err
		}
		a.metrics.Login(method, "mfa_required")
		a.logger.Info("Auth service: mfa challenge issued",
			"user_id", user.ID)
		return model.AuthResult{User: user, MFARequired: true, MFAToken: challenge}, nil
	}

	pair, err := a.sessions.Issue(ctx, user, meta)
	if err != nil {
		return model.AuthResult{}, fmt.Errorf("failed to issue session: %w", err)
	}

	a.metrics.Login(method, "ok")
	a.audit.Record(ctx, model.AuditEntry{
		ActorID:   &user.ID,
		Action:    model.AuditLoginSucceeded,
		Metadata:  map[string]any{"method": method},
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	})
	a.logger.Info("Auth service: login completed successfully",
		"user_id", user.ID,
		"session_id", pair.SessionID)

	return model.AuthResult{User: user, Tokens: pair}, nil
}

func (a *Auth) loginFailed(ctx context.Context, user model.User, meta model.RequestMeta) error {
	locked, err := a.lockout.RecordFailure(ctx, user.ID)
	if err != nil {
		return err
	}

	a.metrics.Login("password", "invalid")
	a.audit.Record(ctx, model.AuditEntry{
		ActorID:   &user.ID,
		Action:    model.AuditLoginFailed,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	})
	if locked {
		a.audit.Record(ctx, model.AuditEntry{
			ActorID:  &user.ID,
			Action:   model.AuditAccountLocked,
			Metadata: map[string]any{"source": "password"},
		})
	}

	return apperror.ErrInvalidCredentials
}

func (a *Auth) throttle(ctx context.Context, ip string) error {
	if a.limiter == nil {
		return nil
	}

	err := a.limiter.AllowLogin(ctx, ip)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ratelimit.ErrRateLimited):
		a.metrics.Login("password", "throttled")
		return apperror.ErrTooManyRequests
	default:
		a.logger.Warn("Auth service: login throttle unavailable",
			"error", err.Error())
		return nil
	}
}

func (a *Auth) verifyPassword(cred model.Credential, password string) (bool, error) {
	if !cred.PasswordSet || cred.PasswordHash == "" {
		return false, nil
	}
	ok, err := a.hasher.Verify(password, cred.PasswordHash)
	if err != nil {
		return false, fmt.Errorf("failed to verify password: %w", err)
	}
	return ok, nil
}

func (a *Auth) notify(ctx context.Context, n model.Notification) {
	if err := a.notifier.Send(ctx, n); err != nil {
		a.logger.Error("Auth service: failed to send notification",
			"kind", n.Kind,
			"error", err.Error())
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func sameEmail(a, b string) bool {
	return normalizeEmail(a) == normalizeEmail(b)
}

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return apperror.ErrInvalidEmail
	}
	return nil
}

func validatePassword(password string) error {
	if len([]rune(password)) < minPasswordLength {
		return apperror.ErrWeakPassword
	}
	return nil
}
