package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/nox-iam/internal/apperror"
	"github.com/dtroode/nox-iam/internal/logger"
	"github.com/dtroode/nox-iam/internal/metrics"
	"github.com/dtroode/nox-iam/internal/model"
)

const backupCodeBytes = 4

// MFAConfig holds second factor parameters.
type MFAConfig struct {
	MaxAttempts     int
	BackupCodeCount int
}

// MFA drives enrollment (Disabled -> PendingSetup -> Enabled), the login
// challenge and backup code fallback.
type MFA struct {
	users       model.UserStore
	credentials model.CredentialStore
	backupCodes model.BackupCodeStore
	totp        model.TOTP
	hasher      model.PasswordHasher
	tokens      model.TokenManager
	tx          model.Transactor
	lockout     *Lockout
	sessions    *Sessions
	audit       model.AuditSink
	cfg         MFAConfig
	metrics     *metrics.Metrics
	logger      *logger.Logger
	now         func() time.Time
}

func NewMFA(
	users model.UserStore,
	credentials model.CredentialStore,
	backupCodes model.BackupCodeStore,
	totp model.TOTP,
	hasher model.PasswordHasher,
	tokens model.TokenManager,
	tx model.Transactor,
	lockout *Lockout,
	sessions *Sessions,
	audit model.AuditSink,
	cfg MFAConfig,
	m *metrics.Metrics,
	logger *logger.Logger,
) *MFA {
	return &MFA{
		users:       users,
		credentials: credentials,
		backupCodes: backupCodes,
		totp:        totp,
		hasher:      hasher,
		tokens:      tokens,
		tx:          tx,
		lockout:     lockout,
		sessions:    sessions,
		audit:       audit,
		cfg:         cfg,
		metrics:     m,
		logger:      logger,
		now:         time.Now,
	}
}

// Setup stores a fresh pending secret. Calling it again while enrollment is
// pending replaces the secret.
func (s *MFA) Setup(ctx context.Context, userID uuid.UUID) (model.MFASetup, error) {
	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return model.MFASetup{}, apperror.ErrUserNotFound
	}
	if err != nil {
		return model.MFASetup{}, fmt.Errorf("failed to get user: %w", err)
	}

	cred, err := s.credentials.Get(ctx, userID)
	if err != nil {
		return model.MFASetup{}, fmt.Errorf("failed to get credential: %w", err)
	}
	if cred.MFA.Enabled() {
		return model.MFASetup{}, apperror.ErrMFAAlreadyEnabled
	}

	secret, uri, err := s.totp.GenerateSecret(user.Email)
	if err != nil {
		return model.MFASetup{}, fmt.Errorf("failed to generate totp secret: %w", err)
	}

	if err := s.credentials.SetMFA(ctx, userID, model.MFAPending(secret)); err != nil {
		return model.MFASetup{}, fmt.Errorf("failed to store pending secret: %w", err)
	}

	s.logger.Info("MFA service: setup started",
		"user_id", userID)

	return model.MFASetup{Secret: secret, URI: uri}, nil
}

// Enable promotes the pending secret after verifying code and returns a new
// batch of backup codes in plaintext. The codes are never retrievable again.
func (s *MFA) Enable(ctx context.Context, userID uuid.UUID, code string) ([]string, error) {
	var plain []string
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		cred, err := s.credentials.GetForUpdate(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to get credential: %w", err)
		}

		switch cred.MFA.Status() {
		case model.MFAEnabled:
			return apperror.ErrMFAAlreadyEnabled
		case model.MFADisabled:
			return apperror.ErrMFASetupRequired
		}

		secret := cred.MFA.Secret()
		if !s.totp.Verify(secret, code) {
			return apperror.ErrInvalidMFACode
		}

		codes, hashed, err := s.newBackupCodes(userID)
		if err != nil {
			return err
		}
		if err := s.credentials.SetMFA(ctx, userID, model.MFAOn(secret)); err != nil {
			return fmt.Errorf("failed to enable mfa: %w", err)
		}
		if err := s.backupCodes.Replace(ctx, userID, hashed); err != nil {
			return fmt.Errorf("failed to store backup codes: %w", err)
		}
		plain = codes
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("MFA service: mfa enabled",
		"user_id", userID)
	s.audit.Record(ctx, model.AuditEntry{
		ActorID: &userID,
		Action:  model.AuditMFAEnabled,
	})

	return plain, nil
}

// Disable turns MFA off after re-verifying the current password.
func (s *MFA) Disable(ctx context.Context, userID uuid.UUID, password string) error {
	cred, err := s.credentials.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get credential: %w", err)
	}
	if !cred.MFA.Enabled() {
		return apperror.ErrMFANotEnabled
	}
	if cred.IsLocked(s.now()) {
		return apperror.ErrAccountLocked
	}

	ok, err := s.checkPassword(cred, password)
	if err != nil {
		return err
	}
	if !ok {
		if _, err := s.lockout.RecordFailure(ctx, userID); err != nil {
			return err
		}
		return apperror.ErrInvalidCredentials
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.credentials.SetMFA(ctx, userID, model.MFAOff()); err != nil {
			return fmt.Errorf("failed to disable mfa: %w", err)
		}
		if err := s.backupCodes.DeleteAll(ctx, userID); err != nil {
			return fmt.Errorf("failed to delete backup codes: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("MFA service: mfa disabled",
		"user_id", userID)
	s.audit.Record(ctx, model.AuditEntry{
		ActorID: &userID,
		Action:  model.AuditMFADisabled,
	})

	return nil
}

// IssueChallenge returns a short-lived token proving the password step passed.
func (s *MFA) IssueChallenge(user model.User) (string, error) {
	t, err := s.tokens.GenerateMFAToken(user.Email)
	if err != nil {
		return "", fmt.Errorf("failed to issue mfa token: %w", err)
	}
	return t, nil
}

// VerifyChallenge completes a pending login with a TOTP code.
func (s *MFA) VerifyChallenge(ctx context.Context, pendingToken, code string, meta model.RequestMeta) (model.AuthResult, error) {
	user, cred, err := s.resolveChallenge(ctx, pendingToken)
	if err != nil {
		return model.AuthResult{}, err
	}

	if !s.totp.Verify(cred.MFA.Secret(), code) {
		s.metrics.MFA("totp", "invalid")
		return model.AuthResult{}, s.registerFailure(ctx, user, apperror.ErrInvalidMFACode)
	}

	s.metrics.MFA("totp", "ok")
	return s.complete(ctx, user, "totp", meta)
}

// VerifyBackupCode completes a pending login with a single-use backup code.
func (s *MFA) VerifyBackupCode(ctx context.Context, pendingToken, rawCode string, meta model.RequestMeta) (model.AuthResult, error) {
	user, _, err := s.resolveChallenge(ctx, pendingToken)
	if err != nil {
		return model.AuthResult{}, err
	}

	codes, err := s.backupCodes.ListUnused(ctx, user.ID)
	if err != nil {
		return model.AuthResult{}, fmt.Errorf("failed to list backup codes: %w", err)
	}

	presented := hashBackupCode(normalizeBackupCode(rawCode))
	var match *model.BackupCode
	for i := range codes {
		if subtle.ConstantTimeCompare([]byte(codes[i].CodeHash), []byte(presented)) == 1 {
			match = &codes[i]
		}
	}
	if match == nil {
		s.metrics.MFA("backup_code", "invalid")
		return model.AuthResult{}, s.registerFailure(ctx, user, apperror.ErrInvalidBackupCode)
	}

	consumed, err := s.backupCodes.MarkUsed(ctx, match.ID, s.now())
	if err != nil {
		return model.AuthResult{}, fmt.Errorf("failed to consume backup code: %w", err)
	}
	if !consumed {
		s.metrics.MFA("backup_code", "invalid")
		return model.AuthResult{}, apperror.ErrInvalidBackupCode
	}

	s.metrics.MFA("backup_code", "ok")
	s.audit.Record(ctx, model.AuditEntry{
		ActorID:   &user.ID,
		Action:    model.AuditMFABackupUsed,
		Metadata:  map[string]any{"remaining": len(codes) - 1},
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	})

	return s.complete(ctx, user, "backup_code", meta)
}

// RegenerateBackupCodes replaces the batch after re-verifying a TOTP code.
func (s *MFA) RegenerateBackupCodes(ctx context.Context, userID uuid.UUID, code string) ([]string, error) {
	cred, err := s.credentials.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get credential: %w", err)
	}
	if !cred.MFA.Enabled() {
		return nil, apperror.ErrMFANotEnabled
	}
	if !s.totp.Verify(cred.MFA.Secret(), code) {
		return nil, apperror.ErrInvalidMFACode
	}

	plain, hashed, err := s.newBackupCodes(userID)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		return s.backupCodes.Replace(ctx, userID, hashed)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store backup codes: %w", err)
	}

	s.audit.Record(ctx, model.AuditEntry{
		ActorID: &userID,
		Action:  model.AuditMFABackupRotated,
	})

	return plain, nil
}

func (s *MFA) Status(ctx context.Context, userID uuid.UUID) (model.MFASummary, error) {
	cred, err := s.credentials.Get(ctx, userID)
	if err != nil {
		return model.MFASummary{}, fmt.Errorf("failed to get credential: %w", err)
	}

	res := model.MFASummary{Status: cred.MFA.Status()}
	if cred.MFA.Enabled() {
		codes, err := s.backupCodes.ListUnused(ctx, userID)
		if err != nil {
			return model.MFASummary{}, fmt.Errorf("failed to list backup codes: %w", err)
		}
		res.RemainingBackupCodes = len(codes)
	}
	return res, nil
}

func (s *MFA) resolveChallenge(ctx context.Context, pendingToken string) (model.User, model.Credential, error) {
	email, err := s.tokens.ParseMFAToken(pendingToken)
	if err != nil {
		return model.User{}, model.Credential{}, apperror.ErrInvalidMFAToken
	}

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, model.Credential{}, apperror.ErrInvalidMFAToken
	}
	if err != nil {
		return model.User{}, model.Credential{}, fmt.Errorf("failed to get user: %w", err)
	}
	if !user.IsActive() {
		return model.User{}, model.Credential{}, apperror.ErrAccountNotActive
	}

	cred, err := s.credentials.Get(ctx, user.ID)
	if err != nil {
		return model.User{}, model.Credential{}, fmt.Errorf("failed to get credential: %w", err)
	}
	if cred.IsLocked(s.now()) {
		return model.User{}, model.Credential{}, apperror.ErrAccountLocked
	}
	if !cred.MFA.Enabled() {
		return model.User{}, model.Credential{}, apperror.ErrMFANotEnabled
	}

	return user, cred, nil
}

func (s *MFA) registerFailure(ctx context.Context, user model.User, cause error) error {
	locked, err := s.lockout.RecordMFAFailure(ctx, user.ID, s.cfg.MaxAttempts)
	if err != nil {
		return err
	}
	if locked {
		s.audit.Record(ctx, model.AuditEntry{
			ActorID:  &user.ID,
			Action:   model.AuditAccountLocked,
			Metadata: map[string]any{"source": "mfa"},
		})
		return apperror.ErrAccountLocked
	}
	return cause
}

func (s *MFA) complete(ctx context.Context, user model.User, method string, meta model.RequestMeta) (model.AuthResult, error) {
	if err := s.credentials.ResetFailures(ctx, user.ID); err != nil {
		return model.AuthResult{}, fmt.Errorf("failed to reset failures: %w", err)
	}

	pair, err := s.sessions.Issue(ctx, user, meta)
	if err != nil {
		return model.AuthResult{}, err
	}

	s.metrics.Login(method, "ok")
	s.audit.Record(ctx, model.AuditEntry{
		ActorID:   &user.ID,
		Action:    model.AuditLoginSucceeded,
		Metadata:  map[string]any{"method": method},
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	})

	return model.AuthResult{User: user, Tokens: pair}, nil
}

func (s *MFA) checkPassword(cred model.Credential, password string) (bool, error) {
	if !cred.PasswordSet || cred.PasswordHash == "" {
		return false, nil
	}
	ok, err := s.hasher.Verify(password, cred.PasswordHash)
	if err != nil {
		return false, fmt.Errorf("failed to verify password: %w", err)
	}
	return ok, nil
}

func (s *MFA) newBackupCodes(userID uuid.UUID) ([]string, []model.BackupCode, error) {
	now := s.now()
	seen := make(map[string]struct{}, s.cfg.BackupCodeCount)
	plain := make([]string, 0, s.cfg.BackupCodeCount)
	hashed := make([]model.BackupCode, 0, s.cfg.BackupCodeCount)

	for len(plain) < s.cfg.BackupCodeCount {
		buf := make([]byte, backupCodeBytes)
		if _, err := rand.Read(buf); err != nil {
			return nil, nil, fmt.Errorf("failed to generate backup code: %w", err)
		}
		code := strings.ToUpper(hex.EncodeToString(buf))
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}

		plain = append(plain, code)
		hashed = append(hashed, model.BackupCode{
			ID:        uuid.New(),
			UserID:    userID,
			CodeHash:  hashBackupCode(code),
			CreatedAt: now,
		})
	}
	return plain, hashed, nil
}

func normalizeBackupCode(raw string) string {
	r := strings.NewReplacer("-", "", " ", "")
	return strings.ToUpper(r.Replace(strings.TrimSpace(raw)))
}

func hashBackupCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}
