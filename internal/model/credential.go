package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CredentialStore defines persistence operations for credentials.
//
// RegisterLoginFailure and RegisterMFAFailure always run on their own
// connection so the counter survives a rollback of the caller's transaction.
type CredentialStore interface {
	Get(ctx context.Context, userID uuid.UUID) (Credential, error)
	// GetForUpdate locks the credential row until the surrounding
	// transaction ends.
	GetForUpdate(ctx context.Context, userID uuid.UUID) (Credential, error)
	// RegisterLoginFailure increments the login failure counter and sets
	// LockedUntil to lockUntil when the counter reaches maxAttempts.
	RegisterLoginFailure(ctx context.Context, userID uuid.UUID, maxAttempts int, lockUntil time.Time) (Credential, error)
	// RegisterMFAFailure does the same for the MFA failure counter.
	RegisterMFAFailure(ctx context.Context, userID uuid.UUID, maxAttempts int, lockUntil time.Time) (Credential, error)
	// ResetLoginFailures clears the login counter and LockedUntil.
	ResetLoginFailures(ctx context.Context, userID uuid.UUID) error
	// ResetFailures clears both counters and LockedUntil.
	ResetFailures(ctx context.Context, userID uuid.UUID) error
	// Lock sets LockedUntil, or clears it together with the login counter when until is nil.
	Lock(ctx context.Context, userID uuid.UUID, until *time.Time) error
	SetPassword(ctx context.Context, userID uuid.UUID, passwordHash string, changedAt time.Time) error
	SetMFA(ctx context.Context, userID uuid.UUID, state MFAState) error
}

// Credential holds the authentication material of a user.
type Credential struct {
	UserID              uuid.UUID
	PasswordHash        string
	PasswordSet         bool
	LastPasswordChange  *time.Time
	FailedLoginAttempts int
	LockedUntil         *time.Time
	MFA                 MFAState
	FailedMFAAttempts   int
	UpdatedAt           time.Time
}

// IsLocked reports whether the credential is locked at the given instant.
func (c Credential) IsLocked(now time.Time) bool {
	return c.LockedUntil != nil && now.Before(*c.LockedUntil)
}

// MFAStatus is the enrollment state of multi-factor authentication.
type MFAStatus int

const (
	MFADisabled MFAStatus = iota
	MFAPendingSetup
	MFAEnabled
)

func (s MFAStatus) String() string {
	switch s {
	case MFAPendingSetup:
		return "pending_setup"
	case MFAEnabled:
		return "enabled"
	default:
		return "disabled"
	}
}

// MFAState is the tagged MFA state. A pending secret and an active secret can
// never be present at the same time, and Enabled always carries a secret.
type MFAState struct {
	status MFAStatus
	secret string
}

// MFAOff returns the Disabled state.
func MFAOff() MFAState {
	return MFAState{status: MFADisabled}
}

// MFAPending returns the PendingSetup state holding the candidate secret.
func MFAPending(secret string) MFAState {
	if secret == "" {
		return MFAOff()
	}
	return MFAState{status: MFAPendingSetup, secret: secret}
}

// MFAOn returns the Enabled state holding the active secret.
func MFAOn(secret string) MFAState {
	if secret == "" {
		return MFAOff()
	}
	return MFAState{status: MFAEnabled, secret: secret}
}

// Status returns the enrollment state.
func (s MFAState) Status() MFAStatus {
	return s.status
}

// Secret returns the pending or active secret, depending on the state.
func (s MFAState) Secret() string {
	return s.secret
}

// Enabled reports whether a challenge is required at login.
func (s MFAState) Enabled() bool {
	return s.status == MFAEnabled
}

// Columns maps the state to the persisted column values
// (mfa_enabled, mfa_secret, temp_mfa_secret).
func (s MFAState) Columns() (enabled bool, secret, tempSecret *string) {
	switch s.status {
	case MFAEnabled:
		v := s.secret
		return true, &v, nil
	case MFAPendingSetup:
		v := s.secret
		return false, nil, &v
	default:
		return false, nil, nil
	}
}

// MFAStateFromColumns rebuilds the state from persisted column values.
// An enabled flag wins over a stray temporary secret.
func MFAStateFromColumns(enabled bool, secret, tempSecret *string) MFAState {
	if enabled && secret != nil && *secret != "" {
		return MFAOn(*secret)
	}
	if tempSecret != nil && *tempSecret != "" {
		return MFAPending(*tempSecret)
	}
	return MFAOff()
}

// MFASetup is returned when enrollment starts.
type MFASetup struct {
	Secret string
	URI    string
}

// MFASummary describes the enrollment state of a user.
type MFASummary struct {
	Status               MFAStatus
	RemainingBackupCodes int
}
