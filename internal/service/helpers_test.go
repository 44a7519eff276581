package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/nox-iam/internal/model"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

// auditLog collects audit entries in memory.
type auditLog struct {
	mu      sync.Mutex
	entries []model.AuditEntry
}

func (a *auditLog) Record(_ context.Context, entry model.AuditEntry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, entry)
}

func (a *auditLog) Actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.entries))
	for _, e := range a.entries {
		out = append(out, e.Action)
	}
	return out
}

// memCredentials is an in-memory CredentialStore with the same counter
// semantics as the SQL implementation.
type memCredentials struct {
	mu    sync.Mutex
	creds map[uuid.UUID]model.Credential
}

func newMemCredentials(creds ...model.Credential) *memCredentials {
	m := &memCredentials{creds: make(map[uuid.UUID]model.Credential)}
	for _, c := range creds {
		m.creds[c.UserID] = c
	}
	return m
}

func (m *memCredentials) Get(_ context.Context, userID uuid.UUID) (model.Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.creds[userID]
	if !ok {
		return model.Credential{}, model.ErrNotFound
	}
	return c, nil
}

func (m *memCredentials) GetForUpdate(ctx context.Context, userID uuid.UUID) (model.Credential, error) {
	return m.Get(ctx, userID)
}

func (m *memCredentials) RegisterLoginFailure(_ context.Context, userID uuid.UUID, maxAttempts int, lockUntil time.Time) (model.Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.creds[userID]
	if !ok {
		return model.Credential{}, model.ErrNotFound
	}
	c.FailedLoginAttempts++
	if c.FailedLoginAttempts >= maxAttempts {
		c.LockedUntil = &lockUntil
	}
	m.creds[userID] = c
	return c, nil
}

func (m *memCredentials) RegisterMFAFailure(_ context.Context, userID uuid.UUID, maxAttempts int, lockUntil time.Time) (model.Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.creds[userID]
	if !ok {
		return model.Credential{}, model.ErrNotFound
	}
	c.FailedMFAAttempts++
	if c.FailedMFAAttempts >= maxAttempts {
		c.LockedUntil = &lockUntil
	}
	m.creds[userID] = c
	return c, nil
}

func (m *memCredentials) ResetLoginFailures(_ context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.creds[userID]
	c.FailedLoginAttempts = 0
	c.LockedUntil = nil
	m.creds[userID] = c
	return nil
}

func (m *memCredentials) ResetFailures(_ context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.creds[userID]
	c.FailedLoginAttempts = 0
	c.FailedMFAAttempts = 0
	c.LockedUntil = nil
	m.creds[userID] = c
	return nil
}

func (m *memCredentials) Lock(_ context.Context, userID uuid.UUID, until *time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.creds[userID]
	c.LockedUntil = until
	if until == nil {
		c.FailedLoginAttempts = 0
	}
	m.creds[userID] = c
	return nil
}

func (m *memCredentials) SetPassword(_ context.Context, userID uuid.UUID, passwordHash string, changedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.creds[userID]
	c.PasswordHash = passwordHash
	c.PasswordSet = true
	c.LastPasswordChange = &changedAt
	m.creds[userID] = c
	return nil
}

func (m *memCredentials) SetMFA(_ context.Context, userID uuid.UUID, state model.MFAState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.creds[userID]
	c.MFA = state
	m.creds[userID] = c
	return nil
}
