package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/nox-iam/internal/model"
)

var _ model.CredentialStore = (*CredentialRepository)(nil)

type CredentialRepository struct {
	db *Connection
}

func NewCredentialRepository(db *Connection) *CredentialRepository {
	return &CredentialRepository{db: db}
}

const credentialColumns = `user_id, password_hash, password_set, last_password_change, failed_login_attempts,
	locked_until, mfa_enabled, mfa_secret, temp_mfa_secret, failed_mfa_attempts, updated_at`

func scanCredential(row pgx.Row) (model.Credential, error) {
	var (
		c            model.Credential
		passwordHash *string
		mfaEnabled   bool
		mfaSecret    *string
		tempSecret   *string
	)
	err := row.Scan(
		&c.UserID, &passwordHash, &c.PasswordSet, &c.LastPasswordChange, &c.FailedLoginAttempts,
		&c.LockedUntil, &mfaEnabled, &mfaSecret, &tempSecret, &c.FailedMFAAttempts, &c.UpdatedAt,
	)
	if err != nil {
		return model.Credential{}, err
	}
	if passwordHash != nil {
		c.PasswordHash = *passwordHash
	}
	c.MFA = model.MFAStateFromColumns(mfaEnabled, mfaSecret, tempSecret)
	return c, nil
}

func (r *CredentialRepository) Get(ctx context.Context, userID uuid.UUID) (model.Credential, error) {
	query := `SELECT ` + credentialColumns + ` FROM credentials WHERE user_id = $1`

	c, err := scanCredential(r.db.conn(ctx).QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Credential{}, model.ErrNotFound
		}
		return model.Credential{}, fmt.Errorf("failed to get credential: %w", err)
	}
	return c, nil
}

func (r *CredentialRepository) GetForUpdate(ctx context.Context, userID uuid.UUID) (model.Credential, error) {
	query := `SELECT ` + credentialColumns + ` FROM credentials WHERE user_id = $1 FOR UPDATE`

	c, err := scanCredential(r.db.conn(ctx).QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Credential{}, model.ErrNotFound
		}
		return model.Credential{}, fmt.Errorf("failed to lock credential: %w", err)
	}
	return c, nil
}

// RegisterLoginFailure runs on the pool, outside any transaction in ctx.
func (r *CredentialRepository) RegisterLoginFailure(ctx context.Context, userID uuid.UUID, maxAttempts int, lockUntil time.Time) (model.Credential, error) {
	query := `
        UPDATE credentials SET
            failed_login_attempts = failed_login_attempts + 1,
            locked_until = CASE WHEN failed_login_attempts + 1 >= $2 THEN $3 ELSE locked_until END,
            updated_at = NOW()
        WHERE user_id = $1
        RETURNING ` + credentialColumns

	c, err := scanCredential(r.db.Pool.QueryRow(ctx, query, userID, maxAttempts, lockUntil))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Credential{}, model.ErrNotFound
		}
		return model.Credential{}, fmt.Errorf("failed to register login failure: %w", err)
	}
	return c, nil
}

// RegisterMFAFailure runs on the pool, outside any transaction in ctx.
func (r *CredentialRepository) RegisterMFAFailure(ctx context.Context, userID uuid.UUID, maxAttempts int, lockUntil time.Time) (model.Credential, error) {
	query := `
        UPDATE credentials SET
            failed_mfa_attempts = failed_mfa_attempts + 1,
            locked_until = CASE WHEN failed_mfa_attempts + 1 >= $2 THEN $3 ELSE locked_until END,
            updated_at = NOW()
        WHERE user_id = $1
        RETURNING ` + credentialColumns

	c, err := scanCredential(r.db.Pool.QueryRow(ctx, query, userID, maxAttempts, lockUntil))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Credential{}, model.ErrNotFound
		}
		return model.Credential{}, fmt.Errorf("failed to register mfa failure: %w", err)
	}
	return c, nil
}

func (r *CredentialRepository) ResetLoginFailures(ctx context.Context, userID uuid.UUID) error {
	const query = `
        UPDATE credentials SET failed_login_attempts = 0, locked_until = NULL, updated_at = NOW()
        WHERE user_id = $1 AND (failed_login_attempts <> 0 OR locked_until IS NOT NULL)
    `
	if _, err := r.db.conn(ctx).Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to reset login failures: %w", err)
	}
	return nil
}

func (r *CredentialRepository) ResetFailures(ctx context.Context, userID uuid.UUID) error {
	const query = `
        UPDATE credentials SET failed_login_attempts = 0, failed_mfa_attempts = 0, locked_until = NULL, updated_at = NOW()
        WHERE user_id = $1 AND (failed_login_attempts <> 0 OR failed_mfa_attempts <> 0 OR locked_until IS NOT NULL)
    `
	if _, err := r.db.conn(ctx).Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to reset failures: %w", err)
	}
	return nil
}

func (r *CredentialRepository) Lock(ctx context.Context, userID uuid.UUID, until *time.Time) error {
	const lock = `UPDATE credentials SET locked_until = $2, updated_at = NOW() WHERE user_id = $1`
	const unlock = `UPDATE credentials SET locked_until = NULL, failed_login_attempts = 0, updated_at = NOW() WHERE user_id = $1`

	var err error
	if until == nil {
		_, err = r.db.conn(ctx).Exec(ctx, unlock, userID)
	} else {
		_, err = r.db.conn(ctx).Exec(ctx, lock, userID, *until)
	}
	if err != nil {
		return fmt.Errorf("failed to update lock: %w", err)
	}
	return nil
}

func (r *CredentialRepository) SetPassword(ctx context.Context, userID uuid.UUID, passwordHash string, changedAt time.Time) error {
	const query = `
        UPDATE credentials SET password_hash = $2, password_set = TRUE, last_password_change = $3, updated_at = $3
        WHERE user_id = $1
    `
	tag, err := r.db.conn(ctx).Exec(ctx, query, userID, passwordHash, changedAt)
	if err != nil {
		return fmt.Errorf("failed to set password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *CredentialRepository) SetMFA(ctx context.Context, userID uuid.UUID, state model.MFAState) error {
	const query = `
        UPDATE credentials SET mfa_enabled = $2, mfa_secret = $3, temp_mfa_secret = $4, updated_at = NOW()
        WHERE user_id = $1
    `
	enabled, secret, tempSecret := state.Columns()
	tag, err := r.db.conn(ctx).Exec(ctx, query, userID, enabled, secret, tempSecret)
	if err != nil {
		return fmt.Errorf("failed to set mfa state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
