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

var _ model.OTPStore = (*OTPRepository)(nil)

type OTPRepository struct {
	db *Connection
}

func NewOTPRepository(db *Connection) *OTPRepository {
	return &OTPRepository{db: db}
}

func (r *OTPRepository) Create(ctx context.Context, code model.OTPCode) error {
	const query = `
        INSERT INTO otp_codes (id, user_id, code, type, expires_at, failed_attempts, created_at)
        VALUES ($1, $2, $3, $4, $5, 0, $6)
    `
	_, err := r.db.conn(ctx).Exec(ctx, query, code.ID, code.UserID, code.Code, code.Type, code.ExpiresAt, code.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create otp code: %w", err)
	}
	return nil
}

func (r *OTPRepository) LatestUnused(ctx context.Context, userID uuid.UUID, otpType model.OTPType) (model.OTPCode, error) {
	const query = `
        SELECT id, user_id, code, type, expires_at, failed_attempts, used_at, created_at
        FROM otp_codes
        WHERE user_id = $1 AND type = $2 AND used_at IS NULL
        ORDER BY created_at DESC
        LIMIT 1
    `
	var c model.OTPCode
	err := r.db.conn(ctx).QueryRow(ctx, query, userID, otpType).Scan(
		&c.ID, &c.UserID, &c.Code, &c.Type, &c.ExpiresAt, &c.FailedAttempts, &c.UsedAt, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.OTPCode{}, model.ErrNotFound
		}
		return model.OTPCode{}, fmt.Errorf("failed to get latest otp code: %w", err)
	}
	return c, nil
}

func (r *OTPRepository) InvalidateUnused(ctx context.Context, userID uuid.UUID, otpType model.OTPType, at time.Time) error {
	const query = `UPDATE otp_codes SET used_at = $3 WHERE user_id = $1 AND type = $2 AND used_at IS NULL`

	if _, err := r.db.conn(ctx).Exec(ctx, query, userID, otpType, at); err != nil {
		return fmt.Errorf("failed to invalidate otp codes: %w", err)
	}
	return nil
}

// RegisterFailure runs on the pool, outside any transaction in ctx.
func (r *OTPRepository) RegisterFailure(ctx context.Context, id uuid.UUID, maxAttempts int, at time.Time) (int, error) {
	const query = `
        UPDATE otp_codes SET
            failed_attempts = failed_attempts + 1,
            used_at = CASE WHEN failed_attempts + 1 >= $2 THEN $3 ELSE used_at END
        WHERE id = $1
        RETURNING failed_attempts
    `
	var attempts int
	if err := r.db.Pool.QueryRow(ctx, query, id, maxAttempts, at).Scan(&attempts); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, model.ErrNotFound
		}
		return 0, fmt.Errorf("failed to register otp failure: %w", err)
	}
	return attempts, nil
}

func (r *OTPRepository) MarkUsed(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	const query = `UPDATE otp_codes SET used_at = $2 WHERE id = $1 AND used_at IS NULL`

	tag, err := r.db.conn(ctx).Exec(ctx, query, id, at)
	if err != nil {
		return false, fmt.Errorf("failed to mark otp code used: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
