package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/nox-iam/internal/model"
)

var _ model.BackupCodeStore = (*BackupCodeRepository)(nil)

type BackupCodeRepository struct {
	db *Connection
}

func NewBackupCodeRepository(db *Connection) *BackupCodeRepository {
	return &BackupCodeRepository{db: db}
}

func (r *BackupCodeRepository) Replace(ctx context.Context, userID uuid.UUID, codes []model.BackupCode) error {
	const deleteQuery = `DELETE FROM mfa_backup_codes WHERE user_id = $1`

	return r.db.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := r.db.conn(ctx).Exec(ctx, deleteQuery, userID); err != nil {
			return fmt.Errorf("failed to delete backup codes: %w", err)
		}

		rows := make([][]any, 0, len(codes))
		for _, c := range codes {
			rows = append(rows, []any{c.ID, userID, c.CodeHash, false, c.CreatedAt})
		}
		_, err := r.db.conn(ctx).CopyFrom(ctx,
			pgx.Identifier{"mfa_backup_codes"},
			[]string{"id", "user_id", "code_hash", "used", "created_at"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return fmt.Errorf("failed to insert backup codes: %w", err)
		}
		return nil
	})
}

func (r *BackupCodeRepository) ListUnused(ctx context.Context, userID uuid.UUID) ([]model.BackupCode, error) {
	const query = `
        SELECT id, user_id, code_hash, used, used_at, created_at
        FROM mfa_backup_codes WHERE user_id = $1 AND used = FALSE
    `
	rows, err := r.db.conn(ctx).Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list backup codes: %w", err)
	}
	defer rows.Close()

	var codes []model.BackupCode
	for rows.Next() {
		var c model.BackupCode
		if err := rows.Scan(&c.ID, &c.UserID, &c.CodeHash, &c.Used, &c.UsedAt, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan backup code: %w", err)
		}
		codes = append(codes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate backup codes: %w", err)
	}
	return codes, nil
}

func (r *BackupCodeRepository) MarkUsed(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	const query = `UPDATE mfa_backup_codes SET used = TRUE, used_at = $2 WHERE id = $1 AND used = FALSE`

	tag, err := r.db.conn(ctx).Exec(ctx, query, id, at)
	if err != nil {
		return false, fmt.Errorf("failed to mark backup code used: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *BackupCodeRepository) DeleteAll(ctx context.Context, userID uuid.UUID) error {
	const query = `DELETE FROM mfa_backup_codes WHERE user_id = $1`

	if _, err := r.db.conn(ctx).Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to delete backup codes: %w", err)
	}
	return nil
}
