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

var _ model.SessionStore = (*SessionRepository)(nil)

type SessionRepository struct {
	db *Connection
}

func NewSessionRepository(db *Connection) *SessionRepository {
	return &SessionRepository{db: db}
}

const sessionColumns = `id, user_id, token_hash, ip_address, user_agent, device_class, last_active_at,
	expires_at, revoked_at, COALESCE(revoke_reason, ''), rotated_from, created_at`

func scanSession(row pgx.Row) (model.Session, error) {
	var s model.Session
	err := row.Scan(
		&s.ID, &s.UserID, &s.TokenHash, &s.IPAddress, &s.UserAgent, &s.DeviceClass, &s.LastActiveAt,
		&s.ExpiresAt, &s.RevokedAt, &s.RevokeReason, &s.RotatedFrom, &s.CreatedAt,
	)
	return s, err
}

func (r *SessionRepository) Create(ctx context.Context, session model.Session) error {
	const query = `
        INSERT INTO sessions (
            id, user_id, token_hash, ip_address, user_agent, device_class, last_active_at, expires_at, rotated_from, created_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
    `

	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}

	_, err := r.db.conn(ctx).Exec(ctx, query,
		session.ID, session.UserID, session.TokenHash, session.IPAddress, session.UserAgent, session.DeviceClass,
		session.LastActiveAt, session.ExpiresAt, session.RotatedFrom, session.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *SessionRepository) GetByTokenHash(ctx context.Context, tokenHash []byte) (model.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE token_hash = $1`

	s, err := scanSession(r.db.conn(ctx).QueryRow(ctx, query, tokenHash))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Session{}, model.ErrNotFound
		}
		return model.Session{}, fmt.Errorf("failed to get session by token hash: %w", err)
	}
	return s, nil
}

func (r *SessionRepository) GetByTokenHashForUpdate(ctx context.Context, tokenHash []byte) (model.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE token_hash = $1 FOR UPDATE`

	s, err := scanSession(r.db.conn(ctx).QueryRow(ctx, query, tokenHash))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Session{}, model.ErrNotFound
		}
		return model.Session{}, fmt.Errorf("failed to lock session by token hash: %w", err)
	}
	return s, nil
}

func (r *SessionRepository) Revoke(ctx context.Context, id uuid.UUID, reason string, at time.Time) error {
	const query = `
        UPDATE sessions SET revoked_at = $3, revoke_reason = $2
        WHERE id = $1 AND revoked_at IS NULL
    `
	if _, err := r.db.conn(ctx).Exec(ctx, query, id, reason, at); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

func (r *SessionRepository) RevokeAllByUser(ctx context.Context, userID uuid.UUID, reason string, at time.Time) (int64, error) {
	const query = `
        UPDATE sessions SET revoked_at = $3, revoke_reason = $2
        WHERE user_id = $1 AND revoked_at IS NULL
    `
	tag, err := r.db.conn(ctx).Exec(ctx, query, userID, reason, at)
	if err != nil {
		return 0, fmt.Errorf("failed to revoke sessions by user: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *SessionRepository) ListActiveByUser(ctx context.Context, userID uuid.UUID, now time.Time) ([]model.Session, error) {
	query := `SELECT ` + sessionColumns + `
        FROM sessions WHERE user_id = $1 AND revoked_at IS NULL AND expires_at > $2
        ORDER BY last_active_at DESC`

	rows, err := r.db.conn(ctx).Query(ctx, query, userID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []model.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}
	return sessions, nil
}
