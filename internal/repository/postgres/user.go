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

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

const userColumns = `id, email, display_name, status, system_admin, created_at, updated_at`

func scanUser(row pgx.Row) (model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID, &user.Email, &user.DisplayName, &user.Status, &user.SystemAdmin,
		&user.CreatedAt, &user.UpdatedAt,
	)
	return user, err
}

func (r *UserRepository) Create(ctx context.Context, user model.User, credential model.Credential) (model.User, error) {
	const insertUser = `INSERT INTO users (id, email, display_name, status, system_admin, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING ` + userColumns
	const insertCredential = `INSERT INTO credentials (user_id, password_hash, password_set, last_password_change, updated_at)
			  VALUES ($1, NULLIF($2, ''), $3, $4, $5)`

	var saved model.User
	err := r.db.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		saved, err = scanUser(r.db.conn(ctx).QueryRow(ctx, insertUser,
			user.ID, user.Email, user.DisplayName, user.Status, user.SystemAdmin, user.CreatedAt, user.UpdatedAt,
		))
		if err != nil {
			if isUniqueViolation(err) {
				return model.ErrConflict
			}
			return fmt.Errorf("failed to create user: %w", err)
		}

		_, err = r.db.conn(ctx).Exec(ctx, insertCredential,
			saved.ID, credential.PasswordHash, credential.PasswordSet, credential.LastPasswordChange, user.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create credential: %w", err)
		}
		return nil
	})
	if err != nil {
		return model.User{}, err
	}

	return saved, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	query := `SELECT ` + userColumns + `
			  FROM users WHERE lower(email) = lower($1) AND status <> 'deleted'`

	user, err := scanUser(r.db.conn(ctx).QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByEmailIncludeDeleted(ctx context.Context, email string) (model.User, error) {
	query := `SELECT ` + userColumns + `
			  FROM users WHERE lower(email) = lower($1)`

	user, err := scanUser(r.db.conn(ctx).QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	query := `SELECT ` + userColumns + `
			  FROM users WHERE id = $1 AND status <> 'deleted'`

	user, err := scanUser(r.db.conn(ctx).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

func (r *UserRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.UserStatus) error {
	const query = `UPDATE users SET status = $2, updated_at = $3 WHERE id = $1`

	tag, err := r.db.conn(ctx).Exec(ctx, query, id, status, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update user status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpdateDisplayName(ctx context.Context, id uuid.UUID, displayName string) error {
	const query = `UPDATE users SET display_name = $2, updated_at = $3 WHERE id = $1`

	if _, err := r.db.conn(ctx).Exec(ctx, query, id, displayName, time.Now()); err != nil {
		return fmt.Errorf("failed to update display name: %w", err)
	}
	return nil
}
