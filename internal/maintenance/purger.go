// Package maintenance removes security rows that can no longer be used.
package maintenance

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dtroode/nox-iam/internal/logger"
)

// Result reports how many rows a purge removed.
type Result struct {
	Sessions    int64
	OTPCodes    int64
	Invitations int64
}

// Purger deletes sessions, one-time codes and invitations that expired, were
// revoked or were used more than the retention period ago. Live rows are never touched.
type Purger struct {
	db        *sql.DB
	retention time.Duration
	logger    *logger.Logger
	now       func() time.Time
}

func NewPurger(db *sql.DB, retention time.Duration, logger *logger.Logger) *Purger {
	return &Purger{db: db, retention: retention, logger: logger, now: time.Now}
}

// Purge runs one cleanup pass.
func (p *Purger) Purge(ctx context.Context) (Result, error) {
	const purgeSessions = `
        DELETE FROM sessions
        WHERE expires_at < $1 OR (revoked_at IS NOT NULL AND revoked_at < $1)
    `
	const purgeOTPCodes = `
        DELETE FROM otp_codes
        WHERE expires_at < $1 OR (used_at IS NOT NULL AND used_at < $1)
    `
	const purgeInvitations = `
        DELETE FROM invitations
        WHERE expires_at < $1 OR (accepted_at IS NOT NULL AND accepted_at < $1)
    `

	cutoff := p.now().Add(-p.retention)

	var res Result
	r, err := p.db.ExecContext(ctx, purgeSessions, cutoff)
	if err != nil {
		return Result{}, fmt.Errorf("failed to purge sessions: %w", err)
	}
	if res.Sessions, err = r.RowsAffected(); err != nil {
		return Result{}, fmt.Errorf("failed to count purged sessions: %w", err)
	}

	r, err = p.db.ExecContext(ctx, purgeOTPCodes, cutoff)
	if err != nil {
		return res, fmt.Errorf("failed to purge otp codes: %w", err)
	}
	if res.OTPCodes, err = r.RowsAffected(); err != nil {
		return res, fmt.Errorf("failed to count purged otp codes: %w", err)
	}

	r, err = p.db.ExecContext(ctx, purgeInvitations, cutoff)
	if err != nil {
		return res, fmt.Errorf("failed to purge invitations: %w", err)
	}
	if res.Invitations, err = r.RowsAffected(); err != nil {
		return res, fmt.Errorf("failed to count purged invitations: %w", err)
	}

	return res, nil
}

// Run purges once immediately and then on every interval until ctx is done.
func (p *Purger) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		p.runOnce(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (p *Purger) runOnce(ctx context.Context) {
	res, err := p.Purge(ctx)
	if err != nil {
		p.logger.Error("Maintenance: purge failed", "error", err.Error())
		return
	}
	p.logger.Info("Maintenance: purge completed",
		"sessions", res.Sessions,
		"otp_codes", res.OTPCodes,
		"invitations", res.Invitations)
}
