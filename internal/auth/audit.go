package auth

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AuditLog records login attempts in the auth_login_events table. Writes are
// best-effort from the caller's point of view: a failed audit write must
// never turn a successful login into an error.
type AuditLog struct {
	db *sql.DB
}

func NewAuditLog(db *sql.DB) *AuditLog {
	return &AuditLog{db: db}
}

func (a *AuditLog) RecordLogin(ctx context.Context, username string, success bool, ip string) error {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generate login event id: %w", err)
	}

	_, err = a.db.ExecContext(ctx, `
		INSERT INTO auth_login_events (id, username, success, ip, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, id.String(), username, success, ip, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("insert login event: %w", err)
	}

	return nil
}

// DeleteStaleEvents prunes login events older than cutoff, at most batchSize
// rows per call so a cron invocation stays bounded.
func (a *AuditLog) DeleteStaleEvents(ctx context.Context, cutoff time.Time, batchSize int) (int64, error) {
	if batchSize <= 0 {
		batchSize = 500
	}

	res, err := a.db.ExecContext(ctx, `
		WITH stale AS (
			SELECT id
			FROM auth_login_events
			WHERE created_at < $1
			ORDER BY created_at ASC
			LIMIT $2
		)
		DELETE FROM auth_login_events t
		USING stale
		WHERE t.id = stale.id
	`, cutoff, batchSize)
	if err != nil {
		return 0, fmt.Errorf("delete stale login events: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("stale login events rows affected: %w", err)
	}

	return affected, nil
}
