package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/inkwellbooks/bookshop-login/internal/login/domain"
	"github.com/inkwellbooks/bookshop-login/internal/login/store"
)

type challengesRepo struct {
	q querier
}

func (r *challengesRepo) Stage(ctx context.Context, c domain.Challenge) error {
	// Re-staging resets the attempt counter: a fresh first factor earns a
	// fresh set of code attempts.
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO challenges (session_id, username, attempts, staged_at, expires_at)
		VALUES (?, ?, 0, ?, ?)
		ON CONFLICT (session_id) DO UPDATE SET
			username = excluded.username,
			attempts = 0,
			staged_at = excluded.staged_at,
			expires_at = excluded.expires_at`,
		c.SessionID, c.Username, c.StagedAt.UTC(), c.ExpiresAt.UTC())
	return err
}

func (r *challengesRepo) Get(ctx context.Context, sessionID string, now time.Time) (domain.Challenge, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT session_id, username, attempts, staged_at, expires_at
		FROM challenges
		WHERE session_id = ? AND expires_at > ?`,
		sessionID, now.UTC())
	return scanChallenge(row)
}

func (r *challengesRepo) IncrementAttempts(ctx context.Context, sessionID string) (domain.Challenge, error) {
	row := r.q.QueryRowContext(ctx, `
		UPDATE challenges SET attempts = attempts + 1
		WHERE session_id = ?
		RETURNING session_id, username, attempts, staged_at, expires_at`,
		sessionID)
	return scanChallenge(row)
}

func (r *challengesRepo) Consume(ctx context.Context, sessionID string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM challenges WHERE session_id = ?`, sessionID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *challengesRepo) Delete(ctx context.Context, sessionID string) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM challenges WHERE session_id = ?`, sessionID)
	return err
}

func (r *challengesRepo) DeleteExpired(ctx context.Context, now time.Time) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM challenges WHERE expires_at <= ?`, now.UTC())
	return err
}

func scanChallenge(row *sql.Row) (domain.Challenge, error) {
	var c domain.Challenge
	err := row.Scan(&c.SessionID, &c.Username, &c.Attempts, &c.StagedAt, &c.ExpiresAt)
	if err != nil {
		return domain.Challenge{}, mapNotFound(err)
	}
	return c, nil
}

// requireRow maps a zero-row write to store.ErrNotFound so callers can tell
// "updated" from "no such row" without a prior read.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
