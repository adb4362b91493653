package sqlite

import (
	"context"
	"time"

	"github.com/inkwellbooks/bookshop-login/internal/login/domain"
)

type usersRepo struct {
	q querier
}

const userColumns = `id, username, password_hash, salt, hash_algorithm, role,
	two_factor_enabled, two_factor_secret, created_at, updated_at`

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	return scanUser(row)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO users (id, username, password_hash, salt, hash_algorithm, role,
			two_factor_enabled, two_factor_secret, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID,
		u.Username,
		u.PasswordHash,
		u.Salt,
		u.HashAlgorithm,
		string(u.Role),
		mapOptionalTime(u.TwoFactorEnabled),
		mapOptionalString(u.TwoFactorSecret),
		u.CreatedAt,
		u.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, username, hash, salt, algorithm string) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE users
		SET password_hash = ?, salt = ?, hash_algorithm = ?, updated_at = ?
		WHERE username = ?`,
		hash, salt, algorithm, time.Now().UTC(), username)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *usersRepo) UpdateTwoFactorSecret(ctx context.Context, username, secret string) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE users SET two_factor_secret = ?, updated_at = ? WHERE username = ?`,
		secret, time.Now().UTC(), username)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *usersRepo) EnableTwoFactor(ctx context.Context, username string, at time.Time) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE users SET two_factor_enabled = ?, updated_at = ? WHERE username = ?`,
		at.UTC(), time.Now().UTC(), username)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *usersRepo) DisableTwoFactor(ctx context.Context, username string, retainSecret bool) error {
	query := `UPDATE users SET two_factor_enabled = NULL, two_factor_secret = NULL, updated_at = ? WHERE username = ?`
	if retainSecret {
		query = `UPDATE users SET two_factor_enabled = NULL, updated_at = ? WHERE username = ?`
	}
	res, err := r.q.ExecContext(ctx, query, time.Now().UTC(), username)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}
