package store

import (
	"context"
	"errors"
	"time"

	"github.com/inkwellbooks/bookshop-login/internal/login/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. Sub-repositories keep the surface tidy and let tests swap a
// single concern.
type Store interface {
	Users() Users
	Challenges() Challenges

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store. The
	// caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// Users is the credential store. Lookups are by username, case-sensitive
// exact match.
type Users interface {
	// GetUserByUsername returns ErrNotFound when no such account exists.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Returns ErrAlreadyExists on a username collision.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdatePasswordHash sets a new hash/salt/algorithm triple.
	UpdatePasswordHash(ctx context.Context, username, hash, salt, algorithm string) error

	// UpdateTwoFactorSecret replaces the stored TOTP secret without touching
	// the enabled flag.
	UpdateTwoFactorSecret(ctx context.Context, username, secret string) error

	// EnableTwoFactor stamps the enabled timestamp.
	EnableTwoFactor(ctx context.Context, username string, at time.Time) error

	// DisableTwoFactor clears the enabled flag; the secret is cleared as well
	// unless retainSecret is set.
	DisableTwoFactor(ctx context.Context, username string, retainSecret bool) error

	// IsEmpty reports whether any users exist (admin bootstrap check).
	IsEmpty(ctx context.Context) (bool, error)
}

// Challenges is the pending second-factor staging area. A session holds at
// most one challenge; staging again overwrites. Reads never return expired
// rows; an expired challenge is indistinguishable from an absent one.
type Challenges interface {
	// Stage upserts the challenge for its session.
	Stage(ctx context.Context, c domain.Challenge) error

	// Get returns the live challenge for a session, or ErrNotFound when there
	// is none (including expired-but-not-yet-purged rows).
	Get(ctx context.Context, sessionID string, now time.Time) (domain.Challenge, error)

	// IncrementAttempts bumps the failed-attempt counter and returns the
	// updated challenge.
	IncrementAttempts(ctx context.Context, sessionID string) (domain.Challenge, error)

	// Consume deletes the challenge, returning ErrNotFound when it was already
	// gone. Exactly one concurrent caller can succeed.
	Consume(ctx context.Context, sessionID string) error

	// Delete removes the challenge if present; absence is not an error.
	Delete(ctx context.Context, sessionID string) error

	// DeleteExpired purges rows past their expiry (housekeeping).
	DeleteExpired(ctx context.Context, now time.Time) error
}
