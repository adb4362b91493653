package domain

import "time"

// Challenge is a pending second-factor record: first factor succeeded and a
// TOTP code is awaited. Keyed by the caller's opaque session id; at most one
// challenge exists per session. An expired challenge is treated as absent.
type Challenge struct {
	SessionID string
	Username  string
	Attempts  int // failed code submissions so far
	StagedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the challenge should be treated as absent.
func (c *Challenge) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
