package domain

import "time"

// User is the credential record for a single account. Username is unique and
// compared case-sensitively. TwoFactorSecret is a base32 TOTP secret and may
// outlive TwoFactorEnabled when secret retention is configured.
type User struct {
	ID              string
	Username        string
	PasswordHash    string
	Salt            string
	HashAlgorithm   string     // cryptox algorithm name the hash was produced with
	Role            Role
	TwoFactorEnabled *time.Time // timestamp when 2FA was enabled (nil = disabled)
	TwoFactorSecret *string    // base32 TOTP secret (nil when never enrolled)
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SecondFactorRequired reports whether a login for this user must present a
// TOTP code before authentication can complete.
func (u *User) SecondFactorRequired() bool {
	return u.TwoFactorEnabled != nil
}

// Secret returns the stored TOTP secret or "" when none has been provisioned.
func (u *User) Secret() string {
	if u.TwoFactorSecret == nil {
		return ""
	}
	return *u.TwoFactorSecret
}
