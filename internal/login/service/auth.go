package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/inkwellbooks/bookshop-login/internal/login/domain"
	"github.com/inkwellbooks/bookshop-login/internal/login/store"
	"github.com/inkwellbooks/bookshop-login/pkg/cryptox"
	"github.com/inkwellbooks/bookshop-login/pkg/slogx"
	"github.com/inkwellbooks/bookshop-login/pkg/totpx"
)

const (
	// DefaultChallengeTTL bounds how long a staged second-factor challenge
	// stays answerable after the first factor succeeded.
	DefaultChallengeTTL = 5 * time.Minute

	// DefaultMaxAttempts is the number of wrong codes a single challenge
	// absorbs before it is destroyed.
	DefaultMaxAttempts = 5
)

// dummySalt/dummyHash are a throwaway sha256 credential pair. Unknown
// usernames are verified against it so the lookup-miss path costs the same
// as a wrong password.
const (
	dummySalt = "antienum"
	dummyHash = "0000000000000000000000000000000000000000000000000000000000000000"
)

// AuthService runs the login state machine: first factor, conditional
// second-factor gate, and authority issuance. All outcomes that are the
// caller's fault come back inside the Outcome; returned errors are
// infrastructure failures only.
type AuthService struct {
	Store store.Store

	// ChallengeTTL is how long a staged challenge remains valid. Zero means
	// DefaultChallengeTTL.
	ChallengeTTL time.Duration

	// MaxAttempts caps wrong codes per challenge. Zero means DefaultMaxAttempts.
	MaxAttempts int

	// VerifyCode overrides TOTP verification when non-nil. Production wiring
	// leaves it nil and gets totpx.Verify.
	VerifyCode func(secret, code string, at time.Time) bool
}

func (s *AuthService) challengeTTL() time.Duration {
	if s.ChallengeTTL > 0 {
		return s.ChallengeTTL
	}
	return DefaultChallengeTTL
}

func (s *AuthService) maxAttempts() int {
	if s.MaxAttempts > 0 {
		return s.MaxAttempts
	}
	return DefaultMaxAttempts
}

func (s *AuthService) verifyCode(secret, code string, at time.Time) bool {
	if s.VerifyCode != nil {
		return s.VerifyCode(secret, code, at)
	}
	return totpx.Verify(secret, code, at)
}

// Authenticate runs a full login attempt for the session identified by
// sessionID. code may be empty; when the account has 2FA enabled an empty
// code stages a pending challenge and returns the SecondFactorRequired
// outcome instead of failing.
func (s *AuthService) Authenticate(ctx context.Context, username, password, code, sessionID string, now time.Time) (domain.Outcome, error) {
	log := slogx.FromContext(ctx)

	if strings.TrimSpace(username) == "" {
		return domain.Rejected(domain.ReasonInvalidCredentials), nil
	}

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Burn a hash comparison anyway so a missing user is not
			// observably faster than a wrong password.
			cryptox.VerifyPassword(cryptox.AlgorithmSHA256, password, dummySalt, dummyHash)
			return domain.Rejected(domain.ReasonInvalidCredentials), nil
		}
		return domain.Outcome{}, fmt.Errorf("user lookup: %w", err)
	}

	algo, err := cryptox.ParseAlgorithm(user.HashAlgorithm)
	if err != nil {
		return domain.Outcome{}, fmt.Errorf("credential record for %q: %w", username, err)
	}
	if !cryptox.VerifyPassword(algo, password, user.Salt, user.PasswordHash) {
		return domain.Rejected(domain.ReasonInvalidCredentials), nil
	}

	// First factor done. Accounts without 2FA authenticate immediately and
	// any supplied code is ignored, not checked.
	if !user.SecondFactorRequired() {
		return s.succeed(ctx, sessionID, user)
	}

	if strings.TrimSpace(code) == "" {
		challenge := domain.Challenge{
			SessionID: sessionID,
			Username:  user.Username,
			StagedAt:  now,
			ExpiresAt: now.Add(s.challengeTTL()),
		}
		if err := s.Store.Challenges().Stage(ctx, challenge); err != nil {
			return domain.Outcome{}, fmt.Errorf("stage challenge: %w", err)
		}
		return domain.SecondFactorRequired(user.Username), nil
	}

	if user.Secret() == "" {
		log.Warn("2fa enabled without a provisioned secret", "username", user.Username)
		return domain.Rejected(domain.ReasonTwoFactorNotConfigured), nil
	}

	if !s.verifyCode(user.Secret(), code, now) {
		return domain.Rejected(domain.ReasonInvalidCode), nil
	}

	return s.succeed(ctx, sessionID, user)
}

// CompleteSecondFactor answers a previously staged challenge. A failed code
// leaves the challenge in place for retry until the attempt cap destroys it.
func (s *AuthService) CompleteSecondFactor(ctx context.Context, sessionID, code string, now time.Time) (domain.Outcome, error) {
	log := slogx.FromContext(ctx)

	challenge, err := s.Store.Challenges().Get(ctx, sessionID, now)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Rejected(domain.ReasonNoPendingChallenge), nil
		}
		return domain.Outcome{}, fmt.Errorf("challenge lookup: %w", err)
	}

	// Re-fetch the account: it may have been removed or had 2FA turned off
	// between the two steps.
	user, err := s.Store.Users().GetUserByUsername(ctx, challenge.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = s.Store.Challenges().Delete(ctx, sessionID)
			return domain.Rejected(domain.ReasonNoPendingChallenge), nil
		}
		return domain.Outcome{}, fmt.Errorf("user lookup: %w", err)
	}
	if !user.SecondFactorRequired() || user.Secret() == "" {
		_ = s.Store.Challenges().Delete(ctx, sessionID)
		return domain.Rejected(domain.ReasonTwoFactorNotConfigured), nil
	}

	if !s.verifyCode(user.Secret(), code, now) {
		updated, err := s.Store.Challenges().IncrementAttempts(ctx, sessionID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return domain.Rejected(domain.ReasonNoPendingChallenge), nil
			}
			return domain.Outcome{}, fmt.Errorf("record attempt: %w", err)
		}
		if updated.Attempts >= s.maxAttempts() {
			_ = s.Store.Challenges().Delete(ctx, sessionID)
			log.Warn("challenge destroyed after too many wrong codes",
				"username", challenge.Username, "attempts", updated.Attempts)
			return domain.Rejected(domain.ReasonTooManyAttempts), nil
		}
		return domain.Rejected(domain.ReasonInvalidCode), nil
	}

	// Guarded delete: exactly one concurrent verifier wins the challenge.
	if err := s.Store.Challenges().Consume(ctx, sessionID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Rejected(domain.ReasonNoPendingChallenge), nil
		}
		return domain.Outcome{}, fmt.Errorf("consume challenge: %w", err)
	}

	log.Info("second factor accepted", "username", user.Username)
	return domain.Authenticated(user.Username, user.Role), nil
}

// succeed clears any pending challenge for the session and issues the
// Authenticated outcome.
func (s *AuthService) succeed(ctx context.Context, sessionID string, user domain.User) (domain.Outcome, error) {
	if err := s.Store.Challenges().Delete(ctx, sessionID); err != nil {
		return domain.Outcome{}, fmt.Errorf("clear challenge: %w", err)
	}
	slogx.FromContext(ctx).Info("login accepted", "username", user.Username, "role", string(user.Role))
	return domain.Authenticated(user.Username, user.Role), nil
}

// Logout discards any pending challenge for the session. Session token
// invalidation is cookie-side; the server only has staging state to drop.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.Store.Challenges().Delete(ctx, sessionID)
}
