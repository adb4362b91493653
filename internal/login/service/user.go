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
	"github.com/inkwellbooks/bookshop-login/pkg/idx"
	"github.com/inkwellbooks/bookshop-login/pkg/slogx"
)

var (
	ErrUsernameTaken   = errors.New("username already taken")
	ErrInvalidUsername = errors.New("invalid username")
	ErrWeakPassword    = errors.New("password too short")
)

const minPasswordLength = 8

// UserService handles account registration and password changes.
type UserService struct {
	Store store.Store

	// HashAlgorithm selects the scheme new hashes are produced with.
	// Existing accounts keep verifying under whatever they were stored with.
	HashAlgorithm cryptox.Algorithm
}

// Register creates a new account with the given role. 2FA starts disabled;
// accounts opt in afterwards.
func (s *UserService) Register(ctx context.Context, username, password string, role domain.Role, now time.Time) (domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || strings.ContainsAny(username, " \t\n") {
		return domain.User{}, ErrInvalidUsername
	}
	if len(password) < minPasswordLength {
		return domain.User{}, ErrWeakPassword
	}

	salt, err := cryptox.GenerateSalt()
	if err != nil {
		return domain.User{}, fmt.Errorf("generate salt: %w", err)
	}
	hash, err := cryptox.HashPassword(s.HashAlgorithm, password, salt)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:            idx.New().String(),
		Username:      username,
		PasswordHash:  hash,
		Salt:          salt,
		HashAlgorithm: string(s.HashAlgorithm),
		Role:          role,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrUsernameTaken
		}
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}

	slogx.FromContext(ctx).Info("user registered", "username", username, "role", string(role))
	return user, nil
}

// ChangePassword re-hashes under the currently configured algorithm, which
// also migrates legacy sha256 accounts forward on their next change.
func (s *UserService) ChangePassword(ctx context.Context, username, current, next string) error {
	if len(next) < minPasswordLength {
		return ErrWeakPassword
	}

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUnknownUser
		}
		return fmt.Errorf("user lookup: %w", err)
	}

	algo, err := cryptox.ParseAlgorithm(user.HashAlgorithm)
	if err != nil {
		return fmt.Errorf("credential record for %q: %w", username, err)
	}
	if !cryptox.VerifyPassword(algo, current, user.Salt, user.PasswordHash) {
		return errors.New("current password does not match")
	}

	salt, err := cryptox.GenerateSalt()
	if err != nil {
		return fmt.Errorf("generate salt: %w", err)
	}
	hash, err := cryptox.HashPassword(s.HashAlgorithm, next, salt)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.Store.Users().UpdatePasswordHash(ctx, username, hash, salt, string(s.HashAlgorithm)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	slogx.FromContext(ctx).Info("password changed", "username", username)
	return nil
}
