package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/inkwellbooks/bookshop-login/internal/login/store"
	"github.com/inkwellbooks/bookshop-login/pkg/slogx"
	"github.com/inkwellbooks/bookshop-login/pkg/totpx"
)

var (
	ErrUnknownUser = errors.New("unknown user")

	// ErrTwoFactorNotEnabled is returned when a QR code or disable is
	// requested for an account that never turned 2FA on.
	ErrTwoFactorNotEnabled = errors.New("two-factor authentication not enabled")
)

// TwoFactorService manages TOTP enrolment for accounts.
type TwoFactorService struct {
	Store store.Store

	// Issuer labels provisioning URIs in authenticator apps.
	Issuer string

	// RotateOnEnable regenerates the secret every time 2FA is enabled. Off
	// by default: re-enabling keeps the secret the authenticator app already
	// knows.
	RotateOnEnable bool

	// RetainSecretOnDisable keeps the stored secret when 2FA is turned off
	// so a later re-enable does not force re-enrolment. On by default via
	// app config.
	RetainSecretOnDisable bool
}

// Enrollment is what the caller needs to finish setting up an authenticator
// app.
type Enrollment struct {
	Secret          string
	ProvisioningURI string
}

// EnableTwoFactor turns 2FA on for the account, provisioning a fresh secret
// when none is stored (or always, with RotateOnEnable). The returned
// enrolment carries the otpauth URI to render as a QR code.
func (s *TwoFactorService) EnableTwoFactor(ctx context.Context, username string, now time.Time) (Enrollment, error) {
	log := slogx.FromContext(ctx)

	var enrollment Enrollment
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		user, err := tx.Users().GetUserByUsername(ctx, username)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrUnknownUser
			}
			return fmt.Errorf("user lookup: %w", err)
		}

		secret := user.Secret()
		if secret == "" || s.RotateOnEnable {
			key, err := totpx.GenerateKey(s.Issuer, username)
			if err != nil {
				return fmt.Errorf("generate totp key: %w", err)
			}
			secret = key.Secret()
			if err := tx.Users().UpdateTwoFactorSecret(ctx, username, secret); err != nil {
				return fmt.Errorf("store secret: %w", err)
			}
		}

		if err := tx.Users().EnableTwoFactor(ctx, username, now); err != nil {
			return fmt.Errorf("enable 2fa: %w", err)
		}

		enrollment = Enrollment{
			Secret:          secret,
			ProvisioningURI: totpx.ProvisioningURI(s.Issuer, username, secret),
		}
		return nil
	})
	if err != nil {
		return Enrollment{}, err
	}

	log.Info("2fa enabled", "username", username)
	return enrollment, nil
}

// DisableTwoFactor turns 2FA off. The stored secret is kept or wiped per
// RetainSecretOnDisable.
func (s *TwoFactorService) DisableTwoFactor(ctx context.Context, username string) error {
	err := s.Store.Users().DisableTwoFactor(ctx, username, s.RetainSecretOnDisable)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUnknownUser
		}
		return fmt.Errorf("disable 2fa: %w", err)
	}
	slogx.FromContext(ctx).Info("2fa disabled", "username", username)
	return nil
}

// ProvisioningURI rebuilds the otpauth URI for an account that already has
// 2FA enabled, for re-scanning the QR code.
func (s *TwoFactorService) ProvisioningURI(ctx context.Context, username string) (string, error) {
	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrUnknownUser
		}
		return "", fmt.Errorf("user lookup: %w", err)
	}
	if !user.SecondFactorRequired() || user.Secret() == "" {
		return "", ErrTwoFactorNotEnabled
	}
	return totpx.ProvisioningURI(s.Issuer, username, user.Secret()), nil
}
