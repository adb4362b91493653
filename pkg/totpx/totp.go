// Package totpx wraps time-based one-time-password generation and
// verification for authenticator-app compatibility: 6 digits, 30 second
// period, SHA-1. SHA-1 is cryptographically weak but is what the installed
// base of authenticator apps implements, so it stays.
package totpx

import (
	"net/url"
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const (
	// Period is the TOTP time step in seconds.
	Period = 30

	// SecretSize is the raw secret length in bytes (160 bits, 32 base32 chars).
	SecretSize = 20
)

// GenerateKey provisions a fresh TOTP key for an account. The returned key
// carries the base32 secret and the otpauth URL.
func GenerateKey(issuer, account string) (*otp.Key, error) {
	return totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: account,
		Period:      Period,
		SecretSize:  SecretSize,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
}

// Verify checks a submitted code against the secret at the given time. The
// code for the current 30s step and the immediately preceding step are
// accepted (clock skew up to ~30s); anything older or newer is rejected.
func Verify(secret, code string, at time.Time) bool {
	code = strings.TrimSpace(code)
	if code == "" {
		return false
	}

	opts := totp.ValidateOpts{
		Period:    Period,
		Skew:      0,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	}

	// Skew would also admit the NEXT step, so check the two allowed steps
	// individually instead.
	if ok, err := totp.ValidateCustom(code, secret, at, opts); err == nil && ok {
		return true
	}
	ok, err := totp.ValidateCustom(code, secret, at.Add(-Period*time.Second), opts)
	return err == nil && ok
}

// ProvisioningURI builds the canonical otpauth URI for an existing secret,
// percent-encoding the issuer/account label and all parameter values.
func ProvisioningURI(issuer, account, secret string) string {
	v := url.Values{}
	v.Set("secret", secret)
	v.Set("issuer", issuer)
	v.Set("digits", "6")
	v.Set("period", "30")
	v.Set("algorithm", "SHA1")

	u := url.URL{
		Scheme:   "otpauth",
		Host:     "totp",
		Path:     "/" + issuer + ":" + account,
		RawQuery: v.Encode(),
	}
	return u.String()
}
