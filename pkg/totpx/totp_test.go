package totpx_test

import (
	"net/url"
	"testing"
	"time"

	"github.com/inkwellbooks/bookshop-login/pkg/totpx"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
)

func TestGenerateKey(t *testing.T) {
	key, err := totpx.GenerateKey("Bookshop", "alice")
	require.NoError(t, err)
	require.Len(t, key.Secret(), 32) // 160 bits base32
	require.Equal(t, "Bookshop", key.Issuer())
	require.Equal(t, "alice", key.AccountName())
}

func TestVerifyCurrentStep(t *testing.T) {
	key, err := totpx.GenerateKey("Bookshop", "alice")
	require.NoError(t, err)

	at := time.Unix(1700000000, 0).UTC()
	code, err := totp.GenerateCode(key.Secret(), at)
	require.NoError(t, err)

	require.True(t, totpx.Verify(key.Secret(), code, at))
	require.False(t, totpx.Verify(key.Secret(), "000000", at))
}

func TestVerifyWindow(t *testing.T) {
	key, err := totpx.GenerateKey("Bookshop", "alice")
	require.NoError(t, err)

	// Anchor to a step boundary so the offsets below land in distinct steps.
	at := time.Unix(1700000010, 0).UTC().Truncate(30 * time.Second)

	previous, err := totp.GenerateCode(key.Secret(), at.Add(-30*time.Second))
	require.NoError(t, err)
	require.True(t, totpx.Verify(key.Secret(), previous, at), "previous step must be accepted")

	stale, err := totp.GenerateCode(key.Secret(), at.Add(-60*time.Second))
	require.NoError(t, err)
	require.False(t, totpx.Verify(key.Secret(), stale, at), "two steps back must be rejected")

	next, err := totp.GenerateCode(key.Secret(), at.Add(30*time.Second))
	require.NoError(t, err)
	require.False(t, totpx.Verify(key.Secret(), next, at), "future step must be rejected")
}

func TestVerifyTrimsWhitespace(t *testing.T) {
	key, err := totpx.GenerateKey("Bookshop", "alice")
	require.NoError(t, err)

	at := time.Unix(1700000000, 0).UTC()
	code, err := totp.GenerateCode(key.Secret(), at)
	require.NoError(t, err)

	require.True(t, totpx.Verify(key.Secret(), "  "+code+" ", at))
	require.False(t, totpx.Verify(key.Secret(), "", at))
	require.False(t, totpx.Verify(key.Secret(), "   ", at))
}

func TestProvisioningURI(t *testing.T) {
	uri := totpx.ProvisioningURI("Ink & Well", "alice@example.com", "JBSWY3DPEHPK3PXP")

	parsed, err := url.Parse(uri)
	require.NoError(t, err)
	require.Equal(t, "otpauth", parsed.Scheme)
	require.Equal(t, "totp", parsed.Host)
	require.Equal(t, "/Ink & Well:alice@example.com", parsed.Path)

	q := parsed.Query()
	require.Equal(t, "JBSWY3DPEHPK3PXP", q.Get("secret"))
	require.Equal(t, "Ink & Well", q.Get("issuer"))
	require.Equal(t, "6", q.Get("digits"))
	require.Equal(t, "30", q.Get("period"))
	require.Equal(t, "SHA1", q.Get("algorithm"))

	// The raw form must carry the encoded issuer, not a literal space.
	require.Contains(t, uri, "issuer=Ink+%26+Well")
}
