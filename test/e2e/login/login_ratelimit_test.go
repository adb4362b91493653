package login_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inkwellbooks/bookshop-login/pkg/loginsdk"
)

// TestLoginRateLimit hammers the login endpoint with bad credentials under
// the production rate limit profile and expects a 429 once the strict bucket
// is drained.
func TestLoginRateLimit(t *testing.T) {
	baseURL, cleanup := setupLoginContainerWithDefaultRateLimits(t)
	defer cleanup()

	client := loginsdk.NewClient(baseURL)

	limited := false
	for i := 0; i < 10; i++ {
		_, err := client.Login(t.Context(), "nobody", "wrong-password", "")
		require.Error(t, err)

		var apiErr *loginsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		if apiErr.StatusCode == 429 {
			require.Equal(t, loginsdk.ErrorCodeRateLimited, apiErr.Code)
			limited = true
			break
		}
		require.Equal(t, 401, apiErr.StatusCode)
	}

	require.True(t, limited, "expected the strict profile to kick in within 10 attempts")
}
