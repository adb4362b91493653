package loginsdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error codes shared by the server handlers and this client.
const (
	ErrorCodeInvalidRequest = "invalid_request"
	ErrorCodeInvalidLogin   = "invalid_login"
	ErrorCodeInvalidToken   = "invalid_token"
	ErrorCodeUsernameTaken  = "username_taken"
	ErrorCodeNotEnabled     = "two_factor_not_enabled"
	ErrorCodeServerError    = "server_error"
	ErrorCodeRateLimited    = "rate_limit_exceeded"
)

// APIError is the error body the service returns on non-2xx responses. It
// implements error so the SDK can surface it directly, and handlers use
// WriteError to produce it.
type APIError struct {
	StatusCode int `json:"-"`

	Code        string `json:"error"`
	Description string `json:"error_description"`

	// Next is a redirect hint on rejected logins, pointing the browser back
	// at the right form. Empty on every other error.
	Next string `json:"next,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes this error to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             e.Code,
		"error_description": e.Description,
	})
}

var (
	// ErrInvalidRequest covers malformed bodies and missing parameters.
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	// ErrInvalidLogin is the single, deliberately uninformative failure for
	// every rejected authentication attempt.
	ErrInvalidLogin = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidLogin,
		Description: "invalid login, try again",
	}

	// ErrInvalidToken is returned when the session cookie or bearer token is
	// missing, expired, or fails verification.
	ErrInvalidToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "invalid or missing session token",
	}

	// ErrUsernameTaken is returned on registration conflicts.
	ErrUsernameTaken = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeUsernameTaken,
		Description: "that username is already taken",
	}

	// ErrTwoFactorNotEnabled is returned when a QR code is requested for an
	// account without 2FA.
	ErrTwoFactorNotEnabled = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeNotEnabled,
		Description: "two-factor authentication is not enabled for this account",
	}

	// ErrServerError covers unexpected infrastructure failures.
	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

// parseErrorResponse turns a non-2xx response body into an *APIError. Bodies
// that are not the expected JSON shape still come back as an APIError with
// the raw status attached.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Code != "" {
		apiErr.StatusCode = resp.StatusCode
		return &apiErr
	}
	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("unexpected response status %d", resp.StatusCode),
	}
}
