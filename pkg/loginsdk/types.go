package loginsdk

// Outcome status values carried in LoginResponse.Status.
const (
	StatusAuthenticated        = "authenticated"
	StatusSecondFactorRequired = "second_factor_required"
	StatusRejected             = "rejected"
)

// LoginRequest is the body of POST /v1/login. Code is optional; when the
// account has 2FA enabled and Code is empty the server stages a challenge
// instead of rejecting.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Code     string `json:"code,omitempty"`
}

// VerifyRequest is the body of POST /v1/login/verify.
type VerifyRequest struct {
	Code string `json:"code"`
}

// LoginResponse is returned by both login endpoints. Next is the page the
// caller should navigate to; Username is set when a second factor is
// required, for display on the code-entry page.
type LoginResponse struct {
	Status   string `json:"status"`
	Next     string `json:"next"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
}

// RegisterRequest is the body of POST /v1/users. Role is optional and only
// honoured for admin callers; anonymous registration always gets CUSTOMER.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// RegisterResponse echoes the created account.
type RegisterResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// ChangePasswordRequest is the body of POST /v1/users/password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// EnableTwoFactorResponse carries what an authenticator app needs. The
// secret is shown once; afterwards only the QR endpoint re-renders it.
type EnableTwoFactorResponse struct {
	Secret          string `json:"secret"`
	ProvisioningURI string `json:"provisioning_uri"`
}

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Uptime  string `json:"uptime,omitempty"`
}

// ErrorResponse is the generic error body. Description is intentionally
// vague for authentication failures.
type ErrorResponse struct {
	Code        string `json:"error"`
	Description string `json:"error_description"`
	Next        string `json:"next,omitempty"`
}
