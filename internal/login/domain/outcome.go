package domain

// OutcomeStatus tags the variant held by an Outcome. Exactly one variant is
// populated per authentication call.
type OutcomeStatus string

const (
	StatusAuthenticated        OutcomeStatus = "authenticated"
	StatusSecondFactorRequired OutcomeStatus = "second_factor_required"
	StatusRejected             OutcomeStatus = "rejected"
)

// RejectReason categorises a rejection. Reasons are for logs and routing only
// and must never be rendered to the end user verbatim.
type RejectReason string

const (
	ReasonInvalidCredentials     RejectReason = "invalid_credentials"
	ReasonInvalidCode            RejectReason = "invalid_code"
	ReasonTwoFactorNotConfigured RejectReason = "two_factor_not_configured"
	ReasonNoPendingChallenge     RejectReason = "no_pending_challenge"
	ReasonTooManyAttempts        RejectReason = "too_many_attempts"
)

// PrincipalKind is a closed set; the state machine never downcasts.
type PrincipalKind string

const (
	PrincipalAnonymous PrincipalKind = "anonymous"
	PrincipalUser      PrincipalKind = "user"
)

// Principal identifies who a session belongs to after authentication.
type Principal struct {
	Kind     PrincipalKind
	Username string
	Role     Role
}

// Anonymous is the principal of any session that has not completed
// authentication, including sessions holding a pending challenge.
func Anonymous() Principal {
	return Principal{Kind: PrincipalAnonymous}
}

// Outcome is the tagged result of an authentication call.
type Outcome struct {
	Status OutcomeStatus

	// Set when Status == StatusAuthenticated.
	Principal Principal

	// Set when Status == StatusSecondFactorRequired: the username whose first
	// factor succeeded, for display on the code-entry page.
	Username string

	// Set when Status == StatusRejected.
	Reason RejectReason
}

// Authenticated builds the terminal success outcome.
func Authenticated(username string, role Role) Outcome {
	return Outcome{
		Status: StatusAuthenticated,
		Principal: Principal{
			Kind:     PrincipalUser,
			Username: username,
			Role:     role,
		},
	}
}

// SecondFactorRequired signals that the caller must collect a TOTP code. It is
// a control-flow outcome, not a failure.
func SecondFactorRequired(username string) Outcome {
	return Outcome{Status: StatusSecondFactorRequired, Username: username}
}

// Rejected builds the terminal failure outcome.
func Rejected(reason RejectReason) Outcome {
	return Outcome{Status: StatusRejected, Reason: reason}
}
