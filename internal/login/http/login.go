package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/inkwellbooks/bookshop-login/internal/login/domain"
	"github.com/inkwellbooks/bookshop-login/internal/login/service"
	"github.com/inkwellbooks/bookshop-login/pkg/httpx"
	"github.com/inkwellbooks/bookshop-login/pkg/jwtx"
	"github.com/inkwellbooks/bookshop-login/pkg/loginsdk"
	"github.com/inkwellbooks/bookshop-login/pkg/slogx"
)

// LoginHandler drives the login flow endpoints.
type LoginHandler struct {
	AuthService *service.AuthService
	Signer      *jwtx.SessionSigner
	Issuer      string
	SessionTTL  time.Duration
	Secure      bool
}

// HandleLogin handles POST /v1/login
//
//	@Summary		Log in
//	@Description	Runs the full authentication attempt. Accounts with two-factor enabled and no code in the request get a second_factor_required response; the challenge is keyed to the caller's session cookie.
//	@Tags			Login
//	@Accept			json
//	@Produce		json
//	@Param			request	body		loginsdk.LoginRequest	true	"credentials, optionally with a TOTP code"
//	@Success		200		{object}	loginsdk.LoginResponse	"authenticated or second_factor_required"
//	@Failure		400		{object}	loginsdk.ErrorResponse	"malformed request"
//	@Failure		401		{object}	loginsdk.ErrorResponse	"generic login failure"
//	@Failure		500		{object}	loginsdk.ErrorResponse	"internal server error"
//	@Router			/v1/login [post].
func (h *LoginHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req loginsdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		loginsdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.Username == "" {
		loginsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	sid, err := ensureSID(w, r, h.Secure)
	if err != nil {
		log.Error("failed to mint session id", "err", err)
		loginsdk.ErrServerError.WriteError(w)
		return
	}

	outcome, err := h.AuthService.Authenticate(ctx, req.Username, req.Password, req.Code, sid, time.Now())
	if err != nil {
		log.Error("authentication failed", "err", err)
		loginsdk.ErrServerError.WriteError(w)
		return
	}

	// Inline codes mean both factors were presented in one request.
	amr := []string{"pwd"}
	if outcome.Status == domain.StatusAuthenticated && req.Code != "" {
		amr = append(amr, "otp")
	}
	h.writeOutcome(w, r, outcome, amr)
}

// writeOutcome maps a state-machine outcome to the HTTP response, issuing
// the session cookie on success. Reject reasons stay in the logs.
func (h *LoginHandler) writeOutcome(w http.ResponseWriter, r *http.Request, outcome domain.Outcome, amr []string) {
	log := slogx.FromContext(r.Context())
	nav := service.RouteOutcome(outcome)

	switch outcome.Status {
	case domain.StatusSecondFactorRequired:
		httpx.WriteJSON(w, http.StatusOK, loginsdk.LoginResponse{
			Status:   loginsdk.StatusSecondFactorRequired,
			Next:     string(nav.Route),
			Username: nav.Username,
		})

	case domain.StatusAuthenticated:
		claims := jwtx.NewSessionClaims(
			outcome.Principal.Username,
			string(outcome.Principal.Role),
			amr,
			h.Issuer,
			h.SessionTTL,
			time.Now(),
		)
		token, err := h.Signer.Sign(claims)
		if err != nil {
			log.Error("failed to sign session token", "err", err)
			loginsdk.ErrServerError.WriteError(w)
			return
		}
		setSessionCookie(w, token, h.SessionTTL, h.Secure)
		httpx.WriteJSON(w, http.StatusOK, loginsdk.LoginResponse{
			Status:   loginsdk.StatusAuthenticated,
			Next:     string(nav.Route),
			Username: outcome.Principal.Username,
			Role:     string(outcome.Principal.Role),
		})

	default:
		log.Warn("login rejected", "reason", string(outcome.Reason))
		writeRejected(w, nav)
	}
}

// writeRejected emits the uniform failure body. The next route points at the
// generic login error page regardless of reason.
func writeRejected(w http.ResponseWriter, nav domain.Navigation) {
	httpx.WriteJSON(w, http.StatusUnauthorized, map[string]string{
		"error":             loginsdk.ErrorCodeInvalidLogin,
		"error_description": "invalid login, try again",
		"next":              string(nav.Route),
	})
}

// HandleLogout handles POST /v1/login/logout
//
//	@Summary		Log out
//	@Description	Drops the session cookie and any pending second-factor challenge.
//	@Tags			Login
//	@Success		204	"logged out"
//	@Router			/v1/login/logout [post].
func (h *LoginHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if sid := currentSID(r); sid != "" {
		if err := h.AuthService.Logout(ctx, sid); err != nil {
			log.Error("failed to drop pending challenge", "err", err)
			loginsdk.ErrServerError.WriteError(w)
			return
		}
	}

	clearCookie(w, SessionCookie, h.Secure)
	clearCookie(w, SIDCookie, h.Secure)
	w.WriteHeader(http.StatusNoContent)
}
