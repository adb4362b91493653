package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/inkwellbooks/bookshop-login/internal/login/domain"
	"github.com/inkwellbooks/bookshop-login/pkg/loginsdk"
	"github.com/inkwellbooks/bookshop-login/pkg/slogx"
)

// HandleVerify handles POST /v1/login/verify
//
//	@Summary		Complete second factor
//	@Description	Answers the pending challenge staged by an earlier login on the same session. A wrong code leaves the challenge in place for retry until the attempt cap destroys it.
//	@Tags			Login
//	@Accept			json
//	@Produce		json
//	@Param			request	body		loginsdk.VerifyRequest	true	"six-digit TOTP code"
//	@Success		200		{object}	loginsdk.LoginResponse	"authenticated"
//	@Failure		400		{object}	loginsdk.ErrorResponse	"malformed request"
//	@Failure		401		{object}	loginsdk.ErrorResponse	"generic login failure"
//	@Failure		500		{object}	loginsdk.ErrorResponse	"internal server error"
//	@Router			/v1/login/verify [post].
func (h *LoginHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req loginsdk.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		loginsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	sid := currentSID(r)
	if sid == "" {
		// No session means nothing was staged; send the caller back to the
		// login page rather than an error page.
		log.Warn("verify without a session cookie")
		writeRejected(w, domain.Navigation{Route: domain.RouteLogin})
		return
	}

	outcome, err := h.AuthService.CompleteSecondFactor(ctx, sid, req.Code, time.Now())
	if err != nil {
		log.Error("second factor verification failed", "err", err)
		loginsdk.ErrServerError.WriteError(w)
		return
	}

	if outcome.Status == domain.StatusRejected && outcome.Reason == domain.ReasonNoPendingChallenge {
		log.Warn("verify with no pending challenge")
		writeRejected(w, domain.Navigation{Route: domain.RouteLogin})
		return
	}

	h.writeOutcome(w, r, outcome, []string{"pwd", "otp"})
}
