package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/inkwellbooks/bookshop-login/internal/login/service"
	"github.com/inkwellbooks/bookshop-login/pkg/httpx"
	"github.com/inkwellbooks/bookshop-login/pkg/loginsdk"
	"github.com/inkwellbooks/bookshop-login/pkg/slogx"
	qrcode "github.com/skip2/go-qrcode"
)

const qrImageSize = 256

// TwoFactorHandler covers 2FA enrolment for the authenticated account.
type TwoFactorHandler struct {
	TwoFactorService *service.TwoFactorService
}

// HandleEnable handles POST /v1/2fa/enable
//
//	@Summary		Enable two-factor authentication
//	@Description	Turns 2FA on for the authenticated account and returns the secret plus otpauth URI. Re-enabling reuses the stored secret unless rotation is configured.
//	@Tags			TwoFactor
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	loginsdk.EnableTwoFactorResponse	"enrolment material"
//	@Failure		401	{object}	loginsdk.ErrorResponse				"invalid or missing session token"
//	@Failure		500	{object}	loginsdk.ErrorResponse				"internal server error"
//	@Router			/v1/2fa/enable [post].
func (h *TwoFactorHandler) HandleEnable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	username := httpx.UsernameFromCtx(ctx)
	if username == "" {
		loginsdk.ErrInvalidToken.WriteError(w)
		return
	}

	enrollment, err := h.TwoFactorService.EnableTwoFactor(ctx, username, time.Now())
	if err != nil {
		log.Error("failed to enable 2fa", "username", username, "err", err)
		loginsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, loginsdk.EnableTwoFactorResponse{
		Secret:          enrollment.Secret,
		ProvisioningURI: enrollment.ProvisioningURI,
	})
}

// HandleDisable handles POST /v1/2fa/disable
//
//	@Summary		Disable two-factor authentication
//	@Description	Turns 2FA off for the authenticated account. Secret retention follows server policy.
//	@Tags			TwoFactor
//	@Security		BearerAuth
//	@Success		204	"disabled"
//	@Failure		401	{object}	loginsdk.ErrorResponse	"invalid or missing session token"
//	@Failure		500	{object}	loginsdk.ErrorResponse	"internal server error"
//	@Router			/v1/2fa/disable [post].
func (h *TwoFactorHandler) HandleDisable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	username := httpx.UsernameFromCtx(ctx)
	if username == "" {
		loginsdk.ErrInvalidToken.WriteError(w)
		return
	}

	if err := h.TwoFactorService.DisableTwoFactor(ctx, username); err != nil {
		log.Error("failed to disable 2fa", "username", username, "err", err)
		loginsdk.ErrServerError.WriteError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleQR handles GET /v1/2fa/qr
//
//	@Summary		Two-factor enrolment QR code
//	@Description	Renders the account's otpauth provisioning URI as a PNG for scanning with an authenticator app.
//	@Tags			TwoFactor
//	@Security		BearerAuth
//	@Produce		png
//	@Success		200	{file}		binary					"QR code image"
//	@Failure		400	{object}	loginsdk.ErrorResponse	"2FA not enabled"
//	@Failure		401	{object}	loginsdk.ErrorResponse	"invalid or missing session token"
//	@Failure		500	{object}	loginsdk.ErrorResponse	"internal server error"
//	@Router			/v1/2fa/qr [get].
func (h *TwoFactorHandler) HandleQR(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	username := httpx.UsernameFromCtx(ctx)
	if username == "" {
		loginsdk.ErrInvalidToken.WriteError(w)
		return
	}

	uri, err := h.TwoFactorService.ProvisioningURI(ctx, username)
	if err != nil {
		if errors.Is(err, service.ErrTwoFactorNotEnabled) {
			loginsdk.ErrTwoFactorNotEnabled.WriteError(w)
			return
		}
		log.Error("failed to build provisioning uri", "username", username, "err", err)
		loginsdk.ErrServerError.WriteError(w)
		return
	}

	png, err := qrcode.Encode(uri, qrcode.Medium, qrImageSize)
	if err != nil {
		log.Error("failed to render qr code", "err", err)
		loginsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
