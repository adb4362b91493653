package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/inkwellbooks/bookshop-login/internal/login/domain"
	"github.com/inkwellbooks/bookshop-login/internal/login/service"
	"github.com/inkwellbooks/bookshop-login/pkg/httpx"
	"github.com/inkwellbooks/bookshop-login/pkg/loginsdk"
	"github.com/inkwellbooks/bookshop-login/pkg/slogx"
)

// UsersHandler covers account registration and password changes.
type UsersHandler struct {
	UserService *service.UserService
}

// HandleRegister handles POST /v1/users
//
//	@Summary		Register an account
//	@Description	Creates a new account. Anonymous callers always get the CUSTOMER role; a logged-in admin may set any role.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		loginsdk.RegisterRequest	true	"new account"
//	@Success		201		{object}	loginsdk.RegisterResponse	"created account"
//	@Failure		400		{object}	loginsdk.ErrorResponse		"invalid username or weak password"
//	@Failure		409		{object}	loginsdk.ErrorResponse		"username taken"
//	@Failure		500		{object}	loginsdk.ErrorResponse		"internal server error"
//	@Router			/v1/users [post].
func (h *UsersHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req loginsdk.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		loginsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	// Non-admin callers cannot pick a role.
	role := domain.RoleCustomer
	if req.Role != "" && req.Role != string(domain.RoleCustomer) {
		callerRole, _ := ctx.Value(httpx.CtxKeyRole).(string)
		if callerRole != string(domain.RoleAdmin) {
			loginsdk.ErrInvalidRequest.WriteError(w)
			return
		}
		parsed, err := domain.ParseRole(req.Role)
		if err != nil {
			loginsdk.ErrInvalidRequest.WriteError(w)
			return
		}
		role = parsed
	}

	user, err := h.UserService.Register(ctx, req.Username, req.Password, role, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameTaken):
			loginsdk.ErrUsernameTaken.WriteError(w)
		case errors.Is(err, service.ErrInvalidUsername), errors.Is(err, service.ErrWeakPassword):
			(&loginsdk.APIError{
				StatusCode:  http.StatusBadRequest,
				Code:        loginsdk.ErrorCodeInvalidRequest,
				Description: err.Error(),
			}).WriteError(w)
		default:
			log.Error("failed to register user", "err", err)
			loginsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, loginsdk.RegisterResponse{
		Username: user.Username,
		Role:     string(user.Role),
	})
}

// HandleChangePassword handles POST /v1/users/password
//
//	@Summary		Change password
//	@Description	Re-hashes the authenticated account's password under the currently configured algorithm.
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Param			request	body	loginsdk.ChangePasswordRequest	true	"current and new password"
//	@Success		204		"password changed"
//	@Failure		400		{object}	loginsdk.ErrorResponse	"wrong current password or weak new one"
//	@Failure		401		{object}	loginsdk.ErrorResponse	"invalid or missing session token"
//	@Failure		500		{object}	loginsdk.ErrorResponse	"internal server error"
//	@Router			/v1/users/password [post].
func (h *UsersHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	username := httpx.UsernameFromCtx(ctx)
	if username == "" {
		loginsdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req loginsdk.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		loginsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	if err := h.UserService.ChangePassword(ctx, username, req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrWeakPassword) || errors.Is(err, service.ErrUnknownUser) {
			loginsdk.ErrInvalidRequest.WriteError(w)
			return
		}
		// Wrong current password gets a vague response; detail goes to the
		// logs only.
		log.Warn("password change failed", "username", username, "err", err)
		(&loginsdk.APIError{
			StatusCode:  http.StatusBadRequest,
			Code:        loginsdk.ErrorCodeInvalidRequest,
			Description: "password change failed",
		}).WriteError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
