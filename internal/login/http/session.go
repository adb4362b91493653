package http

import (
	"net/http"
	"time"

	"github.com/inkwellbooks/bookshop-login/pkg/cryptox"
)

const (
	// SIDCookie keys the anonymous session that pending second-factor
	// challenges are staged against.
	SIDCookie = "bookshop_sid"

	// SessionCookie carries the signed session token after authentication.
	SessionCookie = "bookshop_session"
)

// ensureSID returns the caller's anonymous session ID, minting and setting a
// fresh one when the request carries none.
func ensureSID(w http.ResponseWriter, r *http.Request, secure bool) (string, error) {
	if c, err := r.Cookie(SIDCookie); err == nil && c.Value != "" {
		return c.Value, nil
	}

	sid, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return "", err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SIDCookie,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	return sid, nil
}

// currentSID returns the anonymous session ID without minting one.
func currentSID(r *http.Request) string {
	if c, err := r.Cookie(SIDCookie); err == nil {
		return c.Value
	}
	return ""
}

func setSessionCookie(w http.ResponseWriter, token string, ttl time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearCookie(w http.ResponseWriter, name string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
