package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/inkwellbooks/bookshop-login/internal/login/service"
	"github.com/inkwellbooks/bookshop-login/internal/login/store"
	"github.com/inkwellbooks/bookshop-login/pkg/httpx"
	"github.com/inkwellbooks/bookshop-login/pkg/jwtx"
	"github.com/inkwellbooks/bookshop-login/pkg/slogx"

	_ "github.com/inkwellbooks/bookshop-login/api/login" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	signer       *jwtx.SessionSigner
	issuer       string
	sessionTTL   time.Duration
	secure       bool
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store            store.Store
	AuthService      *service.AuthService
	TwoFactorService *service.TwoFactorService
	UserService      *service.UserService
}

func NewRouter(
	signer *jwtx.SessionSigner,
	issuer, buildVersion string,
	sessionTTL time.Duration,
	secureCookies bool,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		signer:       signer,
		issuer:       issuer,
		sessionTTL:   sessionTTL,
		secure:       secureCookies,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerLogin()
	r.registerUsers()
	r.registerTwoFactor()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Inkwell Books Login Service API
//	@version		0.1.0
//	@description	Username/password login with optional TOTP two-factor authentication for the Inkwell Books shop.
//	@description
//	@description				Authenticated sessions are carried in an HS256-signed cookie; API clients may instead send it as a bearer token.
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerLogin() {
	h := &LoginHandler{
		AuthService: r.AuthService,
		Signer:      r.signer,
		Issuer:      r.issuer,
		SessionTTL:  r.sessionTTL,
		Secure:      r.secure,
	}

	// Both login endpoints carry JSON bodies, so rate limiting keys on IP
	// rather than a form field.
	r.Mux.Handle("POST /v1/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// Strict limit: each request is a TOTP guess.
	r.Mux.Handle("POST /v1/login/verify",
		httpx.Chain(http.HandlerFunc(h.HandleVerify),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("POST /v1/login/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}

	// Registration is public; the optional session lets admins assign roles.
	r.Mux.Handle("POST /v1/users",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.OptionalAuthnMiddleware(r.signer, SessionCookie),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("POST /v1/users/password",
		httpx.Chain(http.HandlerFunc(h.HandleChangePassword),
			httpx.AuthnMiddleware(r.signer, SessionCookie),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerTwoFactor() {
	h := &TwoFactorHandler{TwoFactorService: r.TwoFactorService}

	securedEnable := httpx.Chain(http.HandlerFunc(h.HandleEnable),
		httpx.AuthnMiddleware(r.signer, SessionCookie),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	securedDisable := httpx.Chain(http.HandlerFunc(h.HandleDisable),
		httpx.AuthnMiddleware(r.signer, SessionCookie),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	securedQR := httpx.Chain(http.HandlerFunc(h.HandleQR),
		httpx.AuthnMiddleware(r.signer, SessionCookie),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	r.Mux.Handle("POST /v1/2fa/enable", securedEnable)
	r.Mux.Handle("POST /v1/2fa/disable", securedDisable)
	r.Mux.Handle("GET /v1/2fa/qr", securedQR)
}

func (r *Router) registerSystem() {
	// Monitoring systems may poll these frequently.
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
