package domain

// Route names the pages the web front end can be sent to. The login service
// does not render these pages; it only tells the caller where to go next.
type Route string

const (
	RouteLogin           Route = "/v1/web/login"
	RouteLoginError      Route = "/v1/web/login?error=true"
	RouteSecondFactor    Route = "/v1/web/login/verify"
	RouteAdminLanding    Route = "/v1/web/books"
	RouteCustomerLanding Route = "/v1/web/cart"
	RouteHome            Route = "/v1/web/home"
)

// Navigation is the directive the HTTP layer hands back to the front end
// after an authentication attempt.
type Navigation struct {
	Route Route

	// Username is carried only when routing to the second-factor entry page,
	// for display ("enter the code for <username>").
	Username string
}
