package service

import "github.com/inkwellbooks/bookshop-login/internal/login/domain"

// RouteOutcome maps an authentication outcome to the next page the caller
// should load. Rejections all land on the same generic error page; the
// reason stays in the logs.
func RouteOutcome(o domain.Outcome) domain.Navigation {
	switch o.Status {
	case domain.StatusSecondFactorRequired:
		return domain.Navigation{Route: domain.RouteSecondFactor, Username: o.Username}
	case domain.StatusAuthenticated:
		return domain.Navigation{Route: landingFor(o.Principal.Role), Username: o.Principal.Username}
	default:
		return domain.Navigation{Route: domain.RouteLoginError}
	}
}

func landingFor(role domain.Role) domain.Route {
	switch role {
	case domain.RoleAdmin:
		return domain.RouteAdminLanding
	case domain.RoleCustomer:
		return domain.RouteCustomerLanding
	default:
		return domain.RouteHome
	}
}
