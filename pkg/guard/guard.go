// Package guard gates navigation on token presence.
//
// The guard is a pure function of (route, authenticated): it never makes a
// network round-trip and never inspects the token beyond presence. Both the
// interactive router and the command gate consult it before doing anything.
package guard

import "strings"

// Routes recognized by the console. These mirror the navigable sections of
// the dashboard plus the auth flows.
const (
	RouteLogin          = "/auth/login"
	RouteSignup         = "/auth/signup"
	RouteForgotPassword = "/auth/forgot-password"
	RouteChangePassword = "/auth/change-password"

	RouteLanding     = "/"
	RouteDashboard   = "/dashboard"
	RouteWorkflows   = "/workflows"
	RouteExecutions  = "/executions"
	RouteCredentials = "/credentials"
	RouteTemplates   = "/templates"
	RouteWebhooks    = "/webhooks"
	RouteVariables   = "/variables"
	RouteSettings    = "/settings"
)

// Decision is the guard's verdict for a navigation attempt.
type Decision int

const (
	// Allow lets the navigation through unchanged.
	Allow Decision = iota
	// RedirectLogin sends an unauthenticated visitor to the login route.
	RedirectLogin
	// RedirectLanding sends an authenticated visitor away from the auth
	// screens.
	RedirectLanding
)

// Target returns the route a redirect decision points at, or the requested
// route when the navigation is allowed.
func (d Decision) Target(requested string) string {
	switch d {
	case RedirectLogin:
		return RouteLogin
	case RedirectLanding:
		return RouteLanding
	default:
		return requested
	}
}

// exempt routes pass through regardless of session state, the same way
// static assets and API paths bypass the original matcher.
var exemptPrefixes = []string{"/help", "/version"}

func isExempt(route string) bool {
	for _, prefix := range exemptPrefixes {
		if strings.HasPrefix(route, prefix) {
			return true
		}
	}

	return false
}

func isAuthRoute(route string) bool {
	return strings.HasPrefix(route, "/auth")
}

// Decide applies the guard rules:
//
//   - auth routes: an authenticated visitor asking for login or signup is
//     sent to the landing route, everything else passes;
//   - exempt routes always pass;
//   - any other route requires a token, otherwise the visitor is sent to
//     the login route.
func Decide(route string, authenticated bool) Decision {
	if isAuthRoute(route) {
		if authenticated && (route == RouteLogin || route == RouteSignup) {
			return RedirectLanding
		}

		return Allow
	}

	if isExempt(route) {
		return Allow
	}

	if !authenticated {
		return RedirectLogin
	}

	return Allow
}
