package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name          string
		route         string
		authenticated bool
		want          Decision
	}{
		{"unauthenticated dashboard", RouteDashboard, false, RedirectLogin},
		{"unauthenticated workflows", RouteWorkflows, false, RedirectLogin},
		{"unauthenticated executions", RouteExecutions, false, RedirectLogin},
		{"unauthenticated credentials", RouteCredentials, false, RedirectLogin},
		{"unauthenticated templates", RouteTemplates, false, RedirectLogin},
		{"unauthenticated webhooks", RouteWebhooks, false, RedirectLogin},
		{"unauthenticated variables", RouteVariables, false, RedirectLogin},
		{"unauthenticated settings", RouteSettings, false, RedirectLogin},
		{"unauthenticated landing", RouteLanding, false, RedirectLogin},
		{"unauthenticated login", RouteLogin, false, Allow},
		{"unauthenticated signup", RouteSignup, false, Allow},
		{"unauthenticated forgot password", RouteForgotPassword, false, Allow},
		{"authenticated login", RouteLogin, true, RedirectLanding},
		{"authenticated signup", RouteSignup, true, RedirectLanding},
		{"authenticated change password", RouteChangePassword, true, Allow},
		{"authenticated dashboard", RouteDashboard, true, Allow},
		{"authenticated workflows", RouteWorkflows, true, Allow},
		{"exempt help", "/help", false, Allow},
		{"exempt version", "/version", false, Allow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.route, tt.authenticated))
		})
	}
}

func TestDecisionTarget(t *testing.T) {
	assert.Equal(t, RouteLogin, RedirectLogin.Target(RouteWorkflows))
	assert.Equal(t, RouteLanding, RedirectLanding.Target(RouteLogin))
	assert.Equal(t, RouteWebhooks, Allow.Target(RouteWebhooks))
}
