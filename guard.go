package flashclass

// GuardDecision is the outcome of evaluating a navigation target against
// the current session state.
type GuardDecision string

const (
	// GuardRender means the target may render its content.
	GuardRender GuardDecision = "render"
	// GuardRedirectLogin redirects to the login entry point.
	GuardRedirectLogin GuardDecision = "redirect-login"
	// GuardRedirectLanding redirects an authenticated user away from a
	// public-only route (login, registration) to the landing page.
	GuardRedirectLanding GuardDecision = "redirect-landing"
	// GuardPending renders a neutral placeholder while the startup check is
	// still running, so no redirect flashes prematurely.
	GuardPending GuardDecision = "pending"
)

// EvaluateRoute is the route-guard policy, a pure function of the session
// state and the route's required-authentication flag.
func EvaluateRoute(state State, requireAuth bool) GuardDecision {
	switch state {
	case StateUnknown, StateChecking:
		return GuardPending
	case StateAuthenticated:
		if requireAuth {
			return GuardRender
		}
		return GuardRedirectLanding
	default:
		if requireAuth {
			return GuardRedirectLogin
		}
		return GuardRender
	}
}

// RouteGuard binds the policy to a session reader and the configured
// redirect targets.
type RouteGuard struct {
	session      SessionReader
	loginRoute   string
	landingRoute string
}

func NewRouteGuard(session SessionReader, cfg Config) *RouteGuard {
	return &RouteGuard{
		session:      session,
		loginRoute:   cfg.GetLoginRoute(),
		landingRoute: cfg.GetLandingRoute(),
	}
}

// Evaluate applies the policy to the session's current state.
func (g *RouteGuard) Evaluate(requireAuth bool) GuardDecision {
	return EvaluateRoute(g.session.State(), requireAuth)
}

// Resolve returns the redirect target for a decision, and whether the
// route's own content should render.
func (g *RouteGuard) Resolve(requireAuth bool) (target string, render bool) {
	switch g.Evaluate(requireAuth) {
	case GuardRender:
		return "", true
	case GuardRedirectLogin:
		return g.loginRoute, false
	case GuardRedirectLanding:
		return g.landingRoute, false
	default:
		return "", false
	}
}
