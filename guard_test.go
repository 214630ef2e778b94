package flashclass_test

import (
	"testing"

	flashclass "github.com/flashclass/go-flashclass"
	"github.com/stretchr/testify/assert"
)

func TestEvaluateRoute(t *testing.T) {
	tests := []struct {
		name        string
		state       flashclass.State
		requireAuth bool
		expected    flashclass.GuardDecision
	}{
		{"authenticated user on protected route", flashclass.StateAuthenticated, true, flashclass.GuardRender},
		{"anonymous user on protected route", flashclass.StateAnonymous, true, flashclass.GuardRedirectLogin},
		{"authenticated user on login page", flashclass.StateAuthenticated, false, flashclass.GuardRedirectLanding},
		{"anonymous user on login page", flashclass.StateAnonymous, false, flashclass.GuardRender},
		{"startup check pending on protected route", flashclass.StateChecking, true, flashclass.GuardPending},
		{"startup check pending on public route", flashclass.StateChecking, false, flashclass.GuardPending},
		{"unknown state never redirects", flashclass.StateUnknown, true, flashclass.GuardPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, flashclass.EvaluateRoute(tt.state, tt.requireAuth))
		})
	}
}

type stubSession struct {
	state flashclass.State
}

func (s stubSession) State() flashclass.State { return s.state }
func (s stubSession) User() flashclass.Claims { return nil }
func (s stubSession) Loading() bool           { return false }
func (s stubSession) LastError() string       { return "" }
func (s stubSession) IsAuthenticated() bool   { return s.state == flashclass.StateAuthenticated }

func TestRouteGuard_Resolve(t *testing.T) {
	cfg := flashclass.StaticConfig{}

	t.Run("authenticated user hitting login is sent to the dashboard", func(t *testing.T) {
		guard := flashclass.NewRouteGuard(stubSession{state: flashclass.StateAuthenticated}, cfg)

		target, render := guard.Resolve(false)
		assert.False(t, render)
		assert.Equal(t, "/dashboard", target)
	})

	t.Run("anonymous user hitting a protected route is sent to login", func(t *testing.T) {
		guard := flashclass.NewRouteGuard(stubSession{state: flashclass.StateAnonymous}, cfg)

		target, render := guard.Resolve(true)
		assert.False(t, render)
		assert.Equal(t, "/login", target)
	})

	t.Run("pending renders neither content nor redirect", func(t *testing.T) {
		guard := flashclass.NewRouteGuard(stubSession{state: flashclass.StateChecking}, cfg)

		target, render := guard.Resolve(true)
		assert.False(t, render)
		assert.Empty(t, target)
	})

	t.Run("custom routes are honored", func(t *testing.T) {
		custom := flashclass.StaticConfig{LoginRoute: "/signin", LandingRoute: "/home"}
		guard := flashclass.NewRouteGuard(stubSession{state: flashclass.StateAnonymous}, custom)

		target, _ := guard.Resolve(true)
		assert.Equal(t, "/signin", target)
	})
}
