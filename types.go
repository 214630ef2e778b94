package flashclass

import (
	"context"
	"fmt"
	"time"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// CredentialStore persists the credential record between runs. Reads of
// absent keys return ok=false, never an error.
type CredentialStore interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Remove(key string)
}

// Notifier receives user-facing failure messages from the request pipeline.
// UI hosts typically surface these as toasts.
type Notifier interface {
	Notify(message string)
}

// Config holds client options
type Config interface {
	GetBaseURL() string
	GetTimeout() time.Duration
	GetAccessTokenKey() string
	GetRefreshTokenKey() string
	GetTenantKey() string
	GetLoginPath() string
	GetRegisterPath() string
	GetRefreshPath() string
	GetProfilePath() string
	GetLoginRoute() string
	GetLandingRoute() string
}

// SessionReader is the read-only view of session state consumed by route
// guards and UI code.
type SessionReader interface {
	State() State
	User() Claims
	Loading() bool
	LastError() string
	IsAuthenticated() bool
}

// Authenticator holds the session lifecycle operations
type Authenticator interface {
	SessionReader
	CheckAuth()
	Login(ctx context.Context, creds Credentials) error
	Register(ctx context.Context, payload Registration) error
	Logout()
	UpdateProfile(ctx context.Context, payload ProfileUpdate) error
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] FLASHCLASS "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] FLASHCLASS "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] FLASHCLASS "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}

type noopNotifier struct{}

func (noopNotifier) Notify(string) {}

func normalizeNotifier(n Notifier) Notifier {
	if n == nil {
		return noopNotifier{}
	}
	return n
}

// NotifierFunc adapts a plain function to the Notifier interface.
type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) { f(message) }
