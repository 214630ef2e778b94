package flashclass

import (
	"os"
	"time"
)

const (
	baseURLVar         = "FLASHCLASS_API_BASE_URL"
	timeoutVar         = "FLASHCLASS_API_TIMEOUT"
	accessTokenKeyVar  = "FLASHCLASS_AUTH_TOKEN_KEY"
	refreshTokenKeyVar = "FLASHCLASS_REFRESH_TOKEN_KEY"
	tenantKeyVar       = "FLASHCLASS_TENANT_KEY"
)

// Default store key names. Usable with zero configuration.
const (
	DefaultAccessTokenKey  = "access_token"
	DefaultRefreshTokenKey = "refresh_token"
	DefaultTenantKey       = "teacherId"
)

const (
	defaultBaseURL      = "http://localhost:3000/api/v1"
	defaultTimeout      = 10 * time.Second
	defaultLoginPath    = "/auth/login"
	defaultRegisterPath = "/auth/register"
	defaultRefreshPath  = "/auth/refresh"
	defaultProfilePath  = "/auth/profile"
	defaultLoginRoute   = "/login"
	defaultLandingRoute = "/dashboard"
)

// EnvConfig reads client configuration from FLASHCLASS_* environment
// variables, falling back to the stated defaults.
type EnvConfig struct{}

var _ Config = EnvConfig{}

func (EnvConfig) GetBaseURL() string {
	return getEnv(baseURLVar, defaultBaseURL)
}

// GetTimeout returns the per-request bound. The variable accepts a Go
// duration string ("10s", "1500ms"); unparseable values fall back to the
// default rather than failing startup.
func (EnvConfig) GetTimeout() time.Duration {
	raw := os.Getenv(timeoutVar)
	if raw == "" {
		return defaultTimeout
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return defaultTimeout
	}
	return d
}

func (EnvConfig) GetAccessTokenKey() string {
	return getEnv(accessTokenKeyVar, DefaultAccessTokenKey)
}

func (EnvConfig) GetRefreshTokenKey() string {
	return getEnv(refreshTokenKeyVar, DefaultRefreshTokenKey)
}

func (EnvConfig) GetTenantKey() string {
	return getEnv(tenantKeyVar, DefaultTenantKey)
}

func (EnvConfig) GetLoginPath() string    { return defaultLoginPath }
func (EnvConfig) GetRegisterPath() string { return defaultRegisterPath }
func (EnvConfig) GetRefreshPath() string  { return defaultRefreshPath }
func (EnvConfig) GetProfilePath() string  { return defaultProfilePath }
func (EnvConfig) GetLoginRoute() string   { return defaultLoginRoute }
func (EnvConfig) GetLandingRoute() string { return defaultLandingRoute }

func getEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

// StaticConfig is a literal Config for embedding hosts and tests. Zero
// fields resolve to the same defaults as EnvConfig.
type StaticConfig struct {
	BaseURL         string
	Timeout         time.Duration
	AccessTokenKey  string
	RefreshTokenKey string
	TenantKey       string
	LoginPath       string
	RegisterPath    string
	RefreshPath     string
	ProfilePath     string
	LoginRoute      string
	LandingRoute    string
}

var _ Config = StaticConfig{}

func (c StaticConfig) GetBaseURL() string { return orDefault(c.BaseURL, defaultBaseURL) }

func (c StaticConfig) GetTimeout() time.Duration {
	if c.Timeout <= 0 {
		return defaultTimeout
	}
	return c.Timeout
}

func (c StaticConfig) GetAccessTokenKey() string {
	return orDefault(c.AccessTokenKey, DefaultAccessTokenKey)
}

func (c StaticConfig) GetRefreshTokenKey() string {
	return orDefault(c.RefreshTokenKey, DefaultRefreshTokenKey)
}

func (c StaticConfig) GetTenantKey() string { return orDefault(c.TenantKey, DefaultTenantKey) }

func (c StaticConfig) GetLoginPath() string    { return orDefault(c.LoginPath, defaultLoginPath) }
func (c StaticConfig) GetRegisterPath() string { return orDefault(c.RegisterPath, defaultRegisterPath) }
func (c StaticConfig) GetRefreshPath() string  { return orDefault(c.RefreshPath, defaultRefreshPath) }
func (c StaticConfig) GetProfilePath() string  { return orDefault(c.ProfilePath, defaultProfilePath) }
func (c StaticConfig) GetLoginRoute() string   { return orDefault(c.LoginRoute, defaultLoginRoute) }
func (c StaticConfig) GetLandingRoute() string { return orDefault(c.LandingRoute, defaultLandingRoute) }

func orDefault(val, def string) string {
	if val == "" {
		return def
	}
	return val
}
