package flashclass

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

// Transport is the interceptor pipeline around every outbound request:
// bearer injection on the way out, one refresh-and-retry cycle on a 401 on
// the way back, and failure notification for everything except the login
// endpoint. It reads the credential store but never touches session state.
type Transport struct {
	base     http.RoundTripper
	store    CredentialStore
	cfg      Config
	notifier Notifier
	logger   Logger
}

var _ http.RoundTripper = (*Transport)(nil)

func NewTransport(store CredentialStore, cfg Config) *Transport {
	return &Transport{
		base:     http.DefaultTransport,
		store:    store,
		cfg:      cfg,
		notifier: noopNotifier{},
		logger:   defLogger{},
	}
}

func (t *Transport) WithLogger(logger Logger) *Transport {
	if logger != nil {
		t.logger = logger
	}
	return t
}

func (t *Transport) WithNotifier(notifier Notifier) *Transport {
	t.notifier = normalizeNotifier(notifier)
	return t
}

// WithBase overrides the underlying round tripper (tests, instrumentation).
func (t *Transport) WithBase(base http.RoundTripper) *Transport {
	if base != nil {
		t.base = base
	}
	return t
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := t.withBearer(req)

	res, err := t.base.RoundTrip(out)
	if err != nil {
		if !t.isLoginRequest(req) {
			t.notifier.Notify(msgGenericFailure)
		}
		return nil, err
	}

	if res.StatusCode == http.StatusUnauthorized {
		if retried, ok := t.refreshAndRetry(req); ok {
			drainBody(res)
			res = retried
		}
	}

	if res.StatusCode >= 400 && !t.isLoginRequest(req) {
		t.notifyFailure(res)
	}

	return res, nil
}

// withBearer clones the request and synchronously attaches the stored
// access token, when present.
func (t *Transport) withBearer(req *http.Request) *http.Request {
	out := req.Clone(req.Context())
	if token, ok := t.store.Get(t.cfg.GetAccessTokenKey()); ok && token != "" {
		out.Header.Set("Authorization", "Bearer "+token)
	}
	return out
}

// refreshAndRetry runs the recovery protocol for a 401: exchange the
// refresh token for a new access token, persist it, and reissue the
// original request exactly once with the new bearer. Returns ok=false when
// the original 401 should propagate instead; a failed refresh call also
// purges both tokens (local logout).
func (t *Transport) refreshAndRetry(req *http.Request) (*http.Response, bool) {
	refreshToken, ok := t.store.Get(t.cfg.GetRefreshTokenKey())
	if !ok || refreshToken == "" {
		// No recovery path; the rejected access token is dead weight.
		t.logger.Debug("401 without recovery: %v", ErrNoRefreshToken)
		t.store.Remove(t.cfg.GetAccessTokenKey())
		t.store.Remove(t.cfg.GetRefreshTokenKey())
		return nil, false
	}

	// The retried request needs a replayable body.
	if req.Body != nil && req.GetBody == nil {
		t.logger.Debug("cannot retry request with non-replayable body: %s %s", req.Method, req.URL.Path)
		return nil, false
	}

	newToken, err := t.refresh(req, refreshToken)
	if err != nil {
		t.logger.Info("token refresh failed, clearing local session: %v", err)
		t.store.Remove(t.cfg.GetAccessTokenKey())
		t.store.Remove(t.cfg.GetRefreshTokenKey())
		return nil, false
	}

	t.store.Set(t.cfg.GetAccessTokenKey(), newToken)

	retry := req.Clone(req.Context())
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, false
		}
		retry.Body = body
	}
	retry.Header.Set("Authorization", "Bearer "+newToken)

	res, err := t.base.RoundTrip(retry)
	if err != nil {
		return nil, false
	}
	return res, true
}

// refresh calls the refresh endpoint through the base round tripper so the
// exchange itself is never re-intercepted.
func (t *Transport) refresh(orig *http.Request, refreshToken string) (string, error) {
	payload, err := json.Marshal(refreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return "", err
	}

	url := strings.TrimRight(t.cfg.GetBaseURL(), "/") + t.cfg.GetRefreshPath()
	req, err := http.NewRequestWithContext(orig.Context(), http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := t.base.RoundTrip(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", apiError(res.StatusCode, body, msgGenericFailure)
	}

	var parsed refreshResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", err
	}
	if parsed.AccessToken == "" {
		return "", ErrUnableToDecodeToken
	}
	return parsed.AccessToken, nil
}

// notifyFailure peeks at the error body for a user-facing message and
// restores it so the caller can still read the response.
func (t *Transport) notifyFailure(res *http.Response) {
	body, err := io.ReadAll(res.Body)
	res.Body.Close()
	if err != nil {
		t.notifier.Notify(msgGenericFailure)
		res.Body = io.NopCloser(bytes.NewReader(nil))
		return
	}
	res.Body = io.NopCloser(bytes.NewReader(body))
	t.notifier.Notify(messageFromBody(body, msgGenericFailure))
}

// isLoginRequest mirrors the login-endpoint carve-out: the login form owns
// its own error presentation, a generic notification would double it.
func (t *Transport) isLoginRequest(req *http.Request) bool {
	return strings.Contains(req.URL.Path, t.cfg.GetLoginPath())
}

func drainBody(res *http.Response) {
	if res.Body == nil {
		return
	}
	io.Copy(io.Discard, res.Body)
	res.Body.Close()
}
