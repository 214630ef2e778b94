package flashclass

import (
	"context"
	"net/http"
	"sync"
)

// State is the session lifecycle state.
type State string

const (
	// StateUnknown is the pre-startup state, before CheckAuth has run.
	StateUnknown State = "unknown"
	// StateChecking is the startup credential validation window.
	StateChecking State = "checking"
	// StateAnonymous means no usable credential is present.
	StateAnonymous State = "anonymous"
	// StateAuthenticated means a credential is present and assumed valid.
	StateAuthenticated State = "authenticated"
)

// validTransitions is the session transition graph. Authenticated falls back
// to Anonymous on logout or unrecoverable refresh failure; Anonymous only
// advances through a successful login or registration.
var validTransitions = map[State][]State{
	StateUnknown:       {StateChecking, StateAnonymous, StateAuthenticated},
	StateChecking:      {StateAnonymous, StateAuthenticated},
	StateAnonymous:     {StateAuthenticated, StateAnonymous},
	StateAuthenticated: {StateAnonymous, StateAuthenticated},
}

func canTransition(from, to State) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// placeholderUsername is the best-effort identity used when a stored token
// is found at startup. There is no identity-confirmation endpoint to call,
// so an expired-but-present token reads as authenticated until the first
// protected call 401s.
const placeholderUsername = "authenticated_user"

// SessionManager is the single writer of session state: one instance for
// the application's lifetime, consumed read-only by route guards and UI
// code. Every operation resolves to a nil-or-structured error.
type SessionManager struct {
	client   *Client
	store    CredentialStore
	cfg      Config
	logger   Logger
	notifier Notifier

	mu       sync.Mutex
	state    State
	user     Claims
	loading  bool
	lastErr  string
	inFlight bool
}

var _ Authenticator = (*SessionManager)(nil)

func NewSessionManager(client *Client, cfg Config) *SessionManager {
	return &SessionManager{
		client:   client,
		store:    client.Store(),
		cfg:      cfg,
		logger:   defLogger{},
		notifier: noopNotifier{},
		state:    StateUnknown,
		loading:  true,
	}
}

func (m *SessionManager) WithLogger(logger Logger) *SessionManager {
	if logger != nil {
		m.logger = logger
	}
	return m
}

func (m *SessionManager) WithNotifier(notifier Notifier) *SessionManager {
	m.notifier = normalizeNotifier(notifier)
	return m
}

// State returns the current lifecycle state.
func (m *SessionManager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// User returns the current identity claims, nil when anonymous.
func (m *SessionManager) User() Claims {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// Loading reports whether an auth operation is in flight, including the
// initial startup check.
func (m *SessionManager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// LastError returns the previous operation's user-facing failure message.
func (m *SessionManager) LastError() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

func (m *SessionManager) IsAuthenticated() bool {
	return m.State() == StateAuthenticated
}

// CheckAuth runs the startup credential check. Token present means an
// optimistic transition to Authenticated with a placeholder identity; no
// server round trip happens here. Always ends with loading=false.
func (m *SessionManager) CheckAuth() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.transition(StateChecking); err != nil {
		m.loading = false
		return
	}

	token, ok := m.store.Get(m.cfg.GetAccessTokenKey())
	if ok && token != "" {
		m.user = Claims{"username": placeholderUsername}
		m.transition(StateAuthenticated)
	} else {
		m.transition(StateAnonymous)
	}
	m.loading = false
}

// Login authenticates with the backend and installs the returned
// credential. On failure the session stays anonymous and the returned error
// carries the most specific server message available.
func (m *SessionManager) Login(ctx context.Context, creds Credentials) error {
	if err := m.begin(); err != nil {
		return err
	}

	if err := creds.Validate(); err != nil {
		return m.fail(err, msgLoginFailed)
	}

	var resp loginResponse
	if err := m.client.do(ctx, http.MethodPost, m.cfg.GetLoginPath(), creds, &resp, msgLoginFailed); err != nil {
		m.logger.Info("login failed: %v", err)
		return m.fail(err, msgLoginFailed)
	}

	m.store.Set(m.cfg.GetAccessTokenKey(), resp.Token)
	if resp.TeacherID != "" {
		m.store.Set(m.cfg.GetTenantKey(), resp.TeacherID)
	}

	user := DecodeToken(resp.Token)

	m.mu.Lock()
	m.user = user
	m.lastErr = ""
	m.transition(StateAuthenticated)
	m.finish()
	m.mu.Unlock()
	return nil
}

// Register creates an account and signs the session in. A server-supplied
// user object wins over locally decoded claims.
func (m *SessionManager) Register(ctx context.Context, payload Registration) error {
	if err := m.begin(); err != nil {
		return err
	}

	if err := payload.Validate(); err != nil {
		return m.fail(err, msgRegisterFailed)
	}

	var resp registerResponse
	if err := m.client.do(ctx, http.MethodPost, m.cfg.GetRegisterPath(), payload, &resp, msgRegisterFailed); err != nil {
		m.logger.Info("registration failed: %v", err)
		return m.fail(err, msgRegisterFailed)
	}

	m.store.Set(m.cfg.GetAccessTokenKey(), resp.Token)

	user := resp.User
	if user == nil {
		user = DecodeToken(resp.Token)
	}

	m.mu.Lock()
	m.user = user
	m.lastErr = ""
	m.transition(StateAuthenticated)
	m.finish()
	m.mu.Unlock()
	return nil
}

// Logout clears the stored credentials and resets the session. Synchronous,
// never fails. The tenant id stays behind; it is not security sensitive.
func (m *SessionManager) Logout() {
	m.store.Remove(m.cfg.GetAccessTokenKey())
	m.store.Remove(m.cfg.GetRefreshTokenKey())

	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = nil
	m.lastErr = ""
	m.transition(StateAnonymous)
}

// UpdateProfile replaces the current identity with the server's returned
// representation. Does not change the authenticated/anonymous state.
func (m *SessionManager) UpdateProfile(ctx context.Context, payload ProfileUpdate) error {
	if err := m.begin(); err != nil {
		return err
	}

	if err := payload.Validate(); err != nil {
		return m.fail(err, msgProfileFailed)
	}

	var user Claims
	if err := m.client.do(ctx, http.MethodPut, m.cfg.GetProfilePath(), payload, &user, msgProfileFailed); err != nil {
		m.logger.Info("profile update failed: %v", err)
		return m.fail(err, msgProfileFailed)
	}

	m.mu.Lock()
	m.user = user
	m.lastErr = ""
	m.finish()
	m.mu.Unlock()
	return nil
}

// begin marks an operation in flight. Overlapping mutating operations are
// rejected explicitly rather than trusting the advisory loading flag.
func (m *SessionManager) begin() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.inFlight {
		return ErrOperationInProgress
	}
	m.inFlight = true
	m.loading = true
	m.lastErr = ""
	return nil
}

// fail records the user-facing message and resolves the operation.
func (m *SessionManager) fail(err error, fallback string) error {
	message := ErrorMessage(err)
	if message == "" {
		message = fallback
	}

	m.mu.Lock()
	m.lastErr = message
	m.finish()
	m.mu.Unlock()
	return err
}

// finish resolves loading/in-flight flags. Callers hold the lock.
func (m *SessionManager) finish() {
	m.inFlight = false
	m.loading = false
}

// transition applies a state change when the graph allows it. Callers hold
// the lock.
func (m *SessionManager) transition(to State) error {
	if !canTransition(m.state, to) {
		m.logger.Error("invalid session transition %s -> %s", m.state, to)
		return ErrInvalidTransition
	}
	m.state = to
	return nil
}
