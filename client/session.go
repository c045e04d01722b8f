package client

import (
	"context"
	"net/http"
	"sync"
)

// SessionManager owns client identity. A session is anonymous: the first
// Bootstrap requests a fresh token, later calls reuse the one in hand.
// Ready flips true exactly once, after the first resolution attempt,
// whether or not it succeeded.
type SessionManager struct {
	api *api

	mu     sync.Mutex
	token  string
	userID string
	ready  bool

	// onSignOut hooks let dependent stores clear their state in the same
	// step as the session itself.
	onSignOut []func()
}

// NewSessionManager creates a manager for the given server base URL.
// Pass a nil httpClient to use a default with a ten second timeout.
func NewSessionManager(baseURL string, httpClient *http.Client) *SessionManager {
	return &SessionManager{api: newAPI(baseURL, httpClient)}
}

// Restore installs a previously issued token, as when the host application
// kept one across restarts. Bootstrap will then reuse it instead of
// requesting a new session.
func (m *SessionManager) Restore(token, userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.userID = userID
}

// Bootstrap resolves the session. With a token already in hand it is a
// no-op; otherwise it requests an anonymous session from the server.
// Either way Ready reports true afterwards.
func (m *SessionManager) Bootstrap(ctx context.Context) error {
	m.mu.Lock()
	if m.token != "" {
		m.ready = true
		m.mu.Unlock()
		return nil
	}
	m.mu.Unlock()

	var resp struct {
		Token  string `json:"token"`
		UserID string `json:"user_id"`
	}
	err := m.api.do(ctx, http.MethodPost, "/auth/anonymous", "", nil, &resp)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.ready = true
	if err != nil {
		return err
	}
	m.token = resp.Token
	m.userID = resp.UserID
	return nil
}

// Ready reports whether the first session resolution has completed.
func (m *SessionManager) Ready() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ready
}

// UserID returns the session's user id, or false without a session.
func (m *SessionManager) UserID() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.userID, m.userID != ""
}

// Token returns the session token, or false without a session.
func (m *SessionManager) Token() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.token != ""
}

// OnSignOut registers a hook run synchronously when SignOut succeeds.
// Stores use this to drop per-user state together with the identity.
func (m *SessionManager) OnSignOut(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onSignOut = append(m.onSignOut, fn)
}

// SignOut revokes the token server-side, then clears the identity and
// runs the registered hooks. A server failure leaves the session intact
// and is reported to the caller; there is no retry.
func (m *SessionManager) SignOut(ctx context.Context) error {
	token, ok := m.Token()
	if !ok {
		return ErrUnauthenticated
	}

	if err := m.api.do(ctx, http.MethodPost, "/auth/signout", token, nil, nil); err != nil {
		return err
	}

	m.mu.Lock()
	m.token = ""
	m.userID = ""
	hooks := append([]func(){}, m.onSignOut...)
	m.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
	return nil
}
