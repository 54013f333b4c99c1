package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/aidar/teamhub/internal/domain"
)

// Status is the lifecycle state of the session
type Status int

// Session lifecycle states
const (
	// StatusInitializing: a durable credential exists but identity has not
	// been resolved against the server yet
	StatusInitializing Status = iota

	// StatusResolved: the credential was accepted and the current user is known
	StatusResolved

	// StatusAnonymous: no usable session
	StatusAnonymous
)

// String returns a readable state name
func (s Status) String() string {
	switch s {
	case StatusInitializing:
		return "initializing"
	case StatusResolved:
		return "resolved"
	case StatusAnonymous:
		return "anonymous"
	}
	return "unknown"
}

// Session is an immutable snapshot of the session state.
// User is nil exactly when Status != StatusResolved.
type Session struct {
	Status Status
	User   *domain.UserProfile
}

// SessionManager owns the authentication state machine. It is the sole
// writer of the credential store: credentials appear on successful login and
// disappear on logout or on any Unauthorized outcome.
type SessionManager struct {
	api   *Client
	creds CredentialStore

	mu         sync.Mutex
	status     Status
	user       *domain.UserProfile
	resolveErr error
}

// NewSessionManager creates the session manager. When a durable credential
// exists the session starts in StatusInitializing and the caller is expected
// to call Start; otherwise it is StatusAnonymous with no network traffic.
func NewSessionManager(api *Client, creds CredentialStore) (*SessionManager, error) {
	token, err := creds.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load credential: %w", err)
	}

	m := &SessionManager{
		api:    api,
		creds:  creds,
		status: StatusAnonymous,
	}
	if token != "" {
		m.status = StatusInitializing
	}

	return m, nil
}

// Start resolves identity for a session that woke up with a stored
// credential. It is a no-op for an anonymous session.
func (m *SessionManager) Start(ctx context.Context) error {
	m.mu.Lock()
	initializing := m.status == StatusInitializing
	m.mu.Unlock()

	if !initializing {
		return nil
	}
	return m.ResolveIdentity(ctx)
}

// Login exchanges credentials for a token, stores it durably and resolves
// identity. A failed login leaves the previous state untouched; the
// credential is never partially applied.
func (m *SessionManager) Login(ctx context.Context, email, password string) error {
	token, err := m.api.Login(ctx, email, password)
	if err != nil {
		return err
	}

	if err := m.creds.Save(token); err != nil {
		return fmt.Errorf("failed to store credential: %w", err)
	}

	return m.ResolveIdentity(ctx)
}

// Register creates an account and immediately logs in with the same pair.
// Registration never yields a usable session on its own.
func (m *SessionManager) Register(ctx context.Context, email, password string) error {
	if err := m.api.Register(ctx, email, password); err != nil {
		return err
	}
	return m.Login(ctx, email, password)
}

// ResolveIdentity fetches the current user for the stored credential. This
// is the single place where credential invalidity is discovered: an
// Unauthorized outcome forces logout. Any other failure preserves the
// credential so a transient network error never logs the user out.
func (m *SessionManager) ResolveIdentity(ctx context.Context) error {
	profile, err := m.api.Me(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			m.ForceLogout()
			return err
		}

		m.mu.Lock()
		m.user = nil
		m.status = StatusAnonymous
		m.resolveErr = err
		m.mu.Unlock()
		return err
	}

	m.mu.Lock()
	m.user = profile
	m.status = StatusResolved
	m.resolveErr = nil
	m.mu.Unlock()
	return nil
}

// Logout clears the credential and identity. Purely local, always succeeds
// without a network round trip.
func (m *SessionManager) Logout() {
	m.ForceLogout()
}

// ForceLogout is the non-negotiable transition to StatusAnonymous, invoked
// on any Unauthorized outcome regardless of which operation produced it.
// Idempotent.
func (m *SessionManager) ForceLogout() {
	m.mu.Lock()
	m.user = nil
	m.status = StatusAnonymous
	m.resolveErr = nil
	m.mu.Unlock()

	// Креденшл уничтожается вместе с состоянием сессии
	_ = m.creds.Clear()
}

// Snapshot returns the current session state
func (m *SessionManager) Snapshot() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Session{Status: m.status, User: m.user}
}

// CurrentUser returns the resolved user, if any
func (m *SessionManager) CurrentUser() (*domain.UserProfile, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user, m.user != nil
}

// ResolveError returns the last non-auth identity resolution failure,
// recorded for display
func (m *SessionManager) ResolveError() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resolveErr
}
