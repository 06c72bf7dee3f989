// Package session holds the signed-in identity of a board client process
// and decides which views it may open.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/sashafierce98/TGPTaskflow/internal/api"
)

var ErrNotSignedIn = errors.New("not signed in")

// Backend is the part of the API client the session needs.
type Backend interface {
	CreateSession(ctx context.Context, sessionID string) (*api.User, error)
	Me(ctx context.Context) (*api.User, error)
	Logout(ctx context.Context) error
}

type View int

const (
	// ViewPublic is the entry page.
	ViewPublic View = iota
	// ViewPending is the waiting-for-approval page.
	ViewPending
	// ViewDashboard covers the board list and every board view.
	ViewDashboard
	ViewAdmin
)

// Decision is where a gate sends the caller.
type Decision int

const (
	Allow Decision = iota
	Entry
	Pending
	Dashboard
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Entry:
		return "entry"
	case Pending:
		return "pending"
	case Dashboard:
		return "dashboard"
	}
	return "unknown"
}

// Manager is the single process-wide session. It is produced by Login or
// Restore and invalidated by Logout or an unauthorized response.
type Manager struct {
	backend Backend

	mu    sync.Mutex
	user  *api.User
	stale bool
}

func NewManager(backend Backend) *Manager {
	return &Manager{backend: backend}
}

// Login exchanges an identity provider session id for an app session.
func (m *Manager) Login(ctx context.Context, sessionID string) (*api.User, error) {
	user, err := m.backend.CreateSession(ctx, sessionID)
	if err != nil {
		m.clear()
		return nil, err
	}
	m.set(user)
	return user, nil
}

// Restore revalidates a saved session against the backend.
func (m *Manager) Restore(ctx context.Context) (*api.User, error) {
	user, err := m.backend.Me(ctx)
	if err != nil {
		if api.IsUnauthorized(err) {
			m.clear()
			return nil, ErrNotSignedIn
		}
		return nil, err
	}
	m.set(user)
	return user, nil
}

// Current returns the signed-in user as last seen.
func (m *Manager) Current() (*api.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil, false
	}
	u := *m.user
	return &u, true
}

// Logout ends the session on the backend. Local state is dropped even when
// the call fails.
func (m *Manager) Logout(ctx context.Context) error {
	err := m.backend.Logout(ctx)
	m.clear()
	return err
}

// Observe feeds a request error back into the session. 401 signs the
// session out; 403 marks the cached identity stale so the next gate asks
// the backend again.
func (m *Manager) Observe(err error) {
	switch {
	case api.IsUnauthorized(err):
		m.clear()
	case api.IsForbidden(err):
		m.mu.Lock()
		m.stale = true
		m.mu.Unlock()
	}
}

// Gate decides whether view may be opened with the current identity.
func (m *Manager) Gate(ctx context.Context, view View) (Decision, error) {
	if view == ViewPublic {
		return Allow, nil
	}

	m.mu.Lock()
	stale := m.stale && m.user != nil
	m.mu.Unlock()
	if stale {
		if _, err := m.Restore(ctx); err != nil && !errors.Is(err, ErrNotSignedIn) {
			return Entry, err
		}
	}

	user, ok := m.Current()
	if !ok {
		return Entry, nil
	}

	approved := user.Approved || user.IsAdmin()
	switch view {
	case ViewPending:
		if approved {
			return Dashboard, nil
		}
		return Allow, nil
	case ViewAdmin:
		if !approved {
			return Pending, nil
		}
		if !user.IsAdmin() {
			return Dashboard, nil
		}
		return Allow, nil
	default:
		if !approved {
			return Pending, nil
		}
		return Allow, nil
	}
}

func (m *Manager) set(user *api.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = user
	m.stale = false
}

func (m *Manager) clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = nil
	m.stale = false
}
