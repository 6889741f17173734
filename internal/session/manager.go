package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cyclesync/cyclesync-client/internal/domain"
)

// Manager is the single source of truth for the current session and the only
// component that writes the session store. Establish and Clear update memory
// first and persist synchronously before returning.
type Manager struct {
	log   *slog.Logger
	store Store

	mu      sync.Mutex
	current domain.Session
	subs    []func(domain.Session)
}

// NewManager creates a manager over the given store. The session starts empty;
// call Restore to hydrate it from a previous run.
func NewManager(store Store, logger *slog.Logger) *Manager {
	return &Manager{
		log:   logger.With("component", "session"),
		store: store,
	}
}

// Subscribe registers a callback invoked after every session transition
// (restore, establish, clear). Callbacks run synchronously on the mutating
// call and must not call back into the manager.
func (m *Manager) Subscribe(fn func(domain.Session)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, fn)
}

// Current returns a snapshot of the in-memory session.
func (m *Manager) Current() domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Restore reads the persisted session and hydrates memory from it. An absent
// or malformed record leaves the session empty; Restore never surfaces an
// error to the caller.
func (m *Manager) Restore() {
	data, err := m.store.Load()
	if err != nil {
		if !errors.Is(err, ErrNoSession) {
			m.log.Warn("session restore failed, starting unauthenticated", slog.String("error", err.Error()))
		}
		return
	}

	var s domain.Session
	if err := json.Unmarshal(data, &s); err != nil {
		m.log.Warn("stored session is malformed, ignoring", slog.String("error", err.Error()))
		return
	}
	if err := s.Validate(); err != nil || !s.Present() {
		m.log.Warn("stored session is incomplete, ignoring")
		return
	}

	m.setAndNotify(s)
	m.log.Info("session restored", slog.String("user_id", s.User.ID))
}

// Establish sets the session to the given user and tokens as a single unit and
// persists it before returning. The in-memory transition completes even when
// persistence fails; that failure comes back as *PersistenceError so the UI
// can warn that the session will not survive a restart.
func (m *Manager) Establish(user *domain.User, tokens domain.Tokens) error {
	s := domain.Session{User: user, Tokens: tokens}
	if err := s.Validate(); err != nil {
		return fmt.Errorf("session.Establish: %w", err)
	}
	if !s.Present() {
		return fmt.Errorf("session.Establish: %w", domain.NewValidationError("user", "required"))
	}

	m.setAndNotify(s)

	data, err := json.Marshal(s)
	if err != nil {
		return &PersistenceError{Op: "encode", Err: err}
	}
	if err := m.store.Save(data); err != nil {
		m.log.Error("session persist failed", slog.String("error", err.Error()))
		return &PersistenceError{Op: "save", Err: err}
	}

	m.log.Info("session established", slog.String("user_id", user.ID))
	return nil
}

// Clear resets the session to empty and removes the persisted record. Clearing
// an already-empty session is a no-op with respect to observable state.
func (m *Manager) Clear() error {
	m.mu.Lock()
	wasPresent := m.current.Present()
	m.mu.Unlock()

	if wasPresent {
		m.setAndNotify(domain.Session{})
	}

	if err := m.store.Delete(); err != nil && !errors.Is(err, ErrNoSession) {
		m.log.Error("session delete failed", slog.String("error", err.Error()))
		return &PersistenceError{Op: "delete", Err: err}
	}

	if wasPresent {
		m.log.Info("session cleared")
	}
	return nil
}

// AccessExpiry reports when the current access credential expires, read from
// the token's registered claims without signature verification (the client
// holds no signing secret). ok is false when there is no session or the token
// carries no parseable expiry.
func (m *Manager) AccessExpiry() (expiry time.Time, ok bool) {
	cur := m.Current()
	if !cur.Present() {
		return time.Time{}, false
	}

	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(cur.Tokens.Access, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

func (m *Manager) setAndNotify(s domain.Session) {
	m.mu.Lock()
	m.current = s
	subs := make([]func(domain.Session), len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	for _, fn := range subs {
		fn(s)
	}
}
