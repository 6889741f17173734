// Package auth drives the sign-in form on the landing view: mode switching
// between login and register, one in-flight submit at a time, and the handoff
// of a successful response to the session manager.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/cyclesync/cyclesync-client/internal/adapter/api"
	"github.com/cyclesync/cyclesync-client/internal/domain"
	"github.com/cyclesync/cyclesync-client/internal/session"
)

// Mode selects which operation Submit performs.
type Mode string

const (
	ModeLogin    Mode = "login"
	ModeRegister Mode = "register"
)

type gateway interface {
	Login(ctx context.Context, email, password string) (*domain.Session, error)
	Register(ctx context.Context, email, password string) (*domain.Session, error)
}

type sessionManager interface {
	Establish(user *domain.User, tokens domain.Tokens) error
}

// Service is the landing view's auth controller.
type Service struct {
	log      *slog.Logger
	gateway  gateway
	sessions sessionManager

	mu      sync.Mutex
	mode    Mode
	busy    bool
	lastErr string
}

// NewService starts in login mode with a clear error slot.
func NewService(gw gateway, sessions sessionManager, logger *slog.Logger) *Service {
	return &Service{
		log:      logger.With("service", "auth"),
		gateway:  gw,
		sessions: sessions,
		mode:     ModeLogin,
	}
}

// Mode returns the active form mode.
func (s *Service) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// ToggleMode flips between login and register and clears the last error.
func (s *Service) ToggleMode() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode == ModeLogin {
		s.mode = ModeRegister
	} else {
		s.mode = ModeLogin
	}
	s.lastErr = ""
}

// Busy reports whether a submit is in flight.
func (s *Service) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// LastError returns the text of the most recent failure, empty when the last
// submit succeeded or none ran yet.
func (s *Service) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Submit validates the form and runs the operation the current mode selects.
// While a submit is in flight further submits fail with domain.ErrBusy. On
// success the session manager takes over; a persistence failure there is
// logged but does not undo the sign-in.
func (s *Service) Submit(ctx context.Context, input CredentialsInput) error {
	if err := input.Validate(); err != nil {
		return fmt.Errorf("auth.Submit: %w", err)
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return fmt.Errorf("auth.Submit: %w", domain.ErrBusy)
	}
	s.busy = true
	mode := s.mode
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	var (
		sess *domain.Session
		err  error
	)
	switch mode {
	case ModeRegister:
		sess, err = s.gateway.Register(ctx, input.Email, input.Password)
	default:
		sess, err = s.gateway.Login(ctx, input.Email, input.Password)
	}
	if err != nil {
		detail := api.Detail(err)
		s.mu.Lock()
		s.lastErr = detail
		s.mu.Unlock()
		s.log.WarnContext(ctx, "submit failed",
			slog.String("mode", string(mode)), slog.String("detail", detail))
		return fmt.Errorf("auth.Submit: %w", err)
	}

	s.mu.Lock()
	s.lastErr = ""
	s.mu.Unlock()

	if err := s.sessions.Establish(sess.User, sess.Tokens); err != nil {
		var perr *session.PersistenceError
		if errors.As(err, &perr) {
			// The in-memory session stands, the sign-in succeeded.
			s.log.WarnContext(ctx, "session persisted with error",
				slog.String("op", perr.Op), slog.String("error", perr.Err.Error()))
			return nil
		}
		return fmt.Errorf("auth.Submit: %w", err)
	}
	return nil
}
