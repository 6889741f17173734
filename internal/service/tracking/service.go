// Package tracking drives the cycle logging form on the tracking view.
package tracking

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/cyclesync/cyclesync-client/internal/adapter/api"
	"github.com/cyclesync/cyclesync-client/internal/domain"
)

// savedStatus is shown after a successful submit.
const savedStatus = "Saved! Add more data to improve predictions."

type gateway interface {
	LogCycle(ctx context.Context, access string, entry domain.CycleEntry) error
}

type sessionManager interface {
	Current() domain.Session
}

// Service is the tracking view's controller.
type Service struct {
	log      *slog.Logger
	gateway  gateway
	sessions sessionManager

	mu     sync.Mutex
	busy   bool
	status string
}

func NewService(gw gateway, sessions sessionManager, logger *slog.Logger) *Service {
	return &Service{
		log:      logger.With("service", "tracking"),
		gateway:  gw,
		sessions: sessions,
	}
}

// Busy reports whether a submit is in flight.
func (s *Service) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Status returns the text shown under the form: the saved confirmation or
// the last failure detail, empty before the first submit.
func (s *Service) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Submit validates the form and logs the cycle. It requires a session and
// allows one submit at a time.
func (s *Service) Submit(ctx context.Context, input CycleInput) error {
	if err := input.Validate(); err != nil {
		return fmt.Errorf("tracking.Submit: %w", err)
	}

	sess := s.sessions.Current()
	if !sess.Present() {
		return fmt.Errorf("tracking.Submit: %w", domain.ErrUnauthorized)
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return fmt.Errorf("tracking.Submit: %w", domain.ErrBusy)
	}
	s.busy = true
	s.mu.Unlock()

	err := s.gateway.LogCycle(ctx, sess.Tokens.Access, input.Entry())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	if err != nil {
		s.status = api.Detail(err)
		s.log.WarnContext(ctx, "log cycle failed", slog.String("detail", s.status))
		return fmt.Errorf("tracking.Submit: %w", err)
	}
	s.status = savedStatus
	return nil
}
