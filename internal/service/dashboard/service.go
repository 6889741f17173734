// Package dashboard loads the cycle forecast shown on the dashboard view.
// Each activation of the view triggers exactly one fetch; a response from an
// older activation is discarded rather than overwriting newer state.
package dashboard

import (
	"context"
	"log/slog"
	"sync"

	"github.com/cyclesync/cyclesync-client/internal/adapter/api"
	"github.com/cyclesync/cyclesync-client/internal/domain"
)

type gateway interface {
	Predictions(ctx context.Context, access string) (*domain.Prediction, error)
}

type sessionManager interface {
	Current() domain.Session
}

// Service is the dashboard view's controller.
type Service struct {
	log      *slog.Logger
	gateway  gateway
	sessions sessionManager

	mu         sync.Mutex
	epoch      uint64
	loading    bool
	prediction *domain.Prediction
	lastErr    string
}

func NewService(gw gateway, sessions sessionManager, logger *slog.Logger) *Service {
	return &Service{
		log:      logger.With("service", "dashboard"),
		gateway:  gw,
		sessions: sessions,
	}
}

// Prediction returns the loaded forecast, nil while none is available.
func (s *Service) Prediction() *domain.Prediction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prediction
}

// Loading reports whether a fetch is in flight.
func (s *Service) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// LastError returns the text of the most recent fetch failure, empty when the
// last fetch succeeded.
func (s *Service) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Activate runs when the dashboard view becomes active. Without a session it
// resets to the signed-out prompt state and does not call the API. With one
// it fetches the forecast; if a newer activation started in the meantime the
// result is dropped.
func (s *Service) Activate(ctx context.Context) {
	sess := s.sessions.Current()

	s.mu.Lock()
	s.epoch++
	epoch := s.epoch
	if !sess.Present() {
		s.loading = false
		s.prediction = nil
		s.lastErr = ""
		s.mu.Unlock()
		return
	}
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()

	pred, err := s.gateway.Predictions(ctx, sess.Tokens.Access)

	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		s.log.DebugContext(ctx, "stale forecast dropped", slog.Uint64("epoch", epoch))
		return
	}
	s.loading = false
	if err != nil {
		s.lastErr = api.Detail(err)
		s.log.WarnContext(ctx, "forecast fetch failed", slog.String("detail", s.lastErr))
		return
	}
	s.prediction = pred
}
