// Package settings drives the subscription plans on the settings view.
package settings

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/cyclesync/cyclesync-client/internal/domain"
)

// Plan names a purchasable subscription tier.
type Plan string

const (
	PlanPremium    Plan = "premium"
	PlanEnterprise Plan = "enterprise"
)

// BillingConfig maps plans to the payment provider's price identifiers.
type BillingConfig struct {
	PremiumPriceID    string
	EnterprisePriceID string
}

type gateway interface {
	Subscribe(ctx context.Context, access, priceID string) (string, error)
}

type sessionManager interface {
	Current() domain.Session
}

// Service is the settings view's controller.
type Service struct {
	log      *slog.Logger
	gateway  gateway
	sessions sessionManager
	billing  BillingConfig

	mu   sync.Mutex
	busy bool
}

func NewService(gw gateway, sessions sessionManager, billing BillingConfig, logger *slog.Logger) *Service {
	return &Service{
		log:      logger.With("service", "settings"),
		gateway:  gw,
		sessions: sessions,
		billing:  billing,
	}
}

// Busy reports whether a checkout request is in flight.
func (s *Service) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// priceID resolves a plan to its configured price identifier.
func (s *Service) priceID(plan Plan) (string, error) {
	switch plan {
	case PlanPremium:
		return s.billing.PremiumPriceID, nil
	case PlanEnterprise:
		return s.billing.EnterprisePriceID, nil
	}
	return "", domain.NewValidationError("plan", fmt.Sprintf("unknown plan %q", plan))
}

// Subscribe starts a checkout for the plan and returns the checkout URL the
// caller should open. The URL may be empty when the provider acknowledges
// without a redirect. Requires a session, one request at a time.
func (s *Service) Subscribe(ctx context.Context, plan Plan) (string, error) {
	priceID, err := s.priceID(plan)
	if err != nil {
		return "", fmt.Errorf("settings.Subscribe: %w", err)
	}

	sess := s.sessions.Current()
	if !sess.Present() {
		return "", fmt.Errorf("settings.Subscribe: %w", domain.ErrUnauthorized)
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return "", fmt.Errorf("settings.Subscribe: %w", domain.ErrBusy)
	}
	s.busy = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	url, err := s.gateway.Subscribe(ctx, sess.Tokens.Access, priceID)
	if err != nil {
		s.log.WarnContext(ctx, "checkout failed",
			slog.String("plan", string(plan)), slog.String("error", err.Error()))
		return "", fmt.Errorf("settings.Subscribe: %w", err)
	}

	s.log.InfoContext(ctx, "checkout started", slog.String("plan", string(plan)))
	return url, nil
}
