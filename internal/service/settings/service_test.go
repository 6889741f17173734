package settings

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/cyclesync/cyclesync-client/internal/domain"
)

type gatewayMock struct {
	SubscribeFunc func(ctx context.Context, access, priceID string) (string, error)
}

func (m *gatewayMock) Subscribe(ctx context.Context, access, priceID string) (string, error) {
	return m.SubscribeFunc(ctx, access, priceID)
}

type sessionsMock struct {
	CurrentFunc func() domain.Session
}

func (m *sessionsMock) Current() domain.Session {
	return m.CurrentFunc()
}

func signedIn() domain.Session {
	return domain.Session{
		User:   &domain.User{ID: "u1", Email: "a@b.c"},
		Tokens: domain.Tokens{Access: "tok", Refresh: "r"},
	}
}

var testBilling = BillingConfig{
	PremiumPriceID:    "price_premium_1",
	EnterprisePriceID: "price_enterprise_1",
}

func newTestService(gw gateway, sm sessionManager) *Service {
	return NewService(gw, sm, testBilling, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestService_Subscribe_ResolvesPriceID(t *testing.T) {
	t.Parallel()

	cases := []struct {
		plan  Plan
		price string
	}{
		{PlanPremium, "price_premium_1"},
		{PlanEnterprise, "price_enterprise_1"},
	}

	for _, tc := range cases {
		gw := &gatewayMock{
			SubscribeFunc: func(ctx context.Context, access, priceID string) (string, error) {
				if priceID != tc.price {
					t.Errorf("%s: priceID = %q, want %q", tc.plan, priceID, tc.price)
				}
				return "https://pay.example.com/c/1", nil
			},
		}
		svc := newTestService(gw, &sessionsMock{CurrentFunc: signedIn})

		url, err := svc.Subscribe(context.Background(), tc.plan)
		if err != nil {
			t.Fatalf("%s: Subscribe: %v", tc.plan, err)
		}
		if url != "https://pay.example.com/c/1" {
			t.Errorf("%s: url = %q", tc.plan, url)
		}
	}
}

func TestService_Subscribe_UnknownPlan(t *testing.T) {
	t.Parallel()

	gw := &gatewayMock{
		SubscribeFunc: func(ctx context.Context, access, priceID string) (string, error) {
			t.Error("gateway must not be called for an unknown plan")
			return "", nil
		},
	}
	svc := newTestService(gw, &sessionsMock{CurrentFunc: signedIn})

	_, err := svc.Subscribe(context.Background(), Plan("free"))
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("err = %v, want validation error", err)
	}
}

func TestService_Subscribe_RequiresSession(t *testing.T) {
	t.Parallel()

	gw := &gatewayMock{
		SubscribeFunc: func(ctx context.Context, access, priceID string) (string, error) {
			t.Error("gateway must not be called without a session")
			return "", nil
		},
	}
	svc := newTestService(gw, &sessionsMock{CurrentFunc: func() domain.Session { return domain.Session{} }})

	_, err := svc.Subscribe(context.Background(), PlanPremium)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}
}

func TestService_Subscribe_EmptyCheckoutURL(t *testing.T) {
	t.Parallel()

	gw := &gatewayMock{
		SubscribeFunc: func(ctx context.Context, access, priceID string) (string, error) {
			return "", nil
		},
	}
	svc := newTestService(gw, &sessionsMock{CurrentFunc: signedIn})

	url, err := svc.Subscribe(context.Background(), PlanPremium)
	if err != nil {
		t.Fatalf("Subscribe: %v, an empty checkout url is not a failure", err)
	}
	if url != "" {
		t.Errorf("url = %q, want empty", url)
	}
}

func TestService_Subscribe_BusyGuard(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	started := make(chan struct{})
	gw := &gatewayMock{
		SubscribeFunc: func(ctx context.Context, access, priceID string) (string, error) {
			close(started)
			<-release
			return "https://pay.example.com/c/1", nil
		},
	}
	svc := newTestService(gw, &sessionsMock{CurrentFunc: signedIn})

	done := make(chan error, 1)
	go func() {
		_, err := svc.Subscribe(context.Background(), PlanPremium)
		done <- err
	}()
	<-started

	if !svc.Busy() {
		t.Error("Busy = false while a checkout is in flight")
	}
	_, err := svc.Subscribe(context.Background(), PlanEnterprise)
	if !errors.Is(err, domain.ErrBusy) {
		t.Errorf("second subscribe err = %v, want ErrBusy", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first subscribe: %v", err)
	}
}
