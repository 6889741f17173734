package app

import (
	"context"
	"log/slog"
	"os"

	"github.com/cyclesync/cyclesync-client/internal/adapter/api"
	"github.com/cyclesync/cyclesync-client/internal/adapter/localstore"
	"github.com/cyclesync/cyclesync-client/internal/config"
	"github.com/cyclesync/cyclesync-client/internal/service/auth"
	"github.com/cyclesync/cyclesync-client/internal/service/dashboard"
	"github.com/cyclesync/cyclesync-client/internal/service/settings"
	"github.com/cyclesync/cyclesync-client/internal/service/tracking"
	"github.com/cyclesync/cyclesync-client/internal/session"
	"github.com/cyclesync/cyclesync-client/internal/transport/term"
	"github.com/cyclesync/cyclesync-client/internal/view"
)

// Run is the client entry point. It loads configuration, wires the session
// manager, API client, router and view controllers together, restores any
// persisted session, and hands control to the terminal loop.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting cyclesync client",
		slog.String("version", BuildVersion()),
		slog.String("api_base_url", cfg.API.BaseURL),
		slog.String("log_level", cfg.Log.Level),
	)

	store := localstore.NewFile(cfg.Session.Path)
	sessions := session.NewManager(store, logger)
	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, logger)

	router := view.NewRouter(logger)
	sessions.Subscribe(router.ObserveSession)

	svc := term.Services{
		Sessions:  sessions,
		Router:    router,
		Auth:      auth.NewService(client, sessions, logger),
		Dashboard: dashboard.NewService(client, sessions, logger),
		Tracking:  tracking.NewService(client, sessions, logger),
		Settings: settings.NewService(client, sessions, settings.BillingConfig{
			PremiumPriceID:    cfg.Billing.PremiumPriceID,
			EnterprisePriceID: cfg.Billing.EnterprisePriceID,
		}, logger),
	}

	// Restore after the router subscribes so a surviving session moves the
	// client straight to the dashboard.
	sessions.Restore()

	return term.New(svc, os.Stdin, os.Stdout, logger).Run(ctx)
}
