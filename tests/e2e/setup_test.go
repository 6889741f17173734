//go:build e2e

package e2e_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/cyclesync/cyclesync-client/internal/adapter/api"
	"github.com/cyclesync/cyclesync-client/internal/adapter/localstore"
	"github.com/cyclesync/cyclesync-client/internal/service/auth"
	"github.com/cyclesync/cyclesync-client/internal/service/dashboard"
	"github.com/cyclesync/cyclesync-client/internal/service/settings"
	"github.com/cyclesync/cyclesync-client/internal/service/tracking"
	"github.com/cyclesync/cyclesync-client/internal/session"
	"github.com/cyclesync/cyclesync-client/internal/view"
)

// fakeAPI is an in-process stand-in for the CycleSync backend. Accounts are
// kept in memory; every other endpoint returns canned data the tests control.
type fakeAPI struct {
	mu         sync.Mutex
	accounts   map[string]string // email -> password
	prediction map[string]any
	cycleBody  []byte // raw body of the last POST /api/cycles
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		accounts: map[string]string{"seed@example.com": "seedpass"},
		prediction: map[string]any{
			"next_period_start": "2026-09-10",
			"ovulation_date":    "2026-08-27",
			"fertile_window": []string{
				"2026-08-23", "2026-08-24", "2026-08-25", "2026-08-26", "2026-08-27",
			},
		},
	}
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()

	writeJSON := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(v)
	}
	sessionBody := func(email string) map[string]any {
		return map[string]any{
			"user":   map[string]string{"id": "u-" + email, "email": email},
			"tokens": map[string]string{"access": "access-" + email, "refresh": "refresh-" + email},
		}
	}
	requireAuth := func(w http.ResponseWriter, r *http.Request) bool {
		if r.Header.Get("Authorization") == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Not authenticated"})
			return false
		}
		return true
	}

	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		json.NewDecoder(r.Body).Decode(&creds)
		f.mu.Lock()
		pass, ok := f.accounts[creds["email"]]
		f.mu.Unlock()
		if !ok || pass != creds["password"] {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Invalid credentials"})
			return
		}
		writeJSON(w, http.StatusOK, sessionBody(creds["email"]))
	})

	mux.HandleFunc("POST /api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		json.NewDecoder(r.Body).Decode(&creds)
		f.mu.Lock()
		_, exists := f.accounts[creds["email"]]
		if !exists {
			f.accounts[creds["email"]] = creds["password"]
		}
		f.mu.Unlock()
		if exists {
			writeJSON(w, http.StatusConflict, map[string]string{"detail": "Email already registered"})
			return
		}
		writeJSON(w, http.StatusCreated, sessionBody(creds["email"]))
	})

	mux.HandleFunc("GET /api/predictions", func(w http.ResponseWriter, r *http.Request) {
		if !requireAuth(w, r) {
			return
		}
		f.mu.Lock()
		pred := f.prediction
		f.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{"prediction": pred})
	})

	mux.HandleFunc("POST /api/cycles", func(w http.ResponseWriter, r *http.Request) {
		if !requireAuth(w, r) {
			return
		}
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.cycleBody = body
		f.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
	})

	mux.HandleFunc("POST /api/payments/subscribe", func(w http.ResponseWriter, r *http.Request) {
		if !requireAuth(w, r) {
			return
		}
		var req map[string]string
		json.NewDecoder(r.Body).Decode(&req)
		writeJSON(w, http.StatusOK, map[string]string{
			"checkoutUrl": "https://pay.example.com/checkout/" + req["price_id"],
		})
	})

	return mux
}

func (f *fakeAPI) lastCycleBody() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cycleBody
}

func (f *fakeAPI) setPrediction(p map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prediction = p
}

// testEnv wires the full client stack over the fake API, sharing one store
// so tests can simulate restarts.
type testEnv struct {
	API       *fakeAPI
	baseURL   string
	Store     *localstore.Memory
	Sessions  *session.Manager
	Router    *view.Router
	Auth      *auth.Service
	Dashboard *dashboard.Service
	Tracking  *tracking.Service
	Settings  *settings.Service
}

var testBilling = settings.BillingConfig{
	PremiumPriceID:    "price_premium_1",
	EnterprisePriceID: "price_enterprise_1",
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	fake := newFakeAPI()
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)

	env := &testEnv{API: fake, baseURL: srv.URL, Store: localstore.NewMemory()}
	env.restart(t)
	return env
}

// restart builds a fresh client stack over the existing store, simulating a
// process start.
func (e *testEnv) restart(t *testing.T) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	e.Sessions = session.NewManager(e.Store, logger)
	client := api.NewClient(e.baseURL, 0, logger)
	e.Router = view.NewRouter(logger)
	e.Sessions.Subscribe(e.Router.ObserveSession)

	e.Auth = auth.NewService(client, e.Sessions, logger)
	e.Dashboard = dashboard.NewService(client, e.Sessions, logger)
	e.Tracking = tracking.NewService(client, e.Sessions, logger)
	e.Settings = settings.NewService(client, e.Sessions, testBilling, logger)
}
