package view

import (
	"log/slog"
	"sync"

	"github.com/cyclesync/cyclesync-client/internal/domain"
)

// Router tracks the active view. Explicit navigation always wins; the only
// automatic move is landing to dashboard when the session appears.
type Router struct {
	log *slog.Logger

	mu      sync.Mutex
	current View

	// wasPresent remembers the last observed session state so the automatic
	// move fires on the empty-to-populated edge only, not on every populated
	// observation.
	wasPresent bool
}

// NewRouter starts on the landing view with no session observed.
func NewRouter(logger *slog.Logger) *Router {
	return &Router{
		log:     logger.With("component", "router"),
		current: ViewLanding,
	}
}

// Current returns the active view.
func (r *Router) Current() View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Navigate switches to the given view unconditionally.
func (r *Router) Navigate(v View) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == v {
		return
	}
	r.log.Debug("navigate", slog.String("from", r.current.String()), slog.String("to", v.String()))
	r.current = v
}

// ObserveSession feeds a session transition into the router. When the session
// goes from empty to populated while the landing view is active, the router
// moves to the dashboard. Every other transition leaves the view alone, in
// particular a session clearing never forces navigation.
func (r *Router) ObserveSession(s domain.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	present := s.Present()
	edge := present && !r.wasPresent
	r.wasPresent = present

	if edge && r.current == ViewLanding {
		r.log.Debug("session established, moving to dashboard")
		r.current = ViewDashboard
	}
}
