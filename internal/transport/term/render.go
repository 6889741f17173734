package term

import (
	"fmt"

	"github.com/cyclesync/cyclesync-client/internal/service/auth"
	"github.com/cyclesync/cyclesync-client/internal/view"
)

// render prints the active view.
func (t *Term) render() {
	switch t.svc.Router.Current() {
	case view.ViewLanding:
		t.renderLanding()
	case view.ViewDashboard:
		t.renderDashboard()
	case view.ViewTracking:
		t.renderTracking()
	case view.ViewAnalytics:
		fmt.Fprintln(t.out, "Analytics coming soon")
	case view.ViewSettings:
		t.renderSettings()
	}
}

func (t *Term) renderLanding() {
	fmt.Fprintln(t.out, "CycleSync Pro")
	fmt.Fprintln(t.out, "Intelligent Cycle Tracking for Modern Women")
	fmt.Fprintln(t.out)
	fmt.Fprintln(t.out, "  Free        $0/mo      Basic tracking, Limited history")
	fmt.Fprintln(t.out, "  Premium     $9.99/mo   Advanced predictions, Google Calendar sync, Analytics")
	fmt.Fprintln(t.out, "  Enterprise  $29.99/mo  API access, White-labeling, Custom features")
	fmt.Fprintln(t.out)

	mode := "login"
	if t.svc.Auth.Mode() == auth.ModeRegister {
		mode = "register"
	}
	fmt.Fprintf(t.out, "auth mode: %s\n", mode)
	if t.svc.Auth.Busy() {
		fmt.Fprintln(t.out, "Please wait...")
	}
	if msg := t.svc.Auth.LastError(); msg != "" {
		fmt.Fprintf(t.out, "error: %s\n", msg)
	}
}

func (t *Term) renderDashboard() {
	fmt.Fprintln(t.out, "Your Predictions")

	if t.svc.Dashboard.Loading() {
		fmt.Fprintln(t.out, "Loading...")
		return
	}
	if msg := t.svc.Dashboard.LastError(); msg != "" {
		fmt.Fprintf(t.out, "error: %s\n", msg)
		return
	}

	pred := t.svc.Dashboard.Prediction()
	if pred == nil {
		fmt.Fprintln(t.out, "Add a cycle to see predictions.")
		return
	}

	fmt.Fprintf(t.out, "  Next Period     %s\n", pred.NextPeriodStart)
	fmt.Fprintf(t.out, "  Ovulation       %s\n", pred.OvulationDate)
	start, end := pred.FertileWindowBounds()
	fmt.Fprintf(t.out, "  Fertile Window  %s - %s\n", start, end)
}

func (t *Term) renderTracking() {
	fmt.Fprintln(t.out, "Log a period")
	fmt.Fprintln(t.out, "log <start-date> <end-date|-> <light|medium|heavy>")
	if t.svc.Tracking.Busy() {
		fmt.Fprintln(t.out, "Saving...")
	}
	if status := t.svc.Tracking.Status(); status != "" {
		fmt.Fprintln(t.out, status)
	}
}

func (t *Term) renderSettings() {
	fmt.Fprintln(t.out, "Subscription")
	fmt.Fprintln(t.out, "  subscribe premium      Upgrade to Premium")
	fmt.Fprintln(t.out, "  subscribe enterprise   Upgrade to Enterprise")

	sess := t.svc.Sessions.Current()
	if sess.Present() {
		fmt.Fprintf(t.out, "signed in as %s\n", sess.User.Email)
	} else {
		fmt.Fprintln(t.out, "not signed in")
	}
}
