// Package view holds the navigation state of the client: which screen is
// active and how session transitions move it.
package view

import "fmt"

// View identifies one screen of the client.
type View string

const (
	ViewLanding   View = "landing"
	ViewDashboard View = "dashboard"
	ViewTracking  View = "tracking"
	ViewAnalytics View = "analytics"
	ViewSettings  View = "settings"
)

func (v View) String() string {
	return string(v)
}

// IsValid reports whether v is one of the known screens.
func (v View) IsValid() bool {
	switch v {
	case ViewLanding, ViewDashboard, ViewTracking, ViewAnalytics, ViewSettings:
		return true
	}
	return false
}

// ParseView converts a user-supplied name into a View.
func ParseView(s string) (View, error) {
	v := View(s)
	if !v.IsValid() {
		return "", fmt.Errorf("view: unknown view %q", s)
	}
	return v, nil
}
