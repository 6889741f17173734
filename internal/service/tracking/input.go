package tracking

import "github.com/cyclesync/cyclesync-client/internal/domain"

// CycleInput is what the tracking form submits. Dates are ISO date strings,
// a blank end date means the cycle is still open.
type CycleInput struct {
	StartDate string
	EndDate   string
	Flow      string
}

// Entry converts the input into the wire entry. A blank end date becomes a
// nil pointer so it is encoded as an explicit null.
func (i CycleInput) Entry() domain.CycleEntry {
	entry := domain.CycleEntry{
		StartDate: i.StartDate,
		Flow:      domain.Flow(i.Flow),
	}
	if i.EndDate != "" {
		end := i.EndDate
		entry.EndDate = &end
	}
	return entry
}

// Validate checks the form before any request goes out.
func (i CycleInput) Validate() error {
	return i.Entry().Validate()
}
