package domain

// Flow represents the self-reported flow intensity of a cycle entry.
type Flow string

const (
	FlowLight  Flow = "light"
	FlowMedium Flow = "medium"
	FlowHeavy  Flow = "heavy"
)

func (f Flow) String() string { return string(f) }

func (f Flow) IsValid() bool {
	switch f {
	case FlowLight, FlowMedium, FlowHeavy:
		return true
	}
	return false
}

// ParseFlow converts user input into a Flow.
func ParseFlow(s string) (Flow, error) {
	f := Flow(s)
	if !f.IsValid() {
		return "", NewValidationError("flow", "flow must be light, medium or heavy")
	}
	return f, nil
}

// CycleEntry is a period log submitted to the API. Dates are ISO-8601
// (YYYY-MM-DD) strings as the API expects them; the client does not interpret
// them. A nil EndDate encodes as JSON null, never as an empty string.
type CycleEntry struct {
	StartDate string  `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Flow      Flow    `json:"flow"`
}

// Validate checks the entry before it goes on the wire.
func (e CycleEntry) Validate() error {
	if e.StartDate == "" {
		return NewValidationError("start_date", "start date is required")
	}
	if !e.Flow.IsValid() {
		return NewValidationError("flow", "flow must be light, medium or heavy")
	}
	return nil
}

// fertileWindowLen is the number of dates the API returns for a fertile
// window; the displayed bounds are the first and the fifth element.
const fertileWindowLen = 5

// Prediction is the cycle forecast consumed from the API. The client renders
// it verbatim and owns none of the math behind it.
type Prediction struct {
	NextPeriodStart string   `json:"next_period_start"`
	OvulationDate   string   `json:"ovulation_date"`
	FertileWindow   []string `json:"fertile_window"`
}

// FertileWindowBounds returns the displayed start and end of the fertile
// window. The API contract promises five dates; if fewer arrive, the missing
// bound is returned empty rather than panicking on the index.
func (p Prediction) FertileWindowBounds() (start, end string) {
	if len(p.FertileWindow) > 0 {
		start = p.FertileWindow[0]
	}
	if len(p.FertileWindow) >= fertileWindowLen {
		end = p.FertileWindow[fertileWindowLen-1]
	}
	return start, end
}
