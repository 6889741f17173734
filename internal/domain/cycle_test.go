package domain

import (
	"errors"
	"testing"
)

func TestFlow_IsValid(t *testing.T) {
	t.Parallel()

	for _, f := range []Flow{FlowLight, FlowMedium, FlowHeavy} {
		if !f.IsValid() {
			t.Errorf("%s should be valid", f)
		}
	}
	if Flow("spotting").IsValid() {
		t.Error("unknown flow should be invalid")
	}
	if Flow("").IsValid() {
		t.Error("empty flow should be invalid")
	}
}

func TestParseFlow(t *testing.T) {
	t.Parallel()

	f, err := ParseFlow("heavy")
	if err != nil {
		t.Fatalf("ParseFlow: %v", err)
	}
	if f != FlowHeavy {
		t.Errorf("ParseFlow = %s, want heavy", f)
	}

	if _, err := ParseFlow("spotting"); !errors.Is(err, ErrValidation) {
		t.Errorf("ParseFlow(spotting) err = %v, want validation error", err)
	}
}

func TestCycleEntry_Validate(t *testing.T) {
	t.Parallel()

	end := "2026-03-05"
	cases := []struct {
		name    string
		entry   CycleEntry
		wantErr bool
	}{
		{"closed cycle", CycleEntry{StartDate: "2026-03-01", EndDate: &end, Flow: FlowMedium}, false},
		{"open cycle", CycleEntry{StartDate: "2026-03-01", Flow: FlowLight}, false},
		{"missing start", CycleEntry{Flow: FlowMedium}, true},
		{"bad flow", CycleEntry{StartDate: "2026-03-01", Flow: Flow("spotting")}, true},
		{"empty flow", CycleEntry{StartDate: "2026-03-01"}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.entry.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tc.wantErr)
			}
			if tc.wantErr && !errors.Is(err, ErrValidation) {
				t.Errorf("err = %v, want validation sentinel", err)
			}
		})
	}
}

func TestPrediction_FertileWindowBounds(t *testing.T) {
	t.Parallel()

	full := Prediction{
		FertileWindow: []string{"2026-03-01", "2026-03-02", "2026-03-03", "2026-03-04", "2026-03-05"},
	}
	start, end := full.FertileWindowBounds()
	if start != "2026-03-01" || end != "2026-03-05" {
		t.Errorf("bounds = %q, %q; want first and fifth element", start, end)
	}

	// Fewer than five entries: end renders blank instead of panicking.
	short := Prediction{FertileWindow: []string{"2026-03-01", "2026-03-02"}}
	start, end = short.FertileWindowBounds()
	if start != "2026-03-01" {
		t.Errorf("start = %q, want first element", start)
	}
	if end != "" {
		t.Errorf("end = %q, want empty for short window", end)
	}

	start, end = Prediction{}.FertileWindowBounds()
	if start != "" || end != "" {
		t.Errorf("empty window bounds = %q, %q; want both empty", start, end)
	}
}
