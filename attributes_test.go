package res1d

import (
	"testing"
	"time"
)

func TestResultAttributes(t *testing.T) {
	attrs := ResultAttributes{
		"numberOfEvents": 10,
		"enginePrefix":   "MIKE 1D",
		"totalRunoff":    "12.5",
		"ltsOutput":      true,
		"simulationEnd":  "2023-06-30T00:00:00Z",
	}

	if n, err := attrs.GetInt("numberOfEvents"); err != nil || n != 10 {
		t.Errorf("GetInt: got %v (%v)", n, err)
	}
	if s, err := attrs.GetString("enginePrefix"); err != nil || s != "MIKE 1D" {
		t.Errorf("GetString: got %v (%v)", s, err)
	}
	if f, err := attrs.GetFloat("totalRunoff"); err != nil || f != 12.5 {
		t.Errorf("GetFloat: got %v (%v)", f, err)
	}
	if b, err := attrs.GetBoolean("ltsOutput"); err != nil || !b {
		t.Errorf("GetBoolean: got %v (%v)", b, err)
	}

	end, err := attrs.GetTime("simulationEnd")
	if err != nil {
		t.Fatalf("GetTime: %v", err)
	}
	if !end.Equal(time.Date(2023, time.June, 30, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("GetTime: got %v", end)
	}

	if _, err := attrs.GetInt("missing"); err == nil {
		t.Error("expected error for missing attribute")
	}
	if v := attrs.GetIntOrDefault("missing", 7); v != 7 {
		t.Errorf("GetIntOrDefault: got %d, want 7", v)
	}
}

func TestResultAttributesDecode(t *testing.T) {
	type simulationPeriod struct {
		From string
		To   string
	}

	attrs := ResultAttributes{
		"period": map[string]any{
			"from": "2023-01-01",
			"to":   "2023-06-30",
		},
	}

	var period simulationPeriod
	if err := attrs.Decode("period", &period); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if period.From != "2023-01-01" || period.To != "2023-06-30" {
		t.Errorf("Decode: got %+v", period)
	}
}
