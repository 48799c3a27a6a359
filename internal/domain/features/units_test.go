package features

import (
	"math"
	"testing"
)

func TestCreatinineToMgDL(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		unit    string
		want    float64
		wantErr bool
	}{
		{"mg/dL passthrough", 0.5, UnitMgDL, 0.5, false},
		{"empty unit defaults to mg/dL", 1.2, "", 1.2, false},
		{"umol/L converts", 44.21, UnitUmolL, 0.5, false},
		{"unknown unit", 1.0, "mmol/L", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CreatinineToMgDL(tt.value, tt.unit)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCreatinineRoundTrip(t *testing.T) {
	mg, err := CreatinineToMgDL(176.84, UnitUmolL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	back, err := CreatinineFromMgDL(mg, UnitUmolL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(back-176.84) > 1e-9 {
		t.Errorf("round trip got %v, want 176.84", back)
	}
}

func TestMonthsToDays(t *testing.T) {
	if got := MonthsToDays(12); math.Abs(got-364.8) > 1e-9 {
		t.Errorf("12 months: got %v, want 364.8", got)
	}
	if got := MonthsToDays(0); got != 0 {
		t.Errorf("0 months: got %v, want 0", got)
	}
}
