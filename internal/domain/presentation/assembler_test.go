package presentation

import (
	"math"
	"testing"

	"github.com/puvop/puvop/internal/domain/riskcurve"
)

func testTable() riskcurve.CheckpointTable {
	return riskcurve.CheckpointTable{Rows: []riskcurve.CheckpointRow{
		{HorizonDays: 365, Survival: 0.9, Risk: 0.1},
		{HorizonDays: 1095, Survival: 0.7, Risk: 0.3},
		{HorizonDays: 4000, OutOfDomain: true},
	}}
}

func TestAssemble(t *testing.T) {
	curve := riskcurve.Curve{
		{Time: 100, Survival: 1.0},
		{Time: 365, Survival: 0.9},
		{Time: 3650, Survival: 0.4},
	}
	cfg := DefaultSurvivalDisplay("Risk of developing CKD (%)")

	chart, rows := Assemble(curve, testTable(), cfg)

	if chart.YLabel != "Risk of developing CKD (%)" {
		t.Errorf("y label: got %q", chart.YLabel)
	}
	if len(chart.Series) != len(curve) {
		t.Fatalf("series has %d points, want %d", len(chart.Series), len(curve))
	}
	for i, p := range chart.Series {
		want := 1 - curve[i].Survival
		if math.Abs(p.Risk-want) > 1e-9 {
			t.Errorf("series %d: risk %v, want %v", i, p.Risk, want)
		}
	}
	if len(chart.Gridlines) != 3 {
		t.Fatalf("gridlines: got %d, want 3", len(chart.Gridlines))
	}
	if chart.Gridlines[0] != 365 || chart.Gridlines[2] != 4000 {
		t.Errorf("gridlines at checkpoint horizons, got %v", chart.Gridlines)
	}

	if len(rows) != 3 {
		t.Fatalf("rows: got %d, want 3", len(rows))
	}
	if rows[0].Risk != "10.0%" {
		t.Errorf("row 0 risk: got %q, want 10.0%%", rows[0].Risk)
	}
	if rows[0].Horizon != "1 year" {
		t.Errorf("row 0 horizon: got %q, want '1 year'", rows[0].Horizon)
	}
	if rows[1].Horizon != "3 years" {
		t.Errorf("row 1 horizon: got %q, want '3 years'", rows[1].Horizon)
	}
	if rows[2].Risk != "undefined" {
		t.Errorf("out-of-domain row: got %q, want undefined", rows[2].Risk)
	}
}

func TestTimeTicks_YearBoundaries(t *testing.T) {
	cfg := DefaultSurvivalDisplay("y")
	chart, _ := Assemble(riskcurve.Curve{{Time: 1, Survival: 1}}, riskcurve.CheckpointTable{}, cfg)

	if len(chart.XTicks) != 11 {
		t.Fatalf("x ticks: got %d, want 11", len(chart.XTicks))
	}
	if chart.XTicks[0].Pos != 0 || chart.XTicks[0].Label != "0" {
		t.Errorf("first tick: %+v", chart.XTicks[0])
	}
	if chart.XTicks[10].Pos != 3650 || chart.XTicks[10].Label != "10" {
		t.Errorf("last tick: %+v", chart.XTicks[10])
	}
}

func TestPercentTicks(t *testing.T) {
	chart, _ := Assemble(riskcurve.Curve{{Time: 1, Survival: 1}}, riskcurve.CheckpointTable{}, DefaultSurvivalDisplay("y"))

	if len(chart.YTicks) != 11 {
		t.Fatalf("y ticks: got %d, want 11", len(chart.YTicks))
	}
	if chart.YTicks[0].Label != "0" || chart.YTicks[10].Label != "100" {
		t.Errorf("y tick labels: first %q, last %q", chart.YTicks[0].Label, chart.YTicks[10].Label)
	}
	if chart.YTicks[5].Pos != 0.5 || chart.YTicks[5].Label != "50" {
		t.Errorf("middle tick: %+v", chart.YTicks[5])
	}
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0.1, "10.0%"},
		{0.1234, "12.3%"},
		{0.1235, "12.4%"},
		{0, "0.0%"},
		{1, "100.0%"},
		{0.005, "0.5%"},
	}
	for _, tt := range tests {
		if got := FormatPercent(tt.in); got != tt.want {
			t.Errorf("FormatPercent(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHorizonLabel_Months(t *testing.T) {
	cfg := DisplayConfig{TimeUnit: UnitMonths, MaxDays: 365, TickIntervalDays: 30.4}
	table := riskcurve.CheckpointTable{Rows: []riskcurve.CheckpointRow{
		{HorizonDays: 30.4, Survival: 0.95, Risk: 0.05},
		{HorizonDays: 182.4, Survival: 0.9, Risk: 0.1},
	}}
	_, rows := Assemble(riskcurve.Curve{{Time: 1, Survival: 1}}, table, cfg)

	if rows[0].Horizon != "1 month" {
		t.Errorf("row 0: got %q, want '1 month'", rows[0].Horizon)
	}
	if rows[1].Horizon != "6 months" {
		t.Errorf("row 1: got %q, want '6 months'", rows[1].Horizon)
	}
}
