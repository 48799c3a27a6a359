// Package presentation converts engine output into the chart- and
// table-ready structures consumed by the display collaborator: axis ticks,
// checkpoint gridlines, and formatted checkpoint rows. Display rounding
// happens here and nowhere else.
package presentation

import (
	"fmt"
	"math"

	"github.com/puvop/puvop/internal/domain/features"
	"github.com/puvop/puvop/internal/domain/riskcurve"
)

// Time axis units.
const (
	UnitYears  = "years"
	UnitMonths = "months"
)

const daysPerYear = 365

// DisplayConfig fixes the outcome-specific chart conventions.
type DisplayConfig struct {
	XLabel string
	YLabel string
	// TimeUnit selects tick labeling: year boundaries for long-horizon
	// outcomes, month boundaries for short ones.
	TimeUnit string
	// MaxDays is the right edge of the time axis.
	MaxDays float64
	// TickIntervalDays spaces the time ticks (365 for yearly, 30.4 monthly).
	TickIntervalDays float64
}

// DefaultSurvivalDisplay is the ten-year yearly-tick convention shared by
// the survival outcomes.
func DefaultSurvivalDisplay(yLabel string) DisplayConfig {
	return DisplayConfig{
		XLabel:           "Time from baseline assessment (years)",
		YLabel:           yLabel,
		TimeUnit:         UnitYears,
		MaxDays:          10 * daysPerYear,
		TickIntervalDays: daysPerYear,
	}
}

// Tick is one axis tick: position in data coordinates, label as displayed.
type Tick struct {
	Pos   float64 `json:"pos"`
	Label string  `json:"label"`
}

// SeriesPoint is one plotted point of the risk curve.
type SeriesPoint struct {
	Time float64 `json:"t"`
	Risk float64 `json:"risk"`
}

// Chart is the full plot-ready payload, excluding rendering mechanics.
type Chart struct {
	XLabel    string        `json:"x_label"`
	YLabel    string        `json:"y_label"`
	XTicks    []Tick        `json:"x_ticks"`
	YTicks    []Tick        `json:"y_ticks"`
	Gridlines []float64     `json:"gridlines"`
	Series    []SeriesPoint `json:"series"`
}

// TableRow is one formatted checkpoint estimate. Out-of-domain horizons
// render as "undefined" rather than a number.
type TableRow struct {
	Horizon string `json:"horizon"`
	Risk    string `json:"risk"`
}

// Assemble builds the chart and checkpoint table for a curve outcome. The
// series is expressed as risk (1 − survival); percentages are rounded to one
// decimal for display only.
func Assemble(curve riskcurve.Curve, table riskcurve.CheckpointTable, cfg DisplayConfig) (*Chart, []TableRow) {
	chart := &Chart{
		XLabel: cfg.XLabel,
		YLabel: cfg.YLabel,
		XTicks: timeTicks(cfg),
		YTicks: percentTicks(),
		Series: make([]SeriesPoint, len(curve)),
	}
	for i, p := range curve {
		chart.Series[i] = SeriesPoint{Time: p.Time, Risk: 1 - p.Survival}
	}
	for _, row := range table.Rows {
		chart.Gridlines = append(chart.Gridlines, row.HorizonDays)
	}

	rows := make([]TableRow, len(table.Rows))
	for i, row := range table.Rows {
		rows[i] = TableRow{Horizon: horizonLabel(row.HorizonDays, cfg.TimeUnit)}
		if row.OutOfDomain {
			rows[i].Risk = "undefined"
		} else {
			rows[i].Risk = FormatPercent(row.Risk)
		}
	}
	return chart, rows
}

// FormatPercent renders a probability as a percent string with one decimal.
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", math.Round(p*1000)/10)
}

func timeTicks(cfg DisplayConfig) []Tick {
	if cfg.TickIntervalDays <= 0 {
		return nil
	}
	var ticks []Tick
	for i := 0; ; i++ {
		pos := float64(i) * cfg.TickIntervalDays
		if pos > cfg.MaxDays {
			break
		}
		ticks = append(ticks, Tick{Pos: pos, Label: fmt.Sprintf("%d", i)})
	}
	return ticks
}

// percentTicks labels the risk axis 0–100% in steps of 10.
func percentTicks() []Tick {
	ticks := make([]Tick, 0, 11)
	for i := 0; i <= 10; i++ {
		ticks = append(ticks, Tick{Pos: float64(i) / 10, Label: fmt.Sprintf("%d", i*10)})
	}
	return ticks
}

func horizonLabel(days float64, unit string) string {
	switch unit {
	case UnitMonths:
		months := days / features.DaysPerMonth
		return pluralize(months, "month")
	default:
		years := days / daysPerYear
		return pluralize(years, "year")
	}
}

func pluralize(n float64, unit string) string {
	rounded := math.Round(n)
	var qty string
	if math.Abs(n-rounded) < 0.05 {
		qty = fmt.Sprintf("%d", int(rounded))
		if rounded == 1 {
			return qty + " " + unit
		}
	} else {
		qty = fmt.Sprintf("%.1f", n)
	}
	return qty + " " + unit + "s"
}
