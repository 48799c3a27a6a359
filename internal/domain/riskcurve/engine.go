package riskcurve

import "errors"

// CheckpointRow is the estimate for one requested horizon. Survival and Risk
// are complementary (risk = 1 − survival) and unrounded; rounding happens at
// the presentation boundary only. OutOfDomain is set when the horizon lies
// beyond the curve's last observed time — the estimate is undefined there
// and both probabilities are zero-valued placeholders that must not be
// displayed.
type CheckpointRow struct {
	HorizonDays float64 `json:"horizon_days"`
	Survival    float64 `json:"survival"`
	Risk        float64 `json:"risk"`
	OutOfDomain bool    `json:"out_of_domain"`
}

// CheckpointTable is the per-request list of checkpoint estimates, one row
// per requested horizon, in the caller-specified order.
type CheckpointTable struct {
	Rows []CheckpointRow `json:"rows"`
	// Anomaly carries a data-integrity warning (monotonicity violation)
	// detected on the input curve. Rows are still interpolated.
	Anomaly error `json:"-"`
}

// Evaluate derives checkpoint estimates from a curve by piecewise-linear
// interpolation. Horizons before the first observed time take the first
// knot's value; horizons beyond the last observed time are reported
// out-of-domain, never extrapolated. Checkpoints are independent and keep
// their requested order.
func Evaluate(curve Curve, horizonsDays []float64) (CheckpointTable, error) {
	if err := curve.Validate(); err != nil {
		if !errors.Is(err, ErrNotMonotonic) {
			return CheckpointTable{}, err
		}
		// Monotonicity violations are flagged, not fatal: the interpolated
		// values are still the model's best output.
		table := evaluate(curve, horizonsDays)
		table.Anomaly = err
		return table, nil
	}
	return evaluate(curve, horizonsDays), nil
}

func evaluate(curve Curve, horizonsDays []float64) CheckpointTable {
	rows := make([]CheckpointRow, 0, len(horizonsDays))
	for _, h := range horizonsDays {
		row := CheckpointRow{HorizonDays: h}
		switch {
		case h > curve.End():
			row.OutOfDomain = true
		default:
			s := interpolate(curve, h)
			row.Survival = s
			row.Risk = 1 - s
		}
		rows = append(rows, row)
	}
	return CheckpointTable{Rows: rows}
}

// interpolate returns the survival probability at time h. h must be at most
// curve.End(); times before the first knot clamp to the first value.
func interpolate(curve Curve, h float64) float64 {
	if h <= curve[0].Time {
		return curve[0].Survival
	}
	for i := 1; i < len(curve); i++ {
		if h > curve[i].Time {
			continue
		}
		x0, y0 := curve[i-1].Time, curve[i-1].Survival
		x1, y1 := curve[i].Time, curve[i].Survival
		return y0 + (y1-y0)*(h-x0)/(x1-x0)
	}
	// h == curve.End() lands here only through floating-point edge cases.
	return curve[len(curve)-1].Survival
}
