// Package riskcurve holds the time-to-event estimation core: the discrete
// survival curve type and the checkpoint interpolation engine.
package riskcurve

import (
	"errors"
	"fmt"
)

var (
	// ErrNotMonotonic marks a curve whose survival probability increases
	// over time. Survival curves never increase; a violation points at a
	// corrupted model artifact.
	ErrNotMonotonic = errors.New("survival curve is not monotonic non-increasing")

	ErrEmptyCurve = errors.New("survival curve has no points")
)

// Point is one (time, survival probability) knot of a discrete curve. Time
// is measured in days from baseline assessment.
type Point struct {
	Time     float64 `json:"t"`
	Survival float64 `json:"survival"`
}

// Curve is an ordered discrete survival curve spanning the model's observed
// time horizon. It is request-scoped and derived, never persisted.
type Curve []Point

// Start returns the first observed time.
func (c Curve) Start() float64 {
	if len(c) == 0 {
		return 0
	}
	return c[0].Time
}

// End returns the last observed time; checkpoint horizons beyond it are out
// of domain.
func (c Curve) End() float64 {
	if len(c) == 0 {
		return 0
	}
	return c[len(c)-1].Time
}

// Validate checks structural invariants: at least one point, strictly
// increasing times, survival within [0,1] and non-increasing. A
// monotonicity violation is reported with the offending knot index so the
// caller can flag the anomaly without discarding the curve.
func (c Curve) Validate() error {
	if len(c) == 0 {
		return ErrEmptyCurve
	}
	for i, p := range c {
		if p.Survival < 0 || p.Survival > 1 {
			return fmt.Errorf("survival %v at knot %d is outside [0,1]", p.Survival, i)
		}
		if i == 0 {
			continue
		}
		if c[i-1].Time >= p.Time {
			return fmt.Errorf("times are not strictly increasing at knot %d", i)
		}
		if p.Survival > c[i-1].Survival {
			return fmt.Errorf("%w: knot %d (t=%v)", ErrNotMonotonic, i, p.Time)
		}
	}
	return nil
}
