package predict

import (
	"math"

	"github.com/puvop/puvop/internal/domain/features"
	"github.com/puvop/puvop/internal/domain/riskcurve"
)

// CoxCurveModel is a fitted proportional-hazards survival model exported as
// a baseline survival curve plus per-feature log-hazard coefficients
// centered on the training means: S(t|x) = S0(t)^exp(Σ βᵢ(xᵢ − μᵢ)).
type CoxCurveModel struct {
	outcome  string
	feats    []string
	coefs    []float64
	means    []float64
	times    []float64
	baseline []float64
}

func (m *CoxCurveModel) Outcome() string { return m.outcome }

func (m *CoxCurveModel) Kind() string { return KindCoxSurvival }

func (m *CoxCurveModel) FeatureNames() []string {
	out := make([]string, len(m.feats))
	copy(out, m.feats)
	return out
}

// Times returns the model's observed event-time grid in days.
func (m *CoxCurveModel) Times() []float64 {
	out := make([]float64, len(m.times))
	copy(out, m.times)
	return out
}

func (m *CoxCurveModel) PredictCurve(vec *features.FeatureVector) (riskcurve.Curve, error) {
	if err := checkSchema(m.feats, vec); err != nil {
		return nil, err
	}

	lp := 0.0
	for i, x := range ordered(m.feats, vec) {
		lp += m.coefs[i] * (x - m.means[i])
	}
	hazardRatio := math.Exp(lp)

	curve := make(riskcurve.Curve, len(m.times))
	for i, t := range m.times {
		s := math.Pow(m.baseline[i], hazardRatio)
		// Guard against float drift at the extremes.
		if s > 1 {
			s = 1
		} else if s < 0 {
			s = 0
		}
		curve[i] = riskcurve.Point{Time: t, Survival: s}
	}
	return curve, nil
}
