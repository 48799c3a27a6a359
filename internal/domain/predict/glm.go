package predict

import (
	"math"

	"github.com/puvop/puvop/internal/domain/features"
)

// GLMPointModel is a fitted generalized linear model producing a scalar
// estimate: event probability through the logistic link, or an unbounded
// continuous value through the identity link.
type GLMPointModel struct {
	outcome   string
	kind      string // KindLogistic or KindLinear
	unit      string
	feats     []string
	coefs     []float64
	intercept float64
}

func (m *GLMPointModel) Outcome() string { return m.outcome }

func (m *GLMPointModel) Kind() string { return m.kind }

func (m *GLMPointModel) Unit() string { return m.unit }

func (m *GLMPointModel) FeatureNames() []string {
	out := make([]string, len(m.feats))
	copy(out, m.feats)
	return out
}

func (m *GLMPointModel) PredictPoint(vec *features.FeatureVector) (float64, error) {
	if err := checkSchema(m.feats, vec); err != nil {
		return 0, err
	}

	z := m.intercept
	for i, x := range ordered(m.feats, vec) {
		z += m.coefs[i] * x
	}

	if m.kind == KindLogistic {
		return sigmoid(z), nil
	}
	return z, nil
}

func sigmoid(x float64) float64 { return 1 / (1 + math.Exp(-x)) }
