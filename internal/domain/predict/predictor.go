// Package predict provides a uniform interface over the two fitted model
// families backing outcome predictions: curve predictors producing a full
// survival curve over time, and point predictors producing a scalar
// probability or continuous estimate. Handles are loaded once from
// serialized artifacts and are immutable; they are safe for concurrent use.
package predict

import (
	"errors"
	"fmt"
	"sort"

	"github.com/puvop/puvop/internal/domain/features"
	"github.com/puvop/puvop/internal/domain/riskcurve"
)

var (
	// ErrIncompatibleSchema marks a feature vector whose keys do not match
	// the model's expected schema exactly, by name and count. This is a
	// configuration defect, not a user input error.
	ErrIncompatibleSchema = errors.New("feature vector does not match model schema")

	ErrInvalidArtifact = errors.New("invalid model artifact")
)

// Point predictor output kinds.
const (
	KindCoxSurvival = "cox-survival"
	KindLogistic    = "logistic"
	KindLinear      = "linear"
)

// Predictor is an opaque pre-fitted model handle bound to one outcome.
type Predictor interface {
	Outcome() string
	// Kind reports the model family (cox-survival, logistic, linear).
	Kind() string
	// FeatureNames returns the exact input schema, in model order.
	FeatureNames() []string
}

// CurvePredictor produces the full discretized survival curve for a feature
// vector.
type CurvePredictor interface {
	Predictor
	PredictCurve(vec *features.FeatureVector) (riskcurve.Curve, error)
}

// PointPredictor produces a scalar estimate: a probability in [0,1] for
// logistic models, an unbounded continuous value for linear models. Unit
// names the semantic unit of the estimate.
type PointPredictor interface {
	Predictor
	PredictPoint(vec *features.FeatureVector) (float64, error)
	Unit() string
}

// checkSchema enforces the exact-match contract: every expected feature
// present, no extras.
func checkSchema(expected []string, vec *features.FeatureVector) error {
	if vec == nil {
		return fmt.Errorf("%w: nil vector", ErrIncompatibleSchema)
	}
	if vec.Len() != len(expected) {
		return fmt.Errorf("%w: expected %d features, got %d", ErrIncompatibleSchema, len(expected), vec.Len())
	}
	var missing []string
	for _, name := range expected {
		if _, ok := vec.Get(name); !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%w: missing %v", ErrIncompatibleSchema, missing)
	}
	return nil
}

// ordered extracts vector values in the model's feature order. checkSchema
// must have passed.
func ordered(names []string, vec *features.FeatureVector) []float64 {
	out := make([]float64, len(names))
	for i, name := range names {
		out[i], _ = vec.Get(name)
	}
	return out
}
