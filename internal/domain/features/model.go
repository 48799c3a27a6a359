// Package features maps raw user-entered clinical values into the exact
// named feature schemas the fitted outcome models expect: domain validation,
// unit conversion, and derived-feature transforms. Building a vector is a
// pure function of its inputs.
package features

import "fmt"

// Outcome identifiers. Each id has exactly one input schema and one fitted
// model artifact.
const (
	OutcomeCKD            = "ckd"             // CKD progression-free survival
	OutcomeRRT            = "rrt"             // RRT-free survival
	OutcomeCIC            = "cic"             // CIC-free survival
	OutcomeAnyProgression = "any-progression" // probability of any renal-function decline
	OutcomeEGFR12M        = "egfr-12m"        // projected eGFR at next follow-up
)

// FieldError describes a raw input that is missing, out of its declared
// domain, or otherwise incompatible with the target schema. It is returned
// to the collecting collaborator for re-prompting; a required field is never
// silently defaulted.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: %s", e.Field, e.Reason)
}

// FeatureVector is an ordered mapping from model feature name to numeric
// value. Order follows the schema declaration, which matters to callers that
// serialize the vector for display or audit.
type FeatureVector struct {
	names  []string
	values map[string]float64
}

func NewVector(capacity int) *FeatureVector {
	return &FeatureVector{
		names:  make([]string, 0, capacity),
		values: make(map[string]float64, capacity),
	}
}

// Set adds or overwrites a feature value, preserving first-set order.
func (v *FeatureVector) Set(name string, value float64) {
	if _, ok := v.values[name]; !ok {
		v.names = append(v.names, name)
	}
	v.values[name] = value
}

func (v *FeatureVector) Get(name string) (float64, bool) {
	val, ok := v.values[name]
	return val, ok
}

// Names returns the feature names in declaration order.
func (v *FeatureVector) Names() []string {
	out := make([]string, len(v.names))
	copy(out, v.names)
	return out
}

func (v *FeatureVector) Len() int {
	return len(v.names)
}

// Map returns a copy of the vector as a plain map, for serialization.
func (v *FeatureVector) Map() map[string]float64 {
	out := make(map[string]float64, len(v.values))
	for k, val := range v.values {
		out[k] = val
	}
	return out
}
