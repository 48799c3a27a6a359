package prediction

import (
	"time"

	"github.com/google/uuid"

	"github.com/puvop/puvop/internal/domain/features"
	"github.com/puvop/puvop/internal/domain/presentation"
	"github.com/puvop/puvop/internal/domain/riskcurve"
)

// Outcome result statuses.
const (
	StatusOK         = "ok"
	StatusSuppressed = "suppressed"
	StatusError      = "error"
)

// EvaluationRequest is one patient submission. Inputs is the raw field map
// collected externally; Outcomes optionally narrows the evaluated set;
// HorizonsDays optionally overrides the default checkpoint horizons for
// curve outcomes.
type EvaluationRequest struct {
	Inputs         map[string]float64 `json:"inputs"`
	CreatinineUnit string             `json:"creatinine_unit,omitempty"`
	Outcomes       []string           `json:"outcomes,omitempty"`
	HorizonsDays   []float64          `json:"horizons_days,omitempty"`
}

// PointEstimate is the scalar output of a point-predictor outcome, with its
// semantic unit.
type PointEstimate struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// OutcomeResult is the result of one outcome's independent evaluation.
// Exactly one of the curve fields, Point, or Message is populated depending
// on Status and model family.
type OutcomeResult struct {
	Outcome     string                    `json:"outcome"`
	Status      string                    `json:"status"`
	Error       string                    `json:"error,omitempty"`
	Message     string                    `json:"message,omitempty"`
	Rule        string                    `json:"rule,omitempty"`
	Point       *PointEstimate            `json:"point,omitempty"`
	Curve       riskcurve.Curve           `json:"curve,omitempty"`
	Checkpoints []riskcurve.CheckpointRow `json:"checkpoints,omitempty"`
	Chart       *presentation.Chart       `json:"chart,omitempty"`
	Table       []presentation.TableRow   `json:"table,omitempty"`
	Anomalies   []string                  `json:"anomalies,omitempty"`
}

// Evaluation is one recorded submission with its per-outcome results.
type Evaluation struct {
	ID             uuid.UUID          `json:"id"`
	Inputs         map[string]float64 `json:"inputs"`
	CreatinineUnit string             `json:"creatinine_unit,omitempty"`
	Results        []OutcomeResult    `json:"results"`
	CreatedAt      time.Time          `json:"created_at"`
}

// OutcomeDescriptor documents one outcome for the input-collection
// collaborator: model family, input fields with domains, and default
// checkpoint horizons.
type OutcomeDescriptor struct {
	ID              string               `json:"id"`
	Kind            string               `json:"kind"`
	Fields          []features.FieldSpec `json:"fields"`
	DefaultHorizons []float64            `json:"default_horizons_days,omitempty"`
}
