package prediction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/puvop/puvop/internal/domain/features"
	"github.com/puvop/puvop/internal/domain/policy"
	"github.com/puvop/puvop/internal/domain/predict"
	"github.com/puvop/puvop/internal/domain/presentation"
	"github.com/puvop/puvop/internal/domain/riskcurve"
)

// defaultHorizonsDays are the canonical checkpoint horizons for curve
// outcomes: 1, 3, 5, and 10 years.
var defaultHorizonsDays = []float64{365, 1095, 1825, 3650}

// yLabels fixes the outcome-specific risk-axis labels.
var yLabels = map[string]string{
	features.OutcomeCKD: "Risk of developing CKD (%)",
	features.OutcomeRRT: "Risk of requiring RRT (%)",
	features.OutcomeCIC: "Risk of requiring CIC (%)",
}

type Service struct {
	registry *predict.Registry
	policies *policy.Engine
	evals    EvaluationRepository
}

func NewService(registry *predict.Registry, policies *policy.Engine, evals EvaluationRepository) *Service {
	return &Service{registry: registry, policies: policies, evals: evals}
}

// Evaluate runs one submission through the full pipeline, one outcome at a
// time. Outcomes are independent: a failure in one is annotated on its
// result row and never blocks the others. Request-level problems (unknown
// outcome id, invalid horizons) fail the whole call.
func (s *Service) Evaluate(ctx context.Context, req *EvaluationRequest) (*Evaluation, error) {
	if len(req.Inputs) == 0 {
		return nil, &features.FieldError{Field: "inputs", Reason: "no input values provided"}
	}

	outcomes := req.Outcomes
	if len(outcomes) == 0 {
		outcomes = s.registry.Outcomes()
	} else {
		for _, o := range outcomes {
			if _, ok := s.registry.Get(o); !ok {
				return nil, fmt.Errorf("unknown outcome %q", o)
			}
		}
	}

	for _, h := range req.HorizonsDays {
		if h <= 0 {
			return nil, &features.FieldError{Field: "horizons_days", Reason: fmt.Sprintf("horizon %v must be positive", h)}
		}
	}

	eval := &Evaluation{
		ID:             uuid.New(),
		Inputs:         req.Inputs,
		CreatinineUnit: req.CreatinineUnit,
		CreatedAt:      time.Now().UTC(),
		Results:        make([]OutcomeResult, 0, len(outcomes)),
	}
	for _, outcome := range outcomes {
		eval.Results = append(eval.Results, s.evaluateOutcome(outcome, req))
	}

	if err := s.evals.Create(ctx, eval); err != nil {
		return nil, fmt.Errorf("record evaluation: %w", err)
	}
	return eval, nil
}

func (s *Service) evaluateOutcome(outcome string, req *EvaluationRequest) OutcomeResult {
	res := OutcomeResult{Outcome: outcome, Status: StatusError}

	schema, ok := features.SchemaFor(outcome)
	if !ok {
		res.Error = fmt.Sprintf("no input schema declared for outcome %q", outcome)
		return res
	}

	vec, err := features.Build(schema, features.RawInputs{
		Values:         req.Inputs,
		CreatinineUnit: req.CreatinineUnit,
	})
	if err != nil {
		res.Error = err.Error()
		return res
	}

	if decision := s.policies.Apply(outcome, vec); decision.Suppressed {
		res.Status = StatusSuppressed
		res.Rule = decision.Rule
		res.Message = decision.Message
		return res
	}

	handle, ok := s.registry.Get(outcome)
	if !ok {
		res.Error = fmt.Sprintf("no model loaded for outcome %q", outcome)
		return res
	}

	switch model := handle.(type) {
	case predict.CurvePredictor:
		curve, err := model.PredictCurve(vec)
		if err != nil {
			res.Error = err.Error()
			return res
		}
		horizons := req.HorizonsDays
		if len(horizons) == 0 {
			horizons = defaultHorizonsDays
		}
		table, err := riskcurve.Evaluate(curve, horizons)
		if err != nil {
			res.Error = err.Error()
			return res
		}
		chart, rows := presentation.Assemble(curve, table, s.displayFor(outcome))

		res.Status = StatusOK
		res.Curve = curve
		res.Checkpoints = table.Rows
		res.Chart = chart
		res.Table = rows
		if table.Anomaly != nil {
			res.Anomalies = append(res.Anomalies, table.Anomaly.Error())
		}
		return res

	case predict.PointPredictor:
		value, err := model.PredictPoint(vec)
		if err != nil {
			res.Error = err.Error()
			return res
		}
		res.Status = StatusOK
		res.Point = &PointEstimate{Value: value, Unit: model.Unit()}
		return res

	default:
		res.Error = fmt.Sprintf("model for outcome %q exposes no known capability", outcome)
		return res
	}
}

func (s *Service) displayFor(outcome string) presentation.DisplayConfig {
	label, ok := yLabels[outcome]
	if !ok {
		label = "Risk (%)"
	}
	return presentation.DefaultSurvivalDisplay(label)
}

// GetEvaluation returns one recorded evaluation.
func (s *Service) GetEvaluation(ctx context.Context, id uuid.UUID) (*Evaluation, error) {
	return s.evals.GetByID(ctx, id)
}

// ListEvaluations returns the recorded evaluation history, newest first.
func (s *Service) ListEvaluations(ctx context.Context, limit, offset int) ([]*Evaluation, int, error) {
	return s.evals.List(ctx, limit, offset)
}

// OutcomeDescriptors documents every loaded outcome for the form
// collaborator.
func (s *Service) OutcomeDescriptors() []OutcomeDescriptor {
	out := make([]OutcomeDescriptor, 0, len(s.registry.Outcomes()))
	for _, outcome := range s.registry.Outcomes() {
		handle, _ := s.registry.Get(outcome)
		schema, ok := features.SchemaFor(outcome)
		if !ok {
			continue
		}
		d := OutcomeDescriptor{
			ID:     outcome,
			Kind:   handle.Kind(),
			Fields: schema.Fields,
		}
		if _, isCurve := handle.(predict.CurvePredictor); isCurve {
			d.DefaultHorizons = append([]float64(nil), defaultHorizonsDays...)
		}
		out = append(out, d)
	}
	return out
}
