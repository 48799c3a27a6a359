package predict

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/puvop/puvop/internal/platform/artifact"
)

// artifactFile is the JSON serialization of a fitted model. Survival models
// carry the time grid and baseline curve; point models carry an intercept.
type artifactFile struct {
	Outcome          string    `json:"outcome"`
	Kind             string    `json:"kind"`
	Features         []string  `json:"features"`
	Coefs            []float64 `json:"coefs"`
	Means            []float64 `json:"means,omitempty"`
	Times            []float64 `json:"times,omitempty"`
	BaselineSurvival []float64 `json:"baseline_survival,omitempty"`
	Intercept        float64   `json:"intercept,omitempty"`
	Unit             string    `json:"unit,omitempty"`
}

// Load reads and validates one model artifact from the store. Errors here
// are fatal at startup: a server must never run with a missing or corrupt
// model.
func Load(ctx context.Context, store artifact.Store, key string) (Predictor, error) {
	rc, err := store.Open(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load artifact %s: %w", key, err)
	}
	defer rc.Close()

	var af artifactFile
	dec := json.NewDecoder(rc)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&af); err != nil {
		return nil, fmt.Errorf("load artifact %s: %w: %v", key, ErrInvalidArtifact, err)
	}

	p, err := build(&af)
	if err != nil {
		return nil, fmt.Errorf("load artifact %s: %w", key, err)
	}
	return p, nil
}

func build(af *artifactFile) (Predictor, error) {
	if af.Outcome == "" {
		return nil, fmt.Errorf("%w: outcome is required", ErrInvalidArtifact)
	}
	if len(af.Features) == 0 {
		return nil, fmt.Errorf("%w: features are required", ErrInvalidArtifact)
	}
	if len(af.Coefs) != len(af.Features) {
		return nil, fmt.Errorf("%w: %d coefs for %d features", ErrInvalidArtifact, len(af.Coefs), len(af.Features))
	}
	seen := make(map[string]bool, len(af.Features))
	for _, f := range af.Features {
		if seen[f] {
			return nil, fmt.Errorf("%w: duplicate feature %q", ErrInvalidArtifact, f)
		}
		seen[f] = true
	}

	switch af.Kind {
	case KindCoxSurvival:
		if len(af.Means) != len(af.Features) {
			return nil, fmt.Errorf("%w: %d means for %d features", ErrInvalidArtifact, len(af.Means), len(af.Features))
		}
		if len(af.Times) < 2 || len(af.Times) != len(af.BaselineSurvival) {
			return nil, fmt.Errorf("%w: baseline curve needs matching times and survival (got %d/%d)",
				ErrInvalidArtifact, len(af.Times), len(af.BaselineSurvival))
		}
		for i := 1; i < len(af.Times); i++ {
			if af.Times[i] <= af.Times[i-1] {
				return nil, fmt.Errorf("%w: times are not strictly increasing at index %d", ErrInvalidArtifact, i)
			}
		}
		for i, s := range af.BaselineSurvival {
			if s < 0 || s > 1 {
				return nil, fmt.Errorf("%w: baseline survival %v at index %d outside [0,1]", ErrInvalidArtifact, s, i)
			}
		}
		return &CoxCurveModel{
			outcome:  af.Outcome,
			feats:    af.Features,
			coefs:    af.Coefs,
			means:    af.Means,
			times:    af.Times,
			baseline: af.BaselineSurvival,
		}, nil

	case KindLogistic, KindLinear:
		unit := af.Unit
		if af.Kind == KindLogistic && unit == "" {
			unit = "probability"
		}
		if af.Kind == KindLinear && unit == "" {
			return nil, fmt.Errorf("%w: linear model requires a unit", ErrInvalidArtifact)
		}
		return &GLMPointModel{
			outcome:   af.Outcome,
			kind:      af.Kind,
			unit:      unit,
			feats:     af.Features,
			coefs:     af.Coefs,
			intercept: af.Intercept,
		}, nil

	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidArtifact, af.Kind)
	}
}
