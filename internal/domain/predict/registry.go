package predict

import (
	"context"
	"fmt"

	"github.com/puvop/puvop/internal/domain/features"
	"github.com/puvop/puvop/internal/platform/artifact"
)

// Registry maps outcome id → loaded model handle. It is built once during
// process initialization and never mutated afterwards, so it is safe for
// concurrent request handlers without locking.
type Registry struct {
	handles map[string]Predictor
	order   []string
}

// DefaultArtifactKeys returns the artifact file name for each outcome.
func DefaultArtifactKeys() map[string]string {
	return map[string]string{
		features.OutcomeCKD:            "ckd.json",
		features.OutcomeRRT:            "rrt.json",
		features.OutcomeCIC:            "cic.json",
		features.OutcomeAnyProgression: "any_progression.json",
		features.OutcomeEGFR12M:        "egfr_12m.json",
	}
}

// NewRegistry loads every configured artifact. Any failure aborts startup;
// models are never retried or lazily re-fetched per request.
func NewRegistry(ctx context.Context, store artifact.Store, keys map[string]string) (*Registry, error) {
	r := &Registry{handles: make(map[string]Predictor, len(keys))}
	for _, outcome := range features.Outcomes() {
		key, ok := keys[outcome]
		if !ok {
			continue
		}
		p, err := Load(ctx, store, key)
		if err != nil {
			return nil, err
		}
		if p.Outcome() != outcome {
			return nil, fmt.Errorf("artifact %s declares outcome %q, registry expects %q", key, p.Outcome(), outcome)
		}
		r.handles[outcome] = p
		r.order = append(r.order, outcome)
	}
	if len(r.handles) == 0 {
		return nil, fmt.Errorf("no model artifacts configured")
	}
	return r, nil
}

// NewRegistryFromHandles builds a registry from pre-constructed predictors,
// for tests.
func NewRegistryFromHandles(handles ...Predictor) *Registry {
	r := &Registry{handles: make(map[string]Predictor, len(handles))}
	for _, p := range handles {
		r.handles[p.Outcome()] = p
		r.order = append(r.order, p.Outcome())
	}
	return r
}

// Get returns the handle for an outcome.
func (r *Registry) Get(outcome string) (Predictor, bool) {
	p, ok := r.handles[outcome]
	return p, ok
}

// Outcomes lists loaded outcome ids in load order.
func (r *Registry) Outcomes() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
