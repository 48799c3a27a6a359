// Package policy evaluates per-outcome clinical override rules before a
// model prediction is released. Rules are data, not scattered branches: an
// ordered list of (predicate, action) pairs where the first match wins and
// no match leaves the engine output untouched.
package policy

import (
	"fmt"

	"github.com/puvop/puvop/internal/domain/features"
)

// ESRDThresholdEGFR is the end-stage renal disease cutoff in mL/min/1.73m²
// (CKD stage 5). Patients at or below it have no meaningful progression
// curve left to project.
const ESRDThresholdEGFR = 15.0

// Op is a comparison operator for rule predicates.
type Op string

const (
	OpLT Op = "<"
	OpLE Op = "<="
	OpGT Op = ">"
	OpGE Op = ">="
	OpEQ Op = "=="
)

// Predicate is a single comparison against one model feature. A predicate
// on a feature absent from the vector never matches.
type Predicate struct {
	Feature string
	Op      Op
	Value   float64
}

func (p Predicate) Matches(vec *features.FeatureVector) bool {
	v, ok := vec.Get(p.Feature)
	if !ok {
		return false
	}
	switch p.Op {
	case OpLT:
		return v < p.Value
	case OpLE:
		return v <= p.Value
	case OpGT:
		return v > p.Value
	case OpGE:
		return v >= p.Value
	case OpEQ:
		return v == p.Value
	default:
		return false
	}
}

func (p Predicate) String() string {
	return fmt.Sprintf("%s %s %v", p.Feature, p.Op, p.Value)
}

// Rule is one per-outcome override: when the predicate matches the feature
// vector, the projection is suppressed and Message is returned in its place.
type Rule struct {
	Outcome string
	Name    string
	When    Predicate
	Message string
}

// Decision is the outcome of rule evaluation for a single prediction.
type Decision struct {
	Suppressed bool
	Rule       string
	Message    string
}

// Engine holds the ordered rule list. Immutable after construction.
type Engine struct {
	rules []Rule
}

func NewEngine(rules []Rule) *Engine {
	return &Engine{rules: rules}
}

// Apply evaluates the rules declared for the outcome, in order; the first
// matching rule wins. Pure: no side effects on the vector.
func (e *Engine) Apply(outcome string, vec *features.FeatureVector) Decision {
	for _, r := range e.rules {
		if r.Outcome != outcome {
			continue
		}
		if r.When.Matches(vec) {
			return Decision{Suppressed: true, Rule: r.Name, Message: r.Message}
		}
	}
	return Decision{}
}

// DefaultRules returns the shipped clinical overrides.
func DefaultRules() []Rule {
	return []Rule{
		{
			Outcome: features.OutcomeCKD,
			Name:    "esrd-baseline",
			When:    Predicate{Feature: "Baseline eGFR", Op: OpLT, Value: ESRDThresholdEGFR},
			Message: "The patient has already progressed to end-stage renal disease based on the information provided.",
		},
	}
}
