package algorithms

import (
	"sigs.k8s.io/moo-optimizer/pkg/multiobjective/framework"
)

// NSGAIISolution is an individual of the population: its decision variables
// plus the cached objective values and the Rank/Distance annotations NSGA-II
// attaches to it.
//
// Objectives holds the values exactly as the evaluator returned them. Value
// holds the same vector in minimization form (maximized objectives negated)
// and is what every comparison uses.
type NSGAIISolution struct {
	Variables  []float64
	Objectives framework.ObjectiveSpacePoint
	Value      framework.ObjectiveSpacePoint

	Rank     int
	Distance float64

	evaluated bool
}

// NewNSGAIISolution wraps vars in a new, not yet evaluated individual. The
// slice is owned by the individual afterwards.
func NewNSGAIISolution(vars []float64) *NSGAIISolution {
	return &NSGAIISolution{
		Variables: vars,
	}
}

// Evaluated reports whether the cached fitness matches the current variables.
func (s *NSGAIISolution) Evaluated() bool {
	return s.evaluated
}

// Invalidate drops the cached fitness. Call it after changing Variables in place.
func (s *NSGAIISolution) Invalidate() {
	s.evaluated = false
	s.Objectives = nil
	s.Value = nil
}

// SetFitness stores raw objective values and their minimization form.
func (s *NSGAIISolution) SetFitness(raw, normalized framework.ObjectiveSpacePoint) {
	s.Objectives = raw
	s.Value = normalized
	s.evaluated = true
}

// Clone returns an individual with a copy of the genes and no fitness.
func (s *NSGAIISolution) Clone() *NSGAIISolution {
	vars := make([]float64, len(s.Variables))
	copy(vars, s.Variables)
	return NewNSGAIISolution(vars)
}
