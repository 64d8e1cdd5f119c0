// Package weldedbeam implements the two-objective welded beam design problem:
// minimize the fabrication cost and the end deflection of a cantilever welded
// to a support, subject to shear stress, bending stress, buckling and
// geometric constraints.
//
// Constraints are folded into both objectives. Each objective is divided by a
// characteristic scale, optionally compressed with tanh into [0, 1), and then
// PenaltyWeight times the sum of the relative constraint violations is added.
// Feasible designs are therefore never penalized and infeasible ones are worse
// the further they are from the feasible region.
package weldedbeam

import (
	"math"

	"sigs.k8s.io/moo-optimizer/pkg/multiobjective/constraints"
	"sigs.k8s.io/moo-optimizer/pkg/multiobjective/framework"
)

const Name = "WeldedBeam"

// Options tunes how raw objectives and violations are turned into fitness.
type Options struct {
	CostScale       float64
	DeflectionScale float64
	PenaltyWeight   float64
	// Compress applies tanh to the scaled objectives before the penalty is added.
	Compress bool
}

// DefaultOptions roughly maps the feasible range of each objective onto [0, 1).
func DefaultOptions() Options {
	return Options{
		CostScale:       40,
		DeflectionScale: 0.02,
		PenaltyWeight:   10,
		Compress:        true,
	}
}

// WeldedBeam is the penalized welded beam problem.
type WeldedBeam struct {
	opts    Options
	penalty constraints.Penalty
}

var _ framework.Problem = &WeldedBeam{}

func New(opts Options) *WeldedBeam {
	return &WeldedBeam{
		opts: opts,
		penalty: constraints.Penalty{
			Inequalities: inequalities,
			Weight:       opts.PenaltyWeight,
		},
	}
}

func (p *WeldedBeam) Name() string {
	return Name
}

func (p *WeldedBeam) Options() Options {
	return p.opts
}

// ObjectiveFuncs returns the penalized cost and deflection.
func (p *WeldedBeam) ObjectiveFuncs() []framework.ObjectiveFunc {
	return []framework.ObjectiveFunc{
		p.penalty.Apply(p.scaled(cost, p.opts.CostScale)),
		p.penalty.Apply(p.scaled(deflection, p.opts.DeflectionScale)),
	}
}

func (p *WeldedBeam) scaled(f framework.ObjectiveFunc, scale float64) framework.ObjectiveFunc {
	return func(x []float64) float64 {
		v := f(x) / scale
		if p.opts.Compress {
			return math.Tanh(v)
		}
		return v
	}
}

// Constraints reports feasibility only; the search itself relies on the penalty.
func (p *WeldedBeam) Constraints() []framework.Constraint {
	return constraints.AsConstraints(inequalities)
}

// Bounds returns the box of [h, l, t, b].
func (p *WeldedBeam) Bounds() []framework.Bounds {
	return []framework.Bounds{
		WeldThickness: {L: 0.125, H: 5},
		WeldLength:    {L: 0.1, H: 10},
		BeamHeight:    {L: 0.1, H: 10},
		BeamWidth:     {L: 0.125, H: 5},
	}
}

// TrueParetoFront is not known in closed form.
func (p *WeldedBeam) TrueParetoFront(int) []framework.ObjectiveSpacePoint {
	return nil
}

// Analyze evaluates the raw engineering quantities of x.
func (p *WeldedBeam) Analyze(x []float64) Design {
	return Analyze(x)
}

// Violations lists the constraints x does not satisfy.
func (p *WeldedBeam) Violations(x []float64) []constraints.Violation {
	return constraints.Violations(inequalities, x)
}
