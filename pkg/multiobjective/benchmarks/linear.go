package benchmarks

import (
	"sigs.k8s.io/moo-optimizer/pkg/multiobjective/framework"
)

// Linear is the smallest useful two-objective problem: f(x) = [x0, 1 - x0].
// Every point of the box is Pareto optimal and the front is the segment
// f1 + f2 = 1, so it exercises ranking and diversity preservation without
// any convergence pressure. Variables other than x0 are ignored.
type Linear struct {
	numVars int
}

func NewLinear(numVars int) *Linear {
	return &Linear{numVars: numVars}
}

func (p *Linear) Name() string {
	return "Linear"
}

func (p *Linear) ObjectiveFuncs() []framework.ObjectiveFunc {
	return []framework.ObjectiveFunc{
		func(x []float64) float64 { return x[0] },
		func(x []float64) float64 { return 1 - x[0] },
	}
}

func (p *Linear) Constraints() []framework.Constraint {
	return nil
}

func (p *Linear) Bounds() []framework.Bounds {
	return framework.UniformBounds(p.numVars, 0.0, 1.0)
}

func (p *Linear) TrueParetoFront(numPoints int) []framework.ObjectiveSpacePoint {
	points := make([]framework.ObjectiveSpacePoint, numPoints)
	for i := 0; i < numPoints; i++ {
		x := float64(i) / float64(numPoints-1)
		points[i] = framework.ObjectiveSpacePoint{x, 1 - x}
	}
	return points
}
