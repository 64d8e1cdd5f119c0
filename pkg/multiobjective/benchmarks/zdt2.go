package benchmarks

import (
	"math"

	"sigs.k8s.io/moo-optimizer/pkg/multiobjective/framework"
)

// ZDT2 has a non-convex Pareto front
type ZDT2 struct {
	numVars int
}

func NewZDT2(numVars int) *ZDT2 {
	return &ZDT2{numVars: numVars}
}

func (p *ZDT2) Name() string {
	return "ZDT2"
}

func (p *ZDT2) ObjectiveFuncs() []framework.ObjectiveFunc {
	return []framework.ObjectiveFunc{zdtF1, p.f2}
}

func (p *ZDT2) f2(x []float64) float64 {
	g := zdtG(x)
	// Note: ZDT2 uses (1 - (x1/g)^2) instead of sqrt
	return g * (1.0 - math.Pow(x[0]/g, 2))
}

func (p *ZDT2) Constraints() []framework.Constraint {
	return nil
}

func (p *ZDT2) Bounds() []framework.Bounds {
	return framework.UniformBounds(p.numVars, 0.0, 1.0)
}

func (p *ZDT2) TrueParetoFront(numPoints int) []framework.ObjectiveSpacePoint {
	points := make([]framework.ObjectiveSpacePoint, numPoints)
	for i := 0; i < numPoints; i++ {
		x := float64(i) / float64(numPoints-1)
		points[i] = framework.ObjectiveSpacePoint{
			x, 1.0 - x*x,
		}
	}
	return points
}
