// Package benchmarks contains synthetic multi-objective problems with known
// Pareto fronts, used to check the correctness of the algorithms.
package benchmarks

import (
	"math"

	"sigs.k8s.io/moo-optimizer/pkg/multiobjective/framework"
)

// ZDT1 is a benchmark function used to test the correctness
// of multi-objective algorithms. For more details, check the article below:
// https://datacrayon.com/practical-evolutionary-algorithms/synthetic-objective-functions-and-zdt1/
type ZDT1 struct {
	numVars int
}

func NewZDT1(numVars int) *ZDT1 {
	return &ZDT1{
		numVars,
	}
}

func (p *ZDT1) Name() string {
	return "ZDT1"
}

func (p *ZDT1) ObjectiveFuncs() []framework.ObjectiveFunc {
	return []framework.ObjectiveFunc{
		zdtF1, p.f2,
	}
}

func (p *ZDT1) f2(x []float64) float64 {
	g := zdtG(x)
	return g * (1.0 - math.Sqrt(x[0]/g))
}

// This is an unconstrained problem
func (p *ZDT1) Constraints() []framework.Constraint {
	return nil
}

func (p *ZDT1) Bounds() []framework.Bounds {
	return framework.UniformBounds(p.numVars, 0.0, 1.0)
}

// TrueParetoFront generates numPoints points on the true Pareto front for ZDT1
func (p *ZDT1) TrueParetoFront(numPoints int) []framework.ObjectiveSpacePoint {
	points := make([]framework.ObjectiveSpacePoint, numPoints)
	for i := 0; i < numPoints; i++ {
		x := float64(i) / float64(numPoints-1)
		points[i] = framework.ObjectiveSpacePoint{
			x, 1.0 - math.Sqrt(x),
		}
	}
	return points
}

// zdtF1 is the first objective shared by the ZDT family.
func zdtF1(x []float64) float64 {
	return x[0]
}

// zdtG is the distance function of ZDT1-3; it equals 1 on the Pareto set.
func zdtG(x []float64) float64 {
	if len(x) < 2 {
		return 1.0
	}
	g := 1.0
	for i := 1; i < len(x); i++ {
		g += 9.0 * x[i] / float64(len(x)-1)
	}
	return g
}
