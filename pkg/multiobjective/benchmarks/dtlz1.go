package benchmarks

import (
	"math"

	"sigs.k8s.io/moo-optimizer/pkg/multiobjective/framework"
)

// DTLZ1 is scalable to any number of objectives
// It has a linear Pareto front and many local fronts
type DTLZ1 struct {
	numVars       int
	numObjectives int
}

func NewDTLZ1(numVars, numObjectives int) *DTLZ1 {
	// Recommended: numVars = numObjectives + k - 1, where k = 5 for DTLZ1
	return &DTLZ1{
		numVars:       numVars,
		numObjectives: numObjectives,
	}
}

func (p *DTLZ1) Name() string {
	return "DTLZ1"
}

func (p *DTLZ1) ObjectiveFuncs() []framework.ObjectiveFunc {
	funcs := make([]framework.ObjectiveFunc, p.numObjectives)
	for i := 0; i < p.numObjectives; i++ {
		i := i
		funcs[i] = func(x []float64) float64 {
			return p.objective(x, i)
		}
	}
	return funcs
}

func (p *DTLZ1) g(x []float64) float64 {
	k := p.numVars - p.numObjectives + 1
	sum := 0.0
	for i := p.numObjectives - 1; i < p.numVars; i++ {
		sum += math.Pow(x[i]-0.5, 2) - math.Cos(20*math.Pi*(x[i]-0.5))
	}
	return 100 * (float64(k) + sum)
}

func (p *DTLZ1) objective(x []float64, objIdx int) float64 {
	f := 0.5 * (1 + p.g(x))
	for i := 0; i < p.numObjectives-objIdx-1; i++ {
		f *= x[i]
	}
	if objIdx > 0 {
		f *= (1 - x[p.numObjectives-objIdx-1])
	}
	return f
}

func (p *DTLZ1) Constraints() []framework.Constraint {
	return nil
}

func (p *DTLZ1) Bounds() []framework.Bounds {
	return framework.UniformBounds(p.numVars, 0.0, 1.0)
}

func (p *DTLZ1) TrueParetoFront(numPoints int) []framework.ObjectiveSpacePoint {
	// For DTLZ1, the true Pareto front satisfies: sum(f_i) = 0.5
	// For 2 objectives, it's a line from (0, 0.5) to (0.5, 0)
	if p.numObjectives == 2 {
		points := make([]framework.ObjectiveSpacePoint, numPoints)
		for i := 0; i < numPoints; i++ {
			t := float64(i) / float64(numPoints-1)
			points[i] = framework.ObjectiveSpacePoint{
				0.5 * t,
				0.5 * (1 - t),
			}
		}
		return points
	}
	// For 3 objectives, a triangular grid on the simplex
	if p.numObjectives == 3 {
		steps := int(math.Sqrt(float64(2 * numPoints)))
		if steps < 1 {
			return nil
		}
		var points []framework.ObjectiveSpacePoint
		for i := 0; i <= steps; i++ {
			for j := 0; j <= steps-i; j++ {
				a := float64(i) / float64(steps)
				b := float64(j) / float64(steps)
				points = append(points, framework.ObjectiveSpacePoint{0.5 * a, 0.5 * b, 0.5 * (1 - a - b)})
			}
		}
		return points
	}
	return nil
}
