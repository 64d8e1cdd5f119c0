package benchmarks

import (
	"math"

	"sigs.k8s.io/moo-optimizer/pkg/multiobjective/framework"
)

// ZDT3 has a disconnected Pareto front
type ZDT3 struct {
	numVars int
}

func NewZDT3(numVars int) *ZDT3 {
	return &ZDT3{numVars: numVars}
}

func (p *ZDT3) Name() string {
	return "ZDT3"
}

func (p *ZDT3) ObjectiveFuncs() []framework.ObjectiveFunc {
	return []framework.ObjectiveFunc{zdtF1, p.f2}
}

func (p *ZDT3) f2(x []float64) float64 {
	g := zdtG(x)
	// ZDT3 has a disconnected front due to the sin term
	h := 1.0 - math.Sqrt(x[0]/g) - (x[0]/g)*math.Sin(10*math.Pi*x[0])
	return g * h
}

func (p *ZDT3) Constraints() []framework.Constraint {
	return nil
}

func (p *ZDT3) Bounds() []framework.Bounds {
	return framework.UniformBounds(p.numVars, 0.0, 1.0)
}

// TrueParetoFront samples f2 = 1 - sqrt(f1) - f1*sin(10*pi*f1) and keeps the
// non-dominated samples, which form the disconnected segments of the front.
func (p *ZDT3) TrueParetoFront(numPoints int) []framework.ObjectiveSpacePoint {
	candidates := make([]framework.ObjectiveSpacePoint, numPoints)
	for i := 0; i < numPoints; i++ {
		x := float64(i) / float64(numPoints-1)
		candidates[i] = framework.ObjectiveSpacePoint{x, 1.0 - math.Sqrt(x) - x*math.Sin(10*math.Pi*x)}
	}

	// Candidates are sorted by f1, so a point is non-dominated iff its f2 is
	// lower than every f2 seen before it.
	points := make([]framework.ObjectiveSpacePoint, 0, numPoints)
	bestF2 := math.Inf(1)
	for _, c := range candidates {
		if c[1] < bestF2 {
			points = append(points, c)
			bestF2 = c[1]
		}
	}
	return points
}
