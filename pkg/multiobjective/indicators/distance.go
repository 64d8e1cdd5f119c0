package indicators

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"sigs.k8s.io/moo-optimizer/pkg/multiobjective/framework"
)

// IGD is the Inverted Generational Distance: the mean Euclidean distance from
// every point of the reference front to its closest obtained point. It
// rewards both convergence and coverage. Empty inputs give +Inf.
func IGD(obtained, trueFront []framework.ObjectiveSpacePoint) float64 {
	return meanMinDistance(trueFront, obtained)
}

// GD is the Generational Distance: the mean Euclidean distance from every
// obtained point to the closest point of the reference front.
func GD(obtained, trueFront []framework.ObjectiveSpacePoint) float64 {
	return meanMinDistance(obtained, trueFront)
}

func meanMinDistance(from, to []framework.ObjectiveSpacePoint) float64 {
	if len(from) == 0 || len(to) == 0 {
		return math.Inf(1)
	}

	sum := 0.0
	for _, p := range from {
		minDist := math.Inf(1)
		for _, q := range to {
			minDist = math.Min(minDist, floats.Distance(p, q, 2))
		}
		sum += minDist
	}
	return sum / float64(len(from))
}
