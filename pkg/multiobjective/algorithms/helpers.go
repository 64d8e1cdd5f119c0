package algorithms

import (
	"sigs.k8s.io/moo-optimizer/pkg/multiobjective/framework"
)

// GetParetoFront returns the raw objective values of the rank 0 individuals of
// an already ranked population, in population order.
func GetParetoFront(population []*NSGAIISolution) []framework.ObjectiveSpacePoint {
	var paretoFront []framework.ObjectiveSpacePoint
	for _, sol := range population {
		if sol.Rank == 0 {
			paretoFront = append(paretoFront, sol.Objectives.Clone())
		}
	}
	return paretoFront
}

// ParetoSet returns the rank 0 individuals of an already ranked population.
func ParetoSet(population []*NSGAIISolution) []*NSGAIISolution {
	var set []*NSGAIISolution
	for _, sol := range population {
		if sol.Rank == 0 {
			set = append(set, sol)
		}
	}
	return set
}

// Objectives returns a copy of the raw objective values of every individual.
func Objectives(population []*NSGAIISolution) []framework.ObjectiveSpacePoint {
	points := make([]framework.ObjectiveSpacePoint, len(population))
	for i, sol := range population {
		points[i] = sol.Objectives.Clone()
	}
	return points
}
