package algorithms

import (
	"math"
	"sort"
)

// NonDominatedSort performs fast non-dominated sorting on the population and
// sets Rank on every individual. Every individual ends up in exactly one front;
// mutually non-dominating individuals, identical ones included, share a front.
func NonDominatedSort(population []*NSGAIISolution) [][]*NSGAIISolution {
	if len(population) == 0 {
		return nil
	}

	var fronts [][]*NSGAIISolution
	dominated := make([][]int, len(population))
	domCount := make([]int, len(population))

	// Calculate domination for each individual
	for i := 0; i < len(population); i++ {
		for j := i + 1; j < len(population); j++ {
			if Dominates(population[i], population[j]) {
				dominated[i] = append(dominated[i], j)
				domCount[j]++
			} else if Dominates(population[j], population[i]) {
				dominated[j] = append(dominated[j], i)
				domCount[i]++
			}
		}
	}

	// Find first front
	currentFront := []*NSGAIISolution{}
	currentFrontIndices := []int{}
	for i := 0; i < len(population); i++ {
		if domCount[i] == 0 {
			population[i].Rank = 0
			currentFront = append(currentFront, population[i])
			currentFrontIndices = append(currentFrontIndices, i)
		}
	}
	fronts = append(fronts, currentFront)

	// Find subsequent fronts
	frontIndex := 0
	for len(currentFront) > 0 {
		nextFront := []*NSGAIISolution{}
		nextFrontIndices := []int{}
		for _, idx := range currentFrontIndices {
			for _, dominatedIdx := range dominated[idx] {
				domCount[dominatedIdx]--
				if domCount[dominatedIdx] == 0 {
					population[dominatedIdx].Rank = frontIndex + 1
					nextFront = append(nextFront, population[dominatedIdx])
					nextFrontIndices = append(nextFrontIndices, dominatedIdx)
				}
			}
		}
		frontIndex++
		if len(nextFront) > 0 {
			fronts = append(fronts, nextFront)
		}
		currentFront = nextFront
		currentFrontIndices = nextFrontIndices
	}

	return fronts
}

// Dominates checks if individual a dominates individual b
func Dominates(a, b *NSGAIISolution) bool {
	return a.Value.Dominates(b.Value)
}

// CrowdingDistance calculates crowding distance for individuals in a front.
// The order of front is left untouched.
func CrowdingDistance(front []*NSGAIISolution) {
	if len(front) <= 2 {
		for i := range front {
			front[i].Distance = math.Inf(1)
		}
		return
	}

	numObjectives := len(front[0].Value)
	for i := range front {
		front[i].Distance = 0
	}

	sorted := make([]*NSGAIISolution, len(front))
	copy(sorted, front)
	last := len(sorted) - 1

	for m := 0; m < numObjectives; m++ {
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Value[m] < sorted[j].Value[m]
		})

		// Set boundary points to infinity
		sorted[0].Distance = math.Inf(1)
		sorted[last].Distance = math.Inf(1)

		// No spread on this objective, it cannot tell individuals apart.
		objectiveRange := sorted[last].Value[m] - sorted[0].Value[m]
		if objectiveRange == 0 {
			continue
		}

		for i := 1; i < last; i++ {
			sorted[i].Distance += (sorted[i+1].Value[m] - sorted[i-1].Value[m]) / objectiveRange
		}
	}
}
