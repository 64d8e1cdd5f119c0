package algorithms

import (
	"fmt"
	"sort"

	"golang.org/x/exp/rand"
)

// CrowdedCompare orders two ranked individuals: -1 when a is preferred, 1
// when b is preferred and 0 when rank and distance are both equal. Lower rank
// wins; on equal rank the larger crowding distance (less crowded) wins.
func CrowdedCompare(a, b *NSGAIISolution) int {
	switch {
	case a.Rank < b.Rank:
		return -1
	case a.Rank > b.Rank:
		return 1
	case a.Distance > b.Distance:
		return -1
	case a.Distance < b.Distance:
		return 1
	}
	return 0
}

// binaryTournament returns the preferred of a and b, tossing a fair coin on ties.
func binaryTournament(rng *rand.Rand, a, b *NSGAIISolution) *NSGAIISolution {
	switch CrowdedCompare(a, b) {
	case -1:
		return a
	case 1:
		return b
	}
	if rng.Float64() < 0.5 {
		return a
	}
	return b
}

// TournamentSelectDCD picks k individuals by binary tournaments on the crowded
// comparison. Contestants come from two shuffled, non-replacing passes over
// the population, paired consecutively, so with k == len(population) every
// individual competes exactly twice.
//
// The population must already carry Rank and Distance. The returned slice
// references members of population; callers clone before varying them.
func TournamentSelectDCD(rng *rand.Rand, population []*NSGAIISolution, k int) ([]*NSGAIISolution, error) {
	n := len(population)
	if n%2 != 0 {
		return nil, fmt.Errorf("tournament selection needs an even population, got %d", n)
	}
	if k < 0 || k > n || k%2 != 0 {
		return nil, fmt.Errorf("tournament selection of %d individuals from %d: k must be even and at most the population size", k, n)
	}

	perm1 := rng.Perm(n)
	perm2 := rng.Perm(n)

	// Half of the winners come from each pass.
	chosen := make([]*NSGAIISolution, 0, k)
	for _, perm := range [][]int{perm1, perm2} {
		for i := 0; i < k/2; i++ {
			chosen = append(chosen, binaryTournament(rng, population[perm[2*i]], population[perm[2*i+1]]))
		}
	}
	return chosen, nil
}

// SelectNextGeneration performs the NSGA-II environmental selection: whole
// fronts are taken in rank order while they fit, and the front that does not
// fit is truncated by descending crowding distance. Exactly n individuals are
// returned (fewer only if combined is smaller), each with Rank and Distance set.
func SelectNextGeneration(combined []*NSGAIISolution, n int) []*NSGAIISolution {
	fronts := NonDominatedSort(combined)

	population := make([]*NSGAIISolution, 0, n)
	for _, front := range fronts {
		if len(population) >= n {
			break
		}
		CrowdingDistance(front)
		if len(population)+len(front) <= n {
			population = append(population, front...)
			continue
		}

		// Boundary front: keep the least crowded ones
		boundary := make([]*NSGAIISolution, len(front))
		copy(boundary, front)
		sort.SliceStable(boundary, func(i, j int) bool {
			return boundary[i].Distance > boundary[j].Distance
		})
		population = append(population, boundary[:n-len(population)]...)
	}

	return population
}
