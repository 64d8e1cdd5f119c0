package algorithms

import (
	"math"

	"golang.org/x/exp/rand"

	"sigs.k8s.io/moo-optimizer/pkg/multiobjective/framework"
)

const (
	// sbxGeneProbability is the chance each gene takes part in SBX once the
	// mating pair has been selected for crossover.
	sbxGeneProbability = 0.5

	// sbxTolerance is the smallest parent gap SBX acts on. Closer genes are copied.
	sbxTolerance = 1e-14
)

// SBXCrossover performs bounded Simulated Binary Crossover on two parents and
// returns two new children. The parents are never modified.
//
// A single draw against probability decides whether the pair is crossed at
// all; if not, the children are plain copies of the parents. eta is the
// distribution index: larger values keep children closer to their parents.
// The spread factor accounts for the distance of each parent to its bounds,
// and the result is clipped to the bounds as a last resort.
func SBXCrossover(rng *rand.Rand, p1, p2 []float64, bounds []framework.Bounds, eta, probability float64) ([]float64, []float64) {
	child1 := make([]float64, len(p1))
	child2 := make([]float64, len(p2))
	copy(child1, p1)
	copy(child2, p2)

	if rng.Float64() >= probability {
		return child1, child2
	}

	for i := range child1 {
		if rng.Float64() > sbxGeneProbability {
			continue
		}
		if math.Abs(p1[i]-p2[i]) <= sbxTolerance {
			continue
		}

		xl, xu := bounds[i].L, bounds[i].H
		x1 := math.Min(p1[i], p2[i])
		x2 := math.Max(p1[i], p2[i])
		u := rng.Float64()

		beta := 1.0 + 2.0*(x1-xl)/(x2-x1)
		c1 := 0.5 * (x1 + x2 - sbxSpread(u, beta, eta)*(x2-x1))

		beta = 1.0 + 2.0*(xu-x2)/(x2-x1)
		c2 := 0.5 * (x1 + x2 + sbxSpread(u, beta, eta)*(x2-x1))

		c1 = bounds[i].Clip(c1)
		c2 = bounds[i].Clip(c2)

		if rng.Float64() <= 0.5 {
			child1[i], child2[i] = c2, c1
		} else {
			child1[i], child2[i] = c1, c2
		}
	}

	return child1, child2
}

// sbxSpread inverts the polynomial distribution truncated to the feasible
// side described by beta.
func sbxSpread(u, beta, eta float64) float64 {
	alpha := 2.0 - math.Pow(beta, -(eta+1.0))
	if u <= 1.0/alpha {
		return math.Pow(u*alpha, 1.0/(eta+1.0))
	}
	return math.Pow(1.0/(2.0-u*alpha), 1.0/(eta+1.0))
}

// PolynomialMutation performs bounded polynomial mutation of x in place. Each
// gene mutates independently with probability indpb. The perturbation is
// scaled by the variable range and shrinks towards the nearer bound, so the
// result stays in bounds before the final clip. It returns the number of genes
// that were mutated.
func PolynomialMutation(rng *rand.Rand, x []float64, bounds []framework.Bounds, eta, indpb float64) int {
	mutated := 0
	mutPow := 1.0 / (eta + 1.0)

	for i := range x {
		if rng.Float64() >= indpb {
			continue
		}
		mutated++

		xl, xu := bounds[i].L, bounds[i].H
		width := xu - xl
		delta1 := (x[i] - xl) / width
		delta2 := (xu - x[i]) / width
		u := rng.Float64()

		var deltaq float64
		if u < 0.5 {
			xy := 1.0 - delta1
			val := 2.0*u + (1.0-2.0*u)*math.Pow(xy, eta+1.0)
			deltaq = math.Pow(val, mutPow) - 1.0
		} else {
			xy := 1.0 - delta2
			val := 2.0*(1.0-u) + 2.0*(u-0.5)*math.Pow(xy, eta+1.0)
			deltaq = 1.0 - math.Pow(val, mutPow)
		}

		x[i] = bounds[i].Clip(x[i] + deltaq*width)
	}

	return mutated
}
