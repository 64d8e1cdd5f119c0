// Package analysis helps to pick designs out of a final Pareto front. Every
// function assumes that all objectives are minimized.
package analysis

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"sigs.k8s.io/moo-optimizer/pkg/multiobjective/framework"
)

// Normalizer handles objective value normalization
type Normalizer struct {
	min []float64
	max []float64
}

// NewNormalizer creates a normalizer for the given per-objective ranges
func NewNormalizer(min []float64, max []float64) *Normalizer {
	return &Normalizer{
		min: min,
		max: max,
	}
}

// NewNormalizerFromPoints uses the ideal and nadir of points as the range.
func NewNormalizerFromPoints(points []framework.ObjectiveSpacePoint) (*Normalizer, error) {
	if err := checkPoints(points); err != nil {
		return nil, err
	}
	m := len(points[0])
	min := make([]float64, m)
	max := make([]float64, m)
	column := make([]float64, len(points))
	for k := 0; k < m; k++ {
		for i, p := range points {
			column[i] = p[k]
		}
		min[k] = floats.Min(column)
		max[k] = floats.Max(column)
	}
	return NewNormalizer(min, max), nil
}

// Normalize returns normalized objective values in [0,1]
func (n *Normalizer) Normalize(values []float64) []float64 {
	normalized := make([]float64, len(values))
	for i, val := range values {
		// Avoid division by zero
		if n.max[i] == n.min[i] {
			normalized[i] = 0
		} else {
			normalized[i] = (val - n.min[i]) / (n.max[i] - n.min[i])
		}
	}
	return normalized
}

// Ranked is a front member together with its normalized objectives and score.
type Ranked struct {
	Index         int
	Point         framework.ObjectiveSpacePoint
	Normalized    []float64
	WeightedTotal float64
}

// RankByWeights orders front by the weighted sum of min-max normalized
// objectives, best first. Weights must be non-negative and are rescaled to
// sum to one. Ties keep the front order.
func RankByWeights(front []framework.ObjectiveSpacePoint, weights []float64) ([]Ranked, error) {
	if err := checkPoints(front); err != nil {
		return nil, err
	}
	if len(weights) != len(front[0]) {
		return nil, fmt.Errorf("got %d weights for %d objectives", len(weights), len(front[0]))
	}
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("weight %d is invalid: %v", i, w)
		}
	}
	total := floats.Sum(weights)
	if total == 0 {
		return nil, fmt.Errorf("weights sum to zero")
	}
	w := make([]float64, len(weights))
	floats.ScaleTo(w, 1/total, weights)

	normalizer, err := NewNormalizerFromPoints(front)
	if err != nil {
		return nil, err
	}

	ranked := make([]Ranked, len(front))
	for i, p := range front {
		normalized := normalizer.Normalize(p)
		ranked[i] = Ranked{
			Index:         i,
			Point:         p,
			Normalized:    normalized,
			WeightedTotal: floats.Dot(w, normalized),
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].WeightedTotal < ranked[j].WeightedTotal
	})
	return ranked, nil
}

// KneePoint returns the index of the front member closest to the ideal point
// once every objective is normalized to [0,1].
func KneePoint(front []framework.ObjectiveSpacePoint) (int, error) {
	normalizer, err := NewNormalizerFromPoints(front)
	if err != nil {
		return -1, err
	}
	best, bestDist := -1, math.Inf(1)
	for i, p := range front {
		if d := floats.Norm(normalizer.Normalize(p), 2); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, nil
}

// ObjectiveStats summarizes one objective over a set of points.
type ObjectiveStats struct {
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
}

// Describe returns per-objective statistics of points.
func Describe(points []framework.ObjectiveSpacePoint) ([]ObjectiveStats, error) {
	if err := checkPoints(points); err != nil {
		return nil, err
	}
	m := len(points[0])
	out := make([]ObjectiveStats, m)
	column := make([]float64, len(points))
	for k := 0; k < m; k++ {
		for i, p := range points {
			column[i] = p[k]
		}
		mean, std := stat.MeanStdDev(column, nil)
		if len(points) == 1 {
			std = 0
		}
		out[k] = ObjectiveStats{
			Min:    floats.Min(column),
			Max:    floats.Max(column),
			Mean:   mean,
			StdDev: std,
		}
	}
	return out, nil
}

func checkPoints(points []framework.ObjectiveSpacePoint) error {
	if len(points) == 0 {
		return fmt.Errorf("no points given")
	}
	m := len(points[0])
	if m == 0 {
		return fmt.Errorf("points have no objectives")
	}
	for i, p := range points {
		if len(p) != m {
			return fmt.Errorf("point %d has %d objectives, expected %d", i, len(p), m)
		}
	}
	return nil
}
