// Package indicators implements quality indicators for approximation sets of
// multi-objective problems. They are used to report progress and compare runs;
// the optimizer never selects on them. All functions assume minimization.
package indicators

import (
	"fmt"
	"math"
	"sort"

	"sigs.k8s.io/moo-optimizer/pkg/multiobjective/framework"
)

// Hypervolume returns the Lebesgue measure of the region dominated by points
// and bounded above by ref. Points that are not strictly better than ref in
// every objective add nothing. Two objectives use an exact sweep; more
// objectives are sliced recursively along the last objective.
func Hypervolume(points []framework.ObjectiveSpacePoint, ref framework.ObjectiveSpacePoint) (float64, error) {
	if len(ref) == 0 {
		return 0, fmt.Errorf("reference point is empty")
	}
	for k, v := range ref {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("reference point coordinate %d is not finite: %v", k, v)
		}
	}

	inside := make([]framework.ObjectiveSpacePoint, 0, len(points))
	for i, p := range points {
		if len(p) != len(ref) {
			return 0, fmt.Errorf("point %d has %d objectives, reference point has %d", i, len(p), len(ref))
		}
		strictlyBetter := true
		for k, v := range p {
			if math.IsNaN(v) || math.IsInf(v, -1) {
				return 0, fmt.Errorf("point %d coordinate %d is %v", i, k, v)
			}
			if v >= ref[k] {
				strictlyBetter = false
			}
		}
		if strictlyBetter {
			inside = append(inside, p)
		}
	}

	return hypervolume(inside, ref), nil
}

func hypervolume(points []framework.ObjectiveSpacePoint, ref framework.ObjectiveSpacePoint) float64 {
	if len(points) == 0 {
		return 0
	}

	switch len(ref) {
	case 1:
		best := points[0][0]
		for _, p := range points[1:] {
			best = math.Min(best, p[0])
		}
		return ref[0] - best
	case 2:
		return sweep2D(points, ref)
	}

	last := len(ref) - 1
	sorted := make([]framework.ObjectiveSpacePoint, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i][last] < sorted[j][last]
	})

	volume := 0.0
	projected := make([]framework.ObjectiveSpacePoint, 0, len(sorted))
	for i, p := range sorted {
		projected = append(projected, p[:last])

		upper := ref[last]
		if i+1 < len(sorted) {
			upper = sorted[i+1][last]
		}
		height := upper - p[last]
		if height <= 0 {
			continue
		}
		volume += height * hypervolume(projected, ref[:last])
	}
	return volume
}

// sweep2D adds up the rectangles between consecutive points of the staircase
// formed by the nondominated subset of points.
func sweep2D(points []framework.ObjectiveSpacePoint, ref framework.ObjectiveSpacePoint) float64 {
	sorted := make([]framework.ObjectiveSpacePoint, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i][0] != sorted[j][0] {
			return sorted[i][0] < sorted[j][0]
		}
		return sorted[i][1] < sorted[j][1]
	})

	volume := 0.0
	bestF2 := ref[1]
	for _, p := range sorted {
		if p[1] < bestF2 {
			volume += (ref[0] - p[0]) * (bestF2 - p[1])
			bestF2 = p[1]
		}
	}
	return volume
}
