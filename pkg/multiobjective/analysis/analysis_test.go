package analysis

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"sigs.k8s.io/moo-optimizer/pkg/multiobjective/framework"
)

var front = []framework.ObjectiveSpacePoint{
	{0, 10},
	{1, 4},
	{2, 2},
	{6, 1},
	{10, 0},
}

func TestNormalizer(t *testing.T) {
	n, err := NewNormalizerFromPoints(front)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := n.Normalize([]float64{5, 5})
	if diff := cmp.Diff([]float64{0.5, 0.5}, got); diff != "" {
		t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
	}

	flat := NewNormalizer([]float64{1, 1}, []float64{1, 3})
	if diff := cmp.Diff([]float64{0, 0.5}, flat.Normalize([]float64{1, 2})); diff != "" {
		t.Errorf("Normalize() with a zero range mismatch (-want +got):\n%s", diff)
	}
}

func TestRankByWeights(t *testing.T) {
	tests := []struct {
		name      string
		weights   []float64
		wantOrder []int
	}{
		{
			name:      "first objective only",
			weights:   []float64{1, 0},
			wantOrder: []int{0, 1, 2, 3, 4},
		},
		{
			name:      "second objective only",
			weights:   []float64{0, 2},
			wantOrder: []int{4, 3, 2, 1, 0},
		},
		{
			name:    "equal weights",
			weights: []float64{1, 1},
			// totals: 0.5, 0.25, 0.2, 0.35, 0.5
			wantOrder: []int{2, 1, 3, 0, 4},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ranked, err := RankByWeights(front, tc.weights)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			var order []int
			for _, r := range ranked {
				order = append(order, r.Index)
			}
			if diff := cmp.Diff(tc.wantOrder, order); diff != "" {
				t.Errorf("order mismatch (-want +got):\n%s", diff)
			}
		})
	}

	ranked, err := RankByWeights(front, []float64{1, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(0.2, ranked[0].WeightedTotal, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("best total mismatch (-want +got):\n%s", diff)
	}
}

func TestRankByWeightsErrors(t *testing.T) {
	tests := []struct {
		name    string
		front   []framework.ObjectiveSpacePoint
		weights []float64
	}{
		{name: "empty front", weights: []float64{1}},
		{name: "weight count", front: front, weights: []float64{1}},
		{name: "negative weight", front: front, weights: []float64{1, -1}},
		{name: "zero weights", front: front, weights: []float64{0, 0}},
		{name: "ragged front", front: []framework.ObjectiveSpacePoint{{1, 2}, {1}}, weights: []float64{1, 1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := RankByWeights(tc.front, tc.weights); err == nil {
				t.Errorf("expected an error")
			}
		})
	}
}

func TestKneePoint(t *testing.T) {
	got, err := KneePoint(front)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 2 {
		t.Errorf("KneePoint() = %d, want 2", got)
	}

	if _, err := KneePoint(nil); err == nil {
		t.Errorf("expected an error for an empty front")
	}
}

func TestDescribe(t *testing.T) {
	stats, err := Describe([]framework.ObjectiveSpacePoint{{1, 5}, {3, 5}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []ObjectiveStats{
		{Min: 1, Max: 3, Mean: 2, StdDev: 1.4142135623730951},
		{Min: 5, Max: 5, Mean: 5, StdDev: 0},
	}
	if diff := cmp.Diff(want, stats, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("Describe() mismatch (-want +got):\n%s", diff)
	}

	single, err := Describe([]framework.ObjectiveSpacePoint{{4}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if single[0].StdDev != 0 || single[0].Mean != 4 {
		t.Errorf("unexpected stats for a single point: %+v", single[0])
	}
}
