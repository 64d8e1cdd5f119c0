package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sigs.k8s.io/moo-optimizer/pkg/multiobjective/algorithms"
	"sigs.k8s.io/moo-optimizer/pkg/multiobjective/framework"
)

type fakeProblem struct {
	front []framework.ObjectiveSpacePoint
}

func (p *fakeProblem) Name() string { return "Fake" }
func (p *fakeProblem) ObjectiveFuncs() []framework.ObjectiveFunc {
	return []framework.ObjectiveFunc{
		func(x []float64) float64 { return x[0] },
		func(x []float64) float64 { return 1 - x[0] },
	}
}
func (p *fakeProblem) Constraints() []framework.Constraint { return nil }
func (p *fakeProblem) Bounds() []framework.Bounds         { return framework.UniformBounds(1, 0, 1) }
func (p *fakeProblem) TrueParetoFront(int) []framework.ObjectiveSpacePoint {
	return p.front
}

func TestPlotResults(t *testing.T) {
	results := []framework.ObjectiveSpacePoint{{0, 1}, {0.5, 0.5}, {1, 0}}

	tests := []struct {
		name    string
		problem framework.Problem
		results []framework.ObjectiveSpacePoint
		wantErr bool
	}{
		{
			name:    "with true front",
			problem: &fakeProblem{front: []framework.ObjectiveSpacePoint{{0, 1}, {1, 0}}},
			results: results,
		},
		{
			name:    "without true front",
			problem: &fakeProblem{},
			results: results,
		},
		{
			name:    "empty results",
			problem: &fakeProblem{},
			wantErr: true,
		},
		{
			name:    "three objectives",
			problem: &fakeProblem{},
			results: []framework.ObjectiveSpacePoint{{0, 0, 0}},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "front.html")
			err := PlotResults(tc.results, tc.problem, "NSGA-II", out)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			data, err := os.ReadFile(out)
			if err != nil {
				t.Fatalf("reading plot: %v", err)
			}
			if !strings.Contains(string(data), "NSGA-II Solutions") {
				t.Errorf("plot does not contain the solutions series")
			}
		})
	}
}

func TestHistoryAndConvergencePlot(t *testing.T) {
	h := NewHistory()
	if _, ok := h.Last(); ok {
		t.Fatalf("empty history reported a last record")
	}
	if err := PlotConvergence(h, "empty", filepath.Join(t.TempDir(), "hv.html")); err == nil {
		t.Errorf("expected an error for an empty history")
	}

	for gen := 0; gen < 3; gen++ {
		h.Observe(algorithms.Snapshot{
			Generation:     gen,
			Evaluations:    10 * (gen + 1),
			ParetoFront:    make([]framework.ObjectiveSpacePoint, gen+1),
			Hypervolume:    float64(gen) / 10,
			HasHypervolume: true,
		})
	}

	records := h.Records()
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	last, ok := h.Last()
	if !ok || last.Generation != 2 || last.FrontSize != 3 || last.Evaluations != 30 {
		t.Errorf("unexpected last record %+v", last)
	}

	out := filepath.Join(t.TempDir(), "hv.html")
	if err := PlotConvergence(h, "Linear", out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("convergence plot was not written: %v", err)
	}
}
