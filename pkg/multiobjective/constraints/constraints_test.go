package constraints_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"sigs.k8s.io/moo-optimizer/pkg/multiobjective/constraints"
	"sigs.k8s.io/moo-optimizer/pkg/multiobjective/framework"
)

func first(x []float64) float64 { return x[0] }

func TestInequalities(t *testing.T) {
	upper := constraints.LessOrEqual("x0<=10", first, 10)
	lower := constraints.GreaterOrEqual("x0>=-2", first, -2)
	zero := constraints.LessOrEqual("x0<=0", first, 0)

	testCases := []struct {
		name       string
		constraint constraints.Inequality
		x          []float64
		violation  float64
	}{
		{name: "UpperSatisfied", constraint: upper, x: []float64{5}, violation: 0},
		{name: "UpperOnBoundary", constraint: upper, x: []float64{10}, violation: 0},
		{name: "UpperViolated", constraint: upper, x: []float64{15}, violation: 0.5},
		{name: "LowerSatisfied", constraint: lower, x: []float64{-1}, violation: 0},
		{name: "LowerViolated", constraint: lower, x: []float64{-3}, violation: 0.5},
		{name: "ZeroLimitIsAbsolute", constraint: zero, x: []float64{3}, violation: 3},
		{name: "NaNIsInfinite", constraint: upper, x: []float64{math.NaN()}, violation: math.Inf(1)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.constraint.Violation(tc.x)
			if got != tc.violation {
				t.Errorf("Violation() = %v, want %v", got, tc.violation)
			}
			if tc.constraint.Satisfied(tc.x) != (tc.violation == 0) {
				t.Errorf("Satisfied() disagrees with a violation of %v", got)
			}
			if tc.constraint.Constraint()(tc.x) != (tc.violation == 0) {
				t.Errorf("Constraint() disagrees with a violation of %v", got)
			}
		})
	}
}

func TestViolationsAndTotal(t *testing.T) {
	ineqs := []constraints.Inequality{
		constraints.LessOrEqual("a", first, 10),
		constraints.GreaterOrEqual("b", func(x []float64) float64 { return x[1] }, 4),
		constraints.LessOrEqual("c", func(x []float64) float64 { return x[1] }, 100),
	}

	x := []float64{20, 1}
	want := []constraints.Violation{{Name: "a", Value: 1}, {Name: "b", Value: 0.75}}
	if diff := cmp.Diff(want, constraints.Violations(ineqs, x), cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("Violations() mismatch (-want +got):\n%s", diff)
	}
	if got := constraints.TotalViolation(ineqs, x); math.Abs(got-1.75) > 1e-12 {
		t.Errorf("TotalViolation() = %v, want 1.75", got)
	}

	if got := constraints.Violations(ineqs, []float64{1, 5}); got != nil {
		t.Errorf("expected no violations, got %v", got)
	}
}

func TestPenalty(t *testing.T) {
	penalty := constraints.Penalty{
		Inequalities: []constraints.Inequality{constraints.LessOrEqual("x0<=1", first, 1)},
		Weight:       10,
	}
	obj := penalty.Apply(func(x []float64) float64 { return 2 * x[0] })

	if got := obj([]float64{0.5}); got != 1 {
		t.Errorf("feasible point was penalized: %v", got)
	}
	if got := obj([]float64{1}); got != 2 {
		t.Errorf("boundary point was penalized: %v", got)
	}

	// the penalty grows with the violation
	prev := obj([]float64{1})
	for _, x := range []float64{1.5, 2, 4} {
		got := obj([]float64{x})
		if got <= prev {
			t.Errorf("penalized objective did not grow at x=%v: %v <= %v", x, got, prev)
		}
		prev = got
	}
	if got := penalty.Of([]float64{2}); got != 10 {
		t.Errorf("Of() = %v, want 10", got)
	}
}

func TestCombineConstraints(t *testing.T) {
	ineqs := []constraints.Inequality{
		constraints.LessOrEqual("upper", first, 1),
		constraints.GreaterOrEqual("lower", first, -1),
	}
	combined := constraints.CombineConstraints(constraints.AsConstraints(ineqs)...)

	testCases := []struct {
		name       string
		x          []float64
		shouldPass bool
	}{
		{name: "Inside", x: []float64{0}, shouldPass: true},
		{name: "AboveUpper", x: []float64{2}, shouldPass: false},
		{name: "BelowLower", x: []float64{-2}, shouldPass: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := combined(tc.x); got != tc.shouldPass {
				t.Errorf("Expected %v, got %v", tc.shouldPass, got)
			}
		})
	}

	if !constraints.CombineConstraints()([]float64{42}) {
		t.Errorf("an empty combination must accept every point")
	}
	var _ framework.Constraint = combined
}
