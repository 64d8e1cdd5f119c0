package framework

import (
	"fmt"
	"math"
)

// Problem describes the contract a specific multi-objective problem needs to implement.
type Problem interface {
	Name() string

	ObjectiveFuncs() []ObjectiveFunc
	Constraints() []Constraint
	Bounds() []Bounds

	// TrueParetoFront is optional due to the difficulty of finding the true front
	// in some types of problems. When there isn't a way to find the true front,
	// just return nil.
	TrueParetoFront(int) []ObjectiveSpacePoint
}

// Algorithm describes the contract that a MOO algorithm needs to implement.
type Algorithm interface {
	Name() string
}

// ObjectiveFunc computes a single objective for the decision variables x.
type ObjectiveFunc func(x []float64) float64

// Constraint returns true if the constraint is satisfied and false otherwise.
type Constraint func(x []float64) bool

// Bounds is the closed interval [L, H] a decision variable lives in.
type Bounds struct {
	L float64
	H float64
}

// Width returns H - L.
func (b Bounds) Width() float64 {
	return b.H - b.L
}

// Clip returns v limited to [L, H].
func (b Bounds) Clip(v float64) float64 {
	return math.Max(b.L, math.Min(b.H, v))
}

// Contains reports whether L <= v <= H.
func (b Bounds) Contains(v float64) bool {
	return v >= b.L && v <= b.H
}

// UniformBounds returns n copies of [l, h].
func UniformBounds(n int, l, h float64) []Bounds {
	b := make([]Bounds, n)
	for i := range b {
		b[i] = Bounds{L: l, H: h}
	}
	return b
}

// ObjectiveSpacePoint represents an N-dimensional point in the objective space.
// As an example, for a problem with 2 objective functions f1 and f2, a point
// in the objective space could be [f1(x'), f2(x')], for the input of x'.
type ObjectiveSpacePoint []float64

// Dominates reports whether p Pareto-dominates q under minimization of every
// objective: p is no worse than q everywhere and strictly better somewhere.
//
// Both points must have the same length and contain no NaN. Violations panic,
// since an undefined order would silently corrupt the ranking.
func (p ObjectiveSpacePoint) Dominates(q ObjectiveSpacePoint) bool {
	if len(p) != len(q) {
		panic(fmt.Sprintf("dominance between points of different dimension: %d vs %d", len(p), len(q)))
	}
	better := false
	for i := range p {
		if math.IsNaN(p[i]) || math.IsNaN(q[i]) {
			panic(fmt.Sprintf("dominance with NaN objective at index %d: %v vs %v", i, p, q))
		}
		if p[i] > q[i] {
			return false
		}
		if p[i] < q[i] {
			better = true
		}
	}
	return better
}

// Clone returns an independent copy of p.
func (p ObjectiveSpacePoint) Clone() ObjectiveSpacePoint {
	if p == nil {
		return nil
	}
	c := make(ObjectiveSpacePoint, len(p))
	copy(c, p)
	return c
}

// Direction tells whether an objective is minimized or maximized.
type Direction int

const (
	Minimize Direction = iota
	Maximize
)

func (d Direction) String() string {
	switch d {
	case Minimize:
		return "minimize"
	case Maximize:
		return "maximize"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection accepts "minimize"/"min" and "maximize"/"max".
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "minimize", "min":
		return Minimize, nil
	case "maximize", "max":
		return Maximize, nil
	}
	return Minimize, fmt.Errorf("unknown objective direction %q", s)
}

// Sign is the factor turning a raw objective value into its minimization form.
func (d Direction) Sign() float64 {
	if d == Maximize {
		return -1
	}
	return 1
}
