package constraints

import (
	"math"

	"sigs.k8s.io/moo-optimizer/pkg/multiobjective/framework"
)

// Inequality is a named constraint of the form g(x) <= 0. G is expected to be
// normalized so that violations of different constraints are comparable.
type Inequality struct {
	Name string
	G    func(x []float64) float64
}

// Violation is the amount by which a constraint is exceeded.
type Violation struct {
	Name  string
	Value float64
}

// LessOrEqual creates the constraint f(x) <= limit. The violation is relative
// to |limit| unless limit is zero.
func LessOrEqual(name string, f func(x []float64) float64, limit float64) Inequality {
	scale := relativeScale(limit)
	return Inequality{
		Name: name,
		G: func(x []float64) float64 {
			return (f(x) - limit) / scale
		},
	}
}

// GreaterOrEqual creates the constraint f(x) >= limit.
func GreaterOrEqual(name string, f func(x []float64) float64, limit float64) Inequality {
	scale := relativeScale(limit)
	return Inequality{
		Name: name,
		G: func(x []float64) float64 {
			return (limit - f(x)) / scale
		},
	}
}

func relativeScale(limit float64) float64 {
	if limit == 0 {
		return 1
	}
	return math.Abs(limit)
}

// Violation returns max(0, g(x)). A NaN g is treated as an infinite violation.
func (c Inequality) Violation(x []float64) float64 {
	g := c.G(x)
	if math.IsNaN(g) {
		return math.Inf(1)
	}
	return math.Max(0, g)
}

// Satisfied reports whether g(x) <= 0.
func (c Inequality) Satisfied(x []float64) bool {
	return c.Violation(x) == 0
}

// Constraint adapts the inequality to a framework.Constraint.
func (c Inequality) Constraint() framework.Constraint {
	return c.Satisfied
}

// AsConstraints adapts every inequality to a framework.Constraint.
func AsConstraints(ineqs []Inequality) []framework.Constraint {
	out := make([]framework.Constraint, len(ineqs))
	for i, c := range ineqs {
		out[i] = c.Constraint()
	}
	return out
}

// TotalViolation sums the violations of ineqs at x.
func TotalViolation(ineqs []Inequality, x []float64) float64 {
	total := 0.0
	for _, c := range ineqs {
		total += c.Violation(x)
	}
	return total
}

// Violations lists the constraints of ineqs that x does not satisfy, in order.
func Violations(ineqs []Inequality, x []float64) []Violation {
	var out []Violation
	for _, c := range ineqs {
		if v := c.Violation(x); v > 0 {
			out = append(out, Violation{Name: c.Name, Value: v})
		}
	}
	return out
}

// Penalty folds inequality constraints into an objective by adding Weight
// times the total violation.
type Penalty struct {
	Inequalities []Inequality
	Weight       float64
}

// Apply returns obj with the penalty added. Feasible points keep their value.
func (p Penalty) Apply(obj framework.ObjectiveFunc) framework.ObjectiveFunc {
	return func(x []float64) float64 {
		return obj(x) + p.Of(x)
	}
}

// Of returns the penalty at x.
func (p Penalty) Of(x []float64) float64 {
	v := TotalViolation(p.Inequalities, x)
	if v == 0 {
		return 0
	}
	return p.Weight * v
}

// CombineConstraints combines multiple constraints into one
func CombineConstraints(constraints ...framework.Constraint) framework.Constraint {
	return func(x []float64) bool {
		for _, constraint := range constraints {
			if !constraint(x) {
				return false
			}
		}
		return true
	}
}
