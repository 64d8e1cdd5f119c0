package weldedbeam

import (
	"math"

	"sigs.k8s.io/moo-optimizer/pkg/multiobjective/constraints"
)

// Physical constants of the cantilever.
const (
	// Load applied at the free end, in lb.
	Load = 6000.0
	// Overhang of the beam, in in.
	Overhang = 14.0

	MaxShearStress   = 13600.0
	MaxBendingStress = 30000.0
)

// Indexes of the decision variables.
const (
	WeldThickness = iota // h
	WeldLength           // l
	BeamHeight           // t
	BeamWidth            // b

	NumVariables
)

// Design is the full engineering analysis of one beam.
type Design struct {
	WeldThickness float64
	WeldLength    float64
	BeamHeight    float64
	BeamWidth     float64

	// Cost is the fabrication cost of weld and bar stock.
	Cost float64
	// Deflection is the end deflection of the beam under Load, in in.
	Deflection float64

	ShearStress   float64
	BendingStress float64
	BucklingLoad  float64

	Violations []constraints.Violation
}

// Feasible reports whether the design satisfies every constraint.
func (d Design) Feasible() bool {
	return len(d.Violations) == 0
}

func cost(x []float64) float64 {
	h, l, t, b := x[WeldThickness], x[WeldLength], x[BeamHeight], x[BeamWidth]
	return 1.10471*h*h*l + 0.04811*t*b*(14.0+l)
}

func deflection(x []float64) float64 {
	t, b := x[BeamHeight], x[BeamWidth]
	return 2.1952 / (t * t * t * b)
}

// shearStress combines the primary shear of the weld with the torsional
// shear caused by the eccentric load.
func shearStress(x []float64) float64 {
	h, l, t := x[WeldThickness], x[WeldLength], x[BeamHeight]

	primary := Load / (math.Sqrt2 * h * l)
	moment := Load * (Overhang + l/2)
	halfDepth := (h + t) / 2
	r := math.Sqrt(l*l/4 + halfDepth*halfDepth)
	polar := 2 * (math.Sqrt2 * h * l * (l*l/12 + halfDepth*halfDepth))
	torsional := moment * r / polar

	return math.Sqrt(primary*primary + 2*primary*torsional*l/(2*r) + torsional*torsional)
}

func bendingStress(x []float64) float64 {
	t, b := x[BeamHeight], x[BeamWidth]
	return 504000 / (t * t * b)
}

func bucklingLoad(x []float64) float64 {
	t, b := x[BeamHeight], x[BeamWidth]
	return 64746.022 * (1 - 0.0282346*t) * t * b * b * b
}

// inequalities are the design constraints, normalized by their limits.
var inequalities = []constraints.Inequality{
	constraints.LessOrEqual("shear stress", shearStress, MaxShearStress),
	constraints.LessOrEqual("bending stress", bendingStress, MaxBendingStress),
	// the weld cannot be thicker than the beam
	constraints.LessOrEqual("weld thickness", func(x []float64) float64 {
		return x[WeldThickness] - x[BeamWidth]
	}, 0),
	constraints.GreaterOrEqual("buckling load", bucklingLoad, Load),
}

// Analyze evaluates every quantity of the design x = [h, l, t, b].
func Analyze(x []float64) Design {
	return Design{
		WeldThickness: x[WeldThickness],
		WeldLength:    x[WeldLength],
		BeamHeight:    x[BeamHeight],
		BeamWidth:     x[BeamWidth],
		Cost:          cost(x),
		Deflection:    deflection(x),
		ShearStress:   shearStress(x),
		BendingStress: bendingStress(x),
		BucklingLoad:  bucklingLoad(x),
		Violations:    constraints.Violations(inequalities, x),
	}
}
