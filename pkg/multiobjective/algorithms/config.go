package algorithms

import (
	"math"

	"k8s.io/apimachinery/pkg/util/validation/field"

	"sigs.k8s.io/moo-optimizer/pkg/multiobjective/framework"
)

const (
	// DefaultEta is the usual distribution index for SBX and polynomial mutation.
	DefaultEta = 20.0
)

// NSGA2Config holds configuration parameters for NSGA-II
type NSGA2Config struct {
	PopulationSize int
	// MaxGenerations counts the initial population as generation 0, so a run
	// performs MaxGenerations-1 rounds of variation.
	MaxGenerations int

	// CrossoverProbability is applied once per mating pair.
	CrossoverProbability float64
	// MutationProbability is applied independently to every gene.
	MutationProbability float64
	CrossoverEta        float64
	MutationEta         float64

	// Directions has one entry per objective. Nil means every objective is minimized.
	Directions []framework.Direction
	// ReferencePoint, in raw objective units, enables hypervolume reporting.
	ReferencePoint framework.ObjectiveSpacePoint

	Seed uint64
	// Workers bounds concurrent evaluations. 0 or 1 evaluates sequentially.
	Workers int
}

// DefaultNSGA2Config returns the settings used when nothing else is specified.
func DefaultNSGA2Config() NSGA2Config {
	return NSGA2Config{
		PopulationSize:       100,
		MaxGenerations:       250,
		CrossoverProbability: 0.9,
		MutationProbability:  0.1,
		CrossoverEta:         DefaultEta,
		MutationEta:          DefaultEta,
		Seed:                 1,
	}
}

// Validate checks the configuration against a problem with the given bounds and
// number of objectives. All violations are reported together.
func (c NSGA2Config) Validate(bounds []framework.Bounds, numObjectives int) error {
	var errs field.ErrorList

	if c.PopulationSize < 2 || c.PopulationSize%2 != 0 {
		errs = append(errs, field.Invalid(field.NewPath("populationSize"), c.PopulationSize, "must be an even number >= 2"))
	}
	if c.MaxGenerations < 1 {
		errs = append(errs, field.Invalid(field.NewPath("maxGenerations"), c.MaxGenerations, "must be >= 1"))
	}
	errs = append(errs, validateProbability(field.NewPath("crossoverProbability"), c.CrossoverProbability)...)
	errs = append(errs, validateProbability(field.NewPath("mutationProbability"), c.MutationProbability)...)
	if c.CrossoverEta < 0 || math.IsNaN(c.CrossoverEta) || math.IsInf(c.CrossoverEta, 0) {
		errs = append(errs, field.Invalid(field.NewPath("crossoverEta"), c.CrossoverEta, "must be a finite value >= 0"))
	}
	if c.MutationEta < 0 || math.IsNaN(c.MutationEta) || math.IsInf(c.MutationEta, 0) {
		errs = append(errs, field.Invalid(field.NewPath("mutationEta"), c.MutationEta, "must be a finite value >= 0"))
	}
	if c.Workers < 0 {
		errs = append(errs, field.Invalid(field.NewPath("workers"), c.Workers, "must be >= 0"))
	}

	boundsPath := field.NewPath("bounds")
	if len(bounds) == 0 {
		errs = append(errs, field.Required(boundsPath, "problem must have at least one variable"))
	}
	for i, b := range bounds {
		if math.IsNaN(b.L) || math.IsNaN(b.H) || math.IsInf(b.L, 0) || math.IsInf(b.H, 0) || b.L >= b.H {
			errs = append(errs, field.Invalid(boundsPath.Index(i), b, "lower bound must be finite and strictly below a finite upper bound"))
		}
	}

	if numObjectives < 1 {
		errs = append(errs, field.Required(field.NewPath("objectives"), "problem must have at least one objective"))
	}
	if c.Directions != nil && len(c.Directions) != numObjectives {
		errs = append(errs, field.Invalid(field.NewPath("directions"), len(c.Directions), "must have one entry per objective"))
	}
	for i, d := range c.Directions {
		if d != framework.Minimize && d != framework.Maximize {
			errs = append(errs, field.NotSupported(field.NewPath("directions").Index(i), d.String(), []string{"minimize", "maximize"}))
		}
	}
	if c.ReferencePoint != nil {
		refPath := field.NewPath("referencePoint")
		if len(c.ReferencePoint) != numObjectives {
			errs = append(errs, field.Invalid(refPath, len(c.ReferencePoint), "must have one entry per objective"))
		}
		for i, v := range c.ReferencePoint {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				errs = append(errs, field.Invalid(refPath.Index(i), v, "must be finite"))
			}
		}
	}

	if len(errs) > 0 {
		return framework.NewConfigurationError(errs)
	}
	return nil
}

func validateProbability(path *field.Path, p float64) field.ErrorList {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return field.ErrorList{field.Invalid(path, p, "must be between 0 and 1")}
	}
	return nil
}

// direction returns the direction of objective m.
func (c NSGA2Config) direction(m int) framework.Direction {
	if c.Directions == nil {
		return framework.Minimize
	}
	return c.Directions[m]
}

// normalize returns the minimization form of raw.
func (c NSGA2Config) normalize(raw framework.ObjectiveSpacePoint) framework.ObjectiveSpacePoint {
	res := make(framework.ObjectiveSpacePoint, len(raw))
	for m, v := range raw {
		res[m] = c.direction(m).Sign() * v
	}
	return res
}
