/*
Copyright 2024 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package v1alpha1

import (
	"fmt"
	"math"

	"k8s.io/apimachinery/pkg/util/sets"
	"k8s.io/apimachinery/pkg/util/validation/field"

	"sigs.k8s.io/moo-optimizer/pkg/multiobjective/framework"
)

var (
	knownProblems   = sets.New(ProblemWeldedBeam, ProblemZDT1, ProblemZDT2, ProblemZDT3, ProblemDTLZ1, ProblemDTLZ2, ProblemLinear)
	knownDirections = sets.New("minimize", "min", "maximize", "max")
)

// NumObjectivesOrDefault returns the number of objectives of the configured problem.
func (p *ProblemSpec) NumObjectivesOrDefault() int {
	switch p.Name {
	case ProblemDTLZ1, ProblemDTLZ2:
		if p.NumObjectives != nil {
			return int(*p.NumObjectives)
		}
	}
	return 2
}

// ValidateOptimizerArgs validates defaulted optimizer arguments
func ValidateOptimizerArgs(args *OptimizerArgs) error {
	var allErrs field.ErrorList

	if args.APIVersion != "" && args.APIVersion != SchemeGroupVersion.String() {
		allErrs = append(allErrs, field.NotSupported(field.NewPath("apiVersion"), args.APIVersion, []string{SchemeGroupVersion.String()}))
	}
	if args.Kind != "" && args.Kind != Kind {
		allErrs = append(allErrs, field.NotSupported(field.NewPath("kind"), args.Kind, []string{Kind}))
	}

	allErrs = append(allErrs, validateProblem(&args.Problem, field.NewPath("problem"))...)
	numObjectives := args.Problem.NumObjectivesOrDefault()
	allErrs = append(allErrs, validateAlgorithm(&args.Algorithm, numObjectives, field.NewPath("algorithm"))...)
	allErrs = append(allErrs, validateOutput(&args.Output, numObjectives, field.NewPath("output"))...)
	if args.Tracing != nil {
		allErrs = append(allErrs, validateTracing(args.Tracing, field.NewPath("tracing"))...)
	}

	if len(allErrs) == 0 {
		return nil
	}
	return framework.NewConfigurationError(allErrs)
}

func validateProblem(p *ProblemSpec, fldPath *field.Path) field.ErrorList {
	var allErrs field.ErrorList

	if !knownProblems.Has(p.Name) {
		return append(allErrs, field.NotSupported(fldPath.Child("name"), p.Name, sets.List(knownProblems)))
	}

	if p.Name == ProblemWeldedBeam {
		if p.NumVariables != nil && *p.NumVariables != 4 {
			allErrs = append(allErrs, field.Invalid(fldPath.Child("numVariables"), *p.NumVariables, "the welded beam has exactly 4 variables"))
		}
		if wb := p.WeldedBeam; wb != nil {
			wbPath := fldPath.Child("weldedBeam")
			if wb.CostScale != nil && !(*wb.CostScale > 0) {
				allErrs = append(allErrs, field.Invalid(wbPath.Child("costScale"), *wb.CostScale, "must be greater than 0"))
			}
			if wb.DeflectionScale != nil && !(*wb.DeflectionScale > 0) {
				allErrs = append(allErrs, field.Invalid(wbPath.Child("deflectionScale"), *wb.DeflectionScale, "must be greater than 0"))
			}
			if wb.PenaltyWeight != nil && !(*wb.PenaltyWeight >= 0) {
				allErrs = append(allErrs, field.Invalid(wbPath.Child("penaltyWeight"), *wb.PenaltyWeight, "must be non-negative"))
			}
		}
		return allErrs
	}

	if p.WeldedBeam != nil {
		allErrs = append(allErrs, field.Forbidden(fldPath.Child("weldedBeam"), fmt.Sprintf("only allowed for problem %q", ProblemWeldedBeam)))
	}

	numObjectives := p.NumObjectivesOrDefault()
	if p.NumObjectives != nil && p.Name != ProblemDTLZ1 && p.Name != ProblemDTLZ2 && *p.NumObjectives != 2 {
		allErrs = append(allErrs, field.Invalid(fldPath.Child("numObjectives"), *p.NumObjectives, fmt.Sprintf("problem %q has 2 objectives", p.Name)))
	}
	if numObjectives < 2 || numObjectives > 3 {
		allErrs = append(allErrs, field.Invalid(fldPath.Child("numObjectives"), numObjectives, "must be 2 or 3"))
	}

	if p.NumVariables == nil {
		allErrs = append(allErrs, field.Required(fldPath.Child("numVariables"), ""))
	} else if int(*p.NumVariables) < numObjectives {
		allErrs = append(allErrs, field.Invalid(fldPath.Child("numVariables"), *p.NumVariables,
			fmt.Sprintf("must be at least the number of objectives (%d)", numObjectives)))
	}

	return allErrs
}

func validateAlgorithm(a *AlgorithmSpec, numObjectives int, fldPath *field.Path) field.ErrorList {
	var allErrs field.ErrorList

	if a.PopulationSize < 2 || a.PopulationSize%2 != 0 {
		allErrs = append(allErrs, field.Invalid(fldPath.Child("populationSize"), a.PopulationSize, "must be an even number of at least 2"))
	}
	if a.Generations < 1 {
		allErrs = append(allErrs, field.Invalid(fldPath.Child("generations"), a.Generations, "must be at least 1"))
	}
	allErrs = append(allErrs, validateProbability(a.CrossoverProbability, fldPath.Child("crossoverProbability"))...)
	allErrs = append(allErrs, validateProbability(a.MutationProbability, fldPath.Child("mutationProbability"))...)
	allErrs = append(allErrs, validateEta(a.CrossoverEta, fldPath.Child("crossoverEta"))...)
	allErrs = append(allErrs, validateEta(a.MutationEta, fldPath.Child("mutationEta"))...)
	if a.Workers < 0 {
		allErrs = append(allErrs, field.Invalid(fldPath.Child("workers"), a.Workers, "must be non-negative"))
	}

	if len(a.Directions) > 0 {
		if len(a.Directions) != numObjectives {
			allErrs = append(allErrs, field.Invalid(fldPath.Child("directions"), a.Directions,
				fmt.Sprintf("must have one entry per objective (%d)", numObjectives)))
		}
		for i, d := range a.Directions {
			if !knownDirections.Has(d) {
				allErrs = append(allErrs, field.NotSupported(fldPath.Child("directions").Index(i), d, []string{"minimize", "maximize"}))
			}
		}
	}

	if len(a.ReferencePoint) > 0 {
		if len(a.ReferencePoint) != numObjectives {
			allErrs = append(allErrs, field.Invalid(fldPath.Child("referencePoint"), a.ReferencePoint,
				fmt.Sprintf("must have one coordinate per objective (%d)", numObjectives)))
		}
		for i, v := range a.ReferencePoint {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				allErrs = append(allErrs, field.Invalid(fldPath.Child("referencePoint").Index(i), v, "must be finite"))
			}
		}
	}

	return allErrs
}

func validateOutput(o *OutputSpec, numObjectives int, fldPath *field.Path) field.ErrorList {
	var allErrs field.ErrorList
	if len(o.Weights) == 0 {
		return allErrs
	}
	if len(o.Weights) != numObjectives {
		allErrs = append(allErrs, field.Invalid(fldPath.Child("weights"), o.Weights,
			fmt.Sprintf("must have one weight per objective (%d)", numObjectives)))
	}
	sum := 0.0
	for i, w := range o.Weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			allErrs = append(allErrs, field.Invalid(fldPath.Child("weights").Index(i), w, "must be a non-negative number"))
		}
		sum += w
	}
	if sum == 0 {
		allErrs = append(allErrs, field.Invalid(fldPath.Child("weights"), o.Weights, "must not all be zero"))
	}
	return allErrs
}

func validateTracing(t *TracingSpec, fldPath *field.Path) field.ErrorList {
	var allErrs field.ErrorList
	if t.SampleRate != nil && (*t.SampleRate < 0 || *t.SampleRate > 1) {
		allErrs = append(allErrs, field.Invalid(fldPath.Child("sampleRate"), *t.SampleRate, "must be between 0 and 1"))
	}
	return allErrs
}

func validateProbability(p *float64, fldPath *field.Path) field.ErrorList {
	if p == nil {
		return field.ErrorList{field.Required(fldPath, "")}
	}
	if !(*p >= 0 && *p <= 1) {
		return field.ErrorList{field.Invalid(fldPath, *p, "must be between 0 and 1")}
	}
	return nil
}

func validateEta(eta *float64, fldPath *field.Path) field.ErrorList {
	if eta == nil {
		return field.ErrorList{field.Required(fldPath, "")}
	}
	if !(*eta >= 0) || math.IsInf(*eta, 0) {
		return field.ErrorList{field.Invalid(fldPath, *eta, "must be a finite non-negative number")}
	}
	return nil
}
