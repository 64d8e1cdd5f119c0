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

package app

import (
	"fmt"

	"k8s.io/utils/ptr"

	"sigs.k8s.io/moo-optimizer/pkg/api/v1alpha1"
	"sigs.k8s.io/moo-optimizer/pkg/multiobjective/algorithms"
	"sigs.k8s.io/moo-optimizer/pkg/multiobjective/benchmarks"
	"sigs.k8s.io/moo-optimizer/pkg/multiobjective/framework"
	"sigs.k8s.io/moo-optimizer/pkg/multiobjective/problems/weldedbeam"
)

// NewProblem builds the problem described by a defaulted spec.
func NewProblem(spec v1alpha1.ProblemSpec) (framework.Problem, error) {
	numVariables := int(ptr.Deref(spec.NumVariables, 0))
	numObjectives := spec.NumObjectivesOrDefault()

	switch spec.Name {
	case v1alpha1.ProblemWeldedBeam:
		opts := weldedbeam.DefaultOptions()
		if wb := spec.WeldedBeam; wb != nil {
			opts.CostScale = ptr.Deref(wb.CostScale, opts.CostScale)
			opts.DeflectionScale = ptr.Deref(wb.DeflectionScale, opts.DeflectionScale)
			opts.PenaltyWeight = ptr.Deref(wb.PenaltyWeight, opts.PenaltyWeight)
			opts.Compress = ptr.Deref(wb.Compress, opts.Compress)
		}
		return weldedbeam.New(opts), nil
	case v1alpha1.ProblemZDT1:
		return benchmarks.NewZDT1(numVariables), nil
	case v1alpha1.ProblemZDT2:
		return benchmarks.NewZDT2(numVariables), nil
	case v1alpha1.ProblemZDT3:
		return benchmarks.NewZDT3(numVariables), nil
	case v1alpha1.ProblemDTLZ1:
		return benchmarks.NewDTLZ1(numVariables, numObjectives), nil
	case v1alpha1.ProblemDTLZ2:
		return benchmarks.NewDTLZ2(numVariables, numObjectives), nil
	case v1alpha1.ProblemLinear:
		return benchmarks.NewLinear(numVariables), nil
	}
	return nil, fmt.Errorf("unknown problem %q", spec.Name)
}

// NewNSGA2Config converts defaulted algorithm settings to an NSGA2Config.
func NewNSGA2Config(spec v1alpha1.AlgorithmSpec) (algorithms.NSGA2Config, error) {
	config := algorithms.DefaultNSGA2Config()
	config.PopulationSize = int(spec.PopulationSize)
	config.MaxGenerations = int(spec.Generations)
	config.CrossoverProbability = ptr.Deref(spec.CrossoverProbability, config.CrossoverProbability)
	config.MutationProbability = ptr.Deref(spec.MutationProbability, config.MutationProbability)
	config.CrossoverEta = ptr.Deref(spec.CrossoverEta, config.CrossoverEta)
	config.MutationEta = ptr.Deref(spec.MutationEta, config.MutationEta)
	config.Seed = ptr.Deref(spec.Seed, config.Seed)
	config.Workers = int(spec.Workers)

	for _, d := range spec.Directions {
		direction, err := framework.ParseDirection(d)
		if err != nil {
			return algorithms.NSGA2Config{}, err
		}
		config.Directions = append(config.Directions, direction)
	}
	if len(spec.ReferencePoint) > 0 {
		config.ReferencePoint = framework.ObjectiveSpacePoint(spec.ReferencePoint).Clone()
	}
	return config, nil
}
