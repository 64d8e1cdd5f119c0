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
	"k8s.io/klog/v2"
	"k8s.io/utils/ptr"
)

const (
	DefaultPopulationSize       = 100
	DefaultGenerations          = 250
	DefaultCrossoverProbability = 0.9
	DefaultEta                  = 20.0
	DefaultSeed                 = 1

	DefaultCostScale       = 40.0
	DefaultDeflectionScale = 0.02
	DefaultPenaltyWeight   = 10.0

	DefaultSampleRate = 1.0
)

// DefaultNumVariables returns the usual number of decision variables of a problem.
func DefaultNumVariables(problem string, numObjectives int32) int32 {
	switch problem {
	case ProblemZDT1, ProblemZDT2, ProblemZDT3:
		return 30
	case ProblemDTLZ1:
		// M + k - 1 with k = 5
		return numObjectives + 4
	case ProblemDTLZ2:
		// M + k - 1 with k = 10
		return numObjectives + 9
	case ProblemLinear:
		return 4
	}
	return 4
}

func SetDefaults_OptimizerArgs(args *OptimizerArgs) {
	klog.V(5).InfoS("Setting defaults", "kind", Kind)

	if args.APIVersion == "" {
		args.APIVersion = SchemeGroupVersion.String()
	}
	if args.Kind == "" {
		args.Kind = Kind
	}

	SetDefaults_ProblemSpec(&args.Problem)
	SetDefaults_AlgorithmSpec(&args.Algorithm, &args.Problem)

	if args.Tracing != nil && args.Tracing.SampleRate == nil {
		args.Tracing.SampleRate = ptr.To(DefaultSampleRate)
	}
}

func SetDefaults_ProblemSpec(p *ProblemSpec) {
	if p.Name == "" {
		p.Name = ProblemWeldedBeam
	}

	switch p.Name {
	case ProblemWeldedBeam:
		if p.WeldedBeam == nil {
			p.WeldedBeam = &WeldedBeamArgs{}
		}
		if p.WeldedBeam.CostScale == nil {
			p.WeldedBeam.CostScale = ptr.To(DefaultCostScale)
		}
		if p.WeldedBeam.DeflectionScale == nil {
			p.WeldedBeam.DeflectionScale = ptr.To(DefaultDeflectionScale)
		}
		if p.WeldedBeam.PenaltyWeight == nil {
			p.WeldedBeam.PenaltyWeight = ptr.To(DefaultPenaltyWeight)
		}
		if p.WeldedBeam.Compress == nil {
			p.WeldedBeam.Compress = ptr.To(true)
		}
	case ProblemDTLZ1, ProblemDTLZ2:
		if p.NumObjectives == nil {
			p.NumObjectives = ptr.To[int32](2)
		}
	}

	if p.NumVariables == nil && p.Name != ProblemWeldedBeam {
		p.NumVariables = ptr.To(DefaultNumVariables(p.Name, ptr.Deref(p.NumObjectives, 2)))
	}
}

func SetDefaults_AlgorithmSpec(a *AlgorithmSpec, p *ProblemSpec) {
	if a.PopulationSize == 0 {
		a.PopulationSize = DefaultPopulationSize
	}
	if a.Generations == 0 {
		a.Generations = DefaultGenerations
	}
	if a.CrossoverProbability == nil {
		a.CrossoverProbability = ptr.To(DefaultCrossoverProbability)
	}
	if a.MutationProbability == nil {
		numVariables := ptr.Deref(p.NumVariables, 4)
		if numVariables > 0 {
			a.MutationProbability = ptr.To(1.0 / float64(numVariables))
		}
	}
	if a.CrossoverEta == nil {
		a.CrossoverEta = ptr.To(DefaultEta)
	}
	if a.MutationEta == nil {
		a.MutationEta = ptr.To(DefaultEta)
	}
	if a.Seed == nil {
		a.Seed = ptr.To[uint64](DefaultSeed)
	}
}
