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
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

// GroupName is the group name used in this package
const GroupName = "moo.sigs.k8s.io"

// SchemeGroupVersion is group version used to identify the args files
var SchemeGroupVersion = schema.GroupVersion{Group: GroupName, Version: "v1alpha1"}

// Kind of the args document.
const Kind = "OptimizerArgs"

// Known problem names.
const (
	ProblemWeldedBeam = "weldedbeam"
	ProblemZDT1       = "zdt1"
	ProblemZDT2       = "zdt2"
	ProblemZDT3       = "zdt3"
	ProblemDTLZ1      = "dtlz1"
	ProblemDTLZ2      = "dtlz2"
	ProblemLinear     = "linear"
)

// OptimizerArgs holds the arguments of one optimization run
type OptimizerArgs struct {
	metav1.TypeMeta `json:",inline"`

	// Problem selects and parameterizes the problem to optimize
	Problem ProblemSpec `json:"problem"`

	// Algorithm holds the NSGA-II settings
	Algorithm AlgorithmSpec `json:"algorithm"`

	// Output controls the reports written at the end of the run
	Output OutputSpec `json:"output,omitempty"`

	// Tracing exports spans of the run when a collector endpoint is set
	Tracing *TracingSpec `json:"tracing,omitempty"`
}

// ProblemSpec selects the problem
type ProblemSpec struct {
	// Name is one of weldedbeam, zdt1, zdt2, zdt3, dtlz1, dtlz2 and linear
	Name string `json:"name"`

	// NumVariables is the number of decision variables of the benchmark problems.
	// The welded beam always has 4.
	NumVariables *int32 `json:"numVariables,omitempty"`

	// NumObjectives is only used by the DTLZ problems
	NumObjectives *int32 `json:"numObjectives,omitempty"`

	// WeldedBeam tunes how the welded beam constraints are folded into the objectives
	WeldedBeam *WeldedBeamArgs `json:"weldedBeam,omitempty"`
}

// WeldedBeamArgs holds the penalty settings of the welded beam problem
type WeldedBeamArgs struct {
	CostScale       *float64 `json:"costScale,omitempty"`
	DeflectionScale *float64 `json:"deflectionScale,omitempty"`
	PenaltyWeight   *float64 `json:"penaltyWeight,omitempty"`
	// Compress applies tanh to the scaled objectives
	Compress *bool `json:"compress,omitempty"`
}

// AlgorithmSpec holds the NSGA-II settings
type AlgorithmSpec struct {
	PopulationSize int32 `json:"populationSize,omitempty"`
	Generations    int32 `json:"generations,omitempty"`

	CrossoverProbability *float64 `json:"crossoverProbability,omitempty"`
	// MutationProbability is per gene. Defaults to 1/numVariables.
	MutationProbability *float64 `json:"mutationProbability,omitempty"`
	CrossoverEta        *float64 `json:"crossoverEta,omitempty"`
	MutationEta         *float64 `json:"mutationEta,omitempty"`

	Seed *uint64 `json:"seed,omitempty"`

	// Workers bounds the number of concurrent evaluations. 0 and 1 evaluate sequentially.
	Workers int32 `json:"workers,omitempty"`

	// Directions is minimize or maximize per objective. Empty means minimize everything.
	Directions []string `json:"directions,omitempty"`

	// ReferencePoint enables hypervolume reporting. It is given in raw objective values.
	ReferencePoint []float64 `json:"referencePoint,omitempty"`
}

// OutputSpec controls the reports of a run
type OutputSpec struct {
	// Directory receives the HTML plots. Empty disables plotting.
	Directory string `json:"directory,omitempty"`

	// MetricsFile receives the Prometheus metrics of the run in text format
	MetricsFile string `json:"metricsFile,omitempty"`

	// Weights, one per objective, pick the recommended design of the final front
	Weights []float64 `json:"weights,omitempty"`
}

// TracingSpec configures OpenTelemetry tracing
type TracingSpec struct {
	// CollectorEndpoint is the OTLP gRPC endpoint, for example localhost:4317
	CollectorEndpoint string   `json:"collectorEndpoint,omitempty"`
	ServiceName       string   `json:"serviceName,omitempty"`
	SampleRate        *float64 `json:"sampleRate,omitempty"`
	Insecure          bool     `json:"insecure,omitempty"`
}
