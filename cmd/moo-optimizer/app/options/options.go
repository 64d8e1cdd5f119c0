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

// Package options provides the flags used by the moo-optimizer run command.
package options

import (
	"github.com/spf13/pflag"
	"k8s.io/utils/ptr"

	"sigs.k8s.io/moo-optimizer/pkg/api/v1alpha1"
)

// OptimizerOptions holds the command line overrides of an args file
type OptimizerOptions struct {
	ConfigFile string

	Problem        string
	NumVariables   int32
	PopulationSize int32
	Generations    int32
	Seed           uint64
	Workers        int32

	OutputDir   string
	MetricsFile string
	Weights     []float64

	OTelCollectorEndpoint string
	OTelSampleRate        float64
}

// NewOptimizerOptions creates a new OptimizerOptions with default parameters
func NewOptimizerOptions() *OptimizerOptions {
	return &OptimizerOptions{
		OTelSampleRate: v1alpha1.DefaultSampleRate,
	}
}

// AddFlags adds flags for a specific OptimizerOptions to the specified FlagSet
func (o *OptimizerOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.ConfigFile, "config", o.ConfigFile, "File with the optimizer args (YAML). Flags override its values.")
	fs.StringVar(&o.Problem, "problem", o.Problem, "Problem to optimize: weldedbeam, zdt1, zdt2, zdt3, dtlz1, dtlz2 or linear.")
	fs.Int32Var(&o.NumVariables, "num-variables", o.NumVariables, "Number of decision variables of a benchmark problem.")
	fs.Int32Var(&o.PopulationSize, "population-size", o.PopulationSize, "Number of individuals per generation. Must be even.")
	fs.Int32Var(&o.Generations, "generations", o.Generations, "Number of generations, the initial population included.")
	fs.Uint64Var(&o.Seed, "seed", o.Seed, "Seed of the random number generator. Runs with the same seed and args are identical.")
	fs.Int32Var(&o.Workers, "workers", o.Workers, "Maximum number of concurrent evaluations. 0 evaluates sequentially.")
	fs.StringVar(&o.OutputDir, "output-dir", o.OutputDir, "Directory receiving the HTML plots of the run.")
	fs.StringVar(&o.MetricsFile, "metrics-file", o.MetricsFile, "File receiving the Prometheus metrics of the run in text format.")
	fs.Float64SliceVar(&o.Weights, "weights", o.Weights, "Objective weights used to recommend a design of the final front.")
	fs.StringVar(&o.OTelCollectorEndpoint, "otel-collector-endpoint", o.OTelCollectorEndpoint, "OTLP gRPC endpoint receiving the traces of the run. Tracing is disabled when empty.")
	fs.Float64Var(&o.OTelSampleRate, "otel-sample-rate", o.OTelSampleRate, "Fraction of runs to trace.")
}

// Args reads the args file, applies the flags that were set on fs, defaults
// the result and validates it.
func (o *OptimizerOptions) Args(fs *pflag.FlagSet) (*v1alpha1.OptimizerArgs, error) {
	args, err := v1alpha1.ReadArgs(o.ConfigFile)
	if err != nil {
		return nil, err
	}
	o.ApplyTo(args, fs)
	v1alpha1.SetDefaults_OptimizerArgs(args)
	if err := v1alpha1.ValidateOptimizerArgs(args); err != nil {
		return nil, err
	}
	return args, nil
}

// ApplyTo overrides the fields of args whose flag was set on fs.
func (o *OptimizerOptions) ApplyTo(args *v1alpha1.OptimizerArgs, fs *pflag.FlagSet) {
	if fs.Changed("problem") && o.Problem != args.Problem.Name {
		// settings of another problem do not carry over
		args.Problem = v1alpha1.ProblemSpec{Name: o.Problem}
	}
	if fs.Changed("num-variables") {
		args.Problem.NumVariables = ptr.To(o.NumVariables)
	}
	if fs.Changed("population-size") {
		args.Algorithm.PopulationSize = o.PopulationSize
	}
	if fs.Changed("generations") {
		args.Algorithm.Generations = o.Generations
	}
	if fs.Changed("seed") {
		args.Algorithm.Seed = ptr.To(o.Seed)
	}
	if fs.Changed("workers") {
		args.Algorithm.Workers = o.Workers
	}
	if fs.Changed("output-dir") {
		args.Output.Directory = o.OutputDir
	}
	if fs.Changed("metrics-file") {
		args.Output.MetricsFile = o.MetricsFile
	}
	if fs.Changed("weights") {
		args.Output.Weights = o.Weights
	}
	if fs.Changed("otel-collector-endpoint") || fs.Changed("otel-sample-rate") {
		if args.Tracing == nil {
			args.Tracing = &v1alpha1.TracingSpec{Insecure: true}
		}
		if fs.Changed("otel-collector-endpoint") {
			args.Tracing.CollectorEndpoint = o.OTelCollectorEndpoint
		}
		if fs.Changed("otel-sample-rate") {
			args.Tracing.SampleRate = ptr.To(o.OTelSampleRate)
		}
	}
}
