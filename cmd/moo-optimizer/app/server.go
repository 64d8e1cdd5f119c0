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

// Package app implements the moo-optimizer command.
package app

import (
	"context"
	goflag "flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
	"k8s.io/utils/ptr"

	"sigs.k8s.io/moo-optimizer/cmd/moo-optimizer/app/options"
	"sigs.k8s.io/moo-optimizer/pkg/api/v1alpha1"
	"sigs.k8s.io/moo-optimizer/pkg/multiobjective/algorithms"
	"sigs.k8s.io/moo-optimizer/pkg/multiobjective/metrics"
	"sigs.k8s.io/moo-optimizer/pkg/multiobjective/util"
	"sigs.k8s.io/moo-optimizer/pkg/tracing"
)

// NewOptimizerCommand creates the root command with the run and version subcommands.
func NewOptimizerCommand(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "moo-optimizer",
		Short: "moo-optimizer",
		Long: `The moo-optimizer searches the Pareto front of multi-objective design problems
with NSGA-II and reports the nondominated designs it found.`,
		SilenceUsage: true,
	}
	cmd.SetOut(out)

	klogFlags := goflag.NewFlagSet("klog", goflag.ContinueOnError)
	klog.InitFlags(klogFlags)
	cmd.PersistentFlags().AddGoFlagSet(klogFlags)

	cmd.AddCommand(NewRunCommand(out))
	cmd.AddCommand(NewVersionCommand(out))
	return cmd
}

// NewRunCommand creates the command running one optimization.
func NewRunCommand(out io.Writer) *cobra.Command {
	o := options.NewOptimizerOptions()
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Optimize a problem and print its Pareto front",
		RunE: func(cmd *cobra.Command, _ []string) error {
			args, err := o.Args(cmd.Flags())
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			ctx = klog.NewContext(ctx, klog.Background())

			_, err = Run(ctx, args, cmd.OutOrStdout())
			return err
		},
	}
	cmd.SetOut(out)
	o.AddFlags(cmd.Flags())
	return cmd
}

// Result is what a run leaves behind besides its report.
type Result struct {
	Population []*algorithms.NSGAIISolution
	Front      []*algorithms.NSGAIISolution
	History    []util.Record
}

// Run optimizes the problem described by defaulted and validated args, prints
// the final front to out and writes the configured plots and metrics.
func Run(ctx context.Context, args *v1alpha1.OptimizerArgs, out io.Writer) (*Result, error) {
	logger := klog.FromContext(ctx)

	if args.Tracing != nil {
		shutdown, err := tracing.Setup(ctx, tracing.Options{
			CollectorEndpoint: args.Tracing.CollectorEndpoint,
			ServiceName:       args.Tracing.ServiceName,
			SampleRate:        ptr.Deref(args.Tracing.SampleRate, v1alpha1.DefaultSampleRate),
			Insecure:          args.Tracing.Insecure,
		})
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Error(err, "Failed to shut down tracing")
			}
		}()
	}

	problem, err := NewProblem(args.Problem)
	if err != nil {
		return nil, err
	}
	config, err := NewNSGA2Config(args.Algorithm)
	if err != nil {
		return nil, err
	}

	history := util.NewHistory()
	recorder := metrics.NewRecorder(problem.Name())
	nsga2, err := algorithms.NewNSGAII(config, problem,
		algorithms.WithObserver(history.Observe),
		algorithms.WithObserver(recorder.Observe))
	if err != nil {
		return nil, err
	}

	population, err := nsga2.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("optimizing %s: %w", problem.Name(), err)
	}

	front := algorithms.ParetoSet(population)
	if err := PrintReport(out, problem, front, args.Output.Weights); err != nil {
		return nil, err
	}

	if dir := args.Output.Directory; dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
		if len(problem.ObjectiveFuncs()) == 2 {
			plotFile := filepath.Join(dir, fmt.Sprintf("%s_%s_results.html", problem.Name(), algorithms.Name))
			if err := util.PlotResults(algorithms.GetParetoFront(population), problem, algorithms.Name, plotFile); err != nil {
				return nil, fmt.Errorf("plotting the front: %w", err)
			}
			logger.V(2).Info("Wrote front plot", "file", plotFile)
		}
		if config.ReferencePoint != nil {
			plotFile := filepath.Join(dir, fmt.Sprintf("%s_%s_hypervolume.html", problem.Name(), algorithms.Name))
			if err := util.PlotConvergence(history, fmt.Sprintf("%s hypervolume", problem.Name()), plotFile); err != nil {
				return nil, fmt.Errorf("plotting the hypervolume: %w", err)
			}
			logger.V(2).Info("Wrote hypervolume plot", "file", plotFile)
		}
	}

	if file := args.Output.MetricsFile; file != "" {
		if err := recorder.WriteToTextfile(file); err != nil {
			return nil, fmt.Errorf("writing metrics: %w", err)
		}
		logger.V(2).Info("Wrote metrics", "file", file)
	}

	if last, ok := history.Last(); ok {
		logger.Info("Optimization done", "problem", problem.Name(), "generations", last.Generation+1,
			"evaluations", last.Evaluations, "frontSize", last.FrontSize)
	}

	return &Result{
		Population: population,
		Front:      front,
		History:    history.Records(),
	}, nil
}
