package benchmarks

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"k8s.io/klog/v2"

	"sigs.k8s.io/moo-optimizer/pkg/multiobjective/algorithms"
	"sigs.k8s.io/moo-optimizer/pkg/multiobjective/framework"
	"sigs.k8s.io/moo-optimizer/pkg/multiobjective/indicators"
	"sigs.k8s.io/moo-optimizer/pkg/multiobjective/util"
)

const trueFrontSamples = 500

// TestSuite runs a set of benchmark problems
type TestSuite struct {
	problems []framework.Problem
	config   algorithms.NSGA2Config
}

// Result summarizes one benchmark run. Indicators are NaN when the problem
// has no known front.
type Result struct {
	Problem     string
	FrontSize   int
	Hypervolume float64
	IGD         float64
	GD          float64
}

// NewTestSuite creates a new benchmark test suite
func NewTestSuite(config algorithms.NSGA2Config) *TestSuite {
	return &TestSuite{
		config: config,
	}
}

// AddProblem adds a problem to the test suite
func (ts *TestSuite) AddProblem(p framework.Problem) {
	ts.problems = append(ts.problems, p)
}

// AddStandardProblems adds common benchmark problems
func (ts *TestSuite) AddStandardProblems() {
	// ZDT problems with 30 variables (standard)
	ts.AddProblem(NewZDT1(30))
	ts.AddProblem(NewZDT2(30))
	ts.AddProblem(NewZDT3(30))

	// 2 objectives, 6 variables (M + k - 1, where k=5 for DTLZ1)
	ts.AddProblem(NewDTLZ1(6, 2))
	// 2 objectives, 11 variables (M + k - 1, where k=10 for DTLZ2)
	ts.AddProblem(NewDTLZ2(11, 2))

	// 3 objectives versions
	ts.AddProblem(NewDTLZ1(7, 3))
	ts.AddProblem(NewDTLZ2(12, 3))
}

// Run executes the test suite. When outputDir is not empty, a front plot is
// written there for every two-objective problem.
func (ts *TestSuite) Run(ctx context.Context, outputDir string) ([]Result, error) {
	logger := klog.FromContext(ctx)

	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	results := make([]Result, 0, len(ts.problems))
	for _, problem := range ts.problems {
		logger.Info("Running benchmark", "algorithm", algorithms.Name, "problem", problem.Name())

		result, paretoFront, err := ts.runOne(ctx, problem)
		if err != nil {
			return results, fmt.Errorf("running %s: %w", problem.Name(), err)
		}
		results = append(results, result)

		if outputDir != "" && len(problem.ObjectiveFuncs()) == 2 {
			plotFile := filepath.Join(outputDir, fmt.Sprintf("%s_%s_results.html", problem.Name(), algorithms.Name))
			if err := util.PlotResults(paretoFront, problem, algorithms.Name, plotFile); err != nil {
				logger.Error(err, "Failed to plot results", "problem", problem.Name())
			}
		}

		logger.Info("Benchmark done", "problem", problem.Name(), "frontSize", result.FrontSize,
			"hypervolume", result.Hypervolume, "igd", result.IGD, "gd", result.GD)
	}

	return results, nil
}

func (ts *TestSuite) runOne(ctx context.Context, problem framework.Problem) (Result, []framework.ObjectiveSpacePoint, error) {
	nsga2, err := algorithms.NewNSGAII(ts.config, problem)
	if err != nil {
		return Result{}, nil, err
	}
	finalPop, err := nsga2.Run(ctx)
	if err != nil {
		return Result{}, nil, err
	}

	paretoFront := algorithms.GetParetoFront(finalPop)
	result := Result{
		Problem:     problem.Name(),
		FrontSize:   len(paretoFront),
		Hypervolume: math.NaN(),
		IGD:         math.NaN(),
		GD:          math.NaN(),
	}

	trueFront := problem.TrueParetoFront(trueFrontSamples)
	if len(trueFront) == 0 {
		return result, paretoFront, nil
	}

	result.IGD = indicators.IGD(paretoFront, trueFront)
	result.GD = indicators.GD(paretoFront, trueFront)
	hv, err := indicators.Hypervolume(paretoFront, ReferencePoint(trueFront))
	if err != nil {
		return Result{}, nil, err
	}
	result.Hypervolume = hv
	return result, paretoFront, nil
}

// ReferencePoint returns the nadir of front shifted by 0.1 in every
// objective, the usual hypervolume reference for the benchmark problems.
func ReferencePoint(front []framework.ObjectiveSpacePoint) framework.ObjectiveSpacePoint {
	if len(front) == 0 {
		return nil
	}
	ref := front[0].Clone()
	for _, p := range front[1:] {
		for k, v := range p {
			ref[k] = math.Max(ref[k], v)
		}
	}
	for k := range ref {
		ref[k] += 0.1
	}
	return ref
}
