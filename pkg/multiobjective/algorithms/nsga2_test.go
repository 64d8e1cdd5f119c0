package algorithms_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"sigs.k8s.io/moo-optimizer/pkg/multiobjective/algorithms"
	"sigs.k8s.io/moo-optimizer/pkg/multiobjective/benchmarks"
	"sigs.k8s.io/moo-optimizer/pkg/multiobjective/framework"
)

func linearConfig(seed uint64) algorithms.NSGA2Config {
	config := algorithms.DefaultNSGA2Config()
	config.PopulationSize = 20
	config.MaxGenerations = 5
	config.MutationProbability = 0.25
	config.ReferencePoint = framework.ObjectiveSpacePoint{1.1, 1.1}
	config.Seed = seed
	return config
}

func run(t *testing.T, config algorithms.NSGA2Config, problem framework.Problem, opts ...algorithms.Option) []*algorithms.NSGAIISolution {
	t.Helper()
	n, err := algorithms.NewNSGAII(config, problem, opts...)
	require.NoError(t, err)
	population, err := n.Run(context.Background())
	require.NoError(t, err)
	return population
}

func variables(population []*algorithms.NSGAIISolution) [][]float64 {
	res := make([][]float64, len(population))
	for i, sol := range population {
		res[i] = sol.Variables
	}
	return res
}

func TestNSGAIILinear(t *testing.T) {
	problem := benchmarks.NewLinear(4)
	population := run(t, linearConfig(1), problem)

	require.Len(t, population, 20)
	for _, sol := range population {
		require.Len(t, sol.Variables, 4)
		for i, b := range problem.Bounds() {
			assert.True(t, b.Contains(sol.Variables[i]), "variable %d = %v out of bounds", i, sol.Variables[i])
		}
		assert.True(t, sol.Evaluated())
		assert.InDelta(t, 1.0, sol.Objectives[0]+sol.Objectives[1], 1e-12)
	}

	front := algorithms.GetParetoFront(population)
	assert.NotEmpty(t, front)
	assert.Len(t, algorithms.ParetoSet(population), len(front))
}

func TestNSGAIIReproducible(t *testing.T) {
	problem := benchmarks.NewZDT1(10)
	config := algorithms.DefaultNSGA2Config()
	config.PopulationSize = 24
	config.MaxGenerations = 15
	config.Seed = 42

	first := run(t, config, problem)
	second := run(t, config, problem)
	if diff := cmp.Diff(variables(first), variables(second)); diff != "" {
		t.Errorf("same seed produced different populations (-first +second):\n%s", diff)
	}

	config.Seed = 43
	other := run(t, config, problem)
	assert.False(t, cmp.Equal(variables(first), variables(other)), "different seeds produced the same population")
}

func TestNSGAIIWorkersMatchSequential(t *testing.T) {
	problem := benchmarks.NewZDT2(12)
	config := algorithms.DefaultNSGA2Config()
	config.PopulationSize = 30
	config.MaxGenerations = 10
	config.Seed = 7

	sequential := run(t, config, problem)
	config.Workers = 4
	concurrent := run(t, config, problem)

	if diff := cmp.Diff(variables(sequential), variables(concurrent)); diff != "" {
		t.Errorf("concurrent evaluation changed the result (-sequential +concurrent):\n%s", diff)
	}
}

func TestNSGAIIObserver(t *testing.T) {
	config := linearConfig(3)
	var snapshots []algorithms.Snapshot
	run(t, config, benchmarks.NewLinear(4), algorithms.WithObserver(func(s algorithms.Snapshot) {
		snapshots = append(snapshots, s)
	}))

	require.Len(t, snapshots, config.MaxGenerations)
	for gen, s := range snapshots {
		assert.Equal(t, gen, s.Generation)
		assert.Equal(t, config.PopulationSize*(gen+1), s.Evaluations)
		assert.Len(t, s.Population, config.PopulationSize)
		assert.NotEmpty(t, s.ParetoFront)
		assert.True(t, s.HasHypervolume)
		assert.Greater(t, s.Hypervolume, 0.0)
		assert.LessOrEqual(t, s.Hypervolume, 0.71)
	}
}

func TestNSGAIIWithoutReferencePoint(t *testing.T) {
	config := linearConfig(3)
	config.ReferencePoint = nil
	calls := 0
	run(t, config, benchmarks.NewLinear(2),
		algorithms.WithHypervolume(func(_ []framework.ObjectiveSpacePoint, _ framework.ObjectiveSpacePoint) (float64, error) {
			calls++
			return 0, nil
		}),
		algorithms.WithObserver(func(s algorithms.Snapshot) {
			assert.False(t, s.HasHypervolume)
		}))
	assert.Zero(t, calls)
}

func TestNSGAIIHypervolumeImprovesOnAverage(t *testing.T) {
	const runs = 20
	problem := benchmarks.NewLinear(4)

	initial := make([]float64, 0, runs)
	final := make([]float64, 0, runs)
	for seed := uint64(1); seed <= runs; seed++ {
		var first, last float64
		run(t, linearConfig(seed), problem, algorithms.WithObserver(func(s algorithms.Snapshot) {
			if s.Generation == 0 {
				first = s.Hypervolume
			}
			last = s.Hypervolume
		}))
		initial = append(initial, first)
		final = append(final, last)
	}

	meanInitial, meanFinal := stat.Mean(initial, nil), stat.Mean(final, nil)
	t.Logf("mean hypervolume: initial %.4f, final %.4f", meanInitial, meanFinal)
	assert.GreaterOrEqual(t, meanFinal, meanInitial)
	assert.Greater(t, meanFinal, 0.6)
}

func TestNSGAIIMaximize(t *testing.T) {
	// Maximizing x0 and minimizing 1 - x0 agree, so the front collapses
	// towards x0 = 1.
	config := linearConfig(5)
	config.MaxGenerations = 40
	config.Directions = []framework.Direction{framework.Maximize, framework.Minimize}
	config.ReferencePoint = nil

	population := run(t, config, benchmarks.NewLinear(4))
	front := algorithms.ParetoSet(population)
	require.NotEmpty(t, front)
	for _, sol := range front {
		assert.Greater(t, sol.Objectives[0], 0.98)
		assert.InDelta(t, -sol.Objectives[0], sol.Value[0], 1e-12)
	}
}

func TestNSGAIIWithoutVariation(t *testing.T) {
	// Selection alone cannot create new individuals.
	config := linearConfig(9)
	config.CrossoverProbability = 0
	config.MutationProbability = 0

	seen := map[string]bool{}
	population := run(t, config, benchmarks.NewLinear(4), algorithms.WithObserver(func(s algorithms.Snapshot) {
		if s.Generation == 0 {
			for _, p := range s.Population {
				seen[fmt.Sprint(p)] = true
			}
		}
	}))

	for _, sol := range population {
		assert.True(t, seen[fmt.Sprint(sol.Objectives)], "objectives %v were not in the initial population", sol.Objectives)
	}
}

func TestNSGAIIEvaluationErrors(t *testing.T) {
	errBackend := errors.New("backend unavailable")

	testCases := []struct {
		name      string
		evaluator framework.EvaluatorFunc
		wantErr   error
	}{
		{
			name: "evaluator error",
			evaluator: func(x []float64) (framework.ObjectiveSpacePoint, error) {
				return nil, errBackend
			},
			wantErr: errBackend,
		},
		{
			name: "NaN objective",
			evaluator: func(x []float64) (framework.ObjectiveSpacePoint, error) {
				return framework.ObjectiveSpacePoint{x[0], math.NaN()}, nil
			},
			wantErr: framework.ErrNonFiniteObjective,
		},
		{
			name: "infinite objective",
			evaluator: func(x []float64) (framework.ObjectiveSpacePoint, error) {
				return framework.ObjectiveSpacePoint{math.Inf(-1), x[0]}, nil
			},
			wantErr: framework.ErrNonFiniteObjective,
		},
		{
			name: "wrong number of objectives",
			evaluator: func(x []float64) (framework.ObjectiveSpacePoint, error) {
				return framework.ObjectiveSpacePoint{x[0]}, nil
			},
			wantErr: framework.ErrObjectiveArity,
		},
	}

	for _, tc := range testCases {
		for _, workers := range []int{0, 4} {
			t.Run(fmt.Sprintf("%s/workers=%d", tc.name, workers), func(t *testing.T) {
				config := linearConfig(1)
				config.Workers = workers
				n, err := algorithms.NewNSGAII(config, benchmarks.NewLinear(4), algorithms.WithEvaluator(tc.evaluator))
				require.NoError(t, err)

				population, err := n.Run(context.Background())
				assert.Nil(t, population)
				require.ErrorIs(t, err, tc.wantErr)

				var evalErr *framework.EvaluationError
				require.ErrorAs(t, err, &evalErr)
				assert.Len(t, evalErr.Variables, 4)
			})
		}
	}
}

func TestNSGAIILateEvaluationError(t *testing.T) {
	calls := 0
	evaluator := framework.EvaluatorFunc(func(x []float64) (framework.ObjectiveSpacePoint, error) {
		calls++
		if calls > 50 {
			return nil, errors.New("quota exceeded")
		}
		return framework.ObjectiveSpacePoint{x[0], 1 - x[0]}, nil
	})

	n, err := algorithms.NewNSGAII(linearConfig(1), benchmarks.NewLinear(4), algorithms.WithEvaluator(evaluator))
	require.NoError(t, err)
	_, err = n.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generation 2")
}

func TestNSGAIIInvalidConfiguration(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(*algorithms.NSGA2Config)
		problem framework.Problem
	}{
		{name: "odd population", mutate: func(c *algorithms.NSGA2Config) { c.PopulationSize = 21 }},
		{name: "no generations", mutate: func(c *algorithms.NSGA2Config) { c.MaxGenerations = 0 }},
		{name: "crossover probability above one", mutate: func(c *algorithms.NSGA2Config) { c.CrossoverProbability = 1.5 }},
		{name: "negative eta", mutate: func(c *algorithms.NSGA2Config) { c.MutationEta = -1 }},
		{name: "negative workers", mutate: func(c *algorithms.NSGA2Config) { c.Workers = -1 }},
		{name: "short reference point", mutate: func(c *algorithms.NSGA2Config) { c.ReferencePoint = framework.ObjectiveSpacePoint{1} }},
		{name: "directions mismatch", mutate: func(c *algorithms.NSGA2Config) { c.Directions = []framework.Direction{framework.Maximize} }},
		{name: "no variables", problem: benchmarks.NewLinear(0)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			config := linearConfig(1)
			if tc.mutate != nil {
				tc.mutate(&config)
			}
			problem := tc.problem
			if problem == nil {
				problem = benchmarks.NewLinear(4)
			}

			_, err := algorithms.NewNSGAII(config, problem)
			require.ErrorIs(t, err, framework.ErrInvalidConfiguration)
			var configErr *framework.ConfigurationError
			require.ErrorAs(t, err, &configErr)
			assert.Len(t, configErr.Errs, 1)
		})
	}
}

func TestNSGAIICancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n, err := algorithms.NewNSGAII(linearConfig(1), benchmarks.NewLinear(4))
	require.NoError(t, err)
	population, err := n.Run(ctx)
	assert.Nil(t, population)
	assert.ErrorIs(t, err, context.Canceled)
}
