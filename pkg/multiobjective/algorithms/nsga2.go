package algorithms

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/exp/rand"
	"k8s.io/klog/v2"

	"sigs.k8s.io/moo-optimizer/pkg/multiobjective/framework"
	"sigs.k8s.io/moo-optimizer/pkg/multiobjective/indicators"
)

const (
	Name = "NSGA-II"

	tracerName = "sigs.k8s.io/moo-optimizer/pkg/multiobjective/algorithms"
)

// HypervolumeFunc measures the objective space dominated by points and bounded
// by ref. Both arguments are in minimization form.
type HypervolumeFunc func(points []framework.ObjectiveSpacePoint, ref framework.ObjectiveSpacePoint) (float64, error)

// Snapshot describes the population at the end of one generation. Objective
// vectors are raw evaluator output, not the minimization form.
type Snapshot struct {
	Generation  int
	Evaluations int
	Population  []framework.ObjectiveSpacePoint
	ParetoFront []framework.ObjectiveSpacePoint

	// Hypervolume is only meaningful when HasHypervolume is set, which
	// requires a reference point in the configuration.
	Hypervolume    float64
	HasHypervolume bool

	Elapsed time.Duration
}

// Observer is called synchronously after every generation, generation 0
// (the evaluated initial population) included.
type Observer func(Snapshot)

// Option customizes an NSGAII instance.
type Option func(*NSGAII)

// WithEvaluator replaces the evaluator built from the problem's objective functions.
func WithEvaluator(e framework.Evaluator) Option {
	return func(n *NSGAII) {
		n.evaluator = e
	}
}

// WithObserver registers a per-generation callback.
func WithObserver(o Observer) Option {
	return func(n *NSGAII) {
		n.observers = append(n.observers, o)
	}
}

// WithHypervolume replaces the hypervolume indicator used for snapshots.
func WithHypervolume(f HypervolumeFunc) Option {
	return func(n *NSGAII) {
		n.hypervolume = f
	}
}

// NSGAII runs the NSGA-II algorithm on a problem.
type NSGAII struct {
	config        NSGA2Config
	problem       framework.Problem
	bounds        []framework.Bounds
	numObjectives int

	evaluator   framework.Evaluator
	hypervolume HypervolumeFunc
	observers   []Observer

	// rng is the only source of randomness of a run. It is created from the
	// seed at the start of Run and only used from the Run goroutine.
	rng         *rand.Rand
	evaluations int
}

var _ framework.Algorithm = &NSGAII{}

// NewNSGAII creates a new instance of NSGA-II after validating config against problem.
func NewNSGAII(config NSGA2Config, problem framework.Problem, opts ...Option) (*NSGAII, error) {
	bounds := problem.Bounds()
	numObjectives := len(problem.ObjectiveFuncs())
	if err := config.Validate(bounds, numObjectives); err != nil {
		return nil, err
	}

	n := &NSGAII{
		config:        config,
		problem:       problem,
		bounds:        bounds,
		numObjectives: numObjectives,
		evaluator:     framework.NewProblemEvaluator(problem),
		hypervolume:   indicators.Hypervolume,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n, nil
}

// Name retrieves the algorithm name
func (n *NSGAII) Name() string {
	return Name
}

// Config returns the configuration the instance was built with.
func (n *NSGAII) Config() NSGA2Config {
	return n.config
}

// Run executes the NSGA-II algorithm and returns the final population, ranked
// and annotated with crowding distances. Any evaluation failure aborts the run.
// The context is only checked between generations.
func (n *NSGAII) Run(ctx context.Context) ([]*NSGAIISolution, error) {
	startTime := time.Now()
	logger := klog.FromContext(ctx).WithValues("algorithm", Name, "problem", n.problem.Name())

	ctx, span := otel.Tracer(tracerName).Start(ctx, "NSGAII.Run", trace.WithAttributes(
		attribute.String("problem", n.problem.Name()),
		attribute.Int("populationSize", n.config.PopulationSize),
		attribute.Int("maxGenerations", n.config.MaxGenerations),
	))
	defer span.End()

	n.rng = rand.New(rand.NewSource(n.config.Seed))
	n.evaluations = 0

	logger.V(2).Info("Starting evolution",
		"populationSize", n.config.PopulationSize,
		"generations", n.config.MaxGenerations,
		"crossoverProbability", n.config.CrossoverProbability,
		"mutationProbability", n.config.MutationProbability,
		"crossoverEta", n.config.CrossoverEta,
		"mutationEta", n.config.MutationEta,
		"workers", n.config.Workers,
		"seed", n.config.Seed)

	population := n.initialize()
	evaluated, err := n.evaluate(population)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "initial evaluation failed")
		return nil, fmt.Errorf("evaluating initial population: %w", err)
	}
	n.evaluations += evaluated
	for _, front := range NonDominatedSort(population) {
		CrowdingDistance(front)
	}
	if err := n.notify(ctx, 0, population, startTime); err != nil {
		return nil, err
	}

	for gen := 1; gen < n.config.MaxGenerations; gen++ {
		if err := ctx.Err(); err != nil {
			logger.Info("Evolution interrupted", "generation", gen, "err", err)
			return nil, err
		}

		population, err = n.generation(ctx, gen, population)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "generation failed")
			return nil, fmt.Errorf("generation %d: %w", gen, err)
		}
		if err := n.notify(ctx, gen, population, startTime); err != nil {
			return nil, err
		}
	}

	elapsedTime := time.Since(startTime)
	logger.V(2).Info("Evolution complete",
		"evaluations", n.evaluations,
		"elapsed", elapsedTime,
		"timePerGeneration", elapsedTime/time.Duration(n.config.MaxGenerations))

	return population, nil
}

// initialize samples PopulationSize individuals uniformly within the bounds.
func (n *NSGAII) initialize() []*NSGAIISolution {
	population := make([]*NSGAIISolution, n.config.PopulationSize)
	for i := range population {
		vars := make([]float64, len(n.bounds))
		for j, b := range n.bounds {
			vars[j] = b.L + n.rng.Float64()*b.Width()
		}
		population[i] = NewNSGAIISolution(vars)
	}
	return population
}

// generation produces the population of generation gen from the previous one.
func (n *NSGAII) generation(ctx context.Context, gen int, population []*NSGAIISolution) ([]*NSGAIISolution, error) {
	_, span := otel.Tracer(tracerName).Start(ctx, "NSGAII.Generation", trace.WithAttributes(attribute.Int("generation", gen)))
	defer span.End()

	popSize := len(population)

	// Tournaments compare on rank and crowding of the current population.
	for _, front := range NonDominatedSort(population) {
		CrowdingDistance(front)
	}

	matingPool, err := TournamentSelectDCD(n.rng, population, popSize)
	if err != nil {
		return nil, err
	}

	offspring := make([]*NSGAIISolution, popSize)
	for i := 0; i < popSize; i += 2 {
		child1, child2 := SBXCrossover(n.rng, matingPool[i].Variables, matingPool[i+1].Variables,
			n.bounds, n.config.CrossoverEta, n.config.CrossoverProbability)
		PolynomialMutation(n.rng, child1, n.bounds, n.config.MutationEta, n.config.MutationProbability)
		PolynomialMutation(n.rng, child2, n.bounds, n.config.MutationEta, n.config.MutationProbability)
		offspring[i] = NewNSGAIISolution(child1)
		offspring[i+1] = NewNSGAIISolution(child2)
	}

	// Every offspring has its fitness before anything is ranked again.
	evaluated, err := n.evaluate(offspring)
	if err != nil {
		return nil, err
	}
	n.evaluations += evaluated

	combined := make([]*NSGAIISolution, 0, 2*popSize)
	combined = append(combined, population...)
	combined = append(combined, offspring...)

	return SelectNextGeneration(combined, popSize), nil
}

// notify builds the snapshot of a ranked population and hands it to observers.
func (n *NSGAII) notify(ctx context.Context, gen int, population []*NSGAIISolution, startTime time.Time) error {
	logger := klog.FromContext(ctx)

	snapshot := Snapshot{
		Generation:  gen,
		Evaluations: n.evaluations,
		Population:  Objectives(population),
		ParetoFront: GetParetoFront(population),
		Elapsed:     time.Since(startTime),
	}

	if n.config.ReferencePoint != nil && n.hypervolume != nil {
		front := make([]framework.ObjectiveSpacePoint, 0, len(snapshot.ParetoFront))
		for _, sol := range population {
			if sol.Rank == 0 {
				front = append(front, sol.Value)
			}
		}
		hv, err := n.hypervolume(front, n.config.normalize(n.config.ReferencePoint))
		if err != nil {
			return fmt.Errorf("computing hypervolume for generation %d: %w", gen, err)
		}
		snapshot.Hypervolume = hv
		snapshot.HasHypervolume = true
	}

	if gen%10 == 0 || gen == n.config.MaxGenerations-1 {
		logger.V(2).Info("Generation done", "generation", gen, "frontSize", len(snapshot.ParetoFront),
			"hypervolume", snapshot.Hypervolume, "evaluations", n.evaluations)
	} else {
		logger.V(4).Info("Generation done", "generation", gen, "frontSize", len(snapshot.ParetoFront),
			"hypervolume", snapshot.Hypervolume, "evaluations", n.evaluations)
	}

	for _, o := range n.observers {
		o(snapshot)
	}
	return nil
}
