package algorithms

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"sigs.k8s.io/moo-optimizer/pkg/multiobjective/framework"
)

// evaluateOne runs the evaluator on a single individual and checks its output.
func (n *NSGAII) evaluateOne(idx int, sol *NSGAIISolution) error {
	raw, err := n.evaluator.Evaluate(sol.Variables)
	if err != nil {
		return &framework.EvaluationError{Index: idx, Variables: sol.Variables, Err: err}
	}
	if len(raw) != n.numObjectives {
		return &framework.EvaluationError{
			Index:     idx,
			Variables: sol.Variables,
			Err:       fmt.Errorf("%w: got %d, want %d", framework.ErrObjectiveArity, len(raw), n.numObjectives),
		}
	}
	for m, v := range raw {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &framework.EvaluationError{
				Index:     idx,
				Variables: sol.Variables,
				Err:       fmt.Errorf("%w: objective %d is %v", framework.ErrNonFiniteObjective, m, v),
			}
		}
	}

	raw = raw.Clone()
	sol.SetFitness(raw, n.config.normalize(raw))
	return nil
}

// evaluate fills the fitness of every individual in batch that is not yet
// evaluated. With more than one worker the calls run concurrently; each
// goroutine only writes its own individual. The first error aborts the batch.
func (n *NSGAII) evaluate(batch []*NSGAIISolution) (int, error) {
	pending := make([]int, 0, len(batch))
	for i, sol := range batch {
		if !sol.Evaluated() {
			pending = append(pending, i)
		}
	}

	if n.config.Workers <= 1 {
		for _, i := range pending {
			if err := n.evaluateOne(i, batch[i]); err != nil {
				return 0, err
			}
		}
		return len(pending), nil
	}

	var g errgroup.Group
	g.SetLimit(n.config.Workers)
	for _, i := range pending {
		i := i
		g.Go(func() error {
			return n.evaluateOne(i, batch[i])
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return len(pending), nil
}
