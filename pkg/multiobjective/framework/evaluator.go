package framework

// Evaluator computes the objective vector of a decision vector. It must be
// deterministic and safe for concurrent use when the algorithm runs with more
// than one worker.
type Evaluator interface {
	Evaluate(x []float64) (ObjectiveSpacePoint, error)
}

// EvaluatorFunc adapts a plain function to the Evaluator interface.
type EvaluatorFunc func(x []float64) (ObjectiveSpacePoint, error)

func (f EvaluatorFunc) Evaluate(x []float64) (ObjectiveSpacePoint, error) {
	return f(x)
}

// NewProblemEvaluator evaluates every objective function of p in order.
// Constraints are not checked here; problems fold them into their objectives.
func NewProblemEvaluator(p Problem) Evaluator {
	objectives := p.ObjectiveFuncs()
	return EvaluatorFunc(func(x []float64) (ObjectiveSpacePoint, error) {
		res := make(ObjectiveSpacePoint, len(objectives))
		for i, objFunc := range objectives {
			res[i] = objFunc(x)
		}
		return res, nil
	})
}

// Feasible reports whether x satisfies every constraint of p.
func Feasible(p Problem, x []float64) bool {
	for _, c := range p.Constraints() {
		if !c(x) {
			return false
		}
	}
	return true
}
