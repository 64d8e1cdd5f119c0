package framework

import (
	"errors"
	"fmt"

	"k8s.io/apimachinery/pkg/util/validation/field"
)

var (
	// ErrInvalidConfiguration is matched by every *ConfigurationError.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrNonFiniteObjective is returned when an evaluator yields NaN or ±Inf.
	ErrNonFiniteObjective = errors.New("objective value is not finite")

	// ErrObjectiveArity is returned when an evaluator yields the wrong number of objectives.
	ErrObjectiveArity = errors.New("unexpected number of objectives")
)

// ConfigurationError carries every problem found while validating a configuration.
type ConfigurationError struct {
	Errs field.ErrorList
}

func NewConfigurationError(errs field.ErrorList) *ConfigurationError {
	return &ConfigurationError{Errs: errs}
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%v: %v", ErrInvalidConfiguration, e.Errs.ToAggregate())
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

// EvaluationError reports an individual whose objectives could not be computed.
// It is fatal to a run: an individual without fitness cannot be ranked.
type EvaluationError struct {
	// Index is the position of the individual inside the evaluated batch.
	Index     int
	Variables []float64
	Err       error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluating individual %d %v: %v", e.Index, e.Variables, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}
