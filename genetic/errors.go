package genetic

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyPopulation is returned when the population size resolves to zero
	ErrEmptyPopulation = errors.New("population size is zero")
	// ErrEngineUsed is returned by Run on an engine that already ran
	ErrEngineUsed = errors.New("engine already ran")
)

// ConfigError reports one out-of-range configuration field
type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s=%v %s", e.Field, e.Value, e.Reason)
}

// SelectionDegenerateError reports a roulette wheel without positive finite total fitness
// It is a warning: selection falls back to uniform choice and the run continues
type SelectionDegenerateError struct {
	Generation int
	Total      float64
}

func (e *SelectionDegenerateError) Error() string {
	return fmt.Sprintf("generation %d: roulette total fitness %v, falling back to uniform selection", e.Generation, e.Total)
}

// EvaluationError wraps a failing objective with the state needed for diagnosis
type EvaluationError struct {
	// Generation is -1 when the failure happened outside the generation loop
	Generation int
	Individual Individual
	// Parents is set when the failing individual was a freshly bred child
	Parents []Individual
	Err     error
}

func (e *EvaluationError) Error() string {
	if e.Generation < 0 {
		return fmt.Sprintf("evaluate %v: %v", e.Individual, e.Err)
	}
	return fmt.Sprintf("generation %d: evaluate %v: %v", e.Generation, e.Individual, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}

// atGeneration stamps the generation index onto evaluation failures
func atGeneration(err error, generation int) error {
	var evalErr *EvaluationError
	if errors.As(err, &evalErr) && evalErr.Generation < 0 {
		evalErr.Generation = generation
	}
	return err
}
