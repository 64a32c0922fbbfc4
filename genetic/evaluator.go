package genetic

// --- Objective Contract ---

// Objective scores a gene vector; lower is better
// Implementations must not modify genes
type Objective interface {
	Evaluate(genes []float64) (float64, error)
}

// ObjectiveFunc adapts a pure scoring function that cannot fail
type ObjectiveFunc func(genes []float64) float64

func (f ObjectiveFunc) Evaluate(genes []float64) (float64, error) {
	return f(genes), nil
}

// FallibleObjectiveFunc adapts a scoring function that may fail
type FallibleObjectiveFunc func(genes []float64) (float64, error)

func (f FallibleObjectiveFunc) Evaluate(genes []float64) (float64, error) {
	return f(genes)
}

// Evaluator delegates to the objective without caching or validating its output
// NaN and infinite scores pass through unmodified
type Evaluator struct {
	objective Objective
	count     int
}

// NewEvaluator wraps an objective
func NewEvaluator(objective Objective) *Evaluator {
	return &Evaluator{objective: objective}
}

// Evaluate scores one individual
func (e *Evaluator) Evaluate(ind Individual) (float64, error) {
	e.count++
	score, err := e.objective.Evaluate(ind)
	if err != nil {
		return 0, &EvaluationError{Generation: -1, Individual: ind.Clone(), Err: err}
	}
	return score, nil
}

// EvaluatePopulation scores every individual; index i of the result belongs to pop[i]
func (e *Evaluator) EvaluatePopulation(pop Population) ([]float64, error) {
	scores := make([]float64, len(pop))
	for i, ind := range pop {
		score, err := e.Evaluate(ind)
		if err != nil {
			return nil, err
		}
		scores[i] = score
	}
	return scores, nil
}

// Count returns the number of objective calls made so far
func (e *Evaluator) Count() int {
	return e.count
}
