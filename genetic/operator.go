package genetic

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
)

// UniformCrossover performs gene-wise uniform crossover
// Each gene comes from the first parent with probability Rate, otherwise from the second
type UniformCrossover struct {
	Rate float64
}

// Cross creates one child; parents are left untouched
func (uc UniformCrossover) Cross(a, b Individual, rng *rand.Rand) Individual {
	length := min(len(a), len(b))
	child := make(Individual, length)
	for i := 0; i < length; i++ {
		if rng.Float64() < uc.Rate {
			child[i] = a[i]
		} else {
			child[i] = b[i]
		}
	}
	return child
}

// UniformMutation redraws genes uniformly within the search domain
// Genes therefore never leave Domain
type UniformMutation struct {
	Rate   float64
	Domain Bounds
}

// Mutate modifies child in place
// One draw per gene is consumed regardless of Rate
func (um UniformMutation) Mutate(child Individual, rng *rand.Rand) {
	for i := range child {
		if rng.Float64() < um.Rate {
			child[i] = um.Domain.Sample(rng)
		}
	}
}

// --- Reproduction Pipeline ---

// Breeder fixes the per-child order of random draws: select, crossover, mutate
type Breeder struct {
	selector  Selector
	crossover Crossover
	mutation  Mutation
	evaluator *Evaluator
	rng       *rand.Rand

	onDegenerate func(*SelectionDegenerateError)
}

// NewBreeder assembles the reproduction pipeline shared by all replacement policies
func NewBreeder(selector Selector, crossover Crossover, mutation Mutation, evaluator *Evaluator, rng *rand.Rand) *Breeder {
	return &Breeder{
		selector:  selector,
		crossover: crossover,
		mutation:  mutation,
		evaluator: evaluator,
		rng:       rng,
	}
}

// OnDegenerate registers the callback for roulette fallbacks
func (b *Breeder) OnDegenerate(fn func(*SelectionDegenerateError)) {
	b.onDegenerate = fn
}

// Offspring selects two parents from pop and returns their mutated child
func (b *Breeder) Offspring(generation int, pop Population, scores []float64) (Individual, Parents) {
	parents := b.selector.Select(pop, scores, b.rng)
	if parents.Degenerate && b.onDegenerate != nil {
		b.onDegenerate(&SelectionDegenerateError{Generation: generation, Total: floats.Sum(scores)})
	}

	child := b.crossover.Cross(parents.A, parents.B, b.rng)
	b.mutation.Mutate(child, b.rng)
	return child, parents
}

// evaluateChild scores a member of the next generation, attaching its parents (when known) on failure
func (b *Breeder) evaluateChild(generation int, child Individual, parents Parents) (float64, error) {
	score, err := b.evaluator.Evaluate(child)
	if err != nil {
		if evalErr, ok := err.(*EvaluationError); ok && parents.A != nil {
			evalErr.Parents = []Individual{parents.A.Clone(), parents.B.Clone()}
		}
		return 0, atGeneration(err, generation)
	}
	return score, nil
}
