package genetic

import (
	"slices"
)

// BasicReplacement is the steady-state policy
// Each generation breeds one child, appends it and drops the oldest individual
type BasicReplacement struct{}

func (BasicReplacement) Method() EvolveMethod { return EvolveBasicReplacement }

// Next statistics describe the population before the child replaces anyone
func (BasicReplacement) Next(generation int, current Population, breeder *Breeder) (Population, GenerationStats, error) {
	scores, err := breeder.evaluator.EvaluatePopulation(current)
	if err != nil {
		return nil, GenerationStats{}, atGeneration(err, generation)
	}

	child, _ := breeder.Offspring(generation, current, scores)

	next := make(Population, 0, len(current))
	next = append(next, current[1:]...)
	next = append(next, child)

	return next, summarize(generation, current, scores), nil
}

// ElitismReplacement is the generational policy with elite survivors
type ElitismReplacement struct {
	// Count is the number of best individuals carried unchanged
	Count int
}

func (ElitismReplacement) Method() EvolveMethod { return EvolveElitismAndGenerational }

// Next builds a whole new generation: the elites, sorted ascending, then unsorted children
// Best and Worst are the scores of the new population's first and last members;
// Average is taken over the previous population's scores
func (er ElitismReplacement) Next(generation int, current Population, breeder *Breeder) (Population, GenerationStats, error) {
	scores, err := breeder.evaluator.EvaluatePopulation(current)
	if err != nil {
		return nil, GenerationStats{}, atGeneration(err, generation)
	}

	next := make(Population, 0, len(current))
	for _, idx := range Ranking(scores)[:er.Count] {
		next = append(next, current[idx])
	}

	var lastParents Parents
	for len(next) < len(current) {
		child, parents := breeder.Offspring(generation, current, scores)
		next = append(next, child)
		lastParents = parents
	}

	stats := summarize(generation, current, scores)

	stats.Best, err = breeder.evaluateChild(generation, next[0], Parents{})
	if err != nil {
		return nil, GenerationStats{}, err
	}
	stats.Worst, err = breeder.evaluateChild(generation, next[len(next)-1], lastParents)
	if err != nil {
		return nil, GenerationStats{}, err
	}

	return next, stats, nil
}

// Ranking returns population indices ordered by ascending score
// Equal scores keep population order
func Ranking(scores []float64) []int {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		switch {
		case scores[a] < scores[b]:
			return -1
		case scores[a] > scores[b]:
			return 1
		}
		return 0
	})
	return order
}
