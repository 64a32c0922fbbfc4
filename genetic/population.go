package genetic

import (
	"math"
	"math/rand/v2"
)

// NewPopulation draws size individuals with dims genes each, uniformly from domain
// Randomness is consumed individual by individual, gene by gene
func NewPopulation(size, dims int, domain Bounds, rng *rand.Rand) Population {
	pop := make(Population, size)
	for i := range pop {
		ind := make(Individual, dims)
		for j := range ind {
			ind[j] = domain.Sample(rng)
		}
		pop[i] = ind
	}
	return pop
}

// Best returns the index of the lowest score, first on ties
// NaN scores never win against a number
func Best(scores []float64) int {
	best := -1
	for i, s := range scores {
		if math.IsNaN(s) {
			continue
		}
		if best < 0 || s < scores[best] {
			best = i
		}
	}
	if best < 0 && len(scores) > 0 {
		return 0
	}
	return best
}
