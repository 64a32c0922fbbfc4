package genetic

import (
	"math/rand/v2"
	"slices"
)

// --- Core Data Structures ---

// Individual is one candidate solution: a fixed-length gene vector
// Individuals have no identity beyond their values and are never modified once in a Population
type Individual []float64

// Clone returns an independent copy of the gene vector
func (ind Individual) Clone() Individual {
	return slices.Clone(ind)
}

// Population is the ordered set of individuals under evolution in one generation
type Population []Individual

// Clone returns a deep copy of the population
func (p Population) Clone() Population {
	out := make(Population, len(p))
	for i, ind := range p {
		out[i] = ind.Clone()
	}
	return out
}

// Bounds is the closed-open interval genes are drawn from
type Bounds struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// IsZero reports whether the bounds were left unset
func (b Bounds) IsZero() bool {
	return b.Min == 0 && b.Max == 0
}

// Sample draws a value uniformly from [Min, Max)
func (b Bounds) Sample(rng *rand.Rand) float64 {
	return b.Min + rng.Float64()*(b.Max-b.Min)
}

// Parents is the result of one selection call
type Parents struct {
	A, B           Individual
	IndexA, IndexB int
	// Degenerate marks a roulette draw that fell back to uniform choice
	Degenerate bool
}

// --- Core Operators as Interfaces ---

// Selector chooses two parents from a population and its parallel fitness scores
// Multiple selection strategies can be implemented (tournament, roulette, rank, etc.)
type Selector interface {
	Method() SelectionMethod
	Select(pop Population, scores []float64, rng *rand.Rand) Parents
}

// Crossover combines two parents into exactly one new child
type Crossover interface {
	Cross(a, b Individual, rng *rand.Rand) Individual
}

// Mutation perturbs a child that is not yet part of any population
type Mutation interface {
	Mutate(child Individual, rng *rand.Rand)
}

// Replacement advances the population by one generation
// Implementations return a new snapshot and never modify current
type Replacement interface {
	Method() EvolveMethod
	Next(generation int, current Population, breeder *Breeder) (Population, GenerationStats, error)
}
