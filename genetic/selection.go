package genetic

import (
	"math"
	"math/rand/v2"
)

// RouletteSelector implements fitness-proportionate selection
// Each parent is picked with probability proportional to its share of the total score
type RouletteSelector struct{}

func (RouletteSelector) Method() SelectionMethod { return SelectionRoulette }

// Select spins the wheel once per parent
// A total that is not positive and finite cannot form a wheel; both parents are then drawn uniformly
func (rs RouletteSelector) Select(pop Population, scores []float64, rng *rand.Rand) Parents {
	total := 0.0
	for _, s := range scores {
		total += s
	}

	if !(total > 0) || math.IsInf(total, 0) {
		a, b := rng.IntN(len(pop)), rng.IntN(len(pop))
		return Parents{A: pop[a], B: pop[b], IndexA: a, IndexB: b, Degenerate: true}
	}

	a := rs.spin(scores, total, rng)
	b := rs.spin(scores, total, rng)
	return Parents{A: pop[a], B: pop[b], IndexA: a, IndexB: b}
}

func (RouletteSelector) spin(scores []float64, total float64, rng *rand.Rand) int {
	target := rng.Float64() * total

	cumulative := 0.0
	for i, s := range scores {
		cumulative += s
		if cumulative >= target {
			return i
		}
	}
	// Rounding can leave the running sum just short of target
	return len(scores) - 1
}

// TournamentSelector implements tournament selection
// Samples Size distinct individuals and keeps the lowest score
type TournamentSelector struct {
	// Size is the number of candidates competing in each tournament
	// Values below 1 run single-candidate tournaments
	Size int
}

func (TournamentSelector) Method() SelectionMethod { return SelectionTournament }

// Select runs one tournament per parent
func (ts TournamentSelector) Select(pop Population, scores []float64, rng *rand.Rand) Parents {
	indices := make([]int, len(pop))
	a := ts.tournament(indices, scores, rng)
	b := ts.tournament(indices, scores, rng)
	return Parents{A: pop[a], B: pop[b], IndexA: a, IndexB: b}
}

// tournament samples without replacement by partial Fisher-Yates over a fresh index slice
func (ts TournamentSelector) tournament(indices []int, scores []float64, rng *rand.Rand) int {
	for i := range indices {
		indices[i] = i
	}

	size := min(max(ts.Size, 1), len(indices))
	for i := 0; i < size; i++ {
		j := i + rng.IntN(len(indices)-i)
		indices[i], indices[j] = indices[j], indices[i]
	}

	// Ties keep the first encountered candidate
	winner := indices[0]
	for _, idx := range indices[1:size] {
		if scores[idx] < scores[winner] {
			winner = idx
		}
	}
	return winner
}
