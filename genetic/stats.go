package genetic

import (
	"math"
	"slices"

	"github.com/campoy/unique"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// GenerationStats contains statistical information about one generation
type GenerationStats struct {
	Generation int
	Best       float64
	Worst      float64
	Average    float64
	// StdDev is the population standard deviation of the scores Average was computed from
	StdDev float64
	// Distinct counts individuals with unique gene vectors in the evaluated population
	Distinct int
}

// Series holds one entry per generation for each tracked statistic
type Series struct {
	Best    []float64 `yaml:"best"`
	Worst   []float64 `yaml:"worst"`
	Average []float64 `yaml:"average"`
}

// NewSeries preallocates for the given number of generations
func NewSeries(generations int) Series {
	return Series{
		Best:    make([]float64, 0, generations),
		Worst:   make([]float64, 0, generations),
		Average: make([]float64, 0, generations),
	}
}

// Append records one generation
func (s *Series) Append(gs GenerationStats) {
	s.Best = append(s.Best, gs.Best)
	s.Worst = append(s.Worst, gs.Worst)
	s.Average = append(s.Average, gs.Average)
}

// Len returns the number of recorded generations
func (s Series) Len() int {
	return len(s.Best)
}

// summarize computes min, max, mean and spread of a generation's scores
func summarize(generation int, pop Population, scores []float64) GenerationStats {
	return GenerationStats{
		Generation: generation,
		Best:       floats.Min(scores),
		Worst:      floats.Max(scores),
		Average:    stat.Mean(scores, nil),
		StdDev:     math.Sqrt(stat.PopVariance(scores, nil)),
		Distinct:   distinct(pop),
	}
}

// distinct counts unique gene vectors
func distinct(pop Population) int {
	if len(pop) == 0 {
		return 0
	}
	sorted := slices.Clone(pop)
	unique.Slice(&sorted, func(i, j int) bool {
		return slices.Compare(sorted[i], sorted[j]) < 0
	})
	return len(sorted)
}
