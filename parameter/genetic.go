package parameter

// Genetic Algorithm - Engine Defaults
const (
	// GANumDimensions is the gene-vector length of each individual
	GANumDimensions = 3

	// GAPopulationSize is the number of individuals in each generation
	GAPopulationSize = 100

	// GANumGenerations is the number of evolve iterations per run
	GANumGenerations = 100

	// GAMutationRate is per-gene probability of a uniform redraw (0.0-1.0)
	GAMutationRate = 0.01

	// GACrossoverRate is per-gene probability of copying from the first parent (0.0-1.0)
	GACrossoverRate = 0.95

	// GATournamentSize for selection pressure
	GATournamentSize = 5

	// GAElitismCount is survivors carried unchanged per generation
	GAElitismCount = 2
)

// Genetic Algorithm - Search Domain
// Conventional sphere-function interval, used when an objective does not declare its own
const (
	GADomainMin = -5.12
	GADomainMax = 5.12
)
