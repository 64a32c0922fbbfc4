package parameter

// Parameter Sweep - Preset Axes
// Each preset starts at Start and adds Step for every point
const (
	SweepMutationStart = 0.01
	SweepMutationStep  = 0.01
	SweepMutationSteps = 5

	SweepCrossoverStart = 0.02
	SweepCrossoverStep  = 0.02
	SweepCrossoverSteps = 5

	SweepPopulationStart = 50
	SweepPopulationStep  = 50
	SweepPopulationSteps = 5

	SweepGenerationsStart = 50
	SweepGenerationsStep  = 50
	SweepGenerationsSteps = 10

	// Generations and population grow together
	SweepScaleSteps = 40
)

// Parameter Sweep - Execution
const (
	// SweepRepeats is runs per sweep point
	SweepRepeats = 1

	// SweepParallelism bounds concurrently running engines
	SweepParallelism = 4

	// SweepNumDimensions is the dimensionality used by the preset sweeps
	SweepNumDimensions = 10

	// SweepCrossoverRate is the base crossover rate for presets that do not vary it
	SweepCrossoverRate = 0.8
)
