package sweep

import (
	"fmt"
	"slices"

	"github.com/AnnieBonav/RecursiveBestFirstSearch/genetic"
	"github.com/AnnieBonav/RecursiveBestFirstSearch/parameter"
)

// Preset names
const (
	PresetMutation    = "mutation"
	PresetCrossover   = "crossover"
	PresetPopulation  = "population"
	PresetGenerations = "generations"
	PresetScale       = "scale"
)

var presets = map[string]Sweep{
	PresetMutation: {
		Name:  PresetMutation,
		Axes:  []Axis{{Param: genetic.ParamMutationRate, Start: parameter.SweepMutationStart, Step: parameter.SweepMutationStep}},
		Steps: parameter.SweepMutationSteps,
	},
	PresetCrossover: {
		Name:  PresetCrossover,
		Axes:  []Axis{{Param: genetic.ParamCrossoverRate, Start: parameter.SweepCrossoverStart, Step: parameter.SweepCrossoverStep}},
		Steps: parameter.SweepCrossoverSteps,
	},
	PresetPopulation: {
		Name:  PresetPopulation,
		Axes:  []Axis{{Param: genetic.ParamPopulationSize, Start: parameter.SweepPopulationStart, Step: parameter.SweepPopulationStep}},
		Steps: parameter.SweepPopulationSteps,
	},
	PresetGenerations: {
		Name:  PresetGenerations,
		Axes:  []Axis{{Param: genetic.ParamNumGenerations, Start: parameter.SweepGenerationsStart, Step: parameter.SweepGenerationsStep}},
		Steps: parameter.SweepGenerationsSteps,
	},
	PresetScale: {
		Name: PresetScale,
		Axes: []Axis{
			{Param: genetic.ParamNumGenerations, Start: parameter.SweepGenerationsStart, Step: parameter.SweepGenerationsStep},
			{Param: genetic.ParamPopulationSize, Start: parameter.SweepPopulationStart, Step: parameter.SweepPopulationStep},
		},
		Steps: parameter.SweepScaleSteps,
	},
}

// Preset returns a copy of a named preset with Repeats set to the default
func Preset(name string) (Sweep, error) {
	s, ok := presets[name]
	if !ok {
		return Sweep{}, fmt.Errorf("unknown sweep preset %q", name)
	}
	s.Axes = slices.Clone(s.Axes)
	s.Repeats = parameter.SweepRepeats
	return s, nil
}

// PresetNames lists presets in the order they are usually run
func PresetNames() []string {
	return []string{PresetMutation, PresetCrossover, PresetPopulation, PresetGenerations, PresetScale}
}

// PresetBase is the configuration presets vary
func PresetBase() genetic.Config {
	cfg := genetic.DefaultConfig()
	cfg.NumDimensions = parameter.SweepNumDimensions
	cfg.CrossoverRate = parameter.SweepCrossoverRate
	cfg.Selection = genetic.SelectionTournament
	cfg.Evolve = genetic.EvolveElitismAndGenerational
	return cfg
}
