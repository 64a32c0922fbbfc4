package sweep

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/AnnieBonav/RecursiveBestFirstSearch/genetic"
	"github.com/AnnieBonav/RecursiveBestFirstSearch/genetic/tracking"
	"github.com/AnnieBonav/RecursiveBestFirstSearch/objective"
)

func smallBase() genetic.Config {
	cfg := PresetBase()
	cfg.NumDimensions = 3
	cfg.PopulationSize = 10
	cfg.NumGenerations = 8
	cfg.Seed = 99
	return cfg
}

var sphere = genetic.ObjectiveFunc(objective.Sphere)

func TestSweep_Validate(t *testing.T) {
	err := Sweep{}.Validate()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 4)

	dup := Sweep{Name: "d", Steps: 1, Repeats: 1, Axes: []Axis{
		{Param: genetic.ParamMutationRate}, {Param: genetic.ParamMutationRate},
	}}
	assert.ErrorContains(t, dup.Validate(), "varied twice")
}

func TestSweep_ConfigsAdvanceTogether(t *testing.T) {
	s, err := Preset(PresetScale)
	require.NoError(t, err)

	configs, err := s.Configs(smallBase())
	require.NoError(t, err)
	require.Len(t, configs, 40)

	for i, cfg := range configs {
		assert.Equal(t, 50+50*i, cfg.NumGenerations)
		assert.Equal(t, 50+50*i, cfg.PopulationSize)
		assert.Equal(t, 3, cfg.NumDimensions, "untouched fields come from base")
	}
}

func TestSweep_ConfigsRejectInvalidPoints(t *testing.T) {
	s := Sweep{Name: "bad", Steps: 3, Repeats: 1, Axes: []Axis{
		{Param: genetic.ParamMutationRate, Start: 0.5, Step: 0.4},
	}}

	_, err := s.Configs(smallBase())
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 1, "only point 2 leaves [0, 1]")
	assert.ErrorContains(t, err, "point 2")
}

func TestPresets(t *testing.T) {
	tests := []struct {
		name  string
		param genetic.Param
		start float64
		step  float64
		steps int
	}{
		{PresetMutation, genetic.ParamMutationRate, 0.01, 0.01, 5},
		{PresetCrossover, genetic.ParamCrossoverRate, 0.02, 0.02, 5},
		{PresetPopulation, genetic.ParamPopulationSize, 50, 50, 5},
		{PresetGenerations, genetic.ParamNumGenerations, 50, 50, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Preset(tt.name)
			require.NoError(t, err)
			require.NoError(t, s.Validate())
			require.Len(t, s.Axes, 1)
			assert.Equal(t, tt.param, s.Axes[0].Param)
			assert.Equal(t, tt.start, s.Axes[0].Start)
			assert.Equal(t, tt.step, s.Axes[0].Step)
			assert.Equal(t, tt.steps, s.Steps)
			assert.Equal(t, 1, s.Repeats)
		})
	}

	for _, name := range PresetNames() {
		_, err := Preset(name)
		assert.NoError(t, err, name)
	}
	_, err := Preset("nope")
	assert.Error(t, err)
}

func TestPreset_ReturnsCopy(t *testing.T) {
	a, _ := Preset(PresetMutation)
	a.Axes[0].Start = 0.9
	b, _ := Preset(PresetMutation)
	assert.Equal(t, 0.01, b.Axes[0].Start)
}

func TestPresetBase(t *testing.T) {
	cfg := PresetBase()
	assert.Equal(t, 10, cfg.NumDimensions)
	assert.Equal(t, 0.8, cfg.CrossoverRate)
	assert.Equal(t, genetic.SelectionTournament, cfg.Selection)
	assert.Equal(t, genetic.EvolveElitismAndGenerational, cfg.Evolve)
	assert.NoError(t, cfg.Validate())
}

func TestDeriveSeed(t *testing.T) {
	seen := make(map[uint64]bool)
	for i := 0; i < 1000; i++ {
		s := DeriveSeed(7, i)
		assert.NotZero(t, s)
		seen[s] = true
	}
	assert.Len(t, seen, 1000)
	assert.Equal(t, DeriveSeed(7, 3), DeriveSeed(7, 3))
	assert.NotEqual(t, DeriveSeed(7, 3), DeriveSeed(8, 3))
}

func TestRunner_Run(t *testing.T) {
	s := Sweep{Name: "mut", Steps: 3, Repeats: 2, Axes: []Axis{
		{Param: genetic.ParamMutationRate, Start: 0.1, Step: 0.1},
	}}

	out, err := NewRunner("sphere", sphere, WithParallelism(3)).Run(context.Background(), smallBase(), s)
	require.NoError(t, err)

	assert.Equal(t, "sphere", out.Objective)
	assert.Equal(t, uint64(99), out.Base.Seed)
	require.Len(t, out.Points, 3)

	ids := make(map[string]bool)
	for i, pt := range out.Points {
		assert.Equal(t, i, pt.Index)
		assert.InDelta(t, 0.1+0.1*float64(i), pt.Values[0], 1e-12)
		assert.InDelta(t, pt.Values[0], pt.Config.MutationRate, 1e-12)
		require.Len(t, pt.Runs, 2)

		assert.InDelta(t, (pt.Runs[0].BestFitness+pt.Runs[1].BestFitness)/2, pt.Mean, 1e-12)
		assert.LessOrEqual(t, pt.BestFitness, pt.Runs[0].BestFitness)
		assert.LessOrEqual(t, pt.BestFitness, pt.Runs[1].BestFitness)

		for j, run := range pt.Runs {
			assert.Equal(t, i, run.Point)
			assert.Equal(t, j, run.Repeat)
			assert.Equal(t, DeriveSeed(99, i*2+j), run.Seed)
			assert.Equal(t, 8, run.Series.Len())
			assert.Equal(t, 8.0, run.Metrics[tracking.MetricGenerations])
			assert.Equal(t, run.BestFitness, run.Metrics[tracking.MetricBestFitness])
			ids[run.ID.String()] = true
		}
	}
	assert.Len(t, ids, 6)
}

func TestRunner_IndependentOfParallelism(t *testing.T) {
	s, err := Preset(PresetCrossover)
	require.NoError(t, err)
	s.Repeats = 2

	serial, err := NewRunner("sphere", sphere, WithParallelism(1)).Run(context.Background(), smallBase(), s)
	require.NoError(t, err)
	parallel, err := NewRunner("sphere", sphere, WithParallelism(8)).Run(context.Background(), smallBase(), s)
	require.NoError(t, err)

	require.Len(t, parallel.Points, len(serial.Points))
	for i := range serial.Points {
		assert.Equal(t, serial.Points[i].BestFitness, parallel.Points[i].BestFitness)
		assert.Equal(t, serial.Points[i].Best, parallel.Points[i].Best)
		assert.Equal(t, serial.Points[i].Mean, parallel.Points[i].Mean)
	}
}

func TestRunner_SingleRepeatHasZeroSpread(t *testing.T) {
	s := Sweep{Name: "one", Steps: 1, Repeats: 1, Axes: []Axis{{Param: genetic.ParamPopulationSize, Start: 6}}}

	out, err := NewRunner("sphere", sphere).Run(context.Background(), smallBase(), s)
	require.NoError(t, err)
	assert.Zero(t, out.Points[0].StdDev)
	assert.Equal(t, out.Points[0].Runs[0].BestFitness, out.Points[0].Mean)
}

func TestRunner_CollectsFailures(t *testing.T) {
	boom := errors.New("boom")
	failing := genetic.FallibleObjectiveFunc(func(genes []float64) (float64, error) {
		if genes[0] > 4 {
			return 0, boom
		}
		return objective.Sphere(genes), nil
	})

	s := Sweep{Name: "f", Steps: 2, Repeats: 3, Axes: []Axis{{Param: genetic.ParamNumGenerations, Start: 5, Step: 5}}}
	base := smallBase()
	base.PopulationSize = 50

	_, err := NewRunner("failing", failing).Run(context.Background(), base, s)
	require.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, `sweep "f"`)
}

func TestRunner_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s, err := Preset(PresetMutation)
	require.NoError(t, err)

	_, err = NewRunner("sphere", sphere).Run(ctx, smallBase(), s)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunner_RandomBaseSeed(t *testing.T) {
	base := smallBase()
	base.Seed = 0
	s := Sweep{Name: "r", Steps: 1, Repeats: 1, Axes: []Axis{{Param: genetic.ParamNumGenerations, Start: 3}}}

	out, err := NewRunner("sphere", sphere).Run(context.Background(), base, s)
	require.NoError(t, err)
	assert.NotZero(t, out.Base.Seed)
	assert.Equal(t, out.Base.Seed, out.Points[0].Config.Seed)
}

func TestRunner_Rejects(t *testing.T) {
	_, err := NewRunner("nil", nil).Run(context.Background(), smallBase(), Sweep{})
	assert.Error(t, err)

	_, err = NewRunner("sphere", sphere).Run(context.Background(), smallBase(), Sweep{Name: "empty"})
	assert.Error(t, err)
}
