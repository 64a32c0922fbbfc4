package objective

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnnieBonav/RecursiveBestFirstSearch/genetic"
)

func TestFunctions_KnownMinima(t *testing.T) {
	tests := []struct {
		name  string
		fn    func([]float64) float64
		at    []float64
		value float64
	}{
		{"sphere origin", Sphere, []float64{0, 0, 0}, 0},
		{"sphere point", Sphere, []float64{1, -2, 3}, 14},
		{"rastrigin origin", Rastrigin, []float64{0, 0}, 0},
		{"rastrigin integer point", Rastrigin, []float64{1, 0}, 1},
		{"rosenbrock ones", Rosenbrock, []float64{1, 1, 1, 1}, 0},
		{"rosenbrock origin", Rosenbrock, []float64{0, 0}, 1},
		{"rosenbrock single gene", Rosenbrock, []float64{3}, 0},
		{"ackley origin", Ackley, []float64{0, 0, 0}, 0},
		{"ackley empty", Ackley, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.value, tt.fn(tt.at), 1e-9)
		})
	}
}

func TestFunctions_PositiveAwayFromMinimum(t *testing.T) {
	at := []float64{0.5, -0.3}
	for name, fn := range map[string]func([]float64) float64{
		"sphere": Sphere, "rastrigin": Rastrigin, "rosenbrock": Rosenbrock, "ackley": Ackley,
	} {
		v := fn(at)
		assert.Greater(t, v, 0.0, name)
		assert.False(t, math.IsNaN(v), name)
	}
}

func TestFunctions_DoNotModifyGenes(t *testing.T) {
	genes := []float64{0.25, -1.5, 2}
	for _, fn := range []func([]float64) float64{Sphere, Rastrigin, Rosenbrock, Ackley} {
		fn(genes)
		assert.Equal(t, []float64{0.25, -1.5, 2}, genes)
	}
}

func TestRegistry_RegisterAndLookup(t *testing.T) {
	reg := NewRegistry()
	def := Definition{Name: "Flat", Objective: genetic.ObjectiveFunc(func([]float64) float64 { return 1 }), Domain: genetic.Bounds{Min: 0, Max: 1}}

	require.NoError(t, reg.Register(def))

	got, err := reg.Lookup("flat")
	require.NoError(t, err)
	assert.Equal(t, "Flat", got.Name)
	assert.Equal(t, def.Domain, got.Domain)

	_, err = reg.Lookup("steep")
	assert.ErrorContains(t, err, "Flat")
}

func TestRegistry_Rejects(t *testing.T) {
	reg := NewRegistry()
	def := Definition{Name: "a", Objective: genetic.ObjectiveFunc(Sphere)}

	require.NoError(t, reg.Register(def))
	assert.Error(t, reg.Register(def), "duplicate")
	assert.Error(t, reg.Register(Definition{Name: "A", Objective: genetic.ObjectiveFunc(Sphere)}), "case-insensitive duplicate")
	assert.Error(t, reg.Register(Definition{Name: "", Objective: genetic.ObjectiveFunc(Sphere)}))
	assert.Error(t, reg.Register(Definition{Name: "b"}))
}

func TestDefault(t *testing.T) {
	assert.Equal(t, []string{"ackley", "rastrigin", "rosenbrock", "sphere"}, Default.Names())

	def, err := Default.Lookup("Rosenbrock")
	require.NoError(t, err)
	assert.Equal(t, RosenbrockDomain, def.Domain)

	score, err := def.Objective.Evaluate([]float64{1, 1})
	require.NoError(t, err)
	assert.Zero(t, score)
}

func TestDefault_DrivesEngine(t *testing.T) {
	def, err := Default.Lookup("rastrigin")
	require.NoError(t, err)

	cfg := genetic.DefaultConfig()
	cfg.Domain = def.Domain
	cfg.NumGenerations = 20
	cfg.Seed = 7

	engine, err := genetic.NewEngine(cfg, def.Objective)
	require.NoError(t, err)
	res, err := engine.Run()
	require.NoError(t, err)

	assert.Equal(t, Rastrigin(res.Best), res.BestFitness)
	for _, g := range res.Best {
		assert.GreaterOrEqual(t, g, def.Domain.Min)
		assert.LessOrEqual(t, g, def.Domain.Max)
	}
}
