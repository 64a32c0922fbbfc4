package sweep

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/AnnieBonav/RecursiveBestFirstSearch/genetic"
	"github.com/AnnieBonav/RecursiveBestFirstSearch/genetic/tracking"
	"github.com/AnnieBonav/RecursiveBestFirstSearch/parameter"
)

// Run is one engine execution inside a sweep
type Run struct {
	ID                   uuid.UUID
	Point                int
	Repeat               int
	Seed                 uint64
	Best                 genetic.Individual
	BestFitness          float64
	Series               genetic.Series
	Evaluations          int
	DegenerateSelections int
	Metrics              tracking.MetricBundle
}

// Point aggregates the repeats run at one set of axis values
type Point struct {
	Index int
	// Values holds one entry per axis, in axis order
	Values []float64
	Config genetic.Config
	Runs   []Run

	// Mean and StdDev describe BestFitness across repeats; StdDev is 0 for a single repeat
	Mean                 float64
	StdDev               float64
	Best                 genetic.Individual
	BestFitness          float64
	DegenerateSelections int
}

// Outcome is a completed sweep
type Outcome struct {
	ID        uuid.UUID
	Sweep     Sweep
	Objective string
	// Base carries the resolved base seed every run seed derives from
	Base    genetic.Config
	Points  []Point
	Started time.Time
	Elapsed time.Duration
}

// Runner executes sweeps against one objective
// The objective must be safe for concurrent use
type Runner struct {
	name        string
	objective   genetic.Objective
	logger      *zap.Logger
	parallelism int
	collectors  *tracking.CollectorPool
}

// RunnerOption customizes a Runner
type RunnerOption func(*Runner)

// WithLogger sets the logger handed to every engine
func WithLogger(logger *zap.Logger) RunnerOption {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithParallelism bounds concurrently running engines
func WithParallelism(n int) RunnerOption {
	return func(r *Runner) {
		if n > 0 {
			r.parallelism = n
		}
	}
}

// NewRunner creates a runner for the named objective
func NewRunner(name string, objective genetic.Objective, opts ...RunnerOption) *Runner {
	r := &Runner{
		name:        name,
		objective:   objective,
		logger:      zap.NewNop(),
		parallelism: parameter.SweepParallelism,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.collectors = tracking.NewCollectorPool(r.parallelism)
	return r
}

// Run executes every point of s, Repeats times each
// Results do not depend on parallelism: every run owns a generator seeded from the base seed
func (r *Runner) Run(ctx context.Context, base genetic.Config, s Sweep) (Outcome, error) {
	if r.objective == nil {
		return Outcome{}, fmt.Errorf("sweep %q: nil objective", s.Name)
	}
	if base.Seed == 0 {
		base.Seed = randomSeed()
	}
	configs, err := s.Configs(base)
	if err != nil {
		return Outcome{}, err
	}

	out := Outcome{
		ID:        uuid.New(),
		Sweep:     s,
		Objective: r.name,
		Base:      base,
		Points:    make([]Point, len(configs)),
		Started:   time.Now(),
	}
	logger := r.logger.With(zap.String("sweep", s.Name), zap.Stringer("sweepID", out.ID))
	logger.Info("sweep started",
		zap.Int("points", len(configs)),
		zap.Int("repeats", s.Repeats),
		zap.Uint64("seed", base.Seed),
	)

	runs := make([]Run, len(configs)*s.Repeats)
	errs := make([]error, len(runs))

	p := pool.New().WithErrors().WithContext(ctx).WithMaxGoroutines(r.parallelism)
	for i := range runs {
		point, repeat := i/s.Repeats, i%s.Repeats
		cfg := configs[point]
		cfg.Seed = DeriveSeed(base.Seed, i)

		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			run, err := r.execute(cfg, point, repeat, logger)
			if err != nil {
				errs[i] = fmt.Errorf("sweep %q point %d repeat %d: %w", s.Name, point, repeat, err)
				return nil
			}
			runs[i] = run
			return nil
		})
	}
	if err := multierr.Append(p.Wait(), multierr.Combine(errs...)); err != nil {
		logger.Error("sweep failed", zap.Error(err))
		return Outcome{}, err
	}

	for i, cfg := range configs {
		cfg.Seed = base.Seed
		out.Points[i] = aggregate(i, s.Axes, cfg, runs[i*s.Repeats:(i+1)*s.Repeats])
	}
	out.Elapsed = time.Since(out.Started)

	logger.Info("sweep finished", zap.Duration("elapsed", out.Elapsed))
	return out, nil
}

// execute runs one engine with a pooled collector attached
func (r *Runner) execute(cfg genetic.Config, point, repeat int, logger *zap.Logger) (Run, error) {
	collector := r.collectors.Acquire()
	defer r.collectors.Release(collector)

	id := uuid.New()
	engine, err := genetic.NewEngine(cfg, r.objective,
		genetic.WithObserver(collector),
		genetic.WithLogger(logger.With(zap.Int("point", point), zap.Int("repeat", repeat), zap.Stringer("runID", id))),
	)
	if err != nil {
		return Run{}, err
	}
	res, err := engine.Run()
	if err != nil {
		return Run{}, err
	}

	return Run{
		ID:                   id,
		Point:                point,
		Repeat:               repeat,
		Seed:                 res.Seed,
		Best:                 res.Best,
		BestFitness:          res.BestFitness,
		Series:               res.Series,
		Evaluations:          res.Evaluations,
		DegenerateSelections: res.DegenerateSelections,
		Metrics: collector.Finalize(tracking.MetricBundle{
			tracking.MetricBestFitness: res.BestFitness,
			tracking.MetricEvaluations: float64(res.Evaluations),
		}),
	}, nil
}

func aggregate(index int, axes []Axis, cfg genetic.Config, runs []Run) Point {
	pt := Point{
		Index:  index,
		Values: make([]float64, len(axes)),
		Config: cfg,
		Runs:   runs,
	}
	for j, a := range axes {
		pt.Values[j] = a.Value(index)
	}

	fitness := make([]float64, len(runs))
	for j, run := range runs {
		fitness[j] = run.BestFitness
		pt.DegenerateSelections += run.DegenerateSelections
	}
	pt.Mean = stat.Mean(fitness, nil)
	if len(fitness) > 1 {
		pt.StdDev = stat.StdDev(fitness, nil)
	}
	best := genetic.Best(fitness)
	pt.Best = runs[best].Best
	pt.BestFitness = runs[best].BestFitness
	return pt
}

// DeriveSeed maps a base seed and run index to a well-mixed, non-zero run seed
func DeriveSeed(base uint64, index int) uint64 {
	// splitmix64 finalizer
	z := base + uint64(index+1)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	z ^= z >> 31
	if z == 0 {
		z = 1
	}
	return z
}

func randomSeed() uint64 {
	for {
		if s := rand.Uint64(); s != 0 {
			return s
		}
	}
}
