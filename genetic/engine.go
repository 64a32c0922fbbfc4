package genetic

import (
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"
)

// --- Algorithm Engine ---

// State is the lifecycle position of an Engine
type State int

const (
	StateInitialized State = iota
	StateRunning
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateInitialized:
		return "initialized"
	case StateRunning:
		return "running"
	case StateTerminated:
		return "terminated"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Result is the outcome of a completed run
type Result struct {
	Best        Individual
	BestFitness float64
	Series      Series
	// Generations is the number of completed generations
	Generations int
	// Evaluations counts every objective call, the final scan included
	Evaluations          int
	DegenerateSelections int
	// Seed is the effective generator seed, 0 when the generator was supplied with WithRand
	Seed uint64
}

// Engine is the main genetic algorithm execution engine
// It coordinates all operators and owns the population for the duration of a run
// An Engine is single-use and must not be shared between goroutines
type Engine struct {
	config      Config
	evaluator   *Evaluator
	breeder     *Breeder
	replacement Replacement

	rng      *rand.Rand
	logger   *zap.Logger
	observer Observer

	state      State
	population Population
	series     Series
	degenerate int
}

// Option customizes an Engine at construction
type Option func(*Engine)

// WithLogger attaches a logger; the default discards everything
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithObserver attaches an observer; the default is NopObserver
func WithObserver(observer Observer) Option {
	return func(e *Engine) {
		if observer != nil {
			e.observer = observer
		}
	}
}

// WithRand replaces the generator seeded from Config.Seed
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		if rng != nil {
			e.rng = rng
		}
	}
}

// NewEngine validates config, seeds the generator and draws the initial population
func NewEngine(config Config, objective Objective, opts ...Option) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if objective == nil {
		return nil, fmt.Errorf("genetic: nil objective")
	}

	e := &Engine{
		config:   config,
		logger:   zap.NewNop(),
		observer: NopObserver{},
	}
	for _, opt := range opts {
		opt(e)
	}

	// Initialize random number generator
	if e.rng == nil {
		if e.config.Seed == 0 {
			e.config.Seed = rand.Uint64()
		}
		e.rng = rand.New(rand.NewPCG(e.config.Seed, e.config.Seed))
	} else {
		e.config.Seed = 0
	}

	var selector Selector
	switch config.Selection {
	case SelectionRoulette:
		selector = RouletteSelector{}
	case SelectionTournament:
		selector = TournamentSelector{Size: config.TournamentSize}
	}

	switch config.Evolve {
	case EvolveBasicReplacement:
		e.replacement = BasicReplacement{}
	case EvolveElitismAndGenerational:
		e.replacement = ElitismReplacement{Count: config.ElitismCount}
	}

	e.evaluator = NewEvaluator(objective)
	e.breeder = NewBreeder(
		selector,
		UniformCrossover{Rate: config.CrossoverRate},
		UniformMutation{Rate: config.MutationRate, Domain: config.Domain},
		e.evaluator,
		e.rng,
	)
	e.breeder.OnDegenerate(e.warnDegenerate)

	e.population = NewPopulation(config.PopulationSize, config.NumDimensions, config.Domain, e.rng)
	e.series = NewSeries(config.NumGenerations)

	return e, nil
}

// Config returns the configuration the engine was built with, Seed resolved
func (e *Engine) Config() Config {
	return e.config
}

// State returns the lifecycle position
func (e *Engine) State() State {
	return e.state
}

// Population returns a copy of the current population
func (e *Engine) Population() Population {
	return e.population.Clone()
}

// Run evolves the population for NumGenerations and returns the best individual found
// The first failing evaluation terminates the run
func (e *Engine) Run() (Result, error) {
	if e.state != StateInitialized {
		return Result{}, ErrEngineUsed
	}
	e.state = StateRunning
	defer func() { e.state = StateTerminated }()

	e.logger.Info("run started",
		zap.Stringer("selection", e.breeder.selector.Method()),
		zap.Stringer("evolve", e.replacement.Method()),
		zap.Int("dimensions", e.config.NumDimensions),
		zap.Int("population", e.config.PopulationSize),
		zap.Int("generations", e.config.NumGenerations),
	)

	// Main evolution loop
	for generation := 0; generation < e.config.NumGenerations; generation++ {
		next, stats, err := e.replacement.Next(generation, e.population, e.breeder)
		if err != nil {
			e.logger.Error("run failed", zap.Int("generation", generation), zap.Error(err))
			return Result{}, err
		}
		e.population = next

		// Record statistics
		e.series.Append(stats)
		e.observer.OnGeneration(stats)
		if ce := e.logger.Check(zap.DebugLevel, "generation"); ce != nil {
			ce.Write(
				zap.Int("generation", stats.Generation),
				zap.Float64("best", stats.Best),
				zap.Float64("worst", stats.Worst),
				zap.Float64("average", stats.Average),
				zap.Int("distinct", stats.Distinct),
			)
		}
	}

	best, bestFitness, err := e.best()
	if err != nil {
		return Result{}, err
	}

	e.logger.Info("run finished",
		zap.Float64("bestFitness", bestFitness),
		zap.Int("evaluations", e.evaluator.Count()),
		zap.Int("degenerateSelections", e.degenerate),
	)

	return Result{
		Best:                 best,
		BestFitness:          bestFitness,
		Series:               e.series,
		Generations:          e.series.Len(),
		Evaluations:          e.evaluator.Count(),
		DegenerateSelections: e.degenerate,
		Seed:                 e.config.Seed,
	}, nil
}

// best re-evaluates the final population and returns its lowest-scoring member
func (e *Engine) best() (Individual, float64, error) {
	scores, err := e.evaluator.EvaluatePopulation(e.population)
	if err != nil {
		return nil, 0, atGeneration(err, e.config.NumGenerations)
	}
	idx := Best(scores)
	return e.population[idx].Clone(), scores[idx], nil
}

func (e *Engine) warnDegenerate(err *SelectionDegenerateError) {
	e.degenerate++
	e.observer.OnWarning(err)
	e.logger.Warn("degenerate selection", zap.Int("generation", err.Generation), zap.Float64("total", err.Total))
}
