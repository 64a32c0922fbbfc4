package genetic

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/multierr"

	"github.com/AnnieBonav/RecursiveBestFirstSearch/parameter"
)

// SelectionMethod selects the parent-selection algorithm
type SelectionMethod int

const (
	SelectionUnknown SelectionMethod = iota
	SelectionRoulette
	SelectionTournament
)

var selectionNames = map[SelectionMethod]string{
	SelectionRoulette:   "roulette",
	SelectionTournament: "tournament",
}

func (m SelectionMethod) String() string {
	if name, ok := selectionNames[m]; ok {
		return name
	}
	return fmt.Sprintf("SelectionMethod(%d)", int(m))
}

// ParseSelectionMethod accepts the short names and the long reference names
func ParseSelectionMethod(name string) (SelectionMethod, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "roulette", "rouletteselection":
		return SelectionRoulette, nil
	case "tournament", "tournamentselection":
		return SelectionTournament, nil
	}
	return SelectionUnknown, fmt.Errorf("unknown selection method %q", name)
}

func (m SelectionMethod) MarshalText() ([]byte, error) {
	if _, ok := selectionNames[m]; !ok {
		return nil, fmt.Errorf("cannot marshal %s", m)
	}
	return []byte(m.String()), nil
}

func (m *SelectionMethod) UnmarshalText(text []byte) error {
	parsed, err := ParseSelectionMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// EvolveMethod selects the generational replacement policy
type EvolveMethod int

const (
	EvolveUnknown EvolveMethod = iota
	EvolveBasicReplacement
	EvolveElitismAndGenerational
)

var evolveNames = map[EvolveMethod]string{
	EvolveBasicReplacement:       "basic",
	EvolveElitismAndGenerational: "elitism",
}

func (m EvolveMethod) String() string {
	if name, ok := evolveNames[m]; ok {
		return name
	}
	return fmt.Sprintf("EvolveMethod(%d)", int(m))
}

// ParseEvolveMethod accepts the short names and the long reference names
func ParseEvolveMethod(name string) (EvolveMethod, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "basic", "basicreplacement":
		return EvolveBasicReplacement, nil
	case "elitism", "elitismandgenerational":
		return EvolveElitismAndGenerational, nil
	}
	return EvolveUnknown, fmt.Errorf("unknown evolve method %q", name)
}

func (m EvolveMethod) MarshalText() ([]byte, error) {
	if _, ok := evolveNames[m]; !ok {
		return nil, fmt.Errorf("cannot marshal %s", m)
	}
	return []byte(m.String()), nil
}

func (m *EvolveMethod) UnmarshalText(text []byte) error {
	parsed, err := ParseEvolveMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Config holds the tunable parameters of one run
// The engine copies it at construction; changes made afterwards do not affect a run
type Config struct {
	// NumDimensions is the gene-vector length
	NumDimensions int `yaml:"numDimensions"`
	// PopulationSize is the number of individuals per generation
	PopulationSize int `yaml:"populationSize"`
	// NumGenerations is the number of evolve iterations
	NumGenerations int `yaml:"numGenerations"`
	// MutationRate is the per-gene probability of a uniform redraw (0-1)
	MutationRate float64 `yaml:"mutationRate"`
	// CrossoverRate is the per-gene probability of copying from the first parent (0-1)
	CrossoverRate float64 `yaml:"crossoverRate"`

	Selection      SelectionMethod `yaml:"selectionMethod"`
	TournamentSize int             `yaml:"tournamentSize"`

	Evolve       EvolveMethod `yaml:"evolveMethod"`
	ElitismCount int          `yaml:"elitismCount"`

	// Domain bounds initialization and mutation draws
	Domain Bounds `yaml:"domain"`

	// Seed for random number generation (0 for random seed)
	Seed uint64 `yaml:"seed"`
}

// DefaultConfig returns a reasonable default configuration.
func DefaultConfig() Config {
	return Config{
		NumDimensions:  parameter.GANumDimensions,
		PopulationSize: parameter.GAPopulationSize,
		NumGenerations: parameter.GANumGenerations,
		MutationRate:   parameter.GAMutationRate,
		CrossoverRate:  parameter.GACrossoverRate,
		Selection:      SelectionRoulette,
		TournamentSize: parameter.GATournamentSize,
		Evolve:         EvolveBasicReplacement,
		ElitismCount:   parameter.GAElitismCount,
		Domain:         Bounds{Min: parameter.GADomainMin, Max: parameter.GADomainMax},
		Seed:           0,
	}
}

// Validate checks every bound and returns all violations combined
// A zero PopulationSize yields ErrEmptyPopulation, other violations yield *ConfigError
func (c Config) Validate() error {
	var err error
	bad := func(field string, value any, reason string) {
		err = multierr.Append(err, &ConfigError{Field: field, Value: value, Reason: reason})
	}

	if c.NumDimensions < 1 {
		bad("NumDimensions", c.NumDimensions, "must be positive")
	}
	switch {
	case c.PopulationSize == 0:
		err = multierr.Append(err, ErrEmptyPopulation)
	case c.PopulationSize < 0:
		bad("PopulationSize", c.PopulationSize, "must be positive")
	}
	if c.NumGenerations < 0 {
		bad("NumGenerations", c.NumGenerations, "must not be negative")
	}
	if !isProbability(c.MutationRate) {
		bad("MutationRate", c.MutationRate, "must be within [0, 1]")
	}
	if !isProbability(c.CrossoverRate) {
		bad("CrossoverRate", c.CrossoverRate, "must be within [0, 1]")
	}

	switch c.Selection {
	case SelectionRoulette:
	case SelectionTournament:
		if c.TournamentSize < 1 || c.TournamentSize > c.PopulationSize {
			bad("TournamentSize", c.TournamentSize, fmt.Sprintf("must be within [1, %d]", c.PopulationSize))
		}
	default:
		bad("Selection", c.Selection, "unknown selection method")
	}

	switch c.Evolve {
	case EvolveBasicReplacement:
	case EvolveElitismAndGenerational:
		if c.ElitismCount < 0 || c.ElitismCount > c.PopulationSize {
			bad("ElitismCount", c.ElitismCount, fmt.Sprintf("must be within [0, %d]", c.PopulationSize))
		}
	default:
		bad("Evolve", c.Evolve, "unknown evolve method")
	}

	if !isFinite(c.Domain.Min) || !isFinite(c.Domain.Max) || c.Domain.Min >= c.Domain.Max {
		bad("Domain", c.Domain, "must be finite with Min < Max")
	}

	return err
}

func isProbability(v float64) bool {
	return v >= 0 && v <= 1
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// --- Named Parameter Access ---

// Param names a numeric configuration field for sweep drivers
type Param int

const (
	ParamNumDimensions Param = iota + 1
	ParamPopulationSize
	ParamNumGenerations
	ParamMutationRate
	ParamCrossoverRate
	ParamTournamentSize
	ParamElitismCount
	ParamDomainMin
	ParamDomainMax
)

type paramAccessor struct {
	name    string
	integer bool
	get     func(c *Config) float64
	set     func(c *Config, v float64)
}

var paramTable = map[Param]paramAccessor{
	ParamNumDimensions: {
		name: "numDimensions", integer: true,
		get: func(c *Config) float64 { return float64(c.NumDimensions) },
		set: func(c *Config, v float64) { c.NumDimensions = int(v) },
	},
	ParamPopulationSize: {
		name: "populationSize", integer: true,
		get: func(c *Config) float64 { return float64(c.PopulationSize) },
		set: func(c *Config, v float64) { c.PopulationSize = int(v) },
	},
	ParamNumGenerations: {
		name: "numGenerations", integer: true,
		get: func(c *Config) float64 { return float64(c.NumGenerations) },
		set: func(c *Config, v float64) { c.NumGenerations = int(v) },
	},
	ParamMutationRate: {
		name: "mutationRate",
		get:  func(c *Config) float64 { return c.MutationRate },
		set:  func(c *Config, v float64) { c.MutationRate = v },
	},
	ParamCrossoverRate: {
		name: "crossoverRate",
		get:  func(c *Config) float64 { return c.CrossoverRate },
		set:  func(c *Config, v float64) { c.CrossoverRate = v },
	},
	ParamTournamentSize: {
		name: "tournamentSize", integer: true,
		get: func(c *Config) float64 { return float64(c.TournamentSize) },
		set: func(c *Config, v float64) { c.TournamentSize = int(v) },
	},
	ParamElitismCount: {
		name: "elitismCount", integer: true,
		get: func(c *Config) float64 { return float64(c.ElitismCount) },
		set: func(c *Config, v float64) { c.ElitismCount = int(v) },
	},
	ParamDomainMin: {
		name: "domainMin",
		get:  func(c *Config) float64 { return c.Domain.Min },
		set:  func(c *Config, v float64) { c.Domain.Min = v },
	},
	ParamDomainMax: {
		name: "domainMax",
		get:  func(c *Config) float64 { return c.Domain.Max },
		set:  func(c *Config, v float64) { c.Domain.Max = v },
	},
}

func (p Param) String() string {
	if acc, ok := paramTable[p]; ok {
		return acc.name
	}
	return fmt.Sprintf("Param(%d)", int(p))
}

// Integer reports whether the parameter only takes whole numbers
func (p Param) Integer() bool {
	return paramTable[p].integer
}

// Params lists every named parameter in declaration order
func Params() []Param {
	return []Param{
		ParamNumDimensions, ParamPopulationSize, ParamNumGenerations,
		ParamMutationRate, ParamCrossoverRate, ParamTournamentSize,
		ParamElitismCount, ParamDomainMin, ParamDomainMax,
	}
}

// ParseParam maps a field name (case-insensitive) to its Param
func ParseParam(name string) (Param, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, p := range Params() {
		if strings.ToLower(paramTable[p].name) == key {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown parameter %q", name)
}

func (p Param) MarshalText() ([]byte, error) {
	if _, ok := paramTable[p]; !ok {
		return nil, fmt.Errorf("cannot marshal %s", p)
	}
	return []byte(p.String()), nil
}

func (p *Param) UnmarshalText(text []byte) error {
	parsed, err := ParseParam(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Get returns the current value of a named parameter
func (c *Config) Get(p Param) (float64, error) {
	acc, ok := paramTable[p]
	if !ok {
		return 0, fmt.Errorf("unknown parameter %s", p)
	}
	return acc.get(c), nil
}

// Set assigns a named parameter; integer parameters reject fractional and out-of-range values
func (c *Config) Set(p Param, v float64) error {
	acc, ok := paramTable[p]
	if !ok {
		return fmt.Errorf("unknown parameter %s", p)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &ConfigError{Field: acc.name, Value: v, Reason: "must be finite"}
	}
	if acc.integer {
		if v != math.Trunc(v) {
			return &ConfigError{Field: acc.name, Value: v, Reason: "must be a whole number"}
		}
		// float64(math.MaxInt) rounds up to 2^63, which no int holds
		if v < math.MinInt || v >= math.MaxInt {
			return &ConfigError{Field: acc.name, Value: v, Reason: "out of integer range"}
		}
	}
	acc.set(c, v)
	return nil
}

// Increase adds by to a named parameter
func (c *Config) Increase(p Param, by float64) error {
	cur, err := c.Get(p)
	if err != nil {
		return err
	}
	return c.Set(p, cur+by)
}
