package experiment

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/AnnieBonav/RecursiveBestFirstSearch/genetic"
	"github.com/AnnieBonav/RecursiveBestFirstSearch/objective"
	"github.com/AnnieBonav/RecursiveBestFirstSearch/parameter"
	"github.com/AnnieBonav/RecursiveBestFirstSearch/sweep"
)

// Experiment describes what to optimize, how, and where results go
type Experiment struct {
	Objective string         `yaml:"objective"`
	Config    genetic.Config `yaml:"config"`
	Sweeps    []SweepEntry   `yaml:"sweeps,omitempty"`
	// Parallelism bounds concurrently running sweep engines
	Parallelism int    `yaml:"parallelism"`
	Output      Output `yaml:"output"`
}

// SweepEntry is either a named preset or an explicit sweep
// Explicit fields set next to a preset override the preset's
type SweepEntry struct {
	Preset      string `yaml:"preset,omitempty"`
	sweep.Sweep `yaml:",inline"`
}

// Output locates result files; empty fields disable the output
type Output struct {
	Dir      string `yaml:"dir,omitempty"`
	Workbook string `yaml:"workbook,omitempty"`
	Plot     bool   `yaml:"plot,omitempty"`
}

// Default returns the sphere experiment with default engine settings
// The domain is left unset so the objective's conventional domain applies
func Default() Experiment {
	cfg := genetic.DefaultConfig()
	cfg.Domain = genetic.Bounds{}
	return Experiment{
		Objective:   "sphere",
		Config:      cfg,
		Parallelism: parameter.SweepParallelism,
	}
}

// Load reads an experiment file over the defaults
func Load(path string) (Experiment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Experiment{}, err
	}
	exp, err := Parse(data)
	if err != nil {
		return Experiment{}, fmt.Errorf("%s: %w", path, err)
	}
	return exp, nil
}

// Parse decodes an experiment over the defaults; unknown keys are rejected
func Parse(data []byte) (Experiment, error) {
	exp := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&exp); err != nil && !errors.Is(err, io.EOF) {
		return Experiment{}, err
	}
	return exp, nil
}

// Resolve looks up the objective and fills the domain from it when unset
// The returned configuration is validated
func (e Experiment) Resolve(reg *objective.Registry) (objective.Definition, genetic.Config, error) {
	def, err := reg.Lookup(e.Objective)
	if err != nil {
		return objective.Definition{}, genetic.Config{}, err
	}

	cfg := e.Config
	if cfg.Domain.IsZero() {
		cfg.Domain = def.Domain
	}
	if err := cfg.Validate(); err != nil {
		return objective.Definition{}, genetic.Config{}, err
	}
	return def, cfg, nil
}

// SweepList expands presets and fills default repeats
func (e Experiment) SweepList() ([]sweep.Sweep, error) {
	list := make([]sweep.Sweep, 0, len(e.Sweeps))
	for i, entry := range e.Sweeps {
		s, err := entry.resolve()
		if err != nil {
			return nil, fmt.Errorf("sweeps[%d]: %w", i, err)
		}
		list = append(list, s)
	}
	return list, nil
}

func (entry SweepEntry) resolve() (sweep.Sweep, error) {
	s := entry.Sweep
	if entry.Preset != "" {
		preset, err := sweep.Preset(entry.Preset)
		if err != nil {
			return sweep.Sweep{}, err
		}
		if s.Name != "" {
			preset.Name = s.Name
		}
		if len(s.Axes) > 0 {
			preset.Axes = s.Axes
		}
		if s.Steps > 0 {
			preset.Steps = s.Steps
		}
		if s.Repeats > 0 {
			preset.Repeats = s.Repeats
		}
		s = preset
	}
	if s.Repeats == 0 {
		s.Repeats = parameter.SweepRepeats
	}
	return s, s.Validate()
}

// Marshal encodes the experiment as YAML
func (e Experiment) Marshal() ([]byte, error) {
	return yaml.Marshal(e)
}
