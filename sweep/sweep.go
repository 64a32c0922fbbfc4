package sweep

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/AnnieBonav/RecursiveBestFirstSearch/genetic"
)

// Axis varies one configuration parameter linearly
// Point i sets the parameter to Start + i*Step
type Axis struct {
	Param genetic.Param `yaml:"param"`
	Start float64       `yaml:"start"`
	Step  float64       `yaml:"step"`
}

// Value returns the axis value at point i
func (a Axis) Value(i int) float64 {
	return a.Start + float64(i)*a.Step
}

// Sweep is a series of runs where every axis advances together
type Sweep struct {
	Name  string `yaml:"name,omitempty"`
	Axes  []Axis `yaml:"axes,omitempty"`
	Steps int    `yaml:"steps,omitempty"`
	// Repeats is the number of independently seeded runs per point
	Repeats int `yaml:"repeats,omitempty"`
}

// Validate checks the sweep shape, not the configurations it produces
func (s Sweep) Validate() error {
	var err error
	if s.Name == "" {
		err = multierr.Append(err, fmt.Errorf("sweep: empty name"))
	}
	if len(s.Axes) == 0 {
		err = multierr.Append(err, fmt.Errorf("sweep %q: no axes", s.Name))
	}
	if s.Steps < 1 {
		err = multierr.Append(err, fmt.Errorf("sweep %q: steps %d < 1", s.Name, s.Steps))
	}
	if s.Repeats < 1 {
		err = multierr.Append(err, fmt.Errorf("sweep %q: repeats %d < 1", s.Name, s.Repeats))
	}
	seen := make(map[genetic.Param]bool, len(s.Axes))
	for _, a := range s.Axes {
		if seen[a.Param] {
			err = multierr.Append(err, fmt.Errorf("sweep %q: parameter %s varied twice", s.Name, a.Param))
		}
		seen[a.Param] = true
	}
	return err
}

// Configs expands base into one validated configuration per point
func (s Sweep) Configs(base genetic.Config) ([]genetic.Config, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	configs := make([]genetic.Config, s.Steps)
	var errs error
	for i := range configs {
		cfg := base
		for _, a := range s.Axes {
			if err := cfg.Set(a.Param, a.Value(i)); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("sweep %q point %d: %w", s.Name, i, err))
			}
		}
		if err := cfg.Validate(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("sweep %q point %d: %w", s.Name, i, err))
		}
		configs[i] = cfg
	}
	if errs != nil {
		return nil, errs
	}
	return configs, nil
}
