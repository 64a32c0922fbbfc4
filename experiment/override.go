package experiment

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"go.uber.org/multierr"

	"github.com/AnnieBonav/RecursiveBestFirstSearch/genetic"
)

// Apply sets fields from name=value strings
// Names are the experiment keys (objective, parallelism, seed, selectionMethod,
// evolveMethod, outputDir, workbook, plot) or any numeric engine parameter
func (e *Experiment) Apply(overrides ...string) error {
	var errs error
	for _, o := range overrides {
		name, value, ok := strings.Cut(o, "=")
		if !ok {
			errs = multierr.Append(errs, fmt.Errorf("override %q: want name=value", o))
			continue
		}
		if err := e.set(strings.TrimSpace(name), strings.TrimSpace(value)); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("override %q: %w", o, err))
		}
	}
	return errs
}

func (e *Experiment) set(name, value string) error {
	switch strings.ToLower(name) {
	case "objective":
		e.Objective = value
	case "parallelism":
		n, err := cast.ToIntE(value)
		if err != nil {
			return err
		}
		e.Parallelism = n
	case "seed":
		seed, err := cast.ToUint64E(value)
		if err != nil {
			return err
		}
		e.Config.Seed = seed
	case "selectionmethod", "selection":
		m, err := genetic.ParseSelectionMethod(value)
		if err != nil {
			return err
		}
		e.Config.Selection = m
	case "evolvemethod", "evolve":
		m, err := genetic.ParseEvolveMethod(value)
		if err != nil {
			return err
		}
		e.Config.Evolve = m
	case "outputdir", "out":
		e.Output.Dir = value
	case "workbook", "xlsx":
		e.Output.Workbook = value
	case "plot":
		b, err := cast.ToBoolE(value)
		if err != nil {
			return err
		}
		e.Output.Plot = b
	default:
		p, err := genetic.ParseParam(name)
		if err != nil {
			return err
		}
		v, err := cast.ToFloat64E(value)
		if err != nil {
			return err
		}
		return e.Config.Set(p, v)
	}
	return nil
}
