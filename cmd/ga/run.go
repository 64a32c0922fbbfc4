package main

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/AnnieBonav/RecursiveBestFirstSearch/chart"
	"github.com/AnnieBonav/RecursiveBestFirstSearch/experiment"
	"github.com/AnnieBonav/RecursiveBestFirstSearch/genetic"
	"github.com/AnnieBonav/RecursiveBestFirstSearch/objective"
	"github.com/AnnieBonav/RecursiveBestFirstSearch/report"
	"github.com/AnnieBonav/RecursiveBestFirstSearch/sweep"
)

// generationTail is the number of generations printed after a single run
const generationTail = 10

// showChart is replaced in tests
var showChart = chart.Run

func run(ctx context.Context, opts options, stdout io.Writer, logger *zap.Logger) error {
	exp, err := loadExperiment(opts)
	if err != nil {
		return err
	}

	def, cfg, err := exp.Resolve(objective.Default)
	if err != nil {
		return err
	}

	if opts.sweep == "" {
		return runSingle(exp, def, cfg, stdout, logger)
	}

	sweeps, err := selectSweeps(exp, opts)
	if err != nil {
		return err
	}
	return runSweeps(ctx, exp, def, cfg, sweeps, stdout, logger)
}

// loadExperiment reads the experiment file or defaults and applies overrides
// Preset sweeps without a file start from the preset base configuration
func loadExperiment(opts options) (experiment.Experiment, error) {
	exp := experiment.Default()
	if opts.configPath != "" {
		var err error
		if exp, err = experiment.Load(opts.configPath); err != nil {
			return exp, err
		}
	} else if opts.sweep != "" && opts.sweep != sweepFile {
		exp.Config = sweep.PresetBase()
		exp.Config.Domain = genetic.Bounds{}
	}

	overrides := append([]string(opts.overrides), opts.flagOverrides()...)
	if err := exp.Apply(overrides...); err != nil {
		return exp, err
	}
	return exp, nil
}

func selectSweeps(exp experiment.Experiment, opts options) ([]sweep.Sweep, error) {
	var sweeps []sweep.Sweep
	switch opts.sweep {
	case sweepFile:
		list, err := exp.SweepList()
		if err != nil {
			return nil, err
		}
		if len(list) == 0 {
			return nil, fmt.Errorf("experiment defines no sweeps")
		}
		sweeps = list
	case sweepAll:
		for _, name := range sweep.PresetNames() {
			s, err := sweep.Preset(name)
			if err != nil {
				return nil, err
			}
			sweeps = append(sweeps, s)
		}
	default:
		s, err := sweep.Preset(opts.sweep)
		if err != nil {
			return nil, err
		}
		sweeps = append(sweeps, s)
	}

	if opts.repeats > 0 {
		for i := range sweeps {
			sweeps[i].Repeats = opts.repeats
		}
	}
	return sweeps, nil
}

func runSingle(exp experiment.Experiment, def objective.Definition, cfg genetic.Config, stdout io.Writer, logger *zap.Logger) error {
	engine, err := genetic.NewEngine(cfg, def.Objective, genetic.WithLogger(logger.With(zap.String("objective", def.Name))))
	if err != nil {
		return err
	}
	res, err := engine.Run()
	if err != nil {
		return err
	}

	rec := report.NewRunRecord(uuid.NewString(), def.Name, engine.Config(), res)
	fmt.Fprintln(stdout, report.RunSummaryTable(rec))
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, report.GenerationTable(rec, generationTail))

	if dir := exp.Output.Dir; dir != "" {
		path, err := report.NewStore(dir).SaveRun(rec)
		if err != nil {
			return err
		}
		logger.Info("run saved", zap.String("path", path))
	}
	if exp.Output.Workbook != "" {
		if err := writeWorkbook(exp.Output.Workbook, []report.RunRecord{rec}, nil); err != nil {
			return err
		}
		logger.Info("workbook saved", zap.String("path", exp.Output.Workbook))
	}
	if exp.Output.Plot {
		title := fmt.Sprintf("%s  best %.6g", def.Name, res.BestFitness)
		return showChart(chart.New(title, res.Series, false))
	}
	return nil
}

func runSweeps(ctx context.Context, exp experiment.Experiment, def objective.Definition, base genetic.Config, sweeps []sweep.Sweep, stdout io.Writer, logger *zap.Logger) error {
	if exp.Output.Plot {
		logger.Warn("plot is only available for single runs")
	}

	runner := sweep.NewRunner(def.Name, def.Objective,
		sweep.WithLogger(logger),
		sweep.WithParallelism(exp.Parallelism),
	)

	var store *report.Store
	if exp.Output.Dir != "" {
		store = report.NewStore(exp.Output.Dir)
	}

	var records []report.SweepRecord
	var errs error
	for _, s := range sweeps {
		out, err := runner.Run(ctx, base, s)
		if err != nil {
			errs = multierr.Append(errs, err)
			if ctx.Err() != nil {
				break
			}
			continue
		}

		rec := report.FromOutcome(out)
		records = append(records, rec)
		fmt.Fprintf(stdout, "sweep %s (%s, %d repeats)\n", rec.Name, def.Name, rec.Repeats)
		fmt.Fprintln(stdout, report.SweepTable(rec))
		fmt.Fprintln(stdout)

		if store != nil {
			path, err := store.SaveSweep(rec)
			if err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			logger.Info("sweep saved", zap.String("path", path))
		}
	}

	if exp.Output.Workbook != "" && len(records) > 0 {
		if err := writeWorkbook(exp.Output.Workbook, nil, records); err != nil {
			errs = multierr.Append(errs, err)
		} else {
			logger.Info("workbook saved", zap.String("path", exp.Output.Workbook))
		}
	}
	return errs
}

func writeWorkbook(path string, runs []report.RunRecord, sweeps []report.SweepRecord) (err error) {
	w, err := report.NewWorkbook()
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, w.Close()) }()

	for _, rec := range runs {
		if err := w.AddRun(rec); err != nil {
			return err
		}
	}
	for _, rec := range sweeps {
		if err := w.AddSweep(rec); err != nil {
			return err
		}
	}
	return w.SaveAs(path)
}
