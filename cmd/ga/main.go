package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Sweep flag values besides preset names
const (
	sweepAll  = "all"
	sweepFile = "file"
)

// options holds parsed command-line flags
type options struct {
	configPath string
	objective  string
	seed       uint64
	overrides  overrideList
	sweep      string
	repeats    int
	parallel   int
	outDir     string
	workbook   string
	plot       bool
	verbose    bool
}

// overrideList collects repeated -set flags
type overrideList []string

func (o *overrideList) String() string {
	return strings.Join(*o, ",")
}

func (o *overrideList) Set(v string) error {
	*o = append(*o, v)
	return nil
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("ga", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.configPath, "config", "", "experiment file (YAML)")
	fs.StringVar(&opts.objective, "objective", "", "objective function name")
	fs.Uint64Var(&opts.seed, "seed", 0, "generator seed (0 = random)")
	fs.Var(&opts.overrides, "set", "override a setting as name=value (repeatable)")
	fs.StringVar(&opts.sweep, "sweep", "", "run sweeps: a preset name, 'all' presets, or 'file' for the experiment's sweeps")
	fs.IntVar(&opts.repeats, "repeats", 0, "runs per sweep point (0 = keep)")
	fs.IntVar(&opts.parallel, "parallel", 0, "concurrent sweep runs (0 = keep)")
	fs.StringVar(&opts.outDir, "out", "", "directory for run and sweep records")
	fs.StringVar(&opts.workbook, "xlsx", "", "write results to this workbook")
	fs.BoolVar(&opts.plot, "plot", false, "show the fitness chart after a single run")
	fs.BoolVar(&opts.verbose, "v", false, "log every generation")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return opts, nil
}

// flagOverrides turns explicit flags into experiment overrides, applied after -set
func (o options) flagOverrides() []string {
	var list []string
	if o.objective != "" {
		list = append(list, "objective="+o.objective)
	}
	if o.seed != 0 {
		list = append(list, "seed="+strconv.FormatUint(o.seed, 10))
	}
	if o.parallel > 0 {
		list = append(list, "parallelism="+strconv.Itoa(o.parallel))
	}
	if o.outDir != "" {
		list = append(list, "outputDir="+o.outDir)
	}
	if o.workbook != "" {
		list = append(list, "workbook="+o.workbook)
	}
	if o.plot {
		list = append(list, "plot=true")
	}
	return list
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "ga crashed: %v\nStack Trace:\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()

	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	logger, err := newLogger(opts.verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, os.Stdout, logger); err != nil {
		logger.Error("ga failed", zap.Error(err))
		stop()
		logger.Sync()
		os.Exit(1)
	}
}
