package report

import (
	"time"

	"github.com/AnnieBonav/RecursiveBestFirstSearch/genetic"
	"github.com/AnnieBonav/RecursiveBestFirstSearch/sweep"
)

// RunRecord is the serializable outcome of a single engine run
type RunRecord struct {
	ID                   string         `yaml:"id"`
	Objective            string         `yaml:"objective"`
	Created              time.Time      `yaml:"created"`
	Config               genetic.Config `yaml:"config"`
	Best                 []float64      `yaml:"best"`
	BestFitness          float64        `yaml:"bestFitness"`
	Generations          int            `yaml:"generations"`
	Evaluations          int            `yaml:"evaluations"`
	DegenerateSelections int            `yaml:"degenerateSelections"`
	Series               genetic.Series `yaml:"series"`
}

// NewRunRecord converts an engine result
// cfg should be the engine's resolved configuration so the record can be replayed
func NewRunRecord(id, objective string, cfg genetic.Config, res genetic.Result) RunRecord {
	return RunRecord{
		ID:                   id,
		Objective:            objective,
		Created:              time.Now().UTC(),
		Config:               cfg,
		Best:                 res.Best,
		BestFitness:          res.BestFitness,
		Generations:          res.Generations,
		Evaluations:          res.Evaluations,
		DegenerateSelections: res.DegenerateSelections,
		Series:               res.Series,
	}
}

// SweepRecord is the serializable outcome of a sweep
type SweepRecord struct {
	ID        string         `yaml:"id"`
	Name      string         `yaml:"name"`
	Objective string         `yaml:"objective"`
	Created   time.Time      `yaml:"created"`
	Elapsed   time.Duration  `yaml:"elapsed"`
	Base      genetic.Config `yaml:"base"`
	Axes      []sweep.Axis   `yaml:"axes"`
	Repeats   int            `yaml:"repeats"`
	Points    []PointRecord  `yaml:"points"`
}

// PointRecord summarizes one sweep point
type PointRecord struct {
	Index                int          `yaml:"index"`
	Values               []float64    `yaml:"values"`
	Mean                 float64      `yaml:"mean"`
	StdDev               float64      `yaml:"stddev"`
	BestFitness          float64      `yaml:"bestFitness"`
	Best                 []float64    `yaml:"best"`
	DegenerateSelections int          `yaml:"degenerateSelections"`
	Runs                 []RunSummary `yaml:"runs"`
}

// RunSummary is a sweep run without its series
type RunSummary struct {
	ID          string             `yaml:"id"`
	Seed        uint64             `yaml:"seed"`
	BestFitness float64            `yaml:"bestFitness"`
	Evaluations int                `yaml:"evaluations"`
	Metrics     map[string]float64 `yaml:"metrics,omitempty"`
}

// FromOutcome converts a completed sweep
func FromOutcome(out sweep.Outcome) SweepRecord {
	rec := SweepRecord{
		ID:        out.ID.String(),
		Name:      out.Sweep.Name,
		Objective: out.Objective,
		Created:   out.Started.UTC(),
		Elapsed:   out.Elapsed,
		Base:      out.Base,
		Axes:      out.Sweep.Axes,
		Repeats:   out.Sweep.Repeats,
		Points:    make([]PointRecord, len(out.Points)),
	}

	for i, pt := range out.Points {
		pr := PointRecord{
			Index:                pt.Index,
			Values:               pt.Values,
			Mean:                 pt.Mean,
			StdDev:               pt.StdDev,
			BestFitness:          pt.BestFitness,
			Best:                 pt.Best,
			DegenerateSelections: pt.DegenerateSelections,
			Runs:                 make([]RunSummary, len(pt.Runs)),
		}
		for j, run := range pt.Runs {
			pr.Runs[j] = RunSummary{
				ID:          run.ID.String(),
				Seed:        run.Seed,
				BestFitness: run.BestFitness,
				Evaluations: run.Evaluations,
				Metrics:     run.Metrics.Clone(),
			}
		}
		rec.Points[i] = pr
	}

	return rec
}
