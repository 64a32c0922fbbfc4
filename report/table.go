package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gosuri/uitable"

	"github.com/AnnieBonav/RecursiveBestFirstSearch/genetic"
)

const maxColWidth = 60

// RunSummaryTable lists the key facts of a run
func RunSummaryTable(rec RunRecord) *uitable.Table {
	t := uitable.New()
	t.MaxColWidth = maxColWidth
	t.Wrap = true

	cfg := rec.Config
	t.AddRow("Objective", rec.Objective)
	t.AddRow("Run", rec.ID)
	t.AddRow("Seed", cfg.Seed)
	t.AddRow("Dimensions", cfg.NumDimensions)
	t.AddRow("Population", cfg.PopulationSize)
	t.AddRow("Generations", rec.Generations)
	t.AddRow("Selection", selectionLabel(rec))
	t.AddRow("Evolution", evolveLabel(rec))
	t.AddRow("Mutation", formatFloat(cfg.MutationRate))
	t.AddRow("Crossover", formatFloat(cfg.CrossoverRate))
	t.AddRow("Evaluations", rec.Evaluations)
	if rec.DegenerateSelections > 0 {
		t.AddRow("Degenerate selections", rec.DegenerateSelections)
	}
	t.AddRow("Best fitness", formatFloat(rec.BestFitness))
	t.AddRow("Best individual", formatGenes(rec.Best))
	return t
}

// GenerationTable lists per-generation statistics
// tail > 0 keeps only the last tail generations
func GenerationTable(rec RunRecord, tail int) *uitable.Table {
	t := uitable.New()
	t.MaxColWidth = maxColWidth
	t.AddRow("GENERATION", "BEST", "WORST", "AVERAGE")
	for i := 0; i < 4; i++ {
		t.RightAlign(i)
	}

	s := rec.Series
	start := 0
	if tail > 0 && s.Len() > tail {
		start = s.Len() - tail
	}
	for g := start; g < s.Len(); g++ {
		t.AddRow(g, formatFloat(s.Best[g]), formatFloat(s.Worst[g]), formatFloat(s.Average[g]))
	}
	return t
}

// SweepTable lists one row per sweep point
func SweepTable(rec SweepRecord) *uitable.Table {
	t := uitable.New()
	t.MaxColWidth = maxColWidth

	header := []any{"POINT"}
	for _, a := range rec.Axes {
		header = append(header, strings.ToUpper(a.Param.String()))
	}
	header = append(header, "MEAN", "STDDEV", "BEST", "DEGENERATE")
	t.AddRow(header...)

	for _, pt := range rec.Points {
		row := []any{pt.Index}
		for _, v := range pt.Values {
			row = append(row, formatFloat(v))
		}
		row = append(row, formatFloat(pt.Mean), formatFloat(pt.StdDev), formatFloat(pt.BestFitness), pt.DegenerateSelections)
		t.AddRow(row...)
	}
	return t
}

func selectionLabel(rec RunRecord) string {
	cfg := rec.Config
	if cfg.Selection == genetic.SelectionTournament {
		return fmt.Sprintf("%s (size %d)", cfg.Selection, cfg.TournamentSize)
	}
	return cfg.Selection.String()
}

func evolveLabel(rec RunRecord) string {
	cfg := rec.Config
	if cfg.Evolve == genetic.EvolveElitismAndGenerational {
		return fmt.Sprintf("%s (keep %d)", cfg.Evolve, cfg.ElitismCount)
	}
	return cfg.Evolve.String()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

func formatGenes(genes []float64) string {
	parts := make([]string, len(genes))
	for i, g := range genes {
		parts[i] = formatFloat(g)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
