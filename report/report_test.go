package report

import (
	"context"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/AnnieBonav/RecursiveBestFirstSearch/genetic"
	"github.com/AnnieBonav/RecursiveBestFirstSearch/genetic/tracking"
	"github.com/AnnieBonav/RecursiveBestFirstSearch/objective"
	"github.com/AnnieBonav/RecursiveBestFirstSearch/sweep"
)

func testConfig() genetic.Config {
	cfg := genetic.DefaultConfig()
	cfg.NumDimensions = 2
	cfg.PopulationSize = 12
	cfg.NumGenerations = 15
	cfg.Selection = genetic.SelectionTournament
	cfg.TournamentSize = 3
	cfg.Evolve = genetic.EvolveElitismAndGenerational
	cfg.Seed = 5
	return cfg
}

func runRecord(t *testing.T) RunRecord {
	t.Helper()
	engine, err := genetic.NewEngine(testConfig(), genetic.ObjectiveFunc(objective.Sphere))
	require.NoError(t, err)
	res, err := engine.Run()
	require.NoError(t, err)
	return NewRunRecord(uuid.NewString(), "sphere", engine.Config(), res)
}

func sweepRecord(t *testing.T) SweepRecord {
	t.Helper()
	s := sweep.Sweep{Name: "mutation rate", Steps: 3, Repeats: 2, Axes: []sweep.Axis{
		{Param: genetic.ParamMutationRate, Start: 0.05, Step: 0.05},
	}}
	out, err := sweep.NewRunner("sphere", genetic.ObjectiveFunc(objective.Sphere)).Run(context.Background(), testConfig(), s)
	require.NoError(t, err)
	return FromOutcome(out)
}

func TestStore_RunRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())
	rec := runRecord(t)

	path, err := store.SaveRun(rec)
	require.NoError(t, err)
	assert.Equal(t, store.FilePath(KindRun, rec.ID), path)
	assert.True(t, store.Exists(KindRun, rec.ID))

	loaded, err := store.LoadRun(rec.ID)
	require.NoError(t, err)

	assert.True(t, rec.Created.Equal(loaded.Created))
	loaded.Created = rec.Created
	assert.Equal(t, rec, loaded)
}

func TestStore_RecordReplaysRun(t *testing.T) {
	store := NewStore(t.TempDir())
	rec := runRecord(t)
	_, err := store.SaveRun(rec)
	require.NoError(t, err)

	loaded, err := store.LoadRun(rec.ID)
	require.NoError(t, err)

	engine, err := genetic.NewEngine(loaded.Config, genetic.ObjectiveFunc(objective.Sphere))
	require.NoError(t, err)
	res, err := engine.Run()
	require.NoError(t, err)
	assert.Equal(t, rec.BestFitness, res.BestFitness)
	assert.Equal(t, rec.Series, res.Series)
}

func TestStore_SweepRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())
	rec := sweepRecord(t)

	_, err := store.SaveSweep(rec)
	require.NoError(t, err)

	loaded, err := store.LoadSweep(rec.ID)
	require.NoError(t, err)

	assert.Equal(t, rec.Name, loaded.Name)
	assert.Equal(t, rec.Axes, loaded.Axes)
	assert.Equal(t, rec.Base, loaded.Base)
	assert.Equal(t, rec.Elapsed, loaded.Elapsed)
	assert.Equal(t, rec.Points, loaded.Points)
}

func TestStore_NonFiniteValues(t *testing.T) {
	store := NewStore(t.TempDir())
	rec := RunRecord{
		ID:          "nan",
		Config:      testConfig(),
		BestFitness: math.NaN(),
		Series:      genetic.Series{Best: []float64{math.Inf(1)}, Worst: []float64{math.NaN()}, Average: []float64{1}},
	}

	_, err := store.SaveRun(rec)
	require.NoError(t, err)
	loaded, err := store.LoadRun("nan")
	require.NoError(t, err)

	assert.True(t, math.IsNaN(loaded.BestFitness))
	assert.True(t, math.IsInf(loaded.Series.Best[0], 1))
	assert.True(t, math.IsNaN(loaded.Series.Worst[0]))
}

func TestStore_List(t *testing.T) {
	store := NewStore(t.TempDir())

	ids, err := store.List(KindRun)
	require.NoError(t, err)
	assert.Empty(t, ids)

	for _, id := range []string{"b", "a", "c"} {
		_, err := store.SaveRun(RunRecord{ID: id, Config: testConfig()})
		require.NoError(t, err)
	}
	ids, err = store.List(KindRun)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, ids)
}

func TestStore_Errors(t *testing.T) {
	store := NewStore(t.TempDir())

	_, err := store.LoadRun("missing")
	assert.Error(t, err)
	assert.False(t, store.Exists(KindRun, "missing"))

	_, err = store.SaveRun(RunRecord{ID: "../escape"})
	assert.Error(t, err)
	_, err = store.SaveRun(RunRecord{})
	assert.Error(t, err)
}

func TestFromOutcome(t *testing.T) {
	rec := sweepRecord(t)

	require.Len(t, rec.Points, 3)
	assert.Equal(t, "mutation rate", rec.Name)
	assert.Equal(t, 2, rec.Repeats)
	for _, pt := range rec.Points {
		require.Len(t, pt.Runs, 2)
		assert.NotEmpty(t, pt.Runs[0].ID)
		assert.NotZero(t, pt.Runs[0].Seed)
		assert.Contains(t, pt.Runs[0].Metrics, "generations")
	}
}

func TestFromOutcome_CopiesMetrics(t *testing.T) {
	s := sweep.Sweep{Name: "crossover", Steps: 1, Repeats: 1, Axes: []sweep.Axis{
		{Param: genetic.ParamCrossoverRate, Start: 0.5, Step: 0.1},
	}}
	out, err := sweep.NewRunner("sphere", genetic.ObjectiveFunc(objective.Sphere)).Run(context.Background(), testConfig(), s)
	require.NoError(t, err)

	rec := FromOutcome(out)
	metrics := out.Points[0].Runs[0].Metrics
	want := rec.Points[0].Runs[0].Metrics[tracking.MetricBestFitness]

	metrics[tracking.MetricBestFitness] = -1
	metrics["added"] = 1

	assert.Equal(t, want, rec.Points[0].Runs[0].Metrics[tracking.MetricBestFitness])
	assert.NotContains(t, rec.Points[0].Runs[0].Metrics, "added")
}

func TestTables(t *testing.T) {
	rec := runRecord(t)

	summary := RunSummaryTable(rec).String()
	assert.Contains(t, summary, "sphere")
	assert.Contains(t, summary, "tournament (size 3)")
	assert.Contains(t, summary, "elitism (keep 2)")

	gens := GenerationTable(rec, 5).String()
	lines := strings.Split(strings.TrimSpace(gens), "\n")
	assert.Len(t, lines, 6, "header plus tail")
	assert.Contains(t, lines[0], "GENERATION")
	assert.True(t, strings.HasPrefix(strings.TrimSpace(lines[1]), "10"))

	all := GenerationTable(rec, 0).String()
	assert.Len(t, strings.Split(strings.TrimSpace(all), "\n"), 16)

	sw := SweepTable(sweepRecord(t)).String()
	assert.Contains(t, sw, "MUTATIONRATE")
	assert.Len(t, strings.Split(strings.TrimSpace(sw), "\n"), 4)
}

func TestWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.xlsx")
	run := runRecord(t)
	sw := sweepRecord(t)

	w, err := NewWorkbook()
	require.NoError(t, err)
	require.NoError(t, w.AddRun(run))
	require.NoError(t, w.AddRun(run))
	require.NoError(t, w.AddSweep(sw))

	sheets := w.Sheets()
	require.Len(t, sheets, 4)
	assert.Equal(t, "Summary", sheets[0])
	assert.Equal(t, "Run_"+run.ID[:8], sheets[1])
	assert.Equal(t, "Run_"+run.ID[:8]+"_2", sheets[2])
	assert.Equal(t, "Sweep_mutation_rate", sheets[3])

	require.NoError(t, w.SaveAs(path))
	require.NoError(t, w.Close())

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheets[1])
	require.NoError(t, err)
	assert.Len(t, rows, run.Series.Len()+1)
	assert.Equal(t, []string{"Generation", "Best", "Worst", "Average"}, rows[0][:4])

	summary, err := f.GetRows("Summary")
	require.NoError(t, err)
	assert.Len(t, summary, 4)
	assert.Equal(t, "sweep", summary[3][0])

	sweepRows, err := f.GetRows(sheets[3])
	require.NoError(t, err)
	assert.Len(t, sweepRows, 4)
	assert.Equal(t, "mutationRate", sweepRows[0][1])
}

func TestSanitizeSheetName(t *testing.T) {
	assert.Equal(t, "a_b_c", sanitizeSheetName("a/b:c"))
	assert.Equal(t, "Sheet", sanitizeSheetName(""))
	assert.Len(t, sanitizeSheetName(strings.Repeat("x", 50)), 31)
}
