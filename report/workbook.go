package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet  = "Summary"
	maxSheetName  = 31
	chartAnchor   = "F2"
	defaultSheet1 = "Sheet1"
)

// Workbook collects run and sweep records into one spreadsheet
// Each run gets a sheet with its generation series and a line chart,
// each sweep a sheet with one row per point
type Workbook struct {
	file  *excelize.File
	names map[string]bool
	row   int
}

// NewWorkbook creates an empty workbook with a summary sheet
func NewWorkbook() (*Workbook, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(defaultSheet1, summarySheet); err != nil {
		f.Close()
		return nil, err
	}
	w := &Workbook{file: f, names: map[string]bool{summarySheet: true}, row: 1}
	if err := w.summaryRow("KIND", "ID", "OBJECTIVE", "SHEET", "BEST FITNESS"); err != nil {
		f.Close()
		return nil, err
	}
	return w, nil
}

// AddRun writes a run sheet
func (w *Workbook) AddRun(rec RunRecord) error {
	sheet, err := w.newSheet("Run_" + shortID(rec.ID))
	if err != nil {
		return err
	}

	if err := w.file.SetSheetRow(sheet, "A1", &[]any{"Generation", "Best", "Worst", "Average"}); err != nil {
		return err
	}
	s := rec.Series
	for g := 0; g < s.Len(); g++ {
		cell, _ := excelize.CoordinatesToCellName(1, g+2)
		if err := w.file.SetSheetRow(sheet, cell, &[]any{g, s.Best[g], s.Worst[g], s.Average[g]}); err != nil {
			return err
		}
	}

	if s.Len() > 0 {
		if err := w.file.AddChart(sheet, chartAnchor, seriesChart(sheet, rec.Objective, s.Len())); err != nil {
			return fmt.Errorf("report: chart for run %s: %w", rec.ID, err)
		}
	}

	return w.summaryRow("run", rec.ID, rec.Objective, sheet, rec.BestFitness)
}

// AddSweep writes a sweep sheet
func (w *Workbook) AddSweep(rec SweepRecord) error {
	sheet, err := w.newSheet("Sweep_" + rec.Name)
	if err != nil {
		return err
	}

	header := []any{"Point"}
	for _, a := range rec.Axes {
		header = append(header, a.Param.String())
	}
	header = append(header, "Mean", "StdDev", "Best fitness", "Degenerate", "Best individual")
	if err := w.file.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, pt := range rec.Points {
		row := []any{pt.Index}
		for _, v := range pt.Values {
			row = append(row, v)
		}
		row = append(row, pt.Mean, pt.StdDev, pt.BestFitness, pt.DegenerateSelections, formatGenes(pt.Best))
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := w.file.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	best := 0.0
	if len(rec.Points) > 0 {
		best = rec.Points[0].BestFitness
		for _, pt := range rec.Points[1:] {
			if pt.BestFitness < best {
				best = pt.BestFitness
			}
		}
	}
	return w.summaryRow("sweep", rec.ID, rec.Objective, sheet, best)
}

// Sheets lists sheet names in workbook order
func (w *Workbook) Sheets() []string {
	return w.file.GetSheetList()
}

// SaveAs writes the workbook to path
func (w *Workbook) SaveAs(path string) error {
	return w.file.SaveAs(path)
}

// Close releases the workbook
func (w *Workbook) Close() error {
	return w.file.Close()
}

func (w *Workbook) summaryRow(values ...any) error {
	cell, _ := excelize.CoordinatesToCellName(1, w.row)
	w.row++
	return w.file.SetSheetRow(summarySheet, cell, &values)
}

// newSheet creates a sheet under a sanitized unique name
func (w *Workbook) newSheet(want string) (string, error) {
	base := sanitizeSheetName(want)
	name := base
	for n := 2; w.names[name]; n++ {
		suffix := fmt.Sprintf("_%d", n)
		name = truncate(base, maxSheetName-len(suffix)) + suffix
	}
	if _, err := w.file.NewSheet(name); err != nil {
		return "", err
	}
	w.names[name] = true
	return name, nil
}

func seriesChart(sheet, title string, n int) *excelize.Chart {
	last := n + 1
	col := func(c string) string { return fmt.Sprintf("%s!$%s$2:$%s$%d", sheet, c, c, last) }

	series := make([]excelize.ChartSeries, 0, 3)
	for _, c := range []string{"B", "C", "D"} {
		series = append(series, excelize.ChartSeries{
			Name:       fmt.Sprintf("%s!$%s$1", sheet, c),
			Categories: col("A"),
			Values:     col(c),
		})
	}
	return &excelize.Chart{
		Type:   excelize.Line,
		Series: series,
		Title:  []excelize.RichTextRun{{Text: title}},
		Legend: excelize.ChartLegend{Position: "bottom"},
	}
}

// sanitizeSheetName keeps letters, digits and underscores so names need no quoting in formulas
func sanitizeSheetName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "Sheet"
	}
	return truncate(b.String(), maxSheetName)
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func shortID(id string) string {
	return truncate(id, 8)
}
