package chart

import (
	"math"
	"strconv"

	"github.com/gdamore/tcell/v2"

	"github.com/AnnieBonav/RecursiveBestFirstSearch/genetic"
)

// Layout
const (
	labelWidth = 10
	minWidth   = labelWidth + 10
	minHeight  = 6
)

// Series markers, drawn worst first so best ends on top
const (
	markBest    = '*'
	markAverage = '+'
	markWorst   = 'x'
)

var (
	styleText    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleAxis    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleBest    = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleAverage = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleWorst   = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

// Chart renders generation series as a terminal line plot
type Chart struct {
	title  string
	series genetic.Series
	log    bool
}

// New creates a chart; log selects a log10 value axis
func New(title string, series genetic.Series, log bool) *Chart {
	return &Chart{title: title, series: series, log: log}
}

// Log reports whether the value axis is log10 scaled
func (c *Chart) Log() bool {
	return c.log
}

// ToggleLog switches between linear and log10 value axes
func (c *Chart) ToggleLog() {
	c.log = !c.log
}

// Draw renders the chart over the whole screen; the caller calls Show
func (c *Chart) Draw(screen tcell.Screen) {
	screen.Clear()
	w, h := screen.Size()
	if w < minWidth || h < minHeight {
		drawText(screen, 0, 0, "too small", styleText)
		return
	}

	drawText(screen, (w-len(c.title))/2, 0, c.title, styleText)
	c.drawLegend(screen, h-1)

	// Rows: title, plot, x axis, generation labels, legend
	top, bottom := 1, h-4
	left, right := labelWidth+1, w-1

	lo, hi, ok := c.valueRange()
	if !ok {
		drawText(screen, left, (top+bottom)/2, "no data", styleText)
		return
	}

	// Axes
	for y := top; y <= bottom; y++ {
		screen.SetContent(left-1, y, '│', nil, styleAxis)
	}
	for x := left; x <= right; x++ {
		screen.SetContent(x, bottom+1, '─', nil, styleAxis)
	}
	screen.SetContent(left-1, bottom+1, '└', nil, styleAxis)

	drawText(screen, 0, top, c.label(hi), styleAxis)
	drawText(screen, 0, bottom, c.label(lo), styleAxis)

	n := c.series.Len()
	drawText(screen, left, bottom+2, "0", styleAxis)
	last := strconv.Itoa(n - 1)
	drawText(screen, right-len(last)+1, bottom+2, last, styleAxis)

	plot := func(values []float64, mark rune, style tcell.Style) {
		width := right - left + 1
		for col := 0; col < width; col++ {
			g := 0
			if width > 1 && n > 1 {
				g = int(math.Round(float64(col) * float64(n-1) / float64(width-1)))
			}
			v, ok := c.transform(values[g])
			if !ok {
				continue
			}
			var row int
			if hi > lo {
				row = top + int(math.Round((hi-v)/(hi-lo)*float64(bottom-top)))
			} else {
				row = (top + bottom) / 2
			}
			screen.SetContent(left+col, row, mark, nil, style)
		}
	}

	plot(c.series.Worst, markWorst, styleWorst)
	plot(c.series.Average, markAverage, styleAverage)
	plot(c.series.Best, markBest, styleBest)
}

func (c *Chart) drawLegend(screen tcell.Screen, y int) {
	x := 0
	item := func(mark rune, name string, style tcell.Style) {
		screen.SetContent(x, y, mark, nil, style)
		x = drawText(screen, x+2, y, name, styleText) + 2
	}
	item(markBest, "best", styleBest)
	item(markAverage, "average", styleAverage)
	item(markWorst, "worst", styleWorst)

	scale := "linear"
	if c.log {
		scale = "log10"
	}
	drawText(screen, x, y, "["+scale+"]  l: scale  q: quit", styleAxis)
}

// valueRange returns bounds over every plottable value
func (c *Chart) valueRange() (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, values := range [][]float64{c.series.Best, c.series.Worst, c.series.Average} {
		for _, raw := range values {
			v, finite := c.transform(raw)
			if !finite {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
			ok = true
		}
	}
	return lo, hi, ok
}

// transform maps a raw value onto the value axis; false when it cannot be plotted
func (c *Chart) transform(v float64) (float64, bool) {
	if c.log {
		if v <= 0 {
			return 0, false
		}
		v = math.Log10(v)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// label formats an axis value back in raw units
func (c *Chart) label(v float64) string {
	if c.log {
		v = math.Pow(10, v)
	}
	s := strconv.FormatFloat(v, 'g', 4, 64)
	if len(s) > labelWidth-1 {
		s = s[:labelWidth-1]
	}
	return s
}

// drawText writes s from (x, y) and returns the column after it
func drawText(screen tcell.Screen, x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}
