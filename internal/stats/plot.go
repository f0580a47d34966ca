package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

// Series is one named curve of a plot, oldest value first.
type Series struct {
	Name   string
	Values []float64
}

// dashPattern draws a dot on x when x%period < on.
type dashPattern struct {
	name   string
	period int
	on     int
}

func (p dashPattern) draws(x int) bool {
	if p.period <= 1 {
		return true
	}
	if x < 0 {
		x = -x
	}
	return x%p.period < p.on
}

const (
	defaultPlotHeight   = 10
	minPlotWidth        = 10
	axisSeparator       = " │ "
	scaleNote           = "Each curve uses its own range:"
	colorReset          = "\x1b[0m"
	terminalWidthBackup = 80
)

var (
	axisLabels = [3]string{"max", "mid", "min"}

	dashPatterns = []dashPattern{
		{name: "solid", period: 1, on: 1},
		{name: "dashed", period: 6, on: 3},
		{name: "dotted", period: 4, on: 1},
	}

	seriesColors = []string{"\x1b[33m", "\x1b[32m", "\x1b[36m"}
)

// PlotSeries renders series as a braille line plot. Color is used only when w
// is a terminal and NO_COLOR is unset. width and height are in terminal cells;
// zero picks the terminal width and the default height.
func PlotSeries(w io.Writer, title string, series []Series, width, height int) error {
	return plotSeries(w, title, series, width, height, shouldUseColor(w, false))
}

// PlotSeriesWithColor is PlotSeries with color forced on unless NO_COLOR is set.
func PlotSeriesWithColor(w io.Writer, title string, series []Series, width, height int) error {
	return plotSeries(w, title, series, width, height, shouldUseColor(w, true))
}

// PlotWidthFor returns the plot area width that fits totalWidth once the axis
// column is subtracted.
func PlotWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		return minPlotWidth
	}
	plotWidth := totalWidth - axisWidth()
	if plotWidth < minPlotWidth {
		return minPlotWidth
	}
	return plotWidth
}

func axisWidth() int {
	return utf8.RuneCountInString(axisLabels[0]) + utf8.RuneCountInString(axisSeparator)
}

func plotSeries(w io.Writer, title string, series []Series, width, height int, useColor bool) error {
	curves := make([]Series, 0, len(series))
	for _, s := range series {
		if len(s.Values) > 0 {
			curves = append(curves, s)
		}
	}
	if len(curves) == 0 {
		return nil
	}
	if height <= 0 {
		height = defaultPlotHeight
	}
	if width <= 0 {
		width = PlotWidthFor(terminalWidth())
	}
	if width < minPlotWidth {
		width = minPlotWidth
	}

	canvases := make([]*canvas, len(curves))
	ranges := make([][2]float64, len(curves))
	for i, s := range curves {
		lo, hi := valueRange(s.Values)
		values := resample(s.Values, width)
		ranges[i] = [2]float64{lo, hi}
		canvases[i] = newCanvas(width, height)
		canvases[i].polyline(values, lo, hi, dashPatterns[i%len(dashPatterns)])
	}

	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, scaleNote); err != nil {
		return err
	}
	for i, s := range curves {
		if _, err := fmt.Fprintf(w, "  %s: min=%.2f max=%.2f\n", s.Name, ranges[i][0], ranges[i][1]); err != nil {
			return err
		}
	}
	for y := 0; y < height; y++ {
		if _, err := fmt.Fprintln(w, renderRow(canvases, y, width, height, useColor)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, legend(curves, useColor)); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func renderRow(canvases []*canvas, y, width, height int, useColor bool) string {
	label := ""
	switch {
	case y == 0:
		label = axisLabels[0]
	case y == height-1:
		label = axisLabels[2]
	case height > 2 && y == height/2:
		label = axisLabels[1]
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%*s%s", utf8.RuneCountInString(axisLabels[0]), label, axisSeparator)
	for x := 0; x < width; x++ {
		var mask uint8
		owner := -1
		for i, c := range canvases {
			if m := c.cells[y][x]; m != 0 {
				mask |= m
				if owner < 0 {
					owner = i
				}
			}
		}
		ch := rune(0x2800 + int(mask))
		if useColor && owner >= 0 {
			b.WriteString(seriesColors[owner%len(seriesColors)])
			b.WriteRune(ch)
			b.WriteString(colorReset)
			continue
		}
		b.WriteRune(ch)
	}
	return b.String()
}

func legend(curves []Series, useColor bool) string {
	parts := make([]string, 0, len(curves))
	for i, s := range curves {
		label := fmt.Sprintf("%s (%s)", s.Name, dashPatterns[i%len(dashPatterns)].name)
		if useColor {
			label = seriesColors[i%len(seriesColors)] + label + colorReset
		}
		parts = append(parts, label)
	}
	return "Legend: " + strings.Join(parts, "  ")
}

// canvas is a grid of braille cells, each holding 2x4 dots.
type canvas struct {
	width  int
	height int
	cells  [][]uint8
}

func newCanvas(width, height int) *canvas {
	cells := make([][]uint8, height)
	for y := range cells {
		cells[y] = make([]uint8, width)
	}
	return &canvas{width: width, height: height, cells: cells}
}

// brailleBits maps a dot position inside a cell, indexed [y][x], to its bit.
var brailleBits = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

func (c *canvas) dot(x, y int) {
	if x < 0 || y < 0 || x >= c.width*2 || y >= c.height*4 {
		return
	}
	c.cells[y/4][x/2] |= brailleBits[y%4][x%2]
}

// polyline plots one value per cell column, scaled so lo sits on the bottom
// dot row and hi on the top one.
func (c *canvas) polyline(values []float64, lo, hi float64, pattern dashPattern) {
	rows := c.height * 4
	prevX, prevY := -1, -1
	for i, v := range values {
		x := i * 2
		y := int(math.Round((hi - v) / (hi - lo) * float64(rows-1)))
		y = max(0, min(rows-1, y))
		if prevX < 0 {
			if pattern.draws(x) {
				c.dot(x, y)
			}
		} else {
			c.line(prevX, prevY, x, y, pattern)
		}
		prevX, prevY = x, y
	}
}

// line draws a Bresenham segment between two dots.
func (c *canvas) line(x0, y0, x1, y1 int, pattern dashPattern) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		if pattern.draws(x0) {
			c.dot(x0, y0)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// resample stretches or squeezes values to exactly n points. Squeezing
// averages buckets; stretching interpolates linearly.
func resample(values []float64, n int) []float64 {
	out := make([]float64, n)
	switch {
	case len(values) == n:
		copy(out, values)
	case len(values) > n:
		for i := range out {
			start := i * len(values) / n
			end := max((i+1)*len(values)/n, start+1)
			var sum float64
			for _, v := range values[start:end] {
				sum += v
			}
			out[i] = sum / float64(end-start)
		}
	case len(values) == 1 || n == 1:
		for i := range out {
			out[i] = values[0]
		}
	default:
		step := float64(len(values)-1) / float64(n-1)
		for i := range out {
			pos := float64(i) * step
			idx := int(pos)
			if idx >= len(values)-1 {
				out[i] = values[len(values)-1]
				continue
			}
			frac := pos - float64(idx)
			out[i] = values[idx] + (values[idx+1]-values[idx])*frac
		}
	}
	return out
}

// valueRange returns the min and max of values, widened by one on each side
// when the curve is flat.
func valueRange(values []float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi-lo < 1e-9 {
		lo--
		hi++
	}
	return lo, hi
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}
