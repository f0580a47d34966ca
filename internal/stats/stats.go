package stats

import (
	"fmt"
	"io"

	"github.com/verte-zerg/typesprint/internal/model"
)

const curveHeight = 8

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// RenderSummary prints aggregate numbers for the results.
func RenderSummary(w io.Writer, results []model.Result) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	var totalWPM, totalAcc float64
	bestWPM := 0.0
	words := 0
	for _, r := range results {
		totalWPM += r.WPM
		totalAcc += r.Accuracy
		words += r.WordCount
		if r.WPM > bestWPM {
			bestWPM = r.WPM
		}
	}
	count := float64(len(results))
	lines := []string{
		"Summary",
		fmt.Sprintf("Sessions: %d", len(results)),
		fmt.Sprintf("Words: %d", words),
		fmt.Sprintf("Avg WPM: %.2f", totalWPM/count),
		fmt.Sprintf("Best WPM: %.2f", bestWPM),
		fmt.Sprintf("Avg Accuracy: %.2f%%", totalAcc/count),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderCurves plots smoothed WPM and accuracy across results. width is the
// total width available; zero uses the terminal width of stdout. forceColor
// colors the curves even when w is not a terminal.
func RenderCurves(w io.Writer, results []model.Result, window, width int, forceColor bool) error {
	if len(results) == 0 {
		return nil
	}
	wpms := make([]float64, len(results))
	accs := make([]float64, len(results))
	for i, r := range results {
		wpms[i] = r.WPM
		accs[i] = r.Accuracy
	}
	plotWidth := 0
	if width > 0 {
		plotWidth = PlotWidthFor(width)
	}
	title := fmt.Sprintf("Learning Curves (window %d)", window)
	series := []Series{
		{Name: "WPM", Values: MovingAverage(wpms, window)},
		{Name: "Accuracy", Values: MovingAverage(accs, window)},
	}
	if forceColor {
		return PlotSeriesWithColor(w, title, series, plotWidth, curveHeight)
	}
	return PlotSeries(w, title, series, plotWidth, curveHeight)
}

// RenderResultsTable prints one row per result, oldest first.
func RenderResultsTable(w io.Writer, results []model.Result) error {
	if len(results) == 0 {
		return nil
	}
	for _, line := range formatTable(resultColumns, resultRows(resultColumns, results)) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
