package stats

import (
	"context"
	"io"

	"github.com/verte-zerg/typesprint/internal/model"
	"github.com/verte-zerg/typesprint/internal/store"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Results     []model.Result
	CurveWindow int
	// Color forces colored curves when output is not a terminal.
	Color bool
}

// BuildReport loads results matching cfg.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	results, err := st.ListResults(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	window := cfg.CurveWindow
	if window <= 0 || window > len(results) {
		window = len(results)
	}
	return Report{Results: results, CurveWindow: window, Color: cfg.Color}, nil
}

// Render writes the summary, results table and curves. width zero uses the
// terminal width.
func (r Report) Render(w io.Writer, width int) error {
	if err := RenderSummary(w, r.Results); err != nil {
		return err
	}
	if err := RenderResultsTable(w, r.Results); err != nil {
		return err
	}
	return RenderCurves(w, r.Results, r.CurveWindow, width, r.Color)
}
