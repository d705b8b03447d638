// Package analysis runs one batch: collect a series, compute indicators for every window,
// restrict to the analysis range and derive decisions.
package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"CurrencySentinel/internal/calculator"
	"CurrencySentinel/internal/collector"
	"CurrencySentinel/internal/model"
	"CurrencySentinel/internal/strategy"
)

// WindowResult pairs the indicators and decisions computed for one window.
type WindowResult struct {
	Window     int
	Indicators *model.IndicatorSet
	Decisions  *model.DecisionSet
}

// Report is the output of one analysis run. Series carries every indicator column and is
// restricted to the analysis range; each result is aligned to it.
type Report struct {
	RunID     uuid.UUID
	Symbol    string
	Source    string
	Series    model.Series
	Results   []WindowResult
	CreatedAt time.Time
}

// Result returns the result computed for window.
func (r *Report) Result(window int) (WindowResult, bool) {
	for _, res := range r.Results {
		if res.Window == window {
			return res, true
		}
	}
	return WindowResult{}, false
}

// Analyzer holds the parameters of a batch run.
type Analyzer struct {
	Collector *collector.Collector
	Windows   []int
	// From is the first date kept for decisions. Indicators are always computed over the
	// full collected history so early windows are warmed up. Zero keeps everything.
	From time.Time
	Now  func() time.Time
}

// NewAnalyzer creates an Analyzer.
func NewAnalyzer(col *collector.Collector, windows []int, from time.Time) *Analyzer {
	return &Analyzer{Collector: col, Windows: windows, From: from, Now: time.Now}
}

// Run collects the series and analyzes it.
func (a *Analyzer) Run(ctx context.Context) (*Report, error) {
	series, err := a.Collector.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect: %w", err)
	}
	rep, err := Analyze(ctx, series, a.Windows, a.From, a.Collector.End)
	if err != nil {
		return nil, err
	}
	rep.Source = a.Collector.Fetcher.Name()
	if a.Now != nil {
		rep.CreatedAt = a.Now()
	}
	return rep, nil
}

// Analyze computes every window over series, keeps rows dated within [from, to] and derives
// decisions on that range. Windows are computed concurrently; results keep the order of windows.
func Analyze(ctx context.Context, series model.Series, windows []int, from, to time.Time) (*Report, error) {
	if len(windows) == 0 {
		return nil, &calculator.ConfigurationError{Window: 0}
	}
	sets := make([]*model.IndicatorSet, len(windows))
	g, gctx := errgroup.WithContext(ctx)
	for i, w := range windows {
		i, w := i, w
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			set, err := calculator.ComputeIndicators(series, w)
			if err != nil {
				return fmt.Errorf("window %d: %w", w, err)
			}
			sets[i] = set
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	enriched := series
	for _, set := range sets {
		enriched = enriched.WithIndicators(set)
	}
	view, offset := enriched.Between(from, to)
	if offset < 0 {
		return nil, fmt.Errorf("no rows between %s and %s: %w",
			from.Format("2006-01-02"), to.Format("2006-01-02"), &calculator.InsufficientDataError{Rows: 0})
	}

	rep := &Report{
		RunID:     uuid.New(),
		Symbol:    series.Symbol,
		Series:    view,
		Results:   make([]WindowResult, len(windows)),
		CreatedAt: time.Now(),
	}
	for i, set := range sets {
		sub := set.Slice(offset, offset+view.Len())
		ds, err := strategy.Evaluate(view, sub)
		if err != nil {
			return nil, fmt.Errorf("window %d: %w", set.Window, err)
		}
		rep.Results[i] = WindowResult{Window: set.Window, Indicators: sub, Decisions: ds}

		sma, bb, cci, combined := ds.Latest()
		log.Info().
			Str("symbol", series.Symbol).
			Int("window", set.Window).
			Int("rows", view.Len()).
			Str("sma", string(sma)).
			Str("bb", string(bb)).
			Str("cci", string(cci)).
			Str("combined", string(combined)).
			Msg("latest decisions")
	}
	return rep, nil
}
