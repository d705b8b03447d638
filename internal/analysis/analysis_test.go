package analysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CurrencySentinel/internal/calculator"
	"CurrencySentinel/internal/collector"
	"CurrencySentinel/internal/model"
	"CurrencySentinel/internal/strategy"
)

func day(d int) time.Time {
	return time.Date(2023, 12, d, 0, 0, 0, 0, time.UTC)
}

func fixture() []model.PricePoint {
	closes := []float64{89.10, 89.42, 89.25, 89.80, 90.12, 90.05, 89.66, 89.90, 90.31, 90.48}
	pts := make([]model.PricePoint, len(closes))
	for i, c := range closes {
		pts[i] = model.PricePoint{Date: day(i + 1), Open: c - 0.1, High: c + 0.2, Low: c - 0.3, Close: c}
	}
	return pts
}

func newAnalyzer(windows []int, from time.Time) *Analyzer {
	col := collector.NewCollector(&collector.MockFetcher{DailyData: fixture()}, "EURINR=X", day(1), day(15))
	a := NewAnalyzer(col, windows, from)
	a.Now = func() time.Time { return day(15) }
	return a
}

func TestRun_FiltersAfterComputing(t *testing.T) {
	rep, err := newAnalyzer([]int{1, 5}, day(7)).Run(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, rep.RunID)
	assert.Equal(t, "mock", rep.Source)
	assert.Equal(t, day(15), rep.CreatedAt)
	require.Equal(t, 4, rep.Series.Len())
	assert.Equal(t, day(7), rep.Series.Points[0].Date)

	require.Len(t, rep.Results, 2)
	assert.Equal(t, 1, rep.Results[0].Window)
	assert.Equal(t, 5, rep.Results[1].Window)

	// The 5-day SMA on the first kept row still averages the four rows before it.
	full, err := calculator.ComputeIndicators(model.Series{Points: fixture()}, 5)
	require.NoError(t, err)
	res, ok := rep.Result(5)
	require.True(t, ok)
	assert.InDelta(t, full.SMA[6], res.Indicators.SMA[0], 1e-12)
	assert.InDelta(t, full.CCI[9], res.Indicators.CCI[3], 1e-12)

	for name, col := range rep.Series.Columns {
		assert.Len(t, col, rep.Series.Len(), name)
	}
	assert.InDelta(t, full.SMA[6], rep.Series.Columns["sma_5"][0], 1e-12)
}

func TestRun_DecisionsUseFilteredTail(t *testing.T) {
	rep, err := newAnalyzer([]int{5}, day(7)).Run(context.Background())
	require.NoError(t, err)

	res := rep.Results[0]
	require.Equal(t, rep.Series.Len(), res.Decisions.Len())
	last := rep.Series.Len() - 1
	price := rep.Series.Points[last].Close
	assert.Equal(t, strategy.SMADecision(price, res.Indicators), res.Decisions.SMA[last])
	assert.Equal(t, strategy.CCIDecision(price, res.Indicators), res.Decisions.CCI[last])
}

func TestRun_NoFilterKeepsAll(t *testing.T) {
	rep, err := newAnalyzer([]int{3}, time.Time{}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, rep.Series.Len())
}

func TestRun_InvalidWindow(t *testing.T) {
	_, err := newAnalyzer([]int{5, 0}, time.Time{}).Run(context.Background())
	var cfgErr *calculator.ConfigurationError
	assert.True(t, errors.As(err, &cfgErr), "got %v", err)
}

func TestRun_EmptyRange(t *testing.T) {
	_, err := newAnalyzer([]int{5}, day(14)).Run(context.Background())
	assert.ErrorIs(t, err, calculator.ErrInsufficientData)
}

func TestRun_EmptySeries(t *testing.T) {
	col := collector.NewCollector(&collector.MockFetcher{DailyData: []model.PricePoint{}}, "X", day(1), day(2))
	_, err := NewAnalyzer(col, []int{5}, time.Time{}).Run(context.Background())
	var dataErr *calculator.InsufficientDataError
	assert.True(t, errors.As(err, &dataErr), "got %v", err)
}

func TestAnalyze_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Analyze(ctx, model.Series{Points: fixture()}, []int{1, 5}, time.Time{}, time.Time{})
	assert.ErrorIs(t, err, context.Canceled)
}
