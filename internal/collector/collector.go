package collector

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"CurrencySentinel/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price     float64
	DailyData []model.PricePoint
	Err       error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ context.Context, _ string, start, end time.Time) ([]model.PricePoint, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.DailyData != nil {
		return m.DailyData, nil
	}
	return generateMockBars(m.Price, start, end), nil
}

// generateMockBars produces one bar per weekday in [start, end] oscillating around basePrice.
func generateMockBars(basePrice float64, start, end time.Time) []model.PricePoint {
	var bars []model.PricePoint
	i := 0
	for d := truncateDay(start); !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		p := basePrice * (1 + float64(i%10-5)*0.002)
		bars = append(bars, model.PricePoint{
			Date:  d,
			Open:  p * 0.999,
			High:  p * 1.004,
			Low:   p * 0.996,
			Close: p,
		})
		i++
	}
	return bars
}

// Collector fetches a symbol's daily series and checks it is usable.
type Collector struct {
	Fetcher Fetcher
	Symbol  string
	Start   time.Time
	End     time.Time
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, symbol string, start, end time.Time) *Collector {
	return &Collector{Fetcher: fetcher, Symbol: symbol, Start: start, End: end}
}

// Collect fetches the daily bars and returns them as an ascending series with unique dates.
func (c *Collector) Collect(ctx context.Context) (model.Series, error) {
	bars, err := c.Fetcher.FetchDailyBars(ctx, c.Symbol, c.Start, c.End)
	if err != nil {
		return model.Series{}, fmt.Errorf("fetch daily bars: %w", err)
	}

	pts := make([]model.PricePoint, len(bars))
	copy(pts, bars)
	sort.SliceStable(pts, func(i, j int) bool { return pts[i].Date.Before(pts[j].Date) })

	series := model.Series{Symbol: c.Symbol, Points: pts}
	if err := series.Validate(); err != nil {
		return model.Series{}, fmt.Errorf("validate %s series: %w", c.Symbol, err)
	}

	log.Info().
		Str("source", c.Fetcher.Name()).
		Str("symbol", c.Symbol).
		Int("rows", series.Len()).
		Msg("collected daily bars")
	return series, nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
