package collector

import (
	"context"
	"time"

	"CurrencySentinel/internal/model"
)

// Fetcher defines the interface for fetching daily price data.
type Fetcher interface {
	// FetchDailyBars returns the sessions of symbol dated within [start, end].
	FetchDailyBars(ctx context.Context, symbol string, start, end time.Time) ([]model.PricePoint, error)
	Name() string
}
