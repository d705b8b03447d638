package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"CurrencySentinel/internal/analysis"
	"CurrencySentinel/internal/collector"
	"CurrencySentinel/internal/config"
	"CurrencySentinel/internal/recorder"
)

func newFetcher(c *config.Config) (collector.Fetcher, error) {
	switch c.DataSource.Provider {
	case "yahoo":
		return collector.NewYahooFetcher(c.Proxy), nil
	case "rest":
		return collector.NewRESTFetcher(c.DataSource.BaseURL, c.DataSource.APIKey, c.Proxy), nil
	case "csv":
		return collector.NewCSVFetcher(c.DataSource.CSVPath), nil
	default:
		return nil, fmt.Errorf("unknown data provider %q", c.DataSource.Provider)
	}
}

func newAnalyzer(c *config.Config) (*analysis.Analyzer, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	start, end, target, err := c.DateRange()
	if err != nil {
		return nil, err
	}
	fetcher, err := newFetcher(c)
	if err != nil {
		return nil, err
	}
	log.Info().Str("source", fetcher.Name()).Str("symbol", c.DataSource.Symbol).Msg("data source ready")

	col := collector.NewCollector(fetcher, c.DataSource.Symbol, start, end)
	return analysis.NewAnalyzer(col, c.Analysis.Windows, target), nil
}

// newRecorder falls back to a no-op recorder when SQLite cannot be opened.
func newRecorder(c *config.Config) recorder.Recorder {
	if c.Database.SQLitePath == "" {
		return recorder.NewNoopRecorder()
	}
	sr, err := recorder.NewSQLiteRecorder(c.Database.SQLitePath)
	if err != nil {
		log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
		return recorder.NewNoopRecorder()
	}
	return sr
}
