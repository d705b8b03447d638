package collector

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"CurrencySentinel/internal/model"
)

var dateLayouts = []string{"2006-01-02", "2006-01-02 15:04:05", time.RFC3339}

// CSVFetcher reads daily bars from a local CSV export with a date,open,high,low,close header.
// Extra columns such as "Adj Close" or "Volume" are ignored.
type CSVFetcher struct {
	Path string
}

// NewCSVFetcher creates a fetcher over the file at path.
func NewCSVFetcher(path string) *CSVFetcher {
	return &CSVFetcher{Path: path}
}

func (f *CSVFetcher) Name() string { return "csv" }

func (f *CSVFetcher) FetchDailyBars(_ context.Context, _ string, start, end time.Time) ([]model.PricePoint, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()
	return ReadCSV(file, start, end)
}

// ReadCSV parses bars from r, keeping rows dated within [start, end]. Zero bounds are open.
func ReadCSV(r io.Reader, start, end time.Time) ([]model.PricePoint, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	idx := make(map[string]int, 5)
	for _, name := range []string{"date", "open", "high", "low", "close"} {
		i, ok := cols[name]
		if !ok {
			return nil, fmt.Errorf("csv header missing %q column", name)
		}
		idx[name] = i
	}

	var bars []model.PricePoint
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}
		if isBlank(rec[idx["close"]]) {
			continue
		}
		date, err := parseDate(rec[idx["date"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if (!start.IsZero() && date.Before(truncateDay(start))) || (!end.IsZero() && date.After(end)) {
			continue
		}
		var vals [4]float64
		for k, name := range []string{"open", "high", "low", "close"} {
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[idx[name]]), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: parse %s: %w", line, name, err)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("line %d: %s is not a finite number: %q", line, name, rec[idx[name]])
			}
			vals[k] = v
		}
		bars = append(bars, model.PricePoint{Date: date, Open: vals[0], High: vals[1], Low: vals[2], Close: vals[3]})
	}
	return bars, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return truncateDay(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

func isBlank(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, "null") || strings.EqualFold(s, "nan")
}
