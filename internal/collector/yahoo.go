package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"CurrencySentinel/internal/model"
)

const yahooBaseURL = "https://query1.finance.yahoo.com"

// YahooFetcher implements Fetcher using the Yahoo Finance chart API.
type YahooFetcher struct {
	BaseURL   string
	Client    *http.Client
	SymbolMap map[string]string // maps internal symbol to Yahoo ticker
}

// NewYahooFetcher creates a new Yahoo Finance fetcher.
func NewYahooFetcher(proxyURL string) *YahooFetcher {
	return &YahooFetcher{
		BaseURL: yahooBaseURL,
		Client:  newHTTPClient(proxyURL),
		SymbolMap: map[string]string{
			"EURINR": "EURINR=X",
			"USDINR": "USDINR=X",
			"EURUSD": "EURUSD=X",
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) yahooSymbol(symbol string) string {
	if mapped, ok := f.SymbolMap[strings.ToUpper(symbol)]; ok {
		return mapped
	}
	return symbol
}

// yahooChart is the response structure from Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				GMTOffset int64 `json:"gmtoffset"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open  []interface{} `json:"open"`
					High  []interface{} `json:"high"`
					Low   []interface{} `json:"low"`
					Close []interface{} `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

func at(vals []interface{}, i int) (float64, bool) {
	if i >= len(vals) {
		return 0, false
	}
	return toFloat(vals[i])
}

func orClose(vals []interface{}, i int, c float64) float64 {
	if v, ok := at(vals, i); ok {
		return v
	}
	return c
}

// FetchDailyBars requests daily bars between start and end inclusive.
func (f *YahooFetcher) FetchDailyBars(ctx context.Context, symbol string, start, end time.Time) ([]model.PricePoint, error) {
	q := url.Values{}
	q.Set("interval", "1d")
	q.Set("period1", fmt.Sprintf("%d", start.Unix()))
	q.Set("period2", fmt.Sprintf("%d", end.AddDate(0, 0, 1).Unix()))
	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", f.BaseURL, url.PathEscape(f.yahooSymbol(symbol)), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("yahoo: no data returned for %s", symbol)
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo: no quote block for %s", symbol)
	}
	quote := result.Indicators.Quote[0]
	bars := make([]model.PricePoint, 0, len(result.Timestamp))
	seen := make(map[time.Time]int, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		c, ok := at(quote.Close, i)
		if !ok {
			continue // null bar (holiday or pending session)
		}
		// A missing open/high/low falls back to the close.
		o := orClose(quote.Open, i, c)
		h := orClose(quote.High, i, c)
		l := orClose(quote.Low, i, c)

		// Session date in exchange-local time.
		date := truncateDay(time.Unix(ts+result.Meta.GMTOffset, 0).UTC())
		if date.Before(truncateDay(start)) || date.After(end) {
			continue
		}
		bar := model.PricePoint{Date: date, Open: o, High: h, Low: l, Close: c}
		// Yahoo occasionally repeats the live session; keep the latest quote.
		if idx, dup := seen[date]; dup {
			bars[idx] = bar
			continue
		}
		seen[date] = len(bars)
		bars = append(bars, bar)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}
