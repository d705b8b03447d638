package collector

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CurrencySentinel/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCollect_SortsAscending(t *testing.T) {
	f := &MockFetcher{DailyData: []model.PricePoint{
		{Date: day(2023, 12, 8), Close: 90.1},
		{Date: day(2023, 12, 6), Close: 89.7},
		{Date: day(2023, 12, 7), Close: 89.9},
	}}
	c := NewCollector(f, "EURINR=X", day(2023, 12, 1), day(2023, 12, 15))

	s, err := c.Collect(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, s.Len())
	assert.Equal(t, "EURINR=X", s.Symbol)
	assert.Equal(t, []float64{89.7, 89.9, 90.1}, s.Closes())
	// input slice is left in its original order
	assert.Equal(t, 90.1, f.DailyData[0].Close)
}

func TestCollect_RejectsDuplicateDates(t *testing.T) {
	f := &MockFetcher{DailyData: []model.PricePoint{
		{Date: day(2023, 12, 6), Close: 89.7},
		{Date: day(2023, 12, 6), Close: 89.8},
	}}
	_, err := NewCollector(f, "EURINR=X", day(2023, 12, 1), day(2023, 12, 15)).Collect(context.Background())
	assert.ErrorIs(t, err, model.ErrDuplicateDate)
}

func TestCollect_FetchError(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewCollector(&MockFetcher{Err: boom}, "X", time.Time{}, time.Time{}).Collect(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestMockFetcher_Weekdays(t *testing.T) {
	bars, err := (&MockFetcher{Price: 90}).FetchDailyBars(context.Background(), "X", day(2023, 12, 4), day(2023, 12, 10))
	require.NoError(t, err)
	assert.Len(t, bars, 5)
	for _, b := range bars {
		assert.NotEqual(t, time.Saturday, b.Date.Weekday())
		assert.NotEqual(t, time.Sunday, b.Date.Weekday())
	}
}

const yahooBody = `{"chart":{"result":[{"meta":{"gmtoffset":0},
"timestamp":[1701648000,1701734400,1701820800,1701907200],
"indicators":{"quote":[{
"open":[90.1,90.2,null,90.4],
"high":[90.5,90.6,null,90.8],
"low":[89.9,90.0,null,90.1],
"close":[90.3,90.4,null,90.6]}]}}],"error":null}}`

func TestYahooFetcher_ParsesChart(t *testing.T) {
	var gotPath, gotInterval string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotInterval = r.URL.Query().Get("interval")
		_, _ = w.Write([]byte(yahooBody))
	}))
	defer srv.Close()

	f := NewYahooFetcher("")
	f.BaseURL = srv.URL
	bars, err := f.FetchDailyBars(context.Background(), "EURINR", day(2023, 12, 1), day(2023, 12, 15))
	require.NoError(t, err)

	assert.Equal(t, "/v8/finance/chart/EURINR=X", gotPath)
	assert.Equal(t, "1d", gotInterval)
	require.Len(t, bars, 3, "null bar should be skipped")
	assert.Equal(t, day(2023, 12, 4), bars[0].Date)
	assert.Equal(t, day(2023, 12, 7), bars[2].Date)
	assert.Equal(t, 90.6, bars[2].Close)
	assert.Equal(t, 90.8, bars[2].High)
}

func TestYahooFetcher_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`))
	}))
	defer srv.Close()

	f := NewYahooFetcher("")
	f.BaseURL = srv.URL
	_, err := f.FetchDailyBars(context.Background(), "NOPE", day(2023, 1, 1), day(2023, 2, 1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delisted")
}

func TestRESTFetcher_SendsKeyAndRange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "2023-12-01", r.URL.Query().Get("from"))
		assert.Equal(t, "2023-12-15", r.URL.Query().Get("to"))
		_, _ = w.Write([]byte(`[{"timestamp":1701734400,"open":1,"high":2,"low":0.5,"close":1.5},
			{"timestamp":1701648000,"open":1,"high":2,"low":0.5,"close":1.2}]`))
	}))
	defer srv.Close()

	f := NewRESTFetcher(srv.URL, "secret", "")
	bars, err := f.FetchDailyBars(context.Background(), "EURINR", day(2023, 12, 1), day(2023, 12, 15))
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.Equal(t, 1.2, bars[0].Close)
	assert.Equal(t, day(2023, 12, 5), bars[1].Date)
}

func TestRESTFetcher_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := NewRESTFetcher(srv.URL, "", "").FetchDailyBars(context.Background(), "X", day(2023, 1, 1), day(2023, 1, 2))
	assert.ErrorContains(t, err, "status 401")
}

func TestReadCSV_YFinanceExport(t *testing.T) {
	in := `Date,Open,High,Low,Close,Adj Close,Volume
2023-12-06,89.80,90.01,89.55,89.71,89.71,0
2023-12-07,89.71,90.12,89.60,89.93,89.93,0
2023-12-08,null,null,null,null,null,null
2023-12-11,89.93,90.40,89.80,90.20,90.20,0
2023-12-18,90.20,90.30,90.00,90.10,90.10,0
`
	bars, err := ReadCSV(strings.NewReader(in), day(2023, 12, 7), day(2023, 12, 15))
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.Equal(t, day(2023, 12, 7), bars[0].Date)
	assert.Equal(t, 90.40, bars[1].High)
}

func TestReadCSV_MissingColumn(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("date,open,high,close\n"), time.Time{}, time.Time{})
	assert.ErrorContains(t, err, `"low"`)
}

func TestReadCSV_BadNumber(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("date,open,high,low,close\n2023-12-07,1,2,x,1\n"), time.Time{}, time.Time{})
	assert.ErrorContains(t, err, "line 2")
}

func TestYahooFetcher_MissingOHLUsesClose(t *testing.T) {
	body := `{"chart":{"result":[{"meta":{"gmtoffset":0},
"timestamp":[1701648000,1701734400],
"indicators":{"quote":[{
"open":[90.1,null],
"high":[90.5,null],
"low":[89.9,90.0],
"close":[90.3,90.4]}]}}],"error":null}}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	f := NewYahooFetcher("")
	f.BaseURL = srv.URL
	bars, err := f.FetchDailyBars(context.Background(), "EURINR", day(2023, 12, 1), day(2023, 12, 15))
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.Equal(t, 90.4, bars[1].Open)
	assert.Equal(t, 90.4, bars[1].High)
	assert.Equal(t, 90.0, bars[1].Low)
}

func TestReadCSV_RejectsNonFinite(t *testing.T) {
	for _, v := range []string{"NaN", "Inf", "-inf"} {
		in := "date,open,high,low,close\n2023-12-07,1," + v + ",0.5,1\n"
		_, err := ReadCSV(strings.NewReader(in), time.Time{}, time.Time{})
		assert.ErrorContains(t, err, "not a finite number", v)
	}
}
