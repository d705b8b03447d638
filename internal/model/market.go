package model

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrUnsortedSeries = errors.New("series dates are not ascending")
	ErrDuplicateDate  = errors.New("series contains duplicate dates")
)

// PricePoint is one daily trading session.
type PricePoint struct {
	Date  time.Time
	Open  float64
	High  float64
	Low   float64
	Close float64
}

// TypicalPrice returns (high + low + close) / 3.
func (p PricePoint) TypicalPrice() float64 {
	return (p.High + p.Low + p.Close) / 3
}

// Series holds an ordered daily price table plus any indicator columns computed for it.
// Every column has exactly len(Points) values, index-aligned to Points.
type Series struct {
	Symbol  string
	Points  []PricePoint
	Columns map[string][]float64
}

// Len returns the number of price points.
func (s Series) Len() int { return len(s.Points) }

// Validate checks that dates are strictly ascending.
func (s Series) Validate() error {
	for i := 1; i < len(s.Points); i++ {
		prev, cur := s.Points[i-1].Date, s.Points[i].Date
		if cur.Equal(prev) {
			return fmt.Errorf("%w: %s", ErrDuplicateDate, cur.Format("2006-01-02"))
		}
		if cur.Before(prev) {
			return fmt.Errorf("%w: %s after %s", ErrUnsortedSeries, cur.Format("2006-01-02"), prev.Format("2006-01-02"))
		}
	}
	for name, col := range s.Columns {
		if len(col) != len(s.Points) {
			return fmt.Errorf("column %s has %d values, want %d", name, len(col), len(s.Points))
		}
	}
	return nil
}

// Closes returns the closing prices in order.
func (s Series) Closes() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Close
	}
	return out
}

// TypicalPrices returns the typical price of every session in order.
func (s Series) TypicalPrices() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.TypicalPrice()
	}
	return out
}

// Last returns the most recent price point.
func (s Series) Last() (PricePoint, bool) {
	if len(s.Points) == 0 {
		return PricePoint{}, false
	}
	return s.Points[len(s.Points)-1], true
}

// WithIndicators returns a copy of s carrying the columns of set.
// The receiver's column map is left untouched.
func (s Series) WithIndicators(set *IndicatorSet) Series {
	cols := make(map[string][]float64, len(s.Columns)+5)
	for k, v := range s.Columns {
		cols[k] = v
	}
	for k, v := range set.Columns() {
		cols[k] = v
	}
	return Series{Symbol: s.Symbol, Points: s.Points, Columns: cols}
}

// Between returns the sub-series whose dates fall in [from, to]. A zero bound is open.
// Columns are sliced identically. The returned offset is the index of the first kept
// point in s, or -1 when nothing matched.
func (s Series) Between(from, to time.Time) (Series, int) {
	lo, hi := -1, -1
	for i, p := range s.Points {
		if !from.IsZero() && p.Date.Before(from) {
			continue
		}
		if !to.IsZero() && p.Date.After(to) {
			break
		}
		if lo < 0 {
			lo = i
		}
		hi = i + 1
	}
	if lo < 0 {
		return Series{Symbol: s.Symbol, Columns: map[string][]float64{}}, -1
	}
	return s.Slice(lo, hi), lo
}

// Slice returns points [lo, hi) with every column cut to the same range.
func (s Series) Slice(lo, hi int) Series {
	cols := make(map[string][]float64, len(s.Columns))
	for k, v := range s.Columns {
		cols[k] = v[lo:hi:hi]
	}
	return Series{Symbol: s.Symbol, Points: s.Points[lo:hi:hi], Columns: cols}
}
