package model

import "fmt"

// IndicatorSet holds every indicator computed for one window, each aligned to the source series.
type IndicatorSet struct {
	Window int
	SMA    []float64
	SD     []float64
	Upper  []float64 // SMA + 2*SD
	Lower  []float64 // SMA - 2*SD
	CCI    []float64
}

// Len returns the length of the aligned sequences.
func (s *IndicatorSet) Len() int { return len(s.SMA) }

// Columns returns the sequences keyed by their window-parameterized names, e.g. "sma_5".
func (s *IndicatorSet) Columns() map[string][]float64 {
	return map[string][]float64{
		ColumnName("sma", s.Window):        s.SMA,
		ColumnName("sd", s.Window):         s.SD,
		ColumnName("upper_band", s.Window): s.Upper,
		ColumnName("lower_band", s.Window): s.Lower,
		ColumnName("cci", s.Window):        s.CCI,
	}
}

// ColumnOrder lists the indicator column names for a window in export order.
func ColumnOrder(window int) []string {
	return []string{
		ColumnName("sma", window),
		ColumnName("sd", window),
		ColumnName("upper_band", window),
		ColumnName("lower_band", window),
		ColumnName("cci", window),
	}
}

// Slice returns the positions [lo, hi) of every sequence.
func (s *IndicatorSet) Slice(lo, hi int) *IndicatorSet {
	return &IndicatorSet{
		Window: s.Window,
		SMA:    s.SMA[lo:hi:hi],
		SD:     s.SD[lo:hi:hi],
		Upper:  s.Upper[lo:hi:hi],
		Lower:  s.Lower[lo:hi:hi],
		CCI:    s.CCI[lo:hi:hi],
	}
}

// ColumnName builds "<prefix>_<window>".
func ColumnName(prefix string, window int) string {
	return fmt.Sprintf("%s_%d", prefix, window)
}
