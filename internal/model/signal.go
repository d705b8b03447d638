package model

// Decision is a categorical trading call.
type Decision string

const (
	Buy     Decision = "BUY"
	Sell    Decision = "SELL"
	Neutral Decision = "NEUTRAL"
)

// Valid reports whether d is one of the three known decisions.
func (d Decision) Valid() bool {
	switch d {
	case Buy, Sell, Neutral:
		return true
	}
	return false
}

// DecisionSet holds the four decision sequences derived for one window.
type DecisionSet struct {
	Window   int
	SMA      []Decision
	Band     []Decision
	CCI      []Decision
	Combined []Decision
}

// Len returns the length of the aligned sequences.
func (d *DecisionSet) Len() int { return len(d.SMA) }

// Columns returns the sequences keyed by name, e.g. "bb_decision_5".
func (d *DecisionSet) Columns() map[string][]Decision {
	return map[string][]Decision{
		ColumnName("sma_decision", d.Window):      d.SMA,
		ColumnName("bb_decision", d.Window):       d.Band,
		ColumnName("cci_decision", d.Window):      d.CCI,
		ColumnName("combined_decision", d.Window): d.Combined,
	}
}

// DecisionOrder lists the decision column names for a window in export order.
func DecisionOrder(window int) []string {
	return []string{
		ColumnName("sma_decision", window),
		ColumnName("bb_decision", window),
		ColumnName("cci_decision", window),
		ColumnName("combined_decision", window),
	}
}

// Latest returns the decisions of the last row.
func (d *DecisionSet) Latest() (sma, band, cci, combined Decision) {
	n := d.Len()
	if n == 0 {
		return Neutral, Neutral, Neutral, Neutral
	}
	return d.SMA[n-1], d.Band[n-1], d.CCI[n-1], d.Combined[n-1]
}
