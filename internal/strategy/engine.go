package strategy

import (
	"fmt"

	"CurrencySentinel/internal/model"
)

// Every decision compares against the last position of the indicator set, not the
// position of the price being judged.

// SMADecision buys above the latest SMA and sells below it.
func SMADecision(price float64, set *model.IndicatorSet) model.Decision {
	snap, ok := latest(set)
	if !ok {
		return model.Neutral
	}
	return scoreSMA(price, snap)
}

// BandDecision sells at or above the latest upper band and buys at or below the latest lower band.
func BandDecision(price float64, set *model.IndicatorSet) model.Decision {
	snap, ok := latest(set)
	if !ok {
		return model.Neutral
	}
	return scoreBand(price, snap)
}

// CCIDecision detects a threshold crossover between the last two CCI values.
// The price argument is ignored.
func CCIDecision(_ float64, set *model.IndicatorSet) model.Decision {
	snap, ok := latest(set)
	if !ok {
		return model.Neutral
	}
	return scoreCCI(snap.cci, snap)
}

// CombinedDecision is BUY or SELL only when the SMA, band and CCI conditions all hold.
func CombinedDecision(price float64, set *model.IndicatorSet) model.Decision {
	snap, ok := latest(set)
	if !ok {
		return model.Neutral
	}
	return scoreCombined(price, snap.cci, snap)
}

// Evaluate derives the four decision sequences for every row of series.
//
// SMA and band decisions compare each close with the latest snapshot. The CCI crossover
// for row i takes cci[i] as the current reading and the second-to-last CCI as the previous
// one, so the last row matches CCIDecision. The combined decision reuses that crossover.
func Evaluate(series model.Series, set *model.IndicatorSet) (*model.DecisionSet, error) {
	n := series.Len()
	if set.Len() != n || len(set.CCI) != n {
		return nil, fmt.Errorf("indicator set has %d values for %d rows", set.Len(), n)
	}

	ds := &model.DecisionSet{
		Window:   set.Window,
		SMA:      make([]model.Decision, n),
		Band:     make([]model.Decision, n),
		CCI:      make([]model.Decision, n),
		Combined: make([]model.Decision, n),
	}
	snap, ok := latest(set)
	for i, p := range series.Points {
		if !ok {
			ds.SMA[i], ds.Band[i], ds.CCI[i], ds.Combined[i] = model.Neutral, model.Neutral, model.Neutral, model.Neutral
			continue
		}
		ds.SMA[i] = scoreSMA(p.Close, snap)
		ds.Band[i] = scoreBand(p.Close, snap)
		ds.CCI[i] = scoreCCI(set.CCI[i], snap)
		ds.Combined[i] = scoreCombined(p.Close, set.CCI[i], snap)
	}
	return ds, nil
}
