package strategy

import "CurrencySentinel/internal/model"

// CCI thresholds for the oversold and overbought crossovers.
const (
	CCIOversold   = -100.0
	CCIOverbought = 100.0
)

// snapshot is the latest indicator reading every row is compared against.
type snapshot struct {
	sma     float64
	upper   float64
	lower   float64
	cci     float64
	prevCCI float64
	hasPrev bool
}

func latest(set *model.IndicatorSet) (snapshot, bool) {
	n := set.Len()
	if n == 0 || len(set.Upper) != n || len(set.Lower) != n || len(set.CCI) != n {
		return snapshot{}, false
	}
	s := snapshot{
		sma:   set.SMA[n-1],
		upper: set.Upper[n-1],
		lower: set.Lower[n-1],
		cci:   set.CCI[n-1],
	}
	if n > 1 {
		s.prevCCI = set.CCI[n-2]
		s.hasPrev = true
	}
	return s, true
}

func scoreSMA(price float64, snap snapshot) model.Decision {
	switch {
	case price > snap.sma:
		return model.Buy
	case price < snap.sma:
		return model.Sell
	default:
		return model.Neutral
	}
}

// scoreBand is contrarian: touching the upper band sells, touching the lower band buys.
// A price sitting exactly on a zero-width band gives no signal.
func scoreBand(price float64, snap snapshot) model.Decision {
	switch {
	case snap.upper <= snap.lower && price == snap.upper:
		return model.Neutral
	case price >= snap.upper:
		return model.Sell
	case price <= snap.lower:
		return model.Buy
	default:
		return model.Neutral
	}
}

// cciBuyCross reports an upward cross out of oversold between prev and current.
func cciBuyCross(current float64, snap snapshot) bool {
	return snap.hasPrev && current > CCIOversold && snap.prevCCI <= CCIOversold
}

// cciSellCross reports a cross into overbought between prev and current.
func cciSellCross(current float64, snap snapshot) bool {
	return snap.hasPrev && current > CCIOverbought && snap.prevCCI <= CCIOverbought
}

func scoreCCI(current float64, snap snapshot) model.Decision {
	switch {
	case cciBuyCross(current, snap):
		return model.Buy
	case cciSellCross(current, snap):
		return model.Sell
	default:
		return model.Neutral
	}
}

// scoreCombined requires the SMA, band and CCI conditions to agree.
func scoreCombined(price, current float64, snap snapshot) model.Decision {
	switch {
	case price > snap.sma && price <= snap.lower && cciBuyCross(current, snap):
		return model.Buy
	case price < snap.sma && price >= snap.upper && cciSellCross(current, snap):
		return model.Sell
	default:
		return model.Neutral
	}
}
