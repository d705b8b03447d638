package calculator

import (
	"fmt"

	"CurrencySentinel/internal/model"
)

// ComputeIndicators computes SMA, standard deviation, Bollinger bands and CCI of series
// for one window. Every returned sequence has series.Len() values and contains no NaN or
// infinity. The series is not modified.
func ComputeIndicators(series model.Series, window int) (*model.IndicatorSet, error) {
	if err := checkWindow(window); err != nil {
		return nil, err
	}
	if series.Len() == 0 {
		return nil, &InsufficientDataError{Rows: 0}
	}

	closes := series.Closes()
	sma, err := RollingMean(closes, window)
	if err != nil {
		return nil, fmt.Errorf("sma: %w", err)
	}
	sd, err := RollingStd(closes, window)
	if err != nil {
		return nil, fmt.Errorf("sd: %w", err)
	}
	coerce(sma)
	coerce(sd)

	upper, lower, err := BollingerBands(sma, sd, BandWidth)
	if err != nil {
		return nil, fmt.Errorf("bands: %w", err)
	}
	cci, err := CalculateCCI(series.TypicalPrices(), window)
	if err != nil {
		return nil, fmt.Errorf("cci: %w", err)
	}

	return &model.IndicatorSet{
		Window: window,
		SMA:    sma,
		SD:     sd,
		Upper:  coerce(upper),
		Lower:  coerce(lower),
		CCI:    cci,
	}, nil
}
