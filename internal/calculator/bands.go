package calculator

import "errors"

// BandWidth is the number of standard deviations between the middle and outer Bollinger bands.
const BandWidth = 2.0

// BollingerBands returns sma ± k*sd position by position.
func BollingerBands(sma, sd []float64, k float64) (upper, lower []float64, err error) {
	if len(sma) != len(sd) {
		return nil, nil, errors.New("sma and sd must have equal length")
	}
	upper = make([]float64, len(sma))
	lower = make([]float64, len(sma))
	for i := range sma {
		upper[i] = sma[i] + k*sd[i]
		lower[i] = sma[i] - k*sd[i]
	}
	return upper, lower, nil
}
