package calculator

import "math"

// CCIScale is Lambert's constant; it puts roughly 70-80% of CCI readings inside ±100.
const CCIScale = 0.015

// CalculateCCI computes the Commodity Channel Index of the typical prices tp over window.
//
// The mean deviation at i is the trailing mean of |tp[j] - smaTP[j]|, where each j is
// measured against its own trailing mean. When that deviation is 0 the index is 0.
func CalculateCCI(tp []float64, window int) ([]float64, error) {
	smaTP, err := RollingMean(tp, window)
	if err != nil {
		return nil, err
	}
	absDev := make([]float64, len(tp))
	for i := range tp {
		absDev[i] = math.Abs(tp[i] - smaTP[i])
	}
	mad, err := RollingMean(absDev, window)
	if err != nil {
		return nil, err
	}

	cci := make([]float64, len(tp))
	for i := range tp {
		if mad[i] == 0 {
			continue
		}
		cci[i] = (tp[i] - smaTP[i]) / (CCIScale * mad[i])
	}
	return coerce(cci), nil
}
