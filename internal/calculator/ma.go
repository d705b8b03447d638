package calculator

import "math"

// RollingMean computes the trailing mean of values over window. Positions with fewer than
// window predecessors average over what is available, so every position has a value.
func RollingMean(values []float64, window int) ([]float64, error) {
	if err := checkWindow(window); err != nil {
		return nil, err
	}
	out := make([]float64, len(values))
	for i := range values {
		out[i] = mean(values[windowStart(i, window) : i+1])
	}
	return out, nil
}

// RollingStd computes the trailing sample standard deviation (n-1 denominator) with the
// same shrinking-window policy as RollingMean. A window holding a single observation has
// no sample deviation and yields 0, which makes window 1 collapse to 0 everywhere.
func RollingStd(values []float64, window int) ([]float64, error) {
	if err := checkWindow(window); err != nil {
		return nil, err
	}
	out := make([]float64, len(values))
	if window == 1 {
		return out, nil
	}
	for i := range values {
		out[i] = sampleStd(values[windowStart(i, window) : i+1])
	}
	return out, nil
}

func windowStart(i, window int) int {
	start := i - window + 1
	if start < 0 {
		start = 0
	}
	return start
}

// mean uses two passes: the naive sum, then the average residual as a correction term.
func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	n := float64(len(xs))
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	m := sum / n
	resid := 0.0
	for _, x := range xs {
		resid += x - m
	}
	return m + resid/n
}

func sampleStd(xs []float64) float64 {
	if len(xs) < 2 {
		return math.NaN()
	}
	m := mean(xs)
	var ss, comp float64
	for _, x := range xs {
		d := x - m
		ss += d * d
		comp += d
	}
	n := float64(len(xs))
	variance := (ss - comp*comp/n) / (n - 1)
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance)
}

// coerce replaces NaN and infinities with 0 in place.
func coerce(values []float64) []float64 {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			values[i] = 0
		}
	}
	return values
}
