package calculator

import (
	"errors"

	"gonum.org/v1/gonum/stat"
)

// DailyReturns returns close-to-close percentage changes; the result has
// one element fewer than closes. A zero previous close yields a zero return.
func DailyReturns(closes []float64) []float64 {
	if len(closes) < 2 {
		return nil
	}
	out := make([]float64, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		prev := closes[i-1]
		if prev == 0 {
			continue
		}
		out[i-1] = (closes[i] - prev) / prev
	}
	return out
}

// RollingStdDev returns the sample standard deviation of the window values
// ending at index end (inclusive). ok is false when the window does not fit.
func RollingStdDev(values []float64, window, end int) (sd float64, ok bool, err error) {
	if window <= 1 {
		return 0, false, errors.New("window must be greater than one")
	}
	if end < 0 || end >= len(values) || end-window+1 < 0 {
		return 0, false, nil
	}
	return stat.StdDev(values[end-window+1:end+1], nil), true, nil
}

// TrailingMean averages the last n values, or all of them when fewer exist.
func TrailingMean(values []float64, n int) float64 {
	if len(values) == 0 || n <= 0 {
		return 0
	}
	if n > len(values) {
		n = len(values)
	}
	return stat.Mean(values[len(values)-n:], nil)
}
