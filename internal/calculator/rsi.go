package calculator

import (
	"StockRadar/internal/model"
)

// DefaultRSI is reported when there are too few bars to compute RSI.
const DefaultRSI = 50.0

// CalculateRSI computes RSI over the given period using simple averages of
// the last period gains and losses. Requires period+1 bars; returns
// DefaultRSI when data is insufficient.
func CalculateRSI(bars []model.OHLCV, period int) (float64, error) {
	if period <= 0 {
		return 0, errNonPositivePeriod
	}
	if len(bars) < period+1 {
		return DefaultRSI, nil
	}

	closes := model.Closes(bars)
	gains := make([]float64, len(closes)-1)
	losses := make([]float64, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains[i-1] = change
		} else {
			losses[i-1] = -change
		}
	}

	avgGain, err := CalculateSMA(gains, period)
	if err != nil {
		return 0, err
	}
	avgLoss, err := CalculateSMA(losses, period)
	if err != nil {
		return 0, err
	}

	if avgLoss == 0 {
		if avgGain == 0 {
			return DefaultRSI, nil
		}
		return 100.0, nil
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs), nil
}
