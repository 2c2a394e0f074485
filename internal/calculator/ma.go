package calculator

import (
	"errors"

	"github.com/markcheno/go-talib"

	"StockRadar/internal/model"
)

var errNonPositivePeriod = errors.New("period must be positive")

// CalculateSMA computes the simple moving average of the last period prices.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errNonPositivePeriod
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	if period == 1 {
		return prices[len(prices)-1], nil
	}
	sma := talib.Sma(prices, period)
	return sma[len(sma)-1], nil
}

// CalculateMA60 returns the 60-session simple moving average of closes.
func CalculateMA60(bars []model.OHLCV) (float64, error) {
	return CalculateSMA(model.Closes(bars), 60)
}

// SMASeries returns the rolling SMA aligned with prices; entries before the
// first full window are zero.
func SMASeries(prices []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errNonPositivePeriod
	}
	if len(prices) < period {
		return make([]float64, len(prices)), nil
	}
	if period == 1 {
		return append([]float64(nil), prices...), nil
	}
	return talib.Sma(prices, period), nil
}
